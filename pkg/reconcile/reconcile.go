// Package reconcile dispatches actions to application handlers, which update
// application state and the display fields of the widget tree.
package reconcile

import (
	"strings"

	"src.liveui.sh/pkg/action"
	"src.liveui.sh/pkg/logutil"
	"src.liveui.sh/pkg/widget"
)

var logger = logutil.GetLogger("[reconcile] ")

// Handler reacts to an action addressed to a node.
type Handler[S any] func(ctx *Context, state S)

// Handlers maps node addresses to handlers. An address is a dot-separated
// suffix of a node's full path: "button1" matches any node named button1,
// while "my_dropdown.dropdown" only matches a dropdown directly inside
// my_dropdown.
type Handlers[S any] map[string]Handler[S]

// Reconciler matches actions against a static handler table.
type Reconciler[S any] struct {
	handlers map[string]Handler[S]
}

// New creates a Reconciler. The handler table is copied, so later changes to
// it have no effect.
func New[S any](handlers Handlers[S]) *Reconciler[S] {
	table := make(map[string]Handler[S], len(handlers))
	for addr, h := range handlers {
		table[addr] = h
	}
	return &Reconciler[S]{table}
}

// Reconcile processes actions in arrival order. Each action goes to the
// handler with the longest address matching its target. Actions no handler
// matches are ignored.
func (r *Reconciler[S]) Reconcile(tree *widget.Tree, actions []action.Action, state S) {
	for _, a := range actions {
		h, ok := r.match(a.Target())
		if !ok {
			logger.Printf("no handler for %v", a)
			continue
		}
		h(&Context{tree: tree, Action: a}, state)
	}
}

func (r *Reconciler[S]) match(target string) (Handler[S], bool) {
	for addr := target; ; {
		if h, ok := r.handlers[addr]; ok {
			return h, true
		}
		i := strings.IndexByte(addr, '.')
		if i < 0 {
			return nil, false
		}
		addr = addr[i+1:]
	}
}

// Context is passed to handlers. It gives access to the action being handled
// and to the widget tree.
type Context struct {
	tree *widget.Tree
	// The action being handled.
	Action action.Action
}

// Tree returns the widget tree.
func (c *Context) Tree() *widget.Tree { return c.tree }

// Node returns the node targeted by the action.
func (c *Context) Node() (*widget.Node, bool) {
	return c.tree.FindString(c.Action.Target())
}

// Find looks up a node; see widget.Tree.Find.
func (c *Context) Find(path string) (*widget.Node, bool) {
	return c.tree.FindString(path)
}

// SetText sets the text of a node and marks it for redraw. It reports whether
// the node exists.
func (c *Context) SetText(path, text string) bool {
	n, ok := c.tree.FindString(path)
	if ok {
		c.tree.SetText(n, text)
	}
	return ok
}

// SetSelected sets the selected index of a node and marks it for redraw. It
// reports whether the node exists.
func (c *Context) SetSelected(path string, i int) bool {
	n, ok := c.tree.FindString(path)
	if ok {
		c.tree.SetSelected(n, i)
	}
	return ok
}

// MarkDirty marks a node for redraw. It reports whether the node exists.
func (c *Context) MarkDirty(path string) bool {
	n, ok := c.tree.FindString(path)
	if ok {
		c.tree.MarkDirty(n)
	}
	return ok
}
