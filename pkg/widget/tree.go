package widget

import (
	"fmt"
)

// Tree is a widget tree together with the set of nodes that have been marked
// dirty since the last TakeDirty call.
//
// A Tree is owned by a single goroutine and is not safe for concurrent use.
type Tree struct {
	root *Node

	dirty    []*Node
	dirtySet map[*Node]struct{}
}

// NotFound is returned when a path does not address a node.
type NotFound struct {
	Path Path
}

func (e *NotFound) Error() string {
	return fmt.Sprintf("no node at %s", e.Path)
}

// DuplicateID is returned when inserting a node whose ID is already used by a
// sibling.
type DuplicateID struct {
	Parent Path
	ID     string
}

func (e *DuplicateID) Error() string {
	return fmt.Sprintf("%s already has a child named %s", e.Parent, e.ID)
}

// NewTree creates a tree with the given root, linking every node to its
// parent. It returns an error if any node has a sibling with the same ID.
func NewTree(root *Node) (*Tree, error) {
	if err := link(root); err != nil {
		return nil, err
	}
	root.parent = nil
	return &Tree{root: root, dirtySet: make(map[*Node]struct{})}, nil
}

func link(n *Node) error {
	seen := make(map[string]struct{}, len(n.Children))
	for _, c := range n.Children {
		if _, dup := seen[c.ID]; dup {
			return &DuplicateID{n.Path(), c.ID}
		}
		seen[c.ID] = struct{}{}
		c.parent = n
		if err := link(c); err != nil {
			return err
		}
	}
	return nil
}

// Root returns the root node.
func (t *Tree) Root() *Node { return t.root }

// Find looks up a node by path. Each segment of the path is matched against
// the nearest descendant of the node matched by the previous segment, in
// breadth-first order; the first segment is matched against the root and all
// its descendants. A full path from the root thus addresses exactly one node,
// while a shorter path such as ["my_dropdown", "dropdown"] finds the node
// wherever my_dropdown is nested.
//
// It returns false if any segment is absent. An empty path finds nothing.
func (t *Tree) Find(p Path) (*Node, bool) {
	if len(p) == 0 {
		return nil, false
	}
	n := nearest([]*Node{t.root}, p[0])
	for _, id := range p[1:] {
		if n == nil {
			return nil, false
		}
		n = nearest(n.Children, id)
	}
	return n, n != nil
}

// FindString is like Find, but takes a dot-separated path.
func (t *Tree) FindString(s string) (*Node, bool) {
	return t.Find(ParsePath(s))
}

func nearest(level []*Node, id string) *Node {
	for len(level) > 0 {
		var next []*Node
		for _, n := range level {
			if n.ID == id {
				return n
			}
			next = append(next, n.Children...)
		}
		level = next
	}
	return nil
}

// InsertChild appends a node to the children of the node at the given path.
func (t *Tree) InsertChild(parent Path, n *Node) error {
	p, ok := t.Find(parent)
	if !ok {
		return &NotFound{parent}
	}
	if _, dup := p.Child(n.ID); dup {
		return &DuplicateID{p.Path(), n.ID}
	}
	if err := link(n); err != nil {
		return err
	}
	n.parent = p
	p.Children = append(p.Children, n)
	t.MarkDirty(p)
	return nil
}

// ForEach visits all nodes in pre-order. If visit returns false, the children
// of that node are skipped.
func (t *Tree) ForEach(visit func(*Node) bool) {
	var walk func(*Node)
	walk = func(n *Node) {
		if !visit(n) {
			return
		}
		for _, c := range n.Children {
			walk(c)
		}
	}
	walk(t.root)
}

// SetText changes the text of a node and marks it dirty. It is a no-op if the
// text is unchanged.
func (t *Tree) SetText(n *Node, text string) {
	if n.Text == text {
		return
	}
	n.Text = text
	t.MarkDirty(n)
}

// SetSelected changes the selected index of a node and marks it dirty. It is
// a no-op if the index is unchanged.
func (t *Tree) SetSelected(n *Node, i int) {
	if n.Selected == i {
		return
	}
	n.Selected = i
	t.MarkDirty(n)
}

// MarkDirty marks a node as needing a redraw, together with the ancestors
// whose size depends on the size of their children. Marking an already dirty
// node has no effect.
func (t *Tree) MarkDirty(n *Node) {
	for m := n; m != nil; m = m.parent {
		t.mark(m)
		if m.parent == nil || !fitsChildren(m.parent) {
			break
		}
	}
}

// MarkAllDirty marks every node dirty.
func (t *Tree) MarkAllDirty() {
	t.ForEach(func(n *Node) bool {
		t.mark(n)
		return true
	})
}

func (t *Tree) mark(n *Node) {
	if _, ok := t.dirtySet[n]; ok {
		return
	}
	t.dirtySet[n] = struct{}{}
	t.dirty = append(t.dirty, n)
}

// Reports whether the layout of a node depends on the size of its children,
// that is, whether it is sized to fit them in either dimension.
func fitsChildren(n *Node) bool {
	w, _ := n.Style.Enum("width")
	h, _ := n.Style.Enum("height")
	return w == "Fit" || h == "Fit"
}

// IsDirty reports whether a node has been marked dirty since the last
// TakeDirty call.
func (t *Tree) IsDirty(n *Node) bool {
	_, ok := t.dirtySet[n]
	return ok
}

// TakeDirty returns the paths of all dirty nodes in the order they were first
// marked, and clears the dirty set.
func (t *Tree) TakeDirty() []string {
	if len(t.dirty) == 0 {
		return nil
	}
	paths := make([]string, len(t.dirty))
	for i, n := range t.dirty {
		paths[i] = n.Path().String()
	}
	t.dirty = nil
	t.dirtySet = make(map[*Node]struct{})
	return paths
}
