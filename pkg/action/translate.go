package action

import (
	"unicode/utf8"

	"src.liveui.sh/pkg/input"
	"src.liveui.sh/pkg/widget"
)

// DragOff decides what happens when a button is pressed, and the pointer is
// released after leaving the button.
type DragOff uint8

// Possible values of DragOff.
const (
	// DragOffCancel drops the click, the convention of most toolkits.
	DragOffCancel DragOff = iota
	// DragOffCommit emits the click anyway.
	DragOffCommit
)

func (d DragOff) String() string {
	if d == DragOffCommit {
		return "commit"
	}
	return "cancel"
}

// ParseDragOff parses "cancel" or "commit".
func ParseDragOff(s string) (DragOff, bool) {
	switch s {
	case "cancel":
		return DragOffCancel, true
	case "commit":
		return DragOffCommit, true
	}
	return 0, false
}

// Config configures a Translator.
type Config struct {
	DragOff DragOff
}

// Translator turns raw input events into actions, driving the interaction
// state stored in the nodes of a widget tree. It is deterministic: the
// actions emitted depend only on the sequence of events and the prior state.
type Translator struct {
	tree *widget.Tree
	cfg  Config

	// Interactive node under the pointer.
	hover *widget.Node
	// Node that received the last pointer-down, until the pointer is
	// released.
	pressed *widget.Node
	// Text input with keyboard focus.
	focus *widget.Node
	// Dropdown whose menu is open.
	menu *widget.Node
	// Container of slides navigated with Left and Right.
	deck *widget.Node
}

// NewTranslator creates a Translator for the given tree.
func NewTranslator(tree *widget.Tree, cfg Config) *Translator {
	tr := &Translator{tree: tree, cfg: cfg}
	tree.ForEach(func(n *widget.Node) bool {
		if tr.deck == nil && n.Kind == widget.Container && len(n.Children) > 0 && n.Children[0].Kind == widget.Slide {
			tr.deck = n
		}
		return tr.deck == nil
	})
	return tr
}

// Deck returns the slide deck of the tree, or nil.
func (tr *Translator) Deck() *widget.Node { return tr.deck }

// Translate processes one event and returns the actions it completes, if any.
func (tr *Translator) Translate(ev input.Event) []Action {
	switch ev := ev.(type) {
	case input.PointerMove:
		tr.setHover(tr.target(ev.Over))
	case input.PointerDown:
		return tr.pointerDown(tr.target(ev.Over))
	case input.PointerUp:
		return tr.pointerUp(tr.target(ev.Over))
	case input.KeyDown:
		return tr.keyDown(ev.Key)
	case input.Text:
		if tr.focus != nil {
			tr.setBuffer(tr.focus, tr.focus.Buffer+ev.Text)
		}
	case input.MenuPick:
		if n, ok := tr.tree.FindString(ev.Target); ok && n == tr.menu {
			return tr.selectEntry(n, ev.Index)
		}
	case input.Resize:
		tr.tree.MarkAllDirty()
	}
	return nil
}

// Returns the innermost interactive node at or above the given path.
func (tr *Translator) target(over string) *widget.Node {
	n, ok := tr.tree.FindString(over)
	if !ok {
		return nil
	}
	for ; n != nil; n = n.Parent() {
		if n.Interactive() {
			return n
		}
	}
	return nil
}

func (tr *Translator) setHover(n *widget.Node) {
	if n == tr.hover {
		return
	}
	if old := tr.hover; old != nil && old.Button == widget.Hovered {
		tr.setButton(old, widget.Idle)
	}
	tr.hover = n
	if n != nil && n.Button == widget.Idle {
		tr.setButton(n, widget.Hovered)
	}
}

func (tr *Translator) setButton(n *widget.Node, s widget.ButtonState) {
	if n.Button != s {
		n.Button = s
		tr.tree.MarkDirty(n)
	}
}

func (tr *Translator) pointerDown(n *widget.Node) []Action {
	tr.setHover(n)
	if tr.menu != nil && n != tr.menu {
		tr.closeMenu()
	}
	if tr.focus != nil && n != tr.focus {
		tr.setFocus(nil)
	}
	if n == nil {
		return nil
	}
	switch n.Kind {
	case widget.Button, widget.Dropdown:
		if n.Button == widget.Hovered {
			tr.setButton(n, widget.Pressed)
			tr.pressed = n
		}
	case widget.TextInput:
		tr.setFocus(n)
	}
	return nil
}

func (tr *Translator) pointerUp(n *widget.Node) []Action {
	p := tr.pressed
	tr.pressed = nil
	if p == nil || p.Button != widget.Pressed {
		// No pointer-down for this node; nothing to complete.
		tr.setHover(n)
		return nil
	}

	over := n == p
	if over {
		tr.setButton(p, widget.Hovered)
	} else {
		tr.setButton(p, widget.Idle)
	}
	tr.setHover(n)

	switch p.Kind {
	case widget.Button:
		if over || tr.cfg.DragOff == DragOffCommit {
			return []Action{Clicked{p.Path().String()}}
		}
	case widget.Dropdown:
		if over {
			if p.Menu == widget.Open {
				tr.closeMenu()
			} else {
				tr.openMenu(p)
			}
		}
	}
	return nil
}

func (tr *Translator) keyDown(k input.Key) []Action {
	switch {
	case tr.focus != nil:
		n := tr.focus
		switch k {
		case input.K(input.Enter):
			return []Action{TextSubmitted{n.Path().String(), n.Buffer}}
		case input.K(input.Backspace):
			if n.Buffer != "" {
				_, size := utf8.DecodeLastRuneInString(n.Buffer)
				tr.setBuffer(n, n.Buffer[:len(n.Buffer)-size])
			}
		case input.K(input.Escape):
			tr.setFocus(nil)
		}
	case tr.menu != nil:
		n := tr.menu
		switch k {
		case input.K(input.Up):
			tr.setHighlight(n, n.Highlight-1)
		case input.K(input.Down):
			tr.setHighlight(n, n.Highlight+1)
		case input.K(input.Enter):
			return tr.selectEntry(n, n.Highlight)
		case input.K(input.Escape):
			tr.closeMenu()
		}
	case tr.deck != nil:
		switch k {
		case input.K(input.Left):
			return tr.moveSlide(-1)
		case input.K(input.Right):
			return tr.moveSlide(1)
		}
	}
	return nil
}

func (tr *Translator) setFocus(n *widget.Node) {
	if old := tr.focus; old != nil {
		old.Focused = false
		tr.tree.MarkDirty(old)
	}
	tr.focus = n
	if n != nil {
		n.Focused = true
		tr.tree.MarkDirty(n)
	}
}

func (tr *Translator) setBuffer(n *widget.Node, s string) {
	if n.Buffer != s {
		n.Buffer = s
		tr.tree.MarkDirty(n)
	}
}

func (tr *Translator) openMenu(n *widget.Node) {
	n.Menu = widget.Open
	n.Highlight = fixIndex(n.Selected, len(n.Items))
	tr.menu = n
	tr.tree.MarkDirty(n)
}

func (tr *Translator) closeMenu() {
	if n := tr.menu; n != nil {
		n.Menu = widget.Closed
		tr.menu = nil
		tr.tree.MarkDirty(n)
	}
}

func (tr *Translator) setHighlight(n *widget.Node, i int) {
	i = fixIndex(i, len(n.Items))
	if n.Highlight != i {
		n.Highlight = i
		tr.tree.MarkDirty(n)
	}
}

func (tr *Translator) selectEntry(n *widget.Node, i int) []Action {
	if i < 0 || i >= len(n.Items) {
		return nil
	}
	tr.tree.SetSelected(n, i)
	tr.closeMenu()
	return []Action{ValueSelected{n.Path().String(), i}}
}

func (tr *Translator) moveSlide(d int) []Action {
	deck := tr.deck
	i := fixIndex(deck.Selected+d, len(deck.Children))
	if i == deck.Selected {
		return nil
	}
	tr.tree.SetSelected(deck, i)
	return []Action{ValueSelected{deck.Path().String(), i}}
}

func fixIndex(i, n int) int {
	switch {
	case i < 0:
		return 0
	case i >= n:
		return n - 1
	default:
		return i
	}
}
