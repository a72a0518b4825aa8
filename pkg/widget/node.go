// Package widget implements the widget tree: a hierarchy of named nodes, each
// with a resolved style record, display fields and the interaction state of
// interactive nodes.
package widget

import (
	"fmt"
	"strings"

	"src.liveui.sh/pkg/style"
)

// Kind is the kind of a node.
type Kind uint8

// Possible values of Kind.
const (
	Container Kind = iota
	Button
	Label
	TextInput
	Dropdown
	Slide
)

var kindNames = [...]string{
	Container: "container",
	Button:    "button",
	Label:     "label",
	TextInput: "text-input",
	Dropdown:  "dropdown",
	Slide:     "slide",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("kind(%d)", k)
}

// ParseKind parses the name of a kind, as returned by Kind.String.
func ParseKind(s string) (Kind, error) {
	for k, name := range kindNames {
		if s == name {
			return Kind(k), nil
		}
	}
	return 0, fmt.Errorf("unknown widget kind %q", s)
}

// ButtonState is the interaction state of a button.
type ButtonState uint8

// Possible values of ButtonState.
const (
	Idle ButtonState = iota
	Hovered
	Pressed
)

func (s ButtonState) String() string {
	switch s {
	case Idle:
		return "idle"
	case Hovered:
		return "hovered"
	case Pressed:
		return "pressed"
	}
	return fmt.Sprintf("button-state(%d)", s)
}

// DropdownState is whether the popup menu of a dropdown is open.
type DropdownState uint8

// Possible values of DropdownState.
const (
	Closed DropdownState = iota
	Open
)

func (s DropdownState) String() string {
	if s == Open {
		return "open"
	}
	return "closed"
}

// Node is a node in the widget tree.
type Node struct {
	// Unique among siblings.
	ID       string
	Kind     Kind
	Style    style.Record
	Children []*Node

	// Display fields. Text is the caption of buttons and labels, the content
	// of text inputs and the title of slides. Items are the entries of a
	// dropdown, or the slide titles of a slide deck.
	Text     string
	Items    []string
	Selected int

	// Interaction state. Button is used by buttons and dropdowns (for their
	// pressed look); Menu and Highlight by dropdowns; Focused and Buffer by text
	// inputs.
	Button    ButtonState
	Menu      DropdownState
	Highlight int
	Focused   bool
	Buffer    string

	parent *Node
}

// Parent returns the parent of the node, or nil for the root.
func (n *Node) Parent() *Node { return n.parent }

// Path returns the full path of the node, starting with the ID of the root.
func (n *Node) Path() Path {
	var p Path
	for m := n; m != nil; m = m.parent {
		p = append(p, m.ID)
	}
	for i, j := 0, len(p)-1; i < j; i, j = i+1, j-1 {
		p[i], p[j] = p[j], p[i]
	}
	return p
}

// Child returns the direct child with the given ID.
func (n *Node) Child(id string) (*Node, bool) {
	for _, c := range n.Children {
		if c.ID == id {
			return c, true
		}
	}
	return nil, false
}

// Interactive reports whether the node reacts to pointer events.
func (n *Node) Interactive() bool {
	return n.Kind == Button || n.Kind == TextInput || n.Kind == Dropdown
}

// Path addresses a node by a sequence of identifiers.
type Path []string

// ParsePath splits a dot-separated path. The empty string is the empty path.
func ParsePath(s string) Path {
	if s == "" {
		return nil
	}
	return strings.Split(s, ".")
}

func (p Path) String() string { return strings.Join(p, ".") }

// HasPrefix reports whether q is a prefix of p.
func (p Path) HasPrefix(q Path) bool {
	if len(q) > len(p) {
		return false
	}
	for i := range q {
		if p[i] != q[i] {
			return false
		}
	}
	return true
}
