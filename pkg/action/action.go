// Package action translates raw input events into semantic actions addressed
// to widgets.
package action

import "fmt"

// Action is a semantic event produced when an input gesture completes. It is
// one of Clicked, TextSubmitted and ValueSelected.
type Action interface {
	// Target returns the full dot-separated path of the addressed node.
	Target() string
}

// Clicked is emitted when a button is pressed and released over itself.
type Clicked struct{ ID string }

// TextSubmitted is emitted when Enter is pressed in a text input.
type TextSubmitted struct {
	ID   string
	Text string
}

// ValueSelected is emitted when an entry of a dropdown is chosen, or when a
// slide deck moves to another slide.
type ValueSelected struct {
	ID    string
	Index int
}

func (a Clicked) Target() string       { return a.ID }
func (a TextSubmitted) Target() string { return a.ID }
func (a ValueSelected) Target() string { return a.ID }

func (a Clicked) String() string       { return fmt.Sprintf("clicked(%s)", a.ID) }
func (a TextSubmitted) String() string { return fmt.Sprintf("submitted(%s, %q)", a.ID, a.Text) }
func (a ValueSelected) String() string { return fmt.Sprintf("selected(%s, %d)", a.ID, a.Index) }
