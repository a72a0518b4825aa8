// Package input defines the raw input events delivered by the host, one at a
// time and already ordered by time.
package input

import "fmt"

// Event is a raw input event. It is one of PointerMove, PointerDown,
// PointerUp, KeyDown, KeyUp, Text, Resize and MenuPick.
type Event interface{ isEvent() }

// Pointer events carry the result of the host's hit-testing: the full
// dot-separated path of the innermost node under the pointer, or "" when the
// pointer is over no node.

// PointerMove is sent when the pointer moves.
type PointerMove struct{ Over string }

// PointerDown is sent when the primary pointer button is pressed.
type PointerDown struct{ Over string }

// PointerUp is sent when the primary pointer button is released.
type PointerUp struct{ Over string }

// KeyDown is sent when a key is pressed.
type KeyDown struct{ Key Key }

// KeyUp is sent when a key is released.
type KeyUp struct{ Key Key }

// Text is sent when the host has composed text from keystrokes.
type Text struct{ Text string }

// Resize is sent when the window is resized.
type Resize struct{ Width, Height int }

// MenuPick is sent when an entry of an open popup menu is picked. Target is
// the path of the node owning the menu.
type MenuPick struct {
	Target string
	Index  int
}

func (PointerMove) isEvent() {}
func (PointerDown) isEvent() {}
func (PointerUp) isEvent()   {}
func (KeyDown) isEvent()     {}
func (KeyUp) isEvent()       {}
func (Text) isEvent()        {}
func (Resize) isEvent()      {}
func (MenuPick) isEvent()    {}

func (e PointerMove) String() string { return fmt.Sprintf("move(%s)", e.Over) }
func (e PointerDown) String() string { return fmt.Sprintf("down(%s)", e.Over) }
func (e PointerUp) String() string   { return fmt.Sprintf("up(%s)", e.Over) }
func (e KeyDown) String() string     { return fmt.Sprintf("key-down(%s)", e.Key) }
func (e KeyUp) String() string       { return fmt.Sprintf("key-up(%s)", e.Key) }
func (e Text) String() string        { return fmt.Sprintf("text(%q)", e.Text) }
func (e Resize) String() string      { return fmt.Sprintf("resize(%dx%d)", e.Width, e.Height) }
func (e MenuPick) String() string    { return fmt.Sprintf("pick(%s, %d)", e.Target, e.Index) }

// Click returns the events of a complete click over the given node: the
// pointer moves over it, is pressed and released.
func Click(over string) []Event {
	return []Event{PointerMove{over}, PointerDown{over}, PointerUp{over}}
}

// Type returns the events for typing some text and pressing Enter.
func Type(text string) []Event {
	return []Event{Text{text}, KeyDown{K(Enter)}, KeyUp{K(Enter)}}
}
