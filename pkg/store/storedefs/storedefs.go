// Package storedefs contains definitions of the store API.
//
// It is a separate package so that packages that only depend on the store API
// does not need to depend on the concrete implementation.
package storedefs

import "errors"

// ErrNoState is returned by Store.State when no state has been saved under
// the given name.
var ErrNoState = errors.New("no saved state")

// ErrNoMatchingAction is returned by Store.Action when there is no action
// with the given sequence number.
var ErrNoMatchingAction = errors.New("no matching action")

// Store is an interface satisfied by the storage service.
type Store interface {
	State(name string) ([]byte, error)
	SetState(name string, data []byte) error
	DelState(name string) error

	NextActionSeq() (int, error)
	AddAction(text string) (int, error)
	Action(seq int) (string, error)
	ActionsWithSeq(from, upto int) ([]Action, error)
}

// Action is an entry in the action journal.
type Action struct {
	Text string `json:"text"`
	Seq  int    `json:"seq"`
}
