// Package storetest keeps test suites against storedefs.Store.
package storetest

import (
	"reflect"
	"testing"

	"src.liveui.sh/pkg/store/storedefs"
)

// TestState tests the state functionality of a Store.
func TestState(t *testing.T, store storedefs.Store) {
	t.Helper()

	if _, err := store.State("widgets"); err != storedefs.ErrNoState {
		t.Errorf("State of unsaved name -> error %v, want %v", err, storedefs.ErrNoState)
	}
	if err := store.SetState("widgets", []byte(`{"counter":1}`)); err != nil {
		t.Errorf("SetState -> error %v", err)
	}
	if err := store.SetState("layout", []byte(`{"counter":2}`)); err != nil {
		t.Errorf("SetState -> error %v", err)
	}
	data, err := store.State("widgets")
	if string(data) != `{"counter":1}` || err != nil {
		t.Errorf("State -> (%q, %v), want (%q, nil)", data, err, `{"counter":1}`)
	}
	if err := store.DelState("widgets"); err != nil {
		t.Errorf("DelState -> error %v", err)
	}
	if _, err := store.State("widgets"); err != storedefs.ErrNoState {
		t.Errorf("State after DelState -> error %v, want %v", err, storedefs.ErrNoState)
	}
	if data, _ := store.State("layout"); string(data) != `{"counter":2}` {
		t.Errorf("DelState removed another entry")
	}
}

// TestActions tests the action journal functionality of a Store.
func TestActions(t *testing.T, store storedefs.Store) {
	t.Helper()

	seq, err := store.NextActionSeq()
	if seq != 1 || err != nil {
		t.Errorf("NextActionSeq on empty journal -> (%d, %v), want (1, nil)", seq, err)
	}
	texts := []string{"clicked ui.button1", "selected ui.my_dropdown.dropdown 2", "clicked ui.button2"}
	for i, text := range texts {
		seq, err := store.AddAction(text)
		if seq != i+1 || err != nil {
			t.Errorf("AddAction -> (%d, %v), want (%d, nil)", seq, err, i+1)
		}
	}
	if seq, _ := store.NextActionSeq(); seq != 4 {
		t.Errorf("NextActionSeq -> %d, want 4", seq)
	}
	if text, err := store.Action(2); text != texts[1] || err != nil {
		t.Errorf("Action(2) -> (%q, %v)", text, err)
	}
	if _, err := store.Action(10); err != storedefs.ErrNoMatchingAction {
		t.Errorf("Action(10) -> error %v, want %v", err, storedefs.ErrNoMatchingAction)
	}
	got, err := store.ActionsWithSeq(2, 4)
	want := []storedefs.Action{{Text: texts[1], Seq: 2}, {Text: texts[2], Seq: 3}}
	if !reflect.DeepEqual(got, want) || err != nil {
		t.Errorf("ActionsWithSeq(2, 4) -> (%v, %v), want (%v, nil)", got, err, want)
	}
}
