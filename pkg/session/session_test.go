package session

import (
	"reflect"
	"strconv"
	"testing"

	"src.liveui.sh/pkg/action"
	"src.liveui.sh/pkg/input"
	"src.liveui.sh/pkg/reconcile"
	"src.liveui.sh/pkg/widget"
)

var testSource = []byte(`
root:
  id: ui
  children:
    - id: row
      props: {width: Fit}
      children:
        - {id: button1, kind: button, text: "+"}
        - {id: label1, kind: label, text: "0"}
    - {id: other, kind: label}
`)

var testSource2 = []byte(`
root:
  id: ui
  children:
    - {id: label1, kind: label, text: "?"}
    - {id: button1, kind: button}
`)

type counter struct{ n int }

func newTestSession(t *testing.T) *Session[*counter] {
	t.Helper()
	s, err := New(Config[*counter]{
		Source: testSource,
		Handlers: reconcile.Handlers[*counter]{
			"button1": func(ctx *reconcile.Context, c *counter) {
				c.n++
				ctx.SetText("label1", strconv.Itoa(c.n))
			},
		},
		State: &counter{},
		Restore: func(tree *widget.Tree, c *counter) {
			if n, ok := tree.FindString("label1"); ok {
				tree.SetText(n, strconv.Itoa(c.n))
			}
		},
	})
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func TestNew_FirstPassIsFull(t *testing.T) {
	s := newTestSession(t)
	p := s.Flush()
	if !p.Full || len(p.Dirty) != 5 {
		t.Errorf("first pass %+v, want full with 5 nodes", p)
	}
	if p := s.Flush(); p.Full || !p.Empty() {
		t.Errorf("second pass %+v, want empty", p)
	}
}

func TestNew_Errors(t *testing.T) {
	if _, err := New(Config[int]{}); err == nil {
		t.Errorf("no error without source")
	}
	if _, err := New(Config[int]{Source: []byte("root: {id: ui, style: Nope}")}); err == nil {
		t.Errorf("no error for a bad source")
	}
}

func TestProcess(t *testing.T) {
	s := newTestSession(t)
	s.Flush()
	s.Process(input.PointerMove{Over: "button1"})
	s.Process(input.PointerDown{Over: "button1"})
	p := s.Process(input.PointerUp{Over: "button1"})

	if want := []action.Action{action.Clicked{ID: "ui.row.button1"}}; !reflect.DeepEqual(p.Actions, want) {
		t.Errorf("actions %v, want %v", p.Actions, want)
	}
	want := []string{"ui.row.button1", "ui.row", "ui.row.label1"}
	if !reflect.DeepEqual(p.Dirty, want) {
		t.Errorf("dirty %v, want %v", p.Dirty, want)
	}
	if s.State().n != 1 {
		t.Errorf("counter %d, want 1", s.State().n)
	}
}

func TestProcessAll_CoalescesRedraws(t *testing.T) {
	s := newTestSession(t)
	s.Flush()
	events := append(input.Click("button1"), input.Click("button1")...)
	p := s.ProcessAll(events)
	if len(p.Actions) != 2 || s.State().n != 2 {
		t.Errorf("actions %v, counter %d", p.Actions, s.State().n)
	}
	seen := make(map[string]int)
	for _, d := range p.Dirty {
		seen[d]++
	}
	if seen["ui.row.label1"] != 1 {
		t.Errorf("label1 appears %d times in %v", seen["ui.row.label1"], p.Dirty)
	}
	label, _ := s.Tree().FindString("label1")
	if label.Text != "2" {
		t.Errorf("label text %q, want 2", label.Text)
	}
}

func TestRebuild(t *testing.T) {
	s := newTestSession(t)
	s.ProcessAll(input.Click("button1"))
	// Leave the button pressed; the interaction state must not survive.
	s.ProcessAll([]input.Event{input.PointerDown{Over: "button1"}})

	if err := s.Rebuild(testSource2); err != nil {
		t.Fatal(err)
	}
	p := s.Flush()
	if !p.Full || len(p.Dirty) != 3 {
		t.Errorf("pass after rebuild %+v, want full with 3 nodes", p)
	}
	label, _ := s.Tree().FindString("label1")
	if label.Text != "1" {
		t.Errorf("label text %q, want state restored as 1", label.Text)
	}
	if p := s.Process(input.PointerUp{Over: "button1"}); len(p.Actions) != 0 {
		t.Errorf("release after rebuild emitted %v", p.Actions)
	}
	p = s.ProcessAll(input.Click("button1"))
	if s.State().n != 2 || !reflect.DeepEqual(p.Actions, []action.Action{action.Clicked{ID: "ui.button1"}}) {
		t.Errorf("counter %d, actions %v", s.State().n, p.Actions)
	}
}

func TestRebuild_FailureKeepsTree(t *testing.T) {
	s := newTestSession(t)
	s.Flush()
	old := s.Tree()
	if err := s.Rebuild([]byte("root: {id: ui, props: {width: (NOPE)}}")); err == nil {
		t.Fatal("no error")
	}
	if s.Tree() != old {
		t.Errorf("tree replaced after failed rebuild")
	}
	if p := s.Flush(); p.Full || !p.Empty() {
		t.Errorf("pass after failed rebuild %+v, want empty", p)
	}
	if p := s.ProcessAll(input.Click("button1")); len(p.Actions) != 1 {
		t.Errorf("old tree no longer works: %+v", p)
	}
}
