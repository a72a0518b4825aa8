// Package session ties together the pieces of a running user interface: the
// widget tree built from a design, the translator that turns input events
// into actions, and the reconciler that applies actions to application state.
//
// A Session is not safe for concurrent use, with the exception of
// RequestRebuild. Events are processed one at a time, each fully translated
// and reconciled before the next.
package session

import (
	"errors"
	"sync"

	"src.liveui.sh/pkg/action"
	"src.liveui.sh/pkg/design"
	"src.liveui.sh/pkg/input"
	"src.liveui.sh/pkg/logutil"
	"src.liveui.sh/pkg/reconcile"
	"src.liveui.sh/pkg/widget"
)

var logger = logutil.GetLogger("[session] ")

// Config keeps the configuration of a Session.
type Config[S any] struct {
	// Design source of the first tree. Required.
	Source []byte
	// Configuration of the translator.
	Translate action.Config
	// Handlers of the application.
	Handlers reconcile.Handlers[S]
	// Initial application state.
	State S
	// Called with every newly built tree, before it is first drawn, to push
	// application state into display fields. Defaults to a no-op.
	Restore func(*widget.Tree, S)
}

// Pass is the outcome of processing a batch of events; the host redraws once
// per Pass.
type Pass struct {
	// Full paths of the nodes to redraw, in the order they were first marked.
	Dirty []string
	// Whether the tree was rebuilt, in which case every node is in Dirty.
	Full bool
	// Actions emitted, in order.
	Actions []action.Action
}

// Empty returns whether nothing needs to be redrawn.
func (p Pass) Empty() bool { return len(p.Dirty) == 0 }

// Session is a running user interface.
type Session[S any] struct {
	cfg   Config[S]
	tree  *widget.Tree
	tr    *action.Translator
	rec   *reconcile.Reconciler[S]
	state S

	full    bool
	actions []action.Action

	rebuildCh    chan struct{}
	rebuildMutex sync.Mutex
	rebuildSrc   []byte
}

// New creates a Session, building the first tree from cfg.Source. Unlike
// Rebuild, a failure here is returned since there is no prior tree to keep.
func New[S any](cfg Config[S]) (*Session[S], error) {
	if cfg.Source == nil {
		return nil, errors.New("no design source")
	}
	if cfg.Restore == nil {
		cfg.Restore = func(*widget.Tree, S) {}
	}
	tree, err := design.Load(cfg.Source)
	if err != nil {
		return nil, err
	}
	s := &Session[S]{
		cfg:       cfg,
		rec:       reconcile.New(cfg.Handlers),
		state:     cfg.State,
		rebuildCh: make(chan struct{}, 1),
	}
	s.install(tree)
	return s, nil
}

func (s *Session[S]) install(tree *widget.Tree) {
	s.tree = tree
	s.tr = action.NewTranslator(tree, s.cfg.Translate)
	s.cfg.Restore(tree, s.state)
	tree.MarkAllDirty()
	s.full = true
}

// Tree returns the current widget tree.
func (s *Session[S]) Tree() *widget.Tree { return s.tree }

// State returns the application state.
func (s *Session[S]) State() S { return s.state }

// Process processes one event.
func (s *Session[S]) Process(ev input.Event) Pass {
	s.handle(ev)
	return s.Flush()
}

// ProcessAll processes a batch of events, coalescing their redraws into a
// single Pass.
func (s *Session[S]) ProcessAll(events []input.Event) Pass {
	for _, ev := range events {
		s.handle(ev)
	}
	return s.Flush()
}

func (s *Session[S]) handle(ev input.Event) {
	actions := s.tr.Translate(ev)
	if len(actions) == 0 {
		return
	}
	s.rec.Reconcile(s.tree, actions, s.state)
	s.actions = append(s.actions, actions...)
}

// Flush returns what needs to be redrawn since the last Pass. The first Pass
// after New or a successful Rebuild is full.
func (s *Session[S]) Flush() Pass {
	p := Pass{Dirty: s.tree.TakeDirty(), Full: s.full, Actions: s.actions}
	s.full = false
	s.actions = nil
	return p
}

// Rebuild builds a new tree from src and makes it current. Interaction state
// of the old tree is discarded, and application state is pushed into the new
// tree. On failure, the current tree stays active and the error is returned.
func (s *Session[S]) Rebuild(src []byte) error {
	tree, err := design.Load(src)
	if err != nil {
		logger.Printf("rebuild failed, keeping current tree: %v", err)
		return err
	}
	logger.Printf("rebuilt tree")
	s.cfg.Source = src
	s.install(tree)
	return nil
}

// RequestRebuild asks a running Run loop to rebuild from src. It never blocks
// and may be called from any goroutine. If several requests arrive before the
// loop gets to them, only the last one is used.
func (s *Session[S]) RequestRebuild(src []byte) {
	s.rebuildMutex.Lock()
	defer s.rebuildMutex.Unlock()
	s.rebuildSrc = src
	select {
	case s.rebuildCh <- struct{}{}:
	default:
	}
}

func (s *Session[S]) extractRebuildSrc() []byte {
	s.rebuildMutex.Lock()
	defer s.rebuildMutex.Unlock()
	src := s.rebuildSrc
	s.rebuildSrc = nil
	return src
}
