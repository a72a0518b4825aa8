// Package replay implements the main subprogram of liveui. It builds a session
// of the sample application or of a given design, replays a script of input
// events against it and reports what each step does.
package replay

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"src.liveui.sh/pkg/action"
	"src.liveui.sh/pkg/input"
	"src.liveui.sh/pkg/logutil"
	"src.liveui.sh/pkg/prog"
	"src.liveui.sh/pkg/sample"
	"src.liveui.sh/pkg/session"
	"src.liveui.sh/pkg/store"
	"src.liveui.sh/pkg/store/storedefs"
	"src.liveui.sh/pkg/sys"
)

var logger = logutil.GetLogger("[replay] ")

// Overridden in tests.
var isATTY = sys.IsATTY

// Program is the replay subprogram.
type Program struct{}

// Run replays a script. It is not suitable when -history is given.
func (Program) Run(fds [3]*os.File, f *prog.Flags, args []string) error {
	if f.History {
		return prog.ErrNotSuitable
	}
	dragOff, ok := action.ParseDragOff(f.DragOff)
	if !ok {
		return prog.BadUsage(fmt.Sprintf("bad value for -drag-off: %q", f.DragOff))
	}
	if len(args) > 1 {
		return prog.BadUsage("at most one script may be given")
	}
	name, src, err := designSource(f)
	if err != nil {
		return err
	}
	script, err := scriptSource(fds[0], f.Script, args)
	if err != nil {
		return err
	}
	steps, err := input.ParseSteps(script)
	if err != nil {
		return err
	}

	state := sample.NewState()
	var db store.DBStore
	if f.DB != "" {
		db, err = store.NewStore(f.DB)
		if err != nil {
			return err
		}
		defer db.Close()
		if err := loadState(db, name, state); err != nil {
			return err
		}
	}

	sess, err := session.New(session.Config[*sample.State]{
		Source:    src,
		Translate: action.Config{DragOff: dragOff},
		Handlers:  sample.Handlers(),
		State:     state,
		Restore:   sample.Restore,
	})
	if err != nil {
		return err
	}

	r := &report{Design: name, Nodes: len(sess.Flush().Dirty)}
	for _, step := range steps {
		p := sess.ProcessAll(step.Events)
		r.Steps = append(r.Steps, newStepReport(step.Desc, p))
		if db != nil {
			for _, a := range p.Actions {
				if _, err := db.AddAction(fmt.Sprint(a)); err != nil {
					return err
				}
			}
		}
	}
	r.State = state
	logger.Printf("replayed %d steps of %s", len(steps), name)

	if db != nil {
		if err := saveState(db, name, state); err != nil {
			return err
		}
	}
	if f.JSON {
		return json.NewEncoder(fds[1]).Encode(r)
	}
	r.writeText(fds[1])
	return nil
}

// Returns the name under which state is saved, and the design source.
func designSource(f *prog.Flags) (string, []byte, error) {
	if f.Design != "" {
		if f.Variant != "" {
			return "", nil, prog.BadUsage("-design and -variant cannot be used together")
		}
		src, err := os.ReadFile(f.Design)
		if err != nil {
			return "", nil, err
		}
		abs, err := filepath.Abs(f.Design)
		if err != nil {
			return "", nil, err
		}
		return "design:" + abs, src, nil
	}
	variant := f.Variant
	if variant == "" {
		variant = sample.DefaultVariant
	}
	src, err := sample.Source(variant)
	if err != nil {
		return "", nil, prog.BadUsage(err.Error())
	}
	return variant, src, nil
}

func scriptSource(stdin *os.File, flagValue string, args []string) ([]byte, error) {
	fname := flagValue
	if len(args) == 1 {
		if fname != "" {
			return nil, prog.BadUsage("-script and a script argument cannot be used together")
		}
		fname = args[0]
	}
	if fname != "" {
		return os.ReadFile(fname)
	}
	if isATTY(stdin) {
		return nil, prog.BadUsage("no script given; use -script or pipe one to stdin")
	}
	return io.ReadAll(stdin)
}

func loadState(db storedefs.Store, name string, state *sample.State) error {
	data, err := db.State(name)
	if errors.Is(err, storedefs.ErrNoState) {
		return nil
	} else if err != nil {
		return err
	}
	if err := json.Unmarshal(data, state); err != nil {
		return fmt.Errorf("saved state of %s: %w", name, err)
	}
	if state.Counter < 0 {
		state.Counter = 0
	}
	return nil
}

func saveState(db storedefs.Store, name string, state *sample.State) error {
	data, err := json.Marshal(state)
	if err != nil {
		return err
	}
	return db.SetState(name, data)
}

type report struct {
	Design string        `json:"design"`
	Nodes  int           `json:"nodes"`
	Steps  []stepReport  `json:"steps"`
	State  *sample.State `json:"state"`
}

type stepReport struct {
	Step    string   `json:"step"`
	Actions []string `json:"actions"`
	Dirty   []string `json:"dirty"`
	Full    bool     `json:"full,omitempty"`
}

func newStepReport(desc string, p session.Pass) stepReport {
	actions := make([]string, len(p.Actions))
	for i, a := range p.Actions {
		actions[i] = fmt.Sprint(a)
	}
	dirty := p.Dirty
	if dirty == nil {
		dirty = []string{}
	}
	return stepReport{desc, actions, dirty, p.Full}
}

func (r *report) writeText(w io.Writer) {
	fmt.Fprintf(w, "build %s: %d nodes\n", r.Design, r.Nodes)
	for _, s := range r.Steps {
		actions := "no action"
		if len(s.Actions) > 0 {
			actions = strings.Join(s.Actions, ", ")
		}
		fmt.Fprintf(w, "%s: %s\n", s.Step, actions)
		dirty := "(none)"
		if len(s.Dirty) > 0 {
			dirty = strings.Join(s.Dirty, " ")
		}
		fmt.Fprintf(w, "  dirty: %s\n", dirty)
	}
	fmt.Fprintf(w, "state: %s\n", r.State)
}
