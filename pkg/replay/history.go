package replay

import (
	"encoding/json"
	"fmt"
	"math"
	"os"

	"src.liveui.sh/pkg/prog"
	"src.liveui.sh/pkg/store"
)

// History is the subprogram that shows the action journal kept in the
// database.
type History struct{}

// Run prints the action journal with -history.
func (History) Run(fds [3]*os.File, f *prog.Flags, _ []string) error {
	if !f.History {
		return prog.ErrNotSuitable
	}
	if f.DB == "" {
		return prog.BadUsage("-history requires -db")
	}
	db, err := store.NewStore(f.DB)
	if err != nil {
		return err
	}
	defer db.Close()
	actions, err := db.ActionsWithSeq(0, math.MaxInt)
	if err != nil {
		return err
	}
	if f.JSON {
		return json.NewEncoder(fds[1]).Encode(actions)
	}
	for _, a := range actions {
		fmt.Fprintf(fds[1], "%5d  %s\n", a.Seq, a.Text)
	}
	return nil
}
