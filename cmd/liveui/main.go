// Liveui replays scripts of input events against a user interface described
// by a declarative design, and reports the actions each step emits, the nodes
// to redraw and the resulting application state.
package main

import (
	"os"

	"src.liveui.sh/pkg/buildinfo"
	"src.liveui.sh/pkg/prog"
	"src.liveui.sh/pkg/replay"
)

func main() {
	os.Exit(prog.Run(
		[3]*os.File{os.Stdin, os.Stdout, os.Stderr}, os.Args,
		prog.Composite(buildinfo.Program{}, replay.History{}, replay.Program{})))
}
