// Package progtest contains utilities for testing [prog.Program] instances.
package progtest

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"src.liveui.sh/pkg/must"
	"src.liveui.sh/pkg/prog"
	"src.liveui.sh/pkg/testutil"
)

// Case is a test case for Test.
type Case struct {
	args  []string
	stdin string
	want  result
}

type result struct {
	exit   int
	stdout output
	stderr output
}

type output struct {
	content string
	partial bool
}

func (o output) String() string {
	if o.partial {
		return "text containing " + quote(o.content)
	}
	return quote(o.content)
}

func quote(s string) string {
	if s == "" {
		return "empty text"
	}
	return "\"" + s + "\""
}

// ThatLiveUI returns a new Case with the specified CLI arguments.
//
// The new Case expects the program run to exit with 0, and write nothing to
// stdout or stderr.
//
// When combined with subsequent method calls, a test case reads like English.
// For example, a test for the fact that "liveui -bad-flag" exits with 2 reads
// like:
//
//	ThatLiveUI("-bad-flag").ExitsWith(2)
func ThatLiveUI(args ...string) Case {
	return Case{args: append([]string{"liveui"}, args...)}
}

// WithStdin returns an altered Case that provides the given input to stdin of
// the program.
func (c Case) WithStdin(s string) Case {
	c.stdin = s
	return c
}

// DoesNothing returns c itself. It is useful to mark tests that otherwise
// don't have any expectations, for example:
//
//	ThatLiveUI("-log", "log").DoesNothing()
func (c Case) DoesNothing() Case {
	return c
}

// ExitsWith returns an altered Case that requires the program run to return
// with the given exit status.
func (c Case) ExitsWith(code int) Case {
	c.want.exit = code
	return c
}

// WritesStdout returns an altered Case that requires the program run to write
// exactly the given text to stdout.
func (c Case) WritesStdout(s string) Case {
	c.want.stdout = output{content: s}
	return c
}

// WritesStdoutContaining returns an altered Case that requires the program
// run to write output to stdout that contains the given text as a substring.
func (c Case) WritesStdoutContaining(s string) Case {
	c.want.stdout = output{content: s, partial: true}
	return c
}

// WritesStderr returns an altered Case that requires the program run to write
// exactly the given text to stderr.
func (c Case) WritesStderr(s string) Case {
	c.want.stderr = output{content: s}
	return c
}

// WritesStderrContaining returns an altered Case that requires the program
// run to write output to stderr that contains the given text as a substring.
func (c Case) WritesStderrContaining(s string) Case {
	c.want.stderr = output{content: s, partial: true}
	return c
}

// Test runs test cases against a given program.
func Test(t *testing.T, p prog.Program, cases ...Case) {
	t.Helper()
	for _, c := range cases {
		t.Run(strings.Join(c.args, " "), func(t *testing.T) {
			t.Helper()
			r := run(t, p, c.args, c.stdin)
			if r.exit != c.want.exit {
				t.Errorf("got exit %v, want %v", r.exit, c.want.exit)
			}
			if !matchOutput(r.stdout.content, c.want.stdout) {
				t.Errorf("got stdout %v, want %v", r.stdout, c.want.stdout)
			}
			if !matchOutput(r.stderr.content, c.want.stderr) {
				t.Errorf("got stderr %v, want %v", r.stderr, c.want.stderr)
			}
		})
	}
}

// Run runs a Program with the given arguments and stdin, and returns its exit
// status, stdout and stderr.
func Run(t *testing.T, p prog.Program, stdin string, args ...string) (exit int, stdout, stderr string) {
	t.Helper()
	r := run(t, p, append([]string{"liveui"}, args...), stdin)
	return r.exit, r.stdout.content, r.stderr.content
}

func run(t *testing.T, p prog.Program, args []string, stdin string) result {
	dir := testutil.TempDir(t)
	stdinName := filepath.Join(dir, "stdin")
	must.WriteFile(stdinName, []byte(stdin))
	in := must.OK1(os.Open(stdinName))
	defer in.Close()

	// Output goes to files rather than pipes, so that a program writing a
	// lot of output cannot block.
	out := must.OK1(os.Create(filepath.Join(dir, "stdout")))
	defer out.Close()
	errOut := must.OK1(os.Create(filepath.Join(dir, "stderr")))
	defer errOut.Close()

	exit := prog.Run([3]*os.File{in, out, errOut}, args, p)
	return result{exit, output{content: readAll(out)}, output{content: readAll(errOut)}}
}

func readAll(f *os.File) string {
	must.OK1(f.Seek(0, io.SeekStart))
	return string(must.OK1(io.ReadAll(f)))
}

func matchOutput(got string, want output) bool {
	if want.partial {
		return strings.Contains(got, want.content)
	}
	return got == want.content
}
