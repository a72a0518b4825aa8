// Package sample implements the sample application: a counter driven by two
// buttons, a text input, a dropdown bound to application state, a layout
// demo and a slide deck combining the two.
package sample

import (
	"embed"
	"fmt"
	"sort"
	"strings"

	"src.liveui.sh/pkg/action"
	"src.liveui.sh/pkg/logutil"
	"src.liveui.sh/pkg/reconcile"
	"src.liveui.sh/pkg/widget"
)

var logger = logutil.GetLogger("[sample] ")

//go:embed base.yaml widgets.yaml layout.yaml slides.yaml
var sources embed.FS

// DefaultVariant is the variant used when none is specified.
const DefaultVariant = "widgets"

var variantFiles = map[string]string{
	"widgets": "widgets.yaml",
	"layout":  "layout.yaml",
	"slides":  "slides.yaml",
}

// Variants returns the names of all variants, sorted.
func Variants() []string {
	names := make([]string, 0, len(variantFiles))
	for name := range variantFiles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Source returns the design source of a variant.
func Source(variant string) ([]byte, error) {
	fname, ok := variantFiles[variant]
	if !ok {
		return nil, fmt.Errorf("unknown variant %q, want one of %s",
			variant, strings.Join(Variants(), ", "))
	}
	base, err := sources.ReadFile("base.yaml")
	if err != nil {
		return nil, err
	}
	root, err := sources.ReadFile(fname)
	if err != nil {
		return nil, err
	}
	// The variant file only has a root key, so the concatenation is a
	// single valid mapping.
	src := make([]byte, 0, len(base)+len(root)+1)
	src = append(src, base...)
	src = append(src, '\n')
	return append(src, root...), nil
}

// State is the application state of the sample application.
type State struct {
	// Value of the counter, never negative.
	Counter int `json:"counter"`
	// Text last submitted in the text input, or the caption of the last
	// button pressed in the layout demo.
	LastInput string `json:"last_input"`
	// Index of the selected dropdown entry, -1 when nothing was selected.
	Selection int `json:"selection"`
	// Current slide of the deck.
	Slide int `json:"slide"`
}

// NewState returns the initial state.
func NewState() *State { return &State{Selection: -1} }

func (st *State) String() string {
	return fmt.Sprintf("counter=%d last_input=%q selection=%d slide=%d",
		st.Counter, st.LastInput, st.Selection, st.Slide)
}

// Handlers returns the handler table of the sample application.
func Handlers() reconcile.Handlers[*State] {
	h := reconcile.Handlers[*State]{
		"button1": func(ctx *reconcile.Context, st *State) {
			st.Counter++
			showCounter(ctx, st)
		},
		"button2": func(ctx *reconcile.Context, st *State) {
			if st.Counter > 0 {
				st.Counter--
			}
			showCounter(ctx, st)
		},
		"input_sample": func(ctx *reconcile.Context, st *State) {
			submitted, ok := ctx.Action.(action.TextSubmitted)
			if !ok {
				return
			}
			st.LastInput = submitted.Text
			ctx.SetText("label_input", inputLabel(st.LastInput))
		},
		"my_dropdown.dropdown": func(ctx *reconcile.Context, st *State) {
			selected, ok := ctx.Action.(action.ValueSelected)
			if !ok {
				return
			}
			st.Selection = selected.Index
			if n, ok := ctx.Node(); ok {
				bindSelection(ctx.Tree(), n, st.Selection)
			}
		},
		"deck": func(ctx *reconcile.Context, st *State) {
			if selected, ok := ctx.Action.(action.ValueSelected); ok {
				st.Slide = selected.Index
				logger.Printf("slide %d", st.Slide)
			}
		},
	}
	for _, id := range []string{"buttonc1", "buttonc21", "buttonc22", "buttonc23", "buttonc3"} {
		h[id] = recordButton
	}
	return h
}

func recordButton(ctx *reconcile.Context, st *State) {
	if n, ok := ctx.Node(); ok {
		st.LastInput = n.Text
	}
}

func showCounter(ctx *reconcile.Context, st *State) {
	ctx.SetText("label1", counterLabel(st.Counter))
}

func counterLabel(n int) string { return fmt.Sprintf("Label: %d", n) }

func inputLabel(s string) string { return "Input: " + s }

// Pushes the selection to the dropdown and the label next to it.
func bindSelection(tree *widget.Tree, dropdown *widget.Node, i int) {
	if i < 0 || i >= len(dropdown.Items) {
		return
	}
	tree.SetSelected(dropdown, i)
	if parent := dropdown.Parent(); parent != nil {
		if label, ok := parent.Child("label"); ok {
			tree.SetText(label, dropdown.Items[i])
		}
	}
}

// Restore pushes state into the display fields of a freshly built tree, so
// that a rebuilt or reloaded tree shows the same data as before.
func Restore(tree *widget.Tree, st *State) {
	if n, ok := tree.FindString("label1"); ok {
		tree.SetText(n, counterLabel(st.Counter))
	}
	if st.LastInput != "" {
		if n, ok := tree.FindString("label_input"); ok {
			tree.SetText(n, inputLabel(st.LastInput))
		}
	}
	if n, ok := tree.FindString("my_dropdown.dropdown"); ok {
		bindSelection(tree, n, st.Selection)
	}
	if n, ok := tree.FindString("deck"); ok && len(n.Children) > 0 {
		i := st.Slide
		if i >= len(n.Children) {
			i = len(n.Children) - 1
		}
		if i > 0 {
			tree.SetSelected(n, i)
		}
	}
}
