package design

import (
	"errors"
	"strings"
	"testing"

	"src.liveui.sh/pkg/action"
	"src.liveui.sh/pkg/input"
	"src.liveui.sh/pkg/style"
	"src.liveui.sh/pkg/widget"
)

func TestLoad_Cascade(t *testing.T) {
	tree, err := Load([]byte(sampleSource))
	if err != nil {
		t.Fatal(err)
	}
	row, ok := tree.FindString("ui.row")
	if !ok {
		t.Fatal("no ui.row")
	}
	// Kind style View, then ElementBox, then the node's own props.
	checkNum(t, row.Style, 4, "padding", "top")
	checkNum(t, row.Style, 0, "padding", "left")
	checkEnum(t, row.Style, "Fit", "height")
	checkEnum(t, row.Style, "Right", "flow")

	label, _ := tree.FindString("label1")
	checkNum(t, label.Style, 100, "width")
	checkEnum(t, label.Style, "Fit", "height")
	checkNum(t, label.Style, 10, "draw_text", "text_style", "font_size")
	if label.Text != "Label: 0" {
		t.Errorf("label text %q", label.Text)
	}

	button, _ := tree.FindString("button1")
	if c, ok := button.Style.Color("draw_bg", "color_hover"); !ok || c != style.RGBA(0xff, 0xff, 0xff, 0x20) {
		t.Errorf("button hover color %v, %v", c, ok)
	}
	dd, _ := tree.FindString("dropdown")
	if dd.Selected != 1 || len(dd.Items) != 3 {
		t.Errorf("dropdown %+v", dd)
	}
}

func TestBuild_ResolvesAllExpressions(t *testing.T) {
	tree, err := Load([]byte(sampleSource))
	if err != nil {
		t.Fatal(err)
	}
	tree.ForEach(func(n *widget.Node) bool {
		if s := findExpr(n.Style); s != "" {
			t.Errorf("node %s has unresolved expression %s", n.Path(), s)
		}
		return true
	})
}

func findExpr(v style.Value) string {
	switch v := v.(type) {
	case *style.Expr:
		return v.Src()
	case style.Record:
		for _, sub := range v {
			if s := findExpr(sub); s != "" {
				return s
			}
		}
	}
	return ""
}

func TestBuild_ReportsAllNodeErrors(t *testing.T) {
	src := `
root:
  id: ui
  children:
    - {id: a, kind: label, props: {margin: {left: (SSPACING_9)}}}
    - {id: b, kind: label, props: {width: (100 / 2)}}
    - {id: c, kind: label, props: {width: (NOPE * 2)}}
`
	tree, err := Load([]byte(src))
	if tree != nil {
		t.Errorf("got a tree despite errors")
	}
	var undef *style.UndefinedConstant
	if !errors.As(err, &undef) {
		t.Fatalf("error %v is not UndefinedConstant", err)
	}
	msg := err.Error()
	for _, want := range []string{
		"node ui.a: margin: left: undefined constant SSPACING_9",
		"node ui.c: width: undefined constant NOPE",
	} {
		if !strings.Contains(msg, want) {
			t.Errorf("error %q does not contain %q", msg, want)
		}
	}
	if strings.Contains(msg, "ui.b") {
		t.Errorf("error %q mentions a valid node", msg)
	}
}

func TestBuild_StyleErrors(t *testing.T) {
	tests := []struct {
		name   string
		src    string
		target any
	}{
		{"unknown style", "root: {id: ui, style: Nope}", new(*UnknownStyle)},
		{"unknown parent style", "styles: {S: {inherit: Nope}}\nroot: {id: ui, style: S}", new(*UnknownStyle)},
		{"cycle", "styles: {A: {inherit: B}, B: {inherit: A}}\nroot: {id: ui, style: A}", new(*StyleCycle)},
		{"constant cycle", "constants: {X: (Y), Y: (X)}\nroot: {id: ui, props: {width: (X)}}", new(*style.ConstantCycle)},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := Load([]byte(test.src))
			if !errors.As(err, test.target) {
				t.Errorf("error %v, want %T", err, test.target)
			}
		})
	}
}

func TestBuild_StyleCycleNames(t *testing.T) {
	_, err := Load([]byte("styles: {A: {inherit: B}, B: {inherit: A}}\nroot: {id: ui, style: A}"))
	var cycle *StyleCycle
	if !errors.As(err, &cycle) {
		t.Fatalf("error %v is not StyleCycle", err)
	}
	if got := strings.Join(cycle.Names, " "); got != "A B A" {
		t.Errorf("cycle %q, want A B A", got)
	}
}

func TestBuild_DuplicateID(t *testing.T) {
	_, err := Load([]byte("root: {id: ui, children: [{id: x}, {id: x}]}"))
	var dup *widget.DuplicateID
	if !errors.As(err, &dup) {
		t.Errorf("error %v is not DuplicateID", err)
	}
}

func TestBuild_NoRoot(t *testing.T) {
	if _, err := Load([]byte("constants: {A: 1}")); err == nil {
		t.Errorf("no error for a design without root")
	}
}

func TestBuild_DesignOverridesTheme(t *testing.T) {
	src := `
constants: {THEME_FONT_SIZE: 12.0}
styles:
  Label: {props: {width: Fill}}
root: {id: ui, kind: label}
`
	tree, err := Load([]byte(src))
	if err != nil {
		t.Fatal(err)
	}
	// The overridden Label style no longer inherits theme properties.
	if _, ok := tree.Root().Style.Lookup("draw_text"); ok {
		t.Errorf("overridden style kept theme properties")
	}
	checkEnum(t, tree.Root().Style, "Fill", "width")

	tree, err = Load([]byte("constants: {THEME_FONT_SIZE: 12.0}\nroot: {id: ui, kind: button}"))
	if err != nil {
		t.Fatal(err)
	}
	checkNum(t, tree.Root().Style, 12, "draw_text", "text_style", "font_size")
}

func checkNum(t *testing.T, r style.Record, want float64, keys ...string) {
	t.Helper()
	if got, ok := r.Num(keys...); !ok || got != want {
		t.Errorf("%s = %v (found %v), want %v", strings.Join(keys, "."), got, ok, want)
	}
}

func checkEnum(t *testing.T, r style.Record, want string, keys ...string) {
	t.Helper()
	if got, ok := r.Enum(keys...); !ok || got != want {
		t.Errorf("%s = %q (found %v), want %q", strings.Join(keys, "."), got, ok, want)
	}
}

func TestLoad_DeckStartsAtSelectedSlide(t *testing.T) {
	tree, err := Load([]byte(`
root:
  id: deck
  selected: 1
  children:
    - {id: one, kind: slide}
    - {id: two, kind: slide}
    - {id: three, kind: slide}
`))
	if err != nil {
		t.Fatal(err)
	}
	tr := action.NewTranslator(tree, action.Config{})
	if tr.Deck() == nil || tr.Deck().Selected != 1 {
		t.Fatalf("deck %+v, want one starting at slide 1", tr.Deck())
	}
	got := tr.Translate(input.KeyDown{Key: input.K(input.Right)})
	if len(got) != 1 || got[0] != (action.ValueSelected{ID: "deck", Index: 2}) {
		t.Errorf("Right from slide 1 -> %v, want selected(deck, 2)", got)
	}
}
