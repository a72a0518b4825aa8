package design

import (
	"strings"
	"testing"

	"src.liveui.sh/pkg/style"
	"src.liveui.sh/pkg/widget"
)

var sampleSource = `
constants:
  SSPACING_1: 4.0
  SPACING_1: {top: (SSPACING_1), right: (SSPACING_1), bottom: (SSPACING_1), left: (SSPACING_1)}
styles:
  ElementBox:
    inherit: View
    props:
      width: Fill
      height: Fit
      padding: (SPACING_1)
root:
  id: ui
  kind: container
  children:
    - id: row
      style: ElementBox
      props: {padding: {left: 0}}
      children:
        - {id: button1, kind: button, text: "Button +"}
        - {id: label1, kind: label, text: "Label: 0", props: {width: 100}}
        - id: dropdown
          kind: dropdown
          items: [a, b, c]
          selected: 1
`

func TestParse(t *testing.T) {
	d, err := Parse([]byte(sampleSource))
	if err != nil {
		t.Fatal(err)
	}
	if got := d.Constants["SSPACING_1"]; !style.Equal(got, style.Num(4)) {
		t.Errorf("SSPACING_1 = %v, want 4", style.Repr(got))
	}
	if s := d.Styles["ElementBox"]; s.Inherit != "View" {
		t.Errorf("ElementBox inherits %q, want View", s.Inherit)
	}
	row := d.Root.Children[0]
	if row.Kind != widget.Container || row.Style != "ElementBox" {
		t.Errorf("row is %v with style %q", row.Kind, row.Style)
	}
	dd := row.Children[2]
	if dd.Kind != widget.Dropdown || len(dd.Items) != 3 || dd.Selected != 1 {
		t.Errorf("dropdown spec %+v", dd)
	}
}

func TestParse_DeckSelectsAmongChildren(t *testing.T) {
	d, err := Parse([]byte(`
root:
  id: deck
  selected: 1
  children:
    - {id: one, kind: slide}
    - {id: two, kind: slide}
`))
	if err != nil {
		t.Fatal(err)
	}
	if d.Root.Selected != 1 {
		t.Errorf("deck selected %d, want 1", d.Root.Selected)
	}
}

var parseErrorTests = []struct {
	name    string
	src     string
	wantErr string
}{
	{"unknown field", "root: {id: ui, colour: red}", "field colour not found"},
	{"missing id", "root: {id: ui, children: [{kind: label}]}", `node under "ui" has no id`},
	{"unknown kind", "root: {id: ui, kind: slider}", `node ui: unknown widget kind "slider"`},
	{"selected out of range", "root: {id: ui, kind: dropdown, items: [a], selected: 3}", "selected index 3 out of range"},
	{"selected slide out of range", "root: {id: deck, selected: 1, children: [{id: a, kind: slide}]}", "node deck: selected index 1 out of range"},
	{"bad color", `constants: {C: "#xZZ"}`, "constant C"},
	{"bad expression", "styles: {S: {props: {width: (1 +)}}}", "style S"},
}

func TestParse_Errors(t *testing.T) {
	for _, test := range parseErrorTests {
		t.Run(test.name, func(t *testing.T) {
			_, err := Parse([]byte(test.src))
			if err == nil {
				t.Fatalf("no error")
			}
			if !strings.Contains(err.Error(), test.wantErr) {
				t.Errorf("error %q does not contain %q", err, test.wantErr)
			}
		})
	}
}

func TestOverlay(t *testing.T) {
	base := &Design{
		Constants: style.Constants{"A": style.Num(1), "B": style.Num(2)},
		Styles:    map[string]StyleDef{"S": {Props: style.Record{"x": style.Num(1)}}},
		Root:      &NodeSpec{ID: "base"},
	}
	d := &Design{
		Constants: style.Constants{"B": style.Num(20)},
		Styles:    map[string]StyleDef{"T": {Inherit: "S"}},
		Root:      &NodeSpec{ID: "top"},
	}
	got := d.Overlay(base)
	if got.Root.ID != "top" {
		t.Errorf("root %q, want top", got.Root.ID)
	}
	if !style.Equal(got.Constants["A"], style.Num(1)) || !style.Equal(got.Constants["B"], style.Num(20)) {
		t.Errorf("constants %v", got.Constants)
	}
	if _, ok := got.Styles["S"]; !ok {
		t.Errorf("style S lost")
	}
	if len(base.Constants) != 2 || len(d.Constants) != 1 {
		t.Errorf("Overlay modified its inputs")
	}
}

func TestTheme(t *testing.T) {
	th := Theme()
	if th.Root != nil {
		t.Errorf("theme has a root")
	}
	for _, name := range kindStyles {
		if _, ok := th.Styles[name]; !ok {
			t.Errorf("theme does not define style %s", name)
		}
	}
	// Every theme style resolves on its own.
	d := &Design{Root: &NodeSpec{ID: "x"}}
	for name := range th.Styles {
		d.Root.Style = name
		if _, err := d.Build(); err != nil {
			t.Errorf("style %s: %v", name, err)
		}
	}
}
