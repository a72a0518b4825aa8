package design

import (
	"errors"
	"fmt"
	"strings"

	"src.liveui.sh/pkg/style"
	"src.liveui.sh/pkg/widget"
)

// Styles that provide the defaults of each kind of node.
var kindStyles = map[widget.Kind]string{
	widget.Container: "View",
	widget.Button:    "Button",
	widget.Label:     "Label",
	widget.TextInput: "TextInput",
	widget.Dropdown:  "DropDown",
	widget.Slide:     "Slide",
}

// UnknownStyle is returned when a node or a style refers to a style that is
// not defined.
type UnknownStyle struct {
	Name string
}

func (e *UnknownStyle) Error() string { return "unknown style " + e.Name }

// StyleCycle is returned when styles inherit from each other in a cycle.
type StyleCycle struct {
	Names []string
}

func (e *StyleCycle) Error() string {
	return "style inheritance cycle: " + strings.Join(e.Names, " -> ")
}

// Load parses a design source and builds a widget tree from it.
func Load(src []byte) (*widget.Tree, error) {
	d, err := Parse(src)
	if err != nil {
		return nil, err
	}
	return d.Build()
}

// Build builds a widget tree from the design, with the constants and styles of
// the builtin theme available.
//
// The style of each node is the style of its kind, overridden by the named
// style of the node if any, overridden by the properties of the node. A node
// whose style fails to resolve does not stop the build from resolving other
// nodes; all failures are returned together, and no tree is returned.
func (d *Design) Build() (*widget.Tree, error) {
	return d.Overlay(Theme()).build()
}

func (d *Design) build() (*widget.Tree, error) {
	if d.Root == nil {
		return nil, errors.New("design has no root node")
	}
	b := &builder{
		design:   d,
		resolver: style.NewResolver(d.Constants),
		named:    make(map[string]namedResult),
	}
	root := b.node(d.Root, nil)
	if len(b.errs) > 0 {
		return nil, errors.Join(b.errs...)
	}
	return widget.NewTree(root)
}

type builder struct {
	design   *Design
	resolver *style.Resolver
	named    map[string]namedResult
	// Names of styles being resolved, for detecting cycles.
	stack []string
	errs  []error
}

type namedResult struct {
	rec style.Record
	err error
}

func (b *builder) node(spec *NodeSpec, parent widget.Path) *widget.Node {
	path := append(append(widget.Path(nil), parent...), spec.ID)
	rec, err := b.nodeStyle(spec)
	if err != nil {
		b.errs = append(b.errs, fmt.Errorf("node %s: %w", path, err))
	}
	n := &widget.Node{
		ID:       spec.ID,
		Kind:     spec.Kind,
		Style:    rec,
		Text:     spec.Text,
		Items:    append([]string(nil), spec.Items...),
		Selected: spec.Selected,
	}
	for _, childSpec := range spec.Children {
		n.Children = append(n.Children, b.node(childSpec, path))
	}
	return n
}

func (b *builder) nodeStyle(spec *NodeSpec) (style.Record, error) {
	var base style.Record
	if name, ok := kindStyles[spec.Kind]; ok {
		if _, defined := b.design.Styles[name]; defined {
			rec, err := b.namedStyle(name)
			if err != nil {
				return nil, err
			}
			base = rec
		}
	}
	if spec.Style != "" {
		rec, err := b.namedStyle(spec.Style)
		if err != nil {
			return nil, err
		}
		base = style.Merge(base, rec)
	}
	return b.resolver.Resolve(base, spec.Props)
}

func (b *builder) namedStyle(name string) (style.Record, error) {
	if r, ok := b.named[name]; ok {
		return r.rec, r.err
	}
	for i, visiting := range b.stack {
		if visiting == name {
			cycle := append(append([]string(nil), b.stack[i:]...), name)
			return nil, &StyleCycle{cycle}
		}
	}
	def, ok := b.design.Styles[name]
	if !ok {
		return nil, &UnknownStyle{name}
	}

	b.stack = append(b.stack, name)
	rec, err := b.resolveStyleDef(def)
	b.stack = b.stack[:len(b.stack)-1]
	if err != nil {
		err = fmt.Errorf("style %s: %w", name, err)
	}
	b.named[name] = namedResult{rec, err}
	return rec, err
}

func (b *builder) resolveStyleDef(def StyleDef) (style.Record, error) {
	var base style.Record
	if def.Inherit != "" {
		rec, err := b.namedStyle(def.Inherit)
		if err != nil {
			return nil, err
		}
		base = rec
	}
	return b.resolver.Resolve(base, def.Props)
}
