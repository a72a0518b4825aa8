// Package design parses design sources and builds widget trees from them.
//
// Building is done in two phases. Parse turns the source into a Design, a
// plain data structure that refers to styles and constants by name. Build
// then resolves the style of every node and constructs the widget tree by an
// explicit traversal of the Design.
package design

import (
	"bytes"
	"fmt"

	"gopkg.in/yaml.v3"

	"src.liveui.sh/pkg/style"
	"src.liveui.sh/pkg/widget"
)

// Design is the parsed form of a design source.
type Design struct {
	Constants style.Constants
	Styles    map[string]StyleDef
	Root      *NodeSpec
}

// StyleDef is a named style. Its properties override those of the style it
// inherits from, if any.
type StyleDef struct {
	Inherit string
	Props   style.Record
}

// NodeSpec describes a node of the widget tree.
type NodeSpec struct {
	ID       string
	Kind     widget.Kind
	Style    string
	Props    style.Record
	Text     string
	Items []string
	// Index into Items for a dropdown, or into Children for a container.
	Selected int
	Children []*NodeSpec
}

type rawDesign struct {
	Constants map[string]any      `yaml:"constants"`
	Styles    map[string]rawStyle `yaml:"styles"`
	Templates map[string]*rawNode `yaml:"templates"`
	Root      *rawNode            `yaml:"root"`
}

type rawStyle struct {
	Inherit string         `yaml:"inherit"`
	Props   map[string]any `yaml:"props"`
}

type rawNode struct {
	ID       string         `yaml:"id"`
	Use      string         `yaml:"use"`
	Kind     string         `yaml:"kind"`
	Style    string         `yaml:"style"`
	Props    map[string]any `yaml:"props"`
	Text     *string        `yaml:"text"`
	Items    []string       `yaml:"items"`
	Selected *int           `yaml:"selected"`
	Children []*rawNode     `yaml:"children"`
}

// Parse parses a design source. Unknown fields are errors. A source without a
// root node is valid; it can only provide constants and styles, like the
// builtin theme.
//
// Nodes that use a template are expanded here, so that the resulting Design
// has no references to templates.
func Parse(src []byte) (*Design, error) {
	var raw rawDesign
	dec := yaml.NewDecoder(bytes.NewReader(src))
	dec.KnownFields(true)
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("parse design: %w", err)
	}

	d := &Design{
		Constants: make(style.Constants, len(raw.Constants)),
		Styles:    make(map[string]StyleDef, len(raw.Styles)),
	}
	for name, v := range raw.Constants {
		value, err := style.FromAny(v)
		if err != nil {
			return nil, fmt.Errorf("constant %s: %w", name, err)
		}
		d.Constants[name] = value
	}
	for name, s := range raw.Styles {
		props, err := style.RecordFromAny(s.Props)
		if err != nil {
			return nil, fmt.Errorf("style %s: %w", name, err)
		}
		d.Styles[name] = StyleDef{s.Inherit, props}
	}
	if raw.Root != nil {
		ex := &expander{templates: raw.Templates}
		expanded, err := ex.expand(raw.Root)
		if err != nil {
			return nil, err
		}
		root, err := convertNode(expanded, "")
		if err != nil {
			return nil, err
		}
		d.Root = root
	}
	return d, nil
}

func convertNode(raw *rawNode, parentPath string) (*NodeSpec, error) {
	path := raw.ID
	if parentPath != "" {
		path = parentPath + "." + raw.ID
	}
	if raw.ID == "" {
		return nil, fmt.Errorf("node under %q has no id", parentPath)
	}
	kind := widget.Container
	if raw.Kind != "" {
		var err error
		kind, err = widget.ParseKind(raw.Kind)
		if err != nil {
			return nil, fmt.Errorf("node %s: %w", path, err)
		}
	}
	props, err := style.RecordFromAny(raw.Props)
	if err != nil {
		return nil, fmt.Errorf("node %s: props: %w", path, err)
	}
	spec := &NodeSpec{
		ID: raw.ID, Kind: kind, Style: raw.Style, Props: props, Items: raw.Items,
	}
	if raw.Text != nil {
		spec.Text = *raw.Text
	}
	if raw.Selected != nil {
		// A dropdown selects among its items, a slide deck among its children.
		n := len(raw.Children)
		if kind == widget.Dropdown {
			n = len(raw.Items)
		}
		spec.Selected = *raw.Selected
		if spec.Selected < 0 || spec.Selected >= n {
			return nil, fmt.Errorf("node %s: selected index %d out of range", path, spec.Selected)
		}
	}
	for _, rawChild := range raw.Children {
		child, err := convertNode(rawChild, path)
		if err != nil {
			return nil, err
		}
		spec.Children = append(spec.Children, child)
	}
	return spec, nil
}

// Overlay returns a new Design whose constants and styles are those of base,
// overridden by those of d. The root of d is kept.
func (d *Design) Overlay(base *Design) *Design {
	merged := &Design{
		Constants: make(style.Constants, len(base.Constants)+len(d.Constants)),
		Styles:    make(map[string]StyleDef, len(base.Styles)+len(d.Styles)),
		Root:      d.Root,
	}
	for name, v := range base.Constants {
		merged.Constants[name] = v
	}
	for name, v := range d.Constants {
		merged.Constants[name] = v
	}
	for name, s := range base.Styles {
		merged.Styles[name] = s
	}
	for name, s := range d.Styles {
		merged.Styles[name] = s
	}
	return merged
}
