package design

import (
	"fmt"
	"strings"
)

// UnknownTemplate is returned when a node uses a template that is not
// defined.
type UnknownTemplate struct {
	Name string
}

func (e *UnknownTemplate) Error() string { return "unknown template " + e.Name }

// TemplateCycle is returned when templates use each other in a cycle.
type TemplateCycle struct {
	Names []string
}

func (e *TemplateCycle) Error() string {
	return "template cycle: " + strings.Join(e.Names, " -> ")
}

// Expands template references in raw nodes.
//
// A node that uses a template starts as a copy of the template, and each field
// the node sets replaces that of the template. Props are merged key by key.
// Children of the node whose id matches a child of the template refine that
// child in the same way; other children are appended after those of the
// template.
type expander struct {
	templates map[string]*rawNode
	stack     []string
}

func (ex *expander) expand(n *rawNode) (*rawNode, error) {
	out := *n
	out.Use = ""
	out.Children = make([]*rawNode, len(n.Children))
	for i, child := range n.Children {
		expanded, err := ex.expand(child)
		if err != nil {
			return nil, err
		}
		out.Children[i] = expanded
	}
	if n.Use == "" {
		return &out, nil
	}

	for i, visiting := range ex.stack {
		if visiting == n.Use {
			cycle := append(append([]string(nil), ex.stack[i:]...), n.Use)
			return nil, &TemplateCycle{cycle}
		}
	}
	t, ok := ex.templates[n.Use]
	if !ok {
		return nil, fmt.Errorf("node %s: %w", n.ID, &UnknownTemplate{n.Use})
	}
	ex.stack = append(ex.stack, n.Use)
	base, err := ex.expand(t)
	ex.stack = ex.stack[:len(ex.stack)-1]
	if err != nil {
		return nil, err
	}
	if base.ID == "" {
		base.ID = n.Use
	}
	return refine(base, &out), nil
}

func refine(base, over *rawNode) *rawNode {
	out := *base
	if over.ID != "" {
		out.ID = over.ID
	}
	if over.Kind != "" {
		out.Kind = over.Kind
	}
	if over.Style != "" {
		out.Style = over.Style
	}
	if over.Text != nil {
		out.Text = over.Text
	}
	if over.Items != nil {
		out.Items = over.Items
	}
	if over.Selected != nil {
		out.Selected = over.Selected
	}
	out.Props = mergeProps(base.Props, over.Props)

	overByID := make(map[string]*rawNode, len(over.Children))
	for _, child := range over.Children {
		overByID[child.ID] = child
	}
	out.Children = nil
	for _, child := range base.Children {
		if o, ok := overByID[child.ID]; ok {
			child = refine(child, o)
			delete(overByID, o.ID)
		}
		out.Children = append(out.Children, child)
	}
	for _, child := range over.Children {
		if _, ok := overByID[child.ID]; ok {
			out.Children = append(out.Children, child)
		}
	}
	return &out
}

func mergeProps(base, over map[string]any) map[string]any {
	if base == nil && over == nil {
		return nil
	}
	out := make(map[string]any, len(base)+len(over))
	for k, v := range base {
		out[k] = v
	}
	for k, v := range over {
		bm, ok1 := out[k].(map[string]any)
		om, ok2 := v.(map[string]any)
		if ok1 && ok2 {
			out[k] = mergeProps(bm, om)
		} else {
			out[k] = v
		}
	}
	return out
}
