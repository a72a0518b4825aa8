package input

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// ParseScript parses a YAML list of events. Each item is a mapping with a
// single key naming the event:
//
//	- click: ui.body.ButtonView.button1   # move, down and up over a node
//	- move: ui.body.ButtonView.button1
//	- down: ui.body.ButtonView.button1
//	- up: ""
//	- key: Enter                          # key down and up
//	- key-down: Ctrl-x
//	- key-up: Ctrl-x
//	- text: hello
//	- type: hello                         # text followed by Enter
//	- resize: [1280, 1080]
//	- pick: {target: ui.my_dropdown.dropdown, index: 2}
func ParseScript(src []byte) ([]Event, error) {
	steps, err := ParseSteps(src)
	if err != nil {
		return nil, err
	}
	var events []Event
	for _, step := range steps {
		events = append(events, step.Events...)
	}
	return events, nil
}

// Step is one item of a script.
type Step struct {
	// Short description of the item, such as "click button1".
	Desc   string
	Events []Event
}

// ParseSteps is like ParseScript, but keeps the events of each item together.
func ParseSteps(src []byte) ([]Step, error) {
	var items []map[string]yaml.Node
	if err := yaml.Unmarshal(src, &items); err != nil {
		return nil, fmt.Errorf("parse script: %w", err)
	}
	steps := make([]Step, 0, len(items))
	for i, item := range items {
		if len(item) != 1 {
			return nil, fmt.Errorf("script item %d: want exactly one key, got %d", i, len(item))
		}
		for name, node := range item {
			evs, err := parseScriptItem(name, &node)
			if err != nil {
				return nil, fmt.Errorf("script item %d (line %d): %w", i, node.Line, err)
			}
			desc := name
			if node.Kind == yaml.ScalarNode {
				desc += " " + node.Value
			} else {
				desc += fmt.Sprint(" ", evs)
			}
			steps = append(steps, Step{desc, evs})
		}
	}
	return steps, nil
}

func parseScriptItem(name string, node *yaml.Node) ([]Event, error) {
	switch name {
	case "click", "move", "down", "up", "text", "type":
		var s string
		if err := node.Decode(&s); err != nil {
			return nil, err
		}
		switch name {
		case "click":
			return Click(s), nil
		case "move":
			return []Event{PointerMove{s}}, nil
		case "down":
			return []Event{PointerDown{s}}, nil
		case "up":
			return []Event{PointerUp{s}}, nil
		case "text":
			return []Event{Text{s}}, nil
		default:
			return Type(s), nil
		}
	case "key", "key-down", "key-up":
		var s string
		if err := node.Decode(&s); err != nil {
			return nil, err
		}
		k, err := ParseKey(s)
		if err != nil {
			return nil, err
		}
		switch name {
		case "key-down":
			return []Event{KeyDown{k}}, nil
		case "key-up":
			return []Event{KeyUp{k}}, nil
		default:
			return []Event{KeyDown{k}, KeyUp{k}}, nil
		}
	case "resize":
		var size []int
		if err := node.Decode(&size); err != nil {
			return nil, err
		}
		if len(size) != 2 {
			return nil, fmt.Errorf("resize wants [width, height]")
		}
		return []Event{Resize{size[0], size[1]}}, nil
	case "pick":
		var pick struct {
			Target string `yaml:"target"`
			Index  int    `yaml:"index"`
		}
		if err := node.Decode(&pick); err != nil {
			return nil, err
		}
		return []Event{MenuPick{pick.Target, pick.Index}}, nil
	}
	return nil, fmt.Errorf("unknown event %q", name)
}
