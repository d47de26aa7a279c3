// Package taskfile reads task lists from YAML or JSON documents.
//
// Accepted shapes, optionally found under a gjson path:
//
//	[{task: "Task 1", p1: 3, p2: 5}, ...]
//	[[3, 5], [6, 2], ...]
//	{tasks: [...]}
//	{p1: [3, 6, ...], p2: [5, 2, ...]}
package taskfile

import (
	"fmt"
	"os"

	"github.com/tidwall/gjson"
	"sigs.k8s.io/yaml"

	"johnsonShop/internal/flowshop"
)

// Load reads path and parses it with Parse.
func Load(path, selectPath string) (*flowshop.Instance, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read task file: %w", err)
	}
	inst, err := Parse(data, selectPath)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return inst, nil
}

// Parse decodes a task list. Negative times are kept; Instance.Validate rejects them.
func Parse(data []byte, selectPath string) (*flowshop.Instance, error) {
	js, err := yaml.YAMLToJSON(data)
	if err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	root := gjson.ParseBytes(js)
	if selectPath != "" {
		root = root.Get(selectPath)
		if !root.Exists() {
			return nil, fmt.Errorf("path %q not found", selectPath)
		}
	}

	switch {
	case root.IsArray():
		return parseRows(root)
	case root.Get("tasks").IsArray():
		return parseRows(root.Get("tasks"))
	case root.Get("p1").IsArray() && root.Get("p2").IsArray():
		return parseColumns(root.Get("p1"), root.Get("p2"))
	default:
		return nil, fmt.Errorf("expected a list of tasks, {tasks: [...]} or {p1: [...], p2: [...]}")
	}
}

func parseRows(list gjson.Result) (*flowshop.Instance, error) {
	rows := list.Array()
	tasks := make([]flowshop.Task, 0, len(rows))
	for i, row := range rows {
		var p1, p2, label gjson.Result
		switch {
		case row.IsArray():
			cols := row.Array()
			if len(cols) != 2 {
				return nil, fmt.Errorf("row %d: want [p1, p2], got %d values", i+1, len(cols))
			}
			p1, p2 = cols[0], cols[1]
		case row.IsObject():
			p1, p2 = row.Get("p1"), row.Get("p2")
			label = row.Get("task")
			if !label.Exists() {
				label = row.Get("label")
			}
		default:
			return nil, fmt.Errorf("row %d: want an object or a [p1, p2] pair", i+1)
		}

		t := flowshop.Task{Label: label.String()}
		if t.Label == "" {
			t.Label = flowshop.DefaultLabel(i)
		}
		var err error
		if t.P1, err = number(p1, i, "p1"); err != nil {
			return nil, err
		}
		if t.P2, err = number(p2, i, "p2"); err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	return &flowshop.Instance{Tasks: tasks}, nil
}

func parseColumns(c1, c2 gjson.Result) (*flowshop.Instance, error) {
	a1, a2 := c1.Array(), c2.Array()
	if len(a1) != len(a2) {
		return nil, fmt.Errorf("p1 and p2 must have the same length (got %d and %d)", len(a1), len(a2))
	}
	tasks := make([]flowshop.Task, len(a1))
	for i := range a1 {
		t := flowshop.Task{Label: flowshop.DefaultLabel(i)}
		var err error
		if t.P1, err = number(a1[i], i, "p1"); err != nil {
			return nil, err
		}
		if t.P2, err = number(a2[i], i, "p2"); err != nil {
			return nil, err
		}
		tasks[i] = t
	}
	return &flowshop.Instance{Tasks: tasks}, nil
}

func number(v gjson.Result, row int, field string) (float64, error) {
	if v.Type != gjson.Number {
		return 0, fmt.Errorf("row %d: %s must be a number (got %q)", row+1, field, v.Raw)
	}
	return v.Float(), nil
}
