package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/tidwall/gjson"
)

// readValuesFile reads a values document from path, or from stdin for "-".
func readValuesFile(path string, stdin io.Reader) ([]byte, error) {
	if path == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("failed to read values from stdin: %w", err)
		}
		return data, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read values file: %w", err)
	}
	return data, nil
}

// parseValues extracts setting values from a JSON document. Accepted shapes:
//
//	{"MaxHeapSize": 4}                                  flat
//	{"settings": {"MaxHeapSize": {"value": 4}}}         driver
//	{"application": {"components": {"<c>": <driver>}}}  application
//
// For the application shape, component selects the entry; it may be empty
// when there is exactly one.
func parseValues(data []byte, component string) (map[string]any, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("values are not valid JSON")
	}
	root := gjson.ParseBytes(data)
	if !root.IsObject() {
		return nil, fmt.Errorf("values must be a JSON object")
	}

	if components := root.Get("application.components"); components.Exists() {
		selected, err := selectComponent(components, component)
		if err != nil {
			return nil, err
		}
		root = selected
	} else if component != "" {
		return nil, fmt.Errorf("--component %q given but values have no application.components", component)
	}

	values := make(map[string]any)

	if settings := root.Get("settings"); settings.IsObject() {
		var err error
		settings.ForEach(func(name, entry gjson.Result) bool {
			value := entry.Get("value")
			if !entry.IsObject() || !value.Exists() {
				err = fmt.Errorf("setting %q has no \"value\" entry", name.String())
				return false
			}
			values[name.String()] = jsonValue(value)
			return true
		})
		if err != nil {
			return nil, err
		}
		return values, nil
	}

	root.ForEach(func(name, value gjson.Result) bool {
		values[name.String()] = jsonValue(value)
		return true
	})
	return values, nil
}

func selectComponent(components gjson.Result, component string) (gjson.Result, error) {
	if !components.IsObject() {
		return gjson.Result{}, fmt.Errorf("application.components must be an object")
	}
	if component != "" {
		selected := components.Get(gjson.Escape(component))
		if !selected.Exists() {
			return gjson.Result{}, fmt.Errorf("component %q not found in values", component)
		}
		return selected, nil
	}

	var names []string
	var only gjson.Result
	components.ForEach(func(name, value gjson.Result) bool {
		names = append(names, name.String())
		only = value
		return true
	})
	if len(names) != 1 {
		return gjson.Result{}, fmt.Errorf("values define components %s, select one with --component", strings.Join(names, ", "))
	}
	return only, nil
}

// jsonValue converts a gjson result into the Go value a setting validates.
// Strings stay strings so that "1" is reported as a type error.
func jsonValue(r gjson.Result) any {
	switch r.Type {
	case gjson.Null:
		return nil
	case gjson.Number:
		return r.Float()
	case gjson.String:
		return r.String()
	case gjson.True, gjson.False:
		return r.Bool()
	default:
		return r.Value()
	}
}

// parseSetFlag parses one --set NAME=VALUE. VALUE is read as a JSON literal,
// so "4" is a number and "\"4\"" a string.
func parseSetFlag(assignment string) (string, any, error) {
	name, text, ok := strings.Cut(assignment, "=")
	name = strings.TrimSpace(name)
	if !ok || name == "" {
		return "", nil, fmt.Errorf("invalid --set %q, want NAME=VALUE", assignment)
	}
	text = strings.TrimSpace(text)
	if !gjson.Valid(text) {
		// bare words are kept as strings and rejected by the setting
		return name, text, nil
	}
	return name, jsonValue(gjson.Parse(text)), nil
}
