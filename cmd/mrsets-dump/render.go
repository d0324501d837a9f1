package main

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/Velocidex/ordereddict"
	"github.com/davecgh/go-spew/spew"
	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"github.com/simonhull/statmeta"
)

// Output formats accepted by --format.
var formats = []string{"text", "json", "yaml", "spew"}

// mrSetEntry is the per-set record of the json and yaml outputs, keyed by
// set name in the enclosing mapping. A nil CountedValue means none.
type mrSetEntry struct {
	Type         string   `json:"type" yaml:"type"`
	IsDichotomy  bool     `json:"is_dichotomy" yaml:"is_dichotomy"`
	CountedValue *int     `json:"counted_value" yaml:"counted_value"`
	Label        string   `json:"label" yaml:"label"`
	VariableList []string `json:"variable_list" yaml:"variable_list"`
}

func newEntry(s statmeta.MRSet) mrSetEntry {
	e := mrSetEntry{
		Type:         s.Kind(),
		IsDichotomy:  s.IsDichotomy,
		Label:        s.Label,
		VariableList: s.Subvariables,
	}
	if v, ok := s.Counted(); ok {
		e.CountedValue = &v
	}
	if e.VariableList == nil {
		e.VariableList = []string{}
	}
	return e
}

// render writes sets to w in the named format.
func render(w io.Writer, format string, sets []statmeta.MRSet) error {
	switch format {
	case "text":
		_, err := io.WriteString(w, renderText(sets))
		return err
	case "json":
		return renderJSON(w, sets)
	case "yaml":
		return renderYAML(w, sets)
	case "spew":
		_, err := io.WriteString(w, spew.Sdump(sets))
		return err
	default:
		return fmt.Errorf("unknown format %q (available: %s)", format, strings.Join(formats, ", "))
	}
}

func renderText(sets []statmeta.MRSet) string {
	var b strings.Builder
	for i, s := range sets {
		if i > 0 {
			b.WriteByte('\n')
		}
		kind := "category"
		if s.IsDichotomy {
			kind = "dichotomy"
		}
		counted := "none"
		if v, ok := s.Counted(); ok {
			counted = fmt.Sprint(v)
		}

		fmt.Fprintf(&b, "%s (%s)\n", s.Name, kind)
		fmt.Fprintf(&b, "  label:         %q\n", s.Label)
		fmt.Fprintf(&b, "  counted value: %s\n", counted)
		fmt.Fprintf(&b, "  variables:     %s\n", strings.Join(s.Subvariables, " "))
	}
	return b.String()
}

// renderJSON writes a name-keyed object in input order.
func renderJSON(w io.Writer, sets []statmeta.MRSet) error {
	dict := ordereddict.NewDict()
	for _, s := range sets {
		dict.Set(s.Name, newEntry(s))
	}

	data, err := json.MarshalIndent(dict, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}
	_, err = w.Write(append(data, '\n'))
	return err
}

// renderYAML writes a name-keyed mapping in input order.
func renderYAML(w io.Writer, sets []statmeta.MRSet) error {
	root := &yaml.Node{Kind: yaml.MappingNode}
	for _, s := range sets {
		var value yaml.Node
		if err := value.Encode(newEntry(s)); err != nil {
			return fmt.Errorf("encode %s: %w", s.Name, err)
		}
		root.Content = append(root.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: s.Name},
			&value,
		)
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(root); err != nil {
		return fmt.Errorf("marshal yaml: %w", err)
	}
	return enc.Close()
}

func validFormat(format string) bool {
	return slices.Contains(formats, format)
}
