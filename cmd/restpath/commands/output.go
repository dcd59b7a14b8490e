package commands

import (
	"fmt"
	"io"
	"sort"

	json "github.com/goccy/go-json"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cast"
	"gopkg.in/yaml.v3"

	"github.com/kroma-labs/restpath"
)

const (
	outputJSON  = "json"
	outputYAML  = "yaml"
	outputTable = "table"
)

// render writes a decoded response in the chosen format. Tables show one
// row per array element, or key/value rows for a single object.
func render(w io.Writer, format string, data any) error {
	switch format {
	case outputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(data)
	case outputYAML:
		enc := yaml.NewEncoder(w)
		defer enc.Close()
		return enc.Encode(plain(data))
	case outputTable:
		return renderTable(w, data)
	default:
		return fmt.Errorf("unknown output %q", format)
	}
}

func renderTable(w io.Writer, data any) error {
	table := tablewriter.NewWriter(w)

	switch v := data.(type) {
	case []any:
		columns := columnsOf(v)
		header := make([]any, len(columns))
		for i, c := range columns {
			header[i] = c
		}
		table.Header(header...)
		for _, item := range v {
			obj, _ := item.(restpath.Object)
			row := make([]string, len(columns))
			for i, c := range columns {
				row[i] = cell(obj[c])
			}
			_ = table.Append(row)
		}
	case restpath.Object:
		table.Header("Key", "Value")
		for _, k := range sortedKeys(v) {
			_ = table.Append([]string{k, cell(v[k])})
		}
	default:
		table.Header("Value")
		_ = table.Append([]string{cell(v)})
	}

	return table.Render()
}

// columnsOf returns the sorted union of keys over the objects in items.
func columnsOf(items []any) []string {
	seen := make(map[string]struct{})
	for _, item := range items {
		if obj, ok := item.(restpath.Object); ok {
			for k := range obj {
				seen[k] = struct{}{}
			}
		}
	}
	cols := make([]string, 0, len(seen))
	for k := range seen {
		cols = append(cols, k)
	}
	sort.Strings(cols)
	return cols
}

func sortedKeys(obj restpath.Object) []string {
	keys := make([]string, 0, len(obj))
	for k := range obj {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// cell flattens nested values to compact JSON.
func cell(v any) string {
	switch v.(type) {
	case restpath.Object, []any:
		b, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprint(v)
		}
		return string(b)
	case nil:
		return ""
	}
	return cast.ToString(v)
}

// plain converts a decoded tree to YAML-friendly values: Objects become
// maps and json.Numbers become int64 or float64.
func plain(v any) any {
	switch t := v.(type) {
	case restpath.Object:
		m := make(map[string]any, len(t))
		for k, child := range t {
			m[k] = plain(child)
		}
		return m
	case []any:
		out := make([]any, len(t))
		for i, child := range t {
			out[i] = plain(child)
		}
		return out
	case json.Number:
		if n, err := t.Int64(); err == nil {
			return n
		}
		if f, err := t.Float64(); err == nil {
			return f
		}
		return t.String()
	default:
		return v
	}
}
