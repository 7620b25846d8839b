package main

import (
	"encoding/json"
	"fmt"
	"io"
	"reflect"

	"gopkg.in/yaml.v3"
)

// writeValue prints v in the requested format.
func writeValue(w io.Writer, format string, v any) error {
	switch format {
	case "json":
		data, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode JSON: %w", err)
		}
		_, err = fmt.Fprintln(w, string(data))
		return err

	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("failed to encode YAML: %w", err)
		}
		return enc.Close()

	case "text", "":
		return writeText(w, v)

	default:
		return fmt.Errorf("unknown format %q", format)
	}
}

// writeText prints one line per element for lists and a single line
// otherwise.
func writeText(w io.Writer, v any) error {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice {
		_, err := fmt.Fprintf(w, "%+v\n", v)
		return err
	}
	for i := 0; i < rv.Len(); i++ {
		if _, err := fmt.Fprintf(w, "%d: %+v\n", i, rv.Index(i).Interface()); err != nil {
			return err
		}
	}
	return nil
}
