package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

const (
	outputText = "text"
	outputJSON = "json"
	outputYAML = "yaml"
)

// textWriter aligns text output in columns.
type textWriter struct {
	w io.Writer
}

// row writes one tab separated line.
func (w *textWriter) row(cols ...any) {
	parts := make([]string, len(cols))
	for i, col := range cols {
		parts[i] = fmt.Sprint(col)
	}
	fmt.Fprintln(w.w, strings.Join(parts, "\t"))
}

// raw writes s unchanged.
func (w *textWriter) raw(s string) {
	fmt.Fprint(w.w, s)
}

// print writes v in the configured output format. Text output is produced by the text callback.
func (c *cli) print(cmd *cobra.Command, v any, text func(w *textWriter)) error {
	out := cmd.OutOrStdout()

	switch format := c.v.GetString(cfgKeyOutput); format {
	case outputJSON:
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case outputYAML:
		enc := yaml.NewEncoder(out)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	case outputText, "":
		tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
		text(&textWriter{w: tw})
		return tw.Flush()
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}
