// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package history

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"go.yaml.in/yaml/v3"
)

// Format selects the rendering used by Write.
type Format string

const (
	FormatTable Format = "table"
	FormatJSON  Format = "json"
	FormatYAML  Format = "yaml"
)

// Write lists runs matching opts to w in the given format.
func (s *Store) Write(ctx context.Context, w io.Writer, format Format, opts QueryOptions) error {
	records, err := s.List(ctx, opts)
	if err != nil {
		return err
	}

	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(records); err != nil {
			return fmt.Errorf("marshaling JSON: %w", err)
		}
		return nil
	case FormatYAML:
		data, err := yaml.Marshal(records)
		if err != nil {
			return fmt.Errorf("marshaling YAML: %w", err)
		}
		_, err = w.Write(data)
		return err
	case FormatTable, "":
		if len(records) == 0 {
			fmt.Fprintln(w, "No articles recorded yet.")
			return nil
		}
		tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "ID\tCREATED\tTITLE\tSECTIONS\tPATH")
		for _, r := range records {
			fmt.Fprintf(tw, "%d\t%s\t%s\t%d\t%s\n", r.ID, r.CreatedAt.Local().Format("2006-01-02 15:04"), r.Title, r.Sections, r.Path)
		}
		return tw.Flush()
	default:
		return fmt.Errorf("unknown format %q (want table, json or yaml)", format)
	}
}
