package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"gopkg.in/yaml.v3"
)

var (
	benchHeader  = []string{"SIZE", "LIBRARY", "KERNEL", "NS/OP", "OPS/MS"}
	verifyHeader = []string{"SIZE", "KERNEL", "REF ERR", "ROUNDTRIP ERR", "OK"}
	infoHeader   = []string{"SIZE", "KERNEL", "REGISTRATIONS"}
)

// render writes rows in the format selected by --output. Table output
// goes through a tabwriter; json and yaml marshal the row slice as-is,
// so the struct tags define the machine-readable schema.
func render(w io.Writer, header []string, rows any) error {
	switch outputFormat {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")

		return enc.Encode(rows)

	case "yaml":
		return yaml.NewEncoder(w).Encode(rows)

	case "table":
		return renderTable(w, header, rows)

	default:
		return fmt.Errorf("unknown output format %q (want table, json or yaml)", outputFormat)
	}
}

func renderTable(w io.Writer, header []string, rows any) error {
	tw := tabwriter.NewWriter(w, 2, 4, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(header, "\t"))

	switch rs := rows.(type) {
	case []benchRow:
		for _, r := range rs {
			fmt.Fprintf(tw, "%d\t%s\t%s\t%.1f\t%.2f\n",
				r.Size, r.Library, r.Kernel, r.NsPerOp, r.OpsPerMs)
		}

	case []verifyRow:
		for _, r := range rs {
			fmt.Fprintf(tw, "%d\t%s\t%.3g\t%.3g\t%v\n",
				r.Size, r.Kernel, r.ReferenceErr, r.RoundTripErr, r.WithinBounds)
		}

	case []infoRow:
		for _, r := range rs {
			fmt.Fprintf(tw, "%d\t%s\t%d\n", r.Size, r.Kernel, r.Registrations)
		}

	default:
		return fmt.Errorf("no table layout for %T", rows)
	}

	return tw.Flush()
}
