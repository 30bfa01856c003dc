package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/greenlyst/greenmoney/pkg/transport"
)

const (
	formatMap       = "map"
	formatDelimited = "delimited"
)

// printResult writes result in schema order, one name and value per line
// or joined back into a single delimited line.
func printResult(w io.Writer, format, delimiter string, schema transport.Schema, result transport.Result) error {
	switch format {
	case formatDelimited:
		_, err := fmt.Fprintln(w, transport.Format(result, schema, delimiter))
		return err
	case formatMap:
		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		for _, name := range schema {
			fmt.Fprintf(tw, "%s\t%s\n", name, result.Get(name))
		}
		return tw.Flush()
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}
