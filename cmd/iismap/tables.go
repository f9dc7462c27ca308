package main

import (
	"context"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"iismap/internal/tables"
)

func runTables(_ context.Context, args []string, stdout, stderr io.Writer) error {
	fs := newFlagSet("tables", stderr)
	flTable := fs.String("table", "", "print only this table")

	if err := parse(fs, args); err != nil {
		return err
	}

	defs := tables.Definitions()

	if *flTable != "" {
		def := tables.DefinitionNamed(*flTable)
		if def == nil {
			return fmt.Errorf("%w: %s", tables.ErrUnknownTable, *flTable)
		}

		defs = []*tables.Definition{def}
	}

	tw := tabwriter.NewWriter(stdout, 0, 4, 2, ' ', 0)

	for i, def := range defs {
		if i > 0 {
			fmt.Fprintln(tw)
		}

		fmt.Fprintf(tw, "%s\n", def.Name)

		for _, c := range def.Columns {
			var notes []string
			if c.Key {
				notes = append(notes, "key")
			}

			if c.Nullable {
				notes = append(notes, "nullable")
			}

			if c.Ref != "" {
				notes = append(notes, "-> "+c.Ref)
			}

			fmt.Fprintf(tw, "  %s\t%s\t%s\n", c.Name, c.Type, strings.Join(notes, " "))
		}
	}

	return tw.Flush()
}
