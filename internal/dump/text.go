package dump

import (
	"fmt"
	"io"
	"text/tabwriter"
)

// WriteText prints snap as nested headings with one aligned grid per group.
func WriteText(w io.Writer, snap *Snapshot) error {
	ew := &errWriter{w: w}

	ew.printf("database %s (%s) created %s\n", snap.Name, snap.ID, snap.CreatedAt)
	ew.printf("types: %d, tables: %d\n", snap.NumTypes, snap.TotalTables)

	for _, typ := range snap.Types {
		ew.printf("\ntype %s (%d tables)\n", typ.Name, typ.NumTables)
		for _, p := range typ.Info {
			ew.printf("  info %v = %v\n", p.Key, p.Value)
		}

		for _, table := range typ.Tables {
			ew.printf("  table %s origin=%q columns=%d\n", table.Name, table.Origin, table.TotalColumns)
			for _, p := range table.Config {
				ew.printf("    config %v = %v\n", p.Key, p.Value)
			}

			for _, g := range table.Groups {
				ew.printf("    group %s (%d rows)\n", g.Name, len(g.Rows))
				printGroup(ew, g)
			}
		}
	}
	return ew.err
}

func printGroup(w io.Writer, g Group) {
	if len(g.Columns) == 0 {
		return
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	// Header with column types
	fmt.Fprint(tw, "      ")
	for i, col := range g.Columns {
		fmt.Fprintf(tw, "%s (%s)", col.Name, col.Type)
		if i < len(g.Columns)-1 {
			fmt.Fprint(tw, "\t")
		}
	}
	fmt.Fprintln(tw)

	// Separator
	fmt.Fprint(tw, "      ")
	for i := range g.Columns {
		fmt.Fprint(tw, "---")
		if i < len(g.Columns)-1 {
			fmt.Fprint(tw, "\t")
		}
	}
	fmt.Fprintln(tw)

	// Rows; positions a row predates print as "-"
	for _, row := range g.Rows {
		fmt.Fprint(tw, "      ")
		for i := range g.Columns {
			if i < len(row) {
				fmt.Fprintf(tw, "%v", row[i])
			} else {
				fmt.Fprint(tw, "-")
			}
			if i < len(g.Columns)-1 {
				fmt.Fprint(tw, "\t")
			}
		}
		fmt.Fprintln(tw)
	}
	tw.Flush()
}

// errWriter remembers the first write error and drops later writes.
type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) Write(p []byte) (int, error) {
	if e.err != nil {
		return 0, e.err
	}
	n, err := e.w.Write(p)
	e.err = err
	return n, err
}

func (e *errWriter) printf(format string, args ...interface{}) {
	fmt.Fprintf(e, format, args...)
}
