package main

import (
	"fmt"
	"io"
	"sheetMerge/internal/mapping"
	"sheetMerge/internal/table"

	prettytable "github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// renderTable prints the rows of t with its positional column names as the
// header. total is the row count of the full table t was cut from.
func renderTable(w io.Writer, t *table.Table, total int) {
	if t.Width() == 0 || t.Len() == 0 {
		_, _ = fmt.Fprintln(w, "(0 rows)")
		return
	}

	tw := newWriter(w)

	header := make(prettytable.Row, t.Width())
	for i, c := range t.Columns() {
		header[i] = c.String()
	}
	tw.AppendHeader(header)

	for i := 0; i < t.Len(); i++ {
		values := t.Row(i)
		row := make(prettytable.Row, len(values))
		for j, v := range values {
			row[j] = v.String()
		}
		tw.AppendRow(row)
	}

	tw.Render()

	if total > t.Len() {
		_, _ = fmt.Fprintf(w, "(%d of %d rows)\n", t.Len(), total)
	} else {
		_, _ = fmt.Fprintf(w, "(%d rows)\n", total)
	}
}

func renderProfiles(w io.Writer, profiles []table.ColumnProfile) {
	if len(profiles) == 0 {
		_, _ = fmt.Fprintln(w, "(no columns)")
		return
	}

	tw := newWriter(w)
	tw.AppendHeader(prettytable.Row{"Column", "Filled", "Distinct", "Samples"})

	for _, p := range profiles {
		tw.AppendRow(prettytable.Row{p.Column.String(), p.NonEmpty, p.Distinct, p.Hint()})
	}
	tw.Render()
}

func renderSuggestions(w io.Writer, suggestions []mapping.KeySuggestion) {
	if len(suggestions) == 0 {
		_, _ = fmt.Fprintln(w, "No confident key match found")
		return
	}

	tw := newWriter(w)
	tw.AppendHeader(prettytable.Row{"Source key", "Target key", "Confidence"})

	for _, s := range suggestions {
		tw.AppendRow(prettytable.Row{s.SourceKey.String(), s.TargetKey.String(), fmt.Sprintf("%.2f", s.Confidence)})
	}
	tw.Render()
}

// newWriter returns a light table writer that prints headers verbatim, so
// column identifiers shown to the user can be passed back to merge as is
func newWriter(w io.Writer) prettytable.Writer {
	tw := prettytable.NewWriter()
	tw.SetOutputMirror(w)
	tw.SetStyle(prettytable.StyleLight)
	tw.Style().Format.Header = text.FormatDefault
	return tw
}
