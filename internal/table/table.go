// Package table holds the in-memory model shared by the loader and the merge
// engine: cell values, grids and tables with positional column identifiers.
package table

import (
	"fmt"
	"strings"
)

// Column identifies a column of a Table. A Column is only meaningful once it
// has been resolved against a table with Lookup.
type Column string

func (c Column) String() string {
	return string(c)
}

// Table is a rectangular grid with one unique identifier per column
type Table struct {
	columns []Column
	index   map[Column]int
	rows    Grid
}

// New builds a table from explicit columns and rows. Every row must have
// exactly one value per column and identifiers must be unique.
func New(columns []Column, rows Grid) (*Table, error) {
	index := make(map[Column]int, len(columns))
	for i, c := range columns {
		if strings.TrimSpace(string(c)) == "" {
			return nil, fmt.Errorf("column %d has an empty identifier", i)
		}
		if _, dup := index[c]; dup {
			return nil, fmt.Errorf("duplicate column identifier %q", c)
		}
		index[c] = i
	}
	for r, row := range rows {
		if len(row) != len(columns) {
			return nil, fmt.Errorf("row %d has %d values, expected %d", r, len(row), len(columns))
		}
	}

	return &Table{
		columns: append([]Column(nil), columns...),
		index:   index,
		rows:    rows,
	}, nil
}

// FromGrid compacts the grid and names the surviving columns positionally
func FromGrid(g Grid) *Table {
	compact := g.Compact()
	t, err := New(PositionalColumns(compact.Width()), compact)
	if err != nil {
		// Compact output is rectangular and positional names are unique.
		panic(err)
	}
	return t
}

// Columns returns the identifiers in order
func (t *Table) Columns() []Column {
	return append([]Column(nil), t.columns...)
}

// Width returns the number of columns
func (t *Table) Width() int {
	return len(t.columns)
}

// Len returns the number of rows
func (t *Table) Len() int {
	return len(t.rows)
}

// Lookup resolves a column identifier to its position
func (t *Table) Lookup(c Column) (int, bool) {
	i, ok := t.index[c]
	return i, ok
}

// Has reports whether the column exists
func (t *Table) Has(c Column) bool {
	_, ok := t.index[c]
	return ok
}

// Row returns a copy of row i
func (t *Table) Row(i int) []Value {
	return append([]Value(nil), t.rows[i]...)
}

// Cell returns the value at row i of column c
func (t *Table) Cell(i int, c Column) (Value, bool) {
	col, ok := t.index[c]
	if !ok || i < 0 || i >= len(t.rows) {
		return Value{}, false
	}
	return t.rows[i][col], true
}

// ColumnValues returns a copy of every value of column c
func (t *Table) ColumnValues(c Column) ([]Value, bool) {
	col, ok := t.index[c]
	if !ok {
		return nil, false
	}
	values := make([]Value, len(t.rows))
	for i, row := range t.rows {
		values[i] = row[col]
	}
	return values, true
}

// Head returns a new table with at most the first n rows
func (t *Table) Head(n int) *Table {
	if n < 0 || n > len(t.rows) {
		n = len(t.rows)
	}
	rows := make(Grid, n)
	for i := range rows {
		rows[i] = t.Row(i)
	}
	return &Table{columns: t.Columns(), index: t.index, rows: rows}
}

// Grid returns a deep copy of the rows
func (t *Table) Grid() Grid {
	out := make(Grid, len(t.rows))
	for i := range t.rows {
		out[i] = t.Row(i)
	}
	return out
}
