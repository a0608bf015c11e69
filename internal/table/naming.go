package table

import "fmt"

// ColumnPrefix is the stem of every positional column identifier
const ColumnPrefix = "col_"

// PositionalColumns names n columns col_0 .. col_{n-1}
func PositionalColumns(n int) []Column {
	names := make([]string, n)
	for i := range names {
		names[i] = fmt.Sprintf("%s%d", ColumnPrefix, i)
	}
	return UniqueColumns(names)
}

// UniqueColumns turns base names into pairwise distinct identifiers. The
// first occurrence of a name keeps it; later ones get _1, _2, ... in the order
// they are met, skipping any suffix that is already taken.
func UniqueColumns(names []string) []Column {
	taken := make(map[string]bool, len(names))
	next := make(map[string]int, len(names))
	out := make([]Column, len(names))

	for i, base := range names {
		name := base
		for taken[name] {
			next[base]++
			name = fmt.Sprintf("%s_%d", base, next[base])
		}
		taken[name] = true
		out[i] = Column(name)
	}
	return out
}
