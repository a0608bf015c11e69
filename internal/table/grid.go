package table

import "fmt"

// Grid is a row-major matrix of cell values
type Grid [][]Value

// NewGrid allocates a rows x cols grid of empty values
func NewGrid(rows, cols int) Grid {
	g := make(Grid, rows)
	for r := range g {
		g[r] = make([]Value, cols)
	}
	return g
}

// Width returns the widest row length
func (g Grid) Width() int {
	width := 0
	for _, row := range g {
		if len(row) > width {
			width = len(row)
		}
	}
	return width
}

// Region is an inclusive, 0-based rectangle of cells such as a merged range
type Region struct {
	Top, Left     int
	Bottom, Right int
}

func (r Region) String() string {
	return fmt.Sprintf("(%d,%d)-(%d,%d)", r.Top, r.Left, r.Bottom, r.Right)
}

// Contains reports whether the cell at row, col lies inside the region
func (r Region) Contains(row, col int) bool {
	return row >= r.Top && row <= r.Bottom && col >= r.Left && col <= r.Right
}

// FillRegions copies the top-left value of every region over the rest of the
// region. Regions are opaque: whatever else was stored inside is overwritten.
// Cells of a region that fall outside the grid are ignored.
func (g Grid) FillRegions(regions []Region) {
	for _, region := range regions {
		if region.Top < 0 || region.Left < 0 || region.Top >= len(g) || region.Left >= len(g[region.Top]) {
			continue
		}
		origin := g[region.Top][region.Left]
		for r := region.Top; r <= region.Bottom && r < len(g); r++ {
			for c := region.Left; c <= region.Right && c < len(g[r]); c++ {
				g[r][c] = origin
			}
		}
	}
}

// Compact returns a rectangular copy of the grid without the rows and columns
// whose cells are all missing. Relative order of the survivors is kept.
func (g Grid) Compact() Grid {
	width := g.Width()

	keepCols := make([]bool, width)
	var keepRows []int
	for r, row := range g {
		rowUsed := false
		for c, v := range row {
			if !v.IsEmpty() {
				rowUsed = true
				keepCols[c] = true
			}
		}
		if rowUsed {
			keepRows = append(keepRows, r)
		}
	}

	var cols []int
	for c, keep := range keepCols {
		if keep {
			cols = append(cols, c)
		}
	}

	out := NewGrid(len(keepRows), len(cols))
	for i, r := range keepRows {
		row := g[r]
		for j, c := range cols {
			if c < len(row) {
				out[i][j] = row[c]
			}
		}
	}
	return out
}
