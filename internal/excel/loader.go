package excel

import (
	"sheetMerge/internal/table"
)

// Load reads the active sheet of the workbook at path into a clean table.
// Merged ranges are flattened onto every cell they cover, rows and columns
// that are entirely empty are dropped, and the remaining columns are named
// col_0, col_1, ... in order.
func Load(path string, opts ...Option) (*table.Table, error) {
	o := buildOptions(opts)

	editor, err := OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer editor.Close()

	sheet := editor.ActiveSheet()
	raw, err := editor.ReadGrid(sheet)
	if err != nil {
		return nil, &FormatError{Path: path, Err: err}
	}

	regions, err := editor.MergedRegions(sheet)
	if err != nil {
		return nil, &FormatError{Path: path, Err: err}
	}

	grid := boundingGrid(raw, regions)
	grid.FillRegions(regions)
	t := table.FromGrid(grid)

	o.logger.Info("Loaded workbook",
		"path", path,
		"sheet", sheet,
		"raw_rows", len(grid),
		"raw_columns", grid.Width(),
		"merged_regions", len(regions),
		"rows", t.Len(),
		"columns", t.Width())
	o.logger.Debug("Detected columns", "path", path, "columns", t.Columns())

	return t, nil
}

// boundingGrid copies the ragged sheet rows into a rectangle large enough to
// hold every used cell and every merged region
func boundingGrid(raw table.Grid, regions []table.Region) table.Grid {
	rows, cols := len(raw), raw.Width()
	for _, r := range regions {
		if r.Bottom+1 > rows {
			rows = r.Bottom + 1
		}
		if r.Right+1 > cols {
			cols = r.Right + 1
		}
	}

	grid := table.NewGrid(rows, cols)
	for r, row := range raw {
		copy(grid[r], row)
	}
	return grid
}
