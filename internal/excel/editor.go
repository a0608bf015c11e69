package excel

import (
	"fmt"
	"io"

	"sheetMerge/internal/table"

	"github.com/xuri/excelize/v2"
)

type Editor struct {
	file     *excelize.File
	filepath string
}

// OpenFile opens an existing Excel file
func OpenFile(filepath string) (*Editor, error) {
	file, err := excelize.OpenFile(filepath)
	if err != nil {
		return nil, &FormatError{Path: filepath, Err: err}
	}
	return &Editor{
		file:     file,
		filepath: filepath,
	}, nil
}

// CreateNewFile creates a new Excel file in memory
func CreateNewFile() *Editor {
	file := excelize.NewFile()
	return &Editor{
		file:     file,
		filepath: "",
	}
}

// ActiveSheet returns the name of the sheet that opens first in Excel
func (e *Editor) ActiveSheet() string {
	return e.file.GetSheetName(e.file.GetActiveSheetIndex())
}

// GetSheetNames returns all sheet names in the workbook
func (e *Editor) GetSheetNames() []string {
	return e.file.GetSheetList()
}

// ReadGrid reads the used cells of a sheet. Values are the cached results as
// stored in the file, so formula cells give their last computed value.
// Rows are returned ragged: trailing blanks are not materialized.
func (e *Editor) ReadGrid(sheet string) (table.Grid, error) {
	rows, err := e.file.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("failed to get rows: %w", err)
	}

	grid := make(table.Grid, len(rows))
	for r, row := range rows {
		grid[r] = make([]table.Value, len(row))
		for c, raw := range row {
			if raw == "" {
				continue
			}
			v, err := e.cellValue(sheet, r, c, raw)
			if err != nil {
				return nil, err
			}
			grid[r][c] = v
		}
	}
	return grid, nil
}

// cellValue types a raw cell string using the cell's stored type
func (e *Editor) cellValue(sheet string, row, col int, raw string) (table.Value, error) {
	cell, err := excelize.CoordinatesToCellName(col+1, row+1)
	if err != nil {
		return table.Value{}, err
	}

	cellType, err := e.file.GetCellType(sheet, cell)
	if err != nil {
		return table.Value{}, fmt.Errorf("failed to get type of %s: %w", cell, err)
	}

	switch cellType {
	case excelize.CellTypeBool:
		if raw == "1" || raw == "TRUE" {
			return table.Text("TRUE"), nil
		}
		return table.Text("FALSE"), nil
	case excelize.CellTypeNumber, excelize.CellTypeUnset:
		// numbers carry no type attribute, neither do numeric formula results
		return table.ParseValue(raw, true), nil
	default:
		return table.Text(raw), nil
	}
}

// MergedRegions lists the merged ranges of a sheet as 0-based regions
func (e *Editor) MergedRegions(sheet string) ([]table.Region, error) {
	merged, err := e.file.GetMergeCells(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to get merged cells: %w", err)
	}

	regions := make([]table.Region, 0, len(merged))
	for _, m := range merged {
		left, top, err := excelize.CellNameToCoordinates(m.GetStartAxis())
		if err != nil {
			return nil, fmt.Errorf("bad merge start %q: %w", m.GetStartAxis(), err)
		}
		right, bottom, err := excelize.CellNameToCoordinates(m.GetEndAxis())
		if err != nil {
			return nil, fmt.Errorf("bad merge end %q: %w", m.GetEndAxis(), err)
		}
		regions = append(regions, table.Region{
			Top:    top - 1,
			Left:   left - 1,
			Bottom: bottom - 1,
			Right:  right - 1,
		})
	}
	return regions, nil
}

// SetRow writes values into a 0-based row starting at column A. Empty values
// leave the cell untouched, numbers are stored as numbers.
func (e *Editor) SetRow(sheet string, row int, values []table.Value) error {
	for c, v := range values {
		if v.IsEmpty() {
			continue
		}
		cell, err := excelize.CoordinatesToCellName(c+1, row+1)
		if err != nil {
			return err
		}

		var cellValue interface{} = v.String()
		if f, ok := v.Float(); ok {
			cellValue = f
		}
		if err := e.file.SetCellValue(sheet, cell, cellValue); err != nil {
			return fmt.Errorf("failed to set %s: %w", cell, err)
		}
	}
	return nil
}

// SetHeader writes the column identifiers into the first row
func (e *Editor) SetHeader(sheet string, columns []table.Column) error {
	header := make([]interface{}, len(columns))
	for i, c := range columns {
		header[i] = c.String()
	}
	return e.file.SetSheetRow(sheet, "A1", &header)
}

// Write serializes the workbook to w
func (e *Editor) Write(w io.Writer) error {
	return e.file.Write(w)
}

// SaveAs saves the Excel file with a new name
func (e *Editor) SaveAs(filepath string) error {
	e.filepath = filepath
	return e.file.SaveAs(filepath)
}

// Close closes the Excel file
func (e *Editor) Close() error {
	return e.file.Close()
}
