package testutil

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"
)

// Workbook describes a single-sheet fixture. Rows are written starting at A1;
// nil entries leave the cell blank. Merges are "A1:B2" style ranges.
type Workbook struct {
	Rows   [][]any
	Merges []string
}

// WriteWorkbook saves the fixture as name inside a temp dir and returns its path
func WriteWorkbook(t testing.TB, name string, wb Workbook) string {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(f.GetActiveSheetIndex())
	for r, row := range wb.Rows {
		for c, v := range row {
			if v == nil {
				continue
			}
			cell, err := excelize.CoordinatesToCellName(c+1, r+1)
			if err != nil {
				t.Fatalf("cell name: %v", err)
			}
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				t.Fatalf("set %s: %v", cell, err)
			}
		}
	}

	for _, merge := range wb.Merges {
		from, to, ok := strings.Cut(merge, ":")
		if !ok {
			t.Fatalf("bad merge range %q", merge)
		}
		if err := f.MergeCell(sheet, from, to); err != nil {
			t.Fatalf("merge %s: %v", merge, err)
		}
	}

	path := filepath.Join(t.TempDir(), name)
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("save workbook: %v", err)
	}
	return path
}

// ReadSheet returns the rows of the active sheet of the workbook at path
func ReadSheet(t testing.TB, path string) [][]string {
	t.Helper()

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("open %s: %v", path, err)
	}
	defer f.Close()

	rows, err := f.GetRows(f.GetSheetName(f.GetActiveSheetIndex()))
	if err != nil {
		t.Fatalf("read rows: %v", err)
	}
	return rows
}
