package excel

import (
	"os"
	"path/filepath"

	"sheetMerge/internal/table"

	"github.com/google/uuid"
)

// WriteTable saves t as a single-sheet workbook at path. The header row holds
// the column identifiers and there is no index column. Missing parent
// directories are created and an existing file is replaced. The workbook is
// written to a temporary file next to path and renamed into place, so a
// failed write never leaves a truncated file behind.
func WriteTable(path string, t *table.Table, opts ...Option) (err error) {
	o := buildOptions(opts)

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return &IOError{Path: dir, Op: "create directory", Err: err}
	}

	editor := CreateNewFile()
	defer editor.Close()

	sheet := editor.ActiveSheet()
	if err := editor.SetHeader(sheet, t.Columns()); err != nil {
		return &IOError{Path: path, Op: "build", Err: err}
	}
	for i := 0; i < t.Len(); i++ {
		if err := editor.SetRow(sheet, i+1, t.Row(i)); err != nil {
			return &IOError{Path: path, Op: "build", Err: err}
		}
	}

	tmpPath := filepath.Join(dir, "."+filepath.Base(path)+"."+uuid.NewString()+".tmp")
	tmp, err := os.OpenFile(tmpPath, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0644)
	if err != nil {
		return &IOError{Path: tmpPath, Op: "create", Err: err}
	}
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmpPath)
		}
	}()

	if err := editor.Write(tmp); err != nil {
		return &IOError{Path: tmpPath, Op: "write", Err: err}
	}
	if err := tmp.Sync(); err != nil {
		return &IOError{Path: tmpPath, Op: "sync", Err: err}
	}
	if err := tmp.Close(); err != nil {
		return &IOError{Path: tmpPath, Op: "close", Err: err}
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return &IOError{Path: path, Op: "replace", Err: err}
	}

	o.logger.Info("Saved workbook", "path", path, "rows", t.Len(), "columns", t.Width())
	return nil
}
