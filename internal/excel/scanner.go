package excel

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"sheetMerge/internal/table"
)

// WorkbookScan is the outcome of loading one workbook of a directory
type WorkbookScan struct {
	Path    string
	Rows    int
	Columns []table.ColumnProfile
	Err     error
}

// ScanDirectory loads every .xlsx file below dir and profiles its columns.
// A workbook that cannot be read is reported in its scan entry instead of
// aborting the whole scan.
func ScanDirectory(dir string, opts ...Option) ([]WorkbookScan, error) {
	o := buildOptions(opts)

	xlsxFiles, err := getXlsxFiles(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to get xlsx files: %w", err)
	}
	sort.Strings(xlsxFiles)

	o.logger.Info("Scanning directory", "directory", dir, "file_count", len(xlsxFiles))

	scans := make([]WorkbookScan, 0, len(xlsxFiles))
	for _, path := range xlsxFiles {
		scan := WorkbookScan{Path: path}

		t, err := Load(path, opts...)
		if err != nil {
			o.logger.Warn("Failed to scan workbook", "path", path, "error", err)
			scan.Err = err
		} else {
			scan.Rows = t.Len()
			scan.Columns = table.Profile(t)
		}
		scans = append(scans, scan)
	}

	return scans, nil
}

// getXlsxFiles returns all .xlsx files in the specified directory
func getXlsxFiles(dir string) ([]string, error) {
	var xlsxFiles []string

	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		// skip lock files Excel leaves next to open workbooks
		if !info.IsDir() && strings.ToLower(filepath.Ext(path)) == ".xlsx" && !strings.HasPrefix(info.Name(), "~$") {
			xlsxFiles = append(xlsxFiles, path)
		}

		return nil
	})

	return xlsxFiles, err
}
