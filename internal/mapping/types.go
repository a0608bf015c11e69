package mapping

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"sheetMerge/internal/merge"
	"sheetMerge/internal/table"
)

// Selection is the set of choices a user makes before merging: which files,
// which key column in each, which column to copy from and where to copy to
type Selection struct {
	SourceFile   string       `json:"source_file"`
	TargetFile   string       `json:"target_file"`
	SourceKey    table.Column `json:"source_key"`
	TargetKey    table.Column `json:"target_key"`
	SourceColumn table.Column `json:"source_column"`
	TargetColumn table.Column `json:"target_column"`
	OutputPath   string       `json:"output_path,omitempty"`
}

// Complete reports whether all four columns have been chosen
func (s Selection) Complete() bool {
	return s.SourceKey != "" && s.TargetKey != "" && s.SourceColumn != "" && s.TargetColumn != ""
}

// Request builds a merge request over already loaded tables
func (s Selection) Request(source, target *table.Table) merge.Request {
	return merge.Request{
		Source:       source,
		Target:       target,
		SourceKey:    s.SourceKey,
		TargetKey:    s.TargetKey,
		SourceColumn: s.SourceColumn,
		TargetColumn: s.TargetColumn,
		OutputPath:   s.OutputPath,
	}
}

// Files builds a file based merge request
func (s Selection) Files() merge.Files {
	return merge.Files{
		SourcePath:   s.SourceFile,
		TargetPath:   s.TargetFile,
		SourceKey:    s.SourceKey,
		TargetKey:    s.TargetKey,
		SourceColumn: s.SourceColumn,
		TargetColumn: s.TargetColumn,
		OutputPath:   s.OutputPath,
	}
}

// SaveToFile saves the selection to a JSON file
func (s *Selection) SaveToFile(path string) error {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create selection directory: %w", err)
	}
	return writeToFile(path, data)
}

// LoadFromFile loads a selection from a JSON file
func LoadFromFile(path string) (*Selection, error) {
	data, err := readFromFile(path)
	if err != nil {
		return nil, err
	}

	var selection Selection
	err = json.Unmarshal(data, &selection)
	if err != nil {
		return nil, fmt.Errorf("failed to parse selection %s: %w", path, err)
	}

	return &selection, nil
}

// Helper functions
func writeToFile(path string, data []byte) error {
	return os.WriteFile(path, data, 0644)
}

func readFromFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}
