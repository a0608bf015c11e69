package excel

import "fmt"

// FormatError reports an input that could not be opened or parsed as a workbook
type FormatError struct {
	Path string
	Err  error
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("cannot read %s as a spreadsheet: %v", e.Path, e.Err)
}

func (e *FormatError) Unwrap() error {
	return e.Err
}

// IOError reports a failure to create or write an output workbook
type IOError struct {
	Path string
	Op   string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("failed to %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error {
	return e.Err
}
