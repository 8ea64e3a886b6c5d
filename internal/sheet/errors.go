package sheet

import (
	"errors"
	"fmt"
)

// ErrSheetNotFound indicates the workbook has no sheet with the requested name.
var ErrSheetNotFound = errors.New("sheet not found")

// ErrUnsupportedFormat indicates the file extension is not one we can read.
var ErrUnsupportedFormat = errors.New("unsupported file format")

// LoadError records which file and sheet failed to load.
type LoadError struct {
	Path  string
	Sheet string
	Err   error
}

func (e *LoadError) Error() string {
	if e.Sheet == "" {
		return fmt.Sprintf("load %s: %v", e.Path, e.Err)
	}
	return fmt.Sprintf("load %s [%s]: %v", e.Path, e.Sheet, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

func newLoadError(path, sheet string, err error) *LoadError {
	return &LoadError{Path: path, Sheet: sheet, Err: err}
}
