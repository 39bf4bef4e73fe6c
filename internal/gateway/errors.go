package gateway

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrMissingColumns is matched by every MissingColumnsError.
	ErrMissingColumns = errors.New("missing required columns")
	// ErrUnsupportedFormat is returned for sources that are neither CSV nor XLSX.
	ErrUnsupportedFormat = errors.New("unsupported table format")
)

// MissingColumnsError lists the required columns absent from a source header.
type MissingColumnsError struct {
	Columns []string
}

func (e *MissingColumnsError) Error() string {
	return fmt.Sprintf("%s: %s", ErrMissingColumns, strings.Join(e.Columns, ", "))
}

func (e *MissingColumnsError) Is(target error) bool {
	return target == ErrMissingColumns
}
