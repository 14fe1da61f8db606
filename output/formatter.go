package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/vegasq/parframe/frame"
)

// Formatter writes frames in one output format.
type Formatter interface {
	// Format writes every row of f.
	Format(f *frame.Frame) error

	// SetOutput changes the output writer.
	SetOutput(w io.Writer)
}

// Format names accepted by NewFormatter.
const (
	FormatJSONL = "jsonl"
	FormatCSV   = "csv"
	FormatTable = "table"
)

// NewFormatter returns the formatter called name writing to w. "json" is
// accepted as an alias of "jsonl".
func NewFormatter(name string, w io.Writer) (Formatter, error) {
	switch strings.ToLower(name) {
	case FormatJSONL, "json", "":
		return NewJSONFormatter(w), nil
	case FormatCSV:
		return NewCSVFormatter(w), nil
	case FormatTable:
		return NewTableFormatter(w), nil
	default:
		return nil, fmt.Errorf("unknown output format %q (expected %s, %s or %s)", name, FormatJSONL, FormatCSV, FormatTable)
	}
}
