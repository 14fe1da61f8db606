package output

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/segmentio/encoding/json"

	"github.com/vegasq/parframe/frame"
)

// CSVFormatter outputs rows as CSV. Nested columns are flattened into one
// column per value or frame column, headed by its dot path.
type CSVFormatter struct {
	writer io.Writer
}

// NewCSVFormatter creates a new CSV formatter
func NewCSVFormatter(w io.Writer) *CSVFormatter {
	return &CSVFormatter{writer: w}
}

// SetOutput sets the output writer
func (c *CSVFormatter) SetOutput(w io.Writer) {
	c.writer = w
}

// Format writes a header row followed by one record per row.
func (c *CSVFormatter) Format(f *frame.Frame) error {
	csvWriter := csv.NewWriter(c.writer)

	header, columns := flatten(f)
	if err := csvWriter.Write(header); err != nil {
		return err
	}

	record := make([]string, len(columns))
	for i := 0; i < f.NumRows(); i++ {
		for n, col := range columns {
			record[n] = sanitize(formatValue(frame.Cell(col, i)))
		}
		if err := csvWriter.Write(record); err != nil {
			return err
		}
	}

	csvWriter.Flush()
	if err := csvWriter.Error(); err != nil {
		return fmt.Errorf("failed to flush CSV writer: %w", err)
	}
	return nil
}

// flatten returns the dot paths and columns of every non-group column.
func flatten(f *frame.Frame) ([]string, []frame.Column) {
	paths := f.Schema().DescendantLeaves(nil)
	header := make([]string, len(paths))
	columns := make([]frame.Column, len(paths))
	for i, path := range paths {
		header[i] = path.String()
		columns[i], _ = f.Column(path)
	}
	return header, columns
}

// formatValue converts a cell to text. Nested values are rendered as JSON.
func formatValue(v any) string {
	if v == nil {
		return ""
	}

	switch val := v.(type) {
	case string:
		return val
	case []byte:
		return string(val)
	case int, int8, int16, int32, int64:
		return fmt.Sprintf("%d", val)
	case uint, uint8, uint16, uint32, uint64:
		return fmt.Sprintf("%d", val)
	case float32, float64:
		return fmt.Sprintf("%g", val)
	case bool:
		return fmt.Sprintf("%t", val)
	case map[string]any, []map[string]any:
		b, err := json.Marshal(val)
		if err != nil {
			return fmt.Sprintf("%v", val)
		}
		return string(b)
	default:
		return fmt.Sprintf("%v", val)
	}
}

// sanitize guards against CSV injection by prefixing characters that
// spreadsheet applications treat as the start of a formula.
func sanitize(s string) string {
	if s == "" {
		return s
	}
	switch s[0] {
	case '=', '+', '-', '@', '\t', '\r', '\n', '|':
		return "'" + strings.ReplaceAll(s, "'", "''")
	}
	return s
}
