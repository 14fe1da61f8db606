package output

import (
	"fmt"
	"io"

	"github.com/olekukonko/tablewriter"

	"github.com/vegasq/parframe/frame"
)

// TableFormatter renders rows as an aligned text table with one column per
// value or frame column, like CSVFormatter.
type TableFormatter struct {
	writer io.Writer
}

// NewTableFormatter creates a new table formatter
func NewTableFormatter(w io.Writer) *TableFormatter {
	return &TableFormatter{writer: w}
}

// SetOutput sets the output writer
func (t *TableFormatter) SetOutput(w io.Writer) {
	t.writer = w
}

// Format writes the table followed by a row count.
func (t *TableFormatter) Format(f *frame.Frame) error {
	header, columns := flatten(f)

	table := tablewriter.NewWriter(t.writer)
	table.SetHeader(header)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)

	for i := 0; i < f.NumRows(); i++ {
		row := make([]string, len(columns))
		for n, col := range columns {
			if v := frame.Cell(col, i); v != nil {
				row[n] = formatValue(v)
			} else {
				row[n] = "null"
			}
		}
		table.Append(row)
	}
	table.Render()

	_, err := fmt.Fprintf(t.writer, "(%d rows)\n", f.NumRows())
	return err
}
