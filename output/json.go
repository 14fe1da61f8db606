package output

import (
	"io"

	"github.com/segmentio/encoding/json"

	"github.com/vegasq/parframe/frame"
)

// JSONFormatter outputs rows as JSON Lines. Object keys follow the column
// order of the frame; groups become nested objects and frame cells arrays of
// objects.
type JSONFormatter struct {
	writer io.Writer
}

// NewJSONFormatter creates a new JSON Lines formatter
func NewJSONFormatter(w io.Writer) *JSONFormatter {
	return &JSONFormatter{writer: w}
}

// SetOutput sets the output writer
func (j *JSONFormatter) SetOutput(w io.Writer) {
	j.writer = w
}

// Format writes one JSON object per row.
func (j *JSONFormatter) Format(f *frame.Frame) error {
	var buf []byte
	for i := 0; i < f.NumRows(); i++ {
		var err error
		buf, err = appendObject(buf[:0], f.Columns(), i)
		if err != nil {
			return err
		}
		buf = append(buf, '\n')
		if _, err := j.writer.Write(buf); err != nil {
			return err
		}
	}
	return nil
}

func appendObject(buf []byte, columns []frame.Column, i int) ([]byte, error) {
	buf = append(buf, '{')
	for n, col := range columns {
		if n > 0 {
			buf = append(buf, ',')
		}
		key, err := json.Marshal(col.Name())
		if err != nil {
			return nil, err
		}
		buf = append(buf, key...)
		buf = append(buf, ':')
		if buf, err = appendCell(buf, col, i); err != nil {
			return nil, err
		}
	}
	return append(buf, '}'), nil
}

func appendCell(buf []byte, col frame.Column, i int) ([]byte, error) {
	switch c := col.(type) {
	case *frame.GroupColumn:
		return appendObject(buf, c.Columns(), i)
	case *frame.FrameColumn:
		nested := c.FrameAt(i)
		if nested == nil {
			return append(buf, "null"...), nil
		}
		buf = append(buf, '[')
		for r := 0; r < nested.NumRows(); r++ {
			if r > 0 {
				buf = append(buf, ',')
			}
			var err error
			if buf, err = appendObject(buf, nested.Columns(), r); err != nil {
				return nil, err
			}
		}
		return append(buf, ']'), nil
	default:
		v, err := json.Marshal(frame.Cell(col, i))
		if err != nil {
			return nil, err
		}
		return append(buf, v...), nil
	}
}
