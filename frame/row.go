package frame

import "github.com/vegasq/parframe/schema"

// Row is a read-only view of one row of a frame.
type Row struct {
	frame *Frame
	index int
}

// Index returns the position of the row in its frame.
func (r Row) Index() int { return r.index }

// Frame returns the frame the row belongs to.
func (r Row) Frame() *Frame { return r.frame }

// Get returns the cell at the path given by segments, or nil when there is
// no such value or frame column.
func (r Row) Get(segments ...string) any {
	v, _ := r.frame.Value(schema.Path(segments), r.index)
	return v
}

// Value returns the cell at path and whether the column exists.
func (r Row) Value(path schema.Path) (any, bool) {
	return r.frame.Value(path, r.index)
}

// Map converts the row into nested maps: groups become map[string]any and
// frame cells become []map[string]any.
func (r Row) Map() map[string]any {
	return rowMap(r.frame.root, r.index)
}

func rowMap(g *GroupColumn, i int) map[string]any {
	m := make(map[string]any, len(g.columns))
	for _, col := range g.columns {
		m[col.Name()] = cellValue(col, i)
	}
	return m
}

func cellValue(col Column, i int) any {
	switch c := col.(type) {
	case *ValueColumn:
		return c.ValueAt(i)
	case *GroupColumn:
		return rowMap(c, i)
	case *FrameColumn:
		nested := c.FrameAt(i)
		if nested == nil {
			return nil
		}
		return nested.Maps()
	default:
		return nil
	}
}

// Maps converts every row with Row.Map.
func (f *Frame) Maps() []map[string]any {
	rows := make([]map[string]any, f.NumRows())
	for i := range rows {
		rows[i] = f.Row(i).Map()
	}
	return rows
}

// Cell returns the value of col at row i in the form used by Row.Map.
func Cell(col Column, i int) any {
	return cellValue(col, i)
}
