package frame

import (
	"fmt"

	"github.com/vegasq/parframe/schema"
	"github.com/vegasq/parframe/selector"
)

// Frame is an immutable table: an ordered set of equally long columns.
type Frame struct {
	root   *GroupColumn
	schema *schema.Group
}

// New creates a frame from top-level columns. Column names must be unique
// and all columns must have the same length.
func New(columns ...Column) (*Frame, error) {
	root, err := NewGroupColumn("", columns...)
	if err != nil {
		return nil, err
	}
	return fromRoot(root), nil
}

// MustNew is like New but panics on error.
func MustNew(columns ...Column) *Frame {
	f, err := New(columns...)
	if err != nil {
		panic(err)
	}
	return f
}

func fromRoot(root *GroupColumn) *Frame {
	return &Frame{root: root, schema: root.Node().(*schema.Group)}
}

// Schema returns the column structure of the frame.
func (f *Frame) Schema() *schema.Group { return f.schema }

// NumRows returns the number of rows.
func (f *Frame) NumRows() int { return f.root.nrow }

// NumCols returns the number of top-level columns.
func (f *Frame) NumCols() int { return len(f.root.columns) }

// Columns returns the top-level columns. The slice must not be modified.
func (f *Frame) Columns() []Column { return f.root.columns }

// ColumnNames returns the names of the top-level columns.
func (f *Frame) ColumnNames() []string { return f.schema.Names() }

// Column returns the column at path. Paths do not enter frame columns.
func (f *Frame) Column(path schema.Path) (Column, bool) {
	var col Column = f.root
	for _, segment := range path {
		group, ok := col.(*GroupColumn)
		if !ok {
			return nil, false
		}
		if col, ok = group.Column(segment); !ok {
			return nil, false
		}
	}
	return col, true
}

// ColumnByName returns the top-level column called name.
func (f *Frame) ColumnByName(name string) (Column, bool) {
	return f.root.Column(name)
}

// Value returns the cell of the value or frame column at path in row i.
func (f *Frame) Value(path schema.Path, i int) (any, bool) {
	col, ok := f.Column(path)
	if !ok || i < 0 || i >= f.NumRows() {
		return nil, false
	}
	switch c := col.(type) {
	case *ValueColumn:
		return c.ValueAt(i), true
	case *FrameColumn:
		if nested := c.FrameAt(i); nested != nil {
			return nested, true
		}
		return nil, true
	default:
		return nil, false
	}
}

// Row returns an accessor for row i.
func (f *Frame) Row(i int) Row {
	return Row{frame: f, index: i}
}

// Gather returns a frame made of the given rows of f, in the given order.
// A negative index yields a row of nulls.
func (f *Frame) Gather(rows []int) *Frame {
	return fromRoot(f.root.gather(rows).(*GroupColumn))
}

// Head returns the first n rows, or f itself when it has at most n rows.
func (f *Frame) Head(n int) *Frame {
	if n < 0 || n >= f.NumRows() {
		return f
	}
	rows := make([]int, n)
	for i := range rows {
		rows[i] = i
	}
	return f.Gather(rows)
}

// Resolve evaluates cols against the schema of f.
func (f *Frame) Resolve(cols selector.Columns, policy selector.Policy) ([]selector.ColumnWithPath, error) {
	return selector.Resolve(f.schema, cols, policy)
}

// Select returns a frame holding the selected columns at top level, in
// selection order, under their display names. Names that occur more than
// once are made unique with a numeric suffix. Unresolved columns fail.
func (f *Frame) Select(cols selector.Columns) (*Frame, error) {
	return f.SelectWith(cols, selector.Fail)
}

// SelectWith is like Select with an explicit unresolved column policy.
func (f *Frame) SelectWith(cols selector.Columns, policy selector.Policy) (*Frame, error) {
	resolved, err := f.Resolve(cols, policy)
	if err != nil {
		return nil, fmt.Errorf("select: %w", err)
	}
	b := NewBuilder(f.NumRows())
	for _, c := range resolved {
		col, ok := f.Column(c.Path)
		if !ok {
			return nil, fmt.Errorf("select: column %q missing from frame", c.Path.String())
		}
		if _, err := b.Add(schema.Path{c.Name()}, col); err != nil {
			return nil, fmt.Errorf("select: %w", err)
		}
	}
	return b.Build(), nil
}
