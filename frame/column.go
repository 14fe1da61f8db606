package frame

import (
	"errors"
	"fmt"

	"github.com/vegasq/parframe/schema"
)

// ErrLengthMismatch is returned when columns of one frame differ in length.
var ErrLengthMismatch = errors.New("column length mismatch")

// Column is one column of a frame: *ValueColumn, *GroupColumn or *FrameColumn.
type Column interface {
	Name() string
	Kind() schema.Kind
	Len() int
	// Node describes the column's shape.
	Node() schema.Node

	withName(name string) Column
	gather(rows []int) Column
}

// ValueColumn holds one scalar cell per row.
type ValueColumn struct {
	name   string
	typ    schema.ValueType
	values []any
}

// NewValueColumn creates a value column. values is copied.
func NewValueColumn(name string, typ schema.ValueType, values []any) *ValueColumn {
	return &ValueColumn{name: name, typ: typ, values: append([]any(nil), values...)}
}

func (c *ValueColumn) Name() string           { return c.name }
func (c *ValueColumn) Kind() schema.Kind      { return schema.KindValue }
func (c *ValueColumn) Len() int               { return len(c.values) }
func (c *ValueColumn) Type() schema.ValueType { return c.typ }
func (c *ValueColumn) Node() schema.Node      { return schema.NewLeaf(c.name, c.typ) }

// ValueAt returns the cell at row i.
func (c *ValueColumn) ValueAt(i int) any { return c.values[i] }

// IsNull reports whether the cell at row i is null.
func (c *ValueColumn) IsNull(i int) bool { return c.values[i] == nil }

// Values returns a copy of all cells.
func (c *ValueColumn) Values() []any { return append([]any(nil), c.values...) }

func (c *ValueColumn) withName(name string) Column {
	return &ValueColumn{name: name, typ: c.typ, values: c.values}
}

func (c *ValueColumn) gather(rows []int) Column {
	values := make([]any, len(rows))
	for i, r := range rows {
		if r >= 0 {
			values[i] = c.values[r]
		}
	}
	return &ValueColumn{name: c.name, typ: c.typ, values: values}
}

// GroupColumn is a named set of nested columns.
type GroupColumn struct {
	name    string
	columns []Column
	index   map[string]int
	nrow    int
}

// NewGroupColumn creates a column group. Children must have distinct names
// and equal lengths.
func NewGroupColumn(name string, columns ...Column) (*GroupColumn, error) {
	g := &GroupColumn{
		name:    name,
		columns: make([]Column, 0, len(columns)),
		index:   make(map[string]int, len(columns)),
	}
	for i, col := range columns {
		if _, exists := g.index[col.Name()]; exists {
			return nil, fmt.Errorf("%w: %q", schema.ErrDuplicateColumn, col.Name())
		}
		if i == 0 {
			g.nrow = col.Len()
		} else if col.Len() != g.nrow {
			return nil, fmt.Errorf("%w: column %q has %d rows, expected %d", ErrLengthMismatch, col.Name(), col.Len(), g.nrow)
		}
		g.index[col.Name()] = len(g.columns)
		g.columns = append(g.columns, col)
	}
	return g, nil
}

// MustGroupColumn is like NewGroupColumn but panics on error.
func MustGroupColumn(name string, columns ...Column) *GroupColumn {
	g, err := NewGroupColumn(name, columns...)
	if err != nil {
		panic(err)
	}
	return g
}

func (g *GroupColumn) Name() string      { return g.name }
func (g *GroupColumn) Kind() schema.Kind { return schema.KindGroup }
func (g *GroupColumn) Len() int          { return g.nrow }

// Columns returns the nested columns. The slice must not be modified.
func (g *GroupColumn) Columns() []Column { return g.columns }

// Column returns the nested column called name.
func (g *GroupColumn) Column(name string) (Column, bool) {
	i, ok := g.index[name]
	if !ok {
		return nil, false
	}
	return g.columns[i], true
}

func (g *GroupColumn) Node() schema.Node {
	children := make([]schema.Node, len(g.columns))
	for i, col := range g.columns {
		children[i] = col.Node()
	}
	// Children were checked for unique names on construction.
	return schema.MustGroup(g.name, children...)
}

func (g *GroupColumn) withName(name string) Column {
	return &GroupColumn{name: name, columns: g.columns, index: g.index, nrow: g.nrow}
}

func (g *GroupColumn) gather(rows []int) Column {
	columns := make([]Column, len(g.columns))
	for i, col := range g.columns {
		columns[i] = col.gather(rows)
	}
	return &GroupColumn{name: g.name, columns: columns, index: g.index, nrow: len(rows)}
}

// FrameColumn holds one nested frame per row. All frames share one schema.
type FrameColumn struct {
	name   string
	nested *schema.Group
	frames []*Frame
}

// NewFrameColumn creates a frame column. frames is copied; nil cells are null.
func NewFrameColumn(name string, nested *schema.Group, frames []*Frame) *FrameColumn {
	return &FrameColumn{name: name, nested: nested, frames: append([]*Frame(nil), frames...)}
}

func (c *FrameColumn) Name() string      { return c.name }
func (c *FrameColumn) Kind() schema.Kind { return schema.KindFrame }
func (c *FrameColumn) Len() int          { return len(c.frames) }
func (c *FrameColumn) Node() schema.Node { return schema.NewFrameRef(c.name, c.nested) }

// FrameAt returns the nested frame at row i, or nil.
func (c *FrameColumn) FrameAt(i int) *Frame { return c.frames[i] }

func (c *FrameColumn) withName(name string) Column {
	return &FrameColumn{name: name, nested: c.nested, frames: c.frames}
}

func (c *FrameColumn) gather(rows []int) Column {
	frames := make([]*Frame, len(rows))
	for i, r := range rows {
		if r >= 0 {
			frames[i] = c.frames[r]
		}
	}
	return &FrameColumn{name: c.name, nested: c.nested, frames: frames}
}
