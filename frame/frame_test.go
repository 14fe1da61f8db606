package frame

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vegasq/parframe/schema"
	"github.com/vegasq/parframe/selector"
)

func ints(vs ...int64) []any {
	out := make([]any, len(vs))
	for i, v := range vs {
		out[i] = v
	}
	return out
}

func strs(vs ...string) []any {
	out := make([]any, len(vs))
	for i, v := range vs {
		out[i] = v
	}
	return out
}

func peopleFrame(t *testing.T) *Frame {
	t.Helper()
	f, err := New(
		NewValueColumn("id", schema.TypeInt64, ints(1, 2, 3)),
		NewValueColumn("name", schema.TypeString, strs("A", "B", "C")),
		MustGroupColumn("address",
			NewValueColumn("city", schema.TypeString, strs("Oslo", "Rome", "Lima")),
			NewValueColumn("name", schema.TypeString, []any{"home", nil, "work"}),
		),
	)
	require.NoError(t, err)
	return f
}

func TestNewValidatesColumns(t *testing.T) {
	_, err := New(
		NewValueColumn("a", schema.TypeInt64, ints(1, 2)),
		NewValueColumn("b", schema.TypeInt64, ints(1)),
	)
	assert.True(t, errors.Is(err, ErrLengthMismatch))

	_, err = New(
		NewValueColumn("a", schema.TypeInt64, ints(1)),
		NewValueColumn("a", schema.TypeInt64, ints(1)),
	)
	assert.True(t, errors.Is(err, schema.ErrDuplicateColumn))

	empty, err := New()
	require.NoError(t, err)
	assert.Equal(t, 0, empty.NumRows())
	assert.Equal(t, 0, empty.NumCols())
}

func TestSchemaMirrorsColumns(t *testing.T) {
	f := peopleFrame(t)

	assert.Equal(t, []string{"id", "name", "address"}, f.ColumnNames())
	assert.Equal(t, 3, f.NumRows())

	node, ok := f.Schema().Find(schema.Path{"address", "city"})
	require.True(t, ok)
	assert.Equal(t, schema.TypeString, node.(*schema.Leaf).Type())
}

func TestValueAccess(t *testing.T) {
	f := peopleFrame(t)

	v, ok := f.Value(schema.Path{"address", "city"}, 1)
	require.True(t, ok)
	assert.Equal(t, "Rome", v)

	_, ok = f.Value(schema.Path{"address"}, 1)
	assert.False(t, ok, "groups have no single cell")

	_, ok = f.Value(schema.Path{"id"}, 3)
	assert.False(t, ok)

	row := f.Row(2)
	assert.Equal(t, int64(3), row.Get("id"))
	assert.Equal(t, "work", row.Get("address", "name"))
	assert.Nil(t, row.Get("missing"))
	assert.Nil(t, f.Row(1).Get("address", "name"))

	assert.Equal(t, map[string]any{
		"id":      int64(1),
		"name":    "A",
		"address": map[string]any{"city": "Oslo", "name": "home"},
	}, f.Row(0).Map())
}

func TestGatherAndHead(t *testing.T) {
	f := peopleFrame(t)

	g := f.Gather([]int{2, -1, 0})
	require.Equal(t, 3, g.NumRows())
	assert.Equal(t, int64(3), g.Row(0).Get("id"))
	assert.Nil(t, g.Row(1).Get("id"))
	assert.Nil(t, g.Row(1).Get("address", "city"))
	assert.Equal(t, "Oslo", g.Row(2).Get("address", "city"))

	// The source is untouched.
	assert.Equal(t, int64(1), f.Row(0).Get("id"))

	assert.Equal(t, 2, f.Head(2).NumRows())
	assert.Same(t, f, f.Head(10))
}

func TestSelectLiftsAndRenames(t *testing.T) {
	f := peopleFrame(t)

	out, err := f.Select(selector.Col("name").And(
		selector.ColPath("address", "name"),
		selector.ColPath("address", "city").Named("town"),
	))
	require.NoError(t, err)

	assert.Equal(t, []string{"name", "name1", "town"}, out.ColumnNames())
	assert.Equal(t, "B", out.Row(1).Get("name"))
	assert.Nil(t, out.Row(1).Get("name1"))
	assert.Equal(t, "Lima", out.Row(2).Get("town"))
}

func TestSelectGroupKeepsStructure(t *testing.T) {
	f := peopleFrame(t)

	out, err := f.Select(selector.Col("address"))
	require.NoError(t, err)
	assert.Equal(t, "Rome", out.Row(1).Get("address", "city"))
}

func TestSelectPolicy(t *testing.T) {
	f := peopleFrame(t)

	_, err := f.Select(selector.Cols("id", "zzz"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, selector.ErrColumnNotFound))

	out, err := f.SelectWith(selector.Cols("id", "zzz"), selector.Skip)
	require.NoError(t, err)
	assert.Equal(t, []string{"id"}, out.ColumnNames())
}

func TestFrameColumn(t *testing.T) {
	nested := MustNew(NewValueColumn("amount", schema.TypeFloat64, []any{1.5, 2.5}))
	f, err := New(
		NewValueColumn("id", schema.TypeInt64, ints(1, 2)),
		NewFrameColumn("orders", nested.Schema(), []*Frame{nested, nil}),
	)
	require.NoError(t, err)

	node, ok := f.Schema().ChildByName("orders")
	require.True(t, ok)
	assert.Equal(t, schema.KindFrame, node.Kind())

	v, ok := f.Value(schema.Path{"orders"}, 0)
	require.True(t, ok)
	assert.Same(t, nested, v)

	assert.Equal(t, []map[string]any{{"amount": 1.5}, {"amount": 2.5}}, f.Row(0).Map()["orders"])
	assert.Nil(t, f.Row(1).Map()["orders"])
}
