package schema

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSchema() *Group {
	return Must(
		NewLeaf("id", TypeInt64),
		MustGroup("address",
			NewLeaf("city", TypeString),
			MustGroup("geo",
				NewLeaf("lat", TypeFloat64),
				NewLeaf("lon", TypeFloat64),
			),
		),
		NewFrameRef("orders", Must(NewLeaf("amount", TypeFloat64))),
		NewLeaf("name", TypeString),
	)
}

func TestNewGroupDuplicateNames(t *testing.T) {
	tests := []struct {
		name      string
		groupName string
	}{
		{name: "root", groupName: ""},
		{name: "nested", groupName: "info"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewGroup(tt.groupName, NewLeaf("a", TypeInt64), NewLeaf("a", TypeString))
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrDuplicateColumn))
		})
	}
}

func TestMustGroupPanicsOnDuplicate(t *testing.T) {
	assert.Panics(t, func() {
		MustGroup("g", NewLeaf("x", TypeInt64), NewLeaf("x", TypeInt64))
	})
}

func TestChildByNameAndIndex(t *testing.T) {
	s := testSchema()

	node, ok := s.ChildByName("address")
	require.True(t, ok)
	assert.Equal(t, KindGroup, node.Kind())

	_, ok = s.ChildByName("Address")
	assert.False(t, ok, "names are case-sensitive")

	node, ok = s.ChildByIndex(3)
	require.True(t, ok)
	assert.Equal(t, "name", node.Name())

	_, ok = s.ChildByIndex(4)
	assert.False(t, ok)
	_, ok = s.ChildByIndex(-1)
	assert.False(t, ok)
}

func TestFind(t *testing.T) {
	s := testSchema()

	tests := []struct {
		name string
		path Path
		want string
		ok   bool
	}{
		{name: "root", path: nil, want: "", ok: true},
		{name: "top level", path: Path{"id"}, want: "id", ok: true},
		{name: "nested", path: Path{"address", "geo", "lon"}, want: "lon", ok: true},
		{name: "unknown", path: Path{"address", "street"}, ok: false},
		{name: "through leaf", path: Path{"id", "x"}, ok: false},
		{name: "frame is opaque", path: Path{"orders", "amount"}, ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			node, ok := s.Find(tt.path)
			assert.Equal(t, tt.ok, ok)
			if ok {
				assert.Equal(t, tt.want, node.Name())
			}
		})
	}
}

func TestChildrenOf(t *testing.T) {
	s := testSchema()

	children, ok := s.ChildrenOf(Path{"address"})
	require.True(t, ok)
	require.Len(t, children, 2)
	assert.Equal(t, "city", children[0].Name())
	assert.Equal(t, "geo", children[1].Name())

	_, ok = s.ChildrenOf(Path{"id"})
	assert.False(t, ok)
}

func TestDescendantLeaves(t *testing.T) {
	s := testSchema()

	got := s.DescendantLeaves(nil)
	want := []Path{
		{"id"},
		{"address", "city"},
		{"address", "geo", "lat"},
		{"address", "geo", "lon"},
		{"orders"},
		{"name"},
	}
	assert.Equal(t, want, got)

	assert.Equal(t, []Path{{"address", "geo", "lat"}, {"address", "geo", "lon"}}, s.DescendantLeaves(Path{"address", "geo"}))
	assert.Equal(t, []Path{{"id"}}, s.DescendantLeaves(Path{"id"}))
	assert.Nil(t, s.DescendantLeaves(Path{"missing"}))
}

func TestValueTypeComparable(t *testing.T) {
	tests := []struct {
		a, b ValueType
		want bool
	}{
		{TypeInt64, TypeInt64, true},
		{TypeInt32, TypeFloat64, true},
		{TypeString, TypeInt64, false},
		{TypeAny, TypeBool, true},
		{TypeDate, TypeTimestamp, true},
		{TypeBool, TypeString, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.a)+"_"+string(tt.b), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.a.ComparableWith(tt.b))
			assert.Equal(t, tt.want, tt.b.ComparableWith(tt.a))
		})
	}
}
