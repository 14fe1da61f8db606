package selector

import (
	"fmt"
	"strconv"

	"github.com/vegasq/parframe/schema"
)

// Reference identifies a single column. String names, paths, positions and
// already resolved columns all normalize to one of its variants before they
// reach the resolver.
type Reference interface {
	fmt.Stringer
	lookup(e *env, s scope) (ColumnWithPath, bool, error)
}

// ByName refers to a direct child of the scope.
type ByName struct{ Name string }

// ByPath refers to a node below the scope.
type ByPath struct{ Path schema.Path }

// ByIndex refers to the direct child of the scope at a 0-based position.
type ByIndex struct{ Index int }

// Direct refers to a column resolved earlier. It is looked up again by its
// absolute path so that it can be reused against an equivalent schema, and
// keeps its display name.
type Direct struct{ Column ColumnWithPath }

func (r ByName) String() string  { return strconv.Quote(r.Name) }
func (r ByPath) String() string  { return r.Path.String() }
func (r ByIndex) String() string { return "#" + strconv.Itoa(r.Index) }
func (r Direct) String() string  { return r.Column.Path.String() }

func (r ByName) lookup(_ *env, s scope) (ColumnWithPath, bool, error) {
	node, ok := s.group.ChildByName(r.Name)
	if !ok {
		return ColumnWithPath{}, false, nil
	}
	return columnAt(s.path, node), true, nil
}

func (r ByPath) lookup(_ *env, s scope) (ColumnWithPath, bool, error) {
	if len(r.Path) == 0 {
		return ColumnWithPath{}, false, nil
	}
	node, ok := s.group.Find(r.Path)
	if !ok {
		return ColumnWithPath{}, false, nil
	}
	return ColumnWithPath{Path: s.path.Join(r.Path), Node: node}, true, nil
}

func (r ByIndex) lookup(_ *env, s scope) (ColumnWithPath, bool, error) {
	node, ok := s.group.ChildByIndex(r.Index)
	if !ok {
		return ColumnWithPath{}, false, &IndexOutOfRangeError{Index: r.Index, Len: s.group.Len(), Scope: s.path}
	}
	return columnAt(s.path, node), true, nil
}

func (r Direct) lookup(e *env, _ scope) (ColumnWithPath, bool, error) {
	if len(r.Column.Path) == 0 {
		return ColumnWithPath{}, false, nil
	}
	node, ok := e.root.group.Find(r.Column.Path)
	if !ok {
		return ColumnWithPath{}, false, nil
	}
	return ColumnWithPath{
		Path:        append(schema.Path(nil), r.Column.Path...),
		Node:        node,
		DisplayName: r.Column.DisplayName,
	}, true, nil
}
