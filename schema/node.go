package schema

import (
	"errors"
	"fmt"
)

// ErrDuplicateColumn is returned when two children of one group share a name.
var ErrDuplicateColumn = errors.New("duplicate column name")

// Kind tells the three node variants apart.
type Kind int

const (
	KindValue Kind = iota // Leaf
	KindGroup             // Group
	KindFrame             // FrameRef
)

func (k Kind) String() string {
	switch k {
	case KindValue:
		return "value column"
	case KindGroup:
		return "column group"
	case KindFrame:
		return "frame column"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Node is one column of a schema. It is implemented by *Leaf, *Group and
// *FrameRef only.
type Node interface {
	Name() string
	Kind() Kind
	sealed()
}

// Leaf is a scalar value column.
type Leaf struct {
	name string
	typ  ValueType
}

// NewLeaf creates a value column description.
func NewLeaf(name string, typ ValueType) *Leaf {
	return &Leaf{name: name, typ: typ}
}

func (l *Leaf) Name() string { return l.name }
func (l *Leaf) Kind() Kind   { return KindValue }
func (l *Leaf) sealed()      {}

// Type returns the value type of the column.
func (l *Leaf) Type() ValueType { return l.typ }

// Group is a named namespace with ordered, uniquely named children.
type Group struct {
	name     string
	children []Node
	index    map[string]int
}

// NewGroup creates a column group. It fails with ErrDuplicateColumn when two
// children share a name.
func NewGroup(name string, children ...Node) (*Group, error) {
	g := &Group{
		name:     name,
		children: make([]Node, 0, len(children)),
		index:    make(map[string]int, len(children)),
	}
	for _, child := range children {
		if _, exists := g.index[child.Name()]; exists {
			if name == "" {
				return nil, fmt.Errorf("%w: %q", ErrDuplicateColumn, child.Name())
			}
			return nil, fmt.Errorf("%w: %q in group %q", ErrDuplicateColumn, child.Name(), name)
		}
		g.index[child.Name()] = len(g.children)
		g.children = append(g.children, child)
	}
	return g, nil
}

// MustGroup is like NewGroup but panics on error. It is meant for static
// schemas in tests and examples.
func MustGroup(name string, children ...Node) *Group {
	g, err := NewGroup(name, children...)
	if err != nil {
		panic(err)
	}
	return g
}

// New creates a root schema, which is an unnamed group.
func New(children ...Node) (*Group, error) {
	return NewGroup("", children...)
}

// Must is like New but panics on error.
func Must(children ...Node) *Group {
	return MustGroup("", children...)
}

func (g *Group) Name() string { return g.name }
func (g *Group) Kind() Kind   { return KindGroup }
func (g *Group) sealed()      {}

// Len returns the number of direct children.
func (g *Group) Len() int { return len(g.children) }

// Children returns the direct children in declaration order. The returned
// slice is shared with the group and must not be modified.
func (g *Group) Children() []Node { return g.children }

// ChildByName returns the direct child with the given name.
func (g *Group) ChildByName(name string) (Node, bool) {
	i, ok := g.index[name]
	if !ok {
		return nil, false
	}
	return g.children[i], true
}

// ChildByIndex returns the i-th direct child (0-based).
func (g *Group) ChildByIndex(i int) (Node, bool) {
	if i < 0 || i >= len(g.children) {
		return nil, false
	}
	return g.children[i], true
}

// Names returns the names of the direct children in declaration order.
func (g *Group) Names() []string {
	names := make([]string, len(g.children))
	for i, c := range g.children {
		names[i] = c.Name()
	}
	return names
}

// Find returns the node at path relative to g. The empty path yields g itself.
// FrameRef nodes are opaque: paths do not descend into their nested schema.
func (g *Group) Find(path Path) (Node, bool) {
	var node Node = g
	for _, segment := range path {
		group, ok := node.(*Group)
		if !ok {
			return nil, false
		}
		if node, ok = group.ChildByName(segment); !ok {
			return nil, false
		}
	}
	return node, true
}

// ChildrenOf returns the direct children of the group at path. It reports
// false when the path is unknown or does not name a group.
func (g *Group) ChildrenOf(path Path) ([]Node, bool) {
	node, ok := g.Find(path)
	if !ok {
		return nil, false
	}
	group, ok := node.(*Group)
	if !ok {
		return nil, false
	}
	return group.children, true
}

// DescendantLeaves returns the paths of all non-group columns below path,
// depth-first in declaration order. FrameRef columns are returned as leaves.
func (g *Group) DescendantLeaves(path Path) []Path {
	node, ok := g.Find(path)
	if !ok {
		return nil
	}
	var leaves []Path
	var walk func(n Node, p Path)
	walk = func(n Node, p Path) {
		group, ok := n.(*Group)
		if !ok {
			leaves = append(leaves, p)
			return
		}
		for _, child := range group.children {
			walk(child, p.Child(child.Name()))
		}
	}
	if _, isGroup := node.(*Group); !isGroup {
		return []Path{append(Path(nil), path...)}
	}
	walk(node, append(Path(nil), path...))
	return leaves
}

// FrameRef is a column whose cells are frames sharing one nested schema.
// For selection purposes it behaves like a Leaf.
type FrameRef struct {
	name   string
	nested *Group
}

// NewFrameRef creates a frame column description.
func NewFrameRef(name string, nested *Group) *FrameRef {
	if nested == nil {
		nested = Must()
	}
	return &FrameRef{name: name, nested: nested}
}

func (f *FrameRef) Name() string { return f.name }
func (f *FrameRef) Kind() Kind   { return KindFrame }
func (f *FrameRef) sealed()      {}

// Nested returns the schema shared by all frames in the column.
func (f *FrameRef) Nested() *Group { return f.nested }
