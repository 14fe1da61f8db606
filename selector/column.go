package selector

import "github.com/vegasq/parframe/schema"

// ColumnWithPath is one resolved column: the node, its absolute path from
// the schema root, and the name it should be presented under.
type ColumnWithPath struct {
	Path        schema.Path
	Node        schema.Node
	DisplayName string
}

// Name returns the display name, which defaults to the last path segment.
func (c ColumnWithPath) Name() string {
	if c.DisplayName != "" {
		return c.DisplayName
	}
	return c.Path.Name()
}

// Kind returns the kind of the resolved node.
func (c ColumnWithPath) Kind() schema.Kind {
	return c.Node.Kind()
}

// Type returns the value type of a value column and TypeAny otherwise.
func (c ColumnWithPath) Type() schema.ValueType {
	if leaf, ok := c.Node.(*schema.Leaf); ok {
		return leaf.Type()
	}
	return schema.TypeAny
}

// Group returns the node as a group, if it is one.
func (c ColumnWithPath) Group() (*schema.Group, bool) {
	g, ok := c.Node.(*schema.Group)
	return g, ok
}

func (c ColumnWithPath) String() string {
	if c.DisplayName != "" && c.DisplayName != c.Path.Name() {
		return c.Path.String() + " as " + c.DisplayName
	}
	return c.Path.String()
}

func columnAt(parent schema.Path, node schema.Node) ColumnWithPath {
	return ColumnWithPath{Path: parent.Child(node.Name()), Node: node}
}
