package frame

import (
	"fmt"
	"strconv"

	"github.com/vegasq/parframe/schema"
)

// Builder assembles a frame from columns placed at paths. Intermediate
// groups are created on demand and shared between paths with a common
// prefix. A column whose name is already taken in its group is renamed with
// the first free numeric suffix: "score", "score1", "score2", ...
type Builder struct {
	nrow    int
	root    *groupBuilder
	renamed map[string]string
}

type groupBuilder struct {
	names   []string
	entries map[string]builderEntry
}

// builderEntry is either a finished column or a group still being built.
type builderEntry struct {
	col   Column
	group *groupBuilder
}

// NewBuilder creates a builder for frames with nrow rows.
func NewBuilder(nrow int) *Builder {
	return &Builder{nrow: nrow, root: newGroupBuilder(), renamed: make(map[string]string)}
}

func newGroupBuilder() *groupBuilder {
	return &groupBuilder{entries: make(map[string]builderEntry)}
}

// Add places col at path and returns the path it was actually stored at,
// which differs from path when a segment had to be renamed. The name of col
// itself is ignored in favor of the last path segment.
func (b *Builder) Add(path schema.Path, col Column) (schema.Path, error) {
	if len(path) == 0 {
		return nil, fmt.Errorf("cannot add column %q at the root path", col.Name())
	}
	if col.Len() != b.nrow {
		return nil, fmt.Errorf("%w: column %q has %d rows, expected %d", ErrLengthMismatch, path.String(), col.Len(), b.nrow)
	}

	actual := make(schema.Path, 0, len(path))
	g := b.root
	for _, segment := range path.Parent() {
		redirectKey := schema.Path(actual).Child(segment).Key()
		if name, ok := b.renamed[redirectKey]; ok {
			segment = name
		}
		entry, exists := g.entries[segment]
		switch {
		case exists && entry.group != nil:
			g = entry.group
		case exists:
			// A finished column holds the name; open a renamed group beside it.
			name := g.uniqueName(segment)
			b.renamed[redirectKey] = name
			g = g.addGroup(name)
			segment = name
		default:
			g = g.addGroup(segment)
		}
		actual = append(actual, segment)
	}

	name := g.uniqueName(path.Name())
	g.names = append(g.names, name)
	g.entries[name] = builderEntry{col: col}
	return append(actual, name), nil
}

// Build returns the frame assembled so far.
func (b *Builder) Build() *Frame {
	root := b.root.build("", b.nrow)
	return fromRoot(root)
}

func (g *groupBuilder) addGroup(name string) *groupBuilder {
	child := newGroupBuilder()
	g.names = append(g.names, name)
	g.entries[name] = builderEntry{group: child}
	return child
}

func (g *groupBuilder) uniqueName(name string) string {
	if _, taken := g.entries[name]; !taken {
		return name
	}
	for i := 1; ; i++ {
		candidate := name + strconv.Itoa(i)
		if _, taken := g.entries[candidate]; !taken {
			return candidate
		}
	}
}

func (g *groupBuilder) build(name string, nrow int) *GroupColumn {
	out := &GroupColumn{
		name:    name,
		columns: make([]Column, 0, len(g.names)),
		index:   make(map[string]int, len(g.names)),
		nrow:    nrow,
	}
	for _, childName := range g.names {
		entry := g.entries[childName]
		var col Column
		if entry.group != nil {
			col = entry.group.build(childName, nrow)
		} else {
			col = entry.col
			if col.Name() != childName {
				col = col.withName(childName)
			}
		}
		out.index[childName] = len(out.columns)
		out.columns = append(out.columns, col)
	}
	return out
}
