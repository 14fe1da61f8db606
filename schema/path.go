package schema

import "strings"

// Path identifies a node by the sequence of names leading to it from the root.
// Segments are case-sensitive.
type Path []string

// Name returns the last segment of the path, or "" for the root path.
func (p Path) Name() string {
	if len(p) == 0 {
		return ""
	}
	return p[len(p)-1]
}

// Parent returns the path without its last segment.
func (p Path) Parent() Path {
	if len(p) == 0 {
		return nil
	}
	return p[:len(p)-1]
}

// Child returns a new path extended by name. The receiver is not modified.
func (p Path) Child(name string) Path {
	child := make(Path, len(p)+1)
	copy(child, p)
	child[len(p)] = name
	return child
}

// Join returns a new path with other appended to p.
func (p Path) Join(other Path) Path {
	joined := make(Path, 0, len(p)+len(other))
	joined = append(joined, p...)
	return append(joined, other...)
}

// Equal reports whether both paths have the same segments in the same order.
func (p Path) Equal(other Path) bool {
	if len(p) != len(other) {
		return false
	}
	for i := range p {
		if p[i] != other[i] {
			return false
		}
	}
	return true
}

// HasPrefix reports whether prefix is an ancestor of p or equal to it.
func (p Path) HasPrefix(prefix Path) bool {
	if len(prefix) > len(p) {
		return false
	}
	return p[:len(prefix)].Equal(prefix)
}

// IsStrictAncestorOf reports whether p lies strictly above other in the tree.
func (p Path) IsStrictAncestorOf(other Path) bool {
	return len(p) < len(other) && other.HasPrefix(p)
}

// Key returns a string usable as a map key. Distinct paths yield distinct keys.
func (p Path) Key() string {
	return strings.Join(p, "\x00")
}

// String renders the path with dot notation, e.g. "address.city".
func (p Path) String() string {
	return strings.Join(p, ".")
}

// ParsePath splits a dot-notation string into a Path.
func ParsePath(s string) Path {
	if s == "" {
		return nil
	}
	return Path(strings.Split(s, "."))
}
