package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPathHelpers(t *testing.T) {
	p := Path{"a", "b", "c"}

	assert.Equal(t, "c", p.Name())
	assert.Equal(t, Path{"a", "b"}, p.Parent())
	assert.Equal(t, "a.b.c", p.String())
	assert.True(t, p.HasPrefix(Path{"a", "b"}))
	assert.True(t, p.HasPrefix(p))
	assert.False(t, p.HasPrefix(Path{"b"}))
	assert.True(t, Path{"a"}.IsStrictAncestorOf(p))
	assert.False(t, p.IsStrictAncestorOf(p))
	assert.Equal(t, Path{"a", "b"}, ParsePath("a.b"))
	assert.Nil(t, ParsePath(""))
}

func TestPathChildDoesNotAlias(t *testing.T) {
	base := make(Path, 1, 4)
	base[0] = "root"

	x := base.Child("x")
	y := base.Child("y")

	assert.Equal(t, Path{"root", "x"}, x)
	assert.Equal(t, Path{"root", "y"}, y)
}

func TestPathKeyDistinguishesSegments(t *testing.T) {
	assert.NotEqual(t, Path{"a.b"}.Key(), Path{"a", "b"}.Key())
	assert.Equal(t, Path{"a", "b"}.Key(), Path{"a", "b"}.Key())
}
