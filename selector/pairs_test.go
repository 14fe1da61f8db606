package selector

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vegasq/parframe/schema"
)

func rightSchema() *schema.Group {
	return schema.Must(
		schema.NewLeaf("user_id", schema.TypeInt64),
		schema.NewLeaf("name", schema.TypeString),
		schema.MustGroup("address",
			schema.NewLeaf("city", schema.TypeString),
		),
	)
}

func pairStrings(pairs []Pair) []string {
	out := make([]string, len(pairs))
	for i, p := range pairs {
		out[i] = p.Left.Path.String() + "=" + p.Right.Path.String()
	}
	return out
}

func TestResolvePairs(t *testing.T) {
	tests := []struct {
		name string
		cols Columns
		want []string
	}{
		{
			name: "same name",
			cols: Col("name"),
			want: []string{"name=name"},
		},
		{
			name: "explicit match",
			cols: Match(Col("id"), Col("user_id")),
			want: []string{"id=user_id"},
		},
		{
			name: "match method and bare column",
			cols: Col("id").Match(Col("user_id")).And(ColPath("address", "city")),
			want: []string{"id=user_id", "address.city=address.city"},
		},
		{
			name: "match several columns element-wise",
			cols: Match(Cols("id", "name"), Cols("user_id", "name")),
			want: []string{"id=user_id", "name=name"},
		},
		{
			name: "nested and",
			cols: And(Col("name"), And(Match(Col("id"), Col("user_id")))),
			want: []string{"name=name", "id=user_id"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pairs, err := ResolvePairs(testSchema(), rightSchema(), tt.cols)
			require.NoError(t, err)
			assert.Equal(t, tt.want, pairStrings(pairs))
		})
	}
}

func TestResolvePairsAlwaysFails(t *testing.T) {
	tests := []struct {
		name string
		cols Columns
		side string
	}{
		{name: "missing on left", cols: Col("nope"), side: "left"},
		{name: "bare column missing on right", cols: Col("id"), side: "right"},
		{name: "match right missing", cols: Match(Col("id"), Col("id")), side: "right"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ResolvePairs(testSchema(), rightSchema(), tt.cols)
			require.Error(t, err)
			var resErr *ResolutionError
			require.True(t, errors.As(err, &resErr))
			assert.Equal(t, tt.side, resErr.Side)
		})
	}
}

func TestResolvePairsCountMismatch(t *testing.T) {
	_, err := ResolvePairs(testSchema(), rightSchema(), Match(Cols("id", "name"), Col("user_id")))
	assert.True(t, errors.Is(err, ErrInvalidArgument))
}
