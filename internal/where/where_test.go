package where

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vegasq/parframe/frame"
	"github.com/vegasq/parframe/join"
	"github.com/vegasq/parframe/schema"
)

func people() *frame.Frame {
	return frame.MustNew(
		frame.NewValueColumn("id", schema.TypeInt64, []any{int64(1), int64(2), int64(3), int64(4)}),
		frame.NewValueColumn("name", schema.TypeString, []any{"Alice", "Bob", "Carol", nil}),
		frame.NewValueColumn("score", schema.TypeFloat64, []any{9.5, 7.0, nil, 3.0}),
		frame.NewValueColumn("active", schema.TypeBool, []any{true, false, true, false}),
		frame.MustGroupColumn("address",
			frame.NewValueColumn("city", schema.TypeString, []any{"Oslo", "Bergen", "Oslo", nil}),
		),
	)
}

func ids(t *testing.T, f *frame.Frame) []any {
	t.Helper()
	out := make([]any, f.NumRows())
	for i := range out {
		out[i] = f.Row(i).Get("id")
	}
	return out
}

func TestTokenize(t *testing.T) {
	tokens := Tokenize("address.city <> 'Oslo' AND score >= -1.5 or `first name` IS NOT null")

	types := make([]TokenType, len(tokens))
	for i, tok := range tokens {
		types[i] = tok.Type
	}
	assert.Equal(t, []TokenType{
		TokenIdent, TokenNotEqual, TokenString, TokenAnd,
		TokenIdent, TokenGreaterEqual, TokenNumber, TokenOr,
		TokenQuotedIdent, TokenIs, TokenNot, TokenNull, TokenEOF,
	}, types)
	assert.Equal(t, "address.city", tokens[0].Value)
	assert.Equal(t, "-1.5", tokens[6].Value)
	assert.Equal(t, "first name", tokens[8].Value)
	assert.Equal(t, 13, tokens[1].Pos)
}

func TestTokenizeStopsAtError(t *testing.T) {
	tokens := Tokenize("a = 1 # b")
	last := tokens[len(tokens)-1]
	assert.Equal(t, TokenError, last.Type)
	assert.Equal(t, "#", last.Value)
}

func TestParseString(t *testing.T) {
	tests := map[string]string{
		"a = 1":                      "a = 1",
		"a == 'x'":                   `a = "x"`,
		"a = 1 and b = 2 or c = 3":   "((a = 1 and b = 2) or c = 3)",
		"a = 1 and (b = 2 or c = 3)": "(a = 1 and (b = 2 or c = 3))",
		"not a = 1":                  "not a = 1",
		"a is null":                  "a is null",
		"a IS NOT NULL":              "a is not null",
		"left.id = right.person":     "left.id = right.person",
		"`first name` != null":       "`first name` != null",
		"flag = TRUE":                "flag = true",
		"x < 2.5":                    "x < 2.5",
	}
	for input, want := range tests {
		t.Run(input, func(t *testing.T) {
			expr, err := Parse(input)
			require.NoError(t, err)
			assert.Equal(t, want, expr.String())
		})
	}
}

func TestParseErrors(t *testing.T) {
	inputs := []string{
		"",
		"a",
		"a =",
		"a = 'open",
		"= 1",
		"(a = 1",
		"a = 1)",
		"a is 1",
		"a = 1 b = 2",
		"a. = 1",
		"a ! 1",
		"a = 1.2.3",
	}
	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			_, err := Parse(input)
			require.Error(t, err)
			var se *SyntaxError
			assert.True(t, errors.As(err, &se), "got %v", err)
		})
	}
}

func TestParseLimits(t *testing.T) {
	tests := []struct {
		name string
		cond string
		want error
		max  int
	}{
		{
			name: "nesting",
			cond: strings.Repeat("(", MaxExpressionDepth+1) + "a = 1" + strings.Repeat(")", MaxExpressionDepth+1),
			want: ErrExpressionTooDeep,
			max:  MaxExpressionDepth,
		},
		{
			name: "tokens",
			cond: strings.Repeat("a = 1 and ", MaxTokens/4) + "a = 1",
			want: ErrTooManyTokens,
			max:  MaxTokens,
		},
		{
			name: "column name",
			cond: strings.Repeat("x", MaxColumnNameLength+1) + " = 1",
			want: ErrColumnNameTooLong,
			max:  MaxColumnNameLength,
		},
		{
			name: "quoted column name",
			cond: "`" + strings.Repeat("x", MaxColumnNameLength+1) + "` = 1",
			want: ErrColumnNameTooLong,
			max:  MaxColumnNameLength,
		},
		{
			name: "condition length",
			cond: strings.Repeat(" ", MaxConditionLength+1),
			want: ErrConditionTooLong,
			max:  MaxConditionLength,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.cond)
			require.ErrorIs(t, err, tt.want)
			var limitErr *LimitError
			require.ErrorAs(t, err, &limitErr)
			assert.Equal(t, tt.max, limitErr.Max)
			assert.Greater(t, limitErr.Got, limitErr.Max)
		})
	}
}

func TestParseAtNestingLimit(t *testing.T) {
	// The condition itself is one level and each parenthesis adds another.
	depth := MaxExpressionDepth - 1
	_, err := Parse(strings.Repeat("(", depth) + "a = 1" + strings.Repeat(")", depth))
	require.NoError(t, err)
}

func TestFilter(t *testing.T) {
	f := people()

	tests := []struct {
		cond string
		want []any
	}{
		{"score > 5", []any{int64(1), int64(2)}},
		{"score >= 7 and active = true", []any{int64(1)}},
		{"address.city = 'Oslo'", []any{int64(1), int64(3)}},
		{"name < 'C'", []any{int64(1), int64(2)}},
		{"score is null or name is null", []any{int64(3), int64(4)}},
		{"not (id = 1 or id = 2)", []any{int64(3), int64(4)}},
		{"id != 2", []any{int64(1), int64(3), int64(4)}},
		{"score = null", []any{int64(3)}},
		{"score <> null", []any{int64(1), int64(2), int64(4)}},
		{"score < null", []any{}},
		{"id = 2.0", []any{int64(2)}},
		{"missing = 1", []any{}},
		{"missing is null", []any{int64(1), int64(2), int64(3), int64(4)}},
		{"score > id", []any{int64(1), int64(2)}},
	}
	for _, tt := range tests {
		t.Run(tt.cond, func(t *testing.T) {
			expr, err := Parse(tt.cond)
			require.NoError(t, err)
			filtered, err := Filter(f, expr)
			require.NoError(t, err)
			assert.Equal(t, tt.want, ids(t, filtered))
			assert.Equal(t, f.ColumnNames(), filtered.ColumnNames())
		})
	}

	same, err := Filter(f, nil)
	require.NoError(t, err)
	assert.Same(t, f, same)
}

func TestFilterTypeErrors(t *testing.T) {
	for _, cond := range []string{"name > 1", "active > false"} {
		expr, err := Parse(cond)
		require.NoError(t, err)
		_, err = Filter(people(), expr)
		assert.Error(t, err, cond)
	}

	// The right side is not evaluated once the left decides.
	expr, err := Parse("id = 0 and name > 1")
	require.NoError(t, err)
	filtered, err := Filter(people(), expr)
	require.NoError(t, err)
	assert.Equal(t, 0, filtered.NumRows())
}

func TestFilterTimestamps(t *testing.T) {
	f := frame.MustNew(
		frame.NewValueColumn("id", schema.TypeInt64, []any{int64(1), int64(2)}),
		frame.NewValueColumn("at", schema.TypeTimestamp, []any{
			time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
			time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		}),
	)
	expr, err := Parse("at >= '2024-06-01T00:00:00Z'")
	require.NoError(t, err)

	filtered, err := Filter(f, expr)
	require.NoError(t, err)
	assert.Equal(t, []any{int64(2)}, ids(t, filtered))
}

func TestJoin(t *testing.T) {
	scores := frame.MustNew(
		frame.NewValueColumn("person", schema.TypeInt64, []any{int64(2), int64(3), int64(9)}),
		frame.NewValueColumn("score", schema.TypeFloat64, []any{90.0, 40.0, 70.0}),
	)
	expr, err := Parse("left.id = right.person and right.score > 50")
	require.NoError(t, err)

	joined, err := Join(people(), scores, join.Inner, expr)
	require.NoError(t, err)
	require.Equal(t, 1, joined.NumRows())
	assert.Equal(t, int64(2), joined.Row(0).Get("id"))
	assert.Equal(t, int64(2), joined.Row(0).Get("person"))
	assert.Equal(t, 90.0, joined.Row(0).Get("score1"))

	excluded, err := Join(people(), scores, join.Exclude, expr)
	require.NoError(t, err)
	assert.Equal(t, []any{int64(1), int64(3), int64(4)}, ids(t, excluded))

	unqualified, err := Parse("id = person")
	require.NoError(t, err)
	filtered, err := Join(people(), scores, join.Filter, unqualified)
	require.NoError(t, err)
	assert.Equal(t, []any{int64(2), int64(3)}, ids(t, filtered))
}

func TestJoinEvaluationError(t *testing.T) {
	scores := frame.MustNew(
		frame.NewValueColumn("person", schema.TypeString, []any{"2"}),
	)
	expr, err := Parse("left.id < right.person")
	require.NoError(t, err)

	_, err = Join(people(), scores, join.Left, expr)
	assert.Error(t, err)
}

func TestPairEnvSides(t *testing.T) {
	l := frame.MustNew(frame.NewValueColumn("left", schema.TypeString, []any{"column named left"}))
	r := frame.MustNew(frame.NewValueColumn("x", schema.TypeInt64, []any{int64(7)}))
	env := PairEnv{Left: l.Row(0), Right: r.Row(0)}

	v, ok := env.Lookup(schema.ParsePath("left"))
	assert.True(t, ok)
	assert.Equal(t, "column named left", v)

	v, ok = env.Lookup(schema.ParsePath("right.x"))
	assert.True(t, ok)
	assert.Equal(t, int64(7), v)

	v, ok = env.Lookup(schema.ParsePath("x"))
	assert.True(t, ok)
	assert.Equal(t, int64(7), v)

	_, ok = env.Lookup(schema.ParsePath("left.x"))
	assert.False(t, ok)
}
