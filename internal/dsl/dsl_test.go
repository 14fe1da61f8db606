package dsl

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vegasq/parframe/schema"
	"github.com/vegasq/parframe/selector"
)

func TestTokenize(t *testing.T) {
	tokens := Tokenize(`address.take(-2) AND "a b"`)

	types := make([]TokenType, len(tokens))
	for i, tok := range tokens {
		types[i] = tok.Type
	}
	assert.Equal(t, []TokenType{
		TokenIdent, TokenDot, TokenIdent, TokenLParen, TokenNumber, TokenRParen,
		TokenAnd, TokenString, TokenEOF,
	}, types)
	assert.Equal(t, "-2", tokens[4].Value)
	assert.Equal(t, "a b", tokens[7].Value)
	assert.Equal(t, 21, tokens[7].Pos)
}

func TestTokenizeUnicode(t *testing.T) {
	tokens := Tokenize(`"straße" größe`)
	require.Len(t, tokens, 3)
	assert.Equal(t, "straße", tokens[0].Value)
	assert.Equal(t, TokenIdent, tokens[1].Type)
	assert.Equal(t, "größe", tokens[1].Value)
}

func TestParseRoundTrip(t *testing.T) {
	canonical := []string{
		`col("id")`,
		`col(2)`,
		`path("address", "city")`,
		`valueCol("id")`,
		`colGroup("address")`,
		`frameCol("orders")`,
		`all()`,
		`none()`,
		`(col("id") and col("name"))`,
		`all().except(col("tags")).take(3)`,
		`all().takeLast(1)`,
		`all().drop(1).dropLast(2)`,
		`all().colsAtAnyDepth()`,
		`all().colsAtAnyDepth(groups)`,
		`all().colsInGroups()`,
		`col("address").children()`,
		`col("address").select(col("city"))`,
		`col("address").named("addr")`,
		`all().valueCols().distinct().simplify()`,
		`all().colGroups()`,
		`all().frameCols()`,
		`all().colsOf("INT64")`,
		`all().nameStartsWith("na")`,
		`all().nameEndsWith("me")`,
		`all().nameContains("am")`,
		`all().nameMatches("^n.*e$")`,
		`match(col("id"), col("person"))`,
	}
	for _, s := range canonical {
		t.Run(s, func(t *testing.T) {
			cols, err := Parse(s)
			require.NoError(t, err)
			assert.Equal(t, s, cols.String())
		})
	}
}

func TestParseShorthands(t *testing.T) {
	tests := []struct {
		input string
		want  selector.Columns
	}{
		{`id`, selector.Col("id")},
		{`"first name"`, selector.Col("first name")},
		{`address.city`, selector.ColPath("address", "city")},
		{`cols("a", "b")`, selector.Cols("a", "b")},
		{`cols(0, 1)`, selector.ColsAt(0, 1)},
		{`id and name`, selector.Cols("id", "name")},
		{`id AND name`, selector.Cols("id", "name")},
		{`valueCols()`, selector.All().ValueCols()},
		{`nameContains("x")`, selector.NameContains("x")},
		{`allExcept(tags, id)`, selector.AllExcept(selector.Col("tags"), selector.Col("id"))},
		{`address.colsAtAnyDepth()`, selector.Col("address").ColsAtAnyDepth()},
		{`address.col(city)`, selector.Col("address").Col("city")},
		{`address.into("a")`, selector.Col("address").Named("a")},
		{`all().except(id and name)`, selector.All().Except(selector.Cols("id", "name"))},
		{`id.match(person)`, selector.Col("id").Match(selector.Col("person"))},
		{`all().and(col(0))`, selector.All().And(selector.ColIndex(0))},
		{`all().allColsExcept(id)`, selector.All().AllColsExcept(selector.Col("id"))},
		{`colsOf("int64")`, selector.All().ColsOf(schema.TypeInt64)},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			cols, err := Parse(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want.String(), cols.String())
		})
	}
}

func TestParseErrors(t *testing.T) {
	inputs := []string{
		``,
		`   `,
		`col(`,
		`col("a"`,
		`"unterminated`,
		`col("a") col("b")`,
		`all().take("x")`,
		`all().take()`,
		`all().foo`,
		`all().foo()`,
		`unknown(1)`,
		`all(1)`,
		`path(1)`,
		`match(a)`,
		`all().colsAtAnyDepth(everything)`,
		`all().nameMatches("(")`,
		`#`,
		`-`,
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

func TestParseDepthLimit(t *testing.T) {
	input := ""
	for i := 0; i < maxDepth+1; i++ {
		input += "("
	}
	input += "id"
	for i := 0; i < maxDepth+1; i++ {
		input += ")"
	}
	_, err := Parse(input)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nested too deeply")
}

func TestParsedSelectorResolves(t *testing.T) {
	root := schema.Must(
		schema.NewLeaf("id", schema.TypeInt64),
		schema.MustGroup("address",
			schema.NewLeaf("city", schema.TypeString),
			schema.NewLeaf("zip", schema.TypeString),
		),
		schema.NewLeaf("name", schema.TypeString),
	)

	cols, err := Parse(`id and address.colsAtAnyDepth().except(address.zip) and nameEndsWith("me")`)
	require.NoError(t, err)

	resolved, err := selector.Resolve(root, cols, selector.Fail)
	require.NoError(t, err)

	var paths []string
	for _, c := range resolved {
		paths = append(paths, c.Path.String())
	}
	assert.Equal(t, []string{"id", "address.city", "name"}, paths)
}

func TestMustParse(t *testing.T) {
	assert.Equal(t, `col("id")`, MustParse("id").String())
	assert.Panics(t, func() { MustParse("col(") })
}
