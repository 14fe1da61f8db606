package output

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vegasq/parframe/frame"
	"github.com/vegasq/parframe/schema"
)

func sample(t *testing.T) *frame.Frame {
	t.Helper()
	orders := frame.MustNew(frame.NewValueColumn("item", schema.TypeString, []any{"pen"}))
	f, err := frame.New(
		frame.NewValueColumn("name", schema.TypeString, []any{"Alice", "=SUM(A1)"}),
		frame.NewValueColumn("age", schema.TypeInt64, []any{int64(30), nil}),
		frame.MustGroupColumn("address",
			frame.NewValueColumn("city", schema.TypeString, []any{"Oslo", "Rome"}),
		),
		frame.NewFrameColumn("orders", orders.Schema(), []*frame.Frame{orders, nil}),
	)
	require.NoError(t, err)
	return f
}

func TestJSONFormatter(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewJSONFormatter(&buf).Format(sample(t)))

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, `{"name":"Alice","age":30,"address":{"city":"Oslo"},"orders":[{"item":"pen"}]}`, lines[0])
	assert.Equal(t, `{"name":"=SUM(A1)","age":null,"address":{"city":"Rome"},"orders":null}`, lines[1])
}

func TestJSONFormatterEmptyFrame(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewJSONFormatter(&buf).Format(frame.MustNew()))
	assert.Empty(t, buf.String())
}

func TestCSVFormatter(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewCSVFormatter(&buf).Format(sample(t)))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	assert.Equal(t, [][]string{
		{"name", "age", "address.city", "orders"},
		{"Alice", "30", "Oslo", `[{"item":"pen"}]`},
		{"'=SUM(A1)", "", "Rome", ""},
	}, records)
}

func TestFormatValue(t *testing.T) {
	tests := []struct {
		in   any
		want string
	}{
		{nil, ""},
		{"plain", "plain"},
		{int32(-4), "-4"},
		{uint8(7), "7"},
		{2.5, "2.5"},
		{float32(1.5), "1.5"},
		{true, "true"},
		{[]byte("raw"), "raw"},
		{map[string]any{"a": int64(1)}, `{"a":1}`},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, formatValue(tt.in))
	}
}

func TestSanitize(t *testing.T) {
	for _, s := range []string{"=1+1", "+1", "-1", "@x", "|cmd"} {
		assert.True(t, strings.HasPrefix(sanitize(s), "'"), s)
	}
	assert.Equal(t, "'=a''b", sanitize("=a'b"))
	assert.Equal(t, "safe", sanitize("safe"))
	assert.Equal(t, "", sanitize(""))
}

func TestTableFormatter(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewTableFormatter(&buf).Format(sample(t)))

	out := buf.String()
	for _, want := range []string{"address.city", "Alice", "Oslo", "Rome", "null", "(2 rows)"} {
		assert.Contains(t, out, want)
	}
}

func TestNewFormatter(t *testing.T) {
	var buf bytes.Buffer
	tests := map[string]any{
		"jsonl": &JSONFormatter{},
		"json":  &JSONFormatter{},
		"CSV":   &CSVFormatter{},
		"table": &TableFormatter{},
	}
	for name, want := range tests {
		f, err := NewFormatter(name, &buf)
		require.NoError(t, err, name)
		assert.IsType(t, want, f, name)
	}

	_, err := NewFormatter("xml", &buf)
	assert.Error(t, err)
}

func TestSetOutput(t *testing.T) {
	var first, second bytes.Buffer
	f := frame.MustNew(frame.NewValueColumn("x", schema.TypeInt64, []any{int64(1)}))

	formatter := NewJSONFormatter(&first)
	formatter.SetOutput(&second)
	require.NoError(t, formatter.Format(f))

	assert.Empty(t, first.String())
	assert.Equal(t, "{\"x\":1}\n", second.String())
}
