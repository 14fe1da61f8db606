package join

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/vegasq/parframe/frame"
)

// keyColumns holds the value columns of one side's join keys.
type keyColumns []*frame.ValueColumn

// encode renders the key tuple of row i as a string. Two tuples encode to the
// same string exactly when their values are equal: numbers compare by value
// across widths, integral floats equal the matching integer, and null equals
// null.
func (k keyColumns) encode(i int, sb *strings.Builder) string {
	sb.Reset()
	for _, col := range k {
		encodeValue(sb, col.ValueAt(i))
		sb.WriteByte(0)
	}
	return sb.String()
}

func encodeValue(sb *strings.Builder, v any) {
	switch v := v.(type) {
	case nil:
		sb.WriteByte('n')
	case bool:
		if v {
			sb.WriteString("b1")
		} else {
			sb.WriteString("b0")
		}
	case int:
		writeInt(sb, int64(v))
	case int8:
		writeInt(sb, int64(v))
	case int16:
		writeInt(sb, int64(v))
	case int32:
		writeInt(sb, int64(v))
	case int64:
		writeInt(sb, v)
	case uint:
		writeUint(sb, uint64(v))
	case uint8:
		writeInt(sb, int64(v))
	case uint16:
		writeInt(sb, int64(v))
	case uint32:
		writeInt(sb, int64(v))
	case uint64:
		writeUint(sb, v)
	case float32:
		writeFloat(sb, float64(v))
	case float64:
		writeFloat(sb, v)
	case string:
		sb.WriteByte('s')
		sb.WriteString(strconv.Itoa(len(v)))
		sb.WriteByte(':')
		sb.WriteString(v)
	case []byte:
		sb.WriteByte('s')
		sb.WriteString(strconv.Itoa(len(v)))
		sb.WriteByte(':')
		sb.Write(v)
	case time.Time:
		sb.WriteByte('t')
		sb.WriteString(strconv.FormatInt(v.UnixNano(), 10))
	default:
		s := fmt.Sprintf("%T:%v", v, v)
		sb.WriteByte('x')
		sb.WriteString(strconv.Itoa(len(s)))
		sb.WriteByte(':')
		sb.WriteString(s)
	}
}

func writeInt(sb *strings.Builder, v int64) {
	sb.WriteByte('i')
	sb.WriteString(strconv.FormatInt(v, 10))
}

func writeUint(sb *strings.Builder, v uint64) {
	if v <= math.MaxInt64 {
		writeInt(sb, int64(v))
		return
	}
	sb.WriteByte('i')
	sb.WriteString(strconv.FormatUint(v, 10))
}

func writeFloat(sb *strings.Builder, v float64) {
	if v == math.Trunc(v) && v >= math.MinInt64 && v < math.MaxInt64 {
		writeInt(sb, int64(v))
		return
	}
	sb.WriteByte('f')
	sb.WriteString(strconv.FormatFloat(v, 'g', -1, 64))
}
