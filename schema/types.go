package schema

// ValueType names the type of the values held by a Leaf column.
type ValueType string

const (
	TypeBool      ValueType = "BOOLEAN"
	TypeInt32     ValueType = "INT32"
	TypeInt64     ValueType = "INT64"
	TypeFloat32   ValueType = "FLOAT32"
	TypeFloat64   ValueType = "FLOAT64"
	TypeString    ValueType = "STRING"
	TypeBytes     ValueType = "BYTE_ARRAY"
	TypeTimestamp ValueType = "TIMESTAMP"
	TypeDate      ValueType = "DATE"
	// TypeAny is used when the value type is unknown or mixed. It compares
	// with every other type.
	TypeAny ValueType = "ANY"
)

// IsNumeric reports whether values of t are numbers.
func (t ValueType) IsNumeric() bool {
	switch t {
	case TypeInt32, TypeInt64, TypeFloat32, TypeFloat64:
		return true
	}
	return false
}

// ComparableWith reports whether values of t and other can be tested for
// equality, as required for join keys.
func (t ValueType) ComparableWith(other ValueType) bool {
	if t == TypeAny || other == TypeAny || t == other {
		return true
	}
	if t.IsNumeric() && other.IsNumeric() {
		return true
	}
	temporal := func(v ValueType) bool { return v == TypeTimestamp || v == TypeDate }
	return temporal(t) && temporal(other)
}

func (t ValueType) String() string {
	return string(t)
}
