package reader

import (
	"fmt"

	"github.com/parquet-go/parquet-go"

	"github.com/vegasq/parframe/frame"
	"github.com/vegasq/parframe/schema"
)

// ConvertSchema maps a parquet schema onto a column tree. Groups become
// column groups, repeated groups become frame columns and leaves become value
// columns. Repeated leaves hold lists and are typed schema.TypeAny.
func ConvertSchema(s *parquet.Schema) (*schema.Group, error) {
	children, err := convertFields(s.Fields())
	if err != nil {
		return nil, err
	}
	return schema.New(children...)
}

func convertFields(fields []parquet.Field) ([]schema.Node, error) {
	nodes := make([]schema.Node, 0, len(fields))
	for _, field := range fields {
		node, err := convertField(field)
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, node)
	}
	return nodes, nil
}

func convertField(field parquet.Field) (schema.Node, error) {
	if field.Leaf() {
		if field.Repeated() {
			return schema.NewLeaf(field.Name(), schema.TypeAny), nil
		}
		return schema.NewLeaf(field.Name(), valueTypeOf(field)), nil
	}

	children, err := convertFields(field.Fields())
	if err != nil {
		return nil, fmt.Errorf("field %q: %w", field.Name(), err)
	}
	if field.Repeated() {
		nested, err := schema.New(children...)
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", field.Name(), err)
		}
		return schema.NewFrameRef(field.Name(), nested), nil
	}
	return schema.NewGroup(field.Name(), children...)
}

// valueTypeOf derives the value type of a leaf from its logical type, falling
// back to the physical type.
func valueTypeOf(field parquet.Field) schema.ValueType {
	typ := field.Type()
	if typ == nil {
		return schema.TypeAny
	}
	if lt := typ.LogicalType(); lt != nil {
		switch {
		case lt.UTF8 != nil, lt.Enum != nil, lt.Json != nil:
			return schema.TypeString
		case lt.Date != nil:
			return schema.TypeDate
		case lt.Timestamp != nil:
			return schema.TypeTimestamp
		case lt.Decimal != nil, lt.UUID != nil, lt.Bson != nil:
			return schema.TypeBytes
		}
	}
	switch typ.Kind() {
	case parquet.Boolean:
		return schema.TypeBool
	case parquet.Int32:
		return schema.TypeInt32
	case parquet.Int64:
		return schema.TypeInt64
	case parquet.Float:
		return schema.TypeFloat32
	case parquet.Double:
		return schema.TypeFloat64
	case parquet.ByteArray, parquet.FixedLenByteArray:
		return schema.TypeBytes
	default:
		return schema.TypeAny
	}
}

// FrameFromRows builds a frame with the given structure from decoded rows.
// Groups are read from nested map[string]any values and frame columns from
// lists of such maps. Missing cells are null.
func FrameFromRows(g *schema.Group, rows []map[string]any) (*frame.Frame, error) {
	columns, err := columnsFromRows(g.Children(), rows)
	if err != nil {
		return nil, err
	}
	return frame.New(columns...)
}

func columnsFromRows(nodes []schema.Node, rows []map[string]any) ([]frame.Column, error) {
	columns := make([]frame.Column, 0, len(nodes))
	for _, node := range nodes {
		col, err := columnFromRows(node, rows)
		if err != nil {
			return nil, fmt.Errorf("column %q: %w", node.Name(), err)
		}
		columns = append(columns, col)
	}
	return columns, nil
}

func columnFromRows(node schema.Node, rows []map[string]any) (frame.Column, error) {
	name := node.Name()
	switch n := node.(type) {
	case *schema.Leaf:
		values := make([]any, len(rows))
		for i, row := range rows {
			values[i] = normalize(n.Type(), row[name])
		}
		return frame.NewValueColumn(name, n.Type(), values), nil

	case *schema.Group:
		nested := make([]map[string]any, len(rows))
		for i, row := range rows {
			m, err := asMap(row[name])
			if err != nil {
				return nil, err
			}
			nested[i] = m
		}
		children, err := columnsFromRows(n.Children(), nested)
		if err != nil {
			return nil, err
		}
		return frame.NewGroupColumn(name, children...)

	case *schema.FrameRef:
		frames := make([]*frame.Frame, len(rows))
		for i, row := range rows {
			items, err := asMaps(row[name])
			if err != nil {
				return nil, err
			}
			if frames[i], err = FrameFromRows(n.Nested(), items); err != nil {
				return nil, err
			}
		}
		return frame.NewFrameColumn(name, n.Nested(), frames), nil

	default:
		return nil, fmt.Errorf("unexpected schema node %T", node)
	}
}

func normalize(typ schema.ValueType, v any) any {
	if b, ok := v.([]byte); ok && typ == schema.TypeString {
		return string(b)
	}
	return v
}

func asMap(v any) (map[string]any, error) {
	switch v := v.(type) {
	case nil:
		return nil, nil
	case map[string]any:
		return v, nil
	default:
		return nil, fmt.Errorf("expected a group value, got %T", v)
	}
}

func asMaps(v any) ([]map[string]any, error) {
	switch v := v.(type) {
	case nil:
		return nil, nil
	case []map[string]any:
		return v, nil
	case []any:
		items := make([]map[string]any, len(v))
		for i, item := range v {
			m, err := asMap(item)
			if err != nil {
				return nil, err
			}
			items[i] = m
		}
		return items, nil
	default:
		return nil, fmt.Errorf("expected a list of group values, got %T", v)
	}
}
