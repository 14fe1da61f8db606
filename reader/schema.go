package reader

import (
	"fmt"

	"github.com/parquet-go/parquet-go"

	"github.com/vegasq/parframe/schema"
)

// SchemaInfo describes one column of a parquet file.
type SchemaInfo struct {
	Path         string           `json:"path"`
	Kind         string           `json:"kind"`
	Type         schema.ValueType `json:"type,omitempty"`
	PhysicalType string           `json:"physical_type,omitempty"`
	LogicalType  string           `json:"logical_type,omitempty"`
	Optional     bool             `json:"optional"`
	Repeated     bool             `json:"repeated"`
}

// ExtractSchemaInfo lists every column of the parquet file at path, groups
// included, depth-first. Paths use dot notation (e.g. "address.city"); the
// fields of a repeated group are listed below it.
func ExtractSchemaInfo(path string) ([]SchemaInfo, error) {
	r, err := NewReader(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open parquet file: %w", err)
	}
	defer func() { _ = r.Close() }()

	var infos []SchemaInfo
	for _, field := range r.Schema().Fields() {
		infos = appendFieldInfo(infos, field, nil)
	}
	return infos, nil
}

func appendFieldInfo(infos []SchemaInfo, field parquet.Field, parent schema.Path) []SchemaInfo {
	path := parent.Child(field.Name())
	info := SchemaInfo{
		Path:     path.String(),
		Optional: field.Optional(),
		Repeated: field.Repeated(),
	}

	if !field.Leaf() {
		info.Kind = schema.KindGroup.String()
		if field.Repeated() {
			info.Kind = schema.KindFrame.String()
		}
		infos = append(infos, info)
		for _, child := range field.Fields() {
			infos = appendFieldInfo(infos, child, path)
		}
		return infos
	}

	info.Kind = schema.KindValue.String()
	info.Type = valueTypeOf(field)
	if field.Repeated() {
		info.Type = schema.TypeAny
	}
	info.PhysicalType = physicalType(field)
	info.LogicalType = logicalType(field)
	return append(infos, info)
}

func physicalType(field parquet.Field) string {
	if field.Type() == nil {
		return ""
	}
	switch field.Type().Kind() {
	case parquet.Boolean:
		return "BOOLEAN"
	case parquet.Int32:
		return "INT32"
	case parquet.Int64:
		return "INT64"
	case parquet.Int96:
		return "INT96"
	case parquet.Float:
		return "FLOAT"
	case parquet.Double:
		return "DOUBLE"
	case parquet.ByteArray:
		return "BYTE_ARRAY"
	case parquet.FixedLenByteArray:
		return "FIXED_LEN_BYTE_ARRAY"
	default:
		return "UNKNOWN"
	}
}

func logicalType(field parquet.Field) string {
	if field.Type() == nil {
		return ""
	}
	lt := field.Type().LogicalType()
	if lt == nil {
		return ""
	}
	return lt.String()
}
