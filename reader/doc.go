// Package reader loads Apache Parquet files into frames.
//
// The parquet schema is mapped onto a column tree: nested groups become
// column groups, repeated groups become frame columns (one nested frame per
// row) and leaf columns become value columns typed from their logical or
// physical parquet type.
//
// # Basic Usage
//
// Reading a single parquet file:
//
//	f, err := reader.ReadFile("data.parquet")
//	if err != nil {
//	    return err
//	}
//	fmt.Println(f.ColumnNames())
//
// # Multi-file Operations
//
// Reading every file matching a glob pattern into one frame:
//
//	f, err := reader.ReadFrames("data/*.parquet")
//	if err != nil {
//	    return err
//	}
//
// Each row then carries a "_file" column with its source file path. All files
// must share one schema.
//
// # Schema Introspection
//
//	infos, err := reader.ExtractSchemaInfo("data.parquet")
//	if err != nil {
//	    return err
//	}
//	for _, info := range infos {
//	    fmt.Printf("%s: %s %s\n", info.Path, info.Kind, info.Type)
//	}
//
// The package uses github.com/parquet-go/parquet-go for the underlying
// parquet file operations.
package reader
