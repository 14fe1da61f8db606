// Package frame holds tabular data in memory as an immutable tree of columns.
//
// A Frame is an ordered set of columns of equal length. Columns are value
// columns (one cell per row), column groups (a named set of nested columns)
// or frame columns (one nested frame per row). The shape of a frame is
// described by its schema.Group, available through Schema.
//
// Frames are never modified in place. Select, Gather and the join package
// return new frames that share unchanged column storage with their inputs,
// so a frame may be read from several goroutines without locking.
//
//	f, err := frame.New(
//	    frame.NewValueColumn("id", schema.TypeInt64, []any{int64(1), int64(2)}),
//	    frame.NewValueColumn("name", schema.TypeString, []any{"A", "B"}),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	names, err := f.Select(selector.Col("name"))
//
// A nil cell is null.
package frame
