// Package output writes frames in text formats.
//
// # Supported Formats
//
//   - JSON Lines: one JSON object per row, keys in column order, nested
//     groups as objects and frame cells as arrays of objects
//   - CSV: a header row of dot paths followed by one record per row
//   - Table: an aligned text table for terminals
//
// # Basic Usage
//
//	formatter, err := output.NewFormatter("csv", os.Stdout)
//	if err != nil {
//	    return err
//	}
//	if err := formatter.Format(f); err != nil {
//	    return err
//	}
//
// CSV and table output flatten nested groups: a column city inside a group
// address is headed "address.city". Frame cells are rendered as JSON. CSV
// values starting with a formula character are prefixed with a quote.
package output
