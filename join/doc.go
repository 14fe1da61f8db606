// Package join combines two frames row by row.
//
// Key columns are found with ResolveKeys, either by intersecting top-level
// column names or from a selector built with selector.Match. Execute then
// runs one of six modes over the resolved keys:
//
//   - Inner, Left, Right and Full merge the columns of both sides. Only the
//     left key columns appear in the output; right non-key columns whose names
//     collide with left columns get a numeric suffix ("score" becomes "score1").
//   - Filter and Exclude keep the left frame's columns and return the left rows
//     that do, respectively do not, have a match.
//
// Output rows follow the left frame's order. Right and Full append the right
// rows that matched nothing at the end, in the right frame's order.
//
// Example usage:
//
//	out, err := join.LeftJoin(orders, customers, selector.Col("customer_id"))
//	if err != nil {
//		return err
//	}
package join
