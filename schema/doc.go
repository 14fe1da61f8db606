// Package schema describes the column structure of a frame as an immutable tree.
//
// A schema is an unnamed root Group whose children are Leaf value columns,
// nested Group columns, or FrameRef columns whose cells are themselves frames.
// Every node is reachable from the root by exactly one Path.
//
// # Building a Schema
//
//	root, err := schema.New(
//	    schema.NewLeaf("id", schema.TypeInt64),
//	    schema.MustGroup("address",
//	        schema.NewLeaf("city", schema.TypeString),
//	        schema.NewLeaf("zip", schema.TypeString),
//	    ),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// Child names must be unique within a group. Violations are reported when the
// group is built, never later during navigation.
//
// # Navigation
//
//	node, ok := root.Find(schema.Path{"address", "city"})
//	children, ok := root.ChildrenOf(schema.Path{"address"})
//	leaves := root.DescendantLeaves(nil)
//
// Lookups of unknown names report absence through the boolean result; callers
// decide whether that is an error.
package schema
