// Package selector turns declarative column selections into concrete,
// ordered lists of columns of a schema.
//
// A selection is built once with the combinators of this package and then
// resolved against exactly one scope. Nothing is evaluated while building.
//
// # Building selections
//
//	sel := selector.Cols("id", "name").
//	    And(selector.Col("address").ColsAtAnyDepth()).
//	    Except(selector.ColPath("address", "zip"))
//
// Atomic lookups (Col, ColPath, ColIndex, ValueCol, ...) resolve relative to
// the current scope, which is the schema root unless the lookup sits inside
// Select. Predicates (NameContains, Filter, ColsOf, ...) keep the order of
// their operand. Set algebra never reorders: And concatenates without
// removing duplicates, Except removes by path identity.
//
// # Resolving
//
//	cols, err := selector.Resolve(root, sel, selector.Fail)
//
// Under Fail a lookup that matches nothing returns a *ResolutionError. Under
// Skip such lookups contribute nothing. A lookup that finds a node of the
// wrong kind, or an out of range index, fails under either policy.
//
// # Join keys
//
// ResolvePairs evaluates a selection against two schemas. Match pairs a
// left column with a right column; any other selection is paired with the
// right column at the same path.
package selector
