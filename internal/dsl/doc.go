// Package dsl parses the textual form of column selectors.
//
// The syntax mirrors the selector package: functions start a selection,
// methods refine it and "and" concatenates selections.
//
//	id                                  column "id"
//	address.city                        column at a path
//	"first name"                        quoted column name
//	col(0)                              first column
//	cols("id", "name")                  several columns
//	all().except(tags).take(3)
//	address.colsAtAnyDepth(groups)      columns below a group, groups included
//	colsOf("INT64") and nameStartsWith("x")
//	match(id, person_id)                join key pairing different names
//
// Functions that are not constructors, such as valueCols() or
// nameContains("x"), apply to all(). Selections print back in this syntax
// through their String method.
package dsl
