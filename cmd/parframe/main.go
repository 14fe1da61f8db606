// Command parframe reads Parquet files as column trees, selects columns with
// a small selector language and joins files on key columns.
package main

import (
	"fmt"
	"os"
)

func main() {
	os.Exit(execute())
}

func execute() int {
	root := newRootCmd()
	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}
