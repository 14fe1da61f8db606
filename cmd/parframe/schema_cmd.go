package main

import (
	"fmt"
	"path/filepath"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/vegasq/parframe/frame"
	"github.com/vegasq/parframe/reader"
	"github.com/vegasq/parframe/schema"
)

func newSchemaCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "schema <file.parquet>",
		Short: "Print the column tree of a Parquet file",
		Long: "Print every column of a Parquet file, groups included, depth-first.\n" +
			"For a glob pattern the first matching file is described.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := firstMatch(args[0])
			if err != nil {
				return err
			}
			log.Debugf("describing %s", path)

			infos, err := reader.ExtractSchemaInfo(path)
			if err != nil {
				return err
			}
			return opts.write(cmd, schemaFrame(infos), 0)
		},
	}
}

func firstMatch(pattern string) (string, error) {
	if !strings.ContainsAny(pattern, "*?[") {
		return pattern, nil
	}
	matches, err := filepath.Glob(pattern)
	if err != nil {
		return "", fmt.Errorf("invalid glob pattern: %w", err)
	}
	if len(matches) == 0 {
		return "", fmt.Errorf("no files match pattern: %s", pattern)
	}
	return matches[0], nil
}

// schemaFrame turns schema infos into a frame with one row per column.
func schemaFrame(infos []reader.SchemaInfo) *frame.Frame {
	n := len(infos)
	var (
		paths     = make([]any, n)
		kinds     = make([]any, n)
		types     = make([]any, n)
		physicals = make([]any, n)
		logicals  = make([]any, n)
		optionals = make([]any, n)
		repeateds = make([]any, n)
	)
	for i, info := range infos {
		paths[i] = info.Path
		kinds[i] = info.Kind
		types[i] = nullIfEmpty(string(info.Type))
		physicals[i] = nullIfEmpty(info.PhysicalType)
		logicals[i] = nullIfEmpty(info.LogicalType)
		optionals[i] = info.Optional
		repeateds[i] = info.Repeated
	}
	return frame.MustNew(
		frame.NewValueColumn("path", schema.TypeString, paths),
		frame.NewValueColumn("kind", schema.TypeString, kinds),
		frame.NewValueColumn("type", schema.TypeString, types),
		frame.NewValueColumn("physical_type", schema.TypeString, physicals),
		frame.NewValueColumn("logical_type", schema.TypeString, logicals),
		frame.NewValueColumn("optional", schema.TypeBool, optionals),
		frame.NewValueColumn("repeated", schema.TypeBool, repeateds),
	)
}

func nullIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}
