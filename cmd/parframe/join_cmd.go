package main

import (
	"fmt"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/vegasq/parframe/frame"
	"github.com/vegasq/parframe/internal/dsl"
	"github.com/vegasq/parframe/internal/where"
	"github.com/vegasq/parframe/join"
	"github.com/vegasq/parframe/reader"
	"github.com/vegasq/parframe/selector"
)

func newJoinCmd(opts *options) *cobra.Command {
	var (
		on        []string
		condition string
		output    string
	)

	cmd := &cobra.Command{
		Use:   "join <left.parquet|glob> <right.parquet|glob>",
		Short: "Join two Parquet inputs on key columns",
		Long: "Join two inputs by key equality. Without --on the keys are the top-level\n" +
			"columns both sides share. --where joins on a row condition instead, where\n" +
			"left.<path> and right.<path> name the columns of each side.\n\n" +
			"Modes: inner, left, right, full, filter, exclude.\n\n" +
			"Examples:\n" +
			"  parframe join people.parquet scores.parquet\n" +
			"  parframe join people.parquet scores.parquet --mode full --on id\n" +
			"  parframe join a.parquet b.parquet --on 'match(id, person)' --select 'name and score'\n" +
			"  parframe join a.parquet b.parquet --where 'left.id = right.person and right.score > 50'",
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			modeName, err := stringFlag(cmd, "mode", opts.cfg.JoinMode)
			if err != nil {
				return err
			}
			mode, err := join.ParseMode(modeName)
			if err != nil {
				return err
			}
			limit, err := intFlag(cmd, "limit", opts.cfg.Limit)
			if err != nil {
				return err
			}

			if condition != "" && len(on) > 0 {
				return fmt.Errorf("--on and --where cannot be used together")
			}
			var cond where.Expression
			if condition != "" {
				if cond, err = where.Parse(condition); err != nil {
					return err
				}
			}

			keys := make([]selector.Columns, 0, len(on))
			for _, expr := range on {
				cols, err := dsl.Parse(expr)
				if err != nil {
					return err
				}
				keys = append(keys, cols)
			}

			var projection *selector.Columns
			if output != "" {
				cols, err := dsl.Parse(output)
				if err != nil {
					return err
				}
				projection = &cols
			}

			left, err := reader.ReadFrames(args[0])
			if err != nil {
				return err
			}
			right, err := reader.ReadFrames(args[1])
			if err != nil {
				return err
			}
			log.Debugf("%s join of %d and %d rows", mode, left.NumRows(), right.NumRows())

			var joined *frame.Frame
			if cond != nil {
				joined, err = where.Join(left, right, mode, cond)
			} else {
				joined, err = join.Join(left, right, mode, keys...)
			}
			if err != nil {
				return err
			}
			if projection != nil {
				if joined, err = joined.Select(*projection); err != nil {
					return err
				}
			}
			return opts.write(cmd, joined, limit)
		},
	}

	cmd.Flags().StringP("mode", "m", join.Inner.String(), "join mode: inner, left, right, full, filter, exclude")
	cmd.Flags().StringArrayVar(&on, "on", nil, "key columns as a selector expression (repeatable)")
	cmd.Flags().StringVarP(&condition, "where", "w", "", "join on a row condition instead of key columns")
	cmd.Flags().StringVar(&output, "select", "", "selector applied to the joined frame")
	cmd.Flags().IntP("limit", "n", 0, "maximum number of rows to print (0 prints all)")
	return cmd
}
