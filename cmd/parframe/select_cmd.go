package main

import (
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/vegasq/parframe/internal/dsl"
	"github.com/vegasq/parframe/internal/where"
	"github.com/vegasq/parframe/reader"
	"github.com/vegasq/parframe/selector"
)

func newSelectCmd(opts *options) *cobra.Command {
	var condition string

	cmd := &cobra.Command{
		Use:   "select <file.parquet|glob> [selector]",
		Short: "Print the selected columns of one or more Parquet files",
		Long: "Print the columns chosen by a selector expression, all columns by default.\n\n" +
			"Examples:\n" +
			"  parframe select data.parquet 'id and address.city'\n" +
			"  parframe select 'data/*.parquet' 'all().except(tags).take(3)'\n" +
			"  parframe select data.parquet 'address.colsAtAnyDepth()' --policy skip\n" +
			"  parframe select data.parquet 'id and name' --where 'score >= 80'",
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			expr := "all()"
			if len(args) == 2 {
				expr = args[1]
			}
			cols, err := dsl.Parse(expr)
			if err != nil {
				return err
			}

			policyName, err := stringFlag(cmd, "policy", opts.cfg.Policy)
			if err != nil {
				return err
			}
			policy, err := selector.ParsePolicy(policyName)
			if err != nil {
				return err
			}
			limit, err := intFlag(cmd, "limit", opts.cfg.Limit)
			if err != nil {
				return err
			}

			var cond where.Expression
			if condition != "" {
				if cond, err = where.Parse(condition); err != nil {
					return err
				}
			}

			f, err := reader.ReadFrames(args[0])
			if err != nil {
				return err
			}
			if f, err = where.Filter(f, cond); err != nil {
				return err
			}
			log.Debugf("selecting %s with policy %s from %d rows", cols, policy, f.NumRows())

			selected, err := f.SelectWith(cols, policy)
			if err != nil {
				return err
			}
			return opts.write(cmd, selected, limit)
		},
	}

	cmd.Flags().StringP("policy", "p", selector.Fail.String(), "unresolved column policy: fail or skip")
	cmd.Flags().StringVarP(&condition, "where", "w", "", "row condition, e.g. \"score > 80 and city = 'Oslo'\"")
	cmd.Flags().IntP("limit", "n", 0, "maximum number of rows to print (0 prints all)")
	return cmd
}
