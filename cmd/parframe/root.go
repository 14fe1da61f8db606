package main

import (
	"fmt"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/vegasq/parframe/frame"
	"github.com/vegasq/parframe/internal/config"
	"github.com/vegasq/parframe/output"
)

// options holds the persistent flags after the config file has been applied.
type options struct {
	configPath string
	format     string
	verbose    bool
	cfg        *config.Config
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:           "parframe",
		Short:         "Select and join columns of Parquet files",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return opts.load(cmd)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&opts.configPath, "config", "c", "", fmt.Sprintf("config file (default %s if present)", config.DefaultPath))
	flags.StringVarP(&opts.format, "format", "f", output.FormatJSONL, "output format: jsonl, csv, table")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "log debug information to stderr")

	rootCmd.AddCommand(newSchemaCmd(opts))
	rootCmd.AddCommand(newSelectCmd(opts))
	rootCmd.AddCommand(newJoinCmd(opts))
	return rootCmd
}

// load reads the config file. Flags set on the command line win over it.
func (o *options) load(cmd *cobra.Command) error {
	cfg, err := config.LoadConfig(o.configPath)
	if err != nil {
		return err
	}
	o.cfg = cfg

	if !cmd.Flags().Changed("format") {
		o.format = cfg.Format
	}
	if !cmd.Flags().Changed("verbose") {
		o.verbose = cfg.Verbose
	}

	log.SetOutput(cmd.ErrOrStderr())
	if o.verbose {
		log.SetLevel(log.DebugLevel)
	} else {
		log.SetLevel(log.WarnLevel)
	}
	return nil
}

// write formats at most limit rows of f to the command output. A limit of
// zero writes every row.
func (o *options) write(cmd *cobra.Command, f *frame.Frame, limit int) error {
	formatter, err := output.NewFormatter(o.format, cmd.OutOrStdout())
	if err != nil {
		return err
	}
	if limit > 0 {
		f = f.Head(limit)
	}
	log.Debugf("writing %d rows as %s", f.NumRows(), o.format)
	return formatter.Format(f)
}

// intFlag returns the value of an int flag, falling back to def when the
// flag was not given.
func intFlag(cmd *cobra.Command, name string, def int) (int, error) {
	if !cmd.Flags().Changed(name) {
		return def, nil
	}
	return cmd.Flags().GetInt(name)
}

// stringFlag returns the value of a string flag, falling back to def when the
// flag was not given.
func stringFlag(cmd *cobra.Command, name, def string) (string, error) {
	if !cmd.Flags().Changed(name) {
		return def, nil
	}
	return cmd.Flags().GetString(name)
}
