package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

type app struct {
	logFlags logOptions
	log      zerolog.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:          "envopt",
		Short:        "Inspect typed configuration values in the environment",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			opts, err := logOptionsFromEnv()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("log-level") {
				opts.Level = a.logFlags.Level
			}
			if cmd.Flags().Changed("log-format") {
				opts.Format = a.logFlags.Format
			}
			a.log = newLogger(cmd.ErrOrStderr(), opts)
			return nil
		},
	}

	root.PersistentFlags().Var(&levelFlag{&a.logFlags.Level}, "log-level", "log level (overrides LOG_LEVEL)")
	root.PersistentFlags().Var(&formatFlag{&a.logFlags.Format}, "log-format", "log format: console or json (overrides LOG_FORMAT)")

	root.AddCommand(newCheckCmd(a), newVersionCmd())
	return root
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version)
		},
	}
}
