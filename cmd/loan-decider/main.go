// Command loan-decider decides loan applications read from YAML files.
package main

import (
	"os"

	"github.com/spf13/cobra"
)

var version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

type rootOptions struct {
	configFile string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:   "loan-decider",
		Short: "Decide loan applications against the lending policy.",
		Long: `loan-decider applies the lending policy to loan applications:
an income floor, identity verification and a minimum credit score.

Configuration is read from --config, then LOANS_* environment variables,
then flags.`,
		SilenceUsage: true,
		Version:      version,
	}

	cmd.PersistentFlags().StringVar(&opts.configFile, "config", "", "config file (YAML)")
	cmd.PersistentFlags().String("log-level", "info", "log level (debug, info, warn, error)")
	cmd.PersistentFlags().String("log-format", "text", "log format (text, json)")

	cmd.AddCommand(newDecideCmd(opts))
	return cmd
}
