package main

import (
	"github.com/spf13/cobra"
)

type rootFlags struct {
	configPath string
	verbose    bool
	json       bool
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}

	cmd := &cobra.Command{
		Use:   "failover-remedy",
		Short: "Repair an XProtect Management Server left broken by the failover add-on",
		Long: "failover-remedy removes the XProtect Management Server Failover add-on and its leftovers,\n" +
			"brings IIS, SQL Server and the Milestone services back to Automatic and Running,\n" +
			"and re-registers the management server with its cluster.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVarP(&flags.configPath, "config", "c", "", "Path to an optional YAML configuration file")
	cmd.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "Enable verbose logging")
	cmd.PersistentFlags().BoolVar(&flags.json, "json", false, "Print machine-readable JSON instead of text")

	cmd.AddCommand(newRunCmd(flags))
	cmd.AddCommand(newStatusCmd(flags))
	cmd.AddCommand(newLocateSQLCmd(flags))
	cmd.AddCommand(newVersionCmd())

	return cmd
}
