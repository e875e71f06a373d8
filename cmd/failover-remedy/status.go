package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var statusCmdRunner = runStatus

func newStatusCmd(root *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the start mode and state of every service the run would touch",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return statusCmdRunner(cmd.Context(), *root, cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}
}

func runStatus(ctx context.Context, root rootFlags, stdout, stderr io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}
	cfg, err := loadConfig(root.configPath, overrides{})
	if err != nil {
		return err
	}
	log, err := newLogger(cfg, root.verbose, stderr)
	if err != nil {
		return err
	}

	status, err := newService(cfg, log, nil).Status(ctx, cfg)
	if err != nil {
		return err
	}

	if root.json {
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(status)
	}

	tw := tabwriter.NewWriter(stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ROLE\tSERVICE\tSTART MODE\tSTATE\tOK")
	for _, s := range status.Services {
		mode, state := string(s.StartMode), string(s.RunState)
		if !s.Found {
			mode, state = "-", "-"
		}
		ok := "no"
		if s.Satisfied {
			ok = "yes"
		}
		name := s.Name
		if name == "" {
			name = "-"
		}
		line := fmt.Sprintf("%s\t%s\t%s\t%s\t%s", s.Role, name, mode, state, ok)
		if s.Note != "" {
			line += "\t" + s.Note
		}
		fmt.Fprintln(tw, line)
	}
	return tw.Flush()
}
