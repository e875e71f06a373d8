package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/alexisbeaulieu97/failover-remedy/internal/steps/sqllocator"
)

type locateReport struct {
	Found    bool   `json:"found"`
	Host     string `json:"host,omitempty"`
	Instance string `json:"instance,omitempty"`
	Service  string `json:"service,omitempty"`
	Reason   string `json:"reason,omitempty"`
}

func newLocateSQLCmd(root *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "locate-sql",
		Short: "Show which SQL Server instance backs the management server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLocateSQL(*root, cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}
}

func runLocateSQL(root rootFlags, stdout, stderr io.Writer) error {
	cfg, err := loadConfig(root.configPath, overrides{})
	if err != nil {
		return err
	}
	log, err := newLogger(cfg, root.verbose, stderr)
	if err != nil {
		return err
	}

	loc := newService(cfg, log, nil).LocateSQL(cfg)
	report := locateReport{Found: loc.Found, Reason: loc.Reason}
	if loc.Found {
		report.Host = loc.Target.Host
		report.Instance = loc.Target.Instance
		report.Service = sqllocator.ServiceName(loc.Target)
	}

	if root.json {
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(report); err != nil {
			return err
		}
	} else if loc.Found {
		instance := report.Instance
		if instance == "" {
			instance = "(default)"
		}
		fmt.Fprintf(stdout, "Host:     %s\nInstance: %s\nService:  %s\n", report.Host, instance, report.Service)
	} else {
		fmt.Fprintf(stdout, "SQL Server instance not located: %s\n", loc.Reason)
	}

	if !loc.Found {
		return errStepsFailed
	}
	return nil
}
