package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/alexisbeaulieu97/failover-remedy/internal/app/remediation"
	"github.com/alexisbeaulieu97/failover-remedy/internal/infrastructure/logging"
	"github.com/alexisbeaulieu97/failover-remedy/internal/model"
	"github.com/alexisbeaulieu97/failover-remedy/internal/ports"
	"github.com/alexisbeaulieu97/failover-remedy/internal/tui"
	"github.com/alexisbeaulieu97/failover-remedy/internal/tui/components"
	"github.com/alexisbeaulieu97/failover-remedy/internal/validation"
)

const runTitle = "XProtect Management Server failover remediation"

type runOptions struct {
	ConfigPath  string
	Verbose     bool
	JSON        bool
	Verify      bool
	Interactive bool
	Overrides   overrides
}

var runCmdRunner = runRemediation

func newRunCmd(root *rootFlags) *cobra.Command {
	opts := runOptions{}

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Remove the failover add-on and restore the management server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.ConfigPath = root.configPath
			opts.Verbose = root.verbose
			opts.JSON = root.json
			opts.Interactive = isInteractive()
			return runCmdRunner(cmd.Context(), opts, cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}

	cmd.Flags().StringVar(&opts.Overrides.managementServer, "management-server", "", "Register with this management server hostname or address")
	cmd.Flags().StringVar(&opts.Overrides.journalPath, "journal", "", "Append step outcomes to this file")
	cmd.Flags().DurationVar(&opts.Overrides.reregisterTimeout, "reregister-timeout", 0, "Give up waiting for the Server Configurator after this long")
	cmd.Flags().BoolVar(&opts.Verify, "verify", false, "Re-inspect the system after the run")

	return cmd
}

type runReport struct {
	Report      *model.Report    `json:"report"`
	Validations []jsonValidation `json:"validations,omitempty"`
}

type jsonValidation struct {
	Type    string `json:"type"`
	Target  string `json:"target"`
	Passed  bool   `json:"passed"`
	Message string `json:"message"`
}

func runRemediation(ctx context.Context, opts runOptions, stdout, stderr io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}
	cfg, err := loadConfig(opts.ConfigPath, opts.Overrides)
	if err != nil {
		return err
	}

	interactive := opts.Interactive && !opts.JSON
	logOut := stderr
	if interactive && !opts.Verbose {
		logOut = io.Discard
	}
	log, err := newLogger(cfg, opts.Verbose, logOut)
	if err != nil {
		return err
	}

	runID := logging.GenerateCorrelationID()
	ctx = logging.WithCorrelationID(ctx, runID)
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var sinks []ports.ResultSink
	if cfg.Journal.Path != "" {
		journal, err := logging.OpenJournal(cfg.Journal.Path)
		if err != nil {
			log.Warn(ctx, "journal unavailable", "path", cfg.Journal.Path, "error", err)
		} else {
			defer journal.Close()
			journal.Record("run", fmt.Sprintf("Remediation started (run %s).", runID))
			defer func() {
				journal.Record("run", "Remediation finished.")
			}()
			sinks = append(sinks, journal)
		}
	}

	var names []string
	for _, step := range remediation.Plan() {
		names = append(names, step.Name())
	}

	var (
		program    *tea.Program
		programErr error
		cancelled  bool
		done       = make(chan struct{})
	)
	switch {
	case interactive:
		program = tea.NewProgram(tui.NewModel(runTitle, names), tea.WithOutput(stdout))
		go func() {
			defer close(done)
			final, err := program.Run()
			programErr = err
			if m, ok := final.(tui.Model); ok && m.Cancelled() {
				cancelled = true
				cancel()
			}
		}()
		sinks = append(sinks, ports.SinkFunc(func(res model.StepResult) {
			program.Send(tui.StepCompleteMsg{Result: res})
		}))
	case !opts.JSON:
		fmt.Fprintln(stdout, runTitle)
		sinks = append(sinks, ports.SinkFunc(func(res model.StepResult) {
			tui.WriteStep(stdout, res)
		}))
	}

	var processOutput io.Writer
	if !interactive && !opts.JSON {
		processOutput = stderr
	}

	started := time.Now()
	outcome, runErr := newService(cfg, log, processOutput).Run(ctx, remediation.RunRequest{
		Config: cfg,
		Logger: log,
		Sinks:  sinks,
		Verify: opts.Verify,
		OnValidation: func(v validation.ValidationResult) {
			if program != nil {
				program.Send(tui.ValidationMsg{Passed: v.Passed, Message: validationLine(v)})
			}
		},
	})

	if program != nil {
		program.Send(tui.DoneMsg{})
		<-done
	}
	if runErr != nil {
		return runErr
	}
	if programErr != nil {
		log.Warn(ctx, "terminal UI failed", "error", programErr)
	}
	cancelled = cancelled || ctx.Err() != nil

	switch {
	case opts.JSON:
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(newRunReport(outcome)); err != nil {
			return fmt.Errorf("encode report: %w", err)
		}
	case interactive && programErr == nil:
	default:
		tui.WriteSummary(stdout, outcome.Report, validationStatuses(outcome.ValidationResults), cancelled)
	}

	log.Info(ctx, "remediation complete",
		"duration_ms", time.Since(started).Milliseconds(),
		"satisfied", outcome.Report.AllSatisfied(),
		"verified", opts.Verify && outcome.ValidationErr == nil)

	if !outcome.Success() {
		return errStepsFailed
	}
	return nil
}

func newRunReport(outcome *remediation.RunOutcome) runReport {
	out := runReport{Report: outcome.Report}
	for _, v := range outcome.ValidationResults {
		out.Validations = append(out.Validations, jsonValidation{
			Type:    v.Validation.Type,
			Target:  v.Validation.Target,
			Passed:  v.Passed,
			Message: v.Message,
		})
	}
	return out
}

func validationLine(v validation.ValidationResult) string {
	return fmt.Sprintf("%s %s: %s", v.Validation.Type, v.Validation.Target, v.Message)
}

func validationStatuses(results []validation.ValidationResult) []components.ValidationStatus {
	statuses := make([]components.ValidationStatus, 0, len(results))
	for _, v := range results {
		statuses = append(statuses, components.ValidationStatus{Passed: v.Passed, Message: validationLine(v)})
	}
	return statuses
}
