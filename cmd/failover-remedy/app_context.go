package main

import (
	"io"
	"os"
	"strings"
	"time"

	"golang.org/x/term"

	"github.com/alexisbeaulieu97/failover-remedy/internal/app/remediation"
	"github.com/alexisbeaulieu97/failover-remedy/internal/config"
	"github.com/alexisbeaulieu97/failover-remedy/internal/infrastructure/logging"
	"github.com/alexisbeaulieu97/failover-remedy/internal/ports"
)

// overrides are command-line values that win over the configuration file.
type overrides struct {
	managementServer  string
	journalPath       string
	reregisterTimeout time.Duration
}

// newService binds the application service to its providers. Tests replace
// it to run commands against fakes.
var newService = func(cfg *config.Config, log ports.Logger, output io.Writer) *remediation.Service {
	return remediation.NewService(remediation.SystemProviders(cfg, log, output))
}

// isInteractive reports whether stdout is a terminal.
var isInteractive = func() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

func loadConfig(path string, o overrides) (*config.Config, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}

	changed := false
	if host := strings.TrimSpace(o.managementServer); host != "" {
		cfg.Reregister.ManagementServer = host
		changed = true
	}
	if o.journalPath != "" {
		cfg.Journal.Path = o.journalPath
		changed = true
	}
	if o.reregisterTimeout > 0 {
		cfg.Reregister.Timeout = o.reregisterTimeout
		changed = true
	}
	if changed {
		if err := config.ValidateConfig(cfg); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

func newLogger(cfg *config.Config, verbose bool, w io.Writer) (ports.Logger, error) {
	level := cfg.Logging.Level
	if verbose {
		level = "debug"
	}
	return logging.New(logging.Options{
		Writer:        w,
		Level:         level,
		HumanReadable: cfg.Logging.HumanReadable,
		Fields:        map[string]interface{}{"app": "failover-remedy"},
	})
}
