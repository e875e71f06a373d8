package config

import (
	"strings"

	remedyerrors "github.com/alexisbeaulieu97/failover-remedy/pkg/errors"
)

// ValidateConfig performs structural and cross-field validation on an entire configuration.
func ValidateConfig(cfg *Config) error {
	if cfg == nil {
		return remedyerrors.NewValidationError("config", "configuration is nil", nil)
	}

	v := validatorInstance()
	if err := v.Struct(cfg); err != nil {
		return convertValidationError(err)
	}

	if strings.EqualFold(cfg.Product.InstallFlag, cfg.Product.UninstallFlag) {
		return remedyerrors.NewValidationError("product.uninstall_flag", "uninstall flag must differ from install flag", nil)
	}

	if cfg.Services.PollInterval > cfg.Services.WaitTimeout {
		return remedyerrors.NewValidationError("services.poll_interval", "poll interval must not exceed wait timeout", nil)
	}

	if cfg.Reregister.PollInterval > cfg.Reregister.Timeout {
		return remedyerrors.NewValidationError("reregister.poll_interval", "poll interval must not exceed timeout", nil)
	}

	for _, arg := range cfg.Reregister.Arguments {
		if strings.HasPrefix(strings.ToLower(arg), strings.ToLower(cfg.Reregister.AddressFlag)) {
			return remedyerrors.NewValidationError("reregister.arguments", "set the management server through management_server, not arguments", nil)
		}
	}

	return nil
}

// ReregisterArgs returns the configurator arguments, appending the address
// flag only when a management server is named.
func (c *Config) ReregisterArgs() []string {
	args := append([]string(nil), c.Reregister.Arguments...)
	if host := strings.TrimSpace(c.Reregister.ManagementServer); host != "" {
		args = append(args, c.Reregister.AddressFlag+host)
	}
	return args
}
