package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	remedyerrors "github.com/alexisbeaulieu97/failover-remedy/pkg/errors"
)

func TestDefaultsValidate(t *testing.T) {
	cfg := Defaults()
	cfg.ExpandPaths(func(string) string { return "" })
	require.NoError(t, ValidateConfig(cfg))
}

func TestValidateConfig(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		field  string
	}{
		{"nil branches", func(c *Config) { c.Product.UninstallBranches = nil }, "product.uninstall_branches"},
		{"branch with forward slash", func(c *Config) { c.Product.UninstallBranches = []string{"SOFTWARE/Uninstall"} }, "product.uninstall_branches[0]"},
		{"empty display name", func(c *Config) { c.Product.DisplayName = "" }, "product.display_name"},
		{"same flags", func(c *Config) { c.Product.UninstallFlag = "/i" }, "product.uninstall_flag"},
		{"key with trailing separator", func(c *Config) { c.Cleanup.UninstallKey = `SOFTWARE\X\` }, "cleanup.uninstall_key"},
		{"bad web service", func(c *Config) { c.Services.WebService = `W3\SVC` }, "services.web_service"},
		{"blank web service", func(c *Config) { c.Services.WebService = "   " }, "services.web_service"},
		{"empty prefix", func(c *Config) { c.Services.ProductPrefix = "" }, "services.product_prefix"},
		{"poll beyond wait", func(c *Config) { c.Services.PollInterval = time.Minute }, "services.poll_interval"},
		{"negative reregister timeout", func(c *Config) { c.Reregister.Timeout = -time.Second }, "reregister.timeout"},
		{"address in arguments", func(c *Config) {
			c.Reregister.Arguments = append(c.Reregister.Arguments, "/managementserveraddress=x")
		}, "reregister.arguments"},
		{"unknown log level", func(c *Config) { c.Logging.Level = "chatty" }, "logging.level"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Defaults()
			tt.mutate(cfg)

			err := ValidateConfig(cfg)
			var validationErr *remedyerrors.ValidationError
			require.ErrorAs(t, err, &validationErr)
			require.Equal(t, tt.field, validationErr.Field)
		})
	}
}

func TestValidateConfigNil(t *testing.T) {
	require.Error(t, ValidateConfig(nil))
}

func TestReregisterArgs(t *testing.T) {
	cfg := Defaults()
	require.Equal(t, []string{"/register", "/quiet"}, cfg.ReregisterArgs())

	cfg.Reregister.ManagementServer = " mgmt01 "
	require.Equal(t, []string{"/register", "/quiet", "/managementserveraddress=mgmt01"}, cfg.ReregisterArgs())
	require.Equal(t, []string{"/register", "/quiet"}, cfg.Reregister.Arguments, "defaults must not be mutated")
}
