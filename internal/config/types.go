package config

import (
	"time"
)

// Config is the full remediation configuration. Every field has a built-in
// default (see Defaults); a YAML file only needs to name what differs.
type Config struct {
	Product    ProductConfig    `yaml:"product"`
	Cleanup    CleanupConfig    `yaml:"cleanup"`
	SQL        SQLConfig        `yaml:"sql"`
	Services   ServicesConfig   `yaml:"services"`
	Reregister ReregisterConfig `yaml:"reregister"`
	Journal    JournalConfig    `yaml:"journal"`
	Logging    LoggingConfig    `yaml:"logging"`
}

// ProductConfig locates and removes the failover add-on.
type ProductConfig struct {
	DisplayName       string   `yaml:"display_name" validate:"required"`
	UninstallBranches []string `yaml:"uninstall_branches" validate:"required,min=1,dive,registry_path"`
	InstallFlag       string   `yaml:"install_flag" validate:"required"`
	UninstallFlag     string   `yaml:"uninstall_flag" validate:"required"`
	Shell             string   `yaml:"shell" validate:"required"`
	// Quiet appends /qn so msiexec runs without UI.
	Quiet bool `yaml:"quiet,omitempty"`
}

// CleanupConfig names the leftovers removed after uninstalling.
type CleanupConfig struct {
	InstallFolder string `yaml:"install_folder" validate:"required"`
	WizardFile    string `yaml:"wizard_file" validate:"required"`
	UninstallKey  string `yaml:"uninstall_key" validate:"required,registry_path"`
}

// SQLConfig locates the registry-held management-server connection string.
type SQLConfig struct {
	ConnectionStringKey   string `yaml:"connection_string_key" validate:"required,registry_path"`
	ConnectionStringValue string `yaml:"connection_string_value" validate:"required"`
}

// ServicesConfig drives service reconciliation.
type ServicesConfig struct {
	WebService       string        `yaml:"web_service" validate:"required,win_service_name"`
	ProductPrefix    string        `yaml:"product_prefix" validate:"required"`
	WaitTimeout      time.Duration `yaml:"wait_timeout" validate:"gt=0"`
	PollInterval     time.Duration `yaml:"poll_interval" validate:"gt=0"`
	ConfirmStartMode bool          `yaml:"confirm_start_mode,omitempty"`
}

// ReregisterConfig drives the final re-registration call.
type ReregisterConfig struct {
	Executable       string        `yaml:"executable" validate:"required"`
	Arguments        []string      `yaml:"arguments,omitempty"`
	ManagementServer string        `yaml:"management_server,omitempty" validate:"omitempty,hostname_rfc1123|ip"`
	AddressFlag      string        `yaml:"address_flag" validate:"required"`
	Elevated         bool          `yaml:"elevated"`
	Timeout          time.Duration `yaml:"timeout" validate:"gt=0"`
	PollInterval     time.Duration `yaml:"poll_interval" validate:"gt=0"`
}

// JournalConfig controls the persistent step journal. An empty path
// disables it.
type JournalConfig struct {
	Path string `yaml:"path,omitempty"`
}

// LoggingConfig controls diagnostic logging.
type LoggingConfig struct {
	Level         string `yaml:"level,omitempty" validate:"omitempty,oneof=debug info warn error"`
	HumanReadable bool   `yaml:"human_readable,omitempty"`
}

// Built-in locations of the product and its leftovers.
const (
	DefaultDisplayName       = "XProtect Management Server Failover"
	DefaultUninstallBranch   = `SOFTWARE\Microsoft\Windows\CurrentVersion\Uninstall`
	DefaultUninstallBranch32 = `SOFTWARE\WOW6432Node\Microsoft\Windows\CurrentVersion\Uninstall`
	DefaultInstallFolder     = `%ProgramFiles%\Milestone\XProtect Management Server Failover`
	DefaultWizardFile        = `C:\ProgramData\Milestone\XProtect Management Server\failoverwizard.json`
	DefaultConnectionKey     = `SOFTWARE\VideoOS\Server\ConnectionString`
	DefaultConnectionValue   = "ManagementServer"
	DefaultWebService        = "W3SVC"
	DefaultProductPrefix     = "Milestone"
	DefaultConfigurator      = `C:\Program Files\Milestone\Server Configurator\ServerConfigurator.exe`
	DefaultJournalPath       = "failover-remedy.log"
)

// Defaults returns the configuration the tool runs with when no file is
// supplied.
func Defaults() *Config {
	return &Config{
		Product: ProductConfig{
			DisplayName:       DefaultDisplayName,
			UninstallBranches: []string{DefaultUninstallBranch, DefaultUninstallBranch32},
			InstallFlag:       "/I",
			UninstallFlag:     "/X",
			Shell:             "cmd.exe",
		},
		Cleanup: CleanupConfig{
			InstallFolder: DefaultInstallFolder,
			WizardFile:    DefaultWizardFile,
			UninstallKey:  DefaultUninstallBranch + `\` + DefaultDisplayName,
		},
		SQL: SQLConfig{
			ConnectionStringKey:   DefaultConnectionKey,
			ConnectionStringValue: DefaultConnectionValue,
		},
		Services: ServicesConfig{
			WebService:    DefaultWebService,
			ProductPrefix: DefaultProductPrefix,
			WaitTimeout:   10 * time.Second,
			PollInterval:  250 * time.Millisecond,
		},
		Reregister: ReregisterConfig{
			Executable:   DefaultConfigurator,
			Arguments:    []string{"/register", "/quiet"},
			AddressFlag:  "/managementserveraddress=",
			Elevated:     true,
			Timeout:      10 * time.Minute,
			PollInterval: time.Second,
		},
		Journal: JournalConfig{
			Path: DefaultJournalPath,
		},
		Logging: LoggingConfig{
			Level:         "info",
			HumanReadable: true,
		},
	}
}
