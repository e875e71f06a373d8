package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExpandWindowsEnv(t *testing.T) {
	env := map[string]string{"ProgramFiles": `D:\Apps`, "TEMP": `C:\Temp`}
	lookup := func(k string) string { return env[k] }

	tests := []struct {
		in   string
		want string
	}{
		{DefaultInstallFolder, `D:\Apps\Milestone\XProtect Management Server Failover`},
		{`%TEMP%\remedy.log`, `C:\Temp\remedy.log`},
		{`%ProgramData%\x`, `C:\ProgramData\x`},
		{`%UNSET%\x`, `%UNSET%\x`},
		{`C:\plain\path`, `C:\plain\path`},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, expandWindowsEnv(tt.in, lookup), tt.in)
	}
}

func TestExpandPathsFallsBackToKnownFolders(t *testing.T) {
	cfg := Defaults()
	cfg.ExpandPaths(func(string) string { return "" })
	assert.Equal(t, `C:\Program Files\Milestone\XProtect Management Server Failover`, cfg.Cleanup.InstallFolder)
	assert.Equal(t, DefaultWizardFile, cfg.Cleanup.WizardFile)
}
