package config

import (
	"regexp"
	"strings"
)

var envRefPattern = regexp.MustCompile(`%([A-Za-z_][A-Za-z0-9_()]*)%`)

// knownFolders are used when the environment does not define a variable.
var knownFolders = map[string]string{
	"programfiles":      `C:\Program Files`,
	"programfiles(x86)": `C:\Program Files (x86)`,
	"programdata":       `C:\ProgramData`,
	"systemroot":        `C:\Windows`,
}

// ExpandPaths resolves %VAR% references in every path-valued field using
// lookup, falling back to the standard Windows folder locations.
func (c *Config) ExpandPaths(lookup func(string) string) {
	for _, field := range []*string{
		&c.Cleanup.InstallFolder,
		&c.Cleanup.WizardFile,
		&c.Reregister.Executable,
		&c.Journal.Path,
	} {
		*field = expandWindowsEnv(*field, lookup)
	}
}

func expandWindowsEnv(s string, lookup func(string) string) string {
	return envRefPattern.ReplaceAllStringFunc(s, func(ref string) string {
		name := ref[1 : len(ref)-1]
		if lookup != nil {
			if v := lookup(name); v != "" {
				return v
			}
		}
		if v, ok := knownFolders[strings.ToLower(name)]; ok {
			return v
		}
		return ref
	})
}
