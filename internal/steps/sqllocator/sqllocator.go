// Package sqllocator finds the database server the management server uses,
// from the connection string it keeps in the registry.
package sqllocator

import (
	"errors"
	"fmt"
	"strings"

	"github.com/alexisbeaulieu97/failover-remedy/internal/model"
	"github.com/alexisbeaulieu97/failover-remedy/internal/ports"
	remedyerrors "github.com/alexisbeaulieu97/failover-remedy/pkg/errors"
)

// DefaultInstance is the service name of an unnamed SQL Server instance.
const DefaultInstance = "MSSQLSERVER"

// ErrNoDataSource is returned when a connection string names no server.
var ErrNoDataSource = errors.New("Data Source not found in connection string.")

// serverKeys are the connection string keys that name the server, in the
// spellings SqlClient accepts.
var serverKeys = []string{"data source", "server", "address", "addr", "network address"}

// Location is the result of a lookup. Found is false when no target could be
// determined; Reason then says why.
type Location struct {
	Target model.ConnectionTarget
	Found  bool
	Reason string
}

// SplitDataSource truncates s at the first ';' and splits what remains on
// the first '\' into host and instance. No backslash means the default
// instance.
func SplitDataSource(s string) model.ConnectionTarget {
	if idx := strings.IndexByte(s, ';'); idx >= 0 {
		s = s[:idx]
	}
	host, instance, _ := strings.Cut(s, `\`)
	return model.ConnectionTarget{
		Host:     strings.TrimSpace(host),
		Instance: strings.TrimSpace(instance),
	}
}

// ParseConnectionString finds the server key among the ';'-separated
// key=value pairs of cs and splits its value into host and instance. Keys
// match case-insensitively and surrounding whitespace is ignored. A
// protocol prefix ("tcp:") and port suffix (",1433") are dropped.
func ParseConnectionString(cs string) (model.ConnectionTarget, error) {
	for _, want := range serverKeys {
		for _, part := range strings.Split(cs, ";") {
			key, value, ok := strings.Cut(part, "=")
			if !ok || !strings.EqualFold(normalizeKey(key), want) {
				continue
			}
			value = stripServerDecorations(strings.TrimSpace(value))
			if value == "" {
				continue
			}
			return SplitDataSource(value), nil
		}
	}
	return model.ConnectionTarget{}, ErrNoDataSource
}

func normalizeKey(key string) string {
	return strings.Join(strings.Fields(key), " ")
}

func stripServerDecorations(value string) string {
	if idx := strings.IndexByte(value, ':'); idx > 0 && idx <= 5 {
		switch strings.ToLower(value[:idx]) {
		case "tcp", "np", "lpc", "via", "admin":
			value = value[idx+1:]
		}
	}
	if idx := strings.IndexByte(value, ','); idx >= 0 {
		value = value[:idx]
	}
	return strings.TrimSpace(value)
}

// Locate reads the connection string stored at keyPath/valueName under
// HKLM and parses it. It never fails: every problem is reported through
// Location.Reason.
func Locate(reg ports.RegistryReader, keyPath, valueName string) Location {
	value, ok, err := reg.ReadValue(ports.HiveLocalMachine, keyPath, valueName)
	switch {
	case errors.Is(err, remedyerrors.ErrNotFound):
		return Location{Reason: "Registry key not found."}
	case err != nil:
		return Location{Reason: fmt.Sprintf("Registry read failed: %v", err)}
	case !ok || strings.TrimSpace(value) == "":
		return Location{Reason: fmt.Sprintf("%s value not found or is empty.", valueName)}
	}

	target, err := ParseConnectionString(value)
	if err != nil {
		return Location{Reason: err.Error()}
	}
	if target.Host == "" {
		return Location{Reason: "Data Source names no host."}
	}
	return Location{Target: target, Found: true}
}

// ServiceName derives the database service name from target.
func ServiceName(target model.ConnectionTarget) string {
	if target.Instance == "" || strings.EqualFold(target.Instance, DefaultInstance) {
		return DefaultInstance
	}
	return "MSSQL$" + target.Instance
}
