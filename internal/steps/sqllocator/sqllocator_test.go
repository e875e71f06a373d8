package sqllocator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexisbeaulieu97/failover-remedy/internal/config"
	"github.com/alexisbeaulieu97/failover-remedy/internal/model"
	"github.com/alexisbeaulieu97/failover-remedy/internal/ports/portstest"
	remedyerrors "github.com/alexisbeaulieu97/failover-remedy/pkg/errors"
)

func TestSplitDataSource(t *testing.T) {
	tests := []struct {
		in   string
		want model.ConnectionTarget
	}{
		{`HOST1\INSTANCEA;other=x`, model.ConnectionTarget{Host: "HOST1", Instance: "INSTANCEA"}},
		{`HOST2;x=y`, model.ConnectionTarget{Host: "HOST2"}},
		{`A\B;x=1`, model.ConnectionTarget{Host: "A", Instance: "B"}},
		{`A;x=1`, model.ConnectionTarget{Host: "A"}},
		{`A\B\C`, model.ConnectionTarget{Host: "A", Instance: `B\C`}},
		{`plain`, model.ConnectionTarget{Host: "plain"}},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, SplitDataSource(tt.in))
		})
	}
}

func TestParseConnectionString(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want model.ConnectionTarget
	}{
		{"named instance", `Data Source=SQL01\VMS;Initial Catalog=Surveillance;Integrated Security=True`, model.ConnectionTarget{Host: "SQL01", Instance: "VMS"}},
		{"default instance", `Data Source=SQL01;Initial Catalog=Surveillance`, model.ConnectionTarget{Host: "SQL01"}},
		{"not first pair", `Initial Catalog=Surveillance; Data Source = SQL02\EXPRESS ;Integrated Security=SSPI`, model.ConnectionTarget{Host: "SQL02", Instance: "EXPRESS"}},
		{"case insensitive", `data source=localhost\SQLEXPRESS`, model.ConnectionTarget{Host: "localhost", Instance: "SQLEXPRESS"}},
		{"extra inner whitespace", `Data   Source=HOST`, model.ConnectionTarget{Host: "HOST"}},
		{"server synonym", `Server=tcp:db.local\PROD,1433;Database=x`, model.ConnectionTarget{Host: "db.local", Instance: "PROD"}},
		{"admin prefix", `Data Source=admin:HOST1\INST`, model.ConnectionTarget{Host: "HOST1", Instance: "INST"}},
		{"named pipes prefix", `Data Source=np:HOST1;x=1`, model.ConnectionTarget{Host: "HOST1"}},
		{"data source wins over synonym", `Server=other;Data Source=primary`, model.ConnectionTarget{Host: "primary"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseConnectionString(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseConnectionStringWithoutDataSource(t *testing.T) {
	for _, in := range []string{"", "Initial Catalog=x", "Data Source=", "Data Source"} {
		_, err := ParseConnectionString(in)
		require.ErrorIs(t, err, ErrNoDataSource, in)
	}
}

func TestServiceName(t *testing.T) {
	assert.Equal(t, "MSSQLSERVER", ServiceName(model.ConnectionTarget{Host: "h"}))
	assert.Equal(t, "MSSQLSERVER", ServiceName(model.ConnectionTarget{Host: "h", Instance: "mssqlserver"}))
	assert.Equal(t, "MSSQL$SQLEXPRESS", ServiceName(model.ConnectionTarget{Host: "h", Instance: "SQLEXPRESS"}))
}

func TestLocate(t *testing.T) {
	key, value := config.DefaultConnectionKey, config.DefaultConnectionValue

	tests := []struct {
		name   string
		reg    *portstest.Registry
		found  bool
		target model.ConnectionTarget
		reason string
	}{
		{
			name:   "found",
			reg:    portstest.NewRegistry().SetValue(key, value, `Data Source=SQL01\VMS;Initial Catalog=Surveillance`),
			found:  true,
			target: model.ConnectionTarget{Host: "SQL01", Instance: "VMS"},
		},
		{
			name:   "key missing",
			reg:    portstest.NewRegistry(),
			reason: "Registry key not found.",
		},
		{
			name:   "value missing",
			reg:    portstest.NewRegistry().AddKey(key),
			reason: "ManagementServer value not found or is empty.",
		},
		{
			name:   "value empty",
			reg:    portstest.NewRegistry().SetValue(key, value, "  "),
			reason: "ManagementServer value not found or is empty.",
		},
		{
			name:   "no data source",
			reg:    portstest.NewRegistry().SetValue(key, value, "Initial Catalog=Surveillance"),
			reason: "Data Source not found in connection string.",
		},
		{
			name:   "empty host",
			reg:    portstest.NewRegistry().SetValue(key, value, `Data Source=\VMS`),
			reason: "Data Source names no host.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loc := Locate(tt.reg, key, value)
			assert.Equal(t, tt.found, loc.Found)
			assert.Equal(t, tt.target, loc.Target)
			assert.Equal(t, tt.reason, loc.Reason)
		})
	}
}

func TestLocateReadFailure(t *testing.T) {
	key := config.DefaultConnectionKey
	reg := portstest.NewRegistry()
	reg.Errs[key] = remedyerrors.NewProviderError("read value", key, remedyerrors.ErrPermissionDenied, nil)

	loc := Locate(reg, key, config.DefaultConnectionValue)
	assert.False(t, loc.Found)
	assert.Contains(t, loc.Reason, "Registry read failed")
	assert.Contains(t, loc.Reason, "permission denied")
}
