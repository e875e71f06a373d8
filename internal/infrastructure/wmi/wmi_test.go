package wmi

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexisbeaulieu97/failover-remedy/internal/model"
	remedyerrors "github.com/alexisbeaulieu97/failover-remedy/pkg/errors"
)

func TestResultError(t *testing.T) {
	tests := []struct {
		name    string
		code    int
		outcome model.Outcome
		text    string
	}{
		{name: "accepted", code: 0, outcome: model.OutcomeSuccess},
		{name: "access denied", code: 2, outcome: model.OutcomePermissionDenied, text: "access denied"},
		{name: "path not found", code: 9, outcome: model.OutcomeNotFound, text: "path not found"},
		{name: "invalid parameter", code: 21, outcome: model.OutcomeUnknownFailure, text: "invalid parameter"},
		{name: "unlisted code", code: 99, outcome: model.OutcomeUnknownFailure, text: "unrecognised result"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := resultError("MSSQLSERVER", tt.code)
			assert.Equal(t, tt.outcome, model.Classify(err))
			if tt.code == 0 {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), "MSSQLSERVER")
			assert.Contains(t, err.Error(), tt.text)
		})
	}
}

func TestResultErrorKinds(t *testing.T) {
	require.ErrorIs(t, resultError("W3SVC", 2), remedyerrors.ErrPermissionDenied)
	require.ErrorIs(t, resultError("W3SVC", 9), remedyerrors.ErrNotFound)
}

func TestCallKind(t *testing.T) {
	require.ErrorIs(t, callKind(0x80041002), remedyerrors.ErrNotFound)
	require.ErrorIs(t, callKind(0x80041003), remedyerrors.ErrPermissionDenied)
	require.ErrorIs(t, callKind(0x80070005), remedyerrors.ErrPermissionDenied)
	require.NoError(t, callKind(0x80041001))

	err := remedyerrors.NewProviderError("change start mode", "W3SVC", callKind(0x80041003), errors.New("Access denied"))
	assert.Equal(t, model.OutcomePermissionDenied, model.Classify(err))
}

func TestEscape(t *testing.T) {
	assert.Equal(t, "W3SVC", escape("W3SVC"))
	assert.Equal(t, `MSSQL$SQLEXPRESS`, escape(`MSSQL$SQLEXPRESS`))
	assert.Equal(t, `odd\'name\\x`, escape(`odd'name\x`))
}
