//go:build windows

package services

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/sys/windows"

	remedyerrors "github.com/alexisbeaulieu97/failover-remedy/pkg/errors"
)

func TestQueryAccessDoesNotRequestStartRights(t *testing.T) {
	require.Zero(t, queryAccess&windows.SERVICE_START)
	require.NotZero(t, queryAccess&windows.SERVICE_QUERY_CONFIG)
	require.NotZero(t, queryAccess&windows.SERVICE_QUERY_STATUS)
	require.NotZero(t, startAccess&windows.SERVICE_START)
}

func TestWrapClassifiesServiceErrors(t *testing.T) {
	err := wrap("open service", "W3SVC", windows.ERROR_ACCESS_DENIED)
	require.True(t, errors.Is(err, remedyerrors.ErrPermissionDenied))

	err = wrap("open service", "Nope", windows.ERROR_SERVICE_DOES_NOT_EXIST)
	require.True(t, errors.Is(err, remedyerrors.ErrNotFound))
}
