//go:build !windows

package registry

import (
	"github.com/alexisbeaulieu97/failover-remedy/internal/ports"
	remedyerrors "github.com/alexisbeaulieu97/failover-remedy/pkg/errors"
)

// ReadValue reports ErrUnsupported on platforms without a registry.
func (r *Reader) ReadValue(_ ports.Hive, keyPath, _ string) (string, bool, error) {
	return "", false, remedyerrors.NewProviderError("read value", keyPath, remedyerrors.ErrUnsupported, nil)
}

// ListSubkeys reports ErrUnsupported on platforms without a registry.
func (r *Reader) ListSubkeys(_ ports.Hive, keyPath string) ([]string, error) {
	return nil, remedyerrors.NewProviderError("list subkeys", keyPath, remedyerrors.ErrUnsupported, nil)
}

// DeleteKey reports ErrUnsupported on platforms without a registry.
func (r *Reader) DeleteKey(_ ports.Hive, keyPath string) error {
	return remedyerrors.NewProviderError("delete key", keyPath, remedyerrors.ErrUnsupported, nil)
}
