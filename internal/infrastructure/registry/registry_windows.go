//go:build windows

package registry

import (
	"errors"
	"fmt"

	"golang.org/x/sys/windows"
	winreg "golang.org/x/sys/windows/registry"

	"github.com/alexisbeaulieu97/failover-remedy/internal/ports"
	remedyerrors "github.com/alexisbeaulieu97/failover-remedy/pkg/errors"
)

// ReadValue implements ports.RegistryReader.
func (r *Reader) ReadValue(hive ports.Hive, keyPath, valueName string) (string, bool, error) {
	root, err := rootKey(hive)
	if err != nil {
		return "", false, err
	}

	k, err := winreg.OpenKey(root, keyPath, winreg.QUERY_VALUE|winreg.WOW64_64KEY)
	if err != nil {
		return "", false, wrap("open key", keyPath, err)
	}
	defer k.Close()

	value, _, err := k.GetStringValue(valueName)
	switch {
	case err == nil:
		r.debug("registry value read", "key", keyPath, "value", valueName)
		return value, true, nil
	case errors.Is(err, winreg.ErrNotExist):
		return "", false, nil
	default:
		return "", false, wrap("read value", keyPath+`\`+valueName, err)
	}
}

// ListSubkeys implements ports.RegistryReader.
func (r *Reader) ListSubkeys(hive ports.Hive, keyPath string) ([]string, error) {
	root, err := rootKey(hive)
	if err != nil {
		return nil, err
	}

	k, err := winreg.OpenKey(root, keyPath, winreg.ENUMERATE_SUB_KEYS|winreg.WOW64_64KEY)
	if err != nil {
		return nil, wrap("open key", keyPath, err)
	}
	defer k.Close()

	names, err := k.ReadSubKeyNames(-1)
	if err != nil {
		return nil, wrap("list subkeys", keyPath, err)
	}
	r.debug("registry subkeys listed", "key", keyPath, "count", len(names))
	return names, nil
}

// DeleteKey implements ports.RegistryReader. Children are removed depth
// first because RegDeleteKey refuses keys that still have subkeys.
func (r *Reader) DeleteKey(hive ports.Hive, keyPath string) error {
	root, err := rootKey(hive)
	if err != nil {
		return err
	}
	if err := deleteTree(root, keyPath); err != nil {
		return err
	}
	r.debug("registry key deleted", "key", keyPath)
	return nil
}

func deleteTree(root winreg.Key, keyPath string) error {
	k, err := winreg.OpenKey(root, keyPath, winreg.ENUMERATE_SUB_KEYS|winreg.WOW64_64KEY)
	if err != nil {
		return wrap("open key", keyPath, err)
	}
	children, err := k.ReadSubKeyNames(-1)
	k.Close()
	if err != nil {
		return wrap("list subkeys", keyPath, err)
	}

	for _, child := range children {
		if err := deleteTree(root, keyPath+`\`+child); err != nil {
			return err
		}
	}

	if err := winreg.DeleteKey(root, keyPath); err != nil {
		return wrap("delete key", keyPath, err)
	}
	return nil
}

func rootKey(hive ports.Hive) (winreg.Key, error) {
	switch hive {
	case ports.HiveLocalMachine, "":
		return winreg.LOCAL_MACHINE, nil
	case ports.HiveCurrentUser:
		return winreg.CURRENT_USER, nil
	default:
		return 0, fmt.Errorf("unknown registry hive %q", hive)
	}
}

func wrap(op, target string, err error) error {
	var kind error
	switch {
	case errors.Is(err, winreg.ErrNotExist), errors.Is(err, windows.ERROR_PATH_NOT_FOUND):
		kind = remedyerrors.ErrNotFound
	case errors.Is(err, windows.ERROR_ACCESS_DENIED):
		kind = remedyerrors.ErrPermissionDenied
	}
	return remedyerrors.NewProviderError(op, target, kind, err)
}
