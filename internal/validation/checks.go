package validation

import (
	"errors"
	"fmt"
	"strings"

	"github.com/alexisbeaulieu97/failover-remedy/internal/model"
	"github.com/alexisbeaulieu97/failover-remedy/internal/ports"
	remedyerrors "github.com/alexisbeaulieu97/failover-remedy/pkg/errors"
)

// CheckPathAbsent verifies nothing exists at path.
func CheckPathAbsent(fsys ports.Filesystem, path string) error {
	if path == "" {
		return fmt.Errorf("path is required")
	}
	exists, err := fsys.Exists(path)
	if err != nil {
		return err
	}
	if exists {
		return fmt.Errorf("path %s still exists", path)
	}
	return nil
}

// CheckRegistryKeyAbsent verifies keyPath is gone from HKLM.
func CheckRegistryKeyAbsent(reg ports.RegistryReader, keyPath string) error {
	if keyPath == "" {
		return fmt.Errorf("registry key is required")
	}
	_, err := reg.ListSubkeys(ports.HiveLocalMachine, keyPath)
	switch {
	case errors.Is(err, remedyerrors.ErrNotFound):
		return nil
	case err != nil:
		return err
	default:
		return fmt.Errorf("registry key %s still exists", keyPath)
	}
}

// CheckServiceSatisfied verifies the named service is Automatic and Running.
func CheckServiceSatisfied(services []model.ServiceDescriptor, name string) error {
	desc, ok := model.FindService(services, name)
	if !ok {
		return fmt.Errorf("service %s not found", name)
	}
	if !desc.Satisfied() {
		return fmt.Errorf("service %s is %s and %s", desc.Name, desc.StartMode, desc.RunState)
	}
	return nil
}

// CheckPrefixSatisfied verifies every service carrying prefix is Automatic
// and Running. No matching service passes.
func CheckPrefixSatisfied(services []model.ServiceDescriptor, prefix string) error {
	var pending []string
	for _, desc := range model.FilterByPrefix(services, prefix) {
		if !desc.Satisfied() {
			pending = append(pending, desc.String())
		}
	}
	if len(pending) > 0 {
		return fmt.Errorf("services not satisfied: %s", strings.Join(pending, ", "))
	}
	return nil
}
