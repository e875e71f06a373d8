package ports

// Hive names a root of the hierarchical key-value store.
type Hive string

const (
	HiveLocalMachine Hive = "HKLM"
	HiveCurrentUser  Hive = "HKCU"
)

// RegistryReader reads and prunes the hierarchical configuration store. Key
// paths are relative to the hive and use backslash separators. Error mapping
// rules:
//   - Missing keys → errors wrapping errors.ErrNotFound
//   - Access-control failures → errors wrapping errors.ErrPermissionDenied
//   - Platforms without a registry → errors wrapping errors.ErrUnsupported
type RegistryReader interface {
	// ReadValue returns the string value stored under valueName. ok is false
	// when the key exists but the value does not. A missing key is an error.
	ReadValue(hive Hive, keyPath, valueName string) (value string, ok bool, err error)

	// ListSubkeys returns the immediate child key names in enumeration order.
	ListSubkeys(hive Hive, keyPath string) ([]string, error)

	// DeleteKey removes keyPath and everything beneath it.
	DeleteKey(hive Hive, keyPath string) error
}
