package ports

// Filesystem is the narrow eraser contract used by cleanup steps. Errors keep
// their io/fs identity (fs.ErrNotExist, fs.ErrPermission) so callers can
// classify them.
type Filesystem interface {
	Exists(path string) (bool, error)
	DeleteFile(path string) error
	DeleteDirectoryRecursive(path string) error
}
