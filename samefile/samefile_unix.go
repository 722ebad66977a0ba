//go:build !windows

package samefile

import (
	"fmt"
	"os"
	"syscall"
)

// extractKey queries identity metadata from the live open descriptor.
// Using (*os.File).Stat means the fstat runs on the handle itself, not the
// path, so the key describes exactly what the handle is open on.
func extractKey(f *os.File) (Key, error) {
	info, err := f.Stat()
	if err != nil {
		return Key{}, err
	}
	stat, ok := info.Sys().(*syscall.Stat_t)
	if !ok {
		return Key{}, &os.PathError{
			Op:   "stat",
			Path: f.Name(),
			Err:  fmt.Errorf("unexpected FileInfo.Sys() type %T", info.Sys()),
		}
	}
	return Key{Volume: uint64(stat.Dev), Index: uint64(stat.Ino)}, nil
}

// openPath opens path read-only. A plain open is enough on Unix:
// directories open fine and no special traversal mode exists or is needed.
func openPath(path string) (*os.File, error) {
	return os.Open(path)
}
