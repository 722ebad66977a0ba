//go:build windows

package samefile

import (
	"os"

	"golang.org/x/sys/windows"
)

// extractKey issues GetFileInformationByHandle on the open handle. This is
// the legacy volume-serial + 64-bit file-index query; see the package doc
// for its known limits. Disconnected console handles fail here, which the
// standard-stream constructors tolerate.
func extractKey(f *os.File) (Key, error) {
	var info windows.ByHandleFileInformation
	if err := windows.GetFileInformationByHandle(windows.Handle(f.Fd()), &info); err != nil {
		return Key{}, &os.PathError{Op: "GetFileInformationByHandle", Path: f.Name(), Err: err}
	}
	return Key{
		Volume: uint64(info.VolumeSerialNumber),
		Index:  uint64(info.FileIndexHigh)<<32 | uint64(info.FileIndexLow),
	}, nil
}

// openPath opens path for reading with backup semantics, so that
// directories and reparse points can be opened without triggering their
// normal open-time behavior.
func openPath(path string) (*os.File, error) {
	p, err := windows.UTF16PtrFromString(path)
	if err != nil {
		return nil, &os.PathError{Op: "open", Path: path, Err: err}
	}
	h, err := windows.CreateFile(
		p,
		windows.GENERIC_READ,
		windows.FILE_SHARE_READ|windows.FILE_SHARE_WRITE|windows.FILE_SHARE_DELETE,
		nil,
		windows.OPEN_EXISTING,
		windows.FILE_FLAG_BACKUP_SEMANTICS,
		0,
	)
	if err != nil {
		return nil, &os.PathError{Op: "open", Path: path, Err: err}
	}
	return os.NewFile(uintptr(h), path), nil
}
