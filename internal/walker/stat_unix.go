//go:build !windows

package walker

import (
	"os"
	"syscall"
)

// statInfo holds platform-specific file metadata.
type statInfo struct {
	nlink uint64
	ok    bool // true if platform stat was available
}

// getStatInfo extracts the link count from file info.
func getStatInfo(info os.FileInfo) statInfo {
	stat, ok := info.Sys().(*syscall.Stat_t)
	if !ok {
		return statInfo{}
	}
	return statInfo{
		nlink: uint64(stat.Nlink),
		ok:    true,
	}
}
