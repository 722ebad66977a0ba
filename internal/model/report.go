package model

import (
	"time"

	"github.com/sadopc/linkscan/samefile"
)

// Cycle records one detected symlink loop: a link (or directory reached
// through one) whose open-handle identity matched an ancestor directory of
// the traversal. Descending into it would never terminate.
type Cycle struct {
	// Link is the path of the entry that closes the loop.
	Link string `json:"link"`
	// Ancestor is the ancestor directory the link resolves back to.
	Ancestor string `json:"ancestor"`
	// Depth is the traversal depth at which the loop closed.
	Depth int `json:"depth"`
	// Key is the shared identity of link target and ancestor.
	Key samefile.Key `json:"key"`
}

// LinkGroup is a set of paths sharing one on-disk file: hardlinks to the
// same inode, grouped by identity key.
type LinkGroup struct {
	Key   samefile.Key `json:"key"`
	Paths []string     `json:"paths"`
	// Size is the apparent size of the single underlying file.
	Size int64 `json:"size"`
	// Nlink is the link count reported by the filesystem, which may exceed
	// len(Paths) when some links live outside the scanned tree.
	Nlink uint64 `json:"nlink"`
}

// Stats summarizes a completed scan.
type Stats struct {
	FilesScanned     int64         `json:"files_scanned"`
	DirsScanned      int64         `json:"dirs_scanned"`
	SymlinksSeen     int64         `json:"symlinks_seen"`
	SymlinksFollowed int64         `json:"symlinks_followed"`
	BytesSeen        int64         `json:"bytes_seen"`
	Errors           int64         `json:"errors"`
	Duration         time.Duration `json:"duration"`
}

// Report is the result of one tree scan.
type Report struct {
	Root      string      `json:"root"`
	Timestamp time.Time   `json:"timestamp"`
	Cycles    []Cycle     `json:"cycles"`
	Groups    []LinkGroup `json:"groups"`
	Stats     Stats       `json:"stats"`
}

// Findings returns the total number of findings in the report.
func (r *Report) Findings() int {
	return len(r.Cycles) + len(r.Groups)
}

// ExtraLinks returns the number of redundant paths across all hardlink
// groups (every path beyond the first of each group).
func (r *Report) ExtraLinks() int {
	n := 0
	for _, g := range r.Groups {
		if len(g.Paths) > 1 {
			n += len(g.Paths) - 1
		}
	}
	return n
}
