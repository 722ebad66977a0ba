package walker

import "time"

// Progress reports walk progress.
type Progress struct {
	// FilesScanned is the total files scanned so far.
	FilesScanned int64
	// DirsScanned is the total directories scanned so far.
	DirsScanned int64
	// SymlinksSeen is the total symlinks encountered so far.
	SymlinksSeen int64
	// CyclesFound is the number of symlink loops detected so far.
	CyclesFound int64
	// BytesSeen is the total apparent bytes of scanned files.
	BytesSeen int64
	// Errors is the count of errors encountered.
	Errors int64
	// Done indicates the walk is complete.
	Done bool
	// StartTime is when the walk began.
	StartTime time.Time
	// Duration is elapsed time.
	Duration time.Duration
}

// ItemsPerSecond returns the scan rate.
func (p Progress) ItemsPerSecond() float64 {
	if p.Duration.Seconds() == 0 {
		return 0
	}
	return float64(p.FilesScanned+p.DirsScanned) / p.Duration.Seconds()
}
