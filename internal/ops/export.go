package ops

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/sadopc/linkscan/internal/model"
)

// reportFormatVersion is bumped whenever the envelope layout changes.
const reportFormatVersion = 1

// envelope is the on-disk report format: a small header followed by the
// report itself, so old files stay recognizable when the layout evolves.
type envelope struct {
	Format    int           `json:"format"`
	Progname  string        `json:"progname"`
	Progver   string        `json:"progver"`
	Timestamp int64         `json:"timestamp"`
	Report    *model.Report `json:"report"`
}

// ExportJSON exports a scan report to JSON. For file targets (not stdout),
// writes to a temp file first and atomically renames on success, so a
// partial file is never left behind on error. A path of "-" writes to
// stdout.
func ExportJSON(report *model.Report, path string, version string) (retErr error) {
	if path == "-" {
		return exportToWriter(report, os.Stdout, version)
	}

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".linkscan-export-*.tmp")
	if err != nil {
		return fmt.Errorf("cannot create export file: %w", err)
	}
	tmpPath := tmp.Name()
	defer func() {
		if retErr != nil {
			tmp.Close()
			os.Remove(tmpPath)
		}
	}()

	if err := exportToWriter(report, tmp, version); err != nil {
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Rename(tmpPath, path); err != nil {
		// On Windows, Rename cannot replace an existing destination.
		if runtime.GOOS != "windows" {
			return err
		}
		if rmErr := os.Remove(path); rmErr != nil && !errors.Is(rmErr, os.ErrNotExist) {
			return fmt.Errorf("cannot replace export file %s: %w", path, err)
		}
		if err := os.Rename(tmpPath, path); err != nil {
			return err
		}
	}
	return nil
}

func exportToWriter(report *model.Report, out *os.File, version string) error {
	if version == "" {
		version = "dev"
	}
	env := envelope{
		Format:    reportFormatVersion,
		Progname:  "linkscan",
		Progver:   version,
		Timestamp: time.Now().Unix(),
		Report:    report,
	}

	bw := bufio.NewWriterSize(out, 64*1024)
	enc := json.NewEncoder(bw)
	enc.SetIndent("", "  ")
	if err := enc.Encode(env); err != nil {
		return err
	}
	return bw.Flush()
}
