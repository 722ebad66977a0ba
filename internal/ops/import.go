package ops

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/sadopc/linkscan/internal/model"
)

// ImportJSON reads a report previously written by ExportJSON.
func ImportJSON(path string) (*Imported, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot open import file: %w", err)
	}

	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}
	if env.Format != reportFormatVersion {
		return nil, fmt.Errorf("unsupported report format %d (want %d)", env.Format, reportFormatVersion)
	}
	if env.Report == nil {
		return nil, fmt.Errorf("report envelope has no report")
	}

	return &Imported{Report: env.Report, Progver: env.Progver}, nil
}

// Imported is a report loaded from disk plus its envelope metadata.
type Imported struct {
	Report  *model.Report
	Progver string
}
