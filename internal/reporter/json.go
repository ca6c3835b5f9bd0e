package reporter

import (
	"encoding/json"
	"io"

	"github.com/okulov/windiag/internal/models"
)

// JSONReporter generates machine-readable JSON reports
type JSONReporter struct {
	writer io.Writer
	pretty bool
}

// NewJSONReporter creates a new JSON reporter
func NewJSONReporter(writer io.Writer, pretty bool) *JSONReporter {
	return &JSONReporter{
		writer: writer,
		pretty: pretty,
	}
}

// Generate creates a JSON report from the scan result
func (r *JSONReporter) Generate(result *models.ScanResult) error {
	var data []byte
	var err error

	if r.pretty {
		data, err = json.MarshalIndent(result, "", "  ")
	} else {
		data, err = json.Marshal(result)
	}
	if err != nil {
		return err
	}

	if _, err = r.writer.Write(data); err != nil {
		return err
	}

	// Add trailing newline for terminal output
	_, err = r.writer.Write([]byte("\n"))
	return err
}

// GenerateSummaryOnly creates a compact JSON summary without per-finding data
func (r *JSONReporter) GenerateSummaryOnly(result *models.ScanResult) error {
	summary := struct {
		Timestamp       string                  `json:"timestamp"`
		Mode            models.ScanMode         `json:"mode"`
		Elevated        bool                    `json:"elevated"`
		Summary         models.Summary          `json:"summary"`
		Recommendations []models.Recommendation `json:"recommendations"`
	}{
		Timestamp:       result.Timestamp.Format("2006-01-02T15:04:05Z07:00"),
		Mode:            result.Mode,
		Elevated:        result.Elevated,
		Summary:         result.Summary,
		Recommendations: result.Summary.Recommendations,
	}

	var data []byte
	var err error

	if r.pretty {
		data, err = json.MarshalIndent(summary, "", "  ")
	} else {
		data, err = json.Marshal(summary)
	}
	if err != nil {
		return err
	}

	if _, err = r.writer.Write(data); err != nil {
		return err
	}

	_, err = r.writer.Write([]byte("\n"))
	return err
}
