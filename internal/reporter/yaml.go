package reporter

import (
	"io"

	"gopkg.in/yaml.v3"

	"github.com/okulov/windiag/internal/models"
)

// YAMLReporter generates YAML reports
type YAMLReporter struct {
	writer io.Writer
}

// NewYAMLReporter creates a new YAML reporter
func NewYAMLReporter(writer io.Writer) *YAMLReporter {
	return &YAMLReporter{writer: writer}
}

// Generate creates a YAML report from the scan result
func (r *YAMLReporter) Generate(result *models.ScanResult) error {
	enc := yaml.NewEncoder(r.writer)
	enc.SetIndent(2)
	if err := enc.Encode(result); err != nil {
		return err
	}
	return enc.Close()
}
