package cli

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/okulov/windiag/internal/config"
	"github.com/okulov/windiag/internal/models"
)

func TestHandleError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, ExitOK},
		{"validation", &ValidationError{Message: "bad flag"}, ExitInvalidInput},
		{"threshold", &ThresholdExceededError{IssueCount: 5, Threshold: 2}, ExitPolicyFail},
		{"runtime", errors.New("boom"), ExitRuntimeError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := HandleError(tt.err); got != tt.want {
				t.Errorf("HandleError(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}

func TestCheckThreshold(t *testing.T) {
	cfg = config.DefaultConfig()
	result := &models.ScanResult{
		Summary: models.Summary{
			BySeverity: models.SeverityCounts{Warning: 3, Critical: 2},
		},
	}

	scanThreshold = -1
	if err := checkThreshold(result); err != nil {
		t.Errorf("threshold disabled by default, got %v", err)
	}

	scanThreshold = 10
	if err := checkThreshold(result); err != nil {
		t.Errorf("5 findings under threshold 10, got %v", err)
	}

	scanThreshold = 5
	if err := checkThreshold(result); err != nil {
		t.Errorf("exactly at threshold should pass, got %v", err)
	}

	scanThreshold = 4
	err := checkThreshold(result)
	var te *ThresholdExceededError
	if !errors.As(err, &te) {
		t.Fatalf("err = %v, want ThresholdExceededError", err)
	}
	if te.IssueCount != 5 {
		t.Errorf("IssueCount = %d, want 5", te.IssueCount)
	}
}

func TestWriteReportFormats(t *testing.T) {
	result := &models.ScanResult{
		Mode:        models.ModeQuick,
		PerCategory: map[models.Category]models.CollectorResult{},
	}

	for _, format := range []string{"text", "json", "yaml", "html"} {
		var buf bytes.Buffer
		if err := writeReport(&buf, format, result); err != nil {
			t.Errorf("writeReport(%s): %v", format, err)
		}
		if buf.Len() == 0 {
			t.Errorf("writeReport(%s) produced no output", format)
		}
	}

	var buf bytes.Buffer
	err := writeReport(&buf, "xml", result)
	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Errorf("unknown format err = %v, want ValidationError", err)
	}
}

func TestThresholdExceededErrorMessage(t *testing.T) {
	err := &ThresholdExceededError{IssueCount: 7, Threshold: 3}
	if !strings.Contains(err.Error(), "7") || !strings.Contains(err.Error(), "3") {
		t.Errorf("Error() = %q", err.Error())
	}
}
