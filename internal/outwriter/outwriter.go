// Package outwriter has output and writer logic for the CLI surfaces.
package outwriter

import (
	"os"

	"golang.org/x/term"

	"github.com/Mida-Energy/report-generator/internal/contract"
	"github.com/Mida-Energy/report-generator/internal/scheduler"
	"github.com/Mida-Energy/report-generator/schema"
)

// OutWriter provides a unified interface for all output operations.
// It encapsulates the various output formats and provides a clean API for the
// command layer.
type OutWriter struct{}

// NewOutWriter creates a new instance of the output writer.
func NewOutWriter() *OutWriter {
	return &OutWriter{}
}

// WriteHistory prints catalog records using the configured output format.
func (ow *OutWriter) WriteHistory(records []schema.ReportRecord, cfg *contract.Config) error {
	return PrintHistory(records, cfg)
}

// WriteRecord prints a single catalog record as a key/value detail view.
func (ow *OutWriter) WriteRecord(record schema.ReportRecord, cfg *contract.Config) error {
	return PrintRecordDetail(record, cfg)
}

// WriteStatus prints the catalog status and scheduler health probe.
func (ow *OutWriter) WriteStatus(status schema.CatalogStatus, health *scheduler.Health, cfg *contract.Config) error {
	return PrintStatus(status, health, cfg)
}

// GetMaxTableDeviceWidth calculates the maximum width for the device list
// column in table output based on terminal width.
func GetMaxTableDeviceWidth(cfg *contract.Config) int {
	var termWidth int

	// Check for absolute width override from flag/env
	if cfg.Width > 0 {
		termWidth = cfg.Width
	}

	if termWidth == 0 { // Not set by override
		detectedWidth, _, err := term.GetSize(int(os.Stdout.Fd()))
		if err != nil || detectedWidth <= 0 {
			// Fallback to conservative default if terminal size can't be detected
			termWidth = 80 // Conservative default for narrow terminals and CI
		} else {
			termWidth = detectedWidth
		}
	}

	// Reserve space for fixed columns with table formatting:
	// Rank + ID + Generated + Status + Size + borders/padding.
	baseWidth := 75

	available := termWidth - baseWidth
	if available < 12 {
		// Minimum reasonable device list width
		return 12
	}
	if available > 60 {
		// Maximum width to prevent overly long device lists
		return 60
	}
	return available
}
