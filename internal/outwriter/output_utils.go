package outwriter

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/Mida-Energy/report-generator/internal/contract"
	"github.com/Mida-Energy/report-generator/schema"
)

// writeWithFile handles the common pattern of opening a file, writing to it,
// and cleaning up. It accepts a writer function that takes an io.Writer and
// returns an error.
func writeWithFile(outputFile string, writer func(io.Writer) error, successMsg string) error {
	file, err := contract.SelectOutputFile(outputFile)
	if err != nil {
		return err
	}
	// Only close if it's not stdout
	if file != os.Stdout {
		defer func() { _ = file.Close() }()
	}

	if err := writer(file); err != nil {
		return err
	}

	if file != os.Stdout {
		fmt.Fprintf(os.Stderr, "💾 %s to %s\n", successMsg, outputFile)
	}
	return nil
}

// writeJSON is a generic JSON encoder that handles indentation consistently.
func writeJSON(w io.Writer, data any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(data); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}

// statusLabel picks the colored or plain status label based on config.
func statusLabel(status schema.ReportStatus, cfg *contract.Config) string {
	if cfg.UseColors {
		return contract.GetColorStatusLabel(status)
	}
	return string(status)
}

// headerText prefixes a section header with an emoji when enabled.
func headerText(emoji, text string, cfg *contract.Config) string {
	if cfg.UseEmojis {
		return emoji + " " + text
	}
	return text
}

// formatBytes renders a byte count with a binary unit suffix.
func formatBytes(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}

// joinDevices renders a device list for table cells, truncated to the
// available column width.
func joinDevices(deviceIDs []string, maxWidth int) string {
	joined := ""
	for i, id := range deviceIDs {
		if i > 0 {
			joined += ", "
		}
		joined += id
	}
	return contract.TruncateText(joined, maxWidth)
}
