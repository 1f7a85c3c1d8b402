package contract

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/fatih/color"

	"github.com/Mida-Energy/report-generator/schema"
)

// Color variables for console output.
var (
	HighColor   = color.New(color.FgRed, color.Bold) // highColor represents action required now.
	MediumColor = color.New(color.FgYellow)          // mediumColor represents standard caution, not bold.
	LowColor    = color.New(color.FgCyan)            // lowColor represents informational / low-priority signal.

	CompletedColor = color.New(color.FgGreen)
	FailedColor    = color.New(color.FgRed, color.Bold)
	PendingColor   = color.New(color.FgYellow)
)

// GetColorPriorityLabel returns a colored priority label for console output.
func GetColorPriorityLabel(p schema.Priority) string {
	switch p {
	case schema.PriorityHigh:
		return HighColor.Sprint(string(p))
	case schema.PriorityMedium:
		return MediumColor.Sprint(string(p))
	default:
		return LowColor.Sprint(string(p))
	}
}

// GetColorStatusLabel returns a colored report status label for console output.
func GetColorStatusLabel(s schema.ReportStatus) string {
	switch s {
	case schema.StatusCompleted:
		return CompletedColor.Sprint(string(s))
	case schema.StatusFailed:
		return FailedColor.Sprint(string(s))
	default:
		return PendingColor.Sprint(string(s))
	}
}

// SelectOutputFile returns the appropriate file handle for output, based on
// the provided file path. It falls back to os.Stdout when the path is empty.
func SelectOutputFile(filePath string) (*os.File, error) {
	if filePath == "" {
		return os.Stdout, nil
	}
	return os.Create(filePath)
}

// LogFatal logs an error and exits the program.
func LogFatal(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Fatal %s: %v\n", msg, err)
	os.Exit(1)
}

// LogWarn logs a warning message to stderr.
func LogWarn(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Warn %s: %v\n", msg, err)
}

// ParseBoolString parses a string value into a boolean.
// Accepts "yes", "no", "true", "false", "1", "0" (case-insensitive).
// Returns an error for invalid values.
func ParseBoolString(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "yes", "true", "1":
		return true, nil
	case "no", "false", "0":
		return false, nil
	default:
		return false, fmt.Errorf("invalid boolean string: %s (expected yes/no/true/false/1/0)", s)
	}
}

// ParseWindowDuration parses durations like "12h", "7d", "4w" or anything
// time.ParseDuration accepts. Days and weeks are expanded before parsing
// since the standard library stops at hours.
func ParseWindowDuration(s string) (time.Duration, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	if s == "" {
		return 0, fmt.Errorf("empty duration")
	}

	if n, ok := strings.CutSuffix(s, "d"); ok {
		days, err := strconv.ParseFloat(n, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid day count '%s'", n)
		}
		return time.Duration(days * 24 * float64(time.Hour)), nil
	}
	if n, ok := strings.CutSuffix(s, "w"); ok {
		weeks, err := strconv.ParseFloat(n, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid week count '%s'", n)
		}
		return time.Duration(weeks * 7 * 24 * float64(time.Hour)), nil
	}

	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("invalid duration '%s': expected forms like 12h, 7d, 4w", s)
	}
	return d, nil
}

// TruncateText truncates a string to a maximum width with ellipsis suffix.
// Requires maxWidth > 3 so there is room for the ellipsis and content.
func TruncateText(s string, maxWidth int) string {
	runes := []rune(s)
	if len(runes) > maxWidth && maxWidth > 3 {
		return string(runes[:maxWidth-3]) + "..."
	}
	return s
}
