package contract

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/Mida-Energy/report-generator/schema"
)

// Default values for configuration.
const (
	DefaultWindowDays       = 30
	DefaultIntervalHours    = 24
	DefaultResultLimit      = 25
	MaxResultLimit          = 1000
	DefaultCycleTimeoutMins = 10
	DefaultReportTitle      = "Energy Consumption Report"
)

// DateTimeFormat is the default date time representation.
var DateTimeFormat = time.RFC3339

// Config is the validated runtime configuration for report generation.
// Only ProcessAndValidate writes it; everything downstream reads it.
type Config struct {
	DeviceIDs []string
	StartTime time.Time
	EndTime   time.Time
	Window    time.Duration

	AnomalySigma    float64
	NightAlertRatio float64
	EmissionFactor  float64

	Interval     time.Duration // Scheduler fire interval
	CycleTimeout time.Duration // Advisory only; slow cycles log a warning

	CatalogBackend   schema.CatalogBackend
	CatalogDBConnect string // Please use env var as this is plaintext
	ArtifactsDir     string

	DataDir string // Directory scanned for telemetry CSV exports

	ReportTitle string
	ResultLimit int
	Output      schema.OutputMode
	OutputFile  string
	Width       int // Terminal width override (0 = auto-detect)

	UseEmojis bool // Enable emojis in output headers
	UseColors bool // Enable colored labels in table output
}

// ConfigRawInput is the Viper unmarshal target: string-typed, unvalidated
// values as they arrive from flags, env and the config file.
type ConfigRawInput struct {
	// --- Persistent flags shared by every command ---
	Devices          string `mapstructure:"devices"`
	Start            string `mapstructure:"start"`
	End              string `mapstructure:"end"`
	Window           string `mapstructure:"window"`
	CatalogBackend   string `mapstructure:"catalog-backend"`
	CatalogDBConnect string `mapstructure:"catalog-db-connect"`
	ArtifactsDir     string `mapstructure:"artifacts-dir"`
	DataDir          string `mapstructure:"data-dir"`
	Limit            int    `mapstructure:"limit"`
	Output           string `mapstructure:"output"`
	OutputFile       string `mapstructure:"output-file"`
	Width            int    `mapstructure:"width"`
	Emoji            string `mapstructure:"emoji"`
	Color            string `mapstructure:"color"`

	// --- Analysis tuning from config file or flags ---
	Sigma          float64 `mapstructure:"sigma"`
	NightRatio     float64 `mapstructure:"night-ratio"`
	EmissionFactor float64 `mapstructure:"emission-factor"`

	// --- serve flags ---
	Interval     string `mapstructure:"interval"`
	CycleTimeout string `mapstructure:"cycle-timeout"`

	// --- generate flags ---
	Title string `mapstructure:"title"`
}

// AnalysisOptions returns the analysis tuning derived from the config.
func (c *Config) AnalysisOptions() schema.AnalysisOptions {
	return schema.AnalysisOptions{
		AnomalySigma:    c.AnomalySigma,
		NightAlertRatio: c.NightAlertRatio,
		EmissionFactor:  c.EmissionFactor,
	}.Normalized()
}

// Period returns the analysis window as a period.
func (c *Config) Period() schema.Period {
	return schema.Period{Start: c.StartTime, End: c.EndTime}
}

// Clone returns a deep copy, including the device slice.
func (c *Config) Clone() *Config {
	clone := *c
	if c.DeviceIDs != nil {
		clone.DeviceIDs = make([]string, len(c.DeviceIDs))
		copy(clone.DeviceIDs, c.DeviceIDs)
	}
	return &clone
}

// CloneWithTimeWindow copies the config onto a fresh analysis window.
func (c *Config) CloneWithTimeWindow(start time.Time, end time.Time) *Config {
	clone := c.Clone()
	clone.StartTime = start
	clone.EndTime = end
	return clone
}

// ProcessAndValidate performs all parsing and validation on the raw inputs
// and updates the final Config struct.
func ProcessAndValidate(cfg *Config, input *ConfigRawInput) error {
	if err := validateSimpleInputs(cfg, input); err != nil {
		return err
	}
	if err := processTimeRange(cfg, input); err != nil {
		return err
	}
	if err := processAnalysisTuning(cfg, input); err != nil {
		return err
	}
	if err := processSchedulerInputs(cfg, input); err != nil {
		return err
	}
	return validateBackendConfig(cfg, input)
}

// validateSimpleInputs handles every field that needs no time parsing.
func validateSimpleInputs(cfg *Config, input *ConfigRawInput) error {
	cfg.OutputFile = input.OutputFile
	cfg.DataDir = input.DataDir
	cfg.Width = input.Width
	cfg.ReportTitle = strings.TrimSpace(input.Title)
	if cfg.ReportTitle == "" {
		cfg.ReportTitle = DefaultReportTitle
	}

	emojis, err := ParseBoolString(input.Emoji)
	if err != nil {
		return fmt.Errorf("invalid --emoji value: %w", err)
	}
	cfg.UseEmojis = emojis

	colors, err := ParseBoolString(input.Color)
	if err != nil {
		return fmt.Errorf("invalid --color value: %w", err)
	}
	cfg.UseColors = colors

	// Device selection: comma-separated IDs, empty means all devices
	cfg.DeviceIDs = nil
	if input.Devices != "" {
		for p := range strings.SplitSeq(input.Devices, ",") {
			trimmed := strings.TrimSpace(p)
			if trimmed != "" {
				cfg.DeviceIDs = append(cfg.DeviceIDs, trimmed)
			}
		}
	}

	if input.Limit <= 0 || input.Limit > MaxResultLimit {
		return fmt.Errorf("limit must be greater than 0 and cannot exceed %d (received %d)", MaxResultLimit, input.Limit)
	}
	cfg.ResultLimit = input.Limit

	cfg.Output = schema.OutputMode(strings.ToLower(input.Output))
	if _, ok := schema.ValidOutputModes[cfg.Output]; !ok {
		return fmt.Errorf("invalid output format '%s'. must be text, csv, json", cfg.Output)
	}

	return nil
}

// processTimeRange handles date parsing and window resolution. An explicit
// start/end pair wins over the window duration; otherwise the window is
// anchored at the current time.
func processTimeRange(cfg *Config, input *ConfigRawInput) error {
	window := time.Duration(DefaultWindowDays) * 24 * time.Hour
	if input.Window != "" {
		parsed, err := ParseWindowDuration(input.Window)
		if err != nil {
			return fmt.Errorf("invalid window: %w", err)
		}
		window = parsed
	}
	cfg.Window = window

	now := time.Now().UTC()
	cfg.EndTime = now
	cfg.StartTime = now.Add(-window)

	if input.Start != "" {
		t, err := time.Parse(DateTimeFormat, input.Start)
		if err != nil {
			return fmt.Errorf("invalid start date format for '%s'. Expected ISO8601: %v", input.Start, err)
		}
		cfg.StartTime = t
	}
	if input.End != "" {
		t, err := time.Parse(DateTimeFormat, input.End)
		if err != nil {
			return fmt.Errorf("invalid end date format for '%s'. Expected ISO8601: %v", input.End, err)
		}
		cfg.EndTime = t
	}

	if cfg.StartTime.After(cfg.EndTime) {
		return fmt.Errorf("start time (%s) cannot be after end time (%s)",
			cfg.StartTime.Format(DateTimeFormat), cfg.EndTime.Format(DateTimeFormat))
	}
	return nil
}

// processAnalysisTuning validates the analysis sensitivity knobs. Zero means
// "use the default"; negative values are rejected.
func processAnalysisTuning(cfg *Config, input *ConfigRawInput) error {
	if input.Sigma < 0 {
		return fmt.Errorf("sigma must be positive (received %.2f)", input.Sigma)
	}
	cfg.AnomalySigma = input.Sigma

	if input.NightRatio < 0 || input.NightRatio >= 1 {
		return fmt.Errorf("night-ratio must be in [0, 1) (received %.2f)", input.NightRatio)
	}
	cfg.NightAlertRatio = input.NightRatio

	if input.EmissionFactor < 0 {
		return fmt.Errorf("emission-factor must be positive (received %.2f)", input.EmissionFactor)
	}
	cfg.EmissionFactor = input.EmissionFactor
	return nil
}

// processSchedulerInputs parses the scheduler interval and advisory timeout.
func processSchedulerInputs(cfg *Config, input *ConfigRawInput) error {
	cfg.Interval = time.Duration(DefaultIntervalHours) * time.Hour
	if input.Interval != "" {
		interval, err := ParseWindowDuration(input.Interval)
		if err != nil {
			return fmt.Errorf("invalid interval: %w", err)
		}
		if interval < time.Minute {
			return fmt.Errorf("interval must be at least 1m (received %s)", interval)
		}
		cfg.Interval = interval
	}

	cfg.CycleTimeout = DefaultCycleTimeoutMins * time.Minute
	if input.CycleTimeout != "" {
		timeout, err := ParseWindowDuration(input.CycleTimeout)
		if err != nil {
			return fmt.Errorf("invalid cycle-timeout: %w", err)
		}
		cfg.CycleTimeout = timeout
	}
	return nil
}

// validateBackendConfig validates the catalog backend and its storage layout.
func validateBackendConfig(cfg *Config, input *ConfigRawInput) error {
	cfg.CatalogBackend = schema.CatalogBackend(strings.ToLower(input.CatalogBackend))
	if _, ok := schema.ValidCatalogBackends[cfg.CatalogBackend]; !ok {
		return fmt.Errorf("invalid catalog backend '%s'. must be sqlite, mysql, postgresql, none", input.CatalogBackend)
	}
	cfg.CatalogDBConnect = input.CatalogDBConnect
	if err := ValidateDatabaseConnectionString(cfg.CatalogBackend, cfg.CatalogDBConnect); err != nil {
		return err
	}

	cfg.ArtifactsDir = input.ArtifactsDir
	if cfg.ArtifactsDir == "" {
		cfg.ArtifactsDir = GetDefaultArtifactsDir()
	}
	abs, err := filepath.Abs(cfg.ArtifactsDir)
	if err != nil {
		return fmt.Errorf("invalid artifacts-dir: %w", err)
	}
	cfg.ArtifactsDir = abs
	return nil
}

// ValidateDatabaseConnectionString validates the format of database connection
// strings for MySQL and PostgreSQL backends.
func ValidateDatabaseConnectionString(backend schema.CatalogBackend, connStr string) error {
	switch backend {
	case schema.SQLiteBackend, schema.NoneBackend:
		return nil
	case schema.MySQLBackend:
		if connStr == "" {
			return fmt.Errorf("catalog-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "@tcp(") {
			return fmt.Errorf("MySQL connection string must contain '@tcp(' for host:port specification")
		}
		if !strings.Contains(connStr, "/") {
			return fmt.Errorf("MySQL connection string must contain '/' followed by database name")
		}
	case schema.PostgreSQLBackend:
		if connStr == "" {
			return fmt.Errorf("catalog-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "host=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'host=' parameter")
		}
		if !strings.Contains(connStr, "dbname=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'dbname=' parameter")
		}
	}
	return nil
}

// GetDefaultArtifactsDir returns the default directory for report artifacts
// and the co-located catalog database.
func GetDefaultArtifactsDir() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".midareport"
	}
	return filepath.Join(homeDir, ".midareport")
}
