package schema

import "time"

// Priority orders recommendations in the action plan.
type Priority string

// Recommendation priorities, highest first.
const (
	PriorityHigh   Priority = "High"
	PriorityMedium Priority = "Medium"
	PriorityLow    Priority = "Low"
)

// Rank maps priorities to sort order, highest priority first.
func (p Priority) Rank() int {
	switch p {
	case PriorityHigh:
		return 0
	case PriorityMedium:
		return 1
	default:
		return 2
	}
}

// Recommendation is one entry of the report's action plan.
type Recommendation struct {
	Priority         Priority
	Title            string
	Description      string
	Timeline         string // e.g. "2 weeks"
	Responsible      string // e.g. "Energy team"
	EstimatedSaving  float64 // kWh over the next period
	SavingPercentage float64 // Fraction of total energy the rule assumes
}

// ReportStatus is the lifecycle state of a catalog entry.
type ReportStatus string

// Report lifecycle states. A record moves from Pending to exactly one
// terminal status and is then only removed by an explicit delete.
const (
	StatusPending   ReportStatus = "pending"
	StatusCompleted ReportStatus = "completed"
	StatusFailed    ReportStatus = "failed"
)

// ReportRecord is the catalog entry for one generated artifact.
type ReportRecord struct {
	ID           string
	DeviceIDs    []string
	GeneratedAt  time.Time
	ArtifactPath string
	Status       ReportStatus
	SizeBytes    int64
	Warning      string // Non-empty when rendering degraded but completed
}

// ReportMetadata is the static context stamped into a rendered document.
type ReportMetadata struct {
	Title       string
	DeviceIDs   []string
	GeneratedAt time.Time
	Period      Period
}

// CatalogStatus summarizes the history catalog for the status probe.
type CatalogStatus struct {
	Backend      string
	Connected    bool
	TotalReports int64
	LastReportAt time.Time
	ArtifactsDir string
}
