// Package contract provides interfaces and shared utilities for internal architecture.
package contract

import (
	"context"
	"errors"

	"github.com/Mida-Energy/report-generator/schema"
)

// ErrSourceUnavailable is returned by a TelemetrySource when the underlying
// data source cannot be reached or read. A cycle hitting it fails and is
// retried only on the next scheduled or manual trigger.
var ErrSourceUnavailable = errors.New("telemetry source unavailable")

// TelemetrySource defines the read side of the time-series store.
// This allows the generation cycle to be tested without real meter data.
type TelemetrySource interface {
	// Fetch returns the ordered sample series for the requested devices
	// within the period. An empty device list means all known devices.
	// Returned series are snapshots; callers own them.
	Fetch(ctx context.Context, deviceIDs []string, period schema.Period) ([]schema.DeviceSeries, error)
}

// Renderer lays out an analysis result into a document artifact.
type Renderer interface {
	// Render produces the artifact bytes. The returned warnings are
	// non-empty when a block had to be truncated to fit a page; the
	// artifact is still valid in that case.
	Render(result *schema.AnalysisResult, recs []schema.Recommendation, meta schema.ReportMetadata) ([]byte, []string, error)
}

// Catalog is the durable index of produced artifacts. Implementations
// persist records and artifacts co-located so a restart reconstructs the
// same history without re-scanning.
type Catalog interface {
	// Register creates a new record in Pending state and stores the
	// artifact bytes when present.
	Register(record *schema.ReportRecord, artifact []byte) error

	// Finalize moves a pending record to its terminal status.
	Finalize(id string, status schema.ReportStatus, sizeBytes int64, warning string) error

	// List returns all records, most recent first.
	List() ([]schema.ReportRecord, error)

	// Get returns the record for the given ID.
	Get(id string) (schema.ReportRecord, error)

	// ReadArtifact returns the stored artifact bytes for the given ID.
	ReadArtifact(id string) ([]byte, error)

	// Delete removes the record and its artifact. The record is only
	// removed when the database delete succeeds, so a failure never
	// leaves an entry pointing at a missing artifact.
	Delete(id string) error

	// GetStatus returns status information about the catalog.
	GetStatus() (schema.CatalogStatus, error)

	// Close closes the underlying connection.
	Close() error
}
