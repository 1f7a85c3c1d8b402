// Package scheduler runs generation cycles, either on a background timer or
// on demand, with system-wide mutual exclusion.
package scheduler

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Mida-Energy/report-generator/core"
	"github.com/Mida-Energy/report-generator/internal/contract"
	"github.com/Mida-Energy/report-generator/schema"
)

// ErrAlreadyInProgress is returned when a trigger arrives while a cycle is
// active. The trigger is rejected, not queued.
var ErrAlreadyInProgress = errors.New("report generation already in progress")

// Health reports the scheduler state and the last cycle outcome.
type Health struct {
	State         State
	LastRecordID  string
	LastStatus    schema.ReportStatus
	LastError     string
	LastCompleted time.Time
	NextFire      time.Time
}

// Scheduler owns the generation state machine and the cycle pipeline
// collect, analyze, recommend, render, catalog.
type Scheduler struct {
	cfg      *contract.Config
	source   contract.TelemetrySource
	renderer contract.Renderer
	catalog  contract.Catalog
	machine  *stateMachine

	mu            sync.Mutex
	lastRecordID  string
	lastStatus    schema.ReportStatus
	lastError     string
	lastCompleted time.Time
	nextFire      time.Time
}

// New wires a scheduler around its collaborators.
func New(cfg *contract.Config, source contract.TelemetrySource, renderer contract.Renderer, catalog contract.Catalog) *Scheduler {
	return &Scheduler{
		cfg:      cfg,
		source:   source,
		renderer: renderer,
		catalog:  catalog,
		machine:  newStateMachine(),
	}
}

// TriggerNow runs one generation cycle synchronously. It fails immediately
// with ErrAlreadyInProgress when a cycle is active, whether started by the
// timer or another caller; both entry points share the same guard.
func (s *Scheduler) TriggerNow(ctx context.Context) (*schema.ReportRecord, error) {
	if !s.machine.TryAcquire() {
		return nil, ErrAlreadyInProgress
	}
	defer s.machine.Release()

	start := time.Now()
	record, err := s.runCycle(ctx)
	elapsed := time.Since(start)

	// The timeout is advisory: a slow cycle is logged, never terminated,
	// since a forced stop could leave a partial artifact behind.
	if s.cfg.CycleTimeout > 0 && elapsed > s.cfg.CycleTimeout {
		contract.LogWarn(fmt.Sprintf("Cycle took %s, exceeding the %s advisory timeout", elapsed.Round(time.Second), s.cfg.CycleTimeout), nil)
	}

	s.recordOutcome(record, err)
	return record, err
}

// Run fires cycles on the configured interval until the context is done.
// The next fire time is computed from the previous completion, so a long
// cycle delays but never skips the following one.
func (s *Scheduler) Run(ctx context.Context) error {
	timer := time.NewTimer(s.cfg.Interval)
	defer timer.Stop()
	s.setNextFire(time.Now().Add(s.cfg.Interval))

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timer.C:
			if _, err := s.TriggerNow(ctx); err != nil && !errors.Is(err, ErrAlreadyInProgress) {
				contract.LogWarn("Scheduled generation failed", err)
			}
			timer.Reset(s.cfg.Interval)
			s.setNextFire(time.Now().Add(s.cfg.Interval))
		}
	}
}

// Health returns the current state and last cycle outcome.
func (s *Scheduler) Health() Health {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Health{
		State:         s.machine.Current(),
		LastRecordID:  s.lastRecordID,
		LastStatus:    s.lastStatus,
		LastError:     s.lastError,
		LastCompleted: s.lastCompleted,
		NextFire:      s.nextFire,
	}
}

// runCycle executes one full generation. Data-availability failures before
// rendering leave nothing in the catalog; a render failure is cataloged as
// Failed without an artifact, and render warnings complete with a warning.
func (s *Scheduler) runCycle(ctx context.Context) (*schema.ReportRecord, error) {
	generatedAt := time.Now().UTC()
	record := &schema.ReportRecord{
		ID:          uuid.NewString(),
		DeviceIDs:   s.cfg.DeviceIDs,
		GeneratedAt: generatedAt,
		Status:      schema.StatusPending,
	}
	period := s.cfg.Period()

	// --- 1. Collect ---
	window, err := s.source.Fetch(ctx, s.cfg.DeviceIDs, period)
	if err != nil {
		return nil, err
	}

	// --- 2. Analyze and recommend ---
	s.machine.Advance(StateAnalyzing)
	result, err := core.Analyze(window, period, s.cfg.AnalysisOptions())
	if err != nil {
		return nil, err
	}
	record.DeviceIDs = result.DeviceIDs
	recs := core.Recommend(result)

	// --- 3. Render ---
	s.machine.Advance(StateRendering)
	meta := schema.ReportMetadata{
		Title:       s.cfg.ReportTitle,
		DeviceIDs:   result.DeviceIDs,
		GeneratedAt: generatedAt,
		Period:      period,
	}
	artifact, warnings, err := s.renderer.Render(result, recs, meta)
	if err != nil {
		// A partial artifact is never cataloged; the failure itself is.
		s.machine.Advance(StateCataloging)
		record.Status = schema.StatusFailed
		if regErr := s.catalog.Register(record, nil); regErr != nil {
			contract.LogWarn("Failed to catalog failed cycle", regErr)
		} else if finErr := s.catalog.Finalize(record.ID, schema.StatusFailed, 0, err.Error()); finErr != nil {
			contract.LogWarn("Failed to finalize failed cycle", finErr)
		}
		record.Warning = err.Error()
		s.machine.Advance(StateFailed)
		return record, err
	}

	// --- 4. Catalog ---
	s.machine.Advance(StateCataloging)
	if err := s.catalog.Register(record, artifact); err != nil {
		return nil, err
	}
	warning := strings.Join(warnings, "; ")
	if err := s.catalog.Finalize(record.ID, schema.StatusCompleted, int64(len(artifact)), warning); err != nil {
		return nil, err
	}
	record.Status = schema.StatusCompleted
	record.SizeBytes = int64(len(artifact))
	record.Warning = warning
	return record, nil
}

func (s *Scheduler) recordOutcome(record *schema.ReportRecord, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastCompleted = time.Now()
	if record != nil {
		s.lastRecordID = record.ID
		s.lastStatus = record.Status
	} else {
		s.lastStatus = schema.StatusFailed
	}
	if err != nil {
		s.lastError = err.Error()
	} else {
		s.lastError = ""
	}
}

func (s *Scheduler) setNextFire(t time.Time) {
	s.mu.Lock()
	s.nextFire = t
	s.mu.Unlock()
}
