package catalog

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/Mida-Energy/report-generator/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) (*Store, string) {
	t.Helper()
	dir := t.TempDir()
	store, err := NewStore(schema.SQLiteBackend, "", dir)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store, dir
}

func newTestRecord(generatedAt time.Time) *schema.ReportRecord {
	return &schema.ReportRecord{
		ID:          uuid.NewString(),
		DeviceIDs:   []string{"meter-1", "meter-2"},
		GeneratedAt: generatedAt,
		Status:      schema.StatusPending,
	}
}

func TestStoreRegisterAndGet(t *testing.T) {
	store, dir := newTestStore(t)
	record := newTestRecord(time.Date(2025, 6, 9, 8, 0, 0, 0, time.UTC))
	artifact := []byte("%PDF-fake")

	require.NoError(t, store.Register(record, artifact))

	got, err := store.Get(record.ID)
	require.NoError(t, err)
	assert.Equal(t, record.ID, got.ID)
	assert.Equal(t, []string{"meter-1", "meter-2"}, got.DeviceIDs)
	assert.Equal(t, schema.StatusPending, got.Status)
	assert.True(t, record.GeneratedAt.Equal(got.GeneratedAt))

	// The artifact sits next to the catalog database.
	assert.Equal(t, filepath.Dir(got.ArtifactPath), dir)
	data, err := store.ReadArtifact(record.ID)
	require.NoError(t, err)
	assert.Equal(t, artifact, data)
}

func TestStoreFinalize(t *testing.T) {
	store, _ := newTestStore(t)
	record := newTestRecord(time.Now().UTC())
	require.NoError(t, store.Register(record, []byte("x")))

	require.NoError(t, store.Finalize(record.ID, schema.StatusCompleted, 1024, "hourly table truncated"))

	got, err := store.Get(record.ID)
	require.NoError(t, err)
	assert.Equal(t, schema.StatusCompleted, got.Status)
	assert.Equal(t, int64(1024), got.SizeBytes)
	assert.Equal(t, "hourly table truncated", got.Warning)

	assert.ErrorIs(t, store.Finalize("no-such-id", schema.StatusFailed, 0, ""), ErrNotFound)
}

func TestStoreListOrder(t *testing.T) {
	store, _ := newTestStore(t)
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	for i := 0; i < 3; i++ {
		record := newTestRecord(base.Add(time.Duration(i) * time.Hour))
		require.NoError(t, store.Register(record, []byte("x")))
	}

	records, err := store.List()
	require.NoError(t, err)
	require.Len(t, records, 3)
	for i := 1; i < len(records); i++ {
		assert.True(t, records[i-1].GeneratedAt.After(records[i].GeneratedAt),
			"records must be most recent first")
	}
}

func TestStoreDelete(t *testing.T) {
	store, _ := newTestStore(t)
	record := newTestRecord(time.Now().UTC())
	require.NoError(t, store.Register(record, []byte("x")))

	require.NoError(t, store.Delete(record.ID))

	_, err := store.Get(record.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = os.Stat(record.ArtifactPath)
	assert.True(t, os.IsNotExist(err))

	records, err := store.List()
	require.NoError(t, err)
	assert.Empty(t, records)

	assert.ErrorIs(t, store.Delete(record.ID), ErrNotFound)
}

func TestStoreSurvivesRestart(t *testing.T) {
	dir := t.TempDir()
	record := newTestRecord(time.Date(2025, 6, 9, 8, 0, 0, 0, time.UTC))

	store, err := NewStore(schema.SQLiteBackend, "", dir)
	require.NoError(t, err)
	require.NoError(t, store.Register(record, []byte("persisted")))
	require.NoError(t, store.Finalize(record.ID, schema.StatusCompleted, 9, ""))
	require.NoError(t, store.Close())

	// Reopening against the same directory reconstructs the same history.
	reopened, err := NewStore(schema.SQLiteBackend, "", dir)
	require.NoError(t, err)
	defer func() { _ = reopened.Close() }()

	records, err := reopened.List()
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, record.ID, records[0].ID)
	assert.Equal(t, schema.StatusCompleted, records[0].Status)

	data, err := reopened.ReadArtifact(record.ID)
	require.NoError(t, err)
	assert.Equal(t, []byte("persisted"), data)
}

func TestStoreStatus(t *testing.T) {
	store, dir := newTestStore(t)

	status, err := store.GetStatus()
	require.NoError(t, err)
	assert.True(t, status.Connected)
	assert.Equal(t, "sqlite", status.Backend)
	assert.Equal(t, dir, status.ArtifactsDir)
	assert.Equal(t, int64(0), status.TotalReports)

	record := newTestRecord(time.Date(2025, 6, 9, 8, 0, 0, 0, time.UTC))
	require.NoError(t, store.Register(record, []byte("x")))

	status, err = store.GetStatus()
	require.NoError(t, err)
	assert.Equal(t, int64(1), status.TotalReports)
	assert.True(t, status.LastReportAt.Equal(record.GeneratedAt))
}

func TestNoneBackend(t *testing.T) {
	store, err := NewStore(schema.NoneBackend, "", t.TempDir())
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	assert.NoError(t, store.Register(newTestRecord(time.Now()), []byte("x")))
	records, err := store.List()
	require.NoError(t, err)
	assert.Empty(t, records)

	status, err := store.GetStatus()
	require.NoError(t, err)
	assert.False(t, status.Connected)
}
