package telemetry

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Mida-Energy/report-generator/internal/contract"
	"github.com/Mida-Energy/report-generator/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleCSV = `timestamp,total_act_energy,avg_act_power,avg_voltage,avg_current
1748736000,10.0,600,230.1,2.6
1748736060,10.5,630,229.8,2.7
1748736120,9.8,590,230.4,2.5
`

// wholePeriod covers every sample in the fixtures.
var wholePeriod = schema.Period{
	Start: time.Unix(1748730000, 0).UTC(),
	End:   time.Unix(1748740000, 0).UTC(),
}

func writeFixture(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func TestCSVSourceFetch(t *testing.T) {
	dir := t.TempDir()
	writeFixture(t, dir, "emdata_meter-1.csv", sampleCSV)

	source := NewCSVSource(dir)
	series, err := source.Fetch(context.Background(), nil, wholePeriod)
	require.NoError(t, err)
	require.Len(t, series, 1)

	s := series[0]
	assert.Equal(t, "meter-1", s.DeviceID)
	require.Len(t, s.Points, 3)

	// Interval Wh accumulates into a monotonic kWh register.
	assert.InDelta(t, 0.010, s.Points[0].ActiveEnergy, 0.0001)
	assert.InDelta(t, 0.0205, s.Points[1].ActiveEnergy, 0.0001)
	assert.InDelta(t, 0.0303, s.Points[2].ActiveEnergy, 0.0001)

	assert.InDelta(t, 600.0, s.Points[0].ActivePower, 0.001)
	assert.InDelta(t, 230.1, s.Points[0].Voltage, 0.001)
	assert.InDelta(t, 2.6, s.Points[0].Current, 0.001)

	// Timestamps are strictly increasing.
	assert.True(t, s.Points[0].Timestamp.Before(s.Points[1].Timestamp))
}

func TestCSVSourceDeviceFilter(t *testing.T) {
	dir := t.TempDir()
	writeFixture(t, dir, "emdata_meter-1.csv", sampleCSV)
	writeFixture(t, dir, "emdata_meter-2.csv", sampleCSV)

	source := NewCSVSource(dir)
	series, err := source.Fetch(context.Background(), []string{"meter-2"}, wholePeriod)
	require.NoError(t, err)
	require.Len(t, series, 1)
	assert.Equal(t, "meter-2", series[0].DeviceID)
}

func TestCSVSourcePeriodFilter(t *testing.T) {
	dir := t.TempDir()
	writeFixture(t, dir, "emdata_meter-1.csv", sampleCSV)

	// Only the second sample falls inside this period.
	period := schema.Period{
		Start: time.Unix(1748736030, 0).UTC(),
		End:   time.Unix(1748736090, 0).UTC(),
	}
	source := NewCSVSource(dir)
	series, err := source.Fetch(context.Background(), nil, period)
	require.NoError(t, err)
	require.Len(t, series, 1)
	require.Len(t, series[0].Points, 1)
	// The register still reflects energy accumulated before the period.
	assert.InDelta(t, 0.0205, series[0].Points[0].ActiveEnergy, 0.0001)
}

func TestCSVSourceDedupesTimestamps(t *testing.T) {
	dir := t.TempDir()
	writeFixture(t, dir, "emdata_meter-1.csv",
		"timestamp,total_act_energy,avg_act_power\n"+
			"1748736000,10.0,600\n"+
			"1748736000,10.0,600\n"+
			"1748736060,10.5,630\n")

	source := NewCSVSource(dir)
	series, err := source.Fetch(context.Background(), nil, wholePeriod)
	require.NoError(t, err)
	require.Len(t, series, 1)
	assert.Len(t, series[0].Points, 2)
}

func TestCSVSourceDerivesPowerWhenMissing(t *testing.T) {
	dir := t.TempDir()
	// 60 Wh consumed in one minute is 3600 W average.
	writeFixture(t, dir, "emdata_meter-1.csv",
		"timestamp,total_act_energy\n"+
			"1748736000,10.0\n"+
			"1748736060,60.0\n")

	source := NewCSVSource(dir)
	series, err := source.Fetch(context.Background(), nil, wholePeriod)
	require.NoError(t, err)
	require.Len(t, series, 1)
	require.Len(t, series[0].Points, 2)
	assert.InDelta(t, 3600.0, series[0].Points[1].ActivePower, 0.1)
}

func TestCSVSourceUnavailable(t *testing.T) {
	source := NewCSVSource(filepath.Join(t.TempDir(), "missing"))
	_, err := source.Fetch(context.Background(), nil, wholePeriod)
	require.ErrorIs(t, err, contract.ErrSourceUnavailable)

	empty := NewCSVSource(t.TempDir())
	_, err = empty.Fetch(context.Background(), nil, wholePeriod)
	require.ErrorIs(t, err, contract.ErrSourceUnavailable)
}

func TestCSVSourceSkipsMalformedFile(t *testing.T) {
	dir := t.TempDir()
	writeFixture(t, dir, "emdata_meter-1.csv", sampleCSV)
	writeFixture(t, dir, "notes.csv", "no timestamp column here\n1,2\n")

	source := NewCSVSource(dir)
	series, err := source.Fetch(context.Background(), nil, wholePeriod)
	require.NoError(t, err)
	assert.Len(t, series, 1)
}
