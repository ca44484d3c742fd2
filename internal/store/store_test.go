package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eirstat/internal/dataprocessing"
)

func openTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := Open(":memory:", nil)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSaveAndLoadTable(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.BeginRun(ctx, "run-1"))

	rows := []dataprocessing.PollutionRow{
		{County: "Ireland", Year: 2022, Pollutant: "CO2", Value: 40000, GeographicLevel: "National"},
		{County: "Ireland", Year: 2022, Pollutant: "NOx", Value: 10000, GeographicLevel: "National"},
	}
	require.NoError(t, s.SaveTable(ctx, "run-1", "raw_pollution", rows))

	var loaded []dataprocessing.PollutionRow
	require.NoError(t, s.LoadTable(ctx, "run-1", "raw_pollution", &loaded))
	assert.Equal(t, rows, loaded)
}

func TestSaveTableReplacesExistingPayload(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.BeginRun(ctx, "run-1"))
	require.NoError(t, s.SaveTable(ctx, "run-1", "raw_pollution", []int{1, 2, 3}))
	require.NoError(t, s.SaveTable(ctx, "run-1", "raw_pollution", []int{4, 5}))

	var loaded []int
	require.NoError(t, s.LoadTable(ctx, "run-1", "raw_pollution", &loaded))
	assert.Equal(t, []int{4, 5}, loaded)

	names, err := s.ListTables(ctx, "run-1")
	require.NoError(t, err)
	assert.Equal(t, []string{"raw_pollution"}, names)
}

func TestLoadTableMissing(t *testing.T) {
	s := openTestStore(t)

	var dest []int
	err := s.LoadTable(context.Background(), "run-1", "nope", &dest)
	assert.ErrorContains(t, err, "not found")
}

func TestListTablesOrdered(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.BeginRun(ctx, "run-1"))
	require.NoError(t, s.SaveTable(ctx, "run-1", "processed_water", []int{1}))
	require.NoError(t, s.SaveTable(ctx, "run-1", "analysis_results", []int{2}))
	require.NoError(t, s.SaveTable(ctx, "run-1", "raw_population", []int{3}))

	names, err := s.ListTables(ctx, "run-1")
	require.NoError(t, err)
	assert.Equal(t, []string{"analysis_results", "processed_water", "raw_population"}, names)
}

func TestFinishRun(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.BeginRun(ctx, "run-1"))
	require.NoError(t, s.FinishRun(ctx, "run-1", StatusCompleted))

	err := s.FinishRun(ctx, "run-2", StatusFailed)
	assert.ErrorContains(t, err, "not found")
}

func TestRunsAreIsolated(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.BeginRun(ctx, "run-1"))
	require.NoError(t, s.BeginRun(ctx, "run-2"))
	require.NoError(t, s.SaveTable(ctx, "run-1", "raw_pollution", []int{1}))

	var dest []int
	err := s.LoadTable(ctx, "run-2", "raw_pollution", &dest)
	assert.Error(t, err)
}
