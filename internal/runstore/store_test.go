package runstore

import (
	"testing"
	"time"

	"github.com/roneystein/structured-content-tools/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func sampleTransition(key string) schema.TransitionRecord {
	return schema.TransitionRecord{
		IssueKey:       key,
		IssueType:      "Bug",
		ProjectName:    "ORG Project",
		FromStatus:     "Open",
		ToStatus:       "In Progress",
		TransitionTime: time.Date(2015, 10, 6, 13, 0, 0, 0, time.UTC),
		TotalMinutes:   300,
		WorkingMinutes: 300,
		WorkingHours:   5,
	}
}

func TestRunStore_NoneBackend(t *testing.T) {
	store, err := NewRunStore(schema.NoneBackend, "")
	require.NoError(t, err)
	require.NotNil(t, store)

	// BeginRun should return 0 for NoneBackend
	runID, err := store.BeginRun(time.Now(), map[string]any{"test": "value"})
	assert.NoError(t, err)
	assert.Equal(t, int64(0), runID)

	// Other operations should not error
	assert.NoError(t, store.EndRun(1, time.Now(), 10, 20))
	assert.NoError(t, store.RecordTransition(1, "doc.json", sampleTransition("ORG-1")))
	assert.NoError(t, store.Clear())

	runs, err := store.GetAllRuns()
	assert.NoError(t, err)
	assert.Empty(t, runs)

	status, err := store.GetStatus()
	assert.NoError(t, err)
	assert.False(t, status.Connected)

	assert.NoError(t, store.Close())
}

func TestRunStore_SQLite(t *testing.T) {
	store, err := NewRunStore(schema.SQLiteBackend, ":memory:")
	require.NoError(t, err)
	require.NotNil(t, store)
	defer func() { _ = store.Close() }()

	// Test BeginRun
	startTime := time.Now()
	configParams := map[string]any{
		"target-field": "time_in_source",
		"workers":      4,
	}
	runID, err := store.BeginRun(startTime, configParams)
	require.NoError(t, err)
	assert.Greater(t, runID, int64(0))

	// Test RecordTransition
	require.NoError(t, store.RecordTransition(runID, "data/ORG-1.json", sampleTransition("ORG-1")))
	require.NoError(t, store.RecordTransition(runID, "data/ORG-2.json", sampleTransition("ORG-2")))

	// Test EndRun
	require.NoError(t, store.EndRun(runID, time.Now(), 2, 2))

	// Read back the run
	runs, err := store.GetAllRuns()
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, runID, runs[0].RunID)
	assert.Equal(t, 2, runs[0].TotalDocs)
	assert.Equal(t, 2, runs[0].TotalEvents)
	require.NotNil(t, runs[0].EndTime)
	require.NotNil(t, runs[0].DurationMs)
	assert.GreaterOrEqual(t, *runs[0].DurationMs, int64(0))
	assert.Contains(t, runs[0].ConfigParams, "time_in_source")

	// Read back the transitions
	transitions, err := store.GetAllTransitions()
	require.NoError(t, err)
	require.Len(t, transitions, 2)
	assert.Equal(t, runID, transitions[0].RunID)
	assert.Equal(t, "data/ORG-1.json", transitions[0].DocPath)
	assert.Equal(t, "ORG-1", transitions[0].Record.IssueKey)
	assert.Equal(t, "Bug", transitions[0].Record.IssueType)
	assert.Equal(t, 5, transitions[0].Record.WorkingHours)
	assert.False(t, transitions[0].StoredAt.IsZero())
}

func TestRunStore_EmptyContextFields(t *testing.T) {
	store, err := NewRunStore(schema.SQLiteBackend, ":memory:")
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	runID, err := store.BeginRun(time.Now(), nil)
	require.NoError(t, err)

	rec := sampleTransition("ORG-3")
	rec.IssueType = ""
	rec.ProjectName = ""
	require.NoError(t, store.RecordTransition(runID, "data/ORG-3.json", rec))

	transitions, err := store.GetAllTransitions()
	require.NoError(t, err)
	require.Len(t, transitions, 1)
	assert.Empty(t, transitions[0].Record.IssueType)
	assert.Empty(t, transitions[0].Record.ProjectName)
}

func TestRunStore_GetStatus(t *testing.T) {
	store, err := NewRunStore(schema.SQLiteBackend, ":memory:")
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	// Empty store
	status, err := store.GetStatus()
	require.NoError(t, err)
	assert.True(t, status.Connected)
	assert.Equal(t, schema.SQLiteBackend, status.Backend)
	assert.Zero(t, status.TotalRuns)

	// Two runs with one transition
	_, err = store.BeginRun(time.Now().Add(-time.Hour), nil)
	require.NoError(t, err)
	secondID, err := store.BeginRun(time.Now(), nil)
	require.NoError(t, err)
	require.NoError(t, store.RecordTransition(secondID, "doc.json", sampleTransition("ORG-1")))

	status, err = store.GetStatus()
	require.NoError(t, err)
	assert.Equal(t, 2, status.TotalRuns)
	assert.Equal(t, secondID, status.LastRunID)
	assert.Equal(t, 1, status.TotalTransitions)
	assert.True(t, status.OldestRunTime.Before(status.LastRunTime))
	assert.Equal(t, 2, status.TableSizes[enrichRunsTable])
	assert.Equal(t, 1, status.TableSizes[statusTransitionsTable])
}

func TestRunStore_Clear(t *testing.T) {
	store, err := NewRunStore(schema.SQLiteBackend, ":memory:")
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	runID, err := store.BeginRun(time.Now(), nil)
	require.NoError(t, err)
	require.NoError(t, store.RecordTransition(runID, "doc.json", sampleTransition("ORG-1")))

	require.NoError(t, store.Clear())

	status, err := store.GetStatus()
	require.NoError(t, err)
	assert.Zero(t, status.TotalRuns)
	assert.Zero(t, status.TotalTransitions)
}

func TestRunStore_UnsupportedBackend(t *testing.T) {
	_, err := NewRunStore(schema.DatabaseBackend("oracle"), "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported backend")
}

func TestMockRunStore(t *testing.T) {
	mockStore := &MockRunStore{}
	mockStore.On("BeginRun", mock.Anything, mock.Anything).Return(int64(42), nil)
	mockStore.On("Close").Return(nil)

	runID, err := mockStore.BeginRun(time.Now(), nil)
	require.NoError(t, err)
	assert.Equal(t, int64(42), runID)
	assert.NoError(t, mockStore.Close())
	mockStore.AssertExpectations(t)
}
