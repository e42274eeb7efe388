// Package contract provides interfaces and shared utilities for internal architecture.
package contract

import (
	"time"

	"github.com/roneystein/structured-content-tools/schema"
)

// Reporter receives data warnings raised while walking a document. Warnings
// mark recovered-locally problems (an unparsable timestamp, a blocked write)
// and never interrupt the walk.
type Reporter interface {
	// Warn records a warning tagged with the context it occurred in,
	// typically a document path or field path.
	Warn(context, message string)
}

// RunStore tracks enrichment runs and their computed transitions.
// This allows the store layer to be mocked for testing.
type RunStore interface {
	// BeginRun creates a new enrichment run and returns its unique ID.
	BeginRun(startTime time.Time, configParams map[string]any) (int64, error)

	// EndRun updates the run with completion data.
	EndRun(runID int64, endTime time.Time, totalDocs, totalTransitions int) error

	// RecordTransition stores one computed transition for a run.
	RecordTransition(runID int64, docPath string, rec schema.TransitionRecord) error

	// GetStatus returns status information about the store.
	GetStatus() (schema.StoreStatus, error)

	// GetAllRuns returns every persisted run, oldest first.
	GetAllRuns() ([]schema.RunRecord, error)

	// GetAllTransitions returns every persisted transition row, oldest first.
	GetAllTransitions() ([]schema.StoredTransition, error)

	// Clear removes all persisted runs and transitions.
	Clear() error

	// Close closes the underlying connection.
	Close() error
}

// StoreManager exposes the run store to command and core logic.
// This allows the store layer to be swapped for testing.
type StoreManager interface {
	GetRunStore() RunStore
}
