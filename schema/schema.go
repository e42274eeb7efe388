// Package schema has configs, models and shared constants for all parts of sct.
package schema

import "time"

// Document is a parsed structured content document: an arbitrary nesting of
// maps and lists as produced by encoding/json. The enrichment pipeline mutates
// documents in place and never retains them past a single call.
type Document = map[string]any

// TransitionRecord captures one computed status transition inside a document's
// change history. WorkingHours is the rounded-up value written back into the
// document; TotalMinutes and WorkingMinutes keep the exact engine output for
// reporting and persistence.
type TransitionRecord struct {
	IssueKey       string    // Issue key of the owning document (empty if absent)
	IssueType      string    // Denormalized issue type context
	ProjectName    string    // Denormalized project name context
	FromStatus     string    // Status before the transition
	ToStatus       string    // Status after the transition
	TransitionTime time.Time // When the transition happened
	TotalMinutes   int       // Exact wall-clock minutes since the previous transition
	WorkingMinutes int       // Business-hours minutes since the previous transition
	WorkingHours   int       // Rounded-up working hours written into the document
}

// DocumentResult aggregates the outcome of enriching a single document.
type DocumentResult struct {
	Path         string             // Source path of the document
	IssueKey     string             // Issue key extracted from the document root
	Transitions  []TransitionRecord // Computed transitions in history order
	Warnings     []string           // Recovered-locally problems found during the walk
	HistoryCount int                // Number of change-history entries walked
	PrunedItems  int                // Non-status items removed when pruning is enabled
}

// EnrichSummary describes a whole enrichment run for reporting.
type EnrichSummary struct {
	Documents   int           // Documents processed
	Transitions int           // Status transitions computed
	Warnings    int           // Total warnings across all documents
	Elapsed     time.Duration // Wall-clock duration of the run
}

// RunRecord is a persisted enrichment run.
type RunRecord struct {
	RunID        int64
	StartTime    time.Time
	EndTime      *time.Time
	DurationMs   *int64
	TotalDocs    int
	TotalEvents  int
	ConfigParams string // JSON-encoded run configuration
}

// StoredTransition is a persisted transition row tied to a run.
type StoredTransition struct {
	RunID    int64
	DocPath  string
	Record   TransitionRecord
	StoredAt time.Time
}

// StoreStatus reports the state of the run-tracking store.
type StoreStatus struct {
	Backend          DatabaseBackend
	Connected        bool
	TotalRuns        int
	LastRunID        int64
	LastRunTime      time.Time
	OldestRunTime    time.Time
	TotalTransitions int
	TableSizes       map[string]int
}
