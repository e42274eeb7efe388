// Package parquet provides data structures and functions for exporting
// enrichment run data to Parquet files using github.com/parquet-go/parquet-go.
package parquet

import (
	"fmt"
	"os"
	"time"

	"github.com/parquet-go/parquet-go"
	"github.com/roneystein/structured-content-tools/schema"
)

// EnrichRun represents a single enrichment run with metadata.
// This struct maps to the sct_enrich_runs database table.
type EnrichRun struct {
	// RunID is the unique identifier for this enrichment run
	RunID int64 `parquet:"run_id,snappy"`

	// StartTime is when the run began (stored as TIMESTAMP with nanosecond precision)
	StartTime time.Time `parquet:"start_time,snappy"`

	// EndTime is when the run completed (nullable)
	EndTime *time.Time `parquet:"end_time,optional,snappy"`

	// RunDurationMs is the duration of the run in milliseconds (nullable)
	RunDurationMs *int64 `parquet:"run_duration_ms,optional,snappy"`

	// TotalDocs is the number of documents enriched in this run
	TotalDocs int32 `parquet:"total_docs,snappy"`

	// TotalEvents is the number of status transitions computed in this run
	TotalEvents int32 `parquet:"total_events,snappy"`

	// ConfigParams contains the JSON-encoded run configuration (nullable)
	ConfigParams *string `parquet:"config_params,optional,snappy"`
}

// TransitionRow represents a single computed status transition.
// This struct maps to the sct_status_transitions database table.
type TransitionRow struct {
	// RunID references the parent enrichment run
	RunID int64 `parquet:"run_id,snappy"`

	// DocPath is the source path of the enriched document
	DocPath string `parquet:"doc_path,snappy"`

	// IssueKey is the key of the owning issue (empty when absent)
	IssueKey string `parquet:"issue_key,snappy"`

	// IssueType is the denormalized issue type context (nullable)
	IssueType *string `parquet:"issue_type,optional,snappy"`

	// ProjectName is the denormalized project name context (nullable)
	ProjectName *string `parquet:"project_name,optional,snappy"`

	// FromStatus is the status before the transition
	FromStatus string `parquet:"from_status,snappy"`

	// ToStatus is the status after the transition
	ToStatus string `parquet:"to_status,snappy"`

	// TransitionTime is when the transition happened
	TransitionTime time.Time `parquet:"transition_time,snappy"`

	// TotalMinutes is the exact wall-clock duration since the previous transition
	TotalMinutes int32 `parquet:"total_minutes,snappy"`

	// WorkingMinutes is the business-hours duration since the previous transition
	WorkingMinutes int32 `parquet:"working_minutes,snappy"`

	// WorkingHours is the rounded-up value written into the document
	WorkingHours int32 `parquet:"working_hours,snappy"`
}

// WriteEnrichRunsParquet writes a slice of EnrichRun structs to a Parquet file.
func WriteEnrichRunsParquet(data []EnrichRun, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	// The schema is inferred from the EnrichRun struct tags
	writer := parquet.NewGenericWriter[EnrichRun](file)
	defer func() { _ = writer.Close() }()

	if _, err := writer.Write(data); err != nil {
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}

	return nil
}

// WriteTransitionRowsParquet writes a slice of TransitionRow structs to a Parquet file.
func WriteTransitionRowsParquet(data []TransitionRow, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	// The schema is inferred from the TransitionRow struct tags
	writer := parquet.NewGenericWriter[TransitionRow](file)
	defer func() { _ = writer.Close() }()

	if _, err := writer.Write(data); err != nil {
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}

	return nil
}

// ConvertRunRecords converts schema.RunRecord to EnrichRun for Parquet export.
func ConvertRunRecords(records []schema.RunRecord) []EnrichRun {
	result := make([]EnrichRun, len(records))
	for i, record := range records {
		row := EnrichRun{
			RunID:       record.RunID,
			StartTime:   record.StartTime,
			EndTime:     record.EndTime,
			TotalDocs:   int32(record.TotalDocs),
			TotalEvents: int32(record.TotalEvents),
		}
		if record.DurationMs != nil {
			ms := *record.DurationMs
			row.RunDurationMs = &ms
		}
		if record.ConfigParams != "" {
			params := record.ConfigParams
			row.ConfigParams = &params
		}
		result[i] = row
	}
	return result
}

// ConvertStoredTransitions converts schema.StoredTransition to TransitionRow for Parquet export.
func ConvertStoredTransitions(records []schema.StoredTransition) []TransitionRow {
	result := make([]TransitionRow, len(records))
	for i, record := range records {
		row := TransitionRow{
			RunID:          record.RunID,
			DocPath:        record.DocPath,
			IssueKey:       record.Record.IssueKey,
			FromStatus:     record.Record.FromStatus,
			ToStatus:       record.Record.ToStatus,
			TransitionTime: record.Record.TransitionTime,
			TotalMinutes:   int32(record.Record.TotalMinutes),
			WorkingMinutes: int32(record.Record.WorkingMinutes),
			WorkingHours:   int32(record.Record.WorkingHours),
		}
		if record.Record.IssueType != "" {
			issueType := record.Record.IssueType
			row.IssueType = &issueType
		}
		if record.Record.ProjectName != "" {
			projectName := record.Record.ProjectName
			row.ProjectName = &projectName
		}
		result[i] = row
	}
	return result
}
