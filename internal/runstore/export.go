package runstore

import (
	"errors"
	"fmt"

	"github.com/roneystein/structured-content-tools/internal/parquet"
)

// ExecuteRunExport performs the actual export of run tracking data to Parquet files.
func ExecuteRunExport(outputFile string) error {
	// Validate that output file is specified
	if outputFile == "" {
		return errors.New("--output-file is required for export command")
	}

	store := Manager.GetRunStore()
	if store == nil {
		return errors.New("run tracking is not initialized")
	}

	// Check if there's any data to export
	status, err := store.GetStatus()
	if err != nil {
		return fmt.Errorf("failed to get store status: %w", err)
	}

	if status.TotalRuns == 0 {
		return errors.New("no run data found to export")
	}

	fmt.Printf("Exporting data from %s backend...\n", status.Backend)
	fmt.Printf("Total enrichment runs: %d\n", status.TotalRuns)
	fmt.Printf("Total transition records: %d\n", status.TableSizes[statusTransitionsTable])

	// Retrieve all enrichment runs
	runs, err := store.GetAllRuns()
	if err != nil {
		return fmt.Errorf("failed to retrieve enrichment runs: %w", err)
	}

	// Retrieve all persisted transitions
	transitions, err := store.GetAllTransitions()
	if err != nil {
		return fmt.Errorf("failed to retrieve status transitions: %w", err)
	}

	// Convert to Parquet format
	parquetRuns := parquet.ConvertRunRecords(runs)
	parquetTransitions := parquet.ConvertStoredTransitions(transitions)

	// Write enrichment runs to Parquet
	runsFile := outputFile + ".enrich_runs.parquet"
	if err := parquet.WriteEnrichRunsParquet(parquetRuns, runsFile); err != nil {
		return fmt.Errorf("failed to write enrichment runs: %w", err)
	}
	fmt.Printf("Exported %d enrichment runs to: %s\n", len(parquetRuns), runsFile)

	// Write status transitions to Parquet
	transitionsFile := outputFile + ".status_transitions.parquet"
	if err := parquet.WriteTransitionRowsParquet(parquetTransitions, transitionsFile); err != nil {
		return fmt.Errorf("failed to write status transitions: %w", err)
	}
	fmt.Printf("Exported %d transition records to: %s\n", len(parquetTransitions), transitionsFile)

	return nil
}
