// Package core has core logic for document enrichment and reporting.
package core

import (
	"context"
	"fmt"
	"time"

	"github.com/roneystein/structured-content-tools/core/worktime"
	"github.com/roneystein/structured-content-tools/internal/contract"
	"github.com/roneystein/structured-content-tools/internal/javatime"
	"github.com/roneystein/structured-content-tools/internal/outwriter"
)

// ExecuteEnrich walks every configured document, writes time-in-status
// durations into them and prints the computed transitions.
// It serves as the main entry point for the 'enrich' command.
func ExecuteEnrich(ctx context.Context, cfg *contract.Config, mgr contract.StoreManager) error {
	start := time.Now()

	results, err := enrichAllDocuments(ctx, cfg)
	if err != nil {
		return err
	}

	persistRun(cfg, mgr, start, results)

	duration := time.Since(start)
	return outwriter.NewOutWriter().WriteResults(results, cfg, duration)
}

// ExecuteWorktime computes the business-hours duration between two timestamps
// and prints the result. It serves as the entry point for the 'worktime'
// command.
func ExecuteWorktime(_ context.Context, cfg *contract.Config) error {
	startAt, err := javatime.Parse(cfg.StartText, cfg.DateFormat)
	if err != nil {
		return fmt.Errorf("invalid --start: %w", err)
	}
	endAt, err := javatime.Parse(cfg.EndText, cfg.DateFormat)
	if err != nil {
		return fmt.Errorf("invalid --end: %w", err)
	}

	result, err := worktime.Compute(startAt, endAt, cfg.Profile)
	if err != nil {
		return err
	}

	fmt.Printf("Total minutes: %d\n", result.TotalMinutes)
	fmt.Printf("Working minutes: %d\n", result.WorkingMinutes)
	fmt.Printf("Working hours: %d\n", result.WorkingHoursRoundUp(cfg.Profile.RoundThreshold))
	return nil
}
