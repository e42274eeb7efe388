package core

import (
	"context"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/roneystein/structured-content-tools/core/transitions"
	"github.com/roneystein/structured-content-tools/internal/contract"
	"github.com/roneystein/structured-content-tools/internal/structmap"
	"github.com/roneystein/structured-content-tools/schema"
)

// enrichAllDocuments discovers the configured documents and enriches them in
// parallel using a worker pool of cfg.Workers goroutines.
func enrichAllDocuments(ctx context.Context, cfg *contract.Config) ([]schema.DocumentResult, error) {
	paths, err := collectDocPaths(cfg.DocPaths)
	if err != nil {
		return nil, err
	}

	walker, err := transitions.New("time-in-status", transitions.Config{
		TargetField:      cfg.TargetField,
		CreatedField:     cfg.CreatedField,
		ChangelogField:   cfg.ChangelogField,
		IssueKeyField:    cfg.IssueKeyField,
		IssueTypeField:   cfg.IssueTypeField,
		ProjectNameField: cfg.ProjectNameField,
		DateFormat:       cfg.DateFormat,
		RemoveNonStatus:  cfg.RemoveNonStatus,
		Profile:          cfg.Profile,
	})
	if err != nil {
		return nil, err
	}

	// Initialize channels based on the final number of documents to be processed.
	pathCh := make(chan string, len(paths))
	resultCh := make(chan schema.DocumentResult, len(paths))
	var wg sync.WaitGroup

	// Start worker pool
	for range cfg.Workers {
		wg.Go(func() {
			for path := range pathCh {
				if ctx.Err() != nil {
					return
				}
				resultCh <- enrichDocument(path, cfg, walker)
			}
		})
	}

	// Send documents to worker channel
	for _, path := range paths {
		pathCh <- path
	}
	close(pathCh)

	// Wait for all workers to finish processing
	wg.Wait()
	close(resultCh)

	results := make([]schema.DocumentResult, 0, len(paths))
	for r := range resultCh {
		results = append(results, r)
	}

	// Workers finish out of order; restore a stable document order.
	sort.Slice(results, func(i, j int) bool { return results[i].Path < results[j].Path })

	return results, nil
}

// collectDocPaths expands files and directories into the list of JSON
// documents to enrich.
func collectDocPaths(docPaths []string) ([]string, error) {
	var paths []string

	for _, docPath := range docPaths {
		info, err := os.Stat(docPath)
		if err != nil {
			return nil, fmt.Errorf("cannot access document path %q: %w", docPath, err)
		}

		if !info.IsDir() {
			paths = append(paths, docPath)
			continue
		}

		err = filepath.WalkDir(docPath, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() && strings.EqualFold(filepath.Ext(path), ".json") {
				paths = append(paths, path)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("cannot walk document directory %q: %w", docPath, err)
		}
	}

	if len(paths) == 0 {
		return nil, fmt.Errorf("no documents found under %v", docPaths)
	}

	sort.Strings(paths)
	return paths, nil
}

// enrichDocument loads one document, walks its change history and writes the
// enriched copy back out. Per-document problems become warnings on the
// result, never hard failures, so one bad export cannot sink a whole run.
func enrichDocument(path string, cfg *contract.Config, walker *transitions.Walker) schema.DocumentResult {
	result := schema.DocumentResult{Path: path}

	collector := &contract.CollectingReporter{}
	var rep contract.Reporter = collector
	if cfg.Output == schema.TextOut && cfg.OutputFile == "" {
		rep = contract.TeeReporter{collector, &contract.ConsoleReporter{UseColors: cfg.UseColors}}
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		rep.Warn(path, fmt.Sprintf("cannot read document: %v", err))
		result.Warnings = collector.Warnings()
		return result
	}

	var doc schema.Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		rep.Warn(path, fmt.Sprintf("cannot parse document: %v", err))
		result.Warnings = collector.Warnings()
		return result
	}

	enriched, stats := walker.Apply(doc, rep)
	result.IssueKey, _ = structmap.GetValue(enriched, cfg.IssueKeyField).(string)
	result.Transitions = stats.Transitions
	result.HistoryCount = stats.HistoryCount
	result.PrunedItems = stats.PrunedItems

	if len(cfg.KeepFields) > 0 {
		structmap.FilterKeys(enriched, cfg.KeepFields)
	}
	if len(cfg.RemapFields) > 0 {
		structmap.RemapKeys(enriched, cfg.RemapFields)
	}

	if err := writeDocument(path, cfg.OutDir, enriched); err != nil {
		rep.Warn(path, fmt.Sprintf("cannot write enriched document: %v", err))
	}

	result.Warnings = collector.Warnings()
	return result
}

// writeDocument stores the enriched document, either beside the original in
// outDir or over the original when no outDir is set.
func writeDocument(path, outDir string, doc schema.Document) error {
	target := path
	if outDir != "" {
		if err := os.MkdirAll(outDir, 0o755); err != nil {
			return fmt.Errorf("cannot create output directory %q: %w", outDir, err)
		}
		target = filepath.Join(outDir, filepath.Base(path))
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("cannot serialize document: %w", err)
	}

	return os.WriteFile(target, append(data, '\n'), 0o644)
}

// persistRun records the run and its transitions in the run store. Storage
// problems are logged as warnings so reporting still happens.
func persistRun(cfg *contract.Config, mgr contract.StoreManager, start time.Time, results []schema.DocumentResult) {
	if mgr == nil {
		return
	}
	store := mgr.GetRunStore()
	if store == nil {
		return
	}

	runID, err := store.BeginRun(start, cfg.RunParams())
	if err != nil {
		contract.LogWarn("starting run tracking", err)
		return
	}

	total := 0
	for _, result := range results {
		for _, rec := range result.Transitions {
			if err := store.RecordTransition(runID, result.Path, rec); err != nil {
				contract.LogWarn("recording transition", err)
			}
		}
		total += len(result.Transitions)
	}

	if err := store.EndRun(runID, time.Now(), len(results), total); err != nil {
		contract.LogWarn("finishing run tracking", err)
	}
}
