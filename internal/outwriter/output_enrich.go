package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
	"github.com/roneystein/structured-content-tools/internal/contract"
	"github.com/roneystein/structured-content-tools/internal/parquet"
	"github.com/roneystein/structured-content-tools/schema"
)

// WriteEnrichResults outputs the enrichment results, dispatching based on the output format configured.
func WriteEnrichResults(results []schema.DocumentResult, cfg *contract.Config, duration time.Duration) error {
	switch cfg.Output {
	case schema.JSONOut:
		if err := writeEnrichJSONResults(results, cfg, duration); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeEnrichCSVResults(results, cfg); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	case schema.ParquetOut:
		if err := writeEnrichParquetResults(results, cfg); err != nil {
			return fmt.Errorf("error writing Parquet output: %w", err)
		}
	default:
		// Default to human-readable table
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeEnrichTable(results, cfg, duration, w)
		}, "Wrote table")
	}
	return nil
}

// writeEnrichTable generates and writes the human-readable table.
func writeEnrichTable(results []schema.DocumentResult, cfg *contract.Config, duration time.Duration, writer io.Writer) error {
	table := tablewriter.NewWriter(writer)
	table.Header([]string{"Doc", "Issue", "From", "To", "When", "Total Min", "Work Min", "Hours"})
	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignRight
	})

	maxPath := GetMaxTablePathWidth(cfg)
	var data [][]string
	for _, result := range results {
		for _, rec := range result.Transitions {
			data = append(data, []string{
				contract.TruncatePath(result.Path, maxPath),
				rec.IssueKey,
				rec.FromStatus,
				rec.ToStatus,
				rec.TransitionTime.Format(time.RFC3339),
				strconv.Itoa(rec.TotalMinutes),
				strconv.Itoa(rec.WorkingMinutes),
				strconv.Itoa(rec.WorkingHours),
			})
		}
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	summary := schema.BuildSummary(results, duration)
	if _, err := fmt.Fprintf(writer, "Enriched %d documents (%d transitions, %d warnings)\n",
		summary.Documents, summary.Transitions, summary.Warnings); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(writer, "Enrichment completed in %v with %d workers. Store backend: %s\n",
		duration, cfg.Workers, cfg.StoreBackend); err != nil {
		return err
	}
	return nil
}

// jsonTransition is the JSON projection of a computed transition.
type jsonTransition struct {
	DocPath        string    `json:"doc_path"`
	IssueKey       string    `json:"issue_key"`
	IssueType      string    `json:"issue_type,omitempty"`
	ProjectName    string    `json:"project_name,omitempty"`
	FromStatus     string    `json:"from_status"`
	ToStatus       string    `json:"to_status"`
	TransitionTime time.Time `json:"transition_time"`
	TotalMinutes   int       `json:"total_minutes"`
	WorkingMinutes int       `json:"working_minutes"`
	WorkingHours   int       `json:"working_hours"`
}

// jsonEnrichReport is the top-level JSON output payload.
type jsonEnrichReport struct {
	Documents   int              `json:"documents"`
	Transitions []jsonTransition `json:"transitions"`
	Warnings    []string         `json:"warnings,omitempty"`
	ElapsedMs   int64            `json:"elapsed_ms"`
}

// writeEnrichJSONResults handles opening the file and calling the JSON writer.
func writeEnrichJSONResults(results []schema.DocumentResult, cfg *contract.Config, duration time.Duration) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		report := jsonEnrichReport{
			Documents: len(results),
			ElapsedMs: duration.Milliseconds(),
		}
		for _, result := range results {
			for _, rec := range result.Transitions {
				report.Transitions = append(report.Transitions, jsonTransition{
					DocPath:        result.Path,
					IssueKey:       rec.IssueKey,
					IssueType:      rec.IssueType,
					ProjectName:    rec.ProjectName,
					FromStatus:     rec.FromStatus,
					ToStatus:       rec.ToStatus,
					TransitionTime: rec.TransitionTime,
					TotalMinutes:   rec.TotalMinutes,
					WorkingMinutes: rec.WorkingMinutes,
					WorkingHours:   rec.WorkingHours,
				})
			}
			report.Warnings = append(report.Warnings, result.Warnings...)
		}
		return writeJSON(w, report)
	}, "Wrote JSON")
}

// writeEnrichCSVResults handles opening the file and calling the CSV writer.
func writeEnrichCSVResults(results []schema.DocumentResult, cfg *contract.Config) error {
	header := []string{
		"doc_path",
		"issue_key",
		"issue_type",
		"project_name",
		"from_status",
		"to_status",
		"transition_time",
		"total_minutes",
		"working_minutes",
		"working_hours",
	}
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return writeCSVWithHeader(w, header, func(csvWriter *csv.Writer) error {
			for _, result := range results {
				for _, rec := range result.Transitions {
					row := []string{
						result.Path,
						rec.IssueKey,
						rec.IssueType,
						rec.ProjectName,
						rec.FromStatus,
						rec.ToStatus,
						rec.TransitionTime.Format(time.RFC3339),
						strconv.Itoa(rec.TotalMinutes),
						strconv.Itoa(rec.WorkingMinutes),
						strconv.Itoa(rec.WorkingHours),
					}
					if err := csvWriter.Write(row); err != nil {
						return fmt.Errorf("failed to write CSV row: %w", err)
					}
				}
			}
			return nil
		})
	}, "Wrote CSV")
}

// writeEnrichParquetResults writes transitions as a Parquet file. Unlike the
// other formats it cannot stream to stdout, so a file path is mandatory.
func writeEnrichParquetResults(results []schema.DocumentResult, cfg *contract.Config) error {
	if cfg.OutputFile == "" {
		return fmt.Errorf("parquet output requires --output-file")
	}

	var rows []parquet.TransitionRow
	for _, result := range results {
		for _, rec := range result.Transitions {
			row := parquet.TransitionRow{
				DocPath:        result.Path,
				IssueKey:       rec.IssueKey,
				FromStatus:     rec.FromStatus,
				ToStatus:       rec.ToStatus,
				TransitionTime: rec.TransitionTime,
				TotalMinutes:   int32(rec.TotalMinutes),
				WorkingMinutes: int32(rec.WorkingMinutes),
				WorkingHours:   int32(rec.WorkingHours),
			}
			if rec.IssueType != "" {
				issueType := rec.IssueType
				row.IssueType = &issueType
			}
			if rec.ProjectName != "" {
				projectName := rec.ProjectName
				row.ProjectName = &projectName
			}
			rows = append(rows, row)
		}
	}

	if err := parquet.WriteTransitionRowsParquet(rows, cfg.OutputFile); err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "Wrote Parquet to %s\n", cfg.OutputFile)
	return nil
}
