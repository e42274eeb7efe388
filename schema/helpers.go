package schema

import "time"

// CollectTransitions flattens per-document results into a single record list,
// preserving document order and history order within each document.
func CollectTransitions(results []DocumentResult) []TransitionRecord {
	var records []TransitionRecord
	for _, res := range results {
		records = append(records, res.Transitions...)
	}
	return records
}

// BuildSummary derives run-level totals from per-document results.
func BuildSummary(results []DocumentResult, elapsed time.Duration) EnrichSummary {
	summary := EnrichSummary{Documents: len(results), Elapsed: elapsed}
	for _, res := range results {
		summary.Transitions += len(res.Transitions)
		summary.Warnings += len(res.Warnings)
	}
	return summary
}
