// Package transitions walks a document's ordered change history and writes,
// into every status-transition item, the number of business hours elapsed
// since the previous transition. The walk is a strictly sequential, single
// pass state machine: its only carried state is the previous transition
// instant, re-seeded from the issue creation timestamp at the start of each
// walk. A walker holds no cross-document state, so one walker may serve many
// documents as long as each call gets its own Apply invocation.
package transitions

import (
	"fmt"
	"time"

	"github.com/roneystein/structured-content-tools/core/worktime"
	"github.com/roneystein/structured-content-tools/internal/contract"
	"github.com/roneystein/structured-content-tools/internal/javatime"
	"github.com/roneystein/structured-content-tools/internal/structmap"
	"github.com/roneystein/structured-content-tools/schema"
)

// Settings keys accepted by NewFromSettings, mirroring the pipeline
// configuration this preprocessor is registered with.
const (
	SettingTargetField     = "target_field"
	SettingCreatedField    = "created_field"
	SettingChangelogField  = "changelog_field"
	SettingDateFormat      = "date_format"
	SettingRemoveNonStatus = "remove_non_status_items"
)

// SettingsError reports an invalid preprocessor configuration.
type SettingsError struct {
	Preprocessor string
	Key          string
	Reason       string
}

func (e *SettingsError) Error() string {
	return fmt.Sprintf("invalid setting %q for preprocessor %q: %s", e.Key, e.Preprocessor, e.Reason)
}

// Config holds the walker configuration. Zero-value fields are filled with
// the pipeline defaults by New.
type Config struct {
	TargetField      string // Dotted path written into each status item
	CreatedField     string // Dotted path of the issue creation timestamp
	ChangelogField   string // Dotted path of the ordered change history
	IssueKeyField    string // Dotted path of the issue key
	IssueTypeField   string // Issue-level context field copied onto entries
	ProjectNameField string // Issue-level context field copied onto entries
	DateFormat       string // Java SimpleDateFormat pattern for timestamps
	RemoveNonStatus  bool   // Prune non-status items after each entry
	Profile          worktime.Profile
}

// Walker computes time-in-status durations across a document's change history.
type Walker struct {
	name string
	cfg  Config
}

// New creates a walker, filling config defaults and validating the result.
func New(name string, cfg Config) (*Walker, error) {
	if cfg.TargetField == "" {
		return nil, &SettingsError{Preprocessor: name, Key: SettingTargetField, Reason: "must not be empty"}
	}
	if cfg.CreatedField == "" {
		cfg.CreatedField = schema.DefaultCreatedField
	}
	if cfg.ChangelogField == "" {
		cfg.ChangelogField = schema.DefaultChangelogField
	}
	if cfg.IssueKeyField == "" {
		cfg.IssueKeyField = schema.DefaultIssueKeyField
	}
	if cfg.IssueTypeField == "" {
		cfg.IssueTypeField = schema.DefaultIssueTypeField
	}
	if cfg.ProjectNameField == "" {
		cfg.ProjectNameField = schema.DefaultProjectNameField
	}
	if cfg.DateFormat == "" {
		cfg.DateFormat = schema.DefaultDateFormat
	}
	if cfg.Profile == (worktime.Profile{}) {
		cfg.Profile = worktime.DefaultProfile()
	}

	if _, err := javatime.Layout(cfg.DateFormat); err != nil {
		return nil, &SettingsError{Preprocessor: name, Key: SettingDateFormat, Reason: err.Error()}
	}
	if err := cfg.Profile.Validate(); err != nil {
		return nil, &SettingsError{Preprocessor: name, Key: "profile", Reason: err.Error()}
	}

	return &Walker{name: name, cfg: cfg}, nil
}

// NewFromSettings creates a walker from a pipeline settings map. Only the
// target field is mandatory; everything else falls back to defaults.
func NewFromSettings(name string, settings map[string]any) (*Walker, error) {
	if settings == nil {
		return nil, &SettingsError{Preprocessor: name, Key: "settings", Reason: "section is not defined"}
	}

	cfg := Config{}
	cfg.TargetField, _ = settings[SettingTargetField].(string)
	cfg.CreatedField, _ = settings[SettingCreatedField].(string)
	cfg.ChangelogField, _ = settings[SettingChangelogField].(string)
	cfg.DateFormat, _ = settings[SettingDateFormat].(string)
	cfg.RemoveNonStatus, _ = settings[SettingRemoveNonStatus].(bool)

	return New(name, cfg)
}

// Name returns the registered preprocessor name.
func (w *Walker) Name() string { return w.name }

// Stats aggregates the outcome of a single walk.
type Stats struct {
	Transitions  []schema.TransitionRecord // Computed transitions in history order
	HistoryCount int                       // Change-history entries visited
	PrunedItems  int                       // Non-status items removed
}

// Apply walks the document and writes computed working hours into each status
// item. The document is mutated in place and returned; a nil document is
// returned unchanged. Per-item failures are reported as warnings and never
// interrupt the walk.
func (w *Walker) Apply(doc schema.Document, rep contract.Reporter) (schema.Document, Stats) {
	var stats Stats
	if doc == nil {
		return nil, stats
	}

	// Seed the previous instant from the issue creation timestamp. A missing
	// or unparsable value leaves it unknown; durations are skipped until a
	// transition establishes a valid instant.
	prev := w.parseInstant(structmap.GetValue(doc, w.cfg.CreatedField), w.cfg.CreatedField, rep)

	issueKey, _ := structmap.GetValue(doc, w.cfg.IssueKeyField).(string)
	issueType := structmap.GetValue(doc, w.cfg.IssueTypeField)
	projectName := structmap.GetValue(doc, w.cfg.ProjectNameField)

	histories, ok := structmap.GetValue(doc, w.cfg.ChangelogField).([]any)
	if !ok {
		return doc, stats
	}

	for _, raw := range histories {
		entry, ok := raw.(map[string]any)
		if !ok {
			continue
		}
		stats.HistoryCount++

		// Denormalized context for downstream consumers.
		if issueType != nil {
			entry[schema.DefaultIssueTypeField] = issueType
		}
		if projectName != nil {
			entry[schema.DefaultProjectNameField] = projectName
		}

		items, ok := entry[schema.HistoryItemsKey].([]any)
		if !ok {
			continue
		}

		// Deletion is deferred until the inner loop completes so the list is
		// never mutated while being iterated.
		kept := make([]any, 0, len(items))
		for _, rawItem := range items {
			item, isMap := rawItem.(map[string]any)
			field, _ := item[schema.ItemFieldKey].(string)

			if !isMap || field != schema.StatusFieldName {
				if w.cfg.RemoveNonStatus {
					stats.PrunedItems++
					continue
				}
				kept = append(kept, rawItem)
				continue
			}

			event := w.parseInstant(entry[schema.HistoryCreatedKey], schema.HistoryCreatedKey, rep)
			if prev != nil && event != nil {
				if rec, ok := w.computeAndWrite(item, issueKey, issueType, projectName, *prev, *event, rep); ok {
					stats.Transitions = append(stats.Transitions, rec)
				}
			}
			// The previous instant always advances to the event instant,
			// even when parsing failed and it is now unknown.
			prev = event

			kept = append(kept, rawItem)
		}
		if w.cfg.RemoveNonStatus {
			entry[schema.HistoryItemsKey] = kept
		}
	}

	return doc, stats
}

// computeAndWrite runs the duration engine and writes the rounded-up hour
// count into the item at the target field.
func (w *Walker) computeAndWrite(item map[string]any, issueKey string, issueType, projectName any, prev, event time.Time, rep contract.Reporter) (schema.TransitionRecord, bool) {
	result, err := worktime.Compute(prev, event, w.cfg.Profile)
	if err != nil {
		rep.Warn(w.name, fmt.Sprintf("cannot compute working time for issue %q: %v", issueKey, err))
		return schema.TransitionRecord{}, false
	}

	hours := result.WorkingHoursRoundUp(w.cfg.Profile.RoundThreshold)
	if err := structmap.PutValue(item, w.cfg.TargetField, hours); err != nil {
		rep.Warn(w.name, fmt.Sprintf("cannot store working time for issue %q: %v", issueKey, err))
		return schema.TransitionRecord{}, false
	}

	from, _ := item[schema.ItemFromKey].(string)
	to, _ := item[schema.ItemToKey].(string)
	issueTypeStr, _ := issueType.(string)
	projectNameStr, _ := projectName.(string)

	return schema.TransitionRecord{
		IssueKey:       issueKey,
		IssueType:      issueTypeStr,
		ProjectName:    projectNameStr,
		FromStatus:     from,
		ToStatus:       to,
		TransitionTime: event,
		TotalMinutes:   result.TotalMinutes,
		WorkingMinutes: result.WorkingMinutes,
		WorkingHours:   hours,
	}, true
}

// parseInstant parses a document timestamp value, reporting a warning and
// returning nil when the value is absent or unparsable.
func (w *Walker) parseInstant(value any, field string, rep contract.Reporter) *time.Time {
	if value == nil {
		return nil
	}
	t, err := javatime.ParseValue(value, w.cfg.DateFormat)
	if err != nil {
		rep.Warn(w.name, fmt.Sprintf("%s %v", field, err))
		return nil
	}
	return &t
}
