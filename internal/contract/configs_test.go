package contract

import (
	"testing"

	"github.com/roneystein/structured-content-tools/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// validRawInput returns a raw input mirroring the CLI defaults.
func validRawInput() *ConfigRawInput {
	return &ConfigRawInput{
		DocPathArgs:      []string{"issue.json"},
		TargetField:      schema.DefaultTargetField,
		CreatedField:     schema.DefaultCreatedField,
		ChangelogField:   schema.DefaultChangelogField,
		IssueKeyField:    schema.DefaultIssueKeyField,
		IssueTypeField:   schema.DefaultIssueTypeField,
		ProjectNameField: schema.DefaultProjectNameField,
		DateFormat:       schema.DefaultDateFormat,
		StartHour:        schema.DefaultStartHour,
		EndHour:          schema.DefaultEndHour,
		HoursPerDay:      schema.DefaultHoursPerDay,
		LunchHour:        schema.DefaultLunchHour,
		LunchHours:       schema.DefaultLunchHours,
		RoundThreshold:   schema.DefaultRoundThreshold,
		Workers:          4,
		Output:           string(schema.TextOut),
		Color:            "yes",
		StoreBackend:     string(schema.SQLiteBackend),
	}
}

// TestProcessAndValidateDefaults verifies the default inputs validate cleanly.
func TestProcessAndValidateDefaults(t *testing.T) {
	cfg := &Config{}
	require.NoError(t, ProcessAndValidate(cfg, validRawInput()))

	assert.Equal(t, []string{"issue.json"}, cfg.DocPaths)
	assert.Equal(t, schema.DefaultTargetField, cfg.TargetField)
	assert.Equal(t, 8, cfg.Profile.StartHour)
	assert.Equal(t, 18, cfg.Profile.EndHour)
	assert.Equal(t, schema.TextOut, cfg.Output)
	assert.Equal(t, schema.SQLiteBackend, cfg.StoreBackend)
	assert.True(t, cfg.UseColors)
}

// TestProcessAndValidateFailures covers the rejection paths.
func TestProcessAndValidateFailures(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*ConfigRawInput)
	}{
		{"empty target field", func(in *ConfigRawInput) { in.TargetField = "  " }},
		{"empty created field", func(in *ConfigRawInput) { in.CreatedField = "" }},
		{"bad date format", func(in *ConfigRawInput) { in.DateFormat = "yyyy-QQ" }},
		{"inverted work window", func(in *ConfigRawInput) { in.StartHour = 20 }},
		{"zero workers", func(in *ConfigRawInput) { in.Workers = 0 }},
		{"bad output mode", func(in *ConfigRawInput) { in.Output = "xml" }},
		{"bad color value", func(in *ConfigRawInput) { in.Color = "maybe" }},
		{"bad backend", func(in *ConfigRawInput) { in.StoreBackend = "oracle" }},
		{"mysql without connect", func(in *ConfigRawInput) { in.StoreBackend = "mysql" }},
		{"postgres bad connect", func(in *ConfigRawInput) {
			in.StoreBackend = "postgresql"
			in.StoreDBConnect = "host=localhost"
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := validRawInput()
			tt.mutate(input)
			assert.Error(t, ProcessAndValidate(&Config{}, input))
		})
	}
}

// TestKeepFieldsParsing verifies comma-separated keep-fields handling.
func TestKeepFieldsParsing(t *testing.T) {
	input := validRawInput()
	input.KeepFields = " key, fields ,, changelog "

	cfg := &Config{}
	require.NoError(t, ProcessAndValidate(cfg, input))
	assert.Equal(t, []string{"key", "fields", "changelog"}, cfg.KeepFields)
}

// TestRemapFieldsParsing verifies old:new pair handling.
func TestRemapFieldsParsing(t *testing.T) {
	input := validRawInput()
	input.RemapFields = " key:issue_key , changelog:history "

	cfg := &Config{}
	require.NoError(t, ProcessAndValidate(cfg, input))
	assert.Equal(t, map[string]string{"key": "issue_key", "changelog": "history"}, cfg.RemapFields)

	for _, bad := range []string{"key", "key:", ":issue_key"} {
		input := validRawInput()
		input.RemapFields = bad
		assert.Error(t, ProcessAndValidate(&Config{}, input), "entry %q must be rejected", bad)
	}
}

// TestConfigClone verifies slices do not alias after cloning.
func TestConfigClone(t *testing.T) {
	cfg := &Config{}
	require.NoError(t, ProcessAndValidate(cfg, validRawInput()))

	clone := cfg.Clone()
	clone.DocPaths[0] = "other.json"
	assert.Equal(t, "issue.json", cfg.DocPaths[0])
}

// TestParseBoolString covers accepted and rejected spellings.
func TestParseBoolString(t *testing.T) {
	for _, s := range []string{"yes", "TRUE", "1"} {
		got, err := ParseBoolString(s)
		require.NoError(t, err)
		assert.True(t, got)
	}
	for _, s := range []string{"no", "False", "0"} {
		got, err := ParseBoolString(s)
		require.NoError(t, err)
		assert.False(t, got)
	}
	_, err := ParseBoolString("si")
	assert.Error(t, err)
}

// TestCollectingReporter verifies warning accumulation and isolation.
func TestCollectingReporter(t *testing.T) {
	rep := &CollectingReporter{}
	rep.Warn("a.json", "first")
	rep.Warn("b.json", "second")

	got := rep.Warnings()
	require.Len(t, got, 2)
	assert.Contains(t, got[0], "a.json")
	assert.Contains(t, got[1], "second")

	// The returned slice is a copy.
	got[0] = "mutated"
	assert.Contains(t, rep.Warnings()[0], "a.json")
}
