package contract

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/roneystein/structured-content-tools/core/worktime"
	"github.com/roneystein/structured-content-tools/internal/javatime"
	"github.com/roneystein/structured-content-tools/schema"
)

// DefaultWorkers is the default number of concurrent document workers.
var DefaultWorkers = runtime.GOMAXPROCS(0)

// Config holds the runtime configuration for enrichment.
// This struct remains the "final, validated" config.
type Config struct {
	DocPaths []string // Document files or directories to enrich
	OutDir   string   // Destination for enriched copies; empty rewrites in place

	TargetField      string // Dotted path written into each status item
	CreatedField     string // Dotted path of the issue creation timestamp
	ChangelogField   string // Dotted path of the ordered change history
	IssueKeyField    string // Dotted path of the issue key
	IssueTypeField   string // Dotted path of the issue type context field
	ProjectNameField string // Dotted path of the project name context field
	DateFormat       string // Java SimpleDateFormat pattern for all timestamps

	Profile         worktime.Profile
	RemoveNonStatus bool              // Prune non-status items from history entries
	KeepFields      []string          // Optional top-level keys to keep on output docs
	RemapFields     map[string]string // Optional old->new renames; keeps only mapped keys

	Workers    int
	Output     schema.OutputMode
	OutputFile string
	Width      int // Terminal width override (0 = auto-detect)
	UseColors  bool

	StoreBackend   schema.DatabaseBackend
	StoreDBConnect string // Please use env var as this is plaintext

	// Raw timestamp texts for the one-shot worktime command; parsed by the
	// engine itself using DateFormat.
	StartText string
	EndText   string
}

// ProfileConfig holds profiling configuration.
type ProfileConfig struct {
	Enabled bool
	Prefix  string
}

// ProcessProfilingConfig enables profiling when a prefix was provided.
func ProcessProfilingConfig(profile *ProfileConfig, profilePrefix string) error {
	if profilePrefix != "" {
		profile.Enabled = true
		profile.Prefix = profilePrefix
	}
	return nil
}

// ConfigRawInput holds the raw inputs from all sources (flags, env, config file).
// Viper unmarshals into this struct.
type ConfigRawInput struct {
	// These are set manually from positional args, so no tag
	DocPathArgs []string

	// --- Fields from rootCmd.PersistentFlags() ---
	TargetField      string `mapstructure:"target-field"`
	CreatedField     string `mapstructure:"created-field"`
	ChangelogField   string `mapstructure:"changelog-field"`
	IssueKeyField    string `mapstructure:"issue-key-field"`
	IssueTypeField   string `mapstructure:"issue-type-field"`
	ProjectNameField string `mapstructure:"project-name-field"`
	DateFormat       string `mapstructure:"date-format"`
	StartHour        int    `mapstructure:"start-hour"`
	EndHour          int    `mapstructure:"end-hour"`
	HoursPerDay      int    `mapstructure:"hours-per-day"`
	LunchHour        int    `mapstructure:"lunch-hour"`
	LunchHours       int    `mapstructure:"lunch-hours"`
	RoundThreshold   int    `mapstructure:"round-threshold"`
	Workers          int    `mapstructure:"workers"`
	Output           string `mapstructure:"output"`
	OutputFile       string `mapstructure:"output-file"`
	Width            int    `mapstructure:"width"`
	Color            string `mapstructure:"color"`
	StoreBackend     string `mapstructure:"store-backend"`
	StoreDBConnect   string `mapstructure:"store-db-connect"`

	// --- Fields from enrichCmd.Flags() ---
	OutDir      string `mapstructure:"out-dir"`
	Prune       bool   `mapstructure:"prune"`
	KeepFields  string `mapstructure:"keep-fields"`
	RemapFields string `mapstructure:"remap-fields"`

	// --- Fields from worktimeCmd.Flags() ---
	Start string `mapstructure:"start"`
	End   string `mapstructure:"end"`
}

// ProcessAndValidate performs all parsing and validation on the raw inputs
// and updates the final Config struct.
func ProcessAndValidate(cfg *Config, input *ConfigRawInput) error {
	if err := validateFieldPaths(cfg, input); err != nil {
		return err
	}
	if err := processProfile(cfg, input); err != nil {
		return err
	}
	if err := validateSimpleInputs(cfg, input); err != nil {
		return err
	}
	if err := validateBackendConfig(cfg, input); err != nil {
		return err
	}
	return nil
}

// validateFieldPaths processes all document field paths and the date format.
func validateFieldPaths(cfg *Config, input *ConfigRawInput) error {
	cfg.TargetField = strings.TrimSpace(input.TargetField)
	if cfg.TargetField == "" {
		return fmt.Errorf("target-field must not be empty")
	}

	cfg.CreatedField = strings.TrimSpace(input.CreatedField)
	cfg.ChangelogField = strings.TrimSpace(input.ChangelogField)
	cfg.IssueKeyField = strings.TrimSpace(input.IssueKeyField)
	cfg.IssueTypeField = strings.TrimSpace(input.IssueTypeField)
	cfg.ProjectNameField = strings.TrimSpace(input.ProjectNameField)
	if cfg.CreatedField == "" || cfg.ChangelogField == "" {
		return fmt.Errorf("created-field and changelog-field must not be empty")
	}

	cfg.DateFormat = strings.TrimSpace(input.DateFormat)
	if _, err := javatime.Layout(cfg.DateFormat); err != nil {
		return fmt.Errorf("invalid date-format: %w", err)
	}

	return nil
}

// processProfile assembles and validates the working-hours profile.
func processProfile(cfg *Config, input *ConfigRawInput) error {
	cfg.Profile = worktime.Profile{
		StartHour:      input.StartHour,
		EndHour:        input.EndHour,
		HoursPerDay:    input.HoursPerDay,
		LunchHour:      input.LunchHour,
		LunchHours:     input.LunchHours,
		RoundThreshold: input.RoundThreshold,
	}
	if err := cfg.Profile.Validate(); err != nil {
		return fmt.Errorf("invalid working-hours profile: %w", err)
	}
	return nil
}

// validateSimpleInputs processes the remaining non-store fields.
func validateSimpleInputs(cfg *Config, input *ConfigRawInput) error {
	cfg.DocPaths = input.DocPathArgs
	cfg.OutDir = strings.TrimSpace(input.OutDir)
	cfg.OutputFile = input.OutputFile
	cfg.RemoveNonStatus = input.Prune
	cfg.Width = input.Width
	cfg.StartText = strings.TrimSpace(input.Start)
	cfg.EndText = strings.TrimSpace(input.End)

	if input.Workers <= 0 {
		return fmt.Errorf("workers must be greater than 0 (received %d)", input.Workers)
	}
	cfg.Workers = input.Workers

	cfg.Output = schema.OutputMode(strings.ToLower(input.Output))
	if _, ok := schema.ValidOutputModes[cfg.Output]; !ok {
		return fmt.Errorf("invalid output format '%s'. must be text, csv, json, parquet", input.Output)
	}

	colors, err := ParseBoolString(input.Color)
	if err != nil {
		return fmt.Errorf("invalid --color value: %w", err)
	}
	cfg.UseColors = colors

	cfg.KeepFields = nil
	if input.KeepFields != "" {
		for part := range strings.SplitSeq(input.KeepFields, ",") {
			trimmed := strings.TrimSpace(part)
			if trimmed != "" {
				cfg.KeepFields = append(cfg.KeepFields, trimmed)
			}
		}
	}

	cfg.RemapFields = nil
	if input.RemapFields != "" {
		cfg.RemapFields = make(map[string]string)
		for part := range strings.SplitSeq(input.RemapFields, ",") {
			trimmed := strings.TrimSpace(part)
			if trimmed == "" {
				continue
			}
			oldKey, newKey, ok := strings.Cut(trimmed, ":")
			oldKey = strings.TrimSpace(oldKey)
			newKey = strings.TrimSpace(newKey)
			if !ok || oldKey == "" || newKey == "" {
				return fmt.Errorf("invalid remap-fields entry %q (expected old:new)", trimmed)
			}
			cfg.RemapFields[oldKey] = newKey
		}
	}

	return nil
}

// validateBackendConfig validates the run store backend configuration.
func validateBackendConfig(cfg *Config, input *ConfigRawInput) error {
	cfg.StoreBackend = schema.DatabaseBackend(strings.ToLower(input.StoreBackend))
	if _, ok := schema.ValidDatabaseBackends[cfg.StoreBackend]; !ok {
		return fmt.Errorf("invalid store backend '%s'. must be sqlite, mysql, postgresql, none", input.StoreBackend)
	}
	cfg.StoreDBConnect = input.StoreDBConnect
	return ValidateDatabaseConnectionString(cfg.StoreBackend, cfg.StoreDBConnect)
}

// ValidateDatabaseConnectionString validates the format of database connection
// strings for MySQL and PostgreSQL backends.
func ValidateDatabaseConnectionString(backend schema.DatabaseBackend, connStr string) error {
	switch backend {
	case schema.SQLiteBackend, schema.NoneBackend:
		return nil
	case schema.MySQLBackend:
		if connStr == "" {
			return fmt.Errorf("store-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "@tcp(") {
			return fmt.Errorf("MySQL connection string must contain '@tcp(' for host:port specification")
		}
		if !strings.Contains(connStr, "/") {
			return fmt.Errorf("MySQL connection string must contain '/' followed by database name")
		}
	case schema.PostgreSQLBackend:
		if connStr == "" {
			return fmt.Errorf("store-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "host=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'host=' parameter")
		}
		if !strings.Contains(connStr, "dbname=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'dbname=' parameter")
		}
	}
	return nil
}

// RunParams flattens the config into key/value pairs recorded with each run.
func (c *Config) RunParams() map[string]any {
	return map[string]any{
		"target_field":      c.TargetField,
		"created_field":     c.CreatedField,
		"changelog_field":   c.ChangelogField,
		"date_format":       c.DateFormat,
		"start_hour":        c.Profile.StartHour,
		"end_hour":          c.Profile.EndHour,
		"hours_per_day":     c.Profile.HoursPerDay,
		"round_threshold":   c.Profile.RoundThreshold,
		"remove_non_status": c.RemoveNonStatus,
		"workers":           c.Workers,
	}
}

// Clone returns a deep copy of the Config struct.
func (c *Config) Clone() *Config {
	clone := *c
	if c.DocPaths != nil {
		clone.DocPaths = make([]string, len(c.DocPaths))
		copy(clone.DocPaths, c.DocPaths)
	}
	if c.KeepFields != nil {
		clone.KeepFields = make([]string, len(c.KeepFields))
		copy(clone.KeepFields, c.KeepFields)
	}
	if c.RemapFields != nil {
		clone.RemapFields = make(map[string]string, len(c.RemapFields))
		for k, v := range c.RemapFields {
			clone.RemapFields[k] = v
		}
	}
	return &clone
}
