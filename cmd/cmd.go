// Package cmd defines the command-line interface for sct.
package cmd

import (
	"github.com/roneystein/structured-content-tools/internal/contract"
	"github.com/roneystein/structured-content-tools/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	// Call initConfig on Cobra's initialization
	cobra.OnInitialize(initConfig)

	// Add primary subcommands to the root command
	rootCmd.AddCommand(enrichCmd)
	rootCmd.AddCommand(worktimeCmd)
	rootCmd.AddCommand(runsCmd)
	rootCmd.AddCommand(versionCmd)

	// Add the runs subcommands to the parent runs command
	runsCmd.AddCommand(runsStatusCmd)
	runsCmd.AddCommand(runsClearCmd)
	runsCmd.AddCommand(runsExportCmd)
	runsCmd.AddCommand(runsMigrateCmd)

	// Bind all persistent flags of rootCmd to Viper
	rootCmd.PersistentFlags().String("target-field", schema.DefaultTargetField, "Dotted path written into each status item")
	rootCmd.PersistentFlags().String("created-field", schema.DefaultCreatedField, "Dotted path of the issue creation timestamp")
	rootCmd.PersistentFlags().String("changelog-field", schema.DefaultChangelogField, "Dotted path of the ordered change history")
	rootCmd.PersistentFlags().String("issue-key-field", schema.DefaultIssueKeyField, "Dotted path of the issue key")
	rootCmd.PersistentFlags().String("issue-type-field", schema.DefaultIssueTypeField, "Dotted path of the issue type context field")
	rootCmd.PersistentFlags().String("project-name-field", schema.DefaultProjectNameField, "Dotted path of the project name context field")
	rootCmd.PersistentFlags().String("date-format", schema.DefaultDateFormat, "Java SimpleDateFormat pattern for all timestamps")
	rootCmd.PersistentFlags().Int("start-hour", schema.DefaultStartHour, "Hour of day when the working day opens (0-23)")
	rootCmd.PersistentFlags().Int("end-hour", schema.DefaultEndHour, "Hour of day when the working day closes (1-24)")
	rootCmd.PersistentFlags().Int("hours-per-day", schema.DefaultHoursPerDay, "Working hours that make up one working day")
	rootCmd.PersistentFlags().Int("lunch-hour", schema.DefaultLunchHour, "Hour of day when lunch starts (reserved)")
	rootCmd.PersistentFlags().Int("lunch-hours", schema.DefaultLunchHours, "Lunch duration in hours (reserved, must be 0)")
	rootCmd.PersistentFlags().Int("round-threshold", schema.DefaultRoundThreshold, "Minutes of remainder that round up to a full hour")
	rootCmd.PersistentFlags().Int("workers", contract.DefaultWorkers, "Number of concurrent workers")
	rootCmd.PersistentFlags().String("output", string(schema.TextOut), "Output format: text or csv or json or parquet")
	rootCmd.PersistentFlags().String("output-file", "", "Optional path to write the report to")
	rootCmd.PersistentFlags().Int("width", 0, "Terminal width override (0 = auto-detect)")
	rootCmd.PersistentFlags().String("color", "yes", "Enable colored labels in output (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().String("store-backend", string(schema.SQLiteBackend), "Run tracking backend: sqlite or mysql or postgresql or none")
	rootCmd.PersistentFlags().String("store-db-connect", "", "Database connection string for mysql/postgresql (e.g., user:pass@tcp(host:port)/dbname)")
	rootCmd.PersistentFlags().String("profile", "", "Enable profiling and write profiles to files with this prefix")
	rootCmd.PersistentFlags().String("config", "", "Path to config file")
	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		contract.LogFatal("Error binding root flags", err)
	}

	// Bind all flags of enrichCmd to Viper
	enrichCmd.Flags().String("out-dir", "", "Write enriched copies here instead of rewriting in place")
	enrichCmd.Flags().Bool("prune", false, "Remove non-status items from history entries")
	enrichCmd.Flags().String("keep-fields", "", "Comma-separated top-level keys to keep on output documents")
	enrichCmd.Flags().String("remap-fields", "", "Comma-separated old:new renames; output documents keep only the mapped keys")
	if err := viper.BindPFlags(enrichCmd.Flags()); err != nil {
		contract.LogFatal("Error binding enrich flags", err)
	}

	// Bind all flags of worktimeCmd to Viper
	worktimeCmd.Flags().String("start", "", "Range start timestamp in the configured date format")
	worktimeCmd.Flags().String("end", "", "Range end timestamp in the configured date format")
	if err := viper.BindPFlags(worktimeCmd.Flags()); err != nil {
		contract.LogFatal("Error binding worktime flags", err)
	}

	// Bind all flags of runsMigrateCmd to Viper
	runsMigrateCmd.Flags().Int("target-version", -1, "Target migration version (-1 means latest, 0 means rollback to initial state)")
	if err := viper.BindPFlags(runsMigrateCmd.Flags()); err != nil {
		contract.LogFatal("Error binding runs migrate flags", err)
	}
}
