package schema

// Custom string types for type safety.
type (
	// OutputMode represents the format of the report output.
	OutputMode string

	// DatabaseBackend represents the database backend for run tracking.
	DatabaseBackend string
)

// All output modes supported.
const (
	TextOut    OutputMode = "text" // default
	CSVOut     OutputMode = "csv"
	JSONOut    OutputMode = "json"
	ParquetOut OutputMode = "parquet"
)

// All run store backends supported.
const (
	SQLiteBackend     DatabaseBackend = "sqlite" // default
	MySQLBackend      DatabaseBackend = "mysql"
	PostgreSQLBackend DatabaseBackend = "postgresql"
	NoneBackend       DatabaseBackend = "none"
)

// Working-hours profile defaults, matching the JIRA content pipeline this tool
// was extracted from.
const (
	DefaultStartHour      = 8
	DefaultEndHour        = 18
	DefaultHoursPerDay    = 8
	DefaultLunchHour      = 12
	DefaultLunchHours     = 0
	DefaultRoundThreshold = 5
)

// Document field defaults.
const (
	// DefaultDateFormat is the JIRA export timestamp pattern, e.g.
	// "2015-10-06T13:42:55.837-0300". Expressed as a Java SimpleDateFormat
	// pattern since that is what pipeline configurations carry.
	DefaultDateFormat = "yyyy-MM-dd'T'HH:mm:ss.SSSZ"

	// DefaultCreatedField is the dotted path to the issue creation timestamp.
	DefaultCreatedField = "fields.created"

	// DefaultChangelogField is the dotted path to the ordered change history.
	DefaultChangelogField = "changelog.histories"

	// DefaultTargetField is the dotted path, relative to each status item,
	// where the computed working-hour count is written.
	DefaultTargetField = "time_in_source"

	// DefaultIssueKeyField locates the issue key on the document root.
	DefaultIssueKeyField = "key"

	// DefaultIssueTypeField and DefaultProjectNameField locate the two
	// issue-level context fields copied onto every history entry.
	DefaultIssueTypeField   = "issue_type"
	DefaultProjectNameField = "project_name"
)

// StatusFieldName is the item field name that marks a status transition.
const StatusFieldName = "status"

// History entry keys inside the changelog.
const (
	HistoryCreatedKey = "created"
	HistoryItemsKey   = "items"
	ItemFieldKey      = "field"
	ItemFromKey       = "fromString"
	ItemToKey         = "toString"
)

// ValidOutputModes lists all valid output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	TextOut:    {},
	CSVOut:     {},
	JSONOut:    {},
	ParquetOut: {},
}

// ValidDatabaseBackends lists all valid run store backends.
var ValidDatabaseBackends = map[DatabaseBackend]struct{}{
	SQLiteBackend:     {},
	MySQLBackend:      {},
	PostgreSQLBackend: {},
	NoneBackend:       {},
}
