package contract

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/fatih/color"
)

// Color variables for console output.
var (
	WarnColor  = color.New(color.FgYellow)             // recoverable data problems
	ErrorColor = color.New(color.FgRed, color.Bold)    // fatal conditions
	OkColor    = color.New(color.FgGreen)              // confirmations
	DimColor   = color.New(color.FgWhite, color.Faint) // contextual detail
)

// LogFatal logs an error and exits the program.
func LogFatal(msg string, err error) {
	_, _ = ErrorColor.Fprintf(os.Stderr, "Fatal %s: %v\n", msg, err)
	os.Exit(1)
}

// LogWarn logs a warning message to stderr.
func LogWarn(msg string, err error) {
	_, _ = WarnColor.Fprintf(os.Stderr, "Warn %s: %v\n", msg, err)
}

// SelectOutputFile returns the appropriate file handle for output, based on
// the provided file path. It falls back to os.Stdout when no path is given.
func SelectOutputFile(filePath string) (*os.File, error) {
	if filePath == "" {
		return os.Stdout, nil
	}
	return os.Create(filePath)
}

// GetRunDBFilePath returns the path to the SQLite DB file for run tracking.
func GetRunDBFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".sct_runs.db"
	}
	return filepath.Join(homeDir, ".sct_runs.db")
}

// TruncatePath shortens a path to maxWidth runes, keeping the tail.
func TruncatePath(path string, maxWidth int) string {
	runes := []rune(path)
	if len(runes) > maxWidth && maxWidth > 3 {
		return "..." + string(runes[len(runes)-maxWidth+3:])
	}
	return path
}

// ParseBoolString parses a string value into a boolean.
// Accepts "yes", "no", "true", "false", "1", "0" (case-insensitive).
// Returns an error for invalid values.
func ParseBoolString(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "yes", "true", "1":
		return true, nil
	case "no", "false", "0":
		return false, nil
	default:
		return false, fmt.Errorf("invalid boolean string: %s (expected yes/no/true/false/1/0)", s)
	}
}

// ConsoleReporter writes data warnings to stderr as they occur.
type ConsoleReporter struct {
	UseColors bool
}

var _ Reporter = &ConsoleReporter{} // Compile-time check

// Warn implements the Reporter interface.
func (r *ConsoleReporter) Warn(context, message string) {
	if r.UseColors {
		_, _ = WarnColor.Fprintf(os.Stderr, "Warn [%s]: %s\n", context, message)
		return
	}
	_, _ = fmt.Fprintf(os.Stderr, "Warn [%s]: %s\n", context, message)
}

// CollectingReporter accumulates warnings in memory. Safe for concurrent use.
type CollectingReporter struct {
	mu       sync.Mutex
	warnings []string
}

var _ Reporter = &CollectingReporter{} // Compile-time check

// Warn implements the Reporter interface.
func (r *CollectingReporter) Warn(context, message string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.warnings = append(r.warnings, fmt.Sprintf("[%s] %s", context, message))
}

// Warnings returns a copy of the accumulated warnings in arrival order.
func (r *CollectingReporter) Warnings() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.warnings))
	copy(out, r.warnings)
	return out
}

// TeeReporter forwards each warning to every wrapped reporter.
type TeeReporter []Reporter

// Warn implements the Reporter interface.
func (t TeeReporter) Warn(context, message string) {
	for _, r := range t {
		r.Warn(context, message)
	}
}
