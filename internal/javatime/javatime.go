// Package javatime parses timestamps described by Java SimpleDateFormat
// patterns, which is how the surrounding content pipeline configures its date
// formats. Patterns are converted to Go reference layouts and parsed with the
// standard time package; every call builds its state from scratch, so there is
// no shared formatter to synchronize.
package javatime

import (
	"fmt"
	"strings"
	"time"
)

// ParseError reports a timestamp value that could not be parsed with the
// configured pattern, or a value that is not a string at all.
type ParseError struct {
	Value   string // Offending input (empty when the value was not a string)
	Pattern string // Java pattern in effect
	Err     error  // Underlying cause, if any
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("value %q could not be parsed using %q format: %v", e.Value, e.Pattern, e.Err)
	}
	return fmt.Sprintf("value %q could not be parsed using %q format", e.Value, e.Pattern)
}

func (e *ParseError) Unwrap() error { return e.Err }

// layoutParts maps runs of Java pattern letters to Go layout fragments.
// Keyed by letter and run length; a missing length falls back per letter below.
var layoutParts = map[byte]map[int]string{
	'y': {4: "2006", 2: "06"},
	'M': {4: "January", 3: "Jan", 2: "01", 1: "1"},
	'd': {2: "02", 1: "2"},
	'E': {4: "Monday", 3: "Mon"},
	'H': {2: "15", 1: "15"},
	'h': {2: "03", 1: "3"},
	'm': {2: "04", 1: "4"},
	's': {2: "05", 1: "5"},
	'a': {1: "PM"},
	'Z': {1: "-0700"},
	'X': {1: "Z07", 2: "Z0700", 3: "Z07:00"},
}

// Layout converts a Java SimpleDateFormat pattern into a Go time layout.
// Quoted literals ('T', with '' as an escaped quote) are passed through.
// Fractional seconds (S) require a leading '.' literal, matching the only
// shape Go layouts can express.
func Layout(pattern string) (string, error) {
	var b strings.Builder

	for i := 0; i < len(pattern); {
		c := pattern[i]

		// Quoted literal section.
		if c == '\'' {
			j := i + 1
			if j < len(pattern) && pattern[j] == '\'' { // '' outside quotes is a literal quote
				b.WriteByte('\'')
				i = j + 1
				continue
			}
			closed := false
			for j < len(pattern) {
				if pattern[j] == '\'' {
					if j+1 < len(pattern) && pattern[j+1] == '\'' { // '' inside quotes is a literal quote
						b.WriteByte('\'')
						j += 2
						continue
					}
					closed = true
					break
				}
				b.WriteByte(pattern[j])
				j++
			}
			if !closed {
				return "", fmt.Errorf("unterminated quote in pattern %q", pattern)
			}
			i = j + 1
			continue
		}

		if !isPatternLetter(c) {
			b.WriteByte(c)
			i++
			continue
		}

		// Run of identical pattern letters.
		n := 1
		for i+n < len(pattern) && pattern[i+n] == c {
			n++
		}

		if c == 'S' {
			// Go expresses sub-seconds only as a suffix of the seconds
			// component, so the pattern must carry "." right before S.
			out := b.String()
			if !strings.HasSuffix(out, ".") {
				return "", fmt.Errorf("fractional seconds in pattern %q must follow a '.' literal", pattern)
			}
			b.Reset()
			b.WriteString(out[:len(out)-1])
			b.WriteString("." + strings.Repeat("0", n))
			i += n
			continue
		}

		parts, ok := layoutParts[c]
		if !ok {
			return "", fmt.Errorf("unsupported pattern letter %q in %q", string(c), pattern)
		}
		frag, ok := parts[n]
		if !ok {
			// Java tolerates over-long runs for several letters (e.g. yyy);
			// resolve to the closest shorter form we know.
			for k := n - 1; k > 0; k-- {
				if f, found := parts[k]; found {
					frag = f
					ok = true
					break
				}
			}
		}
		if !ok {
			return "", fmt.Errorf("unsupported run %q in pattern %q", strings.Repeat(string(c), n), pattern)
		}
		b.WriteString(frag)
		i += n
	}

	return b.String(), nil
}

func isPatternLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

// Parse parses value against the given Java pattern into a timezone-aware
// instant. It fails with *ParseError when the value is empty or does not match
// the pattern.
func Parse(value, pattern string) (time.Time, error) {
	if value == "" {
		return time.Time{}, &ParseError{Value: value, Pattern: pattern, Err: fmt.Errorf("empty value")}
	}
	layout, err := Layout(pattern)
	if err != nil {
		return time.Time{}, &ParseError{Value: value, Pattern: pattern, Err: err}
	}
	t, err := time.Parse(layout, value)
	if err != nil {
		return time.Time{}, &ParseError{Value: value, Pattern: pattern, Err: err}
	}
	return t, nil
}

// ParseValue parses an arbitrary document value. Non-string values fail with
// *ParseError instead of being coerced.
func ParseValue(value any, pattern string) (time.Time, error) {
	s, ok := value.(string)
	if !ok {
		return time.Time{}, &ParseError{Pattern: pattern, Err: fmt.Errorf("value is not a string")}
	}
	return Parse(s, pattern)
}
