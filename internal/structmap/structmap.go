// Package structmap manipulates structured content represented as nested
// map-of-maps and list structures, the way parsed JSON documents arrive from
// the content pipeline. Paths use dot notation for deeper levels of nesting.
package structmap

import (
	"fmt"
	"strings"
)

// StructuralError reports a put that hit a non-map value where a nested map
// was expected.
type StructuralError struct {
	Path    string // Full dotted path of the attempted write
	Segment string // Path segment holding the conflicting value
}

func (e *StructuralError) Error() string {
	return fmt.Sprintf("cannot put value for field %q: element %q in the path is not a map", e.Path, e.Segment)
}

// GetValue extracts the value at a dotted path, or nil when any segment is
// missing or a non-map value is found before the final segment.
func GetValue(doc map[string]any, path string) any {
	if doc == nil || path == "" {
		return nil
	}

	segments := strings.Split(path, ".")
	current := doc
	for i, seg := range segments {
		value, ok := current[seg]
		if !ok {
			return nil
		}
		if i == len(segments)-1 {
			return value
		}
		next, ok := value.(map[string]any)
		if !ok {
			return nil
		}
		current = next
	}
	return nil
}

// PutValue stores a value at a dotted path, creating intermediate maps as
// needed. It fails with *StructuralError when an intermediate segment holds a
// non-map value, and with a plain error when the path is empty.
func PutValue(doc map[string]any, path string, value any) error {
	if doc == nil {
		return nil
	}
	if path == "" {
		return fmt.Errorf("field path must be defined")
	}

	segments := strings.Split(path, ".")
	current := doc
	for i, seg := range segments {
		if i == len(segments)-1 {
			current[seg] = value
			return nil
		}
		switch existing := current[seg].(type) {
		case nil:
			level := make(map[string]any)
			current[seg] = level
			current = level
		case map[string]any:
			current = existing
		default:
			return &StructuralError{Path: path, Segment: seg}
		}
	}
	return nil
}

// DeepCopy returns a recursive copy of a nested list/map structure. Lists and
// maps are freshly allocated; scalars are returned by reference since they are
// treated as immutable. Nil elements are dropped from the copy.
func DeepCopy(value any) any {
	switch v := value.(type) {
	case nil:
		return nil
	case []any:
		copied := make([]any, 0, len(v))
		for _, elem := range v {
			c := DeepCopy(elem)
			if c == nil {
				continue
			}
			copied = append(copied, c)
		}
		return copied
	case map[string]any:
		copied := make(map[string]any, len(v))
		for key, elem := range v {
			c := DeepCopy(elem)
			if c == nil {
				continue
			}
			copied[key] = c
		}
		return copied
	default:
		return v
	}
}

// FilterKeys removes all top-level keys not listed in keysToLeave. An empty
// keep list leaves the map untouched.
func FilterKeys(m map[string]any, keysToLeave []string) {
	if len(m) == 0 || len(keysToLeave) == 0 {
		return
	}

	keep := make(map[string]struct{}, len(keysToLeave))
	for _, k := range keysToLeave {
		keep[k] = struct{}{}
	}
	for key := range m {
		if _, ok := keep[key]; !ok {
			delete(m, key)
		}
	}
}

// RemapKeys keeps only the keys named in the mapping, renaming each to its
// mapped name. When two old keys map to the same new key, the surviving value
// is unspecified. An empty mapping leaves the map untouched.
func RemapKeys(m map[string]any, mapping map[string]string) {
	if len(m) == 0 || len(mapping) == 0 {
		return
	}

	remapped := make(map[string]any, len(mapping))
	for oldKey, value := range m {
		if newKey, ok := mapping[oldKey]; ok {
			remapped[newKey] = value
		}
	}

	clear(m)
	for key, value := range remapped {
		m[key] = value
	}
}

// IntValue converts a document value to an int when possible. JSON numbers
// arrive as float64, so those are accepted alongside the integer types.
func IntValue(value any) (int, bool) {
	switch v := value.(type) {
	case int:
		return v, true
	case int64:
		return int(v), true
	case float64:
		return int(v), true
	default:
		return 0, false
	}
}
