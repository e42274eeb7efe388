package structmap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestGetValue covers dotted-path extraction.
func TestGetValue(t *testing.T) {
	doc := map[string]any{
		"key": "ORG-1",
		"fields": map[string]any{
			"created": "2015-10-06T08:00:00.000-0300",
			"reporter": map[string]any{
				"name": "roney",
			},
		},
		"labels": []any{"a", "b"},
	}

	tests := []struct {
		name string
		path string
		want any
	}{
		{"top level", "key", "ORG-1"},
		{"nested", "fields.created", "2015-10-06T08:00:00.000-0300"},
		{"deeply nested", "fields.reporter.name", "roney"},
		{"list value", "labels", []any{"a", "b"}},
		{"missing top level", "nope", nil},
		{"missing nested", "fields.nope", nil},
		{"through non-map", "key.sub", nil},
		{"empty path", "", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, GetValue(doc, tt.path))
		})
	}
}

// TestPutValue covers dotted-path writes and intermediate map creation.
func TestPutValue(t *testing.T) {
	doc := map[string]any{}

	require.NoError(t, PutValue(doc, "time_in_source", 5))
	assert.Equal(t, 5, doc["time_in_source"])

	require.NoError(t, PutValue(doc, "metrics.hours.working", 8))
	assert.Equal(t, 8, GetValue(doc, "metrics.hours.working"))

	// Existing intermediate maps are reused, not replaced.
	require.NoError(t, PutValue(doc, "metrics.hours.total", 10))
	assert.Equal(t, 8, GetValue(doc, "metrics.hours.working"))
	assert.Equal(t, 10, GetValue(doc, "metrics.hours.total"))
}

// TestPutValueStructuralError verifies the typed error for non-map segments.
func TestPutValueStructuralError(t *testing.T) {
	doc := map[string]any{"scalar": 42}

	err := PutValue(doc, "scalar.nested", 1)
	var serr *StructuralError
	require.ErrorAs(t, err, &serr)
	assert.Equal(t, "scalar.nested", serr.Path)
	assert.Equal(t, "scalar", serr.Segment)

	require.Error(t, PutValue(doc, "", 1))
	assert.NoError(t, PutValue(nil, "x", 1), "nil doc is a no-op")
}

// TestDeepCopy verifies containers are fresh while scalars share identity.
func TestDeepCopy(t *testing.T) {
	original := map[string]any{
		"name": "walker",
		"list": []any{1, nil, map[string]any{"k": "v"}},
		"null": nil,
	}

	copied, ok := DeepCopy(original).(map[string]any)
	require.True(t, ok)

	// Mutating the copy must not touch the original.
	copied["name"] = "changed"
	copiedList := copied["list"].([]any)
	copiedList[1].(map[string]any)["k"] = "changed"

	assert.Equal(t, "walker", original["name"])
	assert.Equal(t, "v", original["list"].([]any)[2].(map[string]any)["k"])

	// Nil values are dropped from the copy.
	assert.NotContains(t, copied, "null")
	assert.Len(t, copiedList, 2)

	// Scalars come back as-is.
	assert.Equal(t, 7, DeepCopy(7))
	assert.Nil(t, DeepCopy(nil))
}

// TestFilterKeys verifies top-level key filtering.
func TestFilterKeys(t *testing.T) {
	m := map[string]any{"a": 1, "b": 2, "c": 3}
	FilterKeys(m, []string{"a", "c"})
	assert.Equal(t, map[string]any{"a": 1, "c": 3}, m)

	// Empty keep list means no filtering.
	FilterKeys(m, nil)
	assert.Len(t, m, 2)
}

// TestRemapKeys verifies renaming keeps only mapped keys.
func TestRemapKeys(t *testing.T) {
	m := map[string]any{"issuetype": "Bug", "project": "ORG", "drop": true}
	RemapKeys(m, map[string]string{"issuetype": "issue_type", "project": "project_name"})
	assert.Equal(t, map[string]any{"issue_type": "Bug", "project_name": "ORG"}, m)

	// Empty mapping leaves the map untouched.
	RemapKeys(m, nil)
	assert.Len(t, m, 2)
}

// TestIntValue verifies document number coercion.
func TestIntValue(t *testing.T) {
	got, ok := IntValue(float64(5))
	assert.True(t, ok)
	assert.Equal(t, 5, got)

	got, ok = IntValue(int64(6))
	assert.True(t, ok)
	assert.Equal(t, 6, got)

	_, ok = IntValue("5")
	assert.False(t, ok)
}
