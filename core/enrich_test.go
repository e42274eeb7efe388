package core

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/roneystein/structured-content-tools/core/worktime"
	"github.com/roneystein/structured-content-tools/internal/contract"
	"github.com/roneystein/structured-content-tools/internal/runstore"
	"github.com/roneystein/structured-content-tools/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func enrichConfig(docPaths []string) *contract.Config {
	return &contract.Config{
		DocPaths:         docPaths,
		TargetField:      schema.DefaultTargetField,
		CreatedField:     schema.DefaultCreatedField,
		ChangelogField:   schema.DefaultChangelogField,
		IssueKeyField:    schema.DefaultIssueKeyField,
		IssueTypeField:   schema.DefaultIssueTypeField,
		ProjectNameField: schema.DefaultProjectNameField,
		DateFormat:       schema.DefaultDateFormat,
		Profile:          worktime.DefaultProfile(),
		Workers:          2,
		Output:           schema.JSONOut,
		StoreBackend:     schema.NoneBackend,
	}
}

func writeSampleDoc(t *testing.T, dir, name string) string {
	t.Helper()
	doc := map[string]any{
		"key":          "ORG-1",
		"issue_type":   "Bug",
		"project_name": "ORG Project",
		"fields":       map[string]any{"created": "2015-10-06T08:00:00.000-0300"},
		"changelog": map[string]any{
			"histories": []any{
				map[string]any{
					"created": "2015-10-06T13:00:00.000-0300",
					"items": []any{
						map[string]any{"field": "status", "fromString": "Open", "toString": "Done"},
					},
				},
			},
		},
	}
	data, err := json.Marshal(doc)
	require.NoError(t, err)
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func readDoc(t *testing.T, path string) schema.Document {
	t.Helper()
	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	var doc schema.Document
	require.NoError(t, json.Unmarshal(raw, &doc))
	return doc
}

func writtenHours(t *testing.T, doc schema.Document) (int, bool) {
	t.Helper()
	histories, ok := doc["changelog"].(map[string]any)["histories"].([]any)
	require.True(t, ok)
	item := histories[0].(map[string]any)["items"].([]any)[0].(map[string]any)
	hours, ok := item[schema.DefaultTargetField].(float64)
	return int(hours), ok
}

func TestCollectDocPaths(t *testing.T) {
	dir := t.TempDir()
	writeSampleDoc(t, dir, "b.json")
	writeSampleDoc(t, dir, "a.json")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644))

	paths, err := collectDocPaths([]string{dir})
	require.NoError(t, err)
	require.Len(t, paths, 2, "non-JSON files are skipped")
	assert.Equal(t, filepath.Join(dir, "a.json"), paths[0], "paths are sorted")

	_, err = collectDocPaths([]string{filepath.Join(dir, "missing.json")})
	require.Error(t, err)

	_, err = collectDocPaths([]string{t.TempDir()})
	require.Error(t, err, "an empty directory yields no documents")
}

func TestExecuteEnrichInPlace(t *testing.T) {
	dir := t.TempDir()
	path := writeSampleDoc(t, dir, "ORG-1.json")

	cfg := enrichConfig([]string{dir})
	cfg.OutputFile = filepath.Join(t.TempDir(), "report.json")

	require.NoError(t, ExecuteEnrich(context.Background(), cfg, nil))

	hours, ok := writtenHours(t, readDoc(t, path))
	require.True(t, ok, "document is rewritten in place")
	assert.Equal(t, 5, hours)
}

func TestExecuteEnrichOutDir(t *testing.T) {
	srcDir := t.TempDir()
	outDir := filepath.Join(t.TempDir(), "enriched")
	path := writeSampleDoc(t, srcDir, "ORG-1.json")

	cfg := enrichConfig([]string{srcDir})
	cfg.OutDir = outDir
	cfg.OutputFile = filepath.Join(t.TempDir(), "report.json")

	require.NoError(t, ExecuteEnrich(context.Background(), cfg, nil))

	// The original is untouched, the copy is enriched.
	_, ok := writtenHours(t, readDoc(t, path))
	assert.False(t, ok)
	hours, ok := writtenHours(t, readDoc(t, filepath.Join(outDir, "ORG-1.json")))
	require.True(t, ok)
	assert.Equal(t, 5, hours)
}

func TestExecuteEnrichKeepFields(t *testing.T) {
	dir := t.TempDir()
	path := writeSampleDoc(t, dir, "ORG-1.json")

	cfg := enrichConfig([]string{dir})
	cfg.KeepFields = []string{"key", "changelog"}
	cfg.OutputFile = filepath.Join(t.TempDir(), "report.json")

	require.NoError(t, ExecuteEnrich(context.Background(), cfg, nil))

	doc := readDoc(t, path)
	assert.Contains(t, doc, "key")
	assert.Contains(t, doc, "changelog")
	assert.NotContains(t, doc, "fields")
	assert.NotContains(t, doc, "project_name")
}

func TestExecuteEnrichRemapFields(t *testing.T) {
	dir := t.TempDir()
	path := writeSampleDoc(t, dir, "ORG-1.json")

	cfg := enrichConfig([]string{dir})
	cfg.RemapFields = map[string]string{"key": "issue_key", "changelog": "history"}
	cfg.OutputFile = filepath.Join(t.TempDir(), "report.json")

	require.NoError(t, ExecuteEnrich(context.Background(), cfg, nil))

	doc := readDoc(t, path)
	assert.Equal(t, "ORG-1", doc["issue_key"])
	assert.Contains(t, doc, "history")
	assert.NotContains(t, doc, "key")
	assert.NotContains(t, doc, "changelog")
	assert.NotContains(t, doc, "fields", "unmapped keys are dropped")
}

func TestExecuteEnrichRecordsRun(t *testing.T) {
	dir := t.TempDir()
	writeSampleDoc(t, dir, "ORG-1.json")

	mockStore := &runstore.MockRunStore{}
	mockStore.On("BeginRun", mock.Anything, mock.Anything).Return(int64(7), nil)
	mockStore.On("RecordTransition", int64(7), mock.Anything, mock.Anything).Return(nil)
	mockStore.On("EndRun", int64(7), mock.Anything, 1, 1).Return(nil)

	mockMgr := &runstore.MockStoreManager{}
	mockMgr.On("GetRunStore").Return(mockStore)

	cfg := enrichConfig([]string{dir})
	cfg.OutputFile = filepath.Join(t.TempDir(), "report.json")

	require.NoError(t, ExecuteEnrich(context.Background(), cfg, mockMgr))

	mockStore.AssertExpectations(t)
	mockMgr.AssertExpectations(t)
}

func TestExecuteEnrichBadDocumentWarns(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "broken.json"), []byte("{oops"), 0o644))
	writeSampleDoc(t, dir, "ORG-1.json")

	cfg := enrichConfig([]string{dir})
	reportFile := filepath.Join(t.TempDir(), "report.json")
	cfg.OutputFile = reportFile

	require.NoError(t, ExecuteEnrich(context.Background(), cfg, nil), "a bad document never fails the run")

	raw, err := os.ReadFile(reportFile)
	require.NoError(t, err)
	var report struct {
		Documents int      `json:"documents"`
		Warnings  []string `json:"warnings"`
	}
	require.NoError(t, json.Unmarshal(raw, &report))
	assert.Equal(t, 2, report.Documents)
	require.NotEmpty(t, report.Warnings)
	assert.Contains(t, report.Warnings[0], "cannot parse document")
}

func TestExecuteWorktime(t *testing.T) {
	cfg := enrichConfig(nil)
	cfg.StartText = "2015-10-06T08:00:00.000-0300"
	cfg.EndText = "2015-10-06T13:00:00.000-0300"
	require.NoError(t, ExecuteWorktime(context.Background(), cfg))

	cfg.EndText = "garbage"
	require.Error(t, ExecuteWorktime(context.Background(), cfg))
}
