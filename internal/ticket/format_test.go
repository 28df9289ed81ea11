package ticket

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/wahlandcase/attuned.contextfinder/internal/models"
)

func sampleResult() *models.SearchResult {
	result := models.NewSearchResult("MD-17329", "/repo")
	result.CommitCount = 3
	plain := models.NewCommitInfo("abc123", "Fix MD-17329 <bug>", "Zoë", "2024-01-15")
	enriched := models.NewCommitInfo("def456", "MD-17329 follow-up", "Bob", "2024-01-14").
		WithFiles([]string{"a.go", "b.go", "c.go"}, 2)
	result.Commits = append(result.Commits, plain, enriched)
	return &result
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, sampleResult()))

	out := buf.String()
	assert.Contains(t, out, `"commit_count": 3`)
	assert.Contains(t, out, `"author": "Zoë"`, "non-ASCII kept")
	assert.Contains(t, out, `"message": "Fix MD-17329 <bug>"`, "HTML not escaped")
	assert.Contains(t, out, "\n  \"ticket\": \"MD-17329\"", "two-space indent")

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	commits := decoded["commits"].([]any)
	require.Len(t, commits, 2)

	plain := commits[0].(map[string]any)
	assert.NotContains(t, plain, "files_changed")
	assert.NotContains(t, plain, "file_count")

	enriched := commits[1].(map[string]any)
	assert.Equal(t, []any{"a.go", "b.go"}, enriched["files_changed"])
	assert.Equal(t, float64(3), enriched["file_count"])
}

func TestWriteJSON_EmptyCommitsIsArray(t *testing.T) {
	result := models.NewSearchResult("MD-1", "/repo")
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, &result))
	assert.Contains(t, buf.String(), `"commits": []`)
}

func TestWriteYAML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteYAML(&buf, sampleResult()))

	var decoded struct {
		Ticket      string `yaml:"ticket"`
		CommitCount int    `yaml:"commit_count"`
		Commits     []struct {
			Hash         string   `yaml:"hash"`
			FilesChanged []string `yaml:"files_changed"`
			FileCount    *int     `yaml:"file_count"`
		} `yaml:"commits"`
	}
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &decoded))

	assert.Equal(t, "MD-17329", decoded.Ticket)
	assert.Equal(t, 3, decoded.CommitCount)
	require.Len(t, decoded.Commits, 2)
	assert.Nil(t, decoded.Commits[0].FileCount)
	assert.Equal(t, []string{"a.go", "b.go"}, decoded.Commits[1].FilesChanged)
	require.NotNil(t, decoded.Commits[1].FileCount)
	assert.Equal(t, 3, *decoded.Commits[1].FileCount)
}

func zeroFileResult() *models.SearchResult {
	result := models.NewSearchResult("MD-17329", "/repo")
	result.CommitCount = 1
	result.Commits = append(result.Commits,
		models.NewCommitInfo("abc123", "MD-17329 merge", "Jane", "2024-01-15").WithFiles(nil, 15))
	return &result
}

func TestWriteJSON_EnrichedCommitWithoutFiles(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, zeroFileResult()))

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	commit := decoded["commits"].([]any)[0].(map[string]any)

	require.Contains(t, commit, "files_changed")
	assert.Equal(t, []any{}, commit["files_changed"])
	assert.Equal(t, float64(0), commit["file_count"])
}

func TestWriteYAML_EnrichedCommitWithoutFiles(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteYAML(&buf, zeroFileResult()))

	assert.Contains(t, buf.String(), "files_changed: []")
	assert.Contains(t, buf.String(), "file_count: 0")
}
