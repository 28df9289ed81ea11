package main

import (
	"archive/zip"
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeDocx(t *testing.T, path, paragraph string) {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("word/document.xml")
	require.NoError(t, err)
	_, err = w.Write([]byte(`<?xml version="1.0" encoding="UTF-8"?>` +
		`<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>` +
		`<w:p><w:r><w:t>` + paragraph + `</w:t></w:r></w:p></w:body></w:document>`))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0644))
}

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := newRootCmd(&stdout, &stderr)
	cmd.SetArgs(append([]string{"--config", filepath.Join(t.TempDir(), "none.toml")}, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func fixtureDocs(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	writeDocx(t, filepath.Join(dir, "a.docx"), "MS05-16: Item detail MS06-01: BOM")
	writeDocx(t, filepath.Join(dir, "b.docx"), "MS05-16: again MS08-03 major")
	return dir
}

func TestListOnly(t *testing.T) {
	docs := fixtureDocs(t)
	out := filepath.Join(t.TempDir(), "out")

	stdout, stderr, err := execute(t, "--docs-dir", docs, "--output-dir", out, "--list-only")
	require.NoError(t, err)

	assert.Equal(t, "  MS05-16\n  MS06-01\n  MS08-03\n", stdout)
	assert.Contains(t, stderr, "Found 2 document(s)")
	assert.Contains(t, stderr, "Total unique cards found: 3")
	_, statErr := os.Stat(out)
	assert.True(t, os.IsNotExist(statErr), "list-only writes nothing")
}

func TestExtractWritesCardsAndIndex(t *testing.T) {
	docs := fixtureDocs(t)
	out := filepath.Join(t.TempDir(), "out")

	_, stderr, err := execute(t, "--docs-dir", docs, "--output-dir", out)
	require.NoError(t, err)

	for _, id := range []string{"MS05-16", "MS06-01", "MS08-03"} {
		_, err := os.Stat(filepath.Join(out, "cards", id+".md"))
		assert.NoError(t, err, id)
	}
	card, err := os.ReadFile(filepath.Join(out, "cards", "MS05-16.md"))
	require.NoError(t, err)
	assert.Contains(t, string(card), "MS05-16: Item detail ")

	_, err = os.Stat(filepath.Join(out, "index.md"))
	assert.NoError(t, err)
	assert.Contains(t, stderr, "Extracted 3 cards to "+out)
}

func TestNoParserFindsNothing(t *testing.T) {
	docs := fixtureDocs(t)

	stdout, stderr, err := execute(t, "--docs-dir", docs, "--list-only", "--no-parser")
	require.NoError(t, err)

	assert.Empty(t, stdout)
	assert.Contains(t, stderr, "Document parsing is disabled")
	assert.Contains(t, stderr, "Total unique cards found: 0")
}

func TestMissingDocsDir(t *testing.T) {
	_, _, err := execute(t, "--docs-dir", filepath.Join(t.TempDir(), "missing"))
	assert.ErrorContains(t, err, "documents directory not found")
}

func TestEmptyDocsDir(t *testing.T) {
	out := filepath.Join(t.TempDir(), "out")

	_, stderr, err := execute(t, "--docs-dir", t.TempDir(), "--output-dir", out)
	require.NoError(t, err)

	assert.Contains(t, stderr, "No .docx files found")
	_, statErr := os.Stat(out)
	assert.True(t, os.IsNotExist(statErr))
}

func TestRejectsPositionalArgs(t *testing.T) {
	_, _, err := execute(t, "unexpected")
	assert.Error(t, err)
}
