package models

import (
	"bytes"
	"encoding/json"
)

// CommitInfo contains information about a git commit that references a ticket
type CommitInfo struct {
	// Hash is the full commit hash
	Hash string `json:"hash" yaml:"hash"`
	// Message is the commit subject line
	Message string `json:"message" yaml:"message"`
	// Author is the author name
	Author string `json:"author" yaml:"author"`
	// Date is the author date in short form (YYYY-MM-DD)
	Date string `json:"date" yaml:"date"`
	// FilesChanged holds the first files touched by the commit (display capped)
	FilesChanged []string `json:"files_changed,omitempty" yaml:"files_changed,omitempty"`
	// FileCount is the true number of files touched; nil unless files were requested
	FileCount *int `json:"file_count,omitempty" yaml:"file_count,omitempty"`
}

// NewCommitInfo creates a new CommitInfo
func NewCommitInfo(hash, message, author, date string) CommitInfo {
	return CommitInfo{
		Hash:    hash,
		Message: message,
		Author:  author,
		Date:    date,
	}
}

// ShortHash returns the first 8 characters of the hash
func (c CommitInfo) ShortHash() string {
	if len(c.Hash) <= 8 {
		return c.Hash
	}
	return c.Hash[:8]
}

// WithFiles attaches the changed file list, keeping at most limit paths
// while recording the true count. limit <= 0 keeps every path.
func (c CommitInfo) WithFiles(files []string, limit int) CommitInfo {
	count := len(files)
	if limit > 0 && len(files) > limit {
		files = files[:limit]
	}
	c.FilesChanged = make([]string, 0, len(files))
	c.FilesChanged = append(c.FilesChanged, files...)
	c.FileCount = &count
	return c
}

// HasFiles reports whether changed-file enrichment ran for this commit
func (c CommitInfo) HasFiles() bool {
	return c.FileCount != nil
}

// commitOutput is the serialized shape of a CommitInfo. files_changed is
// present, possibly empty, exactly when file_count is.
type commitOutput struct {
	Hash         string    `json:"hash" yaml:"hash"`
	Message      string    `json:"message" yaml:"message"`
	Author       string    `json:"author" yaml:"author"`
	Date         string    `json:"date" yaml:"date"`
	FilesChanged *[]string `json:"files_changed,omitempty" yaml:"files_changed,omitempty"`
	FileCount    *int      `json:"file_count,omitempty" yaml:"file_count,omitempty"`
}

func (c CommitInfo) output() commitOutput {
	out := commitOutput{
		Hash:    c.Hash,
		Message: c.Message,
		Author:  c.Author,
		Date:    c.Date,
	}
	if c.HasFiles() {
		files := c.FilesChanged
		if files == nil {
			files = []string{}
		}
		out.FilesChanged = &files
		out.FileCount = c.FileCount
	}
	return out
}

// MarshalJSON writes the commit without HTML escaping
func (c CommitInfo) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(c.output()); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

func (c CommitInfo) MarshalYAML() (any, error) {
	return c.output(), nil
}
