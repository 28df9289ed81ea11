// Package git searches repository history for commits that mention a ticket.
package git

import (
	"context"
	"strings"

	"github.com/wahlandcase/attuned.contextfinder/internal/logger"
	"github.com/wahlandcase/attuned.contextfinder/internal/models"

	"github.com/go-git/go-git/v5"
)

// LogFormat is the pretty format requested from git log; fields are pipe-delimited
const LogFormat = "%H|%s|%an|%ad"

// Searcher finds ticket commits and the files they touched
type Searcher interface {
	// SearchCommits returns every commit on any ref whose message mentions ticket,
	// newest first. A failing or silent tool yields no commits, not an error.
	SearchCommits(ctx context.Context, repoPath, ticket string) ([]models.CommitInfo, error)
	// ChangedFiles lists the paths touched by a commit, in tool order
	ChangedFiles(ctx context.Context, repoPath, hash string) ([]string, error)
}

// IsRepo checks if the path is inside a git repository
func IsRepo(path string) bool {
	_, err := git.PlainOpenWithOptions(path, &git.PlainOpenOptions{DetectDotGit: true})
	return err == nil
}

// CLISearcher shells out to the git binary
type CLISearcher struct {
	Runner CommandRunner
	Logger logger.Logger
	// Binary is the git executable (default "git")
	Binary string
}

// NewCLISearcher creates a CLISearcher using os/exec
func NewCLISearcher(log logger.Logger) *CLISearcher {
	return NewCLISearcherWithRunner(ExecRunner{}, log)
}

// NewCLISearcherWithRunner creates a CLISearcher with a custom command runner.
// Useful for testing.
func NewCLISearcherWithRunner(runner CommandRunner, log logger.Logger) *CLISearcher {
	if log == nil {
		log = logger.Discard()
	}
	return &CLISearcher{Runner: runner, Logger: log, Binary: "git"}
}

// LogArgs builds the git log arguments for a ticket search
func LogArgs(repoPath, ticket string) []string {
	return []string{
		"-C", repoPath, "log", "--all", "--oneline",
		"--grep=" + ticket, "--format=" + LogFormat, "--date=short",
	}
}

// DiffTreeArgs builds the git diff-tree arguments listing a commit's files
func DiffTreeArgs(repoPath, hash string) []string {
	return []string{"-C", repoPath, "diff-tree", "--no-commit-id", "--name-only", "-r", hash}
}

func (s *CLISearcher) SearchCommits(ctx context.Context, repoPath, ticket string) ([]models.CommitInfo, error) {
	output, err := s.Runner.Run(ctx, s.Binary, LogArgs(repoPath, ticket)...)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		s.Logger.Debugf("commit search failed, treating as no results: %v", err)
		return nil, nil
	}
	return ParseLog(string(output)), nil
}

func (s *CLISearcher) ChangedFiles(ctx context.Context, repoPath, hash string) ([]string, error) {
	output, err := s.Runner.Run(ctx, s.Binary, DiffTreeArgs(repoPath, hash)...)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		s.Logger.Debugf("file listing for %s failed: %v", hash, err)
		return nil, nil
	}
	return ParseFileList(string(output)), nil
}

// ParseLog parses "hash|subject|author|date" lines. Lines with fewer than
// four fields are dropped. A subject containing "|" is kept whole: the
// author and date are always the last two fields.
func ParseLog(output string) []models.CommitInfo {
	var commits []models.CommitInfo
	for _, line := range splitLines(output) {
		parts := strings.Split(line, "|")
		if len(parts) < 4 {
			continue
		}
		n := len(parts)
		message := strings.Join(parts[1:n-2], "|")
		commits = append(commits, models.NewCommitInfo(parts[0], message, parts[n-2], parts[n-1]))
	}
	return commits
}

// ParseFileList splits diff-tree output into paths, dropping empty lines
func ParseFileList(output string) []string {
	return splitLines(output)
}

func splitLines(output string) []string {
	var lines []string
	for _, line := range strings.Split(output, "\n") {
		line = strings.TrimRight(line, "\r")
		if line == "" {
			continue
		}
		lines = append(lines, line)
	}
	return lines
}
