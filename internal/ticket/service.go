// Package ticket searches repository history for a ticket and shapes the result.
package ticket

import (
	"context"
	"errors"
	"fmt"
	"os"
	"regexp"
	"time"

	"github.com/wahlandcase/attuned.contextfinder/internal/git"
	"github.com/wahlandcase/attuned.contextfinder/internal/logger"
	"github.com/wahlandcase/attuned.contextfinder/internal/models"
)

// Default display caps
const (
	DefaultMaxCommits = 20
	DefaultMaxFiles   = 15
)

// ErrRepoNotFound indicates the repository path does not exist
var ErrRepoNotFound = errors.New("repository not found")

// DefaultTicketRegex is the expected ticket shape (e.g., MD-17329)
var DefaultTicketRegex = regexp.MustCompile(`^MD-\d{4,5}$`)

// Service runs ticket searches
type Service struct {
	Searcher git.Searcher
	Logger   logger.Logger
	// TicketRegex validates ticket IDs; nil disables the check
	TicketRegex *regexp.Regexp
	MaxCommits  int
	MaxFiles    int
	// Timeout bounds a whole search (0 = none)
	Timeout time.Duration
}

// NewService creates a Service with the default caps and ticket format
func NewService(searcher git.Searcher, log logger.Logger) *Service {
	if log == nil {
		log = logger.Discard()
	}
	return &Service{
		Searcher:    searcher,
		Logger:      log,
		TicketRegex: DefaultTicketRegex,
		MaxCommits:  DefaultMaxCommits,
		MaxFiles:    DefaultMaxFiles,
	}
}

// ValidTicket reports whether id matches the service's ticket format
func (s *Service) ValidTicket(id string) bool {
	if s.TicketRegex == nil {
		return true
	}
	return s.TicketRegex.MatchString(id)
}

// Search finds the commits mentioning ticketID in repoPath. A malformed
// ticket only produces a warning. With includeFiles, each kept commit is
// enriched with its changed files, one sequential lookup per commit.
func (s *Service) Search(ctx context.Context, ticketID, repoPath string, includeFiles bool) (*models.SearchResult, error) {
	if !s.ValidTicket(ticketID) {
		s.Logger.Warnf("Ticket format should be MD-XXXXX, got: %s", ticketID)
	}

	if repoPath == "" {
		return nil, fmt.Errorf("%w: no repository path given", ErrRepoNotFound)
	}
	if _, err := os.Stat(repoPath); err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrRepoNotFound, repoPath)
		}
		return nil, err
	}
	if !git.IsRepo(repoPath) {
		s.Logger.Warnf("%s does not look like a git repository", repoPath)
	}

	if s.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.Timeout)
		defer cancel()
	}

	commits, err := s.Searcher.SearchCommits(ctx, repoPath, ticketID)
	if err != nil {
		return nil, fmt.Errorf("search commits: %w", err)
	}
	s.Logger.Debugf("%d commit(s) mention %s", len(commits), ticketID)

	result := models.NewSearchResult(ticketID, repoPath)
	result.CommitCount = len(commits)

	kept := commits
	if s.MaxCommits > 0 && len(kept) > s.MaxCommits {
		kept = kept[:s.MaxCommits]
	}

	for _, commit := range kept {
		if includeFiles {
			files, err := s.Searcher.ChangedFiles(ctx, repoPath, commit.Hash)
			if err != nil {
				return nil, fmt.Errorf("list files of %s: %w", commit.ShortHash(), err)
			}
			commit = commit.WithFiles(files, s.MaxFiles)
		}
		result.Commits = append(result.Commits, commit)
	}

	return &result, nil
}
