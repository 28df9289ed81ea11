package git

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/wahlandcase/attuned.contextfinder/internal/logger"
	"github.com/wahlandcase/attuned.contextfinder/internal/models"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// GoGitSearcher reads history in-process with go-git, for hosts without a git binary.
// Messages are matched as a literal substring rather than a regular expression.
type GoGitSearcher struct {
	Logger logger.Logger
}

// NewGoGitSearcher creates a GoGitSearcher
func NewGoGitSearcher(log logger.Logger) *GoGitSearcher {
	if log == nil {
		log = logger.Discard()
	}
	return &GoGitSearcher{Logger: log}
}

func open(path string) (*git.Repository, error) {
	return git.PlainOpenWithOptions(path, &git.PlainOpenOptions{DetectDotGit: true})
}

func (s *GoGitSearcher) SearchCommits(ctx context.Context, repoPath, ticket string) ([]models.CommitInfo, error) {
	repo, err := open(repoPath)
	if err != nil {
		s.Logger.Debugf("open %s failed, treating as no results: %v", repoPath, err)
		return nil, nil
	}

	iter, err := repo.Log(&git.LogOptions{All: true, Order: git.LogOrderCommitterTime})
	if err != nil {
		s.Logger.Debugf("log %s failed, treating as no results: %v", repoPath, err)
		return nil, nil
	}
	defer iter.Close()

	type match struct {
		info models.CommitInfo
		when time.Time
	}
	var matches []match

	err = iter.ForEach(func(c *object.Commit) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if !strings.Contains(c.Message, ticket) {
			return nil
		}
		info := models.NewCommitInfo(
			c.Hash.String(),
			subject(c.Message),
			c.Author.Name,
			c.Author.When.Format("2006-01-02"),
		)
		matches = append(matches, match{info: info, when: c.Committer.When})
		return nil
	})
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		s.Logger.Debugf("walking %s failed: %v", repoPath, err)
	}

	// Refs are walked one after another; restore newest-first across all of them
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].when.After(matches[j].when)
	})

	commits := make([]models.CommitInfo, 0, len(matches))
	for _, m := range matches {
		commits = append(commits, m.info)
	}
	return commits, nil
}

// ChangedFiles diffs a commit against its only parent. Root and merge
// commits list nothing, matching plain diff-tree.
func (s *GoGitSearcher) ChangedFiles(ctx context.Context, repoPath, hash string) ([]string, error) {
	repo, err := open(repoPath)
	if err != nil {
		s.Logger.Debugf("open %s failed: %v", repoPath, err)
		return nil, nil
	}

	commit, err := repo.CommitObject(plumbing.NewHash(hash))
	if err != nil {
		s.Logger.Debugf("commit %s not found: %v", hash, err)
		return nil, nil
	}
	if commit.NumParents() != 1 {
		return nil, nil
	}

	parent, err := commit.Parent(0)
	if err != nil {
		return nil, nil
	}
	parentTree, err := parent.Tree()
	if err != nil {
		return nil, nil
	}
	tree, err := commit.Tree()
	if err != nil {
		return nil, nil
	}

	changes, err := object.DiffTreeContext(ctx, parentTree, tree)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		s.Logger.Debugf("diff %s failed: %v", hash, err)
		return nil, nil
	}

	files := make([]string, 0, len(changes))
	for _, change := range changes {
		name := change.To.Name
		if name == "" {
			name = change.From.Name
		}
		files = append(files, name)
	}
	sort.Strings(files)
	return files, nil
}

// subject returns the first line of a commit message
func subject(message string) string {
	line, _, _ := strings.Cut(message, "\n")
	return strings.TrimRight(line, "\r")
}
