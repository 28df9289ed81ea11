package models

// SearchResult is the outcome of searching a repository for one ticket
type SearchResult struct {
	// Ticket is the searched ticket ID (e.g., "MD-17329")
	Ticket string `json:"ticket" yaml:"ticket"`
	// Repository is the repository path that was searched
	Repository string `json:"repository" yaml:"repository"`
	// CommitCount is the total number of matching commits before capping
	CommitCount int `json:"commit_count" yaml:"commit_count"`
	// Commits holds the most recent matches, capped
	Commits []CommitInfo `json:"commits" yaml:"commits"`
}

// NewSearchResult creates an empty SearchResult
func NewSearchResult(ticket, repository string) SearchResult {
	return SearchResult{
		Ticket:     ticket,
		Repository: repository,
		Commits:    []CommitInfo{},
	}
}
