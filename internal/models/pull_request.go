package models

import (
	"time"
)

// PullRequest is the subset of a GitHub pull request the scoring pipeline reads
type PullRequest struct {
	Number    int        `json:"number"`
	Title     string     `json:"title"`
	MergedAt  *time.Time `json:"merged_at"` // nil when the PR was closed without merging
	Labels    []string   `json:"labels"`    // label names in API order
	AuthorURL string     `json:"author_url"`
}

// IsMerged reports whether the pull request has a merge timestamp
func (pr *PullRequest) IsMerged() bool {
	return pr.MergedAt != nil
}
