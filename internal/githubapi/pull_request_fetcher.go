// Package githubapi reads pull requests from the GitHub REST API.
package githubapi

import (
	"context"
	"fmt"
	"iter"
	"net/url"
	"strings"

	"github.com/alimgiray/prpoints/internal/models"
	"github.com/google/go-github/v57/github"
	"golang.org/x/oauth2"
)

// DefaultPerPage is the largest page size the pulls endpoint accepts
const DefaultPerPage = 100

// NewClient creates a GitHub client. With a token every request carries it as a
// bearer token; without one the client is unauthenticated. A non-empty apiURL
// replaces https://api.github.com/.
func NewClient(ctx context.Context, token, apiURL string) (*github.Client, error) {
	client := github.NewClient(nil)
	if token != "" {
		ts := oauth2.StaticTokenSource(
			&oauth2.Token{AccessToken: token},
		)
		client = github.NewClient(oauth2.NewClient(ctx, ts))
	}

	if apiURL != "" {
		if !strings.HasSuffix(apiURL, "/") {
			apiURL += "/"
		}
		baseURL, err := url.Parse(apiURL)
		if err != nil {
			return nil, fmt.Errorf("invalid GitHub API URL %q: %w", apiURL, err)
		}
		client.BaseURL = baseURL
	}

	return client, nil
}

type PullRequestFetcher struct {
	client  *github.Client
	owner   string
	repo    string
	perPage int
}

func NewPullRequestFetcher(client *github.Client, owner, repo string, perPage int) *PullRequestFetcher {
	if perPage <= 0 {
		perPage = DefaultPerPage
	}
	return &PullRequestFetcher{
		client:  client,
		owner:   owner,
		repo:    repo,
		perPage: perPage,
	}
}

// Pages yields the repository's closed pull requests one page at a time, starting at
// page 1 on every iteration and stopping at the first empty page. An API error is
// yielded once and ends the sequence.
func (f *PullRequestFetcher) Pages(ctx context.Context) iter.Seq2[[]*models.PullRequest, error] {
	return func(yield func([]*models.PullRequest, error) bool) {
		opts := &github.PullRequestListOptions{
			State: "closed",
			ListOptions: github.ListOptions{
				Page:    1,
				PerPage: f.perPage,
			},
		}

		for {
			prs, _, err := f.client.PullRequests.List(ctx, f.owner, f.repo, opts)
			if err != nil {
				yield(nil, fmt.Errorf("failed to list pull requests for %s/%s page %d: %w", f.owner, f.repo, opts.Page, err))
				return
			}
			if len(prs) == 0 {
				return
			}

			page := make([]*models.PullRequest, 0, len(prs))
			for _, pr := range prs {
				page = append(page, convertPullRequest(pr))
			}
			if !yield(page, nil) {
				return
			}
			opts.Page++
		}
	}
}

// CollectPullRequests drains a page sequence into a single slice
func CollectPullRequests(pages iter.Seq2[[]*models.PullRequest, error]) ([]*models.PullRequest, error) {
	var all []*models.PullRequest
	for page, err := range pages {
		if err != nil {
			return nil, err
		}
		all = append(all, page...)
	}
	return all, nil
}

func convertPullRequest(githubPR *github.PullRequest) *models.PullRequest {
	pr := &models.PullRequest{
		Number: githubPR.GetNumber(),
		Title:  githubPR.GetTitle(),
	}

	if githubPR.MergedAt != nil {
		mergedAt := githubPR.MergedAt.Time
		pr.MergedAt = &mergedAt
	}

	for _, label := range githubPR.Labels {
		pr.Labels = append(pr.Labels, label.GetName())
	}

	if githubPR.User != nil {
		pr.AuthorURL = githubPR.User.GetHTMLURL()
	}

	return pr
}
