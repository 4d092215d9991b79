// Package gh wraps the GitHub REST API for a single authenticated identity.
//
// The client is the only process-wide shared resource: it is created once
// at startup and reused by every tool invocation. It owns transport
// concerns — authentication, pagination, request pacing, and retry on
// rate limits — and returns go-github's typed records; callers never see
// raw HTTP. All calls are logically sequential, so no locking is needed
// beyond what the limiter provides.
package gh

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/google/go-github/v60/github"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/HendryAvila/gitscope/internal/config"
)

const defaultAPIURL = "https://api.github.com"

// GitHub's REST API allows 5000 authenticated requests per hour. Pacing
// well under that keeps bursty tools (commit detail fetches) from
// tripping the secondary rate limit.
const (
	requestInterval = 150 * time.Millisecond
	requestBurst    = 5
)

// Client is the API gateway for one authenticated GitHub identity.
type Client struct {
	gh      *github.Client
	log     zerolog.Logger
	limiter *rate.Limiter
	retries int
	perPage int
}

// New creates a gateway client from the server configuration.
func New(cfg config.Config, log zerolog.Logger) (*Client, error) {
	hc := &http.Client{Timeout: cfg.RequestTimeout}
	ghc := github.NewClient(hc).WithAuthToken(cfg.GitHubToken)

	if cfg.GitHubAPIURL != "" && cfg.GitHubAPIURL != defaultAPIURL {
		var err error
		ghc, err = ghc.WithEnterpriseURLs(cfg.GitHubAPIURL, cfg.GitHubAPIURL)
		if err != nil {
			return nil, fmt.Errorf("configuring API base URL: %w", err)
		}
	}

	perPage := cfg.MaxEventsPerRequest
	if perPage > 100 {
		perPage = 100 // hard API maximum
	}

	return &Client{
		gh:      ghc,
		log:     log.With().Str("component", "gh").Logger(),
		limiter: rate.NewLimiter(rate.Every(requestInterval), requestBurst),
		retries: cfg.RateLimitRetries,
		perPage: perPage,
	}, nil
}

// newWithClient builds a gateway around an existing go-github client.
// Used by tests to point at an httptest server.
func newWithClient(ghc *github.Client, log zerolog.Logger, retries, perPage int) *Client {
	return &Client{
		gh:      ghc,
		log:     log,
		limiter: rate.NewLimiter(rate.Inf, 1),
		retries: retries,
		perPage: perPage,
	}
}

// User fetches a user or organization account. A failure here is a
// top-level identity failure and aborts the caller's whole operation.
func (c *Client) User(ctx context.Context, username string) (*github.User, error) {
	var user *github.User
	err := c.call(ctx, "get user", func() error {
		var err error
		user, _, err = c.gh.Users.Get(ctx, username)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("getting user %s: %w", username, err)
	}
	return user, nil
}

// UserEvents returns up to limit public events performed by the user, in
// the server's reverse-chronological order. Pages are consumed lazily —
// the walk stops as soon as limit items have been collected.
func (c *Client) UserEvents(ctx context.Context, username string, limit int) ([]*github.Event, error) {
	var out []*github.Event
	opts := &github.ListOptions{PerPage: c.pageSize(limit)}

	for {
		var (
			events []*github.Event
			resp   *github.Response
		)
		err := c.call(ctx, "list user events", func() error {
			var err error
			events, resp, err = c.gh.Activity.ListEventsPerformedByUser(ctx, username, true, opts)
			return err
		})
		if err != nil {
			return nil, fmt.Errorf("listing events for %s: %w", username, err)
		}

		for _, ev := range events {
			out = append(out, ev)
			if len(out) >= limit {
				return out, nil
			}
		}
		if resp.NextPage == 0 {
			return out, nil
		}
		opts.Page = resp.NextPage
	}
}

// UserEventsSince walks the user's event stream and returns every event
// with created_at >= since. The feed is reverse-chronological, so the
// walk stops at the first event older than the cutoff.
func (c *Client) UserEventsSince(ctx context.Context, username string, since time.Time) ([]*github.Event, error) {
	var out []*github.Event
	opts := &github.ListOptions{PerPage: c.perPage}

	for {
		var (
			events []*github.Event
			resp   *github.Response
		)
		err := c.call(ctx, "list user events", func() error {
			var err error
			events, resp, err = c.gh.Activity.ListEventsPerformedByUser(ctx, username, true, opts)
			return err
		})
		if err != nil {
			return nil, fmt.Errorf("listing events for %s: %w", username, err)
		}

		for _, ev := range events {
			if ev.GetCreatedAt().Time.Before(since) {
				return out, nil
			}
			out = append(out, ev)
		}
		if resp.NextPage == 0 {
			return out, nil
		}
		opts.Page = resp.NextPage
	}
}

// RepositoryEvents returns up to limit events for one repository.
func (c *Client) RepositoryEvents(ctx context.Context, owner, repo string, limit int) ([]*github.Event, error) {
	var out []*github.Event
	opts := &github.ListOptions{PerPage: c.pageSize(limit)}

	for {
		var (
			events []*github.Event
			resp   *github.Response
		)
		err := c.call(ctx, "list repository events", func() error {
			var err error
			events, resp, err = c.gh.Activity.ListRepositoryEvents(ctx, owner, repo, opts)
			return err
		})
		if err != nil {
			return nil, fmt.Errorf("listing events for %s/%s: %w", owner, repo, err)
		}

		for _, ev := range events {
			out = append(out, ev)
			if len(out) >= limit {
				return out, nil
			}
		}
		if resp.NextPage == 0 {
			return out, nil
		}
		opts.Page = resp.NextPage
	}
}

// OwnedRepositories lists the repositories owned by the user, most
// recently updated first.
func (c *Client) OwnedRepositories(ctx context.Context, username string) ([]*github.Repository, error) {
	var out []*github.Repository
	opts := &github.RepositoryListByUserOptions{
		Type:        "owner",
		Sort:        "updated",
		ListOptions: github.ListOptions{PerPage: c.perPage},
	}

	for {
		var (
			repos []*github.Repository
			resp  *github.Response
		)
		err := c.call(ctx, "list repositories", func() error {
			var err error
			repos, resp, err = c.gh.Repositories.ListByUser(ctx, username, opts)
			return err
		})
		if err != nil {
			return nil, fmt.Errorf("listing repositories for %s: %w", username, err)
		}

		out = append(out, repos...)
		if resp.NextPage == 0 {
			return out, nil
		}
		opts.Page = resp.NextPage
	}
}

// CommitsSince returns commits authored by author in one repository,
// filtered server-side by the since timestamp. A limit <= 0 means no
// count bound beyond the window itself.
func (c *Client) CommitsSince(ctx context.Context, owner, repo, author string, since time.Time, limit int) ([]*github.RepositoryCommit, error) {
	var out []*github.RepositoryCommit
	opts := &github.CommitsListOptions{
		Author:      author,
		Since:       since,
		ListOptions: github.ListOptions{PerPage: c.pageSize(limit)},
	}

	for {
		var (
			commits []*github.RepositoryCommit
			resp    *github.Response
		)
		err := c.call(ctx, "list commits", func() error {
			var err error
			commits, resp, err = c.gh.Repositories.ListCommits(ctx, owner, repo, opts)
			return err
		})
		if err != nil {
			return nil, fmt.Errorf("listing commits for %s/%s: %w", owner, repo, err)
		}

		for _, commit := range commits {
			out = append(out, commit)
			if limit > 0 && len(out) >= limit {
				return out, nil
			}
		}
		if resp.NextPage == 0 {
			return out, nil
		}
		opts.Page = resp.NextPage
	}
}

// CommitDetail fetches one commit including its changed files and patches.
func (c *Client) CommitDetail(ctx context.Context, owner, repo, sha string) (*github.RepositoryCommit, error) {
	var commit *github.RepositoryCommit
	err := c.call(ctx, "get commit", func() error {
		var err error
		commit, _, err = c.gh.Repositories.GetCommit(ctx, owner, repo, sha, nil)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("getting commit %s/%s@%s: %w", owner, repo, sha, err)
	}
	return commit, nil
}

// SearchIssues runs an issue search and returns the first result page.
// GitHub's search API mixes issues and pull requests; callers split them
// by the pull-request link marker.
func (c *Client) SearchIssues(ctx context.Context, query string) ([]*github.Issue, error) {
	var result *github.IssuesSearchResult
	err := c.call(ctx, "search issues", func() error {
		var err error
		result, _, err = c.gh.Search.Issues(ctx, query, &github.SearchOptions{
			ListOptions: github.ListOptions{PerPage: c.perPage},
		})
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("searching issues: %w", err)
	}
	return result.Issues, nil
}

func (c *Client) pageSize(limit int) int {
	if limit > 0 && limit < c.perPage {
		return limit
	}
	return c.perPage
}
