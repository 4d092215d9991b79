package activity

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/go-github/v60/github"
	"github.com/rs/zerolog"
)

// Gateway is the slice of the API gateway the aggregator consumes.
// Implemented by gh.Client; faked in tests.
type Gateway interface {
	User(ctx context.Context, username string) (*github.User, error)
	UserEvents(ctx context.Context, username string, limit int) ([]*github.Event, error)
	UserEventsSince(ctx context.Context, username string, since time.Time) ([]*github.Event, error)
	RepositoryEvents(ctx context.Context, owner, repo string, limit int) ([]*github.Event, error)
	OwnedRepositories(ctx context.Context, username string) ([]*github.Repository, error)
	CommitsSince(ctx context.Context, owner, repo, author string, since time.Time, limit int) ([]*github.RepositoryCommit, error)
	SearchIssues(ctx context.Context, query string) ([]*github.Issue, error)
}

// Stats is the count roll-up inside a Summary.
type Stats struct {
	TotalEvents        int            `json:"total_events"`
	RepositoriesActive []string       `json:"repositories_active"`
	EventTypes         map[string]int `json:"event_types"`
}

// Summary is the aggregation root for one user's windowed activity.
// Built fresh per call and never persisted.
type Summary struct {
	User         string   `json:"user"`
	PeriodDays   int      `json:"period_days"`
	Since        string   `json:"since"`
	Stats        Stats    `json:"summary"`
	Events       []Event  `json:"events"`
	Commits      []Commit `json:"commits"`
	Issues       []Issue  `json:"issues"`
	PullRequests []Issue  `json:"pull_requests"`
}

// Aggregator walks event streams and owned-repository commit history,
// accumulating normalized records. Fetches are sequential; there is no
// fan-out across repositories.
type Aggregator struct {
	gw  Gateway
	log zerolog.Logger
}

// NewAggregator creates an Aggregator over the given gateway.
func NewAggregator(gw Gateway, log zerolog.Logger) *Aggregator {
	return &Aggregator{gw: gw, log: log.With().Str("component", "activity").Logger()}
}

// UserEvents returns up to limit normalized events for a user.
func (a *Aggregator) UserEvents(ctx context.Context, username string, limit int) ([]Event, error) {
	events, err := a.gw.UserEvents(ctx, username, limit)
	if err != nil {
		return nil, err
	}
	out := make([]Event, 0, len(events))
	for _, ev := range events {
		out = append(out, NormalizeEvent(ev))
	}
	return out, nil
}

// RepositoryEvents returns up to limit normalized events for a
// repository. The repo field is omitted — it is implied by the call.
func (a *Aggregator) RepositoryEvents(ctx context.Context, owner, repo string, limit int) ([]Event, error) {
	events, err := a.gw.RepositoryEvents(ctx, owner, repo, limit)
	if err != nil {
		return nil, err
	}
	out := make([]Event, 0, len(events))
	for _, ev := range events {
		rec := NormalizeEvent(ev)
		rec.Repo = ""
		out = append(out, rec)
	}
	return out, nil
}

// Summarize aggregates a user's activity over the lookback window.
//
// The event stream and the owned-repository commit history are two
// independent axes: their results are concatenated into the summary,
// not deduplicated against each other. A failure fetching one
// repository's commits (or the issue search) degrades to partial
// results; an identity failure aborts the call.
func (a *Aggregator) Summarize(ctx context.Context, username string, days int) (*Summary, error) {
	since := time.Now().UTC().AddDate(0, 0, -days)

	if _, err := a.gw.User(ctx, username); err != nil {
		return nil, err
	}

	summary := &Summary{
		User:       username,
		PeriodDays: days,
		Since:      since.Format(time.RFC3339),
		Stats: Stats{
			RepositoriesActive: []string{},
			EventTypes:         map[string]int{},
		},
		Events:       []Event{},
		Commits:      []Commit{},
		Issues:       []Issue{},
		PullRequests: []Issue{},
	}

	events, err := a.gw.UserEventsSince(ctx, username, since)
	if err != nil {
		return nil, err
	}

	activeRepos := map[string]struct{}{}
	for _, ev := range events {
		if ev.GetCreatedAt().Time.Before(since) {
			continue
		}
		summary.Stats.TotalEvents++
		summary.Stats.EventTypes[ev.GetType()]++
		if repo := ev.GetRepo(); repo != nil && repo.GetName() != "" {
			activeRepos[repo.GetName()] = struct{}{}
		}
		summary.Events = append(summary.Events, NormalizeEvent(ev))
	}
	summary.Stats.RepositoriesActive = sortedKeys(activeRepos)

	summary.Commits = a.collectRepoCommits(ctx, username, since, 0)

	a.collectIssues(ctx, username, since, summary)

	return summary, nil
}

// UserCommits collects commits authored by the user across all owned
// repositories since the cutoff, newest first, truncated to limit.
// Repositories are not pre-filtered by their own update timestamp — a
// stale repo top-level timestamp can hide fresh branch commits.
func (a *Aggregator) UserCommits(ctx context.Context, username string, since time.Time, limit int) ([]Commit, error) {
	if _, err := a.gw.User(ctx, username); err != nil {
		return nil, err
	}

	commits := a.collectRepoCommits(ctx, username, since, limit)

	sort.SliceStable(commits, func(i, j int) bool {
		return commits[i].authoredAt().After(commits[j].authoredAt())
	})
	if limit > 0 && len(commits) > limit {
		commits = commits[:limit]
	}
	return commits, nil
}

// collectRepoCommits walks every owned repository and gathers the user's
// commits in the window. One repository failing is logged and skipped —
// the walk continues and the caller gets partial results.
func (a *Aggregator) collectRepoCommits(ctx context.Context, username string, since time.Time, limit int) []Commit {
	out := []Commit{}

	repos, err := a.gw.OwnedRepositories(ctx, username)
	if err != nil {
		a.log.Warn().Err(err).Str("user", username).Msg("listing repositories failed, skipping commit history")
		return out
	}

	for _, repo := range repos {
		remaining := 0
		if limit > 0 {
			remaining = limit - len(out)
			if remaining <= 0 {
				break
			}
		}

		commits, err := a.gw.CommitsSince(ctx, repo.GetOwner().GetLogin(), repo.GetName(), username, since, remaining)
		if err != nil {
			a.log.Warn().Err(err).Str("repo", repo.GetFullName()).Msg("commit fetch failed, skipping repository")
			continue
		}
		for _, rc := range commits {
			out = append(out, NormalizeCommit(rc, repo.GetFullName()))
		}
	}
	return out
}

// collectIssues runs the issue/PR search and splits the mixed results.
// Search failures are best-effort: logged, lists stay empty.
func (a *Aggregator) collectIssues(ctx context.Context, username string, since time.Time, summary *Summary) {
	query := fmt.Sprintf("assignee:%s OR author:%s updated:>=%s",
		username, username, since.Format("2006-01-02"))

	issues, err := a.gw.SearchIssues(ctx, query)
	if err != nil {
		a.log.Warn().Err(err).Str("user", username).Msg("issue search failed, skipping issues and pull requests")
		return
	}

	for _, issue := range issues {
		rec := Issue{
			Number:     issue.GetNumber(),
			Title:      issue.GetTitle(),
			State:      issue.GetState(),
			Repository: repoFromURL(issue.GetRepositoryURL()),
			CreatedAt:  issue.GetCreatedAt().Time.UTC().Format(time.RFC3339),
			UpdatedAt:  issue.GetUpdatedAt().Time.UTC().Format(time.RFC3339),
			URL:        issue.GetHTMLURL(),
		}
		if issue.IsPullRequest() {
			rec.IsPullRequest = true
			summary.PullRequests = append(summary.PullRequests, rec)
		} else {
			summary.Issues = append(summary.Issues, rec)
		}
	}
}

// repoFromURL extracts "owner/name" from an API repository URL like
// https://api.github.com/repos/owner/name.
func repoFromURL(url string) string {
	const marker = "/repos/"
	if i := strings.Index(url, marker); i >= 0 {
		return url[i+len(marker):]
	}
	return ""
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
