package gh

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"testing"
	"time"

	"github.com/google/go-github/v60/github"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestClient points a gateway at an httptest server.
func newTestClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	ghc := github.NewClient(nil)
	base, err := url.Parse(srv.URL + "/")
	require.NoError(t, err)
	ghc.BaseURL = base

	return newWithClient(ghc, zerolog.Nop(), 2, 100), srv
}

func TestUser(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/users/alice", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		fmt.Fprint(w, `{"login":"alice","id":1}`)
	})

	c, _ := newTestClient(t, mux)
	user, err := c.User(context.Background(), "alice")
	require.NoError(t, err)
	assert.Equal(t, "alice", user.GetLogin())
}

func TestUser_NotFoundSurfacesImmediately(t *testing.T) {
	calls := 0
	mux := http.NewServeMux()
	mux.HandleFunc("/users/ghost", func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusNotFound)
		fmt.Fprint(w, `{"message":"Not Found"}`)
	})

	c, _ := newTestClient(t, mux)
	_, err := c.User(context.Background(), "ghost")
	assert.Error(t, err)
	assert.Equal(t, 1, calls, "not-found is not retried")
}

func TestUserEvents_StopsAtLimitAcrossPages(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/users/alice/events/public", func(w http.ResponseWriter, r *http.Request) {
		page := r.URL.Query().Get("page")
		if page == "" || page == "1" {
			w.Header().Set("Link",
				fmt.Sprintf(`<http://%s/users/alice/events/public?page=2>; rel="next"`, r.Host))
			fmt.Fprint(w, `[{"id":"1","type":"PushEvent"},{"id":"2","type":"PushEvent"}]`)
			return
		}
		fmt.Fprint(w, `[{"id":"3","type":"WatchEvent"},{"id":"4","type":"WatchEvent"}]`)
	})

	c, _ := newTestClient(t, mux)
	events, err := c.UserEvents(context.Background(), "alice", 3)
	require.NoError(t, err)
	require.Len(t, events, 3)
	assert.Equal(t, "3", events[2].GetID())
}

func TestUserEvents_StopsWhenFeedEnds(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/users/alice/events/public", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `[{"id":"1","type":"PushEvent"}]`)
	})

	c, _ := newTestClient(t, mux)
	events, err := c.UserEvents(context.Background(), "alice", 50)
	require.NoError(t, err)
	assert.Len(t, events, 1)
}

func TestUserEventsSince_StopsAtFirstOldEvent(t *testing.T) {
	now := time.Now().UTC()
	fresh := now.Add(-time.Hour).Format(time.RFC3339)
	stale := now.AddDate(0, 0, -30).Format(time.RFC3339)

	pagesServed := 0
	mux := http.NewServeMux()
	mux.HandleFunc("/users/alice/events/public", func(w http.ResponseWriter, r *http.Request) {
		pagesServed++
		w.Header().Set("Link",
			fmt.Sprintf(`<http://%s/users/alice/events/public?page=2>; rel="next"`, r.Host))
		fmt.Fprintf(w, `[{"id":"1","type":"PushEvent","created_at":%q},{"id":"2","type":"PushEvent","created_at":%q}]`,
			fresh, stale)
	})

	c, _ := newTestClient(t, mux)
	events, err := c.UserEventsSince(context.Background(), "alice", now.AddDate(0, 0, -7))
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "1", events[0].GetID())
	assert.Equal(t, 1, pagesServed, "walk stops before fetching the next page")
}

func TestRepositoryEvents(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/repos/alice/api/events", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `[{"id":"1","type":"IssuesEvent"}]`)
	})

	c, _ := newTestClient(t, mux)
	events, err := c.RepositoryEvents(context.Background(), "alice", "api", 30)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "IssuesEvent", events[0].GetType())
}

func TestOwnedRepositories_QueryAndPagination(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/users/alice/repos", func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "owner", q.Get("type"))
		assert.Equal(t, "updated", q.Get("sort"))

		if q.Get("page") == "" || q.Get("page") == "1" {
			w.Header().Set("Link",
				fmt.Sprintf(`<http://%s/users/alice/repos?page=2>; rel="next"`, r.Host))
			fmt.Fprint(w, `[{"name":"api","full_name":"alice/api"}]`)
			return
		}
		fmt.Fprint(w, `[{"name":"web","full_name":"alice/web"}]`)
	})

	c, _ := newTestClient(t, mux)
	repos, err := c.OwnedRepositories(context.Background(), "alice")
	require.NoError(t, err)
	require.Len(t, repos, 2)
	assert.Equal(t, "alice/web", repos[1].GetFullName())
}

func TestCommitsSince_QueryAndLimit(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/repos/alice/api/commits", func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "alice", q.Get("author"))
		assert.NotEmpty(t, q.Get("since"))

		w.Header().Set("Link",
			fmt.Sprintf(`<http://%s/repos/alice/api/commits?page=2>; rel="next"`, r.Host))
		fmt.Fprint(w, `[{"sha":"c1"},{"sha":"c2"}]`)
	})

	c, _ := newTestClient(t, mux)
	commits, err := c.CommitsSince(context.Background(), "alice", "api", "alice",
		time.Now().AddDate(0, -1, 0), 2)
	require.NoError(t, err)
	require.Len(t, commits, 2)
	assert.Equal(t, "c2", commits[1].GetSHA())
}

func TestCommitDetail(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/repos/alice/api/commits/abc123", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"sha":"abc123","files":[{"filename":"main.go","status":"modified","additions":3,"deletions":1}]}`)
	})

	c, _ := newTestClient(t, mux)
	commit, err := c.CommitDetail(context.Background(), "alice", "api", "abc123")
	require.NoError(t, err)
	require.Len(t, commit.Files, 1)
	assert.Equal(t, "main.go", commit.Files[0].GetFilename())
}

func TestSearchIssues(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/search/issues", func(w http.ResponseWriter, r *http.Request) {
		assert.NotEmpty(t, r.URL.Query().Get("q"))
		fmt.Fprint(w, `{"total_count":2,"items":[{"number":1},{"number":2,"pull_request":{"url":"u"}}]}`)
	})

	c, _ := newTestClient(t, mux)
	issues, err := c.SearchIssues(context.Background(), "author:alice")
	require.NoError(t, err)
	require.Len(t, issues, 2)
	assert.False(t, issues[0].IsPullRequest())
	assert.True(t, issues[1].IsPullRequest())
}

func TestCall_RetriesRateLimit(t *testing.T) {
	calls := 0
	mux := http.NewServeMux()
	mux.HandleFunc("/users/alice", func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			w.Header().Set("X-RateLimit-Limit", "5000")
			w.Header().Set("X-RateLimit-Remaining", "0")
			w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(time.Now().Unix(), 10))
			w.WriteHeader(http.StatusForbidden)
			fmt.Fprint(w, `{"message":"API rate limit exceeded"}`)
			return
		}
		fmt.Fprint(w, `{"login":"alice"}`)
	})

	c, _ := newTestClient(t, mux)
	user, err := c.User(context.Background(), "alice")
	require.NoError(t, err)
	assert.Equal(t, "alice", user.GetLogin())
	assert.Equal(t, 2, calls)
}

func TestCall_GivesUpAfterConfiguredRetries(t *testing.T) {
	calls := 0
	mux := http.NewServeMux()
	mux.HandleFunc("/users/alice", func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Header().Set("X-RateLimit-Limit", "5000")
		w.Header().Set("X-RateLimit-Remaining", "0")
		w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(time.Now().Unix(), 10))
		w.WriteHeader(http.StatusForbidden)
		fmt.Fprint(w, `{"message":"API rate limit exceeded"}`)
	})

	c, _ := newTestClient(t, mux)
	_, err := c.User(context.Background(), "alice")
	assert.Error(t, err)
	assert.Equal(t, 3, calls, "initial attempt plus two retries")
}

func TestRateLimitWait(t *testing.T) {
	primary := &github.RateLimitError{
		Rate: github.Rate{Reset: github.Timestamp{Time: time.Now().Add(10 * time.Second)}},
	}
	wait, retryable := rateLimitWait(primary)
	assert.True(t, retryable)
	assert.GreaterOrEqual(t, wait, minRateLimitWait)
	assert.LessOrEqual(t, wait, maxRateLimitWait)

	after := 5 * time.Second
	secondary := &github.AbuseRateLimitError{RetryAfter: &after}
	wait, retryable = rateLimitWait(secondary)
	assert.True(t, retryable)
	assert.Equal(t, 5*time.Second, wait)

	wait, retryable = rateLimitWait(&github.AbuseRateLimitError{})
	assert.True(t, retryable)
	assert.Equal(t, 30*time.Second, wait)

	_, retryable = rateLimitWait(fmt.Errorf("plain failure"))
	assert.False(t, retryable)
}

func TestClampWait(t *testing.T) {
	assert.Equal(t, minRateLimitWait, clampWait(0))
	assert.Equal(t, minRateLimitWait, clampWait(-time.Hour))
	assert.Equal(t, 30*time.Second, clampWait(30*time.Second))
	assert.Equal(t, maxRateLimitWait, clampWait(time.Hour))
}

func TestPageSize(t *testing.T) {
	c := newWithClient(github.NewClient(nil), zerolog.Nop(), 0, 100)
	assert.Equal(t, 30, c.pageSize(30))
	assert.Equal(t, 100, c.pageSize(500))
	assert.Equal(t, 100, c.pageSize(0))
}
