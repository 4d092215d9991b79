// Package activity aggregates a GitHub identity's public activity —
// events, commits, issues and pull requests — into normalized,
// time-windowed records.
//
// Nothing here is persisted: every aggregation builds fresh structures
// and the caller gets an independent snapshot. Per-item failures degrade
// to partial results; only top-level identity failures abort a call.
package activity

import (
	"encoding/json"
	"time"

	"github.com/google/go-github/v60/github"
)

// Event is a normalized activity record with a type-specific payload
// projection.
type Event struct {
	Type      string         `json:"type"`
	Actor     string         `json:"actor,omitempty"`
	Repo      string         `json:"repo,omitempty"`
	CreatedAt string         `json:"created_at,omitempty"`
	Payload   map[string]any `json:"payload"`
}

// Commit is a normalized commit record.
type Commit struct {
	SHA        string       `json:"sha"`
	Message    string       `json:"message"`
	Author     CommitAuthor `json:"author"`
	Repository string       `json:"repository"`
	URL        string       `json:"url"`
}

// CommitAuthor identifies who authored a commit and when.
type CommitAuthor struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Date  string `json:"date"`
}

// authoredAt parses the author date back into a time for sorting.
// Zero time on parse failure keeps malformed records at the end.
func (c Commit) authoredAt() time.Time {
	t, err := time.Parse(time.RFC3339, c.Author.Date)
	if err != nil {
		return time.Time{}
	}
	return t
}

// Issue is a normalized issue or pull-request record from search results.
type Issue struct {
	Number        int    `json:"number"`
	Title         string `json:"title"`
	State         string `json:"state"`
	Repository    string `json:"repository"`
	CreatedAt     string `json:"created_at"`
	UpdatedAt     string `json:"updated_at"`
	URL           string `json:"url"`
	IsPullRequest bool   `json:"is_pull_request,omitempty"`
}

// NormalizeEvent converts an upstream event into its flat record form,
// projecting the payload for the event's type.
func NormalizeEvent(ev *github.Event) Event {
	out := Event{
		Type:    ev.GetType(),
		Payload: ProjectPayload(ev),
	}
	if actor := ev.GetActor(); actor != nil {
		out.Actor = actor.GetLogin()
	}
	if repo := ev.GetRepo(); repo != nil {
		out.Repo = repo.GetName()
	}
	if created := ev.GetCreatedAt(); !created.IsZero() {
		out.CreatedAt = created.Time.UTC().Format(time.RFC3339)
	}
	return out
}

// NormalizeCommit converts an upstream commit into its flat record form.
// The repository full name is carried by the caller since the commit
// endpoint does not echo it back.
func NormalizeCommit(rc *github.RepositoryCommit, repoFullName string) Commit {
	out := Commit{
		SHA:        rc.GetSHA(),
		Repository: repoFullName,
		URL:        rc.GetHTMLURL(),
	}
	if commit := rc.GetCommit(); commit != nil {
		out.Message = commit.GetMessage()
		if author := commit.GetAuthor(); author != nil {
			out.Author = CommitAuthor{
				Name:  author.GetName(),
				Email: author.GetEmail(),
				Date:  author.GetDate().Time.UTC().Format(time.RFC3339),
			}
		}
	}
	return out
}

// ProjectPayload extracts the documented field subset for each
// recognized event type. Unrecognized types pass their raw payload
// through unchanged. A malformed payload degrades to an error marker
// for that one event — it never aborts the batch.
func ProjectPayload(ev *github.Event) map[string]any {
	raw := map[string]any{}
	if rp := ev.GetRawPayload(); len(rp) > 0 {
		if err := json.Unmarshal(rp, &raw); err != nil {
			return map[string]any{"error": "failed to extract payload"}
		}
	}

	switch ev.GetType() {
	case "PushEvent":
		commits, _ := raw["commits"].([]any)
		return map[string]any{
			"commits": len(commits),
			"ref":     str(raw, "ref"),
			"head":    str(raw, "head"),
			"size":    num(raw, "size"),
		}
	case "IssuesEvent":
		issue := sub(raw, "issue")
		return map[string]any{
			"action": str(raw, "action"),
			"issue": map[string]any{
				"number": num(issue, "number"),
				"title":  str(issue, "title"),
				"state":  str(issue, "state"),
				"url":    str(issue, "html_url"),
			},
		}
	case "PullRequestEvent":
		pr := sub(raw, "pull_request")
		return map[string]any{
			"action": str(raw, "action"),
			"pull_request": map[string]any{
				"number": num(pr, "number"),
				"title":  str(pr, "title"),
				"state":  str(pr, "state"),
				"url":    str(pr, "html_url"),
			},
		}
	case "CreateEvent":
		return map[string]any{
			"ref_type":    str(raw, "ref_type"),
			"ref":         str(raw, "ref"),
			"description": str(raw, "description"),
		}
	case "DeleteEvent":
		return map[string]any{
			"ref_type": str(raw, "ref_type"),
			"ref":      str(raw, "ref"),
		}
	case "WatchEvent":
		action := str(raw, "action")
		if action == "" {
			action = "started"
		}
		return map[string]any{"action": action}
	case "ForkEvent":
		forkee := sub(raw, "forkee")
		return map[string]any{
			"forkee": map[string]any{
				"full_name": str(forkee, "full_name"),
				"url":       str(forkee, "html_url"),
			},
		}
	case "ReleaseEvent":
		release := sub(raw, "release")
		return map[string]any{
			"action": str(raw, "action"),
			"release": map[string]any{
				"tag_name": str(release, "tag_name"),
				"name":     str(release, "name"),
				"url":      str(release, "html_url"),
			},
		}
	default:
		return raw
	}
}

func str(m map[string]any, key string) string {
	s, _ := m[key].(string)
	return s
}

// num reads a JSON number as an int. encoding/json decodes numbers in
// map[string]any as float64.
func num(m map[string]any, key string) int {
	f, _ := m[key].(float64)
	return int(f)
}

func sub(m map[string]any, key string) map[string]any {
	s, _ := m[key].(map[string]any)
	if s == nil {
		return map[string]any{}
	}
	return s
}
