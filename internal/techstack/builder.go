package techstack

import (
	"context"
	"time"

	"github.com/google/go-github/v60/github"
	"github.com/rs/zerolog"
)

// Gateway is the slice of the API gateway the builder consumes.
type Gateway interface {
	User(ctx context.Context, username string) (*github.User, error)
	OwnedRepositories(ctx context.Context, username string) ([]*github.Repository, error)
	CommitsSince(ctx context.Context, owner, repo, author string, since time.Time, limit int) ([]*github.RepositoryCommit, error)
	CommitDetail(ctx context.Context, owner, repo, sha string) (*github.RepositoryCommit, error)
}

// Builder walks a user's recent commits, fetches per-commit file detail,
// and accumulates a Profile. Fetches are sequential, repository by
// repository, commit by commit.
type Builder struct {
	gw  Gateway
	log zerolog.Logger
}

// NewBuilder creates a Builder over the given gateway.
func NewBuilder(gw Gateway, log zerolog.Logger) *Builder {
	return &Builder{gw: gw, log: log.With().Str("component", "techstack").Logger()}
}

// Build analyzes up to limit commits from the lookback window and
// returns the finalized profile.
//
// Error policy: an unknown user aborts the call; a repository whose
// commit list cannot be fetched is skipped; a commit whose file detail
// cannot be fetched still counts toward classification but contributes
// no file signals.
func (b *Builder) Build(ctx context.Context, username string, days, limit int) (*Profile, error) {
	if _, err := b.gw.User(ctx, username); err != nil {
		return nil, err
	}

	since := time.Now().UTC().AddDate(0, 0, -days)
	profile := NewProfile(username, days)

	repos, err := b.gw.OwnedRepositories(ctx, username)
	if err != nil {
		return nil, err
	}

	analyzed := 0
	for _, repo := range repos {
		if limit > 0 && analyzed >= limit {
			break
		}

		remaining := 0
		if limit > 0 {
			remaining = limit - analyzed
		}

		owner, name := repo.GetOwner().GetLogin(), repo.GetName()
		commits, err := b.gw.CommitsSince(ctx, owner, name, username, since, remaining)
		if err != nil {
			b.log.Warn().Err(err).Str("repo", repo.GetFullName()).Msg("commit fetch failed, skipping repository")
			continue
		}

		for _, rc := range commits {
			profile.AddCommit(repo.GetFullName(), rc.GetCommit().GetMessage())
			analyzed++

			detail, err := b.gw.CommitDetail(ctx, owner, name, rc.GetSHA())
			if err != nil {
				b.log.Warn().Err(err).
					Str("repo", repo.GetFullName()).
					Str("sha", rc.GetSHA()).
					Msg("commit detail fetch failed, no file signals for this commit")
				continue
			}
			for _, file := range detail.Files {
				profile.AddFile(
					file.GetFilename(),
					file.GetStatus(),
					file.GetAdditions(),
					file.GetDeletions(),
					file.GetPatch(),
				)
			}
		}
	}

	profile.Finalize()
	return profile, nil
}
