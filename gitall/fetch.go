package gitall

import (
	"context"
	"log/slog"

	"github.com/supply-chain-tools/gitall/gitkit"
)

// RepositoryFetcher lists repositories on the hosting platform. Failures are
// reported as an empty list.
type RepositoryFetcher interface {
	ListUserRepos(ctx context.Context, user string) []gitkit.Repository
	ListAuthenticatedUserRepos(ctx context.Context) []gitkit.Repository
	ListOrgRepos(ctx context.Context, org string) []gitkit.Repository
}

// NewFetcher builds a fetcher for credential; an empty credential means an
// unauthenticated client.
type NewFetcher func(credential string) (RepositoryFetcher, error)

// FetchRepositories picks the listing for the scope and organization flag of
// cfg. It returns ErrCredentialRequired without calling newFetcher when the
// scope needs a credential that cfg lacks.
func FetchRepositories(ctx context.Context, newFetcher NewFetcher, cfg Config) ([]gitkit.Repository, error) {
	credential, hasCredential := cfg.Credential()
	if cfg.Scope().RequiresCredential() && !hasCredential {
		return nil, ErrCredentialRequired
	}

	fetcher, err := newFetcher(credential)
	if err != nil {
		return nil, err
	}

	var repos []gitkit.Repository
	switch {
	case !cfg.Scope().RequiresCredential():
		slog.Debug("listing public repositories", "user", cfg.Account())
		repos = fetcher.ListUserRepos(ctx, cfg.Account())
	case cfg.OrgScope():
		slog.Debug("listing organization repositories", "org", cfg.Account())
		repos = fetcher.ListOrgRepos(ctx, cfg.Account())
	default:
		slog.Debug("listing repositories of the authenticated user")
		repos = fetcher.ListAuthenticatedUserRepos(ctx)
	}

	return gitkit.FilterByScope(repos, cfg.Scope()), nil
}
