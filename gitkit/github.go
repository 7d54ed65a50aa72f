package gitkit

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/gofri/go-github-ratelimit/v2/github_ratelimit"
	"github.com/google/go-github/v61/github"
	"github.com/gregjones/httpcache"
)

// PerPage is the page size of authenticated listings. Only the first page is
// requested.
const PerPage = 100

type GitHubClient struct {
	client        *github.Client
	cloneHost     string
	authenticated bool
}

// newHTTPClient stacks ETag caching under the secondary rate limit handling.
func newHTTPClient() *http.Client {
	return github_ratelimit.NewClient(httpcache.NewMemoryCacheTransport())
}

func NewAuthenticatedGitHubClient(token string) *GitHubClient {
	client := github.NewClient(newHTTPClient()).WithAuthToken(token)
	return &GitHubClient{
		client:        client,
		cloneHost:     DefaultHost,
		authenticated: true,
	}
}

func NewGitHubClient() *GitHubClient {
	client := github.NewClient(newHTTPClient())
	return &GitHubClient{
		client:        client,
		cloneHost:     DefaultHost,
		authenticated: false,
	}
}

// NewGitHubClientWithBaseURL targets a GitHub Enterprise instance or a test
// server. A nil httpClient gets the default transport stack and an empty
// token an unauthenticated client. The clone host is taken from baseURL.
func NewGitHubClientWithBaseURL(httpClient *http.Client, baseURL string, token string) (*GitHubClient, error) {
	if httpClient == nil {
		httpClient = newHTTPClient()
	}

	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}

	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid API base URL '%s': %w", baseURL, err)
	}

	if u.Scheme != "https" && u.Scheme != "http" {
		return nil, fmt.Errorf("invalid API base URL '%s': scheme must be http or https", baseURL)
	}

	client := github.NewClient(httpClient)
	client.BaseURL = u
	if token != "" {
		client = client.WithAuthToken(token)
	}

	cloneHost := u.Host
	if u.Host == "api."+DefaultHost {
		cloneHost = DefaultHost
	}

	return &GitHubClient{
		client:        client,
		cloneHost:     cloneHost,
		authenticated: token != "",
	}, nil
}

// WithCloneHost sets the host used for conventional clone URLs of
// unauthenticated listings.
func (gc *GitHubClient) WithCloneHost(host string) *GitHubClient {
	gc.cloneHost = host
	return gc
}

func (gc *GitHubClient) Authenticated() bool {
	return gc.authenticated
}

// ListUserRepos lists the public repositories of user without authentication.
// Only names are taken from the response; clone URLs follow the
// https://<host>/<user>/<name>.git convention. Errors are logged and an empty
// list is returned.
func (gc *GitHubClient) ListUserRepos(ctx context.Context, user string) []Repository {
	resultRepos, res, err := gc.client.Repositories.ListByUser(ctx, user, nil)
	if err != nil {
		slog.Error("error fetching repositories", "user", user, "error", err.Error())
		return []Repository{}
	}
	warnIfTruncated(res, "user", user)

	repos := make([]Repository, 0, len(resultRepos))
	for _, r := range resultRepos {
		if r.GetName() == "" {
			continue
		}
		repos = append(repos, NewRepo(r.GetName(), VisibilityUnknown, ConventionalCloneURL(gc.cloneHost, user, r.GetName())))
	}

	slog.Debug("listed user repositories", "user", user, "count", len(repos))
	return repos
}

// ListAuthenticatedUserRepos lists every repository visible to the owner of
// the credential. Errors are logged and an empty list is returned.
func (gc *GitHubClient) ListAuthenticatedUserRepos(ctx context.Context) []Repository {
	options := &github.RepositoryListByAuthenticatedUserOptions{
		Type:        "all",
		Sort:        "full_name",
		ListOptions: github.ListOptions{PerPage: PerPage},
	}

	resultRepos, res, err := gc.client.Repositories.ListByAuthenticatedUser(ctx, options)
	if err != nil {
		slog.Error("error fetching repositories", "error", err.Error())
		return []Repository{}
	}
	warnIfTruncated(res, "user", "authenticated")

	repos := gc.mapRepos(resultRepos)
	slog.Debug("listed authenticated user repositories", "count", len(repos))
	return repos
}

// ListOrgRepos lists the repositories of org. Errors are logged and an empty
// list is returned.
func (gc *GitHubClient) ListOrgRepos(ctx context.Context, org string) []Repository {
	options := &github.RepositoryListByOrgOptions{
		Type:        "all",
		Sort:        "full_name",
		ListOptions: github.ListOptions{PerPage: PerPage},
	}

	resultRepos, res, err := gc.client.Repositories.ListByOrg(ctx, org, options)
	if err != nil {
		slog.Error("error fetching repositories", "org", org, "error", err.Error())
		return []Repository{}
	}
	warnIfTruncated(res, "org", org)

	repos := gc.mapRepos(resultRepos)
	slog.Debug("listed org repositories", "org", org, "count", len(repos))
	return repos
}

func (gc *GitHubClient) mapRepos(resultRepos []*github.Repository) []Repository {
	repos := make([]Repository, 0, len(resultRepos))
	for _, r := range resultRepos {
		if r.GetName() == "" {
			continue
		}

		cloneURL := r.GetCloneURL()
		if cloneURL == "" {
			cloneURL = ConventionalCloneURL(gc.cloneHost, r.GetOwner().GetLogin(), r.GetName())
		}

		repos = append(repos, NewRepo(r.GetName(), visibilityOf(r.GetPrivate()), cloneURL))
	}

	return repos
}

func warnIfTruncated(res *github.Response, kind string, owner string) {
	if res != nil && res.NextPage != 0 {
		slog.Warn("more repositories exist than were fetched; only the first page is listed",
			kind, owner, "nextPage", res.NextPage)
	}
}
