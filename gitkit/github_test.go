package gitkit

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

type repoJSON struct {
	Name     string    `json:"name"`
	Private  bool      `json:"private"`
	CloneURL string    `json:"clone_url,omitempty"`
	Owner    *userJSON `json:"owner,omitempty"`
}

type userJSON struct {
	Login string `json:"login"`
}

type listedRepo struct {
	Name       string
	Visibility Visibility
	CloneURL   string
}

func flatten(repos []Repository) []listedRepo {
	result := make([]listedRepo, 0, len(repos))
	for _, r := range repos {
		result = append(result, listedRepo{Name: r.Name(), Visibility: r.Visibility(), CloneURL: r.CloneURL()})
	}
	return result
}

func newTestClient(t *testing.T, token string, handler http.Handler) *GitHubClient {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := NewGitHubClientWithBaseURL(server.Client(), server.URL, token)
	if err != nil {
		t.Fatal(err)
	}

	return client
}

func writeJSON(t *testing.T, w http.ResponseWriter, v any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		t.Error(err)
	}
}

func TestListUserRepos(t *testing.T) {
	var gotAuthorization string
	mux := http.NewServeMux()
	mux.HandleFunc("/users/octocat/repos", func(w http.ResponseWriter, r *http.Request) {
		gotAuthorization = r.Header.Get("Authorization")
		writeJSON(t, w, []repoJSON{{Name: "Hello-World"}})
	})

	client := newTestClient(t, "", mux).WithCloneHost(DefaultHost)
	repos := client.ListUserRepos(context.Background(), "octocat")

	want := []listedRepo{{Name: "Hello-World", Visibility: VisibilityUnknown, CloneURL: "https://github.com/octocat/Hello-World.git"}}
	if diff := cmp.Diff(want, flatten(repos)); diff != "" {
		t.Errorf("ListUserRepos() mismatch (-want +got):\n%s", diff)
	}

	if gotAuthorization != "" {
		t.Errorf("want no Authorization header, got '%s'", gotAuthorization)
	}
}

func TestListAuthenticatedUserRepos(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/user/repos", func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); !strings.HasSuffix(got, " test-token") {
			t.Errorf("want Authorization header with token, got '%s'", got)
		}
		if got := r.Header.Get("Accept"); !strings.Contains(got, "application/vnd.github.v3+json") {
			t.Errorf("want v3 Accept header, got '%s'", got)
		}

		query := r.URL.Query()
		for key, want := range map[string]string{"type": "all", "sort": "full_name", "per_page": "100"} {
			if got := query.Get(key); got != want {
				t.Errorf("want query %s=%s, got '%s'", key, want, got)
			}
		}
		if query.Get("page") != "" {
			t.Errorf("want first page only, got page=%s", query.Get("page"))
		}

		writeJSON(t, w, []repoJSON{
			{Name: "zeta", Private: true, CloneURL: "https://github.com/me/zeta.git"},
			{Name: "alpha", Private: false, CloneURL: "https://github.com/me/alpha.git"},
			{Name: "mid", Private: true, Owner: &userJSON{Login: "acme"}},
		})
	})

	client := newTestClient(t, "test-token", mux)
	repos := client.ListAuthenticatedUserRepos(context.Background())

	host := client.cloneHost
	want := []listedRepo{
		{Name: "zeta", Visibility: VisibilityPrivate, CloneURL: "https://github.com/me/zeta.git"},
		{Name: "alpha", Visibility: VisibilityPublic, CloneURL: "https://github.com/me/alpha.git"},
		{Name: "mid", Visibility: VisibilityPrivate, CloneURL: "https://" + host + "/acme/mid.git"},
	}
	if diff := cmp.Diff(want, flatten(repos)); diff != "" {
		t.Errorf("ListAuthenticatedUserRepos() mismatch (-want +got):\n%s", diff)
	}
}

func TestListOrgRepos(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/orgs/acme/repos", func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("per_page"); got != "100" {
			t.Errorf("want per_page=100, got '%s'", got)
		}
		// A Link header with a next page must not be followed.
		w.Header().Set("Link", `<`+"http://"+r.Host+`/orgs/acme/repos?page=2>; rel="next"`)
		writeJSON(t, w, []repoJSON{
			{Name: "api", Private: true, CloneURL: "https://github.com/acme/api.git"},
			{Name: "web", Private: false, CloneURL: "https://github.com/acme/web.git"},
		})
	})

	client := newTestClient(t, "test-token", mux)
	repos := client.ListOrgRepos(context.Background(), "acme")

	if len(repos) != 2 {
		t.Fatalf("want 2 repos, got %d", len(repos))
	}

	if repos[0].Name() != "api" || repos[1].Name() != "web" {
		t.Errorf("want order [api web], got [%s %s]", repos[0].Name(), repos[1].Name())
	}
}

func TestListReposServerError(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message":"boom"}`, http.StatusInternalServerError)
	})

	client := newTestClient(t, "test-token", mux)
	ctx := context.Background()

	if repos := client.ListUserRepos(ctx, "octocat"); repos == nil || len(repos) != 0 {
		t.Errorf("ListUserRepos: want empty list, got %v", repos)
	}
	if repos := client.ListAuthenticatedUserRepos(ctx); repos == nil || len(repos) != 0 {
		t.Errorf("ListAuthenticatedUserRepos: want empty list, got %v", repos)
	}
	if repos := client.ListOrgRepos(ctx, "acme"); repos == nil || len(repos) != 0 {
		t.Errorf("ListOrgRepos: want empty list, got %v", repos)
	}
}

func TestNewGitHubClientWithBaseURL(t *testing.T) {
	client, err := NewGitHubClientWithBaseURL(nil, "https://api.github.com", "")
	if err != nil {
		t.Fatal(err)
	}

	if client.cloneHost != DefaultHost {
		t.Errorf("want clone host '%s', got '%s'", DefaultHost, client.cloneHost)
	}

	if client.Authenticated() {
		t.Error("want unauthenticated client")
	}

	client, err = NewGitHubClientWithBaseURL(nil, "https://ghe.example.com/api/v3", "secret")
	if err != nil {
		t.Fatal(err)
	}

	if client.cloneHost != "ghe.example.com" {
		t.Errorf("want clone host 'ghe.example.com', got '%s'", client.cloneHost)
	}

	if client.client.BaseURL.String() != "https://ghe.example.com/api/v3/" {
		t.Errorf("want base URL with trailing slash, got '%s'", client.client.BaseURL.String())
	}

	if _, err := NewGitHubClientWithBaseURL(nil, "ftp://example.com", ""); err == nil {
		t.Error("want error for non-http base URL")
	}
}
