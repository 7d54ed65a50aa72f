package gitkit

import (
	"fmt"
	"path/filepath"
	"strings"
)

type Scope string

const (
	ScopeAll     Scope = "all"
	ScopePublic  Scope = "public"
	ScopePrivate Scope = "private"
)

func ParseScope(s string) (Scope, error) {
	switch Scope(strings.ToLower(strings.TrimSpace(s))) {
	case ScopeAll:
		return ScopeAll, nil
	case ScopePublic:
		return ScopePublic, nil
	case ScopePrivate:
		return ScopePrivate, nil
	default:
		return "", fmt.Errorf("unknown repository scope '%s'; must be one of 'all', 'public' or 'private'", s)
	}
}

// RequiresCredential reports whether listing repositories in this scope
// needs an authenticated API client.
func (s Scope) RequiresCredential() bool {
	return s == ScopeAll || s == ScopePrivate
}

type Visibility int

const (
	// VisibilityUnknown is used for repositories listed without authentication,
	// where only the name is taken from the API response.
	VisibilityUnknown Visibility = iota
	VisibilityPublic
	VisibilityPrivate
)

func (v Visibility) String() string {
	switch v {
	case VisibilityPublic:
		return "Public"
	case VisibilityPrivate:
		return "Private"
	default:
		return ""
	}
}

func visibilityOf(private bool) Visibility {
	if private {
		return VisibilityPrivate
	}
	return VisibilityPublic
}

type Repository interface {
	Name() string
	Visibility() Visibility
	CloneURL() string
}

type repo struct {
	name       string
	visibility Visibility
	cloneURL   string
}

func NewRepo(name string, visibility Visibility, cloneURL string) Repository {
	return &repo{
		name:       name,
		visibility: visibility,
		cloneURL:   cloneURL,
	}
}

func (r *repo) Name() string {
	return r.name
}

func (r *repo) Visibility() Visibility {
	return r.visibility
}

func (r *repo) CloneURL() string {
	return r.cloneURL
}

// FilterByScope keeps the repositories visible in scope. Repositories of
// unknown visibility are only kept for ScopeAll and ScopePublic.
func FilterByScope(repos []Repository, scope Scope) []Repository {
	if scope != ScopePrivate {
		return repos
	}

	result := make([]Repository, 0, len(repos))
	for _, r := range repos {
		if r.Visibility() == VisibilityPrivate {
			result = append(result, r)
		}
	}

	return result
}

// LocalPath returns the directory under destination a repository is cloned into.
func LocalPath(destination string, repoName string) (string, error) {
	if repoName == "" || repoName == "." || repoName == ".." || strings.ContainsAny(repoName, `/\`) {
		return "", fmt.Errorf("invalid repository name '%s'", repoName)
	}

	return filepath.Join(destination, repoName), nil
}
