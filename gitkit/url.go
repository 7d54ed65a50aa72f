package gitkit

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

const DefaultHost = "github.com"

// credentialUsername is the basic auth user name paired with a token. GitHub
// only checks the password.
const credentialUsername = "token"

var ErrEmptyAccount = errors.New("account name must not be empty")

// ConventionalCloneURL builds https://<host>/<account>/<name>.git.
func ConventionalCloneURL(host string, account string, name string) string {
	u := url.URL{
		Scheme: "https",
		Host:   host,
		Path:   "/" + account + "/" + name + ".git",
	}
	return u.String()
}

// AuthenticatedURL parses rawURL and, when credential is non-empty, sets it as
// the password of the URL userinfo. Use Redacted() on the result before logging.
func AuthenticatedURL(rawURL string, credential string) (*url.URL, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("invalid clone URL '%s': %w", rawURL, err)
	}

	if u.Host == "" && u.Scheme != "file" {
		return nil, fmt.Errorf("invalid clone URL '%s': missing host", rawURL)
	}

	if credential == "" {
		return u, nil
	}

	if u.Scheme != "https" && u.Scheme != "http" {
		return nil, fmt.Errorf("refusing to add credential to clone URL with scheme '%s'", u.Scheme)
	}

	u.User = url.UserPassword(credentialUsername, credential)
	return u, nil
}

// NormalizeAccount accepts 'owner', 'github.com/owner' or
// 'https://github.com/owner' and returns the owner.
func NormalizeAccount(input string) (string, error) {
	account := strings.TrimSpace(input)
	if account == "" {
		return "", ErrEmptyAccount
	}

	if strings.HasPrefix(account, "https://") || strings.HasPrefix(account, DefaultHost+"/") {
		owner, repoName, err := ExtractOwnerAndRepoName(account)
		if err != nil {
			return "", err
		}
		if repoName != nil {
			return "", fmt.Errorf("expected an account, got repository '%s/%s'", owner, *repoName)
		}
		return owner, nil
	}

	if strings.ContainsAny(account, "/ \t") {
		return "", fmt.Errorf("invalid account name '%s'", account)
	}

	return account, nil
}

func ExtractOwnerAndRepoName(input string) (owner string, repoName *string, err error) {
	var userOrOrg string
	const httpsGithubPrefix = "https://" + DefaultHost + "/"
	const githubPrefix = DefaultHost + "/"
	if strings.HasPrefix(input, httpsGithubPrefix) {
		userOrOrg = strings.TrimPrefix(input, httpsGithubPrefix)
	} else if strings.HasPrefix(input, githubPrefix) {
		userOrOrg = strings.TrimPrefix(input, githubPrefix)
	} else {
		return "", nil, fmt.Errorf("invalid target '%s'; must start with '%s' or '%s'", input, httpsGithubPrefix, githubPrefix)
	}

	userOrOrg = strings.TrimSuffix(strings.Trim(userOrOrg, "/"), ".git")
	if userOrOrg == "" {
		return "", nil, fmt.Errorf("'owner' or 'owner/repo' must be specified")
	}

	parts := strings.Split(userOrOrg, "/")

	if len(parts) > 2 {
		return "", nil, fmt.Errorf("expected an 'owner' or 'owner/repo', got %d parts in '%s' instead", len(parts), userOrOrg)
	}

	owner = parts[0]
	repoName = nil

	if len(parts) > 1 {
		repoName = &parts[1]
	}

	return owner, repoName, nil
}
