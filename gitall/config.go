package gitall

import (
	"errors"
	"fmt"
	"strings"

	"github.com/supply-chain-tools/gitall/gitkit"
)

type Platform string

const (
	PlatformGitHub    Platform = "github"
	PlatformBitbucket Platform = "bitbucket"
)

func (p Platform) Available() bool {
	return p == PlatformGitHub
}

var (
	ErrAccountRequired    = errors.New("username is required")
	ErrCredentialRequired = errors.New("a personal access token is required")
)

// Config is the answers of one run. It is immutable once built.
type Config interface {
	Platform() Platform
	Scope() gitkit.Scope
	Account() string
	// Credential returns the token and whether one was collected. It is never
	// set for gitkit.ScopePublic.
	Credential() (string, bool)
	// OrgScope reports whether only the account's organization repositories
	// are listed. Always false for gitkit.ScopePublic.
	OrgScope() bool
}

type config struct {
	platform   Platform
	scope      gitkit.Scope
	account    string
	credential *string
	orgScope   bool
}

func NewConfig(platform Platform,
	scope gitkit.Scope,
	account string,
	credential *string,
	orgScope bool) (Config, error) {

	if !platform.Available() {
		return nil, fmt.Errorf("platform '%s' is not available", platform)
	}

	if _, err := gitkit.ParseScope(string(scope)); err != nil {
		return nil, err
	}

	account = strings.TrimSpace(account)
	if account == "" {
		return nil, ErrAccountRequired
	}

	if !scope.RequiresCredential() {
		return &config{
			platform: platform,
			scope:    scope,
			account:  account,
		}, nil
	}

	if credential == nil || strings.TrimSpace(*credential) == "" {
		return nil, ErrCredentialRequired
	}

	token := strings.TrimSpace(*credential)
	return &config{
		platform:   platform,
		scope:      scope,
		account:    account,
		credential: &token,
		orgScope:   orgScope,
	}, nil
}

func (c *config) Platform() Platform {
	return c.platform
}

func (c *config) Scope() gitkit.Scope {
	return c.scope
}

func (c *config) Account() string {
	return c.account
}

func (c *config) Credential() (string, bool) {
	if c.credential == nil {
		return "", false
	}
	return *c.credential, true
}

func (c *config) OrgScope() bool {
	return c.orgScope
}

// Options are the process level settings given on the command line.
type Options struct {
	// Destination is the directory repositories are cloned into.
	Destination string
	// ManifestPath, when set, is where the YAML manifest of cloned
	// repositories is written.
	ManifestPath string
}

const DefaultDestination = "repos"
