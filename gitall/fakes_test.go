package gitall

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	"github.com/supply-chain-tools/gitall/gitkit"
)

var errNoAnswer = errors.New("no scripted answer")

type fakePrompter struct {
	selects   []string
	inputs    []string
	passwords []string
	confirms  []bool
	multi     [][]string

	calls        []string
	multiChoices []Choice
}

func (p *fakePrompter) Select(title string, choices []Choice) (string, error) {
	p.calls = append(p.calls, "select")
	if len(p.selects) == 0 {
		return "", errNoAnswer
	}
	answer := p.selects[0]
	p.selects = p.selects[1:]
	return answer, nil
}

func (p *fakePrompter) Input(title string) (string, error) {
	p.calls = append(p.calls, "input")
	if len(p.inputs) == 0 {
		return "", errNoAnswer
	}
	answer := p.inputs[0]
	p.inputs = p.inputs[1:]
	return answer, nil
}

func (p *fakePrompter) Password(title string) (string, error) {
	p.calls = append(p.calls, "password")
	if len(p.passwords) == 0 {
		return "", errNoAnswer
	}
	answer := p.passwords[0]
	p.passwords = p.passwords[1:]
	return answer, nil
}

func (p *fakePrompter) MultiSelect(title string, choices []Choice) ([]string, error) {
	p.calls = append(p.calls, "multiselect")
	p.multiChoices = choices
	if len(p.multi) == 0 {
		return nil, errNoAnswer
	}
	answer := p.multi[0]
	p.multi = p.multi[1:]
	return answer, nil
}

func (p *fakePrompter) Confirm(title string) (bool, error) {
	p.calls = append(p.calls, "confirm")
	if len(p.confirms) == 0 {
		return false, errNoAnswer
	}
	answer := p.confirms[0]
	p.confirms = p.confirms[1:]
	return answer, nil
}

type fakeReporter struct {
	tracked   []string
	succeeded []string
	failed    []string
	info      []string
	warnings  []string
}

func (r *fakeReporter) Track(title string, action func() error) error {
	r.tracked = append(r.tracked, title)
	return action()
}

func (r *fakeReporter) Succeeded(message string) { r.succeeded = append(r.succeeded, message) }
func (r *fakeReporter) Failed(message string)    { r.failed = append(r.failed, message) }
func (r *fakeReporter) Info(message string)      { r.info = append(r.info, message) }
func (r *fakeReporter) Warn(message string)      { r.warnings = append(r.warnings, message) }

type fakeFetcher struct {
	credential string
	repos      []gitkit.Repository
	calls      []string
}

func (f *fakeFetcher) ListUserRepos(ctx context.Context, user string) []gitkit.Repository {
	f.calls = append(f.calls, "user:"+user)
	return f.repos
}

func (f *fakeFetcher) ListAuthenticatedUserRepos(ctx context.Context) []gitkit.Repository {
	f.calls = append(f.calls, "authenticated")
	return f.repos
}

func (f *fakeFetcher) ListOrgRepos(ctx context.Context, org string) []gitkit.Repository {
	f.calls = append(f.calls, "org:"+org)
	return f.repos
}

// newFetcherFor returns a NewFetcher that records the credential it was
// built with into fetcher.
func newFetcherFor(fetcher *fakeFetcher, built *int) NewFetcher {
	return func(credential string) (RepositoryFetcher, error) {
		*built++
		fetcher.credential = credential
		return fetcher, nil
	}
}

type cloneCall struct {
	remote    string
	localPath string
}

type fakeCloner struct {
	calls  []cloneCall
	failOn map[string]error
}

func (c *fakeCloner) Clone(ctx context.Context, remote *url.URL, localPath string) error {
	c.calls = append(c.calls, cloneCall{remote: remote.String(), localPath: localPath})
	if err, found := c.failOn[localPath]; found {
		return err
	}
	return nil
}

// staticConfig implements Config without the checks of NewConfig.
type staticConfig struct {
	scope      gitkit.Scope
	account    string
	credential *string
	orgScope   bool
}

func (c staticConfig) Platform() Platform  { return PlatformGitHub }
func (c staticConfig) Scope() gitkit.Scope { return c.scope }
func (c staticConfig) Account() string     { return c.account }
func (c staticConfig) OrgScope() bool      { return c.orgScope }
func (c staticConfig) Credential() (string, bool) {
	if c.credential == nil {
		return "", false
	}
	return *c.credential, true
}

func testRepos(owner string, names ...string) []gitkit.Repository {
	repos := make([]gitkit.Repository, 0, len(names))
	for i, name := range names {
		visibility := gitkit.VisibilityPublic
		if i%2 == 1 {
			visibility = gitkit.VisibilityPrivate
		}
		repos = append(repos, gitkit.NewRepo(name, visibility, fmt.Sprintf("https://github.com/%s/%s.git", owner, name)))
	}
	return repos
}

func names(repos []gitkit.Repository) []string {
	result := make([]string, 0, len(repos))
	for _, r := range repos {
		result = append(result, r.Name())
	}
	return result
}
