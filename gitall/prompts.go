package gitall

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/supply-chain-tools/gitall/gitkit"
)

type Choice struct {
	Label    string
	Value    string
	Disabled bool
}

// Prompter is the interactive terminal. Every call blocks until answered.
type Prompter interface {
	Select(title string, choices []Choice) (string, error)
	Input(title string) (string, error)
	Password(title string) (string, error)
	MultiSelect(title string, choices []Choice) ([]string, error)
	Confirm(title string) (bool, error)
}

// CredentialSource supplies the token without prompting, e.g. from the gh CLI.
type CredentialSource func() (string, error)

var platformChoices = []Choice{
	{Label: "GitHub", Value: string(PlatformGitHub)},
	{Label: "Bitbucket (not available)", Value: string(PlatformBitbucket), Disabled: true},
}

var scopeChoices = []Choice{
	{Label: "All repositories", Value: string(gitkit.ScopeAll)},
	{Label: "Public repositories", Value: string(gitkit.ScopePublic)},
	{Label: "Private repositories", Value: string(gitkit.ScopePrivate)},
}

// PromptConfig asks for platform, scope and account, then for a credential
// and the organization flag when the scope needs authentication. An empty
// account stops the sequence with ErrAccountRequired before anything else is
// asked. When source is nil the credential is read from a masked prompt.
func PromptConfig(p Prompter, source CredentialSource) (Config, error) {
	platform, err := p.Select("Select the platform", platformChoices)
	if err != nil {
		return nil, fmt.Errorf("unable to read platform: %w", err)
	}

	if !Platform(platform).Available() {
		return nil, fmt.Errorf("platform '%s' is not available", platform)
	}

	scopeAnswer, err := p.Select("Select the repository type", scopeChoices)
	if err != nil {
		return nil, fmt.Errorf("unable to read repository type: %w", err)
	}

	scope, err := gitkit.ParseScope(scopeAnswer)
	if err != nil {
		return nil, err
	}

	accountAnswer, err := p.Input("Enter the GitHub username or organization name")
	if err != nil {
		return nil, fmt.Errorf("unable to read account: %w", err)
	}

	account, err := gitkit.NormalizeAccount(accountAnswer)
	if err != nil {
		if errors.Is(err, gitkit.ErrEmptyAccount) {
			return nil, ErrAccountRequired
		}
		return nil, fmt.Errorf("%w: %v", ErrAccountRequired, err)
	}

	if !scope.RequiresCredential() {
		return NewConfig(Platform(platform), scope, account, nil, false)
	}

	var credential string
	if source != nil {
		credential, err = source()
		if err != nil {
			return nil, fmt.Errorf("unable to get credential: %w", err)
		}
		slog.Debug("using credential from credential source")
	} else {
		credential, err = p.Password("Enter the personal access token")
		if err != nil {
			return nil, fmt.Errorf("unable to read credential: %w", err)
		}
	}

	if strings.TrimSpace(credential) == "" {
		return nil, ErrCredentialRequired
	}

	orgScope, err := p.Confirm("Download only organization repositories?")
	if err != nil {
		return nil, fmt.Errorf("unable to read organization flag: %w", err)
	}

	return NewConfig(Platform(platform), scope, account, &credential, orgScope)
}
