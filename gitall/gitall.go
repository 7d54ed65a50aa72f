// Package gitall lists the repositories of a hosting platform account,
// lets the user pick some and clones them.
package gitall

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/supply-chain-tools/gitall/gitkit"
)

var ErrCloneFailures = errors.New("some repositories failed to clone")

type Dependencies struct {
	Prompter   Prompter
	Reporter   Reporter
	NewFetcher NewFetcher
	Cloner     gitkit.Cloner
	// CredentialSource replaces the masked credential prompt when set.
	CredentialSource CredentialSource
}

// Run executes prompt, fetch, selection and clone in that order. Invalid
// input and an empty listing end the run with a message and a nil error.
// ErrCloneFailures is returned when at least one clone failed.
func Run(ctx context.Context, deps Dependencies, opts Options) error {
	cfg, err := PromptConfig(deps.Prompter, deps.CredentialSource)
	if err != nil {
		if errors.Is(err, ErrAccountRequired) || errors.Is(err, ErrCredentialRequired) {
			deps.Reporter.Failed(capitalize(err.Error()))
			return nil
		}
		return err
	}

	slog.Debug("configuration complete", "platform", cfg.Platform(), "scope", cfg.Scope(),
		"account", cfg.Account(), "orgScope", cfg.OrgScope())

	repos, err := FetchRepositories(ctx, deps.NewFetcher, cfg)
	if err != nil {
		return err
	}

	if len(repos) == 0 {
		deps.Reporter.Failed("No repositories found")
		return nil
	}

	selected, err := SelectRepositories(deps.Prompter, repos)
	if err != nil {
		return err
	}

	deps.Reporter.Info(fmt.Sprintf("Total repositories to clone: %d", len(selected)))

	destination := opts.Destination
	if destination == "" {
		destination = DefaultDestination
	}

	credential, _ := cfg.Credential()
	report := CloneAll(ctx, deps.Cloner, selected, credential, destination, deps.Reporter)

	if opts.ManifestPath != "" {
		if err := WriteManifest(opts.ManifestPath, BuildManifest(cfg, report)); err != nil {
			return err
		}
		deps.Reporter.Info(fmt.Sprintf("Manifest written to %s", opts.ManifestPath))
	}

	failed := len(report.Failed())
	if failed > 0 {
		deps.Reporter.Warn(fmt.Sprintf("Cloned %d of %d repositories, %d failed", len(report.Succeeded()), len(report.Results), failed))
		return fmt.Errorf("%w: %d of %d", ErrCloneFailures, failed, len(report.Results))
	}

	deps.Reporter.Succeeded("All repositories cloned successfully")
	return nil
}

func capitalize(s string) string {
	if s == "" || s[0] < 'a' || s[0] > 'z' {
		return s
	}
	return string(s[0]-'a'+'A') + s[1:]
}
