package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"github.com/supply-chain-tools/gitall/gitall"
	"github.com/supply-chain-tools/gitall/gitkit"
	"github.com/supply-chain-tools/gitall/prompt"
	"github.com/supply-chain-tools/gitall/ui"
)

const long = `Interactively pick a GitHub account, choose which of its repositories to
download and clone them into a local directory.

Environment Variables:
  GITHUB_API_URL  GitHub API base URL (optional, for GitHub Enterprise)

Notes:
  Listing 'all' or 'private' repositories needs a personal access token. It is
  asked for with a masked prompt, or taken from 'gh auth token' with --gh-auth.
  Authenticated listings return at most the first 100 repositories.

Examples:
  Clone into ./repos:
    $ gitall

  Clone with the git binary and write a manifest:
    $ gitall --backend git --manifest repos/manifest.yaml`

type flags struct {
	destination string
	backend     string
	apiURL      string
	manifest    string
	ghAuth      bool
	accessible  bool
	debug       bool
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	f := &flags{}

	cmd := &cobra.Command{
		Use:           "gitall",
		Short:         "Select and clone repositories of a GitHub account",
		Long:          long,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			err := run(cmd, f)
			if err != nil && !errors.Is(err, gitall.ErrCloneFailures) {
				fmt.Fprintf(cmd.ErrOrStderr(), "error: %v\n", err)
			}
			return err
		},
	}

	cmd.Flags().StringVar(&f.destination, "dest", gitall.DefaultDestination, "directory to clone repositories into")
	cmd.Flags().StringVar(&f.backend, "backend", string(gitkit.BackendGoGit), "clone backend: 'go-git' or 'git'")
	cmd.Flags().StringVar(&f.apiURL, "api-url", os.Getenv("GITHUB_API_URL"), "GitHub API base URL")
	cmd.Flags().StringVar(&f.manifest, "manifest", "", "write a YAML manifest of cloned repositories to this path")
	cmd.Flags().BoolVar(&f.ghAuth, "gh-auth", false, "use GitHub CLI for authentication")
	cmd.Flags().BoolVar(&f.accessible, "accessible", false, "use plain line based prompts")
	cmd.Flags().BoolVar(&f.debug, "debug", false, "enable debug logging")

	return cmd
}

func run(cmd *cobra.Command, f *flags) error {
	logLevel := slog.LevelInfo
	if f.debug {
		logLevel = slog.LevelDebug
	}

	logOptions := &slog.HandlerOptions{
		Level: logLevel,
	}
	logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), logOptions))
	slog.SetDefault(logger)

	interactive := isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())

	var progress io.Writer
	if f.debug {
		progress = cmd.ErrOrStderr()
	}

	cloner, err := gitkit.NewCloner(gitkit.Backend(f.backend), progress)
	if err != nil {
		return err
	}

	var credentialSource gitall.CredentialSource
	if f.ghAuth {
		credentialSource = getTokenFromCLI
	}

	console := ui.NewConsole(cmd.OutOrStdout(), interactive)
	console.Banner("gitall")

	deps := gitall.Dependencies{
		Prompter:         prompt.New(f.accessible || !interactive),
		Reporter:         console,
		NewFetcher:       newFetcher(f.apiURL),
		Cloner:           cloner,
		CredentialSource: credentialSource,
	}

	return gitall.Run(cmd.Context(), deps, gitall.Options{
		Destination:  f.destination,
		ManifestPath: f.manifest,
	})
}

func newFetcher(apiURL string) gitall.NewFetcher {
	return func(credential string) (gitall.RepositoryFetcher, error) {
		if apiURL != "" {
			slog.Debug("Using GitHub API", "url", apiURL)
			client, err := gitkit.NewGitHubClientWithBaseURL(nil, apiURL, credential)
			if err != nil {
				return nil, err
			}
			return client, nil
		}

		if credential == "" {
			slog.Debug("Using unauthenticated client")
			return gitkit.NewGitHubClient(), nil
		}

		slog.Debug("Using authenticated client")
		return gitkit.NewAuthenticatedGitHubClient(credential), nil
	}
}

func getTokenFromCLI() (string, error) {
	cmd := exec.Command("gh", "auth", "token")
	output, err := cmd.CombinedOutput()
	if err != nil {
		return "", fmt.Errorf("error executing GitHub CLI `gh auth token`: %s, details: %w", strings.TrimSpace(string(output)), err)
	}
	return strings.TrimSpace(string(output)), nil
}
