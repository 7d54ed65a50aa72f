package gitall

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/supply-chain-tools/gitall/gitkit"
)

// Reporter renders progress to the user.
type Reporter interface {
	// Track shows a spinner titled title while action runs and returns the
	// action's error.
	Track(title string, action func() error) error
	Succeeded(message string)
	Failed(message string)
	Info(message string)
	Warn(message string)
}

type CloneResult struct {
	Repository gitkit.Repository
	LocalPath  string
	Err        error
}

type CloneReport struct {
	Results []CloneResult
}

func (r CloneReport) Succeeded() []CloneResult {
	return r.filter(func(result CloneResult) bool { return result.Err == nil })
}

func (r CloneReport) Failed() []CloneResult {
	return r.filter(func(result CloneResult) bool { return result.Err != nil })
}

func (r CloneReport) filter(keep func(CloneResult) bool) []CloneResult {
	results := make([]CloneResult, 0, len(r.Results))
	for _, result := range r.Results {
		if keep(result) {
			results = append(results, result)
		}
	}
	return results
}

// CloneAll clones repos one at a time into destination/<name>. A failed clone
// is reported and the next repository is attempted; nothing is retried or
// rolled back.
func CloneAll(ctx context.Context,
	cloner gitkit.Cloner,
	repos []gitkit.Repository,
	credential string,
	destination string,
	reporter Reporter) CloneReport {

	report := CloneReport{Results: make([]CloneResult, 0, len(repos))}

	for _, repo := range repos {
		result := CloneResult{Repository: repo}

		result.Err = reporter.Track(fmt.Sprintf("Cloning %s...", repo.Name()), func() error {
			localPath, err := gitkit.LocalPath(destination, repo.Name())
			if err != nil {
				return err
			}
			result.LocalPath = localPath

			remote, err := gitkit.AuthenticatedURL(repo.CloneURL(), credential)
			if err != nil {
				return err
			}

			return cloner.Clone(ctx, remote, localPath)
		})

		if result.Err != nil {
			slog.Debug("clone failed", "repo", repo.Name(), "error", result.Err)
			reporter.Failed(fmt.Sprintf("Failed to clone %s: %v", repo.Name(), result.Err))
		} else {
			reporter.Succeeded(fmt.Sprintf("Successfully cloned %s", repo.Name()))
		}

		report.Results = append(report.Results, result)
	}

	return report
}
