package gitall

import (
	"fmt"

	"github.com/supply-chain-tools/gitall/gitkit"
	"github.com/supply-chain-tools/gitall/hashset"
)

// allRepositories is the value of the synthetic "All repositories" choice.
// It can not collide with a clone URL.
const allRepositories = "*"

// SelectRepositories shows repos as a multi-select with an extra "All
// repositories" item and returns the chosen ones in fetched order.
func SelectRepositories(p Prompter, repos []gitkit.Repository) ([]gitkit.Repository, error) {
	choices := make([]Choice, 0, len(repos)+1)
	choices = append(choices, Choice{Label: "All repositories", Value: allRepositories})
	for _, r := range repos {
		choices = append(choices, Choice{Label: choiceLabel(r), Value: r.CloneURL()})
	}

	chosen, err := p.MultiSelect("Select repositories to clone (space to select, enter to confirm)", choices)
	if err != nil {
		return nil, fmt.Errorf("unable to read repository selection: %w", err)
	}

	return Selected(repos, chosen), nil
}

// Selected resolves the chosen values against repos. Choosing "All
// repositories" selects every repository regardless of other choices.
func Selected(repos []gitkit.Repository, chosen []string) []gitkit.Repository {
	picked := hashset.New(chosen...)
	if picked.Contains(allRepositories) {
		return repos
	}

	result := make([]gitkit.Repository, 0, picked.Size())
	for _, r := range repos {
		if picked.Contains(r.CloneURL()) {
			result = append(result, r)
		}
	}

	return result
}

func choiceLabel(r gitkit.Repository) string {
	if r.Visibility() == gitkit.VisibilityUnknown {
		return r.Name()
	}
	return fmt.Sprintf("%s (%s)", r.Name(), r.Visibility())
}
