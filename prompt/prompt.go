// Package prompt implements gitall.Prompter on top of huh.
package prompt

import (
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/supply-chain-tools/gitall/gitall"
)

type Terminal struct {
	accessible bool
}

var _ gitall.Prompter = (*Terminal)(nil)

// New returns a prompter. Accessible mode replaces the interactive widgets
// with plain line based prompts, for screen readers and dumb terminals.
func New(accessible bool) *Terminal {
	return &Terminal{accessible: accessible}
}

func (t *Terminal) Select(title string, choices []gitall.Choice) (string, error) {
	var value string

	err := huh.NewForm(huh.NewGroup(
		huh.NewSelect[string]().
			Title(title).
			Options(options(choices)...).
			Validate(rejectDisabled(choices)).
			Value(&value),
	)).WithAccessible(t.accessible).Run()
	if err != nil {
		return "", err
	}

	return value, nil
}

func (t *Terminal) Input(title string) (string, error) {
	var value string

	err := huh.NewForm(huh.NewGroup(
		huh.NewInput().
			Title(title).
			Value(&value),
	)).WithAccessible(t.accessible).Run()
	if err != nil {
		return "", err
	}

	return value, nil
}

func (t *Terminal) Password(title string) (string, error) {
	var value string

	err := huh.NewForm(huh.NewGroup(
		huh.NewInput().
			Title(title).
			EchoMode(huh.EchoModePassword).
			Value(&value),
	)).WithAccessible(t.accessible).Run()
	if err != nil {
		return "", err
	}

	return value, nil
}

// MultiSelect asks for any number of choices.
// Use Space to toggle, Enter to confirm
func (t *Terminal) MultiSelect(title string, choices []gitall.Choice) ([]string, error) {
	var values []string

	err := huh.NewForm(huh.NewGroup(
		huh.NewMultiSelect[string]().
			Title(title).
			Description("Use ↑/↓ to navigate, Space to select, Enter to confirm").
			Options(options(choices)...).
			Value(&values),
	)).WithAccessible(t.accessible).Run()
	if err != nil {
		return nil, err
	}

	return values, nil
}

func (t *Terminal) Confirm(title string) (bool, error) {
	var value bool

	err := huh.NewForm(huh.NewGroup(
		huh.NewConfirm().
			Title(title).
			Affirmative("Yes").
			Negative("No").
			Value(&value),
	)).WithAccessible(t.accessible).Run()
	if err != nil {
		return false, err
	}

	return value, nil
}

func options(choices []gitall.Choice) []huh.Option[string] {
	opts := make([]huh.Option[string], len(choices))
	for i, c := range choices {
		opts[i] = huh.NewOption(c.Label, c.Value)
	}
	return opts
}

// rejectDisabled turns disabled choices into a validation error since huh
// has no disabled options.
func rejectDisabled(choices []gitall.Choice) func(string) error {
	return func(value string) error {
		for _, c := range choices {
			if c.Value == value && c.Disabled {
				return fmt.Errorf("%s is not available", c.Label)
			}
		}
		return nil
	}
}
