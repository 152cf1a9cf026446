// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Fisheries and Oceans Canada

package prompts

import (
	"fmt"

	"github.com/charmbracelet/huh"
)

// RunEnvironmentSelect prompts for a target portal environment.
func RunEnvironmentSelect(environments []string) (string, error) {
	options := make([]huh.Option[string], len(environments))
	for i, env := range environments {
		options[i] = huh.NewOption(env, env)
	}

	var selected string
	if err := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Target environment").
				Options(options...).
				Value(&selected),
		),
	).WithTheme(Theme()).Run(); err != nil {
		return "", err
	}
	return selected, nil
}

// RunConfirmHarvest asks for confirmation before hitting a live endpoint.
func RunConfirmHarvest(endpoint string) (bool, error) {
	var confirmed bool
	if err := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(fmt.Sprintf("Harvest from %s?", endpoint)).
				Description("Writes one XML document per record").
				Affirmative("Yes").
				Negative("No").
				Value(&confirmed),
		),
	).WithTheme(Theme()).Run(); err != nil {
		return false, err
	}
	return confirmed, nil
}
