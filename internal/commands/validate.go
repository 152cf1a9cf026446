// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Fisheries and Oceans Canada

package commands

import (
	"fmt"
	"io/fs"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/dfo-mpo/DataPortal-Metadata/internal/assets"
	"github.com/dfo-mpo/DataPortal-Metadata/internal/codelist"
	"github.com/dfo-mpo/DataPortal-Metadata/internal/document"
	"github.com/dfo-mpo/DataPortal-Metadata/internal/mapping"
	"github.com/dfo-mpo/DataPortal-Metadata/internal/prompts"
	"github.com/dfo-mpo/DataPortal-Metadata/internal/vocab"
)

func registerValidateCmd(parent *cobra.Command, verbose *bool) {
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Check the embedded mapping, vocabulary, register and templates",
		Long: `Load every embedded reference asset and cross-check them: each mapping
entry must parse, each vocabulary key a mapping references must exist, and
each language and spatial template variant must be present.`,
		Example: `  # Validate the embedded assets
  harvest validate`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(*verbose)
		},
	}
	parent.AddCommand(cmd)
}

func runValidate(verbose bool) error {
	log := newLogger(verbose)
	var problems []string

	m, err := mapping.Load(assets.FS(), assets.MappingPath)
	if err != nil {
		return fmt.Errorf("load mapping: %w", err)
	}

	v, err := vocab.Load(assets.FS(), assets.VocabularyPath, log)
	if err != nil {
		return fmt.Errorf("load vocabulary: %w", err)
	}

	reg, err := codelist.Load(assets.FS(), assets.RegisterPath)
	if err != nil {
		return fmt.Errorf("load codelist register: %w", err)
	}
	if len(reg.Classes()) == 0 {
		problems = append(problems, "codelist register defines no item classes")
	}

	for _, e := range m.Entries {
		if e.Vocab != "" && !v.Has(e.Vocab) {
			problems = append(problems, fmt.Sprintf("mapping target %s references unknown vocabulary key %q", e.Target.String(), e.Vocab))
		}
	}

	templates, err := assets.Templates()
	if err != nil {
		return fmt.Errorf("load templates: %w", err)
	}
	for _, lang := range []document.Language{document.English, document.French} {
		for _, spatial := range []bool{false, true} {
			name := document.TemplateName(lang, spatial)
			if _, err := fs.Stat(templates, name); err != nil {
				problems = append(problems, fmt.Sprintf("missing template %s", name))
			}
		}
	}

	if len(problems) > 0 {
		prompts.PrintErrors(problems)
		return fmt.Errorf("%d problem(s) found", len(problems))
	}

	prompts.PrintResult([]prompts.ResultField{
		{Label: "Mapping entries", Value: strconv.Itoa(len(m.Entries))},
		{Label: "Vocabulary fields", Value: strconv.Itoa(len(v.Fields()))},
		{Label: "Codelist classes", Value: strconv.Itoa(len(reg.Classes()))},
	}, "All reference assets valid")
	return nil
}
