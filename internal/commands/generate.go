// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Fisheries and Oceans Canada

package commands

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/dfo-mpo/DataPortal-Metadata/internal/assets"
	"github.com/dfo-mpo/DataPortal-Metadata/internal/codelist"
	"github.com/dfo-mpo/DataPortal-Metadata/internal/config"
	"github.com/dfo-mpo/DataPortal-Metadata/internal/document"
	"github.com/dfo-mpo/DataPortal-Metadata/internal/harvest"
	"github.com/dfo-mpo/DataPortal-Metadata/internal/mapping"
	"github.com/dfo-mpo/DataPortal-Metadata/internal/prompts"
	"github.com/dfo-mpo/DataPortal-Metadata/internal/vocab"
)

type generateOptions struct {
	env      string
	endpoint string
	output   string
	strategy string
	cfgFile  string
	timeout  time.Duration
	yes      bool
}

func registerGenerateCmd(parent *cobra.Command, getenv func(string) string, verbose *bool) {
	opts := &generateOptions{}

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Harvest records and generate metadata documents",
		Long: fmt.Sprintf(`Fetch all dataset records from the portal harvest API and write one
bilingual XML metadata document per record.

Available strategies: %s`, strings.Join(document.Available(), ", ")),
		Example: `  # Interactive environment selection
  harvest generate

  # Harvest UAT into ./output
  harvest generate --env uat

  # Harvest a local endpoint without prompting
  harvest generate --endpoint http://localhost:8815/api/portal/dataset/harvest --yes

  # Build documents from scratch instead of patching the templates
  harvest generate --env dev --strategy construct`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd, opts, getenv, *verbose)
		},
	}

	cmd.Flags().StringVarP(&opts.env, "env", "e", "", fmt.Sprintf("Target environment (%s)", strings.Join(config.Environments(), ", ")))
	cmd.Flags().StringVar(&opts.endpoint, "endpoint", "", "Harvest API URL (overrides --env)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "Output directory (default \"output\")")
	cmd.Flags().StringVarP(&opts.strategy, "strategy", "s", "", fmt.Sprintf("Materialization strategy (%s)", strings.Join(document.Available(), ", ")))
	cmd.Flags().StringVarP(&opts.cfgFile, "config", "c", "", fmt.Sprintf("Config file (default \"%s\" if present)", config.ConfigFileName))
	cmd.Flags().DurationVar(&opts.timeout, "timeout", 30*time.Second, "HTTP request timeout")
	cmd.Flags().BoolVarP(&opts.yes, "yes", "y", false, "Skip the confirmation prompt")

	parent.AddCommand(cmd)
}

func runGenerate(cmd *cobra.Command, opts *generateOptions, getenv func(string) string, verbose bool) error {
	log := newLogger(verbose)

	cfg, err := resolveConfig(opts, getenv)
	if err != nil {
		return err
	}

	endpoint, err := cfg.ResolveEndpoint()
	if err != nil {
		return err
	}

	if !opts.yes {
		confirmed, err := prompts.RunConfirmHarvest(endpoint)
		if err != nil {
			return err
		}
		if !confirmed {
			return fmt.Errorf("harvest cancelled")
		}
	}

	h, err := newHarvester(cfg, endpoint, opts.timeout, log)
	if err != nil {
		return err
	}

	summary, err := h.Run(cmd.Context())
	if err != nil {
		return err
	}

	prompts.PrintResult([]prompts.ResultField{
		{Label: "Environment", Value: cfg.Environment},
		{Label: "Records", Value: strconv.Itoa(summary.Total)},
		{Label: "Written", Value: strconv.Itoa(summary.Written)},
		{Label: "Failed", Value: strconv.Itoa(summary.Failed)},
		{Label: "Output", Value: cfg.OutputDir},
	}, "Harvest complete")

	if summary.Failed > 0 {
		return fmt.Errorf("%d record(s) failed", summary.Failed)
	}
	return nil
}

// resolveConfig merges the config file, flags, environment variables, and
// defaults, prompting for the environment when nothing names one.
func resolveConfig(opts *generateOptions, getenv func(string) string) (*config.Config, error) {
	var cfg *config.Config
	var err error
	if opts.cfgFile != "" {
		cfg, err = config.Load(opts.cfgFile)
	} else {
		cfg, err = config.LoadOptional()
	}
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	if opts.env != "" {
		cfg.Environment = opts.env
	}
	if opts.endpoint != "" {
		cfg.Endpoint = opts.endpoint
	}
	if opts.output != "" {
		cfg.OutputDir = opts.output
	}
	if opts.strategy != "" {
		cfg.Strategy = opts.strategy
	}

	if cfg.Environment == "" && cfg.Endpoint == "" && getenv(config.EnvVar) == "" {
		selected, err := prompts.RunEnvironmentSelect(config.Environments())
		if err != nil {
			return nil, err
		}
		cfg.Environment = selected
	}

	cfg.ApplyDefaults(getenv)
	if cfg.Strategy == "" {
		cfg.Strategy = document.DefaultStrategy
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// newHarvester loads the embedded reference data and wires the harvester.
func newHarvester(cfg *config.Config, endpoint string, timeout time.Duration, log zerolog.Logger) (*harvest.Harvester, error) {
	m, err := mapping.Load(assets.FS(), assets.MappingPath)
	if err != nil {
		return nil, fmt.Errorf("load mapping: %w", err)
	}
	v, err := vocab.Load(assets.FS(), assets.VocabularyPath, log)
	if err != nil {
		return nil, fmt.Errorf("load vocabulary: %w", err)
	}
	reg, err := codelist.Load(assets.FS(), assets.RegisterPath)
	if err != nil {
		return nil, fmt.Errorf("load codelist register: %w", err)
	}
	templates, err := assets.Templates()
	if err != nil {
		return nil, fmt.Errorf("load templates: %w", err)
	}
	strategy, err := document.Get(cfg.Strategy)
	if err != nil {
		return nil, err
	}

	return &harvest.Harvester{
		Client:    harvest.NewClient(timeout),
		Endpoint:  endpoint,
		Strategy:  strategy,
		Mapping:   m,
		Vocab:     v,
		Registry:  reg,
		Templates: templates,
		OutputDir: cfg.OutputDir,
		Log:       log,
	}, nil
}
