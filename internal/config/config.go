// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Fisheries and Oceans Canada

// Package config handles harvester run configuration.
package config

import (
	"errors"
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

// EnvVar selects the target environment when no flag is given.
const EnvVar = "HARVEST_ENV"

// ConfigFileName is the optional per-directory override file.
const ConfigFileName = "harvest.yaml"

// DefaultEnvironment is used when neither flag, file, nor environment
// variable names one.
const DefaultEnvironment = "uat"

// ErrUnknownEnvironment indicates an environment with no known endpoint.
var ErrUnknownEnvironment = errors.New("unknown environment")

// endpoints maps environment names to harvest API endpoints.
// PROD will be added once the portal publishes its endpoint.
var endpoints = map[string]string{
	"dev": "http://qc-cdos-css-1:8815/api/portal/dataset/harvest",
	"uat": "https://internet.dfo-mpo.gc.ca/pssi-issp/api/portal/dataset/harvest",
}

// Config is the resolved run configuration.
type Config struct {
	// Environment names the target portal environment (dev, uat).
	Environment string `yaml:"environment,omitempty"`

	// Endpoint overrides the environment's endpoint when set.
	Endpoint string `yaml:"endpoint,omitempty"`

	// OutputDir receives one XML file per harvested record.
	OutputDir string `yaml:"output,omitempty"`

	// Strategy names the materialization strategy ("patch", "construct").
	Strategy string `yaml:"strategy,omitempty"`
}

// Environments returns the known environment names, sorted.
func Environments() []string {
	names := make([]string, 0, len(endpoints))
	for name := range endpoints {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Load reads a Config from a file path.
func Load(path string) (*Config, error) {
	f, err := os.Open(path) //nolint:gosec // path is provided by caller
	if err != nil {
		return nil, err
	}
	defer f.Close() //nolint:errcheck

	var cfg Config
	if err := yaml.NewDecoder(f).Decode(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadOptional loads ConfigFileName from the current directory when it
// exists, and an empty Config otherwise.
func LoadOptional() (*Config, error) {
	if _, err := os.Stat(ConfigFileName); os.IsNotExist(err) {
		return &Config{}, nil
	}
	return Load(ConfigFileName)
}

// ApplyDefaults fills unset fields from the process environment and
// built-in defaults.
func (c *Config) ApplyDefaults(getenv func(string) string) {
	if c.Environment == "" {
		c.Environment = getenv(EnvVar)
	}
	if c.Environment == "" {
		c.Environment = DefaultEnvironment
	}
	if c.OutputDir == "" {
		c.OutputDir = "output"
	}
}

// Validate checks the configuration for usable values.
func (c *Config) Validate() error {
	if c.Endpoint != "" {
		return nil
	}
	if _, ok := endpoints[c.Environment]; !ok {
		return fmt.Errorf("%w: %q (must be one of %v)", ErrUnknownEnvironment, c.Environment, Environments())
	}
	return nil
}

// ResolveEndpoint returns the harvest API URL for this configuration.
func (c *Config) ResolveEndpoint() (string, error) {
	if c.Endpoint != "" {
		return c.Endpoint, nil
	}
	url, ok := endpoints[c.Environment]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownEnvironment, c.Environment)
	}
	return url, nil
}
