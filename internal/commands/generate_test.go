// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Fisheries and Oceans Canada

package commands

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dfo-mpo/DataPortal-Metadata/internal/config"
	"github.com/dfo-mpo/DataPortal-Metadata/internal/document"
)

func TestResolveConfig(t *testing.T) {
	noEnv := func(string) string { return "" }

	t.Run("flag wins over env var", func(t *testing.T) {
		opts := &generateOptions{env: "dev"}
		cfg, err := resolveConfig(opts, func(k string) string {
			if k == config.EnvVar {
				return "uat"
			}
			return ""
		})
		require.NoError(t, err)
		assert.Equal(t, "dev", cfg.Environment)
	})

	t.Run("env var fills environment", func(t *testing.T) {
		opts := &generateOptions{}
		cfg, err := resolveConfig(opts, func(k string) string {
			if k == config.EnvVar {
				return "dev"
			}
			return ""
		})
		require.NoError(t, err)
		assert.Equal(t, "dev", cfg.Environment)
	})

	t.Run("endpoint override bypasses environment table", func(t *testing.T) {
		opts := &generateOptions{endpoint: "http://localhost:9999/harvest"}
		cfg, err := resolveConfig(opts, noEnv)
		require.NoError(t, err)

		url, err := cfg.ResolveEndpoint()
		require.NoError(t, err)
		assert.Equal(t, "http://localhost:9999/harvest", url)
	})

	t.Run("strategy defaults", func(t *testing.T) {
		opts := &generateOptions{env: "uat"}
		cfg, err := resolveConfig(opts, noEnv)
		require.NoError(t, err)
		assert.Equal(t, document.DefaultStrategy, cfg.Strategy)

		opts = &generateOptions{env: "uat", strategy: "construct"}
		cfg, err = resolveConfig(opts, noEnv)
		require.NoError(t, err)
		assert.Equal(t, "construct", cfg.Strategy)
	})

	t.Run("unknown environment rejected", func(t *testing.T) {
		opts := &generateOptions{env: "prod"}
		_, err := resolveConfig(opts, noEnv)
		assert.ErrorIs(t, err, config.ErrUnknownEnvironment)
	})
}

func TestNewRootCmd(t *testing.T) {
	root := NewRootCmd(func(string) string { return "" })

	var names []string
	for _, c := range root.Commands() {
		names = append(names, c.Name())
	}
	assert.Contains(t, names, "generate")
	assert.Contains(t, names, "validate")
	assert.Contains(t, names, "version")
}
