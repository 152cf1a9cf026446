// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Fisheries and Oceans Canada

package document

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeDate(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "2025-11-19T20:55:54+00:00", want: "2025-11-19"},
		{in: "2025-11-19T20:55:54Z", want: "2025-11-19"},
		{in: "2025-11-19", want: "2025-11-19"},
		{in: "not a date", want: "not a date"},
		{in: "", want: ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, normalizeDate(tt.in), "input %q", tt.in)
	}
}

func TestNormalizeSpatialCode(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "EPSG-4326", want: "EPSG:4326"},
		{in: "SR-ORG-6864", want: "SR-ORG:6864"},
		{in: "EPSG:4326", want: "EPSG:4326"},
		{in: "NAD83", want: "NAD83"},
		{in: "", want: ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, normalizeSpatialCode(tt.in), "input %q", tt.in)
	}
}
