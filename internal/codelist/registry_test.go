// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Fisheries and Oceans Canada

package codelist

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadTestRegistry(t *testing.T) *Registry {
	t.Helper()
	reg, err := Load(os.DirFS("testdata"), "register.xml")
	require.NoError(t, err)
	return reg
}

func TestRegistry_Resolve(t *testing.T) {
	reg := loadTestRegistry(t)

	tests := []struct {
		name     string
		classRef string
		display  string
		want     string
		wantOK   bool
	}{
		{
			name:     "bilingual display text",
			classRef: "http://nap.geogratis.gc.ca/metadata/register/napMetadataRegister.xml#IC_106",
			display:  "onGoing; enContinue",
			want:     "RI_602",
			wantOK:   true,
		},
		{
			name:     "bare token",
			classRef: "#IC_106",
			display:  "completed",
			want:     "RI_593",
			wantOK:   true,
		},
		{
			name:     "token is trimmed",
			classRef: "#IC_90",
			display:  "  pointOfContact  ; contact",
			want:     "RI_414",
			wantOK:   true,
		},
		{
			name:     "case sensitive match",
			classRef: "#IC_106",
			display:  "ongoing; enContinue",
			wantOK:   false,
		},
		{
			name:     "no fragment in reference",
			classRef: "IC_106",
			display:  "onGoing",
			wantOK:   false,
		},
		{
			name:     "unknown class",
			classRef: "#IC_404",
			display:  "onGoing",
			wantOK:   false,
		},
		{
			name:     "unknown display text",
			classRef: "#IC_106",
			display:  "paused; enPause",
			wantOK:   false,
		},
		{
			name:     "empty display text",
			classRef: "#IC_106",
			display:  "",
			wantOK:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := reg.Resolve(tt.classRef, tt.display)
			require.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRegistry_Resolve_Deterministic(t *testing.T) {
	reg := loadTestRegistry(t)

	first, ok1 := reg.Resolve("#IC_106", "onGoing; enContinue")
	second, ok2 := reg.Resolve("#IC_106", "onGoing; enContinue")
	assert.Equal(t, first, second)
	assert.Equal(t, ok1, ok2)
}

func TestRegistry_Resolve_DanglingItemRef(t *testing.T) {
	reg := loadTestRegistry(t)

	// RI_999 is referenced by IC_106 but not defined; it must simply be
	// absent rather than poisoning the class table.
	_, ok := reg.Resolve("#IC_106", "")
	assert.False(t, ok)
	assert.Contains(t, reg.Classes(), "IC_106")
}

func TestParse_Malformed(t *testing.T) {
	_, err := Parse([]byte("not xml at all <"))
	assert.Error(t, err)
}

func TestLoad_Missing(t *testing.T) {
	_, err := Load(os.DirFS("testdata"), "nonexistent.xml")
	assert.Error(t, err)
}
