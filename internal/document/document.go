// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Fisheries and Oceans Canada

// Package document materializes ISO metadata documents from portal records.
//
// A materialization strategy consumes a source record, the mapping table,
// the controlled vocabulary, and the codelist registry, and produces one
// completed document tree per record. Two strategies exist: "patch", which
// populates a pre-authored schema-valid template, and "construct", which
// builds the tree from an empty root. Patch is the default; its template
// fallback on codelist misses is the stronger guarantee.
package document

import (
	"fmt"
	"io/fs"
	"sort"
	"strings"
	"time"

	"github.com/beevik/etree"
	"github.com/rs/zerolog"

	"github.com/dfo-mpo/DataPortal-Metadata/internal/codelist"
	"github.com/dfo-mpo/DataPortal-Metadata/internal/mapping"
	"github.com/dfo-mpo/DataPortal-Metadata/internal/record"
	"github.com/dfo-mpo/DataPortal-Metadata/internal/vocab"
)

// LanguageSource is the record path that determines the document language.
const LanguageSource = "edhProfile.language"

// SpatialSource is the record path whose presence selects the spatial
// template variant.
const SpatialSource = "spatialType"

// Language is the document's base language.
type Language string

// Supported document languages.
const (
	English Language = "en"
	French  Language = "fr"
)

// DetectLanguage reads the designated language field from the record. Any
// value with a "fr" prefix (case-insensitive) selects French; anything
// else, including an absent value, falls back to English.
func DetectLanguage(r record.Record) Language {
	raw := strings.ToLower(strings.TrimSpace(r.String(LanguageSource)))
	if strings.HasPrefix(raw, "fr") {
		return French
	}
	return English
}

// SecondaryLocale returns the locale reference written on secondary-locale
// text: French documents carry English secondaries and vice versa.
func (l Language) SecondaryLocale() string {
	if l == French {
		return "#eng"
	}
	return "#fra"
}

// BuildParams carries everything a strategy needs for one record. The
// mapping, vocabulary, registry, and template filesystem are shared
// read-only state; the strategy owns the tree it returns.
type BuildParams struct {
	Record   record.Record
	RecordID string

	Mapping  *mapping.Mapping
	Vocab    *vocab.Table
	Registry *codelist.Registry

	// Templates holds the skeleton documents (patch strategy only).
	Templates fs.FS

	Log zerolog.Logger

	// Now supplies the generation timestamp; defaults to time.Now.
	Now func() time.Time
}

func (p *BuildParams) now() time.Time {
	if p.Now != nil {
		return p.Now()
	}
	return time.Now()
}

// Strategy materializes one document per record.
type Strategy interface {
	// Name returns the strategy identifier ("patch", "construct").
	Name() string

	// Build produces a completed document for one record. A single
	// unresolvable field never fails the build; only a missing template
	// skeleton does.
	Build(p BuildParams) (*etree.Document, error)
}

var strategies = make(map[string]Strategy)

// Register adds a strategy to the registry.
func Register(s Strategy) {
	strategies[s.Name()] = s
}

// Get retrieves a strategy by name.
func Get(name string) (Strategy, error) {
	s, ok := strategies[name]
	if !ok {
		return nil, fmt.Errorf("unknown strategy: %s", name)
	}
	return s, nil
}

// Available returns all registered strategy names, sorted.
func Available() []string {
	names := make([]string, 0, len(strategies))
	for name := range strategies {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// DefaultStrategy is the strategy used when none is configured.
const DefaultStrategy = "patch"

// resolveEntry resolves a mapping entry's primary and secondary values for
// one record: literal overrides first, then source-path resolution, then
// vocabulary normalization. The primary/secondary roles already reflect the
// document language (see Entry.Sources).
func resolveEntry(e *mapping.Entry, p *BuildParams, french bool) (primary, secondary any) {
	litPrimary, litSecondary := e.Literals(french)
	srcPrimary, srcSecondary := e.Sources(french)

	if litPrimary != "" {
		primary = litPrimary
	} else {
		primary = p.Record.Resolve(srcPrimary, nil)
	}
	if litSecondary != "" {
		secondary = litSecondary
	} else if srcSecondary != "" {
		secondary = p.Record.Resolve(srcSecondary, nil)
	}

	if e.Vocab != "" {
		primary = p.Vocab.Normalize(e.Vocab, primary)
		if secondary != nil {
			secondary = p.Vocab.Normalize(e.Vocab, secondary)
		}
	}
	return primary, secondary
}

// alignSecondary shapes a repeat entry's secondary value against n primary
// instances: a list is used per index (shorter lists leave later instances
// without secondary text), a scalar is broadcast, an empty value yields
// none.
func alignSecondary(secondary any, n int) []string {
	out := make([]string, n)
	switch s := secondary.(type) {
	case []any:
		for i := 0; i < n && i < len(s); i++ {
			out[i] = record.Text(s[i])
		}
	default:
		if !record.IsEmpty(secondary) {
			text := record.Text(secondary)
			for i := range out {
				out[i] = text
			}
		}
	}
	return out
}
