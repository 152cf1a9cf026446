// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Fisheries and Oceans Canada

// Package vocab normalizes controlled-vocabulary values.
//
// Source records carry inconsistent casing and spacing for fields that must
// end up as ISO codelist display strings. The table maps raw values, matched
// case- and whitespace-insensitively, to their canonical bilingual form
// (e.g. "Ongoing" -> "onGoing; enContinue"). A value with no table entry
// passes through unchanged so a single bad term never aborts a build.
package vocab

import (
	"fmt"
	"io/fs"
	"strings"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"github.com/dfo-mpo/DataPortal-Metadata/internal/record"
)

// Table is the controlled vocabulary, keyed by mapping field key.
// Raw-value keys are lowercased and trimmed once at load; the Table is
// read-only afterwards and safe for concurrent use.
type Table struct {
	fields map[string]map[string]string
	log    zerolog.Logger
}

// Load reads a vocabulary table from a YAML file in fsys. The file maps
// field keys to {raw value: canonical value} tables.
func Load(fsys fs.FS, path string, log zerolog.Logger) (*Table, error) {
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("read vocabulary: %w", err)
	}

	var raw map[string]map[string]string
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse vocabulary: %w", err)
	}
	return New(raw, log), nil
}

// New builds a Table from an in-memory vocabulary, pre-normalizing every
// raw-value key for case-insensitive matching.
func New(raw map[string]map[string]string, log zerolog.Logger) *Table {
	fields := make(map[string]map[string]string, len(raw))
	for field, entries := range raw {
		m := make(map[string]string, len(entries))
		for k, v := range entries {
			m[strings.ToLower(strings.TrimSpace(k))] = v
		}
		fields[field] = m
	}
	return &Table{fields: fields, log: log}
}

// Normalize canonicalizes rawValue for the given field key.
//
// The input shape is preserved: a list yields a list, a scalar a scalar.
// An empty input returns an empty value of matching shape. An unknown field
// key returns rawValue untouched. Per item, a miss falls back to the
// original value; the miss is logged because unmapped terms reach the
// output verbatim and may carry an invalid code downstream.
func (t *Table) Normalize(field string, rawValue any) any {
	if record.IsEmpty(rawValue) {
		if _, isList := rawValue.([]any); isList {
			return []any{}
		}
		return ""
	}

	entries, ok := t.fields[field]
	if !ok {
		return rawValue
	}

	if items, isList := rawValue.([]any); isList {
		normalized := make([]any, len(items))
		for i, item := range items {
			normalized[i] = t.normalizeOne(field, entries, item)
		}
		return normalized
	}
	return t.normalizeOne(field, entries, rawValue)
}

func (t *Table) normalizeOne(field string, entries map[string]string, item any) any {
	key := strings.ToLower(strings.TrimSpace(record.Text(item)))
	if canonical, ok := entries[key]; ok {
		return canonical
	}
	t.log.Warn().
		Str("event", "vocab.miss").
		Str("field", field).
		Str("value", record.Text(item)).
		Msg("no vocabulary entry, passing value through")
	return item
}

// Fields returns the field keys present in the table, for validation.
func (t *Table) Fields() []string {
	keys := make([]string, 0, len(t.fields))
	for k := range t.fields {
		keys = append(keys, k)
	}
	return keys
}

// Has reports whether the table defines the given field key.
func (t *Table) Has(field string) bool {
	_, ok := t.fields[field]
	return ok
}
