// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Fisheries and Oceans Canada

// Package mapping loads and validates the field-to-document mapping table.
//
// Each entry declares where a value is read from a source record and where
// it lands in the output document. Entries are configuration: they are
// parsed and validated once at startup and never mutated afterwards.
package mapping

import (
	"errors"
	"fmt"
	"io/fs"

	"gopkg.in/yaml.v3"
)

var (
	// ErrBadTarget indicates a target location that could not be parsed.
	ErrBadTarget = errors.New("invalid target location")

	// ErrRepeatNotInTarget indicates a repeat entry whose repeat segment
	// does not appear in its own target location. This is a configuration
	// error, caught at load rather than per record.
	ErrRepeatNotInTarget = errors.New("repeat segment not in target location")

	// ErrNoSource indicates an entry with neither a source path nor a
	// literal value.
	ErrNoSource = errors.New("entry has no source path or literal value")
)

// Entry is one declarative mapping rule.
type Entry struct {
	// Target is the parsed location of the value leaf in the output
	// document.
	Target Path

	// Repeat names the segment of Target that is instantiated once per
	// item of a list-valued result. Empty for scalar entries.
	Repeat string

	// Source and SourceFr are dot-separated record paths for the English
	// and French values. SourceFr is optional.
	Source   string
	SourceFr string

	// Value and ValueFr, when set, override source resolution with a
	// literal.
	Value   string
	ValueFr string

	// Vocab names the controlled-vocabulary field key used to normalize
	// the resolved value. Empty means no normalization.
	Vocab string
}

// IsRepeat reports whether the entry instantiates a repeat group.
func (e *Entry) IsRepeat() bool {
	return e.Repeat != ""
}

// RepeatIndex returns the index of the repeat segment within Target.
// Only meaningful for repeat entries; validated at load.
func (e *Entry) RepeatIndex() int {
	return e.Target.Index(e.Repeat)
}

// Sources returns the primary and secondary record paths for a document
// language. When the document language is French and the entry declares a
// dedicated French source, the roles swap: the French source becomes
// primary and the English source feeds the secondary-locale text.
func (e *Entry) Sources(french bool) (primary, secondary string) {
	if french && e.SourceFr != "" {
		return e.SourceFr, e.Source
	}
	if french {
		return e.Source, ""
	}
	return e.Source, e.SourceFr
}

// Literals returns the primary and secondary literal overrides for a
// document language, mirroring Sources.
func (e *Entry) Literals(french bool) (primary, secondary string) {
	if french && e.ValueFr != "" {
		return e.ValueFr, e.Value
	}
	if french {
		return e.Value, ""
	}
	return e.Value, e.ValueFr
}

func (e *Entry) validate() error {
	if len(e.Target) == 0 {
		return ErrBadTarget
	}
	if e.Source == "" && e.Value == "" {
		return fmt.Errorf("%w (target %s)", ErrNoSource, e.Target)
	}
	if e.Repeat != "" {
		idx := e.Target.Index(e.Repeat)
		if idx < 0 {
			return fmt.Errorf("%w: %q not in %s", ErrRepeatNotInTarget, e.Repeat, e.Target)
		}
		if idx == len(e.Target)-1 {
			return fmt.Errorf("%w: %q must be above the value leaf in %s", ErrRepeatNotInTarget, e.Repeat, e.Target)
		}
	}
	return nil
}

// Mapping is the ordered, immutable collection of entries.
type Mapping struct {
	Entries []Entry
}

// entryFile is the YAML wire form of the mapping table.
type entryFile struct {
	Entries []struct {
		Target   string `yaml:"target"`
		Repeat   string `yaml:"repeat"`
		Source   string `yaml:"source"`
		SourceFr string `yaml:"sourceFr"`
		Value    string `yaml:"value"`
		ValueFr  string `yaml:"valueFr"`
		Vocab    string `yaml:"vocab"`
	} `yaml:"entries"`
}

// Load reads and validates a mapping table from a YAML file in fsys.
func Load(fsys fs.FS, path string) (*Mapping, error) {
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("read mapping: %w", err)
	}
	return Parse(data)
}

// Parse parses and validates mapping YAML. Any entry failing validation
// fails the whole load; mapping defects are configuration bugs, not
// per-record conditions.
func Parse(data []byte) (*Mapping, error) {
	var file entryFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse mapping: %w", err)
	}

	m := &Mapping{Entries: make([]Entry, 0, len(file.Entries))}
	for i, raw := range file.Entries {
		target, err := ParsePath(raw.Target)
		if err != nil {
			return nil, fmt.Errorf("mapping entry %d: %w", i, err)
		}
		entry := Entry{
			Target:   target,
			Repeat:   raw.Repeat,
			Source:   raw.Source,
			SourceFr: raw.SourceFr,
			Value:    raw.Value,
			ValueFr:  raw.ValueFr,
			Vocab:    raw.Vocab,
		}
		if err := entry.validate(); err != nil {
			return nil, fmt.Errorf("mapping entry %d: %w", i, err)
		}
		m.Entries = append(m.Entries, entry)
	}
	return m, nil
}
