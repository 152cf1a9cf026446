// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Fisheries and Oceans Canada

// Package record provides defensive access into harvested portal records.
//
// Records arrive as arbitrary decoded JSON with no declared schema, so every
// field access goes through a soft dot-path lookup that can never fail hard.
package record

import (
	"strconv"
	"strings"
)

// Record is a raw portal record as decoded from the harvest endpoint.
// It is read-only for the lifetime of a document build.
type Record map[string]any

// Lookup walks a dot-separated path into the record and reports whether the
// full path resolved. Sequence steps require an in-range integer segment,
// mapping steps a present key. A nil value mid-path, a bad index, or a
// scalar where a container is expected all report not found.
func (r Record) Lookup(path string) (any, bool) {
	if path == "" {
		return nil, false
	}

	var value any = map[string]any(r)
	for _, part := range strings.Split(path, ".") {
		switch v := value.(type) {
		case []any:
			idx, err := strconv.Atoi(part)
			if err != nil || idx < 0 || idx >= len(v) {
				return nil, false
			}
			value = v[idx]
		case map[string]any:
			next, ok := v[part]
			if !ok {
				return nil, false
			}
			value = next
		default:
			return nil, false
		}
	}
	return value, true
}

// Resolve is Lookup with a default: any resolution failure yields def.
func (r Record) Resolve(path string, def any) any {
	v, ok := r.Lookup(path)
	if !ok {
		return def
	}
	return v
}

// String resolves path and returns its string form, or "" when the value is
// absent or not a string-like scalar.
func (r Record) String(path string) string {
	v, ok := r.Lookup(path)
	if !ok || v == nil {
		return ""
	}
	return Text(v)
}

// Text renders a resolved scalar as the text written into a document leaf.
// Floats that carry integral values print without an exponent or fraction,
// matching how portal numbers round-trip through JSON decoding.
func Text(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case bool:
		return strconv.FormatBool(t)
	case float64:
		if t == float64(int64(t)) {
			return strconv.FormatInt(int64(t), 10)
		}
		return strconv.FormatFloat(t, 'g', -1, 64)
	case int:
		return strconv.Itoa(t)
	default:
		return ""
	}
}

// IsEmpty reports whether a resolved value counts as "no value": nil, an
// empty string, or an empty list.
func IsEmpty(v any) bool {
	switch t := v.(type) {
	case nil:
		return true
	case string:
		return t == ""
	case []any:
		return len(t) == 0
	case []string:
		return len(t) == 0
	}
	return false
}

// List coerces a resolved value into a slice, wrapping a scalar as a
// single-element list. Empty values yield a nil slice.
func List(v any) []any {
	switch t := v.(type) {
	case nil:
		return nil
	case []any:
		return t
	case []string:
		out := make([]any, len(t))
		for i, s := range t {
			out[i] = s
		}
		return out
	default:
		if IsEmpty(v) {
			return nil
		}
		return []any{v}
	}
}
