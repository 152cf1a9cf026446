// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Fisheries and Oceans Canada

package document

import (
	"strings"
	"time"
)

// normalizeDate trims an RFC 3339 timestamp to its date part, e.g.
// "2025-11-19T20:55:54+00:00" -> "2025-11-19". Values that do not parse
// pass through unchanged.
func normalizeDate(value string) string {
	if value == "" {
		return ""
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t.Format("2006-01-02")
	}
	if t, err := time.Parse("2006-01-02", value); err == nil {
		return t.Format("2006-01-02")
	}
	return value
}

// normalizeSpatialCode rewrites reference-system codes into their
// authority:code form, e.g. "EPSG-4326" -> "EPSG:4326". Unrecognized codes
// pass through unchanged.
func normalizeSpatialCode(value string) string {
	switch {
	case strings.HasPrefix(value, "EPSG-"):
		return "EPSG:" + strings.TrimPrefix(value, "EPSG-")
	case strings.HasPrefix(value, "SR-ORG-"):
		return "SR-ORG:" + strings.TrimPrefix(value, "SR-ORG-")
	default:
		return value
	}
}

// applyLeafNormalization applies the target-specific value rewrites: date
// leaves get date-only text, reference-system code leaves get
// authority:code form.
func applyLeafNormalization(targetHasDate, targetHasCode bool, value string) string {
	if targetHasDate {
		return normalizeDate(value)
	}
	if targetHasCode {
		return normalizeSpatialCode(value)
	}
	return value
}
