// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Fisheries and Oceans Canada

// Package assets embeds the static reference data the harvester ships
// with: the field mapping table, the controlled vocabulary, the NAP
// metadata register extract, and the template skeletons.
//
// Everything here is externally authored configuration. Callers receive
// fs.FS values so tests and deployments can substitute their own data.
package assets

import (
	"embed"
	"io/fs"
)

//go:embed mapping.yaml vocabulary.yaml napMetadataRegister.xml templates
var content embed.FS

// File names within FS.
const (
	MappingPath    = "mapping.yaml"
	VocabularyPath = "vocabulary.yaml"
	RegisterPath   = "napMetadataRegister.xml"
	templatesDir   = "templates"
)

// FS exposes the embedded reference data.
func FS() fs.FS {
	return content
}

// Templates returns the template skeleton directory as its own filesystem,
// with base_{en,fr}{,_spatial}.xml at its root.
func Templates() (fs.FS, error) {
	return fs.Sub(content, templatesDir)
}
