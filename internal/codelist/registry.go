// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Fisheries and Oceans Canada

// Package codelist resolves ISO codelist display strings to register item
// identifiers.
//
// ISO metadata elements carry both a display text ("onGoing; enContinue")
// and a codeListValue attribute naming a register item ("RI_602"). The NAP
// metadata register defines item classes (IC_xxx) grouping register items
// (RI_xxx); this package indexes the register once at startup so the
// materializer can fill codeListValue attributes from display text.
package codelist

import (
	"fmt"
	"io/fs"
	"strings"

	"github.com/beevik/etree"
)

// Registry is the two-level codelist index: class id -> display name -> item
// id. Built once from the register document and read-only afterwards; safe
// for concurrent use across document builds.
type Registry struct {
	classes map[string]map[string]string
}

// Load parses the NAP metadata register XML from fsys and builds the
// registry index.
func Load(fsys fs.FS, path string) (*Registry, error) {
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("read metadata register: %w", err)
	}
	return Parse(data)
}

// Parse builds the registry from register document bytes.
//
// Two passes: first index every grg:RE_RegisterItem by id to its display
// name, then dereference each grg:RE_ItemClass's described items through
// that index. Items referenced by a class but absent from the register are
// skipped, matching how the register itself tolerates retired items.
func Parse(data []byte) (*Registry, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		return nil, fmt.Errorf("parse metadata register: %w", err)
	}
	root := doc.Root()
	if root == nil {
		return nil, fmt.Errorf("parse metadata register: empty document")
	}

	names := make(map[string]string)
	for _, item := range root.FindElements("//grg:RE_RegisterItem") {
		id := item.SelectAttrValue("id", "")
		name := item.FindElement(".//grg:name/gco:CharacterString")
		if id == "" || name == nil {
			continue
		}
		names[id] = strings.TrimSpace(name.Text())
	}

	classes := make(map[string]map[string]string)
	for _, class := range root.FindElements("//grg:RE_ItemClass") {
		id := class.SelectAttrValue("id", "")
		if id == "" {
			continue
		}
		values := make(map[string]string)
		for _, ref := range class.FindElements(".//grg:describedItem") {
			href := ref.SelectAttrValue("xlink:href", "")
			if href == "" {
				continue
			}
			itemID := strings.TrimPrefix(href, "#")
			if name, ok := names[itemID]; ok {
				values[name] = itemID
			}
		}
		classes[id] = values
	}

	return &Registry{classes: classes}, nil
}

// Resolve maps a codelist reference and display text to a register item id.
//
// The class id is the fragment after '#' in classRef; the match token is the
// text before the first ';' in displayText, trimmed, compared exactly. A
// malformed reference, unknown class, or unmatched token reports not found.
func (r *Registry) Resolve(classRef, displayText string) (string, bool) {
	if classRef == "" || displayText == "" {
		return "", false
	}

	idx := strings.LastIndex(classRef, "#")
	if idx < 0 {
		return "", false
	}
	classID := classRef[idx+1:]

	token, _, _ := strings.Cut(displayText, ";")
	token = strings.TrimSpace(token)

	values, ok := r.classes[classID]
	if !ok {
		return "", false
	}
	itemID, ok := values[token]
	return itemID, ok
}

// Classes returns the class ids present in the registry, for validation.
func (r *Registry) Classes() []string {
	ids := make([]string, 0, len(r.classes))
	for id := range r.classes {
		ids = append(ids, id)
	}
	return ids
}
