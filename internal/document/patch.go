// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Fisheries and Oceans Canada

package document

import (
	"fmt"
	"io/fs"
	"time"

	"github.com/beevik/etree"

	"github.com/dfo-mpo/DataPortal-Metadata/internal/mapping"
	"github.com/dfo-mpo/DataPortal-Metadata/internal/record"
)

func init() {
	Register(&patchStrategy{})
}

// patchStrategy populates a pre-authored, schema-valid template skeleton.
// Because every mutation either succeeds or leaves the template default in
// place, the output stays schema-valid even when individual fields fail to
// resolve.
type patchStrategy struct{}

func (s *patchStrategy) Name() string { return "patch" }

// TemplateName returns the skeleton file for a language/spatial variant.
func TemplateName(lang Language, spatial bool) string {
	suffix := ""
	if spatial {
		suffix = "_spatial"
	}
	return fmt.Sprintf("base_%s%s.xml", lang, suffix)
}

func (s *patchStrategy) Build(p BuildParams) (*etree.Document, error) {
	lang := DetectLanguage(p.Record)
	spatial := p.Record.String(SpatialSource) != ""

	name := TemplateName(lang, spatial)
	data, err := fs.ReadFile(p.Templates, name)
	if err != nil {
		// The one fatal per-record condition: without a skeleton there
		// is nothing to patch.
		return nil, fmt.Errorf("load template %s: %w", name, err)
	}

	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		return nil, fmt.Errorf("parse template %s: %w", name, err)
	}
	root := doc.Root()
	if root == nil {
		return nil, fmt.Errorf("parse template %s: empty document", name)
	}

	french := lang == French
	for i := range p.Mapping.Entries {
		entry := &p.Mapping.Entries[i]
		primary, secondary := resolveEntry(entry, &p, french)

		if entry.IsRepeat() {
			s.applyRepeat(root, entry, primary, secondary, lang, &p)
		} else {
			s.applyScalar(root, entry, primary, secondary, lang, &p)
		}
	}

	pruneEmpty(root)
	forceMandatory(root, p.RecordID, p.now())

	return doc, nil
}

// applyScalar writes one scalar entry into every leaf matching its target.
//
// Order on code-listed leaves is resolve-then-write: the registry lookup
// happens before any mutation, and a miss leaves both the template text and
// the codeListValue attribute untouched.
func (s *patchStrategy) applyScalar(root *etree.Element, entry *mapping.Entry, primary, secondary any, lang Language, p *BuildParams) {
	if record.IsEmpty(primary) {
		return
	}

	text := applyLeafNormalization(
		entry.Target.Contains("gco:Date"),
		entry.Target.Contains("gmd:code"),
		record.Text(primary),
	)
	if text == "" {
		return
	}
	secondaryText := record.Text(secondary)

	for _, node := range findAll(root, entry.Target) {
		if classRef := node.SelectAttrValue("codeList", ""); classRef != "" {
			code, ok := p.Registry.Resolve(classRef, text)
			if !ok {
				p.Log.Warn().
					Str("event", "codelist.miss").
					Str("target", entry.Target.String()).
					Str("value", text).
					Msg("codelist resolution failed, keeping template default")
				continue
			}
			node.SetText(text)
			node.CreateAttr("codeListValue", code)
		} else {
			node.SetText(text)
		}

		parent := node.Parent()
		if parent == nil {
			continue
		}
		parent.RemoveAttr("gco:nilReason")

		if secondaryText != "" {
			setSecondaryText(parent, secondaryText, lang)
		}
	}
}

// applyRepeat clones the container's placeholder child once per resolved
// item, preserving input order at the placeholder's position.
func (s *patchStrategy) applyRepeat(root *etree.Element, entry *mapping.Entry, primary, secondary any, lang Language, p *BuildParams) {
	values := record.List(primary)
	if len(values) == 0 {
		return
	}

	idx := entry.RepeatIndex()
	containerPath := entry.Target[:idx]
	repeatSeg := entry.Target[idx]
	suffix := entry.Target[idx+1:]

	containers := findAll(root, containerPath)
	if len(containers) == 0 {
		return
	}
	container := containers[0]

	placeholders := matchSegment(container, repeatSeg)
	if len(placeholders) == 0 {
		return
	}
	template := placeholders[0]
	insertAt := template.Index()

	secondaries := alignSecondary(secondary, len(values))

	clones := make([]*etree.Element, len(values))
	for i := range values {
		clone := template.Copy()
		container.InsertChildAt(insertAt+i, clone)
		clones[i] = clone
	}
	for _, ph := range placeholders {
		container.RemoveChild(ph)
	}

	for i, clone := range clones {
		leaves := findAll(clone, suffix)
		if len(leaves) == 0 {
			continue
		}
		leaf := leaves[0]
		if parent := leaf.Parent(); parent != nil {
			parent.RemoveAttr("gco:nilReason")
		}
		leaf.SetText(record.Text(values[i]))

		if secondaries[i] != "" {
			setSecondaryText(clone, secondaries[i], lang)
		}
	}
}

// setSecondaryText fills the first localized-string carrier under scope
// with the opposite-locale text. Templates pre-author the PT_FreeText
// structure, so a missing carrier simply means the leaf is monolingual.
func setSecondaryText(scope *etree.Element, text string, lang Language) {
	loc := findFirstDescendant(scope, "gmd:LocalisedCharacterString")
	if loc == nil {
		return
	}
	loc.CreateAttr("locale", lang.SecondaryLocale())
	loc.SetText(text)
}

var (
	fileIdentifierPath = mapping.Path{
		{Name: "gmd:fileIdentifier"},
		{Name: "gco:CharacterString"},
	}
	dateStampPath = mapping.Path{
		{Name: "gmd:dateStamp"},
		{Name: "gco:DateTime"},
	}
)

// forceMandatory overwrites the two process-mandated leaves regardless of
// what the mapping produced, creating them when the tree lacks them. This
// is the single deliberate override of mapping output.
func forceMandatory(root *etree.Element, recordID string, now time.Time) {
	fid := ensurePath(root, fileIdentifierPath)
	fid.SetText(recordID)
	if parent := fid.Parent(); parent != nil {
		parent.RemoveAttr("gco:nilReason")
	}

	stamp := ensurePath(root, dateStampPath)
	stamp.SetText(now.UTC().Format("2006-01-02T15:04:05") + "Z")
}
