// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Fisheries and Oceans Canada

package document

import (
	"github.com/beevik/etree"

	"github.com/dfo-mpo/DataPortal-Metadata/internal/mapping"
	"github.com/dfo-mpo/DataPortal-Metadata/internal/record"
)

func init() {
	Register(&constructStrategy{})
}

// namespaces declared on a constructed document root.
var namespaces = map[string]string{
	"gmd":   "http://www.isotc211.org/2005/gmd",
	"gco":   "http://www.isotc211.org/2005/gco",
	"gmx":   "http://www.isotc211.org/2005/gmx",
	"gml":   "http://www.opengis.net/gml/3.2",
	"xlink": "http://www.w3.org/1999/xlink",
	"xsi":   "http://www.w3.org/2001/XMLSchema-instance",
}

// namespaceOrder keeps declarations deterministic across builds.
var namespaceOrder = []string{"gmd", "gco", "gmx", "gml", "xlink", "xsi"}

// constructStrategy builds the document from an empty root. Target
// locations are resolved ensure-or-create, so entries sharing an ancestor
// chain reuse it. There is no template to fall back on, which makes this
// strategy lighter but weaker on codelist misses; "patch" remains the
// default.
type constructStrategy struct{}

func (s *constructStrategy) Name() string { return "construct" }

func (s *constructStrategy) Build(p BuildParams) (*etree.Document, error) {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)
	root := doc.CreateElement("gmd:MD_Metadata")
	for _, prefix := range namespaceOrder {
		root.CreateAttr("xmlns:"+prefix, namespaces[prefix])
	}

	lang := DetectLanguage(p.Record)
	french := lang == French

	for i := range p.Mapping.Entries {
		entry := &p.Mapping.Entries[i]
		primary, secondary := resolveEntry(entry, &p, french)
		if record.IsEmpty(primary) {
			continue
		}

		switch tag := decorationTag(p.Mapping, entry); {
		case entry.IsRepeat():
			s.buildRepeat(root, entry, primary, secondary, lang)
		case tag != "":
			s.decorateRepeat(root, entry, entry.Target.Index(tag), primary, secondary, lang)
		default:
			s.buildScalar(root, entry, primary, secondary, lang)
		}
	}

	forceMandatory(root, p.RecordID, p.now())
	return doc, nil
}

// decorationTag returns the repeat segment, declared by a different entry,
// that this entry's target passes through. Empty when the entry does not
// decorate a repeat group. Entries are scanned in mapping order so the
// answer is deterministic.
func decorationTag(m *mapping.Mapping, e *mapping.Entry) string {
	for i := range m.Entries {
		other := &m.Entries[i]
		if other == e || !other.IsRepeat() {
			continue
		}
		if e.Target.Contains(other.Repeat) {
			return other.Repeat
		}
	}
	return ""
}

// buildScalar ensures the full target location and attaches the value,
// plus a secondary-locale wrapper only when a secondary value exists.
func (s *constructStrategy) buildScalar(root *etree.Element, entry *mapping.Entry, primary, secondary any, lang Language) {
	text := applyLeafNormalization(
		entry.Target.Contains("gco:Date"),
		entry.Target.Contains("gmd:code"),
		record.Text(primary),
	)
	if text == "" {
		return
	}

	leaf := ensurePath(root, entry.Target)
	leaf.SetText(text)

	if sec := record.Text(secondary); sec != "" {
		attachSecondary(leaf, sec, lang)
	}
}

// buildRepeat splits the target at the entry's own repeat segment and
// instantiates the suffix once per resolved item, in input order.
func (s *constructStrategy) buildRepeat(root *etree.Element, entry *mapping.Entry, primary, secondary any, lang Language) {
	values := record.List(primary)
	if len(values) == 0 {
		return
	}

	idx := entry.RepeatIndex()
	container := ensurePath(root, entry.Target[:idx])
	repeatSeg := entry.Target[idx]
	suffix := entry.Target[idx+1:]

	secondaries := alignSecondary(secondary, len(values))

	for i, value := range values {
		instance := createChild(container, repeatSeg)
		leaf := instance
		for _, seg := range suffix {
			leaf = createChild(leaf, seg)
		}
		leaf.SetText(record.Text(value))
		if secondaries[i] != "" {
			attachSecondary(leaf, secondaries[i], lang)
		}
	}
}

// decorateRepeat attaches this entry's per-index values under every
// instance already created for another entry's repeat segment.
func (s *constructStrategy) decorateRepeat(root *etree.Element, entry *mapping.Entry, repeatIdx int, primary, secondary any, lang Language) {
	if repeatIdx <= 0 || repeatIdx >= len(entry.Target)-1 {
		return
	}

	values := record.List(primary)
	container := ensurePath(root, entry.Target[:repeatIdx])
	instances := matchSegment(container, entry.Target[repeatIdx])
	suffix := entry.Target[repeatIdx+1:]

	secondaries := alignSecondary(secondary, len(instances))

	for i, instance := range instances {
		if i >= len(values) {
			break
		}
		leaf := ensurePath(instance, suffix)
		leaf.SetText(record.Text(values[i]))
		if secondaries[i] != "" {
			attachSecondary(leaf, secondaries[i], lang)
		}
	}
}

// attachSecondary creates the dual-locale carrier next to a canonical
// leaf: PT_FreeText/textGroup/LocalisedCharacterString under the leaf's
// parent, tagged with the opposite-locale reference.
func attachSecondary(leaf *etree.Element, text string, lang Language) {
	parent := leaf.Parent()
	if parent == nil {
		return
	}
	loc := parent.CreateElement("gmd:PT_FreeText").
		CreateElement("gmd:textGroup").
		CreateElement("gmd:LocalisedCharacterString")
	loc.CreateAttr("locale", lang.SecondaryLocale())
	loc.SetText(text)
}
