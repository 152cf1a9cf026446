// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Fisheries and Oceans Canada

package document

import (
	"testing"

	"github.com/beevik/etree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dfo-mpo/DataPortal-Metadata/internal/mapping"
	"github.com/dfo-mpo/DataPortal-Metadata/internal/record"
)

func constructParams(t *testing.T, r record.Record, mappingYAML string) BuildParams {
	t.Helper()

	m, err := mapping.Parse([]byte(mappingYAML))
	require.NoError(t, err)

	p := testParams(t, r)
	p.Mapping = m
	return p
}

func buildConstruct(t *testing.T, p BuildParams) *etree.Document {
	t.Helper()
	s, err := Get("construct")
	require.NoError(t, err)
	doc, err := s.Build(p)
	require.NoError(t, err)
	return doc
}

func TestConstruct_SharedAncestorsNotDuplicated(t *testing.T) {
	p := constructParams(t, record.Record{
		"title":      "Salmon Counts",
		"abstractEN": "Counts of returning salmon.",
	}, `
entries:
  - target: gmd:identificationInfo/gmd:MD_DataIdentification/gmd:citation/gmd:CI_Citation/gmd:title/gco:CharacterString
    source: title
  - target: gmd:identificationInfo/gmd:MD_DataIdentification/gmd:abstract/gco:CharacterString
    source: abstractEN
`)
	doc := buildConstruct(t, p)
	root := doc.Root()

	// Both entries share gmd:identificationInfo/gmd:MD_DataIdentification;
	// the chain must exist exactly once.
	infos := findDescendants(root, "gmd:identificationInfo")
	require.Len(t, infos, 1)
	idents := findDescendants(root, "gmd:MD_DataIdentification")
	require.Len(t, idents, 1)

	title := findFirstDescendant(root, "gmd:title")
	require.NotNil(t, title)
	assert.Equal(t, "Salmon Counts", findFirstDescendant(title, "gco:CharacterString").Text())
	abstract := findFirstDescendant(root, "gmd:abstract")
	require.NotNil(t, abstract)
	assert.Equal(t, "Counts of returning salmon.", findFirstDescendant(abstract, "gco:CharacterString").Text())
}

func TestConstruct_SelfRepeat(t *testing.T) {
	p := constructParams(t, record.Record{
		"edhProfile": map[string]any{
			"topicCategory": []any{"Oceans", "Biota"},
		},
	}, `
entries:
  - target: gmd:identificationInfo/gmd:MD_DataIdentification/gmd:topicCategory/gmd:MD_TopicCategoryCode
    repeat: gmd:topicCategory
    source: edhProfile.topicCategory
    vocab: topicCategory
`)
	doc := buildConstruct(t, p)

	topics := findDescendants(doc.Root(), "gmd:topicCategory")
	require.Len(t, topics, 2)
	assert.Equal(t, "oceans", findFirstDescendant(topics[0], "gmd:MD_TopicCategoryCode").Text())
	assert.Equal(t, "biota", findFirstDescendant(topics[1], "gmd:MD_TopicCategoryCode").Text())
}

func TestConstruct_DecoratedRepeat(t *testing.T) {
	p := constructParams(t, record.Record{
		"keywords":    []any{"Aquaculture", "Habitat"},
		"keywordIDs":  []any{"k-1", "k-2"},
		"extraUnused": "x",
	}, `
entries:
  - target: gmd:descriptiveKeywords/gmd:MD_Keywords/gmd:keyword/gco:CharacterString
    repeat: gmd:keyword
    source: keywords
    vocab: keyword
  - target: gmd:descriptiveKeywords/gmd:MD_Keywords/gmd:keyword/gmd:identifier/gco:CharacterString
    source: keywordIDs
`)
	doc := buildConstruct(t, p)

	keywords := findDescendants(doc.Root(), "gmd:keyword")
	require.Len(t, keywords, 2)

	// The second entry decorates each existing keyword instance with its
	// per-index identifier.
	for i, want := range []string{"k-1", "k-2"} {
		id := findFirstDescendant(keywords[i], "gmd:identifier")
		require.NotNil(t, id, "keyword %d missing identifier", i)
		assert.Equal(t, want, findFirstDescendant(id, "gco:CharacterString").Text())
	}
}

func TestConstruct_SecondaryWrapperOnlyWhenPresent(t *testing.T) {
	p := constructParams(t, record.Record{
		"title":      "Salmon Counts",
		"titleFr":    "Dénombrement des saumons",
		"abstractEN": "English only.",
	}, `
entries:
  - target: gmd:identificationInfo/gmd:MD_DataIdentification/gmd:citation/gmd:CI_Citation/gmd:title/gco:CharacterString
    source: title
    sourceFr: titleFr
  - target: gmd:identificationInfo/gmd:MD_DataIdentification/gmd:abstract/gco:CharacterString
    source: abstractEN
`)
	doc := buildConstruct(t, p)
	root := doc.Root()

	title := findFirstDescendant(root, "gmd:title")
	loc := findFirstDescendant(title, "gmd:LocalisedCharacterString")
	require.NotNil(t, loc)
	assert.Equal(t, "Dénombrement des saumons", loc.Text())
	assert.Equal(t, "#fra", loc.SelectAttrValue("locale", ""))

	abstract := findFirstDescendant(root, "gmd:abstract")
	assert.Nil(t, findFirstDescendant(abstract, "gmd:PT_FreeText"))
}

func TestConstruct_EmptyRecord(t *testing.T) {
	p := testParams(t, record.Record{})
	doc := buildConstruct(t, p)

	root := doc.Root()
	require.NotNil(t, root)
	assert.Equal(t, "gmd:MD_Metadata", root.FullTag())

	// Forced fields appear even on an otherwise empty build.
	fid := findFirstDescendant(root, "gmd:fileIdentifier")
	require.NotNil(t, fid)
	assert.Equal(t, "rec-0001", findFirstDescendant(fid, "gco:CharacterString").Text())
}

func TestConstruct_AttrTestMaterialized(t *testing.T) {
	p := constructParams(t, record.Record{
		"lastModified": "2025-11-19T20:55:54Z",
	}, `
entries:
  - target: gmd:citation/gmd:CI_Citation/gmd:date/gmd:CI_Date[gmd:dateType/gmd:CI_DateTypeCode/@codeListValue=RI_367]/gmd:date/gco:Date
    source: lastModified
`)
	doc := buildConstruct(t, p)

	ciDate := findFirstDescendant(doc.Root(), "gmd:CI_Date")
	require.NotNil(t, ciDate)
	code := findFirstDescendant(ciDate, "gmd:CI_DateTypeCode")
	require.NotNil(t, code)
	assert.Equal(t, "RI_367", code.SelectAttrValue("codeListValue", ""))

	date := findFirstDescendant(ciDate, "gco:Date")
	require.NotNil(t, date)
	assert.Equal(t, "2025-11-19", date.Text())
}

func TestConstruct_DeterministicOutput(t *testing.T) {
	r := record.Record{
		"title": "Salmon Counts",
		"edhProfile": map[string]any{
			"topicCategory": []any{"Oceans"},
		},
	}

	first, err := buildConstruct(t, testParams(t, r)).WriteToString()
	require.NoError(t, err)
	second, err := buildConstruct(t, testParams(t, r)).WriteToString()
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestAlignSecondary(t *testing.T) {
	assert.Equal(t, []string{"a", "b", ""}, alignSecondary([]any{"a", "b"}, 3))
	assert.Equal(t, []string{"x", "x"}, alignSecondary("x", 2))
	assert.Equal(t, []string{"", ""}, alignSecondary(nil, 2))
	assert.Equal(t, []string{"a"}, alignSecondary([]any{"a", "b", "c"}, 1))
}
