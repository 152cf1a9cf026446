// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Fisheries and Oceans Canada

package document

import (
	"strings"

	"github.com/beevik/etree"
)

// pruneEmpty removes template structures whose value never got populated
// and would fail schema validation if left empty:
//
//   - citation date blocks (gmd:date/gmd:CI_Date) with an empty gco:Date
//   - gmd:topicCategory with an empty or missing code
//   - gmd:keyword with an empty or missing text
func pruneEmpty(root *etree.Element) {
	for _, date := range findDescendants(root, "gco:Date") {
		if strings.TrimSpace(date.Text()) != "" {
			continue
		}
		// gco:Date <- gmd:date <- gmd:CI_Date <- outer gmd:date property
		ciDate := parentN(date, 2)
		if ciDate == nil || ciDate.FullTag() != "gmd:CI_Date" {
			continue
		}
		property := ciDate.Parent()
		if property == nil {
			continue
		}
		if container := property.Parent(); container != nil {
			container.RemoveChild(property)
		}
	}

	for _, tc := range findDescendants(root, "gmd:topicCategory") {
		code := findFirstDescendant(tc, "gmd:MD_TopicCategoryCode")
		if code == nil || strings.TrimSpace(code.Text()) == "" {
			removeFromParent(tc)
		}
	}

	for _, kw := range findDescendants(root, "gmd:keyword") {
		text := findFirstDescendant(kw, "gco:CharacterString")
		if text == nil || strings.TrimSpace(text.Text()) == "" {
			removeFromParent(kw)
		}
	}
}

func parentN(el *etree.Element, n int) *etree.Element {
	for i := 0; i < n && el != nil; i++ {
		el = el.Parent()
	}
	return el
}

func removeFromParent(el *etree.Element) {
	if parent := el.Parent(); parent != nil {
		parent.RemoveChild(el)
	}
}

