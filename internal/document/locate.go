// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Fisheries and Oceans Canada

package document

import (
	"github.com/beevik/etree"

	"github.com/dfo-mpo/DataPortal-Metadata/internal/mapping"
)

// matchSegment returns the children of parent matching one target segment:
// same prefixed name, and the attribute test holding when present.
func matchSegment(parent *etree.Element, seg mapping.Segment) []*etree.Element {
	var out []*etree.Element
	for _, child := range parent.ChildElements() {
		if child.FullTag() != seg.Name {
			continue
		}
		if seg.Test != nil && !testHolds(child, seg.Test) {
			continue
		}
		out = append(out, child)
	}
	return out
}

// testHolds walks the test's relative element path (first match per step)
// and compares the attribute value at its end.
func testHolds(el *etree.Element, test *mapping.AttrTest) bool {
	current := el
	for _, name := range test.Path {
		var next *etree.Element
		for _, child := range current.ChildElements() {
			if child.FullTag() == name {
				next = child
				break
			}
		}
		if next == nil {
			return false
		}
		current = next
	}
	return current.SelectAttrValue(test.Attr, "") == test.Value
}

// findAll locates every element reachable from root through the full
// target path. The walk is exact: no descendant search, each step matches
// direct children only.
func findAll(root *etree.Element, path mapping.Path) []*etree.Element {
	current := []*etree.Element{root}
	for _, seg := range path {
		var next []*etree.Element
		for _, el := range current {
			next = append(next, matchSegment(el, seg)...)
		}
		if len(next) == 0 {
			return nil
		}
		current = next
	}
	return current
}

// ensureChild returns the first child of parent matching seg, creating it
// when absent. A created element also materializes the segment's attribute
// test so later walks can find it again.
func ensureChild(parent *etree.Element, seg mapping.Segment) *etree.Element {
	if existing := matchSegment(parent, seg); len(existing) > 0 {
		return existing[0]
	}
	return createChild(parent, seg)
}

// createChild always creates a new child for seg, discriminator included.
func createChild(parent *etree.Element, seg mapping.Segment) *etree.Element {
	el := parent.CreateElement(seg.Name)
	if seg.Test != nil {
		holder := el
		for _, name := range seg.Test.Path {
			holder = holder.CreateElement(name)
		}
		holder.CreateAttr(seg.Test.Attr, seg.Test.Value)
	}
	return el
}

// ensurePath walks path from root ensure-or-create and returns the final
// element. Entries sharing an ancestor chain reuse it rather than
// duplicating ancestors.
func ensurePath(root *etree.Element, path mapping.Path) *etree.Element {
	current := root
	for _, seg := range path {
		current = ensureChild(current, seg)
	}
	return current
}

// findFirstDescendant performs a depth-first search for the first element
// with the given prefixed name anywhere under el.
func findFirstDescendant(el *etree.Element, name string) *etree.Element {
	for _, child := range el.ChildElements() {
		if child.FullTag() == name {
			return child
		}
		if found := findFirstDescendant(child, name); found != nil {
			return found
		}
	}
	return nil
}

// findDescendants collects every element with the given prefixed name
// anywhere under el, in document order.
func findDescendants(el *etree.Element, name string) []*etree.Element {
	var out []*etree.Element
	for _, child := range el.ChildElements() {
		if child.FullTag() == name {
			out = append(out, child)
		}
		out = append(out, findDescendants(child, name)...)
	}
	return out
}
