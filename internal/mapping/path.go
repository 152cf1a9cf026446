// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Fisheries and Oceans Canada

package mapping

import (
	"fmt"
	"strings"
)

// Segment is one step of a target location: an element name plus an
// optional attribute test discriminating between same-named siblings.
type Segment struct {
	// Name is the prefixed element name, e.g. "gmd:CI_Date".
	Name string
	// Test, when non-nil, restricts the match to elements for which the
	// test holds.
	Test *AttrTest
}

// AttrTest matches an element whose descendant at Path carries attribute
// Attr with value Value. An empty Path tests the element itself.
//
// This covers the register-discriminated template structures, e.g. the two
// gmd:CI_Date blocks told apart by their CI_DateTypeCode codeListValue:
//
//	gmd:CI_Date[gmd:dateType/gmd:CI_DateTypeCode/@codeListValue=RI_367]
type AttrTest struct {
	Path  []string
	Attr  string
	Value string
}

// Path is an ordered target location from the document root down to the
// leaf that receives the mapped value.
type Path []Segment

// ParsePath parses a slash-separated target location. Slashes inside an
// attribute test belong to the test, not the path.
func ParsePath(s string) (Path, error) {
	if strings.TrimSpace(s) == "" {
		return nil, fmt.Errorf("%w: empty target", ErrBadTarget)
	}

	var path Path
	for _, part := range splitSegments(s) {
		seg, err := parseSegment(part)
		if err != nil {
			return nil, err
		}
		path = append(path, seg)
	}
	return path, nil
}

// splitSegments splits on '/' outside of brackets.
func splitSegments(s string) []string {
	var (
		parts []string
		start int
		depth int
	)
	for i, r := range s {
		switch r {
		case '[':
			depth++
		case ']':
			depth--
		case '/':
			if depth == 0 {
				parts = append(parts, s[start:i])
				start = i + 1
			}
		}
	}
	return append(parts, s[start:])
}

func parseSegment(s string) (Segment, error) {
	s = strings.TrimSpace(s)
	open := strings.IndexByte(s, '[')
	if open < 0 {
		if s == "" {
			return Segment{}, fmt.Errorf("%w: empty segment", ErrBadTarget)
		}
		return Segment{Name: s}, nil
	}

	if !strings.HasSuffix(s, "]") {
		return Segment{}, fmt.Errorf("%w: unterminated test in %q", ErrBadTarget, s)
	}
	name := s[:open]
	if name == "" {
		return Segment{}, fmt.Errorf("%w: test without element name in %q", ErrBadTarget, s)
	}

	test, err := parseAttrTest(s[open+1 : len(s)-1])
	if err != nil {
		return Segment{}, fmt.Errorf("%w: %v in %q", ErrBadTarget, err, s)
	}
	return Segment{Name: name, Test: test}, nil
}

// parseAttrTest parses "child/path/@attr=value" or "@attr=value".
func parseAttrTest(s string) (*AttrTest, error) {
	expr, value, ok := strings.Cut(s, "=")
	if !ok {
		return nil, fmt.Errorf("attribute test needs '='")
	}

	steps := strings.Split(expr, "/")
	last := steps[len(steps)-1]
	if !strings.HasPrefix(last, "@") {
		return nil, fmt.Errorf("attribute test needs '@'")
	}

	test := &AttrTest{
		Path:  steps[:len(steps)-1],
		Attr:  strings.TrimPrefix(last, "@"),
		Value: value,
	}
	if test.Attr == "" {
		return nil, fmt.Errorf("attribute test needs a name after '@'")
	}
	return test, nil
}

// Index returns the position of the first segment named name, or -1.
func (p Path) Index(name string) int {
	for i, seg := range p {
		if seg.Name == name {
			return i
		}
	}
	return -1
}

// Leaf returns the final segment of the path.
func (p Path) Leaf() Segment {
	return p[len(p)-1]
}

// Contains reports whether any segment has the given element name.
func (p Path) Contains(name string) bool {
	return p.Index(name) >= 0
}

// String reassembles the parsed path for diagnostics.
func (p Path) String() string {
	parts := make([]string, len(p))
	for i, seg := range p {
		parts[i] = seg.Name
		if seg.Test != nil {
			expr := "@" + seg.Test.Attr
			if len(seg.Test.Path) > 0 {
				expr = strings.Join(seg.Test.Path, "/") + "/" + expr
			}
			parts[i] += "[" + expr + "=" + seg.Test.Value + "]"
		}
	}
	return strings.Join(parts, "/")
}
