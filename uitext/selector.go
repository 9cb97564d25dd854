package uitext

import "strings"

// querySelectorAll returns all elements under root matching a simple CSS
// selector. Supported syntax:
//
//   - tag: "label", "button"
//   - .class: ".error-message"
//   - #id: "#save-btn"
//   - tag.class, tag#id
//   - [attr], [attr=val], [attr*=val] (substring), optionally tag-prefixed
//   - descendant combinator: parts separated by spaces
//
// This covers every selector the page scan needs without pulling in a full
// CSS engine.
func querySelectorAll(root Element, selector string) []Element {
	parts := strings.Fields(selector)
	if len(parts) == 0 {
		return nil
	}

	matches := matchSimple(root, parts[0])
	for i := 1; i < len(parts); i++ {
		var next []Element
		for _, parent := range matches {
			next = append(next, matchSimple(parent, parts[i])...)
		}
		matches = next
	}
	return matches
}

// matchSimple finds all elements in the subtree matching one selector part.
// The root itself is not a candidate, matching querySelectorAll semantics.
func matchSimple(root Element, sel string) []Element {
	m := parseSimpleSelector(sel)
	var results []Element
	var walk func(Element)
	walk = func(el Element) {
		for _, c := range el.Children() {
			if matchesSelector(c, m) {
				results = append(results, c)
			}
			walk(c)
		}
	}
	walk(root)
	return results
}

type simpleSelector struct {
	tag        string
	id         string
	class      string
	attrKey    string
	attrVal    string
	attrSubstr bool // [attr*=val] instead of [attr=val]
}

// parseSimpleSelector parses "tag.class", "#id", "tag[attr*=val]", etc.
func parseSimpleSelector(sel string) simpleSelector {
	var s simpleSelector

	if idx := strings.IndexByte(sel, '['); idx >= 0 {
		attrPart := strings.TrimRight(sel[idx+1:], "]")
		sel = sel[:idx]
		if eqIdx := strings.Index(attrPart, "*="); eqIdx >= 0 {
			s.attrKey = attrPart[:eqIdx]
			s.attrVal = strings.Trim(attrPart[eqIdx+2:], `"'`)
			s.attrSubstr = true
		} else if eqIdx := strings.IndexByte(attrPart, '='); eqIdx >= 0 {
			s.attrKey = attrPart[:eqIdx]
			s.attrVal = strings.Trim(attrPart[eqIdx+1:], `"'`)
		} else {
			s.attrKey = attrPart
		}
	}

	if idx := strings.IndexByte(sel, '#'); idx >= 0 {
		s.id = sel[idx+1:]
		sel = sel[:idx]
	}

	if idx := strings.IndexByte(sel, '.'); idx >= 0 {
		s.class = sel[idx+1:]
		sel = sel[:idx]
	}

	s.tag = sel
	return s
}

func matchesSelector(el Element, s simpleSelector) bool {
	if el.Tag() == "" {
		return false
	}
	if s.tag != "" && el.Tag() != s.tag {
		return false
	}
	if s.id != "" && el.Attr("id") != s.id {
		return false
	}
	if s.class != "" {
		found := false
		for _, c := range strings.Fields(el.ClassName()) {
			if c == s.class {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if s.attrKey != "" {
		if !el.HasAttr(s.attrKey) {
			return false
		}
		val := el.Attr(s.attrKey)
		switch {
		case s.attrSubstr:
			if !strings.Contains(val, s.attrVal) {
				return false
			}
		case s.attrVal != "":
			if val != s.attrVal {
				return false
			}
		}
	}
	return true
}
