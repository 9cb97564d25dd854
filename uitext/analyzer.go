// Package uitext classifies user-facing Swedish UI copy in a DOM tree.
//
// The analyzer extracts candidate text-bearing elements, assigns each a
// structural element type and a functional category using an ordered keyword
// cascade, scores an additive heuristic confidence, and aggregates page-level
// statistics with human-readable Swedish insights.
//
// Every call is a pure read of the supplied tree: nothing is mutated and
// nothing persists between calls. No input, however malformed, raises an
// error; missing data degrades to defaults and a lower confidence.
//
// Usage:
//
//	doc, _ := html.Parse(strings.NewReader(page))
//	result := uitext.AnalyzeDocument(doc)
//	fmt.Println(result.Summary.TotalElements, result.Summary.Language)
package uitext

import (
	"regexp"
	"strings"

	"golang.org/x/net/html"
)

type keywordList struct {
	category Category
	words    map[string]bool // single-word keywords, matched per token
	phrases  []string        // multi-word keywords, matched by substring
	ordered  []string        // original list order, for first-match reporting
}

// Analyzer classifies UI text elements. All lookup tables are built once at
// construction and immutable afterwards, so a single Analyzer is safe for
// concurrent use.
type Analyzer struct {
	lists      []keywordList   // in category precedence order
	swedishSet map[string]bool // all single-word keywords + stopwords
	englishSet map[string]bool
}

// New creates an Analyzer with the fixed Swedish vocabulary tables.
func New() *Analyzer {
	a := &Analyzer{
		swedishSet: make(map[string]bool),
		englishSet: make(map[string]bool),
	}
	for _, cat := range categoryPriority {
		list := keywordList{
			category: cat,
			words:    make(map[string]bool),
			ordered:  categoryKeywords[cat],
		}
		for _, kw := range categoryKeywords[cat] {
			if strings.ContainsRune(kw, ' ') {
				list.phrases = append(list.phrases, kw)
			} else {
				list.words[kw] = true
			}
			for _, w := range strings.Fields(kw) {
				a.swedishSet[w] = true
			}
		}
		a.lists = append(a.lists, list)
	}
	for _, w := range swedishStopwords {
		a.swedishSet[w] = true
	}
	for _, w := range englishStopwords {
		a.englishSet[w] = true
	}
	return a
}

// AnalyzeElement classifies a single element. It never fails: absent
// attributes and empty text yield a well-formed low-confidence record.
func (a *Analyzer) AnalyzeElement(el Element) *UIElement {
	text := extractText(el)
	elemType := determineType(el, text)
	fn := a.analyzeFunctionality(el, text, elemType)
	conf := a.scoreConfidence(text, elemType, fn.Keywords)

	return &UIElement{
		Source:        el,
		Text:          text,
		ElementType:   elemType,
		Functionality: fn,
		Confidence:    conf,
		Position:      el.Rect(),
		Attributes:    allowedAttributes(el),
	}
}

// extractText picks the element's user-facing text by fixed priority:
// aria-label, title, placeholder, alt, text content, value.
func extractText(el Element) string {
	for _, attr := range []string{"aria-label", "title", "placeholder", "alt"} {
		if v := strings.TrimSpace(el.Attr(attr)); v != "" {
			return v
		}
	}
	if v := el.Text(); v != "" {
		return v
	}
	return strings.TrimSpace(el.Attr("value"))
}

// determineType runs the structural rule cascade; first match wins.
func determineType(el Element, text string) ElementType {
	tag := el.Tag()
	class := strings.ToLower(el.ClassName())

	switch {
	case el.HasAttr("placeholder"):
		return TypePlaceholder
	case tag == "label":
		return TypeLabel
	case tag == "button" || el.Attr("role") == "button":
		return TypeButton
	case len(tag) == 2 && tag[0] == 'h' && tag[1] >= '1' && tag[1] <= '6':
		return TypeHeading
	case strings.Contains(class, "error") || strings.Contains(class, "invalid"):
		return TypeErrorMessage
	case strings.Contains(class, "help") || strings.Contains(class, "instruction"):
		return TypeHelpText
	case strings.Contains(class, "description") || strings.Contains(class, "desc"):
		return TypeDescription
	case matchesAny(errorTextPatterns, text):
		return TypeValidationMessage
	case matchesAny(successTextPatterns, text):
		return TypeValidationMessage
	default:
		return TypeInstruction
	}
}

func matchesAny(patterns []*regexp.Regexp, text string) bool {
	for _, pat := range patterns {
		if pat.MatchString(text) {
			return true
		}
	}
	return false
}

// analyzeFunctionality classifies the text's purpose. Category lists are
// tried in precedence order; the first list with a match wins. Only the
// action category records which keyword fired.
func (a *Analyzer) analyzeFunctionality(el Element, text string, elemType ElementType) Functionality {
	lower := strings.ToLower(text)
	tokens := tokenize(lower)

	fn := Functionality{
		Category:      CategoryInformation,
		Keywords:      a.extractKeywords(tokens),
		RelatedFields: relatedFields(el),
	}

	matched := false
	for _, list := range a.lists {
		if kw, ok := matchList(list, lower, tokens); ok {
			fn.Category = list.category
			if list.category == CategoryAction {
				fn.Action = kw
			}
			matched = true
			break
		}
	}
	if !matched && elemType == TypeHeading {
		fn.Category = CategoryGrouping
	}
	fn.Purpose = purposes[fn.Category]
	return fn
}

// matchList returns the first keyword (in list order) present in the text.
// Single words match whole tokens; phrases match by substring.
func matchList(list keywordList, lower string, tokens []string) (string, bool) {
	tokenSet := make(map[string]bool, len(tokens))
	for _, t := range tokens {
		tokenSet[t] = true
	}
	for _, kw := range list.ordered {
		if strings.ContainsRune(kw, ' ') {
			if strings.Contains(lower, kw) {
				return kw, true
			}
		} else if tokenSet[kw] {
			return kw, true
		}
	}
	return "", false
}

// extractKeywords keeps tokens that are known Swedish vocabulary or longer
// than 3 characters.
func (a *Analyzer) extractKeywords(tokens []string) []string {
	keywords := []string{}
	for _, t := range tokens {
		if a.swedishSet[t] || len([]rune(t)) > 3 {
			keywords = append(keywords, t)
		}
	}
	return keywords
}

// relatedFields gathers the label "for" target plus id/name of sibling form
// controls under the same parent, deduplicated in encounter order.
func relatedFields(el Element) []string {
	var fields []string
	seen := make(map[string]bool)
	add := func(v string) {
		if v != "" && !seen[v] {
			seen[v] = true
			fields = append(fields, v)
		}
	}

	if el.Tag() == "label" {
		add(el.Attr("for"))
	}
	if parent := el.Parent(); parent != nil {
		for _, sib := range parent.Children() {
			switch sib.Tag() {
			case "input", "textarea", "select":
				add(sib.Attr("id"))
				add(sib.Attr("name"))
			}
		}
	}
	return fields
}

// scoreConfidence applies the additive heuristic. The constants are a
// behavioral contract; the result is clamped to [0,1] and makes no claim of
// calibration.
func (a *Analyzer) scoreConfidence(text string, elemType ElementType, keywords []string) float64 {
	conf := 0.5

	if a.isSwedish(text) {
		conf += 0.2
	}
	switch elemType {
	case TypeLabel, TypeButton, TypePlaceholder:
		conf += 0.2
	}
	bonus := float64(len(keywords)) * 0.1
	if bonus > 0.3 {
		bonus = 0.3
	}
	conf += bonus

	if len([]rune(text)) < 3 {
		conf -= 0.3
	}

	if conf < 0 {
		conf = 0
	}
	if conf > 1 {
		conf = 1
	}
	return conf
}

// isSwedish judges a single text: Swedish letters present, or more than 30%
// of its tokens in the Swedish vocabulary.
func (a *Analyzer) isSwedish(text string) bool {
	lower := strings.ToLower(text)
	if strings.ContainsAny(lower, "åäö") {
		return true
	}
	tokens := tokenize(lower)
	if len(tokens) == 0 {
		return false
	}
	hits := 0
	for _, t := range tokens {
		if a.swedishSet[t] {
			hits++
		}
	}
	return float64(hits)/float64(len(tokens)) > 0.3
}

// allowedAttributes copies only the fixed allow-list of attributes present
// on the element.
func allowedAttributes(el Element) map[string]string {
	allowed := []string{"id", "name", "class", "role", "aria-label", "title", "placeholder", "type"}
	attrs := make(map[string]string)
	for _, name := range allowed {
		if el.HasAttr(name) {
			attrs[name] = el.Attr(name)
		}
	}
	return attrs
}

const tokenCutset = ".,:;!?()[]{}\"'«»–—-*/\\"

// tokenize splits lowercased text into punctuation-trimmed tokens.
func tokenize(lower string) []string {
	var out []string
	for _, f := range strings.Fields(lower) {
		t := strings.Trim(f, tokenCutset)
		if t != "" {
			out = append(out, t)
		}
	}
	return out
}

var defaultAnalyzer = New()

// AnalyzeDocument runs the default analyzer over a parsed HTML document.
func AnalyzeDocument(doc *html.Node) *AnalysisResult {
	return defaultAnalyzer.AnalyzePage(Wrap(doc))
}

// AnalyzeNode classifies a single parsed HTML node with the default analyzer.
func AnalyzeNode(n *html.Node) *UIElement {
	return defaultAnalyzer.AnalyzeElement(Wrap(n))
}
