package uitext

import "strings"

// candidateSelectors is the fixed, ordered list of selector clauses used to
// collect text-bearing elements. Order matters: elements appear in the
// result in per-clause query order. An element matched by two clauses is
// analyzed twice; the scan does not deduplicate by node identity.
var candidateSelectors = []string{
	"label",
	"input[placeholder]",
	"textarea[placeholder]",
	"button",
	"[role=button]",
	"h1", "h2", "h3", "h4", "h5", "h6",
	"[class*=help]",
	"[class*=instruction]",
	"[class*=error]",
	"[class*=success]",
	"[class*=description]",
	"small",
	"[title]",
	"[aria-label]",
	"[data-tooltip]",
}

// AnalyzePage scans the tree under root and returns classified elements plus
// page-level aggregates. The traversal is a one-shot synchronous read: the
// tree is never mutated and nothing is retained between calls.
func (a *Analyzer) AnalyzePage(root Element) *AnalysisResult {
	result := &AnalysisResult{
		Elements: []*UIElement{},
		Summary: Summary{
			CategoryCounts: make(map[Category]int),
			Language:       LangUnknown,
		},
	}
	if root == nil {
		result.Insights = a.buildInsights(result.Summary)
		return result
	}

	for _, sel := range candidateSelectors {
		for _, el := range querySelectorAll(root, sel) {
			if !a.isRelevant(el) {
				continue
			}
			result.Elements = append(result.Elements, a.AnalyzeElement(el))
		}
	}

	result.Summary = a.summarize(result.Elements)
	result.Insights = a.buildInsights(result.Summary)
	return result
}

// isRelevant is the pre-classification gate: empty or too-short text and
// inline-hidden elements are excluded from page aggregation. The visibility
// check is shallow: only the element's own inline style counts, not computed
// style or ancestors.
func (a *Analyzer) isRelevant(el Element) bool {
	if el.InlineHidden() {
		return false
	}
	text := extractText(el)
	return len([]rune(text)) >= 2
}

func (a *Analyzer) summarize(elements []*UIElement) Summary {
	s := Summary{
		TotalElements:  len(elements),
		CategoryCounts: make(map[Category]int),
		Language:       LangUnknown,
	}

	var confSum float64
	svCount, enCount := 0, 0
	for _, el := range elements {
		s.CategoryCounts[el.Functionality.Category]++
		confSum += el.Confidence
		switch a.judgeLanguage(el.Text) {
		case LangSwedish:
			svCount++
		case LangEnglish:
			enCount++
		}
	}

	if s.TotalElements > 0 {
		s.Confidence = confSum / float64(s.TotalElements)
	}

	switch {
	case svCount > 0 && enCount > 0:
		s.Language = LangMixed
	case svCount > 0:
		s.Language = LangSwedish
	case enCount > 0:
		s.Language = LangEnglish
	}
	return s
}

// judgeLanguage classifies one text as Swedish, English, or unknown.
func (a *Analyzer) judgeLanguage(text string) Language {
	if a.isSwedish(text) {
		return LangSwedish
	}
	tokens := tokenize(strings.ToLower(text))
	if len(tokens) == 0 {
		return LangUnknown
	}
	hits := 0
	for _, t := range tokens {
		if a.englishSet[t] {
			hits++
		}
	}
	if float64(hits)/float64(len(tokens)) > 0.3 {
		return LangEnglish
	}
	return LangUnknown
}
