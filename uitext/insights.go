package uitext

import "fmt"

// buildInsights derives human-readable Swedish observations from the
// summary. The output order is fixed so two identical summaries always
// produce identical insight lists.
func (a *Analyzer) buildInsights(s Summary) []string {
	insights := []string{}

	if s.TotalElements == 0 {
		insights = append(insights, "Inga analyserbara textelement hittades på sidan.")
		return insights
	}

	insights = append(insights,
		fmt.Sprintf("Analyserade %d textelement på sidan.", s.TotalElements))

	if n := s.CategoryCounts[CategoryInput]; n > 0 {
		insights = append(insights,
			fmt.Sprintf("Sidan innehåller %d texter kopplade till inmatningsfält.", n))
	}
	if n := s.CategoryCounts[CategoryAction]; n > 0 {
		insights = append(insights,
			fmt.Sprintf("%d element utlöser handlingar, till exempel spara eller skicka.", n))
	}
	if n := s.CategoryCounts[CategoryNavigation]; n > 0 {
		insights = append(insights,
			fmt.Sprintf("%d element hjälper användaren att navigera.", n))
	}
	if n := s.CategoryCounts[CategoryValidation]; n > 0 {
		insights = append(insights,
			fmt.Sprintf("Sidan visar %d valideringsmeddelanden, kontrollera att formulärdata är korrekt.", n))
	}
	if n := s.CategoryCounts[CategoryHelp]; n > 0 {
		insights = append(insights,
			fmt.Sprintf("%d hjälptexter förklarar hur gränssnittet används.", n))
	}
	if n := s.CategoryCounts[CategoryFeedback]; n > 0 {
		insights = append(insights,
			fmt.Sprintf("%d element ger återkoppling på utförda handlingar.", n))
	}

	switch s.Language {
	case LangSwedish:
		insights = append(insights, "Gränssnittstexten är huvudsakligen på svenska.")
	case LangEnglish:
		insights = append(insights, "Gränssnittstexten är huvudsakligen på engelska.")
	case LangMixed:
		insights = append(insights, "Gränssnittstexten blandar svenska och engelska.")
	}

	if s.Confidence < 0.5 {
		insights = append(insights,
			"Låg genomsnittlig träffsäkerhet: texterna är korta eller svårtolkade.")
	}

	return insights
}
