package uitext

import "testing"

const samplePage = `<!DOCTYPE html>
<html><head><title>Kostnadskontroll</title></head>
<body>
<h1>Kostnadskontroll</h1>
<form>
  <label for="ingrediens">Ange ingrediensens namn</label>
  <input id="ingrediens" name="ingredient" placeholder="t.ex. smör">
  <label for="pris">Ange inköpspris per enhet</label>
  <input id="pris" name="price" placeholder="0,00 kr">
  <button type="submit">Spara ändringar</button>
  <button type="button">Avbryt</button>
</form>
<span class="error-message">Ogiltigt format på fältet</span>
<p class="help-text">Så här fyller du i receptets ingredienser</p>
<small>Priserna uppdateras varje natt</small>
</body></html>`

func TestAnalyzePage_CountsSumToTotal(t *testing.T) {
	result := New().AnalyzePage(parseDoc(t, samplePage))

	sum := 0
	for _, n := range result.Summary.CategoryCounts {
		sum += n
	}
	if sum != result.Summary.TotalElements {
		t.Errorf("category counts sum %d != total %d", sum, result.Summary.TotalElements)
	}
	if result.Summary.TotalElements != len(result.Elements) {
		t.Errorf("total %d != len(elements) %d", result.Summary.TotalElements, len(result.Elements))
	}
	if result.Summary.TotalElements == 0 {
		t.Fatal("expected elements on the sample page")
	}
}

func TestAnalyzePage_ConfidenceInRange(t *testing.T) {
	result := New().AnalyzePage(parseDoc(t, samplePage))

	for i, el := range result.Elements {
		if el.Confidence < 0 || el.Confidence > 1 {
			t.Errorf("element %d (%q): confidence %v escapes [0,1]", i, el.Text, el.Confidence)
		}
	}
	if result.Summary.Confidence < 0 || result.Summary.Confidence > 1 {
		t.Errorf("mean confidence %v escapes [0,1]", result.Summary.Confidence)
	}
}

func TestAnalyzePage_Swedish(t *testing.T) {
	result := New().AnalyzePage(parseDoc(t, samplePage))
	if result.Summary.Language != LangSwedish {
		t.Errorf("language: got %q, want %q", result.Summary.Language, LangSwedish)
	}
}

func TestAnalyzePage_HiddenExcluded(t *testing.T) {
	page := `<body>
		<button>Spara posten</button>
		<button style="display:none">Dold knapp</button>
		<label style="visibility: hidden">Dold etikett</label>
	</body>`
	result := New().AnalyzePage(parseDoc(t, page))

	for _, el := range result.Elements {
		if el.Text == "Dold knapp" || el.Text == "Dold etikett" {
			t.Errorf("inline-hidden element %q should be filtered", el.Text)
		}
	}
	if len(result.Elements) != 1 {
		t.Errorf("expected 1 visible element, got %d", len(result.Elements))
	}
}

func TestAnalyzePage_ShortTextExcluded(t *testing.T) {
	page := `<body><button>X</button><button>Spara</button></body>`
	result := New().AnalyzePage(parseDoc(t, page))

	if len(result.Elements) != 1 {
		t.Fatalf("expected single-char button filtered, got %d elements", len(result.Elements))
	}
	if result.Elements[0].Text != "Spara" {
		t.Errorf("kept element: got %q, want %q", result.Elements[0].Text, "Spara")
	}
}

func TestAnalyzePage_NoDeduplication(t *testing.T) {
	// An input matched by both the placeholder clause and the aria-label
	// clause is counted twice. Faithful quirk, not a bug.
	page := `<body><input placeholder="Ange belopp" aria-label="Belopp i kronor"></body>`
	result := New().AnalyzePage(parseDoc(t, page))

	if len(result.Elements) != 2 {
		t.Fatalf("expected the element once per matching clause (2), got %d", len(result.Elements))
	}
}

func TestAnalyzePage_EmptyDocument(t *testing.T) {
	result := New().AnalyzePage(parseDoc(t, `<body></body>`))

	if result.Summary.TotalElements != 0 {
		t.Errorf("total: got %d, want 0", result.Summary.TotalElements)
	}
	if result.Summary.Language != LangUnknown {
		t.Errorf("language: got %q, want %q", result.Summary.Language, LangUnknown)
	}
	if len(result.Insights) == 0 {
		t.Error("insights should explain that nothing was found")
	}
}

func TestAnalyzePage_NilRoot(t *testing.T) {
	result := New().AnalyzePage(nil)
	if result == nil || result.Summary.TotalElements != 0 {
		t.Fatal("nil root must yield an empty, well-formed result")
	}
}

func TestAnalyzePage_InsightsDeterministic(t *testing.T) {
	a := New()
	root := parseDoc(t, samplePage)

	first := a.AnalyzePage(root)
	second := a.AnalyzePage(root)

	if len(first.Insights) != len(second.Insights) {
		t.Fatalf("insight count differs: %d vs %d", len(first.Insights), len(second.Insights))
	}
	for i := range first.Insights {
		if first.Insights[i] != second.Insights[i] {
			t.Errorf("insight %d differs: %q vs %q", i, first.Insights[i], second.Insights[i])
		}
	}
	if len(first.Insights) == 0 {
		t.Error("expected insights for a populated page")
	}
}

func TestAnalyzeDocument_DefaultAnalyzer(t *testing.T) {
	root := parseDoc(t, samplePage).(*Node)
	result := AnalyzeDocument(root.Unwrap())
	if result.Summary.TotalElements == 0 {
		t.Fatal("default analyzer should classify the sample page")
	}
}

func TestAnalyzePage_MixedLanguage(t *testing.T) {
	page := `<body>
		<button>Spara ändringar i receptet</button>
		<button>Delete all the selected rows</button>
	</body>`
	result := New().AnalyzePage(parseDoc(t, page))
	if result.Summary.Language != LangMixed {
		t.Errorf("language: got %q, want %q", result.Summary.Language, LangMixed)
	}
}
