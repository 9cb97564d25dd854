package uitext

import "testing"

const selectorDoc = `<!DOCTYPE html>
<html><body>
<div id="main" class="wrapper">
  <form class="cost-form">
    <label for="a">Etikett A</label>
    <input id="a" placeholder="Fyll i värde" data-tooltip="Hjälp för fältet">
    <button class="btn primary" role="button">Spara</button>
  </form>
  <p class="help-text intro">Introduktion</p>
  <span class="field-error">Fel i fältet</span>
  <small title="Fotnot">Liten text</small>
</div>
</body></html>`

func TestSelector_Tag(t *testing.T) {
	root := parseDoc(t, selectorDoc)
	if got := len(querySelectorAll(root, "label")); got != 1 {
		t.Errorf("label: got %d matches, want 1", got)
	}
	if got := len(querySelectorAll(root, "button")); got != 1 {
		t.Errorf("button: got %d matches, want 1", got)
	}
}

func TestSelector_ID(t *testing.T) {
	root := parseDoc(t, selectorDoc)
	m := querySelectorAll(root, "#main")
	if len(m) != 1 || m[0].Tag() != "div" {
		t.Fatalf("#main: got %d matches", len(m))
	}
}

func TestSelector_Class(t *testing.T) {
	root := parseDoc(t, selectorDoc)
	// Class token match, not substring: "btn" matches "btn primary".
	if got := len(querySelectorAll(root, ".btn")); got != 1 {
		t.Errorf(".btn: got %d matches, want 1", got)
	}
	if got := len(querySelectorAll(root, ".primary")); got != 1 {
		t.Errorf(".primary: got %d matches, want 1", got)
	}
}

func TestSelector_AttrPresence(t *testing.T) {
	root := parseDoc(t, selectorDoc)
	if got := len(querySelectorAll(root, "[data-tooltip]")); got != 1 {
		t.Errorf("[data-tooltip]: got %d matches, want 1", got)
	}
	if got := len(querySelectorAll(root, "[title]")); got != 1 {
		t.Errorf("[title]: got %d matches, want 1", got)
	}
}

func TestSelector_AttrExact(t *testing.T) {
	root := parseDoc(t, selectorDoc)
	if got := len(querySelectorAll(root, "[role=button]")); got != 1 {
		t.Errorf("[role=button]: got %d matches, want 1", got)
	}
	if got := len(querySelectorAll(root, "[role=tab]")); got != 0 {
		t.Errorf("[role=tab]: got %d matches, want 0", got)
	}
}

func TestSelector_AttrSubstring(t *testing.T) {
	root := parseDoc(t, selectorDoc)
	// [class*=error] must match class="field-error" even though "error" is
	// not a standalone class token.
	if got := len(querySelectorAll(root, "[class*=error]")); got != 1 {
		t.Errorf("[class*=error]: got %d matches, want 1", got)
	}
	if got := len(querySelectorAll(root, "[class*=help]")); got != 1 {
		t.Errorf("[class*=help]: got %d matches, want 1", got)
	}
}

func TestSelector_TagWithAttr(t *testing.T) {
	root := parseDoc(t, selectorDoc)
	if got := len(querySelectorAll(root, "input[placeholder]")); got != 1 {
		t.Errorf("input[placeholder]: got %d matches, want 1", got)
	}
	if got := len(querySelectorAll(root, "textarea[placeholder]")); got != 0 {
		t.Errorf("textarea[placeholder]: got %d matches, want 0", got)
	}
}

func TestSelector_Descendant(t *testing.T) {
	root := parseDoc(t, selectorDoc)
	if got := len(querySelectorAll(root, "form label")); got != 1 {
		t.Errorf("form label: got %d matches, want 1", got)
	}
	if got := len(querySelectorAll(root, ".cost-form button")); got != 1 {
		t.Errorf(".cost-form button: got %d matches, want 1", got)
	}
	if got := len(querySelectorAll(root, "span label")); got != 0 {
		t.Errorf("span label: got %d matches, want 0", got)
	}
}

func TestSelector_Empty(t *testing.T) {
	root := parseDoc(t, selectorDoc)
	if got := querySelectorAll(root, ""); got != nil {
		t.Errorf("empty selector: got %v, want nil", got)
	}
}
