package livedom

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestValidateURL_Schemes(t *testing.T) {
	cases := []struct {
		url     string
		wantErr error
	}{
		{"https://example.com/meny", nil},
		{"http://example.com", nil},
		{"ftp://example.com/file", ErrUnsafeScheme},
		{"file:///etc/passwd", ErrUnsafeScheme},
		{"javascript:alert(1)", ErrUnsafeScheme},
	}
	for _, tc := range cases {
		err := ValidateURL(tc.url)
		if tc.wantErr == nil && err != nil {
			t.Errorf("ValidateURL(%q) = %v, want nil", tc.url, err)
		}
		if tc.wantErr != nil && !errors.Is(err, tc.wantErr) {
			t.Errorf("ValidateURL(%q) = %v, want %v", tc.url, err, tc.wantErr)
		}
	}
}

func TestValidateURL_PrivateAddresses(t *testing.T) {
	private := []string{
		"http://127.0.0.1/admin",
		"http://10.1.2.3/",
		"http://192.168.1.1/",
		"http://172.16.0.1/",
		"http://169.254.169.254/latest/meta-data",
		"http://[::1]/",
	}
	for _, u := range private {
		if err := ValidateURL(u); !errors.Is(err, ErrSSRF) {
			t.Errorf("ValidateURL(%q) = %v, want ErrSSRF", u, err)
		}
	}
}

func TestValidateURL_NoHost(t *testing.T) {
	if err := ValidateURL("https://"); err == nil {
		t.Error("ValidateURL with empty host should fail")
	}
}

func TestIsSufficient(t *testing.T) {
	richBody := "<html><body><main>" +
		strings.Repeat("<p>Kostnadskontroll för restaurangen med ingredienser och recept.</p>", 20) +
		"</main></body></html>"

	cases := []struct {
		name string
		html string
		want bool
	}{
		{"rich static page", richBody, true},
		{"tiny document", "<html></html>", false},
		{"react shell", `<html><head><script src="/app.js"></script></head><body><div id="root"></div>` + strings.Repeat("<!-- pad -->", 50) + `</body></html>`, false},
		{"next shell", `<html><body><div id="__next"></div>` + strings.Repeat(" <script>var x=1;</script>", 30) + `</body></html>`, false},
		{"noscript warning", `<html><body><noscript>You need to enable JavaScript to run this app.</noscript>` + strings.Repeat("<div></div>", 40) + `</body></html>`, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := IsSufficient([]byte(tc.html)); got != tc.want {
				t.Errorf("IsSufficient = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestSufficiency_CustomThresholds(t *testing.T) {
	page := "<html><body><p>Recept och ingredienser för veckans meny.</p></body></html>"

	if IsSufficient([]byte(page)) {
		t.Fatal("short page should fail the default thresholds")
	}

	lax := Sufficiency{MinBytes: 32, MinText: 20, MinRatio: 0.05}
	if !lax.Check([]byte(page)) {
		t.Error("short page should pass relaxed thresholds")
	}

	strict := Sufficiency{MinBytes: 32, MinText: 20, MinRatio: 0.95}
	if strict.Check([]byte(page)) {
		t.Error("markup-heavy page should fail a strict text ratio")
	}
}

func TestAcquire_HTTPSufficient(t *testing.T) {
	body := "<html><body>" +
		strings.Repeat("<p>Hantera ingredienser, recept och portionspriser för restaurangen.</p>", 20) +
		"</body></html>"
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(body))
	}))
	defer srv.Close()

	a := New(Config{DisableBrowser: true})
	defer a.Close()

	// httptest binds to 127.0.0.1, which the guard rejects. Bypass the guard
	// and exercise the fetch path directly.
	fr, err := a.fetch(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if fr.StatusCode != http.StatusOK {
		t.Errorf("status = %d", fr.StatusCode)
	}
	if !fr.Sufficient {
		t.Error("rich page should be sufficient")
	}
	if string(fr.HTML) != body {
		t.Error("body mismatch")
	}
}

func TestAcquire_RejectsPrivateURL(t *testing.T) {
	a := New(Config{DisableBrowser: true})
	defer a.Close()

	_, err := a.Acquire(context.Background(), "http://127.0.0.1:9/")
	if !errors.Is(err, ErrSSRF) {
		t.Fatalf("Acquire private = %v, want ErrSSRF", err)
	}
}

func TestAcquire_BrowserDisabled_ThinHTMLReturned(t *testing.T) {
	// With the browser disabled, a thin but 2xx response comes back as-is.
	thin := `<html><body><div id="spa"></div></body></html>`
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(thin))
	}))
	defer srv.Close()

	a := New(Config{DisableBrowser: true})
	defer a.Close()

	fr, err := a.fetch(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if fr.Sufficient {
		t.Error("thin page should not be sufficient")
	}
}
