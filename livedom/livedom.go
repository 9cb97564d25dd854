// Package livedom acquires page HTML for analysis. It tries a plain HTTP GET
// first and escalates to a headless browser only when the static HTML is too
// thin to classify (SPA shells, JS-rendered dashboards). URLs are validated
// against private and loopback targets before any request is made.
package livedom

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
)

// Source names the acquisition path that produced the HTML.
type Source string

const (
	SourceHTTP    Source = "http"
	SourceBrowser Source = "browser"
)

// Config configures an Acquirer.
type Config struct {
	// RemoteURL is the WebSocket URL of an external Chrome instance.
	// Empty = launch a local Chrome via launcher on first browser use.
	RemoteURL string `yaml:"remote_url"`

	// UserAgent for the HTTP path. Default: a desktop UA.
	UserAgent string `yaml:"user_agent"`

	// FetchTimeout bounds the HTTP GET. Default: 30s.
	FetchTimeout time.Duration `yaml:"fetch_timeout"`

	// NavigateTimeout bounds browser navigation and load. Default: 30s.
	NavigateTimeout time.Duration `yaml:"navigate_timeout"`

	// SettleDelay is waited after load before the DOM is read. Default: 500ms.
	SettleDelay time.Duration `yaml:"settle_delay"`

	// DisableBrowser turns off escalation: thin HTML is returned as-is.
	DisableBrowser bool `yaml:"disable_browser"`

	// Sufficiency tunes when static HTML counts as enough.
	Sufficiency Sufficiency `yaml:"sufficiency"`

	Logger *slog.Logger `yaml:"-"`
}

func (c *Config) defaults() {
	if c.UserAgent == "" {
		c.UserAgent = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/131.0 Safari/537.36"
	}
	if c.FetchTimeout <= 0 {
		c.FetchTimeout = 30 * time.Second
	}
	if c.NavigateTimeout <= 0 {
		c.NavigateTimeout = 30 * time.Second
	}
	if c.SettleDelay <= 0 {
		c.SettleDelay = 500 * time.Millisecond
	}
	c.Sufficiency.defaults()
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
}

// Result is acquired page HTML plus provenance.
type Result struct {
	HTML   []byte
	Source Source
}

// Acquirer fetches page HTML, HTTP-first with browser escalation.
type Acquirer struct {
	cfg    Config
	client *http.Client

	mu       sync.Mutex
	browser  *rod.Browser
	launcher *launcher.Launcher
	closed   bool
}

// New creates an Acquirer. The browser, if ever needed, is launched lazily.
func New(cfg Config) *Acquirer {
	cfg.defaults()
	return &Acquirer{
		cfg:    cfg,
		client: newHTTPClient(cfg.FetchTimeout),
	}
}

// Acquire validates pageURL and returns its HTML. The HTTP path is tried
// first; when the response is insufficient and the browser is enabled, the
// page is rendered headless instead.
func (a *Acquirer) Acquire(ctx context.Context, pageURL string) (*Result, error) {
	if err := ValidateURL(pageURL); err != nil {
		return nil, err
	}

	fr, err := a.fetch(ctx, pageURL)
	if err == nil && fr.StatusCode < 400 && fr.Sufficient {
		return &Result{HTML: fr.HTML, Source: SourceHTTP}, nil
	}

	if a.cfg.DisableBrowser {
		if err != nil {
			return nil, err
		}
		if fr.StatusCode >= 400 {
			return nil, fmt.Errorf("livedom: fetch %s: status %d", pageURL, fr.StatusCode)
		}
		// Thin but usable.
		return &Result{HTML: fr.HTML, Source: SourceHTTP}, nil
	}

	if err != nil {
		a.cfg.Logger.Info("livedom: http fetch failed, escalating to browser",
			"url", pageURL, "error", err)
	} else {
		a.cfg.Logger.Info("livedom: static html insufficient, escalating to browser",
			"url", pageURL, "status", fr.StatusCode)
	}

	html, rerr := a.renderDOM(ctx, pageURL)
	if rerr != nil {
		if err != nil {
			return nil, fmt.Errorf("livedom: both paths failed: http: %v, browser: %w", err, rerr)
		}
		return nil, rerr
	}
	return &Result{HTML: html, Source: SourceBrowser}, nil
}

// Close shuts down the browser if one was launched.
func (a *Acquirer) Close() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.closed = true

	if a.browser != nil {
		if err := a.browser.Close(); err != nil {
			a.cfg.Logger.Warn("livedom: browser close", "error", err)
		}
		a.browser = nil
	}
	if a.launcher != nil {
		a.launcher.Cleanup()
		a.launcher = nil
	}
	return nil
}
