package livedom

import (
	"context"
	"fmt"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/stealth"
)

// renderDOM loads pageURL in a headless browser and returns the rendered
// document as outer HTML. The browser is launched on first use and kept
// alive for subsequent renders.
func (a *Acquirer) renderDOM(ctx context.Context, pageURL string) ([]byte, error) {
	b, err := a.browserHandle()
	if err != nil {
		return nil, err
	}

	page, err := stealth.Page(b)
	if err != nil {
		return nil, fmt.Errorf("livedom: create page: %w", err)
	}
	defer page.Close()

	navCtx, cancel := context.WithTimeout(ctx, a.cfg.NavigateTimeout)
	defer cancel()

	if err := page.Context(navCtx).Navigate(pageURL); err != nil {
		return nil, fmt.Errorf("livedom: navigate %s: %w", pageURL, err)
	}
	if err := page.Context(navCtx).WaitLoad(); err != nil {
		a.cfg.Logger.Warn("livedom: wait load timeout", "url", pageURL, "error", err)
	}
	// Give late scripts a moment to settle the DOM.
	if a.cfg.SettleDelay > 0 {
		select {
		case <-time.After(a.cfg.SettleDelay):
		case <-navCtx.Done():
		}
	}

	res, err := page.Context(ctx).Eval(`() => document.documentElement.outerHTML`)
	if err != nil {
		return nil, fmt.Errorf("livedom: get DOM: %w", err)
	}
	return []byte(res.Value.Str()), nil
}

func (a *Acquirer) browserHandle() (*rod.Browser, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.closed {
		return nil, fmt.Errorf("livedom: acquirer is closed")
	}
	if a.browser != nil {
		return a.browser, nil
	}

	var wsURL string
	if a.cfg.RemoteURL != "" {
		wsURL = a.cfg.RemoteURL
		a.cfg.Logger.Info("livedom: connecting to remote browser", "url", wsURL)
	} else {
		l := launcher.New().
			Headless(true).
			Set("disable-blink-features", "AutomationControlled")
		u, err := l.Launch()
		if err != nil {
			return nil, fmt.Errorf("livedom: launch: %w", err)
		}
		wsURL = u
		a.launcher = l
		a.cfg.Logger.Info("livedom: launched local chrome")
	}

	b := rod.New().ControlURL(wsURL)
	if err := b.Connect(); err != nil {
		return nil, fmt.Errorf("livedom: connect: %w", err)
	}
	if err := b.IgnoreCertErrors(true); err != nil {
		a.cfg.Logger.Warn("livedom: ignore cert errors failed", "error", err)
	}

	a.browser = b
	return b, nil
}
