package livedom

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// maxBody caps HTTP body reads to prevent runaway downloads.
const maxBody = 10 << 20

// FetchResult is the outcome of the plain-HTTP acquisition path.
type FetchResult struct {
	HTML       []byte
	StatusCode int
	// Sufficient is true when the HTML carries enough rendered text that a
	// browser pass is not needed.
	Sufficient bool
}

func (a *Acquirer) fetch(ctx context.Context, pageURL string) (*FetchResult, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("livedom: new request: %w", err)
	}
	req.Header.Set("User-Agent", a.cfg.UserAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "sv-SE,sv;q=0.9,en;q=0.5")

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("livedom: do: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return nil, fmt.Errorf("livedom: read body: %w", err)
	}

	res := &FetchResult{
		HTML:       body,
		StatusCode: resp.StatusCode,
		Sufficient: a.cfg.Sufficiency.Check(body),
	}
	a.cfg.Logger.Debug("livedom: fetched",
		"url", pageURL, "status", resp.StatusCode,
		"size", len(body), "sufficient", res.Sufficient)
	return res, nil
}

func newHTTPClient(timeout time.Duration) *http.Client {
	return &http.Client{Timeout: timeout}
}
