package fetch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-resty/resty/v2"
	"golang.org/x/time/rate"

	"StandingsScraper/internal/config"
	"StandingsScraper/internal/ports"
)

// Error reports a page that could not be retrieved. Status is zero when the
// request never got a response.
type Error struct {
	URL    string
	Status int
	Err    error
}

func (e *Error) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("fetch %s: unexpected status %d", e.URL, e.Status)
	}
	return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// ErrStatus is wrapped by errors for non-2xx responses.
var ErrStatus = errors.New("unexpected status")

// Client downloads pages with a browser-like user agent, spacing
// consecutive requests by the configured polite delay.
type Client struct {
	http   *resty.Client
	logger *slog.Logger
}

var _ ports.Fetcher = (*Client)(nil)

// NewClient builds a rate limited HTTP client from fetch settings.
func NewClient(cfg config.FetchConfig, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}

	httpClient := resty.New()
	httpClient.SetTimeout(cfg.Timeout)
	httpClient.SetHeader("User-Agent", cfg.UserAgent)
	httpClient.SetHeader("Accept", "text/html,application/xhtml+xml")
	httpClient.SetHeader("Accept-Language", "fr-FR,fr;q=0.9,en;q=0.8")

	if cfg.PoliteDelay > 0 {
		limiter := rate.NewLimiter(rate.Every(cfg.PoliteDelay), 1)
		httpClient.OnBeforeRequest(func(_ *resty.Client, req *resty.Request) error {
			return limiter.Wait(req.Context())
		})
	}

	return &Client{http: httpClient, logger: logger}
}

// Fetch returns the body of url or an *Error.
func (c *Client) Fetch(ctx context.Context, url string) ([]byte, error) {
	started := time.Now()
	resp, err := c.http.R().SetContext(ctx).Get(url)
	if err != nil {
		return nil, &Error{URL: url, Err: err}
	}
	if resp.IsError() || resp.StatusCode() >= 300 {
		return nil, &Error{URL: url, Status: resp.StatusCode(), Err: ErrStatus}
	}

	c.logger.Debug("page fetched",
		"url", url,
		"status", resp.StatusCode(),
		"bytes", len(resp.Body()),
		"elapsed", time.Since(started))
	return resp.Body(), nil
}
