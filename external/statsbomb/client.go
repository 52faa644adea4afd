// Package statsbomb fetches the StatsBomb open data feed. Responses
// are cached on disk verbatim so reruns never depend on the network.
package statsbomb

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	crerr "github.com/cockroachdb/errors"
	"github.com/valyala/bytebufferpool"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/riskibarqy/pitchmart/internal/platform/logging"
	"github.com/riskibarqy/pitchmart/internal/platform/resilience"
	"github.com/riskibarqy/pitchmart/internal/usecase"
)

const defaultBaseURL = "https://raw.githubusercontent.com/statsbomb/open-data/master/data"

var errTransient = crerr.New("statsbomb transient failure")

type ClientConfig struct {
	HTTPClient     *http.Client
	BaseURL        string
	RawDir         string
	Timeout        time.Duration
	MaxRetries     int
	Logger         *logging.Logger
	CircuitBreaker resilience.BreakerConfig
}

type Client struct {
	httpClient     *http.Client
	baseURL        string
	rawDir         string
	maxRetries     int
	logger         *logging.Logger
	breaker        *resilience.Breaker
	circuitEnabled bool
}

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{
			Timeout:   cfg.Timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		}
	}
	if httpClient.Timeout <= 0 {
		httpClient.Timeout = 30 * time.Second
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	breakerCfg := resilience.NormalizeBreakerConfig(cfg.CircuitBreaker)

	return &Client{
		httpClient:     httpClient,
		baseURL:        baseURL,
		rawDir:         cfg.RawDir,
		maxRetries:     max(cfg.MaxRetries, 0),
		logger:         logger,
		breaker:        resilience.NewBreaker(breakerCfg),
		circuitEnabled: breakerCfg.Enabled,
	}
}

// Competitions fetches the competitions index.
func (c *Client) Competitions(ctx context.Context, force bool) ([]byte, error) {
	return c.fetch(ctx, "/competitions.json", filepath.Join("competitions", "competitions.json"), force)
}

// Matches fetches one season's match list.
func (c *Client) Matches(ctx context.Context, competitionID, seasonID int64, force bool) ([]byte, error) {
	path := fmt.Sprintf("/matches/%d/%d.json", competitionID, seasonID)
	cache := filepath.Join("matches", fmt.Sprintf("%d", competitionID), fmt.Sprintf("%d.json", seasonID))
	return c.fetch(ctx, path, cache, force)
}

// Events fetches one match's event stream.
func (c *Client) Events(ctx context.Context, matchID int64, force bool) ([]byte, error) {
	path := fmt.Sprintf("/events/%d.json", matchID)
	return c.fetch(ctx, path, filepath.Join("events", fmt.Sprintf("%d.json", matchID)), force)
}

// Lineups fetches one match's lineups.
func (c *Client) Lineups(ctx context.Context, matchID int64, force bool) ([]byte, error) {
	path := fmt.Sprintf("/lineups/%d.json", matchID)
	return c.fetch(ctx, path, filepath.Join("lineups", fmt.Sprintf("%d.json", matchID)), force)
}

func (c *Client) fetch(ctx context.Context, path, cacheRel string, force bool) ([]byte, error) {
	cachePath := ""
	if c.rawDir != "" {
		cachePath = filepath.Join(c.rawDir, cacheRel)
		if !force {
			if raw, err := os.ReadFile(cachePath); err == nil {
				return raw, nil
			}
		}
	}

	if c.circuitEnabled {
		if err := c.breaker.Allow(); err != nil {
			c.logger.WarnContext(ctx, "statsbomb circuit breaker rejected request", "state", c.breaker.State())
			return nil, fmt.Errorf("%w: open data feed is temporarily unavailable", usecase.ErrDependencyUnavailable)
		}
	}

	raw, err := c.executeRequest(ctx, c.baseURL+path)
	if c.circuitEnabled {
		if err != nil && crerr.Is(err, errTransient) {
			c.breaker.RecordFailure()
		} else {
			c.breaker.RecordSuccess()
		}
	}
	if err != nil {
		return nil, err
	}

	if cachePath != "" {
		if err := writeCacheFile(cachePath, raw); err != nil {
			c.logger.WarnContext(ctx, "write raw cache failed", "path", cachePath, "error", err)
		}
	}
	return raw, nil
}

func (c *Client) executeRequest(ctx context.Context, fullURL string) ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
		if err != nil {
			return nil, crerr.Wrap(err, "build request")
		}
		req.Header.Set("accept", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = fmt.Errorf("%w: send request: %v", errTransient, err)
		} else {
			raw, readErr := readBody(resp.Body)
			_ = resp.Body.Close()
			switch {
			case readErr != nil:
				lastErr = fmt.Errorf("%w: read response body: %v", errTransient, readErr)
			case resp.StatusCode >= 200 && resp.StatusCode < 300:
				return raw, nil
			case isRetryableStatus(resp.StatusCode):
				lastErr = fmt.Errorf("%w: feed status=%d url=%s", errTransient, resp.StatusCode, fullURL)
			default:
				return nil, fmt.Errorf("feed status=%d url=%s", resp.StatusCode, fullURL)
			}
		}

		if attempt == c.maxRetries {
			break
		}
		backoff := time.Duration(attempt+1) * time.Second
		timer := time.NewTimer(backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	if lastErr == nil {
		lastErr = crerr.New("feed request failed")
	}
	c.logger.WarnContext(ctx, "statsbomb request failed", "url", fullURL, "error", lastErr)
	return nil, lastErr
}

// readBody drains through a pooled buffer; event files run to several
// megabytes and the pipeline fetches hundreds of them per run.
func readBody(body io.Reader) ([]byte, error) {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	if _, err := io.Copy(buf, io.LimitReader(body, 64<<20)); err != nil {
		return nil, err
	}
	out := make([]byte, len(buf.B))
	copy(out, buf.B)
	return out, nil
}

func isRetryableStatus(status int) bool {
	return status == http.StatusTooManyRequests || status >= 500
}

func writeCacheFile(path string, raw []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}
