package alphavantage

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/sony/gobreaker"
	"golang.org/x/time/rate"
)

// Alphavantage is a Stock and ETF API that also publishes an earnings calendar
// It is a subscription service, but provides free API access
// https://www.alphavantage.co/documentation/
const defaultBaseURL = "https://www.alphavantage.co/query"

var (
	// ErrAPIMessage is returned when AlphaVantage answers 200 with a JSON
	// notice (rate limit, bad key) instead of data
	ErrAPIMessage = errors.New("alphavantage returned a notice instead of data")
	// ErrUnavailable is returned while the circuit breaker is open
	ErrUnavailable = errors.New("alphavantage temporarily unavailable")
)

// Client is an HTTP client for the AlphaVantage API. Requests are paced by a
// rate limiter and fail fast once several consecutive calls have failed.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
	breaker    *gobreaker.CircuitBreaker
}

// NewClient creates a new AlphaVantage client allowing requestsPerMinute calls
// (unlimited when not positive)
func NewClient(apiKey string, requestsPerMinute int) *Client {
	return NewClientWithBaseURL(apiKey, defaultBaseURL, requestsPerMinute)
}

// NewClientWithBaseURL creates a new AlphaVantage client with a custom base URL (for testing)
func NewClientWithBaseURL(apiKey, baseURL string, requestsPerMinute int) *Client {
	limit := rate.Inf
	if requestsPerMinute > 0 {
		limit = rate.Every(time.Minute / time.Duration(requestsPerMinute))
	}

	settings := gobreaker.Settings{
		Name:     "alphavantage",
		Interval: 60 * time.Second,
		Timeout:  60 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 3
		},
	}

	return &Client{
		apiKey:  apiKey,
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		limiter: rate.NewLimiter(limit, 1),
		breaker: gobreaker.NewCircuitBreaker(settings),
	}
}

// doRequest performs a GET with params and returns the body
func (c *Client) doRequest(ctx context.Context, params url.Values) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter: %w", err)
	}

	body, err := c.breaker.Execute(func() (interface{}, error) {
		return c.fetch(ctx, params)
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if err != nil {
		return nil, err
	}
	return body.([]byte), nil
}

func (c *Client) fetch(ctx context.Context, params url.Values) ([]byte, error) {
	params.Set("apikey", c.apiKey)
	reqURL := c.baseURL + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("API returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	// CSV endpoints still answer throttling and key problems with JSON
	if trimmed := bytes.TrimSpace(body); len(trimmed) > 0 && trimmed[0] == '{' {
		var notice apiNotice
		if err := json.Unmarshal(trimmed, &notice); err == nil {
			return nil, fmt.Errorf("%w: %s", ErrAPIMessage, notice.message())
		}
	}
	return body, nil
}
