package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-logr/logr"

	"github.com/imamik/colonyctl/internal/config"
	"github.com/imamik/colonyctl/internal/gateway"
	"github.com/imamik/colonyctl/internal/util/retry"
)

// maxErrorBody bounds how much of an error response is kept in messages.
const maxErrorBody = 4 << 10

// Client talks to the backend API. It implements gateway.ClusterGateway and
// gateway.NodesProvider.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
	timeouts   *config.Timeouts
	metrics    *Metrics
	log        logr.Logger
}

var (
	_ gateway.ClusterGateway = (*Client)(nil)
	_ gateway.NodesProvider  = (*Client)(nil)
)

// Option configures a Client.
type Option func(*Client)

// WithToken sets the bearer token sent with every request.
func WithToken(token string) Option {
	return func(c *Client) {
		c.token = token
	}
}

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithTimeouts sets API, retry and import-wait timeouts.
func WithTimeouts(t *config.Timeouts) Option {
	return func(c *Client) {
		if t != nil {
			c.timeouts = t
		}
	}
}

// WithMetrics enables API call metrics.
func WithMetrics(m *Metrics) Option {
	return func(c *Client) {
		c.metrics = m
	}
}

// WithLogger sets the logger.
func WithLogger(log logr.Logger) Option {
	return func(c *Client) {
		c.log = log
	}
}

// New creates a Client for the API rooted at baseURL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		log:     logr.Discard(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.timeouts == nil {
		c.timeouts = config.LoadTimeouts()
	}
	if c.httpClient == nil {
		c.httpClient = &http.Client{Timeout: c.timeouts.API}
	}
	return c
}

// do sends one logical API call, retrying transient failures. Non-idempotent
// methods are only retried when rate limited. in is encoded
// as the JSON request body when non-nil; the response is decoded into out
// when non-nil.
func (c *Client) do(ctx context.Context, op, method, path string, in, out any) error {
	var body []byte
	if in != nil {
		var err error
		if body, err = json.Marshal(in); err != nil {
			return fmt.Errorf("failed to encode %s request: %w", op, err)
		}
	}

	start := time.Now()
	err := retry.WithExponentialBackoff(ctx, func() error {
		err := c.attempt(ctx, op, method, path, body, out)
		if err != nil && !idempotent(method) && !rateLimited(err) {
			// The backend may have applied the command before failing.
			return retry.Fatal(err)
		}
		return err
	},
		retry.WithMaxRetries(c.timeouts.RetryMaxAttempts),
		retry.WithInitialDelay(c.timeouts.RetryInitialDelay),
		retry.WithOnRetry(func(attempt int, err error) {
			c.log.V(1).Info("retrying backend call", "operation", op, "attempt", attempt, "error", err.Error())
		}),
	)
	c.metrics.recordCall(op, err, time.Since(start))
	return err
}

func (c *Client) attempt(ctx context.Context, op, method, path string, body []byte, out any) error {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return retry.Fatal(fmt.Errorf("failed to build %s request: %w", op, err))
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return retry.Fatal(fmt.Errorf("%s request failed: %w", op, ctx.Err()))
		}
		return fmt.Errorf("%s request failed: %w", op, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		if out == nil || resp.StatusCode == http.StatusNoContent {
			return nil
		}
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil && !errors.Is(err, io.EOF) {
			return retry.Fatal(fmt.Errorf("failed to decode %s response: %w", op, err))
		}
		return nil
	}

	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	cmdErr := &gateway.CommandError{
		Operation:  op,
		StatusCode: resp.StatusCode,
		Message:    errorMessage(raw, resp.Status),
	}
	if resp.StatusCode == http.StatusTooManyRequests {
		return retry.After(cmdErr, retryAfter(resp.Header.Get("Retry-After")))
	}
	if resp.StatusCode >= 500 {
		return cmdErr
	}
	return retry.Fatal(cmdErr)
}

// idempotent reports whether repeating a request with method cannot apply
// a command twice.
func idempotent(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodPut, http.MethodDelete:
		return true
	}
	return false
}

// rateLimited reports whether the backend rejected the request before
// processing it.
func rateLimited(err error) bool {
	var cmdErr *gateway.CommandError
	return errors.As(err, &cmdErr) && cmdErr.StatusCode == http.StatusTooManyRequests
}

// retryAfter reads a Retry-After header given in seconds. HTTP dates and
// invalid values yield zero, which keeps the regular backoff.
func retryAfter(header string) time.Duration {
	secs, err := strconv.Atoi(strings.TrimSpace(header))
	if err != nil || secs < 0 {
		return 0
	}
	return time.Duration(secs) * time.Second
}

// errorBody covers the error shapes the API returns.
type errorBody struct {
	Detail  string `json:"detail"`
	Message string `json:"message"`
	Error   string `json:"error"`
}

func errorMessage(raw []byte, status string) string {
	var eb errorBody
	if json.Unmarshal(raw, &eb) == nil {
		for _, m := range []string{eb.Detail, eb.Message, eb.Error} {
			if m != "" {
				return m
			}
		}
	}
	if msg := strings.TrimSpace(string(raw)); msg != "" {
		return msg
	}
	return status
}
