package client

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	json "github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	gobreaker "github.com/sony/gobreaker/v2"
	"golang.org/x/time/rate"

	"github.com/relaydesk/relayctl/pkg/api/types"
	"github.com/relaydesk/relayctl/pkg/logging"
)

const (
	apiPrefix       = "/api/v1"
	requestIDHeader = "X-Request-ID"

	// DefaultTimeout bounds a single request.
	DefaultTimeout = 30 * time.Second
)

// Client is an HTTP client for the relay backend.
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        *slog.Logger

	mu    sync.RWMutex
	token string

	metrics *clientMetrics
	breaker *gobreaker.TwoStepCircuitBreaker[struct{}]
	limiter *rate.Limiter
}

// Option configures a Client.
type Option func(*Client)

// WithTimeout sets the HTTP timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

// WithToken sets the bearer token.
func WithToken(token string) Option {
	return func(c *Client) {
		c.token = token
	}
}

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithLogger sets the logger for request tracing at debug level.
func WithLogger(log *slog.Logger) Option {
	return func(c *Client) {
		if log != nil {
			c.log = log
		}
	}
}

// WithMetrics registers request counters and latency histograms on reg.
func WithMetrics(reg prometheus.Registerer) Option {
	return func(c *Client) {
		if reg != nil {
			c.metrics = newClientMetrics(reg)
		}
	}
}

// WithCircuitBreaker fails requests fast with ErrCircuitOpen after repeated
// transport errors or 5xx responses. 4xx responses never count as failures.
func WithCircuitBreaker(settings BreakerSettings) Option {
	return func(c *Client) {
		c.breaker = newBreaker(settings, c)
	}
}

// WithRateLimit paces outgoing requests to rps with the given burst.
func WithRateLimit(rps float64, burst int) Option {
	return func(c *Client) {
		if rps > 0 {
			if burst < 1 {
				burst = 1
			}
			c.limiter = rate.NewLimiter(rate.Limit(rps), burst)
		}
	}
}

// New creates a new client. baseURL is the backend root, e.g. "http://localhost:8080".
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
		log: logging.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the backend root the client talks to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// SetToken replaces the bearer token; an empty token sends no Authorization header.
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
}

// Token returns the current bearer token.
func (c *Client) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

type requestIDKey struct{}

// WithRequestID makes the client send id as X-Request-ID for requests made with ctx.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

func requestIDFrom(ctx context.Context) string {
	if id, ok := ctx.Value(requestIDKey{}).(string); ok && id != "" {
		return id
	}
	return uuid.NewString()
}

// HTTP helpers

func (c *Client) get(ctx context.Context, op, path string, query url.Values) (*response, error) {
	if len(query) > 0 {
		path += "?" + query.Encode()
	}
	return c.send(ctx, op, http.MethodGet, path, nil)
}

func (c *Client) post(ctx context.Context, op, path string, body any) (*response, error) {
	return c.send(ctx, op, http.MethodPost, path, body)
}

func (c *Client) put(ctx context.Context, op, path string, body any) (*response, error) {
	return c.send(ctx, op, http.MethodPut, path, body)
}

func (c *Client) delete(ctx context.Context, op, path string, body any) (*response, error) {
	return c.send(ctx, op, http.MethodDelete, path, body)
}

// response is a received HTTP response together with the id it was sent with.
type response struct {
	*http.Response
	requestID string
}

func (c *Client) send(ctx context.Context, op, method, path string, body any) (*response, error) {
	var reader io.Reader
	if body != nil {
		var buf bytes.Buffer
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			return nil, fmt.Errorf("failed to encode %s request: %w", op, err)
		}
		reader = &buf
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	requestID := requestIDFrom(ctx)
	req.Header.Set(requestIDHeader, requestID)
	if token := c.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, err
		}
	}

	var done func(err error)
	if c.breaker != nil {
		done, err = c.breaker.Allow()
		if err != nil {
			c.metrics.observe(op, "rejected", 0)
			return nil, fmt.Errorf("%s: %w: %w", op, ErrCircuitOpen, err)
		}
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	elapsed := time.Since(start)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			if done != nil {
				done(nil)
			}
			return nil, ctxErr
		}
		if done != nil {
			done(err)
		}
		c.metrics.observe(op, "error", elapsed)
		c.log.Debug("request failed", "op", op, "method", method, "path", path, "request_id", requestID, "error", err)
		return nil, fmt.Errorf("%w: %w", ErrUnreachable, err)
	}
	if done != nil {
		if resp.StatusCode >= 500 {
			done(fmt.Errorf("status %d", resp.StatusCode))
		} else {
			done(nil)
		}
	}
	c.metrics.observe(op, statusClass(resp.StatusCode), elapsed)
	c.log.Debug("request", "op", op, "method", method, "path", path,
		"status", resp.StatusCode, "request_id", requestID, "duration", elapsed)
	return &response{Response: resp, requestID: requestID}, nil
}

// decode checks the status of resp and unwraps the envelope into out.
// out may be nil for operations without a payload.
func decode(resp *response, out any, what string) error {
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return parseError(resp.Response, resp.requestID)
	}
	if out == nil {
		return nil
	}
	var env types.Envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return fmt.Errorf("failed to decode %s: %w", what, err)
	}
	if len(env.Data) == 0 || string(env.Data) == "null" {
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("failed to decode %s: %w", what, err)
	}
	return nil
}

func closeBody(resp *response) {
	_, _ = io.Copy(io.Discard, resp.Body)
	_ = resp.Body.Close()
}

func statusClass(code int) string {
	return strconv.Itoa(code/100) + "xx"
}

func itoa(id int64) string {
	return strconv.FormatInt(id, 10)
}

// pageQuery encodes page/limit, omitting zero values.
func pageQuery(page, limit int) url.Values {
	q := url.Values{}
	if page > 0 {
		q.Set("page", strconv.Itoa(page))
	}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	return q
}

// decodeList unwraps a list payload. Each family names its item array
// differently (key); total/page/limit are shared.
func decodeList[T any](resp *response, key, what string) (*types.Page[T], error) {
	var raw map[string]json.RawMessage
	if err := decode(resp, &raw, what); err != nil {
		return nil, err
	}
	page := &types.Page[T]{Items: []T{}}
	if v, ok := raw[key]; ok && string(v) != "null" {
		if err := json.Unmarshal(v, &page.Items); err != nil {
			return nil, fmt.Errorf("failed to decode %s: %w", what, err)
		}
	}
	for name, dst := range map[string]*int{"total": &page.Total, "page": &page.Page, "limit": &page.Limit} {
		if v, ok := raw[name]; ok {
			if err := json.Unmarshal(v, dst); err != nil {
				return nil, fmt.Errorf("failed to decode %s %s: %w", what, name, err)
			}
		}
	}
	return page, nil
}
