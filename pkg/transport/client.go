// Package transport provides the HTTP client handle bound to one Vepler
// service: a base host, a timeout, common headers, and the API key.
package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/time/rate"
)

// APIKeyHeader carries the account API key on every request.
const APIKeyHeader = "x-api-key"

// RequestIDHeader carries a per-request UUID for correlating with server logs.
const RequestIDHeader = "X-Request-ID"

// Client issues requests against a single service host.
type Client interface {
	// Query issues a GET for path with the given query parameters and decodes
	// the JSON response into out (which may be nil).
	Query(ctx context.Context, path string, query url.Values, out any, opts ...RequestOption) error
	// Post issues a POST with body encoded as JSON and decodes the response into out.
	Post(ctx context.Context, path string, body, out any, opts ...RequestOption) error
	// Get issues a GET for path and returns the raw response body.
	Get(ctx context.Context, path string, opts ...RequestOption) ([]byte, error)
	// Config returns the configuration the client was bound with.
	Config() Config
}

// Config binds a client to one service.
type Config struct {
	Service  string
	Host     string
	Timeout  time.Duration
	LogLevel string
	Headers  map[string]string
	APIKey   string
}

// Option configures the client.
type Option func(*httpClient)

// WithHTTPClient sets a custom HTTP client. Its Timeout is left untouched;
// per-request deadlines come from Config.Timeout.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *httpClient) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithRateLimit caps outgoing requests per second. Zero or negative disables it.
func WithRateLimit(rps float64) Option {
	return func(c *httpClient) {
		if rps <= 0 {
			c.limiter = nil
			return
		}
		burst := int(rps)
		if burst < 1 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(rps), burst)
	}
}

// WithMetrics records request counts and latencies.
func WithMetrics(m *Metrics) Option {
	return func(c *httpClient) {
		c.metrics = m
	}
}

// WithLogger sets the base logger. Defaults to zap.L().
func WithLogger(l *zap.Logger) Option {
	return func(c *httpClient) {
		if l != nil {
			c.log = l
		}
	}
}

// RequestOption adjusts a single request.
type RequestOption func(*requestOpts)

type requestOpts struct {
	timeout time.Duration
	headers map[string]string
	accept  string
}

// WithTimeout overrides the client timeout for one request.
func WithTimeout(d time.Duration) RequestOption {
	return func(o *requestOpts) {
		if d > 0 {
			o.timeout = d
		}
	}
}

// WithHeader adds a header to one request.
func WithHeader(key, value string) RequestOption {
	return func(o *requestOpts) {
		if o.headers == nil {
			o.headers = map[string]string{}
		}
		o.headers[key] = value
	}
}

// WithAccept overrides the Accept header, e.g. for binary tile responses.
func WithAccept(mime string) RequestOption {
	return func(o *requestOpts) {
		o.accept = mime
	}
}

// RequestTimeout returns the deadline opts apply to a request on a client
// whose configured timeout is def.
func RequestTimeout(def time.Duration, opts ...RequestOption) time.Duration {
	ro := requestOpts{timeout: def}
	for _, opt := range opts {
		opt(&ro)
	}
	return ro.timeout
}

type httpClient struct {
	cfg     Config
	base    *url.URL
	http    *http.Client
	limiter *rate.Limiter
	metrics *Metrics
	log     *zap.Logger
}

// New creates a client for cfg. It fails when the host is not an absolute
// http(s) URL or the log level is unknown.
func New(cfg Config, opts ...Option) (Client, error) {
	if cfg.Service == "" {
		return nil, eris.New("transport: service name is required")
	}

	base, err := url.Parse(cfg.Host)
	if err != nil {
		return nil, eris.Wrapf(err, "transport: %s: parse host %q", cfg.Service, cfg.Host)
	}
	if (base.Scheme != "http" && base.Scheme != "https") || base.Host == "" {
		return nil, eris.Errorf("transport: %s: host %q must be an absolute http(s) URL", cfg.Service, cfg.Host)
	}

	level := zapcore.InfoLevel
	if cfg.LogLevel != "" {
		level, err = zapcore.ParseLevel(cfg.LogLevel)
		if err != nil {
			return nil, eris.Wrapf(err, "transport: %s: parse log level", cfg.Service)
		}
	}

	headers := make(map[string]string, len(cfg.Headers))
	for k, v := range cfg.Headers {
		headers[k] = v
	}
	cfg.Headers = headers

	c := &httpClient{
		cfg:  cfg,
		base: base,
		http: &http.Client{
			Transport: &http.Transport{
				Proxy:               http.ProxyFromEnvironment,
				MaxIdleConnsPerHost: 20,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		log: zap.L(),
	}
	for _, opt := range opts {
		opt(c)
	}
	// IncreaseLevel cannot lower the base logger's level and reports an error when asked to.
	if level > c.log.Level() {
		c.log = c.log.WithOptions(zap.IncreaseLevel(level))
	}
	c.log = c.log.With(zap.String("service", cfg.Service))
	return c, nil
}

func (c *httpClient) Config() Config {
	out := c.cfg
	out.Headers = make(map[string]string, len(c.cfg.Headers))
	for k, v := range c.cfg.Headers {
		out.Headers[k] = v
	}
	return out
}

func (c *httpClient) Query(ctx context.Context, path string, query url.Values, out any, opts ...RequestOption) error {
	body, err := c.do(ctx, http.MethodGet, path, query, nil, opts)
	if err != nil {
		return err
	}
	return c.decode(path, body, out)
}

func (c *httpClient) Post(ctx context.Context, path string, body, out any, opts ...RequestOption) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return eris.Wrapf(err, "%s: marshal request", c.cfg.Service)
	}
	resp, err := c.do(ctx, http.MethodPost, path, nil, payload, opts)
	if err != nil {
		return err
	}
	return c.decode(path, resp, out)
}

func (c *httpClient) Get(ctx context.Context, path string, opts ...RequestOption) ([]byte, error) {
	return c.do(ctx, http.MethodGet, path, nil, nil, opts)
}

func (c *httpClient) decode(path string, body []byte, out any) error {
	if out == nil || len(bytes.TrimSpace(body)) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return eris.Wrapf(err, "%s: unmarshal response from %s", c.cfg.Service, path)
	}
	return nil
}

// resolve joins path onto the base host, keeping any base path prefix. path
// is taken as already escaped, so segments built with url.PathEscape survive.
func (c *httpClient) resolve(path string, query url.Values) string {
	u := *c.base
	raw := strings.TrimRight(c.base.EscapedPath(), "/") + path
	if unescaped, err := url.PathUnescape(raw); err == nil {
		u.Path, u.RawPath = unescaped, raw
	} else {
		u.Path, u.RawPath = strings.TrimRight(c.base.Path, "/")+path, ""
	}
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}
	return u.String()
}

func (c *httpClient) do(ctx context.Context, method, path string, query url.Values, payload []byte, opts []RequestOption) ([]byte, error) {
	ro := requestOpts{timeout: c.cfg.Timeout, accept: "application/json"}
	for _, opt := range opts {
		opt(&ro)
	}

	if ro.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, ro.timeout)
		defer cancel()
	}

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, eris.Wrapf(err, "%s: rate limit", c.cfg.Service)
		}
	}

	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}

	reqURL := c.resolve(path, query)
	req, err := http.NewRequestWithContext(ctx, method, reqURL, reader)
	if err != nil {
		return nil, eris.Wrapf(err, "%s: create request", c.cfg.Service)
	}

	for k, v := range c.cfg.Headers {
		req.Header.Set(k, v)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", ro.accept)
	for k, v := range ro.headers {
		req.Header.Set(k, v)
	}
	req.Header.Set(APIKeyHeader, c.cfg.APIKey)
	requestID := uuid.NewString()
	req.Header.Set(RequestIDHeader, requestID)

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.metrics.observe(c.cfg.Service, method, "error", time.Since(start))
		c.log.Debug("request failed",
			zap.String("method", method),
			zap.String("path", path),
			zap.String("request_id", requestID),
			zap.Error(err),
		)
		return nil, eris.Wrapf(err, "%s: %s %s", c.cfg.Service, method, path)
	}
	defer resp.Body.Close() //nolint:errcheck

	body, err := io.ReadAll(resp.Body)
	elapsed := time.Since(start)
	c.metrics.observe(c.cfg.Service, method, statusLabel(resp.StatusCode), elapsed)
	if err != nil {
		return nil, eris.Wrapf(err, "%s: read response", c.cfg.Service)
	}

	c.log.Debug("request complete",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("elapsed", elapsed),
		zap.String("request_id", requestID),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &RemoteError{
			Service:    c.cfg.Service,
			Method:     method,
			Path:       path,
			StatusCode: resp.StatusCode,
			Body:       body,
			RequestID:  requestID,
		}
	}
	return body, nil
}
