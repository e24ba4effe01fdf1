package http

import (
	"context"
	"errors"
	"math"
	"net/http"
	neturl "net/url"
	"os"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/elentirmo/agraph-java-client/packages/protocol"
)

const (
	// DefaultIdleConnTimeout is how long idle connections stay in the pool
	DefaultIdleConnTimeout = 90 * time.Second
	// DefaultMaxIdleConnsPerHost keeps every concurrently used connection reusable.
	DefaultMaxIdleConnsPerHost = math.MaxInt32
)

// Client talks to one AllegroGraph server. It is safe for concurrent use; each call
// is an independent request on the shared connection pool.
type Client struct {
	serverURL      string
	httpClient     *http.Client
	transport      *http.Transport // set when the client owns its pool
	timeout        time.Duration
	useGzip        bool
	logger         zerolog.Logger
	defaultHeaders http.Header

	mu               sync.RWMutex
	creds            *credentials
	masqueradeAsUser string

	inUse  atomic.Int64
	closed atomic.Bool
}

type credentials struct {
	host     string
	username string
	password string
}

type ClientOption func(*Client)

// NewClient creates a client for the server at serverURL. A trailing slash is removed.
func NewClient(serverURL string, opts ...ClientOption) *Client {
	c := &Client{
		serverURL:      strings.TrimSuffix(serverURL, "/"),
		useGzip:        true,
		logger:         defaultLogger(),
		defaultHeaders: make(http.Header),
		httpClient:     &http.Client{},
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.httpClient.Transport == nil {
		c.transport = newPooledTransport()
		c.httpClient.Transport = c.transport
	}
	c.httpClient.Timeout = c.timeout

	c.logger.Debug().Str("server", c.serverURL).Msg("connect")
	return c
}

func defaultLogger() zerolog.Logger {
	return zerolog.New(os.Stderr).Level(zerolog.WarnLevel).With().Timestamp().Logger()
}

// newPooledTransport removes the per-host connection cap so that many requests to the
// same server can be in flight at once.
func newPooledTransport() *http.Transport {
	t := http.DefaultTransport.(*http.Transport).Clone()
	t.MaxIdleConns = 0
	// gzip is negotiated by the client itself so that WithGzip(false) really turns it off
	t.DisableCompression = true
	t.MaxConnsPerHost = 0
	t.MaxIdleConnsPerHost = DefaultMaxIdleConnsPerHost
	t.IdleConnTimeout = DefaultIdleConnTimeout
	return t
}

// WithTimeout bounds each request, including reading the body. Zero means no limit.
func WithTimeout(d time.Duration) ClientOption {
	return func(c *Client) {
		c.timeout = d
	}
}

// WithTransport uses rt instead of a pool owned by the client. Close does not shut
// rt down.
func WithTransport(rt http.RoundTripper) ClientOption {
	return func(c *Client) {
		c.httpClient.Transport = rt
	}
}

// WithGzip toggles Accept-Encoding: gzip on GET and POST requests.
func WithGzip(enabled bool) ClientOption {
	return func(c *Client) {
		c.useGzip = enabled
	}
}

func WithLogger(logger zerolog.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

func WithCredentials(username, password string) ClientOption {
	return func(c *Client) {
		c.SetCredentials(username, password)
	}
}

func WithMasqueradeUser(user string) ClientOption {
	return func(c *Client) {
		c.SetMasqueradeUser(user)
	}
}

// WithDefaultHeader adds a header to every request.
func WithDefaultHeader(key, value string) ClientOption {
	return func(c *Client) {
		c.defaultHeaders.Add(key, value)
	}
}

func (c *Client) ServerURL() string {
	return c.serverURL
}

func (c *Client) Logger() zerolog.Logger {
	return c.logger
}

// InUse is the number of responses whose connection has not been released yet.
func (c *Client) InUse() int64 {
	return c.inUse.Load()
}

// SetCredentials sets HTTP Basic credentials for the server's host, on any port, and
// sends them preemptively. If either value is empty the credentials are cleared.
func (c *Client) SetCredentials(username, password string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if username == "" || password == "" {
		c.creds = nil
		return
	}

	u, err := neturl.Parse(c.serverURL)
	if err != nil || u.Hostname() == "" {
		c.logger.Warn().Err(err).Str("server", c.serverURL).Msg("unable to set username and password for malformed URL")
		c.creds = nil
		return
	}
	c.logger.Debug().Str("user", username).Str("server", c.serverURL).Msg("setting username and password")
	c.creds = &credentials{
		host:     strings.ToLower(u.Hostname()),
		username: username,
		password: password,
	}
}

// HasCredentials reports whether Basic credentials are configured.
func (c *Client) HasCredentials() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.creds != nil
}

// SetMasqueradeUser makes every request run as user. Superusers only; the server
// enforces it. An empty user turns masquerading off.
func (c *Client) SetMasqueradeUser(user string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.masqueradeAsUser = user
}

func (c *Client) MasqueradeUser() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.masqueradeAsUser
}

// Close releases the pooled connections of a client-owned transport. Requests made
// after Close fail.
func (c *Client) Close() error {
	if c.closed.Swap(true) {
		return nil
	}
	c.logger.Debug().Str("server", c.serverURL).Msg("close")
	if c.transport != nil {
		c.transport.CloseIdleConnections()
	}
	return nil
}

func (c *Client) IsClosed() bool {
	return c.closed.Load()
}

// applyAuth adds credentials, the masquerade header and keep-alive.
func (c *Client) applyAuth(req *http.Request) {
	c.mu.RLock()
	creds, masquerade := c.creds, c.masqueradeAsUser
	c.mu.RUnlock()

	if creds != nil && strings.EqualFold(req.URL.Hostname(), creds.host) {
		req.SetBasicAuth(creds.username, creds.password)
	}
	if masquerade != "" {
		req.Header.Set(protocol.HeaderMasquerade, masquerade)
	}
	req.Header.Set("Connection", "keep-alive")
}

// Execute sends req and passes a 200 response to handler, if any. Other 2xx
// responses succeed without invoking the handler. Failures are returned as *Error.
// The connection is released before Execute returns unless the handler succeeded
// and asked to keep it.
func (c *Client) Execute(ctx context.Context, req *Request, handler Handler) error {
	if c.closed.Load() {
		return &Error{Kind: KindRequestFailed, Method: req.Method, URL: req.URL, Message: "client is closed", Err: ErrClientClosed}
	}

	req.Method = strings.ToUpper(req.Method)
	if req.Header == nil {
		req.Header = make(http.Header)
	}
	if handler != nil && req.Header.Get(protocol.HeaderAccept) == "" {
		req.Header.Set(protocol.HeaderAccept, handler.MIMEType())
	}

	httpReq, err := req.build(ctx)
	if err != nil {
		return &Error{Kind: KindRequestFailed, Method: req.Method, URL: req.URL, Message: "invalid request", Err: err}
	}
	c.applyAuth(httpReq)
	for k, values := range c.defaultHeaders {
		if httpReq.Header.Get(k) == "" {
			for _, v := range values {
				httpReq.Header.Add(k, v)
			}
		}
	}
	if c.useGzip && (req.Method == http.MethodGet || req.Method == http.MethodPost) {
		httpReq.Header.Set("Accept-Encoding", "gzip")
	}

	c.logger.Debug().Str("method", req.Method).Str("url", req.URL).Msg("request")

	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return &Error{Kind: KindRequestFailed, Method: req.Method, URL: req.URL, Err: err}
	}

	c.inUse.Add(1)
	resp := newResponse(req, httpResp, c.logger)
	resp.onClose = func() { c.inUse.Add(-1) }

	release := true
	defer func() {
		if release {
			resp.Release()
		}
	}()

	switch code := httpResp.StatusCode; {
	case code == http.StatusOK:
		if handler == nil {
			return nil
		}
		if err := handler.Handle(resp); err != nil {
			return c.handlerError(req, err)
		}
		release = handler.ReleaseConnection()
		return nil

	case code == http.StatusUnauthorized:
		return &Error{Kind: KindUnauthorized, Method: req.Method, URL: req.URL, StatusCode: code, Message: "unauthorized"}

	case code < 200 || code >= 300:
		errHandler := NewErrorHandler()
		_ = errHandler.Handle(resp)
		info := errHandler.Result()
		kind := info.Kind()
		c.logger.Warn().
			Str("method", req.Method).
			Str("url", req.URL).
			Int("status", code).
			Str("kind", kind.String()).
			Msg(info.String())
		return &Error{Kind: kind, Method: req.Method, URL: req.URL, StatusCode: code, Message: info.String(), Info: &info}
	}

	return nil
}

// handlerError stamps the request onto a handler failure.
func (c *Client) handlerError(req *Request, err error) error {
	var e *Error
	if errors.As(err, &e) {
		if e.URL == "" {
			e.Method, e.URL = req.Method, req.URL
		}
		return e
	}
	return &Error{Kind: KindRequestFailed, Method: req.Method, URL: req.URL, Message: "reading response", Err: err}
}

// Get issues a GET; params go to the query string.
func (c *Client) Get(ctx context.Context, url string, header http.Header, params neturl.Values, handler Handler) error {
	return c.Execute(ctx, newRequest(http.MethodGet, url, header, params, nil), handler)
}

// Post issues a POST. Without an entity, params are form-encoded into the body.
func (c *Client) Post(ctx context.Context, url string, header http.Header, params neturl.Values, entity *Entity, handler Handler) error {
	return c.Execute(ctx, newRequest(http.MethodPost, url, header, params, entity), handler)
}

// Put issues a PUT, encoding params like Post.
func (c *Client) Put(ctx context.Context, url string, header http.Header, params neturl.Values, entity *Entity, handler Handler) error {
	return c.Execute(ctx, newRequest(http.MethodPut, url, header, params, entity), handler)
}

// Delete issues a DELETE; params go to the query string.
func (c *Client) Delete(ctx context.Context, url string, header http.Header, params neturl.Values, handler Handler) error {
	return c.Execute(ctx, newRequest(http.MethodDelete, url, header, params, nil), handler)
}

func newRequest(method, url string, header http.Header, params neturl.Values, entity *Entity) *Request {
	req := NewRequest(method, url)
	if header != nil {
		req.Header = header.Clone()
	}
	if params != nil {
		req.Params = params
	}
	req.Entity = entity
	return req
}
