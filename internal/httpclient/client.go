package httpclient

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	consts "github.com/khanhnv2901/cmsaudit/internal/shared/constants"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// DefaultUserAgent identifies outbound requests when no override is configured.
const DefaultUserAgent = "cmsaudit/1.0"

// Config holds settings for the HTTP client.
type Config struct {
	Timeout   time.Duration
	RateLimit int // requests per second, 0 disables pacing
	UserAgent string
	Logger    *zap.SugaredLogger
}

// Response is the part of an HTTP response the checks inspect.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// Prober issues a GET whose failure is not an error: an absent response is
// reported as ok == false.
type Prober interface {
	Get(ctx context.Context, rawURL string) (*Response, bool)
}

// Fetcher issues a GET and surfaces transport failures to the caller.
type Fetcher interface {
	Fetch(ctx context.Context, rawURL string) (*Response, error)
}

// Client implements Prober and Fetcher on top of net/http.
type Client struct {
	client  *http.Client
	limiter *rate.Limiter
	logger  *zap.SugaredLogger
}

// userAgentRoundTripper stamps every request with a fixed User-Agent.
type userAgentRoundTripper struct {
	base      http.RoundTripper
	userAgent string
}

func (u *userAgentRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	r := req.Clone(req.Context())
	r.Header.Set("User-Agent", u.userAgent)
	return u.base.RoundTrip(r)
}

// New returns a client with a short per-request timeout and no connection reuse.
func New(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = consts.DefaultProbeTimeout
	}
	userAgent := cfg.UserAgent
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}

	transport := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout: timeout,
		}).DialContext,
		TLSHandshakeTimeout: timeout,
		DisableKeepAlives:   true,
	}

	limiter := rate.NewLimiter(rate.Inf, 0)
	if cfg.RateLimit > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit), 1)
	}

	return &Client{
		client: &http.Client{
			Transport: &userAgentRoundTripper{base: transport, userAgent: userAgent},
			Timeout:   timeout,
		},
		limiter: limiter,
		logger:  logger,
	}
}

// Fetch performs a single GET. The body is read up to MaxBodyBytes and the
// connection is closed before returning.
func (c *Client) Fetch(ctx context.Context, rawURL string) (*Response, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("wait for rate limiter: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, consts.MaxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}

	return &Response{
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
		Body:       body,
	}, nil
}

// Get is Fetch with failures folded into ok == false.
func (c *Client) Get(ctx context.Context, rawURL string) (*Response, bool) {
	resp, err := c.Fetch(ctx, rawURL)
	if err != nil {
		c.logger.Debugw("probe skipped", "url", rawURL, "error", err)
		return nil, false
	}
	c.logger.Debugw("probe complete", "url", rawURL, "status", resp.StatusCode)
	return resp, true
}
