package fetch

import (
	"context"
	"crypto/tls"
	"io"
	"net/http"
	"strconv"
	"time"
)

// Response is the subset of an HTTP response the checks consume.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// ContentLength returns the declared Content-Length, if any.
func (r *Response) ContentLength() (int64, bool) {
	v := r.Header.Get("Content-Length")
	if v == "" {
		return 0, false
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

// Fetcher performs the network probes needed by the checks. Non-2xx
// responses are returned as responses; only transport failures are errors.
type Fetcher interface {
	Head(ctx context.Context, url string, timeout time.Duration) (*Response, error)
	Get(ctx context.Context, url string, timeout time.Duration) (*Response, error)
}

type Config struct {
	Timeout            time.Duration
	UserAgent          string
	InsecureSkipVerify bool
	Concurrency        int
	MaxBodyBytes       int64
}

func DefaultConfig() Config {
	return Config{
		Timeout:      10 * time.Second,
		UserAgent:    "WebVitals/1.0",
		Concurrency:  8,
		MaxBodyBytes: 2 << 20,
	}
}

// Client is the net/http backed Fetcher.
type Client struct {
	httpClient *http.Client
	config     Config
}

func NewClient(config Config) *Client {
	defaults := DefaultConfig()
	if config.Timeout <= 0 {
		config.Timeout = defaults.Timeout
	}
	if config.UserAgent == "" {
		config.UserAgent = defaults.UserAgent
	}
	if config.Concurrency <= 0 {
		config.Concurrency = defaults.Concurrency
	}
	if config.MaxBodyBytes <= 0 {
		config.MaxBodyBytes = defaults.MaxBodyBytes
	}

	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.MaxIdleConnsPerHost = config.Concurrency
	if config.InsecureSkipVerify {
		transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true} //nolint:gosec
	}

	return &Client{
		httpClient: &http.Client{Transport: transport, Timeout: config.Timeout},
		config:     config,
	}
}

func (c *Client) Config() Config {
	return c.config
}

func (c *Client) Head(ctx context.Context, url string, timeout time.Duration) (*Response, error) {
	return c.do(ctx, http.MethodHead, url, timeout)
}

func (c *Client) Get(ctx context.Context, url string, timeout time.Duration) (*Response, error) {
	return c.do(ctx, http.MethodGet, url, timeout)
}

func (c *Client) do(ctx context.Context, method, url string, timeout time.Duration) (*Response, error) {
	if timeout <= 0 {
		timeout = c.config.Timeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, method, url, nil)
	if err != nil {
		return nil, &TransportError{URL: url, Kind: KindUnexpected, Err: err}
	}
	req.Header.Set("User-Agent", c.config.UserAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, classify(url, err)
	}
	defer resp.Body.Close()

	out := &Response{StatusCode: resp.StatusCode, Header: resp.Header.Clone()}
	if method == http.MethodGet {
		body, err := io.ReadAll(io.LimitReader(resp.Body, c.config.MaxBodyBytes))
		if err != nil {
			return nil, classify(url, err)
		}
		out.Body = body
	}
	return out, nil
}
