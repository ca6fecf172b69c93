package memory

import (
	"bytes"
	"crypto/tls"
	"crypto/x509"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"golang.org/x/oauth2"
)

// Client is the main entry point for the resource API client.
type Client struct {
	baseURL     *url.URL
	token       string
	http        *http.Client
	tokenSource oauth2.TokenSource
	optErr      error

	// ownsTransport is set once c.http.Transport is a private copy.
	ownsTransport bool

	// Services
	Resource *ResourceService
	Projects *ProjectService
}

// Option is a functional option for configuring the Client.
type Option func(*Client)

// NewClient creates a new resource API client.
func NewClient(baseURL, token string, opts ...Option) (*Client, error) {
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, err
	}

	c := &Client{
		baseURL: u,
		token:   token,
		http: &http.Client{
			Timeout: 30 * time.Second,
		},
	}

	for _, opt := range opts {
		opt(c)
	}
	if c.optErr != nil {
		return nil, c.optErr
	}

	if c.tokenSource != nil {
		hc := *c.http
		hc.Transport = &oauth2.Transport{Source: c.tokenSource, Base: c.http.Transport}
		c.http = &hc
	}

	c.initializeServices()

	return c, nil
}

// BaseURL returns the API root the client was created with, always with a trailing slash.
func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

// WithHTTPClient allows providing a custom HTTP client.
// The client is copied, so later options never modify httpClient itself.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		hc := *httpClient
		c.http = &hc
		c.ownsTransport = false
	}
}

// WithTimeout overrides the request timeout of the underlying HTTP client.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.http.Timeout = d
	}
}

// WithInsecureTLS disables TLS certificate verification.
func WithInsecureTLS() Option {
	return func(c *Client) {
		c.tlsConfig().InsecureSkipVerify = true
	}
}

// WithCertificate trusts the PEM encoded certificate at path in addition to the system roots.
// Use it for self-hosted API instances with self-signed certificates.
func WithCertificate(path string) Option {
	return func(c *Client) {
		pem, err := os.ReadFile(path)
		if err != nil {
			c.optErr = fmt.Errorf("read certificate: %w", err)
			return
		}
		pool, err := x509.SystemCertPool()
		if err != nil || pool == nil {
			pool = x509.NewCertPool()
		}
		if !pool.AppendCertsFromPEM(pem) {
			c.optErr = fmt.Errorf("no certificates found in %s", path)
			return
		}
		c.tlsConfig().RootCAs = pool
	}
}

// WithTokenSource authenticates every request with tokens from ts.
// The static token passed to NewClient is ignored when a token source is set.
func WithTokenSource(ts oauth2.TokenSource) Option {
	return func(c *Client) {
		c.tokenSource = ts
	}
}

func (c *Client) tlsConfig() *tls.Config {
	t, ok := c.http.Transport.(*http.Transport)
	if !ok || t == nil {
		t = http.DefaultTransport.(*http.Transport)
	}
	if !c.ownsTransport {
		t = t.Clone()
		c.http.Transport = t
		c.ownsTransport = true
	}
	if t.TLSClientConfig == nil {
		t.TLSClientConfig = &tls.Config{}
	}
	return t.TLSClientConfig
}

func (c *Client) initializeServices() {
	c.Resource = &ResourceService{client: c}
	c.Projects = &ProjectService{client: c}
}

func (c *Client) authorize(req *http.Request) {
	inbound := inboundHeaders(req.Context())
	if auth := inbound.Get("Authorization"); auth != "" {
		req.Header.Set("Authorization", auth)
	} else if c.token != "" && c.tokenSource == nil {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	// Some proxies in front of the API fail to decompress forwarded bodies.
	if inbound.Get("Content-Encoding") != "" {
		req.Header.Set("Content-Encoding", "none")
	}
}

// do sends req and decodes a successful response into v.
// v may be nil, *string for raw content, *json.RawMessage or any JSON target.
func (c *Client) do(req *http.Request, v interface{}) (int, error) {
	c.authorize(req)
	resp, err := c.http.Do(req)
	if err != nil {
		return 0, &TransportError{Method: req.Method, URL: req.URL.String(), Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, &TransportError{Method: req.Method, URL: req.URL.String(), Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return resp.StatusCode, newErrorResponse(resp.StatusCode, body)
	}

	if v == nil {
		return resp.StatusCode, nil
	}

	// specific handling for string response (raw content)
	if strPtr, ok := v.(*string); ok {
		*strPtr = string(body)
		return resp.StatusCode, nil
	}

	if len(bytes.TrimSpace(body)) == 0 {
		return resp.StatusCode, nil
	}
	if err := json.Unmarshal(body, v); err != nil {
		return resp.StatusCode, fmt.Errorf("failed to decode response: %w", err)
	}
	return resp.StatusCode, nil
}

// encodeJSON marshals v without HTML escaping, so "<" and "&" stay readable in stored files.
func encodeJSON(v interface{}) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}
