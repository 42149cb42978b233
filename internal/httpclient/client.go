package httpclient

import (
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/oauth2"

	"github.com/teranos/ghpr/errors"
	"github.com/teranos/ghpr/logger"
	"github.com/teranos/ghpr/proxy"
	"github.com/teranos/ghpr/version"
)

const defaultMaxRedirects = 10

// Client wraps http.Client for GitHub API calls, optionally routed through a proxy
type Client struct {
	*http.Client
	proxy          *proxy.Descriptor
	allowedSchemes []string
	maxRedirects   int
}

// New creates a client that connects directly. Environment proxy variables are
// not consulted; proxy selection is the proxy package's job.
func New(timeout time.Duration) *Client {
	return NewProxied(timeout, nil)
}

// NewProxied creates a client whose requests go through d. A nil d connects directly.
// Credentials on d are sent as Proxy-Authorization.
func NewProxied(timeout time.Duration, d *proxy.Descriptor) *Client {
	client := &Client{
		Client: &http.Client{
			Timeout: timeout,
		},
		proxy:          d,
		allowedSchemes: []string{"http", "https"},
		maxRedirects:   defaultMaxRedirects,
	}

	client.CheckRedirect = func(req *http.Request, via []*http.Request) error {
		if len(via) >= client.maxRedirects {
			return errors.Newf("stopped after %d redirects", client.maxRedirects)
		}

		if err := client.validateURL(req.URL); err != nil {
			return errors.Wrap(err, "redirect blocked")
		}

		return nil
	}

	dialer := &net.Dialer{
		Timeout:   30 * time.Second,
		KeepAlive: 30 * time.Second,
	}

	transport := &http.Transport{
		DialContext:           dialer.DialContext,
		MaxIdleConns:          100,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   10 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
	}
	if d != nil {
		transport.Proxy = http.ProxyURL(d.URL())
		logger.ComponentLogger("httpclient").Debugw("Routing requests through proxy",
			logger.FieldProxy, d.String())
	}
	client.Transport = &userAgentTransport{base: transport, userAgent: version.Get().UserAgent()}

	return client
}

// userAgentTransport sets User-Agent on requests that do not carry one
type userAgentTransport struct {
	base      http.RoundTripper
	userAgent string
}

func (t *userAgentTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if req.Header.Get("User-Agent") != "" {
		return t.base.RoundTrip(req)
	}
	req = req.Clone(req.Context())
	req.Header.Set("User-Agent", t.userAgent)
	return t.base.RoundTrip(req)
}

// WithToken authenticates every request with token as a bearer credential.
// An empty token leaves the client unauthenticated.
func (c *Client) WithToken(token string) *Client {
	if token == "" {
		return c
	}
	c.Transport = &oauth2.Transport{
		Source: oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token}),
		Base:   c.Transport,
	}
	return c
}

// Proxy returns the proxy requests are routed through, nil when direct
func (c *Client) Proxy() *proxy.Descriptor {
	return c.proxy
}

func (c *Client) validateURL(u *url.URL) error {
	scheme := strings.ToLower(u.Scheme)
	allowed := false
	for _, allowedScheme := range c.allowedSchemes {
		if scheme == allowedScheme {
			allowed = true
			break
		}
	}
	if !allowed {
		return errors.Newf("scheme %q not allowed (allowed: %v)", scheme, c.allowedSchemes)
	}

	if u.Hostname() == "" {
		return errors.New("URL missing hostname")
	}

	// Credentials belong in the Authorization header, not the URL
	if u.User != nil {
		return errors.New("URL contains user info")
	}

	return nil
}

// ValidateURL validates a URL string before creating a request
func (c *Client) ValidateURL(urlStr string) (*url.URL, error) {
	u, err := url.Parse(urlStr)
	if err != nil {
		return nil, errors.Wrap(err, "invalid URL")
	}

	if err := c.validateURL(u); err != nil {
		return nil, err
	}

	return u, nil
}

// Get is a convenience wrapper for http.Get with URL validation
func (c *Client) Get(urlStr string) (*http.Response, error) {
	if _, err := c.ValidateURL(urlStr); err != nil {
		return nil, err
	}
	return c.Client.Get(urlStr)
}

// Do executes an HTTP request after validating its URL
func (c *Client) Do(req *http.Request) (*http.Response, error) {
	if err := c.validateURL(req.URL); err != nil {
		return nil, errors.Wrap(err, "request blocked")
	}
	return c.Client.Do(req)
}
