package github

import (
	"strings"
	"time"

	"github.com/teranos/ghpr/am"
	"github.com/teranos/ghpr/errors"
	"github.com/teranos/ghpr/internal/httpclient"
	"github.com/teranos/ghpr/proxy"
)

// MaxGlobalIssues caps the number of issues listed in the global pull request comment
const MaxGlobalIssues = 10

// Settings exposes pull request publishing configuration read from a Source.
// Values are read on every call; nothing is cached.
type Settings struct {
	src   am.Source
	proxy *proxy.Resolver
}

// NewSettings creates Settings over src. Proxy settings are loaded once here.
func NewSettings(src am.Source) *Settings {
	return &Settings{
		src:   src,
		proxy: proxy.NewResolver(proxy.LoadConfig(src)),
	}
}

// PullRequestNumber returns the configured pull request number, 0 when unset
func (s *Settings) PullRequestNumber() int {
	return s.src.GetInt(am.KeyPullRequest)
}

// IsEnabled reports whether a pull request number is configured
func (s *Settings) IsEnabled() bool {
	return s.src.IsSet(am.KeyPullRequest)
}

// Repository resolves the owner/repo identifier; see ResolveRepository
func (s *Settings) Repository() (string, error) {
	return ResolveRepository(s.src)
}

func (s *Settings) OAuth() string {
	return s.src.GetString(am.KeyOAuth)
}

// Endpoint returns the GitHub API URL, DefaultEndpoint when unset
func (s *Settings) Endpoint() string {
	if endpoint := strings.TrimSpace(s.src.GetString(am.KeyEndpoint)); endpoint != "" {
		return endpoint
	}
	return am.DefaultEndpoint
}

// TryReportIssuesInline reports whether issues should be posted as inline
// review comments rather than only in the global comment.
func (s *Settings) TryReportIssuesInline() bool {
	return !s.src.GetBool(am.KeyDisableInlineComments)
}

// IsProxyConnectionEnabled reports whether any proxy host is configured
func (s *Settings) IsProxyConnectionEnabled() bool {
	return s.proxy.IsConfigured()
}

// HTTPProxy resolves the proxy for Endpoint.
// Errors are marked errors.ErrProxyResolution.
func (s *Settings) HTTPProxy() (*proxy.Descriptor, error) {
	return s.proxy.Resolve(s.Endpoint())
}

// ProxyConfig returns the proxy configuration in use
func (s *Settings) ProxyConfig() proxy.Config {
	return s.proxy.Config()
}

// HTTPClient builds a client for the GitHub API authenticated with OAuth, and
// routed through the proxy when one is configured. A configured proxy that
// cannot be resolved is an error, not a direct connection.
func (s *Settings) HTTPClient(timeout time.Duration) (*httpclient.Client, error) {
	if !s.IsProxyConnectionEnabled() {
		return httpclient.New(timeout).WithToken(s.OAuth()), nil
	}

	d, err := s.HTTPProxy()
	if err != nil {
		if errors.Is(err, proxy.ErrProxyNotDefined) {
			// endpoint excluded by non-proxy hosts
			return httpclient.New(timeout).WithToken(s.OAuth()), nil
		}
		return nil, err
	}
	return httpclient.NewProxied(timeout, d).WithToken(s.OAuth()), nil
}
