package proxy

import (
	"net/url"
	"strconv"
	"strings"

	"golang.org/x/net/http/httpproxy"

	"github.com/teranos/ghpr/am"
)

// Default ports used when a host is configured without a port
const (
	DefaultHTTPPort  = 80
	DefaultHTTPSPort = 443
	DefaultSOCKSPort = 1080
)

// Config holds proxy settings. The zero value means no proxy.
// Ports of 0 mean the scheme default.
type Config struct {
	HTTPHost  string
	HTTPPort  int
	HTTPSHost string
	HTTPSPort int
	SOCKSHost string
	SOCKSPort int

	// Credentials are applied only when both are set
	User     string
	Password string

	// NoProxy lists hosts reached directly, in NO_PROXY syntax (comma separated)
	NoProxy string
}

// LoadConfig reads proxy properties from src. When no proxy host property is
// set it falls back to the process environment (see FromEnvironment).
func LoadConfig(src am.Source) Config {
	cfg := Config{
		HTTPHost:  strings.TrimSpace(src.GetString(am.KeyHTTPProxyHost)),
		HTTPPort:  src.GetInt(am.KeyHTTPProxyPort),
		HTTPSHost: strings.TrimSpace(src.GetString(am.KeyHTTPSProxyHost)),
		HTTPSPort: src.GetInt(am.KeyHTTPSProxyPort),
		SOCKSHost: strings.TrimSpace(src.GetString(am.KeySOCKSProxyHost)),
		SOCKSPort: src.GetInt(am.KeySOCKSProxyPort),
		User:      src.GetString(am.KeyHTTPProxyUser),
		Password:  src.GetString(am.KeyHTTPProxyPassword),
		NoProxy:   NonProxyHostsToNoProxy(src.GetString(am.KeyHTTPNonProxyHosts)),
	}
	if cfg.IsConfigured() {
		return cfg
	}

	env := FromEnvironment()
	if !env.IsConfigured() {
		return cfg
	}
	if cfg.User != "" && cfg.Password != "" {
		env.User, env.Password = cfg.User, cfg.Password
	}
	if cfg.NoProxy != "" {
		env.NoProxy = joinNoProxy(env.NoProxy, cfg.NoProxy)
	}
	return env
}

// FromEnvironment builds a Config from HTTP_PROXY, HTTPS_PROXY and NO_PROXY
// (or their lowercase versions). A socks5:// URL populates the SOCKS fields.
// Credentials embedded in the URLs are kept; the HTTP proxy's take precedence.
func FromEnvironment() Config {
	env := httpproxy.FromEnvironment()
	cfg := Config{NoProxy: env.NoProxy}

	httpsURL := parseEnvProxy(env.HTTPSProxy)
	httpURL := parseEnvProxy(env.HTTPProxy)

	for _, u := range []*url.URL{httpsURL, httpURL} {
		if u == nil {
			continue
		}
		host, port := u.Hostname(), atoi(u.Port())
		switch {
		case isSOCKS(u.Scheme):
			cfg.SOCKSHost, cfg.SOCKSPort = host, port
		case u == httpsURL:
			cfg.HTTPSHost, cfg.HTTPSPort = host, port
		default:
			cfg.HTTPHost, cfg.HTTPPort = host, port
		}
		if u.User != nil {
			if password, ok := u.User.Password(); ok {
				cfg.User, cfg.Password = u.User.Username(), password
			}
		}
	}
	return cfg
}

// IsConfigured reports whether any of the HTTP, HTTPS or SOCKS proxy hosts is set.
// Blank hosts count as unset. It does not validate the values.
func (c Config) IsConfigured() bool {
	c = c.trimmed()
	return c.HTTPHost != "" || c.HTTPSHost != "" || c.SOCKSHost != ""
}

// HasCredentials reports whether both proxy user and password are set
func (c Config) HasCredentials() bool {
	return c.User != "" && c.Password != ""
}

// Reconciled returns a copy where an HTTP proxy also serves HTTPS unless an
// HTTPS proxy host is configured. The HTTP port is carried over only when no
// HTTPS port was given.
func (c Config) Reconciled() Config {
	c = c.trimmed()
	if c.HTTPHost != "" && c.HTTPSHost == "" {
		c.HTTPSHost = c.HTTPHost
		if c.HTTPSPort == 0 {
			c.HTTPSPort = c.effectiveHTTPPort()
		}
	}
	return c
}

func (c Config) trimmed() Config {
	c.HTTPHost = strings.TrimSpace(c.HTTPHost)
	c.HTTPSHost = strings.TrimSpace(c.HTTPSHost)
	c.SOCKSHost = strings.TrimSpace(c.SOCKSHost)
	return c
}

func (c Config) effectiveHTTPPort() int  { return portOr(c.HTTPPort, DefaultHTTPPort) }
func (c Config) effectiveHTTPSPort() int { return portOr(c.HTTPSPort, DefaultHTTPSPort) }
func (c Config) effectiveSOCKSPort() int { return portOr(c.SOCKSPort, DefaultSOCKSPort) }

// NonProxyHostsToNoProxy converts a pipe separated http.nonProxyHosts value
// ("localhost|*.internal") to NO_PROXY syntax ("localhost,.internal").
// Entries with a wildcard anywhere but the leading label are dropped.
func NonProxyHostsToNoProxy(nonProxyHosts string) string {
	var entries []string
	for _, entry := range strings.Split(nonProxyHosts, "|") {
		entry = strings.TrimSpace(entry)
		entry = strings.TrimPrefix(entry, "*")
		if entry == "" || strings.Contains(entry, "*") {
			continue
		}
		entries = append(entries, entry)
	}
	return strings.Join(entries, ",")
}

func joinNoProxy(a, b string) string {
	switch {
	case a == "":
		return b
	case b == "":
		return a
	}
	return a + "," + b
}

func parseEnvProxy(raw string) *url.URL {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}
	u, err := url.Parse(raw)
	if err != nil || u.Hostname() == "" {
		return nil
	}
	return u
}

func isSOCKS(scheme string) bool {
	return scheme == "socks5" || scheme == "socks5h" || scheme == "socks"
}

func portOr(port, def int) int {
	if port <= 0 {
		return def
	}
	return port
}

func atoi(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}
