package proxy

import (
	"net"
	"net/url"
	"strconv"
	"strings"
	"sync"

	"golang.org/x/net/http/httpproxy"

	"github.com/teranos/ghpr/errors"
	"github.com/teranos/ghpr/logger"
)

var (
	// ErrProxyNotDefined means no proxy applies to the endpoint: nothing is
	// configured, the endpoint is empty, or the endpoint is excluded by NoProxy.
	ErrProxyNotDefined = errors.New("proxy is not defined")

	// ErrProxySyntax means the endpoint is not an absolute URI or a configured
	// proxy address cannot be parsed.
	ErrProxySyntax = errors.New("proxy syntax is invalid")
)

// Resolve picks the proxy to use for endpoint. cfg is reconciled first, so an
// HTTP-only configuration also serves https:// endpoints.
//
// Both returned errors are marked errors.ErrProxyResolution.
func Resolve(cfg Config, endpoint string) (*Descriptor, error) {
	cfg = cfg.Reconciled()

	if strings.TrimSpace(endpoint) == "" {
		return nil, notDefined(errors.New("no endpoint given"))
	}

	target, err := url.Parse(endpoint)
	if err != nil {
		return nil, syntaxError(errors.Wrapf(err, "endpoint %q", endpoint))
	}
	if !target.IsAbs() || target.Host == "" {
		return nil, syntaxError(errors.Newf("endpoint %q is not an absolute URI", endpoint))
	}

	if !cfg.IsConfigured() {
		return nil, notDefined(errors.Newf("no proxy configured for %s", endpoint))
	}

	selector, err := cfg.proxyFunc()
	if err != nil {
		return nil, syntaxError(err)
	}
	selected, err := selector(target)
	if err != nil {
		return nil, syntaxError(errors.Wrapf(err, "proxy address for %s", endpoint))
	}
	if selected == nil {
		return nil, notDefined(errors.Newf("no proxy selected for %s", endpoint))
	}

	d, err := describe(selected, target)
	if err != nil {
		return nil, syntaxError(err)
	}
	if cfg.HasCredentials() {
		d.Credentials = &Credentials{User: cfg.User, Password: cfg.Password}
	}

	log := logger.ComponentLogger("proxy")
	log.Infow("A proxy has been configured",
		logger.FieldEndpoint, endpoint,
		logger.FieldScheme, string(d.Scheme),
		logger.FieldHost, d.Host,
		logger.FieldPort, d.Port,
		logger.FieldUser, credentialUser(d))

	return d, nil
}

// proxyFunc builds the httpproxy selector. A SOCKS proxy serves any scheme
// that has no dedicated HTTP(S) proxy. Addresses are validated here because
// httpproxy silently ignores ones it cannot parse.
func (c Config) proxyFunc() (func(*url.URL) (*url.URL, error), error) {
	var pc httpproxy.Config
	pc.NoProxy = c.NoProxy

	if c.SOCKSHost != "" {
		socks, err := proxyAddress("socks5", c.SOCKSHost, c.effectiveSOCKSPort())
		if err != nil {
			return nil, err
		}
		pc.HTTPProxy, pc.HTTPSProxy = socks, socks
	}
	if c.HTTPHost != "" {
		addr, err := proxyAddress("http", c.HTTPHost, c.effectiveHTTPPort())
		if err != nil {
			return nil, err
		}
		pc.HTTPProxy = addr
	}
	if c.HTTPSHost != "" {
		addr, err := proxyAddress("http", c.HTTPSHost, c.effectiveHTTPSPort())
		if err != nil {
			return nil, err
		}
		pc.HTTPSProxy = addr
	}
	return pc.ProxyFunc(), nil
}

func proxyAddress(scheme, host string, port int) (string, error) {
	if port > 65535 {
		return "", errors.Newf("proxy port %d for host %q is out of range", port, host)
	}
	if strings.Contains(host, ":") && net.ParseIP(strings.Trim(host, "[]")) == nil {
		return "", errors.Newf("proxy host %q must not carry a port; set the port property instead", host)
	}
	addr := scheme + "://" + net.JoinHostPort(host, strconv.Itoa(port))
	u, err := url.Parse(addr)
	if err != nil {
		return "", errors.Wrapf(err, "proxy host %q", host)
	}
	if u.Hostname() != strings.Trim(host, "[]") {
		return "", errors.Newf("proxy host %q is not a valid host name", host)
	}
	return addr, nil
}

func describe(selected, target *url.URL) (*Descriptor, error) {
	host := selected.Hostname()
	if host == "" {
		return nil, errors.Newf("proxy address %q has no host", selected.Redacted())
	}
	port, err := strconv.Atoi(selected.Port())
	if err != nil {
		return nil, errors.Wrapf(err, "proxy address %q has no valid port", selected.Redacted())
	}

	scheme := SchemeHTTP
	switch {
	case isSOCKS(selected.Scheme):
		scheme = SchemeSOCKS
	case target.Scheme == "https":
		scheme = SchemeHTTPS
	}
	return &Descriptor{Host: host, Port: port, Scheme: scheme}, nil
}

func credentialUser(d *Descriptor) string {
	if d.Credentials == nil {
		return ""
	}
	return d.Credentials.User
}

func notDefined(cause error) error {
	err := errors.Wrapf(ErrProxyNotDefined, "%v", cause)
	err = errors.WithHint(err, "set http.proxyHost (and http.proxyPort) or HTTPS_PROXY")
	return errors.Mark(err, errors.ErrProxyResolution)
}

func syntaxError(cause error) error {
	err := errors.Wrapf(ErrProxySyntax, "%v", cause)
	return errors.Mark(err, errors.ErrProxyResolution)
}

// Resolver holds a proxy configuration for repeated resolutions.
// It is safe for concurrent use.
type Resolver struct {
	mu  sync.Mutex
	cfg Config
}

// NewResolver creates a Resolver for cfg
func NewResolver(cfg Config) *Resolver {
	return &Resolver{cfg: cfg}
}

// IsConfigured reports whether any proxy host is set
func (r *Resolver) IsConfigured() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.cfg.IsConfigured()
}

// Config returns the current configuration. After the first Resolve it is the
// reconciled form.
func (r *Resolver) Config() Config {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.cfg
}

// Resolve reconciles the stored configuration and resolves endpoint against it.
func (r *Resolver) Resolve(endpoint string) (*Descriptor, error) {
	r.mu.Lock()
	r.cfg = r.cfg.Reconciled()
	cfg := r.cfg
	r.mu.Unlock()

	return Resolve(cfg, endpoint)
}
