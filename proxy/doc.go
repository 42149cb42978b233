// Package proxy decides whether outbound GitHub API calls go through a proxy and,
// if so, which one.
//
// Settings come from the JVM-style properties that analysis hosts already pass
// around (http.proxyHost, https.proxyHost, socksProxyHost, http.proxyUser,
// http.proxyPassword, ...) and, when none of those is present, from the
// conventional HTTP_PROXY / HTTPS_PROXY / NO_PROXY environment variables.
//
// Everything is carried in a Config value; nothing in this package mutates
// process-wide state, so concurrent resolutions are safe.
//
// Usage:
//
//	cfg := proxy.LoadConfig(am.GetViper())
//	if cfg.IsConfigured() {
//	    d, err := proxy.Resolve(cfg, "https://api.github.com")
//	    if errors.Is(err, proxy.ErrProxySyntax) {
//	        // endpoint or proxy address is malformed
//	    }
//	    transport.Proxy = http.ProxyURL(d.URL())
//	}
package proxy
