package proxy

import (
	"fmt"
	"net"
	"net/url"
	"strconv"
)

// Scheme identifies which proxy setting a Descriptor was selected from
type Scheme string

const (
	SchemeHTTP  Scheme = "http"
	SchemeHTTPS Scheme = "https"
	SchemeSOCKS Scheme = "socks"
)

// Credentials authenticate against the proxy
type Credentials struct {
	User     string
	Password string
}

// Descriptor is a resolved proxy, ready to be installed on an HTTP transport.
type Descriptor struct {
	Host   string
	Port   int
	Scheme Scheme

	// Credentials is nil when no proxy authentication is configured
	Credentials *Credentials
}

// Address returns host:port
func (d *Descriptor) Address() string {
	return net.JoinHostPort(d.Host, strconv.Itoa(d.Port))
}

// URL renders the proxy as a URL suitable for http.ProxyURL. HTTP and HTTPS
// proxies are both reached over plain HTTP (CONNECT for TLS targets); SOCKS
// proxies use socks5. Credentials become the URL userinfo.
func (d *Descriptor) URL() *url.URL {
	u := &url.URL{Scheme: "http", Host: d.Address()}
	if d.Scheme == SchemeSOCKS {
		u.Scheme = "socks5"
	}
	if d.Credentials != nil {
		u.User = url.UserPassword(d.Credentials.User, d.Credentials.Password)
	}
	return u
}

// String never includes the password
func (d *Descriptor) String() string {
	s := fmt.Sprintf("%s proxy %s", d.Scheme, d.Address())
	if d.Credentials != nil {
		s += fmt.Sprintf(" (user %s)", d.Credentials.User)
	}
	return s
}
