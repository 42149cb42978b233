package am

import (
	"net/url"

	"github.com/teranos/ghpr/errors"
)

// Validate checks that the configuration is valid.
//
// Repository identity is not checked here: it is resolved lazily and reports its
// own configuration error naming the values it inspected.
func (c *Config) Validate() error {
	// Pull request: unset (0) disables publishing, negative is invalid
	if c.GitHub.PullRequest < 0 {
		return errors.NewConfigurationError("github.pull_request must not be negative, got %d", c.GitHub.PullRequest)
	}

	if c.GitHub.Endpoint != "" {
		u, err := url.Parse(c.GitHub.Endpoint)
		if err != nil {
			return errors.Wrapf(err, "github.endpoint %q is not a valid URL", c.GitHub.Endpoint)
		}
		if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return errors.Newf("github.endpoint must be an absolute http(s) URL, got %q", c.GitHub.Endpoint)
		}
	}

	ports := []struct {
		key  string
		port int
	}{
		{KeyHTTPProxyPort, c.HTTP.ProxyPort},
		{KeyHTTPSProxyPort, c.HTTPS.ProxyPort},
		{KeySOCKSProxyPort, c.SOCKSProxyPort},
	}
	for _, p := range ports {
		// 0 = scheme default
		if p.port < 0 || p.port > 65535 {
			return errors.Newf("%s must be between 1 and 65535, got %d", p.key, p.port)
		}
	}

	if (c.HTTP.ProxyUser == "") != (c.HTTP.ProxyPassword == "") {
		return errors.WithHint(
			errors.Newf("%s and %s must be set together", KeyHTTPProxyUser, KeyHTTPProxyPassword),
			"proxy credentials are only used when both are present")
	}

	return nil
}
