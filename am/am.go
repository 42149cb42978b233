package am

// Config represents the ghpr configuration
type Config struct {
	GitHub GitHubConfig     `mapstructure:"github"`
	Links  LinksConfig      `mapstructure:"links"`
	HTTP   HTTPProxyConfig  `mapstructure:"http"`
	HTTPS  HTTPSProxyConfig `mapstructure:"https"`

	// SOCKS settings keep their flat property names (socksProxyHost, socksProxyPort)
	SOCKSProxyHost string `mapstructure:"socksproxyhost"`
	SOCKSProxyPort int    `mapstructure:"socksproxyport"`
}

// GitHubConfig configures where and how analysis results are posted
type GitHubConfig struct {
	Repository            string `mapstructure:"repository"`              // owner/repo or a github.com Git URL
	PullRequest           int    `mapstructure:"pull_request"`            // Pull request number; unset disables publishing
	OAuth                 string `mapstructure:"oauth"`                   // Token (also read from GITHUB_TOKEN)
	Endpoint              string `mapstructure:"endpoint"`                // API endpoint (default: https://api.github.com)
	DisableInlineComments bool   `mapstructure:"disable_inline_comments"` // Post a single summary instead of inline comments
}

// LinksConfig holds the project's source-control links, used as a fallback for the repository
type LinksConfig struct {
	SCMDev string `mapstructure:"scm_dev"` // Developer connection, e.g. git@github.com:acme/widgets.git
	SCM    string `mapstructure:"scm"`     // Public connection, e.g. https://github.com/acme/widgets.git
}

// HTTPProxyConfig mirrors the http.proxy* properties
type HTTPProxyConfig struct {
	ProxyHost     string `mapstructure:"proxyhost"`
	ProxyPort     int    `mapstructure:"proxyport"`
	ProxyUser     string `mapstructure:"proxyuser"`
	ProxyPassword string `mapstructure:"proxypassword"`
	NonProxyHosts string `mapstructure:"nonproxyhosts"` // Pipe separated, e.g. localhost|*.internal
}

// HTTPSProxyConfig mirrors the https.proxy* properties
type HTTPSProxyConfig struct {
	ProxyHost string `mapstructure:"proxyhost"`
	ProxyPort int    `mapstructure:"proxyport"`
}

// Configuration keys, in dot notation as understood by Viper.
const (
	KeyRepository            = "github.repository"
	KeyPullRequest           = "github.pull_request"
	KeyOAuth                 = "github.oauth"
	KeyEndpoint              = "github.endpoint"
	KeyDisableInlineComments = "github.disable_inline_comments"

	// Project links inspected when github.repository is not set
	KeyLinksSourcesDev = "links.scm_dev"
	KeyLinksSources    = "links.scm"

	// Proxy properties
	KeyHTTPProxyHost     = "http.proxyHost"
	KeyHTTPProxyPort     = "http.proxyPort"
	KeyHTTPProxyUser     = "http.proxyUser"
	KeyHTTPProxyPassword = "http.proxyPassword"
	KeyHTTPNonProxyHosts = "http.nonProxyHosts"
	KeyHTTPSProxyHost    = "https.proxyHost"
	KeyHTTPSProxyPort    = "https.proxyPort"
	KeySOCKSProxyHost    = "socksProxyHost"
	KeySOCKSProxyPort    = "socksProxyPort"
)

// DefaultEndpoint is the public GitHub API
const DefaultEndpoint = "https://api.github.com"

// File system constants
const (
	DefaultDirPermissions  = 0750
	DefaultFilePermissions = 0600 // Config may hold a token
)

// RedactedValue replaces secrets in displayed configuration
const RedactedValue = "********"

// Redacted returns a copy of the configuration with secrets masked, for display
func (c Config) Redacted() Config {
	if c.GitHub.OAuth != "" {
		c.GitHub.OAuth = RedactedValue
	}
	if c.HTTP.ProxyPassword != "" {
		c.HTTP.ProxyPassword = RedactedValue
	}
	return c
}

// IsSecretKey reports whether the value stored under key must not be displayed
func IsSecretKey(key string) bool {
	switch normalizeKey(key) {
	case normalizeKey(KeyOAuth), normalizeKey(KeyHTTPProxyPassword):
		return true
	}
	return false
}
