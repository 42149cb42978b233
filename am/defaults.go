package am

import (
	"github.com/spf13/viper"
)

// SetDefaults configures default values for all configuration options
func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeyEndpoint, DefaultEndpoint)
	v.SetDefault(KeyDisableInlineComments, false)

	// Repository, pull request, links and proxy hosts deliberately have no defaults:
	// their presence is what the resolvers test for.
}

// BindSensitiveEnvVars explicitly binds sensitive configuration to environment variables
func BindSensitiveEnvVars(v *viper.Viper) {
	// GHPR_GITHUB_OAUTH wins over the conventional CI variable
	v.BindEnv(KeyOAuth, "GHPR_GITHUB_OAUTH", "GITHUB_TOKEN")
	v.BindEnv(KeyHTTPProxyPassword, "GHPR_HTTP_PROXYPASSWORD")
}
