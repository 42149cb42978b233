package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/teranos/ghpr/am"
	"github.com/teranos/ghpr/github"
	"github.com/teranos/ghpr/proxy"
)

// ProxyCmd shows the proxy selected for the GitHub endpoint
var ProxyCmd = &cobra.Command{
	Use:   "proxy",
	Short: "Show the proxy used to reach GitHub",
	Long: `Resolve the outbound proxy for the GitHub API endpoint.

Proxy settings are read from http.proxyHost, https.proxyHost, socksProxyHost
(and their ports), http.proxyUser, http.proxyPassword and http.nonProxyHosts.
When none of the hosts is set, HTTP_PROXY, HTTPS_PROXY and NO_PROXY are used.

Examples:
  ghpr proxy                                           # Proxy for github.endpoint
  ghpr proxy --endpoint https://github.example.com/api/v3`,
	Args: cobra.NoArgs,
	RunE: runProxy,
}

var proxyEndpoint string

func init() {
	ProxyCmd.Flags().StringVar(&proxyEndpoint, "endpoint", "", "Resolve for this URL instead of github.endpoint")
}

func runProxy(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	settings := github.NewSettings(am.GetViper())

	if !settings.IsProxyConnectionEnabled() {
		fmt.Fprintln(out, "No proxy configured, connecting directly")
		return nil
	}

	endpoint := proxyEndpoint
	if endpoint == "" {
		endpoint = settings.Endpoint()
	}

	d, err := proxy.NewResolver(settings.ProxyConfig()).Resolve(endpoint)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "%s\n", d)
	fmt.Fprintf(out, "URL: %s\n", d.URL().Redacted())
	return nil
}
