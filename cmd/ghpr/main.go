package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/teranos/ghpr/am"
	"github.com/teranos/ghpr/cmd/ghpr/commands"
	"github.com/teranos/ghpr/errors"
	"github.com/teranos/ghpr/logger"
)

var rootCmd = &cobra.Command{
	Use:   "ghpr",
	Short: "ghpr - GitHub pull request publishing settings",
	Long: `ghpr - Resolve the settings used to publish pull request analysis results to GitHub.

It works out the target repository (owner/repo) from explicit configuration or
the project's SCM links, and the outbound proxy from JVM-style proxy properties
or the usual proxy environment variables.

Available commands:
  config  - Show, query, validate and edit configuration
  repo    - Show the resolved owner/repo
  proxy   - Show the proxy used to reach the GitHub API
  resolve - Show every resolved setting
  version - Show version information

Examples:
  ghpr resolve                          # Everything at a glance
  ghpr repo --from-clone .              # owner/repo from the local clone
  ghpr config where                     # Where each setting comes from
  ghpr -v proxy                         # Proxy selection with info logging`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		verbosity, _ := cmd.Flags().GetCount("verbose")
		jsonLogs, _ := cmd.Flags().GetBool("json-logs")
		if err := logger.Initialize(jsonLogs, verbosity); err != nil {
			return errors.Wrap(err, "failed to initialize logger")
		}

		if configFile, _ := cmd.Flags().GetString("config"); configFile != "" {
			if _, err := os.Stat(configFile); err != nil {
				return errors.Wrapf(err, "config file %s", configFile)
			}
			am.UseConfigFile(configFile)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logger.Cleanup()
	},
}

func init() {
	rootCmd.PersistentFlags().CountP("verbose", "v", "Increase output verbosity (repeat for more detail: -v, -vv)")
	rootCmd.PersistentFlags().Bool("json-logs", false, "Write logs as JSON")
	rootCmd.PersistentFlags().String("config", "", "Config file applied above project config (below environment variables)")

	rootCmd.AddCommand(commands.ConfigCmd)
	rootCmd.AddCommand(commands.RepoCmd)
	rootCmd.AddCommand(commands.ProxyCmd)
	rootCmd.AddCommand(commands.ResolveCmd)
	rootCmd.AddCommand(commands.VersionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		if hints := errors.FlattenHints(err); hints != "" {
			fmt.Fprintf(os.Stderr, "Hint: %s\n", hints)
		}
		os.Exit(1)
	}
}
