package commands

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/teranos/ghpr/am"
	"github.com/teranos/ghpr/errors"
)

// ConfigCmd represents the config command
var ConfigCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage ghpr configuration",
	Long: `Display and manage ghpr configuration settings.

Configuration sources (in order of precedence):
1. Environment variables (GHPR_* prefix, GITHUB_TOKEN for the token)
2. Explicit config file (--config)
3. Project config (./ghpr.toml, searched upwards)
4. User config (~/.ghpr/config.toml)
5. System config (/etc/ghpr/config.toml)
6. Default values

Examples:
  ghpr config show                          # Show current configuration
  ghpr config show --format json            # Show configuration in JSON format
  ghpr config get github.repository         # Get specific config value
  ghpr config set github.pull_request 42    # Store a value in ~/.ghpr/config.toml
  ghpr config validate                      # Validate current configuration`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	Long:  "Display the effective ghpr configuration merged from all sources. Secrets are masked.",
	RunE:  runConfigShow,
}

var configGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Get a specific configuration value",
	Long:  "Get a specific configuration value using dot notation (e.g., github.repository, http.proxyHost)",
	Args:  cobra.ExactArgs(1),
	RunE:  runConfigGet,
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Store a configuration value in the user config",
	Long: `Store a configuration value in ~/.ghpr/config.toml.

Numbers and true/false are stored with their TOML types. The previous file is
kept as config.toml.back1 (up to three backups).`,
	Args: cobra.ExactArgs(2),
	RunE: runConfigSet,
}

var configValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate current configuration",
	Long:  "Validate that the current ghpr configuration is valid",
	RunE:  runConfigValidate,
}

var configWhereCmd = &cobra.Command{
	Use:   "where",
	Short: "Show where configuration is loaded from",
	Long: `Show the configuration cascade and which source each setting came from.

Lists all configuration sources in order of precedence.`,
	RunE: runConfigWhere,
}

var configFormat string

func init() {
	configShowCmd.Flags().StringVar(&configFormat, "format", "toml", "Output format: toml, json, yaml")

	ConfigCmd.AddCommand(configShowCmd)
	ConfigCmd.AddCommand(configGetCmd)
	ConfigCmd.AddCommand(configSetCmd)
	ConfigCmd.AddCommand(configValidateCmd)
	ConfigCmd.AddCommand(configWhereCmd)
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	if _, err := am.Load(); err != nil {
		return errors.Wrap(err, "failed to load config")
	}
	settings := am.GetConfigIntrospection().Nested()
	out := cmd.OutOrStdout()

	switch configFormat {
	case "json":
		data, err := json.MarshalIndent(settings, "", "  ")
		if err != nil {
			return errors.Wrap(err, "failed to marshal config to JSON")
		}
		fmt.Fprintln(out, string(data))

	case "yaml":
		data, err := yaml.Marshal(settings)
		if err != nil {
			return errors.Wrap(err, "failed to marshal config to YAML")
		}
		fmt.Fprintf(out, "# ghpr configuration\n%s", string(data))

	case "toml":
		data, err := toml.Marshal(settings)
		if err != nil {
			return errors.Wrap(err, "failed to marshal config to TOML")
		}
		fmt.Fprintf(out, "# ghpr configuration\n%s", string(data))

	default:
		return errors.Newf("unsupported format: %s (supported: toml, json, yaml)", configFormat)
	}

	return nil
}

func runConfigGet(cmd *cobra.Command, args []string) error {
	key := args[0]

	v := am.GetViper()
	if !v.IsSet(key) {
		return errors.Newf("configuration key %q not found", key)
	}

	value := am.Get(key)
	if am.IsSecretKey(key) {
		value = am.RedactedValue
	}
	fmt.Fprintln(cmd.OutOrStdout(), value)
	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	path, err := am.SetUserValue(args[0], args[1])
	if err != nil {
		return errors.Wrapf(err, "failed to set %s", args[0])
	}

	fmt.Fprintf(cmd.OutOrStdout(), "✓ Set %s in %s\n", args[0], path)
	return nil
}

func runConfigValidate(cmd *cobra.Command, args []string) error {
	cfg, err := am.Load()
	if err != nil {
		return errors.Wrap(err, "failed to load config")
	}

	if err := cfg.Validate(); err != nil {
		return errors.Wrap(err, "configuration validation failed")
	}

	fmt.Fprintln(cmd.OutOrStdout(), "✓ Configuration is valid")
	return nil
}

func runConfigWhere(cmd *cobra.Command, args []string) error {
	intro := am.GetConfigIntrospection()
	out := cmd.OutOrStdout()

	fmt.Fprintln(out, "Configuration cascade (later overrides earlier):")
	fmt.Fprintln(out, "  1. [DEFAULT]   Built-in defaults")
	fmt.Fprintln(out, "  2. [SYSTEM]    /etc/ghpr/config.toml")
	fmt.Fprintln(out, "  3. [USER]      ~/.ghpr/config.toml")
	fmt.Fprintln(out, "  4. [PROJECT]   ./ghpr.toml (searches up directories)")
	fmt.Fprintln(out, "  5. [EXPLICIT]  --config <file>")
	fmt.Fprintln(out, "  6. [ENV]       GHPR_* environment variables, GITHUB_TOKEN")
	fmt.Fprintln(out)

	type sourceGroup struct {
		source   am.ConfigSource
		path     string
		settings []am.SettingInfo
	}

	// Env vars are grouped together; files by path
	groups := make(map[string]*sourceGroup)
	for _, setting := range intro.Settings {
		key := setting.SourcePath
		if setting.Source == am.SourceDefault || setting.Source == am.SourceEnvironment {
			key = string(setting.Source)
		}

		if group, exists := groups[key]; exists {
			group.settings = append(group.settings, setting)
		} else {
			groups[key] = &sourceGroup{
				source:   setting.Source,
				path:     setting.SourcePath,
				settings: []am.SettingInfo{setting},
			}
		}
	}

	sourceOrder := []am.ConfigSource{
		am.SourceDefault,
		am.SourceSystem,
		am.SourceUser,
		am.SourceProject,
		am.SourceExplicit,
		am.SourceEnvironment,
	}

	fmt.Fprintln(out, "Active configuration:")
	for _, source := range sourceOrder {
		var ordered []*sourceGroup
		for _, group := range groups {
			if group.source == source {
				ordered = append(ordered, group)
			}
		}
		sort.Slice(ordered, func(i, j int) bool { return ordered[i].path < ordered[j].path })

		for _, group := range ordered {
			switch source {
			case am.SourceDefault:
				fmt.Fprintf(out, "\n%s: %d settings\n", source, len(group.settings))
			case am.SourceEnvironment:
				fmt.Fprintf(out, "\n%s: %d settings from environment variables\n", source, len(group.settings))
			default:
				fmt.Fprintf(out, "\n%s: %d settings from %s\n", source, len(group.settings), group.path)
			}

			for _, setting := range group.settings {
				valueStr := fmt.Sprintf("%v", setting.Value)
				if len(valueStr) > 50 {
					valueStr = valueStr[:47] + "..."
				}
				if source == am.SourceEnvironment {
					fmt.Fprintf(out, "  %s = %s (%s)\n", setting.Key, valueStr, setting.SourcePath)
				} else {
					fmt.Fprintf(out, "  %s = %s\n", setting.Key, valueStr)
				}
			}
		}
	}

	return nil
}
