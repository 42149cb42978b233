package am

import (
	"os"
	"sort"
	"strings"

	"github.com/spf13/viper"
)

// ConfigSource represents where a configuration value came from
type ConfigSource string

const (
	SourceDefault     ConfigSource = "default"
	SourceSystem      ConfigSource = "system"      // /etc/ghpr/config.toml
	SourceUser        ConfigSource = "user"        // ~/.ghpr/config.toml
	SourceProject     ConfigSource = "project"     // ghpr.toml found walking up from the working directory
	SourceExplicit    ConfigSource = "explicit"    // --config flag
	SourceEnvironment ConfigSource = "environment" // GHPR_* env vars
)

// SettingInfo contains metadata about a configuration setting
type SettingInfo struct {
	Key        string       `json:"key"`
	Value      interface{}  `json:"value"`
	Source     ConfigSource `json:"source"`
	SourcePath string       `json:"source_path,omitempty"` // File path or env var name
}

// ConfigIntrospection provides metadata about the active configuration
type ConfigIntrospection struct {
	Settings []SettingInfo `json:"settings"` // All settings with sources
}

// SourceInfo tracks where a configuration value originated
type SourceInfo struct {
	Source ConfigSource // The type of config source (default, system, user, etc.)
	Path   string       // File path or environment variable name
}

// GetConfigIntrospection returns detailed information about the active configuration
// using the sources tracked while the cascade was merged
func GetConfigIntrospection() *ConfigIntrospection {
	v := GetViper()

	mu.Lock()
	sources := make(map[string]SourceInfo, len(ConfigSources))
	for k, s := range ConfigSources {
		sources[k] = s
	}
	mu.Unlock()

	return Introspect(v, sources)
}

// Introspect flattens the effective settings of v and attributes each one to a source.
// Secret values are masked.
func Introspect(v *viper.Viper, sources map[string]SourceInfo) *ConfigIntrospection {
	introspection := &ConfigIntrospection{
		Settings: make([]SettingInfo, 0),
	}
	flattenSettingsWithSources(v.AllSettings(), "", introspection, sources)
	return introspection
}

// flattenSettingsWithSources flattens settings and assigns sources from sourceMap
func flattenSettingsWithSources(settings map[string]interface{}, prefix string, introspection *ConfigIntrospection, sourceMap map[string]SourceInfo) {
	// Sort keys for deterministic iteration
	keys := make([]string, 0, len(settings))
	for k := range settings {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, key := range keys {
		value := settings[key]
		fullKey := key
		if prefix != "" {
			fullKey = prefix + "." + key
		}

		if nestedMap, ok := value.(map[string]interface{}); ok {
			flattenSettingsWithSources(nestedMap, fullKey, introspection, sourceMap)
			continue
		}

		sourceInfo := SourceInfo{Source: SourceDefault, Path: "built-in default"}
		if si, ok := sourceMap[fullKey]; ok {
			sourceInfo = si
		}

		// Environment variables override every file
		if envKey, ok := envOverride(fullKey); ok {
			sourceInfo = SourceInfo{Source: SourceEnvironment, Path: envKey}
		}

		if IsSecretKey(fullKey) && value != "" {
			value = RedactedValue
		}

		introspection.Settings = append(introspection.Settings, SettingInfo{
			Key:        fullKey,
			Value:      value,
			Source:     sourceInfo.Source,
			SourcePath: sourceInfo.Path,
		})
	}
}

// envOverride returns the environment variable currently overriding key, if any
func envOverride(key string) (string, bool) {
	candidates := []string{EnvPrefix + "_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))}
	if key == normalizeKey(KeyOAuth) {
		candidates = append(candidates, "GITHUB_TOKEN")
	}
	for _, envKey := range candidates {
		if os.Getenv(envKey) != "" {
			return envKey, true
		}
	}
	return "", false
}

// CountBySource returns how many effective settings each source contributed
func (c *ConfigIntrospection) CountBySource() map[ConfigSource]int {
	counts := make(map[ConfigSource]int)
	for _, setting := range c.Settings {
		counts[setting.Source]++
	}
	return counts
}

// Nested rebuilds the settings as nested tables, the shape of a config file.
// Secrets stay masked.
func (c *ConfigIntrospection) Nested() map[string]interface{} {
	root := make(map[string]interface{})
	for _, setting := range c.Settings {
		segments := strings.Split(setting.Key, ".")
		table := root
		for _, segment := range segments[:len(segments)-1] {
			next, ok := table[segment].(map[string]interface{})
			if !ok {
				next = make(map[string]interface{})
				table[segment] = next
			}
			table = next
		}
		table[segments[len(segments)-1]] = setting.Value
	}
	return root
}
