package am

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/spf13/viper"

	"github.com/teranos/ghpr/errors"
)

// EnvPrefix is prepended to every automatically bound environment variable
const EnvPrefix = "GHPR"

// ProjectConfigName is searched for from the working directory upwards
const ProjectConfigName = "ghpr.toml"

var (
	mu             sync.Mutex
	globalConfig   *Config
	viperInstance  *viper.Viper
	explicitConfig string

	// ConfigSources records which file each loaded key came from
	ConfigSources = map[string]SourceInfo{}
)

// Load reads the ghpr configuration using Viper
func Load() (*Config, error) {
	mu.Lock()
	if globalConfig != nil {
		cfg := globalConfig
		mu.Unlock()
		return cfg, nil
	}
	mu.Unlock()

	v := GetViper()

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal config")
	}

	mu.Lock()
	globalConfig = &config
	mu.Unlock()
	return &config, nil
}

// GetViper returns the Viper instance holding the merged configuration cascade
func GetViper() *viper.Viper {
	mu.Lock()
	defer mu.Unlock()
	return initViper()
}

// LoadWithViper loads configuration using a provided Viper instance
func LoadWithViper(v *viper.Viper) (*Config, error) {
	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal config")
	}
	return &config, nil
}

// LoadFromFile loads configuration from a specific file path
func LoadFromFile(configPath string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(configPath)
	v.SetConfigType("toml")

	// Set defaults but don't bind environment variables for this specific load
	SetDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return nil, errors.Wrapf(err, "failed to read config file %s", configPath)
	}

	return LoadWithViper(v)
}

// UseConfigFile makes path the highest-precedence config file, above the
// project config and below environment variables. It resets any cached state.
func UseConfigFile(path string) {
	mu.Lock()
	defer mu.Unlock()
	explicitConfig = path
	globalConfig = nil
	viperInstance = nil
	ConfigSources = map[string]SourceInfo{}
}

// Reset clears the cached configuration (useful for testing)
func Reset() {
	UseConfigFile("")
}

// initViper initializes Viper with configuration sources and defaults.
// Callers hold mu.
func initViper() *viper.Viper {
	if viperInstance != nil {
		return viperInstance
	}

	v := viper.New()

	// Set up environment variable binding
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	BindSensitiveEnvVars(v)
	SetDefaults(v)

	// Merge configs in precedence order: system -> user -> project -> explicit; env vars stay on top
	mergeConfigFiles(v, configPaths())

	viperInstance = v
	return v
}

// configFile describes one layer of the configuration cascade
type configFile struct {
	Source ConfigSource
	Path   string
}

// configPaths lists the candidate config files, lowest precedence first
func configPaths() []configFile {
	files := []configFile{
		{Source: SourceSystem, Path: "/etc/ghpr/config.toml"},
	}
	if dir := UserConfigDir(); dir != "" {
		files = append(files, configFile{Source: SourceUser, Path: filepath.Join(dir, "config.toml")})
	}
	if project := findProjectConfig(); project != "" {
		files = append(files, configFile{Source: SourceProject, Path: project})
	}
	if explicitConfig != "" {
		files = append(files, configFile{Source: SourceExplicit, Path: explicitConfig})
	}
	return files
}

// UserConfigDir returns ~/.ghpr, or empty string when the home directory is unknown
func UserConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".ghpr")
}

// findProjectConfig searches for ghpr.toml by walking up the directory tree.
// Returns the path to the first config file found, or empty string if none found.
func findProjectConfig() string {
	dir, err := os.Getwd()
	if err != nil {
		return ""
	}

	for {
		candidate := filepath.Join(dir, ProjectConfigName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached filesystem root
			return ""
		}
		dir = parent
	}
}

// mergeConfigFiles merges existing configuration files into v and records where each key came from.
// Files that do not exist are skipped; files that fail to parse are skipped with a warning on stderr.
func mergeConfigFiles(v *viper.Viper, files []configFile) {
	for _, file := range files {
		if _, err := os.Stat(file.Path); err != nil {
			continue
		}

		tempViper := viper.New()
		tempViper.SetConfigFile(file.Path)
		tempViper.SetConfigType("toml")

		if err := tempViper.ReadInConfig(); err != nil {
			// Logger may not be initialized this early
			fmt.Fprintf(os.Stderr, "⚠️  Ignoring unreadable config %s: %v\n", file.Path, err)
			continue
		}

		// MergeConfigMap keeps environment variables above file values
		if err := v.MergeConfigMap(tempViper.AllSettings()); err != nil {
			fmt.Fprintf(os.Stderr, "⚠️  Ignoring config %s: %v\n", file.Path, err)
			continue
		}

		for _, key := range tempViper.AllKeys() {
			ConfigSources[key] = SourceInfo{Source: file.Source, Path: file.Path}
		}
	}
}

// Get returns a configuration value using dot notation
func Get(key string) interface{} {
	return GetViper().Get(key)
}

// GetString returns a configuration value as string using dot notation
func GetString(key string) string {
	return GetViper().GetString(key)
}

// GetBool returns a configuration value as bool using dot notation
func GetBool(key string) bool {
	return GetViper().GetBool(key)
}

// GetInt returns a configuration value as int using dot notation
func GetInt(key string) int {
	return GetViper().GetInt(key)
}
