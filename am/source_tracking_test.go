package am

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestSourceTrackingIntegration checks that loading through the real cascade
// records where each setting came from, end to end through introspection
func TestSourceTrackingIntegration(t *testing.T) {
	t.Run("Precedence: project config wins over user config", func(t *testing.T) {
		Reset()
		defer Reset()

		homeDir := t.TempDir()
		t.Setenv("HOME", homeDir)
		t.Setenv("GITHUB_TOKEN", "")
		t.Setenv("GHPR_GITHUB_OAUTH", "")

		userToml := `
[github]
repository = "acme/from-user"
oauth = "ghp_user"

[http]
proxyHost = "proxy.example.com"
proxyPort = 3128
`
		writeFile(t, filepath.Join(homeDir, ".ghpr", "config.toml"), userToml)

		projectDir := t.TempDir()
		projectToml := `
[github]
repository = "acme/from-project"
pull_request = 12
`
		writeFile(t, filepath.Join(projectDir, ProjectConfigName), projectToml)

		// Run from a subdirectory so the project file is found by walking up
		workDir := filepath.Join(projectDir, "src", "main")
		require.NoError(t, os.MkdirAll(workDir, 0o755))
		testChdir(t, workDir)

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "acme/from-project", cfg.GitHub.Repository, "project config should win over user config")
		assert.Equal(t, 12, cfg.GitHub.PullRequest)
		assert.Equal(t, "ghp_user", cfg.GitHub.OAuth)
		assert.Equal(t, "proxy.example.com", cfg.HTTP.ProxyHost)

		settings := make(map[string]SettingInfo)
		for _, setting := range GetConfigIntrospection().Settings {
			t.Logf("Found setting: %s = %v (from %s)", setting.Key, setting.Value, setting.SourcePath)
			settings[setting.Key] = setting
		}

		repo := settings["github.repository"]
		assert.Equal(t, SourceProject, repo.Source)
		assert.Contains(t, repo.SourcePath, ProjectConfigName)

		oauth := settings["github.oauth"]
		assert.Equal(t, SourceUser, oauth.Source)
		assert.Equal(t, RedactedValue, oauth.Value, "secrets must not leak through introspection")

		proxyHost := settings["http.proxyhost"]
		assert.Equal(t, SourceUser, proxyHost.Source)
		assert.Contains(t, proxyHost.SourcePath, filepath.Join(".ghpr", "config.toml"))

		assert.Equal(t, SourceDefault, settings["github.endpoint"].Source)
	})

	t.Run("Environment variables override files", func(t *testing.T) {
		Reset()
		defer Reset()

		homeDir := t.TempDir()
		t.Setenv("HOME", homeDir)
		testChdir(t, t.TempDir())

		writeFile(t, filepath.Join(homeDir, ".ghpr", "config.toml"), `
[github]
oauth = "ghp_file"
endpoint = "https://github.example.com/api/v3"
`)
		t.Setenv("GHPR_GITHUB_OAUTH", "")
		t.Setenv("GITHUB_TOKEN", "ghp_env")
		t.Setenv("GHPR_GITHUB_ENDPOINT", "https://ghe.example.com/api/v3")

		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, "ghp_env", cfg.GitHub.OAuth)
		assert.Equal(t, "https://ghe.example.com/api/v3", cfg.GitHub.Endpoint)

		settings := make(map[string]SettingInfo)
		for _, setting := range GetConfigIntrospection().Settings {
			settings[setting.Key] = setting
		}

		assert.Equal(t, SourceEnvironment, settings["github.endpoint"].Source)
		assert.Equal(t, "GHPR_GITHUB_ENDPOINT", settings["github.endpoint"].SourcePath)
		assert.Equal(t, SourceEnvironment, settings["github.oauth"].Source)
		assert.Equal(t, "GITHUB_TOKEN", settings["github.oauth"].SourcePath)
	})

	t.Run("Explicit config sits above project config", func(t *testing.T) {
		Reset()
		defer Reset()

		t.Setenv("HOME", t.TempDir())
		projectDir := t.TempDir()
		writeFile(t, filepath.Join(projectDir, ProjectConfigName), `
[links]
scm = "https://github.com/acme/project.git"
`)
		testChdir(t, projectDir)

		explicit := filepath.Join(t.TempDir(), "ci.toml")
		writeFile(t, explicit, `
[links]
scm = "https://github.com/acme/explicit.git"
`)
		UseConfigFile(explicit)

		assert.Equal(t, "https://github.com/acme/explicit.git", GetString(KeyLinksSources))

		intro := GetConfigIntrospection()
		counts := intro.CountBySource()
		assert.Equal(t, 1, counts[SourceExplicit])
		assert.Equal(t, 0, counts[SourceProject], "overridden keys are attributed to the winning file")
	})
}
