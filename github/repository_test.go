package github

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/teranos/ghpr/am"
	"github.com/teranos/ghpr/errors"
	"github.com/teranos/ghpr/logger"
)

func source(values map[string]any) *viper.Viper {
	v := viper.New()
	for k, val := range values {
		v.Set(k, val)
	}
	return v
}

func TestMatchSSH(t *testing.T) {
	tests := []struct {
		input  string
		want   string
		wantOK bool
	}{
		{"git@github.com:acme/widgets.git", "acme/widgets", true},
		{"git@github.com:Some-Org/some.repo.git", "Some-Org/some.repo", true},
		{"ssh://git@github.com:acme/widgets.git", "acme/widgets", true},
		{"scm:git:git@github.com:acme/widgets.git", "acme/widgets", true},
		{"git@github.com:acme/widgets", "", false},
		{"git@gitlab.com:acme/widgets.git", "", false},
		{"git@github.com:acme/widgets/extra.git", "", false},
		{"git@github.com:acme.git", "", false},
		{"git@github.com:acme/widgets.git#main", "", false},
		{"github.com:acme/widgets.git", "", false},
		{"https://github.com/acme/widgets.git", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := MatchSSH(tt.input)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMatchHTTP(t *testing.T) {
	tests := []struct {
		input  string
		want   string
		wantOK bool
	}{
		{"https://github.com/acme/widgets.git", "acme/widgets", true},
		{"http://github.com/acme/widgets.git", "acme/widgets", true},
		{"https://github.com/acme/widgets", "", false},
		{"https://github.com/acme/widgets.git/", "", false},
		{"https://github.com/acme/widgets/tree.git", "", false},
		{"https://gitlab.com/acme/widgets.git", "", false},
		{"https://www.github.com/acme/widgets.git", "", false},
		{"scm:git:https://github.com/acme/widgets.git", "", false},
		{"ftp://github.com/acme/widgets.git", "", false},
		{"git@github.com:acme/widgets.git", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := MatchHTTP(tt.input)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExtractRepository(t *testing.T) {
	owners := []string{"acme", "a", "my-org", "Org_1"}
	repos := []string{"widgets", "w", "repo.name", "repo-2"}

	for _, owner := range owners {
		for _, repo := range repos {
			want := owner + "/" + repo
			for _, input := range []string{
				"git@github.com:" + want + ".git",
				"http://github.com/" + want + ".git",
				"https://github.com/" + want + ".git",
			} {
				got, ok := ExtractRepository(input)
				assert.True(t, ok, input)
				assert.Equal(t, want, got, input)
			}
		}
	}

	for _, input := range []string{"acme/widgets", "https://bitbucket.org/acme/widgets.git", "not a url", ""} {
		_, ok := ExtractRepository(input)
		assert.False(t, ok, input)
	}
}

func TestResolveRepository(t *testing.T) {
	tests := []struct {
		name   string
		values map[string]any
		want   string
	}{
		{
			name:   "explicit clone URL",
			values: map[string]any{am.KeyRepository: "https://github.com/acme/widgets.git"},
			want:   "acme/widgets",
		},
		{
			name:   "explicit owner/repo unchanged",
			values: map[string]any{am.KeyRepository: "acme/widgets"},
			want:   "acme/widgets",
		},
		{
			name:   "explicit unparseable URL returned raw",
			values: map[string]any{am.KeyRepository: "https://gitlab.com/acme/widgets"},
			want:   "https://gitlab.com/acme/widgets",
		},
		{
			name: "explicit wins over links",
			values: map[string]any{
				am.KeyRepository:      "acme/explicit",
				am.KeyLinksSourcesDev: "git@github.com:acme/dev.git",
				am.KeyLinksSources:    "https://github.com/acme/plain.git",
			},
			want: "acme/explicit",
		},
		{
			name: "dev link before plain link",
			values: map[string]any{
				am.KeyLinksSourcesDev: "git@github.com:acme/dev.git",
				am.KeyLinksSources:    "https://github.com/acme/plain.git",
			},
			want: "acme/dev",
		},
		{
			name: "plain link when dev link does not match",
			values: map[string]any{
				am.KeyLinksSourcesDev: "git@github.com:acme/dev.git#main",
				am.KeyLinksSources:    "https://github.com/acme/plain.git",
			},
			want: "acme/plain",
		},
		{
			name:   "plain link only",
			values: map[string]any{am.KeyLinksSources: "https://github.com/acme/plain.git"},
			want:   "acme/plain",
		},
		{
			name:   "maven style dev link",
			values: map[string]any{am.KeyLinksSourcesDev: "scm:git:git@github.com:acme/widgets.git"},
			want:   "acme/widgets",
		},
		{
			// A whitespace-only repository counts as unset rather than being
			// returned verbatim as an owner/repo value.
			name: "blank explicit treated as unset and falls through to links",
			values: map[string]any{
				am.KeyRepository:   "   ",
				am.KeyLinksSources: "https://github.com/acme/plain.git",
			},
			want: "acme/plain",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ResolveRepository(source(tt.values))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolveRepository_NothingConfigured(t *testing.T) {
	_, err := ResolveRepository(viper.New())
	require.Error(t, err)

	assert.True(t, errors.IsConfigurationError(err))
	assert.Contains(t, err.Error(), "unable to determine GitHub repository")
	hints := errors.FlattenHints(err)
	assert.Contains(t, hints, am.KeyRepository)
	assert.Contains(t, hints, am.KeyLinksSources)
}

func TestResolveRepository_LinksDoNotMatch(t *testing.T) {
	dev := "scm:git:git@github.com:acme/widgets.git#main"
	plain := "https://gitlab.com/acme/widgets.git"

	_, err := ResolveRepository(source(map[string]any{
		am.KeyLinksSourcesDev: dev,
		am.KeyLinksSources:    plain,
	}))
	require.Error(t, err)

	assert.True(t, errors.IsConfigurationError(err))
	assert.False(t, errors.IsProxyResolutionError(err))
	assert.Contains(t, err.Error(), dev)
	assert.Contains(t, err.Error(), plain)
	assert.Contains(t, errors.FlattenHints(err), ".git")
}

func TestResolveRepository_WarnsOnBareName(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	logger.Logger = zap.New(core).Sugar()
	t.Cleanup(func() {
		logger.Logger = zap.NewNop().Sugar()
	})

	got, err := ResolveRepository(source(map[string]any{am.KeyRepository: "widgets"}))
	require.NoError(t, err)
	assert.Equal(t, "widgets", got)

	entries := logs.All()
	require.Len(t, entries, 1)
	assert.Equal(t, "widgets", entries[0].ContextMap()[logger.FieldRepository])

	_, err = ResolveRepository(source(map[string]any{am.KeyRepository: "acme/widgets"}))
	require.NoError(t, err)
	assert.Len(t, logs.All(), 1, "owner/repo values must not warn")
}
