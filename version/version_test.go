package version

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInfo_String(t *testing.T) {
	i := Info{CommitHash: "0123456789abcdef", BuildTime: "2026-01-02T03:04:05Z", Version: "v1.2.0", Platform: "linux/amd64"}

	assert.Equal(t, "ghpr v1.2.0 (commit 0123456, built 2026-01-02T03:04:05Z)", i.String())
	assert.Equal(t, "0123456", i.Short())
	assert.Equal(t, "ghpr/v1.2.0 (linux/amd64)", i.UserAgent())
}

func TestInfo_ShortHash(t *testing.T) {
	assert.Equal(t, "dev", Info{CommitHash: "dev"}.Short())
}

func TestGet(t *testing.T) {
	i := Get()
	assert.Equal(t, Version, i.Version)
	assert.NotEmpty(t, i.GoVersion)
	assert.Contains(t, i.Platform, "/")
}
