package tier

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestLimits_AllowsDraft tests the draft ceiling including the boundary
// and the unlimited sentinel.
func TestLimits_AllowsDraft(t *testing.T) {
	free := Limits{DraftLimit: 3, PublishedLimit: 1}
	assert.True(t, free.AllowsDraft(0))
	assert.True(t, free.AllowsDraft(2))
	assert.False(t, free.AllowsDraft(3))
	assert.False(t, free.AllowsDraft(4))

	none := Limits{DraftLimit: 0}
	assert.False(t, none.AllowsDraft(0))

	team := Limits{DraftLimit: Unlimited, PublishedLimit: Unlimited}
	assert.True(t, team.AllowsDraft(100000))
	assert.True(t, team.AllowsPublish(100000))
}

// TestLimits_AllowsPublish tests the published ceiling.
func TestLimits_AllowsPublish(t *testing.T) {
	free := Limits{DraftLimit: 3, PublishedLimit: 1}
	assert.True(t, free.AllowsPublish(0))
	assert.False(t, free.AllowsPublish(1))
}

// TestDefaultConfig tests the built-in tier table.
func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, Limits{DraftLimit: 3, PublishedLimit: 1}, cfg.For("free"))
	assert.Equal(t, Limits{DraftLimit: 25, PublishedLimit: 10}, cfg.For("pro"))
	assert.Equal(t, Limits{DraftLimit: Unlimited, PublishedLimit: Unlimited}, cfg.For("team"))
}

// TestConfig_For_UnknownTierFallsBack tests the default-tier fallback.
func TestConfig_For_UnknownTierFallsBack(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, cfg.For(DefaultTier), cfg.For("enterprise-trial"))
}

// TestLoad tests parsing a YAML tier file.
func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tiers.yaml")
	content := `tiers:
  free:
    draft_limit: 2
    published_limit: 1
  pro:
    draft_limit: -1
    published_limit: 5
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, Limits{DraftLimit: 2, PublishedLimit: 1}, cfg.For("free"))
	assert.Equal(t, Limits{DraftLimit: Unlimited, PublishedLimit: 5}, cfg.For("pro"))
}

// TestLoad_Errors tests missing files and empty configs.
func TestLoad_Errors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "empty.yaml")
	require.NoError(t, os.WriteFile(path, []byte("tiers: {}\n"), 0o644))
	_, err = Load(path)
	assert.Error(t, err)
}
