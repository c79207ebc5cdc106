package kernel

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestConfigDefaultsCoverRecognizedKeys(t *testing.T) {
	c := NewConfig()
	require.Equal(t, 0.9, c.Get("budgetDecay"))
	require.True(t, c.IsRecognized("budgetDecay"))
	require.False(t, c.IsRecognized("notAKey"))
}

func TestConfigSetAcceptsUnrecognizedKeys(t *testing.T) {
	c := NewConfig()
	c.Set("experimentalKnob", 42)
	require.Equal(t, 42.0, c.Get("experimentalKnob"))
	require.False(t, c.IsRecognized("experimentalKnob"))
}

func TestConfigYAMLRoundTrip(t *testing.T) {
	c := NewConfig()
	c.Set("budgetThreshold", 0.123)

	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	data, err := c.DumpYAML()
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, data, 0o644))

	loaded, err := LoadConfigYAML(path)
	require.NoError(t, err)
	require.Equal(t, 0.123, loaded.Get("budgetThreshold"))
	require.Equal(t, c.Get("budgetDecay"), loaded.Get("budgetDecay"), "omitted keys keep their default")
}

func TestConfigSnapshotIsACopy(t *testing.T) {
	c := NewConfig()
	snap := c.Snapshot()
	snap["budgetThreshold"] = 999
	require.NotEqual(t, 999.0, c.Get("budgetThreshold"))
}
