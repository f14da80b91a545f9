package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/climengine/weiqi/config"
	"github.com/stretchr/testify/require"
)

func TestDefaultRatiosHoldTreeInvariants(t *testing.T) {
	d := config.Default()
	require.Greater(t, d.PriorCaptureMany, d.PriorCaptureOne)
	require.Greater(t, d.PriorLargePattern, d.PriorPat3)
	require.Greater(t, d.Fastplay5Thres, d.Fastplay20Thres)
}

func TestLoadOverridesOnlyGivenFields(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "weiqi.toml")
	require.NoError(t, os.WriteFile(path, []byte("rave_equiv = 5000\n"), 0o644))

	tunables, err := config.Load(path)
	require.NoError(t, err)
	require.Equal(t, 5000.0, tunables.RaveEquiv)
	require.Equal(t, config.Default().ExpandVisits, tunables.ExpandVisits)
}

func TestLoadMissingFileReturnsError(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "missing.toml"))
	require.Error(t, err)
}
