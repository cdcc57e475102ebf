package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pkg/errors"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Noofbiz/trafficsigns/datasets"
)

func newTestFlags(t *testing.T, args ...string) *pflag.FlagSet {
	t.Helper()
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	registerDatasetFlags(flags)
	require.NoError(t, flags.Parse(args))
	return flags
}

func TestConfigDefaults(t *testing.T) {
	v, err := newViper("", newTestFlags(t))
	require.NoError(t, err)
	s, err := configFromViper(v)
	require.NoError(t, err)
	assert.Equal(t, "gray_w28_h20_aug-none", s.Config.Serialize())
	assert.Equal(t, datasets.DefaultRoot, s.Loader.Root)
	require.NotNil(t, s.Loader.Cache)
	assert.Equal(t, datasets.DefaultCacheDir, s.Loader.Cache.Dir)
	assert.Equal(t, datasets.DefaultShuffleSeed, s.Loader.Seed)
	assert.False(t, s.Loader.Progress)
}

func TestConfigPriorities(t *testing.T) {
	dir := t.TempDir()
	configFile := filepath.Join(dir, "tsprep.yaml")
	require.NoError(t, os.WriteFile(configFile, []byte(`
width: 48
height: 48
color: color
augmentation: mirror
data_root: /data/signs
seed: 7
`), 0o644))
	t.Setenv("TSPREP_HEIGHT", "40")

	v, err := newViper(configFile, newTestFlags(t, "--width=32", "--cache-dir="))
	require.NoError(t, err)
	s, err := configFromViper(v)
	require.NoError(t, err)
	assert.Equal(t, 32, s.Config.Width(), "flag beats config file")
	assert.Equal(t, 40, s.Config.Height(), "environment beats config file")
	assert.Equal(t, datasets.Color, s.Config.ColorMode())
	assert.Equal(t, datasets.AugmentMirror, s.Config.Augmentation())
	assert.Equal(t, "/data/signs", s.Loader.Root)
	assert.Equal(t, int64(7), s.Loader.Seed)
	assert.Nil(t, s.Loader.Cache, "empty cache dir disables the cache")
}

func TestConfigInvalid(t *testing.T) {
	for _, args := range [][]string{
		{"--width=0"},
		{"--height=-3"},
		{"--color=sepia"},
		{"--augmentation=rotate"},
	} {
		v, err := newViper("", newTestFlags(t, args...))
		require.NoError(t, err)
		_, err = configFromViper(v)
		assert.True(t, errors.Is(err, datasets.ErrConfig), "%v: got %v", args, err)
	}

	_, err := newViper(filepath.Join(t.TempDir(), "missing.yaml"), nil)
	assert.Error(t, err)
}
