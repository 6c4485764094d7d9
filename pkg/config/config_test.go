package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testFlags() *pflag.FlagSet {
	f := pflag.NewFlagSet("test", pflag.ContinueOnError)
	f.Bool("dry-run", false, "")
	f.Uint64("min-size", 1, "")
	f.String("separator", ";", "")
	f.Bool("no-brace-output", false, "")
	f.StringSlice("filter", nil, "")
	return f
}

func TestLoad_Defaults(t *testing.T) {
	require.NoError(t, Load("", nil))

	assert.False(t, Config.DryRun)
	assert.Equal(t, uint64(1), Config.MinSize)
	assert.Equal(t, ";", Config.Separator)
	assert.False(t, Config.NoBraceOutput)
	assert.Empty(t, Config.Filters)
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("min-size: 4096\nseparator: '--'\n"), 0o644))

	require.NoError(t, Load(path, nil))

	assert.Equal(t, uint64(4096), Config.MinSize)
	assert.Equal(t, "--", Config.Separator)
}

func TestLoad_FlagsOverrideFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("min-size: 4096\n"), 0o644))

	flags := testFlags()
	require.NoError(t, flags.Parse([]string{"--min-size", "128", "--dry-run"}))

	require.NoError(t, Load(path, flags))

	assert.Equal(t, uint64(128), Config.MinSize)
	assert.True(t, Config.DryRun)
}

func TestLoad_MissingFileIsFine(t *testing.T) {
	require.NoError(t, Load(filepath.Join(t.TempDir(), "nope.yaml"), testFlags()))
	assert.Equal(t, uint64(1), Config.MinSize)
}

func TestLoad_MinSizeClampedToOne(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("min-size: 0\n"), 0o644))

	require.NoError(t, Load(path, nil))
	assert.Equal(t, uint64(1), Config.MinSize)
}

func TestLoad_BadYAMLIsAnError(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("min-size: [\n"), 0o644))

	assert.Error(t, Load(path, nil))
}
