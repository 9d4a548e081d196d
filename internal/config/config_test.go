package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoad_FullFile(t *testing.T) {
	path := writeConfig(t, `
rounding = 2
default-helper = "regression"

[plot]
width = 60
height = 15
`)
	f, err := Load(path)
	require.NoError(t, err)
	s := f.Settings()
	assert.Equal(t, 2, s.Rounding)
	assert.Equal(t, "regression", s.DefaultHelper)
	assert.Equal(t, 60, s.PlotWidth)
	assert.Equal(t, 15, s.PlotHeight)
}

func TestLoad_MissingFileIsNotAnError(t *testing.T) {
	f, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	require.NoError(t, err)
	s := f.Settings()
	assert.Equal(t, 4, s.Rounding)
	assert.Equal(t, "diff of proportions", s.DefaultHelper)
	assert.Equal(t, 0, s.PlotWidth)
	assert.Equal(t, 0, s.PlotHeight)
}

func TestLoad_EmptyPath(t *testing.T) {
	_, err := Load("")
	assert.Error(t, err)
}

func TestLoad_MalformedTOML(t *testing.T) {
	path := writeConfig(t, "rounding = [nope")
	_, err := Load(path)
	assert.Error(t, err)
}

func TestSettings_OutOfRangeRoundingIgnored(t *testing.T) {
	for _, bad := range []int{0, 10, -3} {
		bad := bad
		f := File{Rounding: &bad}
		assert.Equal(t, 4, f.Settings().Rounding, "rounding=%d", bad)
	}
}

func TestSettings_EmptyHelperFallsBack(t *testing.T) {
	empty := ""
	f := File{DefaultHelper: &empty}
	assert.Equal(t, "diff of proportions", f.Settings().DefaultHelper)
}

func TestDefaultPath_EnvOverride(t *testing.T) {
	t.Setenv("STATHELPER_CONFIG", "/tmp/custom.toml")
	assert.Equal(t, "/tmp/custom.toml", DefaultPath())
}

func TestDefaultPath_XDG(t *testing.T) {
	t.Setenv("STATHELPER_CONFIG", "")
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")
	assert.Equal(t, filepath.Join("/tmp/xdg", "stathelper", "config.toml"), DefaultPath())
}
