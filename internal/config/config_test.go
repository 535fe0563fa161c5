package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_DefaultsWithoutFiles(t *testing.T) {
	dir := t.TempDir()
	cfg, err := Load(filepath.Join(dir, "missing.yml"), filepath.Join(dir, "missing.env"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_YAMLThenEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "wysiwyg.yml")
	yml := "selector: \"#editor\"\ntools: [bold, italic]\nrecheck_delay: 25ms\nlog:\n  file: demo.log\n  level: debug\n"
	require.NoError(t, os.WriteFile(path, []byte(yml), 0o644))
	t.Setenv("WYSIWYG_HISTORY_LIMIT", "50")
	t.Setenv("WYSIWYG_LOG__LEVEL", "warn")

	cfg, err := Load(path, "")
	require.NoError(t, err)
	assert.Equal(t, "#editor", cfg.Selector)
	assert.Equal(t, []string{"bold", "italic"}, cfg.Tools)
	assert.Equal(t, 25*time.Millisecond, cfg.RecheckDelay)
	assert.Equal(t, 50, cfg.HistoryLimit)
	assert.Equal(t, "demo.log", cfg.Log.File)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestLoad_DotenvFeedsOverrides(t *testing.T) {
	dir := t.TempDir()
	dotenv := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(dotenv, []byte("WYSIWYG_DOCUMENT=page.html\n"), 0o644))
	t.Cleanup(func() { os.Unsetenv("WYSIWYG_DOCUMENT") })

	cfg, err := Load("", dotenv)
	require.NoError(t, err)
	assert.Equal(t, "page.html", cfg.Document)
}

func TestLoad_RejectsInvalidValues(t *testing.T) {
	t.Setenv("WYSIWYG_LOG__LEVEL", "chatty")
	_, err := Load("", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid config")
}

func TestValidate_EmptySelector(t *testing.T) {
	cfg := Default()
	cfg.Selector = ""
	assert.Error(t, cfg.Validate())
}

func TestMediaLimit_ParsesHumanSizes(t *testing.T) {
	cfg := Default()
	n, err := cfg.MediaLimit()
	require.NoError(t, err)
	assert.Zero(t, n)

	cfg.MaxMediaSize = "5 MB"
	n, err = cfg.MediaLimit()
	require.NoError(t, err)
	assert.Equal(t, int64(5_000_000), n)

	cfg.MaxMediaSize = "lots"
	assert.Error(t, cfg.Validate())
}
