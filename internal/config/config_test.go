package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"accounts-generator/internal/gen"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "generated", cfg.OutputDir)
	assert.True(t, cfg.Features.ClientHelpers)
	assert.True(t, cfg.Features.CpiHelpers)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, gen.DefaultFlags(), cfg.Flags())
}

func TestLoad_File(t *testing.T) {
	dir := t.TempDir()

	content := `
output_dir: programs/escrow/src/generated
features:
  client_helpers: false
log:
  level: debug
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, Name+".yaml"), []byte(content), 0o644))

	cfg, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, "programs/escrow/src/generated", cfg.OutputDir)
	assert.Equal(t, gen.Flags{GenerateCpiHelpers: true}, cfg.Flags())

	lvl, err := cfg.Level()
	require.NoError(t, err)
	assert.Equal(t, zapcore.DebugLevel, lvl)
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("ACCOUNTS_GENERATOR_OUTPUT_DIR", "out")
	t.Setenv("ACCOUNTS_GENERATOR_FEATURES_CPI_HELPERS", "false")

	cfg, err := Load(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "out", cfg.OutputDir)
	assert.False(t, cfg.Features.CpiHelpers)
	assert.True(t, cfg.Features.ClientHelpers)
}

func TestLoad_InvalidLevel(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, Name+".yaml"), []byte("log:\n  level: loud\n"), 0o644))

	_, err := Load(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid log.level")
}

func TestLoad_MalformedFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, Name+".yaml"), []byte("output_dir: [\n"), 0o644))

	_, err := Load(dir)
	assert.Error(t, err)
}

func TestLoadFile_Missing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestNewLogger(t *testing.T) {
	cfg, err := Load(t.TempDir())
	require.NoError(t, err)

	assert.NotNil(t, cfg.NewLogger(false))
	assert.NotNil(t, cfg.NewLogger(true))
}
