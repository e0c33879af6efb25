package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/canary/internal/logging"
)

func TestDefault(t *testing.T) {
	t.Run("baseline", func(t *testing.T) {
		t.Setenv(EnvVerbosity, "")
		cfg := Default()
		assert.Equal(t, logging.User, cfg.Verbosity)
		assert.Equal(t, ":8321", cfg.HTTPAddr)
		assert.False(t, cfg.IncludeAll)
		assert.Empty(t, cfg.Deny)
	})

	t.Run("env override", func(t *testing.T) {
		t.Setenv(EnvVerbosity, "3")
		assert.Equal(t, logging.Trace, Default().Verbosity)
	})

	t.Run("out of range env is ignored", func(t *testing.T) {
		t.Setenv(EnvVerbosity, "9")
		assert.Equal(t, logging.User, Default().Verbosity)
	})

	t.Run("garbage env is ignored", func(t *testing.T) {
		t.Setenv(EnvVerbosity, "loud")
		assert.Equal(t, logging.User, Default().Verbosity)
	})
}

func TestLoad(t *testing.T) {
	t.Setenv(EnvVerbosity, "")

	write := func(t *testing.T, contents string) string {
		t.Helper()
		path := filepath.Join(t.TempDir(), "canary.yaml")
		require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
		return path
	}

	t.Run("full file", func(t *testing.T) {
		path := write(t, "verbosity: 2\ninclude_all: true\ndeny:\n  - tokenizer\n  - secret\nhttp_addr: \":9000\"\n")
		cfg, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, logging.Debug, cfg.Verbosity)
		assert.True(t, cfg.IncludeAll)
		assert.Equal(t, []string{"tokenizer", "secret"}, cfg.Deny)
		assert.Equal(t, ":9000", cfg.HTTPAddr)
	})

	t.Run("missing file yields defaults", func(t *testing.T) {
		cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
		require.NoError(t, err)
		assert.Equal(t, Default(), cfg)
	})

	t.Run("partial file keeps defaults", func(t *testing.T) {
		cfg, err := Load(write(t, "include_all: true\n"))
		require.NoError(t, err)
		assert.True(t, cfg.IncludeAll)
		assert.Equal(t, ":8321", cfg.HTTPAddr)
	})

	t.Run("out of range verbosity clamps", func(t *testing.T) {
		cfg, err := Load(write(t, "verbosity: 42\n"))
		require.NoError(t, err)
		assert.Equal(t, logging.User, cfg.Verbosity)
	})

	t.Run("malformed yaml fails", func(t *testing.T) {
		_, err := Load(write(t, "verbosity: [broken"))
		assert.Error(t, err)
	})
}
