package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/raymyers/c1parse/pkg/parser"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "c1parse.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, name := range []string{EnvMaxDepth, EnvLogLevel, EnvLogFormat} {
		t.Setenv(name, "")
		os.Unsetenv(name)
	}
}

func TestDefault(t *testing.T) {
	cfg := Default()
	require.Equal(t, parser.DefaultMaxDepth, cfg.Parser.MaxDepth)
	require.Equal(t, "warning", cfg.Log.Level)
	require.Equal(t, "text", cfg.Log.Format)
	require.NoError(t, cfg.Validate())
}

func TestLoadWithoutFile(t *testing.T) {
	clearEnv(t)

	cfg, err := Load("")
	require.NoError(t, err)
	require.Equal(t, Default(), cfg)
}

func TestLoadFile(t *testing.T) {
	clearEnv(t)

	path := writeConfig(t, `
[parser]
max_depth = 64

[log]
level = "debug"
format = "json"
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, 64, cfg.Parser.MaxDepth)
	require.Equal(t, "debug", cfg.Log.Level)
	require.Equal(t, "json", cfg.Log.Format)
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(writeConfig(t, "[log]\nlevel = \"info\"\n"))
	require.NoError(t, err)
	require.Equal(t, parser.DefaultMaxDepth, cfg.Parser.MaxDepth)
	require.Equal(t, "info", cfg.Log.Level)
	require.Equal(t, "text", cfg.Log.Format)
}

func TestLoadMissingFile(t *testing.T) {
	clearEnv(t)

	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	require.Error(t, err)
	require.True(t, ErrLoadConfig.Is(err))
}

func TestLoadMalformedFile(t *testing.T) {
	clearEnv(t)

	_, err := Load(writeConfig(t, "[parser\nmax_depth = "))
	require.Error(t, err)
	require.True(t, ErrLoadConfig.Is(err))
}

func TestLoadInvalidValues(t *testing.T) {
	clearEnv(t)

	tests := []struct {
		name    string
		content string
	}{
		{"zero depth", "[parser]\nmax_depth = 0\n"},
		{"negative depth", "[parser]\nmax_depth = -5\n"},
		{"unknown level", "[log]\nlevel = \"loud\"\n"},
		{"unknown format", "[log]\nformat = \"xml\"\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content))
			require.Error(t, err)
			require.True(t, ErrInvalidConfig.Is(err), "unexpected error %v", err)
		})
	}
}

func TestEnvironmentOverridesFile(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvMaxDepth, "12")
	t.Setenv(EnvLogLevel, "error")
	t.Setenv(EnvLogFormat, "json")

	cfg, err := Load(writeConfig(t, "[parser]\nmax_depth = 64\n"))
	require.NoError(t, err)
	require.Equal(t, 12, cfg.Parser.MaxDepth)
	require.Equal(t, "error", cfg.Log.Level)
	require.Equal(t, "json", cfg.Log.Format)
}

func TestApplyEnv(t *testing.T) {
	env := map[string]string{EnvMaxDepth: "not-a-number"}
	lookup := func(name string) (string, bool) {
		v, ok := env[name]
		return v, ok
	}

	cfg := Default()
	err := cfg.ApplyEnv(lookup)
	require.Error(t, err)
	require.True(t, ErrInvalidConfig.Is(err))

	env[EnvMaxDepth] = "7"
	require.NoError(t, cfg.ApplyEnv(lookup))
	require.Equal(t, 7, cfg.Parser.MaxDepth)
	require.Equal(t, "warning", cfg.Log.Level)
}

func TestParserOptions(t *testing.T) {
	cfg := Default()
	cfg.Parser.MaxDepth = 2

	opts := cfg.ParserOptions(logrus.New())
	require.Len(t, opts, 2)

	require.NoError(t, parser.Parse("void f(){ { { } } }", opts...))

	err := parser.Parse("void f(){ { { { } } } }", opts...)
	var se *parser.SyntaxError
	require.ErrorAs(t, err, &se)
	require.Equal(t, parser.KindNestingTooDeep, se.Kind)
}

func TestReadSkipsValidation(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvLogLevel, "bogus")

	cfg, err := Read("")
	require.NoError(t, err)
	require.Equal(t, "bogus", cfg.Log.Level)

	_, err = Load("")
	require.Error(t, err)
	require.True(t, ErrInvalidConfig.Is(err))

	cfg.Log.Level = "debug"
	require.NoError(t, cfg.Validate())
}
