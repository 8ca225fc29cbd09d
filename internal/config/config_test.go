package config

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/todoheap/internal/render"
)

func TestLoad_Defaults(t *testing.T) {
	for _, path := range []string{"", filepath.Join(t.TempDir(), "missing.cue")} {
		cfg, err := Load(path)
		require.NoError(t, err)

		assert.Equal(t, "todoheap.db", cfg.Database)
		assert.Equal(t, 8, cfg.MinCapacity)
		assert.Equal(t, "info", cfg.LogLevel)
		assert.Equal(t, "", cfg.LogFile)
		assert.True(t, cfg.Color)
		assert.Equal(t, render.DefaultPalette, cfg.Colors.Palette())
	}
}

func TestDefault(t *testing.T) {
	assert.Equal(t, 8, Default().MinCapacity)
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.cue")
	src := `
database:     "/tmp/heaps.db"
min_capacity: 16
log_level:    "debug"
color:        false
colors: tree: "#a6e3a1"
`
	require.NoError(t, os.WriteFile(path, []byte(src), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "/tmp/heaps.db", cfg.Database)
	assert.Equal(t, 16, cfg.MinCapacity)
	assert.Equal(t, slog.LevelDebug, cfg.Level())
	assert.False(t, cfg.Color)
	assert.Equal(t, "#a6e3a1", cfg.Colors.Tree)
	assert.Equal(t, render.DefaultPalette.Text, cfg.Colors.Text, "unset colors keep defaults")
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		src     string
		message string
	}{
		{name: "min capacity zero", src: `min_capacity: 0`},
		{name: "min capacity type", src: `min_capacity: "large"`},
		{name: "log level", src: `log_level: "verbose"`},
		{name: "bad color", src: `colors: tree: "blue"`},
		{name: "unknown field", src: `colour: true`, message: `unknown field "colour"`},
		{name: "unknown nested field", src: `colors: border: "#000000"`, message: `unknown field "border"`},
		{name: "syntax", src: `min_capacity: [`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse("config.cue", []byte(tt.src))
			require.Error(t, err)

			var cfgErr *Error
			require.True(t, errors.As(err, &cfgErr), "got %T: %v", err, err)
			if tt.message != "" {
				assert.Contains(t, err.Error(), tt.message)
				assert.Contains(t, err.Error(), "config.cue:1:")
			}
		})
	}
}

func TestLevel_Unknown(t *testing.T) {
	cfg := &Config{LogLevel: "loud"}
	assert.Equal(t, slog.LevelInfo, cfg.Level())
}

func TestError_Format(t *testing.T) {
	err := &Error{Message: "boom"}
	assert.Equal(t, "config: boom", err.Error())
}
