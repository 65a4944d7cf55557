package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/geange/dfamin"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadConfig(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		cfg, err := loadConfig("")
		require.NoError(t, err)
		assert.Equal(t, defaultConfig(), cfg)
	})

	t.Run("overrides defaults", func(t *testing.T) {
		path := writeFile(t, t.TempDir(), "dfamin.yaml", "output_dir: out\nrender: none\npolicy: implicit-sink\n")
		cfg, err := loadConfig(path)
		require.NoError(t, err)

		assert.Equal(t, "out", cfg.OutputDir)
		assert.Equal(t, "none", cfg.Render)
		assert.Equal(t, "implicit-sink", cfg.Policy)
		assert.Equal(t, "info", cfg.LogLevel)
		assert.Equal(t, 900, cfg.Width)
	})

	t.Run("unknown fields are rejected", func(t *testing.T) {
		path := writeFile(t, t.TempDir(), "dfamin.yaml", "outputdir: out\n")
		_, err := loadConfig(path)
		assert.Error(t, err)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := loadConfig(filepath.Join(t.TempDir(), "none.yaml"))
		assert.ErrorIs(t, err, os.ErrNotExist)
	})
}

func TestConfigRenderer(t *testing.T) {
	tests := []struct {
		render string
		ext    string
	}{
		{"dot", "dot"},
		{"png", "png"},
		{"svg", "svg"},
		{"none", ""},
	}
	for _, tt := range tests {
		t.Run(tt.render, func(t *testing.T) {
			cfg := defaultConfig()
			cfg.Render = tt.render
			r, ext, err := cfg.renderer()
			require.NoError(t, err)
			assert.NotNil(t, r)
			assert.Equal(t, tt.ext, ext)
		})
	}

	cfg := defaultConfig()
	cfg.Render = "gif"
	_, _, err := cfg.renderer()
	assert.Error(t, err)
}

func TestRunMinimize(t *testing.T) {
	sample := filepath.Join("..", "..", "testdata", "sample_input.txt")

	t.Run("writes output and diagrams", func(t *testing.T) {
		cfg := defaultConfig()
		cfg.OutputDir = filepath.Join(t.TempDir(), "output")

		require.NoError(t, runMinimize(cfg, sample, strings.NewReader("")))

		got, err := os.ReadFile(filepath.Join(cfg.OutputDir, "output.txt"))
		require.NoError(t, err)
		want, err := os.ReadFile(filepath.Join("..", "..", "testdata", "sample_correct.txt"))
		require.NoError(t, err)
		assert.Equal(t, string(want), string(got))

		for _, name := range []string{"input.dot", "output.dot"} {
			dot, err := os.ReadFile(filepath.Join(cfg.OutputDir, name))
			require.NoError(t, err)
			assert.True(t, strings.HasPrefix(string(dot), "digraph automaton {"), name)
		}
	})

	t.Run("reads the path from stdin", func(t *testing.T) {
		cfg := defaultConfig()
		cfg.OutputDir = t.TempDir()
		cfg.Render = "none"

		require.NoError(t, runMinimize(cfg, "", strings.NewReader(sample+"\nignored\n")))
		m, err := dfamin.ReadFile(filepath.Join(cfg.OutputDir, "output.txt"))
		require.NoError(t, err)
		assert.Equal(t, 4, m.GetNumStates())

		entries, err := os.ReadDir(cfg.OutputDir)
		require.NoError(t, err)
		assert.Len(t, entries, 1)
	})

	t.Run("implicit sink policy", func(t *testing.T) {
		dir := t.TempDir()
		input := writeFile(t, dir, "partial.txt", "3 0 1 2\na 1\nb 2\na 1\nb 1\na 2\nb 2\n1\n")

		cfg := defaultConfig()
		cfg.OutputDir = dir
		cfg.Render = "none"
		cfg.Policy = "implicit-sink"
		require.NoError(t, runMinimize(cfg, input, strings.NewReader("")))

		got, err := os.ReadFile(filepath.Join(dir, "output.txt"))
		require.NoError(t, err)
		assert.Equal(t, "2 0 1 2\n\na 1\n\na 1\nb 1\n1 ", string(got))
	})

	t.Run("errors", func(t *testing.T) {
		cfg := defaultConfig()
		cfg.OutputDir = t.TempDir()

		assert.Error(t, runMinimize(cfg, "", strings.NewReader("")))
		assert.Error(t, runMinimize(cfg, filepath.Join(cfg.OutputDir, "none.txt"), nil))

		bad := writeFile(t, cfg.OutputDir, "bad.txt", "2 0 1 1\na x\n")
		var formatErr *dfamin.FormatError
		assert.ErrorAs(t, runMinimize(cfg, bad, nil), &formatErr)

		cfg.Policy = "bogus"
		assert.Error(t, runMinimize(cfg, sample, nil))
	})
}

func TestRunCheck(t *testing.T) {
	testdata := filepath.Join("..", "..", "testdata")

	equal, err := runCheck(filepath.Join(testdata, "sample_input.txt"), filepath.Join(testdata, "sample_correct.txt"), false)
	require.NoError(t, err)
	assert.True(t, equal)

	equal, err = runCheck(filepath.Join(testdata, "sample_input.txt"), filepath.Join(testdata, "single_input.txt"), true)
	require.NoError(t, err)
	assert.False(t, equal)

	_, err = runCheck(filepath.Join(testdata, "none.txt"), filepath.Join(testdata, "single_input.txt"), false)
	assert.Error(t, err)

	t.Run("partial output is not readable input", func(t *testing.T) {
		partial := writeFile(t, t.TempDir(), "output.txt", "2 0 1 2\n\na 1\n\na 1\nb 1\n1 ")

		_, err := runCheck(partial, filepath.Join(testdata, "single_input.txt"), true)
		var formatErr *dfamin.FormatError
		assert.ErrorAs(t, err, &formatErr)
		assert.Contains(t, checkCmd.Long, "partial")
	})
}
