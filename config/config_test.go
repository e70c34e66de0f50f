/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"bennypowers.dev/tsimtsum/optimize"
	"bennypowers.dev/tsimtsum/theme"
)

func writeConfig(t *testing.T, dir, name, content string) {
	t.Helper()
	configDir := filepath.Join(dir, ConfigDir)
	require.NoError(t, os.MkdirAll(configDir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(configDir, name), []byte(content), 0644))
}

func TestLoad_YAML(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "tsimtsum.yaml", `
files:
  - src/**/*.css
prefix: tw
polyfills:
  colorMix: false
variables:
  --color-red: "#f00"
static:
  - --color-red
`)

	cfg, err := Load(dir)
	require.NoError(t, err)
	require.NotNil(t, cfg)

	require.Equal(t, []string{"src/**/*.css"}, cfg.Files)
	require.Equal(t, "tw", cfg.Prefix)
	require.NotNil(t, cfg.Polyfills.ColorMix)
	require.False(t, *cfg.Polyfills.ColorMix)
	require.Nil(t, cfg.Polyfills.AtProperty)
	require.Equal(t, "#f00", cfg.Variables["--color-red"])
	require.Equal(t, []string{"--color-red"}, cfg.Static)
}

func TestLoad_JSONWithComments(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "tsimtsum.json", `{
  // input style sheets
  "files": ["main.css"],
  "prefix": "rh",
  "polyfills": {
    "atProperty": false,
  },
}`)

	cfg, err := Load(dir)
	require.NoError(t, err)
	require.NotNil(t, cfg)

	require.Equal(t, []string{"main.css"}, cfg.Files)
	require.Equal(t, "rh", cfg.Prefix)
	require.NotNil(t, cfg.Polyfills.AtProperty)
	require.False(t, *cfg.Polyfills.AtProperty)
}

func TestLoad_Missing(t *testing.T) {
	cfg, err := Load(t.TempDir())
	require.NoError(t, err)
	require.Nil(t, cfg)
}

func TestLoadOrDefault(t *testing.T) {
	cfg := LoadOrDefault(t.TempDir())
	require.NotNil(t, cfg)
	require.Empty(t, cfg.Files)
	require.Equal(t, optimize.PolyfillAll, cfg.Polyfills.Flags())
}

func TestPolyfillConfig_Flags(t *testing.T) {
	no := false
	yes := true

	tests := []struct {
		name     string
		config   PolyfillConfig
		expected optimize.Polyfills
	}{
		{
			name:     "unset means all enabled",
			config:   PolyfillConfig{},
			expected: optimize.PolyfillAll,
		},
		{
			name:     "explicit true",
			config:   PolyfillConfig{ColorMix: &yes, AtProperty: &yes},
			expected: optimize.PolyfillAll,
		},
		{
			name:     "color-mix disabled",
			config:   PolyfillConfig{ColorMix: &no},
			expected: optimize.PolyfillAtProperty,
		},
		{
			name:     "all disabled",
			config:   PolyfillConfig{ColorMix: &no, AtProperty: &no},
			expected: optimize.PolyfillNone,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.expected, tt.config.Flags())
		})
	}
}

func TestConfig_Theme(t *testing.T) {
	cfg := &Config{
		Prefix: "tw",
		Variables: map[string]string{
			"--color-red": "#f00",
		},
		Static: []string{"--color-red"},
	}

	th := cfg.Theme()
	v, ok := th.ResolveValue("", []string{"--tw-color-red"})
	require.True(t, ok)
	require.Equal(t, "#f00", v)
	require.NotZero(t, th.GetOptions("--tw-color-red")&theme.OptionsStatic)
}

func TestConfig_ExpandFiles(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"a.css", "b.css", "c.txt"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x{}"), 0644))
	}

	cfg := &Config{Files: []string{"*.css", "literal.css"}}
	files, err := cfg.ExpandFiles(dir)
	require.NoError(t, err)

	require.Len(t, files, 3)
	require.Contains(t, files, filepath.Join(dir, "a.css"))
	require.Contains(t, files, filepath.Join(dir, "b.css"))
	// Literal paths pass through without existence checks.
	require.Contains(t, files, filepath.Join(dir, "literal.css"))
}
