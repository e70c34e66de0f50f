/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package config loads build configuration for tsimtsum.
package config

import (
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"bennypowers.dev/tsimtsum/optimize"
	"bennypowers.dev/tsimtsum/theme"
)

// Config is the parsed contents of .config/tsimtsum.{yaml,yml,json}.
type Config struct {
	// Files are the input style sheets, possibly as glob patterns.
	Files []string `yaml:"files" json:"files"`

	// Prefix is folded into every theme variable name.
	Prefix string `yaml:"prefix" json:"prefix"`

	// Polyfills toggles individual polyfills; unset means enabled.
	Polyfills PolyfillConfig `yaml:"polyfills" json:"polyfills"`

	// Variables defines theme variables available for inlining.
	Variables map[string]string `yaml:"variables" json:"variables"`

	// Static lists variables that must survive dead-code elimination even
	// when nothing references them.
	Static []string `yaml:"static" json:"static"`
}

// PolyfillConfig holds per-polyfill toggles. Pointers distinguish "unset"
// (enabled) from an explicit false.
type PolyfillConfig struct {
	ColorMix   *bool `yaml:"colorMix" json:"colorMix"`
	AtProperty *bool `yaml:"atProperty" json:"atProperty"`
}

// Flags converts the toggles to the optimizer's bitset.
func (p PolyfillConfig) Flags() optimize.Polyfills {
	flags := optimize.PolyfillNone
	if p.ColorMix == nil || *p.ColorMix {
		flags |= optimize.PolyfillColorMix
	}
	if p.AtProperty == nil || *p.AtProperty {
		flags |= optimize.PolyfillAtProperty
	}
	return flags
}

// Default returns the configuration used when no config file exists.
func Default() *Config {
	return &Config{}
}

// Theme builds the theme resolver described by the config.
func (c *Config) Theme() *theme.Theme {
	t := theme.New(c.Prefix)
	for name, value := range c.Variables {
		t.Add(name, value, theme.OptionsNone)
	}
	for _, name := range c.Static {
		t.MarkStatic(name)
	}
	return t
}

// ExpandFiles expands glob patterns in Files relative to rootDir. Plain
// paths pass through unchanged.
func (c *Config) ExpandFiles(rootDir string) ([]string, error) {
	var result []string
	for _, pattern := range c.Files {
		if !filepath.IsAbs(pattern) {
			pattern = filepath.Join(rootDir, pattern)
		}
		if !strings.ContainsAny(pattern, "*?[{") {
			result = append(result, pattern)
			continue
		}
		matches, err := doublestar.FilepathGlob(pattern)
		if err != nil {
			return nil, err
		}
		result = append(result, matches...)
	}
	return result, nil
}
