/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package config

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"
)

// ConfigFileName is the base name of the config file without extension.
const ConfigFileName = "tsimtsum"

// ConfigDir is the directory where config files are stored.
const ConfigDir = ".config"

// configExtensions are the supported config file extensions in priority order.
var configExtensions = []string{".yaml", ".yml", ".json"}

// Load searches for .config/tsimtsum.{yaml,yml,json} under rootDir.
// JSON configs may contain comments and trailing commas.
// Returns nil if no config is found (not an error).
func Load(rootDir string) (*Config, error) {
	for _, ext := range configExtensions {
		configPath := filepath.Join(rootDir, ConfigDir, ConfigFileName+ext)
		data, err := os.ReadFile(configPath)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, err
		}

		cfg := &Config{}
		switch ext {
		case ".yaml", ".yml":
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, err
			}
		case ".json":
			if err := json.Unmarshal(jsonc.ToJSON(data), cfg); err != nil {
				return nil, err
			}
		}
		return cfg, nil
	}
	return nil, nil
}

// LoadOrDefault returns the config or defaults when none is found.
func LoadOrDefault(rootDir string) *Config {
	cfg, err := Load(rootDir)
	if err != nil || cfg == nil {
		return Default()
	}
	return cfg
}
