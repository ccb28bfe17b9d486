// Package models defines the option, result and configuration types shared
// across the unquote pipeline.
package models

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// BatchConfig holds runtime configuration for batch processing. Values come
// from an optional unquote.yaml next to the working directory; CLI flags
// override them.
type BatchConfig struct {
	InputDir           string `yaml:"input_dir"`
	OutputDir          string `yaml:"output_dir"`
	WorkerCount        int    `yaml:"workers"`
	IgnoreFirstForward bool   `yaml:"ignore_first_forward"`
	StatsDB            string `yaml:"stats_db"`
	CacheDir           string `yaml:"cache_dir"`
	CacheTTL           string `yaml:"cache_ttl"`
	DeriveText         bool   `yaml:"derive_text"`
}

// LoadConfig reads a yaml config file. A missing file is not an error: the
// zero config is returned so flag defaults apply.
func LoadConfig(path string) (*BatchConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &BatchConfig{}, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	config := &BatchConfig{}
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return config, nil
}
