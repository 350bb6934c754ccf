package main

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/danmuck/bitsctl/internal/config"
)

type fileConfig struct {
	Input       string `toml:"input"`
	MaxDepth    int    `toml:"max_depth"`
	Format      string `toml:"format"`
	Overflow    string `toml:"overflow"`
	MetricsFile string `toml:"metrics_file"`
	LogLevel    string `toml:"log_level"`
}

// loadRunConfig applies the keys defined in the file at path on top of cfg.
func loadRunConfig(path string, cfg config.DecoderConfig) (config.DecoderConfig, error) {
	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return config.DecoderConfig{}, fmt.Errorf("load bitsctl config: %w", err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return config.DecoderConfig{}, fmt.Errorf("load bitsctl config: unknown key %q", undecoded[0].String())
	}

	if meta.IsDefined("input") {
		cfg.Input = strings.TrimSpace(raw.Input)
	}
	if meta.IsDefined("max_depth") {
		cfg.MaxDepth = raw.MaxDepth
	}
	if meta.IsDefined("format") {
		cfg.Format = strings.TrimSpace(raw.Format)
	}
	if meta.IsDefined("overflow") {
		cfg.Overflow = strings.ToLower(strings.TrimSpace(raw.Overflow))
	}
	if meta.IsDefined("metrics_file") {
		cfg.MetricsFile = strings.TrimSpace(raw.MetricsFile)
	}
	if meta.IsDefined("log_level") {
		cfg.LogLevel = strings.TrimSpace(raw.LogLevel)
	}
	return cfg, nil
}
