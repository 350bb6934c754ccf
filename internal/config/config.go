package config

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/danmuck/bitsctl/internal/dump"
	"github.com/danmuck/bitsctl/internal/logging"
	"github.com/pelletier/go-toml/v2"
)

const (
	OverflowBig    = "big"
	OverflowUint64 = "uint64"
)

// DecoderConfig is the bitsctl file configuration.
type DecoderConfig struct {
	Input       string `toml:"input"`
	MaxDepth    int    `toml:"max_depth"`
	Format      string `toml:"format"`
	Overflow    string `toml:"overflow"`
	MetricsFile string `toml:"metrics_file"`
	LogLevel    string `toml:"log_level"`
}

func DefaultDecoderConfig() DecoderConfig {
	return DecoderConfig{
		Format:   string(dump.FormatText),
		Overflow: OverflowBig,
		LogLevel: "info",
	}
}

func LoadDecoderConfig(path string) (DecoderConfig, error) {
	cfg := DefaultDecoderConfig()
	if err := loadToml(path, &cfg); err != nil {
		return DecoderConfig{}, err
	}
	if err := ValidateDecoderConfig(cfg); err != nil {
		return DecoderConfig{}, err
	}
	return cfg, nil
}

func loadToml(path string, out any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("config load failed (%s): %w", path, err)
	}
	dec := toml.NewDecoder(bytes.NewReader(data)).DisallowUnknownFields()
	if err := dec.Decode(out); err != nil {
		return fmt.Errorf("config parse failed (%s): %w", path, err)
	}
	return nil
}

func ValidateDecoderConfig(cfg DecoderConfig) error {
	if cfg.MaxDepth < 0 {
		return fmt.Errorf("decoder config max_depth must be >= 0, got %d", cfg.MaxDepth)
	}
	if _, err := dump.ParseFormat(cfg.Format); err != nil {
		return fmt.Errorf("decoder config format invalid: %w", err)
	}
	switch strings.ToLower(strings.TrimSpace(cfg.Overflow)) {
	case OverflowBig, OverflowUint64:
	default:
		return fmt.Errorf("decoder config overflow must be %q or %q, got %q", OverflowBig, OverflowUint64, cfg.Overflow)
	}
	if strings.TrimSpace(cfg.LogLevel) != "" && !logging.ValidLevel(cfg.LogLevel) {
		return fmt.Errorf("decoder config log_level unknown: %q", cfg.LogLevel)
	}
	return nil
}
