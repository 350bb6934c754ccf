package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/danmuck/bitsctl/internal/config"
)

func TestLoadRunConfigExample(t *testing.T) {
	cfg, err := loadRunConfig("ex.config.toml", config.DefaultDecoderConfig())
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.Input != "inputs/day16.txt" {
		t.Fatalf("unexpected input: %q", cfg.Input)
	}
	if cfg.MaxDepth != 0 {
		t.Fatalf("unexpected max depth: %d", cfg.MaxDepth)
	}
	if cfg.Format != "text" || cfg.Overflow != config.OverflowBig || cfg.LogLevel != "info" {
		t.Fatalf("unexpected config: %+v", cfg)
	}
	if err := config.ValidateDecoderConfig(cfg); err != nil {
		t.Fatalf("example does not validate: %v", err)
	}
}

func TestLoadRunConfigOnlyOverridesDefinedKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bitsctl.toml")
	if err := os.WriteFile(path, []byte("max_depth = 12\noverflow = \" UINT64 \"\n"), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	base := config.DefaultDecoderConfig()
	base.Input = "keep.txt"

	cfg, err := loadRunConfig(path, base)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.Input != "keep.txt" {
		t.Fatalf("undefined key overwritten: %q", cfg.Input)
	}
	if cfg.MaxDepth != 12 || cfg.Overflow != config.OverflowUint64 {
		t.Fatalf("defined keys not applied: %+v", cfg)
	}
}

func TestLoadRunConfigRejectsUnknownKey(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bitsctl.toml")
	if err := os.WriteFile(path, []byte("heartbeat = \"5s\"\n"), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := loadRunConfig(path, config.DefaultDecoderConfig()); err == nil {
		t.Fatalf("expected unknown key error")
	}
}
