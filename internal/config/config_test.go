package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingFileReturnsDefault(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "does-not-exist.yaml"))
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.OutputFormat != "text" || !cfg.Color {
		t.Errorf("cfg = %+v, want defaults", cfg)
	}
}

func TestLoadParsesYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bahasapasc.yaml")
	content := "outputFormat: json\ncolor: false\nfatalSeverities:\n  - semantic\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.OutputFormat != "json" || cfg.Color {
		t.Errorf("cfg = %+v", cfg)
	}
	if !cfg.IsFatal("semantic") || !cfg.IsFatal("syntax") || cfg.IsFatal("warning") {
		t.Errorf("IsFatal mismatch: %+v", cfg)
	}
}
