package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingFileReturnsDefault(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "config.yml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Platform != "" {
		t.Fatalf("expected empty platform, got %q", cfg.Platform)
	}
	if cfg.Version("cosign") != "" {
		t.Fatal("expected no pinned versions")
	}
}

func TestLoadParsesOverrides(t *testing.T) {
	dir := t.TempDir()
	contents := `platform: osx
descriptor_dir: /opt/jreleaser/descriptors
tools:
  cosign:
    version: 1.4.1
  helm:
    version: 3.10.1
`
	path := filepath.Join(dir, "config.yml")
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Platform != "osx" {
		t.Fatalf("expected platform osx, got %q", cfg.Platform)
	}
	if cfg.DescriptorDir != "/opt/jreleaser/descriptors" {
		t.Fatalf("unexpected descriptor dir %q", cfg.DescriptorDir)
	}
	if cfg.Version("cosign") != "1.4.1" {
		t.Fatalf("expected pinned cosign version, got %q", cfg.Version("cosign"))
	}
	if cfg.Version("syft") != "" {
		t.Fatal("expected no pin for syft")
	}
}

func TestLoadInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	if err := os.WriteFile(path, []byte("tools: [broken"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected parse error")
	}
}
