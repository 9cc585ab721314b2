package paths

import (
	"path/filepath"
	"testing"
)

func TestUserHomeOverride(t *testing.T) {
	override := t.TempDir()
	t.Setenv(EnvUserHome, override)

	home, err := UserHome()
	if err != nil {
		t.Fatalf("UserHome: %v", err)
	}
	if home != override {
		t.Fatalf("expected home %s, got %s", override, home)
	}
}

func TestUserHomeBlankOverrideFallsBack(t *testing.T) {
	t.Setenv(EnvUserHome, "   ")
	t.Setenv("HOME", t.TempDir())

	home, err := UserHome()
	if err != nil {
		t.Fatalf("UserHome: %v", err)
	}
	if filepath.Base(home) != ".jreleaser" {
		t.Fatalf("expected ~/.jreleaser fallback, got %s", home)
	}
}

func TestToolCacheDir(t *testing.T) {
	override := t.TempDir()
	t.Setenv(EnvUserHome, override)

	dir, err := ToolCacheDir("cosign", "1.4.1")
	if err != nil {
		t.Fatalf("ToolCacheDir: %v", err)
	}
	expected := filepath.Join(override, "caches", "cosign", "1.4.1")
	if dir != expected {
		t.Fatalf("expected %s, got %s", expected, dir)
	}
}

func TestToolCacheDirDeterministic(t *testing.T) {
	t.Setenv(EnvUserHome, t.TempDir())

	first, err := ToolCacheDir("syft", "0.62.1")
	if err != nil {
		t.Fatalf("ToolCacheDir: %v", err)
	}
	second, err := ToolCacheDir("syft", "0.62.1")
	if err != nil {
		t.Fatalf("ToolCacheDir: %v", err)
	}
	if first != second {
		t.Fatalf("expected identical cache dirs, got %s and %s", first, second)
	}
}

func TestFileExists(t *testing.T) {
	dir := t.TempDir()

	exists, err := FileExists(filepath.Join(dir, "missing"))
	if err != nil {
		t.Fatalf("FileExists: %v", err)
	}
	if exists {
		t.Fatal("expected missing file to report false")
	}

	exists, err = DirExists(dir)
	if err != nil {
		t.Fatalf("DirExists: %v", err)
	}
	if !exists {
		t.Fatal("expected directory to report true")
	}
}
