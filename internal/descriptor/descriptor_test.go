package descriptor

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadBuiltin(t *testing.T) {
	d, err := Load("cosign")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if d.Name() != "cosign" {
		t.Fatalf("expected name cosign, got %s", d.Name())
	}
	if d.DownloadURL() == "" {
		t.Fatal("expected download.url to be set")
	}
	if d.Unpack() {
		t.Fatal("cosign descriptor should not request unpack")
	}
	if !d.HasExecutable("linux") {
		t.Fatal("expected linux executable entry")
	}
	if d.Executable("linux") != "cosign" {
		t.Fatalf("expected cosign executable, got %q", d.Executable("linux"))
	}
	if d.HasExecutable("plan9") {
		t.Fatal("did not expect plan9 executable entry")
	}
}

func TestLoadMissing(t *testing.T) {
	if _, err := Load("no-such-tool"); err == nil {
		t.Fatal("expected error for unknown descriptor")
	}
}

func TestLoadOverlayShadowsBuiltin(t *testing.T) {
	dir := t.TempDir()
	contents := "download.url=https://mirror.example/\nlinux.executable=cosign\nlinux.filename=cosign-linux\n"
	if err := os.WriteFile(filepath.Join(dir, "cosign.properties"), []byte(contents), 0o644); err != nil {
		t.Fatalf("write overlay: %v", err)
	}

	d, err := Load("cosign", dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if d.DownloadURL() != "https://mirror.example/" {
		t.Fatalf("expected overlay url, got %q", d.DownloadURL())
	}
	if d.Has("command.version") {
		t.Fatal("overlay should fully replace the builtin descriptor")
	}
}

func TestPlaceholdersSurviveParsing(t *testing.T) {
	d, err := Load("helm")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got := d.Filename("linux"); got != "helm-v{{version}}-linux-amd64.tar.gz" {
		t.Fatalf("expected raw template, got %q", got)
	}
}

func TestBuiltinListsDescriptors(t *testing.T) {
	names := Builtin()
	if len(names) == 0 {
		t.Fatal("expected embedded descriptors")
	}
	found := map[string]bool{}
	for _, name := range names {
		found[name] = true
	}
	for _, want := range []string{"cosign", "helm", "pomchecker", "syft"} {
		if !found[want] {
			t.Fatalf("expected %s in builtin list %v", want, names)
		}
	}
}
