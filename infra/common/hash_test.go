package common

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, path, body string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
}

func TestSourceHashTracksSourceOnly(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "cmd", "api", "cmd.go"), "package main")

	first, err := SourceHash(root)
	if err != nil {
		t.Fatalf("SourceHash returned error: %v", err)
	}

	writeFile(t, filepath.Join(root, "infra", "main.go"), "package main")
	same, err := SourceHash(root)
	if err != nil {
		t.Fatalf("SourceHash returned error: %v", err)
	}
	if same != first {
		t.Fatalf("infra changes should not change the hash")
	}

	writeFile(t, filepath.Join(root, "cmd", "api", "cmd.go"), "package main // changed")
	changed, err := SourceHash(root)
	if err != nil {
		t.Fatalf("SourceHash returned error: %v", err)
	}
	if changed == first {
		t.Fatalf("source changes should change the hash")
	}
}
