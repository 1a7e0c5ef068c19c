package fileutil

import (
	"os"
	"path/filepath"
	"testing"
)

func TestWriteFileAtomicReplacesContent(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "save.json")
	if err := os.WriteFile(path, []byte("old"), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := WriteFileAtomic(path, []byte("new"), 0o600); err != nil {
		t.Fatal(err)
	}
	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "new" {
		t.Fatalf("content mismatch: got %q", got)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Fatalf("temp files left behind: %v", entries)
	}
}

func TestWriteFileAtomicMissingDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "save.json")
	if err := WriteFileAtomic(path, []byte("x"), 0o644); err == nil {
		t.Fatal("expected error for missing directory")
	}
}

func TestBackup(t *testing.T) {
	path := filepath.Join(t.TempDir(), "save.json")
	content := []byte("\ufeff{\"stateJson\":{}}")
	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatal(err)
	}
	dst, err := Backup(path)
	if err != nil {
		t.Fatal(err)
	}
	if dst != path+".bak" {
		t.Fatalf("unexpected backup path %q", dst)
	}
	got, err := os.ReadFile(dst)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != string(content) {
		t.Fatalf("content mismatch: got %q, want %q", got, content)
	}
}

func TestBackupMissingSource(t *testing.T) {
	if _, err := Backup(filepath.Join(t.TempDir(), "nope.json")); err == nil {
		t.Fatal("expected error for missing source")
	}
}
