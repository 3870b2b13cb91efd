package fileutil

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestWriteFileAtomic(t *testing.T) {
	dir := t.TempDir()
	dst := filepath.Join(dir, "export.json")

	if err := os.WriteFile(dst, []byte("old"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := WriteFileAtomic(dst, []byte(`{"name":"Horror"}`), 0o600); err != nil {
		t.Fatal(err)
	}

	got, err := os.ReadFile(dst)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != `{"name":"Horror"}` {
		t.Fatalf("content mismatch: got %q", got)
	}
	info, err := os.Stat(dst)
	if err != nil {
		t.Fatal(err)
	}
	if info.Mode().Perm() != 0o600 {
		t.Fatalf("expected mode 0600, got %o", info.Mode().Perm())
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected temp file cleanup, found %d entries", len(entries))
	}
}

func TestWriteFileAtomicMissingDir(t *testing.T) {
	if err := WriteFileAtomic(filepath.Join(t.TempDir(), "nope", "x.json"), []byte("x"), 0o644); err == nil {
		t.Fatal("expected error for missing directory")
	}
}

func TestReadLimited(t *testing.T) {
	src := filepath.Join(t.TempDir(), "in.json")
	if err := os.WriteFile(src, []byte("0123456789"), 0o644); err != nil {
		t.Fatal(err)
	}
	got, err := ReadLimited(src, 10)
	if err != nil || string(got) != "0123456789" {
		t.Fatalf("ReadLimited = %q, %v", got, err)
	}
	if _, err := ReadLimited(src, 9); !errors.Is(err, ErrTooLarge) {
		t.Fatalf("expected ErrTooLarge, got %v", err)
	}
	if _, err := ReadAllLimited(strings.NewReader("abc"), 3); err != nil {
		t.Fatalf("ReadAllLimited: %v", err)
	}
}

func TestExportFileName(t *testing.T) {
	if got := ExportFileName("Horror Movies!"); got != "horror_movies_bboard_export.json" {
		t.Fatalf("unexpected name %q", got)
	}
	if got := ExportFileName("  "); got != "unknown_bboard_export.json" {
		t.Fatalf("unexpected blank name %q", got)
	}
}
