package storage

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestSaveOpenRoundTrip(t *testing.T) {
	fs, err := NewFS(t.TempDir())
	if err != nil {
		t.Fatalf("new fs: %v", err)
	}
	key := "images/2026/08/photo.png"
	if err := fs.Save(key, strings.NewReader("payload")); err != nil {
		t.Fatalf("save: %v", err)
	}
	if !fs.Exists(key) {
		t.Fatalf("saved key does not exist")
	}
	size, err := fs.Size(key)
	if err != nil || size != int64(len("payload")) {
		t.Fatalf("size = %d, %v", size, err)
	}
	r, err := fs.Open(key)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	data, _ := io.ReadAll(r)
	_ = r.Close()
	if string(data) != "payload" {
		t.Fatalf("content = %q", data)
	}
}

func TestRemovePrunesEmptyDirs(t *testing.T) {
	root := t.TempDir()
	fs, err := NewFS(root)
	if err != nil {
		t.Fatalf("new fs: %v", err)
	}
	if err := fs.Save("images/2026/08/31/a.png", strings.NewReader("a")); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := fs.Save("images/2026/07/b.png", strings.NewReader("b")); err != nil {
		t.Fatalf("save: %v", err)
	}

	if err := fs.Remove("images/2026/08/31/a.png"); err != nil {
		t.Fatalf("remove: %v", err)
	}

	// 08/31 and 08 are now empty and must be gone.
	if _, err := os.Stat(filepath.Join(root, "images/2026/08")); !os.IsNotExist(err) {
		t.Fatalf("empty month dir survived: %v", err)
	}
	// 2026 still holds 07, so it must survive.
	if _, err := os.Stat(filepath.Join(root, "images/2026/07")); err != nil {
		t.Fatalf("sibling dir removed: %v", err)
	}
	// The root is never removed, even when completely emptied.
	if err := fs.Remove("images/2026/07/b.png"); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if _, err := os.Stat(root); err != nil {
		t.Fatalf("storage root removed: %v", err)
	}
}

func TestRemoveMissingIsNoError(t *testing.T) {
	fs, err := NewFS(t.TempDir())
	if err != nil {
		t.Fatalf("new fs: %v", err)
	}
	if err := fs.Remove("nope/missing.bin"); err != nil {
		t.Fatalf("missing remove errored: %v", err)
	}
}

func TestKeyEscapeRejected(t *testing.T) {
	root := t.TempDir()
	fs, err := NewFS(root)
	if err != nil {
		t.Fatalf("new fs: %v", err)
	}
	for _, key := range []string{
		"../escape.txt",
		"..",
		"a/../../escape.txt",
		"/etc/escape.txt",
		"",
		".",
	} {
		if err := fs.Save(key, strings.NewReader("x")); !errors.Is(err, ErrOutsideRoot) {
			t.Fatalf("Save(%q) = %v, want ErrOutsideRoot", key, err)
		}
		if _, err := fs.Open(key); !errors.Is(err, ErrOutsideRoot) {
			t.Fatalf("Open(%q) = %v, want ErrOutsideRoot", key, err)
		}
		if err := fs.Remove(key); !errors.Is(err, ErrOutsideRoot) {
			t.Fatalf("Remove(%q) = %v, want ErrOutsideRoot", key, err)
		}
	}
	if _, err := os.Stat(filepath.Join(root, "escape.txt")); !os.IsNotExist(err) {
		t.Fatalf("escaping key wrote under root")
	}
	if _, err := os.Stat(filepath.Join(filepath.Dir(root), "escape.txt")); !os.IsNotExist(err) {
		t.Fatalf("escaping key wrote outside root")
	}
}

func TestKeyWithInternalDotDotStaysUnderRoot(t *testing.T) {
	fs, err := NewFS(t.TempDir())
	if err != nil {
		t.Fatalf("new fs: %v", err)
	}
	if err := fs.Save("a/../b.txt", strings.NewReader("x")); err != nil {
		t.Fatalf("save: %v", err)
	}
	if !fs.Exists("b.txt") {
		t.Fatalf("cleaned key not stored")
	}
}
