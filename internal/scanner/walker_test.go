package scanner

import (
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"testing"

	"github.com/lumipallolabs/anticipate/internal/model"
)

func TestWalkerList(t *testing.T) {
	// Create temp directory structure
	tmp := t.TempDir()

	os.MkdirAll(filepath.Join(tmp, "subdir", "nested"), 0755)
	os.WriteFile(filepath.Join(tmp, "file1.txt"), []byte("hello"), 0644)
	os.WriteFile(filepath.Join(tmp, "subdir", "file2.txt"), []byte("world!"), 0644)

	w := NewWalker(4)
	names, err := w.List(tmp)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	sort.Strings(names)

	// Only direct entries, nothing from subdir
	if len(names) != 2 || names[0] != "file1.txt" || names[1] != "subdir" {
		t.Errorf("expected [file1.txt subdir], got %v", names)
	}
}

func TestWalkerListEmptyDir(t *testing.T) {
	names, err := NewWalker(0).List(t.TempDir())
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(names) != 0 {
		t.Errorf("expected no entries, got %v", names)
	}
}

func TestWalkerListMissingDir(t *testing.T) {
	_, err := NewWalker(1).List(filepath.Join(t.TempDir(), "missing"))
	if err == nil {
		t.Error("expected error listing a missing directory")
	}
}

func TestWalkerStat(t *testing.T) {
	tmp := t.TempDir()
	file := filepath.Join(tmp, "file.txt")
	os.WriteFile(file, []byte("hello"), 0644)

	w := NewWalker(1)

	target, err := w.Stat(file)
	if err != nil {
		t.Fatalf("stat failed: %v", err)
	}
	if target.Kind != model.KindFile {
		t.Errorf("expected file, got %s", target.Kind)
	}
	if target.Size != 5 {
		t.Errorf("expected size 5, got %d", target.Size)
	}
	if target.ModTime.IsZero() {
		t.Error("expected non-zero mtime")
	}

	target, err = w.Stat(tmp)
	if err != nil {
		t.Fatalf("stat failed: %v", err)
	}
	if target.Kind != model.KindDir {
		t.Errorf("expected directory, got %s", target.Kind)
	}

	// Missing paths are absent, not errors
	target, err = w.Stat(filepath.Join(tmp, "missing", "deeper"))
	if err != nil {
		t.Fatalf("expected no error for missing path, got %v", err)
	}
	if target.Exists() {
		t.Error("expected missing path to be absent")
	}

	// A file used as a directory component is also just absent
	target, err = w.Stat(filepath.Join(file, "child"))
	if err != nil {
		t.Fatalf("expected no error below a file, got %v", err)
	}
	if target.Exists() {
		t.Error("expected path below a file to be absent")
	}
}

func TestWalkerStatSymlink(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("symlinks need privileges on Windows")
	}

	tmp := t.TempDir()
	dir := filepath.Join(tmp, "dir")
	link := filepath.Join(tmp, "link")
	os.Mkdir(dir, 0755)
	if err := os.Symlink(dir, link); err != nil {
		t.Fatalf("symlink failed: %v", err)
	}

	w := NewWalker(1)
	target, err := w.Stat(link)
	if err != nil {
		t.Fatalf("stat failed: %v", err)
	}
	if !target.IsDir() || !target.IsSymlink {
		t.Errorf("expected symlinked directory, got %+v", target)
	}
	if target.Descendable() {
		t.Error("symlinked directory should not be descendable")
	}

	// Listing through the link sees the target's entries
	os.WriteFile(filepath.Join(dir, "inside.txt"), nil, 0644)
	names, err := w.List(link)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(names) != 1 || names[0] != "inside.txt" {
		t.Errorf("expected [inside.txt], got %v", names)
	}
}
