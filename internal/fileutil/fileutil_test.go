package fileutil_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"setupvault/internal/fileutil"
)

func TestWriteFileAtomicCreatesAndReplaces(t *testing.T) {
	path := filepath.Join(t.TempDir(), "record.md")

	if err := fileutil.WriteFileAtomic(path, []byte("first"), 0o644); err != nil {
		t.Fatalf("WriteFileAtomic failed: %v", err)
	}
	if err := fileutil.WriteFileAtomic(path, []byte("second"), 0o644); err != nil {
		t.Fatalf("WriteFileAtomic replace failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if string(data) != "second" {
		t.Fatalf("contents = %q, want %q", data, "second")
	}
}

func TestWriteFileAtomicLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	if err := fileutil.WriteFileAtomic(filepath.Join(dir, "out.md"), []byte("x"), 0o644); err != nil {
		t.Fatalf("WriteFileAtomic failed: %v", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir failed: %v", err)
	}
	for _, entry := range entries {
		if entry.Name() != "out.md" {
			t.Fatalf("stray file left behind: %s", entry.Name())
		}
	}
}

func TestCopyFileVerified(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src.md")
	dst := filepath.Join(dir, "dst.md")
	contents := strings.Repeat("setupvault\n", 1000)
	if err := os.WriteFile(src, []byte(contents), 0o644); err != nil {
		t.Fatalf("write src: %v", err)
	}

	if err := fileutil.CopyFileVerified(src, dst); err != nil {
		t.Fatalf("CopyFileVerified failed: %v", err)
	}
	data, err := os.ReadFile(dst)
	if err != nil {
		t.Fatalf("read dst: %v", err)
	}
	if string(data) != contents {
		t.Fatal("copied contents differ")
	}
}
