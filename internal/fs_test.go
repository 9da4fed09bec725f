package internal

import (
	"archive/zip"
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"
)

func TestIsArchive(t *testing.T) {
	for _, p := range []string{"a.zip", "b.TAR", "/x/y/c.tar.gz", "d.7z"} {
		if !IsArchive(p) {
			t.Errorf("IsArchive(%q) = false", p)
		}
	}
	for _, p := range []string{"a.txt", "b", "c.csv"} {
		if IsArchive(p) {
			t.Errorf("IsArchive(%q) = true", p)
		}
	}
}

func TestTargetString(t *testing.T) {
	if got := (target{path: "/a.txt"}).String(); got != "/a.txt" {
		t.Errorf("plain target: %q", got)
	}
	got := (target{path: "/a.zip", innerPath: "in/b.txt", isArchive: true}).String()
	if got != "/a.zip!in/b.txt" {
		t.Errorf("archive target: %q", got)
	}
}

func TestWalkArchiveAndOpenEntry(t *testing.T) {
	dir := t.TempDir()
	zipPath := filepath.Join(dir, "x.zip")

	zf, err := os.Create(zipPath)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	zw := zip.NewWriter(zf)
	w, _ := zw.Create("inner.txt")
	_, _ = w.Write([]byte("payload"))
	if err := zw.Close(); err != nil {
		t.Fatalf("close zip: %v", err)
	}
	zf.Close()

	var targets []target
	walkArchive(context.Background(), zipPath, func(t target) { targets = append(targets, t) })
	if len(targets) != 1 || targets[0].innerPath != "inner.txt" || !targets[0].isArchive {
		t.Fatalf("unexpected targets: %+v", targets)
	}

	f, closeFS, err := openArchiveEntry(context.Background(), zipPath, "inner.txt")
	if err != nil {
		t.Fatalf("open entry: %v", err)
	}
	b, err := io.ReadAll(f)
	f.Close()
	_ = closeFS()
	if err != nil || string(b) != "payload" {
		t.Fatalf("entry content: %q, err=%v", b, err)
	}
}
