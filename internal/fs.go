package internal

import (
	"context"
	"errors"
	"fmt"
	"io"
	iofs "io/fs"
	"path/filepath"
	"strings"

	"github.com/mholt/archives"
	"github.com/sirupsen/logrus"
)

const maxArchiveFiles = 10000 // zip-bomb protection

// IsArchive by extension. O(1) map lookup
var archiveExt = map[string]struct{}{
	".zip": {}, ".tar": {}, ".gz": {}, ".bz2": {}, ".xz": {},
	".rar": {}, ".br": {}, ".lz4": {}, ".lz": {}, ".mz": {},
	".sz": {}, ".s2": {}, ".zz": {}, ".zst": {}, ".7z": {},
}

func IsArchive(path string) bool {
	_, ok := archiveExt[strings.ToLower(filepath.Ext(path))]
	return ok
}

// target describes one scannable stream: a plain file, or one entry
// inside an archive.
type target struct {
	path      string
	innerPath string
	isArchive bool
}

func (t target) String() string {
	if t.isArchive {
		return t.path + "!" + t.innerPath
	}
	return t.path
}

// walkArchive feeds every regular entry of the archive as a target.
func walkArchive(ctx context.Context, path string, send func(target)) {
	fsys, err := archives.FileSystem(ctx, path, nil)
	if err != nil {
		logrus.WithError(err).WithField("archive", path).Error("open archive")
		return
	}
	if closer, ok := fsys.(io.Closer); ok {
		defer closer.Close()
	}

	count := 0
	_ = iofs.WalkDir(fsys, ".", func(inner string, d iofs.DirEntry, err error) error {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if err != nil || d.IsDir() {
			return nil
		}
		if count >= maxArchiveFiles {
			logrus.Warnf("Archive %s skipped: too many files (>= %d)", path, maxArchiveFiles)
			return errors.New("archive file limit reached")
		}
		send(target{path: path, innerPath: inner, isArchive: true})
		count++
		return nil
	})
}

// openArchiveEntry returns a reader for one entry inside an archive.
func openArchiveEntry(ctx context.Context, archivePath, innerPath string) (io.ReadCloser, func() error, error) {
	fsys, err := archives.FileSystem(ctx, archivePath, nil)
	if err != nil {
		return nil, nil, fmt.Errorf("open %s: %w", archivePath, err)
	}
	closeFS := func() error { return nil }
	if closer, ok := fsys.(io.Closer); ok {
		closeFS = closer.Close
	}
	f, err := fsys.Open(innerPath)
	if err != nil {
		_ = closeFS()
		return nil, nil, fmt.Errorf("open %s!%s: %w", archivePath, innerPath, err)
	}
	return f, closeFS, nil
}
