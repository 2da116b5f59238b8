package export

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/benjaminpeng/sql-audit/pkg/defaults"
)

// Downloader delivers a finished document. It returns where the document
// ended up.
type Downloader interface {
	Download(ctx context.Context, name string, body []byte) (string, error)
}

// DirDownloader saves documents into a directory. Names are reduced to their
// base name and written through a temp file plus rename, so a reader never
// sees a partial file.
type DirDownloader struct {
	// Dir is created if missing. Empty means defaults.ExportDir.
	Dir string
}

// Download implements Downloader.
func (d DirDownloader) Download(ctx context.Context, name string, body []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	base, ok := sanitize(name)
	if !ok {
		return "", fmt.Errorf("invalid file name %q", name)
	}

	dir := d.Dir
	if dir == "" {
		dir = defaults.ExportDir
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create export dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+base+".*.tmp")
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) // no-op after a successful rename

	if _, err := tmp.Write(body); err != nil {
		tmp.Close()
		return "", fmt.Errorf("write %s: %w", base, err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("close %s: %w", base, err)
	}

	dest := filepath.Join(dir, base)
	if err := os.Rename(tmpName, dest); err != nil {
		return "", fmt.Errorf("rename %s: %w", base, err)
	}
	return dest, nil
}
