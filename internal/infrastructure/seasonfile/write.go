package seasonfile

import (
	"io"
	"os"
	"path/filepath"

	crerr "github.com/cockroachdb/errors"
)

// WriteAtomic creates parent directories, streams into a sibling temp file
// and renames it over path. A failed write leaves any previous file intact.
func WriteAtomic(path string, write func(io.Writer) error) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return crerr.Wrapf(err, "create directory %s", dir)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".*.tmp")
	if err != nil {
		return crerr.Wrapf(err, "create temp file in %s", dir)
	}
	tmpPath := tmp.Name()
	defer func() {
		_ = os.Remove(tmpPath)
	}()

	if err := write(tmp); err != nil {
		_ = tmp.Close()
		return crerr.Wrapf(err, "encode %s", path)
	}
	if err := tmp.Close(); err != nil {
		return crerr.Wrapf(err, "close %s", tmpPath)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return crerr.Wrapf(err, "rename %s to %s", tmpPath, path)
	}
	return nil
}
