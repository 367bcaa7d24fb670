// Package file implements a local filesystem-backed data source.
package file

import (
	"context"
	"fmt"
	"io"
	"os"
)

// Local opens files from the local disk.
type Local struct{ path string }

// NewLocal returns a Local source bound to the given path.
func NewLocal(path string) *Local { return &Local{path: path} }

// Open opens the configured path for reading. A canceled context is
// honored before the filesystem is touched. Filesystem errors are
// wrapped with the path while remaining inspectable via errors.Is
// (e.g. errors.Is(err, os.ErrNotExist)). A path that resolves to a
// directory is an error; report sources are always single files.
func (l *Local) Open(ctx context.Context) (io.ReadCloser, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}
	f, err := os.Open(l.path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", l.path, err)
	}
	fi, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("stat %s: %w", l.path, err)
	}
	if fi.IsDir() {
		f.Close()
		return nil, fmt.Errorf("open %s: is a directory, not a source file", l.path)
	}
	return f, nil
}
