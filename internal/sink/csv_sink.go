// Package sink serializes the finished report row. The write is
// all-or-nothing: bytes are assembled in memory, written to a temp file
// in the target directory, and renamed into place only on success, so
// a failed run never leaves a partial report behind.
package sink

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"

	"github.com/zeebo/xxh3"
)

// Result describes a completed write.
type Result struct {
	// Path is the final location of the report file.
	Path string
	// Checksum is the xxh3 hash of the file content. Identical inputs
	// produce identical checksums across runs.
	Checksum uint64
	// Bytes is the file size.
	Bytes int
}

// WriteCSV writes a single-row delimited report (header + one data
// row) to dir/filename. The directory is created when missing.
func WriteCSV(dir, filename string, header, row []string) (*Result, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(header); err != nil {
		return nil, fmt.Errorf("write header: %w", err)
	}
	if err := w.Write(row); err != nil {
		return nil, fmt.Errorf("write row: %w", err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("flush csv: %w", err)
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("mkdir %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, filename+".tmp-*")
	if err != nil {
		return nil, fmt.Errorf("create temp: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(buf.Bytes()); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return nil, fmt.Errorf("write %s: %w", tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return nil, fmt.Errorf("close %s: %w", tmpName, err)
	}

	final := filepath.Join(dir, filename)
	if err := os.Rename(tmpName, final); err != nil {
		os.Remove(tmpName)
		return nil, fmt.Errorf("rename to %s: %w", final, err)
	}

	return &Result{
		Path:     final,
		Checksum: xxh3.Hash(buf.Bytes()),
		Bytes:    buf.Len(),
	}, nil
}
