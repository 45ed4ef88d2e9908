// Package archive gives access to book sources packed into zip archive.
package archive

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
	"path"
	"strings"

	"github.com/h2non/filetype"
)

// Open opens zip archive as read-only file system. Every entry is checked
// upfront: archive with absolute paths or path traversal components is
// refused as a whole. Caller must Close returned reader.
func Open(archive string) (*zip.ReadCloser, error) {
	r, err := zip.OpenReader(archive)
	if err != nil {
		if r != nil {
			r.Close()
		}
		return nil, err
	}
	for _, f := range r.File {
		if !isSafePath(f.FileHeader.Name) {
			r.Close()
			return nil, fmt.Errorf("zip entry %q: unsafe path (absolute or contains path traversal)", f.FileHeader.Name)
		}
	}
	return r, nil
}

// IsArchive checks file signature to see if file is a zip archive.
func IsArchive(fname string) (bool, error) {
	f, err := os.Open(fname)
	if err != nil {
		return false, err
	}
	defer f.Close()

	// enough for any signature filetype knows about
	head := make([]byte, 262)
	n, err := io.ReadFull(f, head)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return false, err
	}
	return filetype.Is(head[:n], "zip"), nil
}

// isSafePath returns false for paths that could escape the extraction
// directory: absolute paths and those containing ".." components.
func isSafePath(name string) bool {
	if path.IsAbs(name) || strings.HasPrefix(name, "/") || strings.HasPrefix(name, `\`) {
		return false
	}
	for _, part := range strings.Split(name, "/") {
		if part == ".." {
			return false
		}
	}
	return true
}
