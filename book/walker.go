package book

import (
	"context"
	"fmt"
	"io/fs"
	"path"
	"slices"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// WalkOption modifies Walk behavior.
type WalkOption func(*walker)

// WithExtensions limits fragments to files with listed extensions (".md").
// Other files are skipped. Empty list means every file is a fragment.
func WithExtensions(exts []string) WalkOption {
	return func(w *walker) {
		w.exts = make([]string, 0, len(exts))
		for _, e := range exts {
			w.exts = append(w.exts, strings.ToLower(e))
		}
	}
}

func WithLogger(log *zap.Logger) WalkOption {
	return func(w *walker) {
		if log != nil {
			w.log = log
		}
	}
}

type walker struct {
	fsys fs.FS
	root string
	exts []string
	log  *zap.Logger
}

// Walk traverses root in fsys depth first and returns unordered fragments for
// every file found. Any unreadable file aborts the walk, no partial result is
// ever returned.
func Walk(ctx context.Context, fsys fs.FS, root string, opts ...WalkOption) ([]Fragment, error) {
	w := &walker{fsys: fsys, root: path.Clean(root), log: zap.NewNop()}
	for _, opt := range opts {
		opt(w)
	}

	// every call gets its own accumulator
	fragments := make([]Fragment, 0, 64)
	if err := w.walkDir(ctx, w.root, 0, "", &fragments); err != nil {
		return nil, err
	}
	return fragments, nil
}

func (w *walker) walkDir(ctx context.Context, dir string, depth int, parentPrefix string, acc *[]Fragment) error {
	entries, err := fs.ReadDir(w.fsys, dir)
	if err != nil {
		return fmt.Errorf("unable to read directory %q: %w", dir, err)
	}

	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return err
		}

		p := path.Join(dir, entry.Name())

		isDir := entry.IsDir()
		if entry.Type()&fs.ModeSymlink != 0 {
			fi, err := fs.Stat(w.fsys, p)
			if err != nil {
				return fmt.Errorf("unable to resolve link %q: %w", p, err)
			}
			isDir = fi.IsDir()
		}

		name, err := ParseName(stem(entry.Name(), isDir))
		if err != nil {
			return fmt.Errorf("bad entry name %q: %w", p, err)
		}
		prefix := parentPrefix + name.Token + "."

		if isDir {
			w.log.Debug("Processing directory", zap.String("path", p), zap.String("prefix", prefix))
			if err := w.walkDir(ctx, p, depth+1, prefix, acc); err != nil {
				return err
			}
			continue
		}

		if !w.accepts(entry.Name()) {
			w.log.Debug("Skipping file", zap.String("path", p))
			continue
		}

		w.log.Debug("Processing", zap.String("path", p), zap.String("prefix", prefix))
		content, err := readText(w.fsys, p)
		if err != nil {
			return err
		}
		*acc = append(*acc, Fragment{
			Content: content,
			Depth:   depth,
			Prefix:  prefix,
			Title:   name.Title,
			Path:    w.relative(p),
		})
	}
	return nil
}

func (w *walker) accepts(name string) bool {
	if len(w.exts) == 0 {
		return true
	}
	return slices.Contains(w.exts, strings.ToLower(path.Ext(name)))
}

func (w *walker) relative(p string) string {
	if w.root == "." {
		return p
	}
	return strings.TrimPrefix(strings.TrimPrefix(p, w.root), "/")
}

// readText returns file content as UTF-8 text. UTF-8 and UTF-16 byte order
// marks are honored and removed, anything else must be valid UTF-8.
func readText(fsys fs.FS, p string) (string, error) {
	data, err := fs.ReadFile(fsys, p)
	if err != nil {
		return "", fmt.Errorf("unable to read %q: %w", p, err)
	}
	text, _, err := transform.Bytes(unicode.BOMOverride(encoding.UTF8Validator), data)
	if err != nil {
		return "", fmt.Errorf("unable to decode %q as text: %w", p, err)
	}
	return string(text), nil
}
