// Package book turns a tree of chapter sources into a single merged document.
//
// Every file under the language root becomes a Fragment. Names of files and
// directories follow "<ordering-token>[_<word>]*" convention: ordering tokens
// of all ancestors chained together form the sort key (prefix), the rest of
// the file name becomes chapter title.
package book

import "fmt"

// Fragment is a single chapter source before assembly.
type Fragment struct {
	// Content as read from the source, never modified.
	Content string
	// Depth is number of directories between language root and the file.
	Depth int
	// Prefix is dot terminated chain of ordering tokens, e.g. "02.01.".
	Prefix string
	Title  string
	// Path is slash separated source path relative to the language root.
	Path string
}

func (f Fragment) String() string {
	return fmt.Sprintf("fragment(depth: %d, prefix: %q, title: %q, path: %q, %d bytes)",
		f.Depth, f.Prefix, f.Title, f.Path, len(f.Content))
}
