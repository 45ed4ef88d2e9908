package book

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/maruel/natural"
	"go.uber.org/zap"

	"mdbc/common"
	"mdbc/utils/debug"
)

// Sort returns fragments ordered by prefix. Identical prefixes should not
// happen, if they do source path decides so order never depends on directory
// traversal. Input slice is not modified.
func Sort(frags []Fragment, mode common.SortMode) []Fragment {
	sorted := slices.Clone(frags)
	compare := strings.Compare
	if mode == common.SortModeNatural {
		compare = compareNatural
	}
	slices.SortStableFunc(sorted, func(a, b Fragment) int {
		if c := compare(a.Prefix, b.Prefix); c != 0 {
			return c
		}
		return strings.Compare(a.Path, b.Path)
	})
	return sorted
}

// compareNatural orders numbers by value. Prefixes natural order considers
// equal ("01." and "1.") are still ordered, byte wise.
func compareNatural(a, b string) int {
	switch {
	case natural.Less(a, b):
		return -1
	case natural.Less(b, a):
		return 1
	default:
		return strings.Compare(a, b)
	}
}

// Assemble produces merged document: every fragment in order becomes level 1
// heading with its title followed by rewritten content, sections are
// separated by blank line.
func Assemble(frags []Fragment, rw *Rewriter, mode common.SortMode) string {
	return render(Sort(frags, mode), rw)
}

func render(sorted []Fragment, rw *Rewriter) string {
	var b strings.Builder
	for _, f := range sorted {
		b.WriteString("# ")
		b.WriteString(f.Title)
		b.WriteString("\n\n")
		b.WriteString(rw.Rewrite(f.Content))
		b.WriteString("\n\n")
	}
	return b.String()
}

// Outline lists fragments in the given order, indented by depth.
func Outline(frags []Fragment) string {
	tw := debug.NewTreeWriter()
	for _, f := range frags {
		tw.Line(f.Depth, "%s %s", f.Prefix, f.Title)
		tw.Field(f.Depth+1, "path", f.Path)
	}
	return tw.String()
}

// Stats describes built document.
type Stats struct {
	Fragments int
	// document outline, see Outline
	Outline string
}

// Assembler builds merged document for a single language root.
type Assembler struct {
	Rewriter *Rewriter
	Sort     common.SortMode
	Walk     []WalkOption
	Log      *zap.Logger
}

// Build walks root in fsys, assembles merged document and writes it to dst
// replacing whatever was there. Destination is replaced atomically: on any
// error previous content of dst is left untouched.
func (a *Assembler) Build(ctx context.Context, fsys fs.FS, root, dst string) (Stats, error) {
	log := a.Log
	if log == nil {
		log = zap.NewNop()
	}

	frags, err := Walk(ctx, fsys, root, append(slices.Clone(a.Walk), WithLogger(log))...)
	if err != nil {
		return Stats{}, err
	}
	log.Debug("Sources collected", zap.String("root", root), zap.Int("fragments", len(frags)))

	sorted := Sort(frags, a.Sort)
	doc := render(sorted, a.Rewriter)

	log.Info("Writing markdown file", zap.String("file", dst))
	if err := writeFileAtomic(dst, []byte(doc)); err != nil {
		return Stats{}, err
	}
	return Stats{Fragments: len(sorted), Outline: Outline(sorted)}, nil
}

func writeFileAtomic(dst string, data []byte) (err error) {
	f, err := os.CreateTemp(filepath.Dir(dst), "."+filepath.Base(dst)+".*")
	if err != nil {
		return fmt.Errorf("unable to create output file for %q: %w", dst, err)
	}
	defer func() {
		if err != nil {
			f.Close()
			os.Remove(f.Name())
		}
	}()

	if _, err = f.Write(data); err != nil {
		return fmt.Errorf("unable to write %q: %w", dst, err)
	}
	if err = f.Chmod(0644); err != nil {
		return fmt.Errorf("unable to write %q: %w", dst, err)
	}
	if err = f.Close(); err != nil {
		return fmt.Errorf("unable to write %q: %w", dst, err)
	}
	if err = os.Rename(f.Name(), dst); err != nil {
		return fmt.Errorf("unable to replace %q: %w", dst, err)
	}
	return nil
}
