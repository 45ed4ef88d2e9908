package convert

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gosimple/slug"
	"go.uber.org/zap"

	"mdbc/common"
	"mdbc/config"
	"mdbc/state"
)

// buildOutputPath returns constructed output file path/name for a language
// and format. It uses either default naming scheme ("<title> <language>") or
// user-defined template which may produce subdirectories. Path segments are
// cleaned and if requested transliterated.
func buildOutputPath(v Values, dst string, format common.OutputFmt, env *state.LocalEnv) string {
	defaultFile := cleanPathSegment(v.Title+" "+v.Language, env) + format.Ext()

	if env.Cfg.Document.OutputNameTemplate == "" {
		return filepath.Join(dst, defaultFile)
	}

	expanded, err := expandTemplate(config.OutputNameTemplateFieldName, env.Cfg.Document.OutputNameTemplate, v)
	if err != nil {
		env.Log.Warn("Unable to prepare output filename", zap.Error(err))
		return filepath.Join(dst, defaultFile)
	}

	segments := splitPath(expanded)
	if len(segments) == 0 {
		// fallback to default name if template expanded to nothing
		return filepath.Join(dst, defaultFile)
	}

	parts := make([]string, 0, len(segments)+1)
	parts = append(parts, dst)
	for _, s := range segments[:len(segments)-1] {
		parts = append(parts, cleanPathSegment(s, env))
	}
	parts = append(parts, cleanPathSegment(segments[len(segments)-1], env)+format.Ext())
	return filepath.Join(parts...)
}

// splitPath splits expanded template on any separator dropping empty and
// relative segments, so result never leaves destination directory.
func splitPath(path string) []string {
	fields := strings.FieldsFunc(filepath.ToSlash(path), func(r rune) bool { return r == '/' })
	segments := make([]string, 0, len(fields))
	for _, f := range fields {
		f = strings.TrimSpace(f)
		if f == "" || f == "." || f == ".." {
			continue
		}
		segments = append(segments, f)
	}
	return segments
}

func cleanPathSegment(segment string, env *state.LocalEnv) string {
	if env.Cfg.Document.FileNameTransliterate {
		segment = slug.Make(segment)
	}
	return config.CleanFileName(segment)
}

// prepareOutput makes sure output could be written: existing file is removed
// only when overwriting was requested, missing directories are created.
func prepareOutput(name string, env *state.LocalEnv, log *zap.Logger) error {
	if _, err := os.Stat(name); err == nil {
		if !env.Overwrite {
			return fmt.Errorf("output file already exists: %s", name)
		}
		log.Warn("Overwriting existing file", zap.String("file", name))
		return os.Remove(name)
	} else if !os.IsNotExist(err) {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(name), 0755); err != nil {
		return fmt.Errorf("unable to create output directory: %w", err)
	}
	return nil
}
