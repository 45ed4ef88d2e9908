package convert

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime/debug"
	"slices"
	"time"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"mdbc/archive"
	"mdbc/book"
	"mdbc/common"
	"mdbc/config"
	"mdbc/convert/html"
	"mdbc/convert/pandoc"
	"mdbc/misc"
	"mdbc/state"
	"mdbc/utils/images"
)

func Run(ctx context.Context, cmd *cli.Command) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}

	env := state.EnvFromContext(ctx)
	log := env.Log.Named("build")

	src := cmd.Args().Get(0)
	if len(src) == 0 {
		return errors.New("no input source has been specified")
	}
	src, err = filepath.Abs(src)
	if err != nil {
		return err
	}

	dst := cmd.Args().Get(1)
	if len(dst) == 0 {
		if dst, err = os.Getwd(); err != nil {
			return fmt.Errorf("unable to get working directory: %w", err)
		}
	}
	if dst, err = filepath.Abs(dst); err != nil {
		return err
	}
	if cmd.Args().Len() > 2 {
		log.Warn("Extra arguments after destination are ignored", zap.Strings("ignoring", cmd.Args().Slice()[2:]))
	}

	// command line takes precedence over configuration
	if langs := cmd.StringSlice("lang"); len(langs) > 0 {
		env.Cfg.Sources.Languages = langs
	}
	if to := cmd.StringSlice("to"); len(to) > 0 {
		formats := make([]common.OutputFmt, 0, len(to))
		for _, name := range to {
			format, err := common.ParseOutputFmt(name)
			if err != nil {
				return fmt.Errorf("unknown output format requested: %w", err)
			}
			if !slices.Contains(formats, format) {
				formats = append(formats, format)
			}
		}
		env.Cfg.Document.Formats = formats
	}
	env.Overwrite, env.KeepTemp = cmd.Bool("overwrite"), cmd.Bool("keep")

	log.Info("Processing starting", zap.String("source", src), zap.String("destination", dst),
		zap.Strings("languages", env.Cfg.Sources.Languages), zap.Stringers("formats", env.Cfg.Document.Formats))
	defer func(start time.Time) {
		log.Info("Processing completed", zap.Duration("elapsed", time.Since(start)))
	}(time.Now())

	return process(ctx, env, src, dst, log)
}

// source is where chapters come from: a directory or a zip archive.
type source struct {
	fsys fs.FS
	// directory on disk, empty for archives
	dir   string
	close func() error
}

func openSource(src string) (*source, error) {
	fi, err := os.Stat(src)
	if err != nil {
		return nil, fmt.Errorf("input source was not found: %w", err)
	}
	if fi.IsDir() {
		return &source{fsys: os.DirFS(src), dir: src, close: func() error { return nil }}, nil
	}
	if !fi.Mode().IsRegular() {
		return nil, fmt.Errorf("unexpected path mode for (%s)", src)
	}

	ok, err := archive.IsArchive(src)
	if err != nil {
		// checking format - but cannot open target file
		return nil, fmt.Errorf("unable to check archive type: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("input is neither directory nor zip archive (%s)", src)
	}
	zr, err := archive.Open(src)
	if err != nil {
		return nil, fmt.Errorf("unable to open archive: %w", err)
	}
	return &source{fsys: zr, close: zr.Close}, nil
}

type builder struct {
	env        *state.LocalEnv
	asm        *book.Assembler
	in         *source
	name       string
	dst        string
	stylesheet []byte
	log        *zap.Logger
}

// process builds every requested language independently. Failure of a
// language does not stop others, all errors are returned together.
func process(ctx context.Context, env *state.LocalEnv, src, dst string, log *zap.Logger) (err error) {
	cfg := env.Cfg

	rw, err := book.NewRewriter(book.RewriteRules{
		ImagesDir:  cfg.References.ImagesDir,
		SiteURL:    cfg.References.SiteURL,
		XRefMarker: cfg.References.XRefMarker,
		VectorExt:  cfg.References.VectorExt,
		RasterExt:  cfg.References.RasterExt,
	})
	if err != nil {
		return err
	}

	var stylesheet []byte
	if slices.Contains(cfg.Document.Formats, common.OutputFmtHtml) && cfg.Document.HTML.StylesheetPath != "" {
		if stylesheet, err = os.ReadFile(cfg.Document.HTML.StylesheetPath); err != nil {
			return fmt.Errorf("unable to read style css from %q: %w", cfg.Document.HTML.StylesheetPath, err)
		}
	}

	in, err := openSource(src)
	if err != nil {
		return err
	}
	defer func() {
		if e := in.close(); e != nil {
			err = multierr.Append(err, fmt.Errorf("unable to close source: %w", e))
		}
	}()

	if err := os.MkdirAll(dst, 0755); err != nil {
		return fmt.Errorf("unable to create destination directory: %w", err)
	}

	generated, err := convertImages(ctx, env, in, log)
	defer func() {
		if cfg.Images.KeepGenerated || env.KeepTemp {
			if len(generated) > 0 {
				log.Info("Keeping generated images", zap.Int("count", len(generated)))
			}
			return
		}
		images.RemoveGenerated(generated, log)
	}()
	if err != nil {
		return fmt.Errorf("images stage: %w", err)
	}

	b := &builder{
		env: env,
		asm: &book.Assembler{
			Rewriter: rw,
			Sort:     cfg.Sources.Sort,
			Walk:     []book.WalkOption{book.WithExtensions(cfg.Sources.Extensions)},
			Log:      log,
		},
		in:         in,
		name:       filepath.Base(src),
		dst:        dst,
		stylesheet: stylesheet,
		log:        log,
	}

	seen := make(map[string]bool, len(cfg.Sources.Languages))
	for _, lang := range cfg.Sources.Languages {
		if e := ctx.Err(); e != nil {
			return multierr.Append(err, e)
		}
		if seen[lang] {
			log.Warn("Language requested more than once, skipping", zap.String("lang", lang))
			continue
		}
		seen[lang] = true
		if e := b.language(ctx, lang); e != nil {
			log.Error("Unable to build language", zap.String("lang", lang), zap.Error(e))
			err = multierr.Append(err, fmt.Errorf("language %q: %w", lang, e))
		}
	}
	return err
}

func convertImages(ctx context.Context, env *state.LocalEnv, in *source, log *zap.Logger) ([]string, error) {
	cfg := env.Cfg
	if !cfg.Images.Convert {
		return nil, nil
	}
	if in.dir == "" {
		log.Warn("Images in archived sources cannot be converted, skipping")
		return nil, nil
	}

	c := &images.Converter{
		VectorExt:  cfg.References.VectorExt,
		RasterExt:  cfg.References.RasterExt,
		Rasterizer: cfg.Images.Rasterizer,
		Width:      cfg.Images.Width,
		Inkscape:   cfg.Tools.Inkscape,
		Log:        log.Named("images"),
	}
	return c.ConvertDir(ctx, filepath.Join(in.dir, cfg.References.ImagesDir))
}

// language builds merged document for a single language and produces all
// requested formats from it.
func (b *builder) language(ctx context.Context, lang string) (rerr error) {
	env, log := b.env, b.log.With(zap.String("lang", lang))

	log.Info("Building language")
	defer func(start time.Time) {
		if r := recover(); r != nil {
			log.Error("Build ended with panic", zap.Any("panic", r), zap.Duration("elapsed", time.Since(start)), zap.ByteString("stack", debug.Stack()))
			rerr = fmt.Errorf("build panic: %v", r)
		} else if rerr == nil {
			log.Info("Language completed", zap.Duration("elapsed", time.Since(start)))
		}
	}(time.Now())

	tmp, err := os.CreateTemp("", misc.GetAppName()+"-"+lang+"-*.md")
	if err != nil {
		return fmt.Errorf("unable to create merged document: %w", err)
	}
	merged := tmp.Name()
	tmp.Close()
	defer func() {
		if env.KeepTemp {
			log.Info("Keeping merged document", zap.String("file", merged))
			return
		}
		if err := os.Remove(merged); err != nil {
			log.Warn("Unable to remove merged document", zap.String("file", merged), zap.Error(err))
		}
	}()

	stats, err := b.asm.Build(ctx, b.in.fsys, lang, merged)
	if err != nil {
		return fmt.Errorf("walk stage: %w", err)
	}
	if stats.Fragments == 0 {
		log.Warn("No chapters found")
	}
	env.Rpt.StoreData(fmt.Sprintf("outline/%s.txt", lang), []byte(stats.Outline))
	if err := env.Rpt.StoreCopy(fmt.Sprintf("merged/%s.md", lang), merged); err != nil {
		log.Warn("Unable to store merged document in report", zap.Error(err))
	}

	for _, format := range env.Cfg.Document.Formats {
		if err := ctx.Err(); err != nil {
			return err
		}

		values := newValues(config.OutputNameTemplateFieldName, env.Cfg.Document.Title, lang, b.name, format)
		out := buildOutputPath(values, b.dst, format, env)
		if err := prepareOutput(out, env, log); err != nil {
			return fmt.Errorf("%s stage: %w", format, err)
		}
		if err := b.generate(ctx, format, merged, out, lang, log); err != nil {
			return fmt.Errorf("%s stage: %w", format, err)
		}
		env.Rpt.Store(fmt.Sprintf("result-%s%s", lang, format.Ext()), out)
		log.Info("Document produced", zap.Stringer("format", format), zap.String("file", out))
	}
	return nil
}

func (b *builder) generate(ctx context.Context, format common.OutputFmt, merged, out, lang string, log *zap.Logger) error {
	doc := &b.env.Cfg.Document

	if format.NeedsPandoc() {
		p, err := pandoc.New(b.env.Cfg.Tools.Pandoc, log.Named("pandoc"))
		if err != nil {
			return err
		}
		return p.Generate(ctx, &pandoc.Job{
			Format:       format,
			Source:       merged,
			Output:       out,
			ResourcePath: b.in.dir,
			Title:        doc.Title,
			Language:     lang,
		}, doc)
	}

	switch format {
	case common.OutputFmtMd:
		data, err := os.ReadFile(merged)
		if err != nil {
			return err
		}
		return os.WriteFile(out, data, 0644)
	case common.OutputFmtHtml:
		return html.Generate(ctx, merged, out, html.Options{Title: doc.Title, Language: lang, Stylesheet: b.stylesheet}, log)
	default:
		// this should never happen
		panic("unsupported format requested")
	}
}
