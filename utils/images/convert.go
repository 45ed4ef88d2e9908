package images

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/disintegration/imaging"
	"go.uber.org/zap"

	"mdbc/common"
)

// Converter produces raster image next to every vector image in a directory.
type Converter struct {
	VectorExt  string
	RasterExt  string
	Rasterizer common.Rasterizer
	// target width in pixels, 0 - keep vector image size
	Width int
	// path or name of inkscape binary
	Inkscape string
	Log      *zap.Logger
}

// ConvertDir converts vector images found directly in dir and returns list of
// raster images it created. Raster images which already exist are never
// overwritten. On error images created so far are returned together with
// error so caller could clean them up.
func (c *Converter) ConvertDir(ctx context.Context, dir string) ([]string, error) {
	log := c.Log
	if log == nil {
		log = zap.NewNop()
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			log.Debug("No images directory, nothing to convert", zap.String("dir", dir))
			return nil, nil
		}
		return nil, fmt.Errorf("unable to read images directory %q: %w", dir, err)
	}

	convert, err := c.converter()
	if err != nil {
		return nil, err
	}

	var created []string
	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return created, err
		}
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), c.VectorExt) {
			continue
		}

		src := filepath.Join(dir, entry.Name())
		dst := strings.TrimSuffix(src, filepath.Ext(src)) + c.RasterExt
		if _, err := os.Stat(dst); err == nil {
			log.Debug("Raster image already exists, skipping", zap.String("file", dst))
			continue
		}

		log.Debug("Converting image", zap.String("from", src), zap.String("to", dst))
		if err := convert(ctx, src, dst); err != nil {
			// do not leave partial output behind
			_ = os.Remove(dst)
			return created, fmt.Errorf("unable to convert %q: %w", src, err)
		}
		created = append(created, dst)
	}
	log.Info("Images converted", zap.String("dir", dir), zap.Int("count", len(created)))
	return created, nil
}

// RemoveGenerated removes raster images created by ConvertDir. Images which
// are already gone are reported as warnings only.
func RemoveGenerated(files []string, log *zap.Logger) {
	for _, f := range files {
		if err := os.Remove(f); err != nil {
			log.Warn("Unable to remove generated image", zap.String("file", f), zap.Error(err))
		}
	}
}

type convertFunc func(ctx context.Context, src, dst string) error

func (c *Converter) converter() (convertFunc, error) {
	switch c.Rasterizer {
	case common.RasterizerBuiltin:
		format, err := imaging.FormatFromExtension(c.RasterExt)
		if err != nil {
			return nil, fmt.Errorf("unsupported raster image extension %q: %w", c.RasterExt, err)
		}
		return func(_ context.Context, src, dst string) error {
			return c.rasterize(src, dst, format)
		}, nil
	case common.RasterizerInkscape:
		path, err := exec.LookPath(c.Inkscape)
		if err != nil {
			return nil, fmt.Errorf("%w: %s (%v), install Inkscape (https://www.inkscape.org) or use builtin rasterizer",
				common.ErrConverterNotFound, c.Inkscape, err)
		}
		return func(ctx context.Context, src, dst string) error {
			return c.inkscape(ctx, path, src, dst)
		}, nil
	default:
		// this should never happen
		panic("unsupported rasterizer requested")
	}
}

func (c *Converter) rasterize(src, dst string, format imaging.Format) error {
	data, err := os.ReadFile(src)
	if err != nil {
		return err
	}
	img, err := RasterizeSVG(data, c.Width)
	if err != nil {
		return err
	}

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if err := imaging.Encode(out, img, format); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

func (c *Converter) inkscape(ctx context.Context, path, src, dst string) error {
	args := []string{"--export-filename=" + dst}
	if c.Width > 0 {
		args = append(args, "--export-width="+strconv.Itoa(c.Width))
	}
	args = append(args, src)

	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, path, args...)
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("inkscape failed: %w: %s", err, strings.TrimSpace(stderr.String()))
	}
	if _, err := os.Stat(dst); err != nil {
		return fmt.Errorf("inkscape produced no output: %w", err)
	}
	return nil
}
