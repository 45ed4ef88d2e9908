// Package pandoc produces epub and pdf documents from merged markdown using
// external pandoc program.
package pandoc

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/google/uuid"
	"github.com/h2non/filetype"
	"go.uber.org/zap"

	"mdbc/common"
	"mdbc/config"
)

// Pandoc runs located pandoc binary.
type Pandoc struct {
	path string
	log  *zap.Logger
}

// New locates pandoc binary, which could be either a name to look for in PATH
// or a path.
func New(binary string, log *zap.Logger) (*Pandoc, error) {
	path, err := exec.LookPath(binary)
	if err != nil {
		return nil, fmt.Errorf("%w: %s (%v), install pandoc (https://pandoc.org/installing.html) and make sure it is in PATH or set tools.pandoc",
			common.ErrConverterNotFound, binary, err)
	}
	return &Pandoc{path: path, log: log}, nil
}

// Job describes single conversion.
type Job struct {
	Format common.OutputFmt
	Source string
	Output string
	// directory to resolve relative image links against
	ResourcePath string
	Title        string
	Language     string
}

// Args builds pandoc command line for the job.
func Args(job *Job, doc *config.DocumentConfig) ([]string, error) {
	args := []string{job.Source, "-f", "markdown"}
	if job.ResourcePath != "" {
		args = append(args, "--resource-path="+job.ResourcePath)
	}
	if job.Title != "" {
		args = append(args, "--metadata=title:"+job.Title)
	}
	if job.Language != "" {
		args = append(args, "--metadata=lang:"+job.Language)
	}

	switch job.Format {
	case common.OutputFmtEpub:
		id, err := uuid.NewV7()
		if err != nil {
			return nil, fmt.Errorf("unable to generate book identifier: %w", err)
		}
		args = append(args, "--metadata=identifier:urn:uuid:"+id.String())
		if doc.Epub.TOC {
			args = append(args, "--toc")
		}
		if doc.Epub.CoverImagePath != "" {
			if err := checkImage(doc.Epub.CoverImagePath); err != nil {
				return nil, err
			}
			args = append(args, "--epub-cover-image="+doc.Epub.CoverImagePath)
		}
	case common.OutputFmtPdf:
		args = append(args, "-V", "documentclass="+doc.PDF.DocumentClass, "-t", "latex", "-s")
		if doc.PDF.TOC {
			args = append(args, "--toc")
		}
		if doc.PDF.Listings {
			args = append(args, "--listings")
		}
		if doc.PDF.ListingsHeaderPath != "" {
			args = append(args, "-H", doc.PDF.ListingsHeaderPath)
		}
		args = append(args, "--pdf-engine="+doc.PDF.Engine)
	default:
		return nil, fmt.Errorf("format %s is not produced by pandoc", job.Format)
	}
	return append(args, "-o", job.Output), nil
}

// checkImage makes sure cover is an image pandoc could use.
func checkImage(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("unable to open cover image: %w", err)
	}
	defer f.Close()

	head := make([]byte, 262)
	n, err := io.ReadFull(f, head)
	if err != nil && err != io.ErrUnexpectedEOF {
		return fmt.Errorf("unable to read cover image: %w", err)
	}
	if !filetype.IsImage(head[:n]) {
		return fmt.Errorf("cover %q is not an image", path)
	}
	return nil
}

// Generate runs pandoc for the job.
func (p *Pandoc) Generate(ctx context.Context, job *Job, doc *config.DocumentConfig) error {
	args, err := Args(job, doc)
	if err != nil {
		return err
	}

	p.log.Debug("Running pandoc", zap.String("path", p.path), zap.Strings("args", args))

	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, p.path, args...)
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("pandoc failed to produce %s: %w: %s", job.Format, err, strings.TrimSpace(stderr.String()))
	}
	if msg := strings.TrimSpace(stderr.String()); msg != "" {
		p.log.Warn("Pandoc reported problems", zap.Stringer("format", job.Format), zap.String("output", msg))
	}
	return nil
}
