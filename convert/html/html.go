// Package html renders merged markdown document as a single standalone HTML
// page.
package html

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"os"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	ghtml "github.com/yuin/goldmark/renderer/html"
	"go.uber.org/zap"
)

var page = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html lang="{{ .Language }}">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{ .Title }}</title>
{{- if .Style }}
<style>
{{ .Style }}
</style>
{{- end }}
</head>
<body>
{{ .Body }}
</body>
</html>
`))

type pageValues struct {
	Title    string
	Language string
	Style    template.CSS
	Body     template.HTML
}

// Options controls produced page.
type Options struct {
	Title    string
	Language string
	// CSS to inline into the page, may be empty
	Stylesheet []byte
}

func newMarkdown() goldmark.Markdown {
	return goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			extension.Footnote,
			extension.DefinitionList,
		),
		goldmark.WithParserOptions(
			// ids come from heading text only: "# Some Chapter" gets id="some-chapter"
			parser.WithAutoHeadingID(),
		),
		goldmark.WithRendererOptions(
			ghtml.WithUnsafe(),
		),
	)
}

// Render converts markdown source to complete HTML page.
func Render(src []byte, opts Options) ([]byte, error) {
	body := new(bytes.Buffer)
	if err := newMarkdown().Convert(src, body); err != nil {
		return nil, fmt.Errorf("unable to render markdown: %w", err)
	}

	out := new(bytes.Buffer)
	if err := page.Execute(out, pageValues{
		Title:    opts.Title,
		Language: opts.Language,
		Style:    template.CSS(opts.Stylesheet),
		Body:     template.HTML(body.String()),
	}); err != nil {
		return nil, fmt.Errorf("unable to produce page: %w", err)
	}
	return out.Bytes(), nil
}

// Generate reads merged markdown from src and writes HTML page to dst.
func Generate(ctx context.Context, src, dst string, opts Options, log *zap.Logger) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := os.ReadFile(src)
	if err != nil {
		return fmt.Errorf("unable to read merged document: %w", err)
	}
	out, err := Render(data, opts)
	if err != nil {
		return err
	}

	log.Debug("Writing html", zap.String("file", dst), zap.Int("size", len(out)))
	if err := os.WriteFile(dst, out, 0644); err != nil {
		return fmt.Errorf("unable to write html: %w", err)
	}
	return nil
}
