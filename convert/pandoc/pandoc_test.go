package pandoc

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strings"
	"testing"

	"go.uber.org/zap/zaptest"

	"mdbc/common"
	"mdbc/config"
)

// smallest valid png: 1x1 transparent pixel
var pngData = []byte{
	0x89, 0x50, 0x4e, 0x47, 0x0d, 0x0a, 0x1a, 0x0a, 0x00, 0x00, 0x00, 0x0d, 0x49, 0x48, 0x44, 0x52,
	0x00, 0x00, 0x00, 0x01, 0x00, 0x00, 0x00, 0x01, 0x08, 0x06, 0x00, 0x00, 0x00, 0x1f, 0x15, 0xc4,
	0x89, 0x00, 0x00, 0x00, 0x0d, 0x49, 0x44, 0x41, 0x54, 0x78, 0x9c, 0x63, 0x00, 0x01, 0x00, 0x00,
	0x05, 0x00, 0x01, 0x0d, 0x0a, 0x2d, 0xb4, 0x00, 0x00, 0x00, 0x00, 0x49, 0x45, 0x4e, 0x44, 0xae,
	0x42, 0x60, 0x82,
}

func document() *config.DocumentConfig {
	return &config.DocumentConfig{
		Title: "Vulkan Tutorial",
		Epub:  config.EpubConfig{TOC: true},
		PDF: config.PDFConfig{
			DocumentClass: "report",
			TOC:           true,
			Listings:      true,
			Engine:        "xelatex",
		},
	}
}

func TestArgs_PDF(t *testing.T) {
	doc := document()
	doc.PDF.ListingsHeaderPath = "ebook/listings-setup.tex"

	args, err := Args(&Job{Format: common.OutputFmtPdf, Source: "ebook.md", Output: "Vulkan Tutorial en.pdf"}, doc)
	if err != nil {
		t.Fatalf("Args() error = %v", err)
	}
	want := []string{
		"ebook.md", "-f", "markdown",
		"-V", "documentclass=report", "-t", "latex", "-s", "--toc", "--listings",
		"-H", "ebook/listings-setup.tex", "--pdf-engine=xelatex",
		"-o", "Vulkan Tutorial en.pdf",
	}
	if !slices.Equal(args, want) {
		t.Errorf("Args() =\n%q\nwant\n%q", args, want)
	}
}

func TestArgs_PDFMinimal(t *testing.T) {
	doc := document()
	doc.PDF.TOC, doc.PDF.Listings = false, false

	args, err := Args(&Job{Format: common.OutputFmtPdf, Source: "in.md", Output: "out.pdf"}, doc)
	if err != nil {
		t.Fatalf("Args() error = %v", err)
	}
	for _, a := range args {
		if a == "--toc" || a == "--listings" || a == "-H" {
			t.Errorf("unexpected argument %q in %q", a, args)
		}
	}
}

func TestArgs_Epub(t *testing.T) {
	dir := t.TempDir()
	cover := filepath.Join(dir, "cover.png")
	if err := os.WriteFile(cover, pngData, 0644); err != nil {
		t.Fatal(err)
	}
	doc := document()
	doc.Epub.CoverImagePath = cover

	args, err := Args(&Job{
		Format:       common.OutputFmtEpub,
		Source:       "in.md",
		Output:       "out.epub",
		ResourcePath: "/src",
		Title:        "Vulkan Tutorial",
		Language:     "fr",
	}, doc)
	if err != nil {
		t.Fatalf("Args() error = %v", err)
	}

	for _, want := range []string{"--toc", "--epub-cover-image=" + cover, "--resource-path=/src", "--metadata=title:Vulkan Tutorial", "--metadata=lang:fr"} {
		if !slices.Contains(args, want) {
			t.Errorf("argument %q missing in %q", want, args)
		}
	}
	if !slices.ContainsFunc(args, func(a string) bool { return strings.HasPrefix(a, "--metadata=identifier:urn:uuid:") }) {
		t.Errorf("identifier missing in %q", args)
	}
	if args[len(args)-2] != "-o" || args[len(args)-1] != "out.epub" {
		t.Errorf("output must be last: %q", args)
	}
}

func TestArgs_Errors(t *testing.T) {
	dir := t.TempDir()
	notImage := filepath.Join(dir, "cover.txt")
	if err := os.WriteFile(notImage, []byte("plain text"), 0644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name  string
		job   Job
		cover string
	}{
		{"html", Job{Format: common.OutputFmtHtml}, ""},
		{"md", Job{Format: common.OutputFmtMd}, ""},
		{"cover not image", Job{Format: common.OutputFmtEpub}, notImage},
		{"cover missing", Job{Format: common.OutputFmtEpub}, filepath.Join(dir, "nope.png")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := document()
			doc.Epub.CoverImagePath = tt.cover
			if _, err := Args(&tt.job, doc); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestNew_NotFound(t *testing.T) {
	_, err := New(filepath.Join(t.TempDir(), "no-pandoc"), zaptest.NewLogger(t))
	if !errors.Is(err, common.ErrConverterNotFound) {
		t.Errorf("New() error = %v, want ErrConverterNotFound", err)
	}
	if err != nil && !strings.Contains(err.Error(), "install pandoc") {
		t.Errorf("error does not carry guidance: %v", err)
	}
}

func fakePandoc(t *testing.T, exitCode int) (bin, argsFile string) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell script is used as pandoc replacement")
	}
	dir := t.TempDir()
	bin = filepath.Join(dir, "pandoc")
	argsFile = filepath.Join(dir, "args")
	script := `#!/bin/sh
for a in "$@"; do echo "$a" >> '` + argsFile + `'; done
echo "warning from pandoc" >&2
exit ` + string(rune('0'+exitCode)) + "\n"
	if err := os.WriteFile(bin, []byte(script), 0755); err != nil {
		t.Fatal(err)
	}
	return bin, argsFile
}

func TestGenerate(t *testing.T) {
	bin, argsFile := fakePandoc(t, 0)
	p, err := New(bin, zaptest.NewLogger(t))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	job := &Job{Format: common.OutputFmtPdf, Source: "in.md", Output: "out.pdf"}
	if err := p.Generate(context.Background(), job, document()); err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	data, err := os.ReadFile(argsFile)
	if err != nil {
		t.Fatalf("pandoc was not called: %v", err)
	}
	if !strings.Contains(string(data), "--pdf-engine=xelatex\n") {
		t.Errorf("unexpected arguments:\n%s", data)
	}
}

func TestGenerate_Failure(t *testing.T) {
	bin, _ := fakePandoc(t, 3)
	p, err := New(bin, zaptest.NewLogger(t))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	err = p.Generate(context.Background(), &Job{Format: common.OutputFmtEpub, Source: "in.md", Output: "out.epub"}, document())
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "warning from pandoc") {
		t.Errorf("error does not carry pandoc output: %v", err)
	}
}
