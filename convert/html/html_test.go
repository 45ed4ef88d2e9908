package html

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap/zaptest"
)

const merged = "# Introduction\n\nSee [setup](#install).\n\n# Install\n\n| a | b |\n|---|---|\n| 1 | 2 |\n\n![diagram](images/pipeline.png)\n\n"

func TestRender(t *testing.T) {
	out, err := Render([]byte(merged), Options{Title: "Vulkan Tutorial", Language: "en", Stylesheet: []byte("body { margin: 0; }")})
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	s := string(out)

	for _, want := range []string{
		`<html lang="en">`,
		`<title>Vulkan Tutorial</title>`,
		`<h1 id="introduction">Introduction</h1>`,
		`<h1 id="install">Install</h1>`,
		`<a href="#install">setup</a>`,
		`<table>`,
		`<img src="images/pipeline.png" alt="diagram">`,
		`body { margin: 0; }`,
	} {
		if !strings.Contains(s, want) {
			t.Errorf("output does not contain %q:\n%s", want, s)
		}
	}
}

func TestRender_NoStylesheet(t *testing.T) {
	out, err := Render([]byte("# A\n"), Options{Title: "T", Language: "fr"})
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if strings.Contains(string(out), "<style>") {
		t.Error("empty stylesheet must not produce style element")
	}
}

func TestGenerate(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "merged.md")
	dst := filepath.Join(dir, "book.html")
	if err := os.WriteFile(src, []byte(merged), 0644); err != nil {
		t.Fatal(err)
	}

	if err := Generate(context.Background(), src, dst, Options{Title: "T", Language: "en"}, zaptest.NewLogger(t)); err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	data, err := os.ReadFile(dst)
	if err != nil {
		t.Fatalf("output was not written: %v", err)
	}
	if !strings.HasPrefix(string(data), "<!DOCTYPE html>") {
		t.Errorf("unexpected output: %s", data)
	}

	if err := Generate(context.Background(), filepath.Join(dir, "missing.md"), dst, Options{}, zaptest.NewLogger(t)); err == nil {
		t.Error("expected error for missing source")
	}
}
