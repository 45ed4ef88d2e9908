package convert

import (
	"archive/zip"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap/zaptest"

	"mdbc/common"
	"mdbc/config"
	"mdbc/state"
)

const testSVG = `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 40 20"><rect width="40" height="20" fill="red"/></svg>`

func writeTree(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		path := filepath.Join(root, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
	}
}

func sourceTree(t *testing.T) string {
	t.Helper()
	src := filepath.Join(t.TempDir(), "src")
	writeTree(t, src, map[string]string{
		"en/1_Introduction.md":    "See [setup](!/2_Setup/1_Install).\n\n![pipeline](/images/pipeline.svg)",
		"en/2_Setup/1_Install.md": "Get [code](/code/main.cpp).",
		"fr/1_Introduction.md":    "Bonjour.",
		"images/pipeline.svg":     testSVG,
		"images/existing.svg":     testSVG,
		"images/existing.png":     "user provided",
	})
	return src
}

func testEnv(t *testing.T, formats ...common.OutputFmt) *state.LocalEnv {
	t.Helper()
	cfg, err := config.LoadConfiguration("")
	if err != nil {
		t.Fatalf("unable to load default configuration: %v", err)
	}
	cfg.Document.Formats = formats
	env := state.EnvFromContext(state.ContextWithEnv(context.Background()))
	env.Cfg = cfg
	env.SetLogger(zaptest.NewLogger(t), nil)
	return env
}

func isolateTemp(t *testing.T) string {
	t.Helper()
	tmp := t.TempDir()
	t.Setenv("TMPDIR", tmp)
	return tmp
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("unable to read %s: %v", path, err)
	}
	return string(data)
}

func TestProcess_Directory(t *testing.T) {
	tmp := isolateTemp(t)
	src, dst := sourceTree(t), t.TempDir()
	env := testEnv(t, common.OutputFmtMd, common.OutputFmtHtml)

	if err := process(context.Background(), env, src, dst, env.Log); err != nil {
		t.Fatalf("process() error = %v", err)
	}

	want := "# Introduction\n\n" +
		"See [setup](#1-install).\n\n![pipeline](images/pipeline.png)\n\n" +
		"# Install\n\n" +
		"Get [code](https://vulkan-tutorial.com/code/main.cpp).\n\n"
	if got := readFile(t, filepath.Join(dst, "Vulkan Tutorial en.md")); got != want {
		t.Errorf("merged en =\n%q\nwant\n%q", got, want)
	}
	if got := readFile(t, filepath.Join(dst, "Vulkan Tutorial fr.md")); got != "# Introduction\n\nBonjour.\n\n" {
		t.Errorf("merged fr = %q", got)
	}
	page := readFile(t, filepath.Join(dst, "Vulkan Tutorial en.html"))
	if !strings.Contains(page, `<h1 id="install">Install</h1>`) {
		t.Errorf("unexpected html:\n%s", page)
	}

	// generated images are removed, user provided ones are kept
	if _, err := os.Stat(filepath.Join(src, "images", "pipeline.png")); !os.IsNotExist(err) {
		t.Error("generated image was not removed")
	}
	if readFile(t, filepath.Join(src, "images", "existing.png")) != "user provided" {
		t.Error("user provided image was modified")
	}

	// temporary merged documents are removed
	entries, _ := os.ReadDir(tmp)
	for _, e := range entries {
		if strings.HasPrefix(e.Name(), "mdbc-") {
			t.Errorf("temporary file left behind: %s", e.Name())
		}
	}
}

func TestProcess_Keep(t *testing.T) {
	tmp := isolateTemp(t)
	src, dst := sourceTree(t), t.TempDir()
	env := testEnv(t, common.OutputFmtMd)
	env.KeepTemp = true
	env.Cfg.Sources.Languages = []string{"en"}

	if err := process(context.Background(), env, src, dst, env.Log); err != nil {
		t.Fatalf("process() error = %v", err)
	}
	if _, err := os.Stat(filepath.Join(src, "images", "pipeline.png")); err != nil {
		t.Errorf("generated image was removed: %v", err)
	}
	matches, _ := filepath.Glob(filepath.Join(tmp, "mdbc-en-*.md"))
	if len(matches) != 1 {
		t.Errorf("merged document was not kept: %v", matches)
	}
}

func TestProcess_LanguageFailure(t *testing.T) {
	isolateTemp(t)
	src, dst := sourceTree(t), t.TempDir()
	env := testEnv(t, common.OutputFmtMd)
	env.Cfg.Sources.Languages = []string{"de", "en"}
	env.Cfg.Images.Convert = false

	err := process(context.Background(), env, src, dst, env.Log)
	if err == nil {
		t.Fatal("expected error for missing language")
	}
	if !strings.Contains(err.Error(), `language "de"`) || !strings.Contains(err.Error(), "walk stage") {
		t.Errorf("error does not name language and stage: %v", err)
	}
	// failed language does not stop others
	if _, err := os.Stat(filepath.Join(dst, "Vulkan Tutorial en.md")); err != nil {
		t.Errorf("en was not built: %v", err)
	}
}

func TestProcess_ExistingOutput(t *testing.T) {
	isolateTemp(t)
	src, dst := sourceTree(t), t.TempDir()
	existing := filepath.Join(dst, "Vulkan Tutorial en.md")
	if err := os.WriteFile(existing, []byte("old"), 0644); err != nil {
		t.Fatal(err)
	}

	env := testEnv(t, common.OutputFmtMd)
	env.Cfg.Sources.Languages = []string{"en"}
	env.Cfg.Images.Convert = false

	err := process(context.Background(), env, src, dst, env.Log)
	if err == nil || !strings.Contains(err.Error(), "already exists") {
		t.Fatalf("process() error = %v, want existing output error", err)
	}
	if readFile(t, existing) != "old" {
		t.Error("existing output was modified")
	}

	env.Overwrite = true
	if err := process(context.Background(), env, src, dst, env.Log); err != nil {
		t.Fatalf("process() with overwrite error = %v", err)
	}
	if readFile(t, existing) == "old" {
		t.Error("existing output was not overwritten")
	}
}

func TestProcess_Archive(t *testing.T) {
	isolateTemp(t)
	arc := filepath.Join(t.TempDir(), "book.zip")
	f, err := os.Create(arc)
	if err != nil {
		t.Fatal(err)
	}
	zw := zip.NewWriter(f)
	for name, content := range map[string]string{
		"en/1_Introduction.md": "Hello.",
		"en/2_End.md":          "Bye.",
	} {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := w.Write([]byte(content)); err != nil {
			t.Fatal(err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}
	f.Close()

	dst := t.TempDir()
	env := testEnv(t, common.OutputFmtMd)
	env.Cfg.Sources.Languages = []string{"en"}

	if err := process(context.Background(), env, arc, dst, env.Log); err != nil {
		t.Fatalf("process() error = %v", err)
	}
	if got := readFile(t, filepath.Join(dst, "Vulkan Tutorial en.md")); got != "# Introduction\n\nHello.\n\n# End\n\nBye.\n\n" {
		t.Errorf("merged = %q", got)
	}
}

func TestProcess_BadSource(t *testing.T) {
	dir := t.TempDir()
	notArchive := filepath.Join(dir, "book.txt")
	if err := os.WriteFile(notArchive, []byte("just text"), 0644); err != nil {
		t.Fatal(err)
	}
	env := testEnv(t, common.OutputFmtMd)

	for _, src := range []string{filepath.Join(dir, "missing"), notArchive} {
		if err := process(context.Background(), env, src, t.TempDir(), env.Log); err == nil {
			t.Errorf("expected error for %s", src)
		}
	}
}

func TestProcess_PandocNotFound(t *testing.T) {
	isolateTemp(t)
	src, dst := sourceTree(t), t.TempDir()
	env := testEnv(t, common.OutputFmtEpub)
	env.Cfg.Images.Convert = false
	env.Cfg.Tools.Pandoc = filepath.Join(t.TempDir(), "no-pandoc")

	err := process(context.Background(), env, src, dst, env.Log)
	if !errors.Is(err, common.ErrConverterNotFound) {
		t.Errorf("process() error = %v, want ErrConverterNotFound", err)
	}
}

func TestProcess_Canceled(t *testing.T) {
	isolateTemp(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	env := testEnv(t, common.OutputFmtMd)
	env.Cfg.Images.Convert = false
	if err := process(ctx, env, sourceTree(t), t.TempDir(), env.Log); !errors.Is(err, context.Canceled) {
		t.Errorf("process() error = %v, want context.Canceled", err)
	}
}
