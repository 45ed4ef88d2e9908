package book

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// RewriteRules describes reference conventions of the chapter sources.
type RewriteRules struct {
	// ImagesDir is reserved image directory name, referenced in sources as
	// root absolute "/<ImagesDir>/".
	ImagesDir string
	// SiteURL is prepended to the remaining root relative link targets.
	SiteURL string
	// XRefMarker starts same document chapter reference: "](!/path/to/Chapter)".
	XRefMarker string
	VectorExt  string
	RasterExt  string
}

// Rewriter fixes links in chapter content so it could be used inside the
// merged document. It is stateless and safe to reuse.
type Rewriter struct {
	imagesRe, vectorRe, rootLinkRe, xrefRe *regexp.Regexp
	imagesRepl, rasterRepl, rootLinkRepl   string
}

func NewRewriter(rules RewriteRules) (*Rewriter, error) {
	dir := strings.Trim(rules.ImagesDir, "/")
	if dir == "" {
		return nil, errors.New("images directory is not specified")
	}
	if rules.XRefMarker == "" || strings.Contains(rules.XRefMarker, "/") || strings.Contains(rules.XRefMarker, ")") {
		return nil, fmt.Errorf("bad cross reference marker %q", rules.XRefMarker)
	}
	if rules.SiteURL == "" {
		return nil, errors.New("site url is not specified")
	}
	if !strings.HasPrefix(rules.VectorExt, ".") || !strings.HasPrefix(rules.RasterExt, ".") {
		return nil, fmt.Errorf("bad image extensions %q -> %q", rules.VectorExt, rules.RasterExt)
	}

	base := strings.TrimSuffix(rules.SiteURL, "/")
	return &Rewriter{
		// root absolute only: preceded by line start, whitespace, "(", quote or "="
		imagesRe:   regexp.MustCompile(`(?m)(^|[\s("'=])/` + regexp.QuoteMeta(dir) + `/`),
		imagesRepl: "${1}" + escapeRepl(dir) + "/",
		vectorRe:   regexp.MustCompile(regexp.QuoteMeta(rules.VectorExt) + `\b`),
		rasterRepl: escapeRepl(rules.RasterExt),
		// protocol relative "//host" is left alone
		rootLinkRe:   regexp.MustCompile(`\]\(/([^/])`),
		rootLinkRepl: "](" + escapeRepl(base) + "/${1}",
		xrefRe:       regexp.MustCompile(`\]\(` + regexp.QuoteMeta(rules.XRefMarker) + `([^)]+)\)`),
	}, nil
}

// Rewrite returns content with all known reference forms fixed. Order of
// transformations matters: images first, so their links are no longer root
// relative, then root relative links, then chapter references.
func (rw *Rewriter) Rewrite(content string) string {
	content = rw.imagesRe.ReplaceAllString(content, rw.imagesRepl)
	content = rw.vectorRe.ReplaceAllString(content, rw.rasterRepl)
	content = rw.rootLinkRe.ReplaceAllString(content, rw.rootLinkRepl)
	content = rw.xrefRe.ReplaceAllStringFunc(content, func(match string) string {
		target := rw.xrefRe.FindStringSubmatch(match)[1]
		return "](#" + Anchor(target) + ")"
	})
	return content
}

// Anchor converts chapter path into in-document anchor: last path segment,
// lower cased, underscores replaced with hyphens.
func Anchor(target string) string {
	target = strings.TrimRight(target, "/")
	if i := strings.LastIndex(target, "/"); i >= 0 {
		target = target[i+1:]
	}
	return strings.ReplaceAll(strings.ToLower(target), "_", "-")
}

func escapeRepl(s string) string {
	return strings.ReplaceAll(s, "$", "$$")
}
