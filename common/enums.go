// The only reason this package exists is that enums are shared by the
// configuration and by the processing packages, and I do not want processing
// code to depend on configuration loading.
package common

//go:generate go tool go-enum --marshal --names

// Specification of requested output type.
// ENUM(md, html, epub, pdf)
type OutputFmt int

// NeedsPandoc reports whether format is produced by external pandoc binary.
func (o OutputFmt) NeedsPandoc() bool {
	return o == OutputFmtEpub || o == OutputFmtPdf
}

func (o OutputFmt) Ext() string {
	switch o {
	case OutputFmtMd:
		return ".md"
	case OutputFmtHtml:
		return ".html"
	case OutputFmtEpub:
		return ".epub"
	case OutputFmtPdf:
		return ".pdf"
	default:
		// this should never happen
		panic("unsupported format requested")
	}
}

// Specification of vector image rasterizer.
// ENUM(builtin, inkscape)
type Rasterizer int

// Specification of chapter ordering.
// ENUM(lexical, natural)
type SortMode int
