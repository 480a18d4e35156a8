package document

import (
	"fmt"
	"os"
	"time"

	"github.com/go-pdf/fpdf"
	"go.uber.org/zap"
)

const (
	pageMargin   = 15.0
	footerOffset = 15.0
	utf8Family   = "recipe"
)

// Renderer writes Documents as A4 PDFs. It holds no per-document state and is
// safe to reuse across calls.
type Renderer struct {
	now         func() time.Time
	fontRegular string
	fontBold    string
	logger      *zap.Logger
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithClock overrides the source of the footer timestamp.
func WithClock(now func() time.Time) Option {
	return func(r *Renderer) { r.now = now }
}

// WithUTF8Font embeds TrueType fonts so non-Latin scripts render. bold may be
// empty, in which case titles use the regular face.
func WithUTF8Font(regular, bold string) Option {
	return func(r *Renderer) {
		r.fontRegular = regular
		r.fontBold = bold
	}
}

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(r *Renderer) { r.logger = l }
}

// NewRenderer creates a Renderer.
func NewRenderer(opts ...Option) *Renderer {
	r := &Renderer{now: time.Now, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Render lays out data and writes the PDF to destination.
func (r *Renderer) Render(data Data, destination string) error {
	doc, err := Build(data, r.now())
	if err != nil {
		return err
	}
	if err := r.write(doc, destination); err != nil {
		return &RenderError{Path: destination, Err: err}
	}
	r.logger.Info("rendered recipe document",
		zap.String("path", destination),
		zap.Int("sections", len(doc.Sections)),
		zap.Bool("rtl", doc.RTL))
	return nil
}

type fontSet struct {
	family string
	bold   string
	italic string
	tr     func(string) string
}

// fonts registers the configured faces. Font files are read here rather than
// through AddUTF8Font, which resolves every path against fpdf's font directory.
func (r *Renderer) fonts(pdf *fpdf.Fpdf) (fontSet, error) {
	if r.fontRegular == "" {
		return fontSet{family: "Helvetica", bold: "B", italic: "I", tr: pdf.UnicodeTranslatorFromDescriptor("")}, nil
	}
	regular, err := os.ReadFile(r.fontRegular)
	if err != nil {
		return fontSet{}, fmt.Errorf("failed to read font: %w", err)
	}
	pdf.AddUTF8FontFromBytes(utf8Family, "", regular)
	fs := fontSet{family: utf8Family, tr: func(s string) string { return s }}
	if r.fontBold != "" {
		bold, err := os.ReadFile(r.fontBold)
		if err != nil {
			return fontSet{}, fmt.Errorf("failed to read bold font: %w", err)
		}
		pdf.AddUTF8FontFromBytes(utf8Family, "B", bold)
		fs.bold = "B"
	}
	return fs, pdf.Error()
}

func (r *Renderer) write(doc *Document, destination string) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(true, pageMargin)
	fs, err := r.fonts(pdf)
	if err != nil {
		return err
	}

	align := "L"
	if doc.RTL {
		pdf.RTL()
		align = "R"
	}

	pdf.AddPage()
	pdf.SetFont(fs.family, fs.bold, 18)
	pdf.MultiCell(0, 10, fs.tr(doc.Title), "", "C", false)
	pdf.Ln(10)

	for _, s := range doc.Sections {
		if s.Title != "" {
			pdf.SetFont(fs.family, fs.bold, 14)
			pdf.MultiCell(0, 10, fs.tr(s.Title), "", align, false)
		}
		if s.Body != "" {
			pdf.SetFont(fs.family, "", 12)
			pdf.MultiCell(0, 8, fs.tr(s.Body), "", align, false)
		}
		pdf.Ln(5)
	}

	// The footer sits below the page-break trigger, so breaking must be off
	// while it is drawn or it would land alone on a fresh page.
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetY(-footerOffset)
	pdf.SetFont(fs.family, fs.italic, 8)
	pdf.CellFormat(0, 10, fs.tr(doc.Footer), "", 0, "C", false, 0, "")

	return pdf.OutputFileAndClose(destination)
}
