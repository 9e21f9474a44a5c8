package extract

import (
	"log"
	"path/filepath"
	"strings"
)

// OCREngine recognizes text in a single image file. Engines return plain
// text lines joined by newlines.
type OCREngine interface {
	Recognize(imagePath, lang string) (string, error)
}

// PDFTextExtractor pulls the text layer out of a PDF.
type PDFTextExtractor interface {
	ExtractText(path string) (string, error)
}

// PageImager renders or extracts per-page images from a PDF so scanned
// documents can be run through OCR.
type PageImager interface {
	ExtractPageImages(path string) (paths []string, cleanup func(), err error)
}

// Extractor turns an uploaded report file into raw text. Every failure mode
// below a total loss of text is recoverable: engine errors trigger the
// fallback engine, and an unreadable file yields an empty string rather
// than an error.
type Extractor struct {
	pdfText   PDFTextExtractor
	imager    PageImager
	primary   OCREngine
	secondary OCREngine
}

// New builds the production extractor: layout text first, Tesseract-backed
// OCR engines behind it.
func New() *Extractor {
	return &Extractor{
		pdfText:   &LayoutTextExtractor{},
		imager:    &PDFPageImager{},
		primary:   &GosseractEngine{},
		secondary: &TesseractCLIEngine{},
	}
}

// NewWithBackends builds an extractor over explicit backends, for tests and
// alternative engine wiring.
func NewWithBackends(pdfText PDFTextExtractor, imager PageImager, primary, secondary OCREngine) *Extractor {
	return &Extractor{pdfText: pdfText, imager: imager, primary: primary, secondary: secondary}
}

// Extract produces raw text from a PDF or image file. For PDFs the text
// layer is used when present; whitespace-only output means the document is
// scanned, and each page is reprocessed as an image through OCR with the
// given language hint. For images the primary engine runs first and the
// secondary engine covers any failure. Returns "" when no text is
// recoverable.
func (e *Extractor) Extract(path, lang string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf":
		return e.extractPDF(path, lang)
	case ".jpg", ".jpeg", ".png":
		return e.extractImage(path, lang)
	default:
		return ""
	}
}

func (e *Extractor) extractPDF(path, lang string) string {
	text, err := e.pdfText.ExtractText(path)
	if err != nil {
		log.Printf("pdf text extraction failed for %s: %v", path, err)
		text = ""
	}
	if strings.TrimSpace(text) != "" {
		return text
	}

	// No text layer: treat as scanned and OCR each page.
	pages, cleanup, err := e.imager.ExtractPageImages(path)
	if err != nil {
		log.Printf("pdf page imaging failed for %s: %v", path, err)
		return ""
	}
	defer cleanup()

	var b strings.Builder
	for _, page := range pages {
		pageText, err := e.primary.Recognize(page, lang)
		if err != nil {
			log.Printf("ocr failed for page %s: %v", page, err)
			continue
		}
		b.WriteString(pageText)
	}
	return b.String()
}

func (e *Extractor) extractImage(path, lang string) string {
	text, err := e.primary.Recognize(path, lang)
	if err == nil {
		return text
	}
	log.Printf("primary ocr engine failed for %s: %v, falling back", path, err)

	text, err = e.secondary.Recognize(path, lang)
	if err != nil {
		log.Printf("secondary ocr engine failed for %s: %v", path, err)
		return ""
	}
	return text
}
