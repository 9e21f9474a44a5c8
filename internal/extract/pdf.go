package extract

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
)

// LayoutTextExtractor reads the text layer of a PDF page by page. Pages
// without extractable text are skipped; scanned documents come back empty
// and are handled by the OCR fallback.
type LayoutTextExtractor struct{}

func (LayoutTextExtractor) ExtractText(path string) (string, error) {
	f, reader, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open pdf: %w", err)
	}
	defer f.Close()

	var b strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			// Image-only or damaged page; nothing to concatenate.
			continue
		}
		b.WriteString(text)
	}
	return b.String(), nil
}

// PDFPageImager extracts the embedded page images of a scanned PDF into a
// temporary directory. For typical scans each page carries exactly one
// full-page image, which is what the OCR fallback needs.
type PDFPageImager struct{}

func (PDFPageImager) ExtractPageImages(path string) ([]string, func(), error) {
	dir, err := os.MkdirTemp("", "report-pages-")
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create page image dir: %w", err)
	}
	cleanup := func() { os.RemoveAll(dir) }

	if err := api.ExtractImagesFile(path, dir, nil, nil); err != nil {
		cleanup()
		return nil, nil, fmt.Errorf("failed to extract page images: %w", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		cleanup()
		return nil, nil, fmt.Errorf("failed to list page images: %w", err)
	}

	var paths []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		paths = append(paths, filepath.Join(dir, entry.Name()))
	}
	sort.Strings(paths)
	return paths, cleanup, nil
}
