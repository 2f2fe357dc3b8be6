package extraction

import (
	"bytes"
	"fmt"
	"image/jpeg"
	"os"
	"path/filepath"

	"github.com/gen2brain/go-fitz"
	"github.com/ledongthuc/pdf"
)

// TextLayerExtractor reads the embedded text layer of a PDF. Scanned PDFs
// without a text layer come back empty, which routes the upload to OCR.
type TextLayerExtractor struct{}

// ExtractText returns the PDF's plain text.
func (TextLayerExtractor) ExtractText(pdfPath string) (string, error) {
	f, r, err := pdf.Open(pdfPath)
	if err != nil {
		return "", fmt.Errorf("open pdf: %w", err)
	}
	defer f.Close()

	reader, err := r.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("read pdf text: %w", err)
	}

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(reader); err != nil {
		return "", fmt.Errorf("read pdf text: %w", err)
	}
	return buf.String(), nil
}

// FitzRasterizer renders PDF pages to JPEG images with MuPDF.
type FitzRasterizer struct{}

// Rasterize writes one JPEG per page into outDir and returns the paths in
// page order.
func (FitzRasterizer) Rasterize(pdfPath, outDir string) ([]string, error) {
	doc, err := fitz.New(pdfPath)
	if err != nil {
		return nil, fmt.Errorf("open pdf for rasterizing: %w", err)
	}
	defer doc.Close()

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return nil, fmt.Errorf("create page directory: %w", err)
	}

	var paths []string
	for i := 0; i < doc.NumPage(); i++ {
		img, err := doc.Image(i)
		if err != nil {
			return nil, fmt.Errorf("render page %d: %w", i+1, err)
		}

		pagePath := filepath.Join(outDir, fmt.Sprintf("page-%03d.jpg", i+1))
		out, err := os.Create(pagePath)
		if err != nil {
			return nil, fmt.Errorf("create page image: %w", err)
		}
		if err := jpeg.Encode(out, img, &jpeg.Options{Quality: 90}); err != nil {
			out.Close()
			return nil, fmt.Errorf("encode page image: %w", err)
		}
		if err := out.Close(); err != nil {
			return nil, fmt.Errorf("close page image: %w", err)
		}
		paths = append(paths, pagePath)
	}
	return paths, nil
}
