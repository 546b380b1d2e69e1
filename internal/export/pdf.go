// Package export turns a rendered invoice into a paginated PDF. Export is
// image-based: the document raster is placed page by page with a vertical
// offset until its height is exhausted. There is no selectable text layer.
package export

import (
	"bytes"
	"fmt"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/jung-kurt/gofpdf"

	"github.com/pureline/invoicer/internal/domain"
	"github.com/pureline/invoicer/internal/render"
)

// A4 portrait, fixed for every page regardless of content
const (
	PageWidthMM  = 210.0
	PageHeightMM = 297.0
)

// PDFExporter writes invoice PDFs into OutputDir unless given an
// explicit path
type PDFExporter struct {
	OutputDir string
	Currency  string
}

// NewPDFExporter creates an exporter
func NewPDFExporter(outputDir, currency string) *PDFExporter {
	return &PDFExporter{OutputDir: outputDir, Currency: currency}
}

// PageCount returns how many fixed-height pages an image of the given
// height (in mm at page width) needs
func PageCount(imgHeightMM float64) int {
	if imgHeightMM <= PageHeightMM {
		return 1
	}
	return int(math.Ceil(imgHeightMM / PageHeightMM))
}

// Export rasterizes the invoice document and tiles it across A4 pages.
// outPath may be empty (OutputDir + <invoiceNumber>.pdf), a directory, or
// a full file path. Returns the path written.
func (e *PDFExporter) Export(inv *domain.Invoice, outPath string) (string, error) {
	path, err := e.resolvePath(inv, outPath)
	if err != nil {
		return "", err
	}

	img := render.Raster(inv, e.Currency)

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", fmt.Errorf("failed to encode raster: %w", err)
	}

	// Scale the raster to full page width; height follows the aspect ratio
	w := float64(img.Bounds().Dx())
	h := float64(img.Bounds().Dy())
	imgHeightMM := h * PageWidthMM / w

	pdf := gofpdf.New("P", "mm", "A4", "")
	opts := gofpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader("invoice", opts, &buf)

	// First page at offset 0, then shift the image up one page height at
	// a time until the remaining height is exhausted
	position := 0.0
	pdf.AddPage()
	pdf.ImageOptions("invoice", 0, position, PageWidthMM, imgHeightMM, false, opts, 0, "")

	heightLeft := imgHeightMM - PageHeightMM
	for heightLeft > 0 {
		position = heightLeft - imgHeightMM
		pdf.AddPage()
		pdf.ImageOptions("invoice", 0, position, PageWidthMM, imgHeightMM, false, opts, 0, "")
		heightLeft -= PageHeightMM
	}

	if err := pdf.OutputFileAndClose(path); err != nil {
		return "", fmt.Errorf("failed to write pdf: %w", err)
	}

	return path, nil
}

// resolvePath picks the output file path. The artifact is always named
// <invoiceNumber>.pdf unless the caller gave a full file path.
func (e *PDFExporter) resolvePath(inv *domain.Invoice, outPath string) (string, error) {
	filename := inv.InvoiceNumber + ".pdf"

	switch {
	case outPath == "":
		outPath = filepath.Join(e.OutputDir, filename)
	case isDir(outPath):
		outPath = filepath.Join(outPath, filename)
	case !strings.HasSuffix(outPath, ".pdf"):
		outPath = filepath.Join(outPath, filename)
	}

	if err := os.MkdirAll(filepath.Dir(outPath), 0755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}
	return outPath, nil
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
