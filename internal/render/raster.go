package render

import (
	"image"
	"image/draw"
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/pureline/invoicer/internal/domain"
)

// Raster geometry. Width is fixed regardless of content (A4 at 96 DPI);
// only the height grows with the document.
const (
	RasterWidth = 794
	lineHeight  = 18
	marginX     = 48
	marginY     = 48
)

// Raster renders the invoice document onto a fixed-width white image.
// This raster is what the PDF exporter paginates.
func Raster(inv *domain.Invoice, currency string) *image.RGBA {
	lines := strings.Split(strings.TrimRight(Document(inv, currency), "\n"), "\n")

	height := 2*marginY + len(lines)*lineHeight
	img := image.NewRGBA(image.Rect(0, 0, RasterWidth, height))
	draw.Draw(img, img.Bounds(), image.White, image.Point{}, draw.Src)

	d := &font.Drawer{
		Dst:  img,
		Src:  image.Black,
		Face: basicfont.Face7x13,
	}

	for i, line := range lines {
		d.Dot = fixed.P(marginX, marginY+i*lineHeight)
		d.DrawString(asciiSafe(line))
	}

	return img
}

// asciiSafe substitutes runes Face7x13 has no glyph for. The naira sign
// maps to a plain N so amounts stay legible in the exported pages.
func asciiSafe(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch {
		case r == '₦':
			b.WriteRune('N')
		case r > 0x7e:
			b.WriteRune('?')
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
