package export

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/pureline/invoicer/internal/domain"
	"github.com/pureline/invoicer/internal/render"
)

func exportFixture() *domain.Invoice {
	return &domain.Invoice{
		ID:            "a1",
		InvoiceNumber: "INV-100",
		Date:          "2026-08-01",
		DueDate:       "2026-08-31",
		ClientName:    "Client",
		Items: []domain.InvoiceItem{
			{ID: "i1", Description: "Design work", Quantity: 2, UnitPrice: 500},
		},
	}
}

func TestPageCount(t *testing.T) {
	tests := []struct {
		heightMM float64
		want     int
	}{
		{0, 1},
		{100, 1},
		{PageHeightMM, 1},
		{PageHeightMM + 0.1, 2},
		{PageHeightMM * 2, 2},
		{PageHeightMM*2 + 1, 3},
	}

	for _, tt := range tests {
		if got := PageCount(tt.heightMM); got != tt.want {
			t.Errorf("PageCount(%v) = %d, want %d", tt.heightMM, got, tt.want)
		}
	}
}

func TestExportWritesNamedArtifact(t *testing.T) {
	dir := t.TempDir()
	e := NewPDFExporter(dir, "₦")

	path, err := e.Export(exportFixture(), "")
	if err != nil {
		t.Fatalf("Export: %v", err)
	}

	if filepath.Base(path) != "INV-100.pdf" {
		t.Errorf("artifact named %q, want INV-100.pdf", filepath.Base(path))
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("artifact missing: %v", err)
	}
	if info.Size() == 0 {
		t.Error("artifact is empty")
	}
}

func TestExportToExplicitDirectory(t *testing.T) {
	dir := t.TempDir()
	other := t.TempDir()
	e := NewPDFExporter(dir, "₦")

	path, err := e.Export(exportFixture(), other)
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	if filepath.Dir(path) != other {
		t.Errorf("exported to %q, want directory %q", path, other)
	}
	if filepath.Base(path) != "INV-100.pdf" {
		t.Errorf("artifact named %q, want INV-100.pdf", filepath.Base(path))
	}
}

func TestExportToExplicitFile(t *testing.T) {
	dir := t.TempDir()
	e := NewPDFExporter(dir, "₦")

	target := filepath.Join(dir, "custom.pdf")
	path, err := e.Export(exportFixture(), target)
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	if path != target {
		t.Errorf("exported to %q, want %q", path, target)
	}
	if _, err := os.Stat(target); err != nil {
		t.Fatalf("artifact missing: %v", err)
	}
}

func TestExportMultiPage(t *testing.T) {
	dir := t.TempDir()
	e := NewPDFExporter(dir, "₦")

	// Enough line items to push the raster past one A4 page
	inv := exportFixture()
	for i := 0; i < 120; i++ {
		inv.Items = append(inv.Items, domain.InvoiceItem{
			ID:          domain.NewID(),
			Description: "filler row",
			Quantity:    1,
			UnitPrice:   1,
		})
	}

	img := render.Raster(inv, "₦")
	imgHeightMM := float64(img.Bounds().Dy()) * PageWidthMM / float64(img.Bounds().Dx())
	wantPages := PageCount(imgHeightMM)
	if wantPages < 2 {
		t.Fatalf("fixture raster fits on %d page(s); it must exceed one page", wantPages)
	}

	path, err := e.Export(inv, "")
	if err != nil {
		t.Fatalf("Export: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("artifact missing: %v", err)
	}

	// Page objects carry /Type /Page; the page tree node adds one
	// /Type /Pages match on top
	gotPages := bytes.Count(data, []byte("/Type /Page")) - 1
	if gotPages != wantPages {
		t.Errorf("artifact has %d pages, want %d", gotPages, wantPages)
	}
}
