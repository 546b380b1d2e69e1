package tui

import (
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/pureline/invoicer/internal/app"
	"github.com/pureline/invoicer/internal/config"
	"github.com/pureline/invoicer/internal/domain"
	"github.com/pureline/invoicer/internal/export"
)

func previewApp(t *testing.T) *app.App {
	t.Helper()
	return &app.App{
		Config:   config.DefaultConfig(),
		Exporter: export.NewPDFExporter(t.TempDir(), "₦"),
	}
}

func previewInvoice() *domain.Invoice {
	return &domain.Invoice{
		ID:            "a1",
		InvoiceNumber: "INV-100",
		Date:          "2026-08-01",
		DueDate:       "2026-08-31",
		ClientName:    "Client",
		Items:         []domain.InvoiceItem{{ID: "i1", Quantity: 1, UnitPrice: 100}},
	}
}

func keyPress(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestPreviewBackKey(t *testing.T) {
	m := NewPreviewModel(previewApp(t), previewInvoice())

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if cmd == nil {
		t.Fatal("esc produced no command")
	}
	if _, ok := cmd().(BackToListMsg); !ok {
		t.Error("esc must return to the list view")
	}
}

func TestPreviewExportKey(t *testing.T) {
	m := NewPreviewModel(previewApp(t), previewInvoice())

	next, cmd := m.Update(keyPress('x'))
	pm := next.(*PreviewModel)
	if !pm.exporting {
		t.Error("x must start an export")
	}
	if cmd == nil {
		t.Fatal("x produced no export command")
	}

	// A second press while one export is pending must not start another
	if _, cmd = pm.Update(keyPress('x')); cmd != nil {
		t.Error("export key while exporting started a second export")
	}
}

func TestPreviewExportFailureState(t *testing.T) {
	m := NewPreviewModel(previewApp(t), previewInvoice())
	m.exporting = true

	next, _ := m.Update(exportDoneMsg{err: errors.New("disk full")})
	pm := next.(*PreviewModel)

	if pm.exporting {
		t.Error("failed export left the pending flag set")
	}
	if pm.err == nil {
		t.Error("failed export must surface a distinct error state")
	}
	if pm.status != "" {
		t.Error("failed export must not show a success status")
	}
}

func TestPreviewScrollKeys(t *testing.T) {
	m := NewPreviewModel(previewApp(t), previewInvoice())

	next, _ := m.Update(keyPress('j'))
	pm := next.(*PreviewModel)
	if pm.offset != 1 {
		t.Errorf("offset after j = %d, want 1", pm.offset)
	}

	next, _ = pm.Update(keyPress('k'))
	pm = next.(*PreviewModel)
	if pm.offset != 0 {
		t.Errorf("offset after k = %d, want 0", pm.offset)
	}

	// Never scrolls above the top
	next, _ = pm.Update(keyPress('k'))
	pm = next.(*PreviewModel)
	if pm.offset != 0 {
		t.Errorf("offset underflowed to %d", pm.offset)
	}
}
