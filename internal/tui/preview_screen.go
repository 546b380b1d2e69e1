package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/pureline/invoicer/internal/app"
	"github.com/pureline/invoicer/internal/domain"
	"github.com/pureline/invoicer/internal/render"
)

// PreviewModel shows the formatted document for one invoice and offers
// PDF export. Export runs off the update loop; a failure is reported
// without leaving the preview.
type PreviewModel struct {
	app     *app.App
	invoice *domain.Invoice
	lines   []string
	offset  int

	exporting bool
	status    string
	err       error
}

type exportDoneMsg struct {
	path string
	err  error
}

// NewPreviewModel renders the invoice document once up front
func NewPreviewModel(a *app.App, inv *domain.Invoice) *PreviewModel {
	doc := render.Document(inv, a.Config.Invoice.CurrencySymbol)
	return &PreviewModel{
		app:     a,
		invoice: inv,
		lines:   strings.Split(doc, "\n"),
	}
}

func (m *PreviewModel) Init() tea.Cmd {
	return nil
}

func (m *PreviewModel) exportPDF() tea.Cmd {
	inv := m.invoice
	exporter := m.app.Exporter
	return func() tea.Msg {
		path, err := exporter.Export(inv, "")
		return exportDoneMsg{path: path, err: err}
	}
}

func (m *PreviewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case exportDoneMsg:
		m.exporting = false
		if msg.err != nil {
			m.err = fmt.Errorf("export failed: %w", msg.err)
			return m, nil
		}
		m.err = nil
		m.status = fmt.Sprintf("Exported to %s", msg.path)
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, DefaultKeyMap.Back):
			return m, func() tea.Msg { return BackToListMsg{} }
		case key.Matches(msg, DefaultKeyMap.Export):
			if !m.exporting {
				m.exporting = true
				m.status = ""
				m.err = nil
				return m, m.exportPDF()
			}
		case key.Matches(msg, DefaultKeyMap.Up):
			if m.offset > 0 {
				m.offset--
			}
		case key.Matches(msg, DefaultKeyMap.Down):
			if m.offset < max(0, len(m.lines)-1) {
				m.offset++
			}
		case msg.String() == "g":
			m.offset = 0
		}
	}

	return m, nil
}

func (m *PreviewModel) View() string {
	var s string
	s += titleStyle.Render(fmt.Sprintf("Invoice %s", m.invoice.InvoiceNumber)) + "\n\n"

	visible := m.lines[m.offset:]
	s += strings.Join(visible, "\n") + "\n"

	if m.exporting {
		s += "\n" + subtitleStyle.Render("  Exporting...") + "\n"
	}
	if m.status != "" {
		s += "\n" + lipgloss.NewStyle().Foreground(successColor).
			Render("  "+m.status) + "\n"
	}
	if m.err != nil {
		s += "\n" + lipgloss.NewStyle().Foreground(errorColor).
			Render(fmt.Sprintf("  Error: %v", m.err)) + "\n"
	}

	s += "\n" + helpStyle.Render("  j/k: scroll  x: export PDF  esc: back")

	return s
}
