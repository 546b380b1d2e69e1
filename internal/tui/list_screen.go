package tui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/pureline/invoicer/internal/app"
	"github.com/pureline/invoicer/internal/domain"
)

// ListModel is the catalog view: every invoice in collection order with
// its computed total. It signals view/edit/delete intents to the shell;
// deletion itself happens here only after an explicit confirmation.
type ListModel struct {
	app      *app.App
	invoices []*domain.Invoice
	cursor   int
	loading  bool
	err      error

	statusMsg string

	// Pending delete confirmation for the invoice under the cursor
	confirmDelete bool
}

type listDataMsg struct {
	invoices []*domain.Invoice
	err      error
}

type deleteDoneMsg struct {
	number string
	err    error
}

// NewListModel creates the list view
func NewListModel(a *app.App) *ListModel {
	return &ListModel{
		app:     a,
		loading: true,
	}
}

func (m *ListModel) Init() tea.Cmd {
	return m.loadInvoices()
}

// Refresh reloads the collection, showing an optional status line
func (m *ListModel) Refresh(status string) tea.Cmd {
	m.loading = true
	m.statusMsg = status
	m.confirmDelete = false
	return m.loadInvoices()
}

func (m *ListModel) loadInvoices() tea.Cmd {
	return func() tea.Msg {
		invoices, err := m.app.Invoices.List(context.Background())
		return listDataMsg{invoices: invoices, err: err}
	}
}

func (m *ListModel) deleteInvoice(inv *domain.Invoice) tea.Cmd {
	return func() tea.Msg {
		err := m.app.Invoices.Remove(context.Background(), inv.ID)
		return deleteDoneMsg{number: inv.InvoiceNumber, err: err}
	}
}

func (m *ListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case listDataMsg:
		m.loading = false
		m.err = msg.err
		if msg.err == nil {
			m.invoices = msg.invoices
			if m.cursor >= len(m.invoices) {
				m.cursor = max(0, len(m.invoices)-1)
			}
		}
		return m, nil

	case deleteDoneMsg:
		if msg.err != nil {
			// A failed write must not look like success
			m.err = fmt.Errorf("delete failed, data unchanged: %w", msg.err)
			return m, nil
		}
		return m, m.Refresh(fmt.Sprintf("Deleted %s", msg.number))

	case tea.KeyMsg:
		if m.loading {
			return m, nil
		}
		return m.handleKey(msg)
	}

	return m, nil
}

func (m *ListModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// A pending delete blocks everything until answered
	if m.confirmDelete {
		switch msg.String() {
		case "y", "Y":
			m.confirmDelete = false
			return m, m.deleteInvoice(m.invoices[m.cursor])
		default:
			// Any other key cancels; the collection stays unchanged
			m.confirmDelete = false
			return m, nil
		}
	}

	m.statusMsg = ""
	m.err = nil

	switch {
	case key.Matches(msg, DefaultKeyMap.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, DefaultKeyMap.Down):
		if m.cursor < len(m.invoices)-1 {
			m.cursor++
		}
	case key.Matches(msg, DefaultKeyMap.New):
		return m, func() tea.Msg { return OpenFormMsg{} }
	case key.Matches(msg, DefaultKeyMap.Select):
		if len(m.invoices) > 0 {
			inv := m.invoices[m.cursor]
			return m, func() tea.Msg { return OpenPreviewMsg{Invoice: inv} }
		}
	case key.Matches(msg, DefaultKeyMap.Edit):
		if len(m.invoices) > 0 {
			inv := m.invoices[m.cursor]
			return m, func() tea.Msg { return OpenFormMsg{Invoice: inv} }
		}
	case key.Matches(msg, DefaultKeyMap.Delete):
		if len(m.invoices) > 0 {
			m.confirmDelete = true
		}
	}

	return m, nil
}

func (m *ListModel) View() string {
	if m.loading {
		return "Loading..."
	}

	currency := m.app.Config.Invoice.CurrencySymbol

	var s string
	s += titleStyle.Render("Invoices") + "\n\n"

	if m.statusMsg != "" {
		s += lipgloss.NewStyle().Foreground(successColor).
			Render("  "+m.statusMsg) + "\n\n"
	}

	if m.err != nil {
		s += lipgloss.NewStyle().Foreground(errorColor).
			Render(fmt.Sprintf("  Error: %v", m.err)) + "\n\n"
	}

	if len(m.invoices) == 0 && m.err == nil {
		s += subtitleStyle.Render("  No invoices yet") + "\n"
		s += subtitleStyle.Render("  Press 'n' to create your first invoice") + "\n"
		return s
	}

	// Header
	s += subtitleStyle.Render(fmt.Sprintf(
		"  %-18s  %-24s  %-12s  %-12s  %12s",
		"Invoice #", "Client", "Date", "Due Date", "Total",
	)) + "\n"

	for i, inv := range m.invoices {
		row := fmt.Sprintf("  %-18s  %-24s  %-12s  %-12s  %12s",
			truncateStr(inv.InvoiceNumber, 18),
			truncateStr(inv.ClientName, 24),
			inv.Date,
			inv.DueDate,
			formatMoney(currency, inv.Total()),
		)

		if i == m.cursor {
			s += selectedStyle.Render(row) + "\n"
		} else {
			s += row + "\n"
		}
	}

	if m.confirmDelete && len(m.invoices) > 0 {
		s += "\n" + lipgloss.NewStyle().Foreground(warningColor).Render(fmt.Sprintf(
			"  Are you sure you want to delete invoice %s? [y/N]",
			m.invoices[m.cursor].InvoiceNumber,
		)) + "\n"
	}

	s += "\n" + helpStyle.Render("  j/k: navigate  enter: view  n: new  e: edit  d: delete")

	return s
}
