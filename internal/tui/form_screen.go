package tui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/pureline/invoicer/internal/app"
	"github.com/pureline/invoicer/internal/domain"
	"github.com/pureline/invoicer/internal/editor"
)

// fixed form field indices; item inputs follow after these
const (
	fieldInvoiceNumber = iota
	fieldDate
	fieldDueDate
	fieldClientName
	fieldClientEmail
	fieldClientPhone
	fieldClientAddress
	fieldTransport
	fieldLabour
	fieldNotes
	fixedFieldCount
)

const itemInputCount = 3 // description, quantity, unit price

var fieldLabels = [fixedFieldCount]string{
	"Invoice Number:",
	"Invoice Date:",
	"Due Date:",
	"Client Name:",
	"Client Email:",
	"Client Phone:",
	"Client Address:",
	"Transport Cost:",
	"Labour Cost:",
	"Notes:",
}

// itemInputs holds the editable inputs for one line item
type itemInputs struct {
	desc  textinput.Model
	qty   textinput.Model
	price textinput.Model
}

// FormModel materializes a draft invoice into editable fields, including
// the dynamic line-item list. The draft lives only in memory; nothing is
// persisted until an explicit submit, and cancel discards everything.
type FormModel struct {
	app   *app.App
	draft *editor.Draft

	fields []textinput.Model
	items  []itemInputs
	focus  int

	err error
}

type formSavedMsg struct {
	number string
	err    error
}

// NewFormModel starts the editor: create state when inv is nil, edit state
// (deep-copied draft) otherwise
func NewFormModel(a *app.App, inv *domain.Invoice) *FormModel {
	var draft *editor.Draft
	if inv == nil {
		draft = editor.New(a.Config.Company, a.Config.Invoice.DefaultDueDays)
	} else {
		draft = editor.Edit(inv)
	}

	m := &FormModel{app: a, draft: draft}
	m.initInputs()
	return m
}

// IsCapturingInput is always true: the form owns the keyboard
func (m *FormModel) IsCapturingInput() bool {
	return true
}

func (m *FormModel) Init() tea.Cmd {
	return m.focusCurrent()
}

func (m *FormModel) initInputs() {
	inv := m.draft.Invoice()

	m.fields = make([]textinput.Model, fixedFieldCount)
	for i := range m.fields {
		m.fields[i] = textinput.New()
		m.fields[i].CharLimit = 200
		m.fields[i].Width = 40
	}

	m.fields[fieldInvoiceNumber].SetValue(inv.InvoiceNumber)
	m.fields[fieldDate].SetValue(inv.Date)
	m.fields[fieldDate].Placeholder = domain.DateLayout
	m.fields[fieldDueDate].SetValue(inv.DueDate)
	m.fields[fieldDueDate].Placeholder = domain.DateLayout
	m.fields[fieldClientName].SetValue(inv.ClientName)
	m.fields[fieldClientName].Placeholder = "Client name"
	m.fields[fieldClientEmail].SetValue(inv.ClientEmail)
	m.fields[fieldClientEmail].Placeholder = "email@example.com"
	m.fields[fieldClientPhone].SetValue(inv.ClientPhone)
	m.fields[fieldClientPhone].Placeholder = "+234..."
	m.fields[fieldClientAddress].SetValue(inv.ClientAddress)
	m.fields[fieldTransport].SetValue(formatCost(inv.TransportCost))
	m.fields[fieldTransport].Placeholder = "0.00"
	m.fields[fieldTransport].Width = 15
	m.fields[fieldLabour].SetValue(formatCost(inv.LabourCost))
	m.fields[fieldLabour].Placeholder = "0.00"
	m.fields[fieldLabour].Width = 15
	m.fields[fieldNotes].SetValue(inv.Notes)
	m.fields[fieldNotes].Placeholder = "Add any notes or terms..."
	m.fields[fieldNotes].Width = 60

	m.items = make([]itemInputs, len(inv.Items))
	for i, it := range inv.Items {
		m.items[i] = newItemInputs(it)
	}

	m.focus = fieldInvoiceNumber
}

func newItemInputs(it domain.InvoiceItem) itemInputs {
	var in itemInputs

	in.desc = textinput.New()
	in.desc.Placeholder = "Item description"
	in.desc.CharLimit = 200
	in.desc.Width = 30
	in.desc.SetValue(it.Description)

	in.qty = textinput.New()
	in.qty.Placeholder = "1"
	in.qty.CharLimit = 10
	in.qty.Width = 8
	in.qty.SetValue(formatCost(it.Quantity))

	in.price = textinput.New()
	in.price.Placeholder = "0.00"
	in.price.CharLimit = 12
	in.price.Width = 12
	in.price.SetValue(formatCost(it.UnitPrice))

	return in
}

// formatCost renders a numeric field value, leaving zero blank-friendly
func formatCost(v float64) string {
	if v == 0 {
		return "0"
	}
	s := fmt.Sprintf("%.2f", v)
	return s
}

// fieldCount is the total number of focusable inputs
func (m *FormModel) fieldCount() int {
	return fixedFieldCount + itemInputCount*len(m.items)
}

// input returns the focusable input at index i
func (m *FormModel) input(i int) *textinput.Model {
	if i < fixedFieldCount {
		return &m.fields[i]
	}
	rel := i - fixedFieldCount
	item := &m.items[rel/itemInputCount]
	switch rel % itemInputCount {
	case 0:
		return &item.desc
	case 1:
		return &item.qty
	default:
		return &item.price
	}
}

func (m *FormModel) focusCurrent() tea.Cmd {
	return m.input(m.focus).Focus()
}

func (m *FormModel) moveFocus(delta int) tea.Cmd {
	m.input(m.focus).Blur()
	n := m.fieldCount()
	m.focus = (m.focus + delta + n) % n
	return m.focusCurrent()
}

// focusedItemIndex returns the line-item index under focus, or -1
func (m *FormModel) focusedItemIndex() int {
	if m.focus < fixedFieldCount {
		return -1
	}
	return (m.focus - fixedFieldCount) / itemInputCount
}

func (m *FormModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case formSavedMsg:
		if msg.err != nil {
			// Surface write failures; the draft stays editable so
			// nothing is silently lost
			m.err = fmt.Errorf("save failed, draft kept: %w", msg.err)
			return m, nil
		}
		return m, func() tea.Msg {
			return BackToListMsg{Status: fmt.Sprintf("Saved %s", msg.number)}
		}

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			// Cancel: discard the draft with no persistence side effect
			return m, func() tea.Msg { return BackToListMsg{} }

		case "tab", "down":
			return m, m.moveFocus(1)

		case "shift+tab", "up":
			return m, m.moveFocus(-1)

		case "enter":
			if m.focus == m.fieldCount()-1 {
				return m, m.submit()
			}
			return m, m.moveFocus(1)

		case "ctrl+s":
			return m, m.submit()

		case "ctrl+a":
			return m, m.addItem()

		case "ctrl+r":
			return m, m.removeFocusedItem()
		}
	}

	// Update the focused text input
	var cmd tea.Cmd
	in := m.input(m.focus)
	*in, cmd = in.Update(msg)
	return m, cmd
}

// addItem appends a blank line item and focuses its description
func (m *FormModel) addItem() tea.Cmd {
	m.draft.AddItem()
	inv := m.draft.Invoice()
	m.items = append(m.items, newItemInputs(inv.Items[len(inv.Items)-1]))

	m.input(m.focus).Blur()
	m.focus = fixedFieldCount + itemInputCount*(len(m.items)-1)
	return m.focusCurrent()
}

// removeFocusedItem removes the line item under the cursor. Removing the
// last remaining item is allowed and leaves the item list empty.
func (m *FormModel) removeFocusedItem() tea.Cmd {
	idx := m.focusedItemIndex()
	if idx < 0 {
		return nil
	}

	m.input(m.focus).Blur()
	m.draft.RemoveItem(m.draft.Invoice().Items[idx].ID)
	m.items = append(m.items[:idx], m.items[idx+1:]...)

	if m.focus >= m.fieldCount() {
		m.focus = m.fieldCount() - 1
	}
	return m.focusCurrent()
}

// flush copies every input value into the draft, coercing numeric fields
// through parse-or-zero
func (m *FormModel) flush() {
	inv := m.draft.Invoice()

	inv.InvoiceNumber = m.fields[fieldInvoiceNumber].Value()
	inv.Date = m.fields[fieldDate].Value()
	inv.DueDate = m.fields[fieldDueDate].Value()
	inv.ClientName = m.fields[fieldClientName].Value()
	inv.ClientEmail = m.fields[fieldClientEmail].Value()
	inv.ClientPhone = m.fields[fieldClientPhone].Value()
	inv.ClientAddress = m.fields[fieldClientAddress].Value()
	inv.Notes = m.fields[fieldNotes].Value()

	m.draft.SetTransportCost(m.fields[fieldTransport].Value())
	m.draft.SetLabourCost(m.fields[fieldLabour].Value())

	for i, it := range inv.Items {
		m.draft.SetItemDescription(it.ID, m.items[i].desc.Value())
		m.draft.SetItemQuantity(it.ID, m.items[i].qty.Value())
		m.draft.SetItemUnitPrice(it.ID, m.items[i].price.Value())
	}
}

func (m *FormModel) submit() tea.Cmd {
	m.flush()

	inv, err := m.draft.Submit()
	if err != nil {
		m.err = err
		return nil
	}

	isEdit := m.draft.IsEdit()
	return func() tea.Msg {
		ctx := context.Background()
		if isEdit {
			if err := m.app.Invoices.Update(ctx, inv.ID, inv); err != nil {
				return formSavedMsg{err: err}
			}
		} else {
			if err := m.app.Invoices.Add(ctx, inv); err != nil {
				return formSavedMsg{err: err}
			}
		}
		return formSavedMsg{number: inv.InvoiceNumber}
	}
}

func (m *FormModel) View() string {
	inv := m.draft.Invoice()
	currency := m.app.Config.Invoice.CurrencySymbol

	var s string
	if m.draft.IsEdit() {
		s += titleStyle.Render("Edit Invoice") + "\n\n"
	} else {
		s += titleStyle.Render("Create New Invoice") + "\n\n"
	}

	// Company block is display-only; change it in Settings
	s += subtitleStyle.Render("  From (read-only):") + "\n"
	s += fmt.Sprintf("    %s  |  %s  |  %s\n", inv.CompanyName, inv.CompanyEmail, inv.CompanyPhone)
	s += subtitleStyle.Render("    "+inv.CompanyAddress) + "\n\n"

	for i := 0; i < fixedFieldCount; i++ {
		s += m.renderField(i, fieldLabels[i])
	}

	// Line items
	s += titleStyle.Render("  Line Items") + "\n"
	if len(m.items) == 0 {
		s += subtitleStyle.Render("    (no items)") + "\n"
	}
	for i := range m.items {
		base := fixedFieldCount + itemInputCount*i
		amount := domain.ParseAmount(m.items[i].qty.Value()) * domain.ParseAmount(m.items[i].price.Value())

		s += fmt.Sprintf("  %s %s x %s = %s\n",
			m.renderItemInput(base, &m.items[i].desc),
			m.renderItemInput(base+1, &m.items[i].qty),
			m.renderItemInput(base+2, &m.items[i].price),
			formatMoney(currency, amount),
		)
	}
	s += "\n"

	// Live totals from the current inputs
	subtotal := 0.0
	for i := range m.items {
		subtotal += domain.ParseAmount(m.items[i].qty.Value()) * domain.ParseAmount(m.items[i].price.Value())
	}
	transport := domain.ParseAmount(m.fields[fieldTransport].Value())
	labour := domain.ParseAmount(m.fields[fieldLabour].Value())
	s += subtitleStyle.Render(fmt.Sprintf("  Subtotal: %s", formatMoney(currency, subtotal))) + "\n"
	s += totalStyle.Render(fmt.Sprintf("  Total:    %s", formatMoney(currency, subtotal+transport+labour))) + "\n"

	if m.err != nil {
		s += "\n" + lipgloss.NewStyle().Foreground(errorColor).
			Render(fmt.Sprintf("  Error: %v", m.err)) + "\n"
	}

	s += "\n" + helpStyle.Render("  tab: next field  ctrl+a: add item  ctrl+r: remove item  ctrl+s: save  esc: cancel")

	return s
}

func (m *FormModel) renderField(i int, label string) string {
	indicator := "  "
	labelStyle := subtitleStyle
	if i == m.focus {
		indicator = "> "
		labelStyle = lipgloss.NewStyle().Bold(true).Foreground(primaryColor)
	}
	return fmt.Sprintf("%s%s %s\n", indicator, labelStyle.Render(fmt.Sprintf("%-16s", label)), m.fields[i].View())
}

func (m *FormModel) renderItemInput(index int, in *textinput.Model) string {
	if index == m.focus {
		return selectedStyle.Render(" ") + in.View()
	}
	return " " + in.View()
}
