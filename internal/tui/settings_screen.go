package tui

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/pureline/invoicer/internal/app"
)

type settingsMode int

const (
	settingsModeView settingsMode = iota
	settingsModeEdit
)

// settings form field indices
const (
	settingsFieldOutputDir = iota
	settingsFieldDueDays
	settingsFieldCurrency
	settingsFieldCompanyName
	settingsFieldCompanyEmail
	settingsFieldCompanyPhone
	settingsFieldCompanyAddress
	settingsFieldCount
)

type settingsSavedMsg struct {
	err error
}

// SettingsModel manages the settings screen: export and invoice defaults
// plus the company profile stamped onto new invoices
type SettingsModel struct {
	app        *app.App
	mode       settingsMode
	fields     []textinput.Model
	fieldFocus int
	err        error
	statusMsg  string
}

// NewSettingsModel creates a new settings screen
func NewSettingsModel(a *app.App) *SettingsModel {
	return &SettingsModel{
		app:  a,
		mode: settingsModeView,
	}
}

// IsCapturingInput returns true when the edit form is active
func (m *SettingsModel) IsCapturingInput() bool {
	return m.mode == settingsModeEdit
}

func (m *SettingsModel) Init() tea.Cmd {
	return nil
}

func (m *SettingsModel) initForm() {
	m.fields = make([]textinput.Model, settingsFieldCount)
	cfg := m.app.Config

	m.fields[settingsFieldOutputDir] = textinput.New()
	m.fields[settingsFieldOutputDir].Placeholder = "/path/to/exports"
	m.fields[settingsFieldOutputDir].CharLimit = 256
	m.fields[settingsFieldOutputDir].Width = 60
	m.fields[settingsFieldOutputDir].SetValue(cfg.Invoice.OutputDir)

	m.fields[settingsFieldDueDays] = textinput.New()
	m.fields[settingsFieldDueDays].Placeholder = "30"
	m.fields[settingsFieldDueDays].CharLimit = 5
	m.fields[settingsFieldDueDays].Width = 10
	m.fields[settingsFieldDueDays].SetValue(strconv.Itoa(cfg.Invoice.DefaultDueDays))

	m.fields[settingsFieldCurrency] = textinput.New()
	m.fields[settingsFieldCurrency].Placeholder = "₦"
	m.fields[settingsFieldCurrency].CharLimit = 5
	m.fields[settingsFieldCurrency].Width = 10
	m.fields[settingsFieldCurrency].SetValue(cfg.Invoice.CurrencySymbol)

	m.fields[settingsFieldCompanyName] = textinput.New()
	m.fields[settingsFieldCompanyName].Placeholder = "Company name"
	m.fields[settingsFieldCompanyName].CharLimit = 100
	m.fields[settingsFieldCompanyName].Width = 40
	m.fields[settingsFieldCompanyName].SetValue(cfg.Company.Name)

	m.fields[settingsFieldCompanyEmail] = textinput.New()
	m.fields[settingsFieldCompanyEmail].Placeholder = "email@example.com"
	m.fields[settingsFieldCompanyEmail].CharLimit = 100
	m.fields[settingsFieldCompanyEmail].Width = 40
	m.fields[settingsFieldCompanyEmail].SetValue(cfg.Company.Email)

	m.fields[settingsFieldCompanyPhone] = textinput.New()
	m.fields[settingsFieldCompanyPhone].Placeholder = "+234..."
	m.fields[settingsFieldCompanyPhone].CharLimit = 40
	m.fields[settingsFieldCompanyPhone].Width = 30
	m.fields[settingsFieldCompanyPhone].SetValue(cfg.Company.Phone)

	m.fields[settingsFieldCompanyAddress] = textinput.New()
	m.fields[settingsFieldCompanyAddress].Placeholder = "Street, City, State"
	m.fields[settingsFieldCompanyAddress].CharLimit = 200
	m.fields[settingsFieldCompanyAddress].Width = 60
	m.fields[settingsFieldCompanyAddress].SetValue(cfg.Company.Address)

	m.fieldFocus = settingsFieldOutputDir
	m.fields[settingsFieldOutputDir].Focus()
}

func (m *SettingsModel) saveSettings() tea.Cmd {
	return func() tea.Msg {
		outputDir := m.fields[settingsFieldOutputDir].Value()
		dueDaysStr := m.fields[settingsFieldDueDays].Value()
		currency := m.fields[settingsFieldCurrency].Value()

		if outputDir == "" {
			return settingsSavedMsg{err: fmt.Errorf("output directory is required")}
		}
		if currency == "" {
			return settingsSavedMsg{err: fmt.Errorf("currency symbol is required")}
		}

		dueDays, err := strconv.Atoi(dueDaysStr)
		if err != nil || dueDays <= 0 {
			return settingsSavedMsg{err: fmt.Errorf("due days must be a positive number")}
		}

		m.app.Config.Invoice.OutputDir = outputDir
		m.app.Config.Invoice.DefaultDueDays = dueDays
		m.app.Config.Invoice.CurrencySymbol = currency
		m.app.Config.Company.Name = m.fields[settingsFieldCompanyName].Value()
		m.app.Config.Company.Email = m.fields[settingsFieldCompanyEmail].Value()
		m.app.Config.Company.Phone = m.fields[settingsFieldCompanyPhone].Value()
		m.app.Config.Company.Address = m.fields[settingsFieldCompanyAddress].Value()

		if err := m.app.SaveConfig(); err != nil {
			return settingsSavedMsg{err: fmt.Errorf("failed to save config: %w", err)}
		}

		// Keep the exporter in step with the new defaults
		m.app.Exporter.OutputDir = outputDir
		m.app.Exporter.Currency = currency

		return settingsSavedMsg{}
	}
}

func (m *SettingsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.mode == settingsModeEdit {
		return m.updateForm(msg)
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		m.err = nil
		switch msg.String() {
		case "esc":
			return m, func() tea.Msg { return BackToListMsg{} }
		case "enter":
			m.mode = settingsModeEdit
			m.statusMsg = ""
			m.initForm()
			return m, m.fields[m.fieldFocus].Focus()
		}
	}

	return m, nil
}

func (m *SettingsModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case settingsSavedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.mode = settingsModeView
		m.statusMsg = "Settings saved"
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			m.mode = settingsModeView
			m.err = nil
			return m, nil

		case "tab", "down":
			m.fields[m.fieldFocus].Blur()
			m.fieldFocus = (m.fieldFocus + 1) % settingsFieldCount
			return m, m.fields[m.fieldFocus].Focus()

		case "shift+tab", "up":
			m.fields[m.fieldFocus].Blur()
			m.fieldFocus = (m.fieldFocus - 1 + settingsFieldCount) % settingsFieldCount
			return m, m.fields[m.fieldFocus].Focus()

		case "enter":
			if m.fieldFocus == settingsFieldCount-1 {
				return m, m.saveSettings()
			}
			m.fields[m.fieldFocus].Blur()
			m.fieldFocus++
			return m, m.fields[m.fieldFocus].Focus()

		case "ctrl+s":
			return m, m.saveSettings()
		}
	}

	// Update the focused text input
	var cmd tea.Cmd
	m.fields[m.fieldFocus], cmd = m.fields[m.fieldFocus].Update(msg)
	return m, cmd
}

func (m *SettingsModel) View() string {
	if m.mode == settingsModeEdit {
		return m.viewForm()
	}
	return m.viewSettings()
}

func (m *SettingsModel) viewSettings() string {
	var s string
	s += titleStyle.Render("Settings") + "\n\n"

	if m.statusMsg != "" {
		s += lipgloss.NewStyle().Foreground(successColor).
			Render("  "+m.statusMsg) + "\n\n"
	}

	cfg := m.app.Config

	labelStyle := lipgloss.NewStyle().Bold(true).Width(22)
	valueStyle := lipgloss.NewStyle().Foreground(primaryColor)

	s += subtitleStyle.Render("  Invoice Defaults") + "\n\n"
	s += fmt.Sprintf("  %s %s\n", labelStyle.Render("Output Directory:"), valueStyle.Render(cfg.Invoice.OutputDir))
	s += fmt.Sprintf("  %s %s\n", labelStyle.Render("Default Due Days:"), valueStyle.Render(strconv.Itoa(cfg.Invoice.DefaultDueDays)))
	s += fmt.Sprintf("  %s %s\n", labelStyle.Render("Currency Symbol:"), valueStyle.Render(cfg.Invoice.CurrencySymbol))

	s += "\n" + subtitleStyle.Render("  Company Profile") + "\n\n"
	s += fmt.Sprintf("  %s %s\n", labelStyle.Render("Name:"), valueStyle.Render(cfg.Company.Name))
	s += fmt.Sprintf("  %s %s\n", labelStyle.Render("Email:"), valueStyle.Render(cfg.Company.Email))
	s += fmt.Sprintf("  %s %s\n", labelStyle.Render("Phone:"), valueStyle.Render(cfg.Company.Phone))
	s += fmt.Sprintf("  %s %s\n", labelStyle.Render("Address:"), valueStyle.Render(cfg.Company.Address))

	s += "\n" + helpStyle.Render("  enter: edit settings  esc: back")

	return s
}

func (m *SettingsModel) viewForm() string {
	var s string
	s += titleStyle.Render("Edit Settings") + "\n\n"

	labels := []string{
		"Output Directory:",
		"Default Due Days:",
		"Currency Symbol:",
		"Company Name:",
		"Company Email:",
		"Company Phone:",
		"Company Address:",
	}
	for i, label := range labels {
		indicator := "  "
		labelStyle := subtitleStyle
		if i == m.fieldFocus {
			indicator = "> "
			labelStyle = lipgloss.NewStyle().Bold(true).Foreground(primaryColor)
		}
		s += fmt.Sprintf("%s%s\n  %s\n\n", indicator, labelStyle.Render(label), m.fields[i].View())
	}

	if m.err != nil {
		s += lipgloss.NewStyle().Foreground(errorColor).
			Render(fmt.Sprintf("  Error: %v", m.err)) + "\n\n"
	}

	s += helpStyle.Render("  tab/shift+tab: navigate fields  ctrl+s: save  enter: next/save  esc: cancel")

	return s
}
