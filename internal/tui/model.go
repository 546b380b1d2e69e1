package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/pureline/invoicer/internal/app"
)

// View is the shell's current view state
type View int

const (
	ViewList View = iota
	ViewEditing
	ViewPreviewing
	ViewSettings
)

// String returns the view name
func (v View) String() string {
	switch v {
	case ViewList:
		return "Invoices"
	case ViewEditing:
		return "Editor"
	case ViewPreviewing:
		return "Preview"
	case ViewSettings:
		return "Settings"
	default:
		return "Unknown"
	}
}

// Model is the root Bubble Tea model: a thin coordinator over the three
// view states (list, editing a draft, previewing a document) plus settings.
type Model struct {
	app         *app.App
	currentView View
	width       int
	height      int

	// View models. The list persists; editor and preview are created on
	// entry and dropped on exit.
	list     *ListModel
	form     *FormModel
	preview  *PreviewModel
	settings *SettingsModel
}

// New creates a new root model
func New(a *app.App) Model {
	return Model{
		app:         a,
		currentView: ViewList,
		list:        NewListModel(a),
	}
}

// Init implements tea.Model
func (m Model) Init() tea.Cmd {
	return m.list.Init()
}

// InputCapturer is implemented by views that capture keyboard input (text
// forms). When active, global keys (quit, settings) are suppressed.
type InputCapturer interface {
	IsCapturingInput() bool
}

// activeViewCapturingInput returns true if the current view is capturing text input
func (m *Model) activeViewCapturingInput() bool {
	var view tea.Model
	switch m.currentView {
	case ViewList:
		view = m.list
	case ViewEditing:
		view = m.form
	case ViewPreviewing:
		view = m.preview
	case ViewSettings:
		view = m.settings
	}
	if ic, ok := view.(InputCapturer); ok {
		return ic.IsCapturingInput()
	}
	return false
}

// Update implements tea.Model - routes messages and drives view transitions
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		// Skip global keys when a view is capturing text input
		if !m.activeViewCapturingInput() {
			switch {
			case key.Matches(msg, DefaultKeyMap.Quit) && m.currentView == ViewList:
				return m, tea.Quit

			case key.Matches(msg, DefaultKeyMap.Settings) && m.currentView == ViewList:
				if m.settings == nil {
					m.settings = NewSettingsModel(m.app)
				}
				m.currentView = ViewSettings
				return m, nil
			}
		}

	case OpenFormMsg:
		m.form = NewFormModel(m.app, msg.Invoice)
		m.currentView = ViewEditing
		return m, m.form.Init()

	case OpenPreviewMsg:
		m.preview = NewPreviewModel(m.app, msg.Invoice)
		m.currentView = ViewPreviewing
		return m, nil

	case BackToListMsg:
		// Drafts and previews are discarded on the way out
		m.form = nil
		m.preview = nil
		m.currentView = ViewList
		return m, m.list.Refresh(msg.Status)
	}

	// Route message to current view
	var cmd tea.Cmd
	var next tea.Model
	switch m.currentView {
	case ViewList:
		next, cmd = m.list.Update(msg)
		m.list = next.(*ListModel)
	case ViewEditing:
		if m.form != nil {
			next, cmd = m.form.Update(msg)
			m.form = next.(*FormModel)
		}
	case ViewPreviewing:
		if m.preview != nil {
			next, cmd = m.preview.Update(msg)
			m.preview = next.(*PreviewModel)
		}
	case ViewSettings:
		if m.settings != nil {
			next, cmd = m.settings.Update(msg)
			m.settings = next.(*SettingsModel)
		}
	}

	return m, cmd
}

// View implements tea.Model - renders header + current view + footer
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	header := headerStyle.Render(fmt.Sprintf("invoicer - %s", m.currentView.String()))
	footer := footerStyle.Render("[N]ew  [E]dit  [Enter] View  [D]elete  [,] Settings  [Q]uit")

	var content string
	switch m.currentView {
	case ViewList:
		content = m.list.View()
	case ViewEditing:
		if m.form != nil {
			content = m.form.View()
		}
	case ViewPreviewing:
		if m.preview != nil {
			content = m.preview.View()
		}
	case ViewSettings:
		if m.settings != nil {
			content = m.settings.View()
		}
	}

	// Divider line between header and content
	innerWidth := m.width - 6 // account for border (2) + padding (4)
	if innerWidth < 20 {
		innerWidth = 20
	}
	dividerWidth := innerWidth - 12
	if dividerWidth < 10 {
		dividerWidth = 10
	}
	divider := lipgloss.NewStyle().Foreground(borderColor).Render(
		strings.Repeat("─", dividerWidth),
	)

	body := fmt.Sprintf("%s\n%s\n\n%s\n\n%s\n%s", header, divider, content, divider, footer)

	// Wrap in border, sized to terminal
	frame := appBorderStyle.
		Width(innerWidth).
		Height(m.height - 4) // leave room for border top/bottom
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, frame.Render(body))
}

// Run starts the TUI
func Run(a *app.App) error {
	p := tea.NewProgram(New(a), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
