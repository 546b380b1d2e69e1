package tui

import "github.com/pureline/invoicer/internal/domain"

// OpenFormMsg switches the shell to the editor. A nil Invoice starts a
// create draft; otherwise the draft is seeded from the given invoice.
type OpenFormMsg struct {
	Invoice *domain.Invoice
}

// OpenPreviewMsg switches the shell to the document preview
type OpenPreviewMsg struct {
	Invoice *domain.Invoice
}

// BackToListMsg returns the shell to the list view, optionally with a
// status line to display
type BackToListMsg struct {
	Status string
}
