// Package editor holds the in-memory draft state for creating or editing
// one invoice. A draft never touches persistence; the shell decides what
// to do with the submitted invoice.
package editor

import (
	"github.com/pureline/invoicer/internal/domain"
)

// Draft is an invoice being edited. It starts in one of two states:
// create (fresh defaulted invoice) or edit (deep copy of an existing one).
type Draft struct {
	inv    *domain.Invoice
	isEdit bool
}

// New starts a create draft with all defaults applied: issuer identity
// from the profile and exactly one blank line item.
func New(profile domain.CompanyProfile, dueDays int) *Draft {
	return &Draft{inv: domain.NewInvoice(profile, dueDays)}
}

// Edit starts an edit draft seeded from an existing invoice. The invoice
// is deep-copied so in-progress edits never mutate the persisted entry.
func Edit(inv *domain.Invoice) *Draft {
	return &Draft{inv: inv.Clone(), isEdit: true}
}

// IsEdit reports whether the draft was seeded from an existing invoice.
// On submit the shell uses this to choose add vs update.
func (d *Draft) IsEdit() bool {
	return d.isEdit
}

// Invoice returns the draft's current state
func (d *Draft) Invoice() *domain.Invoice {
	return d.inv
}

// AddItem appends a blank line item with a fresh id
func (d *Draft) AddItem() {
	d.inv.Items = append(d.inv.Items, domain.NewItem())
}

// RemoveItem filters out the item with the given id. Removing the last
// remaining item is allowed and leaves the sequence empty.
func (d *Draft) RemoveItem(id string) {
	kept := d.inv.Items[:0]
	for _, it := range d.inv.Items {
		if it.ID != id {
			kept = append(kept, it)
		}
	}
	d.inv.Items = kept
}

// SetItemDescription updates one item's description by id
func (d *Draft) SetItemDescription(id, desc string) {
	if it := d.item(id); it != nil {
		it.Description = desc
	}
}

// SetItemQuantity parses and sets one item's quantity; garbage or
// negative input coerces to 0
func (d *Draft) SetItemQuantity(id, raw string) {
	if it := d.item(id); it != nil {
		it.Quantity = domain.ParseAmount(raw)
	}
}

// SetItemUnitPrice parses and sets one item's unit price; garbage or
// negative input coerces to 0
func (d *Draft) SetItemUnitPrice(id, raw string) {
	if it := d.item(id); it != nil {
		it.UnitPrice = domain.ParseAmount(raw)
	}
}

// SetTransportCost parses and sets the flat transport cost
func (d *Draft) SetTransportCost(raw string) {
	d.inv.TransportCost = domain.ParseAmount(raw)
}

// SetLabourCost parses and sets the flat labour cost
func (d *Draft) SetLabourCost(raw string) {
	d.inv.LabourCost = domain.ParseAmount(raw)
}

// Submit validates required fields and hands back a snapshot of the draft.
// The draft's id is preserved, so updating an existing invoice keeps it.
func (d *Draft) Submit() (*domain.Invoice, error) {
	if err := d.inv.Validate(); err != nil {
		return nil, err
	}
	return d.inv.Clone(), nil
}

func (d *Draft) item(id string) *domain.InvoiceItem {
	for i := range d.inv.Items {
		if d.inv.Items[i].ID == id {
			return &d.inv.Items[i]
		}
	}
	return nil
}
