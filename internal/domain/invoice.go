package domain

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"math"
	"strconv"
	"strings"
	"time"
)

// DateLayout is the ISO date format used for invoice date fields
const DateLayout = "2006-01-02"

// taxRate exists in the original business rules (7.5%) but is deliberately
// never applied to totals. Do not wire it into Total.
const taxRate = 0.075

// CompanyProfile is the fixed issuer identity stamped onto new invoices
type CompanyProfile struct {
	Name    string `yaml:"name"`
	Email   string `yaml:"email"`
	Phone   string `yaml:"phone"`
	Address string `yaml:"address"`
}

// InvoiceItem is one billable line: quantity x unit price.
// The line amount is derived, never stored.
type InvoiceItem struct {
	ID          string  `json:"id"`
	Description string  `json:"description"`
	Quantity    float64 `json:"quantity"`
	UnitPrice   float64 `json:"unitPrice"`
}

// Amount returns quantity * unitPrice. Negative inputs propagate
// arithmetically; the UI clamps them before they get here.
func (it InvoiceItem) Amount() float64 {
	return it.Quantity * it.UnitPrice
}

// Invoice is a billing document for one client. The JSON tags define the
// persisted layout exactly; issuer fields and createdAt are serialized even
// though they are effectively constant.
type Invoice struct {
	ID             string        `json:"id"`
	InvoiceNumber  string        `json:"invoiceNumber"`
	Date           string        `json:"date"`
	DueDate        string        `json:"dueDate"`
	CompanyName    string        `json:"companyName"`
	CompanyEmail   string        `json:"companyEmail"`
	CompanyPhone   string        `json:"companyPhone"`
	CompanyAddress string        `json:"companyAddress"`
	ClientName     string        `json:"clientName"`
	ClientEmail    string        `json:"clientEmail"`
	ClientPhone    string        `json:"clientPhone"`
	ClientAddress  string        `json:"clientAddress"`
	Items          []InvoiceItem `json:"items"`
	TransportCost  float64       `json:"transportCost"`
	LabourCost     float64       `json:"labourCost"`
	Notes          string        `json:"notes"`
	CreatedAt      string        `json:"createdAt"`
}

// NewItem returns a blank line item with quantity 1 and a fresh id
func NewItem() InvoiceItem {
	return InvoiceItem{
		ID:       NewID(),
		Quantity: 1,
	}
}

// NewInvoice creates a defaulted draft invoice: issuer identity from the
// profile, due date dueDays after today (30 if dueDays <= 0), and exactly
// one blank line item.
func NewInvoice(profile CompanyProfile, dueDays int) *Invoice {
	if dueDays <= 0 {
		dueDays = 30
	}
	now := time.Now()
	return &Invoice{
		ID:             NewID(),
		InvoiceNumber:  "INV-" + strconv.FormatInt(now.UnixMilli(), 10),
		Date:           now.Format(DateLayout),
		DueDate:        now.AddDate(0, 0, dueDays).Format(DateLayout),
		CompanyName:    profile.Name,
		CompanyEmail:   profile.Email,
		CompanyPhone:   profile.Phone,
		CompanyAddress: profile.Address,
		Items:          []InvoiceItem{NewItem()},
		CreatedAt:      now.Format(time.RFC3339),
	}
}

// Subtotal sums the derived line amounts over an ordered item sequence.
// An empty sequence yields 0.
func Subtotal(items []InvoiceItem) float64 {
	var sum float64
	for _, it := range items {
		sum += it.Amount()
	}
	return sum
}

// Subtotal returns the invoice's item subtotal
func (inv *Invoice) Subtotal() float64 {
	return Subtotal(inv.Items)
}

// Total is subtotal + transport + labour. No tax is applied.
func (inv *Invoice) Total() float64 {
	return inv.Subtotal() + inv.TransportCost + inv.LabourCost
}

// Clone returns a deep copy so draft edits never touch the persisted entry
func (inv *Invoice) Clone() *Invoice {
	cp := *inv
	cp.Items = make([]InvoiceItem, len(inv.Items))
	copy(cp.Items, inv.Items)
	return &cp
}

// Validate returns an error if a required field is missing. There is no
// cross-field validation: dueDate before date is accepted.
func (inv *Invoice) Validate() error {
	if strings.TrimSpace(inv.ClientName) == "" {
		return errors.New("client name is required")
	}
	if strings.TrimSpace(inv.InvoiceNumber) == "" {
		return errors.New("invoice number is required")
	}
	if strings.TrimSpace(inv.Date) == "" {
		return errors.New("invoice date is required")
	}
	if strings.TrimSpace(inv.DueDate) == "" {
		return errors.New("due date is required")
	}
	return nil
}

// ParseAmount parses a non-negative monetary or quantity input.
// Garbage, negative, and non-finite values all coerce to 0.
func ParseAmount(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return v
}

// NewID returns a short opaque identifier for invoices and line items
func NewID() string {
	b := make([]byte, 5)
	if _, err := rand.Read(b); err != nil {
		// rand.Read only fails when the OS entropy source is broken;
		// fall back to a timestamp so ids stay unique enough locally
		return strconv.FormatInt(time.Now().UnixNano(), 36)
	}
	return hex.EncodeToString(b)
}
