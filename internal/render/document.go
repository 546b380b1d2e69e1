// Package render produces the read-only invoice document view: a plain
// formatted layout used for on-screen preview and, rasterized, as the
// source for PDF export. The document contains no interactive controls;
// anything a user can click or press lives outside it.
package render

import (
	"fmt"
	"strings"

	"github.com/pureline/invoicer/internal/domain"
)

const docWidth = 72

// Money formats an amount with two fixed decimal places behind the
// currency symbol
func Money(currency string, amount float64) string {
	return fmt.Sprintf("%s%.2f", currency, amount)
}

// Document renders one invoice as a formatted text document: issuer block,
// bill-to block, line-item table, conditional totals block, and verbatim
// notes. Transport and labour lines appear only when greater than zero; the
// combined subtotal line only when at least one of them is.
func Document(inv *domain.Invoice, currency string) string {
	var b strings.Builder

	sep := strings.Repeat("=", docWidth)
	line := strings.Repeat("-", docWidth)

	b.WriteString("QUOTATION\n")
	b.WriteString(sep + "\n")
	b.WriteString(fmt.Sprintf("Invoice #:  %s\n", inv.InvoiceNumber))
	b.WriteString(fmt.Sprintf("Date:       %s\n", inv.Date))
	b.WriteString(fmt.Sprintf("Due Date:   %s\n", inv.DueDate))

	// Issuer block
	b.WriteString("\nFrom:\n")
	writeIndented(&b, inv.CompanyName)
	writeIndented(&b, inv.CompanyEmail)
	writeIndented(&b, inv.CompanyPhone)
	writeIndented(&b, inv.CompanyAddress)

	// Counterparty block
	b.WriteString("\nBill To:\n")
	writeIndented(&b, inv.ClientName)
	writeIndented(&b, inv.ClientEmail)
	writeIndented(&b, inv.ClientPhone)
	writeIndented(&b, inv.ClientAddress)

	// Line items in display order
	b.WriteString("\n" + line + "\n")
	b.WriteString(fmt.Sprintf("%-30s %8s %14s %16s\n", "Description", "Qty", "Unit Price", "Amount"))
	b.WriteString(line + "\n")

	for _, it := range inv.Items {
		desc := it.Description
		if len(desc) > 30 {
			desc = desc[:27] + "..."
		}
		b.WriteString(fmt.Sprintf("%-30s %8s %14s %16s\n",
			desc,
			formatQty(it.Quantity),
			Money(currency, it.UnitPrice),
			Money(currency, it.Amount()),
		))
	}

	b.WriteString(line + "\n")

	// Totals block
	writeTotal(&b, "Subtotal (Items):", Money(currency, inv.Subtotal()))
	if inv.TransportCost > 0 {
		writeTotal(&b, "Transport Cost:", Money(currency, inv.TransportCost))
	}
	if inv.LabourCost > 0 {
		writeTotal(&b, "Labour Cost:", Money(currency, inv.LabourCost))
	}
	if inv.TransportCost > 0 || inv.LabourCost > 0 {
		subtotalWithCosts := inv.Subtotal() + inv.TransportCost + inv.LabourCost
		writeTotal(&b, "Subtotal (with costs):", Money(currency, subtotalWithCosts))
	}
	writeTotal(&b, "Total:", Money(currency, inv.Total()))
	b.WriteString(sep + "\n")

	// Notes rendered verbatim, line breaks preserved
	if inv.Notes != "" {
		b.WriteString("\nNotes:\n")
		for _, l := range strings.Split(inv.Notes, "\n") {
			b.WriteString("  " + l + "\n")
		}
	}

	b.WriteString("\nThank you for your business!\n")

	return b.String()
}

// writeIndented writes a possibly multi-line value two spaces in,
// skipping empty values
func writeIndented(b *strings.Builder, v string) {
	if v == "" {
		return
	}
	for _, l := range strings.Split(v, "\n") {
		b.WriteString("  " + l + "\n")
	}
}

func writeTotal(b *strings.Builder, label, amount string) {
	b.WriteString(fmt.Sprintf("%*s %16s\n", docWidth-17, label, amount))
}

// formatQty trims trailing zeros so whole quantities print as integers
func formatQty(q float64) string {
	s := fmt.Sprintf("%.2f", q)
	s = strings.TrimRight(s, "0")
	s = strings.TrimRight(s, ".")
	if s == "" || s == "-" {
		return "0"
	}
	return s
}
