package editor

import (
	"testing"

	"github.com/pureline/invoicer/internal/domain"
)

func editFixture() *domain.Invoice {
	return &domain.Invoice{
		ID:            "inv-1",
		InvoiceNumber: "INV-100",
		Date:          "2026-08-01",
		DueDate:       "2026-08-31",
		ClientName:    "Client",
		Items: []domain.InvoiceItem{
			{ID: "i1", Description: "widgets", Quantity: 2, UnitPrice: 50},
		},
	}
}

func TestNewDraftDefaults(t *testing.T) {
	d := New(domain.CompanyProfile{Name: "Acme"}, 30)

	if d.IsEdit() {
		t.Error("create draft reports IsEdit")
	}

	inv := d.Invoice()
	if inv.CompanyName != "Acme" {
		t.Errorf("issuer name = %q, want Acme", inv.CompanyName)
	}
	if len(inv.Items) != 1 {
		t.Fatalf("new draft has %d items, want 1", len(inv.Items))
	}
	if inv.Items[0].Quantity != 1 || inv.Items[0].UnitPrice != 0 {
		t.Errorf("blank item = %+v", inv.Items[0])
	}
}

func TestEditDraftIsDeepCopy(t *testing.T) {
	original := editFixture()
	d := Edit(original)

	if !d.IsEdit() {
		t.Error("edit draft does not report IsEdit")
	}

	d.SetItemUnitPrice("i1", "999")
	d.Invoice().ClientName = "changed"

	if original.Items[0].UnitPrice != 50 {
		t.Error("editing the draft mutated the source invoice items")
	}
	if original.ClientName != "Client" {
		t.Error("editing the draft mutated the source invoice")
	}
}

func TestAddItem(t *testing.T) {
	d := Edit(editFixture())
	d.AddItem()

	items := d.Invoice().Items
	if len(items) != 2 {
		t.Fatalf("items = %d, want 2", len(items))
	}
	added := items[1]
	if added.ID == "" || added.ID == items[0].ID {
		t.Error("added item needs a fresh id")
	}
	if added.Quantity != 1 || added.UnitPrice != 0 || added.Description != "" {
		t.Errorf("added item not blank: %+v", added)
	}
}

func TestRemoveItem(t *testing.T) {
	d := Edit(editFixture())
	d.AddItem()
	secondID := d.Invoice().Items[1].ID

	d.RemoveItem("i1")

	items := d.Invoice().Items
	if len(items) != 1 || items[0].ID != secondID {
		t.Errorf("remove left %+v", items)
	}
}

func TestRemoveLastItemLeavesEmpty(t *testing.T) {
	d := Edit(editFixture())
	d.RemoveItem("i1")

	if len(d.Invoice().Items) != 0 {
		t.Errorf("expected empty item list, got %+v", d.Invoice().Items)
	}

	// An empty item list is still submittable; subtotal is just 0
	inv, err := d.Submit()
	if err != nil {
		t.Fatalf("Submit with no items: %v", err)
	}
	if inv.Subtotal() != 0 {
		t.Errorf("Subtotal = %v, want 0", inv.Subtotal())
	}
}

func TestSettersCoerceInput(t *testing.T) {
	d := Edit(editFixture())

	d.SetItemQuantity("i1", "3.5")
	d.SetItemUnitPrice("i1", "garbage")
	d.SetTransportCost("-20")
	d.SetLabourCost("15")

	inv := d.Invoice()
	if inv.Items[0].Quantity != 3.5 {
		t.Errorf("quantity = %v, want 3.5", inv.Items[0].Quantity)
	}
	if inv.Items[0].UnitPrice != 0 {
		t.Errorf("garbage price = %v, want 0", inv.Items[0].UnitPrice)
	}
	if inv.TransportCost != 0 {
		t.Errorf("negative transport = %v, want 0", inv.TransportCost)
	}
	if inv.LabourCost != 15 {
		t.Errorf("labour = %v, want 15", inv.LabourCost)
	}
}

func TestSettersIgnoreUnknownItem(t *testing.T) {
	d := Edit(editFixture())
	d.SetItemDescription("ghost", "nope")

	if d.Invoice().Items[0].Description != "widgets" {
		t.Error("setter with unknown id touched another item")
	}
}

func TestSubmitPreservesID(t *testing.T) {
	d := Edit(editFixture())
	d.SetItemUnitPrice("i1", "75")

	inv, err := d.Submit()
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if inv.ID != "inv-1" {
		t.Errorf("submit changed id to %q", inv.ID)
	}
	if inv.Items[0].UnitPrice != 75 {
		t.Errorf("submitted price = %v, want 75", inv.Items[0].UnitPrice)
	}
}

func TestSubmitValidates(t *testing.T) {
	d := Edit(editFixture())
	d.Invoice().ClientName = ""

	if _, err := d.Submit(); err == nil {
		t.Fatal("expected validation error")
	}
}

func TestSubmitReturnsSnapshot(t *testing.T) {
	d := Edit(editFixture())

	inv, err := d.Submit()
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}

	// Further draft edits must not reach the submitted snapshot
	d.SetItemUnitPrice("i1", "999")
	if inv.Items[0].UnitPrice != 50 {
		t.Error("submitted snapshot shares state with the draft")
	}
}
