package repository

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/pureline/invoicer/internal/domain"
)

// fakePort is an in-memory storage port
type fakePort struct {
	data map[string][]byte

	getErr error
	putErr error
	puts   int
}

func newFakePort() *fakePort {
	return &fakePort{data: map[string][]byte{}}
}

func (p *fakePort) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if p.getErr != nil {
		return nil, false, p.getErr
	}
	v, ok := p.data[key]
	return v, ok, nil
}

func (p *fakePort) Put(ctx context.Context, key string, value []byte) error {
	p.puts++
	if p.putErr != nil {
		return p.putErr
	}
	p.data[key] = value
	return nil
}

func loadedRepo(t *testing.T, port StoragePort) InvoiceRepository {
	t.Helper()
	repo := NewInvoiceRepo(port)
	if err := repo.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}
	return repo
}

func invoiceFixture(id, number string) *domain.Invoice {
	return &domain.Invoice{
		ID:            id,
		InvoiceNumber: number,
		Date:          "2026-08-01",
		DueDate:       "2026-08-31",
		ClientName:    "Client",
		Items:         []domain.InvoiceItem{{ID: id + "-i", Quantity: 1, UnitPrice: 100}},
	}
}

func TestNotLoaded(t *testing.T) {
	repo := NewInvoiceRepo(newFakePort())
	ctx := context.Background()

	if _, err := repo.List(ctx); !errors.Is(err, ErrNotLoaded) {
		t.Errorf("List before Load: err = %v, want ErrNotLoaded", err)
	}
	if _, err := repo.Get(ctx, "x"); !errors.Is(err, ErrNotLoaded) {
		t.Errorf("Get before Load: err = %v, want ErrNotLoaded", err)
	}
	if err := repo.Add(ctx, invoiceFixture("a", "INV-1")); !errors.Is(err, ErrNotLoaded) {
		t.Errorf("Add before Load: err = %v, want ErrNotLoaded", err)
	}
	if repo.Loaded() {
		t.Error("Loaded() = true before Load")
	}
}

func TestLoadAbsentKey(t *testing.T) {
	repo := loadedRepo(t, newFakePort())

	invoices, err := repo.List(context.Background())
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(invoices) != 0 {
		t.Errorf("expected empty collection, got %d entries", len(invoices))
	}
}

func TestLoadCorruptData(t *testing.T) {
	port := newFakePort()
	port.data[StorageKey] = []byte("{not json")

	repo := loadedRepo(t, port)

	invoices, err := repo.List(context.Background())
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(invoices) != 0 {
		t.Errorf("corrupt stored data must degrade to empty, got %d entries", len(invoices))
	}
}

func TestLoadPortError(t *testing.T) {
	port := newFakePort()
	port.getErr = errors.New("disk on fire")

	repo := NewInvoiceRepo(port)
	if err := repo.Load(context.Background()); err == nil {
		t.Fatal("expected Load to surface the port error")
	}
	if repo.Loaded() {
		t.Error("failed Load must not mark the repo loaded")
	}
}

func TestAddPersistsFullCollection(t *testing.T) {
	port := newFakePort()
	repo := loadedRepo(t, port)
	ctx := context.Background()

	if err := repo.Add(ctx, invoiceFixture("a", "INV-1")); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if err := repo.Add(ctx, invoiceFixture("b", "INV-2")); err != nil {
		t.Fatalf("Add: %v", err)
	}

	var stored []*domain.Invoice
	if err := json.Unmarshal(port.data[StorageKey], &stored); err != nil {
		t.Fatalf("stored data not valid JSON: %v", err)
	}
	if len(stored) != 2 {
		t.Fatalf("stored %d invoices, want 2", len(stored))
	}
	if stored[0].ID != "a" || stored[1].ID != "b" {
		t.Error("stored collection lost insertion order")
	}
}

func TestRoundTrip(t *testing.T) {
	port := newFakePort()
	repo := loadedRepo(t, port)
	ctx := context.Background()

	want := invoiceFixture("a", "INV-1")
	want.Notes = "line one\nline two"
	want.TransportCost = 12.5

	if err := repo.Add(ctx, want); err != nil {
		t.Fatalf("Add: %v", err)
	}

	// Reload from the same port, as a fresh process would
	repo2 := loadedRepo(t, port)
	got, err := repo2.Get(ctx, "a")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got == nil {
		t.Fatal("invoice missing after reload")
	}
	if got.Notes != want.Notes || got.TransportCost != want.TransportCost {
		t.Errorf("round trip mismatch: got %+v", got)
	}
	if len(got.Items) != 1 || got.Items[0].UnitPrice != 100 {
		t.Errorf("items did not survive round trip: %+v", got.Items)
	}
}

func TestUpdateReplacesMatching(t *testing.T) {
	repo := loadedRepo(t, newFakePort())
	ctx := context.Background()

	repo.Add(ctx, invoiceFixture("a", "INV-1"))
	repo.Add(ctx, invoiceFixture("b", "INV-2"))

	edited := invoiceFixture("a", "INV-1-EDITED")
	if err := repo.Update(ctx, "a", edited); err != nil {
		t.Fatalf("Update: %v", err)
	}

	invoices, _ := repo.List(ctx)
	if invoices[0].InvoiceNumber != "INV-1-EDITED" {
		t.Errorf("entry not replaced: %q", invoices[0].InvoiceNumber)
	}
	// Order is preserved on update
	if invoices[0].ID != "a" || invoices[1].ID != "b" {
		t.Error("update disturbed collection order")
	}
}

func TestUpdateUnknownIDNoOp(t *testing.T) {
	repo := loadedRepo(t, newFakePort())
	ctx := context.Background()

	repo.Add(ctx, invoiceFixture("a", "INV-1"))

	if err := repo.Update(ctx, "ghost", invoiceFixture("ghost", "INV-9")); err != nil {
		t.Fatalf("Update with unknown id must not error: %v", err)
	}

	invoices, _ := repo.List(ctx)
	if len(invoices) != 1 || invoices[0].ID != "a" {
		t.Errorf("unknown-id update changed the collection: %+v", invoices)
	}
}

func TestRemove(t *testing.T) {
	port := newFakePort()
	repo := loadedRepo(t, port)
	ctx := context.Background()

	repo.Add(ctx, invoiceFixture("a", "INV-1"))
	repo.Add(ctx, invoiceFixture("b", "INV-2"))

	if err := repo.Remove(ctx, "a"); err != nil {
		t.Fatalf("Remove: %v", err)
	}

	invoices, _ := repo.List(ctx)
	if len(invoices) != 1 || invoices[0].ID != "b" {
		t.Errorf("remove left %+v", invoices)
	}

	// Removing an absent id is idempotent
	if err := repo.Remove(ctx, "a"); err != nil {
		t.Fatalf("second Remove: %v", err)
	}
	invoices, _ = repo.List(ctx)
	if len(invoices) != 1 {
		t.Errorf("idempotent remove changed the collection: %+v", invoices)
	}
}

func TestEmptyCollectionSerializesAsArray(t *testing.T) {
	port := newFakePort()
	repo := loadedRepo(t, port)
	ctx := context.Background()

	repo.Add(ctx, invoiceFixture("a", "INV-1"))
	repo.Remove(ctx, "a")

	if string(port.data[StorageKey]) != "[]" {
		t.Errorf("empty collection stored as %q, want []", port.data[StorageKey])
	}
}

func TestListReturnsCopies(t *testing.T) {
	repo := loadedRepo(t, newFakePort())
	ctx := context.Background()

	repo.Add(ctx, invoiceFixture("a", "INV-1"))

	first, _ := repo.List(ctx)
	first[0].ClientName = "mutated"
	first[0].Items[0].UnitPrice = 999

	second, _ := repo.List(ctx)
	if second[0].ClientName == "mutated" || second[0].Items[0].UnitPrice == 999 {
		t.Error("List leaked internal state to callers")
	}
}

func TestPutFailureSurfaces(t *testing.T) {
	port := newFakePort()
	repo := loadedRepo(t, port)
	port.putErr = errors.New("readonly fs")

	if err := repo.Add(context.Background(), invoiceFixture("a", "INV-1")); err == nil {
		t.Fatal("expected Add to surface the write failure")
	}
}

func TestFailedAddRollsBack(t *testing.T) {
	port := newFakePort()
	repo := loadedRepo(t, port)
	ctx := context.Background()

	port.putErr = errors.New("readonly fs")
	if err := repo.Add(ctx, invoiceFixture("a", "INV-1")); err == nil {
		t.Fatal("expected Add to fail")
	}

	// The failed write must not leave the entry in memory
	invoices, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(invoices) != 0 {
		t.Fatalf("failed Add kept %d in-memory entries, want 0", len(invoices))
	}

	// Retrying after the failure is cleared stores the invoice exactly once
	port.putErr = nil
	if err := repo.Add(ctx, invoiceFixture("a", "INV-1")); err != nil {
		t.Fatalf("retry Add: %v", err)
	}

	var stored []*domain.Invoice
	if err := json.Unmarshal(port.data[StorageKey], &stored); err != nil {
		t.Fatalf("stored data not valid JSON: %v", err)
	}
	if len(stored) != 1 {
		t.Fatalf("retrying a failed Add stored %d entries, want 1", len(stored))
	}
}

func TestFailedUpdateRollsBack(t *testing.T) {
	port := newFakePort()
	repo := loadedRepo(t, port)
	ctx := context.Background()

	repo.Add(ctx, invoiceFixture("a", "INV-1"))

	port.putErr = errors.New("readonly fs")
	if err := repo.Update(ctx, "a", invoiceFixture("a", "INV-1-EDITED")); err == nil {
		t.Fatal("expected Update to fail")
	}

	got, _ := repo.Get(ctx, "a")
	if got.InvoiceNumber != "INV-1" {
		t.Errorf("failed Update left entry as %q, want INV-1", got.InvoiceNumber)
	}
}

func TestFailedRemoveRollsBack(t *testing.T) {
	port := newFakePort()
	repo := loadedRepo(t, port)
	ctx := context.Background()

	repo.Add(ctx, invoiceFixture("a", "INV-1"))

	port.putErr = errors.New("readonly fs")
	if err := repo.Remove(ctx, "a"); err == nil {
		t.Fatal("expected Remove to fail")
	}

	invoices, _ := repo.List(ctx)
	if len(invoices) != 1 {
		t.Errorf("failed Remove left %d entries, want 1", len(invoices))
	}
}
