package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/pureline/invoicer/internal/domain"
)

// invoiceRepo keeps the collection in memory and writes it through the
// storage port on every mutation. Bubble Tea commands run in goroutines,
// so access is mutex-guarded.
type invoiceRepo struct {
	port StoragePort

	mu       sync.Mutex
	invoices []*domain.Invoice
	loaded   bool
}

// NewInvoiceRepo creates an invoice repository over a storage port
func NewInvoiceRepo(port StoragePort) InvoiceRepository {
	return &invoiceRepo{port: port}
}

func (r *invoiceRepo) Load(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	data, found, err := r.port.Get(ctx, StorageKey)
	if err != nil {
		return fmt.Errorf("failed to load invoices: %w", err)
	}

	var invoices []*domain.Invoice
	if found {
		// Unparsable stored data is treated as absent, not fatal
		if err := json.Unmarshal(data, &invoices); err != nil {
			invoices = nil
		}
	}

	r.invoices = invoices
	r.loaded = true
	return nil
}

func (r *invoiceRepo) Loaded() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.loaded
}

func (r *invoiceRepo) List(ctx context.Context) ([]*domain.Invoice, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.loaded {
		return nil, ErrNotLoaded
	}

	out := make([]*domain.Invoice, len(r.invoices))
	for i, inv := range r.invoices {
		out[i] = inv.Clone()
	}
	return out, nil
}

func (r *invoiceRepo) Get(ctx context.Context, id string) (*domain.Invoice, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.loaded {
		return nil, ErrNotLoaded
	}

	for _, inv := range r.invoices {
		if inv.ID == id {
			return inv.Clone(), nil
		}
	}
	return nil, nil
}

func (r *invoiceRepo) Add(ctx context.Context, invoice *domain.Invoice) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.loaded {
		return ErrNotLoaded
	}

	next := make([]*domain.Invoice, 0, len(r.invoices)+1)
	next = append(next, r.invoices...)
	next = append(next, invoice.Clone())
	return r.commit(ctx, next)
}

// Update replaces the entry whose id matches. An unknown id leaves the
// collection unchanged.
func (r *invoiceRepo) Update(ctx context.Context, id string, invoice *domain.Invoice) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.loaded {
		return ErrNotLoaded
	}

	next := make([]*domain.Invoice, len(r.invoices))
	copy(next, r.invoices)
	for i, inv := range next {
		if inv.ID == id {
			next[i] = invoice.Clone()
			break
		}
	}
	return r.commit(ctx, next)
}

// Remove filters out the matching id. Removing an absent id is a no-op.
func (r *invoiceRepo) Remove(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.loaded {
		return ErrNotLoaded
	}

	next := make([]*domain.Invoice, 0, len(r.invoices))
	for _, inv := range r.invoices {
		if inv.ID != id {
			next = append(next, inv)
		}
	}
	return r.commit(ctx, next)
}

// commit serializes the staged collection under the fixed key and adopts
// it in memory only after the write succeeds, so a failed save leaves the
// collection exactly as it was and a retry cannot double-apply.
// Callers hold the mutex.
func (r *invoiceRepo) commit(ctx context.Context, next []*domain.Invoice) error {
	if next == nil {
		next = []*domain.Invoice{}
	}
	data, err := json.Marshal(next)
	if err != nil {
		return fmt.Errorf("failed to serialize invoices: %w", err)
	}
	if err := r.port.Put(ctx, StorageKey, data); err != nil {
		return fmt.Errorf("failed to save invoices: %w", err)
	}
	r.invoices = next
	return nil
}
