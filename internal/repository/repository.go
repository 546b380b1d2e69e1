package repository

import (
	"context"
	"errors"

	"github.com/pureline/invoicer/internal/domain"
)

// StorageKey is the single fixed key the invoice collection lives under
const StorageKey = "invoices"

// ErrNotLoaded is returned by accessors before the initial Load completes.
// Callers must not treat the collection as authoritative until then.
var ErrNotLoaded = errors.New("invoice collection not loaded yet")

// StoragePort is the durable key-value medium the store writes through.
// The production binding is the encrypted SQLite kv table; tests inject
// in-memory fakes.
type StoragePort interface {
	Get(ctx context.Context, key string) (value []byte, found bool, err error)
	Put(ctx context.Context, key string, value []byte) error
}

// InvoiceRepository manages the persisted invoice collection. The whole
// ordered collection is the unit of persistence: every mutation serializes
// and writes it back in full.
type InvoiceRepository interface {
	// Load reads the collection from storage. A missing or unparsable
	// value degrades to an empty collection, never an error.
	Load(ctx context.Context) error

	// Loaded reports whether the initial Load has completed
	Loaded() bool

	List(ctx context.Context) ([]*domain.Invoice, error)
	Get(ctx context.Context, id string) (*domain.Invoice, error)
	Add(ctx context.Context, invoice *domain.Invoice) error
	Update(ctx context.Context, id string, invoice *domain.Invoice) error
	Remove(ctx context.Context, id string) error
}
