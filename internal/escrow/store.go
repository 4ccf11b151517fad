package escrow

import (
	"context"
	"time"

	"github.com/iamram3sh/2ndshift-sub002/models"
)

// Store is the persistence port of the escrow workflow. The production
// implementation is GormStore; MemoryStore backs the tests. Implementations
// translate lookup misses to ErrNotFound and transport failures to
// ErrStoreUnavailable (wrapped, so errors.Is matches).
type Store interface {
	Create(ctx context.Context, rec *models.Escrow) error
	GetByID(ctx context.Context, escrowID string) (*models.Escrow, error)
	GetByContractID(ctx context.Context, contractID uint) (*models.Escrow, error)

	// Update persists the record only while its status in the store still
	// equals expected. A status moved by a concurrent writer yields
	// ErrConcurrentModification instead of a silent lost update.
	Update(ctx context.Context, rec *models.Escrow, expected models.EscrowStatus) error

	CreatePaymentRelease(ctx context.Context, rel *models.PaymentRelease) error
	CompleteContract(ctx context.Context, contractID uint, at time.Time) error
}
