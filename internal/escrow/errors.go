package escrow

import (
	"errors"
	"fmt"

	"github.com/iamram3sh/2ndshift-sub002/models"
)

// Sentinel errors returned by the workflow. Handlers map each kind to a
// distinct HTTP status and message so callers can tell "not yet" from
// "not allowed" from "not available".
var (
	ErrInvalidInput           = errors.New("missing required identifier")
	ErrInvalidAmount          = errors.New("amount must be a positive number")
	ErrBelowMinimum           = errors.New("amount is below the minimum escrow amount")
	ErrDuplicateEscrow        = errors.New("an escrow already exists for this contract")
	ErrNotFound               = errors.New("escrow not found")
	ErrUnauthorized           = errors.New("user is not permitted to perform this action")
	ErrInvalidTransition      = errors.New("invalid transition")
	ErrRevisionLimitExceeded  = errors.New("revision limit reached for this escrow")
	ErrRatingRequired         = errors.New("a rating between 1 and 5 is required to approve")
	ErrForbidden              = errors.New("user is not a party to this escrow")
	ErrConcurrentModification = errors.New("escrow was modified concurrently, re-read and retry")
	ErrStoreUnavailable       = errors.New("record store unavailable")
)

// DuplicateEscrowError carries the existing record so callers can inspect
// what is already in place for the contract. errors.Is matches it against
// ErrDuplicateEscrow.
type DuplicateEscrowError struct {
	Existing *models.Escrow
}

func (e *DuplicateEscrowError) Error() string { return ErrDuplicateEscrow.Error() }
func (e *DuplicateEscrowError) Unwrap() error { return ErrDuplicateEscrow }

func invalidTransition(action Action, status models.EscrowStatus) error {
	return fmt.Errorf("%w: invalid status %q for %s", ErrInvalidTransition, status, action)
}
