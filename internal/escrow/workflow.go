package escrow

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/iamram3sh/2ndshift-sub002/models"
)

// Action identifies one escrow transition. Each action is exposed as its own
// method carrying exactly the fields it needs, so a caller cannot, say,
// approve without a rating.
type Action string

const (
	ActionFund            Action = "fund"
	ActionStartWork       Action = "start_work"
	ActionSubmitWork      Action = "submit_work"
	ActionRequestRevision Action = "request_revision"
	ActionApprove         Action = "approve"
	ActionDispute         Action = "dispute"
	ActionCancel          Action = "cancel"
)

// Workflow applies validated state transitions to escrow records. All reads
// and writes go through the Store port; the workflow itself keeps no state
// beyond the injected policy and clock.
type Workflow struct {
	store Store
	cfg   Config
	nowFn func() time.Time
}

func New(store Store, cfg Config) *Workflow {
	return &Workflow{
		store: store,
		cfg:   cfg,
		nowFn: time.Now,
	}
}

// SetNowFunc overrides the time source. Intended for tests that need
// deterministic timestamps. Passing nil restores the real clock.
func (w *Workflow) SetNowFunc(now func() time.Time) {
	if now == nil {
		w.nowFn = time.Now
		return
	}
	w.nowFn = now
}

func (w *Workflow) now() time.Time {
	return w.nowFn().UTC()
}

// CreateEscrowInput names the parties and the amount of a new escrow.
type CreateEscrowInput struct {
	ContractID     uint
	ProjectID      uint
	ClientID       uint
	ProfessionalID uint
	Amount         float64
}

// CreateEscrow validates the input, refuses duplicates per contract, computes
// the payout snapshot and persists a pending record.
func (w *Workflow) CreateEscrow(ctx context.Context, in CreateEscrowInput) (*models.Escrow, error) {
	if in.ContractID == 0 || in.ProjectID == 0 || in.ClientID == 0 || in.ProfessionalID == 0 {
		return nil, ErrInvalidInput
	}
	if in.Amount < w.cfg.MinEscrowAmount {
		return nil, fmt.Errorf("%w: minimum is %.2f", ErrBelowMinimum, w.cfg.MinEscrowAmount)
	}

	existing, err := w.store.GetByContractID(ctx, in.ContractID)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, &DuplicateEscrowError{Existing: existing}
	}

	breakdown, err := ComputePayout(in.Amount, w.cfg)
	if err != nil {
		return nil, err
	}

	rec := &models.Escrow{
		EscrowID:           uuid.NewString(),
		ContractID:         in.ContractID,
		ProjectID:          in.ProjectID,
		ClientID:           in.ClientID,
		ProfessionalID:     in.ProfessionalID,
		TotalAmount:        breakdown.TotalAmount,
		PlatformFee:        breakdown.PlatformFee,
		TDSAmount:          breakdown.TDSAmount,
		ProfessionalPayout: breakdown.ProfessionalPayout,
		Status:             models.EscrowPending,
		MaxRevisions:       w.cfg.MaxRevisions,
		RevisionCount:      0,
	}
	if err := w.store.Create(ctx, rec); err != nil {
		return nil, err
	}
	return rec, nil
}

// Fund moves a pending escrow to funded. Client only.
func (w *Workflow) Fund(ctx context.Context, escrowID string, actorID uint) (*models.Escrow, error) {
	rec, err := w.store.GetByID(ctx, escrowID)
	if err != nil {
		return nil, err
	}
	if actorID != rec.ClientID {
		return nil, fmt.Errorf("%w: only the client can fund the escrow", ErrUnauthorized)
	}
	if rec.Status != models.EscrowPending {
		return nil, invalidTransition(ActionFund, rec.Status)
	}

	prev := rec.Status
	now := w.now()
	rec.Status = models.EscrowFunded
	rec.FundedAt = &now
	if err := w.store.Update(ctx, rec, prev); err != nil {
		return nil, err
	}
	return rec, nil
}

// StartWork moves a funded escrow to work_started. Professional only.
func (w *Workflow) StartWork(ctx context.Context, escrowID string, actorID uint) (*models.Escrow, error) {
	rec, err := w.store.GetByID(ctx, escrowID)
	if err != nil {
		return nil, err
	}
	if actorID != rec.ProfessionalID {
		return nil, fmt.Errorf("%w: only the professional can start work", ErrUnauthorized)
	}
	if rec.Status != models.EscrowFunded {
		return nil, invalidTransition(ActionStartWork, rec.Status)
	}

	prev := rec.Status
	now := w.now()
	rec.Status = models.EscrowWorkStarted
	rec.WorkStartedAt = &now
	if err := w.store.Update(ctx, rec, prev); err != nil {
		return nil, err
	}
	return rec, nil
}

// SubmitWork moves the escrow to work_submitted. Professional only. Valid
// from funded (skipping the optional start marker), work_started, or
// revision_requested when resubmitting after a revision round.
func (w *Workflow) SubmitWork(ctx context.Context, escrowID string, actorID uint) (*models.Escrow, error) {
	rec, err := w.store.GetByID(ctx, escrowID)
	if err != nil {
		return nil, err
	}
	if actorID != rec.ProfessionalID {
		return nil, fmt.Errorf("%w: only the professional can submit work", ErrUnauthorized)
	}
	switch rec.Status {
	case models.EscrowFunded, models.EscrowWorkStarted, models.EscrowRevisionRequested:
	default:
		return nil, invalidTransition(ActionSubmitWork, rec.Status)
	}

	prev := rec.Status
	rec.Status = models.EscrowWorkSubmitted
	if rec.WorkSubmittedAt == nil {
		now := w.now()
		rec.WorkSubmittedAt = &now
	}
	if err := w.store.Update(ctx, rec, prev); err != nil {
		return nil, err
	}
	return rec, nil
}

// RequestRevision sends submitted work back for rework, bounded by the
// revision cap fixed at creation. Client only.
func (w *Workflow) RequestRevision(ctx context.Context, escrowID string, actorID uint) (*models.Escrow, error) {
	rec, err := w.store.GetByID(ctx, escrowID)
	if err != nil {
		return nil, err
	}
	if actorID != rec.ClientID {
		return nil, fmt.Errorf("%w: only the client can request a revision", ErrUnauthorized)
	}
	if rec.Status != models.EscrowWorkSubmitted {
		return nil, invalidTransition(ActionRequestRevision, rec.Status)
	}
	if rec.RevisionCount >= rec.MaxRevisions {
		return nil, fmt.Errorf("%w: %d of %d used", ErrRevisionLimitExceeded, rec.RevisionCount, rec.MaxRevisions)
	}

	prev := rec.Status
	rec.Status = models.EscrowRevisionRequested
	rec.RevisionCount++
	if err := w.store.Update(ctx, rec, prev); err != nil {
		return nil, err
	}
	return rec, nil
}

// Approve accepts submitted work: records the client's rating and review,
// releases the escrow, writes the payment audit row and completes the
// contract. Client only; the rating is mandatory.
func (w *Workflow) Approve(ctx context.Context, escrowID string, actorID uint, rating int, review string) (*models.Escrow, error) {
	rec, err := w.store.GetByID(ctx, escrowID)
	if err != nil {
		return nil, err
	}
	if actorID != rec.ClientID {
		return nil, fmt.Errorf("%w: only the client can approve the work", ErrUnauthorized)
	}
	if rec.Status != models.EscrowWorkSubmitted {
		return nil, invalidTransition(ActionApprove, rec.Status)
	}
	if rating < 1 || rating > 5 {
		return nil, ErrRatingRequired
	}

	prev := rec.Status
	now := w.now()
	rec.Status = models.EscrowReleased
	rec.ClientRating = &rating
	rec.ClientReview = review
	rec.ApprovedAt = &now
	rec.ReleasedAt = &now
	if err := w.store.Update(ctx, rec, prev); err != nil {
		return nil, err
	}

	rel := &models.PaymentRelease{
		ReleaseID:      uuid.NewString(),
		EscrowID:       rec.EscrowID,
		ContractID:     rec.ContractID,
		ProfessionalID: rec.ProfessionalID,
		Amount:         rec.TotalAmount,
		PlatformFee:    rec.PlatformFee,
		TDSDeducted:    rec.TDSAmount,
		NetAmount:      rec.ProfessionalPayout,
		ReleasedAt:     now,
	}
	if err := w.store.CreatePaymentRelease(ctx, rel); err != nil {
		return nil, err
	}
	if err := w.store.CompleteContract(ctx, rec.ContractID, now); err != nil {
		return nil, err
	}
	return rec, nil
}

// Dispute freezes the escrow for staff review. Either party may open one
// from any non-terminal state; no transition leads out of disputed.
func (w *Workflow) Dispute(ctx context.Context, escrowID string, actorID uint, reason string) (*models.Escrow, error) {
	rec, err := w.store.GetByID(ctx, escrowID)
	if err != nil {
		return nil, err
	}
	if actorID != rec.ClientID && actorID != rec.ProfessionalID {
		return nil, fmt.Errorf("%w: only a party to the escrow can open a dispute", ErrUnauthorized)
	}
	if rec.Status.Terminal() {
		return nil, invalidTransition(ActionDispute, rec.Status)
	}

	prev := rec.Status
	now := w.now()
	rec.Status = models.EscrowDisputed
	rec.DisputeReason = reason
	rec.DisputeOpenedAt = &now
	if err := w.store.Update(ctx, rec, prev); err != nil {
		return nil, err
	}
	return rec, nil
}

// Cancel voids a pending escrow before funding. Client only. The record is
// kept in its terminal state, never deleted.
func (w *Workflow) Cancel(ctx context.Context, escrowID string, actorID uint) (*models.Escrow, error) {
	rec, err := w.store.GetByID(ctx, escrowID)
	if err != nil {
		return nil, err
	}
	if actorID != rec.ClientID {
		return nil, fmt.Errorf("%w: only the client can cancel the escrow", ErrUnauthorized)
	}
	if rec.Status != models.EscrowPending {
		return nil, invalidTransition(ActionCancel, rec.Status)
	}

	prev := rec.Status
	rec.Status = models.EscrowCancelled
	if err := w.store.Update(ctx, rec, prev); err != nil {
		return nil, err
	}
	return rec, nil
}

// Get returns the escrow when the requester is a party to it or an admin.
func (w *Workflow) Get(ctx context.Context, escrowID string, requesterID uint, admin bool) (*models.Escrow, error) {
	rec, err := w.store.GetByID(ctx, escrowID)
	if err != nil {
		return nil, err
	}
	if !admin && requesterID != rec.ClientID && requesterID != rec.ProfessionalID {
		return nil, ErrForbidden
	}
	return rec, nil
}

// GetByContract is Get keyed by the contract instead of the escrow id.
func (w *Workflow) GetByContract(ctx context.Context, contractID uint, requesterID uint, admin bool) (*models.Escrow, error) {
	rec, err := w.store.GetByContractID(ctx, contractID)
	if err != nil {
		return nil, err
	}
	if !admin && requesterID != rec.ClientID && requesterID != rec.ProfessionalID {
		return nil, ErrForbidden
	}
	return rec, nil
}
