package escrow

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iamram3sh/2ndshift-sub002/models"
)

const (
	clientID       = uint(11)
	professionalID = uint(22)
	strangerID     = uint(33)
)

func newTestWorkflow(t *testing.T) (*Workflow, *MemoryStore) {
	t.Helper()
	store := NewMemoryStore()
	w := New(store, defaultConfig())
	fixed := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
	w.SetNowFunc(func() time.Time { return fixed })
	return w, store
}

func createTestEscrow(t *testing.T, w *Workflow, amount float64) *models.Escrow {
	t.Helper()
	rec, err := w.CreateEscrow(context.Background(), CreateEscrowInput{
		ContractID:     1,
		ProjectID:      2,
		ClientID:       clientID,
		ProfessionalID: professionalID,
		Amount:         amount,
	})
	require.NoError(t, err)
	return rec
}

func TestCreateEscrow(t *testing.T) {
	w, _ := newTestWorkflow(t)
	rec := createTestEscrow(t, w, 50000)

	assert.NotEmpty(t, rec.EscrowID)
	assert.Equal(t, models.EscrowPending, rec.Status)
	assert.Equal(t, 0, rec.RevisionCount)
	assert.Equal(t, 2, rec.MaxRevisions)
	assert.Equal(t, 5000.0, rec.PlatformFee)
	assert.Equal(t, 4500.0, rec.TDSAmount)
	assert.Equal(t, 40500.0, rec.ProfessionalPayout)
}

func TestCreateEscrowMinimumBoundary(t *testing.T) {
	w, _ := newTestWorkflow(t)

	_, err := w.CreateEscrow(context.Background(), CreateEscrowInput{
		ContractID: 1, ProjectID: 2, ClientID: clientID, ProfessionalID: professionalID,
		Amount: 499,
	})
	assert.ErrorIs(t, err, ErrBelowMinimum)

	rec, err := w.CreateEscrow(context.Background(), CreateEscrowInput{
		ContractID: 1, ProjectID: 2, ClientID: clientID, ProfessionalID: professionalID,
		Amount: 500,
	})
	require.NoError(t, err)
	assert.Equal(t, models.EscrowPending, rec.Status)
}

func TestCreateEscrowRejectsDuplicateContract(t *testing.T) {
	w, _ := newTestWorkflow(t)
	first := createTestEscrow(t, w, 50000)

	_, err := w.CreateEscrow(context.Background(), CreateEscrowInput{
		ContractID: 1, ProjectID: 2, ClientID: clientID, ProfessionalID: professionalID,
		Amount: 60000,
	})
	require.ErrorIs(t, err, ErrDuplicateEscrow)

	var dup *DuplicateEscrowError
	require.ErrorAs(t, err, &dup)
	assert.Equal(t, first.EscrowID, dup.Existing.EscrowID)
}

func TestCreateEscrowRequiresIdentifiers(t *testing.T) {
	w, _ := newTestWorkflow(t)
	_, err := w.CreateEscrow(context.Background(), CreateEscrowInput{
		ContractID: 1, ProjectID: 2, ClientID: 0, ProfessionalID: professionalID,
		Amount: 50000,
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestHappyPathToRelease(t *testing.T) {
	w, store := newTestWorkflow(t)
	rec := createTestEscrow(t, w, 50000)
	ctx := context.Background()

	rec, err := w.Fund(ctx, rec.EscrowID, clientID)
	require.NoError(t, err)
	assert.Equal(t, models.EscrowFunded, rec.Status)
	require.NotNil(t, rec.FundedAt)

	rec, err = w.StartWork(ctx, rec.EscrowID, professionalID)
	require.NoError(t, err)
	assert.Equal(t, models.EscrowWorkStarted, rec.Status)
	require.NotNil(t, rec.WorkStartedAt)

	rec, err = w.SubmitWork(ctx, rec.EscrowID, professionalID)
	require.NoError(t, err)
	assert.Equal(t, models.EscrowWorkSubmitted, rec.Status)
	require.NotNil(t, rec.WorkSubmittedAt)

	rec, err = w.Approve(ctx, rec.EscrowID, clientID, 5, "great work")
	require.NoError(t, err)
	assert.Equal(t, models.EscrowReleased, rec.Status)
	require.NotNil(t, rec.ClientRating)
	assert.Equal(t, 5, *rec.ClientRating)
	assert.Equal(t, "great work", rec.ClientReview)
	require.NotNil(t, rec.ApprovedAt)
	require.NotNil(t, rec.ReleasedAt)

	releases := store.Releases()
	require.Len(t, releases, 1, "approve must write exactly one payment release")
	assert.Equal(t, rec.EscrowID, releases[0].EscrowID)
	assert.Equal(t, 50000.0, releases[0].Amount)
	assert.Equal(t, 4500.0, releases[0].TDSDeducted)
	assert.Equal(t, 40500.0, releases[0].NetAmount)

	assert.True(t, store.ContractCompleted(rec.ContractID))
}

func TestRevisionLoopBoundedByCap(t *testing.T) {
	w, _ := newTestWorkflow(t)
	rec := createTestEscrow(t, w, 50000)
	ctx := context.Background()

	_, err := w.Fund(ctx, rec.EscrowID, clientID)
	require.NoError(t, err)
	_, err = w.SubmitWork(ctx, rec.EscrowID, professionalID)
	require.NoError(t, err)

	for i := 0; i < rec.MaxRevisions; i++ {
		got, err := w.RequestRevision(ctx, rec.EscrowID, clientID)
		require.NoError(t, err)
		assert.Equal(t, models.EscrowRevisionRequested, got.Status)
		assert.Equal(t, i+1, got.RevisionCount)

		_, err = w.SubmitWork(ctx, rec.EscrowID, professionalID)
		require.NoError(t, err)
	}

	_, err = w.RequestRevision(ctx, rec.EscrowID, clientID)
	assert.ErrorIs(t, err, ErrRevisionLimitExceeded)
}

func TestRoleGuards(t *testing.T) {
	w, _ := newTestWorkflow(t)
	rec := createTestEscrow(t, w, 50000)
	ctx := context.Background()

	// Only the client funds.
	_, err := w.Fund(ctx, rec.EscrowID, professionalID)
	assert.ErrorIs(t, err, ErrUnauthorized)

	_, err = w.Fund(ctx, rec.EscrowID, clientID)
	require.NoError(t, err)

	// Only the professional starts and submits.
	_, err = w.StartWork(ctx, rec.EscrowID, clientID)
	assert.ErrorIs(t, err, ErrUnauthorized)
	_, err = w.SubmitWork(ctx, rec.EscrowID, clientID)
	assert.ErrorIs(t, err, ErrUnauthorized)

	_, err = w.SubmitWork(ctx, rec.EscrowID, professionalID)
	require.NoError(t, err)

	// Approval is the client's alone, whatever the state.
	_, err = w.Approve(ctx, rec.EscrowID, professionalID, 5, "")
	assert.ErrorIs(t, err, ErrUnauthorized)
	_, err = w.Approve(ctx, rec.EscrowID, strangerID, 5, "")
	assert.ErrorIs(t, err, ErrUnauthorized)

	// Strangers cannot open disputes.
	_, err = w.Dispute(ctx, rec.EscrowID, strangerID, "not my fight")
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestApproveRequiresRating(t *testing.T) {
	w, _ := newTestWorkflow(t)
	rec := createTestEscrow(t, w, 50000)
	ctx := context.Background()

	_, err := w.Fund(ctx, rec.EscrowID, clientID)
	require.NoError(t, err)
	_, err = w.SubmitWork(ctx, rec.EscrowID, professionalID)
	require.NoError(t, err)

	for _, rating := range []int{0, -1, 6} {
		_, err = w.Approve(ctx, rec.EscrowID, clientID, rating, "")
		assert.ErrorIs(t, err, ErrRatingRequired)
	}
}

func TestInvalidTransitions(t *testing.T) {
	w, _ := newTestWorkflow(t)
	rec := createTestEscrow(t, w, 50000)
	ctx := context.Background()

	// Submitting or approving before funding.
	_, err := w.SubmitWork(ctx, rec.EscrowID, professionalID)
	assert.ErrorIs(t, err, ErrInvalidTransition)
	_, err = w.Approve(ctx, rec.EscrowID, clientID, 5, "")
	assert.ErrorIs(t, err, ErrInvalidTransition)

	_, err = w.Fund(ctx, rec.EscrowID, clientID)
	require.NoError(t, err)

	// Funding twice.
	_, err = w.Fund(ctx, rec.EscrowID, clientID)
	assert.ErrorIs(t, err, ErrInvalidTransition)

	// Cancelling after funding.
	_, err = w.Cancel(ctx, rec.EscrowID, clientID)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestCancelPendingEscrow(t *testing.T) {
	w, _ := newTestWorkflow(t)
	rec := createTestEscrow(t, w, 50000)

	got, err := w.Cancel(context.Background(), rec.EscrowID, clientID)
	require.NoError(t, err)
	assert.Equal(t, models.EscrowCancelled, got.Status)
}

func TestDisputeFromEveryNonTerminalState(t *testing.T) {
	ctx := context.Background()

	advance := map[string]func(w *Workflow, id string){
		"pending": func(w *Workflow, id string) {},
		"funded": func(w *Workflow, id string) {
			_, err := w.Fund(ctx, id, clientID)
			require.NoError(t, err)
		},
		"work_started": func(w *Workflow, id string) {
			_, err := w.Fund(ctx, id, clientID)
			require.NoError(t, err)
			_, err = w.StartWork(ctx, id, professionalID)
			require.NoError(t, err)
		},
		"work_submitted": func(w *Workflow, id string) {
			_, err := w.Fund(ctx, id, clientID)
			require.NoError(t, err)
			_, err = w.SubmitWork(ctx, id, professionalID)
			require.NoError(t, err)
		},
		"revision_requested": func(w *Workflow, id string) {
			_, err := w.Fund(ctx, id, clientID)
			require.NoError(t, err)
			_, err = w.SubmitWork(ctx, id, professionalID)
			require.NoError(t, err)
			_, err = w.RequestRevision(ctx, id, clientID)
			require.NoError(t, err)
		},
	}

	for state, setup := range advance {
		t.Run(state, func(t *testing.T) {
			w, _ := newTestWorkflow(t)
			rec := createTestEscrow(t, w, 50000)
			setup(w, rec.EscrowID)

			got, err := w.Dispute(ctx, rec.EscrowID, professionalID, "deliverable does not match brief")
			require.NoError(t, err)
			assert.Equal(t, models.EscrowDisputed, got.Status)
			assert.Equal(t, "deliverable does not match brief", got.DisputeReason)
			require.NotNil(t, got.DisputeOpenedAt)

			// Disputed is terminal: a second dispute fails like any other action.
			_, err = w.Dispute(ctx, rec.EscrowID, clientID, "me too")
			assert.ErrorIs(t, err, ErrInvalidTransition)
			_, err = w.Fund(ctx, rec.EscrowID, clientID)
			assert.ErrorIs(t, err, ErrInvalidTransition)
		})
	}
}

func TestConcurrentModificationSurfaces(t *testing.T) {
	w, store := newTestWorkflow(t)
	rec := createTestEscrow(t, w, 50000)
	ctx := context.Background()

	// Simulate a racing writer: the stored status moves after our read.
	stale, err := store.GetByID(ctx, rec.EscrowID)
	require.NoError(t, err)

	_, err = w.Fund(ctx, rec.EscrowID, clientID)
	require.NoError(t, err)

	stale.Status = models.EscrowCancelled
	err = store.Update(ctx, stale, models.EscrowPending)
	assert.ErrorIs(t, err, ErrConcurrentModification)
}

func TestGetEnforcesParties(t *testing.T) {
	w, _ := newTestWorkflow(t)
	rec := createTestEscrow(t, w, 50000)
	ctx := context.Background()

	_, err := w.Get(ctx, rec.EscrowID, clientID, false)
	require.NoError(t, err)
	_, err = w.Get(ctx, rec.EscrowID, professionalID, false)
	require.NoError(t, err)

	_, err = w.Get(ctx, rec.EscrowID, strangerID, false)
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = w.Get(ctx, rec.EscrowID, strangerID, true)
	require.NoError(t, err, "admins may inspect any escrow")

	_, err = w.GetByContract(ctx, rec.ContractID, clientID, false)
	require.NoError(t, err)

	_, err = w.Get(ctx, "no-such-escrow", clientID, false)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestTimestampsSetOnce(t *testing.T) {
	w, _ := newTestWorkflow(t)
	rec := createTestEscrow(t, w, 50000)
	ctx := context.Background()

	_, err := w.Fund(ctx, rec.EscrowID, clientID)
	require.NoError(t, err)
	first, err := w.SubmitWork(ctx, rec.EscrowID, professionalID)
	require.NoError(t, err)
	submittedAt := *first.WorkSubmittedAt

	_, err = w.RequestRevision(ctx, rec.EscrowID, clientID)
	require.NoError(t, err)

	w.SetNowFunc(func() time.Time { return submittedAt.Add(48 * time.Hour) })
	second, err := w.SubmitWork(ctx, rec.EscrowID, professionalID)
	require.NoError(t, err)

	assert.Equal(t, submittedAt, *second.WorkSubmittedAt, "resubmission must not overwrite the first submission timestamp")
}
