package escrow

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/iamram3sh/2ndshift-sub002/models"
)

// GormStore is the production Store backed by Postgres through GORM.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) Create(ctx context.Context, rec *models.Escrow) error {
	if err := s.db.WithContext(ctx).Create(rec).Error; err != nil {
		return storeErr(err)
	}
	return nil
}

func (s *GormStore) GetByID(ctx context.Context, escrowID string) (*models.Escrow, error) {
	var rec models.Escrow
	err := s.db.WithContext(ctx).Where("escrow_id = ?", escrowID).First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, storeErr(err)
	}
	return &rec, nil
}

func (s *GormStore) GetByContractID(ctx context.Context, contractID uint) (*models.Escrow, error) {
	var rec models.Escrow
	err := s.db.WithContext(ctx).Where("contract_id = ?", contractID).First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, storeErr(err)
	}
	return &rec, nil
}

// Update writes the mutable columns with a conditional UPDATE keyed on the
// expected status. Zero rows affected means a concurrent writer moved the
// record first; the caller re-reads and retries against fresh state.
func (s *GormStore) Update(ctx context.Context, rec *models.Escrow, expected models.EscrowStatus) error {
	updates := map[string]interface{}{
		"status":            rec.Status,
		"revision_count":    rec.RevisionCount,
		"client_rating":     rec.ClientRating,
		"client_review":     rec.ClientReview,
		"dispute_reason":    rec.DisputeReason,
		"funded_at":         rec.FundedAt,
		"work_started_at":   rec.WorkStartedAt,
		"work_submitted_at": rec.WorkSubmittedAt,
		"approved_at":       rec.ApprovedAt,
		"released_at":       rec.ReleasedAt,
		"dispute_opened_at": rec.DisputeOpenedAt,
	}

	res := s.db.WithContext(ctx).Model(&models.Escrow{}).
		Where("escrow_id = ? AND status = ?", rec.EscrowID, expected).
		Updates(updates)
	if res.Error != nil {
		return storeErr(res.Error)
	}
	if res.RowsAffected == 0 {
		if _, err := s.GetByID(ctx, rec.EscrowID); errors.Is(err, ErrNotFound) {
			return ErrNotFound
		}
		return ErrConcurrentModification
	}
	return nil
}

func (s *GormStore) CreatePaymentRelease(ctx context.Context, rel *models.PaymentRelease) error {
	if err := s.db.WithContext(ctx).Create(rel).Error; err != nil {
		return storeErr(err)
	}
	return nil
}

func (s *GormStore) CompleteContract(ctx context.Context, contractID uint, at time.Time) error {
	err := s.db.WithContext(ctx).Model(&models.Contract{}).
		Where("id = ?", contractID).
		Updates(map[string]interface{}{"status": "completed", "completed_at": at}).Error
	if err != nil {
		return storeErr(err)
	}
	return nil
}

func storeErr(err error) error {
	return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
}
