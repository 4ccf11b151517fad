package escrow

import (
	"context"
	"sync"
	"time"

	"github.com/iamram3sh/2ndshift-sub002/models"
)

// MemoryStore is an in-process Store used by tests and local development.
// It is selected explicitly by the composition root, never substituted
// silently when the database configuration is missing.
type MemoryStore struct {
	mu         sync.Mutex
	byID       map[string]models.Escrow
	byContract map[uint]string
	releases   []models.PaymentRelease
	completed  map[uint]time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		byID:       make(map[string]models.Escrow),
		byContract: make(map[uint]string),
		completed:  make(map[uint]time.Time),
	}
}

func (s *MemoryStore) Create(_ context.Context, rec *models.Escrow) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.byContract[rec.ContractID]; ok {
		return ErrDuplicateEscrow
	}
	rec.CreatedAt = time.Now().UTC()
	rec.UpdatedAt = rec.CreatedAt
	s.byID[rec.EscrowID] = *rec
	s.byContract[rec.ContractID] = rec.EscrowID
	return nil
}

func (s *MemoryStore) GetByID(_ context.Context, escrowID string) (*models.Escrow, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.byID[escrowID]
	if !ok {
		return nil, ErrNotFound
	}
	out := rec
	return &out, nil
}

func (s *MemoryStore) GetByContractID(_ context.Context, contractID uint) (*models.Escrow, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id, ok := s.byContract[contractID]
	if !ok {
		return nil, ErrNotFound
	}
	out := s.byID[id]
	return &out, nil
}

func (s *MemoryStore) Update(_ context.Context, rec *models.Escrow, expected models.EscrowStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	current, ok := s.byID[rec.EscrowID]
	if !ok {
		return ErrNotFound
	}
	if current.Status != expected {
		return ErrConcurrentModification
	}
	rec.UpdatedAt = time.Now().UTC()
	s.byID[rec.EscrowID] = *rec
	return nil
}

func (s *MemoryStore) CreatePaymentRelease(_ context.Context, rel *models.PaymentRelease) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	rel.CreatedAt = time.Now().UTC()
	s.releases = append(s.releases, *rel)
	return nil
}

func (s *MemoryStore) CompleteContract(_ context.Context, contractID uint, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.completed[contractID] = at
	return nil
}

// Releases returns a copy of the audit rows written so far.
func (s *MemoryStore) Releases() []models.PaymentRelease {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.PaymentRelease, len(s.releases))
	copy(out, s.releases)
	return out
}

// ContractCompleted reports whether CompleteContract was called for the id.
func (s *MemoryStore) ContractCompleted(contractID uint) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.completed[contractID]
	return ok
}
