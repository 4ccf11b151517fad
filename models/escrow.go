package models

import "time"

type EscrowStatus string

const (
	EscrowPending           EscrowStatus = "pending"
	EscrowFunded            EscrowStatus = "funded"
	EscrowWorkStarted       EscrowStatus = "work_started"
	EscrowWorkSubmitted     EscrowStatus = "work_submitted"
	EscrowRevisionRequested EscrowStatus = "revision_requested"
	EscrowReleased          EscrowStatus = "released"
	EscrowDisputed          EscrowStatus = "disputed"
	EscrowCancelled         EscrowStatus = "cancelled"
)

// Terminal reports whether no further transition is defined from the status.
// Disputed escrows stay disputed until staff intervene outside the workflow.
func (s EscrowStatus) Terminal() bool {
	switch s {
	case EscrowReleased, EscrowCancelled, EscrowDisputed:
		return true
	}
	return false
}

// Escrow holds the funds of one contract until the client approves the work.
// The fee breakdown is computed once at creation and never recomputed, even
// if the platform policy changes later.
type Escrow struct {
	ID             uint `json:"id" gorm:"primaryKey"`
	EscrowID       string `json:"escrowId" gorm:"uniqueIndex;size:36;not null"`
	ContractID     uint `json:"contractId" gorm:"uniqueIndex;not null"`
	ProjectID      uint `json:"projectId" gorm:"index;not null"`
	ClientID       uint `json:"clientId" gorm:"index;not null"`
	ProfessionalID uint `json:"professionalId" gorm:"index;not null"`

	TotalAmount        float64 `json:"totalAmount" gorm:"type:numeric(12,2);not null"`
	PlatformFee        float64 `json:"platformFee" gorm:"type:numeric(12,2);not null"`
	TDSAmount          float64 `json:"tdsAmount" gorm:"column:tds_amount;type:numeric(12,2);not null"`
	ProfessionalPayout float64 `json:"professionalPayout" gorm:"type:numeric(12,2);not null"`

	Status        EscrowStatus `json:"status" gorm:"type:varchar(20);index;not null;default:'pending'"`
	MaxRevisions  int          `json:"maxRevisions" gorm:"not null"`
	RevisionCount int          `json:"revisionCount" gorm:"not null;default:0"`

	ClientRating  *int   `json:"clientRating,omitempty"` // 1..5, set once by approve
	ClientReview  string `json:"clientReview,omitempty" gorm:"type:text"`
	DisputeReason string `json:"disputeReason,omitempty" gorm:"type:text"`

	FundedAt        *time.Time `json:"fundedAt,omitempty"`
	WorkStartedAt   *time.Time `json:"workStartedAt,omitempty"`
	WorkSubmittedAt *time.Time `json:"workSubmittedAt,omitempty"`
	ApprovedAt      *time.Time `json:"approvedAt,omitempty"`
	ReleasedAt      *time.Time `json:"releasedAt,omitempty"`
	DisputeOpenedAt *time.Time `json:"disputeOpenedAt,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (Escrow) TableName() string { return "escrows" }

// PaymentRelease is the append-only audit row written when an escrow is
// approved. It snapshots the amounts at release time and is never updated.
type PaymentRelease struct {
	ID             uint   `json:"id" gorm:"primaryKey"`
	ReleaseID      string `json:"releaseId" gorm:"uniqueIndex;size:36;not null"`
	EscrowID       string `json:"escrowId" gorm:"index;size:36;not null"`
	ContractID     uint   `json:"contractId" gorm:"index;not null"`
	ProfessionalID uint   `json:"professionalId" gorm:"index;not null"`

	Amount      float64 `json:"amount" gorm:"type:numeric(12,2);not null"`
	PlatformFee float64 `json:"platformFee" gorm:"type:numeric(12,2);not null"`
	TDSDeducted float64 `json:"tdsDeducted" gorm:"column:tds_deducted;type:numeric(12,2);not null"`
	NetAmount   float64 `json:"netAmount" gorm:"type:numeric(12,2);not null"`

	ReleasedAt time.Time `json:"releasedAt"`
	CreatedAt  time.Time `json:"createdAt"`
}

func (PaymentRelease) TableName() string { return "payment_releases" }
