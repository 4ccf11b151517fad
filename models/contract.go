package models

import (
	"time"

	"gorm.io/gorm"
)

// Contract is the agreement formed when a client accepts a bid. The escrow
// record attached to it tracks the money; the contract tracks the engagement.
type Contract struct {
	gorm.Model
	ProjectID      uint    `json:"projectId" gorm:"index;not null"`
	Project        *Project `json:"project,omitempty" gorm:"foreignKey:ProjectID"`
	BidID          uint    `json:"bidId" gorm:"uniqueIndex;not null"`
	ClientID       uint    `json:"clientId" gorm:"index;not null"`
	Client         *User   `json:"client,omitempty" gorm:"foreignKey:ClientID"`
	ProfessionalID uint    `json:"professionalId" gorm:"index;not null"`
	Professional   *User   `json:"professional,omitempty" gorm:"foreignKey:ProfessionalID"`
	Amount         float64 `json:"amount" gorm:"type:numeric(12,2);not null"`

	Status      string     `json:"status" gorm:"type:varchar(20);index;default:'active'"` // 'active', 'completed', 'cancelled'
	CompletedAt *time.Time `json:"completedAt,omitempty"`
}

func (Contract) TableName() string { return "contracts" }
