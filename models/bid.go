package models

import "gorm.io/gorm"

// Bid is a worker's offer on an open project. Placing a bid costs Shift
// credits; the debit and the insert happen in one DB transaction.
type Bid struct {
	gorm.Model
	ProjectID      uint    `json:"projectId" gorm:"index;not null"`
	Project        *Project `json:"project,omitempty" gorm:"foreignKey:ProjectID"`
	ProfessionalID uint    `json:"professionalId" gorm:"index;not null"`
	Professional   *User   `json:"professional,omitempty" gorm:"foreignKey:ProfessionalID"`
	Amount         float64 `json:"amount" gorm:"type:numeric(12,2);not null"`
	DeliveryDays   int     `json:"deliveryDays"`
	Proposal       string  `json:"proposal" gorm:"type:text"`
	Status         string  `json:"status" gorm:"type:varchar(20);index;default:'pending'"` // 'pending', 'accepted', 'rejected', 'withdrawn'
}

func (Bid) TableName() string { return "bids" }
