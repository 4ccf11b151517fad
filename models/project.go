package models

import (
	"time"

	"gorm.io/gorm"
)

// Project is a job posted by a client. Workers bid on open projects; an
// accepted bid moves the project to 'assigned'.
type Project struct {
	gorm.Model
	ClientID    uint   `json:"clientId" gorm:"index;not null"`
	Client      *User  `json:"client,omitempty" gorm:"foreignKey:ClientID"`
	Title       string `json:"title" gorm:"not null"`
	Description string `json:"description" gorm:"type:text"`
	Category    string `json:"category" gorm:"index"`
	Skills      string `json:"skills"` // comma-separated tags

	BudgetMin float64 `json:"budgetMin" gorm:"type:numeric(12,2)"`
	BudgetMax float64 `json:"budgetMax" gorm:"type:numeric(12,2)"`

	Status   string     `json:"status" gorm:"type:varchar(20);index;default:'open'"` // 'open', 'assigned', 'completed', 'cancelled'
	Deadline *time.Time `json:"deadline,omitempty"`

	Bids []Bid `json:"bids,omitempty" gorm:"foreignKey:ProjectID"`
}

func (Project) TableName() string { return "projects" }
