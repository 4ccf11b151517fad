package models

import "gorm.io/gorm"

// Review is feedback left by one contract party about the other. The set of
// dimension ratings depends on who is reviewing: clients rate the worker's
// craft, workers rate the client's conduct.
type Review struct {
	gorm.Model
	ContractID   uint   `json:"contractId" gorm:"index;not null"`
	ReviewerID   uint   `json:"reviewerId" gorm:"index;not null"`
	RevieweeID   uint   `json:"revieweeId" gorm:"index;not null"`
	ReviewerRole string `json:"reviewerRole" gorm:"type:varchar(10);not null"` // 'client' or 'worker'

	OverallRating int    `json:"overallRating" gorm:"not null"` // 1..5
	Comment       string `json:"comment" gorm:"type:text"`

	// Worker dimensions, present when the reviewer is a client.
	QualityRating         *int `json:"qualityRating,omitempty"`
	CommunicationRating   *int `json:"communicationRating,omitempty"`
	TimelinessRating      *int `json:"timelinessRating,omitempty"`
	ProfessionalismRating *int `json:"professionalismRating,omitempty"`

	// Client dimensions, present when the reviewer is a worker.
	PaymentRating        *int `json:"paymentRating,omitempty"`
	ClarityRating        *int `json:"clarityRating,omitempty"`
	ResponsivenessRating *int `json:"responsivenessRating,omitempty"`
	FairnessRating       *int `json:"fairnessRating,omitempty"`

	WouldEngageAgain bool `json:"wouldEngageAgain"`
}

func (Review) TableName() string { return "reviews" }
