package models

import "time"

// TrustScore is the aggregated reputation row for a user, recomputed as a
// whole from all reviews where the user is the reviewee. One row per user.
type TrustScore struct {
	ID     uint `json:"id" gorm:"primaryKey"`
	UserID uint `json:"userId" gorm:"uniqueIndex;not null"`

	OverallScore float64 `json:"overallScore" gorm:"type:numeric(4,2)"`
	TotalReviews int     `json:"totalReviews"`

	// Worker-side dimensions (rated by clients).
	QualityScore         float64 `json:"qualityScore" gorm:"type:numeric(4,2)"`
	CommunicationScore   float64 `json:"communicationScore" gorm:"type:numeric(4,2)"`
	TimelinessScore      float64 `json:"timelinessScore" gorm:"type:numeric(4,2)"`
	ProfessionalismScore float64 `json:"professionalismScore" gorm:"type:numeric(4,2)"`

	// Client-side dimensions (rated by workers).
	PaymentScore        float64 `json:"paymentScore" gorm:"type:numeric(4,2)"`
	ClarityScore        float64 `json:"clarityScore" gorm:"type:numeric(4,2)"`
	ResponsivenessScore float64 `json:"responsivenessScore" gorm:"type:numeric(4,2)"`
	FairnessScore       float64 `json:"fairnessScore" gorm:"type:numeric(4,2)"`

	RepeatHireRate float64 `json:"repeatHireRate" gorm:"type:numeric(5,2)"` // percentage 0..100
	BadgeLevel     string  `json:"badgeLevel" gorm:"type:varchar(20)"`      // new, verified, trusted, elite, champion

	CalculatedAt time.Time `json:"calculatedAt"`
}

func (TrustScore) TableName() string { return "trust_scores" }
