package trustscore

import (
	"math"
	"time"

	"github.com/iamram3sh/2ndshift-sub002/models"
)

// Tier is one badge level with the thresholds both of which must be met.
type Tier struct {
	Level      string
	MinScore   float64
	MinReviews int
}

// Tiers is scanned highest first; the first tier whose thresholds are both
// met wins. The zero tier "new" always matches.
var Tiers = []Tier{
	{Level: "champion", MinScore: 4.8, MinReviews: 50},
	{Level: "elite", MinScore: 4.5, MinReviews: 25},
	{Level: "trusted", MinScore: 4.0, MinReviews: 10},
	{Level: "verified", MinScore: 3.5, MinReviews: 3},
	{Level: "new", MinScore: 0, MinReviews: 0},
}

// BadgeFor selects the badge level for a score/review-count pair.
func BadgeFor(overallScore float64, totalReviews int) string {
	for _, tier := range Tiers {
		if overallScore >= tier.MinScore && totalReviews >= tier.MinReviews {
			return tier.Level
		}
	}
	return "new"
}

// Compute aggregates all reviews where the user is the reviewee into one
// TrustScore row. The whole row is recomputed from scratch every time; a
// dimension with no data points defaults to 5.0 so a missing rating never
// drags a profile down.
func Compute(userID uint, reviews []models.Review, now time.Time) models.TrustScore {
	score := models.TrustScore{
		UserID:       userID,
		TotalReviews: len(reviews),
		CalculatedAt: now,
	}

	var overallSum float64
	var wouldAgain int
	for _, r := range reviews {
		overallSum += float64(r.OverallRating)
		if r.WouldEngageAgain {
			wouldAgain++
		}
	}
	if len(reviews) > 0 {
		score.OverallScore = round2(overallSum / float64(len(reviews)))
		score.RepeatHireRate = round2(100 * float64(wouldAgain) / float64(len(reviews)))
	}

	// Worker dimensions come from reviews written by clients, client
	// dimensions from reviews written by workers.
	var fromClients, fromWorkers []models.Review
	for _, r := range reviews {
		switch r.ReviewerRole {
		case "client":
			fromClients = append(fromClients, r)
		case "worker":
			fromWorkers = append(fromWorkers, r)
		}
	}

	score.QualityScore = dimensionMean(fromClients, func(r models.Review) *int { return r.QualityRating })
	score.CommunicationScore = dimensionMean(fromClients, func(r models.Review) *int { return r.CommunicationRating })
	score.TimelinessScore = dimensionMean(fromClients, func(r models.Review) *int { return r.TimelinessRating })
	score.ProfessionalismScore = dimensionMean(fromClients, func(r models.Review) *int { return r.ProfessionalismRating })

	score.PaymentScore = dimensionMean(fromWorkers, func(r models.Review) *int { return r.PaymentRating })
	score.ClarityScore = dimensionMean(fromWorkers, func(r models.Review) *int { return r.ClarityRating })
	score.ResponsivenessScore = dimensionMean(fromWorkers, func(r models.Review) *int { return r.ResponsivenessRating })
	score.FairnessScore = dimensionMean(fromWorkers, func(r models.Review) *int { return r.FairnessRating })

	score.BadgeLevel = BadgeFor(score.OverallScore, score.TotalReviews)
	return score
}

func dimensionMean(reviews []models.Review, pick func(models.Review) *int) float64 {
	var sum float64
	var n int
	for _, r := range reviews {
		if v := pick(r); v != nil {
			sum += float64(*v)
			n++
		}
	}
	if n == 0 {
		return 5.0
	}
	return round2(sum / float64(n))
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
