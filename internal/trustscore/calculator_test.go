package trustscore

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/iamram3sh/2ndshift-sub002/models"
)

func intp(v int) *int { return &v }

func clientReview(overall int, quality *int, again bool) models.Review {
	return models.Review{
		ReviewerRole:     "client",
		OverallRating:    overall,
		QualityRating:    quality,
		WouldEngageAgain: again,
	}
}

func TestComputeEmptyReviews(t *testing.T) {
	got := Compute(7, nil, time.Now())

	assert.Equal(t, uint(7), got.UserID)
	assert.Equal(t, 0, got.TotalReviews)
	assert.Equal(t, 0.0, got.OverallScore)
	assert.Equal(t, 0.0, got.RepeatHireRate)
	assert.Equal(t, "new", got.BadgeLevel)
	// Dimensions with no data default to 5.0.
	assert.Equal(t, 5.0, got.QualityScore)
	assert.Equal(t, 5.0, got.PaymentScore)
}

func TestComputeMeansAndRepeatHireRate(t *testing.T) {
	reviews := []models.Review{
		clientReview(5, intp(5), true),
		clientReview(4, intp(3), true),
		clientReview(3, nil, false),
		{
			ReviewerRole:     "worker",
			OverallRating:    4,
			PaymentRating:    intp(4),
			FairnessRating:   intp(2),
			WouldEngageAgain: true,
		},
	}

	got := Compute(7, reviews, time.Now())

	assert.Equal(t, 4, got.TotalReviews)
	assert.Equal(t, 4.0, got.OverallScore) // (5+4+3+4)/4
	assert.Equal(t, 75.0, got.RepeatHireRate)

	// Quality averaged over the two client reviews that rated it.
	assert.Equal(t, 4.0, got.QualityScore)
	// No client rated communication: default.
	assert.Equal(t, 5.0, got.CommunicationScore)

	// Client dimensions come from the single worker review.
	assert.Equal(t, 4.0, got.PaymentScore)
	assert.Equal(t, 2.0, got.FairnessScore)
	assert.Equal(t, 5.0, got.ClarityScore)
}

func TestDimensionPartitionByReviewerRole(t *testing.T) {
	// A stray quality rating on a worker-authored review must not leak into
	// the worker-dimension mean, which only counts client reviews.
	reviews := []models.Review{
		{ReviewerRole: "worker", OverallRating: 1, QualityRating: intp(1)},
		clientReview(5, intp(5), true),
	}

	got := Compute(7, reviews, time.Now())
	assert.Equal(t, 5.0, got.QualityScore)
}

func TestBadgeSelection(t *testing.T) {
	cases := []struct {
		score   float64
		reviews int
		want    string
	}{
		{4.9, 60, "champion"},
		{4.9, 49, "elite"},    // score enough, volume one short of champion
		{4.5, 25, "elite"},
		{4.4, 100, "trusted"}, // volume huge, score caps the tier
		{4.0, 10, "trusted"},
		{3.9, 10, "verified"},
		{3.5, 3, "verified"},
		{3.5, 2, "new"},
		{0, 0, "new"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, BadgeFor(tc.score, tc.reviews), "score=%.1f reviews=%d", tc.score, tc.reviews)
	}
}
