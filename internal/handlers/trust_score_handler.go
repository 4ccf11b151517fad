package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/iamram3sh/2ndshift-sub002/config"
	"github.com/iamram3sh/2ndshift-sub002/internal/trustscore"
	"github.com/iamram3sh/2ndshift-sub002/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm/clause"
)

// recomputeTrustScore rebuilds a user's trust score from all of their
// reviews and upserts the single row keyed by user id. Whole or nothing:
// a failed load leaves the previous score untouched.
func recomputeTrustScore(userID uint) error {
	var reviews []models.Review
	if err := config.DB.Where("reviewee_id = ?", userID).Order("created_at asc").Find(&reviews).Error; err != nil {
		return err
	}

	score := trustscore.Compute(userID, reviews, time.Now().UTC())
	return config.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		UpdateAll: true,
	}).Create(&score).Error
}

// GetTrustScoreHandler returns a user's trust score. Users without a single
// review get the zero-state score rather than a 404.
func GetTrustScoreHandler(c *gin.Context) {
	userID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user id"})
		return
	}

	var score models.TrustScore
	if err := config.DB.Where("user_id = ?", userID).First(&score).Error; err != nil {
		score = trustscore.Compute(uint(userID), nil, time.Now().UTC())
	}
	c.JSON(http.StatusOK, score)
}

// RecalculateTrustScoreHandler forces a recompute. Admin maintenance
// endpoint for when reviews are edited out of band.
func RecalculateTrustScoreHandler(c *gin.Context) {
	userID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user id"})
		return
	}

	if err := recomputeTrustScore(uint(userID)); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not recalculate trust score"})
		return
	}

	var score models.TrustScore
	config.DB.Where("user_id = ?", userID).First(&score)
	c.JSON(http.StatusOK, score)
}
