package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/iamram3sh/2ndshift-sub002/config"
	"github.com/iamram3sh/2ndshift-sub002/models"

	"github.com/gin-gonic/gin"
)

type ReviewInput struct {
	ContractID    uint   `json:"contractId" binding:"required"`
	OverallRating int    `json:"overallRating" binding:"required,min=1,max=5"`
	Comment       string `json:"comment"`

	QualityRating         *int `json:"qualityRating" binding:"omitempty,min=1,max=5"`
	CommunicationRating   *int `json:"communicationRating" binding:"omitempty,min=1,max=5"`
	TimelinessRating      *int `json:"timelinessRating" binding:"omitempty,min=1,max=5"`
	ProfessionalismRating *int `json:"professionalismRating" binding:"omitempty,min=1,max=5"`

	PaymentRating        *int `json:"paymentRating" binding:"omitempty,min=1,max=5"`
	ClarityRating        *int `json:"clarityRating" binding:"omitempty,min=1,max=5"`
	ResponsivenessRating *int `json:"responsivenessRating" binding:"omitempty,min=1,max=5"`
	FairnessRating       *int `json:"fairnessRating" binding:"omitempty,min=1,max=5"`

	WouldEngageAgain bool `json:"wouldEngageAgain"`
}

// CreateReviewHandler posts a review on a completed contract. The reviewer
// role follows from which side of the contract the caller is on, and only
// that role's dimension ratings are kept.
func CreateReviewHandler(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	var input ReviewInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid review data: " + err.Error()})
		return
	}

	var contract models.Contract
	if err := config.DB.First(&contract, input.ContractID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Contract not found"})
		return
	}
	if contract.Status != "completed" {
		c.JSON(http.StatusConflict, gin.H{"error": "Reviews can only be left on completed contracts"})
		return
	}

	review := models.Review{
		ContractID:       contract.ID,
		ReviewerID:       userID,
		OverallRating:    input.OverallRating,
		Comment:          input.Comment,
		WouldEngageAgain: input.WouldEngageAgain,
	}

	switch userID {
	case contract.ClientID:
		review.ReviewerRole = "client"
		review.RevieweeID = contract.ProfessionalID
		review.QualityRating = input.QualityRating
		review.CommunicationRating = input.CommunicationRating
		review.TimelinessRating = input.TimelinessRating
		review.ProfessionalismRating = input.ProfessionalismRating
	case contract.ProfessionalID:
		review.ReviewerRole = "worker"
		review.RevieweeID = contract.ClientID
		review.PaymentRating = input.PaymentRating
		review.ClarityRating = input.ClarityRating
		review.ResponsivenessRating = input.ResponsivenessRating
		review.FairnessRating = input.FairnessRating
	default:
		c.JSON(http.StatusForbidden, gin.H{"error": "You are not a party to this contract"})
		return
	}

	var existing int64
	config.DB.Model(&models.Review{}).
		Where("contract_id = ? AND reviewer_id = ?", contract.ID, userID).
		Count(&existing)
	if existing > 0 {
		c.JSON(http.StatusConflict, gin.H{"error": "You already reviewed this contract"})
		return
	}

	if err := config.DB.Create(&review).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not save review"})
		return
	}

	if err := recomputeTrustScore(review.RevieweeID); err != nil {
		slog.Warn("Trust score recompute failed", "user_id", review.RevieweeID, "error", err)
	}

	c.JSON(http.StatusCreated, review)
}

// ListUserReviewsHandler lists reviews received by a user, newest first.
func ListUserReviewsHandler(c *gin.Context) {
	userID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user id"})
		return
	}

	query := config.DB.Model(&models.Review{}).
		Where("reviewee_id = ?", userID).
		Order("created_at desc")
	if role := c.Query("role"); role != "" {
		query = query.Where("reviewer_role = ?", role)
	}

	var totalRows int64
	query.Count(&totalRows)

	var reviews []models.Review
	if err := query.Scopes(Paginate(c)).Find(&reviews).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not fetch reviews"})
		return
	}

	c.JSON(http.StatusOK, CreatePaginatedResponse(c, reviews, totalRows))
}
