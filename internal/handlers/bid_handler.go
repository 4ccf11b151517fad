package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/iamram3sh/2ndshift-sub002/config"
	"github.com/iamram3sh/2ndshift-sub002/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type BidInput struct {
	Amount       float64 `json:"amount" binding:"required,gt=0"`
	DeliveryDays int     `json:"deliveryDays" binding:"required,gt=0"`
	Proposal     string  `json:"proposal" binding:"required"`
}

var errInsufficientShifts = fmt.Errorf("insufficient shift balance")

// PlaceBidHandler places a bid on an open project. The bid fee is debited
// from the worker's Shift wallet in the same transaction, so a failed bid
// never costs anything.
func PlaceBidHandler(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	projectID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid project id"})
		return
	}

	var input BidInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid bid data: " + err.Error()})
		return
	}

	var project models.Project
	if err := config.DB.First(&project, projectID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Project not found"})
		return
	}
	if project.Status != "open" {
		c.JSON(http.StatusConflict, gin.H{"error": "Project is no longer accepting bids"})
		return
	}
	if project.ClientID == userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "You cannot bid on your own project"})
		return
	}

	var existing int64
	config.DB.Model(&models.Bid{}).
		Where("project_id = ? AND professional_id = ? AND status <> ?", project.ID, userID, "withdrawn").
		Count(&existing)
	if existing > 0 {
		c.JSON(http.StatusConflict, gin.H{"error": "You already have an active bid on this project"})
		return
	}

	cost := config.BidShiftCost()
	bid := models.Bid{
		ProjectID:      project.ID,
		ProfessionalID: userID,
		Amount:         input.Amount,
		DeliveryDays:   input.DeliveryDays,
		Proposal:       input.Proposal,
		Status:         "pending",
	}

	err = config.DB.Transaction(func(tx *gorm.DB) error {
		if cost > 0 {
			var wallet models.ShiftWallet
			if err := tx.Where("user_id = ?", userID).First(&wallet).Error; err != nil {
				return err
			}
			if wallet.Balance < cost {
				return errInsufficientShifts
			}
			if err := tx.Model(&wallet).Update("balance", gorm.Expr("balance - ?", cost)).Error; err != nil {
				return err
			}
		}
		if err := tx.Create(&bid).Error; err != nil {
			return err
		}
		if cost > 0 {
			return tx.Create(&models.ShiftTransaction{
				UserID:    userID,
				Amount:    -cost,
				Kind:      "debit",
				Reason:    "bid",
				Reference: fmt.Sprintf("bid:%d", bid.ID),
			}).Error
		}
		return nil
	})
	if err == errInsufficientShifts {
		c.JSON(http.StatusPaymentRequired, gin.H{"error": "Not enough Shifts to place a bid"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not place bid"})
		return
	}

	c.JSON(http.StatusCreated, bid)
}

// MyBidsHandler lists the current worker's bids, newest first.
func MyBidsHandler(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	query := config.DB.Model(&models.Bid{}).Where("professional_id = ?", userID).Order("created_at desc")
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var totalRows int64
	query.Count(&totalRows)

	var bids []models.Bid
	if err := query.Scopes(Paginate(c)).Find(&bids).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not fetch bids"})
		return
	}

	c.JSON(http.StatusOK, CreatePaginatedResponse(c, bids, totalRows))
}

// WithdrawBidHandler withdraws a pending bid. The Shift fee is not refunded.
func WithdrawBidHandler(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	var bid models.Bid
	if err := config.DB.First(&bid, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Bid not found"})
		return
	}
	if bid.ProfessionalID != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "Only the bidder can withdraw a bid"})
		return
	}
	if bid.Status != "pending" {
		c.JSON(http.StatusConflict, gin.H{"error": "Only pending bids can be withdrawn"})
		return
	}

	if err := config.DB.Model(&bid).Update("status", "withdrawn").Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not withdraw bid"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Bid withdrawn"})
}
