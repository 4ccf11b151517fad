package handlers

import (
	"net/http"
	"strconv"

	"github.com/iamram3sh/2ndshift-sub002/config"
	"github.com/iamram3sh/2ndshift-sub002/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// AcceptBidHandler accepts a bid on the caller's project. In one transaction
// it marks the bid accepted, rejects competing bids, moves the project to
// "assigned" and opens the contract.
func AcceptBidHandler(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	bidID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid bid id"})
		return
	}

	var bid models.Bid
	if err := config.DB.First(&bid, bidID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Bid not found"})
		return
	}

	var project models.Project
	if err := config.DB.First(&project, bid.ProjectID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Project not found"})
		return
	}
	if project.ClientID != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "Only the project owner can accept bids"})
		return
	}
	if project.Status != "open" {
		c.JSON(http.StatusConflict, gin.H{"error": "Project is not open"})
		return
	}
	if bid.Status != "pending" {
		c.JSON(http.StatusConflict, gin.H{"error": "Bid is not pending"})
		return
	}

	contract := models.Contract{
		ProjectID:      project.ID,
		BidID:          bid.ID,
		ClientID:       project.ClientID,
		ProfessionalID: bid.ProfessionalID,
		Amount:         bid.Amount,
		Status:         "active",
	}

	err = config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&bid).Update("status", "accepted").Error; err != nil {
			return err
		}
		if err := tx.Model(&models.Bid{}).
			Where("project_id = ? AND id <> ? AND status = ?", project.ID, bid.ID, "pending").
			Update("status", "rejected").Error; err != nil {
			return err
		}
		if err := tx.Model(&project).Update("status", "assigned").Error; err != nil {
			return err
		}
		return tx.Create(&contract).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not accept bid"})
		return
	}

	c.JSON(http.StatusCreated, contract)
}

// MyContractsHandler lists contracts where the caller is either party.
func MyContractsHandler(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	query := config.DB.Model(&models.Contract{}).
		Where("client_id = ? OR professional_id = ?", userID, userID).
		Order("created_at desc")
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var totalRows int64
	query.Count(&totalRows)

	var contracts []models.Contract
	if err := query.Scopes(Paginate(c)).Find(&contracts).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not fetch contracts"})
		return
	}

	c.JSON(http.StatusOK, CreatePaginatedResponse(c, contracts, totalRows))
}

// GetContractHandler retrieves one contract. Only the two parties and
// admins can see it.
func GetContractHandler(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	var contract models.Contract
	if err := config.DB.First(&contract, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Contract not found"})
		return
	}
	if contract.ClientID != userID && contract.ProfessionalID != userID && !isAdmin(c) {
		c.JSON(http.StatusForbidden, gin.H{"error": "You are not a party to this contract"})
		return
	}

	var project models.Project
	config.DB.First(&project, contract.ProjectID)

	c.JSON(http.StatusOK, gin.H{"contract": contract, "project": project})
}
