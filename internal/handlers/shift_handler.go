package handlers

import (
	"fmt"
	"log/slog"
	"math"
	"net/http"

	"github.com/iamram3sh/2ndshift-sub002/config"
	"github.com/iamram3sh/2ndshift-sub002/models"

	"github.com/Knetic/govaluate"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// GetShiftBalanceHandler returns the caller's Shift balance.
func GetShiftBalanceHandler(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	var wallet models.ShiftWallet
	if err := config.DB.Where("user_id = ?", userID).First(&wallet).Error; err != nil {
		c.JSON(http.StatusOK, gin.H{"balance": 0})
		return
	}
	c.JSON(http.StatusOK, gin.H{"balance": wallet.Balance})
}

// ListShiftTransactionsHandler lists the caller's wallet ledger, newest first.
func ListShiftTransactionsHandler(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	query := config.DB.Model(&models.ShiftTransaction{}).Where("user_id = ?", userID).Order("created_at desc")

	var totalRows int64
	query.Count(&totalRows)

	var txns []models.ShiftTransaction
	if err := query.Scopes(Paginate(c)).Find(&txns).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not fetch transactions"})
		return
	}

	c.JSON(http.StatusOK, CreatePaginatedResponse(c, txns, totalRows))
}

// ListShiftPackagesHandler lists purchasable credit bundles.
func ListShiftPackagesHandler(c *gin.Context) {
	var packages []models.ShiftPackage
	if err := config.DB.Where("active = ?", true).Order("shifts asc").Find(&packages).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not fetch packages"})
		return
	}
	c.JSON(http.StatusOK, packages)
}

// packageBonus evaluates a package's bonus formula over its shifts and
// price. A broken formula yields zero bonus rather than a failed purchase.
func packageBonus(pkg models.ShiftPackage) int {
	if pkg.BonusFormula == "" {
		return 0
	}
	expr, err := govaluate.NewEvaluableExpression(pkg.BonusFormula)
	if err != nil {
		slog.Warn("Invalid bonus formula", "package_id", pkg.ID, "error", err)
		return 0
	}
	result, err := expr.Evaluate(map[string]interface{}{
		"shifts": float64(pkg.Shifts),
		"price":  pkg.Price,
	})
	if err != nil {
		slog.Warn("Bonus formula evaluation failed", "package_id", pkg.ID, "error", err)
		return 0
	}
	bonus, ok := result.(float64)
	if !ok || bonus < 0 {
		return 0
	}
	return int(math.Floor(bonus))
}

type PurchaseShiftsInput struct {
	PackageID uint `json:"packageId" binding:"required"`
}

// PurchaseShiftsHandler credits a package's shifts plus its formula bonus to
// the caller's wallet. Payment capture itself happens upstream; this records
// the credit.
func PurchaseShiftsHandler(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	var input PurchaseShiftsInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "A package id is required"})
		return
	}

	var pkg models.ShiftPackage
	if err := config.DB.First(&pkg, input.PackageID).Error; err != nil || !pkg.Active {
		c.JSON(http.StatusNotFound, gin.H{"error": "Package not found"})
		return
	}

	bonus := packageBonus(pkg)
	credit := pkg.Shifts + bonus

	err := config.DB.Transaction(func(tx *gorm.DB) error {
		var wallet models.ShiftWallet
		if err := tx.Where(models.ShiftWallet{UserID: userID}).FirstOrCreate(&wallet).Error; err != nil {
			return err
		}
		if err := tx.Model(&wallet).Update("balance", gorm.Expr("balance + ?", credit)).Error; err != nil {
			return err
		}
		return tx.Create(&models.ShiftTransaction{
			UserID:    userID,
			Amount:    credit,
			Kind:      "credit",
			Reason:    "purchase",
			Reference: fmt.Sprintf("package:%d", pkg.ID),
		}).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not credit shifts"})
		return
	}

	slog.Info("Shifts purchased", "user_id", userID, "package_id", pkg.ID, "credited", credit, "bonus", bonus)
	c.JSON(http.StatusOK, gin.H{"credited": credit, "bonus": bonus})
}
