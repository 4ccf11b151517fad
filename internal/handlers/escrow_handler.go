package handlers

import (
	"encoding/csv"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/iamram3sh/2ndshift-sub002/config"
	"github.com/iamram3sh/2ndshift-sub002/internal/escrow"
	"github.com/iamram3sh/2ndshift-sub002/models"

	"github.com/gin-gonic/gin"
)

// escrowWorkflow wires the state machine to the live database with the
// platform policy from the environment.
func escrowWorkflow() *escrow.Workflow {
	return escrow.New(escrow.NewGormStore(config.DB), config.Platform())
}

// mapEscrowError translates workflow sentinels into HTTP responses. Order
// matters: the most specific sentinels are checked first.
func mapEscrowError(c *gin.Context, err error) {
	var dup *escrow.DuplicateEscrowError

	switch {
	case errors.As(err, &dup):
		c.JSON(http.StatusConflict, gin.H{
			"error":    "An escrow already exists for this contract",
			"escrowId": dup.Existing.EscrowID,
		})
	case errors.Is(err, escrow.ErrRevisionLimitExceeded):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	case errors.Is(err, escrow.ErrRatingRequired),
		errors.Is(err, escrow.ErrBelowMinimum),
		errors.Is(err, escrow.ErrInvalidAmount),
		errors.Is(err, escrow.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, escrow.ErrUnauthorized), errors.Is(err, escrow.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, escrow.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Escrow not found"})
	case errors.Is(err, escrow.ErrInvalidTransition), errors.Is(err, escrow.ErrConcurrentModification):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, escrow.ErrStoreUnavailable):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Escrow store is temporarily unavailable"})
	default:
		slog.Error("Unexpected escrow error", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal error"})
	}
}

type CreateEscrowInput struct {
	ContractID uint     `json:"contractId" binding:"required"`
	Amount     *float64 `json:"amount"`
}

// CreateEscrowHandler opens a pending escrow for an active contract. Only
// the contract's client can open it; the amount defaults to the contract
// amount when omitted.
func CreateEscrowHandler(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	var input CreateEscrowInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid escrow data: " + err.Error()})
		return
	}

	var contract models.Contract
	if err := config.DB.First(&contract, input.ContractID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Contract not found"})
		return
	}
	if contract.ClientID != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "Only the contract's client can open an escrow"})
		return
	}
	if contract.Status != "active" {
		c.JSON(http.StatusConflict, gin.H{"error": "Contract is not active"})
		return
	}

	amount := contract.Amount
	if input.Amount != nil {
		amount = *input.Amount
	}

	rec, err := escrowWorkflow().CreateEscrow(c.Request.Context(), escrow.CreateEscrowInput{
		ContractID:     contract.ID,
		ProjectID:      contract.ProjectID,
		ClientID:       contract.ClientID,
		ProfessionalID: contract.ProfessionalID,
		Amount:         amount,
	})
	if err != nil {
		mapEscrowError(c, err)
		return
	}

	slog.Info("Escrow created", "escrow_id", rec.EscrowID, "contract_id", contract.ID, "amount", rec.TotalAmount)
	c.JSON(http.StatusCreated, rec)
}

// FundEscrowHandler marks the escrow as funded by the client.
func FundEscrowHandler(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}
	rec, err := escrowWorkflow().Fund(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		mapEscrowError(c, err)
		return
	}
	c.JSON(http.StatusOK, rec)
}

// StartWorkHandler records that the professional has started working.
func StartWorkHandler(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}
	rec, err := escrowWorkflow().StartWork(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		mapEscrowError(c, err)
		return
	}
	c.JSON(http.StatusOK, rec)
}

// SubmitWorkHandler records a deliverable submission by the professional.
func SubmitWorkHandler(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}
	rec, err := escrowWorkflow().SubmitWork(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		mapEscrowError(c, err)
		return
	}
	c.JSON(http.StatusOK, rec)
}

// RequestRevisionHandler sends submitted work back for rework.
func RequestRevisionHandler(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}
	rec, err := escrowWorkflow().RequestRevision(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		mapEscrowError(c, err)
		return
	}
	c.JSON(http.StatusOK, rec)
}

type ApproveEscrowInput struct {
	Rating int    `json:"rating" binding:"required"`
	Review string `json:"review"`
}

// ApproveEscrowHandler releases the escrow: the payout snapshot is paid
// out, the contract is completed, and the client's rating is stored both on
// the escrow and as a marketplace review feeding the worker's trust score.
func ApproveEscrowHandler(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	var input ApproveEscrowInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "A rating is required to approve"})
		return
	}

	rec, err := escrowWorkflow().Approve(c.Request.Context(), c.Param("id"), userID, input.Rating, input.Review)
	if err != nil {
		mapEscrowError(c, err)
		return
	}

	// The rating doubles as a marketplace review of the worker. Review and
	// trust score updates are best effort; the release already happened.
	review := models.Review{
		ContractID:    rec.ContractID,
		ReviewerID:    rec.ClientID,
		RevieweeID:    rec.ProfessionalID,
		ReviewerRole:  "client",
		OverallRating: input.Rating,
		Comment:       input.Review,
	}
	if err := config.DB.Create(&review).Error; err != nil {
		slog.Warn("Could not store approval review", "escrow_id", rec.EscrowID, "error", err)
	} else if err := recomputeTrustScore(rec.ProfessionalID); err != nil {
		slog.Warn("Trust score recompute failed", "user_id", rec.ProfessionalID, "error", err)
	}

	slog.Info("Escrow released", "escrow_id", rec.EscrowID, "payout", rec.ProfessionalPayout)
	c.JSON(http.StatusOK, rec)
}

type DisputeEscrowInput struct {
	Reason string `json:"reason" binding:"required"`
}

// DisputeEscrowHandler freezes the escrow for staff review.
func DisputeEscrowHandler(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	var input DisputeEscrowInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "A dispute reason is required"})
		return
	}

	rec, err := escrowWorkflow().Dispute(c.Request.Context(), c.Param("id"), userID, input.Reason)
	if err != nil {
		mapEscrowError(c, err)
		return
	}

	slog.Info("Escrow disputed", "escrow_id", rec.EscrowID, "by", userID)
	c.JSON(http.StatusOK, rec)
}

// CancelEscrowHandler voids a pending escrow before funding.
func CancelEscrowHandler(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}
	rec, err := escrowWorkflow().Cancel(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		mapEscrowError(c, err)
		return
	}
	c.JSON(http.StatusOK, rec)
}

// GetEscrowHandler retrieves one escrow for a party or an admin.
func GetEscrowHandler(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}
	rec, err := escrowWorkflow().Get(c.Request.Context(), c.Param("id"), userID, isAdmin(c))
	if err != nil {
		mapEscrowError(c, err)
		return
	}
	c.JSON(http.StatusOK, rec)
}

// GetEscrowByContractHandler looks up the escrow attached to a contract.
func GetEscrowByContractHandler(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}
	contractID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid contract id"})
		return
	}
	rec, err := escrowWorkflow().GetByContract(c.Request.Context(), uint(contractID), userID, isAdmin(c))
	if err != nil {
		mapEscrowError(c, err)
		return
	}
	c.JSON(http.StatusOK, rec)
}

// ListEscrowsHandler lists escrows. Regular users see only escrows they are
// a party to; admins with the escrow_view_all permission see everything.
func ListEscrowsHandler(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	query := config.DB.Model(&models.Escrow{}).Order("created_at desc")
	if !isAdmin(c) {
		query = query.Where("client_id = ? OR professional_id = ?", userID, userID)
	}
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var totalRows int64
	query.Count(&totalRows)

	var records []models.Escrow
	if err := query.Scopes(Paginate(c)).Find(&records).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not fetch escrows"})
		return
	}

	c.JSON(http.StatusOK, CreatePaginatedResponse(c, records, totalRows))
}

// ExportEscrowsHandler streams all escrows as CSV. Semicolon-delimited with
// a UTF-8 BOM so Excel opens it correctly.
func ExportEscrowsHandler(c *gin.Context) {
	var records []models.Escrow
	if err := config.DB.Order("created_at asc").Find(&records).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not fetch escrows"})
		return
	}

	filename := fmt.Sprintf("escrows_%s.csv", time.Now().Format("2006-01-02"))
	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", "attachment; filename="+filename)

	c.Writer.Write([]byte{0xEF, 0xBB, 0xBF})
	writer := csv.NewWriter(c.Writer)
	writer.Comma = ';'

	writer.Write([]string{
		"Escrow ID", "Contract", "Client", "Professional", "Status",
		"Total", "Platform Fee", "TDS", "Payout", "Revisions", "Created",
	})
	for _, rec := range records {
		writer.Write([]string{
			rec.EscrowID,
			strconv.FormatUint(uint64(rec.ContractID), 10),
			strconv.FormatUint(uint64(rec.ClientID), 10),
			strconv.FormatUint(uint64(rec.ProfessionalID), 10),
			string(rec.Status),
			fmt.Sprintf("%.2f", rec.TotalAmount),
			fmt.Sprintf("%.2f", rec.PlatformFee),
			fmt.Sprintf("%.2f", rec.TDSAmount),
			fmt.Sprintf("%.2f", rec.ProfessionalPayout),
			fmt.Sprintf("%d/%d", rec.RevisionCount, rec.MaxRevisions),
			rec.CreatedAt.Format("2006-01-02 15:04"),
		})
	}
	writer.Flush()
}
