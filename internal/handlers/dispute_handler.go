package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/iamram3sh/2ndshift-sub002/config"
	"github.com/iamram3sh/2ndshift-sub002/models"

	"github.com/gin-gonic/gin"
	"github.com/google/generative-ai-go/genai"
)

// ListDisputesHandler lists disputed escrows for staff review, oldest first
// so the longest-waiting dispute surfaces on top.
func ListDisputesHandler(c *gin.Context) {
	query := config.DB.Model(&models.Escrow{}).
		Where("status = ?", models.EscrowDisputed).
		Order("dispute_opened_at asc")

	var totalRows int64
	query.Count(&totalRows)

	var records []models.Escrow
	if err := query.Scopes(Paginate(c)).Find(&records).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not fetch disputes"})
		return
	}

	c.JSON(http.StatusOK, CreatePaginatedResponse(c, records, totalRows))
}

// SummarizeDisputeHandler asks the AI assistant for a neutral summary of a
// disputed escrow to give staff a starting point. Unavailable when the
// Gemini integration is not configured.
func SummarizeDisputeHandler(c *gin.Context) {
	if config.GeminiClient == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "AI assistant is not configured"})
		return
	}

	var esc models.Escrow
	if err := config.DB.Where("escrow_id = ?", c.Param("id")).First(&esc).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Escrow not found"})
		return
	}
	if esc.Status != models.EscrowDisputed {
		c.JSON(http.StatusConflict, gin.H{"error": "Escrow is not disputed"})
		return
	}

	var project models.Project
	config.DB.First(&project, esc.ProjectID)

	prompt := fmt.Sprintf(
		"You are assisting a freelance marketplace support team. Summarize this escrow dispute "+
			"neutrally in 3-4 sentences and suggest what to check first.\n\n"+
			"Project: %s\nCategory: %s\nEscrow amount: %.2f\nRevisions used: %d of %d\n"+
			"Status before dispute timestamps: funded=%v, work started=%v, work submitted=%v\n"+
			"Dispute reason from the party: %s",
		project.Title, project.Category, esc.TotalAmount, esc.RevisionCount, esc.MaxRevisions,
		esc.FundedAt != nil, esc.WorkStartedAt != nil, esc.WorkSubmittedAt != nil,
		esc.DisputeReason,
	)

	resp, err := config.GeminiClient.GenerateContent(c.Request.Context(), genai.Text(prompt))
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "AI assistant request failed"})
		return
	}

	var sb strings.Builder
	for _, cand := range resp.Candidates {
		if cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if text, ok := part.(genai.Text); ok {
				sb.WriteString(string(text))
			}
		}
	}
	if sb.Len() == 0 {
		c.JSON(http.StatusBadGateway, gin.H{"error": "AI assistant returned no summary"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"escrowId": esc.EscrowID, "summary": sb.String()})
}
