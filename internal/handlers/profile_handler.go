package handlers

import (
	"net/http"

	"github.com/iamram3sh/2ndshift-sub002/config"
	"github.com/iamram3sh/2ndshift-sub002/models"

	"github.com/gin-gonic/gin"
)

// GetProfileHandler returns the authenticated user's profile together with
// its trust score and Shift balance.
func GetProfileHandler(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	var user models.User
	if err := config.DB.Preload("Roles").First(&user, userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	var trust models.TrustScore
	config.DB.Where("user_id = ?", userID).First(&trust)

	var wallet models.ShiftWallet
	config.DB.Where("user_id = ?", userID).First(&wallet)

	c.JSON(http.StatusOK, gin.H{
		"profile":      toUserResponse(user),
		"about":        user.About,
		"skills":       user.Skills,
		"trustScore":   trust,
		"shiftBalance": wallet.Balance,
	})
}

type UpdateProfileInput struct {
	FullName string `json:"fullName"`
	Phone    string `json:"phone"`
	Headline string `json:"headline"`
	About    string `json:"about"`
	Skills   string `json:"skills"`
	PhotoURL string `json:"photoUrl"`
}

// UpdateProfileHandler lets a user edit the public parts of their profile.
func UpdateProfileHandler(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	var input UpdateProfileInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid profile data: " + err.Error()})
		return
	}

	updates := map[string]interface{}{
		"full_name": input.FullName,
		"phone":     input.Phone,
		"headline":  input.Headline,
		"about":     input.About,
		"skills":    input.Skills,
		"photo_url": input.PhotoURL,
	}
	if err := config.DB.Model(&models.User{}).Where("id = ?", userID).Updates(updates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not update profile"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Profile updated"})
}
