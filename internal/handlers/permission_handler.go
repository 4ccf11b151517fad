package handlers

import (
	"net/http"

	"github.com/iamram3sh/2ndshift-sub002/config"
	"github.com/iamram3sh/2ndshift-sub002/models"

	"github.com/gin-gonic/gin"
)

// ListPermissionsHandler returns all permissions grouped by category.
func ListPermissionsHandler(c *gin.Context) {
	var perms []models.Permission
	if err := config.DB.Order("category asc, name asc").Find(&perms).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not fetch permissions"})
		return
	}

	grouped := make(map[string][]models.Permission)
	for _, p := range perms {
		grouped[p.Category] = append(grouped[p.Category], p)
	}
	c.JSON(http.StatusOK, grouped)
}

// MyPermissionsHandler returns the full permissions of the current user so
// the frontend can hide what the user cannot do anyway.
func MyPermissionsHandler(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	perms, err := models.GetUserPermissions(config.DB, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not fetch permissions"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"permissions": perms, "admin": isAdmin(c)})
}
