package handlers

import (
	"net/http"

	"github.com/iamram3sh/2ndshift-sub002/config"
	"github.com/iamram3sh/2ndshift-sub002/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type RoleInput struct {
	Name          string `json:"name" binding:"required"`
	Description   string `json:"description"`
	PermissionIDs []uint `json:"permissionIds"`
}

// ListRolesHandler returns all roles with their permissions attached.
func ListRolesHandler(c *gin.Context) {
	var roles []models.Role
	if err := config.DB.Preload("Permissions").Order("id asc").Find(&roles).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not fetch roles"})
		return
	}
	c.JSON(http.StatusOK, roles)
}

// CreateRoleHandler creates a role and assigns the given permissions.
func CreateRoleHandler(c *gin.Context) {
	var input RoleInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid role data: " + err.Error()})
		return
	}

	role := models.Role{Name: input.Name, Description: input.Description}
	err := config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&role).Error; err != nil {
			return err
		}
		if len(input.PermissionIDs) > 0 {
			var perms []models.Permission
			if err := tx.Find(&perms, input.PermissionIDs).Error; err != nil {
				return err
			}
			return tx.Model(&role).Association("Permissions").Replace(perms)
		}
		return nil
	})
	if err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Could not create role, name may already exist"})
		return
	}

	c.JSON(http.StatusCreated, role)
}

// UpdateRoleHandler renames a role and replaces its permission set.
func UpdateRoleHandler(c *gin.Context) {
	var role models.Role
	if err := config.DB.First(&role, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Role not found"})
		return
	}

	var input RoleInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid role data: " + err.Error()})
		return
	}

	role.Name = input.Name
	role.Description = input.Description

	err := config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&role).Error; err != nil {
			return err
		}
		if input.PermissionIDs != nil {
			var perms []models.Permission
			if err := tx.Find(&perms, input.PermissionIDs).Error; err != nil {
				return err
			}
			return tx.Model(&role).Association("Permissions").Replace(perms)
		}
		return nil
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not update role"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Role updated"})
}

// DeleteRoleHandler removes a role. Users keep their other roles.
func DeleteRoleHandler(c *gin.Context) {
	var role models.Role
	if err := config.DB.First(&role, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Role not found"})
		return
	}
	if role.Name == "admin" {
		c.JSON(http.StatusForbidden, gin.H{"error": "The admin role cannot be deleted"})
		return
	}
	if err := config.DB.Select("Permissions").Delete(&role).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not delete role"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Role deleted"})
}
