package models

import "gorm.io/gorm"

// Permission represents a single access right grouped by category
// (e.g. "Marketplace", "Finance", "Administration").
type Permission struct {
	ID          uint   `json:"id" gorm:"primaryKey"`
	Name        string `json:"name" gorm:"unique;not null"`
	Description string `json:"description"`
	Category    string `json:"category" gorm:"not null"`
}

// GetUserPermissions collects the unique permissions a user holds through
// all of its roles.
func GetUserPermissions(db *gorm.DB, userID uint) ([]Permission, error) {
	var user User
	if err := db.Preload("Roles.Permissions").First(&user, userID).Error; err != nil {
		return nil, err
	}

	permissionMap := make(map[uint]Permission)
	for _, role := range user.Roles {
		for _, permission := range role.Permissions {
			permissionMap[permission.ID] = permission
		}
	}

	permissions := make([]Permission, 0, len(permissionMap))
	for _, permission := range permissionMap {
		permissions = append(permissions, permission)
	}

	return permissions, nil
}
