package models

import (
	"gorm.io/gorm"
)

// User represents a marketplace account. A user acts as a client, a worker
// (professional) or an admin depending on the roles assigned to it.
type User struct {
	gorm.Model
	Login        string `json:"login" gorm:"uniqueIndex;not null"`
	Email        string `json:"email" gorm:"uniqueIndex;not null"`
	PasswordHash string `json:"-" gorm:"not null"`
	FullName     string `json:"fullName"`
	Phone        string `json:"phone"`
	Status       string `json:"status" gorm:"type:varchar(20);default:'active'"` // 'active', 'suspended'
	PhotoURL     string `json:"photoUrl"`
	Headline     string `json:"headline"` // short profile line, e.g. "Senior plumber, 8 yrs"
	About        string `json:"about"`
	Skills       string `json:"skills"` // comma-separated tags used by project search

	Roles []Role `json:"roles" gorm:"many2many:user_roles;"`
}

func (User) TableName() string { return "users" }
