package handlers

import (
	"net/http"
	"time"

	"github.com/iamram3sh/2ndshift-sub002/config"
	"github.com/iamram3sh/2ndshift-sub002/internal/middleware"
	"github.com/iamram3sh/2ndshift-sub002/models"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// UserResponse is the user shape sent in API responses. It exists so the
// password hash can never leak into a listing by accident.
type UserResponse struct {
	ID        uint      `json:"id"`
	Login     string    `json:"login"`
	Email     string    `json:"email"`
	FullName  string    `json:"fullName"`
	Phone     string    `json:"phone"`
	Status    string    `json:"status"`
	Headline  string    `json:"headline"`
	Roles     []string  `json:"roles"`
	CreatedAt time.Time `json:"createdAt"`
	PhotoURL  string    `json:"photoUrl"`
}

func toUserResponse(user models.User) UserResponse {
	var roleNames []string
	for _, role := range user.Roles {
		roleNames = append(roleNames, role.Name)
	}
	photoURL := user.PhotoURL
	if photoURL == "" {
		photoURL = "/static/placeholder.png"
	}
	return UserResponse{
		ID:        user.ID,
		Login:     user.Login,
		Email:     user.Email,
		FullName:  user.FullName,
		Phone:     user.Phone,
		Status:    user.Status,
		Headline:  user.Headline,
		Roles:     roleNames,
		CreatedAt: user.CreatedAt,
		PhotoURL:  photoURL,
	}
}

// ListUsersHandler returns a paginated list of all users with their roles.
func ListUsersHandler(c *gin.Context) {
	var users []models.User
	query := config.DB.Preload("Roles").Order("id asc")

	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if role := c.Query("role"); role != "" {
		query = query.Joins("join user_roles on user_roles.user_id = users.id").
			Joins("join roles on roles.id = user_roles.role_id").
			Where("roles.name = ?", role)
	}

	var totalRows int64
	query.Model(&models.User{}).Count(&totalRows)

	if err := query.Scopes(Paginate(c)).Find(&users).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not fetch users"})
		return
	}

	responseData := make([]UserResponse, 0, len(users))
	for _, user := range users {
		responseData = append(responseData, toUserResponse(user))
	}

	c.JSON(http.StatusOK, CreatePaginatedResponse(c, responseData, totalRows))
}

// GetUserHandler retrieves a single user by ID.
func GetUserHandler(c *gin.Context) {
	var user models.User
	if err := config.DB.Preload("Roles").First(&user, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}
	c.JSON(http.StatusOK, toUserResponse(user))
}

type UpdateUserInput struct {
	FullName string `json:"fullName" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Phone    string `json:"phone"`
	Status   string `json:"status" binding:"required,oneof=active suspended"`
	RoleIDs  []uint `json:"roleIds"`
	Password string `json:"password"`
}

// UpdateUserHandler updates account fields and role assignments, then drops
// the cached auth data so the change takes effect on the next request.
func UpdateUserHandler(c *gin.Context) {
	var user models.User
	if err := config.DB.First(&user, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	var input UpdateUserInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user data: " + err.Error()})
		return
	}

	user.FullName = input.FullName
	user.Email = input.Email
	user.Phone = input.Phone
	user.Status = input.Status

	if input.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
			return
		}
		user.PasswordHash = string(hash)
	}

	err := config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&user).Error; err != nil {
			return err
		}
		if input.RoleIDs != nil {
			var roles []models.Role
			if err := tx.Find(&roles, input.RoleIDs).Error; err != nil {
				return err
			}
			if err := tx.Model(&user).Association("Roles").Replace(roles); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not update user"})
		return
	}

	if config.RDB != nil {
		config.RDB.Del(config.Ctx, middleware.UserCacheKey(user.ID))
	}

	c.JSON(http.StatusOK, gin.H{"message": "User updated"})
}

// DeleteUserHandler soft-deletes an account.
func DeleteUserHandler(c *gin.Context) {
	var user models.User
	if err := config.DB.First(&user, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	if err := config.DB.Delete(&user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not delete user"})
		return
	}

	if config.RDB != nil {
		config.RDB.Del(config.Ctx, middleware.UserCacheKey(user.ID))
	}

	c.JSON(http.StatusOK, gin.H{"message": "User deleted"})
}
