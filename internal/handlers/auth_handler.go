package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/iamram3sh/2ndshift-sub002/config"
	"github.com/iamram3sh/2ndshift-sub002/models"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type RegisterInput struct {
	Login       string `json:"login" binding:"required"`
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required,min=8"`
	FullName    string `json:"fullName" binding:"required"`
	AccountType string `json:"accountType" binding:"required,oneof=client worker"`
}

type LoginInput struct {
	Login    string `json:"login" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// RegisterHandler creates an account as either a client or a worker. The
// account, its Shift wallet and the signup grant are written in one
// transaction.
func RegisterHandler(c *gin.Context) {
	var input RegisterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid registration data: " + err.Error()})
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
		return
	}

	var role models.Role
	if err := config.DB.Where("name = ?", input.AccountType).First(&role).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Account role is not configured"})
		return
	}

	grant := config.SignupShiftGrant()
	user := models.User{
		Login:        input.Login,
		Email:        input.Email,
		PasswordHash: string(hash),
		FullName:     input.FullName,
		Status:       "active",
		Roles:        []models.Role{role},
	}

	err = config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&user).Error; err != nil {
			return err
		}
		wallet := models.ShiftWallet{UserID: user.ID, Balance: grant}
		if err := tx.Create(&wallet).Error; err != nil {
			return err
		}
		if grant > 0 {
			return tx.Create(&models.ShiftTransaction{
				UserID: user.ID,
				Amount: grant,
				Kind:   "credit",
				Reason: "signup_grant",
			}).Error
		}
		return nil
	})
	if err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Could not create account, login or email may already be taken"})
		return
	}

	slog.Info("New account registered", "user_id", user.ID, "type", input.AccountType)
	c.JSON(http.StatusCreated, gin.H{"message": "Account created", "userId": user.ID})
}

// LoginHandler verifies credentials and issues a 24h JWT, both as an
// http-only cookie and in the response body for API clients.
func LoginHandler(c *gin.Context) {
	var input LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Login and password are required"})
		return
	}

	var user models.User
	if err := config.DB.Where("login = ? OR email = ?", input.Login, input.Login).First(&user).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid login or password"})
		return
	}

	if user.Status != "active" {
		c.JSON(http.StatusForbidden, gin.H{"error": "Account is suspended"})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid login or password"})
		return
	}

	expiresAt := time.Now().Add(24 * time.Hour)
	claims := jwt.MapClaims{
		"user_id": user.ID,
		"exp":     expiresAt.Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(config.JwtKey)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to sign token"})
		return
	}

	c.SetCookie("auth_token", signed, int(time.Until(expiresAt).Seconds()), "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"token": signed, "userId": user.ID})
}

// LogoutHandler clears the session cookie.
func LogoutHandler(c *gin.Context) {
	c.SetCookie("auth_token", "", -1, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}
