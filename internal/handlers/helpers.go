package handlers

import (
	"fmt"
	"math"

	"github.com/divan/num2words"
	"github.com/gin-gonic/gin"
)

// currentUserID reads the authenticated user id set by the auth middleware.
func currentUserID(c *gin.Context) (uint, bool) {
	v, ok := c.Get("user_id")
	if !ok {
		return 0, false
	}
	id, ok := v.(uint)
	return id, ok
}

// hasRole reports whether the authenticated user carries the named role.
func hasRole(c *gin.Context, name string) bool {
	v, ok := c.Get("roles")
	if !ok {
		return false
	}
	roles, ok := v.([]string)
	if !ok {
		return false
	}
	for _, r := range roles {
		if r == name {
			return true
		}
	}
	return false
}

func isAdmin(c *gin.Context) bool {
	return hasRole(c, "admin")
}

// amountInWords spells out a rupee amount for payment receipts,
// e.g. 40500.50 -> "forty thousand five hundred rupees 50 paise".
func amountInWords(amount float64) string {
	rupees := int(amount)
	paise := int(math.Round((amount - float64(rupees)) * 100))
	words := num2words.Convert(rupees)
	if paise > 0 {
		return fmt.Sprintf("%s rupees %02d paise", words, paise)
	}
	return fmt.Sprintf("%s rupees", words)
}
