package middleware

import (
	"errors"
	"net/http"
	"strings"

	staffRepo "fairway/database/repository/staff"
	"fairway/utils"

	"github.com/gin-gonic/gin"
)

// StaffKey is the gin context key holding the resolved StaffIdentity.
const StaffKey = "staff"

// JWTAuthStaffMiddleware resolves the bearer token to an active staff
// identity and aborts otherwise. Handlers downstream read the identity from
// the context; session issuance lives elsewhere.
func JWTAuthStaffMiddleware(repo staffRepo.StaffRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing or invalid Authorization header"})
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		staffID, err := utils.ExtractStaffIDFromToken(tokenString)
		if err != nil || staffID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Insufficient authorization"})
			return
		}

		staff, err := repo.GetByID(staffID)
		if errors.Is(err, staffRepo.ErrNotFound) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Unknown staff identity"})
			return
		}
		if err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to resolve staff identity"})
			return
		}
		if !staff.Active {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Staff account is deactivated"})
			return
		}

		c.Set(StaffKey, staff)
		c.Next()
	}
}
