package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RequireAdmin protège le back-office : seul le rôle "admin" passe.
func RequireAdmin(c *gin.Context) {
	role, exists := c.Get("role")
	if !exists || role != "admin" {
		c.JSON(http.StatusForbidden, gin.H{"error": "Accès réservé aux administrateurs"})
		c.Abort()
		return
	}
	c.Next()
}
