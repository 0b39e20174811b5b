package payement

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"cioccolato_back_end/internal/cache"
	"cioccolato_back_end/internal/models"
)

// GetShippingOptions calcule la livraison pour le total passé en query.
// GET /api/shipping/options?cart_total=42.50
func GetShippingOptions(c *gin.Context) {
	var cartTotal float64
	if raw := c.Query("cart_total"); raw != "" {
		if n, err := strconv.ParseFloat(raw, 64); err == nil {
			cartTotal = n
		}
	}

	settings, err := cache.GetSettings(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lecture réglages livraison"})
		return
	}

	c.JSON(http.StatusOK, models.ComputeShipping(settings, cartTotal))
}
