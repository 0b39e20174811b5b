package payement

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"cioccolato_back_end/internal/cache"
	"cioccolato_back_end/internal/database"
	"cioccolato_back_end/internal/models"
)

//
// ⚙️ GET /api/settings — lecture publique (le front affiche le seuil de
// livraison gratuite sur la page panier)
//
func GetSettings(c *gin.Context) {
	settings, err := cache.GetSettings(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lecture réglages"})
		return
	}
	c.JSON(http.StatusOK, settings)
}

//
// ⚙️ PUT /api/settings — réservé admin
//
func UpdateSettings(c *gin.Context) {
	var input models.Settings
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides"})
		return
	}
	if input.ShippingCost < 0 || input.FreeShippingThreshold < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Les montants ne peuvent pas être négatifs"})
		return
	}

	ctx := c.Request.Context()
	_, err := database.PG.Exec(ctx,
		`UPDATE settings SET shipping_cost = $1, free_shipping_threshold = $2, shipping_enabled = $3
		 WHERE id = 1`,
		input.ShippingCost, input.FreeShippingThreshold, input.ShippingEnabled)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur mise à jour réglages"})
		return
	}

	cache.InvalidateSettings(ctx)
	log.Printf("⚙️ Réglages livraison mis à jour: %.2f€ / seuil %.2f€ / actif=%v",
		input.ShippingCost, input.FreeShippingThreshold, input.ShippingEnabled)

	c.JSON(http.StatusOK, input)
}
