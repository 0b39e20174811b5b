package admin

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"cioccolato_back_end/internal/database"
	user "cioccolato_back_end/internal/handlers/user"
	"cioccolato_back_end/internal/models"
)

//
// 📦 GET /api/admin/orders — toutes les commandes, éventuellement filtrées
// par statut (?status=processing)
//
func ListAllOrders(c *gin.Context) {
	ctx := c.Request.Context()

	query := `SELECT id FROM orders`
	args := []interface{}{}
	if status := c.Query("status"); status != "" {
		if !models.IsValidOrderStatus(status) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Statut inconnu: " + status})
			return
		}
		query += ` WHERE status = $1`
		args = append(args, status)
	}
	query += ` ORDER BY created_at DESC`

	rows, err := database.PG.Query(ctx, query, args...)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur récupération commandes"})
		return
	}
	defer rows.Close()

	ids := []uuid.UUID{}
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur décodage commandes"})
			return
		}
		ids = append(ids, id)
	}

	orders := []models.Order{}
	for _, id := range ids {
		order, err := user.FetchOrder(ctx, id)
		if err != nil {
			continue
		}
		orders = append(orders, *order)
	}

	c.JSON(http.StatusOK, gin.H{"orders": orders, "count": len(orders)})
}

//
// 📦 PATCH /api/admin/orders/:id/status
//
func UpdateOrderStatus(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID commande invalide"})
		return
	}

	var input struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides"})
		return
	}
	if !models.IsValidOrderStatus(input.Status) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Statut inconnu: " + input.Status})
		return
	}

	tag, err := database.PG.Exec(c.Request.Context(),
		`UPDATE orders SET status = $1, updated_at = now() WHERE id = $2`, input.Status, id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur mise à jour statut"})
		return
	}
	if tag.RowsAffected() == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Commande introuvable"})
		return
	}

	log.Printf("📦 Commande %s passée en %s", id, input.Status)
	c.JSON(http.StatusOK, gin.H{"id": id, "status": input.Status})
}

//
// 📦 PUT /api/admin/orders/:id — correction d'adresse après contact client
//
func UpdateOrder(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID commande invalide"})
		return
	}

	var input struct {
		ShippingName    string `json:"shipping_name" binding:"required"`
		ShippingStreet  string `json:"shipping_street" binding:"required"`
		ShippingZip     string `json:"shipping_zip" binding:"required"`
		ShippingCity    string `json:"shipping_city" binding:"required"`
		ShippingCountry string `json:"shipping_country" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides"})
		return
	}

	ctx := c.Request.Context()
	tag, err := database.PG.Exec(ctx,
		`UPDATE orders
		 SET shipping_name = $1, shipping_street = $2, shipping_zip = $3,
		     shipping_city = $4, shipping_country = $5, updated_at = now()
		 WHERE id = $6`,
		input.ShippingName, input.ShippingStreet, input.ShippingZip,
		input.ShippingCity, input.ShippingCountry, id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur mise à jour commande"})
		return
	}
	if tag.RowsAffected() == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Commande introuvable"})
		return
	}

	order, err := user.FetchOrder(ctx, id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur relecture commande"})
		return
	}
	c.JSON(http.StatusOK, order)
}

//
// 📦 DELETE /api/admin/orders/:id — réservé aux commandes annulées
//
func DeleteOrder(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID commande invalide"})
		return
	}

	tag, err := database.PG.Exec(c.Request.Context(),
		`DELETE FROM orders WHERE id = $1 AND status = $2`, id, models.OrderStatusCancelled)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur suppression commande"})
		return
	}
	if tag.RowsAffected() == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Seules les commandes annulées peuvent être supprimées"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Commande supprimée"})
}
