package user

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"cioccolato_back_end/internal/cache"
	"cioccolato_back_end/internal/database"
	"cioccolato_back_end/internal/models"
	"cioccolato_back_end/internal/utils"
)

// ProductIDFromLineID retrouve l'UUID produit depuis un id de ligne panier.
// Les lignes avec format de boîte sont suffixées: "<uuid>-<formato>".
func ProductIDFromLineID(lineID string) (uuid.UUID, error) {
	if len(lineID) < 36 {
		return uuid.Nil, errors.New("id de ligne trop court")
	}
	return uuid.Parse(lineID[:36])
}

// SaveOrder écrit la commande et ses lignes dans une transaction, en
// décrémentant le stock de chaque produit. Échoue si un stock est insuffisant.
// Utilisé par la création directe (virement) et par le webhook Stripe.
func SaveOrder(ctx context.Context, order *models.Order) error {
	if order.ID == uuid.Nil {
		order.ID = uuid.New()
	}
	now := time.Now()
	order.CreatedAt = now
	order.UpdatedAt = now

	tx, err := database.PG.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	for _, item := range order.Items {
		productID, err := ProductIDFromLineID(item.LineID)
		if err != nil {
			return fmt.Errorf("ligne %s: %w", item.LineID, err)
		}

		var stock int
		err = tx.QueryRow(ctx,
			`SELECT stock FROM products WHERE id = $1 AND is_active FOR UPDATE`, productID).Scan(&stock)
		if err != nil {
			return fmt.Errorf("produit %s introuvable", productID)
		}
		if stock < item.Quantity {
			return fmt.Errorf("stock insuffisant pour %s (disponible: %d)", item.Name, stock)
		}

		if _, err := tx.Exec(ctx,
			`UPDATE products SET stock = stock - $1, updated_at = now() WHERE id = $2`,
			item.Quantity, productID); err != nil {
			return err
		}
	}

	_, err = tx.Exec(ctx,
		`INSERT INTO orders (id, user_id, email, subtotal, shipping_cost, total, status,
		                     payment_provider, payment_ref, shipping_name, shipping_street,
		                     shipping_zip, shipping_city, shipping_country, created_at, updated_at)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16)`,
		order.ID, order.UserID, order.Email, order.Subtotal, order.ShippingCost, order.Total,
		order.Status, order.PaymentProvider, order.PaymentRef, order.ShippingName,
		order.ShippingStreet, order.ShippingZip, order.ShippingCity, order.ShippingCountry,
		order.CreatedAt, order.UpdatedAt)
	if err != nil {
		return err
	}

	for _, item := range order.Items {
		if _, err := tx.Exec(ctx,
			`INSERT INTO order_items (order_id, line_id, name, price, quantity, image_url)
			 VALUES ($1,$2,$3,$4,$5,$6)`,
			order.ID, item.LineID, item.Name, item.Price, item.Quantity, item.ImageURL); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

// FetchOrder charge une commande et ses lignes.
func FetchOrder(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	var o models.Order
	err := database.PG.QueryRow(ctx,
		`SELECT id, user_id, email, subtotal, shipping_cost, total, status,
		        payment_provider, payment_ref, shipping_name, shipping_street,
		        shipping_zip, shipping_city, shipping_country, created_at, updated_at
		 FROM orders WHERE id = $1`, id).
		Scan(&o.ID, &o.UserID, &o.Email, &o.Subtotal, &o.ShippingCost, &o.Total, &o.Status,
			&o.PaymentProvider, &o.PaymentRef, &o.ShippingName, &o.ShippingStreet,
			&o.ShippingZip, &o.ShippingCity, &o.ShippingCountry, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return nil, err
	}

	rows, err := database.PG.Query(ctx,
		`SELECT line_id, name, price, quantity, image_url FROM order_items WHERE order_id = $1`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var item models.OrderItem
		if err := rows.Scan(&item.LineID, &item.Name, &item.Price, &item.Quantity, &item.ImageURL); err != nil {
			return nil, err
		}
		o.Items = append(o.Items, item)
	}
	return &o, rows.Err()
}

// OrderItemsFromLines convertit les lignes du panier en lignes de commande.
func OrderItemsFromLines(lines []models.CartLine) []models.OrderItem {
	items := make([]models.OrderItem, 0, len(lines))
	for _, l := range lines {
		items = append(items, models.OrderItem{
			LineID:   l.ID,
			Name:     l.Nome,
			Price:    l.Prezzo,
			Quantity: l.Qty,
			ImageURL: l.Immagine,
		})
	}
	return items
}

//
// ✅ POST /api/orders — crée une commande (paiement par virement) depuis le
// panier courant, vide le panier et envoie la confirmation avec la proforma.
//
func CreateOrder(c *gin.Context) {
	store, ok := openCart(c)
	if !ok {
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
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides", "details": err.Error()})
		return
	}

	lines := store.Lines()
	if len(lines) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Panier vide"})
		return
	}

	userID, err := uuid.Parse(c.GetString("user_id"))
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Utilisateur non authentifié"})
		return
	}

	ctx := c.Request.Context()
	settings, err := cache.GetSettings(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lecture réglages livraison"})
		return
	}

	subtotal := store.TotalAmount()
	calc := models.ComputeShipping(settings, subtotal)

	order := &models.Order{
		UserID:          userID,
		Email:           c.GetString("email"),
		Items:           OrderItemsFromLines(lines),
		Subtotal:        subtotal,
		ShippingCost:    calc.ShippingCost,
		Total:           calc.Total,
		Status:          models.OrderStatusPending,
		PaymentProvider: "transfer",
		ShippingName:    input.ShippingName,
		ShippingStreet:  input.ShippingStreet,
		ShippingZip:     input.ShippingZip,
		ShippingCity:    input.ShippingCity,
		ShippingCountry: input.ShippingCountry,
	}

	if err := SaveOrder(ctx, order); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// ✅ Checkout terminé : le panier est vidé et les autres onglets notifiés
	store.Clear()

	go sendConfirmation(*order)

	log.Printf("📦 Commande %s créée (%.2f€) pour %s", order.ID, order.Total, order.Email)
	c.JSON(http.StatusCreated, order)
}

// sendConfirmation génère la proforma et envoie l'e-mail. Best-effort : un
// échec est loggé, jamais remonté au client.
func sendConfirmation(order models.Order) {
	pdf, err := utils.RenderProformaPDF(order)
	if err != nil {
		log.Printf("⚠️ Génération proforma %s échouée: %v", order.ID, err)
		pdf = nil
	}
	if err := utils.SendOrderConfirmationEmail(order.Email, order, pdf); err != nil {
		log.Printf("⚠️ Envoi confirmation %s échoué: %v", order.ID, err)
	}
}

//
// ✅ GET /api/orders — commandes de l'utilisateur connecté
//
func GetMyOrders(c *gin.Context) {
	userID, err := uuid.Parse(c.GetString("user_id"))
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Utilisateur non authentifié"})
		return
	}

	ctx := c.Request.Context()
	rows, err := database.PG.Query(ctx,
		`SELECT id FROM orders WHERE user_id = $1 ORDER BY created_at DESC`, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur récupération commandes"})
		return
	}
	defer rows.Close()

	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur décodage"})
			return
		}
		ids = append(ids, id)
	}

	orders := make([]models.Order, 0, len(ids))
	for _, id := range ids {
		o, err := FetchOrder(ctx, id)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur récupération commandes"})
			return
		}
		orders = append(orders, *o)
	}

	c.JSON(http.StatusOK, gin.H{"orders": orders})
}

//
// ✅ GET /api/orders/:id — détail, réservé au propriétaire ou à l'admin
//
func GetOrderByID(c *gin.Context) {
	order, ok := loadOwnedOrder(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, order)
}

//
// 📄 GET /api/orders/:id/pdf — proforma en PDF
//
func GetOrderPDF(c *gin.Context) {
	order, ok := loadOwnedOrder(c)
	if !ok {
		return
	}

	pdf, err := utils.RenderProformaPDF(*order)
	if err != nil {
		log.Printf("❌ Erreur génération PDF commande %s: %v", order.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur génération PDF"})
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="proforma_%s.pdf"`, order.ID))
	c.Data(http.StatusOK, "application/pdf", pdf)
}

// loadOwnedOrder charge la commande de l'URL et vérifie qu'elle appartient à
// l'utilisateur connecté (ou que celui-ci est admin).
func loadOwnedOrder(c *gin.Context) (*models.Order, bool) {
	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID commande invalide"})
		return nil, false
	}

	order, err := FetchOrder(c.Request.Context(), orderID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Commande introuvable"})
		return nil, false
	}

	if order.UserID.String() != c.GetString("user_id") && c.GetString("role") != "admin" {
		// on ne révèle pas l'existence de la commande
		c.JSON(http.StatusNotFound, gin.H{"error": "Commande introuvable"})
		return nil, false
	}
	return order, true
}
