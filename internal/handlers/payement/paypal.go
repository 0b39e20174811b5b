package payement

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/plutov/paypal/v4"

	"cioccolato_back_end/internal/cache"
	user "cioccolato_back_end/internal/handlers/user"
	"cioccolato_back_end/internal/models"
)

var paypalClient *paypal.Client

// InitPayPal initialise le client PayPal au démarrage. Sans identifiants, le
// provider est simplement indisponible.
func InitPayPal() {
	clientID := os.Getenv("PAYPAL_CLIENT_ID")
	secret := os.Getenv("PAYPAL_SECRET")
	if clientID == "" || secret == "" {
		log.Println("⚠️ PayPal non configuré — provider désactivé")
		return
	}

	base := paypal.APIBaseSandBox
	if os.Getenv("PAYPAL_ENV") == "live" {
		base = paypal.APIBaseLive
	}

	client, err := paypal.NewClient(clientID, secret, base)
	if err != nil {
		log.Fatal("❌ Impossible d'initialiser PayPal:", err)
	}
	if _, err := client.GetAccessToken(context.Background()); err != nil {
		log.Fatal("❌ Erreur authentification PayPal:", err)
	}

	paypalClient = client
	log.Println("✅ PayPal initialisé")
}

// createPayPalOrder crée la commande côté PayPal et retourne l'URL
// d'approbation vers laquelle rediriger l'acheteur.
func createPayPalOrder(ctx context.Context, userID string, amount float64) (string, string, error) {
	if paypalClient == nil {
		return "", "", fmt.Errorf("PayPal non configuré")
	}

	frontend := os.Getenv("FRONTEND_URL")
	units := []paypal.PurchaseUnitRequest{{
		Amount: &paypal.PurchaseUnitAmount{
			Currency: "EUR",
			Value:    fmt.Sprintf("%.2f", amount),
		},
		CustomID: userID,
	}}

	order, err := paypalClient.CreateOrder(ctx, paypal.OrderIntentCapture, units, nil,
		&paypal.ApplicationContext{
			ReturnURL: frontend + "/checkout/paypal/success",
			CancelURL: frontend + "/checkout/paypal/cancel",
		})
	if err != nil {
		return "", "", err
	}

	for _, link := range order.Links {
		if link.Rel == "approve" {
			return link.Href, order.ID, nil
		}
	}
	return "", "", fmt.Errorf("pas de lien d'approbation dans la réponse PayPal")
}

//
// 💰 POST /api/checkout/paypal/capture — capture après approbation et crée la
// commande depuis le panier courant.
//
func CapturePayPalOrder(c *gin.Context) {
	if paypalClient == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "PayPal non configuré"})
		return
	}

	var req struct {
		OrderID         string `json:"order_id" binding:"required"`
		ShippingName    string `json:"shipping_name" binding:"required"`
		ShippingStreet  string `json:"shipping_street" binding:"required"`
		ShippingZip     string `json:"shipping_zip" binding:"required"`
		ShippingCity    string `json:"shipping_city" binding:"required"`
		ShippingCountry string `json:"shipping_country" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides"})
		return
	}

	store, userIDStr, ok := openCart(c)
	if !ok {
		return
	}
	lines := store.Lines()
	if len(lines) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Panier vide"})
		return
	}

	ctx := c.Request.Context()
	capture, err := paypalClient.CaptureOrder(ctx, req.OrderID, paypal.CaptureOrderRequest{})
	if err != nil {
		log.Printf("❌ Erreur capture PayPal %s: %v", req.OrderID, err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "Erreur capture PayPal"})
		return
	}
	if capture.Status != "COMPLETED" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Paiement non complété", "status": capture.Status})
		return
	}

	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Utilisateur non authentifié"})
		return
	}

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
		Items:           user.OrderItemsFromLines(lines),
		Subtotal:        subtotal,
		ShippingCost:    calc.ShippingCost,
		Total:           calc.Total,
		Status:          models.OrderStatusProcessing, // payé, en préparation
		PaymentProvider: "paypal",
		PaymentRef:      capture.ID,
		ShippingName:    req.ShippingName,
		ShippingStreet:  req.ShippingStreet,
		ShippingZip:     req.ShippingZip,
		ShippingCity:    req.ShippingCity,
		ShippingCountry: req.ShippingCountry,
	}

	if err := user.SaveOrder(ctx, order); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// ✅ Paiement encaissé : panier vidé, onglets notifiés
	store.Clear()
	go sendConfirmation(*order)

	log.Printf("💰 Commande PayPal %s capturée (%.2f€)", order.ID, order.Total)
	c.JSON(http.StatusCreated, order)
}
