package payement

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"os"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stripe/stripe-go/v83"
	"github.com/stripe/stripe-go/v83/webhook"

	user "cioccolato_back_end/internal/handlers/user"
	"cioccolato_back_end/internal/models"
)

// StripeWebhook reçoit les événements Stripe. Au paiement réussi, la commande
// est créée depuis les métadonnées du PaymentIntent et le panier de
// l'utilisateur est vidé (ses onglets ouverts le voient via le WebSocket).
func StripeWebhook(c *gin.Context) {
	const maxBodyBytes = int64(65536)
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBodyBytes)

	payload, err := c.GetRawData()
	if err != nil {
		log.Println("❌ Lecture payload échouée:", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Échec lecture body"})
		return
	}

	secret := os.Getenv("STRIPE_WEBHOOK_SECRET")
	var event stripe.Event

	if secret == "" {
		log.Println("⚠️ Pas de STRIPE_WEBHOOK_SECRET — mode test")
		if err := json.Unmarshal(payload, &event); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "JSON invalide"})
			return
		}
	} else {
		event, err = webhook.ConstructEvent(payload, c.GetHeader("Stripe-Signature"), secret)
		if err != nil {
			log.Println("❌ Signature webhook invalide:", err)
			c.JSON(http.StatusBadRequest, gin.H{"error": "Signature invalide"})
			return
		}
	}

	switch event.Type {
	case "payment_intent.succeeded":
		var intent stripe.PaymentIntent
		if err := json.Unmarshal(event.Data.Raw, &intent); err != nil {
			log.Println("❌ Décodage PaymentIntent échoué:", err)
			c.JSON(http.StatusBadRequest, gin.H{"error": "PaymentIntent invalide"})
			return
		}
		handlePaymentSucceeded(intent)

	case "payment_intent.payment_failed":
		log.Printf("⚠️ Paiement échoué: %s", event.ID)

	default:
		// événement non géré, on acquitte quand même
	}

	c.JSON(http.StatusOK, gin.H{"received": true})
}

func handlePaymentSucceeded(intent stripe.PaymentIntent) {
	meta := intent.Metadata

	userID, err := uuid.Parse(meta["user_id"])
	if err != nil {
		log.Printf("❌ Webhook %s: user_id invalide", intent.ID)
		return
	}

	var lines []models.CartLine
	if err := json.Unmarshal([]byte(meta["cart"]), &lines); err != nil || len(lines) == 0 {
		log.Printf("❌ Webhook %s: panier illisible dans les métadonnées", intent.ID)
		return
	}

	subtotal, _ := strconv.ParseFloat(meta["subtotal"], 64)
	shippingCost, _ := strconv.ParseFloat(meta["shipping_cost"], 64)

	order := &models.Order{
		UserID:          userID,
		Email:           meta["email"],
		Items:           user.OrderItemsFromLines(lines),
		Subtotal:        subtotal,
		ShippingCost:    shippingCost,
		Total:           float64(intent.Amount) / 100,
		Status:          models.OrderStatusProcessing, // payé, en préparation
		PaymentProvider: "stripe",
		PaymentRef:      intent.ID,
		ShippingName:    meta["shipping_name"],
		ShippingStreet:  meta["shipping_street"],
		ShippingZip:     meta["shipping_zip"],
		ShippingCity:    meta["shipping_city"],
		ShippingCountry: meta["shipping_country"],
	}

	ctx := context.Background()
	if err := user.SaveOrder(ctx, order); err != nil {
		log.Printf("❌ Webhook %s: création commande échouée: %v", intent.ID, err)
		return
	}

	clearUserCart(ctx, meta["user_id"])
	go sendConfirmation(*order)

	log.Printf("💳 Commande Stripe %s créée (%.2f€) pour %s", order.ID, order.Total, order.Email)
}
