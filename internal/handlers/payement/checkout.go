package payement

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v83"
	"github.com/stripe/stripe-go/v83/paymentintent"
	"github.com/stripe/stripe-go/v83/promotioncode"

	"cioccolato_back_end/internal/cache"
	"cioccolato_back_end/internal/models"
)

// Checkout crée une session de paiement chez le provider demandé à partir du
// panier courant. Stripe rend un client_secret, PayPal une URL d'approbation.
func Checkout(c *gin.Context) {
	var req struct {
		Provider        string `json:"provider" binding:"required"` // "stripe" ou "paypal"
		CouponCode      string `json:"coupon_code"`                 // Optionnel
		ShippingName    string `json:"shipping_name" binding:"required"`
		ShippingStreet  string `json:"shipping_street" binding:"required"`
		ShippingZip     string `json:"shipping_zip" binding:"required"`
		ShippingCity    string `json:"shipping_city" binding:"required"`
		ShippingCountry string `json:"shipping_country" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides", "details": err.Error()})
		return
	}

	store, userID, ok := openCart(c)
	if !ok {
		return
	}

	email := c.GetString("email")
	lines := store.Lines()
	if len(lines) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Panier vide"})
		return
	}

	// ✅ 1. Total depuis le panier + réglages de livraison
	ctx := c.Request.Context()
	settings, err := cache.GetSettings(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lecture réglages livraison"})
		return
	}

	subtotal := store.TotalAmount()
	calc := models.ComputeShipping(settings, subtotal)
	totalPrice := calc.Total

	// ✅ 2. Coupon éventuel
	var discountAmount float64
	var couponCode string
	if req.CouponCode != "" {
		validation := validateCoupon(req.CouponCode, totalPrice)
		if !validation.IsValid {
			c.JSON(http.StatusBadRequest, gin.H{"error": validation.ErrorMessage})
			return
		}
		discountAmount = validation.Discount
		couponCode = validation.Code
		log.Printf("✅ Coupon appliqué: %s (%.2f€ de réduction)", couponCode, discountAmount)
	}

	finalPrice := totalPrice - discountAmount
	if finalPrice < 0 {
		finalPrice = 0
	}

	switch req.Provider {
	case "paypal":
		approvalURL, orderID, err := createPayPalOrder(ctx, userID, finalPrice)
		if err != nil {
			log.Printf("❌ Erreur PayPal: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur création paiement PayPal"})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"provider":     "paypal",
			"approval_url": approvalURL,
			"order_id":     orderID,
			"amount":       finalPrice,
			"currency":     "eur",
		})

	case "stripe":
		// ✅ 3. Sérialiser panier + adresse pour le webhook
		cartJSON, err := json.Marshal(lines)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur sérialisation panier"})
			return
		}

		metadata := map[string]string{
			"user_id":          userID,
			"email":            email,
			"cart":             string(cartJSON),
			"subtotal":         fmt.Sprintf("%.2f", subtotal),
			"shipping_cost":    fmt.Sprintf("%.2f", calc.ShippingCost),
			"shipping_name":    req.ShippingName,
			"shipping_street":  req.ShippingStreet,
			"shipping_zip":     req.ShippingZip,
			"shipping_city":    req.ShippingCity,
			"shipping_country": req.ShippingCountry,
		}
		if couponCode != "" {
			metadata["coupon_code"] = couponCode
			metadata["discount"] = fmt.Sprintf("%.2f", discountAmount)
		}

		params := &stripe.PaymentIntentParams{
			Amount:   stripe.Int64(int64(finalPrice * 100)),
			Currency: stripe.String("eur"),
			AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
				Enabled: stripe.Bool(true),
			},
			Metadata: metadata,
		}

		intent, err := paymentintent.New(params)
		if err != nil {
			log.Printf("❌ Erreur Stripe: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur création paiement", "details": err.Error()})
			return
		}

		log.Printf("💳 Checkout créé: %s (%.2f€ → %.2f€) pour %s", intent.ID, totalPrice, finalPrice, email)

		c.JSON(http.StatusOK, gin.H{
			"provider":        "stripe",
			"client_secret":   intent.ClientSecret,
			"payment_id":      intent.ID,
			"amount":          finalPrice,
			"original_amount": totalPrice,
			"discount":        discountAmount,
			"currency":        "eur",
			"items_count":     len(lines),
		})

	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Provider inconnu: " + req.Provider})
	}
}

// ValidateCoupon vérifie si un code promo est valide.
// GET /api/checkout/coupon?code=...
func ValidateCoupon(c *gin.Context) {
	code := c.Query("code")
	if code == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Code requis"})
		return
	}

	params := &stripe.PromotionCodeListParams{}
	params.Filters.AddFilter("code", "", code)
	params.Filters.AddFilter("active", "", "true")

	iter := promotioncode.List(params)
	if !iter.Next() {
		c.JSON(http.StatusNotFound, gin.H{
			"valid": false,
			"error": "Code invalide ou expiré",
		})
		return
	}

	promo := iter.PromotionCode()

	response := gin.H{
		"valid":  true,
		"code":   code,
		"active": promo.Active,
		"id":     promo.ID,
	}
	if promo.ExpiresAt > 0 {
		response["expires_at"] = promo.ExpiresAt
	}
	if promo.MaxRedemptions > 0 {
		response["max_redemptions"] = promo.MaxRedemptions
		response["times_redeemed"] = promo.TimesRedeemed
	}

	c.JSON(http.StatusOK, response)
}
