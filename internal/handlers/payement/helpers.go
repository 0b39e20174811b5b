package payement

import (
	"context"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v83"
	"github.com/stripe/stripe-go/v83/promotioncode"

	"cioccolato_back_end/internal/cart"
	"cioccolato_back_end/internal/database"
	"cioccolato_back_end/internal/models"
	"cioccolato_back_end/internal/utils"
)

// openCart hydrate le panier Redis de l'utilisateur pour la requête en cours.
func openCart(c *gin.Context) (*cart.Store, string, bool) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(401, gin.H{"error": "Utilisateur non authentifié"})
		return nil, "", false
	}

	store := cart.NewStore()
	cart.Attach(c.Request.Context(), cart.NewRedisKV(database.Redis), userID, store)
	return store, userID, true
}

// clearUserCart vide le panier d'un utilisateur hors requête (webhook) et
// notifie ses onglets ouverts.
func clearUserCart(ctx context.Context, userID string) {
	store := cart.NewStore()
	cart.Attach(ctx, cart.NewRedisKV(database.Redis), userID, store)
	store.Clear()
}

type couponValidation struct {
	IsValid      bool
	Code         string
	Discount     float64
	ErrorMessage string
}

// validateCoupon vérifie un code promo Stripe et calcule la réduction.
func validateCoupon(code string, total float64) couponValidation {
	params := &stripe.PromotionCodeListParams{}
	params.Filters.AddFilter("code", "", code)
	params.Filters.AddFilter("active", "", "true")

	iter := promotioncode.List(params)
	if !iter.Next() {
		return couponValidation{ErrorMessage: "Code invalide ou expiré"}
	}

	promo := iter.PromotionCode()
	if promo.Promotion == nil || promo.Promotion.Coupon == nil {
		return couponValidation{ErrorMessage: "Code invalide ou expiré"}
	}

	coupon := promo.Promotion.Coupon
	var discount float64
	if coupon.PercentOff > 0 {
		discount = total * coupon.PercentOff / 100
	} else if coupon.AmountOff > 0 {
		discount = float64(coupon.AmountOff) / 100
	}
	if discount > total {
		discount = total
	}

	return couponValidation{IsValid: true, Code: code, Discount: discount}
}

// sendConfirmation génère la proforma et envoie l'e-mail, en best-effort.
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
