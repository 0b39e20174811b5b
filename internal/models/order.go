package models

import (
	"time"

	"github.com/google/uuid"
)

// Statuts possibles d'une commande. Toute autre valeur est refusée.
const (
	OrderStatusPending    = "pending"
	OrderStatusProcessing = "processing"
	OrderStatusShipped    = "shipped"
	OrderStatusDelivered  = "delivered"
	OrderStatusCancelled  = "cancelled"
)

var orderStatuses = []string{
	OrderStatusPending,
	OrderStatusProcessing,
	OrderStatusShipped,
	OrderStatusDelivered,
	OrderStatusCancelled,
}

// IsValidOrderStatus vérifie qu'un statut appartient à l'énumération.
func IsValidOrderStatus(status string) bool {
	for _, s := range orderStatuses {
		if s == status {
			return true
		}
	}
	return false
}

type OrderItem struct {
	LineID   string  `json:"line_id"` // id de ligne panier, ex: "<productID>-<formato>"
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
	ImageURL string  `json:"image_url,omitempty"`
}

type Order struct {
	ID              uuid.UUID   `json:"id"`
	UserID          uuid.UUID   `json:"user_id"`
	Email           string      `json:"email"`
	Items           []OrderItem `json:"items"`
	Subtotal        float64     `json:"subtotal"`
	ShippingCost    float64     `json:"shipping_cost"`
	Total           float64     `json:"total"`
	Status          string      `json:"status"`
	PaymentProvider string      `json:"payment_provider"` // stripe, paypal ou transfer
	PaymentRef      string      `json:"payment_ref,omitempty"`
	ShippingName    string      `json:"shipping_name"`
	ShippingStreet  string      `json:"shipping_street"`
	ShippingZip     string      `json:"shipping_zip"`
	ShippingCity    string      `json:"shipping_city"`
	ShippingCountry string      `json:"shipping_country"`
	CreatedAt       time.Time   `json:"created_at"`
	UpdatedAt       time.Time   `json:"updated_at"`
}
