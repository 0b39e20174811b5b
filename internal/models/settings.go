package models

// Settings regroupe les réglages de livraison modifiables depuis le back-office.
// Une seule ligne en base (id = 1).
type Settings struct {
	ShippingCost          float64 `json:"shipping_cost"`
	FreeShippingThreshold float64 `json:"free_shipping_threshold"`
	ShippingEnabled       bool    `json:"shipping_enabled"`
}
