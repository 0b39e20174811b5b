package models

type ShippingCalculation struct {
	CartTotal     float64 `json:"cart_total"`
	ShippingCost  float64 `json:"shipping_cost"`
	FreeThreshold float64 `json:"free_threshold"`
	IsFree        bool    `json:"is_free"`
	Total         float64 `json:"total"`
}

// ComputeShipping applique les réglages de livraison au total du panier.
// Livraison offerte au-dessus du seuil, coût nul si la livraison est désactivée.
func ComputeShipping(s Settings, cartTotal float64) ShippingCalculation {
	calc := ShippingCalculation{
		CartTotal:     cartTotal,
		FreeThreshold: s.FreeShippingThreshold,
	}

	if !s.ShippingEnabled {
		calc.IsFree = true
		calc.Total = cartTotal
		return calc
	}

	if s.FreeShippingThreshold > 0 && cartTotal >= s.FreeShippingThreshold {
		calc.IsFree = true
		calc.Total = cartTotal
		return calc
	}

	calc.ShippingCost = s.ShippingCost
	calc.Total = cartTotal + s.ShippingCost
	return calc
}
