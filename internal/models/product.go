package models

import (
	"time"

	"github.com/google/uuid"
)

type Product struct {
	ID          uuid.UUID          `json:"id"`
	Name        string             `json:"name"`
	Description string             `json:"description"`
	Price       float64            `json:"price"`
	Stock       int                `json:"stock"`
	Category    string             `json:"category"`
	Pezzi       int                `json:"pezzi"`
	Formati     map[string]float64 `json:"formati,omitempty"` // taille de boîte → prix (ex: "9" → 14.50)
	Novita      bool               `json:"novita"`
	InEvidenza  bool               `json:"in_evidenza"`
	ImageURLs   []string           `json:"image_urls"`
	IsActive    bool               `json:"is_active"`
	CreatedAt   time.Time          `json:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at"`
}

// FormatPrice retourne le prix pour une taille de boîte donnée, ou le prix de
// base si le produit n'a pas ce format.
func (p Product) FormatPrice(formato string) float64 {
	if formato == "" || p.Formati == nil {
		return p.Price
	}
	if prezzo, ok := p.Formati[formato]; ok {
		return prezzo
	}
	return p.Price
}
