package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"cioccolato_back_end/internal/database"
	"cioccolato_back_end/internal/models"
)

const (
	SettingsCacheTTL = 5 * time.Minute
	ProductCacheTTL  = 10 * time.Minute

	settingsKey = "settings:shipping"
)

// GetSettings lit les réglages de livraison depuis Redis, sinon Postgres.
func GetSettings(ctx context.Context) (models.Settings, error) {
	var s models.Settings

	data, err := database.Redis.Get(ctx, settingsKey).Result()
	if err == nil {
		if json.Unmarshal([]byte(data), &s) == nil {
			return s, nil
		}
	}

	err = database.PG.QueryRow(ctx,
		`SELECT shipping_cost, free_shipping_threshold, shipping_enabled FROM settings WHERE id = 1`).
		Scan(&s.ShippingCost, &s.FreeShippingThreshold, &s.ShippingEnabled)
	if err != nil {
		return s, err
	}

	if payload, err := json.Marshal(s); err == nil {
		database.Redis.Set(ctx, settingsKey, payload, SettingsCacheTTL)
	}
	return s, nil
}

// InvalidateSettings purge le cache après une mise à jour back-office.
func InvalidateSettings(ctx context.Context) {
	database.Redis.Del(ctx, settingsKey)
}

// GetProduct lit un produit depuis Redis, sinon Postgres.
func GetProduct(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	key := "product:" + id.String()

	data, err := database.Redis.Get(ctx, key).Result()
	if err == nil {
		var p models.Product
		if json.Unmarshal([]byte(data), &p) == nil {
			return &p, nil
		}
	}

	var p models.Product
	err = database.PG.QueryRow(ctx,
		`SELECT id, name, description, price, stock, category, pezzi, formati,
		        novita, in_evidenza, image_urls, is_active, created_at, updated_at
		 FROM products WHERE id = $1`, id).
		Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.Stock, &p.Category, &p.Pezzi,
			&p.Formati, &p.Novita, &p.InEvidenza, &p.ImageURLs, &p.IsActive, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}

	if payload, err := json.Marshal(p); err == nil {
		database.Redis.Set(ctx, key, payload, ProductCacheTTL)
	}
	return &p, nil
}

// InvalidateProduct purge un produit du cache après modification.
func InvalidateProduct(ctx context.Context, id uuid.UUID) {
	database.Redis.Del(ctx, "product:"+id.String())
}
