package product

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"cioccolato_back_end/internal/cache"
	"cioccolato_back_end/internal/database"
	"cioccolato_back_end/internal/models"
	"cioccolato_back_end/internal/services"
)

//
// 🍫 GET /api/products — catalogue avec filtres
// ?category=praline&novita=true&in_evidenza=true&q=gianduia
//
func GetProducts(c *gin.Context) {
	// recherche plein texte via Elasticsearch
	if q := c.Query("q"); q != "" {
		results, err := services.SearchProducts(q)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur recherche produits"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"products": results, "count": len(results)})
		return
	}

	query := `SELECT id, name, description, price, stock, category, pezzi, formati,
	                 novita, in_evidenza, image_urls, is_active, created_at, updated_at
	          FROM products WHERE is_active`
	args := []interface{}{}

	if category := c.Query("category"); category != "" {
		args = append(args, category)
		query += ` AND category = $1`
	}
	if c.Query("novita") == "true" {
		query += ` AND novita`
	}
	if c.Query("in_evidenza") == "true" {
		query += ` AND in_evidenza`
	}
	query += ` ORDER BY created_at DESC`

	rows, err := database.PG.Query(c.Request.Context(), query, args...)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur récupération produits"})
		return
	}
	defer rows.Close()

	products := []models.Product{}
	for rows.Next() {
		var p models.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.Stock, &p.Category,
			&p.Pezzi, &p.Formati, &p.Novita, &p.InEvidenza, &p.ImageURLs, &p.IsActive,
			&p.CreatedAt, &p.UpdatedAt); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur décodage produits"})
			return
		}
		products = append(products, p)
	}

	c.JSON(http.StatusOK, gin.H{"products": products, "count": len(products)})
}

//
// 🍫 GET /api/products/:id
//
func GetProductByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID produit invalide"})
		return
	}

	p, err := cache.GetProduct(c.Request.Context(), id)
	if err != nil || !p.IsActive {
		c.JSON(http.StatusNotFound, gin.H{"error": "Produit introuvable"})
		return
	}

	c.JSON(http.StatusOK, p)
}
