package product

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"cioccolato_back_end/internal/cache"
	"cioccolato_back_end/internal/database"
	"cioccolato_back_end/internal/models"
	"cioccolato_back_end/internal/services"
)

type productInput struct {
	Name        string             `json:"name" binding:"required"`
	Description string             `json:"description"`
	Price       float64            `json:"price" binding:"required"`
	Stock       int                `json:"stock"`
	Category    string             `json:"category" binding:"required"`
	Pezzi       int                `json:"pezzi"`
	Formati     map[string]float64 `json:"formati"`
	Novita      bool               `json:"novita"`
	InEvidenza  bool               `json:"in_evidenza"`
}

//
// 🛠️ POST /api/admin/products
//
func CreateProduct(c *gin.Context) {
	var input productInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données produit invalides"})
		return
	}
	if input.Price <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Le prix doit être positif"})
		return
	}
	if input.Formati == nil {
		input.Formati = map[string]float64{}
	}

	var p models.Product
	err := database.PG.QueryRow(c.Request.Context(),
		`INSERT INTO products (name, description, price, stock, category, pezzi, formati, novita, in_evidenza)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		 RETURNING id, name, description, price, stock, category, pezzi, formati,
		           novita, in_evidenza, image_urls, is_active, created_at, updated_at`,
		input.Name, input.Description, input.Price, input.Stock, input.Category,
		input.Pezzi, input.Formati, input.Novita, input.InEvidenza).
		Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.Stock, &p.Category,
			&p.Pezzi, &p.Formati, &p.Novita, &p.InEvidenza, &p.ImageURLs, &p.IsActive,
			&p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		log.Println("❌ Erreur création produit:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur création produit"})
		return
	}

	go services.IndexProduct(p)

	log.Printf("🍫 Produit créé: %s (%s)", p.Name, p.ID)
	c.JSON(http.StatusCreated, p)
}

//
// 🛠️ PUT /api/admin/products/:id
//
func UpdateProduct(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID produit invalide"})
		return
	}

	var input productInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données produit invalides"})
		return
	}
	if input.Formati == nil {
		input.Formati = map[string]float64{}
	}

	ctx := c.Request.Context()
	var p models.Product
	err = database.PG.QueryRow(ctx,
		`UPDATE products
		 SET name = $1, description = $2, price = $3, stock = $4, category = $5,
		     pezzi = $6, formati = $7, novita = $8, in_evidenza = $9, updated_at = now()
		 WHERE id = $10
		 RETURNING id, name, description, price, stock, category, pezzi, formati,
		           novita, in_evidenza, image_urls, is_active, created_at, updated_at`,
		input.Name, input.Description, input.Price, input.Stock, input.Category,
		input.Pezzi, input.Formati, input.Novita, input.InEvidenza, id).
		Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.Stock, &p.Category,
			&p.Pezzi, &p.Formati, &p.Novita, &p.InEvidenza, &p.ImageURLs, &p.IsActive,
			&p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Produit introuvable"})
		return
	}

	cache.InvalidateProduct(ctx, id)
	go services.IndexProduct(p)

	c.JSON(http.StatusOK, p)
}

//
// 🛠️ PATCH /api/admin/products/:id/stock — ajustement rapide depuis le back-office
//
func UpdateProductStock(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID produit invalide"})
		return
	}

	var input struct {
		Stock int `json:"stock"`
	}
	if err := c.ShouldBindJSON(&input); err != nil || input.Stock < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Stock invalide"})
		return
	}

	ctx := c.Request.Context()
	tag, err := database.PG.Exec(ctx,
		`UPDATE products SET stock = $1, updated_at = now() WHERE id = $2`, input.Stock, id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur mise à jour stock"})
		return
	}
	if tag.RowsAffected() == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Produit introuvable"})
		return
	}

	cache.InvalidateProduct(ctx, id)
	c.JSON(http.StatusOK, gin.H{"id": id, "stock": input.Stock})
}

//
// 🛠️ DELETE /api/admin/products/:id — désactivation, jamais de suppression dure
// (les commandes passées référencent encore le produit)
//
func DeleteProduct(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID produit invalide"})
		return
	}

	ctx := c.Request.Context()
	tag, err := database.PG.Exec(ctx,
		`UPDATE products SET is_active = false, updated_at = now() WHERE id = $1`, id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur désactivation produit"})
		return
	}
	if tag.RowsAffected() == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Produit introuvable"})
		return
	}

	cache.InvalidateProduct(ctx, id)
	go services.RemoveProductFromIndex(id.String())

	log.Printf("🗑️ Produit désactivé: %s", id)
	c.JSON(http.StatusOK, gin.H{"message": "Produit désactivé"})
}

//
// 🛠️ POST /api/admin/products/:id/images — upload multipart vers MinIO
//
func UploadProductImage(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID produit invalide"})
		return
	}

	file, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Aucune image fournie"})
		return
	}

	ctx := c.Request.Context()
	url, err := services.UploadProductImage(ctx, file)
	if err != nil {
		log.Println("❌ Erreur upload image:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur upload image"})
		return
	}

	tag, err := database.PG.Exec(ctx,
		`UPDATE products SET image_urls = array_append(image_urls, $1), updated_at = now()
		 WHERE id = $2`, url, id)
	if err != nil || tag.RowsAffected() == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Produit introuvable"})
		return
	}

	cache.InvalidateProduct(ctx, id)
	c.JSON(http.StatusCreated, gin.H{"url": url})
}
