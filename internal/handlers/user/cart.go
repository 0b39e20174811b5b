package user

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"cioccolato_back_end/internal/cache"
	"cioccolato_back_end/internal/cart"
	"cioccolato_back_end/internal/database"
	"cioccolato_back_end/internal/models"
	"cioccolato_back_end/internal/notify"
)

// newCartKV fabrique le stockage du panier. Variable pour que les tests
// branchent un KV en mémoire à la place de Redis.
var newCartKV = func() cart.KV { return cart.NewRedisKV(database.Redis) }

// openCart hydrate le panier de l'utilisateur depuis Redis pour la durée de
// la requête. Les mutations repartent vers Redis et les autres onglets via le
// canal pub/sub de la clé.
func openCart(c *gin.Context) (*cart.Store, bool) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "non authentifié"})
		return nil, false
	}

	store := cart.NewStore()
	cart.Attach(c.Request.Context(), newCartKV(), userID, store)
	return store, true
}

func cartResponse(store *cart.Store) gin.H {
	return gin.H{
		"items":          store.Lines(),
		"total_quantity": store.TotalQuantity(),
		"total_amount":   store.TotalAmount(),
	}
}

//
// 🛒 GET /api/cart
//
func GetCart(c *gin.Context) {
	store, ok := openCart(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, cartResponse(store))
}

//
// 🟢 POST /api/cart/add
//
func AddToCart(c *gin.Context) {
	store, ok := openCart(c)
	if !ok {
		return
	}

	var input struct {
		ProductID string `json:"productId"`
		Formato   string `json:"formato"` // taille de boîte, optionnel
		Quantity  int    `json:"quantity"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides"})
		return
	}
	if input.Quantity <= 0 {
		input.Quantity = 1
	}

	productID, err := uuid.Parse(input.ProductID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID produit invalide"})
		return
	}

	product, err := cache.GetProduct(c.Request.Context(), productID)
	if err != nil || !product.IsActive {
		c.JSON(http.StatusNotFound, gin.H{"error": "Produit introuvable"})
		return
	}
	if product.Stock < input.Quantity {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     "Stock insuffisant",
			"available": product.Stock,
		})
		return
	}

	// 🖼️ Première image pour l'aperçu panier
	immagine := ""
	if len(product.ImageURLs) > 0 {
		immagine = product.ImageURLs[0]
	}

	// Un produit dans un format de boîte donné est une ligne distincte.
	lineID := input.ProductID
	if input.Formato != "" {
		lineID = input.ProductID + "-" + input.Formato
	}

	line := models.CartLine{
		ID:       lineID,
		Nome:     product.Name,
		Prezzo:   product.FormatPrice(input.Formato),
		Immagine: immagine,
		Tipo:     input.Formato,
		Pezzi:    product.Pezzi,
	}

	toasts := notify.NewQueue(notify.DefaultTTL)
	facade := cart.NewFacade(store, toasts)
	facade.AddItem(line, input.Quantity)

	resp := cartResponse(store)
	if items := toasts.Items(); len(items) > 0 {
		resp["toast"] = items[len(items)-1]
	}
	c.JSON(http.StatusOK, resp)
}

//
// 🔁 PATCH /api/cart/:id
//
func UpdateCartQuantity(c *gin.Context) {
	store, ok := openCart(c)
	if !ok {
		return
	}

	var input struct {
		Qty int `json:"qty"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides"})
		return
	}

	// quantité bornée à 1 : la suppression passe par DELETE, pas par qty=0
	store.UpdateQty(c.Param("id"), input.Qty)
	c.JSON(http.StatusOK, cartResponse(store))
}

//
// ❌ DELETE /api/cart/:id
//
func RemoveFromCart(c *gin.Context) {
	store, ok := openCart(c)
	if !ok {
		return
	}

	toasts := notify.NewQueue(notify.DefaultTTL)
	facade := cart.NewFacade(store, toasts)
	facade.RemoveItem(c.Param("id"))

	resp := cartResponse(store)
	if items := toasts.Items(); len(items) > 0 {
		resp["toast"] = items[len(items)-1]
	}
	c.JSON(http.StatusOK, resp)
}

//
// 🧹 DELETE /api/cart
//
func ClearCart(c *gin.Context) {
	store, ok := openCart(c)
	if !ok {
		return
	}

	store.Clear()
	c.JSON(http.StatusOK, gin.H{"message": "Panier vidé avec succès"})
}
