package user

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"cioccolato_back_end/internal/cart"
	"cioccolato_back_end/internal/models"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		// Autoriser toutes les origines (à ajuster en production)
		return true
	},
}

// CartWebSocket pousse le panier à l'onglet connecté chaque fois qu'un autre
// onglet (ou le webhook de paiement) modifie la clé. Le remplacement est
// intégral : le dernier écrivain gagne.
//
// Une fois Watch lancé, le store appartient à sa goroutine d'écoute ; cette
// boucle ne lit que les instantanés reçus sur le canal.
func CartWebSocket(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Non authentifié"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("❌ Erreur upgrade WebSocket: %v", err)
		return
	}
	defer conn.Close()

	ctx := c.Request.Context()

	store := cart.NewStore()
	adapter := cart.Attach(ctx, newCartKV(), userID, store)

	// Instantané pris avant Watch : après, on ne touche plus au store.
	initial := store.Lines()

	changes, stop := adapter.Watch(ctx)
	defer stop()

	conn.WriteJSON(gin.H{
		"type":    "connected",
		"message": "Synchronisation panier activée",
	})

	// État initial, puis mises à jour
	conn.WriteJSON(cartUpdateMessage(initial))

	for {
		select {
		case lines, open := <-changes:
			if !open {
				return
			}
			if err := conn.WriteJSON(cartUpdateMessage(lines)); err != nil {
				log.Printf("❌ Erreur envoi WebSocket: %v", err)
				return
			}
		case <-time.After(30 * time.Second):
			// Ping pour garder la connexion active
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func cartUpdateMessage(lines []models.CartLine) gin.H {
	count := 0
	total := 0.0
	for _, l := range lines {
		count += l.Qty
		total += l.Prezzo * float64(l.Qty)
	}
	return gin.H{
		"type":  "cart_updated",
		"items": lines,
		"total": total,
		"count": count,
	}
}
