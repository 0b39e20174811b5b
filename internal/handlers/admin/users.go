package admin

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"cioccolato_back_end/internal/database"
	"cioccolato_back_end/internal/models"
)

//
// 👥 GET /api/admin/users
//
func ListUsers(c *gin.Context) {
	rows, err := database.PG.Query(c.Request.Context(),
		`SELECT id, email, name, role, provider, created_at FROM users ORDER BY created_at DESC`)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur récupération utilisateurs"})
		return
	}
	defer rows.Close()

	users := []models.User{}
	for rows.Next() {
		var u models.User
		if err := rows.Scan(&u.ID, &u.Email, &u.Name, &u.Role, &u.Provider, &u.CreatedAt); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur décodage utilisateurs"})
			return
		}
		users = append(users, u)
	}

	c.JSON(http.StatusOK, gin.H{"users": users, "count": len(users)})
}

//
// 👥 PATCH /api/admin/users/:id/role
//
func UpdateUserRole(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID utilisateur invalide"})
		return
	}

	var input struct {
		Role string `json:"role" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides"})
		return
	}
	if input.Role != "cliente" && input.Role != "admin" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Rôle inconnu: " + input.Role})
		return
	}

	// un admin ne peut pas se rétrograder lui-même
	if c.GetString("user_id") == id.String() && input.Role != "admin" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Impossible de modifier son propre rôle"})
		return
	}

	tag, err := database.PG.Exec(c.Request.Context(),
		`UPDATE users SET role = $1 WHERE id = $2`, input.Role, id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur mise à jour rôle"})
		return
	}
	if tag.RowsAffected() == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Utilisateur introuvable"})
		return
	}

	log.Printf("👥 Rôle de %s changé en %s", id, input.Role)
	c.JSON(http.StatusOK, gin.H{"id": id, "role": input.Role})
}

//
// 👥 DELETE /api/admin/users/:id
//
func DeleteUser(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID utilisateur invalide"})
		return
	}

	if c.GetString("user_id") == id.String() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Impossible de supprimer son propre compte"})
		return
	}

	tag, err := database.PG.Exec(c.Request.Context(), `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur suppression utilisateur"})
		return
	}
	if tag.RowsAffected() == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Utilisateur introuvable"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Utilisateur supprimé"})
}
