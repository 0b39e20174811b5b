package user

import (
	"fmt"
	"net/http"
	"net/url"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/markbates/goth"
	"github.com/markbates/goth/gothic"

	"cioccolato_back_end/internal/database"
	"cioccolato_back_end/internal/models"
	"cioccolato_back_end/internal/utils"
)

// ================== AUTH OAUTH (Google / Facebook) ==================

//
// 🔑 GET /api/auth/:provider
//
func BeginAuth(c *gin.Context) {
	if c.Param("provider") == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "aucun provider spécifié"})
		return
	}

	// gothic lit le provider depuis la query (voir gothic.GetProviderName dans main)
	q := c.Request.URL.Query()
	q.Set("provider", c.Param("provider"))
	c.Request.URL.RawQuery = q.Encode()

	gothic.BeginAuthHandler(c.Writer, c.Request)
}

//
// 🔑 GET /api/auth/:provider/callback
//
func CallbackAuth(c *gin.Context) {
	q := c.Request.URL.Query()
	q.Set("provider", c.Param("provider"))
	c.Request.URL.RawQuery = q.Encode()

	gothUser, err := gothic.CompleteUserAuth(c.Writer, c.Request)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := upsertOAuthUser(c, gothUser)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur création utilisateur"})
		return
	}

	token, err := utils.GenerateJWT(*user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur génération token"})
		return
	}

	// Retour vers le front avec le token en query
	frontend := os.Getenv("FRONTEND_URL")
	if frontend == "" {
		c.JSON(http.StatusOK, gin.H{"token": token, "email": user.Email, "role": user.Role})
		return
	}
	c.Redirect(http.StatusTemporaryRedirect,
		fmt.Sprintf("%s/auth/callback?token=%s", frontend, url.QueryEscape(token)))
}

//
// 🚪 GET /api/auth/logout
//
func Logout(c *gin.Context) {
	gothic.Logout(c.Writer, c.Request)
	c.JSON(http.StatusOK, gin.H{"message": "Déconnecté"})
}

// upsertOAuthUser retrouve ou crée l'utilisateur lié à ce compte externe.
func upsertOAuthUser(c *gin.Context, gothUser goth.User) (*models.User, error) {
	ctx := c.Request.Context()

	var user models.User
	err := database.PG.QueryRow(ctx,
		`SELECT id, name, email, role, provider, created_at
		 FROM users WHERE email = $1 AND provider = $2`, gothUser.Email, gothUser.Provider).
		Scan(&user.ID, &user.Name, &user.Email, &user.Role, &user.Provider, &user.CreatedAt)
	if err == nil {
		return &user, nil
	}

	name := gothUser.Name
	if name == "" {
		name = gothUser.NickName
	}

	user = models.User{
		ID:        uuid.New(),
		Name:      name,
		Email:     gothUser.Email,
		Role:      "cliente",
		Provider:  gothUser.Provider,
		CreatedAt: time.Now(),
	}

	_, err = database.PG.Exec(ctx,
		`INSERT INTO users (id, name, email, password_hash, role, provider, created_at)
		 VALUES ($1,$2,$3,'',$4,$5,$6)`,
		user.ID, user.Name, user.Email, user.Role, user.Provider, user.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &user, nil
}
