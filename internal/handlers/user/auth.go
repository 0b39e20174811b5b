package user

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"cioccolato_back_end/internal/database"
	"cioccolato_back_end/internal/models"
	"cioccolato_back_end/internal/utils"
)

// ================== AUTH LOCALE ==================

//
// ✅ POST /api/auth/register
//
func Register(c *gin.Context) {
	var input struct {
		Name     string `json:"name" binding:"required"`
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required,min=8"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx := c.Request.Context()
	email := strings.ToLower(strings.TrimSpace(input.Email))

	var exists bool
	if err := database.PG.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM users WHERE email = $1 AND provider = 'local')`, email).
		Scan(&exists); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur vérification email"})
		return
	}
	if exists {
		c.JSON(http.StatusConflict, gin.H{"error": "Un compte avec cet email existe déjà"})
		return
	}

	hash, err := utils.HashPassword(input.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur création utilisateur"})
		return
	}

	user := models.User{
		ID:        uuid.New(),
		Name:      input.Name,
		Email:     email,
		Password:  hash,
		Role:      "cliente",
		Provider:  "local",
		CreatedAt: time.Now(),
	}

	if _, err := database.PG.Exec(ctx,
		`INSERT INTO users (id, name, email, password_hash, role, provider, created_at)
		 VALUES ($1,$2,$3,$4,$5,$6,$7)`,
		user.ID, user.Name, user.Email, user.Password, user.Role, user.Provider, user.CreatedAt); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur création utilisateur"})
		return
	}

	token, err := utils.GenerateJWT(user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur génération token"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"token":  token,
		"userId": user.ID,
		"email":  user.Email,
		"name":   user.Name,
		"role":   user.Role,
	})
}

//
// ✅ POST /api/auth/login
//
func Login(c *gin.Context) {
	var input struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	email := strings.ToLower(strings.TrimSpace(input.Email))

	var user models.User
	err := database.PG.QueryRow(c.Request.Context(),
		`SELECT id, name, email, password_hash, role, provider, created_at
		 FROM users WHERE email = $1 AND provider = 'local'`, email).
		Scan(&user.ID, &user.Name, &user.Email, &user.Password, &user.Role, &user.Provider, &user.CreatedAt)

	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Email ou mot de passe incorrect"})
		return
	}

	ok, err := utils.VerifyPassword(input.Password, user.Password)
	if err != nil || !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Email ou mot de passe incorrect"})
		return
	}

	token, err := utils.GenerateJWT(user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur génération token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token":  token,
		"userId": user.ID,
		"email":  user.Email,
		"name":   user.Name,
		"role":   user.Role,
	})
}

//
// ✅ GET /api/auth/me
//
func Me(c *gin.Context) {
	userID, err := uuid.Parse(c.GetString("user_id"))
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Utilisateur non authentifié"})
		return
	}

	var user models.User
	err = database.PG.QueryRow(c.Request.Context(),
		`SELECT id, name, email, role, provider, created_at FROM users WHERE id = $1`, userID).
		Scan(&user.ID, &user.Name, &user.Email, &user.Role, &user.Provider, &user.CreatedAt)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Utilisateur introuvable"})
		return
	}

	c.JSON(http.StatusOK, user)
}
