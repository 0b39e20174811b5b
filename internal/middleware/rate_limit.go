package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"cioccolato_back_end/internal/database"
)

const (
	loginMaxAttempts = 5
	loginCooldown    = 15 * time.Minute
)

// LoginRateLimit compte les tentatives de connexion par email dans Redis et
// bloque au-delà du plafond. Fail-open si Redis répond mal : on ne refuse pas
// un login à cause du compteur.
func LoginRateLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		bodyBytes, _ := io.ReadAll(c.Request.Body)
		c.Request.Body = io.NopCloser(bytes.NewBuffer(bodyBytes))

		var input struct {
			Email string `json:"email"`
		}
		if err := json.Unmarshal(bodyBytes, &input); err != nil || input.Email == "" {
			c.Next()
			return
		}

		ctx := context.Background()
		key := "ratelimit:login:" + input.Email

		count, err := database.Redis.Incr(ctx, key).Result()
		if err != nil {
			c.Next()
			return
		}
		if count == 1 {
			database.Redis.Expire(ctx, key, loginCooldown)
		}

		if count > loginMaxAttempts {
			ttl, _ := database.Redis.TTL(ctx, key).Result()
			c.JSON(http.StatusTooManyRequests, gin.H{
				"error":       "Trop de tentatives, réessayez plus tard",
				"retry_after": fmt.Sprintf("%.0fs", ttl.Seconds()),
			})
			c.Abort()
			return
		}

		c.Next()
	}
}
