package models

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Password  string    `json:"-"` // hash argon2id, jamais exposé
	Role      string    `json:"role"`     // "cliente" ou "admin"
	Provider  string    `json:"provider"` // "local", "google", "facebook"
	CreatedAt time.Time `json:"created_at"`
}
