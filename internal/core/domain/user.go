package domain

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID           uuid.UUID `json:"_id"`
	FullName     FullName  `json:"fullname"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Role identifies which identity table a session token points at.
type Role string

const (
	RoleUser    Role = "user"
	RoleCaptain Role = "captain"
)

// Principal is the identity resolved from a verified session token.
type Principal struct {
	ID        uuid.UUID
	Role      Role
	TokenID   string
	ExpiresAt time.Time
}
