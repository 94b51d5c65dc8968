package ports

import (
	"context"

	"github.com/google/uuid"
	"github.com/srgjo27/captainbook/internal/core/domain"
)

// Notifier publishes an event to every connection currently in room.
// Delivery is best effort; implementations must not block on slow consumers.
type Notifier interface {
	Publish(ctx context.Context, room domain.Room, event domain.Event) error
}

type TokenIssuer interface {
	Issue(subject uuid.UUID, role domain.Role) (token string, claims domain.Principal, err error)
	Parse(token string) (domain.Principal, error)
}

type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) error
}
