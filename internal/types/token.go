package types

import (
	"github.com/google/uuid"
)

// TokenClaims is the decoded identity carried by a session token. It is
// passed explicitly into service calls; nothing reads it from global state.
type TokenClaims struct {
	UserID uuid.UUID `json:"user_id"`
	Role   string    `json:"role"`
}
