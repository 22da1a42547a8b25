package auth

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Roles are exclusive: every user carries exactly one.
const (
	RoleAdmin    = "admin"
	RoleOperator = "operator"
	RoleWorker   = "worker"
	RoleClient   = "client"
)

func ValidRole(role string) bool {
	switch role {
	case RoleAdmin, RoleOperator, RoleWorker, RoleClient:
		return true
	}
	return false
}

// User is the authenticated principal placed in the request context.
type User struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

func (u *User) HasAnyRole(roles ...string) bool {
	for _, r := range roles {
		if u.Role == r {
			return true
		}
	}
	return false
}

// Claims represents JWT token claims.
type Claims struct {
	UserID int64  `json:"user_id"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// TokenGenerator creates and validates signed tokens.
type TokenGenerator interface {
	GenerateToken(userID int64, email, role string) (string, error)
	ValidateToken(tokenString string) (*Claims, error)
}

// LoginResult is the login response body; the role is echoed so the client
// application can gate its UI without decoding the token.
type LoginResult struct {
	Token string `json:"token"`
	Role  string `json:"role"`
}

type ctxKey string

const ContextUserKey ctxKey = "authUser"

func UserFromContext(ctx context.Context) (*User, bool) {
	u, ok := ctx.Value(ContextUserKey).(*User)
	return u, ok
}

func ContextWithUser(ctx context.Context, u *User) context.Context {
	return context.WithValue(ctx, ContextUserKey, u)
}

type JWTTokenGenerator struct {
	Secret   []byte
	TokenTTL time.Duration
}
