package ports

import (
	"context"

	"github.com/findly/findly-go/internal/core/domain"
)

type RegisterInput struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
	Phone     string
	Role      domain.UserRole
}

// AuthResult is the payload of a successful login, register or refresh call.
type AuthResult struct {
	Tokens    domain.TokenPair
	TokenType string
	ExpiresIn int64 // seconds
	User      *domain.User
}

// AuthAPI covers the /auth surface. Token refresh is not exposed here; it
// belongs to the transport's retry-once policy.
type AuthAPI interface {
	Login(ctx context.Context, email, password string) (*AuthResult, error)
	Register(ctx context.Context, input RegisterInput) (*AuthResult, error)
	Me(ctx context.Context) (*domain.User, error)
	Logout(ctx context.Context) error
}

// SessionReader is the read-only view of the session the reservation flow
// depends on. The flow never mutates session state.
type SessionReader interface {
	IsAuthenticated() bool
	CurrentUser() *domain.User
}
