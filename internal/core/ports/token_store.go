package ports

import "github.com/findly/findly-go/internal/core/domain"

// TokenStore persists the access/refresh token pair between sessions.
// Implementations must keep the pair invariant: both tokens stored or
// both absent. SetAccessToken replaces only the access half after a
// refresh and fails when no pair is stored.
type TokenStore interface {
	Pair() (domain.TokenPair, error)
	SetPair(pair domain.TokenPair) error
	SetAccessToken(token string) error
	Clear() error
}
