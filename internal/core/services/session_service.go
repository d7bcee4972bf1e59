package services

import (
	"context"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"github.com/findly/findly-go/internal/core/domain"
	"github.com/findly/findly-go/internal/core/ports"
)

// SessionService owns the current-user identity and the token lifecycle.
// It is the only writer of session state; the reservation flow reads it
// through ports.SessionReader.
type SessionService struct {
	auth   ports.AuthAPI
	tokens ports.TokenStore
	log    *zap.Logger

	mu          sync.Mutex
	user        *domain.User
	loading     bool
	tokenExpiry time.Time
}

func NewSessionService(auth ports.AuthAPI, tokens ports.TokenStore, log *zap.Logger) *SessionService {
	return &SessionService{
		auth:   auth,
		tokens: tokens,
		log:    log,
	}
}

// Initialize resolves a stored session at startup. A stored access token is
// validated against /auth/me; any failure leaves the session logged out and
// clears both tokens. Initialize itself never returns an error.
func (s *SessionService) Initialize(ctx context.Context) {
	s.mu.Lock()
	s.loading = true
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.loading = false
		s.mu.Unlock()
	}()

	pair, err := s.tokens.Pair()
	if err != nil || pair.AccessToken == "" {
		return
	}

	user, err := s.auth.Me(ctx)
	if err != nil {
		s.log.Debug("stored session invalid, clearing tokens", zap.Error(err))
		if cerr := s.tokens.Clear(); cerr != nil {
			s.log.Warn("failed to clear tokens", zap.Error(cerr))
		}
		return
	}

	s.mu.Lock()
	s.user = user
	s.tokenExpiry = tokenExpiry(pair.AccessToken)
	s.mu.Unlock()
	s.log.Info("session restored", zap.String("email", user.Email))
}

func (s *SessionService) Login(ctx context.Context, email, password string) error {
	result, err := s.auth.Login(ctx, email, password)
	if err != nil {
		return err
	}
	return s.establish(result)
}

func (s *SessionService) Register(ctx context.Context, input ports.RegisterInput) error {
	result, err := s.auth.Register(ctx, input)
	if err != nil {
		return err
	}
	return s.establish(result)
}

func (s *SessionService) establish(result *ports.AuthResult) error {
	if err := s.tokens.SetPair(result.Tokens); err != nil {
		return err
	}
	s.mu.Lock()
	s.user = result.User
	s.tokenExpiry = tokenExpiry(result.Tokens.AccessToken)
	s.mu.Unlock()
	return nil
}

// Logout always succeeds locally. The remote call is best-effort and its
// error is only logged.
func (s *SessionService) Logout(ctx context.Context) {
	if err := s.auth.Logout(ctx); err != nil {
		s.log.Debug("remote logout failed", zap.Error(err))
	}
	if err := s.tokens.Clear(); err != nil {
		s.log.Warn("failed to clear tokens", zap.Error(err))
	}
	s.mu.Lock()
	s.user = nil
	s.tokenExpiry = time.Time{}
	s.mu.Unlock()
}

// HandleAuthExpired is wired as the transport's AuthExpiredFunc: the tokens
// are already cleared by then, only the in-memory identity remains.
func (s *SessionService) HandleAuthExpired() {
	s.mu.Lock()
	s.user = nil
	s.tokenExpiry = time.Time{}
	s.mu.Unlock()
	s.log.Info("session expired, logged out")
}

func (s *SessionService) CurrentUser() *domain.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.user
}

func (s *SessionService) IsAuthenticated() bool {
	return s.CurrentUser() != nil
}

func (s *SessionService) IsOwner() bool {
	u := s.CurrentUser()
	return u != nil && u.Role == domain.RoleBusinessOwner
}

func (s *SessionService) IsCustomer() bool {
	u := s.CurrentUser()
	return u != nil && u.Role == domain.RoleCustomer
}

func (s *SessionService) IsLoading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// TokenExpiresAt reports the exp claim of the current access token, zero
// when unknown.
func (s *SessionService) TokenExpiresAt() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tokenExpiry
}

// tokenExpiry reads the exp claim without verifying the signature; the
// client has no signing key and only uses this for display and diagnostics.
func tokenExpiry(accessToken string) time.Time {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(accessToken, claims); err != nil {
		return time.Time{}
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}
	}
	return exp.Time
}
