package stub

import (
	"net/http"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/findly/findly-go/internal/core/domain"
)

type authResponse struct {
	AccessToken  string      `json:"accessToken"`
	RefreshToken string      `json:"refreshToken"`
	TokenType    string      `json:"tokenType"`
	ExpiresIn    int64       `json:"expiresIn"`
	User         domain.User `json:"user"`
}

func (s *Server) authResponseFor(w http.ResponseWriter, a *account, status int) {
	access, err := s.issueAccessToken(a)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "TOKEN_ERROR", "Failed to issue token")
		return
	}
	refresh := uuid.NewString()

	s.store.mu.Lock()
	s.store.refresh[refresh] = a.ID
	s.store.mu.Unlock()

	writeJSON(w, status, authResponse{
		AccessToken:  access,
		RefreshToken: refresh,
		TokenType:    "Bearer",
		ExpiresIn:    int64(s.accessTTL.Seconds()),
		User:         a.User,
	})
}

func (s *Server) register(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email     string          `json:"email"`
		Password  string          `json:"password"`
		FirstName string          `json:"firstName"`
		LastName  string          `json:"lastName"`
		Phone     string          `json:"phone"`
		Role      domain.UserRole `json:"role"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Email == "" || req.Password == "" || req.FirstName == "" {
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", "Email, password and first name are required")
		return
	}
	if req.Role != domain.RoleCustomer && req.Role != domain.RoleBusinessOwner {
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", "Role must be CUSTOMER or BUSINESS_OWNER")
		return
	}

	s.store.mu.Lock()
	if s.store.userByEmail(req.Email) != nil {
		s.store.mu.Unlock()
		writeError(w, http.StatusConflict, "EMAIL_TAKEN", "Email is already registered")
		return
	}
	a := s.store.addUser(req.Email, req.Password, req.FirstName, req.LastName, req.Role)
	a.Phone = req.Phone
	s.store.mu.Unlock()

	s.log.Info("registered user", zap.String("email", a.Email))
	s.authResponseFor(w, a, http.StatusCreated)
}

func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if !decodeBody(w, r, &req) {
		return
	}

	s.store.mu.Lock()
	a := s.store.userByEmail(req.Email)
	s.store.mu.Unlock()

	if a == nil || bcrypt.CompareHashAndPassword(a.passwordHash, []byte(req.Password)) != nil {
		writeError(w, http.StatusUnauthorized, "INVALID_CREDENTIALS", "Invalid email or password")
		return
	}
	s.authResponseFor(w, a, http.StatusOK)
}

func (s *Server) refresh(w http.ResponseWriter, r *http.Request) {
	var req struct {
		RefreshToken string `json:"refreshToken"`
	}
	if !decodeBody(w, r, &req) {
		return
	}

	s.store.mu.Lock()
	userID, ok := s.store.refresh[strings.TrimSpace(req.RefreshToken)]
	a := s.store.users[userID]
	s.store.mu.Unlock()

	if !ok || a == nil {
		writeError(w, http.StatusUnauthorized, "INVALID_REFRESH_TOKEN", "Refresh token is invalid or revoked")
		return
	}

	access, err := s.issueAccessToken(a)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "TOKEN_ERROR", "Failed to issue token")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"accessToken": access,
		"tokenType":   "Bearer",
		"expiresIn":   int64(s.accessTTL.Seconds()),
	})
}

func (s *Server) logout(w http.ResponseWriter, r *http.Request) {
	a := currentUser(r)

	s.store.mu.Lock()
	for token, id := range s.store.refresh {
		if id == a.ID {
			delete(s.store.refresh, token)
		}
	}
	s.store.mu.Unlock()

	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) me(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, currentUser(r).User)
}
