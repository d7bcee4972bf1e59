// Package stub is an in-memory double of the Findly API used for local
// development and for the client's end-to-end tests. It mirrors the real
// server's surface and wire formats but persists nothing.
package stub

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/findly/findly-go/internal/core/domain"
)

type ctxKey string

const ctxUser ctxKey = "stub.user"

type Server struct {
	store     *Store
	secret    []byte
	accessTTL time.Duration
	log       *zap.Logger
	clock     func() time.Time
}

func NewServer(secret string, accessTTL time.Duration, log *zap.Logger) *Server {
	return &Server{
		store:     NewStore(),
		secret:    []byte(secret),
		accessTTL: accessTTL,
		log:       log,
		clock:     time.Now,
	}
}

func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/auth/register", s.register)
		r.Post("/auth/login", s.login)
		r.Post("/auth/refresh", s.refresh)

		r.Get("/businesses", s.searchBusinesses)
		r.Get("/businesses/{id}", s.getBusiness)
		r.Get("/businesses/{id}/services", s.getBusinessServices)
		r.Get("/businesses/{id}/hours", s.getBusinessHours)

		r.Get("/categories", s.getCategories)
		r.Get("/categories/slug/{slug}", s.getCategoryBySlug)

		r.Get("/bookings/businesses/{businessId}/slots", s.getSlots)
		r.Post("/bookings/guest", s.createGuestBooking)

		r.Group(func(r chi.Router) {
			r.Use(s.requireAuth)

			r.Post("/auth/logout", s.logout)
			r.Get("/auth/me", s.me)

			r.Post("/bookings", s.createBooking)
			r.Get("/bookings", s.myBookings)
			r.Put("/bookings/{id}/cancel", s.cancelBooking)

			r.Route("/owner", func(r chi.Router) {
				r.Use(s.requireRole(domain.RoleBusinessOwner))

				r.Get("/businesses", s.ownerBusinesses)
				r.Post("/businesses", s.ownerCreateBusiness)
				r.Put("/businesses/{id}", s.ownerUpdateBusiness)
				r.Post("/businesses/{businessId}/services", s.ownerAddService)
				r.Put("/businesses/{businessId}/services/{serviceId}", s.ownerUpdateService)
				r.Delete("/businesses/{businessId}/services/{serviceId}", s.ownerDeleteService)
				r.Put("/businesses/{businessId}/hours", s.ownerUpdateHours)

				r.Get("/bookings", s.ownerBookings)
				r.Put("/bookings/{id}/approve", s.ownerBookingAction(domain.BookingApproved))
				r.Put("/bookings/{id}/reject", s.ownerBookingAction(domain.BookingRejected))
				r.Put("/bookings/{id}/complete", s.ownerBookingAction(domain.BookingCompleted))
				r.Put("/bookings/{id}/no-show", s.ownerBookingAction(domain.BookingNoShow))
			})
		})
	})

	return r
}

// ---- auth plumbing ----

func (s *Server) issueAccessToken(a *account) (string, error) {
	now := s.clock()
	claims := jwt.MapClaims{
		"sub":   a.ID.String(),
		"email": a.Email,
		"role":  string(a.Role),
		"iat":   now.Unix(),
		"exp":   now.Add(s.accessTTL).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

func (s *Server) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Missing bearer token")
			return
		}

		claims := jwt.MapClaims{}
		token, err := jwt.ParseWithClaims(strings.TrimPrefix(header, "Bearer "), claims, func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return s.secret, nil
		}, jwt.WithTimeFunc(s.clock))
		if err != nil || !token.Valid {
			writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Invalid or expired token")
			return
		}

		sub, _ := claims["sub"].(string)
		id, err := uuid.Parse(sub)
		if err != nil {
			writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Invalid token subject")
			return
		}

		s.store.mu.Lock()
		a, ok := s.store.users[id]
		s.store.mu.Unlock()
		if !ok {
			writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Unknown user")
			return
		}

		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), ctxUser, a)))
	})
}

func (s *Server) requireRole(role domain.UserRole) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if currentUser(r).Role != role {
				writeError(w, http.StatusForbidden, "FORBIDDEN", "Insufficient role")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func currentUser(r *http.Request) *account {
	a, _ := r.Context().Value(ctxUser).(*account)
	return a
}

// ---- response helpers ----

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		_ = json.NewEncoder(w).Encode(v)
	}
}

type errorEnvelope struct {
	Timestamp time.Time `json:"timestamp"`
	Status    int       `json:"status"`
	Error     string    `json:"error"`
	Code      string    `json:"code,omitempty"`
	Message   string    `json:"message"`
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorEnvelope{
		Timestamp: time.Now().UTC(),
		Status:    status,
		Error:     http.StatusText(status),
		Code:      code,
		Message:   message,
	})
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "BAD_REQUEST", "Invalid request body")
		return false
	}
	return true
}
