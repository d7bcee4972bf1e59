package rest

import (
	"time"

	"go.uber.org/zap"

	"github.com/findly/findly-go/internal/core/ports"
)

// Client bundles the per-surface API adapters over one shared transport.
type Client struct {
	Transport *Transport
	Auth      *AuthAPI
	Business  *BusinessAPI
	Booking   *BookingAPI
	Owner     *OwnerAPI
}

func NewClient(baseURL string, timeout time.Duration, tokens ports.TokenStore, log *zap.Logger) *Client {
	t := NewTransport(baseURL, timeout, tokens, log)
	return &Client{
		Transport: t,
		Auth:      NewAuthAPI(t),
		Business:  NewBusinessAPI(t),
		Booking:   NewBookingAPI(t),
		Owner:     NewOwnerAPI(t),
	}
}
