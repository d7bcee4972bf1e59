package ports

import (
	"context"

	"github.com/google/uuid"

	"github.com/findly/findly-go/internal/core/domain"
)

type CreateBookingInput struct {
	BusinessID uuid.UUID
	ServiceID  uuid.UUID
	Date       string // YYYY-MM-DD
	StartTime  string // HH:mm
	Notes      string
	// Guest contact, only sent on the guest endpoint.
	GuestName  string
	GuestPhone string
	GuestEmail string
	// IdempotencyKey is generated by the client per submission attempt.
	IdempotencyKey uuid.UUID
}

type BookingAPI interface {
	Slots(ctx context.Context, businessID, serviceID uuid.UUID, date string) (*domain.SlotAvailability, error)
	Create(ctx context.Context, input CreateBookingInput) (*domain.Booking, error)
	CreateGuest(ctx context.Context, input CreateBookingInput) (*domain.Booking, error)
	MyBookings(ctx context.Context, page, size int) ([]domain.Booking, error)
	Cancel(ctx context.Context, id uuid.UUID) (*domain.Booking, error)
}
