package ports

import (
	"context"

	"github.com/google/uuid"

	"github.com/findly/findly-go/internal/core/domain"
)

type UpsertBusinessInput struct {
	Name         string
	Description  string
	CategoryID   uuid.UUID
	Phone        string
	Email        string
	Website      string
	ImageURL     string
	AddressLine1 string
	AddressLine2 string
	City         string
	State        string
	PostalCode   string
	Country      string
	Latitude     *float64
	Longitude    *float64
}

type UpsertServiceInput struct {
	Name         string
	Description  string
	DurationMins int
	Price        float64
	Currency     string
	SortOrder    int
}

type DayHoursInput struct {
	DayOfWeek  int    // 0 = Sunday, 6 = Saturday
	StartTime  string // HH:mm
	EndTime    string // HH:mm
	Closed     bool
	BreakStart string
	BreakEnd   string
}

type OwnerBookingFilter struct {
	BusinessID uuid.UUID
	Status     domain.BookingStatus // empty = all
	Date       string               // YYYY-MM-DD, empty = all
	Page       int
	Size       int
}

// OwnerAPI covers the business-owner console surface.
type OwnerAPI interface {
	MyBusinesses(ctx context.Context) ([]domain.Business, error)
	CreateBusiness(ctx context.Context, input UpsertBusinessInput) (*domain.Business, error)
	UpdateBusiness(ctx context.Context, id uuid.UUID, input UpsertBusinessInput) (*domain.Business, error)

	AddService(ctx context.Context, businessID uuid.UUID, input UpsertServiceInput) (*domain.Service, error)
	UpdateService(ctx context.Context, businessID, serviceID uuid.UUID, input UpsertServiceInput) (*domain.Service, error)
	DeleteService(ctx context.Context, businessID, serviceID uuid.UUID) error
	UpdateWorkingHours(ctx context.Context, businessID uuid.UUID, hours []DayHoursInput) ([]domain.WorkingHours, error)

	Bookings(ctx context.Context, filter OwnerBookingFilter) ([]domain.Booking, error)
	ApproveBooking(ctx context.Context, id uuid.UUID) (*domain.Booking, error)
	RejectBooking(ctx context.Context, id uuid.UUID, reason string) (*domain.Booking, error)
	CompleteBooking(ctx context.Context, id uuid.UUID) (*domain.Booking, error)
	MarkNoShow(ctx context.Context, id uuid.UUID) (*domain.Booking, error)
}
