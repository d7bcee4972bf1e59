package ports

import (
	"context"

	"github.com/google/uuid"

	"github.com/findly/findly-go/internal/core/domain"
)

type SearchInput struct {
	Coords       *domain.Coordinates
	RadiusMeters float64
	Query        string
	CategoryID   *uuid.UUID
	Page         int
	Size         int
}

// BusinessPage mirrors the server's paged listing envelope.
type BusinessPage struct {
	Content       []domain.Business `json:"content"`
	Page          int               `json:"page"`
	Size          int               `json:"size"`
	TotalElements int64             `json:"totalElements"`
	TotalPages    int               `json:"totalPages"`
}

type BusinessAPI interface {
	Search(ctx context.Context, input SearchInput) (*BusinessPage, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Business, error)
	Services(ctx context.Context, businessID uuid.UUID) ([]domain.Service, error)
	Hours(ctx context.Context, businessID uuid.UUID) ([]domain.WorkingHours, error)
	Categories(ctx context.Context) ([]domain.Category, error)
	CategoryBySlug(ctx context.Context, slug string) (*domain.Category, error)
}

// LocationProvider supplies the coordinates used to rank search results.
// Failures map onto domain.ErrLocationDenied, ErrLocationUnavailable and
// ErrLocationTimeout and must never be fatal to browsing.
type LocationProvider interface {
	Current(ctx context.Context) (domain.Coordinates, error)
}
