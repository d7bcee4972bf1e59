package geo

import (
	"context"

	"github.com/findly/findly-go/internal/core/domain"
)

// Static serves fixed coordinates, typically from FINDLY_LAT / FINDLY_LNG.
// When none are configured it reports the position as unavailable, which
// the directory service degrades to a coordinate-less search.
type Static struct {
	coords *domain.Coordinates
}

func NewStatic(lat, lng *float64) *Static {
	if lat == nil || lng == nil {
		return &Static{}
	}
	return &Static{coords: &domain.Coordinates{Latitude: *lat, Longitude: *lng}}
}

func (s *Static) Current(ctx context.Context) (domain.Coordinates, error) {
	if s.coords == nil {
		return domain.Coordinates{}, domain.ErrLocationUnavailable
	}
	return *s.coords, nil
}
