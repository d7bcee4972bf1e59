package services

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/findly/findly-go/internal/core/domain"
	"github.com/findly/findly-go/internal/core/ports"
)

// DirectoryService covers browse and search: nearby businesses, categories,
// and per-business catalogs. Location failures degrade to a notice and a
// search without coordinates, never an aborted browse.
type DirectoryService struct {
	businesses ports.BusinessAPI
	location   ports.LocationProvider
	log        *zap.Logger
}

func NewDirectoryService(businesses ports.BusinessAPI, location ports.LocationProvider, log *zap.Logger) *DirectoryService {
	return &DirectoryService{
		businesses: businesses,
		location:   location,
		log:        log,
	}
}

// Search runs a business search. When the input carries no coordinates the
// location provider is consulted; its failure is reported as a user-facing
// notice alongside the (coordinate-less) results.
func (s *DirectoryService) Search(ctx context.Context, input ports.SearchInput) (*ports.BusinessPage, string, error) {
	notice := ""
	if input.Coords == nil && s.location != nil {
		coords, err := s.location.Current(ctx)
		if err != nil {
			notice = locationNotice(err)
			s.log.Debug("searching without coordinates", zap.String("notice", notice))
		} else {
			input.Coords = &coords
		}
	}

	page, err := s.businesses.Search(ctx, input)
	if err != nil {
		return nil, notice, err
	}
	return page, notice, nil
}

func (s *DirectoryService) BusinessDetail(ctx context.Context, id uuid.UUID) (*domain.Business, error) {
	return s.businesses.GetByID(ctx, id)
}

func (s *DirectoryService) Categories(ctx context.Context) ([]domain.Category, error) {
	return s.businesses.Categories(ctx)
}

func (s *DirectoryService) CategoryBySlug(ctx context.Context, slug string) (*domain.Category, error) {
	return s.businesses.CategoryBySlug(ctx, slug)
}

// locationNotice maps the three geolocation failure kinds onto their
// distinct user-facing messages.
func locationNotice(err error) string {
	switch {
	case errors.Is(err, domain.ErrLocationDenied),
		errors.Is(err, domain.ErrLocationUnavailable),
		errors.Is(err, domain.ErrLocationTimeout):
		return err.Error()
	default:
		return "Failed to get location"
	}
}
