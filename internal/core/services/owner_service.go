package services

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/findly/findly-go/internal/core/domain"
	"github.com/findly/findly-go/internal/core/ports"
)

// OwnerService is the business-owner console: business and catalog
// management plus the booking lifecycle actions. Every call requires an
// owner session; the check happens here so validation errors surface
// before any network call.
type OwnerService struct {
	api     ports.OwnerAPI
	session ports.SessionReader
	log     *zap.Logger
}

func NewOwnerService(api ports.OwnerAPI, session ports.SessionReader, log *zap.Logger) *OwnerService {
	return &OwnerService{
		api:     api,
		session: session,
		log:     log,
	}
}

func (s *OwnerService) requireOwner() error {
	u := s.session.CurrentUser()
	if u == nil {
		return domain.ErrNotAuthenticated
	}
	if u.Role != domain.RoleBusinessOwner {
		return domain.ErrNotAuthenticated
	}
	return nil
}

func (s *OwnerService) MyBusinesses(ctx context.Context) ([]domain.Business, error) {
	if err := s.requireOwner(); err != nil {
		return nil, err
	}
	return s.api.MyBusinesses(ctx)
}

func (s *OwnerService) CreateBusiness(ctx context.Context, input ports.UpsertBusinessInput) (*domain.Business, error) {
	if err := s.requireOwner(); err != nil {
		return nil, err
	}
	return s.api.CreateBusiness(ctx, input)
}

func (s *OwnerService) UpdateBusiness(ctx context.Context, id uuid.UUID, input ports.UpsertBusinessInput) (*domain.Business, error) {
	if err := s.requireOwner(); err != nil {
		return nil, err
	}
	return s.api.UpdateBusiness(ctx, id, input)
}

func (s *OwnerService) AddService(ctx context.Context, businessID uuid.UUID, input ports.UpsertServiceInput) (*domain.Service, error) {
	if err := s.requireOwner(); err != nil {
		return nil, err
	}
	return s.api.AddService(ctx, businessID, input)
}

func (s *OwnerService) UpdateService(ctx context.Context, businessID, serviceID uuid.UUID, input ports.UpsertServiceInput) (*domain.Service, error) {
	if err := s.requireOwner(); err != nil {
		return nil, err
	}
	return s.api.UpdateService(ctx, businessID, serviceID, input)
}

func (s *OwnerService) DeleteService(ctx context.Context, businessID, serviceID uuid.UUID) error {
	if err := s.requireOwner(); err != nil {
		return err
	}
	return s.api.DeleteService(ctx, businessID, serviceID)
}

func (s *OwnerService) UpdateWorkingHours(ctx context.Context, businessID uuid.UUID, hours []ports.DayHoursInput) ([]domain.WorkingHours, error) {
	if err := s.requireOwner(); err != nil {
		return nil, err
	}
	return s.api.UpdateWorkingHours(ctx, businessID, hours)
}

func (s *OwnerService) Bookings(ctx context.Context, filter ports.OwnerBookingFilter) ([]domain.Booking, error) {
	if err := s.requireOwner(); err != nil {
		return nil, err
	}
	return s.api.Bookings(ctx, filter)
}

func (s *OwnerService) ApproveBooking(ctx context.Context, id uuid.UUID) (*domain.Booking, error) {
	if err := s.requireOwner(); err != nil {
		return nil, err
	}
	return s.api.ApproveBooking(ctx, id)
}

func (s *OwnerService) RejectBooking(ctx context.Context, id uuid.UUID, reason string) (*domain.Booking, error) {
	if err := s.requireOwner(); err != nil {
		return nil, err
	}
	return s.api.RejectBooking(ctx, id, reason)
}

func (s *OwnerService) CompleteBooking(ctx context.Context, id uuid.UUID) (*domain.Booking, error) {
	if err := s.requireOwner(); err != nil {
		return nil, err
	}
	return s.api.CompleteBooking(ctx, id)
}

func (s *OwnerService) MarkNoShow(ctx context.Context, id uuid.UUID) (*domain.Booking, error) {
	if err := s.requireOwner(); err != nil {
		return nil, err
	}
	return s.api.MarkNoShow(ctx, id)
}
