package services

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/findly/findly-go/internal/core/domain"
	"github.com/findly/findly-go/internal/core/ports"
)

type fakeBusinessAPI struct {
	business   *domain.Business
	getByIDErr error

	searchCalls []ports.SearchInput
}

func (f *fakeBusinessAPI) Search(_ context.Context, input ports.SearchInput) (*ports.BusinessPage, error) {
	f.searchCalls = append(f.searchCalls, input)
	return &ports.BusinessPage{}, nil
}

func (f *fakeBusinessAPI) GetByID(_ context.Context, id uuid.UUID) (*domain.Business, error) {
	if f.getByIDErr != nil {
		return nil, f.getByIDErr
	}
	if f.business == nil || f.business.ID != id {
		return nil, errors.New("not found")
	}
	return f.business, nil
}

func (f *fakeBusinessAPI) Services(context.Context, uuid.UUID) ([]domain.Service, error) {
	return f.business.Services, nil
}

func (f *fakeBusinessAPI) Hours(context.Context, uuid.UUID) ([]domain.WorkingHours, error) {
	return f.business.WorkingHours, nil
}

func (f *fakeBusinessAPI) Categories(context.Context) ([]domain.Category, error) {
	return nil, nil
}

func (f *fakeBusinessAPI) CategoryBySlug(context.Context, string) (*domain.Category, error) {
	return nil, errors.New("not found")
}

type fakeBookingAPI struct {
	slotsFn      func(businessID, serviceID uuid.UUID, date string) (*domain.SlotAvailability, error)
	slotsCalls   int
	createFn     func(input ports.CreateBookingInput) (*domain.Booking, error)
	createCalls  []ports.CreateBookingInput
	guestFn      func(input ports.CreateBookingInput) (*domain.Booking, error)
	guestCalls   []ports.CreateBookingInput
}

func (f *fakeBookingAPI) Slots(_ context.Context, businessID, serviceID uuid.UUID, date string) (*domain.SlotAvailability, error) {
	f.slotsCalls++
	return f.slotsFn(businessID, serviceID, date)
}

func (f *fakeBookingAPI) Create(_ context.Context, input ports.CreateBookingInput) (*domain.Booking, error) {
	f.createCalls = append(f.createCalls, input)
	if f.createFn == nil {
		return &domain.Booking{ID: uuid.New(), Status: domain.BookingPending}, nil
	}
	return f.createFn(input)
}

func (f *fakeBookingAPI) CreateGuest(_ context.Context, input ports.CreateBookingInput) (*domain.Booking, error) {
	f.guestCalls = append(f.guestCalls, input)
	if f.guestFn == nil {
		return &domain.Booking{ID: uuid.New(), Status: domain.BookingPending}, nil
	}
	return f.guestFn(input)
}

func (f *fakeBookingAPI) MyBookings(context.Context, int, int) ([]domain.Booking, error) {
	return nil, nil
}

func (f *fakeBookingAPI) Cancel(context.Context, uuid.UUID) (*domain.Booking, error) {
	return nil, nil
}

type fakeSession struct {
	user *domain.User
}

func (f *fakeSession) IsAuthenticated() bool     { return f.user != nil }
func (f *fakeSession) CurrentUser() *domain.User { return f.user }

type fakeLocation struct {
	coords domain.Coordinates
	err    error
}

func (f *fakeLocation) Current(context.Context) (domain.Coordinates, error) {
	return f.coords, f.err
}

type fakeAuthAPI struct {
	loginResult *ports.AuthResult
	loginErr    error
	meUser      *domain.User
	meErr       error
	meCalls     int
	logoutErr   error
	logoutCalls int
}

func (f *fakeAuthAPI) Login(context.Context, string, string) (*ports.AuthResult, error) {
	return f.loginResult, f.loginErr
}

func (f *fakeAuthAPI) Register(context.Context, ports.RegisterInput) (*ports.AuthResult, error) {
	return f.loginResult, f.loginErr
}

func (f *fakeAuthAPI) Me(context.Context) (*domain.User, error) {
	f.meCalls++
	return f.meUser, f.meErr
}

func (f *fakeAuthAPI) Logout(context.Context) error {
	f.logoutCalls++
	return f.logoutErr
}
