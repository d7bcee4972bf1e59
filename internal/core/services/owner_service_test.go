package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/findly/findly-go/internal/core/domain"
	"github.com/findly/findly-go/internal/core/ports"
)

type fakeOwnerAPI struct {
	calls int
}

func (f *fakeOwnerAPI) MyBusinesses(context.Context) ([]domain.Business, error) {
	f.calls++
	return []domain.Business{{Name: "Downtown Barbers"}}, nil
}

func (f *fakeOwnerAPI) CreateBusiness(context.Context, ports.UpsertBusinessInput) (*domain.Business, error) {
	f.calls++
	return &domain.Business{}, nil
}

func (f *fakeOwnerAPI) UpdateBusiness(context.Context, uuid.UUID, ports.UpsertBusinessInput) (*domain.Business, error) {
	f.calls++
	return &domain.Business{}, nil
}

func (f *fakeOwnerAPI) AddService(context.Context, uuid.UUID, ports.UpsertServiceInput) (*domain.Service, error) {
	f.calls++
	return &domain.Service{}, nil
}

func (f *fakeOwnerAPI) UpdateService(context.Context, uuid.UUID, uuid.UUID, ports.UpsertServiceInput) (*domain.Service, error) {
	f.calls++
	return &domain.Service{}, nil
}

func (f *fakeOwnerAPI) DeleteService(context.Context, uuid.UUID, uuid.UUID) error {
	f.calls++
	return nil
}

func (f *fakeOwnerAPI) UpdateWorkingHours(context.Context, uuid.UUID, []ports.DayHoursInput) ([]domain.WorkingHours, error) {
	f.calls++
	return nil, nil
}

func (f *fakeOwnerAPI) Bookings(context.Context, ports.OwnerBookingFilter) ([]domain.Booking, error) {
	f.calls++
	return nil, nil
}

func (f *fakeOwnerAPI) ApproveBooking(context.Context, uuid.UUID) (*domain.Booking, error) {
	f.calls++
	return &domain.Booking{Status: domain.BookingApproved}, nil
}

func (f *fakeOwnerAPI) RejectBooking(context.Context, uuid.UUID, string) (*domain.Booking, error) {
	f.calls++
	return &domain.Booking{Status: domain.BookingRejected}, nil
}

func (f *fakeOwnerAPI) CompleteBooking(context.Context, uuid.UUID) (*domain.Booking, error) {
	f.calls++
	return &domain.Booking{Status: domain.BookingCompleted}, nil
}

func (f *fakeOwnerAPI) MarkNoShow(context.Context, uuid.UUID) (*domain.Booking, error) {
	f.calls++
	return &domain.Booking{Status: domain.BookingNoShow}, nil
}

func TestOwnerCallsRequireOwnerSession(t *testing.T) {
	api := &fakeOwnerAPI{}

	cases := []struct {
		name string
		user *domain.User
		want error
	}{
		{"logged out", nil, domain.ErrNotAuthenticated},
		{"customer", &domain.User{Role: domain.RoleCustomer}, domain.ErrNotAuthenticated},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc := NewOwnerService(api, &fakeSession{user: tc.user}, zap.NewNop())

			_, err := svc.MyBusinesses(context.Background())
			assert.ErrorIs(t, err, tc.want)
			_, err = svc.ApproveBooking(context.Background(), uuid.New())
			assert.ErrorIs(t, err, tc.want)
			err = svc.DeleteService(context.Background(), uuid.New(), uuid.New())
			assert.ErrorIs(t, err, tc.want)
		})
	}
	assert.Equal(t, 0, api.calls, "guard blocks before any network call")
}

func TestOwnerCallsPassThroughForOwner(t *testing.T) {
	api := &fakeOwnerAPI{}
	session := &fakeSession{user: &domain.User{ID: uuid.New(), Role: domain.RoleBusinessOwner}}
	svc := NewOwnerService(api, session, zap.NewNop())

	businesses, err := svc.MyBusinesses(context.Background())
	require.NoError(t, err)
	assert.Len(t, businesses, 1)

	booking, err := svc.RejectBooking(context.Background(), uuid.New(), "double booked")
	require.NoError(t, err)
	assert.Equal(t, domain.BookingRejected, booking.Status)
	assert.Equal(t, 2, api.calls)
}
