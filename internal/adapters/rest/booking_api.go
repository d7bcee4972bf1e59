package rest

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/google/uuid"

	"github.com/findly/findly-go/internal/core/domain"
	"github.com/findly/findly-go/internal/core/ports"
)

type BookingAPI struct {
	transport *Transport
}

func NewBookingAPI(transport *Transport) *BookingAPI {
	return &BookingAPI{transport: transport}
}

func (b *BookingAPI) Slots(ctx context.Context, businessID, serviceID uuid.UUID, date string) (*domain.SlotAvailability, error) {
	q := url.Values{}
	q.Set("serviceId", serviceID.String())
	q.Set("date", date)

	var out domain.SlotAvailability
	err := b.transport.Do(ctx, Request{
		Method: http.MethodGet,
		Path:   fmt.Sprintf("/bookings/businesses/%s/slots", businessID),
		Query:  q,
		Out:    &out,
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// createBookingRequest is the member-booking body. Guest fields are absent
// by construction, not just empty.
type createBookingRequest struct {
	BusinessID uuid.UUID `json:"businessId"`
	ServiceID  uuid.UUID `json:"serviceId"`
	Date       string    `json:"date"`
	StartTime  string    `json:"startTime"`
	Notes      string    `json:"notes,omitempty"`
}

type createGuestBookingRequest struct {
	createBookingRequest
	GuestName  string `json:"guestName"`
	GuestPhone string `json:"guestPhone"`
	GuestEmail string `json:"guestEmail,omitempty"`
}

func idempotencyHeader(input ports.CreateBookingInput) http.Header {
	if input.IdempotencyKey == uuid.Nil {
		return nil
	}
	return http.Header{"Idempotency-Key": []string{input.IdempotencyKey.String()}}
}

func (b *BookingAPI) Create(ctx context.Context, input ports.CreateBookingInput) (*domain.Booking, error) {
	var out domain.Booking
	err := b.transport.Do(ctx, Request{
		Method: http.MethodPost,
		Path:   "/bookings",
		Header: idempotencyHeader(input),
		Body: createBookingRequest{
			BusinessID: input.BusinessID,
			ServiceID:  input.ServiceID,
			Date:       input.Date,
			StartTime:  input.StartTime,
			Notes:      input.Notes,
		},
		Out: &out,
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (b *BookingAPI) CreateGuest(ctx context.Context, input ports.CreateBookingInput) (*domain.Booking, error) {
	var out domain.Booking
	err := b.transport.Do(ctx, Request{
		Method: http.MethodPost,
		Path:   "/bookings/guest",
		Header: idempotencyHeader(input),
		Body: createGuestBookingRequest{
			createBookingRequest: createBookingRequest{
				BusinessID: input.BusinessID,
				ServiceID:  input.ServiceID,
				Date:       input.Date,
				StartTime:  input.StartTime,
				Notes:      input.Notes,
			},
			GuestName:  input.GuestName,
			GuestPhone: input.GuestPhone,
			GuestEmail: input.GuestEmail,
		},
		Out: &out,
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

type bookingPage struct {
	Content []domain.Booking `json:"content"`
}

func (b *BookingAPI) MyBookings(ctx context.Context, page, size int) ([]domain.Booking, error) {
	q := url.Values{}
	if page > 0 {
		q.Set("page", strconv.Itoa(page))
	}
	if size > 0 {
		q.Set("size", strconv.Itoa(size))
	}

	var out bookingPage
	err := b.transport.Do(ctx, Request{
		Method: http.MethodGet,
		Path:   "/bookings",
		Query:  q,
		Out:    &out,
	})
	return out.Content, err
}

func (b *BookingAPI) Cancel(ctx context.Context, id uuid.UUID) (*domain.Booking, error) {
	var out domain.Booking
	err := b.transport.Do(ctx, Request{
		Method: http.MethodPut,
		Path:   fmt.Sprintf("/bookings/%s/cancel", id),
		Out:    &out,
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}
