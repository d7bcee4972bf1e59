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

type OwnerAPI struct {
	transport *Transport
}

func NewOwnerAPI(transport *Transport) *OwnerAPI {
	return &OwnerAPI{transport: transport}
}

func (o *OwnerAPI) MyBusinesses(ctx context.Context) ([]domain.Business, error) {
	var out []domain.Business
	err := o.transport.Do(ctx, Request{
		Method: http.MethodGet,
		Path:   "/owner/businesses",
		Out:    &out,
	})
	return out, err
}

type upsertBusinessRequest struct {
	Name         string    `json:"name"`
	Description  string    `json:"description,omitempty"`
	CategoryID   uuid.UUID `json:"categoryId"`
	Phone        string    `json:"phone,omitempty"`
	Email        string    `json:"email,omitempty"`
	Website      string    `json:"website,omitempty"`
	ImageURL     string    `json:"imageUrl,omitempty"`
	AddressLine1 string    `json:"addressLine1,omitempty"`
	AddressLine2 string    `json:"addressLine2,omitempty"`
	City         string    `json:"city,omitempty"`
	State        string    `json:"state,omitempty"`
	PostalCode   string    `json:"postalCode,omitempty"`
	Country      string    `json:"country,omitempty"`
	Latitude     *float64  `json:"latitude,omitempty"`
	Longitude    *float64  `json:"longitude,omitempty"`
}

func toBusinessRequest(input ports.UpsertBusinessInput) upsertBusinessRequest {
	return upsertBusinessRequest{
		Name:         input.Name,
		Description:  input.Description,
		CategoryID:   input.CategoryID,
		Phone:        input.Phone,
		Email:        input.Email,
		Website:      input.Website,
		ImageURL:     input.ImageURL,
		AddressLine1: input.AddressLine1,
		AddressLine2: input.AddressLine2,
		City:         input.City,
		State:        input.State,
		PostalCode:   input.PostalCode,
		Country:      input.Country,
		Latitude:     input.Latitude,
		Longitude:    input.Longitude,
	}
}

func (o *OwnerAPI) CreateBusiness(ctx context.Context, input ports.UpsertBusinessInput) (*domain.Business, error) {
	var out domain.Business
	err := o.transport.Do(ctx, Request{
		Method: http.MethodPost,
		Path:   "/owner/businesses",
		Body:   toBusinessRequest(input),
		Out:    &out,
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (o *OwnerAPI) UpdateBusiness(ctx context.Context, id uuid.UUID, input ports.UpsertBusinessInput) (*domain.Business, error) {
	var out domain.Business
	err := o.transport.Do(ctx, Request{
		Method: http.MethodPut,
		Path:   fmt.Sprintf("/owner/businesses/%s", id),
		Body:   toBusinessRequest(input),
		Out:    &out,
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

type upsertServiceRequest struct {
	Name         string  `json:"name"`
	Description  string  `json:"description,omitempty"`
	DurationMins int     `json:"durationMins"`
	Price        float64 `json:"price"`
	Currency     string  `json:"currency,omitempty"`
	SortOrder    int     `json:"sortOrder,omitempty"`
}

func toServiceRequest(input ports.UpsertServiceInput) upsertServiceRequest {
	return upsertServiceRequest{
		Name:         input.Name,
		Description:  input.Description,
		DurationMins: input.DurationMins,
		Price:        input.Price,
		Currency:     input.Currency,
		SortOrder:    input.SortOrder,
	}
}

func (o *OwnerAPI) AddService(ctx context.Context, businessID uuid.UUID, input ports.UpsertServiceInput) (*domain.Service, error) {
	var out domain.Service
	err := o.transport.Do(ctx, Request{
		Method: http.MethodPost,
		Path:   fmt.Sprintf("/owner/businesses/%s/services", businessID),
		Body:   toServiceRequest(input),
		Out:    &out,
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (o *OwnerAPI) UpdateService(ctx context.Context, businessID, serviceID uuid.UUID, input ports.UpsertServiceInput) (*domain.Service, error) {
	var out domain.Service
	err := o.transport.Do(ctx, Request{
		Method: http.MethodPut,
		Path:   fmt.Sprintf("/owner/businesses/%s/services/%s", businessID, serviceID),
		Body:   toServiceRequest(input),
		Out:    &out,
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (o *OwnerAPI) DeleteService(ctx context.Context, businessID, serviceID uuid.UUID) error {
	return o.transport.Do(ctx, Request{
		Method: http.MethodDelete,
		Path:   fmt.Sprintf("/owner/businesses/%s/services/%s", businessID, serviceID),
	})
}

type dayHoursRequest struct {
	DayOfWeek  int    `json:"dayOfWeek"`
	StartTime  string `json:"startTime,omitempty"`
	EndTime    string `json:"endTime,omitempty"`
	Closed     bool   `json:"closed"`
	BreakStart string `json:"breakStart,omitempty"`
	BreakEnd   string `json:"breakEnd,omitempty"`
}

func (o *OwnerAPI) UpdateWorkingHours(ctx context.Context, businessID uuid.UUID, hours []ports.DayHoursInput) ([]domain.WorkingHours, error) {
	body := struct {
		Hours []dayHoursRequest `json:"hours"`
	}{}
	for _, h := range hours {
		body.Hours = append(body.Hours, dayHoursRequest{
			DayOfWeek:  h.DayOfWeek,
			StartTime:  h.StartTime,
			EndTime:    h.EndTime,
			Closed:     h.Closed,
			BreakStart: h.BreakStart,
			BreakEnd:   h.BreakEnd,
		})
	}

	var out []domain.WorkingHours
	err := o.transport.Do(ctx, Request{
		Method: http.MethodPut,
		Path:   fmt.Sprintf("/owner/businesses/%s/hours", businessID),
		Body:   body,
		Out:    &out,
	})
	return out, err
}

func (o *OwnerAPI) Bookings(ctx context.Context, filter ports.OwnerBookingFilter) ([]domain.Booking, error) {
	q := url.Values{}
	q.Set("businessId", filter.BusinessID.String())
	if filter.Status != "" {
		q.Set("status", string(filter.Status))
	}
	if filter.Date != "" {
		q.Set("date", filter.Date)
	}
	if filter.Page > 0 {
		q.Set("page", strconv.Itoa(filter.Page))
	}
	if filter.Size > 0 {
		q.Set("size", strconv.Itoa(filter.Size))
	}

	var out bookingPage
	err := o.transport.Do(ctx, Request{
		Method: http.MethodGet,
		Path:   "/owner/bookings",
		Query:  q,
		Out:    &out,
	})
	return out.Content, err
}

func (o *OwnerAPI) lifecycleAction(ctx context.Context, id uuid.UUID, action string, body any) (*domain.Booking, error) {
	var out domain.Booking
	err := o.transport.Do(ctx, Request{
		Method: http.MethodPut,
		Path:   fmt.Sprintf("/owner/bookings/%s/%s", id, action),
		Body:   body,
		Out:    &out,
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (o *OwnerAPI) ApproveBooking(ctx context.Context, id uuid.UUID) (*domain.Booking, error) {
	return o.lifecycleAction(ctx, id, "approve", nil)
}

func (o *OwnerAPI) RejectBooking(ctx context.Context, id uuid.UUID, reason string) (*domain.Booking, error) {
	var body any
	if reason != "" {
		body = map[string]string{"reason": reason}
	}
	return o.lifecycleAction(ctx, id, "reject", body)
}

func (o *OwnerAPI) CompleteBooking(ctx context.Context, id uuid.UUID) (*domain.Booking, error) {
	return o.lifecycleAction(ctx, id, "complete", nil)
}

func (o *OwnerAPI) MarkNoShow(ctx context.Context, id uuid.UUID) (*domain.Booking, error) {
	return o.lifecycleAction(ctx, id, "no-show", nil)
}
