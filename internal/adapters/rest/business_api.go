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

type BusinessAPI struct {
	transport *Transport
}

func NewBusinessAPI(transport *Transport) *BusinessAPI {
	return &BusinessAPI{transport: transport}
}

func (b *BusinessAPI) Search(ctx context.Context, input ports.SearchInput) (*ports.BusinessPage, error) {
	q := url.Values{}
	if input.Coords != nil {
		q.Set("lat", strconv.FormatFloat(input.Coords.Latitude, 'f', -1, 64))
		q.Set("lng", strconv.FormatFloat(input.Coords.Longitude, 'f', -1, 64))
	}
	if input.RadiusMeters > 0 {
		q.Set("radius", strconv.FormatFloat(input.RadiusMeters, 'f', -1, 64))
	}
	if input.Query != "" {
		q.Set("q", input.Query)
	}
	if input.CategoryID != nil {
		q.Set("category", input.CategoryID.String())
	}
	if input.Page > 0 {
		q.Set("page", strconv.Itoa(input.Page))
	}
	if input.Size > 0 {
		q.Set("size", strconv.Itoa(input.Size))
	}

	var out ports.BusinessPage
	err := b.transport.Do(ctx, Request{
		Method: http.MethodGet,
		Path:   "/businesses",
		Query:  q,
		Out:    &out,
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (b *BusinessAPI) GetByID(ctx context.Context, id uuid.UUID) (*domain.Business, error) {
	var out domain.Business
	err := b.transport.Do(ctx, Request{
		Method: http.MethodGet,
		Path:   fmt.Sprintf("/businesses/%s", id),
		Out:    &out,
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (b *BusinessAPI) Services(ctx context.Context, businessID uuid.UUID) ([]domain.Service, error) {
	var out []domain.Service
	err := b.transport.Do(ctx, Request{
		Method: http.MethodGet,
		Path:   fmt.Sprintf("/businesses/%s/services", businessID),
		Out:    &out,
	})
	return out, err
}

func (b *BusinessAPI) Hours(ctx context.Context, businessID uuid.UUID) ([]domain.WorkingHours, error) {
	var out []domain.WorkingHours
	err := b.transport.Do(ctx, Request{
		Method: http.MethodGet,
		Path:   fmt.Sprintf("/businesses/%s/hours", businessID),
		Out:    &out,
	})
	return out, err
}

func (b *BusinessAPI) Categories(ctx context.Context) ([]domain.Category, error) {
	var out []domain.Category
	err := b.transport.Do(ctx, Request{
		Method: http.MethodGet,
		Path:   "/categories",
		Out:    &out,
	})
	return out, err
}

func (b *BusinessAPI) CategoryBySlug(ctx context.Context, slug string) (*domain.Category, error) {
	var out domain.Category
	err := b.transport.Do(ctx, Request{
		Method: http.MethodGet,
		Path:   fmt.Sprintf("/categories/slug/%s", url.PathEscape(slug)),
		Out:    &out,
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}
