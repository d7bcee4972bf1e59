package domain

import (
	"time"

	"github.com/google/uuid"
)

type BusinessStatus string

const (
	BusinessActive    BusinessStatus = "ACTIVE"
	BusinessPending   BusinessStatus = "PENDING"
	BusinessSuspended BusinessStatus = "SUSPENDED"
)

type Category struct {
	ID       uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	Slug     string    `json:"slug"`
	IconURL  string    `json:"iconUrl,omitempty"`
	ParentID *uuid.UUID `json:"parentId,omitempty"`
}

type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Business is the read-only detail projection returned by the API. It is
// immutable for the duration of a reservation attempt.
type Business struct {
	ID            uuid.UUID      `json:"id"`
	Name          string         `json:"name"`
	Description   string         `json:"description,omitempty"`
	Category      *Category      `json:"category,omitempty"`
	Phone         string         `json:"phone,omitempty"`
	Email         string         `json:"email,omitempty"`
	Website       string         `json:"website,omitempty"`
	ImageURL      string         `json:"imageUrl,omitempty"`
	FullAddress   string         `json:"fullAddress,omitempty"`
	City          string         `json:"city,omitempty"`
	Latitude      *float64       `json:"latitude,omitempty"`
	Longitude     *float64       `json:"longitude,omitempty"`
	DistanceMeters *float64      `json:"distanceMeters,omitempty"`
	Status        BusinessStatus `json:"status"`
	Verified      bool           `json:"verified"`
	RatingAvg     float64        `json:"ratingAvg,omitempty"`
	RatingCount   int            `json:"ratingCount,omitempty"`
	Services      []Service      `json:"services,omitempty"`
	WorkingHours  []WorkingHours `json:"workingHours,omitempty"`
	CreatedAt     time.Time      `json:"createdAt"`
}

// ServiceByID returns the nested service with the given id, or nil.
func (b *Business) ServiceByID(id uuid.UUID) *Service {
	for i := range b.Services {
		if b.Services[i].ID == id {
			return &b.Services[i]
		}
	}
	return nil
}

type Service struct {
	ID           uuid.UUID `json:"id"`
	BusinessID   uuid.UUID `json:"businessId"`
	Name         string    `json:"name"`
	Description  string    `json:"description,omitempty"`
	DurationMins int       `json:"durationMins"`
	Price        float64   `json:"price"`
	Currency     string    `json:"currency,omitempty"`
	Active       bool      `json:"active"`
	SortOrder    int       `json:"sortOrder,omitempty"`
}

// WorkingHours describes one weekday's opening window. DayOfWeek uses
// 0=Sunday through 6=Saturday, matching the API.
type WorkingHours struct {
	ID         uuid.UUID `json:"id"`
	DayOfWeek  int       `json:"dayOfWeek"`
	StartTime  string    `json:"startTime,omitempty"`
	EndTime    string    `json:"endTime,omitempty"`
	Closed     bool      `json:"closed"`
	BreakStart string    `json:"breakStart,omitempty"`
	BreakEnd   string    `json:"breakEnd,omitempty"`
}
