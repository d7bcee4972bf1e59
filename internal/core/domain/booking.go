package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

type BookingStatus string

const (
	BookingPending   BookingStatus = "PENDING"
	BookingApproved  BookingStatus = "APPROVED"
	BookingRejected  BookingStatus = "REJECTED"
	BookingCancelled BookingStatus = "CANCELLED"
	BookingCompleted BookingStatus = "COMPLETED"
	BookingNoShow    BookingStatus = "NO_SHOW"
)

type Booking struct {
	ID           uuid.UUID     `json:"id"`
	BusinessID   uuid.UUID     `json:"businessId"`
	BusinessName string        `json:"businessName,omitempty"`
	ServiceID    uuid.UUID     `json:"serviceId"`
	ServiceName  string        `json:"serviceName,omitempty"`
	Date         string        `json:"date"`
	StartTime    string        `json:"startTime"`
	EndTime      string        `json:"endTime"`
	Status       BookingStatus `json:"status"`
	Notes        string        `json:"notes,omitempty"`
	GuestName    string        `json:"guestName,omitempty"`
	GuestPhone   string        `json:"guestPhone,omitempty"`
	GuestEmail   string        `json:"guestEmail,omitempty"`
	RejectReason string        `json:"rejectReason,omitempty"`
	CreatedAt    time.Time     `json:"createdAt"`
}

// DraftReservation is the in-progress, not-yet-submitted booking selection.
// Guest fields are only consulted when the session is unauthenticated.
type DraftReservation struct {
	BusinessID uuid.UUID
	ServiceID  uuid.UUID
	Date       string // YYYY-MM-DD
	StartTime  string // HH:mm
	Notes      string
	GuestName  string
	GuestPhone string
	GuestEmail string
}

// ValidateGuestContact enforces the pre-submission guest requirements:
// name and phone must be non-empty after trimming, email stays optional.
func (d DraftReservation) ValidateGuestContact() error {
	if strings.TrimSpace(d.GuestName) == "" {
		return ErrGuestNameRequired
	}
	if strings.TrimSpace(d.GuestPhone) == "" {
		return ErrGuestPhoneRequired
	}
	return nil
}
