package domain

import "errors"

var (
	ErrNotAuthenticated = errors.New("not authenticated")
	ErrSessionExpired   = errors.New("session expired, please log in again")

	ErrInvalidTransition  = errors.New("action not allowed in the current reservation state")
	ErrServiceInactive    = errors.New("service is not available for booking")
	ErrUnknownService     = errors.New("service does not belong to this business")
	ErrDateOutOfWindow    = errors.New("date is outside the booking window")
	ErrNoSlotSelected     = errors.New("a time slot must be selected")
	ErrSlotUnavailable    = errors.New("time slot is not available")
	ErrGuestNameRequired  = errors.New("guest name is required")
	ErrGuestPhoneRequired = errors.New("guest phone is required")

	ErrLocationDenied      = errors.New("location permission denied, please enable location access")
	ErrLocationUnavailable = errors.New("location information unavailable")
	ErrLocationTimeout     = errors.New("location request timed out")
)
