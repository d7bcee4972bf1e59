package stub

import (
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/findly/findly-go/internal/core/domain"
)

type slotResponse struct {
	Date         string        `json:"date"`
	BusinessOpen bool          `json:"businessOpen"`
	OpenTime     string        `json:"openTime,omitempty"`
	CloseTime    string        `json:"closeTime,omitempty"`
	Slots        []domain.Slot `json:"slots"`
}

func (s *Server) getSlots(w http.ResponseWriter, r *http.Request) {
	b := s.findBusiness(w, chi.URLParam(r, "businessId"))
	if b == nil {
		return
	}

	date := r.URL.Query().Get("date")
	day, err := time.Parse("2006-01-02", date)
	if err != nil {
		writeError(w, http.StatusBadRequest, "BAD_REQUEST", "Invalid date, expected YYYY-MM-DD")
		return
	}

	serviceID, err := uuid.Parse(r.URL.Query().Get("serviceId"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "BAD_REQUEST", "Invalid serviceId")
		return
	}
	svc := b.ServiceByID(serviceID)
	if svc == nil {
		writeError(w, http.StatusNotFound, "NOT_FOUND", "Service not found")
		return
	}

	s.store.mu.Lock()
	wh := s.store.hoursFor(b, int(day.Weekday()))
	existing := s.store.activeBookings(b.ID, date)
	s.store.mu.Unlock()

	if wh == nil || wh.Closed || wh.StartTime == "" || wh.EndTime == "" {
		writeJSON(w, http.StatusOK, slotResponse{Date: date, BusinessOpen: false, Slots: []domain.Slot{}})
		return
	}

	slots, err := generateSlots(wh, svc.DurationMins, existing, date, s.clock())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "SLOT_ERROR", "Failed to generate slots")
		return
	}

	writeJSON(w, http.StatusOK, slotResponse{
		Date:         date,
		BusinessOpen: true,
		OpenTime:     wh.StartTime,
		CloseTime:    wh.EndTime,
		Slots:        slots,
	})
}

type createBookingRequest struct {
	BusinessID uuid.UUID `json:"businessId"`
	ServiceID  uuid.UUID `json:"serviceId"`
	Date       string    `json:"date"`
	StartTime  string    `json:"startTime"`
	Notes      string    `json:"notes"`
	GuestName  string    `json:"guestName"`
	GuestPhone string    `json:"guestPhone"`
	GuestEmail string    `json:"guestEmail"`
}

func (s *Server) createBooking(w http.ResponseWriter, r *http.Request) {
	var req createBookingRequest
	if !decodeBody(w, r, &req) {
		return
	}
	s.createBookingInternal(w, req, currentUser(r))
}

func (s *Server) createGuestBooking(w http.ResponseWriter, r *http.Request) {
	var req createBookingRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.GuestName) == "" {
		writeError(w, http.StatusBadRequest, "GUEST_NAME_REQUIRED", "Guest name is required")
		return
	}
	if strings.TrimSpace(req.GuestPhone) == "" {
		writeError(w, http.StatusBadRequest, "GUEST_PHONE_REQUIRED", "Guest phone is required")
		return
	}
	s.createBookingInternal(w, req, nil)
}

func (s *Server) createBookingInternal(w http.ResponseWriter, req createBookingRequest, customer *account) {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	b := s.store.businesses[req.BusinessID]
	if b == nil {
		writeError(w, http.StatusNotFound, "NOT_FOUND", "Business not found")
		return
	}
	svc := b.ServiceByID(req.ServiceID)
	if svc == nil || !svc.Active {
		writeError(w, http.StatusBadRequest, "SERVICE_UNAVAILABLE", "Service is not bookable")
		return
	}

	start, err := minutesOf(req.StartTime)
	if err != nil {
		writeError(w, http.StatusBadRequest, "BAD_REQUEST", "Invalid start time, expected HH:mm")
		return
	}
	end := start + svc.DurationMins

	if hasConflict(start, end, s.store.activeBookings(b.ID, req.Date)) {
		writeError(w, http.StatusConflict, "SLOT_TAKEN", "Time slot is no longer available")
		return
	}

	booking := &domain.Booking{
		ID:           uuid.New(),
		BusinessID:   b.ID,
		BusinessName: b.Name,
		ServiceID:    svc.ID,
		ServiceName:  svc.Name,
		Date:         req.Date,
		StartTime:    formatMinutes(start),
		EndTime:      formatMinutes(end),
		Status:       domain.BookingPending,
		Notes:        req.Notes,
		CreatedAt:    s.clock().UTC(),
	}
	if customer == nil {
		booking.GuestName = strings.TrimSpace(req.GuestName)
		booking.GuestPhone = strings.TrimSpace(req.GuestPhone)
		booking.GuestEmail = strings.TrimSpace(req.GuestEmail)
	} else {
		s.store.bookedBy[booking.ID] = customer.ID
	}
	s.store.bookings[booking.ID] = booking

	writeJSON(w, http.StatusCreated, booking)
}

func (s *Server) myBookings(w http.ResponseWriter, r *http.Request) {
	a := currentUser(r)

	s.store.mu.Lock()
	var out []domain.Booking
	for id, b := range s.store.bookings {
		if s.store.bookedBy[id] == a.ID {
			out = append(out, *b)
		}
	}
	s.store.mu.Unlock()

	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	writeJSON(w, http.StatusOK, map[string]any{"content": out})
}

func (s *Server) cancelBooking(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "BAD_REQUEST", "Invalid booking id")
		return
	}

	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	b := s.store.bookings[id]
	if b == nil {
		writeError(w, http.StatusNotFound, "NOT_FOUND", "Booking not found")
		return
	}
	if b.Status != domain.BookingPending && b.Status != domain.BookingApproved {
		writeError(w, http.StatusConflict, "INVALID_STATUS", "Booking can no longer be cancelled")
		return
	}
	b.Status = domain.BookingCancelled
	writeJSON(w, http.StatusOK, b)
}
