package services

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/findly/findly-go/internal/core/domain"
	"github.com/findly/findly-go/internal/core/ports"
)

// FlowState is the explicit reservation-flow state. Transition methods
// reject calls that are invalid for the current state, so impossible
// combinations (submitting with no slot, slots without a service) cannot
// be represented.
type FlowState string

const (
	StateIdle            FlowState = "IDLE"
	StateServiceSelected FlowState = "SERVICE_SELECTED"
	StateDateSelected    FlowState = "DATE_SELECTED"
	StateSlotsLoaded     FlowState = "SLOTS_LOADED"
	StateSlotSelected    FlowState = "SLOT_SELECTED"
	StateSubmitting      FlowState = "SUBMITTING"
	StateSucceeded       FlowState = "SUCCEEDED"
)

const (
	// BookingWindowDays is the forward-looking date window, today included.
	BookingWindowDays = 14

	dateLayout = "2006-01-02"

	submitFallbackMessage = "Could not complete the booking. Please try again."
)

// slotKey identifies one slot-availability query. A response is applied
// only when its key still matches the current selection at arrival time.
type slotKey struct {
	BusinessID uuid.UUID
	ServiceID  uuid.UUID
	Date       string
}

// ReservationFlow drives service → date → slot selection into a guest or
// member booking submission. It owns the draft reservation exclusively and
// only reads session state.
type ReservationFlow struct {
	businesses ports.BusinessAPI
	bookings   ports.BookingAPI
	session    ports.SessionReader
	log        *zap.Logger
	clock      func() time.Time

	mu           sync.Mutex
	state        FlowState
	business     *domain.Business
	draft        domain.DraftReservation
	availability *domain.SlotAvailability
	selectedSlot *domain.Slot
	lastError    string
	lastBooking  *domain.Booking

	// cache holds fetched availability per key until a successful booking
	// invalidates the business's entries.
	cache map[slotKey]*domain.SlotAvailability

	// generation guards against results of superseded work: it is bumped
	// on Close, and results carrying an old generation are dropped.
	generation uint64
}

func NewReservationFlow(businesses ports.BusinessAPI, bookings ports.BookingAPI, session ports.SessionReader, log *zap.Logger) *ReservationFlow {
	return &ReservationFlow{
		businesses: businesses,
		bookings:   bookings,
		session:    session,
		log:        log,
		clock:      time.Now,
		state:      StateIdle,
		cache:      make(map[slotKey]*domain.SlotAvailability),
	}
}

// Begin loads the business detail and resets the flow for it.
func (f *ReservationFlow) Begin(ctx context.Context, businessID uuid.UUID) (*domain.Business, error) {
	business, err := f.businesses.GetByID(ctx, businessID)
	if err != nil {
		return nil, err
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.generation++
	f.business = business
	f.reset()
	return business, nil
}

// Close cancels the flow from any state. Always succeeds locally; results
// of in-flight requests arriving afterwards are dropped.
func (f *ReservationFlow) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.generation++
	f.reset()
}

// reset clears the draft and returns to Idle. Caller holds f.mu.
func (f *ReservationFlow) reset() {
	f.state = StateIdle
	f.draft = domain.DraftReservation{}
	f.availability = nil
	f.selectedSlot = nil
	f.lastError = ""
	f.lastBooking = nil
}

// SelectService picks an active service from the loaded business. Any
// previously selected slot is cleared; the date defaults to today.
func (f *ReservationFlow) SelectService(serviceID uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.business == nil || f.state == StateSubmitting || f.state == StateSucceeded {
		return domain.ErrInvalidTransition
	}

	svc := f.business.ServiceByID(serviceID)
	if svc == nil {
		return domain.ErrUnknownService
	}
	if !svc.Active {
		return domain.ErrServiceInactive
	}

	f.draft = domain.DraftReservation{
		BusinessID: f.business.ID,
		ServiceID:  svc.ID,
		Date:       f.clock().Format(dateLayout),
	}
	f.availability = nil
	f.selectedSlot = nil
	f.lastError = ""
	f.state = StateServiceSelected
	return nil
}

// SelectDate moves the selection within the forward-looking window of
// BookingWindowDays starting today. Past dates and dates beyond the window
// are rejected. Clears any selected slot.
func (f *ReservationFlow) SelectDate(date string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	switch f.state {
	case StateServiceSelected, StateDateSelected, StateSlotsLoaded, StateSlotSelected:
	default:
		return domain.ErrInvalidTransition
	}

	parsed, err := time.Parse(dateLayout, date)
	if err != nil {
		return domain.ErrDateOutOfWindow
	}
	today, err := time.Parse(dateLayout, f.clock().Format(dateLayout))
	if err != nil {
		return err
	}
	if parsed.Before(today) || !parsed.Before(today.AddDate(0, 0, BookingWindowDays)) {
		return domain.ErrDateOutOfWindow
	}

	f.draft.Date = date
	f.draft.StartTime = ""
	f.availability = nil
	f.selectedSlot = nil
	f.state = StateDateSelected
	return nil
}

// Dates lists the selectable dates of the booking window.
func (f *ReservationFlow) Dates() []string {
	now := f.clock()
	out := make([]string, 0, BookingWindowDays)
	for i := 0; i < BookingWindowDays; i++ {
		out = append(out, now.AddDate(0, 0, i).Format(dateLayout))
	}
	return out
}

// FetchSlots queries availability for the current (business, service, date)
// key, consulting the cache first. Responses whose key no longer matches
// the selection when they arrive are discarded: last key wins, not last
// response.
func (f *ReservationFlow) FetchSlots(ctx context.Context) error {
	f.mu.Lock()
	switch f.state {
	case StateServiceSelected, StateDateSelected, StateSlotsLoaded, StateSlotSelected:
	default:
		f.mu.Unlock()
		return domain.ErrInvalidTransition
	}

	key := f.currentKey()
	gen := f.generation

	if cached, ok := f.cache[key]; ok {
		f.applyAvailability(cached)
		f.mu.Unlock()
		return nil
	}
	f.mu.Unlock()

	result, err := f.bookings.Slots(ctx, key.BusinessID, key.ServiceID, key.Date)

	f.mu.Lock()
	defer f.mu.Unlock()

	if gen != f.generation || key != f.currentKey() {
		f.log.Debug("discarding stale slot response",
			zap.String("date", key.Date), zap.String("service", key.ServiceID.String()))
		return nil
	}
	if err != nil {
		return err
	}

	f.cache[key] = result
	f.applyAvailability(result)
	return nil
}

// applyAvailability installs a slot result for the current key. Caller
// holds f.mu.
func (f *ReservationFlow) applyAvailability(result *domain.SlotAvailability) {
	f.availability = result
	f.selectedSlot = nil
	f.draft.StartTime = ""
	f.state = StateSlotsLoaded
}

// SelectSlot picks one available slot by start time. Exactly one slot is
// selected at a time; re-selection overwrites.
func (f *ReservationFlow) SelectSlot(startTime string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.state != StateSlotsLoaded && f.state != StateSlotSelected {
		return domain.ErrInvalidTransition
	}

	for _, s := range f.availability.AvailableSlots() {
		if s.StartTime == startTime {
			slot := s
			f.selectedSlot = &slot
			f.draft.StartTime = slot.StartTime
			f.state = StateSlotSelected
			return nil
		}
	}
	return domain.ErrSlotUnavailable
}

func (f *ReservationFlow) SetNotes(notes string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.draft.Notes = notes
}

func (f *ReservationFlow) SetGuestContact(name, phone, email string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.draft.GuestName = name
	f.draft.GuestPhone = phone
	f.draft.GuestEmail = email
}

// Submit validates locally, then sends the member or guest booking request
// depending on the session. On failure the flow returns to SlotSelected so
// the user can correct and resubmit; on success all cached availability for
// this business is invalidated.
func (f *ReservationFlow) Submit(ctx context.Context) (*domain.Booking, error) {
	f.mu.Lock()

	if f.state == StateSubmitting || f.state == StateSucceeded {
		f.mu.Unlock()
		return nil, domain.ErrInvalidTransition
	}
	if f.selectedSlot == nil {
		f.lastError = domain.ErrNoSlotSelected.Error()
		f.mu.Unlock()
		return nil, domain.ErrNoSlotSelected
	}

	authenticated := f.session.IsAuthenticated()
	if !authenticated {
		if err := f.draft.ValidateGuestContact(); err != nil {
			f.lastError = err.Error()
			f.mu.Unlock()
			return nil, err
		}
	}

	input := ports.CreateBookingInput{
		BusinessID:     f.draft.BusinessID,
		ServiceID:      f.draft.ServiceID,
		Date:           f.draft.Date,
		StartTime:      f.draft.StartTime,
		Notes:          f.draft.Notes,
		IdempotencyKey: uuid.New(),
	}
	if !authenticated {
		input.GuestName = strings.TrimSpace(f.draft.GuestName)
		input.GuestPhone = strings.TrimSpace(f.draft.GuestPhone)
		input.GuestEmail = strings.TrimSpace(f.draft.GuestEmail)
	}

	gen := f.generation
	f.state = StateSubmitting
	f.lastError = ""
	f.mu.Unlock()

	var booking *domain.Booking
	var err error
	if authenticated {
		booking, err = f.bookings.Create(ctx, input)
	} else {
		booking, err = f.bookings.CreateGuest(ctx, input)
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if gen != f.generation {
		// Flow was closed while the request was in flight; nothing left
		// to update.
		f.log.Debug("dropping submission result after close")
		return nil, nil
	}

	if err != nil {
		f.lastError = serverMessage(err, submitFallbackMessage)
		f.state = StateSlotSelected
		return nil, err
	}

	f.invalidateBusiness(input.BusinessID)
	f.lastBooking = booking
	f.state = StateSucceeded
	f.log.Info("booking created",
		zap.String("business", input.BusinessID.String()),
		zap.String("date", input.Date),
		zap.String("startTime", input.StartTime))
	return booking, nil
}

// invalidateBusiness drops cached availability for the business so the
// just-booked slot is re-fetched as unavailable. Caller holds f.mu.
func (f *ReservationFlow) invalidateBusiness(businessID uuid.UUID) {
	for key := range f.cache {
		if key.BusinessID == businessID {
			delete(f.cache, key)
		}
	}
}

func (f *ReservationFlow) currentKey() slotKey {
	return slotKey{
		BusinessID: f.draft.BusinessID,
		ServiceID:  f.draft.ServiceID,
		Date:       f.draft.Date,
	}
}

func (f *ReservationFlow) State() FlowState {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

func (f *ReservationFlow) Business() *domain.Business {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.business
}

func (f *ReservationFlow) Draft() domain.DraftReservation {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.draft
}

// AvailableSlots returns the choosable slots of the loaded availability.
// Empty when the business is closed on the selected date.
func (f *ReservationFlow) AvailableSlots() []domain.Slot {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.availability == nil {
		return nil
	}
	return f.availability.AvailableSlots()
}

func (f *ReservationFlow) Availability() *domain.SlotAvailability {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.availability
}

func (f *ReservationFlow) SelectedSlot() *domain.Slot {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.selectedSlot
}

func (f *ReservationFlow) LastError() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.lastError
}

func (f *ReservationFlow) LastBooking() *domain.Booking {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.lastBooking
}

// serverMessage prefers the API-supplied error message over the fallback.
func serverMessage(err error, fallback string) string {
	var sm interface{ ServerMessage() string }
	if errors.As(err, &sm) && sm.ServerMessage() != "" {
		return sm.ServerMessage()
	}
	return fallback
}
