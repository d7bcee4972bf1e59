package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/findly/findly-go/internal/core/domain"
	"github.com/findly/findly-go/internal/core/ports"
)

var (
	testBusinessID = uuid.MustParse("11111111-1111-1111-1111-111111111111")
	testHaircutID  = uuid.MustParse("22222222-2222-2222-2222-222222222222")
	testInactiveID = uuid.MustParse("33333333-3333-3333-3333-333333333333")
)

func testNow() time.Time {
	return time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
}

func testBusiness() *domain.Business {
	return &domain.Business{
		ID:   testBusinessID,
		Name: "Downtown Barbers",
		Services: []domain.Service{
			{ID: testHaircutID, BusinessID: testBusinessID, Name: "Haircut", DurationMins: 30, Active: true},
			{ID: testInactiveID, BusinessID: testBusinessID, Name: "Hot Towel Shave", DurationMins: 45, Active: false},
		},
	}
}

func testAvailability(date string) *domain.SlotAvailability {
	return &domain.SlotAvailability{
		Date:         date,
		BusinessOpen: true,
		OpenTime:     "09:00",
		CloseTime:    "18:00",
		Slots: []domain.Slot{
			{StartTime: "09:00", EndTime: "09:30", Available: true},
			{StartTime: "09:30", EndTime: "10:00", Available: false},
			{StartTime: "10:00", EndTime: "10:30", Available: true},
		},
	}
}

func newTestFlow(t *testing.T, bookings *fakeBookingAPI, session *fakeSession) *ReservationFlow {
	t.Helper()
	if bookings.slotsFn == nil {
		bookings.slotsFn = func(_, _ uuid.UUID, date string) (*domain.SlotAvailability, error) {
			return testAvailability(date), nil
		}
	}
	flow := NewReservationFlow(&fakeBusinessAPI{business: testBusiness()}, bookings, session, zap.NewNop())
	flow.clock = testNow
	return flow
}

// beginToSlot drives the flow to SlotSelected on the 09:00 slot.
func beginToSlot(t *testing.T, flow *ReservationFlow) {
	t.Helper()
	ctx := context.Background()
	_, err := flow.Begin(ctx, testBusinessID)
	require.NoError(t, err)
	require.NoError(t, flow.SelectService(testHaircutID))
	require.NoError(t, flow.FetchSlots(ctx))
	require.NoError(t, flow.SelectSlot("09:00"))
}

func TestSelectServiceDefaultsDateToToday(t *testing.T) {
	flow := newTestFlow(t, &fakeBookingAPI{}, &fakeSession{})

	_, err := flow.Begin(context.Background(), testBusinessID)
	require.NoError(t, err)
	require.NoError(t, flow.SelectService(testHaircutID))

	assert.Equal(t, StateServiceSelected, flow.State())
	assert.Equal(t, "2026-03-02", flow.Draft().Date)
}

func TestSelectServiceRejectsInactiveAndUnknown(t *testing.T) {
	flow := newTestFlow(t, &fakeBookingAPI{}, &fakeSession{})

	_, err := flow.Begin(context.Background(), testBusinessID)
	require.NoError(t, err)

	assert.ErrorIs(t, flow.SelectService(testInactiveID), domain.ErrServiceInactive)
	assert.ErrorIs(t, flow.SelectService(uuid.New()), domain.ErrUnknownService)
	assert.Equal(t, StateIdle, flow.State())
}

func TestReselectServiceClearsSlot(t *testing.T) {
	flow := newTestFlow(t, &fakeBookingAPI{}, &fakeSession{})
	beginToSlot(t, flow)
	require.NotNil(t, flow.SelectedSlot())

	require.NoError(t, flow.SelectService(testHaircutID))

	assert.Nil(t, flow.SelectedSlot())
	assert.Empty(t, flow.Draft().StartTime)
	assert.Equal(t, StateServiceSelected, flow.State())
}

func TestSelectDateWindow(t *testing.T) {
	flow := newTestFlow(t, &fakeBookingAPI{}, &fakeSession{})

	_, err := flow.Begin(context.Background(), testBusinessID)
	require.NoError(t, err)
	require.NoError(t, flow.SelectService(testHaircutID))

	assert.ErrorIs(t, flow.SelectDate("2026-03-01"), domain.ErrDateOutOfWindow, "yesterday")
	assert.ErrorIs(t, flow.SelectDate("2026-03-16"), domain.ErrDateOutOfWindow, "first day past the window")
	assert.ErrorIs(t, flow.SelectDate("not-a-date"), domain.ErrDateOutOfWindow)

	require.NoError(t, flow.SelectDate("2026-03-02"), "today")
	require.NoError(t, flow.SelectDate("2026-03-15"), "last day of the window")
	assert.Equal(t, StateDateSelected, flow.State())
}

func TestDatesSpanTheWindow(t *testing.T) {
	flow := newTestFlow(t, &fakeBookingAPI{}, &fakeSession{})

	dates := flow.Dates()
	require.Len(t, dates, BookingWindowDays)
	assert.Equal(t, "2026-03-02", dates[0])
	assert.Equal(t, "2026-03-15", dates[len(dates)-1])
}

func TestFetchSlotsCachesPerKey(t *testing.T) {
	bookings := &fakeBookingAPI{}
	flow := newTestFlow(t, bookings, &fakeSession{})

	ctx := context.Background()
	_, err := flow.Begin(ctx, testBusinessID)
	require.NoError(t, err)
	require.NoError(t, flow.SelectService(testHaircutID))

	require.NoError(t, flow.FetchSlots(ctx))
	require.NoError(t, flow.FetchSlots(ctx))
	assert.Equal(t, 1, bookings.slotsCalls, "same key served from cache")

	require.NoError(t, flow.SelectDate("2026-03-03"))
	require.NoError(t, flow.FetchSlots(ctx))
	assert.Equal(t, 2, bookings.slotsCalls, "new date is a new key")
}

func TestFetchSlotsDiscardsStaleResponse(t *testing.T) {
	bookings := &fakeBookingAPI{}
	var flow *ReservationFlow
	bookings.slotsFn = func(_, _ uuid.UUID, date string) (*domain.SlotAvailability, error) {
		if date == "2026-03-02" {
			// The user moves on while this request is in flight.
			require.NoError(t, flow.SelectDate("2026-03-03"))
		}
		return testAvailability(date), nil
	}
	flow = newTestFlow(t, bookings, &fakeSession{})

	ctx := context.Background()
	_, err := flow.Begin(ctx, testBusinessID)
	require.NoError(t, err)
	require.NoError(t, flow.SelectService(testHaircutID))

	require.NoError(t, flow.FetchSlots(ctx))

	assert.Equal(t, StateDateSelected, flow.State(), "stale result must not overwrite the new selection")
	assert.Nil(t, flow.Availability())

	require.NoError(t, flow.FetchSlots(ctx))
	require.NotNil(t, flow.Availability())
	assert.Equal(t, "2026-03-03", flow.Availability().Date)
}

func TestFetchSlotsClosedBusinessOffersNothing(t *testing.T) {
	bookings := &fakeBookingAPI{
		slotsFn: func(_, _ uuid.UUID, date string) (*domain.SlotAvailability, error) {
			return &domain.SlotAvailability{Date: date, BusinessOpen: false}, nil
		},
	}
	flow := newTestFlow(t, bookings, &fakeSession{})

	ctx := context.Background()
	_, err := flow.Begin(ctx, testBusinessID)
	require.NoError(t, err)
	require.NoError(t, flow.SelectService(testHaircutID))
	require.NoError(t, flow.FetchSlots(ctx))

	assert.Empty(t, flow.AvailableSlots())
	assert.ErrorIs(t, flow.SelectSlot("09:00"), domain.ErrSlotUnavailable)
}

func TestSelectSlotOnlyFromAvailable(t *testing.T) {
	flow := newTestFlow(t, &fakeBookingAPI{}, &fakeSession{})

	ctx := context.Background()
	_, err := flow.Begin(ctx, testBusinessID)
	require.NoError(t, err)
	require.NoError(t, flow.SelectService(testHaircutID))
	require.NoError(t, flow.FetchSlots(ctx))

	assert.ErrorIs(t, flow.SelectSlot("09:30"), domain.ErrSlotUnavailable, "marked unavailable")
	assert.ErrorIs(t, flow.SelectSlot("23:00"), domain.ErrSlotUnavailable, "not offered at all")

	require.NoError(t, flow.SelectSlot("09:00"))
	require.NoError(t, flow.SelectSlot("10:00"), "re-selection overwrites")
	assert.Equal(t, "10:00", flow.Draft().StartTime)
}

func TestSubmitRequiresSlot(t *testing.T) {
	bookings := &fakeBookingAPI{}
	flow := newTestFlow(t, bookings, &fakeSession{})

	ctx := context.Background()
	_, err := flow.Begin(ctx, testBusinessID)
	require.NoError(t, err)
	require.NoError(t, flow.SelectService(testHaircutID))

	_, err = flow.Submit(ctx)
	assert.ErrorIs(t, err, domain.ErrNoSlotSelected)
	assert.Empty(t, bookings.createCalls)
	assert.Empty(t, bookings.guestCalls)
}

func TestSubmitGuestValidationBlocksNetwork(t *testing.T) {
	bookings := &fakeBookingAPI{}
	flow := newTestFlow(t, bookings, &fakeSession{})
	beginToSlot(t, flow)

	flow.SetGuestContact("   ", "0501234567", "")
	_, err := flow.Submit(context.Background())
	assert.ErrorIs(t, err, domain.ErrGuestNameRequired)

	flow.SetGuestContact("Dana Levi", "  ", "")
	_, err = flow.Submit(context.Background())
	assert.ErrorIs(t, err, domain.ErrGuestPhoneRequired)

	assert.Empty(t, bookings.guestCalls, "invalid guest contact never reaches the API")
	assert.Empty(t, bookings.createCalls)
}

func TestSubmitGuestSendsTrimmedContact(t *testing.T) {
	bookings := &fakeBookingAPI{}
	flow := newTestFlow(t, bookings, &fakeSession{})
	beginToSlot(t, flow)

	flow.SetNotes("please be quick")
	flow.SetGuestContact("  Dana Levi ", " 0501234567 ", " dana@example.com ")

	booking, err := flow.Submit(context.Background())
	require.NoError(t, err)
	require.NotNil(t, booking)

	require.Len(t, bookings.guestCalls, 1)
	assert.Empty(t, bookings.createCalls, "guests never hit the member endpoint")

	input := bookings.guestCalls[0]
	assert.Equal(t, "Dana Levi", input.GuestName)
	assert.Equal(t, "0501234567", input.GuestPhone)
	assert.Equal(t, "dana@example.com", input.GuestEmail)
	assert.Equal(t, "please be quick", input.Notes)
	assert.Equal(t, "2026-03-02", input.Date)
	assert.Equal(t, "09:00", input.StartTime)
	assert.NotEqual(t, uuid.Nil, input.IdempotencyKey)
	assert.Equal(t, StateSucceeded, flow.State())
}

func TestSubmitMemberNeverSendsGuestFields(t *testing.T) {
	bookings := &fakeBookingAPI{}
	session := &fakeSession{user: &domain.User{ID: uuid.New(), Role: domain.RoleCustomer}}
	flow := newTestFlow(t, bookings, session)
	beginToSlot(t, flow)

	// Leftover guest input from before logging in must not leak.
	flow.SetGuestContact("Dana Levi", "0501234567", "dana@example.com")

	_, err := flow.Submit(context.Background())
	require.NoError(t, err)

	require.Len(t, bookings.createCalls, 1)
	assert.Empty(t, bookings.guestCalls)

	input := bookings.createCalls[0]
	assert.Empty(t, input.GuestName)
	assert.Empty(t, input.GuestPhone)
	assert.Empty(t, input.GuestEmail)
}

type slotTakenError struct{}

func (slotTakenError) Error() string         { return "api error" }
func (slotTakenError) ServerMessage() string { return "Time slot is no longer available" }

func TestSubmitFailureKeepsSlotSelected(t *testing.T) {
	bookings := &fakeBookingAPI{
		guestFn: func(ports.CreateBookingInput) (*domain.Booking, error) {
			return nil, slotTakenError{}
		},
	}
	flow := newTestFlow(t, bookings, &fakeSession{})
	beginToSlot(t, flow)
	flow.SetGuestContact("Dana Levi", "0501234567", "")

	_, err := flow.Submit(context.Background())
	require.Error(t, err)

	assert.Equal(t, StateSlotSelected, flow.State(), "user can correct and resubmit")
	assert.Equal(t, "Time slot is no longer available", flow.LastError())
}

func TestSubmitFailureFallsBackToGenericMessage(t *testing.T) {
	bookings := &fakeBookingAPI{
		guestFn: func(ports.CreateBookingInput) (*domain.Booking, error) {
			return nil, errors.New("connection reset")
		},
	}
	flow := newTestFlow(t, bookings, &fakeSession{})
	beginToSlot(t, flow)
	flow.SetGuestContact("Dana Levi", "0501234567", "")

	_, err := flow.Submit(context.Background())
	require.Error(t, err)
	assert.Equal(t, submitFallbackMessage, flow.LastError())
}

func TestSubmitResultAfterCloseIsDropped(t *testing.T) {
	bookings := &fakeBookingAPI{}
	var flow *ReservationFlow
	bookings.guestFn = func(ports.CreateBookingInput) (*domain.Booking, error) {
		flow.Close()
		return &domain.Booking{ID: uuid.New()}, nil
	}
	flow = newTestFlow(t, bookings, &fakeSession{})
	beginToSlot(t, flow)
	flow.SetGuestContact("Dana Levi", "0501234567", "")

	booking, err := flow.Submit(context.Background())
	require.NoError(t, err)
	assert.Nil(t, booking)
	assert.Equal(t, StateIdle, flow.State())
	assert.Nil(t, flow.LastBooking())
}

func TestSubmitSuccessInvalidatesSlotCache(t *testing.T) {
	bookings := &fakeBookingAPI{}
	flow := newTestFlow(t, bookings, &fakeSession{})
	beginToSlot(t, flow)
	require.Equal(t, 1, bookings.slotsCalls)

	flow.SetGuestContact("Dana Levi", "0501234567", "")
	_, err := flow.Submit(context.Background())
	require.NoError(t, err)

	// A fresh flow over the same business must re-fetch availability.
	ctx := context.Background()
	_, err = flow.Begin(ctx, testBusinessID)
	require.NoError(t, err)
	require.NoError(t, flow.SelectService(testHaircutID))
	require.NoError(t, flow.FetchSlots(ctx))
	assert.Equal(t, 2, bookings.slotsCalls)
}
