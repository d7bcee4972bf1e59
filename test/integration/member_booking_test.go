package integration

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/findly/findly-go/internal/adapters/rest"
	"github.com/findly/findly-go/internal/core/domain"
	"github.com/findly/findly-go/internal/core/ports"
)

func TestMemberBookingAndCancellation(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	app := setupTestApp(t)
	ctx := context.Background()

	// 1. Log in with the seeded customer.
	login(t, app, "customer@findly.dev")
	require.True(t, app.Session.IsCustomer())

	// 2. Book through the flow; no guest contact needed.
	page, err := app.Client.Business.Search(ctx, ports.SearchInput{Query: "barber"})
	require.NoError(t, err)
	business := page.Content[0]

	_, err = app.Flow.Begin(ctx, business.ID)
	require.NoError(t, err)
	require.NoError(t, app.Flow.SelectService(app.Flow.Business().Services[0].ID))
	require.NoError(t, app.Flow.SelectDate(openDate(t, app)))
	require.NoError(t, app.Flow.FetchSlots(ctx))
	require.NoError(t, app.Flow.SelectSlot(app.Flow.AvailableSlots()[0].StartTime))
	app.Flow.SetNotes("first visit")

	booking, err := app.Flow.Submit(ctx)
	require.NoError(t, err)
	assert.Empty(t, booking.GuestName)
	assert.Equal(t, "first visit", booking.Notes)

	// 3. It shows up under my bookings.
	mine, err := app.Client.Booking.MyBookings(ctx, 0, 20)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, booking.ID, mine[0].ID)

	// 4. Cancel it and re-check.
	cancelled, err := app.Client.Booking.Cancel(ctx, booking.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.BookingCancelled, cancelled.Status)

	mine, err = app.Client.Booking.MyBookings(ctx, 0, 20)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, domain.BookingCancelled, mine[0].Status)
}

func TestRegisterAndSessionRestore(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	app := setupTestApp(t)
	ctx := context.Background()

	err := app.Session.Register(ctx, ports.RegisterInput{
		Email:     "new@findly.dev",
		Password:  "password",
		FirstName: "Noa",
		LastName:  "Katz",
		Role:      domain.RoleCustomer,
	})
	require.NoError(t, err)
	require.True(t, app.Session.IsAuthenticated())
	assert.False(t, app.Session.TokenExpiresAt().IsZero())

	// The stored pair restores the session, like a fresh process start.
	app.Session.HandleAuthExpired()
	pair, err := app.Tokens.Pair()
	require.NoError(t, err)
	require.NoError(t, app.Tokens.SetPair(pair))

	app.Session.Initialize(ctx)
	require.True(t, app.Session.IsAuthenticated())
	assert.Equal(t, "new@findly.dev", app.Session.CurrentUser().Email)

	// Logout ends it for good.
	app.Session.Logout(ctx)
	assert.False(t, app.Session.IsAuthenticated())
	pair, err = app.Tokens.Pair()
	require.NoError(t, err)
	assert.True(t, pair.Empty())
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	app := setupTestApp(t)

	err := app.Session.Login(context.Background(), "customer@findly.dev", "wrong")
	require.Error(t, err)
	assert.Equal(t, "Invalid email or password", rest.ErrorMessage(err, "login failed"))
	assert.False(t, app.Session.IsAuthenticated())
}
