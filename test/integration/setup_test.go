package integration

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/findly/findly-go/internal/adapters/rest"
	"github.com/findly/findly-go/internal/adapters/tokenstore"
	"github.com/findly/findly-go/internal/core/services"
	"github.com/findly/findly-go/internal/stub"
)

type testApp struct {
	Server  *httptest.Server
	Tokens  *tokenstore.Memory
	Client  *rest.Client
	Session *services.SessionService
	Flow    *services.ReservationFlow
	Owner   *services.OwnerService
}

func setupTestApp(t *testing.T) *testApp {
	t.Helper()

	srv := stub.NewServer("integration-test-secret", 15*time.Minute, zap.NewNop())
	server := httptest.NewServer(srv.Handler())
	t.Cleanup(server.Close)

	tokens := tokenstore.NewMemory()
	client := rest.NewClient(server.URL+"/api/v1", 5*time.Second, tokens, zap.NewNop())
	session := services.NewSessionService(client.Auth, tokens, zap.NewNop())
	client.Transport.OnAuthExpired(session.HandleAuthExpired)

	return &testApp{
		Server:  server,
		Tokens:  tokens,
		Client:  client,
		Session: session,
		Flow:    services.NewReservationFlow(client.Business, client.Booking, session, zap.NewNop()),
		Owner:   services.NewOwnerService(client.Owner, session, zap.NewNop()),
	}
}

// openDate returns the first selectable date after today the business is
// open on. The seed data closes Saturdays; tomorrow-or-later avoids slots
// already in the past.
func openDate(t *testing.T, app *testApp) string {
	t.Helper()
	for _, date := range app.Flow.Dates()[1:] {
		d, err := time.Parse("2006-01-02", date)
		require.NoError(t, err)
		if d.Weekday() != time.Saturday {
			return date
		}
	}
	t.Fatal("no open date in the booking window")
	return ""
}

func login(t *testing.T, app *testApp, email string) {
	t.Helper()
	require.NoError(t, app.Session.Login(context.Background(), email, "password"))
}
