package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/findly/findly-go/internal/adapters/geo"
	"github.com/findly/findly-go/internal/adapters/rest"
	"github.com/findly/findly-go/internal/adapters/tokenstore"
	"github.com/findly/findly-go/internal/config"
	"github.com/findly/findly-go/internal/core/domain"
	"github.com/findly/findly-go/internal/core/ports"
	"github.com/findly/findly-go/internal/core/services"
	"github.com/findly/findly-go/internal/logging"
)

const usage = `usage: findly <command> [flags]

commands:
  login      -email -password
  register   -email -password -first -last [-phone] [-owner]
  logout
  whoami
  search     [-q query] [-category slug] [-radius meters]
  business   -id <uuid>
  categories
  slots      -business <uuid> -service <uuid> [-date YYYY-MM-DD]
  book       -business <uuid> -service <uuid> -date YYYY-MM-DD -time HH:mm
             [-notes text] [-guest-name n -guest-phone p [-guest-email e]]
  bookings
  cancel     -id <uuid>
`

type app struct {
	cfg       config.Config
	log       *zap.Logger
	client    *rest.Client
	session   *services.SessionService
	directory *services.DirectoryService
	flow      *services.ReservationFlow
}

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	cfg := config.Load()
	log := logging.New(cfg.Env)
	defer log.Sync() //nolint:errcheck

	tokens := tokenstore.NewFile(cfg.TokenFile)
	client := rest.NewClient(cfg.APIBaseURL, cfg.HTTPTimeout, tokens, log)
	session := services.NewSessionService(client.Auth, tokens, log)
	client.Transport.OnAuthExpired(session.HandleAuthExpired)

	a := &app{
		cfg:       cfg,
		log:       log,
		client:    client,
		session:   session,
		directory: services.NewDirectoryService(client.Business, geo.NewStatic(cfg.Latitude, cfg.Longitude), log),
		flow:      services.NewReservationFlow(client.Business, client.Booking, session, log),
	}

	ctx := context.Background()
	session.Initialize(ctx)

	if err := a.run(ctx, os.Args[1], os.Args[2:]); err != nil {
		fmt.Fprintln(os.Stderr, "error:", rest.ErrorMessage(err, err.Error()))
		os.Exit(1)
	}
}

func (a *app) run(ctx context.Context, cmd string, args []string) error {
	switch cmd {
	case "login":
		return a.login(ctx, args)
	case "register":
		return a.register(ctx, args)
	case "logout":
		a.session.Logout(ctx)
		fmt.Println("logged out")
		return nil
	case "whoami":
		return a.whoami()
	case "search":
		return a.search(ctx, args)
	case "business":
		return a.business(ctx, args)
	case "categories":
		return a.categories(ctx)
	case "slots":
		return a.slots(ctx, args)
	case "book":
		return a.book(ctx, args)
	case "bookings":
		return a.bookings(ctx)
	case "cancel":
		return a.cancel(ctx, args)
	default:
		fmt.Fprint(os.Stderr, usage)
		return fmt.Errorf("unknown command %q", cmd)
	}
}

func (a *app) login(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("login", flag.ExitOnError)
	email := fs.String("email", "", "account email")
	password := fs.String("password", "", "account password")
	fs.Parse(args) //nolint:errcheck

	if err := a.session.Login(ctx, *email, *password); err != nil {
		return err
	}
	u := a.session.CurrentUser()
	fmt.Printf("logged in as %s %s (%s)\n", u.FirstName, u.LastName, u.Role)
	return nil
}

func (a *app) register(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("register", flag.ExitOnError)
	email := fs.String("email", "", "account email")
	password := fs.String("password", "", "account password")
	first := fs.String("first", "", "first name")
	last := fs.String("last", "", "last name")
	phone := fs.String("phone", "", "phone number")
	owner := fs.Bool("owner", false, "register as a business owner")
	fs.Parse(args) //nolint:errcheck

	role := domain.RoleCustomer
	if *owner {
		role = domain.RoleBusinessOwner
	}
	err := a.session.Register(ctx, ports.RegisterInput{
		Email:     *email,
		Password:  *password,
		FirstName: *first,
		LastName:  *last,
		Phone:     *phone,
		Role:      role,
	})
	if err != nil {
		return err
	}
	fmt.Println("registered and logged in as", *email)
	return nil
}

func (a *app) whoami() error {
	u := a.session.CurrentUser()
	if u == nil {
		fmt.Println("not logged in")
		return nil
	}
	fmt.Printf("%s %s <%s> role=%s\n", u.FirstName, u.LastName, u.Email, u.Role)
	return nil
}

func (a *app) search(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("search", flag.ExitOnError)
	query := fs.String("q", "", "free-text query")
	category := fs.String("category", "", "category slug")
	radius := fs.Float64("radius", 0, "radius in meters")
	fs.Parse(args) //nolint:errcheck

	input := ports.SearchInput{Query: *query, RadiusMeters: *radius}
	if *category != "" {
		c, err := a.directory.CategoryBySlug(ctx, *category)
		if err != nil {
			return err
		}
		input.CategoryID = &c.ID
	}

	page, notice, err := a.directory.Search(ctx, input)
	if err != nil {
		return err
	}
	if notice != "" {
		fmt.Fprintln(os.Stderr, notice)
	}
	for _, b := range page.Content {
		fmt.Printf("%s  %s  %s\n", b.ID, b.Name, b.City)
	}
	fmt.Printf("%d of %d results\n", len(page.Content), page.TotalElements)
	return nil
}

func (a *app) business(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("business", flag.ExitOnError)
	id := fs.String("id", "", "business id")
	fs.Parse(args) //nolint:errcheck

	businessID, err := uuid.Parse(*id)
	if err != nil {
		return fmt.Errorf("invalid business id: %w", err)
	}
	b, err := a.directory.BusinessDetail(ctx, businessID)
	if err != nil {
		return err
	}
	fmt.Printf("%s\n%s\n", b.Name, b.Description)
	for _, svc := range b.Services {
		fmt.Printf("  %s  %s  %d min  %.2f %s\n", svc.ID, svc.Name, svc.DurationMins, svc.Price, svc.Currency)
	}
	return nil
}

func (a *app) categories(ctx context.Context) error {
	cats, err := a.directory.Categories(ctx)
	if err != nil {
		return err
	}
	for _, c := range cats {
		fmt.Printf("%s  %s\n", c.Slug, c.Name)
	}
	return nil
}

// beginFlow walks the flow to a loaded slot list for the given selection.
func (a *app) beginFlow(ctx context.Context, businessID, serviceID, date string) error {
	bid, err := uuid.Parse(businessID)
	if err != nil {
		return fmt.Errorf("invalid business id: %w", err)
	}
	sid, err := uuid.Parse(serviceID)
	if err != nil {
		return fmt.Errorf("invalid service id: %w", err)
	}

	if _, err := a.flow.Begin(ctx, bid); err != nil {
		return err
	}
	if err := a.flow.SelectService(sid); err != nil {
		return err
	}
	if date != "" {
		if err := a.flow.SelectDate(date); err != nil {
			return err
		}
	}
	return a.flow.FetchSlots(ctx)
}

func (a *app) slots(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("slots", flag.ExitOnError)
	business := fs.String("business", "", "business id")
	service := fs.String("service", "", "service id")
	date := fs.String("date", "", "date YYYY-MM-DD, defaults to today")
	fs.Parse(args) //nolint:errcheck

	if err := a.beginFlow(ctx, *business, *service, *date); err != nil {
		return err
	}

	av := a.flow.Availability()
	if av == nil || !av.BusinessOpen {
		fmt.Println("closed on", a.flow.Draft().Date)
		return nil
	}
	for _, s := range av.Slots {
		mark := " "
		if !s.Available {
			mark = "x"
		}
		fmt.Printf("%s %s - %s\n", mark, s.StartTime, s.EndTime)
	}
	return nil
}

func (a *app) book(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("book", flag.ExitOnError)
	business := fs.String("business", "", "business id")
	service := fs.String("service", "", "service id")
	date := fs.String("date", "", "date YYYY-MM-DD")
	start := fs.String("time", "", "start time HH:mm")
	notes := fs.String("notes", "", "notes for the business")
	guestName := fs.String("guest-name", "", "guest full name")
	guestPhone := fs.String("guest-phone", "", "guest phone")
	guestEmail := fs.String("guest-email", "", "guest email")
	fs.Parse(args) //nolint:errcheck

	if err := a.beginFlow(ctx, *business, *service, *date); err != nil {
		return err
	}
	if err := a.flow.SelectSlot(*start); err != nil {
		return err
	}
	a.flow.SetNotes(*notes)
	if !a.session.IsAuthenticated() {
		a.flow.SetGuestContact(*guestName, *guestPhone, *guestEmail)
	}

	booking, err := a.flow.Submit(ctx)
	if err != nil {
		if msg := a.flow.LastError(); msg != "" {
			return fmt.Errorf("%s", msg)
		}
		return err
	}
	fmt.Printf("booked %s on %s at %s (id %s, status %s)\n",
		booking.ServiceName, booking.Date, booking.StartTime, booking.ID, booking.Status)
	return nil
}

func (a *app) bookings(ctx context.Context) error {
	bookings, err := a.client.Booking.MyBookings(ctx, 0, 50)
	if err != nil {
		return err
	}
	if len(bookings) == 0 {
		fmt.Println("no bookings")
		return nil
	}
	for _, b := range bookings {
		fmt.Printf("%s  %s %s  %s  %s  %s\n", b.ID, b.Date, b.StartTime, b.BusinessName, b.ServiceName, b.Status)
	}
	return nil
}

func (a *app) cancel(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("cancel", flag.ExitOnError)
	id := fs.String("id", "", "booking id")
	fs.Parse(args) //nolint:errcheck

	bookingID, err := uuid.Parse(*id)
	if err != nil {
		return fmt.Errorf("invalid booking id: %w", err)
	}
	if _, err := a.client.Booking.Cancel(ctx, bookingID); err != nil {
		return err
	}
	fmt.Println("cancelled", bookingID)
	return nil
}
