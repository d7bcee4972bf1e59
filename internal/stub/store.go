package stub

import (
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/findly/findly-go/internal/core/domain"
)

type account struct {
	domain.User
	passwordHash []byte
}

// Store is the stub's in-memory state, seeded with a small fixture set so
// the client is usable against it out of the box.
type Store struct {
	mu         sync.Mutex
	users      map[uuid.UUID]*account
	byEmail    map[string]uuid.UUID
	refresh    map[string]uuid.UUID // refresh token -> user id
	businesses map[uuid.UUID]*domain.Business
	owners     map[uuid.UUID]uuid.UUID // business id -> owner id
	bookings   map[uuid.UUID]*domain.Booking
	bookedBy   map[uuid.UUID]uuid.UUID // booking id -> customer id (members only)
	categories []domain.Category
}

func NewStore() *Store {
	s := &Store{
		users:      make(map[uuid.UUID]*account),
		byEmail:    make(map[string]uuid.UUID),
		refresh:    make(map[string]uuid.UUID),
		businesses: make(map[uuid.UUID]*domain.Business),
		owners:     make(map[uuid.UUID]uuid.UUID),
		bookings:   make(map[uuid.UUID]*domain.Booking),
		bookedBy:   make(map[uuid.UUID]uuid.UUID),
	}
	s.seed()
	return s
}

func (s *Store) seed() {
	barber := domain.Category{ID: uuid.New(), Name: "Barbershops", Slug: "barbershops"}
	beauty := domain.Category{ID: uuid.New(), Name: "Beauty Salons", Slug: "beauty-salons"}
	s.categories = []domain.Category{barber, beauty}

	owner := s.addUser("owner@findly.dev", "password", "Olga", "Berg", domain.RoleBusinessOwner)
	s.addUser("customer@findly.dev", "password", "Casey", "Nguyen", domain.RoleCustomer)

	bizID := uuid.New()
	lat, lng := 32.0853, 34.7818
	biz := &domain.Business{
		ID:          bizID,
		Name:        "Downtown Barbers",
		Description: "Walk-in haircuts and beard trims in the city center.",
		Category:    &barber,
		Phone:       "+97235550101",
		Email:       "hello@downtownbarbers.example",
		City:        "Tel Aviv",
		FullAddress: "12 Allenby St, Tel Aviv",
		Latitude:    &lat,
		Longitude:   &lng,
		Status:      domain.BusinessActive,
		Verified:    true,
		RatingAvg:   4.6,
		RatingCount: 212,
		CreatedAt:   time.Now().UTC(),
		Services: []domain.Service{
			{ID: uuid.New(), BusinessID: bizID, Name: "Haircut", DurationMins: 30, Price: 100, Currency: "ILS", Active: true, SortOrder: 1},
			{ID: uuid.New(), BusinessID: bizID, Name: "Beard Trim", DurationMins: 15, Price: 50, Currency: "ILS", Active: true, SortOrder: 2},
			{ID: uuid.New(), BusinessID: bizID, Name: "Hot Towel Shave", DurationMins: 45, Price: 140, Currency: "ILS", Active: false, SortOrder: 3},
		},
	}
	// Sunday through Friday, closed Saturday, lunch break weekdays.
	for day := 0; day <= 6; day++ {
		wh := domain.WorkingHours{ID: uuid.New(), DayOfWeek: day}
		if day == 6 {
			wh.Closed = true
		} else {
			wh.StartTime = "09:00"
			wh.EndTime = "18:00"
			wh.BreakStart = "12:00"
			wh.BreakEnd = "13:00"
		}
		biz.WorkingHours = append(biz.WorkingHours, wh)
	}
	s.businesses[bizID] = biz
	s.owners[bizID] = owner.ID
}

func (s *Store) addUser(email, password, first, last string, role domain.UserRole) *account {
	hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	a := &account{
		User: domain.User{
			ID:        uuid.New(),
			Email:     strings.ToLower(email),
			FirstName: first,
			LastName:  last,
			FullName:  strings.TrimSpace(first + " " + last),
			Role:      role,
			CreatedAt: time.Now().UTC(),
		},
		passwordHash: hash,
	}
	s.users[a.ID] = a
	s.byEmail[a.Email] = a.ID
	return a
}

func (s *Store) userByEmail(email string) *account {
	id, ok := s.byEmail[strings.ToLower(email)]
	if !ok {
		return nil
	}
	return s.users[id]
}

// activeBookings returns the business's bookings on date that still block
// their slot (pending or approved).
func (s *Store) activeBookings(businessID uuid.UUID, date string) []*domain.Booking {
	var out []*domain.Booking
	for _, b := range s.bookings {
		if b.BusinessID != businessID || b.Date != date {
			continue
		}
		if b.Status == domain.BookingPending || b.Status == domain.BookingApproved {
			out = append(out, b)
		}
	}
	return out
}

func (s *Store) hoursFor(biz *domain.Business, dayOfWeek int) *domain.WorkingHours {
	for i := range biz.WorkingHours {
		if biz.WorkingHours[i].DayOfWeek == dayOfWeek {
			return &biz.WorkingHours[i]
		}
	}
	return nil
}
