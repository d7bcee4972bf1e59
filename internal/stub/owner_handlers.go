package stub

import (
	"encoding/json"
	"net/http"
	"sort"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/findly/findly-go/internal/core/domain"
)

func (s *Server) ownerBusinesses(w http.ResponseWriter, r *http.Request) {
	a := currentUser(r)

	s.store.mu.Lock()
	var out []domain.Business
	for id, ownerID := range s.store.owners {
		if ownerID == a.ID {
			out = append(out, *s.store.businesses[id])
		}
	}
	s.store.mu.Unlock()

	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	writeJSON(w, http.StatusOK, out)
}

type upsertBusinessRequest struct {
	Name         string    `json:"name"`
	Description  string    `json:"description"`
	CategoryID   uuid.UUID `json:"categoryId"`
	Phone        string    `json:"phone"`
	Email        string    `json:"email"`
	Website      string    `json:"website"`
	ImageURL     string    `json:"imageUrl"`
	AddressLine1 string    `json:"addressLine1"`
	City         string    `json:"city"`
	Latitude     *float64  `json:"latitude"`
	Longitude    *float64  `json:"longitude"`
}

func (s *Server) categoryByID(id uuid.UUID) *domain.Category {
	for i := range s.store.categories {
		if s.store.categories[i].ID == id {
			return &s.store.categories[i]
		}
	}
	return nil
}

func (s *Server) ownerCreateBusiness(w http.ResponseWriter, r *http.Request) {
	var req upsertBusinessRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", "Business name is required")
		return
	}

	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	b := &domain.Business{
		ID:          uuid.New(),
		Name:        req.Name,
		Description: req.Description,
		Category:    s.categoryByID(req.CategoryID),
		Phone:       req.Phone,
		Email:       req.Email,
		Website:     req.Website,
		ImageURL:    req.ImageURL,
		FullAddress: req.AddressLine1,
		City:        req.City,
		Latitude:    req.Latitude,
		Longitude:   req.Longitude,
		Status:      domain.BusinessPending,
		CreatedAt:   time.Now().UTC(),
	}
	s.store.businesses[b.ID] = b
	s.store.owners[b.ID] = currentUser(r).ID
	writeJSON(w, http.StatusCreated, b)
}

// ownedBusiness resolves the business id param and enforces ownership.
func (s *Server) ownedBusiness(w http.ResponseWriter, r *http.Request, param string) *domain.Business {
	id, err := uuid.Parse(chi.URLParam(r, param))
	if err != nil {
		writeError(w, http.StatusBadRequest, "BAD_REQUEST", "Invalid business id")
		return nil
	}

	b := s.store.businesses[id]
	if b == nil {
		writeError(w, http.StatusNotFound, "NOT_FOUND", "Business not found")
		return nil
	}
	if s.store.owners[id] != currentUser(r).ID {
		writeError(w, http.StatusForbidden, "FORBIDDEN", "Not your business")
		return nil
	}
	return b
}

func (s *Server) ownerUpdateBusiness(w http.ResponseWriter, r *http.Request) {
	var req upsertBusinessRequest
	if !decodeBody(w, r, &req) {
		return
	}

	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	b := s.ownedBusiness(w, r, "id")
	if b == nil {
		return
	}
	if req.Name != "" {
		b.Name = req.Name
	}
	b.Description = req.Description
	b.Phone = req.Phone
	b.Email = req.Email
	b.Website = req.Website
	if c := s.categoryByID(req.CategoryID); c != nil {
		b.Category = c
	}
	writeJSON(w, http.StatusOK, b)
}

type upsertServiceRequest struct {
	Name         string  `json:"name"`
	Description  string  `json:"description"`
	DurationMins int     `json:"durationMins"`
	Price        float64 `json:"price"`
	Currency     string  `json:"currency"`
	SortOrder    int     `json:"sortOrder"`
}

func (s *Server) ownerAddService(w http.ResponseWriter, r *http.Request) {
	var req upsertServiceRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Name == "" || req.DurationMins <= 0 {
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", "Service name and a positive duration are required")
		return
	}

	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	b := s.ownedBusiness(w, r, "businessId")
	if b == nil {
		return
	}
	svc := domain.Service{
		ID:           uuid.New(),
		BusinessID:   b.ID,
		Name:         req.Name,
		Description:  req.Description,
		DurationMins: req.DurationMins,
		Price:        req.Price,
		Currency:     req.Currency,
		Active:       true,
		SortOrder:    req.SortOrder,
	}
	b.Services = append(b.Services, svc)
	writeJSON(w, http.StatusCreated, svc)
}

func (s *Server) ownerUpdateService(w http.ResponseWriter, r *http.Request) {
	var req upsertServiceRequest
	if !decodeBody(w, r, &req) {
		return
	}

	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	b := s.ownedBusiness(w, r, "businessId")
	if b == nil {
		return
	}
	serviceID, err := uuid.Parse(chi.URLParam(r, "serviceId"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "BAD_REQUEST", "Invalid service id")
		return
	}
	svc := b.ServiceByID(serviceID)
	if svc == nil {
		writeError(w, http.StatusNotFound, "NOT_FOUND", "Service not found")
		return
	}
	if req.Name != "" {
		svc.Name = req.Name
	}
	if req.DurationMins > 0 {
		svc.DurationMins = req.DurationMins
	}
	svc.Description = req.Description
	svc.Price = req.Price
	svc.Currency = req.Currency
	svc.SortOrder = req.SortOrder
	writeJSON(w, http.StatusOK, svc)
}

func (s *Server) ownerDeleteService(w http.ResponseWriter, r *http.Request) {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	b := s.ownedBusiness(w, r, "businessId")
	if b == nil {
		return
	}
	serviceID, err := uuid.Parse(chi.URLParam(r, "serviceId"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "BAD_REQUEST", "Invalid service id")
		return
	}
	for i := range b.Services {
		if b.Services[i].ID == serviceID {
			b.Services = append(b.Services[:i], b.Services[i+1:]...)
			w.WriteHeader(http.StatusNoContent)
			return
		}
	}
	writeError(w, http.StatusNotFound, "NOT_FOUND", "Service not found")
}

func (s *Server) ownerUpdateHours(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Hours []struct {
			DayOfWeek  int    `json:"dayOfWeek"`
			StartTime  string `json:"startTime"`
			EndTime    string `json:"endTime"`
			Closed     bool   `json:"closed"`
			BreakStart string `json:"breakStart"`
			BreakEnd   string `json:"breakEnd"`
		} `json:"hours"`
	}
	if !decodeBody(w, r, &req) {
		return
	}

	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	b := s.ownedBusiness(w, r, "businessId")
	if b == nil {
		return
	}

	var hours []domain.WorkingHours
	for _, h := range req.Hours {
		if h.DayOfWeek < 0 || h.DayOfWeek > 6 {
			writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", "dayOfWeek must be between 0 and 6")
			return
		}
		hours = append(hours, domain.WorkingHours{
			ID:         uuid.New(),
			DayOfWeek:  h.DayOfWeek,
			StartTime:  h.StartTime,
			EndTime:    h.EndTime,
			Closed:     h.Closed,
			BreakStart: h.BreakStart,
			BreakEnd:   h.BreakEnd,
		})
	}
	b.WorkingHours = hours
	writeJSON(w, http.StatusOK, hours)
}

func (s *Server) ownerBookings(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	businessID, err := uuid.Parse(q.Get("businessId"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "BAD_REQUEST", "businessId is required")
		return
	}

	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	if s.store.owners[businessID] != currentUser(r).ID {
		writeError(w, http.StatusForbidden, "FORBIDDEN", "Not your business")
		return
	}

	status := domain.BookingStatus(q.Get("status"))
	date := q.Get("date")

	var out []domain.Booking
	for _, b := range s.store.bookings {
		if b.BusinessID != businessID {
			continue
		}
		if status != "" && b.Status != status {
			continue
		}
		if date != "" && b.Date != date {
			continue
		}
		out = append(out, *b)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date < out[j].Date
		}
		return out[i].StartTime < out[j].StartTime
	})
	writeJSON(w, http.StatusOK, map[string]any{"content": out})
}

// ownerBookingAction builds the approve/reject/complete/no-show handlers.
func (s *Server) ownerBookingAction(target domain.BookingStatus) http.HandlerFunc {
	allowedFrom := map[domain.BookingStatus][]domain.BookingStatus{
		domain.BookingApproved:  {domain.BookingPending},
		domain.BookingRejected:  {domain.BookingPending},
		domain.BookingCompleted: {domain.BookingApproved},
		domain.BookingNoShow:    {domain.BookingApproved},
	}

	return func(w http.ResponseWriter, r *http.Request) {
		id, err := uuid.Parse(chi.URLParam(r, "id"))
		if err != nil {
			writeError(w, http.StatusBadRequest, "BAD_REQUEST", "Invalid booking id")
			return
		}

		var reason string
		if target == domain.BookingRejected {
			var req struct {
				Reason string `json:"reason"`
			}
			// Reject body is optional.
			_ = json.NewDecoder(r.Body).Decode(&req)
			reason = req.Reason
		}

		s.store.mu.Lock()
		defer s.store.mu.Unlock()

		b := s.store.bookings[id]
		if b == nil {
			writeError(w, http.StatusNotFound, "NOT_FOUND", "Booking not found")
			return
		}
		if s.store.owners[b.BusinessID] != currentUser(r).ID {
			writeError(w, http.StatusForbidden, "FORBIDDEN", "Not your business")
			return
		}

		ok := false
		for _, from := range allowedFrom[target] {
			if b.Status == from {
				ok = true
				break
			}
		}
		if !ok {
			writeError(w, http.StatusConflict, "INVALID_STATUS", "Booking is not in an actionable status")
			return
		}

		b.Status = target
		b.RejectReason = reason
		writeJSON(w, http.StatusOK, b)
	}
}
