package stub

import (
	"math"
	"net/http"
	"sort"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/findly/findly-go/internal/core/domain"
)

type businessPage struct {
	Content       []domain.Business `json:"content"`
	Page          int               `json:"page"`
	Size          int               `json:"size"`
	TotalElements int               `json:"totalElements"`
	TotalPages    int               `json:"totalPages"`
}

func (s *Server) searchBusinesses(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	term := strings.ToLower(q.Get("q"))
	category := q.Get("category")

	lat, latErr := strconv.ParseFloat(q.Get("lat"), 64)
	lng, lngErr := strconv.ParseFloat(q.Get("lng"), 64)
	hasCoords := latErr == nil && lngErr == nil

	radius := 5000.0
	if v, err := strconv.ParseFloat(q.Get("radius"), 64); err == nil && v > 0 {
		radius = v
	}

	s.store.mu.Lock()
	var matches []domain.Business
	for _, b := range s.store.businesses {
		if term != "" && !strings.Contains(strings.ToLower(b.Name), term) &&
			!strings.Contains(strings.ToLower(b.Description), term) {
			continue
		}
		if category != "" && (b.Category == nil || b.Category.ID.String() != category) {
			continue
		}
		row := *b
		if hasCoords && b.Latitude != nil && b.Longitude != nil {
			d := haversineMeters(lat, lng, *b.Latitude, *b.Longitude)
			if d > radius {
				continue
			}
			row.DistanceMeters = &d
		}
		// Listing rows omit the nested catalog.
		row.Services = nil
		row.WorkingHours = nil
		matches = append(matches, row)
	}
	s.store.mu.Unlock()

	sort.Slice(matches, func(i, j int) bool {
		di, dj := matches[i].DistanceMeters, matches[j].DistanceMeters
		if di != nil && dj != nil {
			return *di < *dj
		}
		return matches[i].Name < matches[j].Name
	})

	size := 20
	if v, err := strconv.Atoi(q.Get("size")); err == nil && v > 0 {
		size = v
	}
	page := 0
	if v, err := strconv.Atoi(q.Get("page")); err == nil && v > 0 {
		page = v
	}

	total := len(matches)
	start := page * size
	if start > total {
		start = total
	}
	end := start + size
	if end > total {
		end = total
	}

	writeJSON(w, http.StatusOK, businessPage{
		Content:       matches[start:end],
		Page:          page,
		Size:          size,
		TotalElements: total,
		TotalPages:    (total + size - 1) / size,
	})
}

func (s *Server) findBusiness(w http.ResponseWriter, idParam string) *domain.Business {
	id, err := uuid.Parse(idParam)
	if err != nil {
		writeError(w, http.StatusBadRequest, "BAD_REQUEST", "Invalid business id")
		return nil
	}

	s.store.mu.Lock()
	b := s.store.businesses[id]
	s.store.mu.Unlock()

	if b == nil {
		writeError(w, http.StatusNotFound, "NOT_FOUND", "Business not found")
		return nil
	}
	return b
}

func (s *Server) getBusiness(w http.ResponseWriter, r *http.Request) {
	if b := s.findBusiness(w, chi.URLParam(r, "id")); b != nil {
		writeJSON(w, http.StatusOK, b)
	}
}

func (s *Server) getBusinessServices(w http.ResponseWriter, r *http.Request) {
	b := s.findBusiness(w, chi.URLParam(r, "id"))
	if b == nil {
		return
	}
	active := []domain.Service{}
	for _, svc := range b.Services {
		if svc.Active {
			active = append(active, svc)
		}
	}
	writeJSON(w, http.StatusOK, active)
}

func (s *Server) getBusinessHours(w http.ResponseWriter, r *http.Request) {
	if b := s.findBusiness(w, chi.URLParam(r, "id")); b != nil {
		writeJSON(w, http.StatusOK, b.WorkingHours)
	}
}

func (s *Server) getCategories(w http.ResponseWriter, r *http.Request) {
	s.store.mu.Lock()
	cats := append([]domain.Category(nil), s.store.categories...)
	s.store.mu.Unlock()
	writeJSON(w, http.StatusOK, cats)
}

func (s *Server) getCategoryBySlug(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	s.store.mu.Lock()
	defer s.store.mu.Unlock()
	for _, c := range s.store.categories {
		if c.Slug == slug {
			writeJSON(w, http.StatusOK, c)
			return
		}
	}
	writeError(w, http.StatusNotFound, "NOT_FOUND", "Category not found")
}

// haversineMeters is the great-circle distance between two points.
func haversineMeters(lat1, lng1, lat2, lng2 float64) float64 {
	const earthRadius = 6371000.0
	rad := func(d float64) float64 { return d * math.Pi / 180 }

	dLat := rad(lat2 - lat1)
	dLng := rad(lng2 - lng1)
	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(rad(lat1))*math.Cos(rad(lat2))*math.Sin(dLng/2)*math.Sin(dLng/2)
	return earthRadius * 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
}
