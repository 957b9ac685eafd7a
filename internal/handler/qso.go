package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"
	"github.com/google/uuid"

	"github.com/shadowmov/easyqso/backend/internal/domain"
)

// CreateQSO handles POST /qsos.
func (s *Server) CreateQSO(w http.ResponseWriter, r *http.Request) {
	var q domain.QSO
	if err := json.NewDecoder(r.Body).Decode(&q); err != nil {
		badRequest(w, "request body is not valid JSON")
		return
	}

	created, err := s.qsos.Create(r.Context(), q)
	if err != nil {
		if errors.Is(err, domain.ErrValidation) {
			unprocessable(w, err)
			return
		}
		internalError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, created)
}

// ListQSOs handles GET /qsos.
// Filter criteria are read from query parameters; see criteriaFromQuery.
func (s *Server) ListQSOs(w http.ResponseWriter, r *http.Request) {
	filter, err := criteriaFromQuery(r)
	if err != nil {
		badRequest(w, err.Error())
		return
	}

	records, err := s.qsos.List(r.Context(), filter)
	if err != nil {
		internalError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, records)
}

// GetQSO handles GET /qsos/{id}.
func (s *Server) GetQSO(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}

	q, err := s.qsos.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			notFound(w, "qso not found")
			return
		}
		internalError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, q)
}

// UpdateQSO handles PUT /qsos/{id}. The path ID wins over any ID in the body.
func (s *Server) UpdateQSO(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}

	var q domain.QSO
	if err := json.NewDecoder(r.Body).Decode(&q); err != nil {
		badRequest(w, "request body is not valid JSON")
		return
	}
	q.ID = id

	updated, err := s.qsos.Update(r.Context(), q)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			notFound(w, "qso not found")
			return
		}
		if errors.Is(err, domain.ErrValidation) {
			unprocessable(w, err)
			return
		}
		internalError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, updated)
}

// DeleteQSO handles DELETE /qsos/{id}.
func (s *Server) DeleteQSO(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}

	if err := s.qsos.Delete(r.Context(), id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			notFound(w, "qso not found")
			return
		}
		internalError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// idParam parses the {id} path parameter. On failure it writes a 404
// (an unparsable ID can never name an existing record) and returns ok=false.
func idParam(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		notFound(w, "qso not found")
		return uuid.Nil, false
	}
	return id, true
}

// criteriaFromQuery builds a FilterCriteria from the request query string.
// Supported parameters: q, mode (fuzzy|exact), callsign, band, bands (comma
// separated), qso_mode, modes (comma separated), start, end (YYYY-MM-DD),
// name, qth, grid, satellite, min_freq, max_freq.
func criteriaFromQuery(r *http.Request) (domain.FilterCriteria, error) {
	v := r.URL.Query()

	f := domain.FilterCriteria{
		SearchText: v.Get("q"),
		Callsign:   v.Get("callsign"),
		Band:       v.Get("band"),
		ModeFilter: v.Get("qso_mode"),
		Name:       v.Get("name"),
		QTH:        v.Get("qth"),
		GridSquare: v.Get("grid"),
		Satellite:  v.Get("satellite"),
	}

	switch v.Get("mode") {
	case "":
		// fuzzy by default
	case string(domain.SearchFuzzy):
		f.Mode = domain.SearchFuzzy
	case string(domain.SearchExact):
		f.Mode = domain.SearchExact
	default:
		return domain.FilterCriteria{}, errors.New("mode must be fuzzy or exact")
	}

	f.SelectedBands = splitList(v.Get("bands"))
	f.SelectedModes = splitList(v.Get("modes"))

	var err error
	if f.StartDate, err = dateParam(v.Get("start")); err != nil {
		return domain.FilterCriteria{}, errors.New("start must be formatted YYYY-MM-DD")
	}
	if f.EndDate, err = dateParam(v.Get("end")); err != nil {
		return domain.FilterCriteria{}, errors.New("end must be formatted YYYY-MM-DD")
	}
	if f.MinFrequency, err = floatParam(v.Get("min_freq")); err != nil {
		return domain.FilterCriteria{}, errors.New("min_freq must be a number")
	}
	if f.MaxFrequency, err = floatParam(v.Get("max_freq")); err != nil {
		return domain.FilterCriteria{}, errors.New("max_freq must be a number")
	}

	return f, nil
}

func splitList(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func dateParam(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func floatParam(s string) (*float64, error) {
	if s == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, err
	}
	return &v, nil
}
