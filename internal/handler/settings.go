package handler

import (
	"errors"
	"net/http"

	"github.com/goccy/go-json"

	"github.com/shadowmov/easyqso/backend/internal/domain"
	"github.com/shadowmov/easyqso/backend/internal/service"
	"github.com/shadowmov/easyqso/backend/internal/tz"
)

// zoneResponse is one selectable timezone in the GET /settings/zones list.
type zoneResponse struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

// GetTimezones handles GET /settings/timezones.
func (s *Server) GetTimezones(w http.ResponseWriter, r *http.Request) {
	prefs, err := s.settings.Timezones(r.Context())
	if err != nil {
		internalError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, prefs)
}

// PutTimezones handles PUT /settings/timezones.
// Empty fields leave the corresponding preference unchanged.
func (s *Server) PutTimezones(w http.ResponseWriter, r *http.Request) {
	var prefs service.TimezonePrefs
	if err := json.NewDecoder(r.Body).Decode(&prefs); err != nil {
		badRequest(w, "request body is not valid JSON")
		return
	}

	if err := s.settings.SetTimezones(r.Context(), prefs); err != nil {
		if errors.Is(err, domain.ErrValidation) {
			unprocessable(w, err)
			return
		}
		internalError(w, err)
		return
	}

	updated, err := s.settings.Timezones(r.Context())
	if err != nil {
		internalError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// ListZones handles GET /settings/zones.
// It returns the timezone identifiers accepted by PUT /settings/timezones.
func (s *Server) ListZones(w http.ResponseWriter, r *http.Request) {
	zones := tz.SelectableZones()
	out := make([]zoneResponse, len(zones))
	for i, z := range zones {
		out[i] = zoneResponse{ID: z.ID, Label: z.Label}
	}
	writeJSON(w, http.StatusOK, out)
}

// GetOwnQTH handles GET /settings/qth.
func (s *Server) GetOwnQTH(w http.ResponseWriter, r *http.Request) {
	qth, err := s.settings.OwnQTH(r.Context())
	if err != nil {
		internalError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, qth)
}

// PutOwnQTH handles PUT /settings/qth.
func (s *Server) PutOwnQTH(w http.ResponseWriter, r *http.Request) {
	var qth domain.OwnQTH
	if err := json.NewDecoder(r.Body).Decode(&qth); err != nil {
		badRequest(w, "request body is not valid JSON")
		return
	}

	if err := s.settings.SetOwnQTH(r.Context(), qth); err != nil {
		if errors.Is(err, domain.ErrValidation) {
			unprocessable(w, err)
			return
		}
		internalError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, qth)
}
