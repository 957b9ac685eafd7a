package handler_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shadowmov/easyqso/backend/internal/domain"
	"github.com/shadowmov/easyqso/backend/internal/handler"
	"github.com/shadowmov/easyqso/backend/internal/service"
)

// mockSettingsServicer is a test double for handler.SettingsServicer.
type mockSettingsServicer struct {
	timezones    func(ctx context.Context) (service.TimezonePrefs, error)
	setTimezones func(ctx context.Context, p service.TimezonePrefs) error
	ownQTH       func(ctx context.Context) (domain.OwnQTH, error)
	setOwnQTH    func(ctx context.Context, qth domain.OwnQTH) error
}

func (m *mockSettingsServicer) Timezones(ctx context.Context) (service.TimezonePrefs, error) {
	return m.timezones(ctx)
}
func (m *mockSettingsServicer) SetTimezones(ctx context.Context, p service.TimezonePrefs) error {
	return m.setTimezones(ctx, p)
}
func (m *mockSettingsServicer) OwnQTH(ctx context.Context) (domain.OwnQTH, error) {
	return m.ownQTH(ctx)
}
func (m *mockSettingsServicer) SetOwnQTH(ctx context.Context, qth domain.OwnQTH) error {
	return m.setOwnQTH(ctx, qth)
}

var _ handler.SettingsServicer = (*mockSettingsServicer)(nil)

// ---- GET /settings/timezones -------------------------------------------------

func TestGetTimezones_200(t *testing.T) {
	svc := &mockSettingsServicer{
		timezones: func(_ context.Context) (service.TimezonePrefs, error) {
			return service.TimezonePrefs{ExportTimezone: "UTC+2", ImportTimezone: "UTC"}, nil
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/settings/timezones", nil)
	rec := httptest.NewRecorder()

	newHTTPHandler(nil, nil, nil, svc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp service.TimezonePrefs
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "UTC+2", resp.ExportTimezone)
	assert.Equal(t, "UTC", resp.ImportTimezone)
}

// ---- PUT /settings/timezones -------------------------------------------------

func TestPutTimezones_200(t *testing.T) {
	var got service.TimezonePrefs
	svc := &mockSettingsServicer{
		setTimezones: func(_ context.Context, p service.TimezonePrefs) error {
			got = p
			return nil
		},
		timezones: func(_ context.Context) (service.TimezonePrefs, error) {
			return service.TimezonePrefs{ExportTimezone: "Local", ImportTimezone: "UTC"}, nil
		},
	}

	body := jsonBody(t, map[string]string{"export_timezone": "Local"})
	req := httptest.NewRequest(http.MethodPut, "/settings/timezones", body)
	rec := httptest.NewRecorder()

	newHTTPHandler(nil, nil, nil, svc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Local", got.ExportTimezone)
	assert.Empty(t, got.ImportTimezone)
}

func TestPutTimezones_422_UnknownZone(t *testing.T) {
	svc := &mockSettingsServicer{
		setTimezones: func(_ context.Context, _ service.TimezonePrefs) error {
			return fmt.Errorf("%w: unknown timezone %q", domain.ErrValidation, "UTC+99")
		},
	}

	body := jsonBody(t, map[string]string{"export_timezone": "UTC+99"})
	req := httptest.NewRequest(http.MethodPut, "/settings/timezones", body)
	rec := httptest.NewRecorder()

	newHTTPHandler(nil, nil, nil, svc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

// ---- GET /settings/zones -------------------------------------------------------

func TestListZones_200(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/settings/zones", nil)
	rec := httptest.NewRecorder()

	newHTTPHandler(nil, nil, nil, &mockSettingsServicer{}).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var zones []struct {
		ID    string `json:"id"`
		Label string `json:"label"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&zones))

	ids := make([]string, 0, len(zones))
	for _, z := range zones {
		ids = append(ids, z.ID)
	}
	assert.Contains(t, ids, "UTC")
	assert.Contains(t, ids, "Local")
	assert.Contains(t, ids, "UTC-12")
	assert.Contains(t, ids, "UTC+14")
	assert.NotContains(t, ids, "UTC+0")
}

// ---- GET /settings/qth ---------------------------------------------------------

func TestGetOwnQTH_200(t *testing.T) {
	svc := &mockSettingsServicer{
		ownQTH: func(_ context.Context) (domain.OwnQTH, error) {
			return domain.OwnQTH{Location: "Berlin", GridSquare: "JO62qm", CQZone: "14"}, nil
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/settings/qth", nil)
	rec := httptest.NewRecorder()

	newHTTPHandler(nil, nil, nil, svc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp domain.OwnQTH
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "Berlin", resp.Location)
	assert.Equal(t, "JO62qm", resp.GridSquare)
}

// ---- PUT /settings/qth ---------------------------------------------------------

func TestPutOwnQTH_200(t *testing.T) {
	var got domain.OwnQTH
	svc := &mockSettingsServicer{
		setOwnQTH: func(_ context.Context, qth domain.OwnQTH) error {
			got = qth
			return nil
		},
	}

	body := jsonBody(t, map[string]any{
		"location":    "Berlin",
		"grid_square": "JO62qm",
		"latitude":    52.48,
		"longitude":   13.35,
	})
	req := httptest.NewRequest(http.MethodPut, "/settings/qth", body)
	rec := httptest.NewRecorder()

	newHTTPHandler(nil, nil, nil, svc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Berlin", got.Location)
	assert.Equal(t, "JO62qm", got.GridSquare)
	assert.InDelta(t, 52.48, got.Latitude, 1e-9)
}

func TestPutOwnQTH_422_BadGrid(t *testing.T) {
	svc := &mockSettingsServicer{
		setOwnQTH: func(_ context.Context, _ domain.OwnQTH) error {
			return fmt.Errorf("%w: invalid grid square %q", domain.ErrValidation, "ZZ99")
		},
	}

	body := jsonBody(t, map[string]string{"grid_square": "ZZ99"})
	req := httptest.NewRequest(http.MethodPut, "/settings/qth", body)
	rec := httptest.NewRecorder()

	newHTTPHandler(nil, nil, nil, svc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}
