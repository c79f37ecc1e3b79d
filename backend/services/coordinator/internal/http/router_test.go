package httpserver

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"gamecafe/backend/services/coordinator/internal/auth"
	"gamecafe/backend/services/coordinator/internal/billing"
	"gamecafe/backend/services/coordinator/internal/http/handlers"
	"gamecafe/backend/services/coordinator/internal/ledger"
	"gamecafe/backend/services/coordinator/internal/models"
	"gamecafe/backend/services/coordinator/internal/registry"
	"gamecafe/backend/services/coordinator/internal/session"
)

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	logger := zap.NewNop()

	stations := registry.NewStationRegistry(decimal.RequireFromString("5.00"))
	rates := billing.NewRateService()
	revenue := ledger.NewRevenueLedger()
	coordinator := session.NewCoordinator(stations, rates, revenue, nil, nil, logger)

	hasher := auth.NewBcryptHasher(4)
	hash, err := hasher.Hash("hunter2")
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	bootstrap := &models.User{ID: 1, Username: "operator", PasswordHash: hash, Role: models.RoleOperator, IsActive: true}
	authService := auth.NewService(nil, hasher, auth.NewTokenService("test-secret", time.Hour), bootstrap, logger)

	return NewRouter(Routes{
		Stations: handlers.NewStationsHandler(stations, logger),
		Sessions: handlers.NewSessionsHandler(coordinator, logger),
		Billing:  handlers.NewBillingHandler(revenue, coordinator, logger),
		Auth:     handlers.NewAuthHandler(authService, logger),
		Health:   handlers.NewHealthHandler(),
	})
}

func doJSON(t *testing.T, router http.Handler, method, path string, body interface{}) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal request: %v", err)
		}
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	decoded := map[string]interface{}{}
	if rec.Body.Len() > 0 && rec.Body.Bytes()[0] == '{' {
		if err := json.Unmarshal(rec.Body.Bytes(), &decoded); err != nil {
			t.Fatalf("decode response %q: %v", rec.Body.String(), err)
		}
	}
	return rec, decoded
}

func registerStation(t *testing.T, router http.Handler) int64 {
	t.Helper()
	rec, body := doJSON(t, router, http.MethodPost, "/api/stations/register", map[string]interface{}{
		"station_name": "Bay-1",
		"ip_address":   "10.0.0.17",
		"is_available": true,
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("register status = %d, body %s", rec.Code, rec.Body.String())
	}
	id, ok := body["station_id"].(float64)
	if !ok || id <= 0 {
		t.Fatalf("register response missing station_id: %v", body)
	}
	return int64(id)
}

func TestStationRegisterHeartbeatFlow(t *testing.T) {
	router := newTestRouter(t)
	stationID := registerStation(t, router)

	rec, body := doJSON(t, router, http.MethodPost, "/api/stations/heartbeat", map[string]interface{}{
		"station_id":         stationID,
		"is_available":       false,
		"current_session_id": 42,
	})
	if rec.Code != http.StatusOK || body["success"] != true {
		t.Fatalf("occupied heartbeat: status %d body %v", rec.Code, body)
	}

	rec, body = doJSON(t, router, http.MethodGet, fmt.Sprintf("/api/stations/%d", stationID), nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("get station status = %d", rec.Code)
	}
	if body["status"] != models.StationInUse {
		t.Fatalf("station status = %v, want %s", body["status"], models.StationInUse)
	}

	rec, body = doJSON(t, router, http.MethodPost, "/api/stations/heartbeat", map[string]interface{}{
		"station_id":   stationID,
		"is_available": true,
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("free heartbeat status = %d", rec.Code)
	}

	rec, body = doJSON(t, router, http.MethodGet, fmt.Sprintf("/api/stations/%d", stationID), nil)
	if body["status"] != models.StationAvailable {
		t.Fatalf("station status = %v, want %s", body["status"], models.StationAvailable)
	}
}

func TestHeartbeatUnknownStationIs404(t *testing.T) {
	router := newTestRouter(t)

	rec, body := doJSON(t, router, http.MethodPost, "/api/stations/heartbeat", map[string]interface{}{
		"station_id":   777,
		"is_available": true,
	})
	if rec.Code != http.StatusNotFound {
		t.Fatalf("unknown heartbeat status = %d, want 404", rec.Code)
	}
	if body["success"] != false {
		t.Fatalf("unknown heartbeat body = %v", body)
	}

	rec, _ = doJSON(t, router, http.MethodGet, "/api/stations", nil)
	if rec.Body.String() != "[]\n" && rec.Body.String() != "[]" {
		t.Fatalf("unknown heartbeat created a station: %s", rec.Body.String())
	}
}

func TestRegisterValidation(t *testing.T) {
	router := newTestRouter(t)

	rec, _ := doJSON(t, router, http.MethodPost, "/api/stations/register", map[string]interface{}{
		"ip_address": "10.0.0.1",
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("register without name status = %d, want 400", rec.Code)
	}

	rec, _ = doJSON(t, router, http.MethodPost, "/api/stations/register", map[string]interface{}{
		"station_name": "Bay-9",
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("register without address status = %d, want 400", rec.Code)
	}
}

func TestSessionLifecycleOverHTTP(t *testing.T) {
	router := newTestRouter(t)
	stationID := registerStation(t, router)

	rec, body := doJSON(t, router, http.MethodPost, "/api/sessions/start", map[string]interface{}{
		"user_id":    7,
		"station_id": stationID,
		"game_name":  "Dota 2",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("start status = %d, body %s", rec.Code, rec.Body.String())
	}
	sessionID := int64(body["id"].(float64))

	rec, _ = doJSON(t, router, http.MethodPost, "/api/sessions/start", map[string]interface{}{
		"user_id":    8,
		"station_id": stationID,
	})
	if rec.Code != http.StatusConflict {
		t.Fatalf("second start status = %d, want 409", rec.Code)
	}

	rec, body = doJSON(t, router, http.MethodPost, fmt.Sprintf("/api/sessions/%d/end", sessionID), nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("end status = %d, body %s", rec.Code, rec.Body.String())
	}
	if body["status"] != models.SessionCompleted {
		t.Fatalf("ended session status = %v", body["status"])
	}

	rec, _ = doJSON(t, router, http.MethodPost, fmt.Sprintf("/api/sessions/%d/end", sessionID), nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("repeated end status = %d, want 404", rec.Code)
	}
}

func TestSessionSyncValidation(t *testing.T) {
	router := newTestRouter(t)

	rec, _ := doJSON(t, router, http.MethodPost, "/api/sessions/sync", map[string]interface{}{
		"session_id": 0,
		"station_id": 3,
		"start_time": time.Now().UTC(),
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("sync with zero session id status = %d, want 400", rec.Code)
	}

	rec, body := doJSON(t, router, http.MethodPost, "/api/sessions/sync", map[string]interface{}{
		"session_id": 42,
		"user_id":    7,
		"station_id": 3,
		"start_time": time.Now().UTC().Format(time.RFC3339),
	})
	if rec.Code != http.StatusOK || body["success"] != true {
		t.Fatalf("valid sync: status %d body %v", rec.Code, body)
	}
}

func TestBillingProcessAndAnalytics(t *testing.T) {
	router := newTestRouter(t)

	for _, amount := range []string{"5.00", "3.00", "2.00"} {
		rec, body := doJSON(t, router, http.MethodPost, "/api/billing/process", map[string]interface{}{
			"session_id":     1,
			"amount":         amount,
			"payment_method": "cash",
		})
		if rec.Code != http.StatusOK || body["success"] != true {
			t.Fatalf("process %s: status %d body %v", amount, rec.Code, body)
		}
		if body["transaction_id"] == "" {
			t.Fatalf("process response missing transaction id")
		}
	}

	rec, body := doJSON(t, router, http.MethodGet, "/api/billing/analytics", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("analytics status = %d", rec.Code)
	}
	total, err := decimal.NewFromString(fmt.Sprintf("%v", body["total_revenue"]))
	if err != nil || !total.Equal(decimal.RequireFromString("10.00")) {
		t.Fatalf("total revenue = %v, want 10.00", body["total_revenue"])
	}

	rec, _ = doJSON(t, router, http.MethodGet, "/api/billing/analytics?startDate=bogus", nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("bogus startDate status = %d, want 400", rec.Code)
	}
}

func TestLoginOverHTTP(t *testing.T) {
	router := newTestRouter(t)

	rec, body := doJSON(t, router, http.MethodPost, "/api/auth/login", map[string]interface{}{
		"username":   "operator",
		"password":   "hunter2",
		"station_id": 1,
	})
	if rec.Code != http.StatusOK || body["success"] != true {
		t.Fatalf("login: status %d body %v", rec.Code, body)
	}
	if token, _ := body["session_token"].(string); token == "" {
		t.Fatalf("login response missing session token")
	}

	rec, _ = doJSON(t, router, http.MethodPost, "/api/auth/login", map[string]interface{}{
		"username": "operator",
		"password": "wrong",
	})
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("bad login status = %d, want 401", rec.Code)
	}
}
