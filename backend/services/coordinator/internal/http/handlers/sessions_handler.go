package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"gamecafe/backend/services/coordinator/internal/models"
	"gamecafe/backend/services/coordinator/internal/session"
)

// SessionsHandler exposes the session coordinator at the boundary.
type SessionsHandler struct {
	coordinator *session.Coordinator
	logger      *zap.Logger
}

// NewSessionsHandler builds the handler set.
func NewSessionsHandler(coordinator *session.Coordinator, logger *zap.Logger) *SessionsHandler {
	return &SessionsHandler{coordinator: coordinator, logger: logger}
}

// Sync handles POST /api/sessions/sync. The snapshot replaces any local
// copy wholesale; the last write wins.
func (h *SessionsHandler) Sync(w http.ResponseWriter, r *http.Request) {
	var req SessionSyncRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}
	if req.SessionID <= 0 {
		writeError(w, http.StatusBadRequest, "session_id is required")
		return
	}
	if req.StationID <= 0 {
		writeError(w, http.StatusBadRequest, "station_id is required")
		return
	}
	if req.StartTime.IsZero() {
		writeError(w, http.StatusBadRequest, "start_time is required")
		return
	}

	snapshot := models.Session{
		ID:        req.SessionID,
		UserID:    req.UserID,
		StationID: req.StationID,
		StartTime: req.StartTime,
		GameName:  req.GameName,
		TotalCost: req.TotalCost,
	}
	if req.EndTime != nil {
		snapshot.EndTime = *req.EndTime
	}

	ok := h.coordinator.SyncFromAgent(r.Context(), snapshot)
	writeJSON(w, http.StatusOK, SessionSyncResponse{
		Success:   ok,
		SessionID: req.SessionID,
		Message:   "Session synced",
	})
}

// Start handles POST /api/sessions/start.
func (h *SessionsHandler) Start(w http.ResponseWriter, r *http.Request) {
	var req StartSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}
	if req.UserID <= 0 {
		writeError(w, http.StatusBadRequest, "user_id is required")
		return
	}
	if req.StationID <= 0 {
		writeError(w, http.StatusBadRequest, "station_id is required")
		return
	}

	created, err := h.coordinator.StartSession(r.Context(), req.UserID, req.StationID, req.GameName)
	switch {
	case errors.Is(err, session.ErrStationNotFound):
		writeError(w, http.StatusNotFound, "station not found")
		return
	case errors.Is(err, session.ErrStationOccupied):
		writeError(w, http.StatusConflict, "station already has an active session")
		return
	case err != nil:
		h.logger.Error("start session failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to start session")
		return
	}

	writeJSON(w, http.StatusCreated, created)
}

// End handles POST /api/sessions/{id}/end. Ending an unknown or already
// terminal session reports 404 without touching the ledger.
func (h *SessionsHandler) End(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil || id <= 0 {
		writeError(w, http.StatusBadRequest, "invalid session id")
		return
	}

	if !h.coordinator.EndSession(r.Context(), id) {
		writeError(w, http.StatusNotFound, "session not found or not active")
		return
	}

	ended, _ := h.coordinator.Get(id)
	writeJSON(w, http.StatusOK, ended)
}

// Cancel handles POST /api/sessions/{id}/cancel: same terminal transition
// as End but no charge is recorded.
func (h *SessionsHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil || id <= 0 {
		writeError(w, http.StatusBadRequest, "invalid session id")
		return
	}

	if !h.coordinator.CancelSession(r.Context(), id) {
		writeError(w, http.StatusNotFound, "session not found or not active")
		return
	}

	cancelled, _ := h.coordinator.Get(id)
	writeJSON(w, http.StatusOK, cancelled)
}

// List handles GET /api/sessions.
func (h *SessionsHandler) List(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.infos(h.coordinator.List()))
}

// Active handles GET /api/sessions/active.
func (h *SessionsHandler) Active(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.infos(h.coordinator.ListActive()))
}

// ByStation handles GET /api/sessions/station/{stationId}.
func (h *SessionsHandler) ByStation(w http.ResponseWriter, r *http.Request) {
	stationID, err := strconv.ParseInt(mux.Vars(r)["stationId"], 10, 64)
	if err != nil || stationID <= 0 {
		writeError(w, http.StatusBadRequest, "invalid station id")
		return
	}
	writeJSON(w, http.StatusOK, h.infos(h.coordinator.ListByStation(stationID)))
}

func (h *SessionsHandler) infos(sessions []models.Session) []SessionInfo {
	now := time.Now().UTC()
	infos := make([]SessionInfo, 0, len(sessions))
	for _, s := range sessions {
		infos = append(infos, sessionInfo(s, now))
	}
	return infos
}
