package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"gamecafe/backend/services/coordinator/internal/registry"
)

// StationsHandler exposes the station registry at the boundary.
type StationsHandler struct {
	registry *registry.StationRegistry
	logger   *zap.Logger
}

// NewStationsHandler builds the handler set.
func NewStationsHandler(reg *registry.StationRegistry, logger *zap.Logger) *StationsHandler {
	return &StationsHandler{registry: reg, logger: logger}
}

// Register handles POST /api/stations/register.
func (h *StationsHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req StationHeartbeatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}
	if req.StationName == "" {
		writeError(w, http.StatusBadRequest, "station_name is required")
		return
	}
	if req.IPAddress == "" {
		writeError(w, http.StatusBadRequest, "ip_address is required")
		return
	}

	station := h.registry.Register(req.StationName, req.IPAddress, req.Port)
	h.logger.Info("station registered",
		zap.Int64("station_id", station.ID),
		zap.String("name", station.Name),
		zap.String("ip_address", station.IPAddress),
	)

	now := time.Now().UTC()
	writeJSON(w, http.StatusOK, StationStatusResponse{
		Success:    true,
		StationID:  station.ID,
		Message:    fmt.Sprintf("Station %s registered successfully", station.Name),
		ServerTime: &now,
	})
}

// Heartbeat handles POST /api/stations/heartbeat. Unknown stations get a
// 404 and are never implicitly created.
func (h *StationsHandler) Heartbeat(w http.ResponseWriter, r *http.Request) {
	var req StationHeartbeatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}
	if req.StationID <= 0 {
		writeError(w, http.StatusBadRequest, "station_id is required")
		return
	}

	if !h.registry.Heartbeat(req.StationID, !req.IsAvailable, req.CurrentSessionID) {
		writeJSON(w, http.StatusNotFound, StationStatusResponse{
			Success: false,
			Message: "Station not found",
		})
		return
	}

	now := time.Now().UTC()
	writeJSON(w, http.StatusOK, StationStatusResponse{
		Success:    true,
		StationID:  req.StationID,
		Message:    "Heartbeat received",
		ServerTime: &now,
	})
}

// List handles GET /api/stations.
func (h *StationsHandler) List(w http.ResponseWriter, r *http.Request) {
	stations := h.registry.List()
	infos := make([]StationInfo, 0, len(stations))
	for _, station := range stations {
		infos = append(infos, stationInfo(station))
	}
	writeJSON(w, http.StatusOK, infos)
}

// GetByID handles GET /api/stations/{id}.
func (h *StationsHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil || id <= 0 {
		writeError(w, http.StatusBadRequest, "invalid station id")
		return
	}

	station, ok := h.registry.Get(id)
	if !ok {
		writeError(w, http.StatusNotFound, "station not found")
		return
	}
	writeJSON(w, http.StatusOK, stationInfo(station))
}
