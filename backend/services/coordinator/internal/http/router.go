package httpserver

import (
	"net/http"

	"github.com/gorilla/mux"

	"gamecafe/backend/services/coordinator/internal/http/handlers"
)

// Routes groups the handler sets wired by the app.
type Routes struct {
	Stations *handlers.StationsHandler
	Sessions *handlers.SessionsHandler
	Billing  *handlers.BillingHandler
	Auth     *handlers.AuthHandler
	Events   http.HandlerFunc
	Health   http.HandlerFunc
}

// NewRouter registers all endpoints.
func NewRouter(routes Routes) http.Handler {
	r := mux.NewRouter()

	api := r.PathPrefix("/api").Subrouter()

	api.HandleFunc("/stations/register", routes.Stations.Register).Methods(http.MethodPost)
	api.HandleFunc("/stations/heartbeat", routes.Stations.Heartbeat).Methods(http.MethodPost)
	api.HandleFunc("/stations", routes.Stations.List).Methods(http.MethodGet)
	api.HandleFunc("/stations/{id:[0-9]+}", routes.Stations.GetByID).Methods(http.MethodGet)

	api.HandleFunc("/sessions/sync", routes.Sessions.Sync).Methods(http.MethodPost)
	api.HandleFunc("/sessions/start", routes.Sessions.Start).Methods(http.MethodPost)
	api.HandleFunc("/sessions/{id:[0-9]+}/end", routes.Sessions.End).Methods(http.MethodPost)
	api.HandleFunc("/sessions/{id:[0-9]+}/cancel", routes.Sessions.Cancel).Methods(http.MethodPost)
	api.HandleFunc("/sessions", routes.Sessions.List).Methods(http.MethodGet)
	api.HandleFunc("/sessions/active", routes.Sessions.Active).Methods(http.MethodGet)
	api.HandleFunc("/sessions/station/{stationId:[0-9]+}", routes.Sessions.ByStation).Methods(http.MethodGet)

	api.HandleFunc("/billing/process", routes.Billing.Process).Methods(http.MethodPost)
	api.HandleFunc("/billing/analytics", routes.Billing.Analytics).Methods(http.MethodGet)
	api.HandleFunc("/billing/revenue", routes.Billing.Analytics).Methods(http.MethodGet)

	api.HandleFunc("/auth/login", routes.Auth.Login).Methods(http.MethodPost)

	if routes.Events != nil {
		r.HandleFunc("/ws/events", routes.Events)
	}
	if routes.Health != nil {
		r.HandleFunc("/health", routes.Health).Methods(http.MethodGet)
	}

	return r
}
