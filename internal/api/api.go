package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"

	"github.com/thatsimonsguy/sensor-dashboard/internal/sensor"
)

// SimulatorControl is the part of the reading generator the API can toggle.
type SimulatorControl interface {
	Pause()
	Resume()
	Running() bool
	Interval() time.Duration
}

type Server struct {
	sensors   *sensor.Service
	simulator SimulatorControl
	httpSrv   *http.Server
	now       func() time.Time
}

type ErrorResponse struct {
	Error string `json:"error"`
}

func NewServer(sensors *sensor.Service, simulator SimulatorControl) *Server {
	return &Server{
		sensors:   sensors,
		simulator: simulator,
		now:       time.Now,
	}
}

// Handler returns the routed API wrapped in CORS middleware.
func (s *Server) Handler() http.Handler {
	notFound := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.writeError(w, http.StatusNotFound, "Not found")
	})
	notAllowed := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
	})

	r := mux.NewRouter()
	r.NotFoundHandler = notFound
	r.MethodNotAllowedHandler = notAllowed

	api := r.PathPrefix("/api").Subrouter()
	api.NotFoundHandler = notFound
	api.MethodNotAllowedHandler = notAllowed

	// Sensor state endpoints
	api.HandleFunc("/state", s.getState).Methods(http.MethodGet)
	api.HandleFunc("/state/reading", s.setReading).Methods(http.MethodPut)
	api.HandleFunc("/state/lights", s.setLights).Methods(http.MethodPut)

	// History endpoints
	api.HandleFunc("/history", s.getHistory).Methods(http.MethodGet)
	api.HandleFunc("/history", s.clearHistory).Methods(http.MethodDelete)
	api.HandleFunc("/history/stats", s.getStats).Methods(http.MethodGet)
	api.HandleFunc("/history/export.csv", s.exportCSV).Methods(http.MethodGet)

	// Simulator endpoints
	api.HandleFunc("/simulator", s.getSimulator).Methods(http.MethodGet)
	api.HandleFunc("/simulator", s.setSimulator).Methods(http.MethodPut)

	return handlers.CORS(
		handlers.AllowedOrigins([]string{"*"}),
		handlers.AllowedMethods([]string{http.MethodGet, http.MethodPut, http.MethodDelete, http.MethodOptions}),
		handlers.AllowedHeaders([]string{"Content-Type", "Authorization"}),
	)(r)
}

// Start serves the API until Shutdown is called.
func (s *Server) Start(addr string) error {
	s.httpSrv = &http.Server{
		Addr:         addr,
		Handler:      s.Handler(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	log.Info().Str("address", addr).Msg("Starting REST API server")

	if err := s.httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("api server: %w", err)
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpSrv == nil {
		return nil
	}
	return s.httpSrv.Shutdown(ctx)
}

func (s *Server) writeJSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Error().Err(err).Msg("Failed to encode response")
	}
}

func (s *Server) writeError(w http.ResponseWriter, statusCode int, message string) {
	s.writeJSON(w, statusCode, ErrorResponse{Error: message})
}
