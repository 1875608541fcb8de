package api

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog/log"
)

type SimulatorResponse struct {
	Running         bool    `json:"running"`
	IntervalSeconds float64 `json:"interval_seconds"`
}

type SimulatorRequest struct {
	Running *bool `json:"running"`
}

func (s *Server) simulatorResponse() SimulatorResponse {
	return SimulatorResponse{
		Running:         s.simulator.Running(),
		IntervalSeconds: s.simulator.Interval().Seconds(),
	}
}

func (s *Server) getSimulator(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, s.simulatorResponse())
}

func (s *Server) setSimulator(w http.ResponseWriter, r *http.Request) {
	var req SimulatorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Running == nil {
		s.writeError(w, http.StatusBadRequest, "Invalid JSON payload, expected {\"running\": bool}")
		return
	}

	if *req.Running {
		s.simulator.Resume()
	} else {
		s.simulator.Pause()
	}

	log.Info().Bool("running", *req.Running).Msg("Simulator toggled via API")
	s.writeJSON(w, http.StatusOK, s.simulatorResponse())
}
