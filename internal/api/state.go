package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/thatsimonsguy/sensor-dashboard/internal/classifier"
	"github.com/thatsimonsguy/sensor-dashboard/internal/model"
)

type StateResponse struct {
	Temperature        float64      `json:"temperature"`
	Humidity           float64      `json:"humidity"`
	HumidityLevel      string       `json:"humidity_level"`
	Timestamp          time.Time    `json:"timestamp"`
	Status             model.Status `json:"status"`
	Lights             model.Lights `json:"lights"`
	LightsLabel        string       `json:"lights_label"`
	ActiveLights       int          `json:"active_lights"`
	ManualLights       bool         `json:"manual_lights"`
	LastUpdate         time.Time    `json:"last_update"`
	SecondsSinceUpdate float64      `json:"seconds_since_update"`
	Freshness          string       `json:"freshness"`
	HistorySize        int          `json:"history_size"`
}

type ReadingRequest struct {
	Temperature *float64 `json:"temperature"`
	Humidity    *float64 `json:"humidity"`
}

type LightsRequest struct {
	Red    bool `json:"red"`
	Green  bool `json:"green"`
	Yellow bool `json:"yellow"`
}

func (s *Server) stateResponse(st model.SensorState) StateResponse {
	age := s.now().Sub(st.LastUpdate)
	if age < 0 {
		age = 0
	}
	return StateResponse{
		Temperature:        st.Reading.Temperature,
		Humidity:           st.Reading.Humidity,
		HumidityLevel:      classifier.HumidityLevel(st.Reading.Humidity),
		Timestamp:          st.Reading.Timestamp,
		Status:             st.Status,
		Lights:             st.Lights,
		LightsLabel:        st.LightsLabel,
		ActiveLights:       st.Lights.Active(),
		ManualLights:       st.ManualLights,
		LastUpdate:         st.LastUpdate,
		SecondsSinceUpdate: age.Seconds(),
		Freshness:          classifier.Freshness(age),
		HistorySize:        s.sensors.HistoryLen(),
	}
}

func (s *Server) getState(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, s.stateResponse(s.sensors.Current()))
}

func (s *Server) setReading(w http.ResponseWriter, r *http.Request) {
	var req ReadingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}
	if req.Temperature == nil || req.Humidity == nil {
		s.writeError(w, http.StatusBadRequest, "Both temperature and humidity are required")
		return
	}

	st := s.sensors.SetManualReading(*req.Temperature, *req.Humidity)

	log.Info().
		Float64("temp", *req.Temperature).
		Float64("humidity", *req.Humidity).
		Str("status", string(st.Status)).
		Msg("Manual reading set via API")
	s.writeJSON(w, http.StatusOK, s.stateResponse(st))
}

func (s *Server) setLights(w http.ResponseWriter, r *http.Request) {
	var req LightsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}

	st := s.sensors.ApplyManualLights(model.Lights{Red: req.Red, Green: req.Green, Yellow: req.Yellow})

	log.Info().Str("lights", st.LightsLabel).Msg("Lights set via API")
	s.writeJSON(w, http.StatusOK, s.stateResponse(st))
}
