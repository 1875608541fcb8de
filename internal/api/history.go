package api

import (
	"encoding/csv"
	"fmt"
	"net/http"
	"slices"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/thatsimonsguy/sensor-dashboard/internal/history"
	"github.com/thatsimonsguy/sensor-dashboard/internal/model"
)

type HistoryEntryResponse struct {
	Time        time.Time    `json:"time"`
	Temperature float64      `json:"temperature"`
	Humidity    float64      `json:"humidity"`
	Status      model.Status `json:"status"`
}

type HistoryResponse struct {
	Count    int                    `json:"count"`
	Capacity int                    `json:"capacity"`
	Entries  []HistoryEntryResponse `json:"entries"`
}

// StatsResponse leaves the aggregates null when there is no history.
type StatsResponse struct {
	Count       int                `json:"count"`
	Temperature *history.Aggregate `json:"temperature"`
	Humidity    *history.Aggregate `json:"humidity"`
}

func (s *Server) getHistory(w http.ResponseWriter, r *http.Request) {
	entries := s.sensors.History()

	switch r.URL.Query().Get("order") {
	case "", "asc":
	case "desc":
		slices.Reverse(entries)
	default:
		s.writeError(w, http.StatusBadRequest, "Invalid order. Valid orders: asc, desc")
		return
	}

	response := HistoryResponse{
		Count:    len(entries),
		Capacity: history.Capacity,
		Entries:  make([]HistoryEntryResponse, 0, len(entries)),
	}
	for _, e := range entries {
		response.Entries = append(response.Entries, HistoryEntryResponse{
			Time:        e.Timestamp,
			Temperature: e.Temperature,
			Humidity:    e.Humidity,
			Status:      e.Status,
		})
	}

	s.writeJSON(w, http.StatusOK, response)
}

func (s *Server) clearHistory(w http.ResponseWriter, r *http.Request) {
	s.sensors.ClearHistory()
	log.Info().Msg("History cleared via API")
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) getStats(w http.ResponseWriter, r *http.Request) {
	stats, ok := s.sensors.Stats()
	if !ok {
		s.writeJSON(w, http.StatusOK, StatsResponse{})
		return
	}

	s.writeJSON(w, http.StatusOK, StatsResponse{
		Count:       stats.Count,
		Temperature: &stats.Temperature,
		Humidity:    &stats.Humidity,
	})
}

// exportCSV writes the history latest first.
func (s *Server) exportCSV(w http.ResponseWriter, r *http.Request) {
	entries := s.sensors.History()
	slices.Reverse(entries)

	filename := fmt.Sprintf("sensor_data_%s.csv", s.now().Format("20060102_150405"))
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)

	cw := csv.NewWriter(w)
	rows := [][]string{{"time", "temperature_c", "humidity_pct", "status"}}
	for _, e := range entries {
		rows = append(rows, []string{
			e.Timestamp.Format(time.RFC3339),
			strconv.FormatFloat(e.Temperature, 'f', 1, 64),
			strconv.FormatFloat(e.Humidity, 'f', 1, 64),
			string(e.Status),
		})
	}
	if err := cw.WriteAll(rows); err != nil {
		log.Error().Err(err).Msg("Failed to write CSV export")
	}
}
