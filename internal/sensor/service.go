package sensor

import (
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/thatsimonsguy/sensor-dashboard/internal/classifier"
	"github.com/thatsimonsguy/sensor-dashboard/internal/history"
	"github.com/thatsimonsguy/sensor-dashboard/internal/model"
)

const (
	DefaultTemperature = 24.0
	DefaultHumidity    = 65.0
)

// Service owns the single sensor state and its history. All mutations go
// through one lock so readers never see a status that disagrees with its reading.
type Service struct {
	mutex   sync.RWMutex
	state   model.SensorState
	history *history.Buffer

	subMutex    sync.Mutex
	subscribers map[int]chan model.SensorState
	nextSubID   int

	now func() time.Time
}

func NewService() *Service {
	return NewServiceWithClock(time.Now)
}

// NewServiceWithClock creates a service with an injectable clock for testing
func NewServiceWithClock(now func() time.Time) *Service {
	ts := now()
	status, lights := classifier.Classify(DefaultTemperature)
	return &Service{
		state: model.SensorState{
			Reading: model.Reading{
				Temperature: DefaultTemperature,
				Humidity:    DefaultHumidity,
				Timestamp:   ts,
			},
			Status:      status,
			Lights:      lights,
			LightsLabel: classifier.LightsLabel(lights),
			LastUpdate:  ts,
		},
		history:     history.NewBuffer(history.Capacity),
		subscribers: make(map[int]chan model.SensorState),
		now:         now,
	}
}

// ApplyReading classifies the reading, replaces the current state and appends
// the reading to history.
func (s *Service) ApplyReading(r model.Reading) model.SensorState {
	status, lights := classifier.Classify(r.Temperature)

	s.mutex.Lock()
	s.state = model.SensorState{
		Reading:     r,
		Status:      status,
		Lights:      lights,
		LightsLabel: classifier.LightsLabel(lights),
		LastUpdate:  s.now(),
	}
	s.history.Append(model.HistoryEntry{Reading: r, Status: status})
	st := s.state
	size := s.history.Len()
	s.publish(st)
	s.mutex.Unlock()

	log.Debug().
		Float64("temp", r.Temperature).
		Float64("humidity", r.Humidity).
		Str("status", string(status)).
		Int("history_size", size).
		Msg("Sensor reading applied")

	return st
}

// SetManualReading applies an operator-entered reading. Any finite value is
// accepted and classified by the ordinary thresholds.
func (s *Service) SetManualReading(temperature, humidity float64) model.SensorState {
	log.Info().
		Float64("temp", temperature).
		Float64("humidity", humidity).
		Msg("Manual reading override")

	return s.ApplyReading(model.Reading{
		Temperature: temperature,
		Humidity:    humidity,
		Timestamp:   s.now(),
	})
}

// ApplyManualLights replaces only the indicator pattern. The reading, status
// and history are left alone, and the divergence from status is kept until the
// next reading.
func (s *Service) ApplyManualLights(l model.Lights) model.SensorState {
	s.mutex.Lock()
	s.state.Lights = l
	s.state.LightsLabel = classifier.LightsLabel(l)
	s.state.ManualLights = true
	st := s.state
	s.publish(st)
	s.mutex.Unlock()

	log.Info().
		Bool("red", l.Red).
		Bool("green", l.Green).
		Bool("yellow", l.Yellow).
		Str("label", st.LightsLabel).
		Msg("Manual light override")

	return st
}

func (s *Service) ClearHistory() {
	s.mutex.Lock()
	cleared := s.history.Len()
	s.history.Clear()
	s.publish(s.state)
	s.mutex.Unlock()

	log.Info().Int("entries", cleared).Msg("History cleared")
}

func (s *Service) Current() model.SensorState {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return s.state
}

// History returns a copy of the history, oldest first.
func (s *Service) History() []model.HistoryEntry {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return s.history.Snapshot()
}

func (s *Service) HistoryLen() int {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return s.history.Len()
}

// Stats computes statistics over the current history. ok is false when the
// history is empty.
func (s *Service) Stats() (history.Stats, bool) {
	return history.Compute(s.History())
}

// Since returns how long ago the state was last updated.
func (s *Service) Since() time.Duration {
	return s.now().Sub(s.Current().LastUpdate)
}
