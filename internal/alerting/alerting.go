// Package alerting notifies an operator when the sensor status changes.
package alerting

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/thatsimonsguy/sensor-dashboard/internal/model"
)

// Notifier interface for sending notifications
type Notifier interface {
	Send(ctx context.Context, title, message string) error
}

type Watcher struct {
	notifier Notifier
	last     model.Status
}

// NewWatcher starts from the given status so the initial state does not alert.
func NewWatcher(notifier Notifier, initial model.Status) *Watcher {
	return &Watcher{notifier: notifier, last: initial}
}

// Run consumes updates until ctx is done or the channel is closed.
func (w *Watcher) Run(ctx context.Context, updates <-chan model.SensorState) {
	for {
		select {
		case <-ctx.Done():
			return
		case st, ok := <-updates:
			if !ok {
				return
			}
			w.Observe(ctx, st)
		}
	}
}

// Observe sends a notification if st's status differs from the last one seen.
// It reports whether a notification was attempted.
func (w *Watcher) Observe(ctx context.Context, st model.SensorState) bool {
	if st.Status == w.last {
		return false
	}
	prev := w.last
	w.last = st.Status

	title := fmt.Sprintf("Temperature %s", statusName(st.Status))
	message := fmt.Sprintf("[%s -> %s] %.1f°C, %.1f%% humidity (%s)",
		statusName(prev), statusName(st.Status),
		st.Reading.Temperature, st.Reading.Humidity, st.LightsLabel)

	log.Info().
		Str("from", string(prev)).
		Str("to", string(st.Status)).
		Float64("temp", st.Reading.Temperature).
		Msg("Sensor status changed")

	if err := w.notifier.Send(ctx, title, message); err != nil {
		log.Error().Err(err).Msg("Failed to send status change notification")
	}
	return true
}

func statusName(s model.Status) string {
	switch s {
	case model.StatusCold:
		return "Cold"
	case model.StatusHot:
		return "Hot"
	case model.StatusNormal:
		return "Normal"
	default:
		return string(s)
	}
}
