package datadog

import (
	"context"

	"github.com/DataDog/datadog-go/statsd"
	"github.com/rs/zerolog/log"

	"github.com/thatsimonsguy/sensor-dashboard/internal/config"
	"github.com/thatsimonsguy/sensor-dashboard/internal/model"
)

var dogstatsd *statsd.Client

func InitMetrics(cfg *config.Config) {
	if !cfg.EnableDatadog {
		log.Info().Msg("Datadog metrics disabled")
		return
	}

	var err error
	dogstatsd, err = statsd.New(cfg.DDAgentAddr,
		statsd.WithNamespace(cfg.DDNamespace),
		statsd.WithTags(cfg.DDTags),
	)
	if err != nil {
		log.Warn().Err(err).Msg("Failed to create DogStatsD client")
		return
	}

	log.Info().
		Str("addr", cfg.DDAgentAddr).
		Str("namespace", cfg.DDNamespace).
		Strs("tags", cfg.DDTags).
		Msg("Datadog metrics initialized")
}

// Close flushes buffered metrics.
func Close() {
	if dogstatsd == nil {
		return
	}
	if err := dogstatsd.Close(); err != nil {
		log.Warn().Err(err).Msg("Failed to close DogStatsD client")
	}
	dogstatsd = nil
}

func Gauge(name string, value float64, tags ...string) {
	if dogstatsd != nil {
		if err := dogstatsd.Gauge(name, value, tags, 1); err != nil {
			log.Warn().Err(err).Str("metric", name).Msg("Failed to emit gauge metric")
		}
	}
}

// ReportState emits the sensor gauges for one state snapshot.
func ReportState(st model.SensorState, historySize int) {
	statusTag := "status:" + string(st.Status)

	Gauge("sensor.temperature", st.Reading.Temperature, statusTag)
	Gauge("sensor.humidity", st.Reading.Humidity, statusTag)
	Gauge("sensor.history.size", float64(historySize))
	Gauge("sensor.light.red", boolGauge(st.Lights.Red), statusTag)
	Gauge("sensor.light.green", boolGauge(st.Lights.Green), statusTag)
	Gauge("sensor.light.yellow", boolGauge(st.Lights.Yellow), statusTag)
}

// Run reports every state received on updates until ctx is done or the
// channel closes.
func Run(ctx context.Context, updates <-chan model.SensorState, historySize func() int) {
	for {
		select {
		case <-ctx.Done():
			return
		case st, ok := <-updates:
			if !ok {
				return
			}
			ReportState(st, historySize())
		}
	}
}

func boolGauge(on bool) float64 {
	if on {
		return 1
	}
	return 0
}
