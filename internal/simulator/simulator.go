// Package simulator produces synthetic DHT22 readings on a fixed schedule and
// feeds them into the sensor state pipeline.
package simulator

import (
	"context"
	"fmt"
	"math/rand/v2"
	"sync/atomic"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"

	"github.com/thatsimonsguy/sensor-dashboard/internal/logging"
	"github.com/thatsimonsguy/sensor-dashboard/internal/model"
)

const (
	DefaultInterval = 2 * time.Second

	BaseTemperature = 24.0
	TempVariationLo = -2.0
	TempVariationHi = 3.0

	BaseHumidity   = 65.0
	HumVariationLo = -5.0
	HumVariationHi = 5.0
)

// RandomSource supplies uniformly distributed floats in [lo, hi).
type RandomSource interface {
	Uniform(lo, hi float64) float64
}

// Applier is the pipeline the generator pushes readings into.
type Applier interface {
	ApplyReading(r model.Reading) model.SensorState
}

type Generator struct {
	applier  Applier
	rnd      RandomSource
	now      func() time.Time
	interval time.Duration
	paused   atomic.Bool
}

func New(applier Applier, interval time.Duration) *Generator {
	return NewWithSource(applier, interval, mathRand{}, time.Now)
}

// NewWithSource creates a generator with injectable randomness and clock for testing
func NewWithSource(applier Applier, interval time.Duration, rnd RandomSource, now func() time.Time) *Generator {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Generator{
		applier:  applier,
		rnd:      rnd,
		now:      now,
		interval: interval,
	}
}

// Next produces a reading without applying it.
func (g *Generator) Next() model.Reading {
	return model.Reading{
		Temperature: BaseTemperature + g.rnd.Uniform(TempVariationLo, TempVariationHi),
		Humidity:    BaseHumidity + g.rnd.Uniform(HumVariationLo, HumVariationHi),
		Timestamp:   g.now(),
	}
}

// Tick generates one reading and applies it. It reports false when paused.
func (g *Generator) Tick() (model.Reading, bool) {
	if g.paused.Load() {
		log.Debug().Msg("Simulator paused, skipping tick")
		return model.Reading{}, false
	}

	r := g.Next()
	st := g.applier.ApplyReading(r)

	log.Debug().
		Float64("temp", r.Temperature).
		Float64("humidity", r.Humidity).
		Str("status", string(st.Status)).
		Msg("Simulated reading")

	return r, true
}

func (g *Generator) Pause() {
	if !g.paused.Swap(true) {
		log.Info().Msg("Simulator paused")
	}
}

func (g *Generator) Resume() {
	if g.paused.Swap(false) {
		log.Info().Msg("Simulator resumed")
	}
}

func (g *Generator) Running() bool {
	return !g.paused.Load()
}

func (g *Generator) Interval() time.Duration {
	return g.interval
}

// Start schedules Tick every interval until ctx is cancelled. It returns once
// the schedule is running.
func (g *Generator) Start(ctx context.Context) error {
	c := cron.New(
		cron.WithLogger(logging.CronLogger{}),
		cron.WithChain(cron.Recover(logging.CronLogger{}), cron.SkipIfStillRunning(logging.CronLogger{})),
	)

	schedule := "@every " + g.interval.String()
	if _, err := c.AddFunc(schedule, func() { g.Tick() }); err != nil {
		return fmt.Errorf("failed to schedule simulator: %w", err)
	}

	c.Start()
	log.Info().
		Dur("interval", g.interval).
		Msg("Starting sensor simulator")

	go func() {
		<-ctx.Done()
		<-c.Stop().Done()
		log.Info().Msg("Sensor simulator stopped")
	}()

	return nil
}

type mathRand struct{}

func (mathRand) Uniform(lo, hi float64) float64 {
	return lo + rand.Float64()*(hi-lo)
}
