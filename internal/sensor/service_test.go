package sensor

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thatsimonsguy/sensor-dashboard/internal/history"
	"github.com/thatsimonsguy/sensor-dashboard/internal/model"
)

var testEpoch = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

// fakeClock advances one second every time it is read.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(time.Second)
	return c.now
}

func newTestService() *Service {
	clock := &fakeClock{now: testEpoch}
	return NewServiceWithClock(clock.Now)
}

func reading(temp, hum float64) model.Reading {
	return model.Reading{Temperature: temp, Humidity: hum, Timestamp: testEpoch}
}

func TestNewService_Defaults(t *testing.T) {
	s := newTestService()
	st := s.Current()

	assert.Equal(t, 24.0, st.Reading.Temperature)
	assert.Equal(t, 65.0, st.Reading.Humidity)
	assert.Equal(t, model.StatusNormal, st.Status)
	assert.Equal(t, model.Lights{Green: true}, st.Lights)
	assert.Equal(t, "Green LED on", st.LightsLabel)
	assert.False(t, st.ManualLights)
	assert.Equal(t, 0, s.HistoryLen())
}

func TestApplyReading_Scenarios(t *testing.T) {
	tests := []struct {
		name           string
		temperature    float64
		expectedStatus model.Status
		expectedLights model.Lights
	}{
		{"cold reading", 21.5, model.StatusCold, model.Lights{Yellow: true}},
		{"upper boundary is normal", 25.0, model.StatusNormal, model.Lights{Green: true}},
		{"lower boundary is normal", 22.0, model.StatusNormal, model.Lights{Green: true}},
		{"hot reading", 30.0, model.StatusHot, model.Lights{Red: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestService()
			before := s.HistoryLen()

			st := s.ApplyReading(reading(tt.temperature, 60))

			assert.Equal(t, tt.expectedStatus, st.Status)
			assert.Equal(t, tt.expectedLights, st.Lights)
			assert.Equal(t, tt.temperature, st.Reading.Temperature)
			assert.Equal(t, 60.0, st.Reading.Humidity)
			assert.Equal(t, before+1, s.HistoryLen())
			assert.Equal(t, st, s.Current())

			entries := s.History()
			last := entries[len(entries)-1]
			assert.Equal(t, tt.temperature, last.Temperature)
			assert.Equal(t, tt.expectedStatus, last.Status)
		})
	}
}

func TestApplyReading_HistoryBounded(t *testing.T) {
	s := newTestService()
	for i := 0; i < 52; i++ {
		s.ApplyReading(reading(20.0+float64(i)*0.1, 60))
	}

	entries := s.History()
	require.Len(t, entries, history.Capacity)
	assert.InDelta(t, 20.2, entries[0].Temperature, 1e-9, "the two oldest readings should be gone")
	assert.InDelta(t, 25.1, entries[len(entries)-1].Temperature, 1e-9)
	for i := 1; i < len(entries); i++ {
		assert.Greater(t, entries[i].Temperature, entries[i-1].Temperature)
	}
}

func TestApplyManualLights(t *testing.T) {
	s := newTestService()
	s.ApplyReading(reading(23.0, 55))
	before := s.Current()
	historyBefore := s.History()

	pattern := model.Lights{Red: true, Green: true, Yellow: false}
	st := s.ApplyManualLights(pattern)

	assert.Equal(t, pattern, st.Lights)
	assert.Equal(t, "Red and Green LEDs on", st.LightsLabel)
	assert.True(t, st.ManualLights)
	assert.Equal(t, before.Reading, st.Reading)
	assert.Equal(t, before.Status, st.Status)
	assert.Equal(t, historyBefore, s.History())
}

func TestApplyManualLights_AcceptsAnyCombination(t *testing.T) {
	s := newTestService()

	st := s.ApplyManualLights(model.Lights{Red: true, Green: true, Yellow: true})
	assert.Equal(t, "All LEDs on", st.LightsLabel)

	st = s.ApplyManualLights(model.Lights{})
	assert.Equal(t, "All LEDs off", st.LightsLabel)
	assert.Equal(t, 0, st.Lights.Active())
	assert.Equal(t, model.StatusNormal, st.Status, "status is not recomputed from lights")
}

func TestApplyManualLights_DivergencePreservedUntilNextReading(t *testing.T) {
	s := newTestService()
	s.ApplyReading(reading(30.0, 60))
	s.ApplyManualLights(model.Lights{Yellow: true})

	st := s.Current()
	assert.Equal(t, model.StatusHot, st.Status)
	assert.Equal(t, model.Lights{Yellow: true}, st.Lights)

	st = s.ApplyReading(reading(30.5, 60))
	assert.Equal(t, model.Lights{Red: true}, st.Lights)
	assert.False(t, st.ManualLights)
}

func TestSetManualReading(t *testing.T) {
	s := newTestService()

	st := s.SetManualReading(19.5, 45)

	assert.Equal(t, model.StatusCold, st.Status)
	assert.Equal(t, model.Lights{Yellow: true}, st.Lights)
	assert.Equal(t, 1, s.HistoryLen())
	assert.False(t, st.Reading.Timestamp.IsZero())
}

func TestSetManualReading_OutOfRangeIsClassified(t *testing.T) {
	s := newTestService()

	assert.Equal(t, model.StatusHot, s.SetManualReading(150, 0).Status)
	assert.Equal(t, model.StatusCold, s.SetManualReading(-40, 120).Status)
	assert.Equal(t, 2, s.HistoryLen())
}

func TestClearHistory(t *testing.T) {
	s := newTestService()
	s.ApplyReading(reading(21.0, 60))
	s.ApplyReading(reading(26.0, 61))
	before := s.Current()

	s.ClearHistory()

	assert.Equal(t, 0, s.HistoryLen())
	assert.Empty(t, s.History())
	assert.Equal(t, before, s.Current())
}

func TestStats(t *testing.T) {
	s := newTestService()

	_, ok := s.Stats()
	assert.False(t, ok)

	s.ApplyReading(reading(20.0, 50))
	s.ApplyReading(reading(26.0, 70))

	stats, ok := s.Stats()
	require.True(t, ok)
	assert.Equal(t, 2, stats.Count)
	assert.InDelta(t, 23.0, stats.Temperature.Mean, 1e-9)
	assert.Equal(t, 26.0, stats.Temperature.Max)
	assert.Equal(t, 20.0, stats.Temperature.Min)
	assert.InDelta(t, 60.0, stats.Humidity.Mean, 1e-9)
}

func TestSince(t *testing.T) {
	s := newTestService()
	s.ApplyReading(reading(23.0, 60))

	// the fake clock moves one second per read
	assert.Equal(t, time.Second, s.Since())
}

func TestHistory_ReturnsCopy(t *testing.T) {
	s := newTestService()
	s.ApplyReading(reading(23.0, 60))

	entries := s.History()
	entries[0].Temperature = 99

	assert.Equal(t, 23.0, s.History()[0].Temperature)
}

func TestConcurrentUpdates_StateStaysConsistent(t *testing.T) {
	s := NewService()
	var wg sync.WaitGroup

	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for j := 0; j < 200; j++ {
				if j%3 == 0 {
					s.ApplyManualLights(model.Lights{Red: i%2 == 0, Yellow: true})
				} else {
					s.ApplyReading(reading(18.0+float64(j%15), 60))
				}
			}
		}(i)
	}

	wg.Add(1)
	go func() {
		defer wg.Done()
		for j := 0; j < 500; j++ {
			st := s.Current()
			expected := classifyForTest(st.Reading.Temperature)
			assert.Equal(t, expected, st.Status)
			assert.LessOrEqual(t, len(s.History()), history.Capacity)
		}
	}()

	wg.Wait()
}

func classifyForTest(temp float64) model.Status {
	switch {
	case temp < 22:
		return model.StatusCold
	case temp > 25:
		return model.StatusHot
	default:
		return model.StatusNormal
	}
}
