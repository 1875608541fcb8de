package classifier

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/thatsimonsguy/sensor-dashboard/internal/model"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name           string
		temperature    float64
		expectedStatus model.Status
		expectedLights model.Lights
	}{
		{"well below cold threshold", 15.0, model.StatusCold, model.Lights{Yellow: true}},
		{"just below cold threshold", 21.999, model.StatusCold, model.Lights{Yellow: true}},
		{"cold boundary is normal", 22.0, model.StatusNormal, model.Lights{Green: true}},
		{"mid range", 23.7, model.StatusNormal, model.Lights{Green: true}},
		{"hot boundary is normal", 25.0, model.StatusNormal, model.Lights{Green: true}},
		{"just above hot threshold", 25.001, model.StatusHot, model.Lights{Red: true}},
		{"well above hot threshold", 40.0, model.StatusHot, model.Lights{Red: true}},
		{"negative temperature", -10.0, model.StatusCold, model.Lights{Yellow: true}},
		{"very large temperature", math.MaxFloat64, model.StatusHot, model.Lights{Red: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, lights := Classify(tt.temperature)
			assert.Equal(t, tt.expectedStatus, status)
			assert.Equal(t, tt.expectedLights, lights)
			assert.Equal(t, 1, lights.Active(), "automatic classification lights exactly one LED")
		})
	}
}

func TestClassify_Sweep(t *testing.T) {
	for temp := 10.0; temp <= 35.0; temp += 0.05 {
		status, lights := Classify(temp)
		switch {
		case temp < 22.0:
			assert.Equal(t, model.StatusCold, status, "temp %.2f", temp)
			assert.True(t, lights.Yellow)
		case temp > 25.0:
			assert.Equal(t, model.StatusHot, status, "temp %.2f", temp)
			assert.True(t, lights.Red)
		default:
			assert.Equal(t, model.StatusNormal, status, "temp %.2f", temp)
			assert.True(t, lights.Green)
		}
	}
}

func TestLightsLabel(t *testing.T) {
	assert.Equal(t, "Red LED on", LightsLabel(model.Lights{Red: true}))
	assert.Equal(t, "Green LED on", LightsLabel(model.Lights{Green: true}))
	assert.Equal(t, "Yellow LED on", LightsLabel(model.Lights{Yellow: true}))
	assert.Equal(t, "All LEDs on", LightsLabel(model.Lights{Red: true, Green: true, Yellow: true}))
	assert.Equal(t, "All LEDs off", LightsLabel(model.Lights{}))
	assert.Equal(t, "Red and Green LEDs on", LightsLabel(model.Lights{Red: true, Green: true}))
	assert.Equal(t, "Green and Yellow LEDs on", LightsLabel(model.Lights{Green: true, Yellow: true}))
}

func TestHumidityLevel(t *testing.T) {
	assert.Equal(t, "low", HumidityLevel(39.9))
	assert.Equal(t, "normal", HumidityLevel(40))
	assert.Equal(t, "normal", HumidityLevel(69.9))
	assert.Equal(t, "high", HumidityLevel(70))
}

func TestFreshness(t *testing.T) {
	assert.Equal(t, "just now", Freshness(0))
	assert.Equal(t, "just now", Freshness(4*time.Second))
	assert.Equal(t, "recent", Freshness(5*time.Second))
	assert.Equal(t, "recent", Freshness(29*time.Second))
	assert.Equal(t, "stale", Freshness(30*time.Second))
}
