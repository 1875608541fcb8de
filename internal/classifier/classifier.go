package classifier

import (
	"strings"
	"time"

	"github.com/thatsimonsguy/sensor-dashboard/internal/model"
)

const (
	ColdBelow = 22.0
	HotAbove  = 25.0
)

// Classify maps a temperature to its status and primary light. Both thresholds
// are inclusive of normal.
func Classify(temperature float64) (model.Status, model.Lights) {
	switch {
	case temperature < ColdBelow:
		return model.StatusCold, model.Lights{Yellow: true}
	case temperature > HotAbove:
		return model.StatusHot, model.Lights{Red: true}
	default:
		return model.StatusNormal, model.Lights{Green: true}
	}
}

// LightsLabel returns the human-readable description shown next to the indicator.
func LightsLabel(l model.Lights) string {
	var on []string
	if l.Red {
		on = append(on, "Red")
	}
	if l.Green {
		on = append(on, "Green")
	}
	if l.Yellow {
		on = append(on, "Yellow")
	}

	switch len(on) {
	case 0:
		return "All LEDs off"
	case 1:
		return on[0] + " LED on"
	case 3:
		return "All LEDs on"
	default:
		return strings.Join(on, " and ") + " LEDs on"
	}
}

func HumidityLevel(humidity float64) string {
	switch {
	case humidity < 40:
		return "low"
	case humidity < 70:
		return "normal"
	default:
		return "high"
	}
}

// Freshness buckets the age of the last update the way the dashboard colours it.
func Freshness(age time.Duration) string {
	switch {
	case age < 5*time.Second:
		return "just now"
	case age < 30*time.Second:
		return "recent"
	default:
		return "stale"
	}
}
