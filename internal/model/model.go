package model

import "time"

type Status string

const (
	StatusCold   Status = "cold"
	StatusNormal Status = "normal"
	StatusHot    Status = "hot"
)

// Reading is a single temperature/humidity sample. Treat as immutable.
type Reading struct {
	Temperature float64   `json:"temperature"` // °C
	Humidity    float64   `json:"humidity"`    // %
	Timestamp   time.Time `json:"timestamp"`
}

// Lights is the indicator pattern. Automatic classification lights exactly one;
// manual control may set any combination.
type Lights struct {
	Red    bool `json:"red"`
	Green  bool `json:"green"`
	Yellow bool `json:"yellow"`
}

func (l Lights) Active() int {
	n := 0
	for _, on := range []bool{l.Red, l.Green, l.Yellow} {
		if on {
			n++
		}
	}
	return n
}

type HistoryEntry struct {
	Reading
	Status Status `json:"status"`
}

type SensorState struct {
	Reading      Reading   `json:"reading"`
	Status       Status    `json:"status"`
	Lights       Lights    `json:"lights"`
	LightsLabel  string    `json:"lights_label"`
	ManualLights bool      `json:"manual_lights"` // lights set by operator, may disagree with Status
	LastUpdate   time.Time `json:"last_update"`
}
