package history

import "github.com/thatsimonsguy/sensor-dashboard/internal/model"

type Aggregate struct {
	Mean float64 `json:"mean"`
	Max  float64 `json:"max"`
	Min  float64 `json:"min"`
}

type Stats struct {
	Count       int       `json:"count"`
	Temperature Aggregate `json:"temperature"`
	Humidity    Aggregate `json:"humidity"`
}

// Compute returns mean/max/min of temperature and humidity over entries.
// ok is false for an empty slice; callers decide how to present that.
func Compute(entries []model.HistoryEntry) (stats Stats, ok bool) {
	if len(entries) == 0 {
		return Stats{}, false
	}

	first := entries[0]
	stats.Count = len(entries)
	stats.Temperature = Aggregate{Max: first.Temperature, Min: first.Temperature}
	stats.Humidity = Aggregate{Max: first.Humidity, Min: first.Humidity}

	var tempSum, humSum float64
	for _, e := range entries {
		tempSum += e.Temperature
		humSum += e.Humidity
		stats.Temperature.Max = max(stats.Temperature.Max, e.Temperature)
		stats.Temperature.Min = min(stats.Temperature.Min, e.Temperature)
		stats.Humidity.Max = max(stats.Humidity.Max, e.Humidity)
		stats.Humidity.Min = min(stats.Humidity.Min, e.Humidity)
	}
	stats.Temperature.Mean = tempSum / float64(len(entries))
	stats.Humidity.Mean = humSum / float64(len(entries))

	return stats, true
}
