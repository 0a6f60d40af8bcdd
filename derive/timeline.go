package derive

import (
	"fmt"
	"math"
	"time"

	"weatherdash.app/models"
)

// ComputeDayProgress derives the sun timeline values for the current reading.
// Progress is clamped to 0 before sunrise and 100 after sunset, and linear in
// between. A degenerate day with sunrise == sunset never divides by zero: it
// reports 0 before the instant and 100 from it onward.
func ComputeDayProgress(sunrise, sunset, now time.Time) models.DayProgress {
	return models.DayProgress{
		Sunrise:   sunrise,
		Sunset:    sunset,
		DayLength: dayLengthLabel(sunrise, sunset),
		Progress:  dayProgressPercent(sunrise, sunset, now),
	}
}

// dayLengthLabel formats sunset-sunrise as whole hours plus rounded minutes.
// Rounding can yield a "m" component of 60 (e.g. 11h 60m for 11h59m40s);
// that is carried over from the original display and left unnormalized.
func dayLengthLabel(sunrise, sunset time.Time) string {
	hours := sunset.Sub(sunrise).Hours()
	wholeHours := int(math.Floor(hours))
	minutes := int(math.Round((hours - float64(wholeHours)) * 60))
	return fmt.Sprintf("%dh %dm", wholeHours, minutes)
}

func dayProgressPercent(sunrise, sunset, now time.Time) float64 {
	length := sunset.Sub(sunrise)
	switch {
	case now.Before(sunrise):
		return 0
	case now.After(sunset):
		return 100
	case length <= 0:
		return 100
	default:
		return float64(now.Sub(sunrise)) / float64(length) * 100
	}
}

// ClockLabel formats an instant as the HH:MM label shown next to the timeline.
func ClockLabel(t time.Time) string {
	return t.Format("15:04")
}
