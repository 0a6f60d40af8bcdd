package derive

import (
	"time"

	"weatherdash.app/models"
)

// ForecastDays is the number of daily slots the dashboard displays.
const ForecastDays = 5

// SelectDailySamples picks up to days representative samples from a 3-hourly
// series, one per calendar day starting at now's day. For each day the first
// sample whose local hour falls in [11,13] wins; failing that, the first
// sample anywhere on that day; days with no samples are omitted, so the
// result may hold fewer than days entries while preserving day order.
//
// Days are matched by day-of-month only, as the original display does. A
// series short enough to cross a month boundary can therefore pair a slot
// with a same-numbered day of the wrong month; the edge case is pinned by a
// test rather than fixed.
func SelectDailySamples(samples []models.ForecastSample, now time.Time, days int) []models.ForecastSample {
	selected := make([]models.ForecastSample, 0, days)

	for i := 0; i < days; i++ {
		targetDay := now.AddDate(0, 0, i).Day()

		if sample, ok := findSample(samples, targetDay, true); ok {
			selected = append(selected, sample)
			continue
		}
		if sample, ok := findSample(samples, targetDay, false); ok {
			selected = append(selected, sample)
		}
	}

	return selected
}

func findSample(samples []models.ForecastSample, day int, noonOnly bool) (models.ForecastSample, bool) {
	for _, sample := range samples {
		if sample.Time.Day() != day {
			continue
		}
		if noonOnly {
			hour := sample.Time.Hour()
			if hour < 11 || hour > 13 {
				continue
			}
		}
		return sample, true
	}
	return models.ForecastSample{}, false
}
