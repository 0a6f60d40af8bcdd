package derive

import (
	"strings"

	"weatherdash.app/models"
)

// DeriveAdvice maps a current reading onto the three lifestyle suggestions.
// condition must be a defined, lowercased keyword (see NormalizeCondition).
// Temperature bands use strict comparisons, so boundary values fall into the
// lower band. Branch order matters and is covered by tests.
func DeriveAdvice(tempC float64, condition string, humidityPct, windSpeedMs float64, aqi int) models.Advice {
	return models.Advice{
		Clothing: clothingAdvice(tempC, condition),
		Activity: activityAdvice(tempC, condition, humidityPct),
		Health:   healthAdvice(tempC, aqi),
	}
}

func clothingAdvice(tempC float64, condition string) string {
	var advice string
	switch {
	case tempC > 30:
		advice = "Light, breathable fabrics. Sun hat and sunglasses recommended."
	case tempC > 20:
		advice = "Light jacket or sweater. Comfortable casual wear."
	case tempC > 10:
		advice = "Warm jacket, long pants, and a light sweater."
	case tempC > 0:
		advice = "Winter coat, scarf, gloves, and warm layers."
	default:
		advice = "Heavy winter coat, warm layers, insulated clothing."
	}

	// Condition-specific clause is appended, never substituted.
	switch {
	case strings.Contains(condition, "rain") || strings.Contains(condition, "shower"):
		advice += " Bring an umbrella and waterproof footwear."
	case strings.Contains(condition, "snow"):
		advice += " Waterproof boots and cold-weather gear."
	case strings.Contains(condition, "storm"):
		advice += " Stay dry with rain gear."
	}

	return advice
}

func activityAdvice(tempC float64, condition string, humidityPct float64) string {
	switch {
	case strings.Contains(condition, "rain") || strings.Contains(condition, "storm"):
		return "Indoor activities recommended. Avoid outdoor exercise."
	case strings.Contains(condition, "snow"):
		return "Winter sports are possible, but take safety precautions."
	case tempC > 30 || tempC < 0:
		return "Limit outdoor activities. Exercise indoors."
	case humidityPct > 80:
		return "High humidity. Plan light activities and stay hydrated."
	default:
		return "Great day for outdoor activities. Enjoy responsibly."
	}
}

// healthAdvice keys on AQI before temperature: polluted air outranks any
// temperature extreme.
func healthAdvice(tempC float64, aqi int) string {
	switch {
	case aqi == 5:
		return "Avoid all outdoor activities. Use air purifier indoors."
	case aqi == 4:
		return "Wear N95 masks if going outside. Avoid prolonged outdoor exposure."
	case aqi == 3:
		return "Sensitive individuals should limit outdoor activities."
	case tempC > 35:
		return "Stay hydrated and avoid sun exposure during peak hours."
	case tempC < -5:
		return "Protect yourself from frostbite. Dress warmly in layers."
	default:
		return "Weather conditions are generally safe. Enjoy your day."
	}
}
