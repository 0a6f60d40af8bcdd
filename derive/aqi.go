package derive

import "weatherdash.app/models"

// DefaultAQI is assumed while no air pollution reading is available, so the
// health advice falls through to the moderate branch.
const DefaultAQI = 2

// PresentAQI maps an AQI index onto its label, severity class and health
// advice. Out-of-range values get the "Unknown" label but keep the moderate
// severity class; the original display styles unknown readings that way, so
// the mismatch is intentional.
func PresentAQI(aqi int) models.AQIPresentation {
	switch aqi {
	case 1:
		return models.AQIPresentation{
			Label:    "Good",
			Severity: "good",
			Advice:   "Air quality is satisfactory, and air pollution poses little or no risk.",
		}
	case 2:
		return models.AQIPresentation{
			Label:    "Moderate",
			Severity: "moderate",
			Advice:   "Air quality is acceptable; however, for some pollutants there may be a moderate health concern.",
		}
	case 3:
		return models.AQIPresentation{
			Label:    "Poor",
			Severity: "poor",
			Advice:   "Members of sensitive groups should consider limiting prolonged outdoor exertion.",
		}
	case 4:
		return models.AQIPresentation{
			Label:    "Very Poor",
			Severity: "very-poor",
			Advice:   "Everyone may begin to experience health effects; members of sensitive groups may experience more serious health effects.",
		}
	case 5:
		return models.AQIPresentation{
			Label:    "Hazardous",
			Severity: "hazardous",
			Advice:   "Health alert: everyone may experience more serious health effects.",
		}
	default:
		return models.AQIPresentation{
			Label:    "Unknown",
			Severity: "moderate",
			Advice:   "Air quality information is not available.",
		}
	}
}
