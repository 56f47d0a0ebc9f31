package predictor

import "skycast/internal/scorer"

// Source identifies which path produced a prediction.
type Source string

const (
	SourceModel      Source = "ml-model"
	SourceStatistics Source = "historical-statistics"
)

// Outcome is the normalized prediction response, built fresh per request.
type Outcome struct {
	Origin           string            `json:"origin"`
	Destination      string            `json:"destination"`
	DayOfWeek        string            `json:"dayOfWeek"`
	TotalFlights     int               `json:"totalFlights"`
	DelayedFlights   int               `json:"delayedFlights"`
	DelayProbability float64           `json:"delayProbability"`
	Confidence       string            `json:"confidence"`
	Source           Source            `json:"source"`
	Message          string            `json:"message"`
	ModelInfo        *scorer.ModelInfo `json:"modelInfo,omitempty"`
}

// Risk-message thresholds, in delay-probability percentage points.
const (
	highRiskThreshold     = 30
	moderateRiskThreshold = 15
)

var dayNames = [...]string{
	1: "Monday", 2: "Tuesday", 3: "Wednesday", 4: "Thursday",
	5: "Friday", 6: "Saturday", 7: "Sunday",
}

// DayName returns the label for a 1..7 day-of-week index.
func DayName(dayOfWeek int) string {
	if dayOfWeek < 1 || dayOfWeek > 7 {
		return ""
	}
	return dayNames[dayOfWeek]
}

// RiskMessage maps a 0-100 delay probability to a human-readable risk note.
func RiskMessage(probability float64) string {
	switch {
	case probability > highRiskThreshold:
		return "High likelihood of delay"
	case probability > moderateRiskThreshold:
		return "Moderate delay risk"
	default:
		return "Low delay risk"
	}
}
