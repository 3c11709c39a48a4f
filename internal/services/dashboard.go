package services

import "alfredoptarigan/ats-resume-checker/internal/models"

const (
	BandLow    = "low"
	BandMedium = "medium"
	BandHigh   = "high"
)

var barColors = []string{"orange", "green", "red", "blue", "purple"}

var gaugeSteps = []models.GaugeStep{
	{From: 0, To: 50, Color: "lightgray"},
	{From: 50, To: 75, Color: "lightyellow"},
	{From: 75, To: 100, Color: "lightgreen"},
}

// BuildDashboard renders the session analytics as chart-ready data. The
// dashboard is hidden while every value is still zero.
func BuildDashboard(analytics *models.Analytics) models.Dashboard {
	snapshot := analytics.Snapshot()
	metrics := snapshot.Metrics()

	bars := make([]models.Bar, len(metrics))
	for i, m := range metrics {
		bars[i] = models.Bar{Label: m.Label, Value: m.Value, Color: barColors[i]}
	}

	return models.Dashboard{
		Visible: !snapshot.IsZero(),
		Metrics: metrics,
		Bars:    bars,
		Gauge: models.Gauge{
			Title: "Resume Match %",
			Value: snapshot.MatchPercentage,
			Band:  MatchBand(snapshot.MatchPercentage),
			Steps: append([]models.GaugeStep(nil), gaugeSteps...),
		},
	}
}

// MatchBand classifies a match percentage: [0,50) low, [50,75) medium,
// [75,100] high.
func MatchBand(percentage int) string {
	switch {
	case percentage >= 75:
		return BandHigh
	case percentage >= 50:
		return BandMedium
	default:
		return BandLow
	}
}
