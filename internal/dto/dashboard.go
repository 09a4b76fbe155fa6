package dto

import "time"

// Severity classifies a market status report for display.
type Severity string

const (
	SeverityLive    Severity = "live"
	SeverityClosed  Severity = "closed"
	SeverityUnknown Severity = "unknown"
	SeverityError   Severity = "error"
)

// Color returns the display color associated with the severity.
func (s Severity) Color() string {
	switch s {
	case SeverityLive:
		return "green"
	case SeverityUnknown:
		return "orange"
	default:
		return "red"
	}
}

// StatusReport is the human-readable market status for one ticker,
// produced fresh per query and never persisted.
type StatusReport struct {
	Message  string   `json:"message"`
	Severity Severity `json:"severity"`
	Color    string   `json:"color"`
}

func NewStatusReport(message string, severity Severity) StatusReport {
	return StatusReport{
		Message:  message,
		Severity: severity,
		Color:    severity.Color(),
	}
}

// Metrics are the three scalar figures shown above the chart.
type Metrics struct {
	CurrentPrice float64 `json:"current_price"`
	Volume       int64   `json:"volume"`
	Week52High   float64 `json:"week_52_high"`
}

// Prediction is the projected close for the next trading-eligible weekday.
type Prediction struct {
	Date  time.Time `json:"date"`
	Value float64   `json:"value"`
}

// MovingAverageBar is a PriceBar with the trailing moving average of the
// close attached. The average is nil for positions where fewer than the
// window's worth of bars have accumulated.
type MovingAverageBar struct {
	PriceBar
	MovingAverage *float64 `json:"moving_average,omitempty"`
}

type MovingAverageSeries []MovingAverageBar

// PredictionResult pairs the next-day prediction with the augmented series.
type PredictionResult struct {
	Prediction Prediction          `json:"prediction"`
	Series     MovingAverageSeries `json:"series"`
}

// ChartData feeds the combined candlestick + moving-average + volume panel.
// Bars carry a nil moving average when the overlay is unavailable, and the
// marker is present only when a prediction was made.
type ChartData struct {
	Bars   MovingAverageSeries `json:"bars"`
	Marker *Prediction         `json:"marker,omitempty"`
}

type DashboardRequest struct {
	Ticker string `query:"ticker" validate:"required"`
	Start  string `query:"start" validate:"required,datetime=2006-01-02"`
	End    string `query:"end" validate:"required,datetime=2006-01-02"`
}

type DashboardResponse struct {
	Ticker     string       `json:"ticker"`
	Status     StatusReport `json:"status"`
	Metrics    Metrics      `json:"metrics"`
	Window     int          `json:"window"`
	Prediction *Prediction  `json:"prediction,omitempty"`
	Message    string       `json:"message"`
	Chart      ChartData    `json:"chart"`
	RawTail    PriceSeries  `json:"raw_tail"`
}
