package service

import (
	"time"

	"stockdash/internal/dto"
	"stockdash/pkg/utils"
)

// Predict computes the trailing moving average of the close over the given
// window and projects it one business day past the end of the series. The
// returned series is a fresh copy with the average attached; the caller's
// series is never touched. ok is false when the series is shorter than the
// window, in which case the caller still has the raw series to chart.
func Predict(series dto.PriceSeries, window int) (result *dto.PredictionResult, ok bool) {
	if window <= 0 || len(series) < window {
		return nil, false
	}

	bars := make(dto.MovingAverageSeries, len(series))
	sum := 0.0
	for i, bar := range series {
		bars[i] = dto.MovingAverageBar{PriceBar: bar}

		sum += bar.Close
		if i >= window {
			sum -= series[i-window].Close
		}
		// The average is only defined once a full window has accumulated.
		if i >= window-1 {
			ma := sum / float64(window)
			bars[i].MovingAverage = &ma
		}
	}

	last := series[len(series)-1]
	predicted := *bars[len(bars)-1].MovingAverage

	return &dto.PredictionResult{
		Prediction: dto.Prediction{
			Date:  NextBusinessDay(last.Date),
			Value: predicted,
		},
		Series: bars,
	}, true
}

// NextBusinessDay returns the first weekday strictly after the given date.
// Saturdays and Sundays are skipped; exchange holidays are not, so the
// result can legitimately land on one.
func NextBusinessDay(day time.Time) time.Time {
	next := day.AddDate(0, 0, 1)
	for utils.IsWeekend(next) {
		next = next.AddDate(0, 0, 1)
	}
	return next
}
