package service

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"stockdash/config"
	"stockdash/internal/dto"
	"stockdash/internal/repository"
	"stockdash/pkg/logger"
	"stockdash/pkg/utils"
)

type DashboardService interface {
	Tickers() []string
	GetDashboard(ctx context.Context, req dto.DashboardRequest) (*dto.DashboardResponse, error)
}

type dashboardService struct {
	cfg  *config.Config
	log  *logger.Logger
	repo *repository.Repository
	now  func() time.Time
}

func NewDashboardService(cfg *config.Config, log *logger.Logger, repo *repository.Repository) DashboardService {
	return &dashboardService{
		cfg:  cfg,
		log:  log,
		repo: repo,
		now:  time.Now,
	}
}

// Tickers returns the fixed list of selectable symbols.
func (s *dashboardService) Tickers() []string {
	tickers := make([]string, len(s.cfg.Dashboard.Tickers))
	copy(tickers, s.cfg.Dashboard.Tickers)
	return tickers
}

// GetDashboard serves one "Get Data & Predict" action: market status, the
// three scalar metrics, the chart payload with the optional prediction, and
// the raw tail table.
func (s *dashboardService) GetDashboard(ctx context.Context, req dto.DashboardRequest) (*dto.DashboardResponse, error) {
	if !utils.ContainsString(s.cfg.Dashboard.Tickers, req.Ticker) {
		return nil, ErrUnknownTicker
	}

	start, err := utils.ParseDate(req.Start)
	if err != nil {
		return nil, ErrInvalidDateRange
	}
	end, err := utils.ParseDate(req.End)
	if err != nil {
		return nil, ErrInvalidDateRange
	}
	if !start.Before(end) {
		return nil, ErrInvalidDateRange
	}

	// The snapshot and the historical series are independent calls. A
	// snapshot failure only degrades the status line, so its error is
	// captured aside instead of failing the group.
	var (
		snapshot *dto.QuoteSnapshot
		snapErr  error
		series   dto.PriceSeries
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		snapshot, snapErr = s.repo.QuoteRepo.GetSnapshot(gctx, req.Ticker)
		return nil
	})
	g.Go(func() error {
		var seriesErr error
		series, seriesErr = s.repo.HistoryRepo.GetDailySeries(gctx, dto.GetDailySeriesParam{
			Ticker: req.Ticker,
			Start:  start,
			End:    end,
		})
		return seriesErr
	})

	if err := g.Wait(); err != nil {
		s.log.ErrorContext(ctx, "Failed to fetch historical series",
			logger.StringField("ticker", req.Ticker),
			logger.ErrorField(err))
		return nil, ErrProviderFailure
	}

	if len(series) == 0 {
		return nil, ErrNoData
	}

	var status dto.StatusReport
	if snapErr != nil || snapshot == nil {
		if snapErr != nil {
			s.log.WarnContext(ctx, "Failed to fetch quote snapshot",
				logger.StringField("ticker", req.Ticker),
				logger.ErrorField(snapErr))
		}
		status = StatusUnavailable()
	} else {
		status = Classify(*snapshot, s.now())
	}

	window := s.cfg.Dashboard.MovingAverageWindow
	resp := &dto.DashboardResponse{
		Ticker:  req.Ticker,
		Status:  status,
		Metrics: buildMetrics(snapshot, series),
		Window:  window,
		RawTail: series.Tail(s.cfg.Dashboard.RawTableRows),
	}

	if result, ok := Predict(series, window); ok {
		resp.Prediction = &result.Prediction
		resp.Message = fmt.Sprintf("Predicted close for %s: $%.2f (using %d-day moving average)",
			utils.FormatDate(result.Prediction.Date), result.Prediction.Value, window)
		resp.Chart = dto.ChartData{
			Bars:   result.Series,
			Marker: &result.Prediction,
		}
		return resp, nil
	}

	resp.Message = fmt.Sprintf("Not enough data to calculate the %d-day moving average. Need at least %d data points, got %d. Please extend the date range.",
		window, window, len(series))
	resp.Chart = dto.ChartData{Bars: rawChartBars(series)}
	return resp, nil
}

// buildMetrics fills the three scalar metrics, falling back to the last
// close for the current price and to zero for the rest when the snapshot
// does not carry them.
func buildMetrics(snapshot *dto.QuoteSnapshot, series dto.PriceSeries) dto.Metrics {
	var m dto.Metrics

	if last, ok := series.Last(); ok {
		m.CurrentPrice = last.Close
	}

	if snapshot == nil {
		return m
	}
	if snapshot.Price != nil {
		m.CurrentPrice = *snapshot.Price
	}
	if snapshot.Volume != nil {
		m.Volume = *snapshot.Volume
	}
	if snapshot.Week52High != nil {
		m.Week52High = *snapshot.Week52High
	}
	return m
}

// rawChartBars wraps the raw series for the chart payload without a
// moving-average overlay.
func rawChartBars(series dto.PriceSeries) dto.MovingAverageSeries {
	bars := make(dto.MovingAverageSeries, len(series))
	for i, bar := range series {
		bars[i] = dto.MovingAverageBar{PriceBar: bar}
	}
	return bars
}
