package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stockdash/config"
	"stockdash/internal/dto"
	"stockdash/pkg/cache"
	"stockdash/pkg/logger"
)

func testRepoConfig(chartURL, quoteURL string) *config.Config {
	return &config.Config{
		YahooFinance: config.YahooFinance{
			ChartBaseURL: chartURL,
			QuoteBaseURL: quoteURL,
			Timeout:      5 * time.Second,
		},
		Cache: config.Cache{
			QuoteExpiration:  time.Minute,
			SeriesExpiration: time.Minute,
		},
	}
}

func newHistoryRepo(t *testing.T, baseURL string) HistoryRepository {
	t.Helper()
	log, err := logger.New("error", "console")
	require.NoError(t, err)
	return NewYahooHistoryRepository(testRepoConfig(baseURL, baseURL), cache.NewCache(time.Minute, time.Minute), log)
}

func chartJSON(timestamps []int64, opens, highs, lows, closes []float64, volumes []int64) string {
	body := map[string]interface{}{
		"chart": map[string]interface{}{
			"result": []map[string]interface{}{{
				"meta":      map[string]interface{}{"symbol": "AAPL", "regularMarketPrice": 101.5},
				"timestamp": timestamps,
				"indicators": map[string]interface{}{
					"quote": []map[string]interface{}{{
						"open": opens, "high": highs, "low": lows, "close": closes, "volume": volumes,
					}},
				},
			}},
			"error": nil,
		},
	}
	out, _ := json.Marshal(body)
	return string(out)
}

func seriesParam(ticker string) dto.GetDailySeriesParam {
	return dto.GetDailySeriesParam{
		Ticker: ticker,
		Start:  time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		End:    time.Date(2024, 3, 20, 0, 0, 0, 0, time.UTC),
	}
}

func TestGetDailySeries_DecodesBars(t *testing.T) {
	day1 := time.Date(2024, 3, 18, 14, 30, 0, 0, time.UTC)
	day2 := time.Date(2024, 3, 19, 14, 30, 0, 0, time.UTC)
	day3 := time.Date(2024, 3, 20, 14, 30, 0, 0, time.UTC)

	var gotQuery map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		gotQuery = map[string]string{
			"interval": r.URL.Query().Get("interval"),
			"period1":  r.URL.Query().Get("period1"),
			"period2":  r.URL.Query().Get("period2"),
		}
		assert.Equal(t, "/AAPL", r.URL.Path)
		fmt.Fprint(w, chartJSON(
			[]int64{day1.Unix(), day2.Unix(), day3.Unix()},
			[]float64{10, 11, 0}, // third bar has missing data and is skipped
			[]float64{12, 13, 14},
			[]float64{9, 10, 11},
			[]float64{11, 12, 13},
			[]int64{1000, 2000, 3000},
		))
	}))
	defer srv.Close()

	repo := newHistoryRepo(t, srv.URL)
	param := seriesParam("AAPL")

	series, err := repo.GetDailySeries(context.Background(), param)
	require.NoError(t, err)

	assert.Equal(t, "1d", gotQuery["interval"])
	assert.Equal(t, fmt.Sprintf("%d", param.Start.Unix()), gotQuery["period1"])
	assert.Equal(t, fmt.Sprintf("%d", param.End.Unix()), gotQuery["period2"])

	require.Len(t, series, 2)
	assert.Equal(t, time.Date(2024, 3, 18, 0, 0, 0, 0, time.UTC), series[0].Date)
	assert.Equal(t, time.Date(2024, 3, 19, 0, 0, 0, 0, time.UTC), series[1].Date)
	assert.Equal(t, 11.0, series[0].Close)
	assert.Equal(t, int64(2000), series[1].Volume)
	assert.True(t, series[0].Date.Before(series[1].Date))
}

func TestGetDailySeries_EmptyResultIsNotAnError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"chart":{"result":[],"error":null}}`)
	}))
	defer srv.Close()

	repo := newHistoryRepo(t, srv.URL)

	series, err := repo.GetDailySeries(context.Background(), seriesParam("AAPL"))
	require.NoError(t, err)
	assert.Empty(t, series)
}

func TestGetDailySeries_NonOKStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	repo := newHistoryRepo(t, srv.URL)

	_, err := repo.GetDailySeries(context.Background(), seriesParam("AAPL"))
	assert.Error(t, err)
}

func TestGetDailySeries_ProviderError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"chart":{"result":[],"error":{"code":"Not Found","description":"No data found, symbol may be delisted"}}}`)
	}))
	defer srv.Close()

	repo := newHistoryRepo(t, srv.URL)

	_, err := repo.GetDailySeries(context.Background(), seriesParam("NOPE"))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "yahoo finance chart api error")
}

func TestGetDailySeries_SecondCallServedFromCache(t *testing.T) {
	day := time.Date(2024, 3, 18, 14, 30, 0, 0, time.UTC)
	requests := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		requests++
		fmt.Fprint(w, chartJSON(
			[]int64{day.Unix()},
			[]float64{10}, []float64{12}, []float64{9}, []float64{11}, []int64{1000},
		))
	}))
	defer srv.Close()

	repo := newHistoryRepo(t, srv.URL)
	param := seriesParam("AAPL")

	first, err := repo.GetDailySeries(context.Background(), param)
	require.NoError(t, err)
	second, err := repo.GetDailySeries(context.Background(), param)
	require.NoError(t, err)

	assert.Equal(t, 1, requests)
	assert.Equal(t, first, second)
}
