package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"stockdash/internal/dto"
)

func TestClassify_MarketStates(t *testing.T) {
	now := time.Date(2024, 6, 3, 15, 0, 0, 0, time.UTC)

	tests := []struct {
		name         string
		snapshot     dto.QuoteSnapshot
		wantMessage  string
		wantSeverity dto.Severity
	}{
		{
			name:         "pre market is live",
			snapshot:     dto.QuoteSnapshot{MarketState: dto.MarketStatePre},
			wantMessage:  "Market is LIVE",
			wantSeverity: dto.SeverityLive,
		},
		{
			name:         "regular session is live",
			snapshot:     dto.QuoteSnapshot{MarketState: dto.MarketStateRegular},
			wantMessage:  "Market is LIVE",
			wantSeverity: dto.SeverityLive,
		},
		{
			name:         "post market is live",
			snapshot:     dto.QuoteSnapshot{MarketState: dto.MarketStatePost},
			wantMessage:  "Market is LIVE",
			wantSeverity: dto.SeverityLive,
		},
		{
			name: "live state wins over a stale timestamp",
			snapshot: dto.QuoteSnapshot{
				MarketState:   dto.MarketStateRegular,
				LastTradeTime: float64(now.Add(-24 * time.Hour).Unix()),
			},
			wantMessage:  "Market is LIVE",
			wantSeverity: dto.SeverityLive,
		},
		{
			name:         "closed state",
			snapshot:     dto.QuoteSnapshot{MarketState: dto.MarketStateClosed},
			wantMessage:  "Market is CLOSED",
			wantSeverity: dto.SeverityClosed,
		},
		{
			name:         "missing state without timestamp",
			snapshot:     dto.QuoteSnapshot{},
			wantMessage:  "Status: UNKNOWN",
			wantSeverity: dto.SeverityUnknown,
		},
		{
			name:         "unrecognized state without timestamp",
			snapshot:     dto.QuoteSnapshot{MarketState: "POSTPOST"},
			wantMessage:  "Status: POSTPOST",
			wantSeverity: dto.SeverityUnknown,
		},
		{
			name: "unrecognized state with malformed timestamp",
			snapshot: dto.QuoteSnapshot{
				MarketState:   "PREPRE",
				LastTradeTime: map[string]interface{}{"raw": 1717426800},
			},
			wantMessage:  "Status: PREPRE (Time data format error)",
			wantSeverity: dto.SeverityUnknown,
		},
		{
			name: "unrecognized state with non-numeric string timestamp",
			snapshot: dto.QuoteSnapshot{
				MarketState:   "PREPRE",
				LastTradeTime: "yesterday",
			},
			wantMessage:  "Status: PREPRE (Time data format error)",
			wantSeverity: dto.SeverityUnknown,
		},
		{
			name: "unrecognized state with stale timestamp",
			snapshot: dto.QuoteSnapshot{
				MarketState:   "PREPRE",
				LastTradeTime: float64(now.Add(-liveTradeWindow).Unix()),
			},
			wantMessage:  "Status: PREPRE",
			wantSeverity: dto.SeverityUnknown,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(tt.snapshot, now)
			assert.Equal(t, tt.wantMessage, got.Message)
			assert.Equal(t, tt.wantSeverity, got.Severity)
			assert.Equal(t, tt.wantSeverity.Color(), got.Color)
		})
	}
}

func TestClassify_FreshTradeIsLive(t *testing.T) {
	now := time.Date(2024, 6, 3, 15, 0, 0, 0, time.UTC)
	tradeTime := now.Add(-2 * time.Minute)

	got := Classify(dto.QuoteSnapshot{
		MarketState:   "PREPRE",
		LastTradeTime: float64(tradeTime.Unix()),
	}, now)

	assert.Equal(t, dto.SeverityLive, got.Severity)
	assert.Equal(t, "Market is LIVE (Updated 14:58:00)", got.Message)
}

func TestClassify_ExactlyAtFreshnessBoundaryIsUnknown(t *testing.T) {
	now := time.Date(2024, 6, 3, 15, 0, 0, 0, time.UTC)

	// 299s old is live, 300s old is not.
	fresh := Classify(dto.QuoteSnapshot{
		MarketState:   "HALTED",
		LastTradeTime: float64(now.Add(-299 * time.Second).Unix()),
	}, now)
	assert.Equal(t, dto.SeverityLive, fresh.Severity)

	stale := Classify(dto.QuoteSnapshot{
		MarketState:   "HALTED",
		LastTradeTime: float64(now.Add(-300 * time.Second).Unix()),
	}, now)
	assert.Equal(t, dto.SeverityUnknown, stale.Severity)
	assert.Equal(t, "Status: HALTED", stale.Message)
}

func TestClassify_AcceptsIntegerAndStringTimestamps(t *testing.T) {
	now := time.Date(2024, 6, 3, 15, 0, 0, 0, time.UTC)
	unix := now.Add(-time.Minute).Unix()

	for _, ts := range []interface{}{unix, int(unix), float64(unix)} {
		got := Classify(dto.QuoteSnapshot{LastTradeTime: ts}, now)
		assert.Equal(t, dto.SeverityLive, got.Severity, "timestamp %v (%T)", ts, ts)
	}
}

func TestStatusUnavailable(t *testing.T) {
	got := StatusUnavailable()
	assert.Equal(t, "Could not check market status", got.Message)
	assert.Equal(t, dto.SeverityError, got.Severity)
	assert.Equal(t, "red", got.Color)
}
