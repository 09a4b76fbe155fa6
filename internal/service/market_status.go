package service

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"stockdash/internal/dto"
)

// A trade within this window of now still counts as a live market when the
// provider's market state is missing or unrecognized.
const liveTradeWindow = 300 * time.Second

// Classify maps a live quote snapshot to a status report. It is total over
// well-formed snapshots: every fallback, including garbage timestamp data,
// is a valid return value. Provider failures never reach this function;
// the caller maps those to StatusUnavailable.
func Classify(snapshot dto.QuoteSnapshot, now time.Time) dto.StatusReport {
	state := snapshot.MarketState
	if state == "" {
		state = dto.MarketStateUnknown
	}

	switch state {
	case dto.MarketStatePre, dto.MarketStateRegular, dto.MarketStatePost:
		return dto.NewStatusReport("Market is LIVE", dto.SeverityLive)
	case dto.MarketStateClosed:
		return dto.NewStatusReport("Market is CLOSED", dto.SeverityClosed)
	}

	if snapshot.LastTradeTime != nil {
		tradeTime, ok := parseUnixSeconds(snapshot.LastTradeTime)
		if !ok {
			return dto.NewStatusReport(
				fmt.Sprintf("Status: %s (Time data format error)", state),
				dto.SeverityUnknown,
			)
		}
		if now.Sub(tradeTime) < liveTradeWindow {
			return dto.NewStatusReport(
				fmt.Sprintf("Market is LIVE (Updated %s)", tradeTime.In(now.Location()).Format("15:04:05")),
				dto.SeverityLive,
			)
		}
	}

	return dto.NewStatusReport(fmt.Sprintf("Status: %s", state), dto.SeverityUnknown)
}

// StatusUnavailable is the report for a failed snapshot fetch.
func StatusUnavailable() dto.StatusReport {
	return dto.NewStatusReport("Could not check market status", dto.SeverityError)
}

// parseUnixSeconds interprets a loosely-typed provider timestamp as unix
// seconds. JSON decoding hands over float64 or json.Number; anything else
// is treated as malformed.
func parseUnixSeconds(value interface{}) (time.Time, bool) {
	switch v := value.(type) {
	case int64:
		return time.Unix(v, 0), true
	case int:
		return time.Unix(int64(v), 0), true
	case float64:
		return time.Unix(int64(v), 0), true
	case json.Number:
		n, err := v.Int64()
		if err != nil {
			return time.Time{}, false
		}
		return time.Unix(n, 0), true
	case string:
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return time.Time{}, false
		}
		return time.Unix(n, 0), true
	default:
		return time.Time{}, false
	}
}
