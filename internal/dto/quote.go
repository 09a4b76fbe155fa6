package dto

// Market states reported by the provider.
const (
	MarketStatePre     = "PRE"
	MarketStateRegular = "REGULAR"
	MarketStatePost    = "POST"
	MarketStateClosed  = "CLOSED"
	MarketStateUnknown = "UNKNOWN"
)

// QuoteSnapshot holds the live quote fields for one ticker at query time.
// The provider omits fields freely, so everything except the ticker itself
// is optional. LastTradeTime carries whatever the provider sent; unix
// seconds when well formed, but the format is not guaranteed.
type QuoteSnapshot struct {
	Ticker        string      `json:"ticker"`
	MarketState   string      `json:"market_state"`
	LastTradeTime interface{} `json:"last_trade_time,omitempty"`
	Price         *float64    `json:"price,omitempty"`
	Volume        *int64      `json:"volume,omitempty"`
	Week52High    *float64    `json:"week_52_high,omitempty"`
}

// Yahoo Finance quote API response
type YahooQuoteResponse struct {
	QuoteResponse struct {
		Result []struct {
			Symbol              string      `json:"symbol"`
			MarketState         string      `json:"marketState"`
			RegularMarketTime   interface{} `json:"regularMarketTime"`
			RegularMarketPrice  *float64    `json:"regularMarketPrice"`
			RegularMarketVolume *int64      `json:"regularMarketVolume"`
			FiftyTwoWeekHigh    *float64    `json:"fiftyTwoWeekHigh"`
		} `json:"result"`
		Error interface{} `json:"error"`
	} `json:"quoteResponse"`
}
