package service

import "errors"

// Closed set of request-level failures surfaced to the delivery layer.
// Anything the provider throws is collapsed into ErrProviderFailure after
// logging; the distinction that matters to the user is which of these
// kinds they hit, not the transport detail.
var (
	ErrInvalidDateRange = errors.New("start date must be before end date")
	ErrUnknownTicker    = errors.New("ticker is not in the selectable list")
	ErrNoData           = errors.New("no data found for this ticker in the selected date range")
	ErrProviderFailure  = errors.New("market data provider request failed")
)
