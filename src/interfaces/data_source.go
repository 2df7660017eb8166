package interfaces

import "stock-dashboard/src/models"

// -----------------------------------------------------------------------------
// IQuoteSource interface for fetching stock data from a live provider.
// -----------------------------------------------------------------------------

type IQuoteSource interface {

	// Name returns the unique identifier of the source
	Name() string

	// -----------------------------------------------------------------------------

	// FetchQuote retrieves the current quote for one symbol. A quote without
	// a positive current price is an error, not a result.
	FetchQuote(symbol string) (*models.MQuote, error)

	// -----------------------------------------------------------------------------

	// FetchHistory retrieves daily closes and volumes for a period token
	// (1d, 5d, 1mo, ... max).
	FetchHistory(symbol, period string) (*models.MHistoricalSeries, error)
}
