package analysis

import (
	"math"
	"time"

	"stock-dashboard/src/models"
)

// -----------------------------------------------------------------------------

// Round2 rounds to 2 decimal places for external responses.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// -----------------------------------------------------------------------------

// Change computes the absolute and percentage change against the previous
// close. A previous close of zero or less yields a zero percentage.
func Change(current, previousClose float64) (change, changePercent float64) {
	change = current - previousClose
	if previousClose > 0 {
		changePercent = change / previousClose * 100
	}
	return change, changePercent
}

// -----------------------------------------------------------------------------

// TransformQuote derives the external single-quote response from a raw quote
// (live or mock). Optional fields pass through untouched so that absent
// source fields stay null.
func TransformQuote(quote *models.MQuote, now time.Time) models.MStockData {
	change, changePercent := Change(quote.CurrentPrice, quote.PreviousClose)

	return models.MStockData{
		Symbol:        quote.Symbol,
		CurrentPrice:  quote.CurrentPrice,
		Change:        Round2(change),
		ChangePercent: Round2(changePercent),
		Volume:        quote.Volume,
		MarketCap:     quote.MarketCap,
		High52Week:    quote.FiftyTwoWeekHigh,
		Low52Week:     quote.FiftyTwoWeekLow,
		PERatio:       quote.TrailingPE,
		DividendYield: quote.DividendYield,
		LastUpdated:   now,
	}
}
