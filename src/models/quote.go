package models

import "time"

// -----------------------------------------------------------------------------
// Raw quote (source shape) and transformed response shape
// -----------------------------------------------------------------------------

// MQuote is the normalized raw quote returned by any source (mock or live).
// Optional fields are pointers so that "source did not provide it" survives
// the trip to JSON as null instead of a zero.
type MQuote struct {
	Symbol           string
	CurrentPrice     float64
	PreviousClose    float64
	Volume           int64
	MarketCap        *float64
	FiftyTwoWeekHigh *float64
	FiftyTwoWeekLow  *float64
	TrailingPE       *float64
	DividendYield    *float64
}

// -----------------------------------------------------------------------------

// MStockData is the external single-quote response.
type MStockData struct {
	Symbol        string    `json:"symbol"`
	CurrentPrice  float64   `json:"current_price"`
	Change        float64   `json:"change"`
	ChangePercent float64   `json:"change_percent"`
	Volume        int64     `json:"volume"`
	MarketCap     *float64  `json:"market_cap"`
	High52Week    *float64  `json:"high_52_week"`
	Low52Week     *float64  `json:"low_52_week"`
	PERatio       *float64  `json:"pe_ratio"`
	DividendYield *float64  `json:"dividend_yield"`
	LastUpdated   time.Time `json:"last_updated"`
}
