package models

// MMockQuoteRecord is one entry of the static mock quote table. The table is
// immutable for the process lifetime and takes unconditional precedence over
// the live provider for the symbols it contains.
type MMockQuoteRecord struct {
	Symbol           string
	CurrentPrice     float64
	PreviousClose    float64
	Volume           int64
	MarketCap        float64
	FiftyTwoWeekHigh float64
	FiftyTwoWeekLow  float64
	TrailingPE       float64
	DividendYield    float64
	Beta             float64
	AvgVolume        int64
	Open             float64
	DayLow           float64
	DayHigh          float64
}
