package models

// MHistoricalSeries carries parallel ordered sequences of daily data points
// (oldest to newest) for one symbol.
type MHistoricalSeries struct {
	Symbol  string    `json:"symbol"`
	Dates   []string  `json:"dates"`
	Prices  []float64 `json:"prices"`
	Volumes []int64   `json:"volumes"`
	Period  string    `json:"period"`
}
