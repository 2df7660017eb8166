package models

// -----------------------------------------------------------------------------
// Aggregate view shapes (market summary / comparison / sectors)
// -----------------------------------------------------------------------------

// MStockInfo is one entry of the gainers/losers lists.
type MStockInfo struct {
	Symbol        string  `json:"symbol"`
	CurrentPrice  float64 `json:"current_price"`
	Change        float64 `json:"change"`
	ChangePercent float64 `json:"change_percent"`
	Volume        int64   `json:"volume"`
	MarketCap     float64 `json:"market_cap"`
}

// -----------------------------------------------------------------------------

type MMarketSummary struct {
	TotalMarketCap float64      `json:"total_market_cap"`
	TotalStocks    int          `json:"total_stocks"`
	TopGainers     []MStockInfo `json:"top_gainers"`
	TopLosers      []MStockInfo `json:"top_losers"`
	MarketStatus   string       `json:"market_status"`
	TradingDay     bool         `json:"trading_day"`
}

// -----------------------------------------------------------------------------

// MComparisonEntry extends the summary entry with valuation fields.
type MComparisonEntry struct {
	Symbol        string  `json:"symbol"`
	CurrentPrice  float64 `json:"current_price"`
	Change        float64 `json:"change"`
	ChangePercent float64 `json:"change_percent"`
	Volume        int64   `json:"volume"`
	MarketCap     float64 `json:"market_cap"`
	PERatio       float64 `json:"pe_ratio"`
	DividendYield float64 `json:"dividend_yield"`
	Beta          float64 `json:"beta"`
}

type MComparison struct {
	Stocks         []MComparisonEntry `json:"stocks"`
	ComparisonDate string             `json:"comparison_date"`
}

// -----------------------------------------------------------------------------

type MSectorStock struct {
	Symbol        string  `json:"symbol"`
	Name          string  `json:"name"`
	CurrentPrice  float64 `json:"current_price"`
	ChangePercent float64 `json:"change_percent"`
	MarketCap     float64 `json:"market_cap"`
}

type MSectorSummary struct {
	Stocks           []MSectorStock `json:"stocks"`
	TotalMarketCap   float64        `json:"total_market_cap"`
	AvgChangePercent float64        `json:"avg_change_percent"`
}

type MSectorReport struct {
	Sectors      map[string]*MSectorSummary `json:"sectors"`
	TotalSectors int                        `json:"total_sectors"`
}
