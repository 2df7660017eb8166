package mocktable

import "stock-dashboard/src/models"

// -----------------------------------------------------------------------------
// Static mock quote table
// -----------------------------------------------------------------------------

// Table is an insertion-ordered, read-only quote table. Symbols present here
// are answered without ever touching the live provider; that keeps the well
// known tickers immune to provider throttling at the price of staleness.
type Table struct {
	order   []string
	records map[string]models.MMockQuoteRecord
}

// -----------------------------------------------------------------------------

func New(records []models.MMockQuoteRecord) *Table {
	t := &Table{
		records: make(map[string]models.MMockQuoteRecord, len(records)),
	}
	for _, r := range records {
		if _, exists := t.records[r.Symbol]; !exists {
			t.order = append(t.order, r.Symbol)
		}
		t.records[r.Symbol] = r
	}
	return t
}

// -----------------------------------------------------------------------------

// Lookup returns the record for an uppercase symbol.
func (t *Table) Lookup(symbol string) (models.MMockQuoteRecord, bool) {
	r, ok := t.records[symbol]
	return r, ok
}

// -----------------------------------------------------------------------------

// Contains reports whether the symbol belongs to the mock population.
func (t *Table) Contains(symbol string) bool {
	_, ok := t.records[symbol]
	return ok
}

// -----------------------------------------------------------------------------

// Symbols returns the symbols in insertion order. The slice is a copy.
func (t *Table) Symbols() []string {
	out := make([]string, len(t.order))
	copy(out, t.order)
	return out
}

// -----------------------------------------------------------------------------

func (t *Table) Len() int {
	return len(t.order)
}

// -----------------------------------------------------------------------------

// Quote converts a record into the normalized raw quote shape. All optional
// fields are present for mock symbols (the table carries full fundamentals).
func (t *Table) Quote(symbol string) (*models.MQuote, bool) {
	r, ok := t.records[symbol]
	if !ok {
		return nil, false
	}

	marketCap := r.MarketCap
	high := r.FiftyTwoWeekHigh
	low := r.FiftyTwoWeekLow
	pe := r.TrailingPE
	dy := r.DividendYield

	return &models.MQuote{
		Symbol:           r.Symbol,
		CurrentPrice:     r.CurrentPrice,
		PreviousClose:    r.PreviousClose,
		Volume:           r.Volume,
		MarketCap:        &marketCap,
		FiftyTwoWeekHigh: &high,
		FiftyTwoWeekLow:  &low,
		TrailingPE:       &pe,
		DividendYield:    &dy,
	}, true
}

// -----------------------------------------------------------------------------
// Seed companies
// -----------------------------------------------------------------------------

// SeedCompanies is the fixed list inserted into the reference store on first
// read, in this order.
func SeedCompanies() []models.MCompany {
	return []models.MCompany{
		{Symbol: "AAPL", Name: "Apple Inc.", Sector: "Technology"},
		{Symbol: "MSFT", Name: "Microsoft Corporation", Sector: "Technology"},
		{Symbol: "GOOGL", Name: "Alphabet Inc.", Sector: "Technology"},
		{Symbol: "AMZN", Name: "Amazon.com Inc.", Sector: "Consumer Discretionary"},
		{Symbol: "TSLA", Name: "Tesla Inc.", Sector: "Consumer Discretionary"},
		{Symbol: "META", Name: "Meta Platforms Inc.", Sector: "Technology"},
		{Symbol: "NVDA", Name: "NVIDIA Corporation", Sector: "Technology"},
		{Symbol: "NFLX", Name: "Netflix Inc.", Sector: "Communication Services"},
		{Symbol: "JPM", Name: "JPMorgan Chase & Co.", Sector: "Financial Services"},
		{Symbol: "JNJ", Name: "Johnson & Johnson", Sector: "Healthcare"},
		{Symbol: "V", Name: "Visa Inc.", Sector: "Financial Services"},
		{Symbol: "PG", Name: "Procter & Gamble Co.", Sector: "Consumer Staples"},
		{Symbol: "UNH", Name: "UnitedHealth Group Inc.", Sector: "Healthcare"},
		{Symbol: "HD", Name: "The Home Depot Inc.", Sector: "Consumer Discretionary"},
		{Symbol: "DIS", Name: "The Walt Disney Company", Sector: "Communication Services"},
	}
}

// -----------------------------------------------------------------------------

// Default returns the built-in mock table.
func Default() *Table {
	return New([]models.MMockQuoteRecord{
		{
			Symbol: "AAPL", CurrentPrice: 175.50, PreviousClose: 174.20, Volume: 50000000,
			MarketCap: 2750000000000, FiftyTwoWeekHigh: 198.23, FiftyTwoWeekLow: 124.17,
			TrailingPE: 28.5, DividendYield: 0.005, Beta: 1.29, AvgVolume: 55000000,
			Open: 174.80, DayLow: 173.90, DayHigh: 176.20,
		},
		{
			Symbol: "MSFT", CurrentPrice: 380.25, PreviousClose: 378.90, Volume: 25000000,
			MarketCap: 2820000000000, FiftyTwoWeekHigh: 420.82, FiftyTwoWeekLow: 213.43,
			TrailingPE: 35.2, DividendYield: 0.008, Beta: 0.88, AvgVolume: 28000000,
			Open: 379.10, DayLow: 377.50, DayHigh: 381.80,
		},
		{
			Symbol: "GOOGL", CurrentPrice: 140.80, PreviousClose: 139.50, Volume: 20000000,
			MarketCap: 1780000000000, FiftyTwoWeekHigh: 153.78, FiftyTwoWeekLow: 83.34,
			TrailingPE: 25.8, DividendYield: 0.0, Beta: 1.05, AvgVolume: 22000000,
			Open: 139.80, DayLow: 138.90, DayHigh: 141.50,
		},
		{
			Symbol: "AMZN", CurrentPrice: 145.30, PreviousClose: 144.80, Volume: 35000000,
			MarketCap: 1510000000000, FiftyTwoWeekHigh: 189.77, FiftyTwoWeekLow: 81.43,
			TrailingPE: 60.3, DividendYield: 0.0, Beta: 1.18, AvgVolume: 38000000,
			Open: 145.10, DayLow: 144.20, DayHigh: 146.40,
		},
		{
			Symbol: "TSLA", CurrentPrice: 245.60, PreviousClose: 242.40, Volume: 80000000,
			MarketCap: 780000000000, FiftyTwoWeekHigh: 299.29, FiftyTwoWeekLow: 138.80,
			TrailingPE: 75.2, DividendYield: 0.0, Beta: 2.34, AvgVolume: 85000000,
			Open: 243.20, DayLow: 241.80, DayHigh: 247.90,
		},
		{
			Symbol: "META", CurrentPrice: 320.45, PreviousClose: 318.20, Volume: 15000000,
			MarketCap: 820000000000, FiftyTwoWeekHigh: 485.58, FiftyTwoWeekLow: 88.09,
			TrailingPE: 22.1, DividendYield: 0.0, Beta: 1.21, AvgVolume: 16000000,
			Open: 319.10, DayLow: 317.50, DayHigh: 322.80,
		},
		{
			Symbol: "NVDA", CurrentPrice: 890.20, PreviousClose: 885.60, Volume: 30000000,
			MarketCap: 2200000000000, FiftyTwoWeekHigh: 974.00, FiftyTwoWeekLow: 211.93,
			TrailingPE: 75.8, DividendYield: 0.002, Beta: 1.87, AvgVolume: 32000000,
			Open: 887.50, DayLow: 883.20, DayHigh: 895.40,
		},
		{
			Symbol: "NFLX", CurrentPrice: 580.30, PreviousClose: 575.80, Volume: 8000000,
			MarketCap: 250000000000, FiftyTwoWeekHigh: 639.00, FiftyTwoWeekLow: 162.71,
			TrailingPE: 45.2, DividendYield: 0.0, Beta: 1.42, AvgVolume: 8500000,
			Open: 577.20, DayLow: 574.50, DayHigh: 582.60,
		},
		{
			Symbol: "JPM", CurrentPrice: 180.40, PreviousClose: 179.90, Volume: 12000000,
			MarketCap: 520000000000, FiftyTwoWeekHigh: 200.11, FiftyTwoWeekLow: 120.78,
			TrailingPE: 12.8, DividendYield: 0.024, Beta: 1.12, AvgVolume: 13000000,
			Open: 180.10, DayLow: 179.20, DayHigh: 181.50,
		},
		{
			Symbol: "JNJ", CurrentPrice: 165.70, PreviousClose: 164.80, Volume: 6000000,
			MarketCap: 400000000000, FiftyTwoWeekHigh: 181.88, FiftyTwoWeekLow: 144.95,
			TrailingPE: 16.2, DividendYield: 0.031, Beta: 0.65, AvgVolume: 6500000,
			Open: 165.20, DayLow: 164.50, DayHigh: 166.80,
		},
		{
			Symbol: "V", CurrentPrice: 280.90, PreviousClose: 279.50, Volume: 10000000,
			MarketCap: 570000000000, FiftyTwoWeekHigh: 290.96, FiftyTwoWeekLow: 206.87,
			TrailingPE: 32.1, DividendYield: 0.008, Beta: 0.99, AvgVolume: 11000000,
			Open: 280.20, DayLow: 279.10, DayHigh: 282.40,
		},
		{
			Symbol: "PG", CurrentPrice: 155.20, PreviousClose: 154.60, Volume: 8000000,
			MarketCap: 365000000000, FiftyTwoWeekHigh: 165.22, FiftyTwoWeekLow: 135.83,
			TrailingPE: 24.8, DividendYield: 0.024, Beta: 0.43, AvgVolume: 8500000,
			Open: 154.90, DayLow: 154.20, DayHigh: 156.30,
		},
		{
			Symbol: "UNH", CurrentPrice: 520.80, PreviousClose: 518.40, Volume: 3000000,
			MarketCap: 480000000000, FiftyTwoWeekHigh: 554.70, FiftyTwoWeekLow: 445.27,
			TrailingPE: 20.5, DividendYield: 0.015, Beta: 0.78, AvgVolume: 3200000,
			Open: 519.10, DayLow: 517.80, DayHigh: 522.90,
		},
		{
			Symbol: "HD", CurrentPrice: 380.60, PreviousClose: 378.90, Volume: 5000000,
			MarketCap: 380000000000, FiftyTwoWeekHigh: 415.08, FiftyTwoWeekLow: 274.26,
			TrailingPE: 22.3, DividendYield: 0.025, Beta: 1.05, AvgVolume: 5500000,
			Open: 379.50, DayLow: 377.80, DayHigh: 382.40,
		},
		{
			Symbol: "DIS", CurrentPrice: 85.40, PreviousClose: 84.20, Volume: 15000000,
			MarketCap: 155000000000, FiftyTwoWeekHigh: 118.18, FiftyTwoWeekLow: 78.73,
			TrailingPE: 45.8, DividendYield: 0.0, Beta: 1.35, AvgVolume: 16000000,
			Open: 84.80, DayLow: 83.90, DayHigh: 86.20,
		},
	})
}
