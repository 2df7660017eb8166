package models

import "time"

// MCompany is a row of the persisted companies reference table.
// Symbol is the unique key (stored uppercase); price/cap/timestamp are
// refreshed as a side effect of single-quote fetches.
type MCompany struct {
	ID           int64      `json:"id"`
	Symbol       string     `json:"symbol"`
	Name         string     `json:"name"`
	Sector       string     `json:"sector"`
	MarketCap    *float64   `json:"market_cap"`
	CurrentPrice *float64   `json:"current_price"`
	LastUpdated  *time.Time `json:"last_updated"`
}
