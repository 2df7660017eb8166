package interfaces

import (
	"time"

	"stock-dashboard/src/models"
)

// -----------------------------------------------------------------------------
// ICompanyStore defines the contract for the companies reference table.
// -----------------------------------------------------------------------------

type ICompanyStore interface {

	// -----------------------------------------------------------------------------

	// Initialize sets up the database schema and tables.
	Initialize() error

	// -----------------------------------------------------------------------------

	// ListCompanies returns all rows in insertion order.
	ListCompanies() ([]models.MCompany, error)

	// -----------------------------------------------------------------------------

	// GetCompany returns the row for an uppercase symbol, or nil when absent.
	GetCompany(symbol string) (*models.MCompany, error)

	// -----------------------------------------------------------------------------

	// SeedCompanies inserts the seed list. Rows whose symbol already exists
	// are skipped, so seeding is idempotent under concurrent first reads.
	SeedCompanies(companies []models.MCompany) error

	// -----------------------------------------------------------------------------

	// UpdateQuote overwrites price, market cap and fetch timestamp for a symbol.
	UpdateQuote(symbol string, price float64, marketCap *float64, fetchedAt time.Time) error

	// -----------------------------------------------------------------------------

	// Close the database connection
	Close() error
}
