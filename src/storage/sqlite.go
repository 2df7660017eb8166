package storage

import (
	"database/sql"
	"fmt"
	"time"

	"stock-dashboard/src/logger"
	"stock-dashboard/src/models"

	_ "modernc.org/sqlite"
)

// -----------------------------------------------------------------------------

type SQLiteStore struct {
	Config *models.MConfig
	DB     *sql.DB
	Logger *logger.Logger
}

// -----------------------------------------------------------------------------

func NewSQLiteStore(cfg *models.MConfig, log *logger.Logger) (*SQLiteStore, error) {
	return &SQLiteStore{
		Config: cfg,
		Logger: log,
	}, nil
}

// -----------------------------------------------------------------------------

func (d *SQLiteStore) Initialize() error {
	dsn := d.Config.Storage.DBPath

	// Open DB
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return err
	}

	if err := db.Ping(); err != nil {
		return err
	}

	d.DB = db

	// PRAGMA optimizations
	if _, err := db.Exec("PRAGMA journal_mode = WAL;"); err != nil {
		d.Logger.Warning("Failed to set WAL mode: %v", err)
	}
	if _, err := db.Exec("PRAGMA synchronous = NORMAL;"); err != nil {
		d.Logger.Warning("Failed to set synchronous mode: %v", err)
	}

	return d.createTables()
}

// -----------------------------------------------------------------------------

func (d *SQLiteStore) createTables() error {
	// Unlike a drop/recreate scheme, the companies table must survive
	// restarts: quote fetches write back into it.
	query := `
		CREATE TABLE IF NOT EXISTS companies (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			symbol TEXT NOT NULL UNIQUE,
			name TEXT NOT NULL,
			sector TEXT NOT NULL,
			market_cap REAL,
			current_price REAL,
			last_updated TIMESTAMP
		);
	`
	if _, err := d.DB.Exec(query); err != nil {
		return fmt.Errorf("failed to create companies: %w", err)
	}

	return nil
}

// -----------------------------------------------------------------------------

func (d *SQLiteStore) ListCompanies() ([]models.MCompany, error) {
	rows, err := d.DB.Query(`
		SELECT id, symbol, name, sector, market_cap, current_price, last_updated
		FROM companies
		ORDER BY id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanCompanies(rows)
}

// -----------------------------------------------------------------------------

func (d *SQLiteStore) GetCompany(symbol string) (*models.MCompany, error) {
	row := d.DB.QueryRow(`
		SELECT id, symbol, name, sector, market_cap, current_price, last_updated
		FROM companies
		WHERE symbol = ?
	`, symbol)

	company, err := scanCompany(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return company, nil
}

// -----------------------------------------------------------------------------

// SeedCompanies inserts the seed list inside one transaction. The unique
// symbol key makes the insert idempotent, so two concurrent first reads
// cannot produce duplicate rows.
func (d *SQLiteStore) SeedCompanies(companies []models.MCompany) error {
	if len(companies) == 0 {
		return nil
	}

	tx, err := d.DB.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT OR IGNORE INTO companies (symbol, name, sector)
		VALUES (?, ?, ?)
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, c := range companies {
		if _, err := stmt.Exec(c.Symbol, c.Name, c.Sector); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// -----------------------------------------------------------------------------

func (d *SQLiteStore) UpdateQuote(symbol string, price float64, marketCap *float64, fetchedAt time.Time) error {
	_, err := d.DB.Exec(`
		UPDATE companies
		SET current_price = ?, market_cap = ?, last_updated = ?
		WHERE symbol = ?
	`, price, nullableFloat(marketCap), fetchedAt.UTC(), symbol)
	return err
}

// -----------------------------------------------------------------------------

func (d *SQLiteStore) Close() error {
	if d.DB != nil {
		return d.DB.Close()
	}
	return nil
}

// -----------------------------------------------------------------------------
// Row scanning shared with the Postgres backend
// -----------------------------------------------------------------------------

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCompany(row rowScanner) (*models.MCompany, error) {
	var c models.MCompany
	var marketCap, currentPrice sql.NullFloat64
	var lastUpdated sql.NullTime

	if err := row.Scan(&c.ID, &c.Symbol, &c.Name, &c.Sector, &marketCap, &currentPrice, &lastUpdated); err != nil {
		return nil, err
	}

	if marketCap.Valid {
		c.MarketCap = &marketCap.Float64
	}
	if currentPrice.Valid {
		c.CurrentPrice = &currentPrice.Float64
	}
	if lastUpdated.Valid {
		c.LastUpdated = &lastUpdated.Time
	}

	return &c, nil
}

func scanCompanies(rows *sql.Rows) ([]models.MCompany, error) {
	var companies []models.MCompany
	for rows.Next() {
		c, err := scanCompany(rows)
		if err != nil {
			return nil, err
		}
		companies = append(companies, *c)
	}
	return companies, rows.Err()
}

func nullableFloat(v *float64) interface{} {
	if v == nil {
		return nil
	}
	return *v
}
