package storage

import (
	"database/sql"
	"fmt"
	"time"

	"stock-dashboard/src/logger"
	"stock-dashboard/src/models"

	_ "github.com/lib/pq"
)

// -----------------------------------------------------------------------------

type PostgresStore struct {
	Config *models.MConfig
	DB     *sql.DB
	Logger *logger.Logger
}

// -----------------------------------------------------------------------------

func NewPostgresStore(cfg *models.MConfig, log *logger.Logger) (*PostgresStore, error) {
	return &PostgresStore{
		Config: cfg,
		Logger: log,
	}, nil
}

// -----------------------------------------------------------------------------

func (d *PostgresStore) Initialize() error {
	dsn := d.Config.Storage.DBConnectionString
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return err
	}

	if err := db.Ping(); err != nil {
		return err
	}

	d.DB = db

	query := `
		CREATE TABLE IF NOT EXISTS companies (
			id SERIAL PRIMARY KEY,
			symbol TEXT NOT NULL UNIQUE,
			name TEXT NOT NULL,
			sector TEXT NOT NULL,
			market_cap DOUBLE PRECISION,
			current_price DOUBLE PRECISION,
			last_updated TIMESTAMPTZ
		);
	`
	if _, err := d.DB.Exec(query); err != nil {
		return fmt.Errorf("failed to create companies: %w", err)
	}

	d.Logger.Info("PostgresStore initialized successfully")
	return nil
}

// -----------------------------------------------------------------------------

func (d *PostgresStore) ListCompanies() ([]models.MCompany, error) {
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

func (d *PostgresStore) GetCompany(symbol string) (*models.MCompany, error) {
	row := d.DB.QueryRow(`
		SELECT id, symbol, name, sector, market_cap, current_price, last_updated
		FROM companies
		WHERE symbol = $1
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

func (d *PostgresStore) SeedCompanies(companies []models.MCompany) error {
	if len(companies) == 0 {
		return nil
	}

	tx, err := d.DB.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT INTO companies (symbol, name, sector)
		VALUES ($1, $2, $3)
		ON CONFLICT (symbol) DO NOTHING
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

func (d *PostgresStore) UpdateQuote(symbol string, price float64, marketCap *float64, fetchedAt time.Time) error {
	_, err := d.DB.Exec(`
		UPDATE companies
		SET current_price = $1, market_cap = $2, last_updated = $3
		WHERE symbol = $4
	`, price, nullableFloat(marketCap), fetchedAt.UTC(), symbol)
	return err
}

// -----------------------------------------------------------------------------

func (d *PostgresStore) Close() error {
	if d.DB != nil {
		return d.DB.Close()
	}
	return nil
}
