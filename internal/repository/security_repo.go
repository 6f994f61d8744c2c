package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/epeers/preflists/internal/database"
	"github.com/epeers/preflists/internal/models"
)

var ErrSecurityNotFound = errors.New("security not found")

// SecurityRepository handles database operations for securities
type SecurityRepository struct {
	db   *database.DB
	keys KeyResolver
}

// NewSecurityRepository creates a new SecurityRepository
func NewSecurityRepository(db *database.DB, keys KeyResolver) *SecurityRepository {
	return &SecurityRepository{db: db, keys: keys}
}

// InsertSecurity resolves the country and currency tickers and inserts the security.
// Nothing is written when either reference fails to resolve.
func (r *SecurityRepository) InsertSecurity(ctx context.Context, s models.NewSecurity) (models.SecurityID, error) {
	var id models.SecurityID
	err := r.db.WithWriteLock(func() error {
		countryID, err := r.keys.CountryID(ctx, s.Country)
		if err != nil {
			return err
		}
		currencyID, err := r.keys.CurrencyID(ctx, s.Currency)
		if err != nil {
			return err
		}

		query := r.db.Rebind(`
			INSERT INTO securities (name, ticker, country_id, currency_id, ir_website)
			VALUES (?, ?, ?, ?, ?)
			RETURNING security_id
		`)
		err = r.db.QueryRowxContext(ctx, query, s.Name, s.Ticker, countryID, currencyID, s.IRWebsite).Scan(&id)
		return database.ClassifyError(err, s.Ticker)
	})
	if err != nil {
		return 0, fmt.Errorf("failed to insert security %s: %w", s.Ticker, err)
	}
	return id, nil
}

// InsertAltName records an alternate name for an existing security
func (r *SecurityRepository) InsertAltName(ctx context.Context, ticker, altName string) error {
	err := r.db.WithWriteLock(func() error {
		securityID, err := r.keys.SecurityID(ctx, ticker)
		if err != nil {
			return err
		}
		query := r.db.Rebind(`INSERT INTO securities_alt_names (security_id, alt_name) VALUES (?, ?)`)
		_, err = r.db.ExecContext(ctx, query, securityID, altName)
		return database.ClassifyError(err, ticker+"/"+altName)
	})
	if err != nil {
		return fmt.Errorf("failed to insert alternate name for %s: %w", ticker, err)
	}
	return nil
}

// GetByTicker returns the security joined with its country, currency and
// their weights
func (r *SecurityRepository) GetByTicker(ctx context.Context, ticker string) (*models.SecurityResult, error) {
	query := r.db.Rebind(`
		SELECT s.name, co.name AS country, cu.ticker AS currency,
		       cow.name AS country_weight, cuw.name AS currency_weight, s.ir_website
		FROM securities s
		JOIN countries co ON co.country_id = s.country_id
		JOIN currencies cu ON cu.currency_id = s.currency_id
		JOIN weights cow ON cow.weight_id = co.weight_id
		JOIN weights cuw ON cuw.weight_id = cu.weight_id
		WHERE s.ticker = ?
	`)
	var result models.SecurityResult
	err := r.db.GetContext(ctx, &result, query, ticker)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSecurityNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get security: %w", err)
	}
	return &result, nil
}

// SearchByName returns securities whose name contains fragment, case-insensitively
func (r *SecurityRepository) SearchByName(ctx context.Context, fragment string) ([]models.SecurityInfoResult, error) {
	query := r.db.Rebind(`
		SELECT ticker, name, ir_website
		FROM securities
		WHERE LOWER(name) LIKE ?
		ORDER BY name ASC
	`)
	var results []models.SecurityInfoResult
	if err := r.db.SelectContext(ctx, &results, query, "%"+strings.ToLower(fragment)+"%"); err != nil {
		return nil, fmt.Errorf("failed to search securities: %w", err)
	}
	return results, nil
}

// GetAllWithCountry lists every security with its country name, followed by
// one row per alternate name carrying the owning security's ticker
func (r *SecurityRepository) GetAllWithCountry(ctx context.Context) ([]models.SecurityCountryResult, error) {
	query := `
		SELECT s.ticker, s.name, s.ir_website, c.name AS country
		FROM securities s
		JOIN countries c ON c.country_id = s.country_id
		ORDER BY s.ticker
	`
	var results []models.SecurityCountryResult
	if err := r.db.SelectContext(ctx, &results, query); err != nil {
		return nil, fmt.Errorf("failed to query all securities: %w", err)
	}

	altQuery := `
		SELECT s.ticker, a.alt_name AS name, s.ir_website, c.name AS country
		FROM securities s
		JOIN securities_alt_names a ON a.security_id = s.security_id
		JOIN countries c ON c.country_id = s.country_id
		ORDER BY s.ticker, a.alt_name
	`
	var alts []models.SecurityCountryResult
	if err := r.db.SelectContext(ctx, &alts, altQuery); err != nil {
		return nil, fmt.Errorf("failed to query alternate names: %w", err)
	}

	return append(results, alts...), nil
}
