package repository

import (
	"context"
	"fmt"

	"github.com/epeers/preflists/internal/database"
	"github.com/epeers/preflists/internal/models"
)

// CatalogRepository handles the reference tables: weights, countries,
// currencies, lists and list change events
type CatalogRepository struct {
	db   *database.DB
	keys KeyResolver
}

// NewCatalogRepository creates a new CatalogRepository
func NewCatalogRepository(db *database.DB, keys KeyResolver) *CatalogRepository {
	return &CatalogRepository{db: db, keys: keys}
}

// LoadCatalog reads every reference table in one pass
func (r *CatalogRepository) LoadCatalog(ctx context.Context) (*models.CatalogSnapshot, error) {
	snap := &models.CatalogSnapshot{}

	if err := r.db.SelectContext(ctx, &snap.Weights,
		`SELECT weight_id, name FROM weights ORDER BY weight_id`); err != nil {
		return nil, fmt.Errorf("failed to query weights: %w", err)
	}
	if err := r.db.SelectContext(ctx, &snap.Countries,
		`SELECT country_id, ticker, name, weight_id FROM countries ORDER BY country_id`); err != nil {
		return nil, fmt.Errorf("failed to query countries: %w", err)
	}
	if err := r.db.SelectContext(ctx, &snap.Currencies,
		`SELECT currency_id, ticker, name, weight_id FROM currencies ORDER BY currency_id`); err != nil {
		return nil, fmt.Errorf("failed to query currencies: %w", err)
	}
	if err := r.db.SelectContext(ctx, &snap.Lists,
		`SELECT list_id, ticker, name, weight_id, parent_list_id FROM lists ORDER BY list_id`); err != nil {
		return nil, fmt.Errorf("failed to query lists: %w", err)
	}
	if err := r.db.SelectContext(ctx, &snap.Events,
		`SELECT event_id, ticker, name, value_sign, value FROM list_change_events ORDER BY event_id`); err != nil {
		return nil, fmt.Errorf("failed to query list change events: %w", err)
	}

	return snap, nil
}

// InsertWeight creates a weight and returns its ID
func (r *CatalogRepository) InsertWeight(ctx context.Context, name string) (models.WeightID, error) {
	var id models.WeightID
	err := r.db.WithWriteLock(func() error {
		query := r.db.Rebind(`INSERT INTO weights (name) VALUES (?) RETURNING weight_id`)
		return r.db.QueryRowxContext(ctx, query, name).Scan(&id)
	})
	if err != nil {
		return 0, fmt.Errorf("failed to insert weight: %w", database.ClassifyError(err, name))
	}
	return id, nil
}

// InsertCountry creates a country owning the named weight
func (r *CatalogRepository) InsertCountry(ctx context.Context, ticker, name, weight string) (models.CountryID, error) {
	var id models.CountryID
	err := r.db.WithWriteLock(func() error {
		weightID, err := r.keys.WeightID(ctx, weight)
		if err != nil {
			return err
		}
		query := r.db.Rebind(`INSERT INTO countries (ticker, name, weight_id) VALUES (?, ?, ?) RETURNING country_id`)
		return database.ClassifyError(r.db.QueryRowxContext(ctx, query, ticker, name, weightID).Scan(&id), ticker)
	})
	if err != nil {
		return 0, fmt.Errorf("failed to insert country %s: %w", ticker, err)
	}
	return id, nil
}

// InsertCurrency creates a currency owning the named weight
func (r *CatalogRepository) InsertCurrency(ctx context.Context, ticker, name, weight string) (models.CurrencyID, error) {
	var id models.CurrencyID
	err := r.db.WithWriteLock(func() error {
		weightID, err := r.keys.WeightID(ctx, weight)
		if err != nil {
			return err
		}
		query := r.db.Rebind(`INSERT INTO currencies (ticker, name, weight_id) VALUES (?, ?, ?) RETURNING currency_id`)
		return database.ClassifyError(r.db.QueryRowxContext(ctx, query, ticker, name, weightID).Scan(&id), ticker)
	})
	if err != nil {
		return 0, fmt.Errorf("failed to insert currency %s: %w", ticker, err)
	}
	return id, nil
}

// InsertList creates a preference list. parent is the parent list ticker,
// or "" for a root list.
func (r *CatalogRepository) InsertList(ctx context.Context, ticker, name, weight, parent string) (models.ListID, error) {
	var id models.ListID
	err := r.db.WithWriteLock(func() error {
		weightID, err := r.keys.WeightID(ctx, weight)
		if err != nil {
			return err
		}
		var parentID *models.ListID
		if parent != "" {
			pid, err := r.keys.ListID(ctx, parent)
			if err != nil {
				return err
			}
			parentID = &pid
		}
		query := r.db.Rebind(`
			INSERT INTO lists (ticker, name, weight_id, parent_list_id)
			VALUES (?, ?, ?, ?)
			RETURNING list_id
		`)
		return database.ClassifyError(r.db.QueryRowxContext(ctx, query, ticker, name, weightID, parentID).Scan(&id), ticker)
	})
	if err != nil {
		return 0, fmt.Errorf("failed to insert list %s: %w", ticker, err)
	}
	return id, nil
}

// InsertEvent creates a list change event kind
func (r *CatalogRepository) InsertEvent(ctx context.Context, e models.ListChangeEvent) (models.EventID, error) {
	var id models.EventID
	err := r.db.WithWriteLock(func() error {
		query := r.db.Rebind(`
			INSERT INTO list_change_events (ticker, name, value_sign, value)
			VALUES (?, ?, ?, ?)
			RETURNING event_id
		`)
		return r.db.QueryRowxContext(ctx, query, e.Ticker, e.Name, e.ValueSign, e.Value).Scan(&id)
	})
	if err != nil {
		return 0, fmt.Errorf("failed to insert event %s: %w", e.Ticker, database.ClassifyError(err, e.Ticker))
	}
	return id, nil
}
