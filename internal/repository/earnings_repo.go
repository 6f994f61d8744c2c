package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/epeers/preflists/internal/database"
	"github.com/epeers/preflists/internal/models"
)

var ErrInvalidEarningsSource = errors.New("invalid earnings source")

// earningsTables maps a source to its fact table. Table names are never
// taken from input.
var earningsTables = map[models.EarningsSource]string{
	models.EarningsSourceNative:    "earnings_dates",
	models.EarningsSourceBloomberg: "bloomberg_earnings_dates",
}

// EarningsRepository handles native and Bloomberg earnings dates
type EarningsRepository struct {
	db   *database.DB
	keys KeyResolver
}

// NewEarningsRepository creates a new EarningsRepository
func NewEarningsRepository(db *database.DB, keys KeyResolver) *EarningsRepository {
	return &EarningsRepository{db: db, keys: keys}
}

func earningsTable(source models.EarningsSource) (string, error) {
	table, ok := earningsTables[source]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrInvalidEarningsSource, source)
	}
	return table, nil
}

// Insert records an earnings date in the table for d.Source
func (r *EarningsRepository) Insert(ctx context.Context, d models.NewEarningsDate) error {
	table, err := earningsTable(d.Source)
	if err != nil {
		return err
	}

	err = r.db.WithWriteLock(func() error {
		securityID, err := r.keys.SecurityID(ctx, d.SecurityTicker)
		if err != nil {
			return err
		}
		query := r.db.Rebind(fmt.Sprintf(`INSERT INTO %s (security_id, date_epoch) VALUES (?, ?)`, table))
		_, err = r.db.ExecContext(ctx, query, securityID, d.Timestamp)
		return database.ClassifyError(err, d.SecurityTicker)
	})
	if err != nil {
		return fmt.Errorf("failed to insert %s earnings date for %s: %w", d.Source, d.SecurityTicker, err)
	}
	return nil
}

// InsertEarningsDate records a native earnings date
func (r *EarningsRepository) InsertEarningsDate(ctx context.Context, ticker string, epoch int64) error {
	return r.Insert(ctx, models.NewEarningsDate{SecurityTicker: ticker, Timestamp: epoch, Source: models.EarningsSourceNative})
}

// InsertBloombergEarningsDate records a Bloomberg earnings date
func (r *EarningsRepository) InsertBloombergEarningsDate(ctx context.Context, ticker string, epoch int64) error {
	return r.Insert(ctx, models.NewEarningsDate{SecurityTicker: ticker, Timestamp: epoch, Source: models.EarningsSourceBloomberg})
}

// Dates returns every date of one source for a ticker, newest first
func (r *EarningsRepository) Dates(ctx context.Context, ticker string, source models.EarningsSource) ([]int64, error) {
	table, err := earningsTable(source)
	if err != nil {
		return nil, err
	}
	query := r.db.Rebind(fmt.Sprintf(`
		SELECT d.date_epoch
		FROM %s d
		JOIN securities s ON s.security_id = d.security_id
		WHERE s.ticker = ?
		ORDER BY d.date_epoch DESC
	`, table))
	var dates []int64
	if err := r.db.SelectContext(ctx, &dates, query, ticker); err != nil {
		return nil, fmt.Errorf("failed to query %s earnings dates: %w", source, err)
	}
	return dates, nil
}

// NextDate returns the earliest native date after now, or nil
func (r *EarningsRepository) NextDate(ctx context.Context, ticker string, now time.Time) (*int64, error) {
	query := r.db.Rebind(`
		SELECT MIN(d.date_epoch)
		FROM earnings_dates d
		JOIN securities s ON s.security_id = d.security_id
		WHERE s.ticker = ? AND d.date_epoch > ?
	`)
	return r.optionalEpoch(ctx, query, ticker, now.Unix())
}

// PreviousDate returns the latest native date before now, or nil
func (r *EarningsRepository) PreviousDate(ctx context.Context, ticker string, now time.Time) (*int64, error) {
	query := r.db.Rebind(`
		SELECT MAX(d.date_epoch)
		FROM earnings_dates d
		JOIN securities s ON s.security_id = d.security_id
		WHERE s.ticker = ? AND d.date_epoch < ?
	`)
	return r.optionalEpoch(ctx, query, ticker, now.Unix())
}

// UpcomingBloombergDate returns the earliest Bloomberg date after now, or nil
func (r *EarningsRepository) UpcomingBloombergDate(ctx context.Context, ticker string, now time.Time) (*int64, error) {
	query := r.db.Rebind(`
		SELECT MIN(b.date_epoch)
		FROM bloomberg_earnings_dates b
		JOIN securities s ON s.security_id = b.security_id
		WHERE s.ticker = ? AND b.date_epoch > ?
	`)
	return r.optionalEpoch(ctx, query, ticker, now.Unix())
}

// NewestBloombergDate returns the most recently entered Bloomberg date, which
// is not necessarily the latest one, or nil
func (r *EarningsRepository) NewestBloombergDate(ctx context.Context, ticker string) (*int64, error) {
	query := r.db.Rebind(`
		SELECT b.date_epoch
		FROM bloomberg_earnings_dates b
		JOIN securities s ON s.security_id = b.security_id
		WHERE s.ticker = ?
		ORDER BY b.bloomberg_date_id DESC
		LIMIT 1
	`)
	return r.optionalEpoch(ctx, query, ticker)
}

// InsertEarningsDateIfAbsent records a native earnings date unless ticker
// already has one at epoch, and reports whether a row was added. The check
// and the insert run under the same write lock.
func (r *EarningsRepository) InsertEarningsDateIfAbsent(ctx context.Context, ticker string, epoch int64) (bool, error) {
	added := false
	err := r.db.WithWriteLock(func() error {
		securityID, err := r.keys.SecurityID(ctx, ticker)
		if err != nil {
			return err
		}

		var count int
		query := r.db.Rebind(`SELECT COUNT(*) FROM earnings_dates WHERE security_id = ? AND date_epoch = ?`)
		if err := r.db.GetContext(ctx, &count, query, securityID, epoch); err != nil {
			return fmt.Errorf("failed to check earnings date: %w", err)
		}
		if count > 0 {
			return nil
		}

		query = r.db.Rebind(`INSERT INTO earnings_dates (security_id, date_epoch) VALUES (?, ?)`)
		if _, err := r.db.ExecContext(ctx, query, securityID, epoch); err != nil {
			return database.ClassifyError(err, ticker)
		}
		added = true
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("failed to insert native earnings date for %s: %w", ticker, err)
	}
	return added, nil
}

func (r *EarningsRepository) optionalEpoch(ctx context.Context, query string, args ...any) (*int64, error) {
	var epoch sql.NullInt64
	err := r.db.GetContext(ctx, &epoch, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query earnings date: %w", err)
	}
	if !epoch.Valid {
		return nil, nil
	}
	return &epoch.Int64, nil
}
