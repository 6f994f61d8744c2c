package repository

import (
	"context"
	"fmt"
	"iter"
	"strings"
	"time"

	"github.com/epeers/preflists/internal/database"
	"github.com/epeers/preflists/internal/models"
	"github.com/epeers/preflists/internal/util"
)

// ListChangeRepository handles the list change fact table and the point
// queries built on it
type ListChangeRepository struct {
	db   *database.DB
	keys KeyResolver
}

// NewListChangeRepository creates a new ListChangeRepository
func NewListChangeRepository(db *database.DB, keys KeyResolver) *ListChangeRepository {
	return &ListChangeRepository{db: db, keys: keys}
}

// InsertListChange records one list change. The security, list and event tickers are
// all resolved before anything is written.
func (r *ListChangeRepository) InsertListChange(ctx context.Context, c models.NewListChange) error {
	err := r.db.WithWriteLock(func() error {
		securityID, err := r.keys.SecurityID(ctx, c.SecurityTicker)
		if err != nil {
			return err
		}
		listID, err := r.keys.ListID(ctx, c.ListTicker)
		if err != nil {
			return err
		}
		eventID, err := r.keys.EventID(ctx, c.EventTicker)
		if err != nil {
			return err
		}

		query := r.db.Rebind(`
			INSERT INTO list_changes (security_id, list_id, event_id, date_epoch, note)
			VALUES (?, ?, ?, ?, ?)
		`)
		_, err = r.db.ExecContext(ctx, query, securityID, listID, eventID, c.Timestamp, c.Note)
		return database.ClassifyError(err, c.SecurityTicker+"/"+c.ListTicker)
	})
	if err != nil {
		return fmt.Errorf("failed to insert list change %s %s %s: %w", c.SecurityTicker, c.ListTicker, c.EventTicker, err)
	}
	return nil
}

// SecurityHistory returns every change for a security across all lists,
// grouped by list ticker and newest first within a list
func (r *ListChangeRepository) SecurityHistory(ctx context.Context, ticker string) ([]models.SecurityHistoryResult, error) {
	query := r.db.Rebind(`
		SELECT l.name AS list_name, e.name AS event_name, lc.date_epoch AS event_timestamp,
		       l.ticker AS list_ticker, lc.note
		FROM list_changes lc
		JOIN securities s ON s.security_id = lc.security_id
		JOIN lists l ON l.list_id = lc.list_id
		JOIN list_change_events e ON e.event_id = lc.event_id
		WHERE s.ticker = ?
		ORDER BY l.ticker ASC, lc.date_epoch DESC, lc.list_change_id DESC
	`)
	var results []models.SecurityHistoryResult
	if err := r.db.SelectContext(ctx, &results, query, ticker); err != nil {
		return nil, fmt.Errorf("failed to query security history: %w", err)
	}
	return results, nil
}

// PointsInWindow sums raw event values per security for changes newer than
// now minus thresholdDays. Results are ordered by total descending, then
// ticker.
func (r *ListChangeRepository) PointsInWindow(ctx context.Context, now time.Time, thresholdDays int, tickerFilter *string) ([]models.PointsResult, error) {
	var sb strings.Builder
	sb.WriteString(`
		SELECT s.name, s.ticker, s.ir_website, SUM(e.value) AS total_points
		FROM list_changes lc
		JOIN securities s ON s.security_id = lc.security_id
		JOIN list_change_events e ON e.event_id = lc.event_id
		WHERE lc.date_epoch > ?`)
	args := []any{now.Unix() - util.DaysToSeconds(thresholdDays)}
	if tickerFilter != nil {
		sb.WriteString(` AND s.ticker = ?`)
		args = append(args, *tickerFilter)
	}
	sb.WriteString(`
		GROUP BY s.security_id, s.name, s.ticker, s.ir_website
		ORDER BY total_points DESC, s.ticker ASC`)

	var results []models.PointsResult
	if err := r.db.SelectContext(ctx, &results, r.db.Rebind(sb.String()), args...); err != nil {
		return nil, fmt.Errorf("failed to query points: %w", err)
	}
	return results, nil
}

// TimeWeightedPointsInWindow returns one row per change in the window
// (now - thresholdDays, now], ordered by ticker so rows for one security are
// contiguous. The sequence is lazy: the query runs each time it is ranged
// over, and holds the store connection until iteration stops.
//
// An unknown countryFilter fails immediately with a *LookupError.
func (r *ListChangeRepository) TimeWeightedPointsInWindow(ctx context.Context, now time.Time, thresholdDays int, tickerFilter, countryFilter *string) (iter.Seq2[models.TimeWeightedPointsResult, error], models.DecayWindow, error) {
	window := models.DecayWindow{Now: now.Unix(), WindowSeconds: util.DaysToSeconds(thresholdDays)}

	var sb strings.Builder
	sb.WriteString(`
		SELECT s.name, s.ticker, e.value AS event_value, lc.date_epoch AS event_timestamp
		FROM list_changes lc
		JOIN securities s ON s.security_id = lc.security_id
		JOIN list_change_events e ON e.event_id = lc.event_id
		WHERE lc.date_epoch > ? AND lc.date_epoch <= ?`)
	args := []any{window.Now - window.WindowSeconds, window.Now}
	if tickerFilter != nil {
		sb.WriteString(` AND s.ticker = ?`)
		args = append(args, *tickerFilter)
	}
	if countryFilter != nil {
		countryID, err := r.keys.CountryID(ctx, *countryFilter)
		if err != nil {
			return nil, window, fmt.Errorf("failed to resolve country filter: %w", err)
		}
		sb.WriteString(` AND s.country_id = ?`)
		args = append(args, countryID)
	}
	sb.WriteString(`
		ORDER BY s.ticker ASC, lc.date_epoch ASC, lc.list_change_id ASC`)
	query := r.db.Rebind(sb.String())

	seq := func(yield func(models.TimeWeightedPointsResult, error) bool) {
		var zero models.TimeWeightedPointsResult

		rows, err := r.db.QueryxContext(ctx, query, args...)
		if err != nil {
			yield(zero, fmt.Errorf("failed to query time weighted points: %w", err))
			return
		}
		defer rows.Close()

		for rows.Next() {
			var row models.TimeWeightedPointsResult
			if err := rows.StructScan(&row); err != nil {
				yield(zero, fmt.Errorf("failed to scan time weighted points: %w", err))
				return
			}
			if !yield(row, nil) {
				return
			}
		}
		if err := rows.Err(); err != nil {
			yield(zero, fmt.Errorf("failed to iterate time weighted points: %w", err))
		}
	}
	return seq, window, nil
}
