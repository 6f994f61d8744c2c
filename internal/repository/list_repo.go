package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/epeers/preflists/internal/database"
	"github.com/epeers/preflists/internal/models"
)

var ErrListNotFound = errors.New("list not found")

// ListRepository answers read queries about preference lists
type ListRepository struct {
	db *database.DB
}

// NewListRepository creates a new ListRepository
func NewListRepository(db *database.DB) *ListRepository {
	return &ListRepository{db: db}
}

// ListInfo returns the list's name, weight and its parent's weight.
// Root lists have a nil ParentWeight.
func (r *ListRepository) ListInfo(ctx context.Context, ticker string) (*models.ListInfoResult, error) {
	query := r.db.Rebind(`
		SELECT l.name, w.name AS weight, pw.name AS parent_weight
		FROM lists l
		JOIN weights w ON w.weight_id = l.weight_id
		LEFT JOIN lists p ON p.list_id = l.parent_list_id
		LEFT JOIN weights pw ON pw.weight_id = p.weight_id
		WHERE l.ticker = ?
		LIMIT 2
	`)
	var rows []models.ListInfoResult
	if err := r.db.SelectContext(ctx, &rows, query, ticker); err != nil {
		return nil, fmt.Errorf("failed to query list info: %w", err)
	}

	switch len(rows) {
	case 1:
		return &rows[0], nil
	case 0:
		return nil, fmt.Errorf("%w: %w", ErrListNotFound,
			&LookupError{Table: "lists", Column: "ticker", Value: ticker})
	default:
		return nil, &LookupError{Table: "lists", Column: "ticker", Value: ticker, Matches: len(rows)}
	}
}

// ListComponents returns the current members of a list: securities whose
// value signs on this list sum to a positive number. The note is taken from
// the most recent change for the pair.
func (r *ListRepository) ListComponents(ctx context.Context, ticker string) ([]models.ListComponentResult, error) {
	query := r.db.Rebind(`
		SELECT s.name, s.ticker,
		       SUM(e.value_sign) AS net_sign,
		       MAX(lc.date_epoch) AS latest_change,
		       (SELECT n.note FROM list_changes n
		        WHERE n.security_id = s.security_id AND n.list_id = l.list_id
		        ORDER BY n.date_epoch DESC, n.list_change_id DESC
		        LIMIT 1) AS note
		FROM list_changes lc
		JOIN lists l ON l.list_id = lc.list_id
		JOIN securities s ON s.security_id = lc.security_id
		JOIN list_change_events e ON e.event_id = lc.event_id
		WHERE l.ticker = ?
		GROUP BY s.security_id, s.name, s.ticker, l.list_id
		HAVING SUM(e.value_sign) > 0
		ORDER BY s.name ASC
	`)
	var results []models.ListComponentResult
	if err := r.db.SelectContext(ctx, &results, query, ticker); err != nil {
		return nil, fmt.Errorf("failed to query list components: %w", err)
	}
	return results, nil
}

// ChildLists returns the lists whose parent is the given list, by name
func (r *ListRepository) ChildLists(ctx context.Context, parentTicker string) ([]models.PrefList, error) {
	query := r.db.Rebind(`
		SELECT c.list_id, c.ticker, c.name, c.weight_id, c.parent_list_id
		FROM lists c
		JOIN lists p ON p.list_id = c.parent_list_id
		WHERE p.ticker = ?
		ORDER BY c.name ASC
	`)
	var results []models.PrefList
	if err := r.db.SelectContext(ctx, &results, query, parentTicker); err != nil {
		return nil, fmt.Errorf("failed to query child lists: %w", err)
	}
	return results, nil
}

// ListHistory returns every change recorded against a list, newest first
func (r *ListRepository) ListHistory(ctx context.Context, ticker string) ([]models.ListHistoryResult, error) {
	query := r.db.Rebind(`
		SELECT s.name, s.ticker, e.name AS event_name, lc.date_epoch AS event_timestamp
		FROM list_changes lc
		JOIN lists l ON l.list_id = lc.list_id
		JOIN securities s ON s.security_id = lc.security_id
		JOIN list_change_events e ON e.event_id = lc.event_id
		WHERE l.ticker = ?
		ORDER BY lc.date_epoch DESC, lc.list_change_id DESC
	`)
	var results []models.ListHistoryResult
	if err := r.db.SelectContext(ctx, &results, query, ticker); err != nil {
		return nil, fmt.Errorf("failed to query list history: %w", err)
	}
	return results, nil
}
