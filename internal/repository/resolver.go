package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/epeers/preflists/internal/database"
	"github.com/epeers/preflists/internal/models"
)

var (
	ErrNotFound       = errors.New("no matching row")
	ErrAmbiguousMatch = errors.New("more than one matching row")
	ErrUnknownLookup  = errors.New("lookup column not allowed")
)

// LookupError reports a natural key that did not resolve to exactly one row.
// It matches ErrNotFound or ErrAmbiguousMatch depending on Matches.
type LookupError struct {
	Table   string
	Column  string
	Value   string
	Matches int
}

func (e *LookupError) Error() string {
	if e.Matches == 0 {
		return fmt.Sprintf("%s: no row with %s = %q", e.Table, e.Column, e.Value)
	}
	return fmt.Sprintf("%s: %d rows with %s = %q", e.Table, e.Matches, e.Column, e.Value)
}

func (e *LookupError) Unwrap() error {
	if e.Matches == 0 {
		return ErrNotFound
	}
	return ErrAmbiguousMatch
}

// lookupTable describes which columns of a table may be used as natural keys.
type lookupTable struct {
	primaryKey string
	columns    map[string]bool
}

// lookupTables whitelists identifiers; they are interpolated into SQL and can
// never come from user input unchecked.
var lookupTables = map[string]lookupTable{
	"weights":              {primaryKey: "weight_id", columns: map[string]bool{"name": true}},
	"countries":            {primaryKey: "country_id", columns: map[string]bool{"ticker": true, "name": true}},
	"currencies":           {primaryKey: "currency_id", columns: map[string]bool{"ticker": true, "name": true}},
	"securities":           {primaryKey: "security_id", columns: map[string]bool{"ticker": true, "name": true}},
	"securities_alt_names": {primaryKey: "alt_name_id", columns: map[string]bool{"alt_name": true}},
	"lists":                {primaryKey: "list_id", columns: map[string]bool{"ticker": true, "name": true}},
	"list_change_events":   {primaryKey: "event_id", columns: map[string]bool{"ticker": true, "name": true}},
}

// KeyResolver translates natural keys into surrogate keys for write paths.
type KeyResolver interface {
	SecurityID(ctx context.Context, ticker string) (models.SecurityID, error)
	ListID(ctx context.Context, ticker string) (models.ListID, error)
	EventID(ctx context.Context, ticker string) (models.EventID, error)
	CountryID(ctx context.Context, ticker string) (models.CountryID, error)
	CurrencyID(ctx context.Context, ticker string) (models.CurrencyID, error)
	WeightID(ctx context.Context, name string) (models.WeightID, error)
}

// Resolver resolves natural keys with a query per lookup.
type Resolver struct {
	db *database.DB
}

// NewResolver creates a new Resolver
func NewResolver(db *database.DB) *Resolver {
	return &Resolver{db: db}
}

// ResolvePrimaryKey returns the primary key of the single row of table whose
// column equals value. It fails with a *LookupError when zero or several rows
// match.
func (r *Resolver) ResolvePrimaryKey(ctx context.Context, table, column, value string) (int64, error) {
	lt, ok := lookupTables[table]
	if !ok || !lt.columns[column] {
		return 0, fmt.Errorf("%w: %s.%s", ErrUnknownLookup, table, column)
	}

	// LIMIT 2 is enough to tell "exactly one" from "several"
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = ? LIMIT 2`, lt.primaryKey, table, column)
	var ids []int64
	if err := r.db.SelectContext(ctx, &ids, r.db.Rebind(query), value); err != nil {
		return 0, fmt.Errorf("failed to resolve %s.%s = %q: %w", table, column, value, err)
	}

	if len(ids) != 1 {
		return 0, &LookupError{Table: table, Column: column, Value: value, Matches: len(ids)}
	}
	return ids[0], nil
}

// SecurityID resolves a security ticker
func (r *Resolver) SecurityID(ctx context.Context, ticker string) (models.SecurityID, error) {
	id, err := r.ResolvePrimaryKey(ctx, "securities", "ticker", ticker)
	return models.SecurityID(id), err
}

// ListID resolves a list ticker
func (r *Resolver) ListID(ctx context.Context, ticker string) (models.ListID, error) {
	id, err := r.ResolvePrimaryKey(ctx, "lists", "ticker", ticker)
	return models.ListID(id), err
}

// EventID resolves a list change event ticker
func (r *Resolver) EventID(ctx context.Context, ticker string) (models.EventID, error) {
	id, err := r.ResolvePrimaryKey(ctx, "list_change_events", "ticker", ticker)
	return models.EventID(id), err
}

// CountryID resolves a country ticker
func (r *Resolver) CountryID(ctx context.Context, ticker string) (models.CountryID, error) {
	id, err := r.ResolvePrimaryKey(ctx, "countries", "ticker", ticker)
	return models.CountryID(id), err
}

// CurrencyID resolves a currency ticker
func (r *Resolver) CurrencyID(ctx context.Context, ticker string) (models.CurrencyID, error) {
	id, err := r.ResolvePrimaryKey(ctx, "currencies", "ticker", ticker)
	return models.CurrencyID(id), err
}

// WeightID resolves a weight by name
func (r *Resolver) WeightID(ctx context.Context, name string) (models.WeightID, error) {
	id, err := r.ResolvePrimaryKey(ctx, "weights", "name", name)
	return models.WeightID(id), err
}
