package database

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openMemory(t *testing.T) *DB {
	t.Helper()
	db, err := New(context.Background(), DriverSQLite, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, db.Migrate(context.Background()))
	return db
}

func TestSQLiteDSN(t *testing.T) {
	assert.Equal(t, ":memory:?_pragma=foreign_keys(1)", sqliteDSN(":memory:"))
	assert.Equal(t, "prefs.db?mode=rw&_pragma=foreign_keys(1)", sqliteDSN("prefs.db?mode=rw"))
	assert.Equal(t, "prefs.db?_pragma=foreign_keys(0)", sqliteDSN("prefs.db?_pragma=foreign_keys(0)"))
}

func TestNew_UnsupportedDriver(t *testing.T) {
	_, err := New(context.Background(), "mysql", "whatever")
	assert.Error(t, err)
}

func TestMigrate_Idempotent(t *testing.T) {
	db := openMemory(t)
	require.NoError(t, db.Migrate(context.Background()))

	var tables []string
	require.NoError(t, db.Select(&tables, `SELECT name FROM sqlite_master WHERE type = 'table' AND name NOT LIKE 'sqlite_%' ORDER BY name`))
	assert.Equal(t, []string{
		"bloomberg_earnings_dates", "countries", "currencies", "earnings_dates", "list_change_events",
		"list_changes", "lists", "securities", "securities_alt_names", "weights",
	}, tables)
}

func TestClassifyError_Unique(t *testing.T) {
	db := openMemory(t)

	_, err := db.Exec(`INSERT INTO weights (name) VALUES ('high')`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO weights (name) VALUES ('high')`)
	require.Error(t, err)

	classified := ClassifyError(err, "high")
	assert.True(t, errors.Is(classified, ErrIntegrityViolation))

	var ie *IntegrityError
	require.True(t, errors.As(classified, &ie))
	assert.Equal(t, "high", ie.Key)
	assert.Equal(t, "unique", ie.Constraint)
	assert.Contains(t, ie.Error(), "high")
}

func TestClassifyError_ForeignKey(t *testing.T) {
	db := openMemory(t)

	_, err := db.Exec(`INSERT INTO countries (ticker, name, weight_id) VALUES ('US', 'United States', 42)`)
	require.Error(t, err)

	classified := ClassifyError(err, "US")
	assert.ErrorIs(t, classified, ErrIntegrityViolation)
}

func TestClassifyError_PassThrough(t *testing.T) {
	other := errors.New("connection reset")
	assert.Same(t, other, ClassifyError(other, "x"))
	assert.NoError(t, ClassifyError(nil, "x"))
}

func TestWithWriteLock(t *testing.T) {
	db := openMemory(t)
	sentinel := errors.New("boom")
	assert.ErrorIs(t, db.WithWriteLock(func() error { return sentinel }), sentinel)
	assert.NoError(t, db.WithWriteLock(func() error { return nil }))
}
