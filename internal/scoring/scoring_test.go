package scoring

import (
	"errors"
	"iter"
	"slices"
	"testing"

	"github.com/epeers/preflists/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testNow    = int64(1_000_000)
	testWindow = int64(1_000)
)

func newCalc(t *testing.T) *DecayCalculator {
	t.Helper()
	c, err := NewDecayCalculator(models.DecayWindow{Now: testNow, WindowSeconds: testWindow})
	require.NoError(t, err)
	return c
}

func row(ticker, name string, value, ts int64) models.TimeWeightedPointsResult {
	return models.TimeWeightedPointsResult{Name: name, Ticker: ticker, EventValue: value, EventTimestamp: ts}
}

func stream(rows ...models.TimeWeightedPointsResult) iter.Seq2[models.TimeWeightedPointsResult, error] {
	return func(yield func(models.TimeWeightedPointsResult, error) bool) {
		for _, r := range rows {
			if !yield(r, nil) {
				return
			}
		}
	}
}

// unitDecay weighs every event 1
type unitDecay struct{}

func (unitDecay) Factor(int64) (float64, error) { return 1, nil }

func TestNewDecayCalculator_RejectsNonPositiveWindow(t *testing.T) {
	for _, w := range []int64{0, -1} {
		_, err := NewDecayCalculator(models.DecayWindow{Now: testNow, WindowSeconds: w})
		assert.ErrorIs(t, err, ErrInvalidWindow)
	}
}

func TestFactor(t *testing.T) {
	c := newCalc(t)

	f, err := c.Factor(testNow)
	require.NoError(t, err)
	assert.Equal(t, 1.0, f)

	f, err = c.Factor(testNow - testWindow/2)
	require.NoError(t, err)
	assert.InDelta(t, 0.5, f, 1e-12)

	f, err = c.Factor(testNow - testWindow + 1)
	require.NoError(t, err)
	assert.Greater(t, f, 0.0)

	assert.Equal(t, models.DecayWindow{Now: testNow, WindowSeconds: testWindow}, c.Window())
}

func TestFactor_OutOfWindow(t *testing.T) {
	c := newCalc(t)

	// the window edge itself is excluded
	_, err := c.Factor(testNow - testWindow)
	assert.ErrorIs(t, err, ErrOutOfWindow)

	_, err = c.Factor(testNow - testWindow - 1)
	assert.ErrorIs(t, err, ErrOutOfWindow)

	_, err = c.Factor(testNow + 1)
	assert.ErrorIs(t, err, ErrOutOfWindow)
}

func TestFactor_Monotonic(t *testing.T) {
	c := newCalc(t)

	prev := 2.0
	for ts := testNow - testWindow + 1; ts <= testNow; ts += 37 {
		f, err := c.Factor(ts)
		require.NoError(t, err)
		assert.Greater(t, f, 0.0)
		assert.LessOrEqual(t, f, 1.0)
		if prev <= 1.0 {
			assert.Greater(t, f, prev, "factor must increase with timestamp")
		}
		prev = f
	}
}

func TestAggregate_Grouping(t *testing.T) {
	scores, err := Aggregate(stream(
		row("A", "Alpha", 10, testNow),
		row("A", "Alpha", -4, testNow),
		row("B", "Beta", 5, testNow),
	), unitDecay{})
	require.NoError(t, err)
	require.Len(t, scores, 2)
	assert.Equal(t, "A", scores[0].Row.Ticker)
	assert.Equal(t, 6.0, scores[0].Score)
	assert.Equal(t, "B", scores[1].Row.Ticker)
	assert.Equal(t, 5.0, scores[1].Score)
}

func TestAggregate_DropsNonPositive(t *testing.T) {
	scores, err := Aggregate(stream(
		row("A", "Alpha", 5, testNow),
		row("A", "Alpha", -5, testNow),
		row("B", "Beta", -3, testNow),
		row("C", "Gamma", 1, testNow),
		row("D", "Delta", -1, testNow),
	), unitDecay{})
	require.NoError(t, err)
	require.Len(t, scores, 1)
	assert.Equal(t, "C", scores[0].Row.Ticker)
}

func TestAggregate_IdentityFromLastRow(t *testing.T) {
	scores, err := Aggregate(stream(
		row("A", "Old Name", 3, testNow-10),
		row("A", "New Name", 4, testNow),
	), unitDecay{})
	require.NoError(t, err)
	require.Len(t, scores, 1)
	assert.Equal(t, "New Name", scores[0].Row.Name)
	assert.Equal(t, testNow, scores[0].Row.EventTimestamp)
}

func TestAggregate_AppliesDecay(t *testing.T) {
	scores, err := Aggregate(stream(
		row("A", "Alpha", 10, testNow),
		row("A", "Alpha", 10, testNow-testWindow/2),
	), newCalc(t))
	require.NoError(t, err)
	require.Len(t, scores, 1)
	assert.InDelta(t, 15.0, scores[0].Score, 1e-9)
}

func TestAggregate_FirstAppearanceOrder(t *testing.T) {
	scores, err := Aggregate(stream(
		row("Z", "Zulu", 1, testNow),
		row("A", "Alpha", 9, testNow),
		row("M", "Mike", 5, testNow),
	), unitDecay{})
	require.NoError(t, err)

	var tickers []string
	for _, s := range scores {
		tickers = append(tickers, s.Row.Ticker)
	}
	assert.Equal(t, []string{"Z", "A", "M"}, tickers)

	SortByScore(scores)
	tickers = tickers[:0]
	for _, s := range scores {
		tickers = append(tickers, s.Row.Ticker)
	}
	assert.Equal(t, []string{"A", "M", "Z"}, tickers)
}

func TestAggregate_Empty(t *testing.T) {
	scores, err := Aggregate(stream(), unitDecay{})
	require.NoError(t, err)
	assert.Empty(t, scores)
}

func TestAggregate_UnorderedStream(t *testing.T) {
	scores, err := Aggregate(stream(
		row("A", "Alpha", 1, testNow),
		row("B", "Beta", 1, testNow),
		row("A", "Alpha", 1, testNow),
	), unitDecay{})
	assert.ErrorIs(t, err, ErrUnorderedStream)
	assert.Nil(t, scores)
}

func TestAggregate_DecayFaultAborts(t *testing.T) {
	scores, err := Aggregate(stream(
		row("A", "Alpha", 1, testNow),
		row("B", "Beta", 1, testNow+60),
	), newCalc(t))
	assert.ErrorIs(t, err, ErrOutOfWindow)
	assert.Nil(t, scores)
}

func TestAggregate_IterationFaultAborts(t *testing.T) {
	boom := errors.New("connection lost")
	rows := func(yield func(models.TimeWeightedPointsResult, error) bool) {
		if !yield(row("A", "Alpha", 1, testNow), nil) {
			return
		}
		yield(models.TimeWeightedPointsResult{}, boom)
	}

	scores, err := Aggregate(rows, unitDecay{})
	assert.ErrorIs(t, err, boom)
	assert.Nil(t, scores)
}

func TestSortByScore_Stable(t *testing.T) {
	scores := []AggregatedScore{
		{Score: 1, Row: row("A", "", 0, 0)},
		{Score: 2, Row: row("B", "", 0, 0)},
		{Score: 1, Row: row("C", "", 0, 0)},
		{Score: 2, Row: row("D", "", 0, 0)},
	}
	SortByScore(scores)

	got := slices.Collect(func(yield func(string) bool) {
		for _, s := range scores {
			if !yield(s.Row.Ticker) {
				return
			}
		}
	})
	assert.Equal(t, []string{"B", "D", "A", "C"}, got)
}
