package scoring

import (
	"errors"
	"fmt"
	"iter"
	"slices"

	"github.com/epeers/preflists/internal/models"
)

var ErrUnorderedStream = errors.New("rows for a ticker are not contiguous")

// Decayer yields the weight of an event at a given timestamp
type Decayer interface {
	Factor(t int64) (float64, error)
}

// AggregatedScore is one security's decayed total. Row is the last input row
// of the security's group and only identifies it.
type AggregatedScore struct {
	Score float64
	Row   models.TimeWeightedPointsResult
}

// Aggregate folds rows into one score per ticker in a single pass. Rows for a
// ticker must be contiguous. Groups whose score is not positive are dropped.
// Output is in order of first appearance; see SortByScore.
//
// Any error from the stream or the decayer aborts the whole aggregation.
func Aggregate(rows iter.Seq2[models.TimeWeightedPointsResult, error], decay Decayer) ([]AggregatedScore, error) {
	var (
		out    []AggregatedScore
		open   *AggregatedScore
		closed = make(map[string]bool)
	)

	emit := func() {
		closed[open.Row.Ticker] = true
		if open.Score > 0 {
			out = append(out, *open)
		}
		open = nil
	}

	for row, err := range rows {
		if err != nil {
			return nil, err
		}

		factor, err := decay.Factor(row.EventTimestamp)
		if err != nil {
			return nil, fmt.Errorf("failed to weigh %s: %w", row.Ticker, err)
		}
		points := float64(row.EventValue) * factor

		if open != nil && open.Row.Ticker == row.Ticker {
			open.Score += points
			open.Row = row
			continue
		}

		if open != nil {
			emit()
		}
		if closed[row.Ticker] {
			return nil, fmt.Errorf("%w: %s seen again after its group closed", ErrUnorderedStream, row.Ticker)
		}
		open = &AggregatedScore{Score: points, Row: row}
	}

	if open != nil {
		emit()
	}
	return out, nil
}

// SortByScore orders scores highest first. Equal scores keep their relative
// order.
func SortByScore(scores []AggregatedScore) {
	slices.SortStableFunc(scores, func(a, b AggregatedScore) int {
		switch {
		case a.Score > b.Score:
			return -1
		case a.Score < b.Score:
			return 1
		default:
			return 0
		}
	})
}
