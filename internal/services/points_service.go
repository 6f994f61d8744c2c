package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/epeers/preflists/internal/metrics"
	"github.com/epeers/preflists/internal/models"
	"github.com/epeers/preflists/internal/repository"
	"github.com/epeers/preflists/internal/scoring"
	"github.com/epeers/preflists/internal/util"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

// PointsService computes raw and time-weighted point rankings
type PointsService struct {
	changeRepo  *repository.ListChangeRepository
	metrics     *metrics.Registry
	loc         *time.Location
	defaultDays int
	now         Clock
}

// NewPointsService creates a new PointsService. defaultDays is used when a
// caller asks for a window of 0 days.
func NewPointsService(changeRepo *repository.ListChangeRepository, m *metrics.Registry, loc *time.Location, defaultDays int, now Clock) *PointsService {
	return &PointsService{
		changeRepo:  changeRepo,
		metrics:     m,
		loc:         loc,
		defaultDays: defaultDays,
		now:         now.orDefault(),
	}
}

func (s *PointsService) days(days int) (int, error) {
	if days <= 0 {
		return s.defaultDays, nil
	}
	if days > util.MaxWindowDays {
		return 0, fmt.Errorf("%w: %d days exceeds %d", scoring.ErrInvalidWindow, days, util.MaxWindowDays)
	}
	return days, nil
}

// FormatScore rounds a decayed score to two decimals for display
func FormatScore(score float64) string {
	return decimal.NewFromFloat(score).StringFixed(2)
}

// Points returns raw point totals over the trailing window
func (s *PointsService) Points(ctx context.Context, days int, ticker *string) (*models.PointsResponse, error) {
	days, err := s.days(days)
	if err != nil {
		return nil, err
	}
	points, err := s.changeRepo.PointsInWindow(ctx, s.now(), days, ticker)
	if err != nil {
		return nil, err
	}
	if points == nil {
		points = []models.PointsResult{}
	}
	return &models.PointsResponse{Days: days, Points: points}, nil
}

// rank runs the time-weighted query and folds it into scores, highest first
func (s *PointsService) rank(ctx context.Context, now time.Time, days int, ticker, country *string) ([]scoring.AggregatedScore, error) {
	start := time.Now()

	rows, window, err := s.changeRepo.TimeWeightedPointsInWindow(ctx, now, days, ticker, country)
	if err != nil {
		return nil, err
	}
	calc, err := scoring.NewDecayCalculator(window)
	if err != nil {
		return nil, err
	}

	scores, err := scoring.Aggregate(rows, calc)
	if errors.Is(err, scoring.ErrOutOfWindow) || errors.Is(err, scoring.ErrUnorderedStream) {
		w := calc.Window()
		log.Errorf("Time-weighted ranking aborted (now=%d, window=%ds): %v", w.Now, w.WindowSeconds, err)
	}
	if err != nil {
		return nil, err
	}

	scoring.SortByScore(scores)
	s.metrics.ObserveRanking(time.Since(start), len(scores))
	return scores, nil
}

// WeightedRanking returns decayed scores per security, highest first.
// Securities whose decayed total is not positive are left out.
func (s *PointsService) WeightedRanking(ctx context.Context, days int, ticker, country *string) (*models.WeightedPointsResponse, error) {
	defer TrackTime("WeightedRanking", time.Now())

	days, err := s.days(days)
	if err != nil {
		return nil, err
	}
	now := s.now()
	scores, err := s.rank(ctx, now, days, ticker, country)
	if err != nil {
		return nil, err
	}

	resp := &models.WeightedPointsResponse{
		Days:    days,
		AsOf:    models.DateView{Epoch: now.Unix(), Date: util.FormatListDate(now.Unix(), s.loc)},
		Country: country,
		Scores:  make([]models.WeightedScoreEntry, 0, len(scores)),
	}
	for i, sc := range scores {
		resp.Scores = append(resp.Scores, models.WeightedScoreEntry{
			Rank:   i + 1,
			Name:   sc.Row.Name,
			Ticker: sc.Row.Ticker,
			Score:  FormatScore(sc.Score),
		})
	}
	return resp, nil
}

// Summary returns one security's time-weighted and raw points over the
// default window
func (s *PointsService) Summary(ctx context.Context, ticker string) (models.PointsSummary, error) {
	now := s.now()
	summary := models.PointsSummary{TimeWeighted: FormatScore(0)}

	scores, err := s.rank(ctx, now, s.defaultDays, &ticker, nil)
	if err != nil {
		return summary, err
	}
	if len(scores) > 0 {
		summary.TimeWeighted = FormatScore(scores[0].Score)
	}

	points, err := s.changeRepo.PointsInWindow(ctx, now, s.defaultDays, &ticker)
	if err != nil {
		return summary, err
	}
	if len(points) > 0 {
		summary.Points = points[0].TotalPoints
	}
	return summary, nil
}
