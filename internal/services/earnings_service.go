package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/epeers/preflists/internal/alphavantage"
	"github.com/epeers/preflists/internal/metrics"
	"github.com/epeers/preflists/internal/models"
	"github.com/epeers/preflists/internal/repository"
	"github.com/epeers/preflists/internal/util"
	log "github.com/sirupsen/logrus"
)

// ErrSyncDisabled is returned by SyncEarnings when no AlphaVantage key is configured
var ErrSyncDisabled = errors.New("earnings sync disabled: no AlphaVantage key configured")

const calendarHorizon = "12month"

// EarningsService handles earnings dates and the per-security dates summary
type EarningsService struct {
	earningsRepo *repository.EarningsRepository
	securityRepo *repository.SecurityRepository
	avClient     *alphavantage.Client
	metrics      *metrics.Registry
	loc          *time.Location
	now          Clock
}

// NewEarningsService creates a new EarningsService. avClient may be nil.
func NewEarningsService(
	earningsRepo *repository.EarningsRepository,
	securityRepo *repository.SecurityRepository,
	avClient *alphavantage.Client,
	m *metrics.Registry,
	loc *time.Location,
	now Clock,
) *EarningsService {
	return &EarningsService{
		earningsRepo: earningsRepo,
		securityRepo: securityRepo,
		avClient:     avClient,
		metrics:      m,
		loc:          loc,
		now:          now.orDefault(),
	}
}

func (s *EarningsService) dateView(epoch int64) models.DateView {
	return models.DateView{Epoch: epoch, Date: util.FormatListDate(epoch, s.loc)}
}

func (s *EarningsService) optionalView(epoch *int64) *models.DateView {
	if epoch == nil {
		return nil
	}
	v := s.dateView(*epoch)
	return &v
}

// AddEarningsDate records a date from the native or Bloomberg source
func (s *EarningsService) AddEarningsDate(ctx context.Context, req models.CreateEarningsDateRequest) error {
	source := req.Source
	if source == "" {
		source = models.EarningsSourceNative
	}
	epoch, err := req.Date.Epoch(s.loc)
	if err != nil {
		return err
	}

	err = s.earningsRepo.Insert(ctx, models.NewEarningsDate{SecurityTicker: req.Ticker, Timestamp: epoch, Source: source})
	s.metrics.ObserveWrite("earnings_date", err)
	if err != nil {
		log.Warnf("Rejected earnings date %s %s: %v", req.Ticker, req.Date, err)
		return err
	}
	return nil
}

// Summary returns the newest entered Bloomberg date and the native dates
// either side of now. The IR website is included when neither source holds
// a date after now.
func (s *EarningsService) Summary(ctx context.Context, ticker string, irWebsite string) (*models.DatesSummary, error) {
	now := s.now()

	next, err := s.earningsRepo.NextDate(ctx, ticker, now)
	if err != nil {
		return nil, err
	}
	prev, err := s.earningsRepo.PreviousDate(ctx, ticker, now)
	if err != nil {
		return nil, err
	}
	bloomberg, err := s.earningsRepo.NewestBloombergDate(ctx, ticker)
	if err != nil {
		return nil, err
	}
	upcoming, err := s.earningsRepo.UpcomingBloombergDate(ctx, ticker, now)
	if err != nil {
		return nil, err
	}

	summary := &models.DatesSummary{
		Bloomberg: s.optionalView(bloomberg),
		Next:      s.optionalView(next),
		Previous:  s.optionalView(prev),
	}
	if next == nil && upcoming == nil {
		summary.IRWebsite = irWebsite
	}
	return summary, nil
}

// Earnings lists every known date for a security plus its summary
func (s *EarningsService) Earnings(ctx context.Context, ticker string) (*models.EarningsResponse, error) {
	defer TrackTime("Earnings", time.Now())

	sec, err := s.securityRepo.GetByTicker(ctx, ticker)
	if err != nil {
		return nil, err
	}

	resp := &models.EarningsResponse{Ticker: ticker, Native: []models.DateView{}, Bloomberg: []models.DateView{}}
	native, err := s.earningsRepo.Dates(ctx, ticker, models.EarningsSourceNative)
	if err != nil {
		return nil, err
	}
	for _, d := range native {
		resp.Native = append(resp.Native, s.dateView(d))
	}
	bloomberg, err := s.earningsRepo.Dates(ctx, ticker, models.EarningsSourceBloomberg)
	if err != nil {
		return nil, err
	}
	for _, d := range bloomberg {
		resp.Bloomberg = append(resp.Bloomberg, s.dateView(d))
	}

	summary, err := s.Summary(ctx, ticker, sec.IRWebsite)
	if err != nil {
		return nil, err
	}
	resp.Summary = *summary
	return resp, nil
}

// SyncEarnings pulls upcoming report dates for ticker from the AlphaVantage
// earnings calendar and stores the ones not already known as native dates.
func (s *EarningsService) SyncEarnings(ctx context.Context, ticker string) (*models.SyncEarningsResponse, error) {
	defer TrackTime("SyncEarnings", time.Now())

	if s.avClient == nil {
		return nil, ErrSyncDisabled
	}
	if _, err := s.securityRepo.GetByTicker(ctx, ticker); err != nil {
		return nil, err
	}

	symbol := alphavantage.SymbolForTicker(ticker)
	cal, err := s.avClient.GetEarningsCalendar(ctx, symbol, calendarHorizon)
	s.metrics.ObserveExternal("alphavantage", err)
	if err != nil {
		return nil, fmt.Errorf("failed to sync earnings for %s: %w", ticker, err)
	}

	for _, raw := range cal.Dropped {
		Warnf(ctx, models.WarnEarningsBadDate, "%s: unparseable report date %q dropped", symbol, raw)
	}

	resp := &models.SyncEarningsResponse{Ticker: ticker, Symbol: symbol, Added: []int64{}}
	matched := 0
	for _, entry := range cal.Entries {
		if entry.Symbol != symbol {
			continue
		}
		matched++

		// report dates are calendar days; store local midnight like manual entries
		epoch, err := util.ParseListDate(entry.ReportDate.Format("2006-01-02"), s.loc)
		if err != nil {
			return nil, err
		}
		added, err := s.earningsRepo.InsertEarningsDateIfAbsent(ctx, ticker, epoch)
		if err != nil {
			s.metrics.ObserveWrite("earnings_date", err)
			return nil, err
		}
		if !added {
			resp.Skipped++
			continue
		}
		s.metrics.ObserveWrite("earnings_date", nil)
		resp.Added = append(resp.Added, epoch)
	}

	if matched == 0 {
		Warnf(ctx, models.WarnEarningsNotReported, "no upcoming earnings reported for %s", symbol)
	}
	log.Infof("Earnings sync for %s: %d added, %d already known", ticker, len(resp.Added), resp.Skipped)
	return resp, nil
}
