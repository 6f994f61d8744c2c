package services

import (
	"context"
	"strings"
	"time"

	"github.com/epeers/preflists/internal/metrics"
	"github.com/epeers/preflists/internal/models"
	"github.com/epeers/preflists/internal/repository"
	"github.com/epeers/preflists/internal/util"
	log "github.com/sirupsen/logrus"
)

// SecurityService handles security writes, list changes and the security
// detail view
type SecurityService struct {
	securityRepo *repository.SecurityRepository
	changeRepo   *repository.ListChangeRepository
	listRepo     *repository.ListRepository
	pointsSvc    *PointsService
	earningsSvc  *EarningsService
	metrics      *metrics.Registry
	loc          *time.Location
}

// NewSecurityService creates a new SecurityService
func NewSecurityService(
	securityRepo *repository.SecurityRepository,
	changeRepo *repository.ListChangeRepository,
	listRepo *repository.ListRepository,
	pointsSvc *PointsService,
	earningsSvc *EarningsService,
	m *metrics.Registry,
	loc *time.Location,
) *SecurityService {
	return &SecurityService{
		securityRepo: securityRepo,
		changeRepo:   changeRepo,
		listRepo:     listRepo,
		pointsSvc:    pointsSvc,
		earningsSvc:  earningsSvc,
		metrics:      m,
		loc:          loc,
	}
}

// AddSecurity inserts a security identified by its country and currency tickers
func (s *SecurityService) AddSecurity(ctx context.Context, req models.CreateSecurityRequest) (models.SecurityID, error) {
	id, err := s.securityRepo.InsertSecurity(ctx, models.NewSecurity{
		Ticker:    strings.TrimSpace(req.Ticker),
		Name:      strings.TrimSpace(req.Name),
		Country:   strings.TrimSpace(req.Country),
		Currency:  strings.TrimSpace(req.Currency),
		IRWebsite: strings.TrimSpace(req.IRWebsite),
	})
	s.metrics.ObserveWrite("security", err)
	if err != nil {
		log.Warnf("Rejected security %s: %v", req.Ticker, err)
		return 0, err
	}
	log.Infof("Added security %s (id %d)", req.Ticker, id)
	return id, nil
}

// AddAltName records an alternate name for a security
func (s *SecurityService) AddAltName(ctx context.Context, ticker, altName string) error {
	err := s.securityRepo.InsertAltName(ctx, ticker, strings.TrimSpace(altName))
	s.metrics.ObserveWrite("alt_name", err)
	if err != nil {
		log.Warnf("Rejected alternate name %q for %s: %v", altName, ticker, err)
	}
	return err
}

// AddListChange converts the dd.mm.yy date to local midnight and records the change
func (s *SecurityService) AddListChange(ctx context.Context, req models.CreateListChangeRequest) error {
	epoch, err := req.Date.Epoch(s.loc)
	if err == nil {
		err = s.changeRepo.InsertListChange(ctx, models.NewListChange{
			SecurityTicker: strings.TrimSpace(req.Ticker),
			ListTicker:     strings.TrimSpace(req.List),
			EventTicker:    strings.TrimSpace(req.Event),
			Timestamp:      epoch,
			Note:           req.Note,
		})
	}
	s.metrics.ObserveWrite("list_change", err)
	if err != nil {
		log.Warnf("Rejected list change %s %s %s %s: %v", req.Ticker, req.List, req.Event, req.Date, err)
	}
	return err
}

// Search finds securities by a fragment of their name
func (s *SecurityService) Search(ctx context.Context, fragment string) ([]models.SecurityInfoResult, error) {
	results, err := s.securityRepo.SearchByName(ctx, fragment)
	if err != nil {
		return nil, err
	}
	if results == nil {
		results = []models.SecurityInfoResult{}
	}
	return results, nil
}

// All lists every security and alternate name with its country
func (s *SecurityService) All(ctx context.Context) ([]models.SecurityCountryResult, error) {
	results, err := s.securityRepo.GetAllWithCountry(ctx)
	if err != nil {
		return nil, err
	}
	if results == nil {
		results = []models.SecurityCountryResult{}
	}
	return results, nil
}

// Detail returns the security, its points over the default window, its
// history grouped by list, and its earnings dates
func (s *SecurityService) Detail(ctx context.Context, ticker string) (*models.SecurityDetailResponse, error) {
	defer TrackTime("Detail", time.Now())

	sec, err := s.securityRepo.GetByTicker(ctx, ticker)
	if err != nil {
		return nil, err
	}

	points, err := s.pointsSvc.Summary(ctx, ticker)
	if err != nil {
		return nil, err
	}

	history, err := s.history(ctx, ticker)
	if err != nil {
		return nil, err
	}

	earnings, err := s.earningsSvc.Earnings(ctx, ticker)
	if err != nil {
		return nil, err
	}

	return &models.SecurityDetailResponse{
		Ticker:   ticker,
		Security: *sec,
		Points:   points,
		History:  history,
		Earnings: *earnings,
	}, nil
}

// history groups the security's changes by list. Rows arrive ordered by list
// ticker, so each list's rows are contiguous.
func (s *SecurityService) history(ctx context.Context, ticker string) ([]models.SecurityListHistory, error) {
	rows, err := s.changeRepo.SecurityHistory(ctx, ticker)
	if err != nil {
		return nil, err
	}

	groups := []models.SecurityListHistory{}
	for _, row := range rows {
		if n := len(groups); n == 0 || groups[n-1].ListTicker != row.ListTicker {
			info, err := s.listRepo.ListInfo(ctx, row.ListTicker)
			if err != nil {
				return nil, err
			}
			groups = append(groups, models.SecurityListHistory{
				ListTicker:   row.ListTicker,
				ListName:     row.ListName,
				Weight:       info.Weight,
				ParentWeight: info.ParentWeight,
			})
		}
		g := &groups[len(groups)-1]
		g.Entries = append(g.Entries, models.SecurityHistoryEntry{
			Event: row.EventName,
			Date:  models.DateView{Epoch: row.EventTimestamp, Date: util.FormatListDate(row.EventTimestamp, s.loc)},
			Note:  row.Note,
		})
	}
	return groups, nil
}
