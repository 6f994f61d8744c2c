package services

import (
	"context"
	"time"

	"github.com/epeers/preflists/internal/models"
	"github.com/epeers/preflists/internal/repository"
	"github.com/epeers/preflists/internal/util"
)

// ListService assembles list views: components, child lists and history
type ListService struct {
	listRepo     *repository.ListRepository
	securityRepo *repository.SecurityRepository
	earningsSvc  *EarningsService
	loc          *time.Location
}

// NewListService creates a new ListService
func NewListService(
	listRepo *repository.ListRepository,
	securityRepo *repository.SecurityRepository,
	earningsSvc *EarningsService,
	loc *time.Location,
) *ListService {
	return &ListService{
		listRepo:     listRepo,
		securityRepo: securityRepo,
		earningsSvc:  earningsSvc,
		loc:          loc,
	}
}

func (s *ListService) dateView(epoch int64) models.DateView {
	return models.DateView{Epoch: epoch, Date: util.FormatListDate(epoch, s.loc)}
}

// List returns a list's info and its current members, each with an earnings
// dates summary
func (s *ListService) List(ctx context.Context, ticker string) (*models.ListResponse, error) {
	defer TrackTime("List", time.Now())

	info, err := s.listRepo.ListInfo(ctx, ticker)
	if err != nil {
		return nil, err
	}
	return s.withComponents(ctx, ticker, info)
}

func (s *ListService) withComponents(ctx context.Context, ticker string, info *models.ListInfoResult) (*models.ListResponse, error) {
	components, err := s.listRepo.ListComponents(ctx, ticker)
	if err != nil {
		return nil, err
	}

	resp := &models.ListResponse{
		Ticker:       ticker,
		Name:         info.Name,
		Weight:       info.Weight,
		ParentWeight: info.ParentWeight,
		Components:   make([]models.ListComponentView, 0, len(components)),
	}
	for _, c := range components {
		sec, err := s.securityRepo.GetByTicker(ctx, c.Ticker)
		if err != nil {
			return nil, err
		}
		dates, err := s.earningsSvc.Summary(ctx, c.Ticker, sec.IRWebsite)
		if err != nil {
			return nil, err
		}
		resp.Components = append(resp.Components, models.ListComponentView{
			Name:         c.Name,
			Ticker:       c.Ticker,
			NetSign:      c.NetSign,
			LatestChange: s.dateView(c.LatestChangeTimestamp),
			Note:         c.Note,
			Dates:        dates,
		})
	}
	return resp, nil
}

// Children returns every child list of ticker with its components
func (s *ListService) Children(ctx context.Context, ticker string) (*models.ChildListsResponse, error) {
	defer TrackTime("Children", time.Now())

	if _, err := s.listRepo.ListInfo(ctx, ticker); err != nil {
		return nil, err
	}
	children, err := s.listRepo.ChildLists(ctx, ticker)
	if err != nil {
		return nil, err
	}

	resp := &models.ChildListsResponse{Parent: ticker, Lists: make([]models.ListResponse, 0, len(children))}
	for _, child := range children {
		info, err := s.listRepo.ListInfo(ctx, child.Ticker)
		if err != nil {
			return nil, err
		}
		list, err := s.withComponents(ctx, child.Ticker, info)
		if err != nil {
			return nil, err
		}
		resp.Lists = append(resp.Lists, *list)
	}
	return resp, nil
}

// History returns every change recorded on a list, newest first
func (s *ListService) History(ctx context.Context, ticker string) (*models.ListHistoryResponse, error) {
	if _, err := s.listRepo.ListInfo(ctx, ticker); err != nil {
		return nil, err
	}
	history, err := s.listRepo.ListHistory(ctx, ticker)
	if err != nil {
		return nil, err
	}

	resp := &models.ListHistoryResponse{Ticker: ticker, Entries: make([]models.ListHistoryEntry, 0, len(history))}
	for _, h := range history {
		resp.Entries = append(resp.Entries, models.ListHistoryEntry{
			Name:   h.Name,
			Ticker: h.Ticker,
			Event:  h.EventName,
			Date:   s.dateView(h.EventTimestamp),
		})
	}
	return resp, nil
}
