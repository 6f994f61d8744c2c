package services

import (
	"context"
	"time"

	"github.com/epeers/preflists/internal/models"
)

// ListChangeRow is one parsed row of a list change import. Row is the
// 1-based line number in the source file.
type ListChangeRow struct {
	Row    int
	Ticker string
	List   string
	Event  string
	Date   string
	Note   *string
}

// ImportService applies a batch of list changes. Every row is an independent
// command: a rejected row does not undo or stop the others.
type ImportService struct {
	securitySvc *SecurityService
}

// NewImportService creates a new ImportService
func NewImportService(securitySvc *SecurityService) *ImportService {
	return &ImportService{securitySvc: securitySvc}
}

// ImportListChanges writes rows in order and reports which were rejected
func (s *ImportService) ImportListChanges(ctx context.Context, rows []ListChangeRow) *models.ImportListChangesResponse {
	defer TrackTime("ImportListChanges", time.Now())

	resp := &models.ImportListChangesResponse{Rejected: []models.ImportRejection{}}
	for _, row := range rows {
		err := s.securitySvc.AddListChange(ctx, models.CreateListChangeRequest{
			Ticker: row.Ticker,
			List:   row.List,
			Event:  row.Event,
			Date:   models.ListDate(row.Date),
			Note:   row.Note,
		})
		if err != nil {
			resp.Rejected = append(resp.Rejected, models.ImportRejection{Row: row.Row, Ticker: row.Ticker, Error: err.Error()})
			continue
		}
		resp.Imported++
	}
	return resp
}
