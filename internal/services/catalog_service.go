package services

import (
	"context"
	"strings"

	"github.com/epeers/preflists/internal/cache"
	"github.com/epeers/preflists/internal/metrics"
	"github.com/epeers/preflists/internal/models"
	"github.com/epeers/preflists/internal/repository"
	log "github.com/sirupsen/logrus"
)

// CatalogService handles administrative inserts into the reference tables and
// keeps the in-memory catalog index in step with them
type CatalogService struct {
	catalogRepo *repository.CatalogRepository
	catalog     *cache.Catalog
	metrics     *metrics.Registry
}

// NewCatalogService creates a new CatalogService
func NewCatalogService(catalogRepo *repository.CatalogRepository, catalog *cache.Catalog, m *metrics.Registry) *CatalogService {
	return &CatalogService{
		catalogRepo: catalogRepo,
		catalog:     catalog,
		metrics:     m,
	}
}

// Reload refreshes the catalog index from the store
func (s *CatalogService) Reload(ctx context.Context) (cache.CatalogStats, error) {
	err := s.catalog.Reload(ctx)
	s.metrics.ObserveCatalogReload(err)
	if err != nil {
		log.Errorf("Catalog reload failed: %v", err)
		return cache.CatalogStats{}, err
	}
	return s.catalog.Stats(), nil
}

// afterInsert records the write and, when it succeeded, reloads the index so
// the new row resolves from memory. A failed reload is logged only: lookups
// fall back to the store.
func (s *CatalogService) afterInsert(ctx context.Context, entity, key string, err error) error {
	s.metrics.ObserveWrite(entity, err)
	if err != nil {
		log.Warnf("Rejected %s %s: %v", entity, key, err)
		return err
	}
	log.Infof("Added %s %s", entity, key)
	if _, rerr := s.Reload(ctx); rerr != nil {
		log.Warnf("Catalog index stale after adding %s %s", entity, key)
	}
	return nil
}

func (s *CatalogService) AddWeight(ctx context.Context, req models.CreateWeightRequest) (models.WeightID, error) {
	name := strings.TrimSpace(req.Name)
	id, err := s.catalogRepo.InsertWeight(ctx, name)
	return id, s.afterInsert(ctx, "weight", name, err)
}

func (s *CatalogService) AddCountry(ctx context.Context, req models.CreateDimensionRequest) (models.CountryID, error) {
	ticker := strings.TrimSpace(req.Ticker)
	id, err := s.catalogRepo.InsertCountry(ctx, ticker, strings.TrimSpace(req.Name), strings.TrimSpace(req.Weight))
	return id, s.afterInsert(ctx, "country", ticker, err)
}

func (s *CatalogService) AddCurrency(ctx context.Context, req models.CreateDimensionRequest) (models.CurrencyID, error) {
	ticker := strings.TrimSpace(req.Ticker)
	id, err := s.catalogRepo.InsertCurrency(ctx, ticker, strings.TrimSpace(req.Name), strings.TrimSpace(req.Weight))
	return id, s.afterInsert(ctx, "currency", ticker, err)
}

// AddList creates a list, under Parent when one is given
func (s *CatalogService) AddList(ctx context.Context, req models.CreateListRequest) (models.ListID, error) {
	ticker := strings.TrimSpace(req.Ticker)
	id, err := s.catalogRepo.InsertList(ctx, ticker, strings.TrimSpace(req.Name),
		strings.TrimSpace(req.Weight), strings.TrimSpace(req.Parent))
	return id, s.afterInsert(ctx, "list", ticker, err)
}

func (s *CatalogService) AddEvent(ctx context.Context, req models.CreateEventRequest) (models.EventID, error) {
	ticker := strings.TrimSpace(req.Ticker)
	id, err := s.catalogRepo.InsertEvent(ctx, models.ListChangeEvent{
		Ticker:    ticker,
		Name:      strings.TrimSpace(req.Name),
		ValueSign: *req.ValueSign,
		Value:     *req.Value,
	})
	return id, s.afterInsert(ctx, "event", ticker, err)
}
