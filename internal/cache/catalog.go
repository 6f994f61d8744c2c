package cache

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/epeers/preflists/internal/models"
	"github.com/epeers/preflists/internal/repository"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"
)

// CatalogLoader reads every reference table
type CatalogLoader interface {
	LoadCatalog(ctx context.Context) (*models.CatalogSnapshot, error)
}

// Catalog provides an in-memory index of the reference tables keyed by
// natural key. It is only refreshed by Reload.
type Catalog struct {
	loader CatalogLoader
	group  singleflight.Group

	mu         sync.RWMutex
	weights    map[string]models.Weight
	countries  map[string]models.Country
	currencies map[string]models.Currency
	lists      map[string]models.PrefList
	events     map[string]models.ListChangeEvent
	loadedAt   time.Time
}

// NewCatalog creates an empty catalog; call Reload to populate it
func NewCatalog(loader CatalogLoader) *Catalog {
	return &Catalog{
		loader:     loader,
		weights:    make(map[string]models.Weight),
		countries:  make(map[string]models.Country),
		currencies: make(map[string]models.Currency),
		lists:      make(map[string]models.PrefList),
		events:     make(map[string]models.ListChangeEvent),
	}
}

// Reload replaces the index with a fresh snapshot. Concurrent callers share
// one load.
func (c *Catalog) Reload(ctx context.Context) error {
	_, err, shared := c.group.Do("catalog", func() (interface{}, error) {
		snap, err := c.loader.LoadCatalog(ctx)
		if err != nil {
			return nil, err
		}
		c.swap(snap)
		return nil, nil
	})
	if err != nil {
		return fmt.Errorf("failed to reload catalog: %w", err)
	}
	if !shared {
		log.Debugf("Catalog reloaded: %s", c.Stats())
	}
	return nil
}

func (c *Catalog) swap(snap *models.CatalogSnapshot) {
	weights := make(map[string]models.Weight, len(snap.Weights))
	for _, w := range snap.Weights {
		weights[w.Name] = w
	}
	countries := make(map[string]models.Country, len(snap.Countries))
	for _, co := range snap.Countries {
		countries[co.Ticker] = co
	}
	currencies := make(map[string]models.Currency, len(snap.Currencies))
	for _, cu := range snap.Currencies {
		currencies[cu.Ticker] = cu
	}
	lists := make(map[string]models.PrefList, len(snap.Lists))
	for _, l := range snap.Lists {
		lists[l.Ticker] = l
	}
	events := make(map[string]models.ListChangeEvent, len(snap.Events))
	for _, e := range snap.Events {
		events[e.Ticker] = e
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.weights = weights
	c.countries = countries
	c.currencies = currencies
	c.lists = lists
	c.events = events
	c.loadedAt = time.Now()
}

// Weight looks up a weight by name
func (c *Catalog) Weight(name string) (models.Weight, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	w, ok := c.weights[name]
	return w, ok
}

// Country looks up a country by ticker
func (c *Catalog) Country(ticker string) (models.Country, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	co, ok := c.countries[ticker]
	return co, ok
}

// Currency looks up a currency by ticker
func (c *Catalog) Currency(ticker string) (models.Currency, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	cu, ok := c.currencies[ticker]
	return cu, ok
}

// List looks up a list by ticker
func (c *Catalog) List(ticker string) (models.PrefList, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	l, ok := c.lists[ticker]
	return l, ok
}

// Event looks up a list change event by ticker
func (c *Catalog) Event(ticker string) (models.ListChangeEvent, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, ok := c.events[ticker]
	return e, ok
}

// CatalogStats summarizes the loaded index
type CatalogStats struct {
	Weights    int       `json:"weights"`
	Countries  int       `json:"countries"`
	Currencies int       `json:"currencies"`
	Lists      int       `json:"lists"`
	Events     int       `json:"events"`
	LoadedAt   time.Time `json:"loaded_at"`
}

func (s CatalogStats) String() string {
	return fmt.Sprintf("%d weights, %d countries, %d currencies, %d lists, %d events",
		s.Weights, s.Countries, s.Currencies, s.Lists, s.Events)
}

// Stats returns entry counts and the time of the last reload
func (c *Catalog) Stats() CatalogStats {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return CatalogStats{
		Weights:    len(c.weights),
		Countries:  len(c.countries),
		Currencies: len(c.currencies),
		Lists:      len(c.lists),
		Events:     len(c.events),
		LoadedAt:   c.loadedAt,
	}
}

// CachedResolver answers catalog lookups from the index and falls back to
// next on a miss. Securities are never cached.
type CachedResolver struct {
	catalog *Catalog
	next    repository.KeyResolver
}

var _ repository.KeyResolver = (*CachedResolver)(nil)

// NewCachedResolver creates a resolver backed by catalog and next
func NewCachedResolver(catalog *Catalog, next repository.KeyResolver) *CachedResolver {
	return &CachedResolver{catalog: catalog, next: next}
}

func (r *CachedResolver) SecurityID(ctx context.Context, ticker string) (models.SecurityID, error) {
	return r.next.SecurityID(ctx, ticker)
}

func (r *CachedResolver) ListID(ctx context.Context, ticker string) (models.ListID, error) {
	if l, ok := r.catalog.List(ticker); ok {
		return l.ID, nil
	}
	return r.next.ListID(ctx, ticker)
}

func (r *CachedResolver) EventID(ctx context.Context, ticker string) (models.EventID, error) {
	if e, ok := r.catalog.Event(ticker); ok {
		return e.ID, nil
	}
	return r.next.EventID(ctx, ticker)
}

func (r *CachedResolver) CountryID(ctx context.Context, ticker string) (models.CountryID, error) {
	if co, ok := r.catalog.Country(ticker); ok {
		return co.ID, nil
	}
	return r.next.CountryID(ctx, ticker)
}

func (r *CachedResolver) CurrencyID(ctx context.Context, ticker string) (models.CurrencyID, error) {
	if cu, ok := r.catalog.Currency(ticker); ok {
		return cu.ID, nil
	}
	return r.next.CurrencyID(ctx, ticker)
}

func (r *CachedResolver) WeightID(ctx context.Context, name string) (models.WeightID, error) {
	if w, ok := r.catalog.Weight(name); ok {
		return w.ID, nil
	}
	return r.next.WeightID(ctx, name)
}
