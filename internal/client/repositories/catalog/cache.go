package catalog

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/coinkeeper/internal/client/models"
)

// CachedRepository memoizes catalog reads. The catalog is effectively
// immutable between imports, so entries live until an upsert for the
// same branch of the hierarchy invalidates them.
type CachedRepository struct {
	inner Repository

	mu        sync.RWMutex
	coins     map[string]*models.CatalogCoin
	countries []*models.Country
	periods   map[string][]*models.Period
	rulers    map[string][]*models.Ruler
}

func NewCachedRepository(inner Repository) *CachedRepository {
	return &CachedRepository{
		inner:   inner,
		coins:   make(map[string]*models.CatalogCoin),
		periods: make(map[string][]*models.Period),
		rulers:  make(map[string][]*models.Ruler),
	}
}

func (r *CachedRepository) GetCoinByID(ctx context.Context, id string) (*models.CatalogCoin, error) {
	r.mu.RLock()
	c, ok := r.coins[id]
	r.mu.RUnlock()
	if ok {
		return c, nil
	}

	c, err := r.inner.GetCoinByID(ctx, id)
	if err != nil {
		return nil, err
	}
	r.mu.Lock()
	r.coins[id] = c
	r.mu.Unlock()
	return c, nil
}

func (r *CachedRepository) GetCountries(ctx context.Context) ([]*models.Country, error) {
	r.mu.RLock()
	cached := r.countries
	r.mu.RUnlock()
	if cached != nil {
		return cached, nil
	}

	countries, err := r.inner.GetCountries(ctx)
	if err != nil {
		return nil, err
	}
	r.mu.Lock()
	r.countries = countries
	r.mu.Unlock()
	return countries, nil
}

func (r *CachedRepository) GetPeriodsByCountry(ctx context.Context, countryID string) ([]*models.Period, error) {
	r.mu.RLock()
	cached, ok := r.periods[countryID]
	r.mu.RUnlock()
	if ok {
		return cached, nil
	}

	periods, err := r.inner.GetPeriodsByCountry(ctx, countryID)
	if err != nil {
		return nil, err
	}
	r.mu.Lock()
	r.periods[countryID] = periods
	r.mu.Unlock()
	return periods, nil
}

func (r *CachedRepository) GetRulersByPeriod(ctx context.Context, periodID string) ([]*models.Ruler, error) {
	r.mu.RLock()
	cached, ok := r.rulers[periodID]
	r.mu.RUnlock()
	if ok {
		return cached, nil
	}

	rulers, err := r.inner.GetRulersByPeriod(ctx, periodID)
	if err != nil {
		return nil, err
	}
	r.mu.Lock()
	r.rulers[periodID] = rulers
	r.mu.Unlock()
	return rulers, nil
}

func (r *CachedRepository) GetCoinsByRuler(ctx context.Context, rulerID string) ([]*models.CatalogCoin, error) {
	return r.inner.GetCoinsByRuler(ctx, rulerID)
}

func (r *CachedRepository) SearchCoins(ctx context.Context, query string, limit int) ([]*models.CatalogCoin, error) {
	return r.inner.SearchCoins(ctx, query, limit)
}

func (r *CachedRepository) UpsertCountry(ctx context.Context, c *models.Country) error {
	if err := r.inner.UpsertCountry(ctx, c); err != nil {
		return err
	}
	r.mu.Lock()
	r.countries = nil
	r.mu.Unlock()
	return nil
}

func (r *CachedRepository) UpsertPeriod(ctx context.Context, p *models.Period) error {
	if err := r.inner.UpsertPeriod(ctx, p); err != nil {
		return err
	}
	r.mu.Lock()
	delete(r.periods, p.CountryID)
	r.mu.Unlock()
	return nil
}

func (r *CachedRepository) UpsertRuler(ctx context.Context, rl *models.Ruler) error {
	if err := r.inner.UpsertRuler(ctx, rl); err != nil {
		return err
	}
	r.mu.Lock()
	delete(r.rulers, rl.PeriodID)
	r.mu.Unlock()
	return nil
}

func (r *CachedRepository) UpsertCoin(ctx context.Context, c *models.CatalogCoin) error {
	if err := r.inner.UpsertCoin(ctx, c); err != nil {
		return err
	}
	r.mu.Lock()
	delete(r.coins, c.ID)
	r.mu.Unlock()
	return nil
}
