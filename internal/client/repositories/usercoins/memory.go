package usercoins

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/dmitrijs2005/coinkeeper/internal/client/models"
	"github.com/dmitrijs2005/coinkeeper/internal/common"
)

// MemoryRepository is an in-memory Repository for platforms without SQLite
// and for tests. Records are copied on the way in and out, so callers never
// alias stored data.
type MemoryRepository struct {
	mu    sync.RWMutex
	coins map[string]*models.UserCoin
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{coins: make(map[string]*models.UserCoin)}
}

func copyCoin(c *models.UserCoin) *models.UserCoin {
	cp := *c
	return &cp
}

func (r *MemoryRepository) Put(_ context.Context, c *models.UserCoin) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.coins[c.ID] = copyCoin(c)
	return nil
}

func (r *MemoryRepository) GetByID(_ context.Context, id string) (*models.UserCoin, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.coins[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	return copyCoin(c), nil
}

func (r *MemoryRepository) GetByCatalogCoinID(_ context.Context, catalogCoinID string, isWishlist bool) (*models.UserCoin, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, c := range r.coins {
		if c.CatalogCoinID == catalogCoinID && c.IsWishlist == isWishlist && !c.IsDeleted {
			return copyCoin(c), nil
		}
	}
	return nil, common.ErrNotFound
}

func (r *MemoryRepository) List(_ context.Context, isWishlist bool) ([]*models.UserCoin, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []*models.UserCoin
	for _, c := range r.coins {
		if c.IsWishlist == isWishlist && !c.IsDeleted {
			result = append(result, copyCoin(c))
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].ID > result[j].ID
		}
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, nil
}

func (r *MemoryRepository) GetAllPending(_ context.Context) ([]*models.UserCoin, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []*models.UserCoin
	for _, c := range r.coins {
		if c.NeedsSync {
			result = append(result, copyCoin(c))
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (r *MemoryRepository) MarkSynced(_ context.Context, id string, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if c, ok := r.coins[id]; ok {
		c.NeedsSync = false
		t := at
		c.SyncedAt = &t
	}
	return nil
}

func (r *MemoryRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.coins, id)
	return nil
}

func (r *MemoryRepository) DeleteByCatalogCoinID(_ context.Context, catalogCoinID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, c := range r.coins {
		if c.CatalogCoinID == catalogCoinID {
			delete(r.coins, id)
		}
	}
	return nil
}

func (r *MemoryRepository) Clear(_ context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.coins = make(map[string]*models.UserCoin)
	return nil
}
