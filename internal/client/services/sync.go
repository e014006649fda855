package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/dmitrijs2005/coinkeeper/internal/client/models"
	"github.com/dmitrijs2005/coinkeeper/internal/client/remote"
	"github.com/dmitrijs2005/coinkeeper/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/coinkeeper/internal/client/repositories/usercoins"
	"github.com/dmitrijs2005/coinkeeper/internal/common"
	"github.com/dmitrijs2005/coinkeeper/internal/logging"
)

type SyncService interface {
	// SyncAll pushes every pending local change in one cycle: a single
	// fetch of the remote document, an in-memory reconcile, and a single
	// replace. With nothing pending it does not touch the remote at all.
	SyncAll(ctx context.Context) error
	// LoadFromRemote merges the remote document into the local store.
	// Records with unpushed local changes are never altered.
	LoadFromRemote(ctx context.Context) error
	LastSyncedAt(ctx context.Context) (*time.Time, error)
}

type syncService struct {
	userID       string
	coinRepo     usercoins.Repository
	metadataRepo metadata.Repository
	remote       remote.Client
	logger       logging.Logger

	// mu serializes sync cycles; inFlight lets a second caller fail fast
	// instead of queueing behind a running cycle.
	mu       sync.Mutex
	inFlight bool
}

func NewSyncService(userID string, coinRepo usercoins.Repository,
	metadataRepo metadata.Repository, remoteClient remote.Client,
	logger logging.Logger) SyncService {
	return &syncService{
		userID:       userID,
		coinRepo:     coinRepo,
		metadataRepo: metadataRepo,
		remote:       remoteClient,
		logger:       logger,
	}
}

func (s *syncService) begin() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.inFlight {
		return common.ErrSyncInProgress
	}
	s.inFlight = true
	return nil
}

func (s *syncService) end() {
	s.mu.Lock()
	s.inFlight = false
	s.mu.Unlock()
}

func (s *syncService) SyncAll(ctx context.Context) error {
	if err := s.begin(); err != nil {
		return err
	}
	defer s.end()

	pending, err := s.coinRepo.GetAllPending(ctx)
	if err != nil {
		return fmt.Errorf("failed to load pending records: %w", err)
	}
	if len(pending) == 0 {
		s.logger.Debug(ctx, "nothing to sync")
		return nil
	}

	doc, err := s.remote.Fetch(ctx, s.userID)
	if err != nil {
		return fmt.Errorf("sync fetch failed: %w", err)
	}
	if doc == nil {
		doc = &models.CollectionDocument{UserID: s.userID}
	}

	// Tombstones are applied before upserts so that a coin removed and
	// re-added in the same cycle keeps its fresh entry no matter which
	// order the store returns pending records in.
	for _, c := range pending {
		if c.IsDeleted {
			doc.Coins = removeCoin(doc.Coins, c)
		}
	}
	for _, c := range pending {
		if !c.IsDeleted {
			doc.Coins = upsertCoin(doc.Coins, c)
		}
	}
	doc.UserID = s.userID
	doc.UpdatedAt = time.Now().UTC()

	if err := s.remote.Replace(ctx, s.userID, doc); err != nil {
		return fmt.Errorf("sync upload failed: %w", err)
	}

	// The document is uploaded; only now do local records lose their
	// dirty flags and tombstones disappear.
	syncedAt := time.Now().UTC()
	for _, c := range pending {
		if c.IsDeleted {
			if err := s.coinRepo.Delete(ctx, c.ID); err != nil {
				return fmt.Errorf("failed to purge tombstone %s: %w", c.ID, err)
			}
			continue
		}
		if err := s.coinRepo.MarkSynced(ctx, c.ID, syncedAt); err != nil {
			return fmt.Errorf("failed to mark record %s synced: %w", c.ID, err)
		}
	}

	s.saveLastSyncedAt(ctx, syncedAt)
	s.logger.Info(ctx, "sync complete", "pushed", len(pending))
	return nil
}

func (s *syncService) LoadFromRemote(ctx context.Context) error {
	if err := s.begin(); err != nil {
		return err
	}
	defer s.end()

	doc, err := s.remote.Fetch(ctx, s.userID)
	if err != nil {
		return fmt.Errorf("pull fetch failed: %w", err)
	}
	if doc == nil {
		s.logger.Debug(ctx, "no remote document yet")
		return nil
	}

	pending, err := s.coinRepo.GetAllPending(ctx)
	if err != nil {
		return fmt.Errorf("failed to load pending records: %w", err)
	}
	// A pending local deletion must not be resurrected by the matching
	// remote entry before the deletion has been pushed.
	pendingDeletes := make(map[string]bool)
	for _, c := range pending {
		if c.IsDeleted {
			pendingDeletes[c.ID] = true
			pendingDeletes[catalogKey(c.CatalogCoinID, c.IsWishlist)] = true
		}
	}

	local, err := s.loadLocalByID(ctx)
	if err != nil {
		return err
	}

	syncedAt := time.Now().UTC()
	remoteIDs := make(map[string]bool, len(doc.Coins))
	for _, rc := range doc.Coins {
		remoteIDs[rc.ID] = true
	}

	applied := 0
	for _, rc := range doc.Coins {
		if pendingDeletes[rc.ID] || pendingDeletes[catalogKey(rc.CatalogCoinID, rc.IsWishlist)] {
			continue
		}

		if c, ok := local[rc.ID]; ok {
			if c.NeedsSync {
				continue
			}
			if err := s.applyUpsert(ctx, c, rc, syncedAt); err != nil {
				return err
			}
			applied++
			continue
		}

		// Same catalog coin added independently on another device under a
		// different record id. A clean local copy yields to the remote
		// one; a dirty copy wins and the next push reconciles the ids.
		if c := findByCatalog(local, rc.CatalogCoinID, rc.IsWishlist); c != nil {
			if c.NeedsSync {
				continue
			}
			if err := s.coinRepo.Delete(ctx, c.ID); err != nil {
				return fmt.Errorf("failed to replace duplicate record %s: %w", c.ID, err)
			}
			delete(local, c.ID)
		}

		if err := s.applyUpsert(ctx, nil, rc, syncedAt); err != nil {
			return err
		}
		applied++
	}

	// Clean local records absent from a non-empty remote document were
	// deleted elsewhere. An empty document is left alone: it is
	// indistinguishable from a fresh account.
	removed := 0
	if len(doc.Coins) > 0 {
		for id, c := range local {
			if remoteIDs[id] || c.NeedsSync {
				continue
			}
			if err := s.coinRepo.Delete(ctx, id); err != nil {
				return fmt.Errorf("failed to remove record %s deleted remotely: %w", id, err)
			}
			removed++
		}
	}

	s.saveLastSyncedAt(ctx, syncedAt)
	s.logger.Info(ctx, "pull complete", "applied", applied, "removed", removed)
	return nil
}

func (s *syncService) LastSyncedAt(ctx context.Context) (*time.Time, error) {
	raw, err := s.metadataRepo.Get(ctx, metadata.KeyLastSyncedAt)
	if err != nil {
		return nil, err
	}
	if raw == nil {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339Nano, string(raw))
	if err != nil {
		return nil, fmt.Errorf("corrupt last sync timestamp: %w", err)
	}
	return &t, nil
}

func (s *syncService) applyUpsert(ctx context.Context, c *models.UserCoin, rc models.RemoteCoin, syncedAt time.Time) error {
	if c == nil {
		c = models.FromRemote(rc, s.userID, syncedAt)
	} else {
		c.ApplyRemote(rc, syncedAt)
	}
	if err := s.coinRepo.Put(ctx, c); err != nil {
		return fmt.Errorf("failed to store remote record %s: %w", rc.ID, err)
	}
	return nil
}

func (s *syncService) loadLocalByID(ctx context.Context) (map[string]*models.UserCoin, error) {
	result := make(map[string]*models.UserCoin)
	for _, wishlist := range []bool{false, true} {
		coins, err := s.coinRepo.List(ctx, wishlist)
		if err != nil {
			return nil, fmt.Errorf("failed to list local records: %w", err)
		}
		for _, c := range coins {
			result[c.ID] = c
		}
	}
	return result, nil
}

func (s *syncService) saveLastSyncedAt(ctx context.Context, at time.Time) {
	err := s.metadataRepo.Set(ctx, metadata.KeyLastSyncedAt, []byte(at.Format(time.RFC3339Nano)))
	if err != nil {
		s.logger.Warn(ctx, "failed to persist last sync time", "error", err)
	}
}

func catalogKey(catalogCoinID string, isWishlist bool) string {
	return fmt.Sprintf("%s|%t", catalogCoinID, isWishlist)
}

func findByCatalog(local map[string]*models.UserCoin, catalogCoinID string, isWishlist bool) *models.UserCoin {
	for _, c := range local {
		if c.CatalogCoinID == catalogCoinID && c.IsWishlist == isWishlist {
			return c
		}
	}
	return nil
}

// removeCoin drops the tombstone's remote counterpart, matched by id or,
// for records created before this device first synced, by catalog coin.
func removeCoin(coins []models.RemoteCoin, c *models.UserCoin) []models.RemoteCoin {
	result := coins[:0]
	for _, rc := range coins {
		if rc.ID == c.ID {
			continue
		}
		if rc.CatalogCoinID == c.CatalogCoinID && rc.IsWishlist == c.IsWishlist {
			continue
		}
		result = append(result, rc)
	}
	return result
}

// upsertCoin replaces the remote counterpart in place, matched by id first
// and by catalog coin as a fallback, appending when neither matches.
func upsertCoin(coins []models.RemoteCoin, c *models.UserCoin) []models.RemoteCoin {
	rc := c.ToRemote()
	for i := range coins {
		if coins[i].ID == c.ID {
			coins[i] = rc
			return coins
		}
	}
	for i := range coins {
		if coins[i].CatalogCoinID == c.CatalogCoinID && coins[i].IsWishlist == c.IsWishlist {
			coins[i] = rc
			return coins
		}
	}
	return append(coins, rc)
}
