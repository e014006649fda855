// Package services contains the application services of the coinkeeper
// client: collection management and remote synchronization.
package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/coinkeeper/internal/client/models"
	"github.com/dmitrijs2005/coinkeeper/internal/client/remote"
	"github.com/dmitrijs2005/coinkeeper/internal/client/repositories/catalog"
	"github.com/dmitrijs2005/coinkeeper/internal/client/repositories/usercoins"
	"github.com/dmitrijs2005/coinkeeper/internal/common"
	"github.com/dmitrijs2005/coinkeeper/internal/logging"
)

// CollectionStats summarizes the owned part of the collection.
type CollectionStats struct {
	OwnedCount         int
	WishlistCount      int
	TotalValue         float64
	TotalPurchasePrice float64
	ProfitLoss         float64
	ProfitLossPercent  float64
}

type CollectionService interface {
	// AddRecord creates an owned or wishlist record for a catalog coin.
	// Adding an owned coin removes a wishlist record for the same catalog
	// coin, if present.
	AddRecord(ctx context.Context, catalogCoinID string, isWishlist bool, patch models.UserCoinPatch) (*models.UserCoin, error)
	UpdateRecord(ctx context.Context, id string, patch models.UserCoinPatch) (*models.UserCoin, error)
	// MoveToCollection turns a wishlist record into an owned one in place,
	// keeping its identifier.
	MoveToCollection(ctx context.Context, catalogCoinID string) (*models.UserCoin, error)
	// RemoveRecord soft-deletes the record so the deletion propagates on
	// the next sync.
	RemoveRecord(ctx context.Context, catalogCoinID string, isWishlist bool) error
	// ListRecords returns live records enriched with catalog data where
	// available.
	ListRecords(ctx context.Context, isWishlist bool) ([]*models.UserCoin, error)
	IsInCollection(ctx context.Context, catalogCoinID string) (owned, wishlisted bool, err error)
	GetStats(ctx context.Context) (*CollectionStats, error)
	// ClearAll wipes the local store and replaces the remote document with
	// an empty one. A failed remote wipe is reported even though the local
	// wipe already succeeded.
	ClearAll(ctx context.Context) error

	// ApplyRemoteUpsert and ApplyRemoteDelete are the entry points the sync
	// engine uses to mirror remote state locally. They never mark records
	// dirty.
	ApplyRemoteUpsert(ctx context.Context, rc models.RemoteCoin, syncedAt time.Time) error
	ApplyRemoteDelete(ctx context.Context, id string) error
}

type collectionService struct {
	userID      string
	coinRepo    usercoins.Repository
	catalogRepo catalog.Repository
	remote      remote.Client
	logger      logging.Logger
}

func NewCollectionService(userID string, coinRepo usercoins.Repository,
	catalogRepo catalog.Repository, remoteClient remote.Client,
	logger logging.Logger) CollectionService {
	return &collectionService{
		userID:      userID,
		coinRepo:    coinRepo,
		catalogRepo: catalogRepo,
		remote:      remoteClient,
		logger:      logger,
	}
}

func (s *collectionService) AddRecord(ctx context.Context, catalogCoinID string, isWishlist bool, patch models.UserCoinPatch) (*models.UserCoin, error) {
	if catalogCoinID == "" {
		return nil, fmt.Errorf("%w: catalog coin id is required", common.ErrValidation)
	}

	existing, err := s.coinRepo.GetByCatalogCoinID(ctx, catalogCoinID, isWishlist)
	if err != nil && !errors.Is(err, common.ErrNotFound) {
		return nil, fmt.Errorf("failed to check for duplicate: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: coin %s is already in the %s", common.ErrValidation,
			catalogCoinID, listName(isWishlist))
	}

	// An owned coin supersedes a wishlist entry for the same catalog coin.
	if !isWishlist {
		wl, err := s.coinRepo.GetByCatalogCoinID(ctx, catalogCoinID, true)
		if err != nil && !errors.Is(err, common.ErrNotFound) {
			return nil, fmt.Errorf("failed to check wishlist: %w", err)
		}
		if wl != nil {
			// Tombstoned rather than purged so the removal reaches the
			// remote document on the next sync.
			wl.MarkDeleted()
			if err := s.coinRepo.Put(ctx, wl); err != nil {
				return nil, fmt.Errorf("failed to remove superseded wishlist record: %w", err)
			}
			s.logger.Debug(ctx, "wishlist record superseded by owned coin",
				"catalogCoinId", catalogCoinID)
		}
	}

	c := &models.UserCoin{
		ID:            uuid.NewString(),
		UserID:        s.userID,
		CatalogCoinID: catalogCoinID,
		IsWishlist:    isWishlist,
		CreatedAt:     time.Now().UTC(),
	}
	c.Apply(patch)

	if err := c.Validate(); err != nil {
		return nil, err
	}
	if err := s.coinRepo.Put(ctx, c); err != nil {
		return nil, fmt.Errorf("failed to save record: %w", err)
	}
	return c, nil
}

func (s *collectionService) UpdateRecord(ctx context.Context, id string, patch models.UserCoinPatch) (*models.UserCoin, error) {
	c, err := s.coinRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c.IsDeleted {
		return nil, fmt.Errorf("record %s: %w", id, common.ErrNotFound)
	}

	c.Apply(patch)
	if err := c.Validate(); err != nil {
		return nil, err
	}
	if err := s.coinRepo.Put(ctx, c); err != nil {
		return nil, fmt.Errorf("failed to save record: %w", err)
	}
	return c, nil
}

func (s *collectionService) MoveToCollection(ctx context.Context, catalogCoinID string) (*models.UserCoin, error) {
	owned, err := s.coinRepo.GetByCatalogCoinID(ctx, catalogCoinID, false)
	if err != nil && !errors.Is(err, common.ErrNotFound) {
		return nil, fmt.Errorf("failed to check collection: %w", err)
	}
	if owned != nil {
		return nil, fmt.Errorf("%w: coin %s is already owned", common.ErrValidation, catalogCoinID)
	}

	c, err := s.coinRepo.GetByCatalogCoinID(ctx, catalogCoinID, true)
	if err != nil {
		return nil, err
	}

	c.IsWishlist = false
	c.MarkForSync()
	if err := s.coinRepo.Put(ctx, c); err != nil {
		return nil, fmt.Errorf("failed to save record: %w", err)
	}
	return c, nil
}

func (s *collectionService) RemoveRecord(ctx context.Context, catalogCoinID string, isWishlist bool) error {
	c, err := s.coinRepo.GetByCatalogCoinID(ctx, catalogCoinID, isWishlist)
	if err != nil {
		return err
	}

	c.MarkDeleted()
	if err := s.coinRepo.Put(ctx, c); err != nil {
		return fmt.Errorf("failed to save tombstone: %w", err)
	}
	return nil
}

func (s *collectionService) ListRecords(ctx context.Context, isWishlist bool) ([]*models.UserCoin, error) {
	coins, err := s.coinRepo.List(ctx, isWishlist)
	if err != nil {
		return nil, fmt.Errorf("failed to list records: %w", err)
	}

	for _, c := range coins {
		cc, err := s.catalogRepo.GetCoinByID(ctx, c.CatalogCoinID)
		if err != nil {
			// A record may reference a catalog entry this device has not
			// imported yet. The record is still listed, just unenriched.
			s.logger.Debug(ctx, "catalog lookup failed", "catalogCoinId", c.CatalogCoinID, "error", err)
			continue
		}
		c.CatalogCoin = cc
	}
	return coins, nil
}

func (s *collectionService) IsInCollection(ctx context.Context, catalogCoinID string) (bool, bool, error) {
	owned := false
	wishlisted := false

	if _, err := s.coinRepo.GetByCatalogCoinID(ctx, catalogCoinID, false); err == nil {
		owned = true
	} else if !errors.Is(err, common.ErrNotFound) {
		return false, false, err
	}

	if _, err := s.coinRepo.GetByCatalogCoinID(ctx, catalogCoinID, true); err == nil {
		wishlisted = true
	} else if !errors.Is(err, common.ErrNotFound) {
		return false, false, err
	}

	return owned, wishlisted, nil
}

func (s *collectionService) GetStats(ctx context.Context) (*CollectionStats, error) {
	owned, err := s.ListRecords(ctx, false)
	if err != nil {
		return nil, err
	}
	wishlist, err := s.coinRepo.List(ctx, true)
	if err != nil {
		return nil, fmt.Errorf("failed to list wishlist: %w", err)
	}

	stats := &CollectionStats{
		OwnedCount:    len(owned),
		WishlistCount: len(wishlist),
	}
	for _, c := range owned {
		if v := c.CurrentValue(); v != nil {
			stats.TotalValue += *v
		}
		if c.PurchasePrice != nil {
			stats.TotalPurchasePrice += *c.PurchasePrice
		}
	}
	stats.ProfitLoss = stats.TotalValue - stats.TotalPurchasePrice
	if stats.TotalPurchasePrice > 0 {
		stats.ProfitLossPercent = stats.ProfitLoss / stats.TotalPurchasePrice * 100
	}
	return stats, nil
}

func (s *collectionService) ClearAll(ctx context.Context) error {
	if err := s.coinRepo.Clear(ctx); err != nil {
		return fmt.Errorf("failed to clear local records: %w", err)
	}

	doc := &models.CollectionDocument{
		UserID:    s.userID,
		Coins:     []models.RemoteCoin{},
		UpdatedAt: time.Now().UTC(),
	}
	if err := s.remote.Replace(ctx, s.userID, doc); err != nil {
		// The local wipe already happened; with nothing left pending a sync
		// cannot repeat the upload, so the caller must retry the wipe or the
		// next pull brings the collection back.
		s.logger.Warn(ctx, "failed to clear remote document", "error", err)
		return fmt.Errorf("local records cleared but remote wipe failed: %w", err)
	}
	return nil
}

func (s *collectionService) ApplyRemoteUpsert(ctx context.Context, rc models.RemoteCoin, syncedAt time.Time) error {
	c, err := s.coinRepo.GetByID(ctx, rc.ID)
	if err != nil {
		if !errors.Is(err, common.ErrNotFound) {
			return err
		}
		c = models.FromRemote(rc, s.userID, syncedAt)
	} else {
		c.ApplyRemote(rc, syncedAt)
	}
	if err := s.coinRepo.Put(ctx, c); err != nil {
		return fmt.Errorf("failed to save remote record: %w", err)
	}
	return nil
}

func (s *collectionService) ApplyRemoteDelete(ctx context.Context, id string) error {
	if err := s.coinRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete record: %w", err)
	}
	return nil
}

func listName(isWishlist bool) string {
	if isWishlist {
		return "wishlist"
	}
	return "collection"
}
