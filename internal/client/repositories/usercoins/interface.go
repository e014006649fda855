// Package usercoins implements the local record store for the user's
// collection: durable keyed storage of UserCoin records with the query
// patterns the collection service and the sync coordinator need.
package usercoins

import (
	"context"
	"time"

	"github.com/dmitrijs2005/coinkeeper/internal/client/models"
)

// Repository describes storage operations for UserCoin records.
//
// Implementations do not validate beyond what the schema enforces; callers
// (the collection service) keep the data-model invariants. Tombstoned records
// (IsDeleted=true) are excluded from List and lookups but stay visible to
// GetAllPending until a sync cycle purges them.
type Repository interface {
	// Put inserts a record or overwrites an existing one by ID.
	Put(ctx context.Context, coin *models.UserCoin) error

	// GetByID returns a record by id, or common.ErrNotFound.
	GetByID(ctx context.Context, id string) (*models.UserCoin, error)

	// GetByCatalogCoinID returns the non-deleted record for the given catalog
	// coin and wishlist flag, or common.ErrNotFound.
	GetByCatalogCoinID(ctx context.Context, catalogCoinID string, isWishlist bool) (*models.UserCoin, error)

	// List returns non-deleted records filtered by the wishlist flag,
	// newest first (created_at descending).
	List(ctx context.Context, isWishlist bool) ([]*models.UserCoin, error)

	// GetAllPending returns every record with unpushed local changes,
	// tombstones included.
	GetAllPending(ctx context.Context) ([]*models.UserCoin, error)

	// MarkSynced clears the dirty flag and stamps synced_at.
	MarkSynced(ctx context.Context, id string, at time.Time) error

	// Delete physically removes a record by id.
	Delete(ctx context.Context, id string) error

	// DeleteByCatalogCoinID physically removes every record referencing the
	// catalog coin. Used for non-dirtying purges during pull merges.
	DeleteByCatalogCoinID(ctx context.Context, catalogCoinID string) error

	// Clear wipes all records.
	Clear(ctx context.Context) error
}
