// Package models defines client-side data models used by the coinkeeper CLI:
// the user's collection records, the remote collection document, and the
// read-only catalog entities.
package models

import (
	"fmt"
	"time"

	"github.com/dmitrijs2005/coinkeeper/internal/common"
)

// UserCoin is a user's owned-or-wishlisted relationship to one catalog coin.
// It is persisted locally and reconciled with the per-user remote collection
// document during sync.
type UserCoin struct {
	// ID is a globally unique, client-generated identifier.
	ID string

	// UserID is the owning user; empty in guest (local-only) mode.
	UserID string

	// CatalogCoinID references the read-only catalog coin. Immutable.
	CatalogCoinID string

	// IsWishlist distinguishes a desired coin from an owned one.
	IsWishlist bool

	Condition     string
	Grade         string
	PurchasePrice *float64
	PurchaseDate  *time.Time
	Notes         string

	// User-supplied photos of the physical coin (PRO feature).
	ObverseImage string
	ReverseImage string

	// Measured overrides of the catalog physical values, for worn coins.
	UserWeight   *float64
	UserDiameter *float64

	// CreatedAt is set once at creation time.
	CreatedAt time.Time
	// UpdatedAt is refreshed on every local mutation; nil until the first one.
	UpdatedAt *time.Time
	// SyncedAt is the time of the last successful remote sync, if any.
	SyncedAt *time.Time

	// NeedsSync marks unpushed local changes.
	NeedsSync bool
	// IsDeleted is a soft-delete tombstone kept until a sync cycle confirms it.
	IsDeleted bool

	// CatalogCoin carries joined catalog data on enriched list results.
	// It is never persisted with the record.
	CatalogCoin *CatalogCoin
}

// UserCoinPatch describes a partial update. Nil fields are left unchanged.
type UserCoinPatch struct {
	Condition     *string
	Grade         *string
	PurchasePrice *float64
	PurchaseDate  *time.Time
	Notes         *string
	ObverseImage  *string
	ReverseImage  *string
	UserWeight    *float64
	UserDiameter  *float64
}

// Validate checks the record invariants that must hold before persisting.
func (c *UserCoin) Validate() error {
	if c.ID == "" || c.CatalogCoinID == "" {
		return fmt.Errorf("%w: user coin must have id and catalogCoinId", common.ErrValidation)
	}
	if c.PurchasePrice != nil && *c.PurchasePrice < 0 {
		return fmt.Errorf("%w: purchase price cannot be negative", common.ErrValidation)
	}
	return nil
}

// MarkForSync flags the record as dirty and refreshes UpdatedAt.
func (c *UserCoin) MarkForSync() {
	now := time.Now().UTC()
	c.UpdatedAt = &now
	c.NeedsSync = true
}

// MarkSynced clears the dirty flag and records the sync time.
func (c *UserCoin) MarkSynced(at time.Time) {
	c.NeedsSync = false
	c.SyncedAt = &at
}

// MarkDeleted turns the record into a dirty tombstone.
func (c *UserCoin) MarkDeleted() {
	c.IsDeleted = true
	c.MarkForSync()
}

// Apply merges the patch into the record and marks it for sync.
func (c *UserCoin) Apply(p UserCoinPatch) {
	if p.Condition != nil {
		c.Condition = *p.Condition
	}
	if p.Grade != nil {
		c.Grade = *p.Grade
	}
	if p.PurchasePrice != nil {
		c.PurchasePrice = p.PurchasePrice
	}
	if p.PurchaseDate != nil {
		c.PurchaseDate = p.PurchaseDate
	}
	if p.Notes != nil {
		c.Notes = *p.Notes
	}
	if p.ObverseImage != nil {
		c.ObverseImage = *p.ObverseImage
	}
	if p.ReverseImage != nil {
		c.ReverseImage = *p.ReverseImage
	}
	if p.UserWeight != nil {
		c.UserWeight = p.UserWeight
	}
	if p.UserDiameter != nil {
		c.UserDiameter = p.UserDiameter
	}
	c.MarkForSync()
}

// CurrentValue estimates the coin's value as the midpoint of the catalog
// range. Returns nil when no catalog data or estimate is available.
func (c *UserCoin) CurrentValue() *float64 {
	if c.CatalogCoin == nil {
		return nil
	}
	min, max := c.CatalogCoin.EstimatedValueMin, c.CatalogCoin.EstimatedValueMax
	if min == nil || max == nil {
		return nil
	}
	v := (*min + *max) / 2
	return &v
}
