package models

import (
	"testing"
	"time"

	"github.com/dmitrijs2005/coinkeeper/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func f64(v float64) *float64 { return &v }

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		coin    UserCoin
		wantErr error
	}{
		{"ok", UserCoin{ID: "uc1", CatalogCoinID: "c1"}, nil},
		{"missing id", UserCoin{CatalogCoinID: "c1"}, common.ErrValidation},
		{"missing catalog id", UserCoin{ID: "uc1"}, common.ErrValidation},
		{"negative price", UserCoin{ID: "uc1", CatalogCoinID: "c1", PurchasePrice: f64(-1)}, common.ErrValidation},
		{"zero price ok", UserCoin{ID: "uc1", CatalogCoinID: "c1", PurchasePrice: f64(0)}, nil},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.coin.Validate()
			if tc.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tc.wantErr)
			}
		})
	}
}

func TestMarkForSyncAndSynced(t *testing.T) {
	c := UserCoin{ID: "uc1", CatalogCoinID: "c1"}

	c.MarkForSync()
	require.True(t, c.NeedsSync)
	require.NotNil(t, c.UpdatedAt)

	at := time.Now().UTC()
	c.MarkSynced(at)
	assert.False(t, c.NeedsSync)
	require.NotNil(t, c.SyncedAt)
	assert.Equal(t, at, *c.SyncedAt)
}

func TestMarkDeleted(t *testing.T) {
	c := UserCoin{ID: "uc1", CatalogCoinID: "c1"}
	c.MarkDeleted()

	assert.True(t, c.IsDeleted)
	assert.True(t, c.NeedsSync)
	assert.NotNil(t, c.UpdatedAt)
}

func TestApply_OnlyProvidedFieldsChange(t *testing.T) {
	c := UserCoin{ID: "uc1", CatalogCoinID: "c1", Condition: "fine", Notes: "old"}

	cond := "good"
	c.Apply(UserCoinPatch{Condition: &cond, PurchasePrice: f64(12.5)})

	assert.Equal(t, "good", c.Condition)
	assert.Equal(t, "old", c.Notes)
	require.NotNil(t, c.PurchasePrice)
	assert.Equal(t, 12.5, *c.PurchasePrice)
	assert.True(t, c.NeedsSync)
}

func TestToRemote_UpdatedAtFallsBackToCreatedAt(t *testing.T) {
	created := time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC)
	c := UserCoin{ID: "uc1", CatalogCoinID: "c1", CreatedAt: created}

	rc := c.ToRemote()
	assert.Equal(t, created, rc.AddedAt)
	assert.Equal(t, created, rc.UpdatedAt)

	updated := created.Add(time.Hour)
	c.UpdatedAt = &updated
	rc = c.ToRemote()
	assert.Equal(t, updated, rc.UpdatedAt)
}

func TestFromRemote_MarksSynced(t *testing.T) {
	now := time.Now().UTC()
	rc := RemoteCoin{
		ID:            "uc1",
		CatalogCoinID: "c1",
		IsWishlist:    true,
		Condition:     "good",
		AddedAt:       now.Add(-time.Hour),
		UpdatedAt:     now.Add(-time.Minute),
	}

	c := FromRemote(rc, "u1", now)
	assert.Equal(t, "uc1", c.ID)
	assert.Equal(t, "u1", c.UserID)
	assert.True(t, c.IsWishlist)
	assert.False(t, c.NeedsSync)
	require.NotNil(t, c.SyncedAt)
	assert.Equal(t, now, *c.SyncedAt)
}

func TestApplyRemote_PreservesIdentity(t *testing.T) {
	created := time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC)
	c := UserCoin{ID: "uc1", CatalogCoinID: "c1", CreatedAt: created, NeedsSync: true}

	now := time.Now().UTC()
	c.ApplyRemote(RemoteCoin{ID: "other", CatalogCoinID: "c1", Condition: "xf", UpdatedAt: now}, now)

	assert.Equal(t, "uc1", c.ID)
	assert.Equal(t, created, c.CreatedAt)
	assert.Equal(t, "xf", c.Condition)
	assert.False(t, c.NeedsSync)
}

func TestCurrentValue(t *testing.T) {
	c := UserCoin{ID: "uc1", CatalogCoinID: "c1"}
	assert.Nil(t, c.CurrentValue())

	c.CatalogCoin = &CatalogCoin{ID: "c1", EstimatedValueMin: f64(100), EstimatedValueMax: f64(300)}
	v := c.CurrentValue()
	require.NotNil(t, v)
	assert.Equal(t, 200.0, *v)

	c.CatalogCoin.EstimatedValueMax = nil
	assert.Nil(t, c.CurrentValue())
}
