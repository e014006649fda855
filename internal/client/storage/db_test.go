package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/dmitrijs2005/coinkeeper/internal/client/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitDatabase_MigratesAndWiresRepositories(t *testing.T) {
	ctx := context.Background()
	repos, err := InitDatabase(ctx, filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = repos.Close() })

	require.NotNil(t, repos.UserCoins)
	require.NotNil(t, repos.Metadata)
	require.NotNil(t, repos.Catalog)

	// The migrated schema accepts real records.
	c := &models.UserCoin{
		ID:            "uc1",
		CatalogCoinID: "c1",
		CreatedAt:     time.Now().UTC(),
		NeedsSync:     true,
	}
	require.NoError(t, repos.UserCoins.Put(ctx, c))

	got, err := repos.UserCoins.GetByID(ctx, "uc1")
	require.NoError(t, err)
	assert.Equal(t, "c1", got.CatalogCoinID)

	require.NoError(t, repos.Metadata.Set(ctx, "k", []byte("v")))
	v, err := repos.Metadata.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("v"), v)
}

func TestInitDatabase_MigrationsAreIdempotent(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "test.db")

	repos, err := InitDatabase(ctx, path)
	require.NoError(t, err)
	require.NoError(t, repos.Close())

	// Reopening an already migrated database applies nothing new.
	repos, err = InitDatabase(ctx, path)
	require.NoError(t, err)
	require.NoError(t, repos.Close())
}
