package catalog

import (
	"context"
	"database/sql"
	"testing"

	"github.com/dmitrijs2005/coinkeeper/internal/client/models"
	"github.com/dmitrijs2005/coinkeeper/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`
CREATE TABLE catalog_countries (id TEXT PRIMARY KEY, name TEXT NOT NULL, name_en TEXT, flag TEXT);
CREATE TABLE catalog_periods (id TEXT PRIMARY KEY, country_id TEXT NOT NULL, name TEXT NOT NULL,
  start_year INTEGER, end_year INTEGER, sort_order INTEGER NOT NULL DEFAULT 0);
CREATE TABLE catalog_rulers (id TEXT PRIMARY KEY, period_id TEXT NOT NULL, name TEXT NOT NULL,
  name_en TEXT, start_year INTEGER, end_year INTEGER, portrait TEXT);
CREATE TABLE catalog_coins (id TEXT PRIMARY KEY, ruler_id TEXT NOT NULL, catalog_number TEXT,
  name TEXT NOT NULL, name_en TEXT, year INTEGER, denomination TEXT, denomination_value REAL,
  currency TEXT, metal TEXT, weight REAL, diameter REAL, mint TEXT, mint_mark TEXT,
  mintage INTEGER, rarity TEXT, rarity_score REAL, estimated_value_min REAL,
  estimated_value_max REAL, obverse_image TEXT, reverse_image TEXT, description TEXT);
`)
	require.NoError(t, err)
	return db
}

func seedHierarchy(t *testing.T, r Repository) {
	t.Helper()
	ctx := context.Background()

	require.NoError(t, r.UpsertCountry(ctx, &models.Country{ID: "ru", Name: "Россия", NameEn: "Russia"}))
	require.NoError(t, r.UpsertPeriod(ctx, &models.Period{
		ID: "empire", CountryID: "ru", Name: "Empire", StartYear: 1721, EndYear: 1917, SortOrder: 1,
	}))
	require.NoError(t, r.UpsertRuler(ctx, &models.Ruler{
		ID: "nicholas2", PeriodID: "empire", Name: "Nicholas II", StartYear: 1894, EndYear: 1917,
	}))

	weight := 20.0
	valueMin, valueMax := 40.0, 120.0
	require.NoError(t, r.UpsertCoin(ctx, &models.CatalogCoin{
		ID: "rouble-1899", RulerID: "nicholas2", CatalogNumber: "Y#59.3",
		Name: "1 рубль 1899", NameEn: "1 Rouble 1899", Year: 1899,
		Denomination: "1 rouble", Metal: "silver", Weight: &weight,
		EstimatedValueMin: &valueMin, EstimatedValueMax: &valueMax,
	}))
	require.NoError(t, r.UpsertCoin(ctx, &models.CatalogCoin{
		ID: "kopek-1895", RulerID: "nicholas2", Name: "1 копейка 1895", Year: 1895,
	}))
}

func TestGetCoinByID(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	seedHierarchy(t, r)

	c, err := r.GetCoinByID(context.Background(), "rouble-1899")
	require.NoError(t, err)
	assert.Equal(t, "1 рубль 1899", c.Name)
	assert.Equal(t, "Y#59.3", c.CatalogNumber)
	assert.Equal(t, 1899, c.Year)
	require.NotNil(t, c.Weight)
	assert.Equal(t, 20.0, *c.Weight)
	require.NotNil(t, c.EstimatedValueMax)
	assert.Equal(t, 120.0, *c.EstimatedValueMax)
	assert.Nil(t, c.Mintage)

	_, err = r.GetCoinByID(context.Background(), "missing")
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestHierarchyNavigation(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	seedHierarchy(t, r)
	ctx := context.Background()

	countries, err := r.GetCountries(ctx)
	require.NoError(t, err)
	require.Len(t, countries, 1)
	assert.Equal(t, "Russia", countries[0].NameEn)

	periods, err := r.GetPeriodsByCountry(ctx, "ru")
	require.NoError(t, err)
	require.Len(t, periods, 1)
	assert.Equal(t, "Empire", periods[0].Name)

	rulers, err := r.GetRulersByPeriod(ctx, "empire")
	require.NoError(t, err)
	require.Len(t, rulers, 1)
	assert.Equal(t, "Nicholas II", rulers[0].Name)

	coins, err := r.GetCoinsByRuler(ctx, "nicholas2")
	require.NoError(t, err)
	require.Len(t, coins, 2)
	assert.Equal(t, "kopek-1895", coins[0].ID) // ordered by year
	assert.Equal(t, "rouble-1899", coins[1].ID)
}

func TestSearchCoins(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	seedHierarchy(t, r)

	coins, err := r.SearchCoins(context.Background(), "Rouble", 10)
	require.NoError(t, err)
	require.Len(t, coins, 1)
	assert.Equal(t, "rouble-1899", coins[0].ID)

	coins, err = r.SearchCoins(context.Background(), "Y#59", 10)
	require.NoError(t, err)
	require.Len(t, coins, 1)
}

func TestUpsertCoin_Overwrites(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	seedHierarchy(t, r)
	ctx := context.Background()

	require.NoError(t, r.UpsertCoin(ctx, &models.CatalogCoin{
		ID: "kopek-1895", RulerID: "nicholas2", Name: "1 копейка 1895", Year: 1895, Metal: "copper",
	}))

	c, err := r.GetCoinByID(ctx, "kopek-1895")
	require.NoError(t, err)
	assert.Equal(t, "copper", c.Metal)
}

func TestCachedRepository_ServesFromCacheAndInvalidates(t *testing.T) {
	inner := NewSQLiteRepository(setupDB(t))
	r := NewCachedRepository(inner)
	seedHierarchy(t, r)
	ctx := context.Background()

	c1, err := r.GetCoinByID(ctx, "rouble-1899")
	require.NoError(t, err)
	c2, err := r.GetCoinByID(ctx, "rouble-1899")
	require.NoError(t, err)
	assert.Same(t, c1, c2)

	require.NoError(t, r.UpsertCoin(ctx, &models.CatalogCoin{
		ID: "rouble-1899", RulerID: "nicholas2", Name: "1 рубль 1899", Year: 1899, Metal: "silver",
	}))
	c3, err := r.GetCoinByID(ctx, "rouble-1899")
	require.NoError(t, err)
	assert.NotSame(t, c1, c3)
	assert.Equal(t, "silver", c3.Metal)
}
