// Package catalog provides read access to the bundled coin catalog and
// upserts used when importing reference data from external sources.
package catalog

import (
	"context"

	"github.com/dmitrijs2005/coinkeeper/internal/client/models"
)

type Repository interface {
	GetCoinByID(ctx context.Context, id string) (*models.CatalogCoin, error)
	GetCountries(ctx context.Context) ([]*models.Country, error)
	GetPeriodsByCountry(ctx context.Context, countryID string) ([]*models.Period, error)
	GetRulersByPeriod(ctx context.Context, periodID string) ([]*models.Ruler, error)
	GetCoinsByRuler(ctx context.Context, rulerID string) ([]*models.CatalogCoin, error)
	SearchCoins(ctx context.Context, query string, limit int) ([]*models.CatalogCoin, error)

	UpsertCountry(ctx context.Context, c *models.Country) error
	UpsertPeriod(ctx context.Context, p *models.Period) error
	UpsertRuler(ctx context.Context, r *models.Ruler) error
	UpsertCoin(ctx context.Context, c *models.CatalogCoin) error
}
