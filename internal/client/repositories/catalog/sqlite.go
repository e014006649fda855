package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/coinkeeper/internal/client/models"
	"github.com/dmitrijs2005/coinkeeper/internal/common"
	"github.com/dmitrijs2005/coinkeeper/internal/dbx"
)

const coinColumns = `id, ruler_id, catalog_number, name, name_en, year, denomination,
	denomination_value, currency, metal, weight, diameter, mint, mint_mark, mintage,
	rarity, rarity_score, estimated_value_min, estimated_value_max,
	obverse_image, reverse_image, description`

type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) GetCoinByID(ctx context.Context, id string) (*models.CatalogCoin, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+coinColumns+` FROM catalog_coins WHERE id = ?`, id)
	c, err := scanCoin(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("catalog coin %s: %w", id, common.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get catalog coin: %w", err)
	}
	return c, nil
}

func (r *SQLiteRepository) GetCountries(ctx context.Context) ([]*models.Country, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, name_en, flag FROM catalog_countries ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("failed to query countries: %w", err)
	}
	defer rows.Close()

	var result []*models.Country
	for rows.Next() {
		var c models.Country
		var nameEn, flag sql.NullString
		if err := rows.Scan(&c.ID, &c.Name, &nameEn, &flag); err != nil {
			return nil, fmt.Errorf("failed to scan country: %w", err)
		}
		c.NameEn = nameEn.String
		c.Flag = flag.String
		result = append(result, &c)
	}
	return result, rows.Err()
}

func (r *SQLiteRepository) GetPeriodsByCountry(ctx context.Context, countryID string) ([]*models.Period, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, country_id, name, start_year, end_year, sort_order
		FROM catalog_periods WHERE country_id = ?
		ORDER BY sort_order, start_year`, countryID)
	if err != nil {
		return nil, fmt.Errorf("failed to query periods: %w", err)
	}
	defer rows.Close()

	var result []*models.Period
	for rows.Next() {
		var p models.Period
		var start, end sql.NullInt64
		if err := rows.Scan(&p.ID, &p.CountryID, &p.Name, &start, &end, &p.SortOrder); err != nil {
			return nil, fmt.Errorf("failed to scan period: %w", err)
		}
		p.StartYear = int(start.Int64)
		p.EndYear = int(end.Int64)
		result = append(result, &p)
	}
	return result, rows.Err()
}

func (r *SQLiteRepository) GetRulersByPeriod(ctx context.Context, periodID string) ([]*models.Ruler, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, period_id, name, name_en, start_year, end_year, portrait
		FROM catalog_rulers WHERE period_id = ?
		ORDER BY start_year, name`, periodID)
	if err != nil {
		return nil, fmt.Errorf("failed to query rulers: %w", err)
	}
	defer rows.Close()

	var result []*models.Ruler
	for rows.Next() {
		var rl models.Ruler
		var nameEn, portrait sql.NullString
		var start, end sql.NullInt64
		if err := rows.Scan(&rl.ID, &rl.PeriodID, &rl.Name, &nameEn, &start, &end, &portrait); err != nil {
			return nil, fmt.Errorf("failed to scan ruler: %w", err)
		}
		rl.NameEn = nameEn.String
		rl.Portrait = portrait.String
		rl.StartYear = int(start.Int64)
		rl.EndYear = int(end.Int64)
		result = append(result, &rl)
	}
	return result, rows.Err()
}

func (r *SQLiteRepository) GetCoinsByRuler(ctx context.Context, rulerID string) ([]*models.CatalogCoin, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+coinColumns+` FROM catalog_coins WHERE ruler_id = ? ORDER BY year, name`, rulerID)
	if err != nil {
		return nil, fmt.Errorf("failed to query coins by ruler: %w", err)
	}
	defer rows.Close()
	return collectCoins(rows)
}

func (r *SQLiteRepository) SearchCoins(ctx context.Context, query string, limit int) ([]*models.CatalogCoin, error) {
	if limit <= 0 {
		limit = 50
	}
	pattern := "%" + query + "%"
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+coinColumns+` FROM catalog_coins
		WHERE name LIKE ? OR name_en LIKE ? OR catalog_number LIKE ?
		ORDER BY year, name LIMIT ?`, pattern, pattern, pattern, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to search coins: %w", err)
	}
	defer rows.Close()
	return collectCoins(rows)
}

func (r *SQLiteRepository) UpsertCountry(ctx context.Context, c *models.Country) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO catalog_countries (id, name, name_en, flag) VALUES (?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET name = excluded.name, name_en = excluded.name_en,
			flag = excluded.flag`,
		c.ID, c.Name, nullStr(c.NameEn), nullStr(c.Flag))
	if err != nil {
		return fmt.Errorf("failed to upsert country %s: %w", c.ID, err)
	}
	return nil
}

func (r *SQLiteRepository) UpsertPeriod(ctx context.Context, p *models.Period) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO catalog_periods (id, country_id, name, start_year, end_year, sort_order)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET country_id = excluded.country_id, name = excluded.name,
			start_year = excluded.start_year, end_year = excluded.end_year,
			sort_order = excluded.sort_order`,
		p.ID, p.CountryID, p.Name, p.StartYear, p.EndYear, p.SortOrder)
	if err != nil {
		return fmt.Errorf("failed to upsert period %s: %w", p.ID, err)
	}
	return nil
}

func (r *SQLiteRepository) UpsertRuler(ctx context.Context, rl *models.Ruler) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO catalog_rulers (id, period_id, name, name_en, start_year, end_year, portrait)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET period_id = excluded.period_id, name = excluded.name,
			name_en = excluded.name_en, start_year = excluded.start_year,
			end_year = excluded.end_year, portrait = excluded.portrait`,
		rl.ID, rl.PeriodID, rl.Name, nullStr(rl.NameEn), rl.StartYear, rl.EndYear, nullStr(rl.Portrait))
	if err != nil {
		return fmt.Errorf("failed to upsert ruler %s: %w", rl.ID, err)
	}
	return nil
}

func (r *SQLiteRepository) UpsertCoin(ctx context.Context, c *models.CatalogCoin) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO catalog_coins (`+coinColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET ruler_id = excluded.ruler_id,
			catalog_number = excluded.catalog_number, name = excluded.name,
			name_en = excluded.name_en, year = excluded.year,
			denomination = excluded.denomination, denomination_value = excluded.denomination_value,
			currency = excluded.currency, metal = excluded.metal, weight = excluded.weight,
			diameter = excluded.diameter, mint = excluded.mint, mint_mark = excluded.mint_mark,
			mintage = excluded.mintage, rarity = excluded.rarity,
			rarity_score = excluded.rarity_score,
			estimated_value_min = excluded.estimated_value_min,
			estimated_value_max = excluded.estimated_value_max,
			obverse_image = excluded.obverse_image, reverse_image = excluded.reverse_image,
			description = excluded.description`,
		c.ID, c.RulerID, nullStr(c.CatalogNumber), c.Name, nullStr(c.NameEn), c.Year,
		nullStr(c.Denomination), c.DenominationValue, nullStr(c.Currency), nullStr(c.Metal),
		c.Weight, c.Diameter, nullStr(c.Mint), nullStr(c.MintMark), c.Mintage,
		nullStr(c.Rarity), c.RarityScore, c.EstimatedValueMin, c.EstimatedValueMax,
		nullStr(c.ObverseImage), nullStr(c.ReverseImage), nullStr(c.Description))
	if err != nil {
		return fmt.Errorf("failed to upsert catalog coin %s: %w", c.ID, err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCoin(row rowScanner) (*models.CatalogCoin, error) {
	var c models.CatalogCoin
	var catalogNumber, nameEn, denomination, currency, metal sql.NullString
	var mint, mintMark, rarity, obverse, reverse, description sql.NullString
	var year, mintage sql.NullInt64
	var denomValue, weight, diameter, rarityScore, valueMin, valueMax sql.NullFloat64

	err := row.Scan(&c.ID, &c.RulerID, &catalogNumber, &c.Name, &nameEn, &year,
		&denomination, &denomValue, &currency, &metal, &weight, &diameter,
		&mint, &mintMark, &mintage, &rarity, &rarityScore, &valueMin, &valueMax,
		&obverse, &reverse, &description)
	if err != nil {
		return nil, err
	}

	c.CatalogNumber = catalogNumber.String
	c.NameEn = nameEn.String
	c.Year = int(year.Int64)
	c.Denomination = denomination.String
	c.Currency = currency.String
	c.Metal = metal.String
	c.Mint = mint.String
	c.MintMark = mintMark.String
	c.Rarity = rarity.String
	c.ObverseImage = obverse.String
	c.ReverseImage = reverse.String
	c.Description = description.String
	if denomValue.Valid {
		c.DenominationValue = &denomValue.Float64
	}
	if weight.Valid {
		c.Weight = &weight.Float64
	}
	if diameter.Valid {
		c.Diameter = &diameter.Float64
	}
	if mintage.Valid {
		c.Mintage = &mintage.Int64
	}
	if rarityScore.Valid {
		c.RarityScore = &rarityScore.Float64
	}
	if valueMin.Valid {
		c.EstimatedValueMin = &valueMin.Float64
	}
	if valueMax.Valid {
		c.EstimatedValueMax = &valueMax.Float64
	}
	return &c, nil
}

func collectCoins(rows *sql.Rows) ([]*models.CatalogCoin, error) {
	var result []*models.CatalogCoin
	for rows.Next() {
		c, err := scanCoin(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan catalog coin: %w", err)
		}
		result = append(result, c)
	}
	return result, rows.Err()
}

func nullStr(s string) any {
	if s == "" {
		return nil
	}
	return s
}
