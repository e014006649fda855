package usercoins

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/coinkeeper/internal/client/models"
	"github.com/dmitrijs2005/coinkeeper/internal/common"
	"github.com/dmitrijs2005/coinkeeper/internal/dbx"
)

// SQLiteRepository implements Repository using a DBTX (either *sql.DB or *sql.Tx).
type SQLiteRepository struct {
	db dbx.DBTX
}

// NewSQLiteRepository returns a new SQLiteRepository bound to the given DBTX.
func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

const coinColumns = `id, user_id, catalog_coin_id, is_wishlist, condition, grade,
	purchase_price, purchase_date, notes, obverse_image, reverse_image,
	user_weight, user_diameter, created_at, updated_at, synced_at,
	needs_sync, is_deleted`

// Put upserts a record by id. On conflict, every mutable column is updated.
func (r *SQLiteRepository) Put(ctx context.Context, c *models.UserCoin) error {
	query := `INSERT INTO user_coins (` + coinColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			is_wishlist = excluded.is_wishlist,
			condition = excluded.condition,
			grade = excluded.grade,
			purchase_price = excluded.purchase_price,
			purchase_date = excluded.purchase_date,
			notes = excluded.notes,
			obverse_image = excluded.obverse_image,
			reverse_image = excluded.reverse_image,
			user_weight = excluded.user_weight,
			user_diameter = excluded.user_diameter,
			updated_at = excluded.updated_at,
			synced_at = excluded.synced_at,
			needs_sync = excluded.needs_sync,
			is_deleted = excluded.is_deleted
	`
	_, err := r.db.ExecContext(ctx, query,
		c.ID, nullStr(c.UserID), c.CatalogCoinID, boolInt(c.IsWishlist),
		nullStr(c.Condition), nullStr(c.Grade), c.PurchasePrice, nullTime(c.PurchaseDate),
		nullStr(c.Notes), nullStr(c.ObverseImage), nullStr(c.ReverseImage),
		c.UserWeight, c.UserDiameter,
		c.CreatedAt.UTC().Format(timeFormat), nullTime(c.UpdatedAt), nullTime(c.SyncedAt),
		boolInt(c.NeedsSync), boolInt(c.IsDeleted))
	if err != nil {
		return fmt.Errorf("failed to upsert user coin: %w", err)
	}
	return nil
}

// GetByID returns a record regardless of its tombstone state.
func (r *SQLiteRepository) GetByID(ctx context.Context, id string) (*models.UserCoin, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+coinColumns+` FROM user_coins WHERE id = ?`, id)
	return scanCoin(row)
}

func (r *SQLiteRepository) GetByCatalogCoinID(ctx context.Context, catalogCoinID string, isWishlist bool) (*models.UserCoin, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+coinColumns+` FROM user_coins WHERE catalog_coin_id = ? AND is_wishlist = ? AND is_deleted = 0`,
		catalogCoinID, boolInt(isWishlist))
	return scanCoin(row)
}

// List returns non-deleted records, newest first.
func (r *SQLiteRepository) List(ctx context.Context, isWishlist bool) ([]*models.UserCoin, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+coinColumns+` FROM user_coins WHERE is_wishlist = ? AND is_deleted = 0 ORDER BY created_at DESC`,
		boolInt(isWishlist))
	if err != nil {
		return nil, fmt.Errorf("failed to select user coins: %w", err)
	}
	return collectCoins(rows)
}

// GetAllPending returns records flagged needs_sync=1, tombstones included.
func (r *SQLiteRepository) GetAllPending(ctx context.Context) ([]*models.UserCoin, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+coinColumns+` FROM user_coins WHERE needs_sync = 1`)
	if err != nil {
		return nil, fmt.Errorf("failed to select pending user coins: %w", err)
	}
	return collectCoins(rows)
}

func (r *SQLiteRepository) MarkSynced(ctx context.Context, id string, at time.Time) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE user_coins SET needs_sync = 0, synced_at = ? WHERE id = ?`,
		at.UTC().Format(timeFormat), id)
	if err != nil {
		return fmt.Errorf("failed to mark user coin synced: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM user_coins WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete user coin: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) DeleteByCatalogCoinID(ctx context.Context, catalogCoinID string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM user_coins WHERE catalog_coin_id = ?`, catalogCoinID)
	if err != nil {
		return fmt.Errorf("failed to delete user coins by catalog id: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) Clear(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM user_coins`)
	if err != nil {
		return fmt.Errorf("failed to clear user coins: %w", err)
	}
	return nil
}

// scan helpers

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCoin(row rowScanner) (*models.UserCoin, error) {
	var (
		c                            models.UserCoin
		userID, condition, grade     sql.NullString
		purchaseDate, notes          sql.NullString
		obverse, reverse             sql.NullString
		createdAt, updatedAt, synced sql.NullString
		price, weight, diameter      sql.NullFloat64
		isWishlist, needs, deleted   int
	)
	err := row.Scan(&c.ID, &userID, &c.CatalogCoinID, &isWishlist, &condition, &grade,
		&price, &purchaseDate, &notes, &obverse, &reverse,
		&weight, &diameter, &createdAt, &updatedAt, &synced,
		&needs, &deleted)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan user coin: %w", err)
	}

	c.UserID = userID.String
	c.Condition = condition.String
	c.Grade = grade.String
	c.Notes = notes.String
	c.ObverseImage = obverse.String
	c.ReverseImage = reverse.String
	c.IsWishlist = isWishlist != 0
	c.NeedsSync = needs != 0
	c.IsDeleted = deleted != 0
	if price.Valid {
		c.PurchasePrice = &price.Float64
	}
	if weight.Valid {
		c.UserWeight = &weight.Float64
	}
	if diameter.Valid {
		c.UserDiameter = &diameter.Float64
	}

	if c.CreatedAt, err = parseTime(createdAt.String); err != nil {
		return nil, fmt.Errorf("failed to parse created_at: %w", err)
	}
	if c.PurchaseDate, err = parseNullTime(purchaseDate); err != nil {
		return nil, fmt.Errorf("failed to parse purchase_date: %w", err)
	}
	if c.UpdatedAt, err = parseNullTime(updatedAt); err != nil {
		return nil, fmt.Errorf("failed to parse updated_at: %w", err)
	}
	if c.SyncedAt, err = parseNullTime(synced); err != nil {
		return nil, fmt.Errorf("failed to parse synced_at: %w", err)
	}
	return &c, nil
}

func collectCoins(rows *sql.Rows) ([]*models.UserCoin, error) {
	defer rows.Close()

	var result []*models.UserCoin
	for rows.Next() {
		c, err := scanCoin(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// timeFormat is fixed-width so lexicographic ORDER BY on the stored strings
// matches chronological order.
const timeFormat = "2006-01-02T15:04:05.000000000Z07:00"

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func nullStr(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func nullTime(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.UTC().Format(timeFormat)
}

func parseTime(s string) (time.Time, error) {
	return time.Parse(time.RFC3339Nano, s)
}

func parseNullTime(s sql.NullString) (*time.Time, error) {
	if !s.Valid || s.String == "" {
		return nil, nil
	}
	t, err := parseTime(s.String)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
