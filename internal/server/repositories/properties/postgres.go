// Package properties provides a PostgreSQL-backed repository for listing rows.
package properties

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/wintakam/wintakam/internal/common"
	"github.com/wintakam/wintakam/internal/dbx"
	"github.com/wintakam/wintakam/internal/server/models"
)

const selectColumns = `
	id, title, description, property_type, price, currency, location,
	address, area, bedrooms, bathrooms, image_url, image_urls, status,
	created_at, updated_at, owner_id, features
`

// PostgresRepository implements Repository over dbx.DBTX (satisfied by
// *sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) SelectAll(ctx context.Context) ([]*models.Property, error) {
	query := `SELECT ` + selectColumns + ` FROM properties ORDER BY created_at DESC`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()
	return scanAll(rows)
}

func (r *PostgresRepository) SelectByOwner(ctx context.Context, ownerID string) ([]*models.Property, error) {
	query := `SELECT ` + selectColumns + ` FROM properties WHERE owner_id = $1 ORDER BY created_at DESC`
	rows, err := r.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()
	return scanAll(rows)
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.Property, error) {
	query := `SELECT ` + selectColumns + ` FROM properties WHERE id = $1`
	p, err := scanOne(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return p, nil
}

func (r *PostgresRepository) Create(ctx context.Context, p *models.Property) (*models.Property, error) {
	query := `
		INSERT INTO properties (title, description, property_type, price, currency,
			location, address, area, bedrooms, bathrooms, image_url, image_urls,
			status, owner_id, features)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		RETURNING id, created_at
	`
	err := r.db.QueryRowContext(ctx, query,
		p.Title, p.Description, p.PropertyType, p.Price, p.Currency,
		p.Location, p.Address, p.Area, p.Bedrooms, p.Bathrooms, p.ImageURL,
		nullableJSON(p.ImageURLs), p.Status, p.OwnerID, nullableJSON(p.Features)).
		Scan(&p.ID, &p.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return p, nil
}

// AppendImage adds imageURL to the listing's image_urls array (creating it
// when absent) and backfills the single image_url column on first upload.
func (r *PostgresRepository) AppendImage(ctx context.Context, id, imageURL string) error {
	query := `
		UPDATE properties
		SET image_urls = COALESCE(image_urls, '[]'::jsonb) || to_jsonb($2::text),
		    image_url  = COALESCE(image_url, $2),
		    updated_at = now()
		WHERE id = $1
	`
	res, err := r.db.ExecContext(ctx, query, id, imageURL)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return common.ErrorNotFound
	}
	return nil
}

func scanAll(rows *sql.Rows) ([]*models.Property, error) {
	out := make([]*models.Property, 0)
	for rows.Next() {
		p := &models.Property{}
		if err := scanInto(rows.Scan, p); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return out, nil
}

func scanOne(row *sql.Row) (*models.Property, error) {
	p := &models.Property{}
	if err := scanInto(row.Scan, p); err != nil {
		return nil, err
	}
	return p, nil
}

func scanInto(scan func(dest ...any) error, p *models.Property) error {
	var imageURLs, features []byte
	err := scan(&p.ID, &p.Title, &p.Description, &p.PropertyType, &p.Price,
		&p.Currency, &p.Location, &p.Address, &p.Area, &p.Bedrooms,
		&p.Bathrooms, &p.ImageURL, &imageURLs, &p.Status, &p.CreatedAt,
		&p.UpdatedAt, &p.OwnerID, &features)
	if err != nil {
		return err
	}
	p.ImageURLs = imageURLs
	p.Features = features
	return nil
}

// nullableJSON maps an empty raw message to SQL NULL instead of the invalid
// empty string.
func nullableJSON(raw []byte) any {
	if len(raw) == 0 {
		return nil
	}
	return raw
}
