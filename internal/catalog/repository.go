package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Aniket760/E-Coomarse/internal/domain"
	"github.com/lib/pq"
)

var ErrProductNotFound = errors.New("product not found")

// ProductRepository is the live catalog as the rest of the app sees it.
// Consumers define this interface, not the Postgres implementation.
type ProductRepository interface {
	ListActive(ctx context.Context) ([]*domain.Product, error)
	ListFeatured(ctx context.Context) ([]*domain.Product, error)
	GetActive(ctx context.Context, id int64) (*domain.Product, error)
	FindActiveByIDs(ctx context.Context, ids []int64) ([]*domain.Product, error)
}

type Repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

const productColumns = `id, name, description, price, image_url, is_featured, is_active, created_at, updated_at`

// ListActive returns every purchasable product in catalog order.
func (r *Repository) ListActive(ctx context.Context) ([]*domain.Product, error) {
	query := `SELECT ` + productColumns + `
	          FROM products
	          WHERE is_active
	          ORDER BY name`

	return r.queryProducts(ctx, query)
}

// ListFeatured returns the active products flagged for the home page.
func (r *Repository) ListFeatured(ctx context.Context) ([]*domain.Product, error) {
	query := `SELECT ` + productColumns + `
	          FROM products
	          WHERE is_active AND is_featured
	          ORDER BY name`

	return r.queryProducts(ctx, query)
}

// GetActive returns one purchasable product. Inactive and unknown ids
// both come back as ErrProductNotFound.
func (r *Repository) GetActive(ctx context.Context, id int64) (*domain.Product, error) {
	query := `SELECT ` + productColumns + `
	          FROM products
	          WHERE id = $1 AND is_active`

	p := &domain.Product{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&p.ID,
		&p.Name,
		&p.Description,
		&p.Price,
		&p.ImageURL,
		&p.IsFeatured,
		&p.IsActive,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrProductNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query product by id: %w", err)
	}

	return p, nil
}

// FindActiveByIDs returns the purchasable subset of ids in catalog
// order. Missing and inactive ids are simply absent from the result.
func (r *Repository) FindActiveByIDs(ctx context.Context, ids []int64) ([]*domain.Product, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	query := `SELECT ` + productColumns + `
	          FROM products
	          WHERE id = ANY($1) AND is_active
	          ORDER BY name`

	return r.queryProducts(ctx, query, pq.Array(ids))
}

func (r *Repository) queryProducts(ctx context.Context, query string, args ...any) ([]*domain.Product, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	var products []*domain.Product
	for rows.Next() {
		p := &domain.Product{}
		err := rows.Scan(
			&p.ID,
			&p.Name,
			&p.Description,
			&p.Price,
			&p.ImageURL,
			&p.IsFeatured,
			&p.IsActive,
			&p.CreatedAt,
			&p.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return products, nil
}
