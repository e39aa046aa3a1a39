// Package postgres adapts a catalog service database into a ProductSource.
// It is read-only from the state layer's point of view: the remote catalog
// owns this data, the stores only snapshot it.
package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/MadhaSivanandaReddy/ShopHub/internal/domain"

	_ "github.com/jackc/pgx/v5/stdlib"
)

// Source reads the product collection from a catalog database.
type Source struct {
	db *sql.DB
}

// Open connects to the catalog database with the pgx driver and returns a
// Source over it.
func Open(dsn string) (*Source, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog database: %w", err)
	}
	return &Source{db: db}, nil
}

// New wraps an existing database handle.
func New(db *sql.DB) *Source {
	return &Source{db: db}
}

// Close releases the underlying database handle.
func (s *Source) Close() error {
	return s.db.Close()
}

// Seed inserts products into the catalog table. The demo binary and tests
// use it to stand up a catalog to fetch from.
func (s *Source) Seed(ctx context.Context, products []domain.Product) error {
	query := `
		INSERT INTO products (id, name, description, price, image_url, category, stock, featured, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	for _, p := range products {
		_, err := s.db.ExecContext(
			ctx,
			query,
			p.ID,
			p.Name,
			p.Description,
			p.Price,
			p.ImageURL,
			p.Category,
			p.Stock,
			p.Featured,
			p.CreatedAt,
			p.UpdatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to seed product %s: %w", p.ID, err)
		}
	}

	return nil
}

// FetchProducts retrieves the full product collection in insertion order.
func (s *Source) FetchProducts(ctx context.Context) ([]domain.Product, error) {
	query := `
		SELECT id, name, description, price, image_url, category, stock, featured, created_at, updated_at
		FROM products
		ORDER BY created_at, id
	`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch products: %w", err)
	}
	defer rows.Close()

	products := []domain.Product{}
	for rows.Next() {
		var p domain.Product
		err := rows.Scan(
			&p.ID,
			&p.Name,
			&p.Description,
			&p.Price,
			&p.ImageURL,
			&p.Category,
			&p.Stock,
			&p.Featured,
			&p.CreatedAt,
			&p.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, p)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating products: %w", err)
	}

	return products, nil
}
