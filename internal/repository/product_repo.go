package repository

import (
	"context"
	"errors"
	"fmt"

	"storefront_api/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// price is read back as text so it round-trips through decimal.Decimal exactly
const productColumns = "id, name, price::text, category"

// ProductRepository defines operations for product data
type ProductRepository interface {
	Create(ctx context.Context, req model.CreateProductRequest) (*model.Product, error)
	FindAll(ctx context.Context) ([]model.Product, error)
	FindByID(ctx context.Context, id int) (*model.Product, error)
	Update(ctx context.Context, id int, patch model.ProductPatch) (*model.Product, error)
	Delete(ctx context.Context, id int) (*model.Product, error)
}

type productRepository struct {
	db DBTX
}

// NewProductRepository creates a new ProductRepository
func NewProductRepository(db DBTX) ProductRepository {
	return &productRepository{db: db}
}

// scanProduct reads one productColumns row
func scanProduct(row pgx.Row) (*model.Product, error) {
	p := &model.Product{}
	var price string
	if err := row.Scan(&p.ID, &p.Name, &price, &p.Category); err != nil {
		return nil, err
	}
	d, err := decimal.NewFromString(price)
	if err != nil {
		return nil, fmt.Errorf("invalid price %q for product %d: %w", price, p.ID, err)
	}
	p.Price = d
	return p, nil
}

// Create inserts a new product
func (r *productRepository) Create(ctx context.Context, req model.CreateProductRequest) (*model.Product, error) {
	if req.Name == "" {
		return nil, model.NewValidationError("Missing required fields")
	}
	var category *string
	if req.Category != nil && *req.Category != "" {
		category = req.Category
	}

	sql := `INSERT INTO products (name, price, category) VALUES ($1, $2, $3) RETURNING ` + productColumns
	p, err := scanProduct(r.db.QueryRow(ctx, sql, req.Name, req.Price, category))
	if err != nil {
		return nil, fmt.Errorf("failed to create product: %w", translatePgError(err))
	}
	return p, nil
}

// FindAll retrieves every product
func (r *productRepository) FindAll(ctx context.Context) ([]model.Product, error) {
	rows, err := r.db.Query(ctx, `SELECT `+productColumns+` FROM products ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	products := []model.Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product row: %w", err)
		}
		products = append(products, *p)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating product rows: %w", err)
	}
	return products, nil
}

// FindByID retrieves a product by its ID
func (r *productRepository) FindByID(ctx context.Context, id int) (*model.Product, error) {
	p, err := scanProduct(r.db.QueryRow(ctx, `SELECT `+productColumns+` FROM products WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.NotFoundByID("Product", id)
		}
		return nil, fmt.Errorf("failed to find product by ID: %w", err)
	}
	return p, nil
}

// Update applies the supplied fields of patch. An empty patch returns the
// current row unchanged.
func (r *productRepository) Update(ctx context.Context, id int, patch model.ProductPatch) (*model.Product, error) {
	b := newUpdateBuilder("products")
	b.SetString("name", patch.Name)
	if patch.Price != nil {
		b.Set("price", *patch.Price)
	}
	b.SetString("category", patch.Category)

	if b.Empty() {
		return r.FindByID(ctx, id)
	}

	sql, args := b.Build(id, productColumns)
	p, err := scanProduct(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.NotFoundByID("Product", id)
		}
		return nil, fmt.Errorf("failed to update product: %w", translatePgError(err))
	}
	return p, nil
}

// Delete removes a product and returns the deleted row
func (r *productRepository) Delete(ctx context.Context, id int) (*model.Product, error) {
	p, err := scanProduct(r.db.QueryRow(ctx, `DELETE FROM products WHERE id = $1 RETURNING `+productColumns, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.NotFoundByID("Product", id)
		}
		return nil, fmt.Errorf("failed to delete product: %w", translatePgError(err))
	}
	return p, nil
}
