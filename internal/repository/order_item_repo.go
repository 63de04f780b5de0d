package repository

import (
	"context"
	"errors"
	"fmt"

	"storefront_api/internal/model"

	"github.com/jackc/pgx/v5"
)

const orderItemColumns = "id, order_id, product_id, quantity"

// OrderItemRepository defines operations for order item data
type OrderItemRepository interface {
	Create(ctx context.Context, orderID int, item model.OrderItemInput) (*model.OrderItem, error)
	FindByOrder(ctx context.Context, orderID int) ([]model.OrderItem, error)
	FindByID(ctx context.Context, id int) (*model.OrderItem, error)
	Update(ctx context.Context, id int, patch model.OrderItemPatch) (*model.OrderItem, error)
	Delete(ctx context.Context, id int) (*model.OrderItem, error)
}

type orderItemRepository struct {
	db DBTX
}

// NewOrderItemRepository creates a new OrderItemRepository
func NewOrderItemRepository(db DBTX) OrderItemRepository {
	return &orderItemRepository{db: db}
}

func scanOrderItem(row pgx.Row) (*model.OrderItem, error) {
	it := &model.OrderItem{}
	if err := row.Scan(&it.ID, &it.OrderID, &it.ProductID, &it.Quantity); err != nil {
		return nil, err
	}
	return it, nil
}

// Create inserts one item of orderID
func (r *orderItemRepository) Create(ctx context.Context, orderID int, item model.OrderItemInput) (*model.OrderItem, error) {
	if item.Quantity <= 0 {
		return nil, model.NewValidationError("quantity must be greater than 0")
	}
	sql := `INSERT INTO order_items (order_id, product_id, quantity) VALUES ($1, $2, $3) RETURNING ` + orderItemColumns
	it, err := scanOrderItem(r.db.QueryRow(ctx, sql, orderID, item.ProductID, item.Quantity))
	if err != nil {
		return nil, fmt.Errorf("failed to create order item: %w", translatePgError(err))
	}
	return it, nil
}

// FindByOrder lists the items of an order
func (r *orderItemRepository) FindByOrder(ctx context.Context, orderID int) ([]model.OrderItem, error) {
	rows, err := r.db.Query(ctx, `SELECT `+orderItemColumns+` FROM order_items WHERE order_id = $1 ORDER BY id`, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to query order items: %w", err)
	}
	defer rows.Close()

	items := []model.OrderItem{}
	for rows.Next() {
		it, err := scanOrderItem(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan order item row: %w", err)
		}
		items = append(items, *it)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating order item rows: %w", err)
	}
	return items, nil
}

// FindByID retrieves an order item by its ID
func (r *orderItemRepository) FindByID(ctx context.Context, id int) (*model.OrderItem, error) {
	it, err := scanOrderItem(r.db.QueryRow(ctx, `SELECT `+orderItemColumns+` FROM order_items WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.NotFoundByID("OrderItem", id)
		}
		return nil, fmt.Errorf("failed to find order item by ID: %w", err)
	}
	return it, nil
}

// Update applies the supplied fields of patch. An empty patch returns the
// current row unchanged.
func (r *orderItemRepository) Update(ctx context.Context, id int, patch model.OrderItemPatch) (*model.OrderItem, error) {
	if patch.Quantity != nil && *patch.Quantity <= 0 {
		return nil, model.NewValidationError("quantity must be greater than 0")
	}

	b := newUpdateBuilder("order_items")
	b.SetInt("order_id", patch.OrderID)
	b.SetInt("product_id", patch.ProductID)
	b.SetInt("quantity", patch.Quantity)

	if b.Empty() {
		return r.FindByID(ctx, id)
	}

	sql, args := b.Build(id, orderItemColumns)
	it, err := scanOrderItem(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.NotFoundByID("OrderItem", id)
		}
		return nil, fmt.Errorf("failed to update order item: %w", translatePgError(err))
	}
	return it, nil
}

// Delete removes an order item and returns the deleted row
func (r *orderItemRepository) Delete(ctx context.Context, id int) (*model.OrderItem, error) {
	it, err := scanOrderItem(r.db.QueryRow(ctx, `DELETE FROM order_items WHERE id = $1 RETURNING `+orderItemColumns, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.NotFoundByID("OrderItem", id)
		}
		return nil, fmt.Errorf("failed to delete order item: %w", err)
	}
	return it, nil
}
