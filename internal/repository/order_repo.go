package repository

import (
	"context"
	"errors"
	"fmt"

	"storefront_api/internal/model"

	"github.com/jackc/pgx/v5"
)

const orderColumns = "id, user_id, status"

// OrderRepository defines operations for order data
type OrderRepository interface {
	Create(ctx context.Context, userID int, status string) (*model.Order, error)
	FindAll(ctx context.Context) ([]model.Order, error)
	FindByID(ctx context.Context, id int) (*model.Order, error)
	FindCurrentForUser(ctx context.Context, userID int) (*model.Order, error)
	Update(ctx context.Context, id int, patch model.OrderPatch) (*model.Order, error)
	Delete(ctx context.Context, id int) (*model.Order, error)
}

type orderRepository struct {
	db DBTX
}

// NewOrderRepository creates a new OrderRepository
func NewOrderRepository(db DBTX) OrderRepository {
	return &orderRepository{db: db}
}

// Create inserts a new order for userID
func (r *orderRepository) Create(ctx context.Context, userID int, status string) (*model.Order, error) {
	o := &model.Order{}
	sql := `INSERT INTO orders (user_id, status) VALUES ($1, $2) RETURNING ` + orderColumns
	err := r.db.QueryRow(ctx, sql, userID, status).Scan(&o.ID, &o.UserID, &o.Status)
	if err != nil {
		return nil, fmt.Errorf("failed to create order: %w", translatePgError(err))
	}
	return o, nil
}

// FindAll retrieves every order
func (r *orderRepository) FindAll(ctx context.Context) ([]model.Order, error) {
	rows, err := r.db.Query(ctx, `SELECT `+orderColumns+` FROM orders ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query orders: %w", err)
	}
	defer rows.Close()

	orders := []model.Order{}
	for rows.Next() {
		var o model.Order
		if err := rows.Scan(&o.ID, &o.UserID, &o.Status); err != nil {
			return nil, fmt.Errorf("failed to scan order row: %w", err)
		}
		orders = append(orders, o)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating order rows: %w", err)
	}
	return orders, nil
}

// FindByID retrieves an order by its ID
func (r *orderRepository) FindByID(ctx context.Context, id int) (*model.Order, error) {
	o := &model.Order{}
	err := r.db.QueryRow(ctx, `SELECT `+orderColumns+` FROM orders WHERE id = $1`, id).
		Scan(&o.ID, &o.UserID, &o.Status)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.NotFoundByID("Order", id)
		}
		return nil, fmt.Errorf("failed to find order by ID: %w", err)
	}
	return o, nil
}

// FindCurrentForUser returns the user's most recent order that is not
// completed, using the highest id as "most recent". It returns (nil, nil)
// when there is none.
func (r *orderRepository) FindCurrentForUser(ctx context.Context, userID int) (*model.Order, error) {
	o := &model.Order{}
	sql := `SELECT ` + orderColumns + ` FROM orders WHERE user_id = $1 AND status <> $2 ORDER BY id DESC LIMIT 1`
	err := r.db.QueryRow(ctx, sql, userID, model.OrderStatusCompleted).Scan(&o.ID, &o.UserID, &o.Status)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find current order: %w", err)
	}
	return o, nil
}

// Update applies the supplied fields of patch. An empty patch returns the
// current row unchanged.
func (r *orderRepository) Update(ctx context.Context, id int, patch model.OrderPatch) (*model.Order, error) {
	b := newUpdateBuilder("orders")
	b.SetInt("user_id", patch.UserID)
	b.SetString("status", patch.Status)

	if b.Empty() {
		return r.FindByID(ctx, id)
	}

	sql, args := b.Build(id, orderColumns)
	o := &model.Order{}
	err := r.db.QueryRow(ctx, sql, args...).Scan(&o.ID, &o.UserID, &o.Status)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.NotFoundByID("Order", id)
		}
		return nil, fmt.Errorf("failed to update order: %w", translatePgError(err))
	}
	return o, nil
}

// Delete removes an order (its items cascade) and returns the deleted row
func (r *orderRepository) Delete(ctx context.Context, id int) (*model.Order, error) {
	o := &model.Order{}
	err := r.db.QueryRow(ctx, `DELETE FROM orders WHERE id = $1 RETURNING `+orderColumns, id).
		Scan(&o.ID, &o.UserID, &o.Status)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.NotFoundByID("Order", id)
		}
		return nil, fmt.Errorf("failed to delete order: %w", err)
	}
	return o, nil
}
