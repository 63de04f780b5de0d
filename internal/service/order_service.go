package service

import (
	"context"
	"fmt"

	"storefront_api/internal/logger"
	"storefront_api/internal/metrics"
	"storefront_api/internal/model"
	"storefront_api/internal/repository"
)

// OrderService coordinates orders and their items
type OrderService interface {
	Create(ctx context.Context, userID int, req model.CreateOrderRequest) (*model.OrderWithItems, error)
	CurrentForUser(ctx context.Context, userID int) (*model.OrderWithItems, error)
	List(ctx context.Context) ([]model.Order, error)
	Update(ctx context.Context, id int, patch model.OrderPatch) (*model.Order, error)
	Delete(ctx context.Context, id int) (*model.Order, error)
	UpdateItem(ctx context.Context, id int, patch model.OrderItemPatch) (*model.OrderItem, error)
	DeleteItem(ctx context.Context, id int) (*model.OrderItem, error)
}

type orderService struct {
	orders repository.OrderRepository
	items  repository.OrderItemRepository
}

// NewOrderService creates a new OrderService
func NewOrderService(orders repository.OrderRepository, items repository.OrderItemRepository) OrderService {
	return &orderService{orders: orders, items: items}
}

// Create writes the order, then its items one statement at a time. Items are
// validated up front; a store failure after the order row exists leaves the
// order with the items written so far.
func (s *orderService) Create(ctx context.Context, userID int, req model.CreateOrderRequest) (*model.OrderWithItems, error) {
	for i, it := range req.Items {
		if it.ProductID <= 0 {
			return nil, model.NewValidationError("items[%d]: product_id must be greater than 0", i)
		}
		if it.Quantity <= 0 {
			return nil, model.NewValidationError("items[%d]: quantity must be greater than 0", i)
		}
	}

	status := req.Status
	if status == "" {
		status = model.OrderStatusActive
	}

	order, err := s.orders.Create(ctx, userID, status)
	if err != nil {
		return nil, err
	}
	metrics.OrdersCreatedTotal.Inc()

	log := logger.FromContext(ctx)
	items := make([]model.OrderItem, 0, len(req.Items))
	for _, in := range req.Items {
		it, err := s.items.Create(ctx, order.ID, in)
		if err != nil {
			metrics.OrderItemFailuresTotal.Inc()
			log.Warn().Err(err).
				Int("order_id", order.ID).
				Int("items_written", len(items)).
				Int("items_requested", len(req.Items)).
				Msg("order left partially written")
			return nil, fmt.Errorf("failed to add item to order %d: %w", order.ID, err)
		}
		items = append(items, *it)
	}

	log.Info().Int("order_id", order.ID).Int("items", len(items)).Msg("order created")
	return &model.OrderWithItems{Order: order, Items: items}, nil
}

// CurrentForUser returns the user's latest non-completed order with its items,
// or (nil, nil) when there is none.
func (s *orderService) CurrentForUser(ctx context.Context, userID int) (*model.OrderWithItems, error) {
	order, err := s.orders.FindCurrentForUser(ctx, userID)
	if err != nil || order == nil {
		return nil, err
	}
	items, err := s.items.FindByOrder(ctx, order.ID)
	if err != nil {
		return nil, err
	}
	return &model.OrderWithItems{Order: order, Items: items}, nil
}

func (s *orderService) List(ctx context.Context) ([]model.Order, error) {
	return s.orders.FindAll(ctx)
}

func (s *orderService) Update(ctx context.Context, id int, patch model.OrderPatch) (*model.Order, error) {
	return s.orders.Update(ctx, id, patch)
}

func (s *orderService) Delete(ctx context.Context, id int) (*model.Order, error) {
	return s.orders.Delete(ctx, id)
}

func (s *orderService) UpdateItem(ctx context.Context, id int, patch model.OrderItemPatch) (*model.OrderItem, error) {
	return s.items.Update(ctx, id, patch)
}

func (s *orderService) DeleteItem(ctx context.Context, id int) (*model.OrderItem, error) {
	return s.items.Delete(ctx, id)
}
