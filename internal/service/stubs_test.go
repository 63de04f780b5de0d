package service

import (
	"context"
	"errors"

	"storefront_api/internal/model"
)

type stubUserRepo struct {
	byUsername map[string]*model.User
	err        error
}

func (r *stubUserRepo) Create(ctx context.Context, req model.CreateUserRequest, actorID *int) (*model.User, error) {
	return nil, errors.New("not implemented")
}

func (r *stubUserRepo) FindAll(ctx context.Context) ([]model.User, error) {
	return nil, errors.New("not implemented")
}

func (r *stubUserRepo) FindByID(ctx context.Context, id int) (*model.User, error) {
	return nil, errors.New("not implemented")
}

func (r *stubUserRepo) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	return r.FindCredentials(ctx, username)
}

func (r *stubUserRepo) FindCredentials(ctx context.Context, username string) (*model.User, error) {
	if r.err != nil {
		return nil, r.err
	}
	u, ok := r.byUsername[username]
	if !ok {
		return nil, &model.NotFoundError{Entity: "User", Field: "username", Value: username}
	}
	return u, nil
}

func (r *stubUserRepo) Update(ctx context.Context, id int, patch model.UserPatch, actorID *int) (*model.User, error) {
	return nil, errors.New("not implemented")
}

func (r *stubUserRepo) Delete(ctx context.Context, id int) (*model.User, error) {
	return nil, errors.New("not implemented")
}

type stubOrderRepo struct {
	nextID  int
	created []model.Order
	current *model.Order
}

func (r *stubOrderRepo) Create(ctx context.Context, userID int, status string) (*model.Order, error) {
	r.nextID++
	o := model.Order{ID: r.nextID, UserID: userID, Status: status}
	r.created = append(r.created, o)
	return &o, nil
}

func (r *stubOrderRepo) FindAll(ctx context.Context) ([]model.Order, error) {
	return r.created, nil
}

func (r *stubOrderRepo) FindByID(ctx context.Context, id int) (*model.Order, error) {
	return nil, model.NotFoundByID("Order", id)
}

func (r *stubOrderRepo) FindCurrentForUser(ctx context.Context, userID int) (*model.Order, error) {
	return r.current, nil
}

func (r *stubOrderRepo) Update(ctx context.Context, id int, patch model.OrderPatch) (*model.Order, error) {
	return nil, model.NotFoundByID("Order", id)
}

func (r *stubOrderRepo) Delete(ctx context.Context, id int) (*model.Order, error) {
	return nil, model.NotFoundByID("Order", id)
}

// stubItemRepo fails every insert from failAt onward (0 disables)
type stubItemRepo struct {
	failAt  int
	written []model.OrderItem
}

func (r *stubItemRepo) Create(ctx context.Context, orderID int, item model.OrderItemInput) (*model.OrderItem, error) {
	if r.failAt > 0 && len(r.written)+1 >= r.failAt {
		return nil, errors.New("connection reset")
	}
	it := model.OrderItem{ID: len(r.written) + 1, OrderID: orderID, ProductID: item.ProductID, Quantity: item.Quantity}
	r.written = append(r.written, it)
	return &it, nil
}

func (r *stubItemRepo) FindByOrder(ctx context.Context, orderID int) ([]model.OrderItem, error) {
	items := []model.OrderItem{}
	for _, it := range r.written {
		if it.OrderID == orderID {
			items = append(items, it)
		}
	}
	return items, nil
}

func (r *stubItemRepo) FindByID(ctx context.Context, id int) (*model.OrderItem, error) {
	return nil, model.NotFoundByID("OrderItem", id)
}

func (r *stubItemRepo) Update(ctx context.Context, id int, patch model.OrderItemPatch) (*model.OrderItem, error) {
	return nil, model.NotFoundByID("OrderItem", id)
}

func (r *stubItemRepo) Delete(ctx context.Context, id int) (*model.OrderItem, error) {
	return nil, model.NotFoundByID("OrderItem", id)
}
