package model

const (
	OrderStatusActive    = "active"
	OrderStatusCompleted = "completed" // terminal
)

// Order belongs to a single user
type Order struct {
	ID     int    `json:"id"`
	UserID int    `json:"user_id"`
	Status string `json:"status"`
}

// OrderItem is one product line of an order
type OrderItem struct {
	ID        int `json:"id"`
	OrderID   int `json:"order_id"`
	ProductID int `json:"product_id"`
	Quantity  int `json:"quantity"`
}

// OrderWithItems is the response shape of the order endpoints
type OrderWithItems struct {
	Order *Order      `json:"order"`
	Items []OrderItem `json:"items"`
}

type OrderItemInput struct {
	ProductID int `json:"product_id" binding:"required,gt=0"`
	Quantity  int `json:"quantity" binding:"required,gt=0"`
}

type CreateOrderRequest struct {
	Status string           `json:"status"`
	Items  []OrderItemInput `json:"items" binding:"dive"`
}

type OrderPatch struct {
	UserID *int    `json:"user_id,omitempty" binding:"omitempty,gt=0"`
	Status *string `json:"status,omitempty"`
}

type OrderItemPatch struct {
	OrderID   *int `json:"order_id,omitempty" binding:"omitempty,gt=0"`
	ProductID *int `json:"product_id,omitempty" binding:"omitempty,gt=0"`
	Quantity  *int `json:"quantity,omitempty" binding:"omitempty,gt=0"`
}
