package handler

import (
	"net/http"

	"storefront_api/internal/model"
	"storefront_api/internal/service"

	"github.com/gin-gonic/gin"
)

// OrderHandler handles order and order item requests
type OrderHandler struct {
	service service.OrderService
}

// NewOrderHandler creates a new OrderHandler
func NewOrderHandler(s service.OrderService) *OrderHandler {
	return &OrderHandler{service: s}
}

func (h *OrderHandler) List(c *gin.Context) {
	orders, err := h.service.List(c.Request.Context())
	if err != nil {
		respondError(c, err, "retrieve orders")
		return
	}
	c.JSON(http.StatusOK, orders)
}

func (h *OrderHandler) Current(c *gin.Context) {
	userID, ok := pathID(c, "userId")
	if !ok {
		return
	}
	out, err := h.service.CurrentForUser(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err, "retrieve current order")
		return
	}
	if out == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "No active order found"})
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *OrderHandler) Create(c *gin.Context) {
	userID, ok := pathID(c, "userId")
	if !ok {
		return
	}
	var req model.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": bindError(err)})
		return
	}
	out, err := h.service.Create(c.Request.Context(), userID, req)
	if err != nil {
		respondError(c, err, "create order")
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *OrderHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var patch model.OrderPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": bindError(err)})
		return
	}
	o, err := h.service.Update(c.Request.Context(), id, patch)
	if err != nil {
		respondError(c, err, "update order")
		return
	}
	c.JSON(http.StatusOK, o)
}

func (h *OrderHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	o, err := h.service.Delete(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "delete order")
		return
	}
	c.JSON(http.StatusOK, o)
}

func (h *OrderHandler) UpdateItem(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var patch model.OrderItemPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": bindError(err)})
		return
	}
	it, err := h.service.UpdateItem(c.Request.Context(), id, patch)
	if err != nil {
		respondError(c, err, "update order item")
		return
	}
	c.JSON(http.StatusOK, it)
}

func (h *OrderHandler) DeleteItem(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	it, err := h.service.DeleteItem(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "delete order item")
		return
	}
	c.JSON(http.StatusOK, it)
}
