package handler

import (
	"net/http"

	"bikeshop/orders-service/internal/app/orders/entity"
	"bikeshop/orders-service/internal/app/orders/service"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// OrderHandler обрабатывает HTTP запросы для заказов
type OrderHandler struct {
	orderService service.OrderServiceInterface
	validator    *validator.Validate
}

func NewOrderHandler(orderService service.OrderServiceInterface) *OrderHandler {
	return &OrderHandler{
		orderService: orderService,
		validator:    validator.New(),
	}
}

// Checkout обрабатывает POST /orders
// Заказ оформляется из текущей корзины пользователя, тело запроса не нужно
func (h *OrderHandler) Checkout(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	order, err := h.orderService.Checkout(c.Request.Context(), userID, c.GetString("auth_token"))
	if err != nil {
		respondServiceError(c, err, "Failed to create order")
		return
	}

	c.JSON(http.StatusCreated, order)
}

// GetUserOrders обрабатывает GET /orders ("Мои заказы")
func (h *OrderHandler) GetUserOrders(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	orders, err := h.orderService.GetUserOrders(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, err, "Failed to get orders")
		return
	}

	c.JSON(http.StatusOK, entity.OrderListResponse{Orders: orders, Total: len(orders)})
}

// GetOrder обрабатывает GET /orders/:id
func (h *OrderHandler) GetOrder(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	orderID, ok := parseOrderID(c)
	if !ok {
		return
	}

	order, err := h.orderService.GetOrder(c.Request.Context(), orderID, userID, c.GetBool("is_admin"))
	if err != nil {
		respondServiceError(c, err, "Failed to get order")
		return
	}

	c.JSON(http.StatusOK, order)
}

// CancelOrder обрабатывает POST /orders/:id/cancel
func (h *OrderHandler) CancelOrder(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	orderID, ok := parseOrderID(c)
	if !ok {
		return
	}

	order, err := h.orderService.CancelOrder(c.Request.Context(), orderID, userID)
	if err != nil {
		respondServiceError(c, err, "Failed to cancel order")
		return
	}

	c.JSON(http.StatusOK, order)
}

// ListOrders обрабатывает GET /admin/orders?status=
func (h *OrderHandler) ListOrders(c *gin.Context) {
	status := entity.OrderStatus(c.Query("status"))
	if status != "" {
		if err := h.validator.Var(string(status), "oneof=pending confirmed shipped delivered cancelled"); err != nil {
			respondError(c, http.StatusBadRequest, "Invalid status filter")
			return
		}
	}

	orders, err := h.orderService.ListOrders(c.Request.Context(), status)
	if err != nil {
		respondServiceError(c, err, "Failed to list orders")
		return
	}

	c.JSON(http.StatusOK, entity.OrderListResponse{Orders: orders, Total: len(orders)})
}

// UpdateOrderStatus обрабатывает PATCH /admin/orders/:id/status
func (h *OrderHandler) UpdateOrderStatus(c *gin.Context) {
	orderID, ok := parseOrderID(c)
	if !ok {
		return
	}

	var req entity.UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid status")
		return
	}

	order, err := h.orderService.UpdateOrderStatus(c.Request.Context(), orderID, req.Status)
	if err != nil {
		respondServiceError(c, err, "Failed to update order status")
		return
	}

	c.JSON(http.StatusOK, order)
}
