package handler

import (
	"net/http"

	"bikeshop/configurator-service/internal/app/configurator/entity"
	"bikeshop/configurator-service/internal/app/configurator/service"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// CartHandler корзина текущего пользователя
type CartHandler struct {
	cartService service.CartServiceInterface
	validator   *validator.Validate
}

func NewCartHandler(cartService service.CartServiceInterface) *CartHandler {
	return &CartHandler{
		cartService: cartService,
		validator:   validator.New(),
	}
}

// GetCart обрабатывает GET /cart, для нового пользователя отдает пустую корзину
func (h *CartHandler) GetCart(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	cart, err := h.cartService.GetCart(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, err, "Failed to get cart")
		return
	}

	c.JSON(http.StatusOK, cart)
}

// AddItem обрабатывает POST /cart/items
// Невалидная конфигурация отклоняется с 422 и списком нарушений
func (h *CartHandler) AddItem(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req entity.AddCartItemRequest
	if !bindJSON(c, h.validator, &req) {
		return
	}

	cart, err := h.cartService.AddItem(c.Request.Context(), userID, &req)
	if err != nil {
		respondServiceError(c, err, "Failed to add item to cart")
		return
	}

	c.JSON(http.StatusCreated, cart)
}

// UpdateItem обрабатывает PATCH /cart/items/:itemId
func (h *CartHandler) UpdateItem(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	itemID, ok := parseIDParam(c, "itemId")
	if !ok {
		return
	}

	var req entity.UpdateCartItemRequest
	if !bindJSON(c, h.validator, &req) {
		return
	}

	cart, err := h.cartService.UpdateItemQuantity(c.Request.Context(), userID, itemID, req.Quantity)
	if err != nil {
		respondServiceError(c, err, "Failed to update cart item")
		return
	}

	c.JSON(http.StatusOK, cart)
}

// RemoveItem обрабатывает DELETE /cart/items/:itemId
func (h *CartHandler) RemoveItem(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	itemID, ok := parseIDParam(c, "itemId")
	if !ok {
		return
	}

	cart, err := h.cartService.RemoveItem(c.Request.Context(), userID, itemID)
	if err != nil {
		respondServiceError(c, err, "Failed to remove cart item")
		return
	}

	c.JSON(http.StatusOK, cart)
}

// ClearCart обрабатывает DELETE /cart
func (h *CartHandler) ClearCart(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	if err := h.cartService.ClearCart(c.Request.Context(), userID); err != nil {
		respondServiceError(c, err, "Failed to clear cart")
		return
	}

	c.JSON(http.StatusOK, entity.SuccessResponse{Message: "Cart cleared"})
}
