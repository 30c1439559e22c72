package service

import (
	"errors"
	"fmt"
	"strings"

	"bikeshop/orders-service/internal/app/orders/entity"

	"github.com/google/uuid"
)

var (
	ErrOrderNotFound        = errors.New("order not found")
	ErrForbidden            = errors.New("access to order denied")
	ErrInvalidOrderStatus   = errors.New("invalid order status transition")
	ErrCartEmpty            = errors.New("cart is empty")
	ErrUnauthorized         = errors.New("cart access rejected")
	ErrInvalidConfiguration = errors.New("configuration is no longer valid")
	ErrOutOfStock           = errors.New("option is out of stock")
	ErrProductUnavailable   = errors.New("product is no longer available")
)

// CheckoutError позиция корзины, из-за которой заказ нельзя оформить
type CheckoutError struct {
	Err         error
	CartItemID  uuid.UUID
	ProductID   uuid.UUID
	ProductName string
	Violations  []entity.Violation
	Options     []string // недоступные опции
}

func (e *CheckoutError) Error() string {
	msg := fmt.Sprintf("cart item %s (%s): %v", e.CartItemID, e.ProductName, e.Err)
	if len(e.Options) > 0 {
		msg += ": " + strings.Join(e.Options, ", ")
	}
	return msg
}

func (e *CheckoutError) Unwrap() error {
	return e.Err
}
