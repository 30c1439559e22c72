package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"bikeshop/orders-service/internal/app/orders/entity"
	"bikeshop/orders-service/internal/app/orders/infrastructure"
	"bikeshop/orders-service/internal/app/orders/repository"
	"bikeshop/pkg/logger"
	"bikeshop/pkg/metrics"

	"github.com/google/uuid"
)

// OrderService оформляет заказы из корзины configurator-service
// и сообщает складу о списании и возврате опций через Kafka
type OrderService struct {
	orderRepo    repository.OrderRepository
	configurator infrastructure.ConfiguratorClient
	publisher    infrastructure.MessagePublisher
	now          func() time.Time
}

func NewOrderService(
	orderRepo repository.OrderRepository,
	configurator infrastructure.ConfiguratorClient,
	publisher infrastructure.MessagePublisher,
) *OrderService {
	return &OrderService{
		orderRepo:    orderRepo,
		configurator: configurator,
		publisher:    publisher,
		now:          time.Now,
	}
}

// Checkout оформляет заказ из корзины пользователя
// 1. Каждая позиция заново проверяется и пересчитывается конфигуратором
// 2. Заказ с позициями сохраняется в одной транзакции
// 3. Складу уходят STOCK_ADJUSTED с отрицательной дельтой
// 4. Корзина очищается
// Ошибки шагов 3 и 4 логируются, заказ уже создан
func (s *OrderService) Checkout(ctx context.Context, userID uuid.UUID, authToken string) (*entity.Order, error) {
	order, err := s.buildOrder(ctx, userID, authToken)
	if err != nil {
		var checkoutErr *CheckoutError
		if errors.As(err, &checkoutErr) || errors.Is(err, ErrCartEmpty) {
			metrics.RecordCheckout(metrics.CheckoutRejected)
		} else {
			metrics.RecordCheckout(metrics.CheckoutFailed)
		}
		return nil, err
	}

	if err := s.orderRepo.Create(ctx, order); err != nil {
		metrics.RecordCheckout(metrics.CheckoutFailed)
		return nil, fmt.Errorf("failed to save order: %w", err)
	}
	metrics.RecordCheckout(metrics.CheckoutSuccess)

	s.publishStockAdjustments(ctx, order, -1)

	if err := s.configurator.ClearCart(ctx, authToken); err != nil {
		logger.Warn().Err(err).
			Str("order_id", order.ID.String()).
			Str("user_id", userID.String()).
			Msg("Order created but cart was not cleared")
	}

	logger.Info().
		Str("order_id", order.ID.String()).
		Str("user_id", userID.String()).
		Str("total", order.TotalPrice.StringFixed(2)).
		Int("items", len(order.Items)).
		Msg("Order created")

	return order, nil
}

func (s *OrderService) buildOrder(ctx context.Context, userID uuid.UUID, authToken string) (*entity.Order, error) {
	cart, err := s.configurator.GetCart(ctx, authToken)
	if err != nil {
		if errors.Is(err, infrastructure.ErrUnauthorized) {
			return nil, ErrUnauthorized
		}
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}
	if len(cart.Items) == 0 {
		return nil, ErrCartEmpty
	}

	now := s.now()
	order := &entity.Order{
		ID:        uuid.New(),
		UserID:    userID,
		Status:    entity.OrderStatusPending,
		Items:     make([]entity.OrderItem, 0, len(cart.Items)),
		CreatedAt: now,
		UpdatedAt: now,
	}

	for _, cartItem := range cart.Items {
		item, err := s.priceCartItem(ctx, cartItem)
		if err != nil {
			return nil, err
		}
		item.OrderID = order.ID
		order.Items = append(order.Items, *item)
	}
	order.Recalculate()

	return order, nil
}

// priceCartItem проверяет позицию по текущему каталогу и берет актуальную цену
// Валидность, наличие и цена берутся из одного ответа конфигуратора
func (s *OrderService) priceCartItem(ctx context.Context, cartItem entity.CartItem) (*entity.OrderItem, error) {
	optionIDs := cartItem.OptionIDs()

	product, err := s.configurator.ConfigureProduct(ctx, cartItem.ProductID, optionIDs)
	if err != nil {
		if errors.Is(err, infrastructure.ErrNotFound) {
			return nil, &CheckoutError{
				Err:         ErrProductUnavailable,
				CartItemID:  cartItem.ID,
				ProductID:   cartItem.ProductID,
				ProductName: cartItem.Product.Name,
			}
		}
		return nil, err
	}

	if !product.IsValidConfiguration {
		return nil, &CheckoutError{
			Err:         ErrInvalidConfiguration,
			CartItemID:  cartItem.ID,
			ProductID:   cartItem.ProductID,
			ProductName: product.Name,
			Violations:  product.Violations,
		}
	}

	selected := product.SelectedOptions()
	var unavailable []string
	for _, opt := range selected {
		if !opt.InStock {
			unavailable = append(unavailable, opt.DisplayName)
		}
	}
	if len(unavailable) > 0 {
		return nil, &CheckoutError{
			Err:         ErrOutOfStock,
			CartItemID:  cartItem.ID,
			ProductID:   cartItem.ProductID,
			ProductName: product.Name,
			Options:     unavailable,
		}
	}

	if !product.Price.Equal(cartItem.UnitPrice) {
		logger.Info().
			Str("cart_item_id", cartItem.ID.String()).
			Str("cart_price", cartItem.UnitPrice.StringFixed(2)).
			Str("current_price", product.Price.StringFixed(2)).
			Msg("Price changed since item was added to cart")
	}

	options := make([]entity.OrderItemOption, 0, len(selected))
	for _, opt := range selected {
		options = append(options, entity.OrderItemOption{
			OptionID:      opt.ID,
			OptionGroupID: opt.OptionGroupID,
			Name:          opt.Name,
			DisplayName:   opt.DisplayName,
			Price:         product.LinePrice(opt.ID),
		})
	}

	return &entity.OrderItem{
		ID:          uuid.New(),
		ProductID:   cartItem.ProductID,
		ProductName: product.Name,
		Quantity:    cartItem.Quantity,
		UnitPrice:   product.Price,
		Options:     options,
	}, nil
}

// GetOrder владелец или администратор
func (s *OrderService) GetOrder(ctx context.Context, orderID, userID uuid.UUID, isAdmin bool) (*entity.Order, error) {
	order, err := s.getOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !isAdmin && order.UserID != userID {
		return nil, ErrForbidden
	}
	return order, nil
}

func (s *OrderService) GetUserOrders(ctx context.Context, userID uuid.UUID) ([]entity.Order, error) {
	orders, err := s.orderRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user orders: %w", err)
	}
	return orders, nil
}

func (s *OrderService) ListOrders(ctx context.Context, status entity.OrderStatus) ([]entity.Order, error) {
	orders, err := s.orderRepo.List(ctx, status)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	return orders, nil
}

// CancelOrder покупатель может отменить только свой заказ в статусе pending
func (s *OrderService) CancelOrder(ctx context.Context, orderID, userID uuid.UUID) (*entity.Order, error) {
	order, err := s.getOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.UserID != userID {
		return nil, ErrForbidden
	}
	if order.Status != entity.OrderStatusPending {
		return nil, ErrInvalidOrderStatus
	}
	return s.transition(ctx, order, entity.OrderStatusCancelled)
}

// UpdateOrderStatus смена статуса администратором по допустимым переходам
func (s *OrderService) UpdateOrderStatus(ctx context.Context, orderID uuid.UUID, status entity.OrderStatus) (*entity.Order, error) {
	order, err := s.getOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	return s.transition(ctx, order, status)
}

func (s *OrderService) transition(ctx context.Context, order *entity.Order, to entity.OrderStatus) (*entity.Order, error) {
	if !order.Status.CanTransitionTo(to) {
		return nil, ErrInvalidOrderStatus
	}

	if err := s.orderRepo.UpdateStatus(ctx, order.ID, order.Status, to); err != nil {
		switch {
		case errors.Is(err, repository.ErrOrderNotFound):
			return nil, ErrOrderNotFound
		case errors.Is(err, repository.ErrStatusConflict):
			return nil, ErrInvalidOrderStatus
		}
		return nil, fmt.Errorf("failed to update order status: %w", err)
	}

	logger.Info().
		Str("order_id", order.ID.String()).
		Str("from", string(order.Status)).
		Str("to", string(to)).
		Msg("Order status changed")

	order.Status = to
	order.UpdatedAt = s.now()
	metrics.RecordOrderStatusChange(string(to))

	// Отмененный заказ возвращает опции на склад
	if to == entity.OrderStatusCancelled {
		s.publishStockAdjustments(ctx, order, 1)
	}

	return order, nil
}

func (s *OrderService) getOrder(ctx context.Context, orderID uuid.UUID) (*entity.Order, error) {
	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to get order: %w", err)
	}
	return order, nil
}

// publishStockAdjustments sign -1 списывает опции заказа, +1 возвращает
func (s *OrderService) publishStockAdjustments(ctx context.Context, order *entity.Order, sign int) {
	for _, demand := range order.StockDemand() {
		event := entity.InventoryEvent{
			EventType: entity.EventTypeStockAdjusted,
			OptionID:  demand.OptionID,
			Delta:     sign * demand.Quantity,
			OrderID:   order.ID,
			Timestamp: s.now(),
		}

		data, err := json.Marshal(event)
		if err != nil {
			logger.Error().Err(err).Msg("Failed to marshal inventory event")
			continue
		}

		if err := s.publisher.PublishMessage(ctx, demand.OptionID.String(), data); err != nil {
			logger.Error().Err(err).
				Str("order_id", order.ID.String()).
				Str("option_id", demand.OptionID.String()).
				Int("delta", event.Delta).
				Msg("Failed to publish inventory event")
		}
	}
}
