package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"bikeshop/configurator-service/internal/app/configurator/entity"
	"bikeshop/configurator-service/internal/app/configurator/repository"
	"bikeshop/pkg/logger"
	"bikeshop/pkg/metrics"

	"github.com/google/uuid"
)

// Evaluator вычисляет конфигурацию товара
type Evaluator interface {
	Evaluate(ctx context.Context, productID uuid.UUID, optionIDs []uuid.UUID) (*Evaluation, error)
}

const maxCartAttempts = 3

// CartService корзина покупателя
// Позиция попадает в корзину только с валидной конфигурацией и снимком цены
type CartService struct {
	cartRepo  repository.CartRepository
	evaluator Evaluator
	now       func() time.Time
}

func NewCartService(cartRepo repository.CartRepository, evaluator Evaluator) *CartService {
	return &CartService{
		cartRepo:  cartRepo,
		evaluator: evaluator,
		now:       time.Now,
	}
}

// GetCart возвращает корзину; если ее нет, отдает пустую без сохранения
func (s *CartService) GetCart(ctx context.Context, userID uuid.UUID) (*entity.Cart, error) {
	cart, err := s.cartRepo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrCartNotFound) {
			return entity.NewCart(userID, s.now()), nil
		}
		return nil, fmt.Errorf("failed to get cart: %w", err)
	}
	return cart, nil
}

// AddItem добавляет сконфигурированный товар
// Та же комбинация товара и опций увеличивает количество существующей позиции
func (s *CartService) AddItem(ctx context.Context, userID uuid.UUID, req *entity.AddCartItemRequest) (*entity.Cart, error) {
	if req.Quantity < 1 {
		return nil, ErrInvalidQuantity
	}

	evaluation, err := s.evaluator.Evaluate(ctx, req.ProductID, req.OptionIDs)
	if err != nil {
		return nil, err
	}
	if !evaluation.Validation.IsValid {
		metrics.CartItemsAdded.WithLabelValues("rejected").Inc()
		return nil, &InvalidConfigurationError{
			Incomplete: evaluation.Validation.Incomplete,
			Violations: evaluation.Validation.Violations,
		}
	}

	optionIDs := evaluation.Selection.IDs()
	unitPrice := evaluation.Price.Total

	cart, err := s.update(ctx, userID, true, func(cart *entity.Cart, now time.Time) error {
		if item := cart.FindSameConfiguration(req.ProductID, optionIDs); item != nil {
			item.Quantity += req.Quantity
			item.UnitPrice = unitPrice
			item.UpdatedAt = now
			return nil
		}
		cart.Items = append(cart.Items, entity.CartItem{
			ID:          uuid.New(),
			ProductID:   req.ProductID,
			Product:     productSnapshot(evaluation.Product),
			Quantity:    req.Quantity,
			UnitPrice:   unitPrice,
			ItemOptions: optionSnapshots(evaluation),
			CreatedAt:   now,
			UpdatedAt:   now,
		})
		return nil
	})
	if err != nil {
		return nil, err
	}

	metrics.CartItemsAdded.WithLabelValues("added").Inc()
	logger.Info().
		Str("user_id", userID.String()).
		Str("product_id", req.ProductID.String()).
		Int("quantity", req.Quantity).
		Str("unit_price", unitPrice.String()).
		Msg("Item added to cart")

	return cart, nil
}

func (s *CartService) UpdateItemQuantity(ctx context.Context, userID, itemID uuid.UUID, quantity int) (*entity.Cart, error) {
	if quantity < 1 {
		return nil, ErrInvalidQuantity
	}

	return s.update(ctx, userID, false, func(cart *entity.Cart, now time.Time) error {
		item := cart.FindItem(itemID)
		if item == nil {
			return ErrCartItemNotFound
		}
		item.Quantity = quantity
		item.UpdatedAt = now
		return nil
	})
}

func (s *CartService) RemoveItem(ctx context.Context, userID, itemID uuid.UUID) (*entity.Cart, error) {
	return s.update(ctx, userID, false, func(cart *entity.Cart, _ time.Time) error {
		if !cart.RemoveItem(itemID) {
			return ErrCartItemNotFound
		}
		return nil
	})
}

// ClearCart удаляет корзину; отсутствие корзины не ошибка
func (s *CartService) ClearCart(ctx context.Context, userID uuid.UUID) error {
	if err := s.cartRepo.DeleteByUserID(ctx, userID); err != nil && !errors.Is(err, repository.ErrCartNotFound) {
		return fmt.Errorf("failed to clear cart: %w", err)
	}
	return nil
}

// update читает корзину, применяет apply и сохраняет с проверкой версии
// При ErrCartConflict все повторяется на свежей копии, не более maxCartAttempts раз
func (s *CartService) update(
	ctx context.Context,
	userID uuid.UUID,
	create bool,
	apply func(cart *entity.Cart, now time.Time) error,
) (*entity.Cart, error) {
	for attempt := 1; ; attempt++ {
		cart, err := s.load(ctx, userID, create)
		if err != nil {
			return nil, err
		}

		now := s.now()
		if err := apply(cart, now); err != nil {
			return nil, err
		}
		cart.Recalculate()
		cart.UpdatedAt = now

		err = s.cartRepo.Save(ctx, cart)
		if err == nil {
			return cart, nil
		}
		if !errors.Is(err, repository.ErrCartConflict) {
			return nil, fmt.Errorf("failed to save cart: %w", err)
		}
		if attempt == maxCartAttempts {
			return nil, ErrCartBusy
		}
		logger.Debug().
			Str("user_id", userID.String()).
			Int("attempt", attempt).
			Msg("Cart changed concurrently, retrying")
	}
}

// load отсутствующая корзина создается только для добавления
func (s *CartService) load(ctx context.Context, userID uuid.UUID, create bool) (*entity.Cart, error) {
	cart, err := s.cartRepo.GetByUserID(ctx, userID)
	if err != nil {
		if !errors.Is(err, repository.ErrCartNotFound) {
			return nil, fmt.Errorf("failed to get cart: %w", err)
		}
		if !create {
			return nil, ErrCartItemNotFound
		}
		return entity.NewCart(userID, s.now()), nil
	}
	return cart, nil
}

func productSnapshot(product *entity.Product) entity.CartProduct {
	return entity.CartProduct{
		ID:          product.ID,
		Name:        product.Name,
		Description: product.Description,
		Price:       product.BasePrice,
		CategoryID:  product.CategoryID,
	}
}

// optionSnapshots снимок выбранных опций с их фактическим вкладом в цену
func optionSnapshots(evaluation *Evaluation) []entity.CartItemOption {
	byID := make(map[uuid.UUID]*entity.Option)
	for _, option := range evaluation.Product.Options() {
		byID[option.ID] = option
	}

	snapshots := make([]entity.CartItemOption, 0, len(evaluation.Price.Lines))
	for _, line := range evaluation.Price.Lines {
		option, ok := byID[line.OptionID]
		if !ok {
			continue
		}
		snapshots = append(snapshots, entity.CartItemOption{
			ID:       uuid.New(),
			OptionID: option.ID,
			Option: entity.CartOption{
				ID:            option.ID,
				Name:          option.Name,
				DisplayName:   option.DisplayName,
				Price:         line.Price,
				OptionGroupID: option.OptionGroupID,
			},
		})
	}
	return snapshots
}
