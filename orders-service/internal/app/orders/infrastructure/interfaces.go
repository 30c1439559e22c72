package infrastructure

import (
	"context"
	"errors"

	"bikeshop/orders-service/internal/app/orders/entity"

	"github.com/google/uuid"
)

var (
	ErrNotFound     = errors.New("resource not found in configurator")
	ErrUnauthorized = errors.New("configurator rejected credentials")
)

type MessagePublisher interface {
	PublishMessage(ctx context.Context, key string, value []byte) error
	Close() error
}

// ConfiguratorClient корзина и движок конфигуратора в configurator-service
// ConfigureProduct отдает валидность, наличие и цену одного вычисления
type ConfiguratorClient interface {
	GetCart(ctx context.Context, authToken string) (*entity.Cart, error)
	ConfigureProduct(ctx context.Context, productID uuid.UUID, optionIDs []uuid.UUID) (*entity.ConfiguredProduct, error)
	ClearCart(ctx context.Context, authToken string) error
}

// TokenBlacklist черный список токенов, который ведет Auth Service при logout
type TokenBlacklist interface {
	IsTokenBlacklisted(ctx context.Context, token string) (bool, error)
}
