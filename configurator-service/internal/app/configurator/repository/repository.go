package repository

import (
	"context"
	"errors"
	"time"

	"bikeshop/configurator-service/internal/app/configurator/entity"

	"github.com/google/uuid"
)

var (
	ErrProductNotFound         = errors.New("product not found")
	ErrOptionGroupNotFound     = errors.New("option group not found")
	ErrOptionNotFound          = errors.New("option not found")
	ErrOptionRuleNotFound      = errors.New("option rule not found")
	ErrOptionPriceRuleNotFound = errors.New("option price rule not found")
	ErrCartNotFound            = errors.New("cart not found")
	ErrCartConflict            = errors.New("cart was modified concurrently")
	ErrDuplicateKey            = errors.New("duplicate key")
	ErrForeignKey              = errors.New("foreign key violation")
)

type CategoryRepository interface {
	Create(ctx context.Context, category *entity.Category) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Category, error)
	// GetAll name фильтрует по вхождению без учета регистра, пустое имя отдает все
	GetAll(ctx context.Context, name string) ([]entity.Category, error)
	Update(ctx context.Context, category *entity.Category) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Product, error)
	// GetWithOptions загружает товар с группами, опциями и инвентарем
	GetWithOptions(ctx context.Context, id uuid.UUID) (*entity.Product, error)
	GetAll(ctx context.Context) ([]entity.Product, error)
	Update(ctx context.Context, product *entity.Product) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// ConfigurationSnapshot граф товара и все правила, прочитанные согласованно
type ConfigurationSnapshot struct {
	Product    *entity.Product
	Rules      []entity.OptionRule
	PriceRules []entity.OptionPriceRule
}

type ConfigurationRepository interface {
	// LoadSnapshot читает товар и правила одной read-only транзакцией REPEATABLE READ
	LoadSnapshot(ctx context.Context, productID uuid.UUID) (*ConfigurationSnapshot, error)
}

type OptionGroupRepository interface {
	Create(ctx context.Context, group *entity.OptionGroup) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.OptionGroup, error)
	GetAll(ctx context.Context) ([]entity.OptionGroup, error)
	GetByProductID(ctx context.Context, productID uuid.UUID) ([]entity.OptionGroup, error)
	Update(ctx context.Context, group *entity.OptionGroup) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type OptionRepository interface {
	// Create создает опцию вместе с InventoryItem, если он задан
	Create(ctx context.Context, option *entity.Option) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Option, error)
	GetAll(ctx context.Context) ([]entity.Option, error)
	Update(ctx context.Context, option *entity.Option) error
	Delete(ctx context.Context, id uuid.UUID) error
	// SetInventory создает или заменяет складскую запись опции
	SetInventory(ctx context.Context, optionID uuid.UUID, quantity int, outOfStock bool) (*entity.InventoryItem, error)
}

type OptionRuleRepository interface {
	Create(ctx context.Context, rule *entity.OptionRule) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.OptionRule, error)
	// GetAll возвращает активные и неактивные правила
	GetAll(ctx context.Context) ([]entity.OptionRule, error)
	Update(ctx context.Context, rule *entity.OptionRule) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type OptionPriceRuleRepository interface {
	Create(ctx context.Context, rule *entity.OptionPriceRule) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.OptionPriceRule, error)
	GetAll(ctx context.Context) ([]entity.OptionPriceRule, error)
	Update(ctx context.Context, rule *entity.OptionPriceRule) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type CartRepository interface {
	GetByUserID(ctx context.Context, userID uuid.UUID) (*entity.Cart, error)
	// Save создает корзину (Version 0) или заменяет версию, прочитанную ранее
	// ErrCartConflict если корзину успели изменить; при успехе Version увеличивается
	Save(ctx context.Context, cart *entity.Cart) error
	DeleteByUserID(ctx context.Context, userID uuid.UUID) error
	// DeleteStale удаляет корзины, не изменявшиеся с before
	DeleteStale(ctx context.Context, before time.Time) (int64, error)
}
