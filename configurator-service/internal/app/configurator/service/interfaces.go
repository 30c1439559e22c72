package service

import (
	"context"

	"bikeshop/configurator-service/internal/app/configurator/engine"
	"bikeshop/configurator-service/internal/app/configurator/entity"

	"github.com/google/uuid"
)

// ConfigurationServiceInterface вычисление конфигураций товара
type ConfigurationServiceInterface interface {
	Evaluate(ctx context.Context, productID uuid.UUID, optionIDs []uuid.UUID) (*Evaluation, error)
	ValidateConfiguration(ctx context.Context, productID uuid.UUID, optionIDs []uuid.UUID) (*engine.ValidationResult, error)
	CalculatePrice(ctx context.Context, productID uuid.UUID, optionIDs []uuid.UUID) (*engine.PriceBreakdown, error)
}

type CatalogServiceInterface interface {
	CreateCategory(ctx context.Context, req *entity.CreateCategoryRequest) (*entity.Category, error)
	GetCategory(ctx context.Context, id uuid.UUID) (*entity.Category, error)
	GetAllCategories(ctx context.Context, name string) ([]entity.Category, error)
	UpdateCategory(ctx context.Context, id uuid.UUID, req *entity.UpdateCategoryRequest) (*entity.Category, error)
	DeleteCategory(ctx context.Context, id uuid.UUID) error

	CreateProduct(ctx context.Context, req *entity.CreateProductRequest) (*entity.Product, error)
	GetProduct(ctx context.Context, id uuid.UUID) (*entity.Product, error)
	GetAllProducts(ctx context.Context) ([]entity.Product, error)
	UpdateProduct(ctx context.Context, id uuid.UUID, req *entity.UpdateProductRequest) (*entity.Product, error)
	DeleteProduct(ctx context.Context, id uuid.UUID) error

	CreateOptionGroup(ctx context.Context, req *entity.CreateOptionGroupRequest) (*entity.OptionGroup, error)
	GetOptionGroup(ctx context.Context, id uuid.UUID) (*entity.OptionGroup, error)
	GetAllOptionGroups(ctx context.Context, productID *uuid.UUID) ([]entity.OptionGroup, error)
	UpdateOptionGroup(ctx context.Context, id uuid.UUID, req *entity.UpdateOptionGroupRequest) (*entity.OptionGroup, error)
	DeleteOptionGroup(ctx context.Context, id uuid.UUID) error
}

type OptionServiceInterface interface {
	CreateOption(ctx context.Context, req *entity.CreateOptionRequest) (*entity.Option, error)
	GetOption(ctx context.Context, id uuid.UUID) (*entity.Option, error)
	GetAllOptions(ctx context.Context) ([]entity.Option, error)
	UpdateOption(ctx context.Context, id uuid.UUID, req *entity.UpdateOptionRequest) (*entity.Option, error)
	DeleteOption(ctx context.Context, id uuid.UUID) error
	SetInventory(ctx context.Context, optionID uuid.UUID, req *entity.SetInventoryRequest) (*entity.InventoryItem, error)
}

type RuleServiceInterface interface {
	CreateOptionRule(ctx context.Context, req *entity.CreateOptionRuleRequest) (*entity.OptionRule, error)
	GetOptionRule(ctx context.Context, id uuid.UUID) (*entity.OptionRule, error)
	GetAllOptionRules(ctx context.Context) ([]entity.OptionRule, error)
	UpdateOptionRule(ctx context.Context, id uuid.UUID, req *entity.UpdateOptionRuleRequest) (*entity.OptionRule, error)
	DeleteOptionRule(ctx context.Context, id uuid.UUID) error

	CreateOptionPriceRule(ctx context.Context, req *entity.CreateOptionPriceRuleRequest) (*entity.OptionPriceRule, error)
	GetOptionPriceRule(ctx context.Context, id uuid.UUID) (*entity.OptionPriceRule, error)
	GetAllOptionPriceRules(ctx context.Context) ([]entity.OptionPriceRule, error)
	UpdateOptionPriceRule(ctx context.Context, id uuid.UUID, req *entity.UpdateOptionPriceRuleRequest) (*entity.OptionPriceRule, error)
	DeleteOptionPriceRule(ctx context.Context, id uuid.UUID) error
}

type CartServiceInterface interface {
	GetCart(ctx context.Context, userID uuid.UUID) (*entity.Cart, error)
	AddItem(ctx context.Context, userID uuid.UUID, req *entity.AddCartItemRequest) (*entity.Cart, error)
	UpdateItemQuantity(ctx context.Context, userID, itemID uuid.UUID, quantity int) (*entity.Cart, error)
	RemoveItem(ctx context.Context, userID, itemID uuid.UUID) (*entity.Cart, error)
	ClearCart(ctx context.Context, userID uuid.UUID) error
}
