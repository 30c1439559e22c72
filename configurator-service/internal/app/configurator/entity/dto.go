package entity

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Запросы администрирования каталога
// Указатели в Update-запросах означают "поле не передано"

type CreateCategoryRequest struct {
	Name        string `json:"name" validate:"required,min=2,max=100"`
	Description string `json:"description" validate:"max=2000"`
	IsActive    *bool  `json:"isActive"`
}

type UpdateCategoryRequest struct {
	Name        *string `json:"name" validate:"omitempty,min=2,max=100"`
	Description *string `json:"description" validate:"omitempty,max=2000"`
	IsActive    *bool   `json:"isActive"`
}

type CreateProductRequest struct {
	Name        string          `json:"name" validate:"required,min=2,max=200"`
	Description string          `json:"description" validate:"max=2000"`
	BasePrice   decimal.Decimal `json:"basePrice"`
	Type        string          `json:"type" validate:"max=50"`
	IsActive    *bool           `json:"isActive"`
	CategoryID  uuid.UUID       `json:"categoryId" validate:"required"`
}

type UpdateProductRequest struct {
	Name        *string          `json:"name" validate:"omitempty,min=2,max=200"`
	Description *string          `json:"description" validate:"omitempty,max=2000"`
	BasePrice   *decimal.Decimal `json:"basePrice"`
	Type        *string          `json:"type" validate:"omitempty,max=50"`
	IsActive    *bool            `json:"isActive"`
	CategoryID  *uuid.UUID       `json:"categoryId"`
}

type CreateOptionGroupRequest struct {
	Name        string    `json:"name" validate:"required,min=1,max=100"`
	DisplayName string    `json:"displayName" validate:"required,min=1,max=200"`
	ProductID   uuid.UUID `json:"productId" validate:"required"`
	Position    int       `json:"position" validate:"gte=0"`
}

type UpdateOptionGroupRequest struct {
	Name        *string `json:"name" validate:"omitempty,min=1,max=100"`
	DisplayName *string `json:"displayName" validate:"omitempty,min=1,max=200"`
	Position    *int    `json:"position" validate:"omitempty,gte=0"`
}

type CreateOptionRequest struct {
	Name          string          `json:"name" validate:"required,min=1,max=100"`
	DisplayName   string          `json:"displayName" validate:"required,min=1,max=200"`
	BasePrice     decimal.Decimal `json:"basePrice"`
	IsActive      *bool           `json:"isActive"`
	OptionGroupID uuid.UUID       `json:"optionGroupId" validate:"required"`
	Quantity      *int            `json:"quantity" validate:"omitempty,gte=0"`
}

type UpdateOptionRequest struct {
	Name        *string          `json:"name" validate:"omitempty,min=1,max=100"`
	DisplayName *string          `json:"displayName" validate:"omitempty,min=1,max=200"`
	BasePrice   *decimal.Decimal `json:"basePrice"`
	IsActive    *bool            `json:"isActive"`
}

type SetInventoryRequest struct {
	Quantity   *int `json:"quantity" validate:"required,gte=0"`
	OutOfStock bool `json:"outOfStock"`
}

type CreateOptionRuleRequest struct {
	RuleType     RuleType  `json:"ruleType" validate:"required,oneof=REQUIRES EXCLUDES ONLY_ALLOWS"`
	IfOptionID   uuid.UUID `json:"ifOptionId" validate:"required"`
	ThenOptionID uuid.UUID `json:"thenOptionId" validate:"required"`
	IsActive     *bool     `json:"isActive"`
}

type UpdateOptionRuleRequest struct {
	RuleType     *RuleType  `json:"ruleType" validate:"omitempty,oneof=REQUIRES EXCLUDES ONLY_ALLOWS"`
	IfOptionID   *uuid.UUID `json:"ifOptionId"`
	ThenOptionID *uuid.UUID `json:"thenOptionId"`
	IsActive     *bool      `json:"isActive"`
}

type CreateOptionPriceRuleRequest struct {
	Price             decimal.Decimal `json:"price"`
	TargetOptionID    uuid.UUID       `json:"targetOptionId" validate:"required"`
	DependentOptionID uuid.UUID       `json:"dependentOptionId" validate:"required"`
	IsActive          *bool           `json:"isActive"`
}

type UpdateOptionPriceRuleRequest struct {
	Price             *decimal.Decimal `json:"price"`
	TargetOptionID    *uuid.UUID       `json:"targetOptionId"`
	DependentOptionID *uuid.UUID       `json:"dependentOptionId"`
	IsActive          *bool            `json:"isActive"`
}

// Запросы корзины

type AddCartItemRequest struct {
	ProductID uuid.UUID   `json:"productId" validate:"required"`
	OptionIDs []uuid.UUID `json:"optionIds" validate:"required,min=1,max=50"`
	Quantity  int         `json:"quantity" validate:"required,min=1,max=100"`
}

type UpdateCartItemRequest struct {
	Quantity int `json:"quantity" validate:"required,min=1,max=100"`
}

// Ответы

type ErrorResponse struct {
	Error      string      `json:"error"`
	Message    string      `json:"message,omitempty"`
	Violations []Violation `json:"violations,omitempty"`
}

type SuccessResponse struct {
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

type CategoryListResponse struct {
	Categories []Category `json:"categories"`
	Total      int        `json:"total"`
}

type ProductListResponse struct {
	Products []Product `json:"products"`
	Total    int       `json:"total"`
}

type OptionGroupListResponse struct {
	OptionGroups []OptionGroup `json:"optionGroups"`
	Total        int           `json:"total"`
}

type OptionListResponse struct {
	Options []Option `json:"options"`
	Total   int      `json:"total"`
}

type OptionRuleListResponse struct {
	OptionRules []OptionRule `json:"optionRules"`
	Total       int          `json:"total"`
}

type OptionPriceRuleListResponse struct {
	OptionPriceRules []OptionPriceRule `json:"optionPriceRules"`
	Total            int               `json:"total"`
}

// ProductWithOptionsResponse товар с графом опций, отмеченной выборкой, ценой и валидностью
type ProductWithOptionsResponse struct {
	*Product
	Price                decimal.Decimal `json:"price"`
	PriceLines           []PriceLine     `json:"priceLines"`
	IsValidConfiguration bool            `json:"isValidConfiguration"`
	Incomplete           bool            `json:"incomplete"`
	Violations           []Violation     `json:"violations"`
}

type ValidateConfigurationResponse struct {
	IsValid    bool        `json:"isValid"`
	Incomplete bool        `json:"incomplete"`
	Violations []Violation `json:"violations"`
}

type CalculatePriceResponse struct {
	Price     decimal.Decimal `json:"price"`
	BasePrice decimal.Decimal `json:"basePrice"`
	Lines     []PriceLine     `json:"lines"`
}
