package entity

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type UpdateOrderStatusRequest struct {
	Status OrderStatus `json:"status" validate:"required,oneof=pending confirmed shipped delivered cancelled"`
}

type ErrorResponse struct {
	Error      string      `json:"error"`
	Message    string      `json:"message,omitempty"`
	Violations []Violation `json:"violations,omitempty"`
}

type SuccessResponse struct {
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

type OrderListResponse struct {
	Orders []Order `json:"orders"`
	Total  int     `json:"total"`
}

// Ответы configurator-service, нужные при оформлении заказа

// Cart корзина пользователя (GET /cart)
type Cart struct {
	ID         uuid.UUID       `json:"id"`
	UserID     uuid.UUID       `json:"userId"`
	Items      []CartItem      `json:"items"`
	TotalPrice decimal.Decimal `json:"totalPrice"`
}

type CartItem struct {
	ID          uuid.UUID        `json:"id"`
	ProductID   uuid.UUID        `json:"productId"`
	Product     CartProduct      `json:"product"`
	Quantity    int              `json:"quantity"`
	UnitPrice   decimal.Decimal  `json:"unitPrice"`
	TotalPrice  decimal.Decimal  `json:"totalPrice"`
	ItemOptions []CartItemOption `json:"itemOptions"`
}

type CartProduct struct {
	ID         uuid.UUID       `json:"id"`
	Name       string          `json:"name"`
	Price      decimal.Decimal `json:"price"`
	CategoryID uuid.UUID       `json:"categoryId"`
}

type CartItemOption struct {
	ID       uuid.UUID  `json:"id"`
	OptionID uuid.UUID  `json:"optionId"`
	Option   CartOption `json:"option"`
}

type CartOption struct {
	ID            uuid.UUID       `json:"id"`
	Name          string          `json:"name"`
	DisplayName   string          `json:"displayName"`
	Price         decimal.Decimal `json:"price"`
	OptionGroupID uuid.UUID       `json:"optionGroupId"`
}

// OptionIDs ID выбранных опций позиции
func (i CartItem) OptionIDs() []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(i.ItemOptions))
	for _, opt := range i.ItemOptions {
		ids = append(ids, opt.OptionID)
	}
	return ids
}

// ConfiguredProduct товар с отмеченной выборкой, ценой с разбивкой и валидностью
// (GET /products/:id/with-options)
type ConfiguredProduct struct {
	ID                   uuid.UUID       `json:"id"`
	Name                 string          `json:"name"`
	OptionGroups         []OptionGroup   `json:"optionGroups"`
	Price                decimal.Decimal `json:"price"`
	PriceLines           []PriceLine     `json:"priceLines"`
	IsValidConfiguration bool            `json:"isValidConfiguration"`
	Incomplete           bool            `json:"incomplete"`
	Violations           []Violation     `json:"violations"`
}

type OptionGroup struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	DisplayName string    `json:"displayName"`
	Options     []Option  `json:"options"`
}

type Option struct {
	ID            uuid.UUID       `json:"id"`
	Name          string          `json:"name"`
	DisplayName   string          `json:"displayName"`
	BasePrice     decimal.Decimal `json:"basePrice"`
	IsActive      bool            `json:"isActive"`
	InStock       bool            `json:"inStock"`
	Selected      bool            `json:"selected"`
	OptionGroupID uuid.UUID       `json:"optionGroupId"`
}

// SelectedOptions опции, отмеченные как выбранные, в порядке групп
func (p *ConfiguredProduct) SelectedOptions() []Option {
	var selected []Option
	for _, group := range p.OptionGroups {
		for _, opt := range group.Options {
			if opt.Selected {
				selected = append(selected, opt)
			}
		}
	}
	return selected
}

type PriceLine struct {
	OptionID      uuid.UUID       `json:"optionId"`
	BasePrice     decimal.Decimal `json:"basePrice"`
	Price         decimal.Decimal `json:"price"`
	AppliedRuleID *uuid.UUID      `json:"appliedRuleId,omitempty"`
}

// LinePrice цена опции с учетом правил, ноль если опции нет в расчете
func (p *ConfiguredProduct) LinePrice(optionID uuid.UUID) decimal.Decimal {
	for _, line := range p.PriceLines {
		if line.OptionID == optionID {
			return line.Price
		}
	}
	return decimal.Zero
}

// Violation нарушение конфигурации в формате configurator-service
type Violation struct {
	Code     string     `json:"code"`
	OptionID *uuid.UUID `json:"optionId,omitempty"`
	RuleID   *uuid.UUID `json:"ruleId,omitempty"`
	GroupID  *uuid.UUID `json:"groupId,omitempty"`
	Message  string     `json:"message"`
}
