package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Cart корзина пользователя, одна на пользователя; ID совпадает с UserID
// Version растет с каждым сохранением и защищает от потерянных обновлений
type Cart struct {
	ID         uuid.UUID       `json:"id"`
	UserID     uuid.UUID       `json:"userId"`
	Items      []CartItem      `json:"items"`
	TotalPrice decimal.Decimal `json:"totalPrice"`
	Version    int64           `json:"-"`
	CreatedAt  time.Time       `json:"createdAt"`
	UpdatedAt  time.Time       `json:"updatedAt"`
}

// CartItem позиция корзины со снимком товара, цены и опций на момент добавления
type CartItem struct {
	ID          uuid.UUID        `json:"id"`
	ProductID   uuid.UUID        `json:"productId"`
	Product     CartProduct      `json:"product"`
	Quantity    int              `json:"quantity"`
	UnitPrice   decimal.Decimal  `json:"unitPrice"`
	TotalPrice  decimal.Decimal  `json:"totalPrice"`
	ItemOptions []CartItemOption `json:"itemOptions"`
	CreatedAt   time.Time        `json:"createdAt"`
	UpdatedAt   time.Time        `json:"updatedAt"`
}

// CartProduct снимок товара; Price базовая цена без опций
type CartProduct struct {
	ID          uuid.UUID       `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	CategoryID  uuid.UUID       `json:"categoryId"`
}

// CartItemOption выбранная опция позиции
type CartItemOption struct {
	ID       uuid.UUID  `json:"id"`
	OptionID uuid.UUID  `json:"optionId"`
	Option   CartOption `json:"option"`
}

// CartOption снимок опции; Price фактический вклад опции в цену позиции
type CartOption struct {
	ID            uuid.UUID       `json:"id"`
	Name          string          `json:"name"`
	DisplayName   string          `json:"displayName"`
	Price         decimal.Decimal `json:"price"`
	OptionGroupID uuid.UUID       `json:"optionGroupId"`
}

// NewCart создает пустую несохраненную корзину пользователя
func NewCart(userID uuid.UUID, now time.Time) *Cart {
	return &Cart{
		ID:         userID,
		UserID:     userID,
		Items:      []CartItem{},
		TotalPrice: decimal.Zero,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

// FindItem возвращает позицию по ID или nil
func (c *Cart) FindItem(itemID uuid.UUID) *CartItem {
	for i := range c.Items {
		if c.Items[i].ID == itemID {
			return &c.Items[i]
		}
	}
	return nil
}

// FindSameConfiguration ищет позицию с тем же товаром и тем же набором опций
func (c *Cart) FindSameConfiguration(productID uuid.UUID, optionIDs []uuid.UUID) *CartItem {
	for i := range c.Items {
		if c.Items[i].ProductID == productID && c.Items[i].hasOptions(optionIDs) {
			return &c.Items[i]
		}
	}
	return nil
}

// RemoveItem удаляет позицию, возвращает false если ее нет
func (c *Cart) RemoveItem(itemID uuid.UUID) bool {
	for i := range c.Items {
		if c.Items[i].ID == itemID {
			c.Items = append(c.Items[:i], c.Items[i+1:]...)
			return true
		}
	}
	return false
}

// Recalculate пересчитывает суммы позиций и корзины
func (c *Cart) Recalculate() {
	total := decimal.Zero
	for i := range c.Items {
		item := &c.Items[i]
		item.TotalPrice = item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity)))
		total = total.Add(item.TotalPrice)
	}
	c.TotalPrice = total
}

func (i *CartItem) hasOptions(optionIDs []uuid.UUID) bool {
	if len(i.ItemOptions) != len(optionIDs) {
		return false
	}
	set := make(map[uuid.UUID]struct{}, len(optionIDs))
	for _, id := range optionIDs {
		set[id] = struct{}{}
	}
	for _, opt := range i.ItemOptions {
		if _, ok := set[opt.OptionID]; !ok {
			return false
		}
	}
	return true
}
