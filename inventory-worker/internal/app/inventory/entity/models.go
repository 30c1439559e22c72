package entity

import (
	"time"

	"github.com/google/uuid"
)

// InventoryItem складской остаток опции, таблица общая с configurator-service
type InventoryItem struct {
	ID              uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	Quantity        int       `json:"quantity" gorm:"not null;default:0"`
	OutOfStock      bool      `json:"outOfStock" gorm:"not null;default:false"`
	ProductOptionID uuid.UUID `json:"productOptionId" gorm:"type:uuid;not null;uniqueIndex"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

func (InventoryItem) TableName() string {
	return "inventory_items"
}

// InventoryEvent событие склада из топика inventory_events
type InventoryEvent struct {
	EventType  string    `json:"eventType"` // STOCK_SET, STOCK_ADJUSTED
	OptionID   uuid.UUID `json:"optionId"`
	Quantity   int       `json:"quantity"`   // для STOCK_SET
	OutOfStock bool      `json:"outOfStock"` // для STOCK_SET
	Delta      int       `json:"delta"`      // для STOCK_ADJUSTED
	Timestamp  time.Time `json:"timestamp"`
}

const (
	EventTypeStockSet      = "STOCK_SET"
	EventTypeStockAdjusted = "STOCK_ADJUSTED"
)

// ClampQuantity остаток не уходит ниже нуля
func ClampQuantity(quantity int) int {
	if quantity < 0 {
		return 0
	}
	return quantity
}
