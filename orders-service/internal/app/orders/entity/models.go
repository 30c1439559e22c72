package entity

import (
	"bytes"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Order заказ, оформленный из корзины пользователя
type Order struct {
	ID         uuid.UUID       `json:"id" gorm:"type:uuid;primaryKey"`
	UserID     uuid.UUID       `json:"userId" gorm:"type:uuid;not null;index"` // ID пользователя из Auth Service
	TotalPrice decimal.Decimal `json:"totalPrice" gorm:"type:numeric(12,2);not null"`
	Status     OrderStatus     `json:"status" gorm:"type:varchar(20);not null;default:'pending'"`
	Items      []OrderItem     `json:"items" gorm:"foreignKey:OrderID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	CreatedAt  time.Time       `json:"createdAt"`
	UpdatedAt  time.Time       `json:"updatedAt"`
}

func (Order) TableName() string {
	return "orders"
}

// OrderStatus статус заказа
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusConfirmed OrderStatus = "confirmed"
	OrderStatusShipped   OrderStatus = "shipped"
	OrderStatusDelivered OrderStatus = "delivered"
	OrderStatusCancelled OrderStatus = "cancelled"
)

var statusTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusPending:   {OrderStatusConfirmed, OrderStatusCancelled},
	OrderStatusConfirmed: {OrderStatusShipped, OrderStatusCancelled},
	OrderStatusShipped:   {OrderStatusDelivered},
	OrderStatusDelivered: {},
	OrderStatusCancelled: {},
}

// CanTransitionTo допустим ли переход в статус to
func (s OrderStatus) CanTransitionTo(to OrderStatus) bool {
	for _, allowed := range statusTransitions[s] {
		if allowed == to {
			return true
		}
	}
	return false
}

// OrderItem позиция заказа: товар, набор опций и цена на момент оформления
type OrderItem struct {
	ID          uuid.UUID         `json:"id" gorm:"type:uuid;primaryKey"`
	OrderID     uuid.UUID         `json:"orderId" gorm:"type:uuid;not null;index"`
	ProductID   uuid.UUID         `json:"productId" gorm:"type:uuid;not null"`
	ProductName string            `json:"productName" gorm:"type:varchar(200);not null"`
	Quantity    int               `json:"quantity" gorm:"not null;check:quantity > 0"`
	UnitPrice   decimal.Decimal   `json:"unitPrice" gorm:"type:numeric(12,2);not null"`
	TotalPrice  decimal.Decimal   `json:"totalPrice" gorm:"type:numeric(12,2);not null"`
	Options     []OrderItemOption `json:"options" gorm:"type:jsonb;serializer:json;not null"`
}

func (OrderItem) TableName() string {
	return "order_items"
}

// OrderItemOption снимок выбранной опции
type OrderItemOption struct {
	OptionID      uuid.UUID       `json:"optionId"`
	OptionGroupID uuid.UUID       `json:"optionGroupId"`
	Name          string          `json:"name"`
	DisplayName   string          `json:"displayName"`
	Price         decimal.Decimal `json:"price"`
}

// Recalculate пересчитывает суммы позиций и заказа
func (o *Order) Recalculate() {
	total := decimal.Zero
	for i := range o.Items {
		item := &o.Items[i]
		item.TotalPrice = item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity)))
		total = total.Add(item.TotalPrice)
	}
	o.TotalPrice = total.Round(2)
}

// StockDemand сколько единиц каждой опции расходует заказ, по возрастанию ID опции
func (o *Order) StockDemand() []OptionDemand {
	byOption := make(map[uuid.UUID]int)
	for _, item := range o.Items {
		for _, opt := range item.Options {
			byOption[opt.OptionID] += item.Quantity
		}
	}

	demand := make([]OptionDemand, 0, len(byOption))
	for optionID, quantity := range byOption {
		demand = append(demand, OptionDemand{OptionID: optionID, Quantity: quantity})
	}
	sort.Slice(demand, func(i, j int) bool {
		return bytes.Compare(demand[i].OptionID[:], demand[j].OptionID[:]) < 0
	})
	return demand
}

type OptionDemand struct {
	OptionID uuid.UUID
	Quantity int
}

// InventoryEvent событие склада для inventory-worker (топик inventory_events)
type InventoryEvent struct {
	EventType string    `json:"eventType"`
	OptionID  uuid.UUID `json:"optionId"`
	Delta     int       `json:"delta"`
	OrderID   uuid.UUID `json:"orderId"`
	Timestamp time.Time `json:"timestamp"`
}

const EventTypeStockAdjusted = "STOCK_ADJUSTED"
