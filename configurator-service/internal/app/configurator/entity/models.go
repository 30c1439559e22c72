package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Category представляет категорию товаров (например, "Горные велосипеды")
type Category struct {
	ID          uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	Name        string    `json:"name" gorm:"type:varchar(100);not null;uniqueIndex"`
	Description string    `json:"description" gorm:"type:text;not null;default:''"`
	IsActive    bool      `json:"isActive" gorm:"not null"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// TableName указывает имя таблицы для GORM
func (Category) TableName() string {
	return "categories"
}

// Product представляет конфигурируемый товар с базовой ценой
// OptionGroups упорядочены для отображения, на цену порядок не влияет
type Product struct {
	ID           uuid.UUID       `json:"id" gorm:"type:uuid;primaryKey"`
	Name         string          `json:"name" gorm:"type:varchar(200);not null"`
	Description  string          `json:"description" gorm:"type:text;not null;default:''"`
	BasePrice    decimal.Decimal `json:"basePrice" gorm:"type:numeric(12,2);not null"`
	IsActive     bool            `json:"isActive" gorm:"not null"`
	Type         string          `json:"type" gorm:"type:varchar(50);not null;default:''"`
	CategoryID   uuid.UUID       `json:"categoryId" gorm:"type:uuid;not null;index"`
	Category     *Category       `json:"category,omitempty" gorm:"foreignKey:CategoryID;constraint:OnDelete:RESTRICT"`
	OptionGroups []OptionGroup   `json:"optionGroups" gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
	CreatedAt    time.Time       `json:"createdAt"`
	UpdatedAt    time.Time       `json:"updatedAt"`
}

// TableName указывает имя таблицы для GORM
func (Product) TableName() string {
	return "products"
}

// Options возвращает все опции товара по всем группам
func (p *Product) Options() []*Option {
	var options []*Option
	for gi := range p.OptionGroups {
		group := &p.OptionGroups[gi]
		for oi := range group.Options {
			options = append(options, &group.Options[oi])
		}
	}
	return options
}

// MarkSelected проставляет признак Selected опциям из выборки
func (p *Product) MarkSelected(selected func(uuid.UUID) bool) {
	for _, option := range p.Options() {
		option.Selected = selected(option.ID)
	}
}

// RefreshStock пересчитывает производное поле InStock у всех опций
// Вызывается после загрузки графа из БД
func (p *Product) RefreshStock() {
	for _, option := range p.Options() {
		option.InStock = option.IsInStock()
	}
}

// OptionGroup именованная группа опций одного товара (например, "Рама", "Колеса")
type OptionGroup struct {
	ID          uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	Name        string    `json:"name" gorm:"type:varchar(100);not null"`
	DisplayName string    `json:"displayName" gorm:"type:varchar(200);not null"`
	ProductID   uuid.UUID `json:"productId" gorm:"type:uuid;not null;index"`
	Position    int       `json:"position" gorm:"not null;default:0"`
	Options     []Option  `json:"options" gorm:"foreignKey:OptionGroupID;constraint:OnDelete:CASCADE"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// TableName указывает имя таблицы для GORM
func (OptionGroup) TableName() string {
	return "product_option_groups"
}

// Option вариант внутри группы; BasePrice - надбавка к базовой цене товара
type Option struct {
	ID            uuid.UUID       `json:"id" gorm:"type:uuid;primaryKey"`
	Name          string          `json:"name" gorm:"type:varchar(100);not null"`
	DisplayName   string          `json:"displayName" gorm:"type:varchar(200);not null"`
	BasePrice     decimal.Decimal `json:"basePrice" gorm:"type:numeric(12,2);not null"`
	IsActive      bool            `json:"isActive" gorm:"not null"`
	InStock       bool            `json:"inStock" gorm:"-"` // Производное от InventoryItem, см. RefreshStock
	Selected      bool            `json:"selected" gorm:"-"`
	OptionGroupID uuid.UUID       `json:"optionGroupId" gorm:"type:uuid;not null;index"`
	InventoryItem *InventoryItem  `json:"inventoryItem,omitempty" gorm:"foreignKey:ProductOptionID;constraint:OnDelete:CASCADE"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`
}

// TableName указывает имя таблицы для GORM
func (Option) TableName() string {
	return "product_options"
}

// IsInStock опция на складе только если есть запись инвентаря,
// она не помечена outOfStock и количество больше нуля
func (o *Option) IsInStock() bool {
	return o.InventoryItem != nil && o.InventoryItem.IsAvailable()
}

// InventoryItem складской остаток опции (1:1 с Option)
type InventoryItem struct {
	ID              uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	Quantity        int       `json:"quantity" gorm:"not null;default:0;check:quantity >= 0"`
	OutOfStock      bool      `json:"outOfStock" gorm:"not null;default:false"`
	ProductOptionID uuid.UUID `json:"productOptionId" gorm:"type:uuid;not null;uniqueIndex"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// TableName указывает имя таблицы для GORM
func (InventoryItem) TableName() string {
	return "inventory_items"
}

// IsAvailable есть ли остаток для продажи
func (i *InventoryItem) IsAvailable() bool {
	return !i.OutOfStock && i.Quantity > 0
}

// RuleType тип логического ограничения между двумя опциями
type RuleType string

const (
	RuleTypeRequires   RuleType = "REQUIRES"    // если выбрана if-опция, then-опция обязательна
	RuleTypeExcludes   RuleType = "EXCLUDES"    // если выбрана if-опция, then-опция запрещена
	RuleTypeOnlyAllows RuleType = "ONLY_ALLOWS" // из группы then-опции допустима только она сама
)

// IsValid проверяет, что тип правила известен
func (t RuleType) IsValid() bool {
	switch t {
	case RuleTypeRequires, RuleTypeExcludes, RuleTypeOnlyAllows:
		return true
	}
	return false
}

// OptionRule направленное правило "если выбрана IfOption, то ограничение на ThenOption"
// Симметрия не выводится: для двусторонней связи нужны две записи
type OptionRule struct {
	ID           uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	RuleType     RuleType  `json:"ruleType" gorm:"type:varchar(20);not null"`
	IfOptionID   uuid.UUID `json:"ifOptionId" gorm:"type:uuid;not null;index"`
	ThenOptionID uuid.UUID `json:"thenOptionId" gorm:"type:uuid;not null;index"`
	IsActive     bool      `json:"isActive" gorm:"not null"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// TableName указывает имя таблицы для GORM
func (OptionRule) TableName() string {
	return "option_rules"
}

// OptionPriceRule при совместном выборе Target и Dependent цена Target
// заменяется на Price (не прибавляется к BasePrice)
type OptionPriceRule struct {
	ID                uuid.UUID       `json:"id" gorm:"type:uuid;primaryKey"`
	Price             decimal.Decimal `json:"price" gorm:"type:numeric(12,2);not null"`
	TargetOptionID    uuid.UUID       `json:"targetOptionId" gorm:"type:uuid;not null;index"`
	DependentOptionID uuid.UUID       `json:"dependentOptionId" gorm:"type:uuid;not null;index"`
	IsActive          bool            `json:"isActive" gorm:"not null"`
	CreatedAt         time.Time       `json:"createdAt"`
	UpdatedAt         time.Time       `json:"updatedAt"`
}

// TableName указывает имя таблицы для GORM
func (OptionPriceRule) TableName() string {
	return "option_price_rules"
}

// Типы событий каталога для Kafka
const (
	EventProductUpdated          = "PRODUCT_UPDATED"
	EventOptionUpdated           = "OPTION_UPDATED"
	EventOptionRulesChanged      = "OPTION_RULES_CHANGED"
	EventOptionPriceRulesChanged = "OPTION_PRICE_RULES_CHANGED"
)

// CatalogEvent событие изменения каталога, влияющего на цену или валидность конфигураций
type CatalogEvent struct {
	EventType string           `json:"event_type"`
	EntityID  uuid.UUID        `json:"entity_id"`
	Price     *decimal.Decimal `json:"price,omitempty"`
	Timestamp time.Time        `json:"timestamp"`
}
