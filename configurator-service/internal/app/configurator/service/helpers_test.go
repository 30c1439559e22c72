package service

import (
	"time"

	"bikeshop/configurator-service/internal/app/configurator/entity"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Хелперы для создания тестовых данных

func money(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func newTestOption(groupID uuid.UUID, name, price string, quantity int) entity.Option {
	id := uuid.New()
	return entity.Option{
		ID:            id,
		Name:          name,
		DisplayName:   name,
		BasePrice:     money(price),
		IsActive:      true,
		OptionGroupID: groupID,
		InventoryItem: &entity.InventoryItem{ID: uuid.New(), Quantity: quantity, ProductOptionID: id},
	}
}

// newTestBike товар (база 1000) с рамой (A=200) и колесами (B=150)
func newTestBike() *entity.Product {
	productID := uuid.New()
	frameID := uuid.New()
	wheelsID := uuid.New()
	return &entity.Product{
		ID:        productID,
		Name:      "Trail bike",
		BasePrice: money("1000"),
		IsActive:  true,
		CreatedAt: time.Now(),
		OptionGroups: []entity.OptionGroup{
			{
				ID:        frameID,
				Name:      "frame",
				ProductID: productID,
				Options:   []entity.Option{newTestOption(frameID, "Full suspension", "200", 3)},
			},
			{
				ID:        wheelsID,
				Name:      "wheels",
				ProductID: productID,
				Options: []entity.Option{
					newTestOption(wheelsID, "Mountain wheels", "150", 3),
					newTestOption(wheelsID, "Road wheels", "80", 0),
				},
			},
		},
	}
}

func frameOption(p *entity.Product) entity.Option  { return p.OptionGroups[0].Options[0] }
func wheelOption(p *entity.Product) entity.Option  { return p.OptionGroups[1].Options[0] }
func soldOutOption(p *entity.Product) entity.Option { return p.OptionGroups[1].Options[1] }
