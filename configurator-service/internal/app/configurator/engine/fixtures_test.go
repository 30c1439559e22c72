package engine

import (
	"bikeshop/configurator-service/internal/app/configurator/entity"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	productID = uuid.MustParse("00000000-0000-0000-0000-000000000100")

	frameGroupID  = uuid.MustParse("00000000-0000-0000-0000-000000000201")
	wheelsGroupID = uuid.MustParse("00000000-0000-0000-0000-000000000202")

	fullSuspension = uuid.MustParse("00000000-0000-0000-0000-000000000301")
	diamondFrame   = uuid.MustParse("00000000-0000-0000-0000-000000000302")
	roadWheels     = uuid.MustParse("00000000-0000-0000-0000-000000000401")
	mountainWheels = uuid.MustParse("00000000-0000-0000-0000-000000000402")
	fatWheels      = uuid.MustParse("00000000-0000-0000-0000-000000000403")

	foreignOption = uuid.MustParse("00000000-0000-0000-0000-000000000999")
)

func price(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func inStock(optionID uuid.UUID, qty int) *entity.InventoryItem {
	return &entity.InventoryItem{ID: uuid.New(), Quantity: qty, ProductOptionID: optionID}
}

func option(id, groupID uuid.UUID, name, basePrice string) entity.Option {
	return entity.Option{
		ID:            id,
		Name:          name,
		DisplayName:   name,
		BasePrice:     price(basePrice),
		IsActive:      true,
		OptionGroupID: groupID,
		InventoryItem: inStock(id, 5),
	}
}

// newBike товар с двумя группами: рама и колеса
func newBike() *entity.Product {
	return &entity.Product{
		ID:        productID,
		Name:      "Custom bike",
		BasePrice: price("1000"),
		IsActive:  true,
		OptionGroups: []entity.OptionGroup{
			{
				ID:        frameGroupID,
				Name:      "frame",
				ProductID: productID,
				Position:  0,
				Options: []entity.Option{
					option(fullSuspension, frameGroupID, "Full suspension", "200"),
					option(diamondFrame, frameGroupID, "Diamond", "100"),
				},
			},
			{
				ID:        wheelsGroupID,
				Name:      "wheels",
				ProductID: productID,
				Position:  1,
				Options: []entity.Option{
					option(roadWheels, wheelsGroupID, "Road wheels", "80"),
					option(mountainWheels, wheelsGroupID, "Mountain wheels", "150"),
					option(fatWheels, wheelsGroupID, "Fat bike wheels", "170"),
				},
			},
		},
	}
}

func findOption(p *entity.Product, id uuid.UUID) *entity.Option {
	for _, o := range p.Options() {
		if o.ID == id {
			return o
		}
	}
	return nil
}

func rule(id string, ruleType entity.RuleType, ifID, thenID uuid.UUID) entity.OptionRule {
	return entity.OptionRule{
		ID:           uuid.MustParse(id),
		RuleType:     ruleType,
		IfOptionID:   ifID,
		ThenOptionID: thenID,
		IsActive:     true,
	}
}

func priceRule(id string, target, dependent uuid.UUID, amount string) entity.OptionPriceRule {
	return entity.OptionPriceRule{
		ID:                uuid.MustParse(id),
		Price:             price(amount),
		TargetOptionID:    target,
		DependentOptionID: dependent,
		IsActive:          true,
	}
}
