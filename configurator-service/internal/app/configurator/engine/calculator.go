package engine

import (
	"sort"

	"bikeshop/configurator-service/internal/app/configurator/entity"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PricePlaces количество знаков после запятой в итоговых ценах
const PricePlaces = 2

// PriceBreakdown итоговая цена с разбивкой по выбранным опциям
type PriceBreakdown struct {
	Total     decimal.Decimal    `json:"total"`
	BasePrice decimal.Decimal    `json:"basePrice"`
	Lines     []entity.PriceLine `json:"lines"`
}

// Calculator считает цену выборки. Валидность выборки не проверяется
type Calculator struct{}

func NewCalculator() *Calculator {
	return &Calculator{}
}

// Calculate базовая цена товара плюс вклад каждой выбранной опции товара.
// Вклад опции заменяется ценой правила, если выбрана и зависимая опция;
// при нескольких совпадениях применяется правило с наименьшим ID.
// ID, отсутствующие в графе товара, ничего не добавляют
func (c *Calculator) Calculate(product *entity.Product, priceRules []entity.OptionPriceRule, sel Selection) PriceBreakdown {
	graph := newOptionGraph(product)
	overrides := matchPriceRules(graph, priceRules, sel)

	base := decimal.Zero
	if product != nil {
		base = product.BasePrice
	}

	total := base
	lines := make([]entity.PriceLine, 0, sel.Len())
	for _, id := range sel.IDs() {
		option, ok := graph.resolve(id)
		if !ok {
			continue
		}
		line := entity.PriceLine{
			OptionID:  id,
			BasePrice: option.BasePrice,
			Price:     option.BasePrice,
		}
		if rule, ok := overrides[id]; ok {
			ruleID := rule.ID
			line.Price = rule.Price
			line.AppliedRuleID = &ruleID
		}
		total = total.Add(line.Price)
		lines = append(lines, line)
	}

	return PriceBreakdown{
		Total:     total.Round(PricePlaces),
		BasePrice: base,
		Lines:     lines,
	}
}

// matchPriceRules для каждой целевой опции выбирает правило с наименьшим ID
func matchPriceRules(graph *optionGraph, priceRules []entity.OptionPriceRule, sel Selection) map[uuid.UUID]entity.OptionPriceRule {
	sorted := make([]entity.OptionPriceRule, len(priceRules))
	copy(sorted, priceRules)
	sort.SliceStable(sorted, func(i, j int) bool {
		return compareIDs(sorted[i].ID, sorted[j].ID) < 0
	})

	overrides := make(map[uuid.UUID]entity.OptionPriceRule)
	for _, rule := range sorted {
		if !rule.IsActive || !graph.usable(rule.TargetOptionID) || !graph.usable(rule.DependentOptionID) {
			continue
		}
		if !sel.Contains(rule.TargetOptionID) || !sel.Contains(rule.DependentOptionID) {
			continue
		}
		if _, taken := overrides[rule.TargetOptionID]; taken {
			continue
		}
		overrides[rule.TargetOptionID] = rule
	}
	return overrides
}
