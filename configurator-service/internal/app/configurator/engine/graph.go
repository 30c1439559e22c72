package engine

import (
	"sort"

	"bikeshop/configurator-service/internal/app/configurator/entity"

	"github.com/google/uuid"
)

// optionGraph индекс опций одного товара
// Принадлежность к группе берется из структуры товара, а не из OptionGroupID
type optionGraph struct {
	options map[uuid.UUID]*entity.Option
	groupOf map[uuid.UUID]uuid.UUID
	members map[uuid.UUID][]uuid.UUID
	groups  []*entity.OptionGroup
}

func newOptionGraph(product *entity.Product) *optionGraph {
	g := &optionGraph{
		options: make(map[uuid.UUID]*entity.Option),
		groupOf: make(map[uuid.UUID]uuid.UUID),
		members: make(map[uuid.UUID][]uuid.UUID),
	}
	if product == nil {
		return g
	}
	for gi := range product.OptionGroups {
		group := &product.OptionGroups[gi]
		g.groups = append(g.groups, group)
		for oi := range group.Options {
			option := &group.Options[oi]
			g.options[option.ID] = option
			g.groupOf[option.ID] = group.ID
			g.members[group.ID] = append(g.members[group.ID], option.ID)
		}
	}
	for _, ids := range g.members {
		sortIDs(ids)
	}
	sort.Slice(g.groups, func(i, j int) bool {
		return compareIDs(g.groups[i].ID, g.groups[j].ID) < 0
	})
	return g
}

// resolve возвращает опцию, если она есть в графе товара
func (g *optionGraph) resolve(id uuid.UUID) (*entity.Option, bool) {
	option, ok := g.options[id]
	return option, ok
}

// usable опция есть в графе и активна; правила с иными ссылками пропускаются
func (g *optionGraph) usable(id uuid.UUID) bool {
	option, ok := g.options[id]
	return ok && option.IsActive
}

// selectedInGroup выбранные опции группы в порядке ID
func (g *optionGraph) selectedInGroup(groupID uuid.UUID, sel Selection) []uuid.UUID {
	var out []uuid.UUID
	for _, id := range g.members[groupID] {
		if sel.Contains(id) {
			out = append(out, id)
		}
	}
	return out
}
