// Package engine вычисляет валидность и цену конфигурации товара.
// Пакет чистый: без ввода-вывода, логирования и обращения к часам.
package engine

import (
	"bytes"
	"sort"

	"github.com/google/uuid"
)

// Selection неизменяемое множество выбранных опций
// Дубликаты удалены, порядок побайтовый по UUID
type Selection struct {
	ids []uuid.UUID
	set map[uuid.UUID]struct{}
}

// NewSelection строит выборку из произвольного списка ID
func NewSelection(ids []uuid.UUID) Selection {
	set := make(map[uuid.UUID]struct{}, len(ids))
	unique := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if _, ok := set[id]; ok {
			continue
		}
		set[id] = struct{}{}
		unique = append(unique, id)
	}
	sortIDs(unique)
	return Selection{ids: unique, set: set}
}

// Contains входит ли опция в выборку
func (s Selection) Contains(id uuid.UUID) bool {
	_, ok := s.set[id]
	return ok
}

// IDs возвращает копию упорядоченного списка
func (s Selection) IDs() []uuid.UUID {
	out := make([]uuid.UUID, len(s.ids))
	copy(out, s.ids)
	return out
}

func (s Selection) Len() int {
	return len(s.ids)
}

func (s Selection) IsEmpty() bool {
	return len(s.ids) == 0
}

func compareIDs(a, b uuid.UUID) int {
	return bytes.Compare(a[:], b[:])
}

func sortIDs(ids []uuid.UUID) {
	sort.Slice(ids, func(i, j int) bool {
		return compareIDs(ids[i], ids[j]) < 0
	})
}
