package service

import (
	"fmt"

	"github.com/tewankitchen/pos-api/internal/domain/entity"
	"github.com/tewankitchen/pos-api/internal/domain/enum"
)

// MenuService serves the fixed catalog loaded at start.
type MenuService struct {
	items []entity.MenuItem
	byID  map[int]entity.MenuItem
}

// NewMenuService creates a new menu service
func NewMenuService(items []entity.MenuItem) *MenuService {
	s := &MenuService{
		items: make([]entity.MenuItem, len(items)),
		byID:  make(map[int]entity.MenuItem, len(items)),
	}
	copy(s.items, items)
	for _, it := range items {
		s.byID[it.ID] = it
	}
	return s
}

// List returns every item, or only those in category when it is non-nil.
func (s *MenuService) List(category *enum.Category) []entity.MenuItem {
	out := make([]entity.MenuItem, 0, len(s.items))
	for _, it := range s.items {
		if category == nil || it.Category == *category {
			out = append(out, it)
		}
	}
	return out
}

// Get looks an item up by id.
func (s *MenuService) Get(id int) (entity.MenuItem, error) {
	it, ok := s.byID[id]
	if !ok {
		return entity.MenuItem{}, fmt.Errorf("menu item %d: %w", id, ErrUnknownMenuItem)
	}
	return it, nil
}

// Categories returns the categories that have at least one item, in menu order.
func (s *MenuService) Categories() []enum.Category {
	present := make(map[enum.Category]bool)
	for _, it := range s.items {
		present[it.Category] = true
	}
	var out []enum.Category
	for _, c := range enum.Categories() {
		if present[c] {
			out = append(out, c)
		}
	}
	return out
}
