// internal/catalog/implementation.go
package catalog

import (
	"context"
	"fmt"
	"sync"
)

type itemKey struct {
	itemType ItemType
	name     string
}

// service implements the Service interface with an in-memory dataset.
type service struct {
	mu    sync.RWMutex
	items map[itemKey]*Item
	order []itemKey
}

// NewService creates a new catalog store instance.
func NewService() Service {
	return &service{
		items: make(map[itemKey]*Item),
	}
}

// AddItem creates a new item in the catalog. New items start available.
func (s *service) AddItem(ctx context.Context, itemType ItemType, name, creator string) (*Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := itemKey{itemType: itemType, name: name}
	if _, exists := s.items[key]; exists {
		return nil, fmt.Errorf("%s %q: %w", itemType, name, ErrDuplicateItem)
	}

	item := &Item{
		Type:      itemType,
		Name:      name,
		Creator:   creator,
		Available: true,
	}
	s.items[key] = item
	s.order = append(s.order, key)

	return copyItem(item), nil
}

// GetItem retrieves an item by type and name.
func (s *service) GetItem(ctx context.Context, itemType ItemType, name string) (*Item, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	item, exists := s.items[itemKey{itemType: itemType, name: name}]
	if !exists {
		return nil, fmt.Errorf("%s %q: %w", itemType, name, ErrNotFound)
	}
	return copyItem(item), nil
}

// UpdateItem is the administrative edit of an item's availability flag.
func (s *service) UpdateItem(ctx context.Context, itemType ItemType, name string, available bool) error {
	return s.SetAvailability(ctx, itemType, name, available)
}

// SetAvailability flips the derived availability flag. Callers outside the
// circulation engine must not use it to fake loan state.
func (s *service) SetAvailability(ctx context.Context, itemType ItemType, name string, available bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	item, exists := s.items[itemKey{itemType: itemType, name: name}]
	if !exists {
		return fmt.Errorf("%s %q: %w", itemType, name, ErrNotFound)
	}
	item.Available = available
	return nil
}

// ListItems returns items of a type in insertion order, narrowed by filter.
func (s *service) ListItems(ctx context.Context, itemType ItemType, filter Filter) ([]*Item, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var items []*Item
	for _, key := range s.order {
		if key.itemType != itemType {
			continue
		}
		item := s.items[key]
		switch filter {
		case FilterAvailable:
			if !item.Available {
				continue
			}
		case FilterUnavailable:
			if item.Available {
				continue
			}
		}
		items = append(items, copyItem(item))
	}
	return items, nil
}

func copyItem(item *Item) *Item {
	c := *item
	return &c
}
