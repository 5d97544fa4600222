// internal/catalog/service.go
package catalog

import "context"

// Service defines the interface for the catalog store.
type Service interface {
	AddItem(ctx context.Context, itemType ItemType, name, creator string) (*Item, error)
	GetItem(ctx context.Context, itemType ItemType, name string) (*Item, error)
	UpdateItem(ctx context.Context, itemType ItemType, name string, available bool) error
	SetAvailability(ctx context.Context, itemType ItemType, name string, available bool) error
	ListItems(ctx context.Context, itemType ItemType, filter Filter) ([]*Item, error)
}
