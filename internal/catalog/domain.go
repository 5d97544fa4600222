// internal/catalog/domain.go
package catalog

import "errors"

var (
	// ErrDuplicateItem is returned when an item name already exists for its type.
	ErrDuplicateItem = errors.New("item already exists")
	// ErrNotFound is returned when no item matches the given type and name.
	ErrNotFound = errors.New("item not found")
)

// ItemType distinguishes the two kinds of circulating items.
type ItemType string

const (
	TypeBook  ItemType = "Book"
	TypeMovie ItemType = "Movie"
)

// ParseItemType validates a type string from the presentation layer.
func ParseItemType(s string) (ItemType, error) {
	switch ItemType(s) {
	case TypeBook, TypeMovie:
		return ItemType(s), nil
	}
	return "", errors.New("unknown item type: " + s)
}

// Filter narrows item listings by availability.
type Filter string

const (
	FilterAll         Filter = "all"
	FilterAvailable   Filter = "available"
	FilterUnavailable Filter = "unavailable"
)

// ParseFilter validates a listing filter. An empty string means all.
func ParseFilter(s string) (Filter, error) {
	switch Filter(s) {
	case FilterAll, FilterAvailable, FilterUnavailable:
		return Filter(s), nil
	case "":
		return FilterAll, nil
	}
	return "", errors.New("unknown filter: " + s)
}

// Item represents a book or movie in the catalog. Creator is the author for
// books and the director for movies. Available is a derived flag: the loan
// ledger is the authority on open loans, and only the circulation engine may
// flip it while a loan opens or closes.
type Item struct {
	Type      ItemType `json:"type"`
	Name      string   `json:"name"`
	Creator   string   `json:"creator"`
	Available bool     `json:"available"`
}
