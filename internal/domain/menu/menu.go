package menu

import (
	"fmt"

	"github.com/bits-and-blooms/bloom/v3"
	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
)

// Sentinel errors for catalog lookups and availability checks.
var (
	// ErrNotFound is returned when a requested menu item does not exist.
	ErrNotFound = errors.New("menu item doesn't exist")
	// ErrEmpty is returned when an operation requires a non-empty menu.
	ErrEmpty = errors.New("the menu is empty")
	// ErrSoldOut is returned when an item has no availability left.
	ErrSoldOut = errors.New("item is sold out")
)

// Item is a single menu entry available for ordering.
type Item struct {
	ID              string
	Name            string
	Description     string
	Price           decimal.Decimal
	Type            string
	AmountAvailable int
}

// String renders the item in its wire form.
func (i *Item) String() string {
	return fmt.Sprintf("MenuItem{id='%s', name='%s', description='%s', price=%s, type='%s', amountAvailable=%d}",
		i.ID, i.Name, i.Description, i.Price, i.Type, i.AmountAvailable)
}

// Expected catalog size for the bloom filter. A canteen menu is small; the
// filter only needs to answer definite misses cheaply.
const (
	bloomCapacity = 10_000
	bloomFPR      = 0.01
)

// Catalog owns the set of all menu items. Item ids are not required to be
// unique: Add performs no uniqueness check, and Find resolves duplicates to
// the first item in insertion order.
type Catalog struct {
	items []*Item
	ids   *bloom.BloomFilter
}

// NewCatalog creates an empty Catalog.
func NewCatalog() *Catalog {
	return &Catalog{
		ids: bloom.NewWithEstimates(bloomCapacity, bloomFPR),
	}
}

// Add appends an item to the catalog.
func (c *Catalog) Add(item *Item) {
	c.items = append(c.items, item)
	c.ids.AddString(item.ID)
}

// Find returns the first item with the given id in insertion order.
// The bloom filter short-circuits definite misses before the scan.
func (c *Catalog) Find(id string) (*Item, error) {
	if !c.ids.TestString(id) {
		return nil, ErrNotFound
	}
	for _, item := range c.items {
		if item.ID == id {
			return item, nil
		}
	}
	return nil, ErrNotFound
}

// Decrement reduces the item's availability by exactly one. The caller must
// have verified AmountAvailable >= 1.
func (c *Catalog) Decrement(item *Item) {
	item.AmountAvailable--
}

// Empty reports whether the catalog holds no items.
func (c *Catalog) Empty() bool {
	return len(c.items) == 0
}

// Len returns the number of items, counting duplicates.
func (c *Catalog) Len() int {
	return len(c.items)
}
