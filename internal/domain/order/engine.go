// Package order implements the order-placement engine: the validate-then-apply
// state machine that guards the canteen's money and stock invariants.
package order

import (
	"github.com/go-faster/errors"

	"github.com/xenking/eadrium-canteen/internal/domain/menu"
	"github.com/xenking/eadrium-canteen/internal/domain/user"
)

// Sentinel errors for order validation.
var (
	// ErrInvalid is returned for a missing order id on placement, or an
	// unknown order id on cancellation and lookup.
	ErrInvalid = errors.New("invalid order")
	// ErrDuplicate is returned when the order id is already taken for the
	// owning user. Order ids are unique per user, not globally.
	ErrDuplicate = errors.New("duplicate order")
)

// PlaceRequest holds the input for placing an order.
type PlaceRequest struct {
	OrderID string
	ItemID  string
	UserID  string
	Type    string
}

// Engine validates and applies order placement and cancellation against the
// shared catalog and user store.
//
// Engine methods are not safe for concurrent use on their own: the
// check-then-act sequence in Place must not interleave with other mutations.
// The dispatcher serializes all commands, so every Place/Delete runs as one
// critical section.
type Engine struct {
	catalog *menu.Catalog
	users   *user.Store
}

// NewEngine creates an Engine over the given catalog and user store.
func NewEngine(catalog *menu.Catalog, users *user.Store) *Engine {
	return &Engine{
		catalog: catalog,
		users:   users,
	}
}

// Place runs the placement state machine. Checks run strictly in this order
// and the first failure wins: cheap request-shape checks before identity
// lookups before financial checks. On success it atomically decrements the
// item's availability, appends the order, and debits the user.
func (e *Engine) Place(req PlaceRequest) error {
	if req.OrderID == "" {
		return ErrInvalid
	}
	if e.catalog.Empty() {
		return menu.ErrEmpty
	}

	u, err := e.users.Find(req.UserID)
	if err != nil {
		return err
	}
	if _, ok := u.FindOrder(req.OrderID); ok {
		return ErrDuplicate
	}

	item, err := e.catalog.Find(req.ItemID)
	if err != nil {
		return err
	}
	if item.AmountAvailable < 1 {
		return menu.ErrSoldOut
	}
	if item.Price.GreaterThan(u.Balance) {
		return user.ErrInsufficientFunds
	}

	e.catalog.Decrement(item)
	u.AddOrder(user.Order{
		ItemID:  req.ItemID,
		Type:    req.Type,
		OrderID: req.OrderID,
	})
	e.users.Spend(u, item.Price)

	return nil
}

// Delete removes the order from the user's sequence. Cancellation does not
// restore item availability and does not refund the balance.
func (e *Engine) Delete(userID, orderID string) error {
	u, err := e.users.Find(userID)
	if err != nil {
		return err
	}
	if !u.RemoveOrder(orderID) {
		return ErrInvalid
	}
	return nil
}
