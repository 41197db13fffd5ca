package user

import (
	"fmt"
	"strings"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
)

// Sentinel errors for account lookups and balance checks.
var (
	// ErrNotFound is returned when a requested user does not exist.
	ErrNotFound = errors.New("user doesn't exist")
	// ErrDuplicate is returned when creating a user with an existing id.
	ErrDuplicate = errors.New("user already exists")
	// ErrInsufficientFunds is returned when an item costs more than the
	// user's remaining balance.
	ErrInsufficientFunds = errors.New("insufficient funds")
)

// StartingBalance is credited to every newly created account.
var StartingBalance = decimal.NewFromInt(50)

// Order is a single placed order owned by a user. ItemID is a weak reference
// by id: the referenced menu item is not required to outlive the order.
type Order struct {
	ItemID  string
	Type    string
	OrderID string
}

// String renders the order in its wire form.
func (o *Order) String() string {
	return fmt.Sprintf("Order{itemId='%s', type='%s', orderId='%s'}", o.ItemID, o.Type, o.OrderID)
}

// User is a canteen account. The id is immutable after creation; the balance
// never goes negative; OrderID values are unique within Orders.
type User struct {
	ID        string
	Name      string
	YearLevel string
	Balance   decimal.Decimal
	Orders    []Order
}

// String renders the user in its wire form, orders in insertion order.
func (u *User) String() string {
	return fmt.Sprintf("User{id='%s', name='%s', yearLevel='%s', balance=%s, orders=[%s]}",
		u.ID, u.Name, u.YearLevel, u.Balance, u.joinOrders())
}

// Cart renders the user's orders in the getCart wire form. A user with no
// orders renders exactly "orders=".
func (u *User) Cart() string {
	return "orders=" + u.joinOrders()
}

func (u *User) joinOrders() string {
	parts := make([]string, len(u.Orders))
	for i := range u.Orders {
		parts[i] = u.Orders[i].String()
	}
	return strings.Join(parts, ", ")
}

// FindOrder returns the user's order with the given id, if any.
func (u *User) FindOrder(orderID string) (*Order, bool) {
	for i := range u.Orders {
		if u.Orders[i].OrderID == orderID {
			return &u.Orders[i], true
		}
	}
	return nil, false
}

// AddOrder appends an order to the user's sequence. The caller must have
// verified the order id is not already present.
func (u *User) AddOrder(o Order) {
	u.Orders = append(u.Orders, o)
}

// RemoveOrder deletes the order with the given id, preserving the order of
// the remaining sequence. It reports whether an order was removed.
func (u *User) RemoveOrder(orderID string) bool {
	for i := range u.Orders {
		if u.Orders[i].OrderID == orderID {
			u.Orders = append(u.Orders[:i], u.Orders[i+1:]...)
			return true
		}
	}
	return false
}

// Store owns the set of all users. User ids are unique within the store.
// Users are never destroyed during the process lifetime.
type Store struct {
	users []*User
}

// NewStore creates an empty Store.
func NewStore() *Store {
	return &Store{}
}

// Create registers a new user with the starting balance and no orders.
// It returns ErrDuplicate when the id is already taken.
func (s *Store) Create(id, name, yearLevel string) (*User, error) {
	if _, err := s.Find(id); err == nil {
		return nil, ErrDuplicate
	}
	u := &User{
		ID:        id,
		Name:      name,
		YearLevel: yearLevel,
		Balance:   StartingBalance,
	}
	s.users = append(s.users, u)
	return u, nil
}

// Find returns the user with the given id.
func (s *Store) Find(id string) (*User, error) {
	for _, u := range s.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, ErrNotFound
}

// Spend decrements the user's balance. The caller must have verified
// amount <= Balance.
func (s *Store) Spend(u *User, amount decimal.Decimal) {
	u.Balance = u.Balance.Sub(amount)
}

// Len returns the number of registered users.
func (s *Store) Len() int {
	return len(s.users)
}
