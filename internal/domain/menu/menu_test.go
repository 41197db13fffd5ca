package menu

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newItem(id, name string) *Item {
	return &Item{
		ID:              id,
		Name:            name,
		Description:     "test",
		Price:           decimal.RequireFromString("4.50"),
		Type:            "drink",
		AmountAvailable: 3,
	}
}

func TestCatalog_Empty(t *testing.T) {
	c := NewCatalog()
	assert.True(t, c.Empty())
	assert.Equal(t, 0, c.Len())

	c.Add(newItem("i1", "Flat White"))
	assert.False(t, c.Empty())
	assert.Equal(t, 1, c.Len())
}

func TestCatalog_FindMiss(t *testing.T) {
	c := NewCatalog()
	c.Add(newItem("i1", "Flat White"))

	_, err := c.Find("i2")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestCatalog_Find(t *testing.T) {
	c := NewCatalog()
	c.Add(newItem("i1", "Flat White"))
	c.Add(newItem("i2", "Toastie"))

	item, err := c.Find("i2")
	require.NoError(t, err)
	assert.Equal(t, "Toastie", item.Name)
}

func TestCatalog_DuplicateIDsPermitted(t *testing.T) {
	// Add performs no uniqueness check; Find resolves duplicates to the
	// first item in insertion order.
	c := NewCatalog()
	c.Add(newItem("i1", "First"))
	c.Add(newItem("i1", "Second"))

	assert.Equal(t, 2, c.Len())

	item, err := c.Find("i1")
	require.NoError(t, err)
	assert.Equal(t, "First", item.Name)
}

func TestCatalog_Decrement(t *testing.T) {
	c := NewCatalog()
	item := newItem("i1", "Flat White")
	c.Add(item)

	c.Decrement(item)
	assert.Equal(t, 2, item.AmountAvailable)
}

func TestItem_String(t *testing.T) {
	item := &Item{
		ID:              "i1",
		Name:            "Flat White",
		Description:     "Double shot",
		Price:           decimal.RequireFromString("4.50"),
		Type:            "drink",
		AmountAvailable: 3,
	}
	assert.Equal(t,
		"MenuItem{id='i1', name='Flat White', description='Double shot', price=4.50, type='drink', amountAvailable=3}",
		item.String(),
	)
}
