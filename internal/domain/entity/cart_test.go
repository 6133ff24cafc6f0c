package entity

import (
	"math"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tewankitchen/pos-api/internal/domain/enum"
)

var (
	radNaPork = MenuItem{ID: 1, Name: "Rad Na Pork", Price: decimal.NewFromInt(60), Category: enum.CategoryMainDishes}
	friedEgg  = MenuItem{ID: 3, Name: "Fried Egg", Price: decimal.NewFromInt(15), Category: enum.CategorySideDishes}
	water     = MenuItem{ID: 6, Name: "Water", Price: decimal.NewFromInt(10), Category: enum.CategoryBeverages}
)

func TestCart_AddItemMergesByIdentity(t *testing.T) {
	c := NewCart()
	c.AddItem(radNaPork)
	c.AddItem(radNaPork)
	c.AddItem(friedEgg)

	items := c.Items()
	require.Len(t, items, 2)
	assert.Equal(t, 1, items[0].ID)
	assert.Equal(t, 2, items[0].Quantity)
	assert.Equal(t, 3, items[1].ID)
	assert.Equal(t, 1, items[1].Quantity)
}

func TestCart_ChangeQuantity(t *testing.T) {
	c := NewCart()
	c.AddItem(radNaPork)
	c.ChangeQuantity(radNaPork.ID, 2)
	assert.Equal(t, 3, c.Items()[0].Quantity)

	c.ChangeQuantity(radNaPork.ID, -1)
	assert.Equal(t, 2, c.Items()[0].Quantity)

	c.ChangeQuantity(radNaPork.ID, -5)
	assert.True(t, c.IsEmpty())
}

func TestCart_ChangeQuantityAbsentIsNoop(t *testing.T) {
	c := NewCart()
	c.AddItem(water)
	c.ChangeQuantity(999, 3)

	items := c.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 1, items[0].Quantity)
}

func TestCart_RemoveItem(t *testing.T) {
	c := NewCart()
	c.AddItem(radNaPork)
	c.AddItem(radNaPork)
	c.AddItem(water)
	c.RemoveItem(radNaPork.ID)

	items := c.Items()
	require.Len(t, items, 1)
	assert.Equal(t, water.ID, items[0].ID)

	c.RemoveItem(radNaPork.ID)
	assert.Equal(t, 1, c.Len())
}

func TestCart_QuantitiesStayPositive(t *testing.T) {
	c := NewCart()
	ops := []func(){
		func() { c.AddItem(radNaPork) },
		func() { c.ChangeQuantity(radNaPork.ID, -3) },
		func() { c.AddItem(friedEgg) },
		func() { c.ChangeQuantity(friedEgg.ID, 4) },
		func() { c.AddItem(water) },
		func() { c.ChangeQuantity(friedEgg.ID, -5) },
		func() { c.RemoveItem(water.ID) },
	}
	for _, op := range ops {
		op()
		seen := map[int]bool{}
		for _, l := range c.Items() {
			assert.Positive(t, l.Quantity)
			assert.False(t, seen[l.ID], "duplicate line %d", l.ID)
			seen[l.ID] = true
		}
	}
	assert.True(t, c.IsEmpty())
}

func TestCart_ItemsIsACopy(t *testing.T) {
	c := NewCart()
	c.AddItem(radNaPork)
	items := c.Items()
	items[0].Quantity = 42

	assert.Equal(t, 1, c.Items()[0].Quantity)
}

func TestCart_Clear(t *testing.T) {
	c := NewCart()
	c.AddItem(radNaPork)
	c.Clear()
	assert.True(t, c.IsEmpty())
	assert.Empty(t, c.Items())
}

func TestOrder_LinesAndCount(t *testing.T) {
	o := Order{{MenuItem: radNaPork, Quantity: 2}, {MenuItem: water, Quantity: 3}}
	lines := o.Lines()
	require.Len(t, lines, 2)
	assert.True(t, lines[0].UnitPrice.Equal(decimal.NewFromInt(60)))
	assert.Equal(t, 5, o.ItemCount())
	assert.True(t, o[1].LineTotal().Equal(decimal.NewFromInt(30)))
}

func TestCart_AddThenDecrementRestoresPriorState(t *testing.T) {
	c := NewCart()
	c.AddItem(water)
	before := c.Items()

	c.AddItem(radNaPork)
	c.ChangeQuantity(radNaPork.ID, -1)

	assert.Equal(t, before, c.Items())
}

func TestCart_AddingNTimesMergesIntoOneLine(t *testing.T) {
	c := NewCart()
	for i := 0; i < 7; i++ {
		c.AddItem(friedEgg)
	}
	items := c.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 7, items[0].Quantity)
}

func TestCart_QuantityStopsAtMaxInt(t *testing.T) {
	c := NewCart()
	c.AddItem(water)
	c.ChangeQuantity(water.ID, math.MaxInt)
	require.Len(t, c.Items(), 1)
	assert.Equal(t, math.MaxInt, c.Items()[0].Quantity)

	c.AddItem(water)
	c.ChangeQuantity(water.ID, 5)
	require.Len(t, c.Items(), 1)
	assert.Equal(t, math.MaxInt, c.Items()[0].Quantity)

	c.ChangeQuantity(water.ID, -(math.MaxInt - 2))
	require.Len(t, c.Items(), 1)
	assert.Equal(t, 2, c.Items()[0].Quantity)
}
