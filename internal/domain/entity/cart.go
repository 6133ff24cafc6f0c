package entity

import "math"

// Cart is the transient, not yet confirmed selection for one table. Lines
// are kept in first-added order and never share a menu item.
type Cart struct {
	lines Order
}

// NewCart returns an empty cart.
func NewCart() *Cart {
	return &Cart{}
}

// AddItem increments the line for item or appends a new line with quantity 1.
func (c *Cart) AddItem(item MenuItem) {
	if i := c.indexOf(item.ID); i >= 0 {
		if c.lines[i].Quantity < math.MaxInt {
			c.lines[i].Quantity++
		}
		return
	}
	c.lines = append(c.lines, LineItem{MenuItem: item, Quantity: 1})
}

// ChangeQuantity adds delta to the line for itemID. Absent items are ignored.
// A line that reaches zero or below is removed; growth stops at math.MaxInt.
func (c *Cart) ChangeQuantity(itemID int, delta int) {
	i := c.indexOf(itemID)
	if i < 0 {
		return
	}
	next := math.MaxInt
	if q := c.lines[i].Quantity; delta <= 0 || q <= math.MaxInt-delta {
		next = q + delta
	}
	if next <= 0 {
		c.lines = append(c.lines[:i], c.lines[i+1:]...)
		return
	}
	c.lines[i].Quantity = next
}

// RemoveItem drops the line for itemID regardless of its quantity.
func (c *Cart) RemoveItem(itemID int) {
	if i := c.indexOf(itemID); i >= 0 {
		c.ChangeQuantity(itemID, -c.lines[i].Quantity)
	}
}

// Items returns a copy of the cart lines.
func (c *Cart) Items() Order {
	return c.lines.Clone()
}

func (c *Cart) IsEmpty() bool {
	return len(c.lines) == 0
}

func (c *Cart) Len() int {
	return len(c.lines)
}

func (c *Cart) Clear() {
	c.lines = nil
}

func (c *Cart) indexOf(itemID int) int {
	for i, l := range c.lines {
		if l.ID == itemID {
			return i
		}
	}
	return -1
}
