// Package cart implements the in-memory cart a customer builds before
// submitting an order. Lines are keyed by dish ID: at most one line
// per dish, and a line whose quantity drops to zero is removed rather
// than retained.
package cart

import (
	"sync"

	"gourmet/internal/models"
)

// Cart accumulates order lines in insertion order. Safe for
// concurrent use; the HTTP surface may touch a session cart from
// overlapping requests.
type Cart struct {
	mu    sync.Mutex
	lines []models.OrderItem
}

// New returns an empty cart.
func New() *Cart {
	return &Cart{}
}

// AddDish adds one unit of dish. If a line for the dish already
// exists its quantity is incremented, otherwise a new line with
// quantity 1 is appended.
func (c *Cart) AddDish(dish models.Dish) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.lines {
		if c.lines[i].ID == dish.ID {
			c.lines[i].Quantity++
			return
		}
	}
	c.lines = append(c.lines, models.OrderItem{Dish: dish, Quantity: 1})
}

// UpdateQuantity adjusts the line for id by delta, clamping at zero.
// A line reaching zero is removed. Unknown ids are ignored.
func (c *Cart) UpdateQuantity(id string, delta int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.lines {
		if c.lines[i].ID != id {
			continue
		}
		qty := c.lines[i].Quantity + delta
		if qty <= 0 {
			c.lines = append(c.lines[:i], c.lines[i+1:]...)
		} else {
			c.lines[i].Quantity = qty
		}
		return
	}
}

// Clear empties the cart. Called after a successful submission and on
// logout.
func (c *Cart) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lines = nil
}

// TotalPrice sums price times quantity over all lines.
func (c *Cart) TotalPrice() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	var total int64
	for _, line := range c.lines {
		total += line.LineTotal()
	}
	return total
}

// Count returns the total number of units across all lines.
func (c *Cart) Count() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	n := 0
	for _, line := range c.lines {
		n += line.Quantity
	}
	return n
}

// Items returns a value-copied snapshot of the current lines in
// insertion order.
func (c *Cart) Items() []models.OrderItem {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]models.OrderItem, len(c.lines))
	copy(out, c.lines)
	return out
}

// DishNames returns the names of the dishes currently in the cart,
// in insertion order. Used to build recommendation prompts.
func (c *Cart) DishNames() []string {
	c.mu.Lock()
	defer c.mu.Unlock()

	names := make([]string, len(c.lines))
	for i, line := range c.lines {
		names[i] = line.Name
	}
	return names
}
