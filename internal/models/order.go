package models

import "time"

// OrderItem is a dish plus a quantity. It lives in the active cart
// while quantity >= 1 and is snapshotted by value into an Order at
// submission time.
type OrderItem struct {
	Dish
	Quantity int `json:"quantity"`
}

// LineTotal returns price multiplied by quantity for this line.
func (i OrderItem) LineTotal() int64 {
	return i.Price * int64(i.Quantity)
}

// Order is a submitted transaction for a table. Everything except
// Status is immutable once created; items are copies, not live cart
// references.
type Order struct {
	ID           string      `json:"id"`
	TableNumber  string      `json:"tableNumber"`
	Items        []OrderItem `json:"items"`
	TotalPrice   int64       `json:"totalPrice"`
	Status       OrderStatus `json:"status"`
	CustomerName string      `json:"customerName"`
	CreatedAt    time.Time   `json:"createdAt"`
}

// OrderStatus represents the possible states of an order
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusCompleted OrderStatus = "completed"
)

// StatusFilter selects a subset of orders when listing.
type StatusFilter string

const (
	FilterAll       StatusFilter = "all"
	FilterPending   StatusFilter = "pending"
	FilterCompleted StatusFilter = "completed"
)
