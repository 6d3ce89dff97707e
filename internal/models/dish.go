package models

// Dish represents a static menu catalog entry.
// Dishes are loaded once at startup and never mutated; prices are
// integer currency units (VND) so totals never accumulate rounding loss.
type Dish struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Price       int64  `json:"price"`
	Category    string `json:"category"`
	Image       string `json:"image"`
}
