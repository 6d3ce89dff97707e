// Package storage persists the order collection to a single named
// slot. Writes are full-collection replaces; readers treat an absent
// or unparseable slot as an empty collection rather than an error.
package storage

import (
	"context"

	"gourmet/internal/models"
)

// SlotName is the fixed name of the durable slot mirroring the order
// collection.
const SlotName = "gourmet_orders"

// Repository mirrors the full order collection in a durable slot.
//
// Watch returns a channel that delivers the refreshed collection
// whenever the slot is changed by another process. Implementations
// must not deliver a process's own writes back to it. Backends with
// no external change feed return a nil channel.
type Repository interface {
	Load(ctx context.Context) ([]models.Order, error)
	Save(ctx context.Context, orders []models.Order) error
	Watch(ctx context.Context) (<-chan []models.Order, error)
	Close() error
}
