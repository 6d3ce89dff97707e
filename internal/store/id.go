package store

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// IDGenerator mints order identifiers. Generated ids must stay unique
// with overwhelming probability even under rapid successive calls.
type IDGenerator interface {
	NewOrderID() string
}

// timeRandomID combines a millisecond timestamp with a random suffix,
// e.g. ORD-1735689600123-9f3a21c4.
type timeRandomID struct{}

func (timeRandomID) NewOrderID() string {
	return fmt.Sprintf("ORD-%d-%s", time.Now().UnixMilli(), uuid.NewString()[:8])
}
