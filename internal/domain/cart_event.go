package domain

import (
	"time"

	"github.com/google/uuid"
)

// CartAction names a cart operation recorded in the journal
type CartAction string

const (
	CartActionCreate CartAction = "create"
	CartActionAdd    CartAction = "add_line"
	CartActionUpdate CartAction = "update_line"
	CartActionRemove CartAction = "remove_line"
)

// CartEvent is one journal entry describing a cart operation
type CartEvent struct {
	ID         uuid.UUID  `json:"id" db:"id"`
	CartID     string     `json:"cart_id" db:"cart_id"`
	Action     CartAction `json:"action" db:"action"`
	LineItemID string     `json:"line_item_id,omitempty" db:"line_item_id"`
	VariantID  string     `json:"variant_id,omitempty" db:"variant_id"`
	Quantity   int        `json:"quantity" db:"quantity"`
	Revision   int64      `json:"revision" db:"revision"`
	CreatedAt  time.Time  `json:"created_at" db:"created_at"`
}
