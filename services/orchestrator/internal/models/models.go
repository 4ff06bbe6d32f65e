package models

import "time"

// Status is an Order's position in the post-creation state machine
// from spec.md §4.3.
type Status string

const (
	StatusPending    Status = "pending"
	StatusConfirmed  Status = "confirmed"
	StatusProcessing Status = "processing"
	StatusShipped    Status = "shipped"
	StatusDelivered  Status = "delivered"
	StatusCancelled  Status = "cancelled"
)

// transitions maps each non-terminal status to the states it may move
// to next.
var transitions = map[Status][]Status{
	StatusPending:    {StatusConfirmed, StatusCancelled},
	StatusConfirmed:  {StatusProcessing, StatusCancelled},
	StatusProcessing: {StatusShipped, StatusCancelled},
	StatusShipped:    {StatusDelivered, StatusCancelled},
}

// CanTransition reports whether moving from s to next is a legal
// state-machine edge.
func (s Status) CanTransition(next Status) bool {
	for _, allowed := range transitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Order is the Orchestrator's own order row. Owner is stored only as
// field-level encrypted ciphertext; the plaintext IdP account id is
// never persisted in the clear.
type Order struct {
	ID             int64  `db:"id"`
	OwnerEncrypted string `db:"owner_encrypted"`
	// OwnerIndex is a deterministic HMAC of the plaintext owner id,
	// carried alongside OwnerEncrypted so "list my orders" can filter in
	// SQL without ever storing the owner in the clear (OwnerEncrypted's
	// randomized nonce makes it useless for equality lookups).
	OwnerIndex string    `db:"owner_index"`
	TotalCents int64     `db:"total_cents"`
	Status     Status    `db:"status"`
	CreatedAt  time.Time `db:"created_at"`
	UpdatedAt  time.Time `db:"updated_at"`
}

// OrderLine is a single line item, with price captured at purchase
// time and never mutated afterward.
type OrderLine struct {
	ID              int64  `db:"id"`
	OrderID         int64  `db:"order_id"`
	ProductID       string `db:"product_id"`
	Quantity        int    `db:"quantity"`
	PriceAtPurchase int64  `db:"price_at_purchase_cents"`
}
