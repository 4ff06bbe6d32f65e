package models

import "time"

// Product is the Catalog's own product row. Owned exclusively by this
// service, per strict per-service data ownership — the Orchestrator
// never reads this table directly, only through the internal RPC
// surface.
type Product struct {
	ID          int64  `db:"id"`
	Name        string `db:"name"`
	Description string `db:"description"`
	// PriceCents is the fixed-point price stored as integer cents, the
	// on-disk twin of pkg/money.Amount.
	PriceCents int64     `db:"price_cents"`
	Inventory  int       `db:"inventory"`
	Active     bool      `db:"active"`
	CreatedAt  time.Time `db:"created_at"`
	UpdatedAt  time.Time `db:"updated_at"`
}
