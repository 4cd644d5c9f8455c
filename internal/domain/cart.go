package domain

import "context"

// CartLine is one product in the cart together with its quantity.
// Identity is the product ID; the cart never holds two lines for the
// same product.
type CartLine struct {
	Product
	Quantity int `json:"quantity"`
}

// CartSnapshot is the persisted form of a cart, stored as a whole
// under a stable store name.
type CartSnapshot struct {
	Lines []CartLine `json:"lines"`
}

// CartSnapshotStore persists cart snapshots across process restarts.
// The cart works without one; saving is best-effort.
type CartSnapshotStore interface {
	Load(ctx context.Context, storeName string) (CartSnapshot, bool, error)
	Save(ctx context.Context, storeName string, snapshot CartSnapshot) error
}
