package domain

import "context"

// CatalogSource is the remote product listing this service reads from.
type CatalogSource interface {
	List(ctx context.Context, skip, limit int) (ProductPage, error)
	Get(ctx context.Context, id int) (Product, error)
}
