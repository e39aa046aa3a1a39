// Package source defines the collaborator boundary the catalog store loads
// its products from. The store's semantics are identical no matter which
// implementation backs it.
package source

import (
	"context"

	"github.com/MadhaSivanandaReddy/ShopHub/internal/domain"
)

// ProductSource yields the full product collection, in source order.
type ProductSource interface {
	FetchProducts(ctx context.Context) ([]domain.Product, error)
}

// Func adapts a plain fetch function to a ProductSource.
type Func func(ctx context.Context) ([]domain.Product, error)

func (f Func) FetchProducts(ctx context.Context) ([]domain.Product, error) {
	return f(ctx)
}
