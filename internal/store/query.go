package store

import (
	"sort"
	"strings"

	"github.com/MadhaSivanandaReddy/ShopHub/internal/domain"
)

// SortKey selects the ordering applied by the catalog query pipeline.
type SortKey string

const (
	SortByName          SortKey = "name"
	SortByPriceAsc      SortKey = "price-asc"
	SortByPriceDesc     SortKey = "price-desc"
	SortByFeaturedFirst SortKey = "featured-first"
)

// Query describes one pass through the list-view pipeline. Stages always run
// in the same order: search, category filter, sort, take the first Limit.
type Query struct {
	Search   string
	Category string
	Sort     SortKey
	Limit    int // 0 means no limit
}

// Query runs the filter/sort/paginate pipeline over the current snapshot.
// Sorting is stable, so under a static snapshot a larger Limit returns a
// superset that preserves the order of everything returned before.
func (s *CatalogStore) Query(q Query) []domain.Product {
	s.mu.RLock()
	products := copyProducts(s.products)
	s.mu.RUnlock()

	if q.Search != "" {
		products = searchProducts(products, q.Search)
	}

	if q.Category != "" {
		filtered := products[:0]
		for _, p := range products {
			if strings.EqualFold(p.Category, q.Category) {
				filtered = append(filtered, p)
			}
		}
		products = filtered
	}

	switch q.Sort {
	case SortByName:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].Name < products[j].Name
		})
	case SortByPriceAsc:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].Price < products[j].Price
		})
	case SortByPriceDesc:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].Price > products[j].Price
		})
	case SortByFeaturedFirst:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].Featured && !products[j].Featured
		})
	}

	if q.Limit > 0 && q.Limit < len(products) {
		products = products[:q.Limit]
	}

	return products
}
