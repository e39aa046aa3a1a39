package source

import (
	"context"
	"time"

	"github.com/MadhaSivanandaReddy/ShopHub/internal/domain"

	"github.com/google/uuid"
)

// Fixture is an in-memory ProductSource carrying the demo storefront catalog.
type Fixture struct {
	products []domain.Product
}

// NewFixture builds a source over an arbitrary product list.
func NewFixture(products []domain.Product) *Fixture {
	return &Fixture{products: products}
}

// NewDemoFixture returns the six-product demo catalog.
func NewDemoFixture() *Fixture {
	now := time.Now()

	demo := []struct {
		name        string
		description string
		price       float64
		imageURL    string
		category    string
		stock       int
		featured    bool
	}{
		{
			name:        "Premium Wireless Headphones",
			description: "High-quality wireless headphones with noise cancellation and premium sound quality.",
			price:       299.99,
			imageURL:    "https://images.pexels.com/photos/3394650/pexels-photo-3394650.jpeg?auto=compress&cs=tinysrgb&w=500",
			category:    "Electronics",
			stock:       25,
			featured:    true,
		},
		{
			name:        "Smart Fitness Watch",
			description: "Advanced fitness tracking with heart rate monitoring, GPS, and smartphone integration.",
			price:       199.99,
			imageURL:    "https://images.pexels.com/photos/437037/pexels-photo-437037.jpeg?auto=compress&cs=tinysrgb&w=500",
			category:    "Electronics",
			stock:       15,
			featured:    true,
		},
		{
			name:        "Organic Cotton T-Shirt",
			description: "Comfortable and sustainable organic cotton t-shirt in various colors.",
			price:       29.99,
			imageURL:    "https://images.pexels.com/photos/996329/pexels-photo-996329.jpeg?auto=compress&cs=tinysrgb&w=500",
			category:    "Clothing",
			stock:       50,
			featured:    false,
		},
		{
			name:        "Professional Camera Lens",
			description: "High-performance camera lens for professional photography with superior optics.",
			price:       899.99,
			imageURL:    "https://images.pexels.com/photos/90946/pexels-photo-90946.jpeg?auto=compress&cs=tinysrgb&w=500",
			category:    "Electronics",
			stock:       8,
			featured:    true,
		},
		{
			name:        "Ergonomic Office Chair",
			description: "Comfortable ergonomic office chair with lumbar support and adjustable height.",
			price:       449.99,
			imageURL:    "https://images.pexels.com/photos/586996/pexels-photo-586996.jpeg?auto=compress&cs=tinysrgb&w=500",
			category:    "Furniture",
			stock:       12,
			featured:    false,
		},
		{
			name:        "Stainless Steel Water Bottle",
			description: "Insulated stainless steel water bottle that keeps drinks cold for 24 hours.",
			price:       24.99,
			imageURL:    "https://images.pexels.com/photos/1000084/pexels-photo-1000084.jpeg?auto=compress&cs=tinysrgb&w=500",
			category:    "Accessories",
			stock:       35,
			featured:    false,
		},
	}

	products := make([]domain.Product, 0, len(demo))
	for _, d := range demo {
		products = append(products, domain.Product{
			ID:          uuid.New(),
			Name:        d.name,
			Description: d.description,
			Price:       d.price,
			ImageURL:    d.imageURL,
			Category:    d.category,
			Stock:       d.stock,
			Featured:    d.featured,
			CreatedAt:   now,
			UpdatedAt:   now,
		})
	}

	return &Fixture{products: products}
}

// FetchProducts returns a copy of the fixture catalog.
func (f *Fixture) FetchProducts(ctx context.Context) ([]domain.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	out := make([]domain.Product, len(f.products))
	copy(out, f.products)
	return out, nil
}
