package domain

import "github.com/google/uuid"

// CartLine is a single product entry in the cart. The display fields are
// copied from the product at insertion time so the line survives later
// catalog edits without a re-fetch.
type CartLine struct {
	ProductID uuid.UUID `json:"product_id"`
	Name      string    `json:"name"`
	Price     float64   `json:"price"`
	ImageURL  string    `json:"image_url"`
	Stock     int       `json:"stock"`
	Quantity  int       `json:"quantity"`
}

// Cart is a derived view over the cart lines. Total and ItemCount are always
// recomputed from Items and never stored independently.
type Cart struct {
	Items     []CartLine `json:"items"`
	Total     float64    `json:"total"`
	ItemCount int        `json:"item_count"`
}

// NewCart builds the derived view from a line slice.
func NewCart(items []CartLine) Cart {
	c := Cart{Items: items}
	for _, line := range items {
		c.ItemCount += line.Quantity
		c.Total += line.Price * float64(line.Quantity)
	}
	return c
}
