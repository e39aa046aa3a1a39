package source

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDemoFixtureShape(t *testing.T) {
	products, err := NewDemoFixture().FetchProducts(context.Background())
	require.NoError(t, err)
	require.Len(t, products, 6)

	assert.Equal(t, "Premium Wireless Headphones", products[0].Name)
	assert.Equal(t, 299.99, products[0].Price)
	assert.True(t, products[0].Featured)

	for _, p := range products {
		assert.NotEmpty(t, p.ID)
		assert.NotEmpty(t, p.Category)
		assert.GreaterOrEqual(t, p.Stock, 0)
		assert.GreaterOrEqual(t, p.Price, 0.0)
	}
}

func TestFixtureFetchReturnsCopy(t *testing.T) {
	fixture := NewDemoFixture()
	ctx := context.Background()

	first, err := fixture.FetchProducts(ctx)
	require.NoError(t, err)
	first[0].Name = "mutated"

	second, err := fixture.FetchProducts(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Premium Wireless Headphones", second[0].Name)
}

func TestFixtureRespectsCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewDemoFixture().FetchProducts(ctx)
	assert.Error(t, err)
}
