package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/MadhaSivanandaReddy/ShopHub/internal/source"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"go.uber.org/zap"
)

func setupSource(t *testing.T) *Source {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping container-backed test in short mode")
	}

	ctx := context.Background()

	pgC, err := tcpostgres.Run(ctx,
		"postgres:16-alpine",
		tcpostgres.WithDatabase("shophub"),
		tcpostgres.WithUsername("postgres"),
		tcpostgres.WithPassword("postgres"),
		tcpostgres.BasicWaitStrategies(),
		tcpostgres.WithSQLDriver("pgx"),
	)
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = pgC.Terminate(ctx)
	})

	dsn, err := pgC.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	src, err := Open(dsn)
	require.NoError(t, err)
	t.Cleanup(func() { src.Close() })

	require.NoError(t, src.Migrate(zap.NewNop()))
	return src
}

func TestPostgresSourceMatchesFixture(t *testing.T) {
	src := setupSource(t)
	ctx := context.Background()

	fixture, err := source.NewDemoFixture().FetchProducts(ctx)
	require.NoError(t, err)
	require.NoError(t, src.Seed(ctx, fixture))

	fetched, err := src.FetchProducts(ctx)
	require.NoError(t, err)
	require.Len(t, fetched, len(fixture))

	// Swapping the data source must not change store semantics, so the
	// postgres adapter has to hand back the same entity shapes in the same
	// order as the in-memory fixture.
	for i := range fixture {
		assert.Equal(t, fixture[i].ID, fetched[i].ID)
		assert.Equal(t, fixture[i].Name, fetched[i].Name)
		assert.Equal(t, fixture[i].Description, fetched[i].Description)
		assert.InDelta(t, fixture[i].Price, fetched[i].Price, 0.001)
		assert.Equal(t, fixture[i].ImageURL, fetched[i].ImageURL)
		assert.Equal(t, fixture[i].Category, fetched[i].Category)
		assert.Equal(t, fixture[i].Stock, fetched[i].Stock)
		assert.Equal(t, fixture[i].Featured, fetched[i].Featured)
		assert.WithinDuration(t, fixture[i].CreatedAt, fetched[i].CreatedAt, time.Second)
	}
}

func TestPostgresSourceEmptyCatalog(t *testing.T) {
	src := setupSource(t)

	products, err := src.FetchProducts(context.Background())
	require.NoError(t, err)
	assert.Empty(t, products)
}
