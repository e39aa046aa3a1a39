package blob

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testStoreRoundTrip(t *testing.T, store Store) {
	t.Helper()
	ctx := context.Background()

	_, err := store.Get(ctx, KeyCart)
	assert.ErrorIs(t, err, ErrNotFound, "missing key should mean no prior state")

	type line struct {
		Name     string  `json:"name"`
		Price    float64 `json:"price"`
		Quantity int     `json:"quantity"`
	}
	in := []line{
		{Name: "Organic Cotton T-Shirt", Price: 29.99, Quantity: 3},
		{Name: "Stainless Steel Water Bottle", Price: 24.99, Quantity: 1},
	}

	raw, err := json.Marshal(in)
	require.NoError(t, err)
	require.NoError(t, store.Set(ctx, KeyCart, raw))

	stored, err := store.Get(ctx, KeyCart)
	require.NoError(t, err)

	var out []line
	require.NoError(t, json.Unmarshal(stored, &out))
	assert.Equal(t, in, out, "decode(encode(x)) must equal x")

	require.NoError(t, store.Delete(ctx, KeyCart))
	_, err = store.Get(ctx, KeyCart)
	assert.ErrorIs(t, err, ErrNotFound)

	// Deleting an absent key is not an error.
	assert.NoError(t, store.Delete(ctx, KeyCart))
}

func TestMemoryRoundTrip(t *testing.T) {
	testStoreRoundTrip(t, NewMemory())
}

func TestFileRoundTrip(t *testing.T) {
	store, err := NewFile(t.TempDir())
	require.NoError(t, err)
	testStoreRoundTrip(t, store)
}

func TestFileSurvivesReopen(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	first, err := NewFile(dir)
	require.NoError(t, err)
	require.NoError(t, first.Set(ctx, KeyToken, []byte(`"session-token"`)))

	second, err := NewFile(dir)
	require.NoError(t, err)

	raw, err := second.Get(ctx, KeyToken)
	require.NoError(t, err)
	assert.Equal(t, `"session-token"`, string(raw))
}

func TestMemoryGetReturnsCopy(t *testing.T) {
	ctx := context.Background()
	store := NewMemory()
	require.NoError(t, store.Set(ctx, KeyUser, []byte(`{"a":1}`)))

	raw, err := store.Get(ctx, KeyUser)
	require.NoError(t, err)
	raw[0] = 'X'

	again, err := store.Get(ctx, KeyUser)
	require.NoError(t, err)
	assert.Equal(t, `{"a":1}`, string(again), "callers must not be able to mutate stored blobs")
}
