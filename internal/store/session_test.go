package store

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/MadhaSivanandaReddy/ShopHub/internal/blob"
	"github.com/MadhaSivanandaReddy/ShopHub/internal/domain"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testUser(role domain.Role) domain.User {
	return domain.User{
		ID:        uuid.New(),
		Email:     "user@demo.com",
		FirstName: "John",
		LastName:  "Doe",
		Role:      role,
		CreatedAt: time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC),
	}
}

func TestSessionSignInAndOut(t *testing.T) {
	ctx := context.Background()
	blobs := blob.NewMemory()
	session := NewSession(ctx, blobs, zap.NewNop())

	assert.False(t, session.IsAuthenticated())
	_, ok := session.CurrentUser()
	assert.False(t, ok)

	user := testUser(domain.RoleCustomer)
	require.NoError(t, session.SignIn(ctx, user, "opaque-token"))

	assert.True(t, session.IsAuthenticated())
	assert.False(t, session.IsAdmin())
	got, ok := session.CurrentUser()
	require.True(t, ok)
	assert.Equal(t, user, got)
	token, ok := session.Token()
	require.True(t, ok)
	assert.Equal(t, "opaque-token", token)

	session.SignOut(ctx)
	assert.False(t, session.IsAuthenticated())
	_, ok = session.Token()
	assert.False(t, ok)
}

func TestSessionSignInValidation(t *testing.T) {
	ctx := context.Background()
	session := NewSession(ctx, blob.NewMemory(), zap.NewNop())

	err := session.SignIn(ctx, testUser(domain.RoleCustomer), "")
	assert.True(t, errors.Is(err, domain.ErrValidation), "empty token rejected")

	err = session.SignIn(ctx, domain.User{}, "token")
	assert.True(t, errors.Is(err, domain.ErrValidation), "zero user id rejected")

	assert.False(t, session.IsAuthenticated(), "rejected sign-in leaves the session untouched")
}

func TestSessionIsAdmin(t *testing.T) {
	ctx := context.Background()
	session := NewSession(ctx, blob.NewMemory(), zap.NewNop())

	require.NoError(t, session.SignIn(ctx, testUser(domain.RoleAdmin), "token"))
	assert.True(t, session.IsAdmin())
}

func TestSessionPersistenceRoundTrip(t *testing.T) {
	ctx := context.Background()
	blobs := blob.NewMemory()
	logger := zap.NewNop()

	first := NewSession(ctx, blobs, logger)
	user := testUser(domain.RoleCustomer)
	require.NoError(t, first.SignIn(ctx, user, "opaque-token"))

	second := NewSession(ctx, blobs, logger)
	got, ok := second.CurrentUser()
	require.True(t, ok)
	assert.Equal(t, user, got)
	token, _ := second.Token()
	assert.Equal(t, "opaque-token", token)
}

func TestSessionSignOutClearsPersistedState(t *testing.T) {
	ctx := context.Background()
	blobs := blob.NewMemory()
	logger := zap.NewNop()

	session := NewSession(ctx, blobs, logger)
	require.NoError(t, session.SignIn(ctx, testUser(domain.RoleCustomer), "token"))
	session.SignOut(ctx)

	_, err := blobs.Get(ctx, blob.KeyUser)
	assert.ErrorIs(t, err, blob.ErrNotFound)
	_, err = blobs.Get(ctx, blob.KeyToken)
	assert.ErrorIs(t, err, blob.ErrNotFound)

	assert.False(t, NewSession(ctx, blobs, logger).IsAuthenticated())
}

func TestSessionCorruptOrPartialStateSignsOut(t *testing.T) {
	ctx := context.Background()
	logger := zap.NewNop()

	t.Run("corrupt user blob", func(t *testing.T) {
		blobs := blob.NewMemory()
		require.NoError(t, blobs.Set(ctx, blob.KeyToken, []byte(`"token"`)))
		require.NoError(t, blobs.Set(ctx, blob.KeyUser, []byte(`{"id": not json`)))

		session := NewSession(ctx, blobs, logger)
		assert.False(t, session.IsAuthenticated())

		_, err := blobs.Get(ctx, blob.KeyToken)
		assert.ErrorIs(t, err, blob.ErrNotFound, "half-valid session state is cleared")
	})

	t.Run("token without user", func(t *testing.T) {
		blobs := blob.NewMemory()
		require.NoError(t, blobs.Set(ctx, blob.KeyToken, []byte(`"token"`)))

		session := NewSession(ctx, blobs, logger)
		assert.False(t, session.IsAuthenticated())
	})
}

// unreadableBlobStore fails every read while delegating writes and deletes,
// simulating a temporarily unreachable backend.
type unreadableBlobStore struct {
	inner blob.Store
}

func (s *unreadableBlobStore) Get(ctx context.Context, key string) ([]byte, error) {
	return nil, errors.New("backend unavailable")
}

func (s *unreadableBlobStore) Set(ctx context.Context, key string, value []byte) error {
	return s.inner.Set(ctx, key, value)
}

func (s *unreadableBlobStore) Delete(ctx context.Context, key string) error {
	return s.inner.Delete(ctx, key)
}

func TestSessionReadFailureKeepsPersistedState(t *testing.T) {
	ctx := context.Background()
	blobs := blob.NewMemory()
	logger := zap.NewNop()

	first := NewSession(ctx, blobs, logger)
	user := testUser(domain.RoleCustomer)
	require.NoError(t, first.SignIn(ctx, user, "opaque-token"))

	// The backend is briefly unreadable: the session starts signed out
	// but must not discard state it could not even inspect.
	degraded := NewSession(ctx, &unreadableBlobStore{inner: blobs}, logger)
	assert.False(t, degraded.IsAuthenticated())

	recovered := NewSession(ctx, blobs, logger)
	got, ok := recovered.CurrentUser()
	require.True(t, ok, "persisted session survives a transient read failure")
	assert.Equal(t, user, got)
	token, _ := recovered.Token()
	assert.Equal(t, "opaque-token", token)
}

func TestSessionSubscribersSeeSnapshots(t *testing.T) {
	ctx := context.Background()
	session := NewSession(ctx, blob.NewMemory(), zap.NewNop())

	var seen []bool
	session.Subscribe(func(s Session) { seen = append(seen, s.User != nil) })

	require.NoError(t, session.SignIn(ctx, testUser(domain.RoleCustomer), "token"))
	session.SignOut(ctx)
	session.SignOut(ctx) // already signed out: no-op, no publish

	assert.Equal(t, []bool{true, false}, seen)
}

func TestSessionUserBlobIsJSONEncoded(t *testing.T) {
	ctx := context.Background()
	blobs := blob.NewMemory()
	session := NewSession(ctx, blobs, zap.NewNop())

	user := testUser(domain.RoleCustomer)
	require.NoError(t, session.SignIn(ctx, user, "token"))

	raw, err := blobs.Get(ctx, blob.KeyUser)
	require.NoError(t, err)

	var decoded domain.User
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Equal(t, user, decoded)
}
