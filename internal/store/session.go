package store

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/MadhaSivanandaReddy/ShopHub/internal/blob"
	"github.com/MadhaSivanandaReddy/ShopHub/internal/domain"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Session is the current identity snapshot delivered to subscribers. User is
// nil when signed out.
type Session struct {
	User  *domain.User
	Token string
}

// SessionStore holds the signed-in user and their opaque token. It performs
// no credential verification; an external collaborator authenticates and
// hands the result over via SignIn.
type SessionStore struct {
	logger *zap.Logger
	blobs  blob.Store

	mu    sync.RWMutex
	user  *domain.User
	token string
	pub   publisher[Session]
}

// NewSession creates a session store and restores any persisted identity.
// A half-present or unparseable persisted session is cleared and treated as
// signed out.
func NewSession(ctx context.Context, blobs blob.Store, logger *zap.Logger) *SessionStore {
	s := &SessionStore{
		logger: logger,
		blobs:  blobs,
	}
	s.restore(ctx)
	return s
}

func (s *SessionStore) restore(ctx context.Context) {
	rawToken, tokenErr := s.blobs.Get(ctx, blob.KeyToken)
	rawUser, userErr := s.blobs.Get(ctx, blob.KeyUser)

	if tokenErr == blob.ErrNotFound && userErr == blob.ErrNotFound {
		return
	}

	// A read failure says nothing about the persisted state itself, so
	// start signed out and leave it in place for the next restore.
	if (tokenErr != nil && tokenErr != blob.ErrNotFound) ||
		(userErr != nil && userErr != blob.ErrNotFound) {
		s.logger.Warn("Failed to read persisted session, starting signed out",
			zap.NamedError("token_err", tokenErr), zap.NamedError("user_err", userErr))
		return
	}

	var token string
	var user domain.User
	ok := tokenErr == nil && userErr == nil &&
		json.Unmarshal(rawToken, &token) == nil &&
		json.Unmarshal(rawUser, &user) == nil &&
		token != "" && user.ID != uuid.Nil

	if !ok {
		s.logger.Warn("Persisted session is incomplete or corrupt, signing out")
		s.clearBlobs(ctx)
		return
	}

	s.user = &user
	s.token = token
}

// Subscribe registers fn for session snapshots and returns an unsubscribe
// function.
func (s *SessionStore) Subscribe(fn Subscriber[Session]) func() {
	s.mu.Lock()
	defer s.mu.Unlock()

	cancel := s.pub.subscribe(fn)
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		cancel()
	}
}

// SignIn stores the authenticated user and token and persists both.
func (s *SessionStore) SignIn(ctx context.Context, user domain.User, token string) error {
	if token == "" {
		return &domain.ValidationError{Fields: []domain.FieldError{
			{Field: "Token", Message: "This field is required"},
		}}
	}
	if user.ID == uuid.Nil {
		return &domain.ValidationError{Fields: []domain.FieldError{
			{Field: "ID", Message: "This field is required"},
		}}
	}

	s.mu.Lock()
	stored := user
	s.user = &stored
	s.token = token
	snapshot, subs := s.sessionLocked()
	s.mu.Unlock()

	if raw, err := json.Marshal(token); err == nil {
		if err := s.blobs.Set(ctx, blob.KeyToken, raw); err != nil {
			s.logger.Warn("Failed to persist session token", zap.Error(err))
		}
	}
	if raw, err := json.Marshal(user); err == nil {
		if err := s.blobs.Set(ctx, blob.KeyUser, raw); err != nil {
			s.logger.Warn("Failed to persist session user", zap.Error(err))
		}
	}

	s.logger.Info("User signed in", zap.String("user_id", user.ID.String()))
	deliver(subs, snapshot)
	return nil
}

// SignOut drops the identity and clears the persisted session. Signing out
// while already signed out is a no-op.
func (s *SessionStore) SignOut(ctx context.Context) {
	s.mu.Lock()
	if s.user == nil {
		s.mu.Unlock()
		return
	}
	s.user = nil
	s.token = ""
	snapshot, subs := s.sessionLocked()
	s.mu.Unlock()

	s.clearBlobs(ctx)
	s.logger.Info("User signed out")
	deliver(subs, snapshot)
}

// CurrentUser returns the signed-in user, if any.
func (s *SessionStore) CurrentUser() (domain.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.user == nil {
		return domain.User{}, false
	}
	return *s.user, true
}

// Token returns the session token, if signed in.
func (s *SessionStore) Token() (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token, s.user != nil
}

// IsAuthenticated reports whether a user is signed in.
func (s *SessionStore) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user != nil
}

// IsAdmin reports whether the signed-in user is an administrator.
func (s *SessionStore) IsAdmin() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user != nil && s.user.Role == domain.RoleAdmin
}

func (s *SessionStore) sessionLocked() (Session, []subscription[Session]) {
	snapshot := Session{Token: s.token}
	if s.user != nil {
		user := *s.user
		snapshot.User = &user
	}
	return snapshot, s.pub.snapshot()
}

func (s *SessionStore) clearBlobs(ctx context.Context) {
	if err := s.blobs.Delete(ctx, blob.KeyToken); err != nil {
		s.logger.Warn("Failed to clear session token blob", zap.Error(err))
	}
	if err := s.blobs.Delete(ctx, blob.KeyUser); err != nil {
		s.logger.Warn("Failed to clear session user blob", zap.Error(err))
	}
}
