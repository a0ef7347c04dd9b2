package session

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"postboard/internal/auth"
	"postboard/internal/cache"
	"postboard/internal/observability"

	"github.com/sirupsen/logrus"
)

type SessionServiceInterface interface {
	Issue(userID string) (*Session, error)
	Resolve(token string) (*Session, error)
	Revoke(token string) error
}

// TokenCache is the subset of the cache layer the session service needs.
// Satisfied by cache.SessionCache.
type TokenCache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, data interface{}) error
	Delete(ctx context.Context, key string) error
}

type SessionService struct {
	repo  SessionRepositoryInterface
	DB    *sql.DB
	cache TokenCache
}

func NewSessionService(repo SessionRepositoryInterface, db *sql.DB, tokenCache TokenCache) SessionServiceInterface {
	return &SessionService{
		repo:  repo,
		DB:    db,
		cache: tokenCache,
	}
}

// Issue creates and persists a new session bound to the given user. Existing
// sessions for the same user are left alone; concurrent sessions are allowed.
func (s *SessionService) Issue(userID string) (*Session, error) {
	sess := &Session{
		ID:        auth.NewID(),
		UserID:    userID,
		Token:     auth.NewToken(),
		CreatedAt: time.Now().UTC(),
	}

	if err := s.repo.Create(s.DB, sess); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := s.cache.Set(ctx, cache.SessionKey(sess.Token), sess); err != nil {
		logrus.WithError(err).Warn("Failed to cache session")
	}

	observability.IncSessionsIssued()
	return sess, nil
}

// Resolve looks a bearer token up, cache first. Unknown tokens fail with
// ErrNotFound; callers map that to an unauthorized response.
func (s *SessionService) Resolve(token string) (*Session, error) {
	if token == "" {
		return nil, ErrNotFound
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	cacheKey := cache.SessionKey(token)
	cachedData, err := s.cache.Get(ctx, cacheKey)
	if err == nil && cachedData != nil {
		var sess Session
		if json.Unmarshal(cachedData, &sess) == nil {
			observability.IncCacheHit("session")
			return &sess, nil
		}
	}
	observability.IncCacheMiss("session")

	sess, err := s.repo.FindByToken(s.DB, token)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(ctx, cacheKey, sess); err != nil {
		logrus.WithError(err).Warn("Failed to cache session")
	}

	return sess, nil
}

// Revoke deletes the session for the token. Revoking an unknown or empty
// token succeeds; logout is idempotent.
func (s *SessionService) Revoke(token string) error {
	if token == "" {
		return nil
	}

	if err := s.repo.DeleteByToken(s.DB, token); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := s.cache.Delete(ctx, cache.SessionKey(token)); err != nil {
		logrus.WithError(err).Warn("Failed to evict session from cache")
	}

	observability.IncSessionsRevoked()
	return nil
}
